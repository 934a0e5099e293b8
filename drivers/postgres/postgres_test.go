package postgres

import (
	"testing"

	"github.com/honeynil/sqlnorm"
)

func TestNewMatchesSpecTableRow(t *testing.T) {
	cfg := New()
	if cfg.Identity != Identity {
		t.Errorf("Identity = %q, want %q", cfg.Identity, Identity)
	}
	if cfg.DefaultParameterStyle != sqlnorm.NUMERIC {
		t.Errorf("DefaultParameterStyle = %s, want NUMERIC", cfg.DefaultParameterStyle)
	}
	if cfg.HasNativeListExpansion {
		t.Error("HasNativeListExpansion should be false for postgres")
	}
	if _, ok := cfg.TypeCoercionMap[sqlnorm.DataTypeDecimal]; !ok {
		t.Error("expected a DECIMAL coercion registered for pgx's string bind")
	}
}

func TestDecimalCoercionRendersString(t *testing.T) {
	cfg := New()
	fn := cfg.TypeCoercionMap[sqlnorm.DataTypeDecimal]
	got := fn("12.50")
	if got != "12.50" {
		t.Errorf("got %#v", got)
	}
}
