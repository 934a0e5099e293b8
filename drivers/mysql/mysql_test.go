package mysql

import (
	"testing"

	"github.com/honeynil/sqlnorm"
)

func TestNewMatchesSpecTableRow(t *testing.T) {
	cfg := New()
	if cfg.Identity != Identity {
		t.Errorf("Identity = %q, want %q", cfg.Identity, Identity)
	}
	if cfg.DefaultParameterStyle != sqlnorm.POSITIONAL_PYFORMAT {
		t.Errorf("DefaultParameterStyle = %s, want POSITIONAL_PYFORMAT", cfg.DefaultParameterStyle)
	}
	for _, style := range []sqlnorm.ParameterStyle{sqlnorm.POSITIONAL_PYFORMAT, sqlnorm.NAMED_PYFORMAT} {
		if _, ok := cfg.SupportedParameterStyles[style]; !ok {
			t.Errorf("SupportedParameterStyles missing %s", style)
		}
	}
	if cfg.HasNativeListExpansion {
		t.Error("HasNativeListExpansion should be false for mysql")
	}
}
