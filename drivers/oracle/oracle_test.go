package oracle

import (
	"testing"

	"github.com/honeynil/sqlnorm"
)

func TestNewMatchesSpecTableRow(t *testing.T) {
	cfg := New()
	if cfg.Identity != Identity {
		t.Errorf("Identity = %q, want %q", cfg.Identity, Identity)
	}
	if cfg.DefaultParameterStyle != sqlnorm.NAMED_COLON {
		t.Errorf("DefaultParameterStyle = %s, want NAMED_COLON", cfg.DefaultParameterStyle)
	}
	for _, style := range []sqlnorm.ParameterStyle{sqlnorm.NAMED_COLON, sqlnorm.POSITIONAL_COLON} {
		if _, ok := cfg.SupportedParameterStyles[style]; !ok {
			t.Errorf("SupportedParameterStyles missing %s", style)
		}
	}
	if !cfg.HasNativeListExpansion {
		t.Error("HasNativeListExpansion should be true for oracle")
	}
}
