package sqlnormtest

import (
	"testing"

	"github.com/honeynil/sqlnorm"
)

func TestMustCompileSucceeds(t *testing.T) {
	cfg := sqlnorm.DriverConfig{
		Identity:                 "test",
		DefaultParameterStyle:    sqlnorm.NUMERIC,
		SupportedParameterStyles: sqlnorm.StyleSet(sqlnorm.NUMERIC),
	}
	state := MustCompile(t, "SELECT * FROM t WHERE a = ?", []any{1}, cfg, sqlnorm.CompileFlags{})
	if state.FinalSQL != "SELECT * FROM t WHERE a = $1" {
		t.Errorf("FinalSQL = %q", state.FinalSQL)
	}
}

func TestMustLexFindsPlaceholders(t *testing.T) {
	placeholders := MustLex(t, "SELECT * FROM t WHERE a = ?", true)
	if len(placeholders) != 1 {
		t.Errorf("len(placeholders) = %d, want 1", len(placeholders))
	}
}

func TestMustReshapeSucceeds(t *testing.T) {
	placeholders := sqlnorm.Lex("SELECT * FROM t WHERE a = ? AND b = ?")
	got := MustReshape(t, []any{1, 2}, placeholders, sqlnorm.NAMED_COLON)
	m, ok := got.(map[string]any)
	if !ok {
		t.Fatalf("got %T, want map[string]any", got)
	}
	if m["param_0"] != 1 || m["param_1"] != 2 {
		t.Errorf("got %#v", m)
	}
}

func TestMustWrapParametersPreservesShape(t *testing.T) {
	got := MustWrapParameters(t, []any{nil, "x"}, nil)
	if _, ok := got.([]any); !ok {
		t.Fatalf("got %T, want []any", got)
	}
}
