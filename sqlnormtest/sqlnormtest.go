// Package sqlnormtest provides testing utilities for sqlnorm.
//
// It wraps the package-level Lex/Reshape/Compile entry points with
// Must* variants that fail the test instead of returning an error,
// reducing boilerplate in conformance tests a driver author writes
// against their DriverConfig.
//
// # Usage
//
//	func TestMyDriver(t *testing.T) {
//	    cfg := mydriver.New()
//	    state := sqlnormtest.MustCompile(t, "SELECT * FROM t WHERE id = ?", []any{1}, cfg, sqlnorm.CompileFlags{})
//	    if state.FinalSQL != "SELECT * FROM t WHERE id = $1" {
//	        t.Errorf("FinalSQL = %q", state.FinalSQL)
//	    }
//	}
package sqlnormtest

import (
	"testing"

	"github.com/honeynil/sqlnorm"
)

// MustCompile is like sqlnorm.Compile but fails the test on error.
func MustCompile(t *testing.T, sql string, params any, cfg sqlnorm.DriverConfig, flags sqlnorm.CompileFlags) sqlnorm.ProcessedState {
	t.Helper()
	state, err := sqlnorm.Compile(sql, params, cfg, flags)
	if err != nil {
		t.Fatalf("sqlnorm.Compile(%q) failed: %v", sql, err)
	}
	return state
}

// MustLex is like sqlnorm.Lex but fails the test if the scan finds no
// placeholders at all when the caller expected some (wantAny).
func MustLex(t *testing.T, sql string, wantAny bool) sqlnorm.ParameterInfoList {
	t.Helper()
	placeholders := sqlnorm.Lex(sql)
	if wantAny && len(placeholders) == 0 {
		t.Fatalf("Lex(%q) found no placeholders, expected at least one", sql)
	}
	return placeholders
}

// MustReshape is like sqlnorm.Reshape but fails the test on error.
func MustReshape(t *testing.T, params any, placeholders sqlnorm.ParameterInfoList, target sqlnorm.ParameterStyle) any {
	t.Helper()
	reshaped, err := sqlnorm.Reshape(params, placeholders, target)
	if err != nil {
		t.Fatalf("sqlnorm.Reshape() failed: %v", err)
	}
	return reshaped
}

// MustWrapParameters calls sqlnorm.WrapParameters and fails the test if
// the container shape of the result doesn't match the input (a slice in,
// a slice out; a map in, a map out), per typedparam.go's shape-preserving
// contract.
func MustWrapParameters(t *testing.T, params any, placeholders sqlnorm.ParameterInfoList) any {
	t.Helper()
	wrapped := sqlnorm.WrapParameters(params, placeholders)

	switch params.(type) {
	case []any:
		if _, ok := wrapped.([]any); !ok {
			t.Fatalf("WrapParameters() changed container shape: got %T for a []any input", wrapped)
		}
	case map[string]any:
		if _, ok := wrapped.(map[string]any); !ok {
			t.Fatalf("WrapParameters() changed container shape: got %T for a map[string]any input", wrapped)
		}
	}
	return wrapped
}
