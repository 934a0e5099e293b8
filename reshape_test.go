package sqlnorm

import (
	"reflect"
	"testing"
)

func TestReshapeMapToSequenceByName(t *testing.T) {
	sql := "UPDATE u SET e = :email WHERE id = :id"
	placeholders := Lex(sql)
	got, err := Reshape(map[string]any{"email": "x@y", "id": 7}, placeholders, POSITIONAL_PYFORMAT)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []any{"x@y", 7}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Reshape() = %#v, want %#v", got, want)
	}
}

func TestReshapeSequenceToMapUsesPlaceholderNames(t *testing.T) {
	sql := "UPDATE u SET e = :email WHERE id = :id"
	placeholders := Lex(sql)
	got, err := Reshape([]any{"x@y", 7}, placeholders, NAMED_COLON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]any{"email": "x@y", "id": 7}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Reshape() = %#v, want %#v", got, want)
	}
}

func TestReshapeSequenceToMapSynthesizesParamN(t *testing.T) {
	sql := "SELECT * FROM t WHERE a = ? AND b = ?"
	placeholders := Lex(sql)
	got, err := Reshape([]any{1, 2}, placeholders, NAMED_COLON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]any{"param_0": 1, "param_1": 2}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Reshape() = %#v, want %#v", got, want)
	}
}

func TestReshapeMissingParameterFromMap(t *testing.T) {
	sql := "SELECT * FROM t WHERE a = :x AND b = :y"
	placeholders := Lex(sql)
	_, err := Reshape(map[string]any{"x": 1}, placeholders, QMARK)
	if err == nil {
		t.Fatal("expected MissingParameter error")
	}
	perr, ok := err.(*ProcessingError)
	if !ok || perr.Kind != MissingParameter {
		t.Errorf("got %v, want *ProcessingError{Kind: MissingParameter}", err)
	}
}

func TestReshapeExtraParameterFromMap(t *testing.T) {
	sql := "SELECT * FROM t WHERE a = :x"
	placeholders := Lex(sql)
	_, err := Reshape(map[string]any{"x": 1, "unused": 2}, placeholders, NAMED_COLON)
	if err == nil {
		t.Fatal("expected ExtraParameter error")
	}
	perr, ok := err.(*ProcessingError)
	if !ok || perr.Kind != ExtraParameter {
		t.Errorf("got %v, want *ProcessingError{Kind: ExtraParameter}", err)
	}
}

func TestReshapeExtraParameterFromSequence(t *testing.T) {
	sql := "SELECT * FROM t WHERE a = ?"
	placeholders := Lex(sql)
	_, err := Reshape([]any{1, 2}, placeholders, QMARK)
	if err == nil {
		t.Fatal("expected ExtraParameter error")
	}
	if perr, ok := err.(*ProcessingError); !ok || perr.Kind != ExtraParameter {
		t.Errorf("got %v, want ExtraParameter", err)
	}
}

func TestReshapeScalarWithSinglePlaceholder(t *testing.T) {
	sql := "SELECT * FROM t WHERE a = ?"
	placeholders := Lex(sql)
	got, err := Reshape(42, placeholders, QMARK)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []any{42}) {
		t.Errorf("Reshape() = %#v, want []any{42}", got)
	}
}

func TestReshapeScalarWithMultiplePlaceholdersFails(t *testing.T) {
	sql := "SELECT * FROM t WHERE a = ? AND b = ?"
	placeholders := Lex(sql)
	_, err := Reshape(42, placeholders, QMARK)
	if err == nil {
		t.Fatal("expected MissingParameter error for scalar with >1 placeholder")
	}
}

func TestReshapeStaticYieldsNilContainer(t *testing.T) {
	sql := "SELECT * FROM t WHERE a = ?"
	placeholders := Lex(sql)
	got, err := Reshape([]any{1}, placeholders, STATIC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("Reshape() with STATIC target = %#v, want nil", got)
	}
}

// TestReshapeRoundTrip checks that reshaping to a map and back is
// reversible up to the ordering established by the placeholder list.
func TestReshapeRoundTrip(t *testing.T) {
	sql := "SELECT * FROM t WHERE a = ? AND b = ?"
	placeholders := Lex(sql)
	original := []any{10, 20}

	asMap, err := Reshape(original, placeholders, NAMED_COLON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	back, err := Reshape(asMap, placeholders, QMARK)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(back, original) {
		t.Errorf("round trip = %#v, want %#v", back, original)
	}
}

func TestShapeForMatchesTargetShapeRule(t *testing.T) {
	cases := map[ParameterStyle]TargetShape{
		QMARK: ShapeSequence, NUMERIC: ShapeSequence, POSITIONAL_COLON: ShapeSequence, POSITIONAL_PYFORMAT: ShapeSequence,
		NAMED_COLON: ShapeMap, NAMED_AT: ShapeMap, NAMED_DOLLAR: ShapeMap, NAMED_PYFORMAT: ShapeMap,
		STATIC: ShapeNone,
	}
	for style, want := range cases {
		if got := ShapeFor(style); got != want {
			t.Errorf("ShapeFor(%s) = %v, want %v", style, got, want)
		}
	}
}

func TestMergeParametersSequencePlusArgs(t *testing.T) {
	merged := MergeParameters([]any{1, 2}, []any{3}, nil)
	if !reflect.DeepEqual(merged, []any{1, 2, 3}) {
		t.Errorf("merged = %#v", merged)
	}
}

func TestMergeParametersKwargsWin(t *testing.T) {
	merged := MergeParameters(map[string]any{"a": 1, "b": 2}, nil, map[string]any{"b": 3})
	m, ok := merged.(map[string]any)
	if !ok {
		t.Fatalf("merged = %T, want map", merged)
	}
	if m["a"] != 1 || m["b"] != 3 {
		t.Errorf("merged = %#v, kwargs should override", m)
	}
}

func TestMergeParametersPositionalIntoKeyedGetsParamKeys(t *testing.T) {
	merged := MergeParameters([]any{1}, []any{2}, map[string]any{"name": "x"})
	m, ok := merged.(map[string]any)
	if !ok {
		t.Fatalf("merged = %T, want map", merged)
	}
	if m["param_0"] != 1 || m["param_1"] != 2 || m["name"] != "x" {
		t.Errorf("merged = %#v", m)
	}
}

func TestMergeParametersAllEmptyStaysNil(t *testing.T) {
	if merged := MergeParameters(nil, nil, nil); merged != nil {
		t.Errorf("merged = %#v, want nil", merged)
	}
}
