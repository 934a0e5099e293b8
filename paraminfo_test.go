package sqlnorm

import "testing"

func TestParameterInfoEqual(t *testing.T) {
	a := ParameterInfo{Name: "id", Style: NAMED_COLON, Position: 10, Ordinal: 0, PlaceholderText: ":id"}
	b := ParameterInfo{Name: "id", Style: NAMED_COLON, Position: 10, Ordinal: 5, PlaceholderText: ":different"}
	if !a.Equal(b) {
		t.Error("Equal should ignore Ordinal and PlaceholderText")
	}

	c := ParameterInfo{Name: "id", Style: NAMED_COLON, Position: 11}
	if a.Equal(c) {
		t.Error("Equal should compare Position")
	}
}

func TestDominantStyleCountWins(t *testing.T) {
	list := ParameterInfoList{
		{Style: QMARK, Ordinal: 0},
		{Style: QMARK, Ordinal: 1},
		{Style: NAMED_PYFORMAT, Ordinal: 2},
	}
	if got := list.DominantStyle(); got != QMARK {
		t.Errorf("DominantStyle() = %s, want %s (higher count)", got, QMARK)
	}
}

func TestDominantStylePrecedenceBreaksTie(t *testing.T) {
	list := ParameterInfoList{
		{Style: QMARK, Ordinal: 0},
		{Style: NAMED_AT, Ordinal: 1},
	}
	if got := list.DominantStyle(); got != NAMED_AT {
		t.Errorf("DominantStyle() = %s, want %s (precedence tiebreak)", got, NAMED_AT)
	}
}

func TestDominantStyleEmpty(t *testing.T) {
	var list ParameterInfoList
	if got := list.DominantStyle(); got != NONE {
		t.Errorf("DominantStyle() on empty list = %s, want %s", got, NONE)
	}
}

func TestNeedsConversion(t *testing.T) {
	list := ParameterInfoList{{Style: QMARK}}
	if !list.NeedsConversion(NUMERIC) {
		t.Error("NeedsConversion(NUMERIC) should be true for an all-QMARK list")
	}
	if list.NeedsConversion(QMARK) {
		t.Error("NeedsConversion(QMARK) should be false when QMARK is already the sole style")
	}
}

func TestNeedsConversionOraclePositionalColonException(t *testing.T) {
	list := ParameterInfoList{{Name: "1", Style: POSITIONAL_COLON}}
	if list.NeedsConversion(NAMED_COLON) {
		t.Error("POSITIONAL_COLON input should be accepted as-is when target is NAMED_COLON (Oracle)")
	}
}

func TestParameterInfoListEqual(t *testing.T) {
	a := ParameterInfoList{{Name: "x", Style: NAMED_AT, Position: 3}}
	b := ParameterInfoList{{Name: "x", Style: NAMED_AT, Position: 3}}
	if !a.Equal(b) {
		t.Error("identical lists should be Equal")
	}
	c := ParameterInfoList{{Name: "y", Style: NAMED_AT, Position: 3}}
	if a.Equal(c) {
		t.Error("lists differing by placeholder name should not be Equal")
	}
}
