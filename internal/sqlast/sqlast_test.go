package sqlast

import "testing"

func TestParseClassifiesSelect(t *testing.T) {
	st, err := Parse("SELECT id, name FROM users WHERE id = 1", "postgres")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.Kind != KindSelect {
		t.Errorf("Kind = %v, want KindSelect", st.Kind)
	}
	if !st.HasWhere {
		t.Error("HasWhere = false, want true")
	}
	if !st.ReturnsRows {
		t.Error("ReturnsRows = false, want true for a SELECT")
	}
	if len(st.Tables) != 1 || st.Tables[0] != "users" {
		t.Errorf("Tables = %v, want [users]", st.Tables)
	}
}

func TestParseClassifiesInsertUpdateDelete(t *testing.T) {
	cases := []struct {
		sql  string
		kind NodeKind
	}{
		{"INSERT INTO orders (a) VALUES (1)", KindInsert},
		{"UPDATE orders SET a = 1", KindUpdate},
		{"DELETE FROM orders", KindDelete},
	}
	for _, c := range cases {
		st, err := Parse(c.sql, "postgres")
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", c.sql, err)
		}
		if st.Kind != c.kind {
			t.Errorf("Parse(%q).Kind = %v, want %v", c.sql, st.Kind, c.kind)
		}
	}
}

func TestParseUpdateDeleteWithoutWhereDoNotReturnRows(t *testing.T) {
	st, err := Parse("DELETE FROM orders", "postgres")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.HasWhere {
		t.Error("HasWhere = true, want false")
	}
	if st.ReturnsRows {
		t.Error("a DELETE should not report ReturnsRows")
	}
}

func TestParseReturningMarksReturnsRows(t *testing.T) {
	st, err := Parse("INSERT INTO orders (a) VALUES (1) RETURNING id", "postgres")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !st.HasReturning {
		t.Error("HasReturning = false, want true")
	}
	if !st.ReturnsRows {
		t.Error("a RETURNING clause should make ReturnsRows true even for an INSERT")
	}
}

func TestParseDetectsJoins(t *testing.T) {
	st, err := Parse("SELECT * FROM a INNER JOIN b ON a.id = b.id LEFT JOIN c ON b.id = c.id", "postgres")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(st.Joins) != 2 || st.Joins[0] != "INNER JOIN" || st.Joins[1] != "LEFT JOIN" {
		t.Errorf("Joins = %v, want [INNER JOIN LEFT JOIN]", st.Joins)
	}
}

func TestParseUnionSetsKind(t *testing.T) {
	st, err := Parse("SELECT a FROM t1 UNION SELECT a FROM t2", "postgres")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.Kind != KindUnion {
		t.Errorf("Kind = %v, want KindUnion", st.Kind)
	}
	if !st.ReturnsRows {
		t.Error("a UNION should return rows")
	}
}

func TestParseCollectsLiterals(t *testing.T) {
	st, err := Parse("SELECT * FROM t WHERE name = 'Ann' AND age = 30", "postgres")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(st.Literals) != 2 {
		t.Fatalf("Literals = %v, want 2 entries", st.Literals)
	}
	if !st.Literals[0].IsString || st.Literals[0].Text != "'Ann'" {
		t.Errorf("Literals[0] = %+v", st.Literals[0])
	}
	if !st.Literals[1].IsNumber || st.Literals[1].Text != "30" {
		t.Errorf("Literals[1] = %+v", st.Literals[1])
	}
}

func TestParseAnonymousStatementFallsBackGracefully(t *testing.T) {
	st, err := Parse("BEGIN", "postgres")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.Kind != KindAnonymous {
		t.Errorf("Kind = %v, want KindAnonymous", st.Kind)
	}
	if st.ReturnsRows {
		t.Error("an anonymous non-row-returning keyword should not set ReturnsRows")
	}
}

func TestParseEmptyInputIsAParseError(t *testing.T) {
	_, err := Parse("", "postgres")
	if err == nil {
		t.Fatal("expected a ParseError for empty input")
	}
	if _, ok := err.(*ParseError); !ok {
		t.Errorf("got %T, want *ParseError", err)
	}
}

func TestParseCommentOnlyInputIsAParseError(t *testing.T) {
	_, err := Parse("-- just a comment\n", "postgres")
	if err == nil {
		t.Fatal("expected a ParseError for comment-only input")
	}
}

func TestParseSkipsLiteralStarToken(t *testing.T) {
	st, err := Parse("SELECT * FROM t", "postgres")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, col := range st.Columns {
		if col == "*" {
			t.Error("Columns should never contain the literal \"*\" token")
		}
	}
}
