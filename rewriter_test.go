package sqlnorm

import "testing"

func TestRewriteQmarkToNumeric(t *testing.T) {
	sql := "SELECT * FROM t WHERE a = ? AND b = ?"
	placeholders := Lex(sql)
	got := Rewrite(sql, placeholders, NUMERIC)
	want := "SELECT * FROM t WHERE a = $1 AND b = $2"
	if got != want {
		t.Errorf("Rewrite() = %q, want %q", got, want)
	}
}

func TestRewriteNamedToPositionalPyformat(t *testing.T) {
	sql := "UPDATE u SET e = :email WHERE id = :id"
	placeholders := Lex(sql)
	got := Rewrite(sql, placeholders, POSITIONAL_PYFORMAT)
	want := "UPDATE u SET e = %s WHERE id = %s"
	if got != want {
		t.Errorf("Rewrite() = %q, want %q", got, want)
	}
}

func TestRewritePreservesNonPlaceholderText(t *testing.T) {
	sql := "SELECT * FROM t -- comment with ? in it\nWHERE a = ?"
	placeholders := Lex(sql)
	got := Rewrite(sql, placeholders, NUMERIC)
	want := "SELECT * FROM t -- comment with ? in it\nWHERE a = $1"
	if got != want {
		t.Errorf("Rewrite() = %q, want %q", got, want)
	}
}

func TestRewriteStyleIdentity(t *testing.T) {
	sql := "SELECT * FROM t WHERE a = ? AND b = ?"
	placeholders := Lex(sql)
	got := Rewrite(sql, placeholders, QMARK)
	if got != sql {
		t.Errorf("rewriting to the style already present should be byte-identical: got %q, want %q", got, sql)
	}
}

func TestRewriteNamedColonUsesSyntheticNameForPositionalSource(t *testing.T) {
	sql := "SELECT * FROM t WHERE a = ? AND b = ?"
	placeholders := Lex(sql)
	got := Rewrite(sql, placeholders, NAMED_COLON)
	want := "SELECT * FROM t WHERE a = :param_0 AND b = :param_1"
	if got != want {
		t.Errorf("Rewrite() = %q, want %q", got, want)
	}
}

func TestRewriteNamedColonPreservesOriginalNames(t *testing.T) {
	sql := "SELECT * FROM t WHERE a = @user_id"
	placeholders := Lex(sql)
	got := Rewrite(sql, placeholders, NAMED_COLON)
	want := "SELECT * FROM t WHERE a = :user_id"
	if got != want {
		t.Errorf("Rewrite() = %q, want %q", got, want)
	}
}

func TestRewriteEmptyPlaceholderListReturnsInputUnchanged(t *testing.T) {
	sql := "SELECT 1"
	got := Rewrite(sql, nil, NUMERIC)
	if got != sql {
		t.Errorf("Rewrite() with no placeholders = %q, want %q", got, sql)
	}
}
