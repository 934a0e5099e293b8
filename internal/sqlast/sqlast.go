// Package sqlast is the hand-rolled statement oracle the Processor
// consults for statement classification and literal/NULL-site
// discovery. It is deliberately not backed by a third-party SQL
// parser: see the repository's DESIGN.md for the trade-offs behind
// that choice.
//
// The oracle does not build a full expression tree. It tokenizes once
// and classifies the statement well enough to answer the questions the
// Processor actually asks: operation kind, referenced tables/columns,
// joins, whether the statement returns rows, and the byte ranges of
// literals that a caller may want to parameterize. This mirrors the
// Lexer's approach of trading a complete grammar for a single
// predictable scan.
package sqlast

import "strings"

// NodeKind names the statement-level shape recognized by Parse.
type NodeKind string

const (
	KindSelect    NodeKind = "Select"
	KindInsert    NodeKind = "Insert"
	KindUpdate    NodeKind = "Update"
	KindDelete    NodeKind = "Delete"
	KindCopy      NodeKind = "Copy"
	KindUnion     NodeKind = "Union"
	KindShow      NodeKind = "Show"
	KindDescribe  NodeKind = "Describe"
	KindPragma    NodeKind = "Pragma"
	KindWith      NodeKind = "With"
	KindAnonymous NodeKind = "Anonymous"
	KindCommand   NodeKind = "Command"
)

// LiteralRef is a literal value found in the statement, with its byte
// range in the original SQL text so a caller can splice a placeholder
// in its place.
type LiteralRef struct {
	Position int
	Length   int
	Text     string // exact source text, including quotes for strings
	IsString bool
	IsNumber bool
}

// Statement is the result of Parse: enough structure to classify the
// statement, drive the safety scan and metadata extraction, and locate
// literal-parameterization sites.
type Statement struct {
	Kind NodeKind

	// Tables is the distinct set of table references, in first-seen
	// order.
	Tables []string

	// Columns, for a SELECT, is the distinct set of identifier tokens
	// (excluding "*"), in first-seen order. Column names are not told
	// apart from table names and aliases, so table identifiers appear here
	// too; for other statement kinds it is empty.
	Columns []string

	// Joins lists the join keywords encountered, e.g. "INNER JOIN".
	Joins []string

	// HasReturning is true when the statement carries a RETURNING
	// clause.
	HasReturning bool

	// ReturnsRows is true when executing the statement produces a row
	// set (SELECT, RETURNING, SHOW/DESCRIBE/PRAGMA, row-returning CTEs).
	ReturnsRows bool

	// Literals are the literal value sites eligible for parameterization
	// under E1. String and number tokens inside a SELECT list, operands
	// of LIMIT/OFFSET/FETCH, and the digits of a $N or :N placeholder are
	// excluded.
	Literals []LiteralRef

	// HasWhere is used by the safety scan (E5) to flag UPDATE/DELETE
	// with no WHERE clause.
	HasWhere bool

	// FirstKeyword is the statement's leading keyword, upper-cased, for
	// anonymous-statement classification.
	FirstKeyword string
}

// ParseError is returned by Parse when the input cannot be classified
// at all (e.g. empty or all-comment input). Callers degrade to the
// text-only pipeline on any parse failure rather than treating this as
// fatal.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string { return "sqlast: " + e.Reason }

// dmlKeywords maps a leading keyword to its NodeKind.
var dmlKeywords = map[string]NodeKind{
	"SELECT":   KindSelect,
	"INSERT":   KindInsert,
	"UPDATE":   KindUpdate,
	"DELETE":   KindDelete,
	"COPY":     KindCopy,
	"SHOW":     KindShow,
	"DESCRIBE": KindDescribe,
	"EXPLAIN":  KindDescribe,
	"PRAGMA":   KindPragma,
	"WITH":     KindWith,
	"VALUES":   KindSelect,
}

// rowReturningAnonymousKeywords classifies anonymous statements whose
// leading keyword still produces rows.
var rowReturningAnonymousKeywords = map[string]struct{}{
	"SELECT": {}, "SHOW": {}, "DESCRIBE": {}, "EXPLAIN": {},
	"PRAGMA": {}, "WITH": {}, "VALUES": {},
}

var joinKeywordSequences = []string{
	"FULL OUTER JOIN", "LEFT OUTER JOIN", "RIGHT OUTER JOIN",
	"FULL JOIN", "LEFT JOIN", "RIGHT JOIN", "INNER JOIN", "CROSS JOIN", "JOIN",
}

// Parse classifies sql under dialect and extracts the metadata the
// Processor's AST steps need. The dialect argument does not change the
// result: every dialect is tokenized and classified the same way, and
// COPY is recognized regardless of dialect.
func Parse(sql string, dialect string) (*Statement, error) {
	toks := tokenize(sql)
	if len(toks) == 0 {
		return nil, &ParseError{Reason: "empty statement"}
	}

	st := &Statement{}
	st.FirstKeyword = strings.ToUpper(toks[0].text)
	if kind, ok := dmlKeywords[st.FirstKeyword]; ok {
		st.Kind = kind
	} else {
		st.Kind = KindAnonymous
	}

	seenTables := map[string]struct{}{}
	seenCols := map[string]struct{}{}

	// inSelectList and lastRowLimitKeyword gate literal collection: the
	// parameterization pass must not touch SELECT-list projections or
	// LIMIT/OFFSET/FETCH operands.
	inSelectList := st.Kind == KindSelect
	lastRowLimitKeyword := false

	for i := 0; i < len(toks); i++ {
		t := toks[i]
		upper := strings.ToUpper(t.text)

		switch upper {
		case "RETURNING":
			st.HasReturning = true
		case "WHERE":
			st.HasWhere = true
		case "UNION":
			st.Kind = KindUnion
		}

		if t.kind == tokKeyword {
			switch upper {
			case "SELECT":
				inSelectList = true
			case "FROM":
				inSelectList = false
			}
			lastRowLimitKeyword = upper == "LIMIT" || upper == "OFFSET" || upper == "FETCH"
		}

		if t.kind == tokKeyword && (upper == "FROM" || upper == "INTO" || upper == "UPDATE" || upper == "JOIN" || upper == "TABLE") {
			if name, ok := nextIdent(toks, i); ok {
				if _, dup := seenTables[name]; !dup {
					seenTables[name] = struct{}{}
					st.Tables = append(st.Tables, name)
				}
			}
		}

		if t.kind == tokIdent && st.Kind == KindSelect && t.text != "*" {
			name := t.text
			if _, dup := seenCols[name]; !dup {
				seenCols[name] = struct{}{}
				st.Columns = append(st.Columns, name)
			}
		}

		if (t.kind == tokString || t.kind == tokNumber) &&
			!inSelectList && !lastRowLimitKeyword && !partOfPlaceholder(toks, i) {
			st.Literals = append(st.Literals, LiteralRef{
				Position: t.pos,
				Length:   len(t.text),
				Text:     t.text,
				IsString: t.kind == tokString,
				IsNumber: t.kind == tokNumber,
			})
		}
	}

	st.Joins = findJoins(sql)

	if _, ok := rowReturningAnonymousKeywords[st.FirstKeyword]; st.Kind == KindSelect || st.Kind == KindUnion || st.Kind == KindWith ||
		st.Kind == KindShow || st.Kind == KindDescribe || st.Kind == KindPragma ||
		(st.Kind == KindAnonymous && ok) || st.HasReturning {
		st.ReturnsRows = true
	}

	return st, nil
}

func findJoins(sql string) []string {
	upper := strings.ToUpper(sql)
	var joins []string
	pos := 0
	for pos < len(upper) {
		matched := ""
		matchLen := 0
		for _, kw := range joinKeywordSequences {
			idx := strings.Index(upper[pos:], kw)
			if idx == 0 {
				matched = kw
				matchLen = len(kw)
				break
			}
		}
		if matched != "" {
			joins = append(joins, matched)
			pos += matchLen
			continue
		}
		pos++
	}
	return joins
}

// partOfPlaceholder reports whether the number token at i is really the
// tail of a positional placeholder ($1 or :1), whose sigil the
// tokenizer emitted as an adjacent punct token.
func partOfPlaceholder(toks []token, i int) bool {
	if i == 0 || toks[i].kind != tokNumber {
		return false
	}
	prev := toks[i-1]
	if prev.kind != tokPunct || (prev.text != "$" && prev.text != ":") {
		return false
	}
	return prev.pos+len(prev.text) == toks[i].pos
}

func nextIdent(toks []token, from int) (string, bool) {
	for i := from + 1; i < len(toks); i++ {
		if toks[i].kind == tokIdent {
			return toks[i].text, true
		}
		if toks[i].kind == tokKeyword {
			return "", false
		}
	}
	return "", false
}
