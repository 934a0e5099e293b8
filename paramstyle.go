package sqlnorm

// ParameterStyle identifies one of the SQL placeholder syntaxes sqlnorm
// understands, plus the two sentinel styles NONE and STATIC.
//
// The string values are stable and safe to persist (e.g. as part of a
// cache key or in diagnostic output).
type ParameterStyle string

const (
	// QMARK is the `?` placeholder used by database/sql drivers such as
	// SQLite and MySQL.
	QMARK ParameterStyle = "qmark"

	// NUMERIC is the `$1`, `$2`, ... placeholder used by PostgreSQL's
	// wire protocol.
	NUMERIC ParameterStyle = "numeric"

	// POSITIONAL_COLON is the `:1`, `:2`, ... placeholder used by Oracle.
	POSITIONAL_COLON ParameterStyle = "positional_colon"

	// POSITIONAL_PYFORMAT is the `%s` placeholder used by psycopg-style
	// and MySQL pyformat bindings.
	POSITIONAL_PYFORMAT ParameterStyle = "pyformat_positional"

	// NAMED_COLON is the `:name` placeholder used by Oracle and SQLite.
	NAMED_COLON ParameterStyle = "named_colon"

	// NAMED_AT is the `@name` placeholder used by BigQuery and SQL Server.
	NAMED_AT ParameterStyle = "named_at"

	// NAMED_DOLLAR is the `$name` placeholder used by YDB/YQL and a few
	// other engines that also use `$1`-style NUMERIC; the lexer tells
	// them apart by checking whether the identifier is all digits.
	NAMED_DOLLAR ParameterStyle = "named_dollar"

	// NAMED_PYFORMAT is the `%(name)s` placeholder used by psycopg and
	// MySQL's pyformat binding.
	NAMED_PYFORMAT ParameterStyle = "pyformat_named"

	// NONE means the SQL text carries no placeholders at all.
	NONE ParameterStyle = "none"

	// STATIC means parameters are to be inlined into the SQL text as
	// literals rather than bound; compile() with this target style
	// returns a nil parameter container.
	STATIC ParameterStyle = "static"
)

// Positional reports whether style identifies placeholders by position
// (QMARK, NUMERIC, POSITIONAL_COLON, POSITIONAL_PYFORMAT) rather than by
// name.
func (s ParameterStyle) Positional() bool {
	switch s {
	case QMARK, NUMERIC, POSITIONAL_COLON, POSITIONAL_PYFORMAT:
		return true
	default:
		return false
	}
}

// Named reports whether style resolves parameters by name, which also
// determines the target container shape a Reshape call must produce.
func (s ParameterStyle) Named() bool {
	switch s {
	case NAMED_COLON, NAMED_AT, NAMED_DOLLAR, NAMED_PYFORMAT:
		return true
	default:
		return false
	}
}

// stylePrecedence is the dominant-style precedence order: higher
// values win count ties when detecting "the" style of SQL text that
// mixes placeholder syntaxes.
var stylePrecedence = map[ParameterStyle]int{
	NAMED_PYFORMAT:      8,
	NAMED_COLON:         7,
	NAMED_DOLLAR:        6,
	NAMED_AT:            5,
	POSITIONAL_PYFORMAT: 4,
	POSITIONAL_COLON:    3,
	NUMERIC:             2,
	QMARK:               1,
}

// precedence returns the tie-break rank for s; styles outside the
// precedence table (NONE, STATIC) sort last.
func (s ParameterStyle) precedence() int {
	return stylePrecedence[s]
}
