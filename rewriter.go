package sqlnorm

import (
	"strconv"
	"strings"
)

// Rewrite copies sql into a new string, replacing each placeholder in
// placeholders at its recorded position with a newly generated
// placeholder for targetStyle. Non-placeholder characters,
// including comments and string literals, are byte-identical to the
// input.
//
// placeholders must be the list Lex produced for sql (or an
// equivalent); Rewrite trusts Position/PlaceholderText without
// re-validating against sql.
func Rewrite(sql string, placeholders ParameterInfoList, targetStyle ParameterStyle) string {
	if len(placeholders) == 0 {
		return sql
	}

	var b strings.Builder
	b.Grow(len(sql))

	pos := 0
	for i, p := range placeholders {
		b.WriteString(sql[pos:p.Position])
		b.WriteString(generatePlaceholder(i, p, targetStyle))
		pos = p.Position + len(p.PlaceholderText)
	}
	b.WriteString(sql[pos:])

	return b.String()
}

// generatePlaceholder renders the placeholder spelling for one target
// style. i is the zero-based ordinal of this placeholder in
// the *output* sequence (equal to its index in placeholders, since
// rewriting preserves ordering).
func generatePlaceholder(i int, original ParameterInfo, targetStyle ParameterStyle) string {
	switch targetStyle {
	case QMARK:
		return "?"
	case NUMERIC:
		return "$" + strconv.Itoa(i+1)
	case POSITIONAL_PYFORMAT:
		return "%s"
	case POSITIONAL_COLON:
		return ":" + strconv.Itoa(i+1)
	case NAMED_COLON:
		return ":" + placeholderName(i, original)
	case NAMED_PYFORMAT:
		return "%(" + placeholderName(i, original) + ")s"
	case NAMED_AT:
		return "@" + placeholderName(i, original)
	case NAMED_DOLLAR:
		return "$" + placeholderName(i, original)
	default:
		return original.PlaceholderText
	}
}

// placeholderName picks the name used when generating a named
// placeholder: the original name when the source placeholder was
// already named, otherwise the synthetic "param_{i}".
func placeholderName(i int, original ParameterInfo) string {
	if original.Name != "" && !original.Style.Positional() {
		return original.Name
	}
	return "param_" + strconv.Itoa(i)
}
