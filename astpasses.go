package sqlnorm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/honeynil/sqlnorm/internal/sqlast"
)

// resolveParamValue looks up the value bound to placeholder ph in
// params, regardless of container shape. Used by the AST passes (E3,
// static embedding) that need the value a placeholder resolves to
// without fully reshaping the container first.
func resolveParamValue(params any, ph ParameterInfo) (any, bool) {
	switch p := params.(type) {
	case nil:
		return nil, false
	case map[string]any:
		insertionOrder := mapKeysInInsertionOrder(p)
		return resolveFromMap(p, ph, insertionOrder)
	case []any:
		if ph.Ordinal < len(p) {
			return p[ph.Ordinal], true
		}
		return nil, false
	default:
		if ph.Ordinal == 0 {
			return params, true
		}
		return nil, false
	}
}

// elideNullParameters replaces each null-valued placeholder with a
// literal NULL, drops it from the parameter container, and renumbers
// the remaining positional placeholders so the sequence stays
// contiguous.
func elideNullParameters(sql string, placeholders ParameterInfoList, params any, metadata map[string]any) (string, ParameterInfoList, any) {
	var nullOrdinals []int

	for _, ph := range placeholders {
		v, ok := resolveParamValue(params, ph)
		if ok && v == nil {
			nullOrdinals = append(nullOrdinals, ph.Ordinal)
		}
	}

	if len(nullOrdinals) == 0 {
		return sql, placeholders, params
	}

	nullSet := make(map[int]struct{}, len(nullOrdinals))
	for _, o := range nullOrdinals {
		nullSet[o] = struct{}{}
	}

	var b strings.Builder
	b.Grow(len(sql))
	pos := 0
	kept := 0
	for _, ph := range placeholders {
		b.WriteString(sql[pos:ph.Position])
		if _, isNull := nullSet[ph.Ordinal]; isNull {
			b.WriteString("NULL")
		} else {
			kept++
			switch ph.Style {
			case NUMERIC:
				b.WriteString("$" + strconv.Itoa(kept))
			case POSITIONAL_COLON:
				b.WriteString(":" + strconv.Itoa(kept))
			default:
				b.WriteString(ph.PlaceholderText)
			}
		}
		pos = ph.Position + len(ph.PlaceholderText)
	}
	b.WriteString(sql[pos:])

	// Re-lex rather than hand-derive positions: splicing "NULL" in place
	// of a placeholder changes the byte length unless the placeholder
	// happened to already be 4 characters, shifting every later offset.
	rewritten := b.String()
	renumbered := Lex(rewritten)

	newParams := dropOrdinals(params, nullSet)

	metadata["null_elided_ordinals"] = nullOrdinals
	return rewritten, renumbered, newParams
}

func dropOrdinals(params any, drop map[int]struct{}) any {
	switch p := params.(type) {
	case []any:
		out := make([]any, 0, len(p))
		for i, v := range p {
			if _, ok := drop[i]; ok {
				continue
			}
			out = append(out, v)
		}
		return out
	case map[string]any:
		// Names are not ordinal-addressed; nothing to drop positionally.
		return p
	default:
		return params
	}
}

// SafetyScanConfig controls which safety-scan findings are promoted
// from warnings to fatal issues. The zero value keeps every finding a
// warning.
type SafetyScanConfig struct {
	// StrictKeywords lists upper-case substrings (e.g. "TRUNCATE",
	// "XP_CMDSHELL") whose findings are reported as issues instead of
	// warnings.
	StrictKeywords []string

	// StrictOnMissingWhere promotes "UPDATE/DELETE with no WHERE" to an
	// issue.
	StrictOnMissingWhere bool
}

func (c SafetyScanConfig) strictFor(keyword string) bool {
	for _, k := range c.StrictKeywords {
		if strings.EqualFold(k, keyword) {
			return true
		}
	}
	return false
}

// safetyScan reports warnings about suspicious SQL shapes, with
// specific classes promoted to fatal issues when the config asks for
// strictness.
func safetyScan(stmt *sqlast.Statement, sql string, cfg SafetyScanConfig) (warnings, issues []string) {
	upper := strings.ToUpper(sql)

	report := func(keyword, msg string, strict bool) {
		if strict || cfg.strictFor(keyword) {
			issues = append(issues, msg)
		} else {
			warnings = append(warnings, msg)
		}
	}

	for _, fn := range []string{"SLEEP(", "BENCHMARK(", "LOAD_FILE(", "XP_CMDSHELL"} {
		if strings.Contains(upper, fn) {
			name := strings.TrimSuffix(fn, "(")
			report(name, fmt.Sprintf("suspicious function call: %s", name), false)
		}
	}

	if strings.Contains(sql, "'x' = 'x'") || strings.Contains(upper, "1=1") || strings.Contains(upper, "1 = 1") {
		report("TAUTOLOGY", "tautological condition", false)
	}

	if strings.Contains(upper, "UNION") && strings.Count(upper, "NULL") >= 4 {
		report("UNION", "union with four or more null columns", false)
	}

	if (stmt.Kind == sqlast.KindUpdate || stmt.Kind == sqlast.KindDelete) && !stmt.HasWhere {
		report("WHERE", fmt.Sprintf("%s with no WHERE clause", operationType(stmt)), cfg.StrictOnMissingWhere)
	}

	if strings.Contains(upper, "TRUNCATE") {
		report("TRUNCATE", "TRUNCATE statement", false)
	}

	return warnings, issues
}

// expandInLists rewrites a placeholder bound
// to a list value into `?, ?, ...` of matching
// cardinality, flattening the list into the parameter container. The
// run is wrapped in parentheses only when the placeholder is not already
// enclosed by them, so `IN (?)` becomes `IN (?, ?, ?)`. An empty list
// becomes `NULL` with no added parameters; when no values remain at all
// the returned container is nil.
func expandInLists(sql string, placeholders ParameterInfoList, params any) (string, ParameterInfoList, any) {
	type expansion struct {
		ph     ParameterInfo
		values []any
	}

	var expansions []expansion
	for _, ph := range placeholders {
		v, ok := resolveParamValue(params, ph)
		if !ok {
			continue
		}
		if seq, isSeq := v.([]any); isSeq {
			expansions = append(expansions, expansion{ph: ph, values: seq})
		}
	}

	if len(expansions) == 0 {
		return sql, placeholders, params
	}

	byOrdinal := make(map[int][]any, len(expansions))
	for _, e := range expansions {
		byOrdinal[e.ph.Ordinal] = e.values
	}

	var b strings.Builder
	b.Grow(len(sql))
	pos := 0
	var flatValues []any

	for _, ph := range placeholders {
		b.WriteString(sql[pos:ph.Position])
		if vals, ok := byOrdinal[ph.Ordinal]; ok {
			before := strings.TrimRight(sql[:ph.Position], " \t\r\n")
			after := strings.TrimLeft(sql[ph.Position+len(ph.PlaceholderText):], " \t\r\n")
			open, closing := "(", ")"
			if strings.HasSuffix(before, "(") && strings.HasPrefix(after, ")") {
				open, closing = "", ""
			}
			if len(vals) == 0 {
				b.WriteString(open + "NULL" + closing)
			} else {
				b.WriteString(open)
				for i, v := range vals {
					if i > 0 {
						b.WriteString(", ")
					}
					b.WriteString(ph.Style.literalPlaceholder())
					flatValues = append(flatValues, v)
				}
				b.WriteString(closing)
			}
		} else {
			b.WriteString(ph.PlaceholderText)
			if v, ok := resolveParamValue(params, ph); ok {
				flatValues = append(flatValues, v)
			}
		}
		pos = ph.Position + len(ph.PlaceholderText)
	}
	b.WriteString(sql[pos:])

	// Re-lex rather than hand-derive positions: splicing "(?, ?, ...)"
	// in place of a single placeholder shifts every later offset, so the
	// old ParameterInfo.Position values no longer describe the rewritten
	// string.
	rewritten := b.String()
	if len(flatValues) == 0 {
		return rewritten, Lex(rewritten), nil
	}
	return rewritten, Lex(rewritten), flatValues
}

// literalPlaceholder returns the placeholder spelling used when
// synthesizing repeated placeholders for IN-list expansion: "%s" for
// POSITIONAL_PYFORMAT and "?" for every other style.
func (s ParameterStyle) literalPlaceholder() string {
	switch s {
	case QMARK:
		return "?"
	case POSITIONAL_PYFORMAT:
		return "%s"
	default:
		return "?"
	}
}

// parameterizeLiterals replaces each eligible literal in the statement
// with a fresh named placeholder ":param_{k}", wrapping the literal's
// runtime value through Wrap and collecting the values in a keyed map.
// The pass only runs when the caller supplied no parameters of their
// own; rerunning it on its own
// output is a no-op because the spliced placeholders are no longer
// literal tokens.
func parameterizeLiterals(sql string, stmt *sqlast.Statement, params any, metadata map[string]any) (string, ParameterInfoList, any) {
	if !parametersEmpty(params) || len(stmt.Literals) == 0 {
		return sql, Lex(sql), params
	}

	var b strings.Builder
	b.Grow(len(sql))
	out := make(map[string]any, len(stmt.Literals))
	pos := 0
	for k, lit := range stmt.Literals {
		name := "param_" + strconv.Itoa(k)
		b.WriteString(sql[pos:lit.Position])
		b.WriteString(":" + name)
		pos = lit.Position + lit.Length

		value := literalValue(lit)
		if wrapped, ok := Wrap(value, name); ok {
			out[name] = wrapped
		} else {
			out[name] = value
		}
	}
	b.WriteString(sql[pos:])

	rewritten := b.String()
	metadata["parameterized_literal_count"] = len(stmt.Literals)
	return rewritten, Lex(rewritten), out
}

func parametersEmpty(params any) bool {
	switch p := params.(type) {
	case nil:
		return true
	case []any:
		return len(p) == 0
	case map[string]any:
		return len(p) == 0
	default:
		return false
	}
}

// literalValue converts a LiteralRef's source text to its runtime
// value: strings are unquoted with doubled-quote unescaping, integers
// parse to int64, everything else numeric to float64.
func literalValue(lit sqlast.LiteralRef) any {
	if lit.IsString {
		inner := strings.TrimSuffix(strings.TrimPrefix(lit.Text, "'"), "'")
		return strings.ReplaceAll(inner, "''", "'")
	}
	if n, err := strconv.ParseInt(lit.Text, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(lit.Text, 64); err == nil {
		return f
	}
	return lit.Text
}

// extractCopyData handles COPY ... FROM STDIN
// and COPY ... TO STDOUT: the single positional parameter carries the
// copy payload, which moves into metadata so the driver adapter can
// stream it separately. The statement text itself is preserved.
func extractCopyData(sql string, params any, metadata map[string]any) any {
	metadata["copy_operation"] = true

	upper := strings.ToUpper(sql)
	if !strings.Contains(upper, "STDIN") && !strings.Contains(upper, "STDOUT") {
		return params
	}

	if seq, ok := params.([]any); ok && len(seq) == 1 {
		metadata["copy_data"] = seq[0]
		return nil
	}
	return params
}

// expandManyStatements serves engines with no native multi-row DML
// binds: render one statement per parameter set, joined by ";\n", and
// flatten the parameter sets to match.
// Positional-numeric placeholders ($N, :N) are renumbered across the
// script so the bind sequence stays contiguous; named placeholders get
// a per-set "__{set}" suffix so sets don't collide in the merged map.
func expandManyStatements(sql string, placeholders ParameterInfoList, paramSets []any, metadata map[string]any) (string, ParameterInfoList, any) {
	if len(paramSets) <= 1 {
		return sql, placeholders, flattenSingleSet(paramSets)
	}

	named := len(placeholders) > 0 && placeholders.DominantStyle().Named()

	var b strings.Builder
	var flatSeq []any
	flatMap := map[string]any{}
	offset := 0

	for setIdx, rawSet := range paramSets {
		if setIdx > 0 {
			b.WriteString(";\n")
		}

		pos := 0
		for _, ph := range placeholders {
			b.WriteString(sql[pos:ph.Position])
			b.WriteString(manyPlaceholderText(ph, offset, setIdx))
			pos = ph.Position + len(ph.PlaceholderText)
		}
		b.WriteString(sql[pos:])
		offset += len(placeholders)

		switch set := rawSet.(type) {
		case []any:
			flatSeq = append(flatSeq, set...)
		case map[string]any:
			for k, v := range set {
				flatMap[k+"__"+strconv.Itoa(setIdx)] = v
			}
		default:
			flatSeq = append(flatSeq, rawSet)
		}
	}

	script := b.String()
	metadata["is_many"] = true
	metadata["statement_count"] = len(paramSets)

	var merged any
	if named {
		merged = flatMap
	} else {
		merged = flatSeq
	}
	return script, Lex(script), merged
}

// manyPlaceholderText renders ph for one statement of an expanded
// script: renumbered for positional-numeric styles, suffixed for named
// styles, verbatim otherwise.
func manyPlaceholderText(ph ParameterInfo, ordinalOffset, setIdx int) string {
	switch ph.Style {
	case NUMERIC:
		return "$" + strconv.Itoa(ordinalOffset+ph.Ordinal+1)
	case POSITIONAL_COLON:
		return ":" + strconv.Itoa(ordinalOffset+ph.Ordinal+1)
	case NAMED_COLON:
		return ":" + ph.Name + "__" + strconv.Itoa(setIdx)
	case NAMED_AT:
		return "@" + ph.Name + "__" + strconv.Itoa(setIdx)
	case NAMED_DOLLAR:
		return "$" + ph.Name + "__" + strconv.Itoa(setIdx)
	case NAMED_PYFORMAT:
		return "%(" + ph.Name + "__" + strconv.Itoa(setIdx) + ")s"
	default:
		return ph.PlaceholderText
	}
}

func flattenSingleSet(paramSets []any) any {
	if len(paramSets) == 1 {
		return paramSets[0]
	}
	return nil
}

// coerceParameters unwraps each TypedParameter and, if the driver
// registered a coercion for its DataType, applies it.
func coerceParameters(params any, coercions map[DataType]TypeCoercion) any {
	if coercions == nil {
		return params
	}
	switch p := params.(type) {
	case []any:
		out := make([]any, len(p))
		for i, v := range p {
			out[i] = coerceOne(v, coercions)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(p))
		for k, v := range p {
			out[k] = coerceOne(v, coercions)
		}
		return out
	default:
		return coerceOne(params, coercions)
	}
}

func coerceOne(v any, coercions map[DataType]TypeCoercion) any {
	tp, ok := v.(TypedParameter)
	if !ok {
		return v
	}
	if fn, ok := coercions[tp.DataType]; ok {
		return fn(tp.Value)
	}
	return tp
}

// embedStaticLiterals splices each placeholder's literal SQL rendering
// directly into the text.
func embedStaticLiterals(sql string, placeholders ParameterInfoList, params any) (string, error) {
	if len(placeholders) == 0 {
		return sql, nil
	}

	var b strings.Builder
	b.Grow(len(sql))
	pos := 0
	for _, ph := range placeholders {
		v, _ := resolveParamValue(params, ph)
		lit, err := renderStaticLiteral(v)
		if err != nil {
			return "", newInvalidLiteralForStaticError(ph, err.Error())
		}
		if ph.Position >= 0 {
			b.WriteString(sql[pos:ph.Position])
			b.WriteString(lit)
			pos = ph.Position + len(ph.PlaceholderText)
		}
	}
	b.WriteString(sql[pos:])
	return b.String(), nil
}

// renderStaticLiteral renders a value as a SQL literal: NULL,
// TRUE/FALSE, a quoted string with standard escaping, or a numeric
// literal. Values with no safe rendering (raw bytes) are rejected with
// kind-InvalidLiteralForStatic.
func renderStaticLiteral(v any) (string, error) {
	if tp, ok := v.(TypedParameter); ok {
		v = tp.Value
	}

	switch val := v.(type) {
	case nil:
		return "NULL", nil
	case bool:
		if val {
			return "TRUE", nil
		}
		return "FALSE", nil
	case string:
		return "'" + strings.ReplaceAll(val, "'", "''") + "'", nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", val), nil
	case float32, float64:
		return fmt.Sprintf("%v", val), nil
	case []byte:
		return "", fmt.Errorf("raw byte values have no safe STATIC literal rendering")
	default:
		return "", fmt.Errorf("value of type %T has no safe STATIC literal rendering", v)
	}
}
