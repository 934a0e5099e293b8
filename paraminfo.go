package sqlnorm

import "sort"

// ParameterInfo describes one placeholder found in SQL text by the
// Lexer. It is immutable; callers must not mutate a
// ParameterInfo returned from Lex.
type ParameterInfo struct {
	// Name is the identifier for named styles, the digit string for
	// positional-numeric styles (NUMERIC, POSITIONAL_COLON), and empty
	// for QMARK/POSITIONAL_PYFORMAT.
	Name string

	// Style is the placeholder syntax this occurrence was written in.
	Style ParameterStyle

	// Position is the byte offset of the placeholder's first character
	// in the source SQL.
	Position int

	// Ordinal is this placeholder's zero-based index into the ordered
	// list the Lexer produced.
	Ordinal int

	// PlaceholderText is the exact substring that a rewrite will
	// replace.
	PlaceholderText string
}

// Equal reports whether two ParameterInfo values describe the same
// placeholder: (Name, Style, Position) match. Ordinal and
// PlaceholderText are derived and excluded deliberately.
func (p ParameterInfo) Equal(other ParameterInfo) bool {
	return p.Name == other.Name && p.Style == other.Style && p.Position == other.Position
}

// ParameterInfoList is an ordered, append-only placeholder list as
// produced by Lex. Its zero value is an empty list.
type ParameterInfoList []ParameterInfo

// Equal reports whether two lists contain the same placeholders in the
// same order.
func (l ParameterInfoList) Equal(other ParameterInfoList) bool {
	if len(l) != len(other) {
		return false
	}
	for i := range l {
		if !l[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

// Styles returns the distinct set of placeholder styles present in the
// list.
func (l ParameterInfoList) Styles() map[ParameterStyle]struct{} {
	set := make(map[ParameterStyle]struct{}, 4)
	for _, p := range l {
		set[p.Style] = struct{}{}
	}
	return set
}

// DominantStyle picks "the" style of a possibly mixed list: the style
// with the highest occurrence count wins; count ties are broken by the
// fixed precedence order (NAMED_PYFORMAT > NAMED_COLON > NAMED_DOLLAR >
// NAMED_AT > POSITIONAL_PYFORMAT > POSITIONAL_COLON > NUMERIC > QMARK).
// Returns NONE for an empty list.
func (l ParameterInfoList) DominantStyle() ParameterStyle {
	if len(l) == 0 {
		return NONE
	}

	counts := make(map[ParameterStyle]int, 4)
	for _, p := range l {
		counts[p.Style]++
	}

	styles := make([]ParameterStyle, 0, len(counts))
	for s := range counts {
		styles = append(styles, s)
	}
	sort.Slice(styles, func(i, j int) bool {
		if counts[styles[i]] != counts[styles[j]] {
			return counts[styles[i]] > counts[styles[j]]
		}
		return styles[i].precedence() > styles[j].precedence()
	})

	return styles[0]
}

// NeedsConversion reports whether a rewrite to target is required:
// true when target is not already the sole style present, with
// the one documented exception that POSITIONAL_COLON input is accepted
// as-is when the target is NAMED_COLON (Oracle accepts both under one
// driver identity).
func (l ParameterInfoList) NeedsConversion(target ParameterStyle) bool {
	if len(l) == 0 {
		return false
	}

	for s := range l.Styles() {
		if s == target {
			continue
		}
		if target == NAMED_COLON && s == POSITIONAL_COLON {
			continue
		}
		return true
	}
	return false
}
