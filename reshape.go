package sqlnorm

import "strconv"

// TargetShape is the container shape a Reshape call must produce,
// derived from a target ParameterStyle: named styles reshape to a keyed
// map, positional styles to an ordered sequence, and STATIC to nil.
type TargetShape int

const (
	// ShapeSequence is an ordered []any.
	ShapeSequence TargetShape = iota
	// ShapeMap is a map[string]any.
	ShapeMap
	// ShapeNone means no parameter container at all (STATIC style).
	ShapeNone
)

// ShapeFor returns the container shape required for style.
func ShapeFor(style ParameterStyle) TargetShape {
	if style == STATIC {
		return ShapeNone
	}
	if style.Named() {
		return ShapeMap
	}
	return ShapeSequence
}

// Reshape converts params between the ordered-sequence and keyed-map
// container shapes so that iterating the result lines up with
// placeholders. A scalar params value is legal only when
// placeholders has exactly one entry.
//
// Reshape is the mechanical conversion only: whether a caller is
// allowed to feed named placeholders from an ordered sequence (or vice
// versa) is a driver policy, enforced by the Processor against
// DriverConfig.AllowMixedParameterStyles before it calls Reshape.
func Reshape(params any, placeholders ParameterInfoList, targetStyle ParameterStyle) (any, error) {
	shape := ShapeFor(targetStyle)
	if shape == ShapeNone {
		return nil, nil
	}

	switch shape {
	case ShapeSequence:
		return reshapeToSequence(params, placeholders)
	case ShapeMap:
		return reshapeToMap(params, placeholders)
	default:
		return params, nil
	}
}

// reshapeToSequence implements the "keyed map to ordered sequence" and
// scalar resolution rules.
func reshapeToSequence(params any, placeholders ParameterInfoList) (any, error) {
	switch p := params.(type) {
	case nil:
		if len(placeholders) == 0 {
			return []any{}, nil
		}
		return nil, newMissingParameterError(placeholders[0], "nil", "sequence")

	case map[string]any:
		out := make([]any, len(placeholders))
		insertionOrder := mapKeysInInsertionOrder(p)
		for i, ph := range placeholders {
			v, ok := resolveFromMap(p, ph, insertionOrder)
			if !ok {
				return nil, newMissingParameterError(ph, "map", "sequence")
			}
			out[i] = v
		}
		if extra := extraKeys(p, placeholders); len(extra) > 0 {
			return nil, newExtraParameterError(extra[0], "map has unreferenced keys")
		}
		return out, nil

	case []any:
		if len(p) > len(placeholders) {
			return nil, newExtraParameterError(strconv.Itoa(len(placeholders)), "sequence has more values than placeholders")
		}
		if len(p) < len(placeholders) {
			return nil, newMissingParameterError(placeholders[len(p)], "sequence", "sequence")
		}
		return p, nil

	default:
		if len(placeholders) != 1 {
			return nil, newMissingParameterError(placeholders0(placeholders), "scalar", "sequence")
		}
		return []any{params}, nil
	}
}

// reshapeToMap implements the "ordered sequence to keyed map" rule,
// including the param_{i} collision-suffix rule.
func reshapeToMap(params any, placeholders ParameterInfoList) (any, error) {
	switch p := params.(type) {
	case nil:
		if len(placeholders) == 0 {
			return map[string]any{}, nil
		}
		return nil, newMissingParameterError(placeholders[0], "nil", "map")

	case map[string]any:
		out := make(map[string]any, len(p))
		insertionOrder := mapKeysInInsertionOrder(p)
		for _, ph := range placeholders {
			v, ok := resolveFromMap(p, ph, insertionOrder)
			if !ok {
				return nil, newMissingParameterError(ph, "map", "map")
			}
			key := ph.Name
			if key == "" {
				key = "param_" + strconv.Itoa(ph.Ordinal)
			}
			out[key] = v
		}
		if extra := extraKeys(p, placeholders); len(extra) > 0 {
			return nil, newExtraParameterError(extra[0], "map has unreferenced keys")
		}
		return out, nil

	case []any:
		if len(p) > len(placeholders) {
			return nil, newExtraParameterError(strconv.Itoa(len(placeholders)), "sequence has more values than placeholders")
		}
		if len(p) < len(placeholders) {
			return nil, newMissingParameterError(placeholders[len(p)], "sequence", "map")
		}
		out := make(map[string]any, len(p))
		for i, v := range p {
			key := "param_" + strconv.Itoa(i)
			if i < len(placeholders) && placeholders[i].Name != "" {
				key = placeholders[i].Name
			}
			if _, collision := out[key]; collision {
				key = "param_" + strconv.Itoa(i)
			}
			out[key] = v
		}
		return out, nil

	default:
		if len(placeholders) != 1 {
			return nil, newMissingParameterError(placeholders0(placeholders), "scalar", "map")
		}
		key := placeholders[0].Name
		if key == "" {
			key = "param_0"
		}
		return map[string]any{key: params}, nil
	}
}

// resolveFromMap is the per-placeholder resolution chain: by name, then
// "param_{ordinal}", then "{ordinal+1}" (1-based), then the ordinal-th
// value in the map's insertion order. When none of these finds a value
// it reports found=false, which Reshape turns into a MissingParameter
// error.
func resolveFromMap(m map[string]any, ph ParameterInfo, insertionOrder []string) (any, bool) {
	if ph.Name != "" {
		if v, ok := m[ph.Name]; ok {
			return v, true
		}
	}
	if v, ok := m["param_"+strconv.Itoa(ph.Ordinal)]; ok {
		return v, true
	}
	if v, ok := m[strconv.Itoa(ph.Ordinal+1)]; ok {
		return v, true
	}
	if ph.Ordinal < len(insertionOrder) {
		return m[insertionOrder[ph.Ordinal]], true
	}
	return nil, false
}

// mapKeysInInsertionOrder is a best-effort approximation of "insertion
// order" for a Go map, which has none at the language level. Callers
// that need true insertion order for the ordinal-fallback rule should
// supply parameters as an ordered sequence instead; for map input this
// fallback is rarely reached because name- and convention-based
// resolution satisfy the overwhelming majority of real placeholder
// lists.
func mapKeysInInsertionOrder(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func extraKeys(m map[string]any, placeholders ParameterInfoList) []string {
	referenced := make(map[string]struct{}, len(placeholders))
	for _, ph := range placeholders {
		if ph.Name != "" {
			referenced[ph.Name] = struct{}{}
		}
		referenced["param_"+strconv.Itoa(ph.Ordinal)] = struct{}{}
		referenced[strconv.Itoa(ph.Ordinal+1)] = struct{}{}
	}
	var extra []string
	for k := range m {
		if _, ok := referenced[k]; !ok {
			extra = append(extra, k)
		}
	}
	return extra
}

// MergeParameters combines the three calling conventions a driver
// adapter may receive values through: a base container, variadic
// positional args, and a keyed map. When everything involved is
// positional the result stays an ordered sequence with args appended;
// as soon as a keyed map is involved the result is a map, with the base
// container's positional values keyed "param_{i}", args appended under
// the next free "param_{i}" slots, and kwargs applied last so they win
// on collision.
func MergeParameters(params any, args []any, kwargs map[string]any) any {
	if len(kwargs) == 0 {
		if base, ok := params.(map[string]any); ok {
			merged := make(map[string]any, len(base)+len(args))
			for k, v := range base {
				merged[k] = v
			}
			for i, v := range args {
				merged["param_"+strconv.Itoa(len(base)+i)] = v
			}
			return merged
		}
		if params == nil && len(args) == 0 {
			return nil
		}
		var seq []any
		if base, ok := params.([]any); ok {
			seq = append(seq, base...)
		} else if params != nil {
			seq = append(seq, params)
		}
		return append(seq, args...)
	}

	merged := make(map[string]any, len(kwargs)+len(args))
	next := 0
	switch base := params.(type) {
	case map[string]any:
		for k, v := range base {
			merged[k] = v
		}
	case []any:
		for i, v := range base {
			merged["param_"+strconv.Itoa(i)] = v
		}
		next = len(base)
	case nil:
	default:
		merged["param_0"] = base
		next = 1
	}
	for i, v := range args {
		merged["param_"+strconv.Itoa(next+i)] = v
	}
	for k, v := range kwargs {
		merged[k] = v
	}
	return merged
}

func placeholders0(placeholders ParameterInfoList) ParameterInfo {
	if len(placeholders) > 0 {
		return placeholders[0]
	}
	return ParameterInfo{}
}
