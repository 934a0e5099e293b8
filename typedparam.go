package sqlnorm

import (
	"time"

	"github.com/golang-sql/civil"
	"github.com/shopspring/decimal"
)

// DataType is the symbolic SQL type attached to a TypedParameter so a
// driver's type-coercion hook can dispatch on it without re-inspecting
// the runtime value.
type DataType string

// The closed set of symbolic SQL types a TypedParameter may carry.
const (
	DataTypeNull      DataType = "NULL"
	DataTypeBoolean   DataType = "BOOLEAN"
	DataTypeInteger   DataType = "INTEGER"
	DataTypeBigInt    DataType = "BIGINT"
	DataTypeDecimal   DataType = "DECIMAL"
	DataTypeDate      DataType = "DATE"
	DataTypeTimestamp DataType = "TIMESTAMP"
	DataTypeBinary    DataType = "BINARY"
	DataTypeArray     DataType = "ARRAY"
	DataTypeJSON      DataType = "JSON"
	DataTypeVarchar   DataType = "VARCHAR"
)

// max32BitInt is the signed-32-bit boundary: integers whose absolute
// value exceeds it are wrapped as BIGINT so drivers that default to a
// 32-bit bind type don't truncate them.
const max32BitInt = 2147483647

// TypedParameter wraps a runtime value with enough type metadata for a
// driver's type_coercion_map to coerce it correctly. Callers
// never construct one directly; Wrap and WrapParameters produce them.
type TypedParameter struct {
	// Value is the original runtime value, unwrapped.
	Value any

	// DataType is the symbolic SQL type inferred for Value.
	DataType DataType

	// TypeHint is a short, stable tag redundant with DataType, kept for
	// fast switch-based dispatch in hot coercion paths.
	TypeHint string

	// SemanticName is the parameter's name, when known, for diagnostics
	// only.
	SemanticName string
}

// Wrap maps a single runtime value to a (value, semantic type) pair.
// Values whose type every driver can
// infer safely from the Go runtime type — strings, small integers, and
// floats — pass through unwrapped (the second return is false).
//
// semanticName is attached to the wrapper for diagnostics; pass "" when
// unknown.
func Wrap(value any, semanticName string) (any, bool) {
	if tp, ok := value.(TypedParameter); ok {
		return tp, true
	}

	switch v := value.(type) {
	case nil:
		return TypedParameter{Value: nil, DataType: DataTypeNull, TypeHint: "null", SemanticName: semanticName}, true

	case bool:
		return TypedParameter{Value: v, DataType: DataTypeBoolean, TypeHint: "boolean", SemanticName: semanticName}, true

	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		if n, ok := asInt64(v); ok && absInt64(n) > max32BitInt {
			return TypedParameter{Value: v, DataType: DataTypeBigInt, TypeHint: "bigint", SemanticName: semanticName}, true
		}
		return value, false

	case decimal.Decimal:
		return TypedParameter{Value: v, DataType: DataTypeDecimal, TypeHint: "decimal", SemanticName: semanticName}, true

	case civil.Date:
		return TypedParameter{Value: v, DataType: DataTypeDate, TypeHint: "date", SemanticName: semanticName}, true

	case time.Time:
		return TypedParameter{Value: v, DataType: DataTypeTimestamp, TypeHint: "timestamp", SemanticName: semanticName}, true

	case []byte:
		return TypedParameter{Value: v, DataType: DataTypeBinary, TypeHint: "binary", SemanticName: semanticName}, true

	case string, float32, float64:
		return value, false

	default:
		return wrapCollectionOrPassthrough(value, semanticName)
	}
}

// wrapCollectionOrPassthrough handles the two reflect-free collection
// cases (ordered sequence, keyed map) and falls back to passthrough for
// everything else.
func wrapCollectionOrPassthrough(value any, semanticName string) (any, bool) {
	switch v := value.(type) {
	case []any:
		return TypedParameter{Value: v, DataType: DataTypeArray, TypeHint: "array", SemanticName: semanticName}, true
	case map[string]any:
		return TypedParameter{Value: v, DataType: DataTypeJSON, TypeHint: "json", SemanticName: semanticName}, true
	}

	if seq, ok := asOrderedSequence(value); ok {
		return TypedParameter{Value: seq, DataType: DataTypeArray, TypeHint: "array", SemanticName: semanticName}, true
	}

	return value, false
}

// WrapParameters applies Wrap to every value in a container (ordered
// sequence or keyed map), matching each element to its slot name from
// placeholders. Scalars are wrapped directly. The returned container
// has the same shape as params.
func WrapParameters(params any, placeholders ParameterInfoList) any {
	switch p := params.(type) {
	case nil:
		return nil

	case map[string]any:
		out := make(map[string]any, len(p))
		for name, v := range p {
			wrapped, _ := Wrap(v, name)
			out[name] = wrapped
		}
		return out

	case []any:
		out := make([]any, len(p))
		for i, v := range p {
			name := ""
			if i < len(placeholders) {
				name = placeholders[i].Name
			}
			wrapped, _ := Wrap(v, name)
			out[i] = wrapped
		}
		return out

	default:
		if seq, ok := asOrderedSequence(params); ok {
			return WrapParameters(seq, placeholders)
		}
		wrapped, _ := Wrap(params, "")
		return wrapped
	}
}

// asOrderedSequence normalizes the slice types it recognizes ([]any,
// []int, []int64, []string) into an []any so the rest of the pipeline
// only deals with one ordered-sequence representation. Strings and
// byte slices are never treated as sequences.
func asOrderedSequence(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, true
	case []int:
		return intsToAny(v), true
	case []int64:
		out := make([]any, len(v))
		for i, x := range v {
			out[i] = x
		}
		return out, true
	case []string:
		out := make([]any, len(v))
		for i, x := range v {
			out[i] = x
		}
		return out, true
	default:
		return nil, false
	}
}

func intsToAny(v []int) []any {
	out := make([]any, len(v))
	for i, x := range v {
		out[i] = x
	}
	return out
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), true
	default:
		return 0, false
	}
}

func absInt64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
