package sqlnorm

import (
	"testing"
	"time"

	"github.com/golang-sql/civil"
	"github.com/shopspring/decimal"
)

func TestWrapTypedWrappingInference(t *testing.T) {
	wrapped, ok := Wrap(true, "")
	if !ok || wrapped.(TypedParameter).DataType != DataTypeBoolean || wrapped.(TypedParameter).TypeHint != "boolean" {
		t.Errorf("Wrap(true) = %#v, %v", wrapped, ok)
	}

	wrapped, ok = Wrap(int64(5_000_000_000), "")
	if !ok || wrapped.(TypedParameter).DataType != DataTypeBigInt || wrapped.(TypedParameter).TypeHint != "bigint" {
		t.Errorf("Wrap(5e9) = %#v, %v", wrapped, ok)
	}

	if _, ok := Wrap("hi", ""); ok {
		t.Error(`Wrap("hi") should pass through unwrapped`)
	}

	wrapped, ok = Wrap(nil, "")
	if !ok || wrapped.(TypedParameter).DataType != DataTypeNull || wrapped.(TypedParameter).TypeHint != "null" {
		t.Errorf("Wrap(nil) = %#v, %v", wrapped, ok)
	}
}

func TestWrapIntegerBoundary(t *testing.T) {
	if _, ok := Wrap(2147483647, ""); ok {
		t.Error("2_147_483_647 must pass through unwrapped (exactly at the boundary)")
	}
	wrapped, ok := Wrap(2147483648, "")
	if !ok || wrapped.(TypedParameter).DataType != DataTypeBigInt {
		t.Errorf("2_147_483_648 must wrap as BIGINT, got %#v, %v", wrapped, ok)
	}
	wrapped, ok = Wrap(-2147483648, "")
	if !ok || wrapped.(TypedParameter).DataType != DataTypeBigInt {
		t.Errorf("-2_147_483_648's magnitude exceeds 2_147_483_647 and must wrap as BIGINT, got %#v, %v", wrapped, ok)
	}
}

func TestWrapFloatsPassThrough(t *testing.T) {
	if _, ok := Wrap(3.14, ""); ok {
		t.Error("floats should pass through unwrapped")
	}
}

func TestWrapDecimal(t *testing.T) {
	d := decimal.NewFromFloat(12.5)
	wrapped, ok := Wrap(d, "price")
	if !ok {
		t.Fatal("decimal.Decimal should be wrapped")
	}
	tp := wrapped.(TypedParameter)
	if tp.DataType != DataTypeDecimal || tp.SemanticName != "price" {
		t.Errorf("got %#v", tp)
	}
}

func TestWrapDateVsTimestamp(t *testing.T) {
	d := civil.DateOf(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	wrapped, ok := Wrap(d, "")
	if !ok || wrapped.(TypedParameter).DataType != DataTypeDate {
		t.Errorf("civil.Date should wrap as DATE, got %#v, %v", wrapped, ok)
	}

	ts := time.Now()
	wrapped, ok = Wrap(ts, "")
	if !ok || wrapped.(TypedParameter).DataType != DataTypeTimestamp {
		t.Errorf("time.Time should wrap as TIMESTAMP, got %#v, %v", wrapped, ok)
	}
}

func TestWrapBinaryArrayJSON(t *testing.T) {
	wrapped, ok := Wrap([]byte("blob"), "")
	if !ok || wrapped.(TypedParameter).DataType != DataTypeBinary {
		t.Errorf("[]byte should wrap as BINARY, got %#v, %v", wrapped, ok)
	}

	wrapped, ok = Wrap([]any{1, 2, 3}, "")
	if !ok || wrapped.(TypedParameter).DataType != DataTypeArray {
		t.Errorf("[]any should wrap as ARRAY, got %#v, %v", wrapped, ok)
	}

	wrapped, ok = Wrap(map[string]any{"k": "v"}, "")
	if !ok || wrapped.(TypedParameter).DataType != DataTypeJSON {
		t.Errorf("map[string]any should wrap as JSON, got %#v, %v", wrapped, ok)
	}
}

func TestWrapParametersPreservesShape(t *testing.T) {
	out := WrapParameters(map[string]any{"a": nil, "b": "text"}, nil)
	m := out.(map[string]any)
	if _, ok := m["a"].(TypedParameter); !ok {
		t.Errorf("nil value should be wrapped inside a map container, got %#v", m["a"])
	}
	if _, ok := m["b"].(string); !ok {
		t.Errorf("string value should remain unwrapped, got %#v", m["b"])
	}
}

func TestWrapAlreadyWrappedIsIdempotent(t *testing.T) {
	first, _ := Wrap(nil, "x")
	second, ok := Wrap(first, "y")
	if !ok {
		t.Fatal("re-wrapping a TypedParameter should succeed")
	}
	if second.(TypedParameter) != first.(TypedParameter) {
		t.Errorf("re-wrapping should return the same TypedParameter unchanged, got %#v want %#v", second, first)
	}
}
