package compare

import (
	"fmt"
	"strconv"
)

// Kind identifies the variant of a Value. The set is closed: every column type
// the row stream adapter can extract maps to exactly one Kind, and a cell the
// null bitmap marks as missing maps to KindNull regardless of column type.
type Kind uint8

const (
	KindNull Kind = iota
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindUtf8
	KindDate32
	KindDate64
)

// String returns the variant name, e.g. "Int8" or "Utf8".
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindInt8:
		return "Int8"
	case KindInt16:
		return "Int16"
	case KindInt32:
		return "Int32"
	case KindInt64:
		return "Int64"
	case KindUint8:
		return "UInt8"
	case KindUint16:
		return "UInt16"
	case KindUint32:
		return "UInt32"
	case KindUint64:
		return "UInt64"
	case KindFloat32:
		return "Float32"
	case KindFloat64:
		return "Float64"
	case KindUtf8:
		return "Utf8"
	case KindDate32:
		return "Date32"
	case KindDate64:
		return "Date64"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Value is one typed scalar cell extracted from a column. Each variant except
// KindNull carries exactly one concrete value; the payload fields not used by
// the variant stay zero. Values are immutable once constructed.
type Value struct {
	kind Kind
	i    int64
	u    uint64
	f32  float32
	f64  float64
	s    string
}

// NullValue returns the null marker, valid for any column type.
func NullValue() Value { return Value{kind: KindNull} }

func Int8Value(v int8) Value   { return Value{kind: KindInt8, i: int64(v)} }
func Int16Value(v int16) Value { return Value{kind: KindInt16, i: int64(v)} }
func Int32Value(v int32) Value { return Value{kind: KindInt32, i: int64(v)} }
func Int64Value(v int64) Value { return Value{kind: KindInt64, i: v} }

func Uint8Value(v uint8) Value   { return Value{kind: KindUint8, u: uint64(v)} }
func Uint16Value(v uint16) Value { return Value{kind: KindUint16, u: uint64(v)} }
func Uint32Value(v uint32) Value { return Value{kind: KindUint32, u: uint64(v)} }
func Uint64Value(v uint64) Value { return Value{kind: KindUint64, u: v} }

func Float32Value(v float32) Value { return Value{kind: KindFloat32, f32: v} }
func Float64Value(v float64) Value { return Value{kind: KindFloat64, f64: v} }

func Utf8Value(v string) Value { return Value{kind: KindUtf8, s: v} }

// Date32Value wraps a date expressed as days since the Unix epoch.
func Date32Value(days int32) Value { return Value{kind: KindDate32, i: int64(days)} }

// Date64Value wraps a date expressed as milliseconds since the Unix epoch.
func Date64Value(millis int64) Value { return Value{kind: KindDate64, i: millis} }

// Kind returns the variant of the value.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is the null marker.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Equal reports exact value-and-kind equality. Two values of different kinds
// are never equal, even when numerically equivalent; two nulls are equal.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindInt8, KindInt16, KindInt32, KindInt64, KindDate32, KindDate64:
		return v.i == o.i
	case KindUint8, KindUint16, KindUint32, KindUint64:
		return v.u == o.u
	case KindFloat32:
		return v.f32 == o.f32
	case KindFloat64:
		return v.f64 == o.f64
	case KindUtf8:
		return v.s == o.s
	}
	return false
}

// String renders the value with its variant name, e.g. Int32(7), Utf8("x"),
// Float64(1.5) or Null. Used verbatim in mismatch diagnostics.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "Null"
	case KindInt8, KindInt16, KindInt32, KindInt64, KindDate32, KindDate64:
		return fmt.Sprintf("%s(%d)", v.kind, v.i)
	case KindUint8, KindUint16, KindUint32, KindUint64:
		return fmt.Sprintf("%s(%d)", v.kind, v.u)
	case KindFloat32:
		return fmt.Sprintf("%s(%s)", v.kind, strconv.FormatFloat(float64(v.f32), 'g', -1, 32))
	case KindFloat64:
		return fmt.Sprintf("%s(%s)", v.kind, strconv.FormatFloat(v.f64, 'g', -1, 64))
	case KindUtf8:
		return fmt.Sprintf("%s(%q)", v.kind, v.s)
	}
	return v.kind.String()
}

// Row is an ordered, fixed-length list of values, one per column, in schema
// column order.
type Row []Value

// String renders the row as a bracketed value list for diagnostics.
func (r Row) String() string {
	out := "["
	for i, v := range r {
		if i > 0 {
			out += ", "
		}
		out += v.String()
	}
	return out + "]"
}
