package types

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
)

// Kind identifies the shape of a Scalar.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindBool
	KindInt
	KindFloat
	// KindBigInt holds an integer outside the int64 range as decimal digits.
	KindBigInt
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBigInt:
		return "bigint"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Scalar is one user-supplied value: a string, boolean, number, or null.
// The zero value is null.
type Scalar struct {
	kind Kind
	s    string
	b    bool
	i    int64
	f    float64
}

// Null returns the null scalar.
func Null() Scalar {
	return Scalar{}
}

// String returns a string scalar.
func String(s string) Scalar {
	return Scalar{kind: KindString, s: s}
}

// Bool returns a boolean scalar.
func Bool(b bool) Scalar {
	return Scalar{kind: KindBool, b: b}
}

// Int returns an integer scalar.
func Int(i int64) Scalar {
	return Scalar{kind: KindInt, i: i}
}

// Float returns a floating-point scalar.
func Float(f float64) Scalar {
	return Scalar{kind: KindFloat, f: f}
}

// BigInt returns an integer scalar of arbitrary size. Values that fit in
// an int64 come back as KindInt; nil is null.
func BigInt(b *big.Int) Scalar {
	if b == nil {
		return Null()
	}
	if b.IsInt64() {
		return Int(b.Int64())
	}
	return Scalar{kind: KindBigInt, s: b.String()}
}

func (s Scalar) Kind() Kind {
	return s.kind
}

func (s Scalar) IsNull() bool {
	return s.kind == KindNull
}

// Text returns the string payload of a KindString scalar.
func (s Scalar) Text() string {
	if s.kind != KindString {
		return ""
	}
	return s.s
}

// Flag returns the payload of a KindBool scalar.
func (s Scalar) Flag() bool {
	return s.b
}

// Integer returns the payload of a KindInt scalar.
func (s Scalar) Integer() int64 {
	return s.i
}

// Digits returns the decimal digits of a KindBigInt scalar, with a leading
// '-' when negative.
func (s Scalar) Digits() string {
	if s.kind != KindBigInt {
		return ""
	}
	return s.s
}

// Number returns the payload of a KindFloat scalar.
func (s Scalar) Number() float64 {
	return s.f
}

// ScalarOf converts a dynamic Go value into a Scalar. Strings, booleans,
// integers, finite floats, json.Number, and nil are accepted; anything else
// yields an UnsupportedTypeError.
func ScalarOf(v any) (Scalar, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case Scalar:
		return x, nil
	case string:
		return String(x), nil
	case bool:
		return Bool(x), nil
	case int:
		return Int(int64(x)), nil
	case int8:
		return Int(int64(x)), nil
	case int16:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint:
		return unsignedScalar(uint64(x)), nil
	case uint8:
		return Int(int64(x)), nil
	case uint16:
		return Int(int64(x)), nil
	case uint32:
		return Int(int64(x)), nil
	case uint64:
		return unsignedScalar(x), nil
	case float32:
		return floatScalar(float64(x), v)
	case float64:
		return floatScalar(x, v)
	case *big.Int:
		return BigInt(x), nil
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return Int(i), nil
		}
		if b, ok := new(big.Int).SetString(x.String(), 10); ok {
			return BigInt(b), nil
		}
		f, err := x.Float64()
		if err != nil {
			return Scalar{}, &UnsupportedTypeError{Reason: ReasonNotValue, Got: "json.Number"}
		}
		return floatScalar(f, v)
	default:
		return Scalar{}, &UnsupportedTypeError{Reason: ReasonNotValue, Got: fmt.Sprintf("%T", v)}
	}
}

func unsignedScalar(u uint64) Scalar {
	if u > math.MaxInt64 {
		return BigInt(new(big.Int).SetUint64(u))
	}
	return Int(int64(u))
}

func floatScalar(f float64, orig any) (Scalar, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Scalar{}, &UnsupportedTypeError{Reason: ReasonNotValue, Got: fmt.Sprintf("%T(%v)", orig, f)}
	}
	return Float(f), nil
}

// Value is the tagged union accepted for a property value: either a single
// Scalar or a record made of an ordered list of Scalar sub-values.
type Value struct {
	single   Scalar
	fields   []Scalar
	isRecord bool
}

// Single wraps a scalar as a Value.
func Single(s Scalar) Value {
	return Value{single: s}
}

// Record builds a record Value from its sub-values. The slice is copied.
func Record(fields ...Scalar) Value {
	cp := make([]Scalar, len(fields))
	copy(cp, fields)
	return Value{fields: cp, isRecord: true}
}

func (v Value) IsRecord() bool {
	return v.isRecord
}

// Scalar returns the wrapped scalar of a single Value. It is null for records.
func (v Value) Scalar() Scalar {
	return v.single
}

// Fields returns a copy of a record's sub-values. It is nil for single values.
func (v Value) Fields() []Scalar {
	if !v.isRecord {
		return nil
	}
	cp := make([]Scalar, len(v.fields))
	copy(cp, v.fields)
	return cp
}

// ValueOf converts a dynamic Go value into a Value. Slices become records
// whose elements must be scalars or nil; everything else must be a scalar.
func ValueOf(v any) (Value, error) {
	switch x := v.(type) {
	case Value:
		return x, nil
	case []any:
		fields := make([]Scalar, 0, len(x))
		for _, e := range x {
			s, err := ScalarOf(e)
			if err != nil {
				return Value{}, &UnsupportedTypeError{Reason: ReasonRecordEntry, Got: fmt.Sprintf("%T", e)}
			}
			fields = append(fields, s)
		}
		return Value{fields: fields, isRecord: true}, nil
	case []string:
		fields := make([]Scalar, len(x))
		for i, e := range x {
			fields[i] = String(e)
		}
		return Value{fields: fields, isRecord: true}, nil
	case []Scalar:
		return Record(x...), nil
	}
	s, err := ScalarOf(v)
	if err != nil {
		return Value{}, err
	}
	return Single(s), nil
}
