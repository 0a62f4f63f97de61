package semprops

import (
	"math"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/semprops/pkg/types"
)

// Record value syntax.
const (
	RecordSeparator  = ";"
	EscapedSeparator = `\;`
)

// Encoder turns scalars and records into value strings. The zero value is
// ready to use.
type Encoder struct{}

// NewEncoder returns an Encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// EncodeSingle returns the value string of one scalar. Null encodes to "".
func (e *Encoder) EncodeSingle(s types.Scalar) string {
	switch s.Kind() {
	case types.KindString:
		return strings.TrimSpace(s.Text())
	case types.KindBool:
		if s.Flag() {
			return "1"
		}
		return "0"
	case types.KindInt:
		return strconv.FormatInt(s.Integer(), 10)
	case types.KindFloat:
		return formatFloat(s.Number())
	case types.KindBigInt:
		return s.Digits()
	default:
		return ""
	}
}

// Encode returns the value string of v. Record sub-values are escaped and
// joined; empty sub-values keep their position.
func (e *Encoder) Encode(v types.Value) string {
	if !v.IsRecord() {
		return e.EncodeSingle(v.Scalar())
	}
	fields := v.Fields()
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = strings.ReplaceAll(e.EncodeSingle(f), RecordSeparator, EscapedSeparator)
	}
	return strings.Join(parts, RecordSeparator)
}

// EncodeAny converts v with types.ValueOf and encodes it. Values that are not
// a scalar, null, or a list of those fail with types.ErrUnsupportedType.
func (e *Encoder) EncodeAny(v any) (string, error) {
	val, err := types.ValueOf(v)
	if err != nil {
		return "", err
	}
	return e.Encode(val), nil
}

// EncodeScalarAny is EncodeAny for contexts that do not accept records.
func (e *Encoder) EncodeScalarAny(v any) (string, error) {
	val, err := types.ValueOf(v)
	if err != nil {
		return "", err
	}
	if val.IsRecord() {
		return "", &types.UnsupportedTypeError{Reason: types.ReasonNotScalar, Got: "record"}
	}
	return e.EncodeSingle(val.Scalar()), nil
}

// DecodeRecord splits a record value string into its sub-values, undoing the
// separator escape. A sub-value that itself ended in a backslash cannot be
// told apart from an escaped separator; the store has the same limitation.
func DecodeRecord(s string) []string {
	var (
		out []string
		cur strings.Builder
	)
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '\\' && i+1 < len(s) && s[i+1] == ';':
			cur.WriteByte(';')
			i++
		case s[i] == ';':
			out = append(out, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(s[i])
		}
	}
	return append(out, cur.String())
}

// formatFloat prints f with '.' as the decimal point and the fewest digits
// that round-trip. Integral values print without a fraction.
func formatFloat(f float64) string {
	if f == 0 {
		return "0"
	}
	if abs := math.Abs(f); abs >= 1e-4 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
