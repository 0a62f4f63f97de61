package semprops

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/semprops/pkg/types"
)

func TestEncodeAny(t *testing.T) {
	e := NewEncoder()

	tests := []struct {
		name string
		in   any
		want string
	}{
		{"string is trimmed", "  some text ", "some text"},
		{"true", true, "1"},
		{"false", false, "0"},
		{"int", 42, "42"},
		{"negative int", -7, "-7"},
		{"max int64", int64(math.MaxInt64), "9223372036854775807"},
		{"integral float", 2.0, "2"},
		{"fraction", 1.5, "1.5"},
		{"short decimal", 0.1, "0.1"},
		{"large float", 1e21, "1e+21"},
		{"small float", 1e-5, "1e-05"},
		{"negative zero", math.Copysign(0, -1), "0"},
		{"json number", json.Number("3"), "3"},
		{"max uint64", uint64(math.MaxUint64), "18446744073709551615"},
		{"json integer beyond int64", json.Number("12345678901234567891"), "12345678901234567891"},
		{"negative json integer beyond int64", json.Number("-98765432109876543210"), "-98765432109876543210"},
		{"null", nil, ""},
		{"record", []any{"a;b", "c"}, `a\;b;c`},
		{"record keeps empty sub-values", []any{"a", nil, "b"}, "a;;b"},
		{"record of mixed scalars", []any{true, 2, 0.5, " x "}, "1;2;0.5;x"},
		{"empty record", []any{}, ""},
		{"string list record", []string{"x;y", "z"}, `x\;y;z`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.EncodeAny(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeParsedIntegerExactly(t *testing.T) {
	v, err := types.ParseValue([]byte("12345678901234567891"))
	require.NoError(t, err)
	got, err := NewEncoder().EncodeAny(v)
	require.NoError(t, err)
	assert.Equal(t, "12345678901234567891", got)

	v, err = types.ParseValue([]byte(`[18446744073709551615, "x"]`))
	require.NoError(t, err)
	got, err = NewEncoder().EncodeAny(v)
	require.NoError(t, err)
	assert.Equal(t, "18446744073709551615;x", got)
}

func TestEncodeAnyRejectsUnsupported(t *testing.T) {
	e := NewEncoder()

	_, err := e.EncodeAny(map[string]any{"a": 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrUnsupportedType))
	assert.Equal(t, types.ReasonNotValue, err.Error())

	_, err = e.EncodeAny([]any{"a", []any{"nested"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrUnsupportedType))
	assert.Equal(t, types.ReasonRecordEntry, err.Error())

	_, err = e.EncodeAny(math.NaN())
	assert.True(t, errors.Is(err, types.ErrUnsupportedType))
}

func TestEncodeScalarAny(t *testing.T) {
	e := NewEncoder()

	got, err := e.EncodeScalarAny(" v ")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	_, err = e.EncodeScalarAny([]any{"a"})
	require.Error(t, err)
	assert.Equal(t, types.ReasonNotScalar, err.Error())
	assert.True(t, errors.Is(err, types.ErrUnsupportedType))
}

func TestEncodeIsStable(t *testing.T) {
	e := NewEncoder()
	for _, f := range []float64{1.0 / 3, math.Pi, 123456.789, -2.5e-7} {
		first := e.EncodeSingle(types.Float(f))
		assert.Equal(t, first, e.EncodeSingle(types.Float(f)))
	}
}

func TestDecodeRecord(t *testing.T) {
	assert.Equal(t, []string{"a;b", "c"}, DecodeRecord(`a\;b;c`))
	assert.Equal(t, []string{"a", "", "b"}, DecodeRecord("a;;b"))
	assert.Equal(t, []string{""}, DecodeRecord(""))
	assert.Equal(t, []string{`a\b`}, DecodeRecord(`a\b`))
}

func TestRecordRoundTrip(t *testing.T) {
	e := NewEncoder()
	records := [][]string{
		{"a;b", "c"},
		{"", "x", ""},
		{";;", "; ;"},
		{"plain"},
	}
	for _, rec := range records {
		enc, err := e.EncodeAny(rec)
		require.NoError(t, err)
		assert.Equal(t, rec, DecodeRecord(enc))
	}
}
