package encode

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevinushey/jsonlite/value"
)

func TestWrapScalars(t *testing.T) {
	testCases := []struct {
		name string
		in   any
		want value.Value
	}{
		{"Bool", true, value.Bool(true)},
		{"Int", 42, value.Int(42)},
		{"Int8", int8(-3), value.Int(-3)},
		{"Int16", int16(7), value.Int(7)},
		{"Int32", int32(9), value.Int(9)},
		{"Int64", int64(1 << 40), value.Int(1 << 40)},
		{"Uint", uint(5), value.Int(5)},
		{"Uint8", uint8(255), value.Int(255)},
		{"Uint64Fits", uint64(12), value.Int(12)},
		{"Float32", float32(0.5), value.Double(0.5)},
		{"Float64", 2.25, value.Double(2.25)},
		{"String", "mario", value.Str("mario")},
		{"Nil", nil, value.Null{}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Wrap(tc.in, false)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestWrapUintBeyondInt64(t *testing.T) {
	got, err := Wrap(uint64(math.MaxUint64), false)
	require.NoError(t, err)
	assert.Equal(t, value.Double(float64(math.MaxUint64)), got)
}

func TestWrapJSONNumber(t *testing.T) {
	got, err := Wrap(json.Number("12"), false)
	require.NoError(t, err)
	assert.Equal(t, value.Int(12), got)

	got, err = Wrap(json.Number("1.5"), false)
	require.NoError(t, err)
	assert.Equal(t, value.Double(1.5), got)

	_, err = Wrap(json.Number("not-a-number"), false)
	var ue *UnsupportedError
	assert.ErrorAs(t, err, &ue)
}

func TestWrapDomainTypes(t *testing.T) {
	got, err := Wrap([]byte{1, 2}, false)
	require.NoError(t, err)
	assert.Equal(t, value.NewBytes([]byte{1, 2}), got)

	at := time.Date(2022, 1, 1, 12, 0, 0, 0, time.UTC)
	got, err = Wrap(at, false)
	require.NoError(t, err)
	assert.Equal(t, value.DateTime(at), got)

	got, err = Wrap(complex(3, -4), false)
	require.NoError(t, err)
	assert.Equal(t, value.NewComplex(3, -4), got)

	got, err = Wrap(complex64(complex(1, 2)), false)
	require.NoError(t, err)
	assert.Equal(t, value.NewComplex(1, 2), got)
}

func TestWrapTypedSlices(t *testing.T) {
	got, err := Wrap([]bool{true, false}, false)
	require.NoError(t, err)
	assert.Equal(t, value.Bools(true, false), got)

	got, err = Wrap([]int{1, 2}, false)
	require.NoError(t, err)
	assert.Equal(t, value.Ints(1, 2), got)

	got, err = Wrap([]int64{3, 4}, false)
	require.NoError(t, err)
	assert.Equal(t, value.Ints(3, 4), got)

	got, err = Wrap([]float64{0.5}, false)
	require.NoError(t, err)
	assert.Equal(t, value.Doubles(0.5), got)

	got, err = Wrap([]string{"a"}, false)
	require.NoError(t, err)
	assert.Equal(t, value.Strings("a"), got)
}

func TestWrapTemporalAndComplexSlices(t *testing.T) {
	at := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	got, err := Wrap([]time.Time{at}, false)
	require.NoError(t, err)
	q, ok := got.(*value.Sequence)
	require.True(t, ok)
	assert.Equal(t, value.KindTemporal, q.Kind)
	assert.Equal(t, value.DateTime(at), q.At(0))

	got, err = Wrap([]complex128{complex(1, 1)}, false)
	require.NoError(t, err)
	q, ok = got.(*value.Sequence)
	require.True(t, ok)
	assert.Equal(t, value.KindComplex, q.Kind)
}

func TestWrapAnySlice(t *testing.T) {
	got, err := Wrap([]any{1, "two", nil}, false)
	require.NoError(t, err)
	want := &value.List{Entries: []value.Entry{
		{Value: value.Int(1)},
		{Value: value.Str("two")},
		{Value: value.Null{}},
	}}
	assert.Equal(t, want, got)

	_, err = Wrap([]any{struct{}{}}, false)
	assert.Error(t, err, "element errors surface")
}

func TestWrapMapSortsKeys(t *testing.T) {
	got, err := Wrap(map[string]any{"b": 2, "a": 1, "c": 3}, false)
	require.NoError(t, err)
	want := &value.List{Entries: []value.Entry{
		{Name: "a", Value: value.Int(1)},
		{Name: "b", Value: value.Int(2)},
		{Name: "c", Value: value.Int(3)},
	}}
	assert.Equal(t, want, got)
}

func TestWrapStructuredPassthrough(t *testing.T) {
	q := value.Ints(1, 2)
	got, err := Wrap(q, false)
	require.NoError(t, err)
	assert.Same(t, q, got)
}

type stamped struct{}

func (stamped) MarshalText() ([]byte, error) { return []byte("stamped"), nil }

func TestWrapTextMarshaler(t *testing.T) {
	_, err := Wrap(stamped{}, false)
	var ue *UnsupportedError
	require.ErrorAs(t, err, &ue, "text marshalers are still unmapped types")

	got, err := Wrap(stamped{}, true)
	require.NoError(t, err)
	assert.Equal(t, value.Str("stamped"), got, "force prefers MarshalText over the printed form")
}

func TestWrapUnsupported(t *testing.T) {
	type opaque struct{ n int }

	_, err := Wrap(opaque{n: 1}, false)
	var ue *UnsupportedError
	require.ErrorAs(t, err, &ue)
	assert.Contains(t, ue.Type, "opaque")

	got, err := Wrap(opaque{n: 1}, true)
	require.NoError(t, err)
	assert.Equal(t, value.Str("{1}"), got, "force strips to the printed form")
}
