// Package encode implements the encode-path transformation from
// structured values back to wire value trees, under a configurable set of
// representation choices for the types with no native wire form.
package encode

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/kevinushey/jsonlite/internal/wire"
	"github.com/kevinushey/jsonlite/value"
)

// Options select one serialization rule per variant. The zero value of
// each field means its default mode.
type Options struct {
	DataFrame string // "rows" (default) or "columns"
	Matrix    string // "rowmajor" (default) or "columnmajor"
	Factor    string // "labels" (default) or "codes"
	Temporal  string // "iso8601" (default), "epoch", "string" or "mongo"
	Complex   string // "text" (default) or "pair"
	Raw       string // "base64" (default), "hex" or "mongo"
	NA        string // "null" (default) or "string"
	Null      string // "list" (default) or "null"
	AutoUnbox bool   // emit length-1 sequences as bare scalars
	Digits    int    // fractional digits for doubles; negative means full precision
}

// UnsupportedError reports a value with no defined wire mapping.
type UnsupportedError struct {
	Type string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("cannot encode value of type %s", e.Type)
}

// Encode serializes a structured value to a wire tree. A top-level null
// cannot be emitted as a bare document, so the Null option is forced to
// list for that single call, producing an empty array.
func Encode(v value.Value, opts Options) (*wire.Value, error) {
	if v == nil {
		v = value.Null{}
	}
	if _, ok := v.(value.Null); ok {
		opts.Null = "list"
	}
	e := &engine{opts: opts}
	return e.value(v)
}

type engine struct {
	opts Options
}

func (e *engine) value(v value.Value) (*wire.Value, error) {
	switch t := v.(type) {
	case *value.Scalar:
		return e.scalar(t), nil
	case *value.Sequence:
		return e.sequence(t)
	case *value.List:
		return e.list(t)
	case *value.Table:
		return e.table(t)
	case *value.Array:
		return e.array(t)
	case *value.Categorical:
		return e.categorical(t), nil
	case *value.Temporal:
		return e.temporal(t), nil
	case *value.Complex:
		return e.complexValue(t), nil
	case *value.Bytes:
		return e.bytes(t), nil
	case value.Null, nil:
		return e.null(), nil
	default:
		return nil, &UnsupportedError{Type: fmt.Sprintf("%T", v)}
	}
}

func (e *engine) scalar(s *value.Scalar) *wire.Value {
	if s.IsNA() {
		return e.na()
	}
	switch s.Kind() {
	case value.KindBool:
		return wire.Bool(s.Bool())
	case value.KindInt:
		return wire.Number(strconv.FormatInt(s.Int(), 10))
	case value.KindDouble:
		return e.double(s.Double())
	default:
		return wire.String(s.Str())
	}
}

func (e *engine) na() *wire.Value {
	if e.opts.NA == "string" {
		return wire.String("NA")
	}
	return wire.Null()
}

func (e *engine) null() *wire.Value {
	if e.opts.Null == "null" {
		return wire.Null()
	}
	return wire.Array()
}

// double emits a rounded double. Non-finite values have no wire number
// form and emit as string tokens.
func (e *engine) double(f float64) *wire.Value {
	switch {
	case math.IsNaN(f):
		return wire.String("NaN")
	case math.IsInf(f, 1):
		return wire.String("Inf")
	case math.IsInf(f, -1):
		return wire.String("-Inf")
	}
	f = roundDigits(f, e.opts.Digits)
	return wire.Number(strconv.FormatFloat(f, 'f', -1, 64))
}

// roundDigits rounds half away from zero to the given fractional digits.
// Values too large to carry a fractional part pass through untouched so
// the scaling cannot overflow.
func roundDigits(f float64, digits int) float64 {
	if digits < 0 || math.Abs(f) >= 1e15 {
		return f
	}
	scale := math.Pow(10, float64(digits))
	return math.Round(f*scale) / scale
}

func (e *engine) sequence(q *value.Sequence) (*wire.Value, error) {
	elems := make([]*wire.Value, len(q.Elems))
	for i, el := range q.Elems {
		w, err := e.value(el)
		if err != nil {
			return nil, err
		}
		elems[i] = w
	}
	if e.opts.AutoUnbox && len(elems) == 1 {
		return elems[0], nil
	}
	return wire.Array(elems...), nil
}

// list encodes as an object when any entry carries a name (unnamed
// entries get empty keys), else as an array.
func (e *engine) list(l *value.List) (*wire.Value, error) {
	if l.Named() {
		members := make([]wire.Member, len(l.Entries))
		for i, en := range l.Entries {
			w, err := e.value(en.Value)
			if err != nil {
				return nil, err
			}
			members[i] = wire.Member{Key: en.Name, Value: w}
		}
		return wire.Object(members...), nil
	}
	elems := make([]*wire.Value, len(l.Entries))
	for i, en := range l.Entries {
		w, err := e.value(en.Value)
		if err != nil {
			return nil, err
		}
		elems[i] = w
	}
	return wire.Array(elems...), nil
}

func (e *engine) table(t *value.Table) (*wire.Value, error) {
	if e.opts.DataFrame == "columns" {
		members := make([]wire.Member, 0, len(t.Cols()))
		for _, c := range t.Cols() {
			w, err := e.value(c.Value)
			if err != nil {
				return nil, err
			}
			members = append(members, wire.Member{Key: c.Name, Value: w})
		}
		return wire.Object(members...), nil
	}
	rows := make([]*wire.Value, t.Rows())
	for r := range rows {
		obj, err := e.rowObject(t, r)
		if err != nil {
			return nil, err
		}
		rows[r] = obj
	}
	return wire.Array(rows...), nil
}

// rowObject builds one row of the rows orientation, columns in declared
// order. Scalar cells emit bare, never as one-element arrays.
func (e *engine) rowObject(t *value.Table, r int) (*wire.Value, error) {
	members := make([]wire.Member, 0, len(t.Cols()))
	for _, c := range t.Cols() {
		cell, err := e.cell(c.Value, r)
		if err != nil {
			return nil, err
		}
		members = append(members, wire.Member{Key: c.Name, Value: cell})
	}
	return wire.Object(members...), nil
}

func (e *engine) cell(col value.Value, r int) (*wire.Value, error) {
	switch c := col.(type) {
	case *value.Sequence:
		return e.value(c.Elems[r])
	case *value.Categorical:
		return e.categoricalElem(c, r), nil
	case *value.Table:
		return e.rowObject(c, r)
	case *value.List:
		return e.value(c.Entries[r].Value)
	default:
		return nil, &UnsupportedError{Type: fmt.Sprintf("%T as table column", col)}
	}
}

func (e *engine) array(a *value.Array) (*wire.Value, error) {
	flat := a.Seq().Elems
	elems := make([]*wire.Value, len(flat))
	for i, el := range flat {
		w, err := e.value(el)
		if err != nil {
			return nil, err
		}
		elems[i] = w
	}
	dims := a.Dims()
	if e.opts.Matrix == "columnmajor" {
		elems = columnMajor(elems, dims)
		dims = reverse(dims)
	}
	return nest(elems, dims), nil
}

// nest groups flat row-major elements into nested arrays per dims.
func nest(elems []*wire.Value, dims []int) *wire.Value {
	if len(dims) == 1 {
		return wire.Array(elems...)
	}
	n := dims[0]
	sub := len(elems) / n
	out := make([]*wire.Value, n)
	for i := 0; i < n; i++ {
		out[i] = nest(elems[i*sub:(i+1)*sub], dims[1:])
	}
	return wire.Array(out...)
}

// columnMajor reorders row-major elements so the first dimension varies
// fastest; the result nests under the reversed dimension vector.
func columnMajor(elems []*wire.Value, dims []int) []*wire.Value {
	strides := make([]int, len(dims))
	s := 1
	for i := len(dims) - 1; i >= 0; i-- {
		strides[i] = s
		s *= dims[i]
	}
	out := make([]*wire.Value, len(elems))
	for j := range out {
		idx := 0
		rem := j
		for i := 0; i < len(dims); i++ {
			idx += (rem % dims[i]) * strides[i]
			rem /= dims[i]
		}
		out[j] = elems[idx]
	}
	return out
}

func reverse(dims []int) []int {
	out := make([]int, len(dims))
	for i, d := range dims {
		out[len(dims)-1-i] = d
	}
	return out
}

func (e *engine) categorical(c *value.Categorical) *wire.Value {
	elems := make([]*wire.Value, c.Len())
	for i := range elems {
		elems[i] = e.categoricalElem(c, i)
	}
	if e.opts.AutoUnbox && len(elems) == 1 {
		return elems[0]
	}
	return wire.Array(elems...)
}

func (e *engine) categoricalElem(c *value.Categorical, i int) *wire.Value {
	if e.opts.Factor == "codes" {
		return wire.Number(strconv.Itoa(c.Codes()[i]))
	}
	return wire.String(c.Label(i))
}

func (e *engine) temporal(t *value.Temporal) *wire.Value {
	switch e.opts.Temporal {
	case "epoch":
		return wire.Number(strconv.FormatFloat(t.Offset(), 'f', -1, 64))
	case "string":
		if t.Unit() == value.UnitDate {
			return wire.String(t.Time().Format("2006-01-02"))
		}
		return wire.String(t.Time().Format("2006-01-02 15:04:05"))
	case "mongo":
		ms := t.Time().UnixMilli()
		return wire.Object(wire.Member{
			Key:   "$date",
			Value: wire.Number(strconv.FormatInt(ms, 10)),
		})
	default: // iso8601
		if t.Unit() == value.UnitDate {
			return wire.String(t.Time().Format("2006-01-02"))
		}
		return wire.String(t.Time().Format(time.RFC3339))
	}
}

func (e *engine) complexValue(c *value.Complex) *wire.Value {
	if e.opts.Complex == "pair" {
		return wire.Array(e.double(c.Re), e.double(c.Im))
	}
	re := roundDigits(c.Re, e.opts.Digits)
	im := roundDigits(c.Im, e.opts.Digits)
	sign := "+"
	if im < 0 {
		sign = "-"
		im = -im
	}
	text := strconv.FormatFloat(re, 'f', -1, 64) + sign +
		strconv.FormatFloat(im, 'f', -1, 64) + "i"
	return wire.String(text)
}

func (e *engine) bytes(b *value.Bytes) *wire.Value {
	switch e.opts.Raw {
	case "hex":
		return wire.String(hex.EncodeToString(b.Data))
	case "mongo":
		return wire.Object(
			wire.Member{Key: "$binary", Value: wire.String(base64.StdEncoding.EncodeToString(b.Data))},
			wire.Member{Key: "$type", Value: wire.String("00")},
		)
	default:
		return wire.String(base64.StdEncoding.EncodeToString(b.Data))
	}
}
