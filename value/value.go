// Package value defines the structured value model produced by decoding and
// consumed by encoding: typed sequences, named lists, tables of equal-length
// columns, dimensioned arrays, categorical, temporal, complex and byte
// values, plus the missing-value marker NA and the structured null.
//
// The variant family is closed: every Value is one of the types declared
// here. Transformations produce new values; nothing is mutated in place.
package value

import (
	"fmt"
	"math"
	"time"
)

// Value is the sealed interface implemented by every structured variant.
type Value interface {
	isValue()
}

// Kind identifies the element kind of a Scalar or Sequence.
type Kind uint8

const (
	KindBool Kind = iota + 1
	KindInt
	KindDouble
	KindString
	KindTemporal
	KindComplex
	KindBytes
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindDouble:
		return "double"
	case KindString:
		return "string"
	case KindTemporal:
		return "temporal"
	case KindComplex:
		return "complex"
	case KindBytes:
		return "bytes"
	default:
		return "invalid"
	}
}

// SchemaError reports an invariant violation at a construction boundary:
// mismatched table row counts, a dimension product that does not match the
// element count, or categorical codes outside the level range.
type SchemaError struct {
	Msg string
}

func (e *SchemaError) Error() string { return e.Msg }

func schemaErrorf(format string, args ...any) *SchemaError {
	return &SchemaError{Msg: fmt.Sprintf(format, args...)}
}

// Scalar is a single boolean, integer, double or string value, or the
// missing-value marker NA. NA is compatible with every sequence kind.
type Scalar struct {
	kind Kind
	na   bool
	b    bool
	i    int64
	f    float64
	s    string
}

func (*Scalar) isValue() {}

// Bool returns a boolean scalar.
func Bool(b bool) *Scalar { return &Scalar{kind: KindBool, b: b} }

// Int returns an integer scalar.
func Int(i int64) *Scalar { return &Scalar{kind: KindInt, i: i} }

// Double returns a double scalar.
func Double(f float64) *Scalar { return &Scalar{kind: KindDouble, f: f} }

// Str returns a string scalar.
func Str(s string) *Scalar { return &Scalar{kind: KindString, s: s} }

// NA returns the missing-value marker.
func NA() *Scalar { return &Scalar{kind: KindBool, na: true} }

// Kind reports the scalar's kind. NA carries the bottom kind, bool.
func (s *Scalar) Kind() Kind { return s.kind }

// IsNA reports whether the scalar is the missing-value marker.
func (s *Scalar) IsNA() bool { return s.na }

// Bool returns the boolean payload, or false for other kinds and NA.
func (s *Scalar) Bool() bool { return s.b }

// Int returns the integer payload, or 0 for other kinds and NA.
func (s *Scalar) Int() int64 { return s.i }

// Double returns the double payload, or 0 for other kinds and NA.
func (s *Scalar) Double() float64 { return s.f }

// Str returns the string payload, or "" for other kinds and NA.
func (s *Scalar) Str() string { return s.s }

// Sequence is an ordered, homogeneous collection of a declared element
// kind. Elements must be scalars of that kind (or NA), or *Temporal,
// *Complex, *Bytes values for the corresponding kinds. Producers are
// responsible for homogeneity.
type Sequence struct {
	Kind  Kind
	Elems []Value
}

func (*Sequence) isValue() {}

// Len returns the number of elements.
func (q *Sequence) Len() int { return len(q.Elems) }

// At returns element i.
func (q *Sequence) At(i int) Value { return q.Elems[i] }

// Bools builds a boolean Sequence.
func Bools(vs ...bool) *Sequence {
	elems := make([]Value, len(vs))
	for i, v := range vs {
		elems[i] = Bool(v)
	}
	return &Sequence{Kind: KindBool, Elems: elems}
}

// Ints builds an integer Sequence.
func Ints(vs ...int64) *Sequence {
	elems := make([]Value, len(vs))
	for i, v := range vs {
		elems[i] = Int(v)
	}
	return &Sequence{Kind: KindInt, Elems: elems}
}

// Doubles builds a double Sequence.
func Doubles(vs ...float64) *Sequence {
	elems := make([]Value, len(vs))
	for i, v := range vs {
		elems[i] = Double(v)
	}
	return &Sequence{Kind: KindDouble, Elems: elems}
}

// Strings builds a string Sequence.
func Strings(vs ...string) *Sequence {
	elems := make([]Value, len(vs))
	for i, v := range vs {
		elems[i] = Str(v)
	}
	return &Sequence{Kind: KindString, Elems: elems}
}

// NAs builds a Sequence of kind k holding n missing values.
func NAs(k Kind, n int) *Sequence {
	elems := make([]Value, n)
	for i := range elems {
		elems[i] = NA()
	}
	return &Sequence{Kind: k, Elems: elems}
}

// Entry is one element of a List, optionally named.
type Entry struct {
	Name  string
	Value Value
}

// List is an ordered, heterogeneous collection. Names need not be unique
// or present; an empty Name means the entry is unnamed.
type List struct {
	Entries []Entry
}

func (*List) isValue() {}

// Len returns the number of entries.
func (l *List) Len() int { return len(l.Entries) }

// Named reports whether any entry carries a name.
func (l *List) Named() bool {
	for _, e := range l.Entries {
		if e.Name != "" {
			return true
		}
	}
	return false
}

// Column is one named column of a Table.
type Column struct {
	Name  string
	Value Value
}

// Col builds a Column.
func Col(name string, v Value) Column { return Column{Name: name, Value: v} }

// Table is an ordered collection of named, equal-length columns. Column
// order is significant and preserved across encode and decode.
type Table struct {
	cols []Column
	rows int
}

func (*Table) isValue() {}

// NewTable builds a Table from columns, validating that every column is a
// Sequence, Categorical, nested Table or List and that all share one row
// count, taken from the first column. A table with no columns has zero
// rows; use NewTableSized when the row count must outlive the columns.
func NewTable(cols ...Column) (*Table, error) {
	rows := 0
	if len(cols) > 0 {
		n, ok := columnLen(cols[0].Value)
		if !ok {
			return nil, schemaErrorf("column %q: %T cannot be a table column", cols[0].Name, cols[0].Value)
		}
		rows = n
	}
	return NewTableSized(rows, cols...)
}

// NewTableSized builds a Table with an explicit row count, so a table
// with no columns can still carry rows. Every column must have exactly
// rows entries.
func NewTableSized(rows int, cols ...Column) (*Table, error) {
	if rows < 0 {
		return nil, schemaErrorf("table row count %d is negative", rows)
	}
	for _, c := range cols {
		n, ok := columnLen(c.Value)
		if !ok {
			return nil, schemaErrorf("column %q: %T cannot be a table column", c.Name, c.Value)
		}
		if n != rows {
			return nil, schemaErrorf("column %q has %d rows, want %d", c.Name, n, rows)
		}
	}
	return &Table{cols: cols, rows: rows}, nil
}

// Cols returns the columns in declared order.
func (t *Table) Cols() []Column { return t.cols }

// Rows returns the shared row count.
func (t *Table) Rows() int { return t.rows }

// Col returns the named column and whether it exists.
func (t *Table) Col(name string) (Column, bool) {
	for _, c := range t.cols {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

func columnLen(v Value) (int, bool) {
	switch c := v.(type) {
	case *Sequence:
		return len(c.Elems), true
	case *Categorical:
		return len(c.codes), true
	case *Table:
		return c.rows, true
	case *List:
		return len(c.Entries), true
	default:
		return 0, false
	}
}

// Array reinterprets a Sequence with an explicit dimension vector of rank
// two or more. Storage is row-major: the last dimension varies fastest.
type Array struct {
	seq  *Sequence
	dims []int
}

func (*Array) isValue() {}

// NewArray builds an Array over seq with the given dimensions, validating
// rank >= 2, positive extents, and that the product equals the sequence
// length.
func NewArray(seq *Sequence, dims ...int) (*Array, error) {
	if len(dims) < 2 {
		return nil, schemaErrorf("array rank must be at least 2, got %d", len(dims))
	}
	product := 1
	for _, d := range dims {
		if d <= 0 {
			return nil, schemaErrorf("array dimension %d is not positive", d)
		}
		product *= d
	}
	if product != len(seq.Elems) {
		return nil, schemaErrorf("dimension product %d does not match element count %d", product, len(seq.Elems))
	}
	return &Array{seq: seq, dims: dims}, nil
}

// Seq returns the underlying row-major Sequence.
func (a *Array) Seq() *Sequence { return a.seq }

// Dims returns the dimension vector. The caller must not modify it.
func (a *Array) Dims() []int { return a.dims }

// Rank returns the number of dimensions.
func (a *Array) Rank() int { return len(a.dims) }

// Categorical is a sequence of values drawn from an ordered set of distinct
// level labels, stored as 1-based codes into that set.
type Categorical struct {
	codes  []int
	levels []string
}

func (*Categorical) isValue() {}

// NewCategorical builds a Categorical, validating that levels are distinct
// and every code indexes a valid level (codes are 1-based, never zero).
func NewCategorical(codes []int, levels []string) (*Categorical, error) {
	seen := make(map[string]bool, len(levels))
	for _, l := range levels {
		if seen[l] {
			return nil, schemaErrorf("duplicate level %q", l)
		}
		seen[l] = true
	}
	for i, c := range codes {
		if c < 1 || c > len(levels) {
			return nil, schemaErrorf("code %d at index %d is out of range for %d levels", c, i, len(levels))
		}
	}
	return &Categorical{codes: codes, levels: levels}, nil
}

// Len returns the number of elements.
func (c *Categorical) Len() int { return len(c.codes) }

// Codes returns the 1-based codes. The caller must not modify them.
func (c *Categorical) Codes() []int { return c.codes }

// Levels returns the level labels. The caller must not modify them.
func (c *Categorical) Levels() []string { return c.levels }

// Label returns the level label of element i.
func (c *Categorical) Label(i int) string { return c.levels[c.codes[i]-1] }

// TemporalUnit distinguishes date-only from date-time precision.
type TemporalUnit uint8

const (
	// UnitDate counts days since 1970-01-01.
	UnitDate TemporalUnit = iota
	// UnitDateTime counts seconds since the Unix epoch.
	UnitDateTime
)

// Temporal is an instant stored as a numeric offset from the Unix epoch,
// in days or seconds depending on the unit.
type Temporal struct {
	offset float64
	unit   TemporalUnit
}

func (*Temporal) isValue() {}

// NewTemporal builds a Temporal from a raw offset and unit.
func NewTemporal(offset float64, unit TemporalUnit) *Temporal {
	return &Temporal{offset: offset, unit: unit}
}

// Date returns a date-only Temporal for t's UTC calendar day.
func Date(t time.Time) *Temporal {
	days := math.Floor(float64(t.Unix()) / 86400)
	return &Temporal{offset: days, unit: UnitDate}
}

// DateTime returns a date-time Temporal for the instant t.
func DateTime(t time.Time) *Temporal {
	secs := float64(t.Unix()) + float64(t.Nanosecond())/1e9
	return &Temporal{offset: secs, unit: UnitDateTime}
}

// Offset returns the raw numeric offset.
func (t *Temporal) Offset() float64 { return t.offset }

// Unit returns the precision tag.
func (t *Temporal) Unit() TemporalUnit { return t.unit }

// Time materializes the instant in UTC.
func (t *Temporal) Time() time.Time {
	secs := t.offset
	if t.unit == UnitDate {
		secs *= 86400
	}
	whole := math.Floor(secs)
	ns := int64(math.Round((secs - whole) * 1e9))
	return time.Unix(int64(whole), ns).UTC()
}

// Complex is a complex number stored as a real and imaginary pair.
type Complex struct {
	Re float64
	Im float64
}

func (*Complex) isValue() {}

// NewComplex builds a Complex from its parts.
func NewComplex(re, im float64) *Complex { return &Complex{Re: re, Im: im} }

// Complex128 returns the native complex value.
func (c *Complex) Complex128() complex128 { return complex(c.Re, c.Im) }

// Bytes is an ordered sequence of raw octets.
type Bytes struct {
	Data []byte
}

func (*Bytes) isValue() {}

// NewBytes wraps b without copying.
func NewBytes(b []byte) *Bytes { return &Bytes{Data: b} }

// Len returns the number of octets.
func (b *Bytes) Len() int { return len(b.Data) }

// Null is the structured-level null, distinct from the missing-value
// marker: it stands for an absent value, not a missing element.
type Null struct{}

func (Null) isValue() {}
