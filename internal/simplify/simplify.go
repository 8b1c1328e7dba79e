// Package simplify implements the decode-path transformation from wire
// value trees to structured values: arrays are promoted to the most
// specific representation they structurally support (typed sequence,
// table of columns, or dimensioned array), with a lossless fallback to
// heterogeneous lists when no promotion applies.
package simplify

import (
	"github.com/iancoleman/strcase"

	"github.com/kevinushey/jsonlite/internal/wire"
	"github.com/kevinushey/jsonlite/value"
)

// Options control which promotions the engine attempts. The zero value
// disables them all, which reinterprets the tree losslessly as nested
// lists.
type Options struct {
	Vector    bool   // promote arrays of scalars to typed sequences
	DataFrame bool   // promote arrays of objects to tables
	Matrix    bool   // promote uniform nested arrays to dimensioned arrays
	Flatten   bool   // replace nested table columns with dotted leaf columns
	KeyCase   string // "", "camel", "snake" or "kebab": rename keys on entry/column names
}

// Simplify transforms a decoded wire tree into its most specific
// structured representation. It never fails: structurally ambiguous
// input falls back to a less specific representation instead.
func Simplify(tree *wire.Value, opts Options) value.Value {
	e := &engine{opts: opts}
	return e.value(tree)
}

type engine struct {
	opts Options
}

const kindNone value.Kind = 0

func (e *engine) value(v *wire.Value) value.Value {
	switch v.Kind() {
	case wire.KindNull:
		return value.Null{}
	case wire.KindBool:
		return value.Bool(v.BoolVal())
	case wire.KindNumber:
		if i, ok := v.Int64(); ok {
			return value.Int(i)
		}
		// Number text always parses as a float; overflow saturates to ±Inf.
		f, _ := v.Float64()
		return value.Double(f)
	case wire.KindString:
		return value.Str(v.Text())
	case wire.KindArray:
		return e.array(v.Elems())
	case wire.KindObject:
		return e.object(v)
	}
	return value.Null{}
}

// array selects exactly one of four outcomes, in priority order: empty
// list, vector/array promotion, table promotion, heterogeneous list.
func (e *engine) array(elems []*wire.Value) value.Value {
	if len(elems) == 0 {
		return &value.List{}
	}
	if e.opts.Vector {
		if out, ok := e.vector(elems); ok {
			return out
		}
	}
	if e.opts.DataFrame && allObjects(elems) {
		return e.table(elems)
	}
	return e.list(elems)
}

// vector attempts sequence or array promotion. It reports false whenever
// the elements are structurally unsuitable: any object, a mix of scalars
// and arrays, ragged sub-array lengths, or divergent nesting depth.
func (e *engine) vector(elems []*wire.Value) (value.Value, bool) {
	sawArray, sawOther := false, false
	for _, el := range elems {
		switch el.Kind() {
		case wire.KindObject:
			return nil, false
		case wire.KindArray:
			sawArray = true
		case wire.KindNull:
			// Compatible with the scalar path as NA; never with sub-arrays.
			sawOther = true
		default:
			sawOther = true
		}
	}
	if sawArray && sawOther {
		return nil, false
	}
	if !sawArray {
		return e.sequence(elems), true
	}
	if !e.opts.Matrix {
		return nil, false
	}
	return e.matrix(elems)
}

// sequence builds a rank-1 typed sequence from scalar-or-null elements,
// unifying kinds through the promotion order bool < int < double < string.
func (e *engine) sequence(elems []*wire.Value) *value.Sequence {
	k := commonKind(elems)
	out := make([]value.Value, len(elems))
	for i, el := range elems {
		out[i] = scalarAs(el, k)
	}
	return &value.Sequence{Kind: k, Elems: out}
}

// matrix infers a dimension vector by descending uniform levels of
// nesting, then builds a row-major array over the flattened leaves.
func (e *engine) matrix(elems []*wire.Value) (value.Value, bool) {
	dims := []int{len(elems)}
	level := elems
	for len(level) > 0 && allArrays(level) {
		n := level[0].Len()
		if n == 0 {
			return nil, false
		}
		next := make([]*wire.Value, 0, len(level)*n)
		for _, el := range level {
			if el.Len() != n {
				return nil, false
			}
			next = append(next, el.Elems()...)
		}
		dims = append(dims, n)
		level = next
	}
	// The remaining level must be pure leaves; a stray array or object
	// here means the nesting depth diverged between branches.
	for _, el := range level {
		switch el.Kind() {
		case wire.KindArray, wire.KindObject:
			return nil, false
		}
	}
	arr, err := value.NewArray(e.sequence(level), dims...)
	if err != nil {
		return nil, false
	}
	return arr, true
}

// table builds a data frame from an array of record objects: columns are
// the key union in first-seen order, absent fields become NA.
func (e *engine) table(records []*wire.Value) value.Value {
	keys := unifyKeys(records)
	cols := make([]value.Column, 0, len(keys))
	for _, key := range keys {
		cells := make([]*wire.Value, len(records)) // nil marks an absent field
		for i, rec := range records {
			if v, ok := rec.Get(key); ok {
				cells[i] = v
			}
		}
		cols = append(cols, value.Col(e.keyName(key), e.column(cells)))
	}
	t, err := value.NewTableSized(len(records), cols...)
	if err != nil {
		return e.list(records)
	}
	if e.opts.Flatten {
		t = Flatten(t)
	}
	return t
}

// column types one table column from its per-row cells: scalars unify
// into a sequence, objects recurse into a nested table, anything mixed
// becomes a list column.
func (e *engine) column(cells []*wire.Value) value.Value {
	allScalar, allObject := true, true
	for _, c := range cells {
		if c == nil || c.Kind() == wire.KindNull {
			continue // absent and null cells fit either shape
		}
		switch c.Kind() {
		case wire.KindObject:
			allScalar = false
		case wire.KindArray:
			allScalar, allObject = false, false
		default:
			allObject = false
		}
	}
	switch {
	case allScalar:
		k := commonKind(cells)
		out := make([]value.Value, len(cells))
		for i, c := range cells {
			out[i] = scalarAs(c, k)
		}
		return &value.Sequence{Kind: k, Elems: out}
	case allObject:
		// Absent and null cells read as empty records, so the nested
		// table keeps the outer row count with fully-missing rows.
		recs := make([]*wire.Value, len(cells))
		for i, c := range cells {
			if c == nil || c.Kind() == wire.KindNull {
				recs[i] = wire.Object()
			} else {
				recs[i] = c
			}
		}
		return e.table(recs)
	default:
		entries := make([]value.Entry, len(cells))
		for i, c := range cells {
			if c == nil {
				entries[i] = value.Entry{Value: value.Null{}}
			} else {
				entries[i] = value.Entry{Value: e.value(c)}
			}
		}
		return &value.List{Entries: entries}
	}
}

func (e *engine) list(elems []*wire.Value) value.Value {
	entries := make([]value.Entry, len(elems))
	for i, el := range elems {
		entries[i] = value.Entry{Value: e.value(el)}
	}
	return &value.List{Entries: entries}
}

// object produces a named list. Repeated keys keep every occurrence in
// order; objects are never simplified to scalars.
func (e *engine) object(v *wire.Value) value.Value {
	ms := v.Members()
	entries := make([]value.Entry, len(ms))
	for i, m := range ms {
		entries[i] = value.Entry{Name: e.keyName(m.Key), Value: e.value(m.Value)}
	}
	return &value.List{Entries: entries}
}

func (e *engine) keyName(key string) string {
	switch e.opts.KeyCase {
	case "camel":
		return strcase.ToLowerCamel(key)
	case "snake":
		return strcase.ToSnake(key)
	case "kebab":
		return strcase.ToKebab(key)
	default:
		return key
	}
}

// commonKind unifies leaf kinds through the promotion lattice. Nulls and
// absent cells never affect the result; an all-missing input resolves to
// the bottom kind, bool.
func commonKind(elems []*wire.Value) value.Kind {
	k := kindNone
	for _, el := range elems {
		if el == nil || el.Kind() == wire.KindNull {
			continue
		}
		k = max(k, leafKind(el))
	}
	if k == kindNone {
		k = value.KindBool
	}
	return k
}

func leafKind(v *wire.Value) value.Kind {
	switch v.Kind() {
	case wire.KindBool:
		return value.KindBool
	case wire.KindNumber:
		if _, ok := v.Int64(); ok {
			return value.KindInt
		}
		return value.KindDouble
	case wire.KindString:
		return value.KindString
	}
	return kindNone
}

// scalarAs materializes one leaf at the promoted kind k. Absent and null
// leaves become NA; booleans promote numerically as 1/0; elements promoted
// to string keep their wire text verbatim.
func scalarAs(v *wire.Value, k value.Kind) value.Value {
	if v == nil || v.Kind() == wire.KindNull {
		return value.NA()
	}
	switch k {
	case value.KindBool:
		return value.Bool(v.BoolVal())
	case value.KindInt:
		if v.Kind() == wire.KindBool {
			if v.BoolVal() {
				return value.Int(1)
			}
			return value.Int(0)
		}
		i, _ := v.Int64()
		return value.Int(i)
	case value.KindDouble:
		if v.Kind() == wire.KindBool {
			if v.BoolVal() {
				return value.Double(1)
			}
			return value.Double(0)
		}
		f, _ := v.Float64()
		return value.Double(f)
	case value.KindString:
		return value.Str(stringText(v))
	}
	return value.NA()
}

func stringText(v *wire.Value) string {
	switch v.Kind() {
	case wire.KindBool:
		if v.BoolVal() {
			return "true"
		}
		return "false"
	default:
		// String content or number text, verbatim.
		return v.Text()
	}
}

func allObjects(elems []*wire.Value) bool {
	for _, el := range elems {
		if el.Kind() != wire.KindObject {
			return false
		}
	}
	return true
}

func allArrays(elems []*wire.Value) bool {
	for _, el := range elems {
		if el.Kind() != wire.KindArray {
			return false
		}
	}
	return true
}
