package encode

import (
	"encoding"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/kevinushey/jsonlite/value"
)

// Wrap converts plain Go data into a structured value ahead of encoding.
// Structured values pass through unchanged. Types with no defined mapping
// fail unless force is set, which strips them to their MarshalText output
// when they have one and to their printed form otherwise.
func Wrap(v any, force bool) (value.Value, error) {
	switch t := v.(type) {
	case nil:
		return value.Null{}, nil
	case value.Value:
		return t, nil
	case bool:
		return value.Bool(t), nil
	case int:
		return value.Int(int64(t)), nil
	case int8:
		return value.Int(int64(t)), nil
	case int16:
		return value.Int(int64(t)), nil
	case int32:
		return value.Int(int64(t)), nil
	case int64:
		return value.Int(t), nil
	case uint:
		return wrapUint(uint64(t)), nil
	case uint8:
		return wrapUint(uint64(t)), nil
	case uint16:
		return wrapUint(uint64(t)), nil
	case uint32:
		return wrapUint(uint64(t)), nil
	case uint64:
		return wrapUint(t), nil
	case float32:
		return value.Double(float64(t)), nil
	case float64:
		return value.Double(t), nil
	case string:
		return value.Str(t), nil
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return value.Int(i), nil
		}
		f, err := t.Float64()
		if err != nil {
			return nil, &UnsupportedError{Type: fmt.Sprintf("json.Number %q", string(t))}
		}
		return value.Double(f), nil
	case []byte:
		return value.NewBytes(t), nil
	case time.Time:
		return value.DateTime(t), nil
	case complex128:
		return value.NewComplex(real(t), imag(t)), nil
	case complex64:
		return value.NewComplex(float64(real(t)), float64(imag(t))), nil
	case []bool:
		return value.Bools(t...), nil
	case []int:
		elems := make([]value.Value, len(t))
		for i, n := range t {
			elems[i] = value.Int(int64(n))
		}
		return &value.Sequence{Kind: value.KindInt, Elems: elems}, nil
	case []int64:
		return value.Ints(t...), nil
	case []float64:
		return value.Doubles(t...), nil
	case []string:
		return value.Strings(t...), nil
	case []time.Time:
		elems := make([]value.Value, len(t))
		for i, ts := range t {
			elems[i] = value.DateTime(ts)
		}
		return &value.Sequence{Kind: value.KindTemporal, Elems: elems}, nil
	case []complex128:
		elems := make([]value.Value, len(t))
		for i, c := range t {
			elems[i] = value.NewComplex(real(c), imag(c))
		}
		return &value.Sequence{Kind: value.KindComplex, Elems: elems}, nil
	case []any:
		entries := make([]value.Entry, len(t))
		for i, el := range t {
			w, err := Wrap(el, force)
			if err != nil {
				return nil, err
			}
			entries[i] = value.Entry{Value: w}
		}
		return &value.List{Entries: entries}, nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		entries := make([]value.Entry, 0, len(t))
		for _, k := range keys {
			w, err := Wrap(t[k], force)
			if err != nil {
				return nil, err
			}
			entries = append(entries, value.Entry{Name: k, Value: w})
		}
		return &value.List{Entries: entries}, nil
	default:
		if !force {
			return nil, &UnsupportedError{Type: fmt.Sprintf("%T", v)}
		}
		if tm, ok := v.(encoding.TextMarshaler); ok {
			b, err := tm.MarshalText()
			if err != nil {
				return nil, fmt.Errorf("marshal text for %T: %w", v, err)
			}
			return value.Str(string(b)), nil
		}
		return value.Str(fmt.Sprint(v)), nil
	}
}

// wrapUint keeps unsigned values integral while they fit; beyond int64
// range they degrade to doubles.
func wrapUint(u uint64) value.Value {
	if u <= math.MaxInt64 {
		return value.Int(int64(u))
	}
	return value.Double(float64(u))
}
