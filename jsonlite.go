// Package jsonlite is a bidirectional, type-preserving codec between JSON
// text and a structured value model: typed sequences, tables with named
// columns, multi-dimensional arrays, categorical, temporal, complex and
// byte values, and explicit missing-value markers.
//
// Decoding promotes JSON arrays into the most specific structured
// representation they support: an array of scalars becomes a typed
// sequence, an array of objects becomes a table, and uniform nested
// arrays become a dimensioned array, with heterogeneous lists as the
// fallback when no promotion applies. Encoding reverses the trip under
// configurable representation choices, so a decoded document re-encodes
// to an equivalent one.
package jsonlite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kevinushey/jsonlite/internal/encode"
	"github.com/kevinushey/jsonlite/internal/parser"
	"github.com/kevinushey/jsonlite/internal/simplify"
	"github.com/kevinushey/jsonlite/internal/writer"
	"github.com/kevinushey/jsonlite/value"
)

// Decode parses JSON text and simplifies it into a structured value. A
// nil opts means DefaultDecodeOptions(). The top-level value must be an
// object or an array.
func Decode(data []byte, opts *DecodeOptions) (value.Value, error) {
	o, err := opts.normalized()
	if err != nil {
		return nil, err
	}
	if o.UnicodeEscapes {
		data = parser.ExpandUnicode(data)
	}
	if err := guard(data, o.Validate); err != nil {
		return nil, err
	}
	tree, err := parser.Parse(data, o.MaxDepth)
	if err != nil {
		return nil, asParseError(err)
	}
	return simplify.Simplify(tree, simplifyOptions(o)), nil
}

// DecodeString decodes JSON from a string.
func DecodeString(text string, opts *DecodeOptions) (value.Value, error) {
	return Decode([]byte(text), opts)
}

// DecodeReader decodes JSON from a reader, consuming it fully first.
func DecodeReader(r io.Reader, opts *DecodeOptions) (value.Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return Decode(data, opts)
}

// DecodeFile decodes JSON from a file.
func DecodeFile(path string, opts *DecodeOptions) (value.Value, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("file path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file %q not found", path)
		}
		return nil, fmt.Errorf("read %q: %w", path, err)
	}
	return Decode(data, opts)
}

// Encode serializes a structured value, or plain Go data (bools, numbers,
// strings, []byte, time.Time, complex values, slices and string-keyed
// maps of these), to JSON text. A nil opts means DefaultEncodeOptions().
func Encode(v any, opts *EncodeOptions) ([]byte, error) {
	o, err := opts.normalized()
	if err != nil {
		return nil, err
	}
	wrapped, err := encode.Wrap(v, o.Force)
	if err != nil {
		return nil, asEncodeError(err)
	}
	tree, err := encode.Encode(wrapped, encodeOptions(o))
	if err != nil {
		return nil, asEncodeError(err)
	}
	out := writer.Write(tree, writer.Options{EscapeUnicode: o.EscapeUnicode})
	if o.Pretty {
		return writer.Indent(out)
	}
	return out, nil
}

// Valid reports whether data is syntactically valid JSON.
func Valid(data []byte) bool {
	return json.Valid(data)
}

// Minify rewrites JSON text with insignificant whitespace removed.
func Minify(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Prettify reformats JSON text with two-space indentation.
func Prettify(data []byte) ([]byte, error) {
	return writer.Indent(data)
}

// Flatten replaces nested table columns with one column per leaf field,
// named parent.child, depth-first in the original column order.
func Flatten(t *value.Table) *value.Table {
	return simplify.Flatten(t)
}

// guard enforces the top-level shape cheaply, or fully when requested.
func guard(data []byte, full bool) error {
	i := 0
	for i < len(data) && isSpace(data[i]) {
		i++
	}
	if i == len(data) {
		return &ValidationError{Msg: "input is empty or contains only whitespace"}
	}
	if c := data[i]; c != '{' && c != '[' {
		return &ValidationError{Msg: fmt.Sprintf("top-level JSON value must be an object or array, found %q", c)}
	}
	if full && !json.Valid(data) {
		return &ValidationError{Msg: "input is not valid JSON"}
	}
	return nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func simplifyOptions(o DecodeOptions) simplify.Options {
	return simplify.Options{
		Vector:    o.SimplifyVector,
		DataFrame: o.SimplifyDataFrame,
		Matrix:    o.SimplifyMatrix,
		Flatten:   o.Flatten,
		KeyCase:   o.KeyCase,
	}
}

func encodeOptions(o EncodeOptions) encode.Options {
	return encode.Options{
		DataFrame: o.DataFrame,
		Matrix:    o.Matrix,
		Factor:    o.Factor,
		Temporal:  o.Temporal,
		Complex:   o.Complex,
		Raw:       o.Raw,
		NA:        o.NA,
		Null:      o.Null,
		AutoUnbox: o.AutoUnbox,
		Digits:    *o.Digits,
	}
}
