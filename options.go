package jsonlite

import (
	"fmt"
	"strings"
)

// DecodeOptions control simplification and parsing. A nil *DecodeOptions
// means DefaultDecodeOptions().
type DecodeOptions struct {
	// SimplifyVector promotes arrays of scalars into typed sequences.
	SimplifyVector bool
	// SimplifyDataFrame promotes arrays of objects into tables. Implies
	// SimplifyVector.
	SimplifyDataFrame bool
	// SimplifyMatrix promotes uniform nested arrays into dimensioned
	// arrays. Implies SimplifyVector.
	SimplifyMatrix bool
	// Flatten replaces nested table columns with dotted leaf columns.
	Flatten bool
	// UnicodeEscapes pre-expands \uXXXX sequences before parsing.
	UnicodeEscapes bool
	// Validate runs full syntax validation before parsing instead of only
	// the cheap first-byte guard.
	Validate bool
	// MaxDepth bounds input nesting. Zero selects the default of 1000;
	// negative disables the bound.
	MaxDepth int
	// KeyCase renames object keys on list entry and table column names:
	// "none" (default), "camel", "snake" or "kebab". Round-trip fidelity
	// requires "none".
	KeyCase string
}

// DefaultDecodeOptions returns the decoding defaults: all simplifications
// enabled, keys preserved verbatim, nesting bounded at 1000.
func DefaultDecodeOptions() *DecodeOptions {
	return &DecodeOptions{
		SimplifyVector:    true,
		SimplifyDataFrame: true,
		SimplifyMatrix:    true,
		MaxDepth:          1000,
	}
}

func (o *DecodeOptions) normalized() (DecodeOptions, error) {
	var out DecodeOptions
	if o == nil {
		out = *DefaultDecodeOptions()
	} else {
		out = *o
	}
	if out.SimplifyDataFrame || out.SimplifyMatrix {
		out.SimplifyVector = true
	}
	if out.MaxDepth == 0 {
		out.MaxDepth = 1000
	}
	switch out.KeyCase {
	case "", "none":
		out.KeyCase = ""
	case "camel", "snake", "kebab":
	default:
		return out, fmt.Errorf("invalid keyCase option %q (expected one of: none, camel, snake, kebab)", out.KeyCase)
	}
	return out, nil
}

// EncodeOptions control serialization. A nil *EncodeOptions means
// DefaultEncodeOptions(). Empty mode strings select their defaults.
type EncodeOptions struct {
	// DataFrame selects the table orientation: "rows" (default, array of
	// per-row objects) or "columns" (one object keyed by column name).
	DataFrame string
	// Matrix selects the array traversal: "rowmajor" (default) or
	// "columnmajor".
	Matrix string
	// Factor selects the categorical form: "labels" (default) or "codes".
	Factor string
	// Temporal selects the instant form: "iso8601" (default), "epoch",
	// "string" or "mongo".
	Temporal string
	// Complex selects the complex form: "text" (default, "3+4i") or
	// "pair" ([re, im]).
	Complex string
	// Raw selects the byte form: "base64" (default), "hex" or "mongo".
	Raw string
	// NA selects the missing-value form: "null" (default) or "string"
	// (the token "NA").
	NA string
	// Null selects the structured-null form: "list" (default, emits [])
	// or "null".
	Null string
	// AutoUnbox emits length-1 sequences as bare scalars.
	AutoUnbox bool
	// Digits rounds doubles to this many fractional digits before
	// emission (0 rounds to integers); negative disables rounding. Nil
	// selects the default of 4.
	Digits *int
	// Pretty reformats the output with two-space indentation.
	Pretty bool
	// Force strips values with no defined mapping to their printed form
	// instead of failing.
	Force bool
	// EscapeUnicode emits non-ASCII characters as \uXXXX escapes instead
	// of literal UTF-8.
	EscapeUnicode bool
}

// DefaultEncodeOptions returns the encoding defaults.
func DefaultEncodeOptions() *EncodeOptions {
	digits := 4
	return &EncodeOptions{
		DataFrame: "rows",
		Matrix:    "rowmajor",
		Factor:    "labels",
		Temporal:  "iso8601",
		Complex:   "text",
		Raw:       "base64",
		NA:        "null",
		Null:      "list",
		Digits:    &digits,
	}
}

func (o *EncodeOptions) normalized() (EncodeOptions, error) {
	def := DefaultEncodeOptions()
	var out EncodeOptions
	if o == nil {
		out = *def
	} else {
		out = *o
	}
	fill := func(field *string, d string) {
		if *field == "" {
			*field = d
		}
	}
	fill(&out.DataFrame, def.DataFrame)
	fill(&out.Matrix, def.Matrix)
	fill(&out.Factor, def.Factor)
	fill(&out.Temporal, def.Temporal)
	fill(&out.Complex, def.Complex)
	fill(&out.Raw, def.Raw)
	fill(&out.NA, def.NA)
	fill(&out.Null, def.Null)
	if out.Digits == nil {
		out.Digits = def.Digits
	}

	checks := []struct {
		name    string
		got     string
		allowed []string
	}{
		{"dataframe", out.DataFrame, []string{"rows", "columns"}},
		{"matrix", out.Matrix, []string{"rowmajor", "columnmajor"}},
		{"factor", out.Factor, []string{"labels", "codes"}},
		{"temporal", out.Temporal, []string{"iso8601", "epoch", "string", "mongo"}},
		{"complex", out.Complex, []string{"text", "pair"}},
		{"raw", out.Raw, []string{"base64", "hex", "mongo"}},
		{"na", out.NA, []string{"null", "string"}},
		{"null", out.Null, []string{"list", "null"}},
	}
	for _, c := range checks {
		if err := oneOf(c.name, c.got, c.allowed...); err != nil {
			return out, err
		}
	}
	return out, nil
}

func oneOf(name, got string, allowed ...string) error {
	for _, a := range allowed {
		if got == a {
			return nil
		}
	}
	return fmt.Errorf("invalid %s option %q (expected one of: %s)", name, got, strings.Join(allowed, ", "))
}
