// Package writer serializes wire value trees to compact JSON text.
package writer

import (
	"bytes"
	"encoding/json"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/kevinushey/jsonlite/internal/wire"
)

// Options configure text emission.
type Options struct {
	// EscapeUnicode emits every non-ASCII character as a \uXXXX escape
	// (surrogate pairs above the BMP) instead of literal UTF-8.
	EscapeUnicode bool
}

// Write renders v as compact JSON text.
func Write(v *wire.Value, opts Options) []byte {
	w := &writer{opts: opts}
	w.value(v)
	return w.buf.Bytes()
}

// Indent reformats compact JSON text with two-space indentation.
func Indent(data []byte) ([]byte, error) {
	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

type writer struct {
	buf  bytes.Buffer
	opts Options
}

func (w *writer) value(v *wire.Value) {
	switch v.Kind() {
	case wire.KindNull:
		w.buf.WriteString("null")
	case wire.KindBool:
		if v.BoolVal() {
			w.buf.WriteString("true")
		} else {
			w.buf.WriteString("false")
		}
	case wire.KindNumber:
		w.buf.WriteString(v.Text())
	case wire.KindString:
		w.string(v.Text())
	case wire.KindArray:
		w.buf.WriteByte('[')
		for i, e := range v.Elems() {
			if i > 0 {
				w.buf.WriteByte(',')
			}
			w.value(e)
		}
		w.buf.WriteByte(']')
	case wire.KindObject:
		w.buf.WriteByte('{')
		for i, m := range v.Members() {
			if i > 0 {
				w.buf.WriteByte(',')
			}
			w.string(m.Key)
			w.buf.WriteByte(':')
			w.value(m.Value)
		}
		w.buf.WriteByte('}')
	}
}

const hexDigits = "0123456789abcdef"

func (w *writer) string(s string) {
	w.buf.WriteByte('"')
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			if c >= 0x20 && c != '"' && c != '\\' {
				w.buf.WriteByte(c)
				i++
				continue
			}
			w.buf.WriteByte('\\')
			switch c {
			case '"', '\\':
				w.buf.WriteByte(c)
			case '\b':
				w.buf.WriteByte('b')
			case '\f':
				w.buf.WriteByte('f')
			case '\n':
				w.buf.WriteByte('n')
			case '\r':
				w.buf.WriteByte('r')
			case '\t':
				w.buf.WriteByte('t')
			default:
				w.buf.WriteString("u00")
				w.buf.WriteByte(hexDigits[c>>4])
				w.buf.WriteByte(hexDigits[c&0xf])
			}
			i++
			continue
		}
		// Invalid bytes decode as utf8.RuneError and are emitted as the
		// replacement character.
		r, size := utf8.DecodeRuneInString(s[i:])
		if w.opts.EscapeUnicode {
			if r > 0xffff {
				hi, lo := utf16.EncodeRune(r)
				w.escapeRune(hi)
				w.escapeRune(lo)
			} else {
				w.escapeRune(r)
			}
		} else {
			w.buf.WriteRune(r)
		}
		i += size
	}
	w.buf.WriteByte('"')
}

func (w *writer) escapeRune(r rune) {
	w.buf.WriteString("\\u")
	w.buf.WriteByte(hexDigits[(r>>12)&0xf])
	w.buf.WriteByte(hexDigits[(r>>8)&0xf])
	w.buf.WriteByte(hexDigits[(r>>4)&0xf])
	w.buf.WriteByte(hexDigits[r&0xf])
}
