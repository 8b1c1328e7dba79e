package parser

import (
	"unicode/utf16"
	"unicode/utf8"
)

// ExpandUnicode rewrites \uXXXX escape sequences inside string literals to
// their literal UTF-8 bytes, pairing surrogates where both halves are
// present. Escapes whose expansion would change the meaning of the text
// (quotes, backslashes, control characters) and lone surrogates are left
// untouched, as is anything outside a string literal.
func ExpandUnicode(data []byte) []byte {
	out := make([]byte, 0, len(data))
	inString := false
	for i := 0; i < len(data); {
		c := data[i]
		if !inString {
			if c == '"' {
				inString = true
			}
			out = append(out, c)
			i++
			continue
		}
		switch c {
		case '"':
			inString = false
			out = append(out, c)
			i++
		case '\\':
			if i+1 >= len(data) {
				out = append(out, c)
				i++
				break
			}
			if data[i+1] != 'u' {
				// Some other escape; copy both bytes so an escaped quote
				// is not mistaken for the end of the string.
				out = append(out, data[i], data[i+1])
				i += 2
				break
			}
			r, ok := hex4(data, i+2)
			if !ok {
				out = append(out, data[i], data[i+1])
				i += 2
				break
			}
			width := 6
			if utf16.IsSurrogate(r) {
				r2, ok2 := hex4at(data, i+6)
				paired := ok2 && utf16.IsSurrogate(r2)
				if paired {
					if combined := utf16.DecodeRune(r, r2); combined != utf8.RuneError {
						r = combined
						width = 12
					} else {
						paired = false
					}
				}
				if !paired {
					// Lone surrogate; keep the escape for the tokenizer.
					out = append(out, data[i:i+6]...)
					i += 6
					break
				}
			}
			if r < 0x20 || r == '"' || r == '\\' {
				out = append(out, data[i:i+width]...)
				i += width
				break
			}
			var buf [utf8.UTFMax]byte
			n := utf8.EncodeRune(buf[:], r)
			out = append(out, buf[:n]...)
			i += width
		default:
			out = append(out, c)
			i++
		}
	}
	return out
}

// hex4 parses the four hex digits at data[i:i+4].
func hex4(data []byte, i int) (rune, bool) {
	if i+4 > len(data) {
		return 0, false
	}
	var r rune
	for _, c := range data[i : i+4] {
		r <<= 4
		switch {
		case c >= '0' && c <= '9':
			r |= rune(c - '0')
		case c >= 'a' && c <= 'f':
			r |= rune(c-'a') + 10
		case c >= 'A' && c <= 'F':
			r |= rune(c-'A') + 10
		default:
			return 0, false
		}
	}
	return r, true
}

// hex4at parses a full \uXXXX sequence starting at data[i].
func hex4at(data []byte, i int) (rune, bool) {
	if i+6 > len(data) || data[i] != '\\' || data[i+1] != 'u' {
		return 0, false
	}
	return hex4(data, i+2)
}
