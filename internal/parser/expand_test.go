package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandUnicode(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want string
	}{
		{"BasicLatin", "{\"a\": \"caf\\u00e9\"}", "{\"a\": \"café\"}"},
		{"UppercaseHex", "[\"\\u00C9\"]", "[\"É\"]"},
		{"SurrogatePair", "[\"\\ud83d\\ude00\"]", "[\"\U0001f600\"]"},
		{"MultipleInOneString", "[\"\\u00e9\\u00e8\"]", "[\"éè\"]"},
		{"NoEscapes", `{"plain": [1, 2, 3]}`, `{"plain": [1, 2, 3]}`},

		// Expansions that would change the meaning of the text stay escaped.
		{"QuoteStaysEscaped", "[\"\\u0022\"]", "[\"\\u0022\"]"},
		{"BackslashStaysEscaped", "[\"\\u005c\"]", "[\"\\u005c\"]"},
		{"ControlStaysEscaped", "[\"\\u0001\"]", "[\"\\u0001\"]"},
		{"LoneHighSurrogate", "[\"\\ud800\"]", "[\"\\ud800\"]"},
		{"LoneLowSurrogate", "[\"\\ude00x\"]", "[\"\\ude00x\"]"},

		// A preceding escaped backslash means the "u" is literal text.
		{"EscapedBackslashBeforeU", "[\"\\\\u0041\"]", "[\"\\\\u0041\"]"},
		{"OtherEscapeUntouched", "[\"a\\nb\"]", "[\"a\\nb\"]"},
		{"TruncatedEscape", "[\"\\u00", "[\"\\u00"},
		{"BadHexDigits", "[\"\\uZZZZ\"]", "[\"\\uZZZZ\"]"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := string(ExpandUnicode([]byte(tc.in)))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestExpandUnicodeKeepsValidJSON(t *testing.T) {
	src := "{\"caf\\u00e9\": \"\\u00e9 and \\u0022quoted\\u0022\", \"emoji\": \"\\ud83d\\ude00\"}"
	expanded := ExpandUnicode([]byte(src))

	root, err := Parse(expanded, 0)
	require.NoError(t, err)

	v, ok := root.Get("café")
	require.True(t, ok, "keys are expanded too")
	assert.Equal(t, "é and \"quoted\"", v.Text())

	emoji, ok := root.Get("emoji")
	require.True(t, ok)
	assert.Equal(t, "\U0001f600", emoji.Text())
}
