// Package parser assembles wire value trees from JSON text.
//
// Tokenization is delegated to the encoding/json streaming tokenizer; this
// package arranges the token stream into an ordered tree, enforces the
// nesting bound, and maps tokenizer failures to positioned syntax errors.
package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	stderrors "errors"

	"github.com/kevinushey/jsonlite/internal/wire"
)

// Sentinel conditions distinguishable with errors.Is.
var (
	ErrEmptyInput   = stderrors.New("input is empty or contains only whitespace")
	ErrTrailingData = stderrors.New("trailing data after the first JSON value")
)

// SyntaxError reports malformed JSON text, with the byte offset of the
// failure and a short snippet of the surrounding input.
type SyntaxError struct {
	Offset  int64
	Snippet string
	Msg     string
	Err     error
}

func (e *SyntaxError) Error() string {
	if e.Snippet != "" {
		return fmt.Sprintf("syntax error at offset %d near %q: %s", e.Offset, e.Snippet, e.Msg)
	}
	return fmt.Sprintf("syntax error at offset %d: %s", e.Offset, e.Msg)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// DepthError reports input nested beyond the configured bound.
type DepthError struct {
	Limit int
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("nesting depth exceeds the configured limit of %d", e.Limit)
}

// Parse decodes a single JSON value from data into a wire tree. Anything
// other than whitespace after the first value is rejected, as is input
// nested deeper than maxDepth levels (0 means unbounded).
func Parse(data []byte, maxDepth int) (*wire.Value, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &SyntaxError{Msg: ErrEmptyInput.Error(), Err: ErrEmptyInput}
	}

	p := &parser{
		data:     data,
		dec:      json.NewDecoder(bytes.NewReader(data)),
		maxDepth: maxDepth,
	}
	p.dec.UseNumber()

	tok, err := p.dec.Token()
	if err != nil {
		return nil, p.syntax(err)
	}
	root, err := p.value(tok, 1)
	if err != nil {
		return nil, err
	}

	// The tokenizer reports io.EOF once the stream is exhausted; any other
	// outcome means a second value or garbage follows the first.
	if _, err := p.dec.Token(); !stderrors.Is(err, io.EOF) {
		if err != nil {
			return nil, p.syntax(err)
		}
		off := p.dec.InputOffset()
		return nil, &SyntaxError{
			Offset:  off,
			Snippet: snippet(data, off),
			Msg:     ErrTrailingData.Error(),
			Err:     ErrTrailingData,
		}
	}
	return root, nil
}

type parser struct {
	data     []byte
	dec      *json.Decoder
	maxDepth int
}

func (p *parser) value(tok json.Token, depth int) (*wire.Value, error) {
	if p.maxDepth > 0 && depth > p.maxDepth {
		return nil, &DepthError{Limit: p.maxDepth}
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return p.object(depth)
		case '[':
			return p.array(depth)
		}
		// Closing delimiters are consumed by object/array below; the
		// tokenizer never hands one to a fresh value.
		return nil, p.unexpected(tok)
	case bool:
		return wire.Bool(t), nil
	case json.Number:
		return wire.Number(string(t)), nil
	case string:
		return wire.String(t), nil
	case nil:
		return wire.Null(), nil
	default:
		return nil, p.unexpected(tok)
	}
}

func (p *parser) array(depth int) (*wire.Value, error) {
	var elems []*wire.Value
	for p.dec.More() {
		tok, err := p.dec.Token()
		if err != nil {
			return nil, p.syntax(err)
		}
		v, err := p.value(tok, depth+1)
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
	}
	if _, err := p.dec.Token(); err != nil { // closing ']'
		return nil, p.syntax(err)
	}
	return wire.Array(elems...), nil
}

func (p *parser) object(depth int) (*wire.Value, error) {
	var members []wire.Member
	for p.dec.More() {
		keyTok, err := p.dec.Token()
		if err != nil {
			return nil, p.syntax(err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, p.unexpected(keyTok)
		}
		valTok, err := p.dec.Token()
		if err != nil {
			return nil, p.syntax(err)
		}
		v, err := p.value(valTok, depth+1)
		if err != nil {
			return nil, err
		}
		members = append(members, wire.Member{Key: key, Value: v})
	}
	if _, err := p.dec.Token(); err != nil { // closing '}'
		return nil, p.syntax(err)
	}
	return wire.Object(members...), nil
}

// syntax converts a tokenizer error into a positioned SyntaxError.
func (p *parser) syntax(err error) error {
	var jse *json.SyntaxError
	if stderrors.As(err, &jse) {
		return &SyntaxError{
			Offset:  jse.Offset,
			Snippet: snippet(p.data, jse.Offset),
			Msg:     jse.Error(),
			Err:     err,
		}
	}
	off := p.dec.InputOffset()
	msg := err.Error()
	if stderrors.Is(err, io.ErrUnexpectedEOF) || stderrors.Is(err, io.EOF) {
		msg = "unexpected end of input"
	}
	return &SyntaxError{Offset: off, Snippet: snippet(p.data, off), Msg: msg, Err: err}
}

func (p *parser) unexpected(tok json.Token) error {
	off := p.dec.InputOffset()
	return &SyntaxError{
		Offset:  off,
		Snippet: snippet(p.data, off),
		Msg:     fmt.Sprintf("unexpected token %v", tok),
	}
}

// snippet cuts a short window of input around off for error context.
func snippet(data []byte, off int64) string {
	const window = 12
	lo := off - window
	if lo < 0 {
		lo = 0
	}
	hi := off + window
	if hi > int64(len(data)) {
		hi = int64(len(data))
	}
	if lo >= hi {
		return ""
	}
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' || r == '\t' {
			return ' '
		}
		return r
	}, string(data[lo:hi]))
}
