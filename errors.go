package jsonlite

import (
	"errors"
	"fmt"

	"github.com/kevinushey/jsonlite/internal/encode"
	"github.com/kevinushey/jsonlite/internal/parser"
)

// ParseError reports malformed JSON text, with the byte offset of the
// failure and a short snippet of the surrounding input.
type ParseError struct {
	Offset  int64
	Snippet string
	Msg     string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Snippet != "" {
		return fmt.Sprintf("parse error at offset %d near %q: %s", e.Offset, e.Snippet, e.Msg)
	}
	return fmt.Sprintf("parse error at offset %d: %s", e.Offset, e.Msg)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError reports input that is not a JSON object or array at the
// top level, or that failed full pre-validation.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// UnsupportedTypeError reports an encode-side value with no defined JSON
// mapping while Force is disabled.
type UnsupportedTypeError struct {
	Type string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("cannot encode value of type %s", e.Type)
}

// DepthExceededError reports input nested beyond DecodeOptions.MaxDepth.
type DepthExceededError struct {
	Limit int
}

func (e *DepthExceededError) Error() string {
	return fmt.Sprintf("nesting depth exceeds the configured limit of %d", e.Limit)
}

// asParseError translates parser failures into the public error surface.
func asParseError(err error) error {
	var de *parser.DepthError
	if errors.As(err, &de) {
		return &DepthExceededError{Limit: de.Limit}
	}
	var se *parser.SyntaxError
	if errors.As(err, &se) {
		return &ParseError{Offset: se.Offset, Snippet: se.Snippet, Msg: se.Msg, Err: se.Err}
	}
	return err
}

// asEncodeError translates encoding failures into the public error surface.
func asEncodeError(err error) error {
	var ue *encode.UnsupportedError
	if errors.As(err, &ue) {
		return &UnsupportedTypeError{Type: ue.Type}
	}
	return err
}
