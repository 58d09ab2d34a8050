package mediaq

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a ParseError.
type ErrorKind int

const (
	UnknownFeature  ErrorKind = iota // Feature name is not recognized
	MalformedValue                   // Value does not fit the feature
	UnexpectedToken                  // Structural violation
	UnbalancedGroup                  // Parentheses do not pair up
)

// Sentinel errors for each ErrorKind, for use with errors.Is.
var (
	ErrUnknownFeature  = errors.New("unknown media feature")
	ErrMalformedValue  = errors.New("malformed media feature value")
	ErrUnexpectedToken = errors.New("unexpected token in media query")
	ErrUnbalancedGroup = errors.New("unbalanced parentheses in media query")
)

func (k ErrorKind) String() string {
	switch k {
	case UnknownFeature:
		return "UnknownFeature"
	case MalformedValue:
		return "MalformedValue"
	case UnexpectedToken:
		return "UnexpectedToken"
	case UnbalancedGroup:
		return "UnbalancedGroup"
	default:
		return "Unknown"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case UnknownFeature:
		return ErrUnknownFeature
	case MalformedValue:
		return ErrMalformedValue
	case UnbalancedGroup:
		return ErrUnbalancedGroup
	default:
		return ErrUnexpectedToken
	}
}

// ParseError describes why a media query list failed to parse.
type ParseError struct {
	Kind   ErrorKind
	Text   string // Offending substring; empty at end of input
	Offset int    // 0-based byte offset of Text in the input
	Msg    string // Optional detail, e.g. what was expected
}

func (e *ParseError) Error() string {
	var what string
	if e.Text == "" {
		what = fmt.Sprintf("%v at end of input", e.Kind.sentinel())
	} else {
		what = fmt.Sprintf("%v %q at offset %d", e.Kind.sentinel(), e.Text, e.Offset)
	}
	if e.Msg != "" {
		return what + ": " + e.Msg
	}
	return what
}

// Unwrap returns the sentinel error for the kind.
func (e *ParseError) Unwrap() error {
	return e.Kind.sentinel()
}

// Column returns the 1-based column of the error within a single-line input.
func (e *ParseError) Column() int {
	return e.Offset + 1
}

func errorAt(kind ErrorKind, tok token, msg string) *ParseError {
	return &ParseError{Kind: kind, Text: tok.text, Offset: tok.offset, Msg: msg}
}

// errorSpan reports an error covering src[from:to].
func errorSpan(kind ErrorKind, src string, from, to int, msg string) *ParseError {
	return &ParseError{Kind: kind, Text: src[from:to], Offset: from, Msg: msg}
}

// errorAtEnd reports an error at the end of input.
func errorAtEnd(kind ErrorKind, src string, msg string) *ParseError {
	return &ParseError{Kind: kind, Offset: len(src), Msg: msg}
}
