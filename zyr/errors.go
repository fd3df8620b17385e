package zyr

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrEndOfInput is returned by PromptAndRead when the line source
// is exhausted at the primary prompt. It wraps io.EOF.
var ErrEndOfInput = fmt.Errorf("end of input: %w", io.EOF)

// ErrUnterminatedList means the line source ran dry while a list
// was still open.
var ErrUnterminatedList = errors.New("unterminated list at end of input")

var ErrTooDeep = errors.New("lists nested too deeply")

type SymbolTooLongError struct {
	Prefix string
	Limit  int
}

func (e *SymbolTooLongError) Error() string {
	return fmt.Sprintf("symbol longer than %d characters: '%s...'", e.Limit, e.Prefix)
}

type IntegerOverflowError struct {
	Digits string
}

func (e *IntegerOverflowError) Error() string {
	return fmt.Sprintf("integer literal out of range: '%s'", e.Digits)
}

type UnexpectedCharError struct {
	Char byte
	Rest string
}

func (e *UnexpectedCharError) Error() string {
	return fmt.Sprintf("unexpected character %q: '%s'", e.Char, e.Rest)
}

// IsSyntaxError reports whether err came from the text typed, as
// opposed to the line source failing. The session can carry on
// after a syntax error.
func IsSyntaxError(err error) bool {
	var tooLong *SymbolTooLongError
	var overflow *IntegerOverflowError
	var unexpected *UnexpectedCharError
	var trailing *TrailingTextError
	return errors.Is(err, ErrTooDeep) ||
		errors.As(err, &tooLong) ||
		errors.As(err, &overflow) ||
		errors.As(err, &unexpected) ||
		errors.As(err, &trailing)
}

// ErrorSink receives recoverable diagnostics as a message plus the
// text it refers to.
type ErrorSink interface {
	Error(msg, context string)
}

type ErrorSinkFunc func(msg, context string)

func (f ErrorSinkFunc) Error(msg, context string) {
	f(msg, context)
}

// StderrSink writes "Error: <msg><context>" lines.
type StderrSink struct {
	W io.Writer
}

func (s *StderrSink) Error(msg, context string) {
	w := s.W
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprintf(w, "Error: %s%s\n", msg, context)
}

// reportError sends err to the sink with whatever context
// the error type carries.
func reportError(sink ErrorSink, err error) {
	var tooLong *SymbolTooLongError
	var overflow *IntegerOverflowError
	var unexpected *UnexpectedCharError
	switch {
	case errors.As(err, &tooLong):
		sink.Error(fmt.Sprintf("symbol longer than %d characters: ", tooLong.Limit), tooLong.Prefix)
	case errors.As(err, &overflow):
		sink.Error("integer literal out of range: ", overflow.Digits)
	case errors.As(err, &unexpected):
		sink.Error("unexpected character: ", unexpected.Rest)
	default:
		sink.Error(err.Error(), "")
	}
}
