// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package bentree

import (
	"errors"
	"fmt"
)

// Errors reported by Tokenize and Parse. A *SyntaxError wraps one of these,
// so use errors.Is to check which condition occurred.
var (
	ErrMalformedInteger = errors.New("malformed integer")
	ErrMalformedString  = errors.New("malformed string")
	ErrUnexpectedToken  = errors.New("unexpected token")
	ErrUnmatchedEnd     = errors.New("unmatched end marker")
	ErrUnterminated     = errors.New("unterminated container")
	ErrTrailingData     = errors.New("trailing data after value")
	ErrDepthLimit       = errors.New("depth limit exceeded")
	ErrTokenLimit       = errors.New("token limit exceeded")
	ErrInputTooLarge    = errors.New("input too large")
	ErrUnsortedKeys     = errors.New("dictionary keys out of order")
)

// Errors reported by the accessors of a Node.
var (
	ErrTypeMismatch = errors.New("type mismatch")
	ErrNotFound     = errors.New("not found")
)

// SyntaxError is the concrete type of errors reported by the tokenizer.
type SyntaxError struct {
	Offset  int    // byte offset in the input where the error was detected
	Message string // a human-readable description, may be empty

	err error
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	if s.Message == "" {
		return fmt.Sprintf("at offset %d: %v", s.Offset, s.err)
	}
	return fmt.Sprintf("at offset %d: %v: %s", s.Offset, s.err, s.Message)
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.err }

func syntaxError(pos int, err error, msg string, args ...any) *SyntaxError {
	return &SyntaxError{Offset: pos, Message: fmt.Sprintf(msg, args...), err: err}
}

// typeError reports that an accessor expecting want was applied to got.
func typeError(want, got Kind) error {
	return fmt.Errorf("%w: have %v, want %v", ErrTypeMismatch, got, want)
}
