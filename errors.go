package ganrobot

import (
	"errors"
	"fmt"
)

// Sentinel errors for the ganrobot package.
var (
	// Parsing errors
	ErrInvalidNotation = errors.New("ganrobot: invalid move notation")

	// Scramble errors
	ErrInvalidCount = errors.New("ganrobot: negative scramble length")
	ErrFacePool     = errors.New("ganrobot: scramble face pool needs at least two faces")

	// Encoding errors
	ErrUnsupportedMove = errors.New("ganrobot: robot cannot drive this move")

	// Decoding errors
	ErrMalformedFrame = errors.New("ganrobot: malformed status frame")
)

// ParseError reports a rejected move token and its position in the input.
// Pos is the 1-based token index within the whitespace-separated sequence.
type ParseError struct {
	Token string
	Pos   int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("ganrobot: invalid move %q at position %d", e.Token, e.Pos)
}

// Unwrap allows errors.Is(err, ErrInvalidNotation).
func (e *ParseError) Unwrap() error { return ErrInvalidNotation }

// DecodeError reports a status frame that could not be decoded.
type DecodeError struct {
	Len    int
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("ganrobot: cannot decode %d-byte status frame: %s", e.Len, e.Reason)
}

// Unwrap allows errors.Is(err, ErrMalformedFrame).
func (e *DecodeError) Unwrap() error { return ErrMalformedFrame }
