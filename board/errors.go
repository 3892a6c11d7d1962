package board

import (
	"errors"
	"fmt"
)

// Sentinel errors. Use errors.Is to test for them through the typed wrappers.
var (
	// ErrInvalidFEN indicates a malformed or impossible position string.
	ErrInvalidFEN = errors.New("invalid FEN")

	// ErrIllegalMove indicates a move that is not in the legal move list.
	ErrIllegalMove = errors.New("illegal move")
)

// FENError reports which FEN field was rejected and why.
type FENError struct {
	Field  string // placement, side, castling, en passant, halfmove, fullmove, position
	Value  string
	Reason string
}

func (e *FENError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%v: %s: %s", ErrInvalidFEN, e.Field, e.Reason)
	}
	return fmt.Sprintf("%v: %s %q: %s", ErrInvalidFEN, e.Field, e.Value, e.Reason)
}

// Unwrap returns ErrInvalidFEN so errors.Is works through the wrapper.
func (e *FENError) Unwrap() error { return ErrInvalidFEN }

// IllegalMoveError carries the squares of a rejected move.
type IllegalMoveError struct {
	From, To Square
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("%v: %s%s", ErrIllegalMove, e.From, e.To)
}

// Unwrap returns ErrIllegalMove so errors.Is works through the wrapper.
func (e *IllegalMoveError) Unwrap() error { return ErrIllegalMove }
