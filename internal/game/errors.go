package game

import (
	"fmt"

	"github.com/oonogame/oono/internal/protocol"
)

// Error is a rule or lookup failure returned as data from every
// transition, never panicked or swallowed. Code is the stable machine
// identifier from the wire protocol; Message is display text.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

var (
	ErrGameNotFound       = &Error{Code: protocol.ErrCodeGameNotFound, Message: "game does not exist"}
	ErrPlayerNotFound     = &Error{Code: protocol.ErrCodePlayerNotFound, Message: "player does not exist"}
	ErrInvalidGMToken     = &Error{Code: protocol.ErrCodeInvalidGMToken, Message: "not the creator's token"}
	ErrIllegalMove        = &Error{Code: protocol.ErrCodeIllegalMove, Message: "that move is illegal"}
	ErrGameAlreadyStarted = &Error{Code: protocol.ErrCodeGameAlreadyStarted, Message: "game has already started"}
)

// ErrCardOutOfRange builds an index error naming the offending index.
func ErrCardOutOfRange(index int) *Error {
	return &Error{
		Code:    protocol.ErrCodeCardOutOfRange,
		Message: fmt.Sprintf("card index %d is out of range", index),
	}
}

// ErrInvalidID builds a malformed-identifier error. Distinct from
// "well-formed but unknown", which is game_not_found or
// player_not_found.
func ErrInvalidID(raw string, cause error) *Error {
	return &Error{
		Code:    protocol.ErrCodeInvalidID,
		Message: fmt.Sprintf("%q is not a valid id: %v", raw, cause),
	}
}
