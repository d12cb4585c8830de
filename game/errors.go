package game

import (
	"errors"
	"fmt"
)

// Code classifies an engine failure. Controllers map codes to HTTP statuses.
type Code string

const (
	CodeInvalidInput     Code = "invalid_input"
	CodePlayerNotFound   Code = "player_not_found"
	CodeGameNotFound     Code = "game_not_found"
	CodeAlreadyJoined    Code = "already_joined"
	CodeGameFull         Code = "game_full"
	CodeNotYourTurn      Code = "not_your_turn"
	CodeCardsNotOwned    Code = "cards_not_owned"
	CodeInvalidShape     Code = "invalid_shape"
	CodeNoDeclarationYet Code = "no_declaration_yet"
	CodeGameOver         Code = "game_over"
	CodeContention       Code = "contention"
	CodeStorage          Code = "storage_error"
)

// ErrNotFound is returned by Store implementations when a row does not
// exist, so the engine can tell a missing record from a storage failure.
var ErrNotFound = errors.New("record not found")

/*
 * 'Error' carries the failing operation's identity alongside the taxonomy
 * code. Every error the engine returns is one of these.
 */
type Error struct {
	Op   string // engine operation, e.g. "game.Throw"
	Code Code
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Code, e.Err)
	}
	if e.Msg != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Code, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Code)
}

func (e *Error) Unwrap() error { return e.Err }

func fail(op string, code Code, msg string) error {
	return &Error{Op: op, Code: code, Msg: msg}
}

// storeFail wraps a Store error, keeping ErrNotFound translation to the
// caller (a missing game and a broken connection are different failures).
func storeFail(op string, err error) error {
	return &Error{Op: op, Code: CodeStorage, Err: err}
}

// CodeOf extracts the taxonomy code from err, or CodeStorage if err did not
// originate in the engine.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeStorage
}

// Retryable reports whether the caller may simply retry the request.
func Retryable(err error) bool {
	return CodeOf(err) == CodeContention
}
