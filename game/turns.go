package game

import (
	"errors"

	models "Bluff/models/postgres"
)

// NextSeatOrder derives whose turn it is from the action history alone:
// no history means seat 1 (the creator plays first); otherwise the seat
// after the last actor's, wrapping 1-indexed modulo the player count.
func (e *Engine) NextSeatOrder(gameID uint) (int, error) {
	const op = "game.NextSeatOrder"
	last, err := e.store.LastTurnAction(gameID)
	if errors.Is(err, ErrNotFound) {
		return 1, nil
	}
	if err != nil {
		return 0, storeFail(op, err)
	}
	seats, err := e.store.Seats(gameID)
	if err != nil {
		return 0, storeFail(op, err)
	}
	actorSeat, ok := seatOf(seats, last.PlayerID)
	if !ok {
		return 0, fail(op, CodeStorage, "last actor holds no seat")
	}
	return actorSeat%e.playerCount + 1, nil
}

// IsPlayersTurn reports whether the player sits at the next seat.
func (e *Engine) IsPlayersTurn(gameID, playerID uint) (bool, error) {
	const op = "game.IsPlayersTurn"
	next, err := e.NextSeatOrder(gameID)
	if err != nil {
		return false, err
	}
	seats, err := e.store.Seats(gameID)
	if err != nil {
		return false, storeFail(op, err)
	}
	seat, ok := seatOf(seats, playerID)
	return ok && seat == next, nil
}

// PreviousSeat is the seat that acted before the given one; identifies
// whose hand absorbs bluff cards.
func (e *Engine) PreviousSeat(seat int) int {
	if seat == 1 {
		return e.playerCount
	}
	return seat - 1
}

// requireTurn rejects the action unless it is the player's turn, returning
// the player's seat order on success.
func (e *Engine) requireTurn(op string, gameID, playerID uint) (int, error) {
	next, err := e.NextSeatOrder(gameID)
	if err != nil {
		return 0, err
	}
	seats, err := e.store.Seats(gameID)
	if err != nil {
		return 0, storeFail(op, err)
	}
	seat, ok := seatOf(seats, playerID)
	if !ok {
		return 0, fail(op, CodePlayerNotFound, "player holds no seat in this game")
	}
	if seat != next {
		return 0, fail(op, CodeNotYourTurn, "another player acts next")
	}
	return seat, nil
}

func seatOf(seats []models.GameSeat, playerID uint) (int, bool) {
	for _, s := range seats {
		if s.PlayerID == playerID {
			return s.SeatOrder, true
		}
	}
	return 0, false
}
