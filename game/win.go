package game

import (
	"errors"
	"fmt"
	"log"

	models "Bluff/models/postgres"
)

// IsGameOver reports whether the game has concluded and who won.
func (e *Engine) IsGameOver(gameID uint) (bool, *uint, error) {
	const op = "game.IsGameOver"
	g, err := e.requireGame(op, gameID)
	if err != nil {
		return false, nil, err
	}
	return g.WinnerID != nil, g.WinnerID, nil
}

// settlePendingWin finalizes a win that was left pending to keep the
// challenge window open: the previous throw emptied its thrower's hand and
// nobody challenged it away. Called before processing a new throw; returns
// the winner id when it finalizes one.
func (e *Engine) settlePendingWin(op string, gameID uint) (*uint, error) {
	last, err := e.store.LastTurnAction(gameID)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storeFail(op, err)
	}
	if last.Kind != models.ActionThrown {
		// A challenge already settled the last throw; any resulting win
		// was finalized inside that challenge.
		return nil, nil
	}
	ids, dealt, err := e.store.LatestHand(gameID, last.PlayerID)
	if err != nil {
		return nil, storeFail(op, err)
	}
	if !dealt || len(ids) > 0 {
		return nil, nil
	}
	err = e.store.Atomic(func(s Store) error {
		return e.finalizeWin(op, s, gameID, last.PlayerID)
	})
	if err != nil {
		return nil, err
	}
	winner := last.PlayerID
	return &winner, nil
}

// finalizeWin sets the winner and increments the scoreboard, both exactly
// once: the winner column is compare-and-set and the increment only runs
// for the call that won the transition. s is the transactional store of
// the surrounding action.
func (e *Engine) finalizeWin(op string, s Store, gameID, playerID uint) error {
	won, err := s.SetWinner(gameID, playerID)
	if err != nil {
		return storeFail(op, err)
	}
	if !won {
		return nil
	}
	if err := s.IncrementWins(playerID, gameID); err != nil {
		return storeFail(op, err)
	}
	log.Printf("Game %d won by player %d", gameID, playerID)
	return nil
}

// failGameOver builds the GameOver rejection, naming the winner when known.
func failGameOver(op string, winnerID *uint) error {
	if winnerID != nil {
		return fail(op, CodeGameOver, fmt.Sprintf("game is over, winner is player %d", *winnerID))
	}
	return fail(op, CodeGameOver, "game is over")
}
