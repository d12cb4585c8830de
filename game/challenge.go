package game

import (
	"context"
	"errors"
	"log"

	"Bluff/deck"
	models "Bluff/models/postgres"
)

// ChallengeResult reports how a challenge resolved.
type ChallengeResult struct {
	// Bluff is true when the declaration was a lie: the thrower absorbs.
	Bluff bool `json:"bluff"`
	// LoserID absorbed the disputed cards.
	LoserID         uint        `json:"loser_id"`
	AbsorbedCardIDs []string    `json:"absorbed_card_ids"`
	Declared        Declaration `json:"declared"`
	// WinnerID is set when the resolution ended the game.
	WinnerID *uint `json:"winner_id,omitempty"`
}

// Challenge disputes the most recent throw. The actually-thrown cards are
// revealed and compared against the declared rank: any mismatch means the
// declaration was a bluff and the thrower takes the cards back; a clean
// match means the challenge was wrong and the challenger absorbs them.
// Either way the disputed throw is settled and a new round begins.
func (e *Engine) Challenge(ctx context.Context, gameID, challengerID uint) (*ChallengeResult, error) {
	const op = "game.Challenge"
	release, err := e.locker.AcquireGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	defer release()

	g, err := e.requireGame(op, gameID)
	if err != nil {
		return nil, err
	}
	if _, err := e.requirePlayer(op, challengerID); err != nil {
		return nil, err
	}
	if !g.Dealt {
		return nil, fail(op, CodeInvalidInput, "game is still waiting for players")
	}
	if g.WinnerID != nil {
		return nil, failGameOver(op, g.WinnerID)
	}

	// A challenge always targets the most recent throw; if the last turn
	// action is a challenge (or there is no history), there is nothing
	// outstanding to dispute.
	throw, err := e.store.LastTurnAction(gameID)
	if errors.Is(err, ErrNotFound) {
		return nil, fail(op, CodeNoDeclarationYet, "no throw has been made yet")
	}
	if err != nil {
		return nil, storeFail(op, err)
	}
	if throw.Kind != models.ActionThrown {
		return nil, fail(op, CodeNoDeclarationYet, "the last throw has already been challenged")
	}

	if _, err := e.requireTurn(op, gameID, challengerID); err != nil {
		return nil, err
	}

	// The challenged action, the absorption snapshot and any resulting win
	// commit together: a failed challenge leaves the throw undisputed.
	var result *ChallengeResult
	err = e.store.Atomic(func(s Store) error {
		challenged := &models.GameAction{
			GameID:   gameID,
			PlayerID: challengerID,
			Kind:     models.ActionChallenged,
		}
		if err := s.AppendAction(challenged, nil); err != nil {
			return storeFail(op, err)
		}

		actualIDs, err := s.ActionCardIDs(throw.ID, models.RoleActual)
		if err != nil {
			return storeFail(op, err)
		}
		bluff := false
		for _, id := range actualIDs {
			if c, ok := deck.ByID(id); !ok || c.Rank != throw.DeclaredRank {
				bluff = true
				break
			}
		}

		loserID := challengerID
		if bluff {
			loserID = throw.PlayerID
		}
		loserHand, err := e.currentHandIDs(op, s, gameID, loserID)
		if err != nil {
			return err
		}
		if err := e.replaceHand(op, s, gameID, loserID, append(loserHand, actualIDs...)); err != nil {
			return err
		}

		result = &ChallengeResult{
			Bluff:           bluff,
			LoserID:         loserID,
			AbsorbedCardIDs: actualIDs,
			Declared:        Declaration{Quantity: throw.DeclaredQuantity, Rank: throw.DeclaredRank},
		}

		// The absorption settles the disputed throw, so an empty thrower
		// hand is now definitive: finalize the win inside this same action.
		throwerHand, err := e.currentHandIDs(op, s, gameID, throw.PlayerID)
		if err != nil {
			return err
		}
		if len(throwerHand) == 0 {
			if err := e.finalizeWin(op, s, gameID, throw.PlayerID); err != nil {
				return err
			}
			winner := throw.PlayerID
			result.WinnerID = &winner
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("Game %d: challenge by player %d, bluff=%v, player %d absorbs %d cards",
		gameID, challengerID, result.Bluff, result.LoserID, len(result.AbsorbedCardIDs))
	return result, nil
}
