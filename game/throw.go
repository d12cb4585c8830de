package game

import (
	"context"
	"errors"

	"Bluff/deck"
	models "Bluff/models/postgres"

	game_constants "Bluff/constants/game"
)

/*
 * 'Declaration' is the (quantity, rank) a player claims to be throwing.
 * It is derived from the most recent thrown action, never stored on its
 * own.
 */
type Declaration struct {
	Quantity int    `json:"quantity"`
	Rank     string `json:"rank"`
}

// ThrowResult reports what a successful throw did.
type ThrowResult struct {
	Declared  Declaration `json:"declared"`
	Remaining int         `json:"cards_remaining"`
}

// Throw places declaredQuantity cards face down while declaring them to be
// of declaredRank. The declaration may be a lie; the actual cards are only
// inspected if the next player challenges.
//
// The "said" cards persisted with the action are sampled from the deck's
// cards of the declared rank, independent of what was actually played. The
// declaration models a verbal claim, not the physical cards, and later
// shape comparison works off that sample.
func (e *Engine) Throw(ctx context.Context, gameID, playerID uint, declaredRank string, declaredQuantity int, actualCardIDs []string) (*ThrowResult, error) {
	const op = "game.Throw"
	release, err := e.locker.AcquireGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	defer release()

	g, err := e.requireGame(op, gameID)
	if err != nil {
		return nil, err
	}
	if _, err := e.requirePlayer(op, playerID); err != nil {
		return nil, err
	}
	if !g.Dealt {
		return nil, fail(op, CodeInvalidInput, "game is still waiting for players")
	}
	if g.WinnerID != nil {
		return nil, failGameOver(op, g.WinnerID)
	}
	// The previous throw may have emptied its thrower's hand; if it went
	// unchallenged, that player wins now, and this throw is rejected.
	if winner, err := e.settlePendingWin(op, gameID); err != nil {
		return nil, err
	} else if winner != nil {
		return nil, failGameOver(op, winner)
	}

	if _, err := e.requireTurn(op, gameID, playerID); err != nil {
		return nil, err
	}
	if declaredQuantity < game_constants.MinDeclaredQuantity || declaredQuantity > game_constants.MaxDeclaredQuantity {
		return nil, fail(op, CodeInvalidInput, "declared quantity must be between 1 and 4")
	}
	if len(actualCardIDs) != declaredQuantity {
		return nil, fail(op, CodeInvalidInput, "number of cards played must equal the declared quantity")
	}
	if !deck.ValidRank(declaredRank) {
		return nil, fail(op, CodeInvalidShape, "unknown rank "+declaredRank)
	}
	for _, id := range actualCardIDs {
		if _, ok := deck.ByID(id); !ok {
			return nil, fail(op, CodeInvalidInput, "unknown card id "+id)
		}
	}

	hand, err := e.currentHandIDs(op, e.store, gameID, playerID)
	if err != nil {
		return nil, err
	}
	rest, err := removeCards(op, hand, actualCardIDs)
	if err != nil {
		return nil, err
	}

	// Sample the claim from the deck, not from the hand.
	said := deck.OfRank(declaredRank)[:declaredQuantity]

	action := &models.GameAction{
		GameID:           gameID,
		PlayerID:         playerID,
		Kind:             models.ActionThrown,
		DeclaredRank:     declaredRank,
		DeclaredQuantity: declaredQuantity,
	}
	cards := make([]models.ActionCard, 0, len(said)+len(actualCardIDs))
	for _, c := range said {
		cards = append(cards, models.ActionCard{CardID: c.ID, Role: models.RoleDeclared})
	}
	for _, id := range actualCardIDs {
		cards = append(cards, models.ActionCard{CardID: id, Role: models.RoleActual})
	}
	// The thrown action and the superseding hand snapshot commit together:
	// a failed throw neither consumes the turn nor leaves a declaration.
	err = e.store.Atomic(func(s Store) error {
		if err := s.AppendAction(action, cards); err != nil {
			return storeFail(op, err)
		}
		return e.replaceHand(op, s, gameID, playerID, rest)
	})
	if err != nil {
		return nil, err
	}

	return &ThrowResult{
		Declared:  Declaration{Quantity: declaredQuantity, Rank: declaredRank},
		Remaining: len(rest),
	}, nil
}

// LastDeclaration derives the current declaration from the most recent
// thrown action's declared-rank sample. Returns nil when no throw has
// happened yet.
func (e *Engine) LastDeclaration(gameID uint) (*Declaration, error) {
	const op = "game.LastDeclaration"
	if _, err := e.requireGame(op, gameID); err != nil {
		return nil, err
	}
	throw, err := e.store.LastThrow(gameID)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storeFail(op, err)
	}
	said, err := e.store.ActionCardIDs(throw.ID, models.RoleDeclared)
	if err != nil {
		return nil, storeFail(op, err)
	}
	return &Declaration{Quantity: len(said), Rank: throw.DeclaredRank}, nil
}
