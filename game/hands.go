package game

import (
	models "Bluff/models/postgres"

	"Bluff/deck"
)

// CurrentHand returns the player's authoritative hand: the cards of the
// newest snapshot, ordered by suit for display stability.
func (e *Engine) CurrentHand(gameID, playerID uint) ([]deck.Card, error) {
	const op = "game.CurrentHand"
	if _, err := e.requireGame(op, gameID); err != nil {
		return nil, err
	}
	if _, err := e.requirePlayer(op, playerID); err != nil {
		return nil, err
	}
	ids, err := e.currentHandIDs(op, e.store, gameID, playerID)
	if err != nil {
		return nil, err
	}
	deck.SortBySuit(ids)
	cards := make([]deck.Card, 0, len(ids))
	for _, id := range ids {
		if c, ok := deck.ByID(id); ok {
			cards = append(cards, c)
		}
	}
	return cards, nil
}

// currentHandIDs reads the latest snapshot's card ids, failing when the
// (game, player) pair has never been dealt.
func (e *Engine) currentHandIDs(op string, s Store, gameID, playerID uint) ([]string, error) {
	ids, dealt, err := s.LatestHand(gameID, playerID)
	if err != nil {
		return nil, storeFail(op, err)
	}
	if !dealt {
		return nil, fail(op, CodeInvalidInput, "player has no hand in this game")
	}
	return ids, nil
}

// replaceHand appends a superseding snapshot. Prior snapshots stay in the
// action log for audit but are never read again. s is the transactional
// store of the surrounding action.
func (e *Engine) replaceHand(op string, s Store, gameID, playerID uint, ids []string) error {
	action := &models.GameAction{
		GameID:   gameID,
		PlayerID: playerID,
		Kind:     models.ActionCurrent,
	}
	cards := make([]models.ActionCard, 0, len(ids))
	for _, id := range ids {
		cards = append(cards, models.ActionCard{CardID: id, Role: models.RoleHeld})
	}
	if err := s.AppendAction(action, cards); err != nil {
		return storeFail(op, err)
	}
	return nil
}

// removeCards returns hand minus removed, erroring with CodeCardsNotOwned
// if any removed id is absent from hand.
func removeCards(op string, hand, removed []string) ([]string, error) {
	held := make(map[string]bool, len(hand))
	for _, id := range hand {
		held[id] = true
	}
	for _, id := range removed {
		if !held[id] {
			return nil, fail(op, CodeCardsNotOwned, "card "+id+" is not in the player's hand")
		}
		held[id] = false
	}
	rest := make([]string, 0, len(hand)-len(removed))
	for _, id := range hand {
		if held[id] {
			rest = append(rest, id)
		}
	}
	return rest, nil
}
