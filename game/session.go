package game

import (
	"context"
	"log"

	"Bluff/deck"
	models "Bluff/models/postgres"
)

// CreateGame opens a new game with the creator seated at order 1. The
// creator always plays first once the game is dealt.
func (e *Engine) CreateGame(creatorID uint) (*models.Game, error) {
	const op = "game.CreateGame"
	if _, err := e.requirePlayer(op, creatorID); err != nil {
		return nil, err
	}
	g, err := e.store.CreateGame(creatorID)
	if err != nil {
		return nil, storeFail(op, err)
	}
	if err := e.store.AddSeat(g.ID, creatorID, 1); err != nil {
		return nil, storeFail(op, err)
	}
	log.Printf("Game %d created by player %d", g.ID, creatorID)
	return g, nil
}

// JoinGame seats a player at the next sequential order. When the join
// fills the last seat, the deck is shuffled and dealt — exactly once, even
// if the request is retried: the dealt flag transition is compare-and-set.
func (e *Engine) JoinGame(ctx context.Context, gameID, playerID uint) (int, error) {
	const op = "game.JoinGame"
	release, err := e.locker.AcquireGame(ctx, gameID)
	if err != nil {
		return 0, err
	}
	defer release()

	if _, err := e.requireGame(op, gameID); err != nil {
		return 0, err
	}
	if _, err := e.requirePlayer(op, playerID); err != nil {
		return 0, err
	}

	seats, err := e.store.Seats(gameID)
	if err != nil {
		return 0, storeFail(op, err)
	}
	maxOrder := 0
	for _, s := range seats {
		if s.PlayerID == playerID {
			return 0, fail(op, CodeAlreadyJoined, "player already seated in this game")
		}
		if s.SeatOrder > maxOrder {
			maxOrder = s.SeatOrder
		}
	}
	if len(seats) >= e.playerCount {
		return 0, fail(op, CodeGameFull, "game already has all players")
	}

	order := maxOrder + 1
	if err := e.store.AddSeat(gameID, playerID, order); err != nil {
		return 0, storeFail(op, err)
	}

	if len(seats)+1 == e.playerCount {
		if err := e.deal(op, gameID); err != nil {
			return 0, err
		}
	}
	return order, nil
}

// deal shuffles the full deck and writes the initial hand snapshot for
// every seated player, all in one transaction: a game is never marked
// dealt without every hand persisted. Remainder cards stay undealt.
// Caller holds the game lock.
func (e *Engine) deal(op string, gameID uint) error {
	return e.store.Atomic(func(s Store) error {
		won, err := s.MarkDealt(gameID)
		if err != nil {
			return storeFail(op, err)
		}
		if !won {
			// Another request already dealt this game.
			return nil
		}

		seats, err := s.Seats(gameID)
		if err != nil {
			return storeFail(op, err)
		}
		hands := deck.Deal(e.shuffle(), e.playerCount)
		for _, seat := range seats {
			ids := make([]string, 0, len(hands[seat.SeatOrder]))
			for _, c := range hands[seat.SeatOrder] {
				ids = append(ids, c.ID)
			}
			if err := e.replaceHand(op, s, gameID, seat.PlayerID, ids); err != nil {
				return err
			}
		}
		log.Printf("Game %d dealt to %d players", gameID, len(seats))
		return nil
	})
}

/*
 * 'StatusPlayer' and 'Status' are the aggregate view served by the status
 * endpoint: game, seated players, whose turn it is, last declaration.
 */
type StatusPlayer struct {
	PlayerID  uint   `json:"player_id"`
	Name      string `json:"name"`
	SeatOrder int    `json:"seat_order"`
	CardCount int    `json:"card_count"`
}

type Status struct {
	Game        *models.Game   `json:"game"`
	Players     []StatusPlayer `json:"players"`
	NextSeat    int            `json:"next_seat"`
	NextPlayer  *StatusPlayer  `json:"next_player,omitempty"`
	Declaration *Declaration   `json:"last_declaration,omitempty"`
}

// GameStatus aggregates everything a client needs to render a game.
func (e *Engine) GameStatus(gameID uint) (*Status, error) {
	const op = "game.GameStatus"
	g, err := e.requireGame(op, gameID)
	if err != nil {
		return nil, err
	}
	seats, err := e.store.Seats(gameID)
	if err != nil {
		return nil, storeFail(op, err)
	}

	st := &Status{Game: g}
	for _, seat := range seats {
		p, err := e.requirePlayer(op, seat.PlayerID)
		if err != nil {
			return nil, err
		}
		sp := StatusPlayer{PlayerID: p.ID, Name: p.Name, SeatOrder: seat.SeatOrder}
		if g.Dealt {
			ids, _, err := e.store.LatestHand(gameID, seat.PlayerID)
			if err != nil {
				return nil, storeFail(op, err)
			}
			sp.CardCount = len(ids)
		}
		st.Players = append(st.Players, sp)
	}

	if g.Dealt && g.WinnerID == nil {
		next, err := e.NextSeatOrder(gameID)
		if err != nil {
			return nil, err
		}
		st.NextSeat = next
		for i := range st.Players {
			if st.Players[i].SeatOrder == next {
				st.NextPlayer = &st.Players[i]
			}
		}
	}

	decl, err := e.LastDeclaration(gameID)
	if err != nil {
		return nil, err
	}
	st.Declaration = decl
	return st, nil
}
