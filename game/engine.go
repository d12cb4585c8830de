package game

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"Bluff/deck"
	models "Bluff/models/postgres"
)

/*
 * 'Engine' is the rules engine for one server process. All state lives in
 * the Store; the engine itself only holds configuration, the per-game
 * locker and the shuffle rng. Games are independent, so one engine serves
 * every game.
 */
type Engine struct {
	store       Store
	locker      Locker
	playerCount int

	rngMu sync.Mutex
	rng   *rand.Rand
}

func NewEngine(store Store, locker Locker, playerCount int) *Engine {
	return &Engine{
		store:       store,
		locker:      locker,
		playerCount: playerCount,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Seed reseeds the shuffle rng. Tests use this to get deterministic deals.
func (e *Engine) Seed(seed int64) {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	e.rng = rand.New(rand.NewSource(seed))
}

// PlayerCount returns the configured seats per game.
func (e *Engine) PlayerCount() int { return e.playerCount }

// RegisterPlayer creates a new player. Names are not unique; the returned
// id is what identifies the player from then on. Also reports the ids of
// games still waiting for players, so a client can join one instead of
// creating its own.
func (e *Engine) RegisterPlayer(name string) (*models.Player, []uint, error) {
	const op = "game.RegisterPlayer"
	if name == "" {
		return nil, nil, fail(op, CodeInvalidInput, "name must not be empty")
	}
	player, err := e.store.CreatePlayer(name)
	if err != nil {
		return nil, nil, storeFail(op, err)
	}
	open, err := e.store.OpenGameIDs(e.playerCount)
	if err != nil {
		return nil, nil, storeFail(op, err)
	}
	return player, open, nil
}

// AllCards returns the full deck, the read-only card reference view.
func (e *Engine) AllCards() []deck.Card {
	return deck.BuildDeck()
}

// Scoreboard returns cumulative win counts, either for every player or for
// one. A player with no entry yet reads as zero wins.
func (e *Engine) Scoreboard(playerID *uint) ([]models.ScoreboardEntry, error) {
	const op = "game.Scoreboard"
	if playerID == nil {
		entries, err := e.store.ScoreboardAll()
		if err != nil {
			return nil, storeFail(op, err)
		}
		return entries, nil
	}
	if _, err := e.requirePlayer(op, *playerID); err != nil {
		return nil, err
	}
	entry, err := e.store.ScoreboardFor(*playerID)
	if errors.Is(err, ErrNotFound) {
		return []models.ScoreboardEntry{{PlayerID: *playerID, Wins: 0}}, nil
	}
	if err != nil {
		return nil, storeFail(op, err)
	}
	return []models.ScoreboardEntry{*entry}, nil
}

// requirePlayer resolves a player id, translating a missing row into the
// taxonomy error every operation uses as its precondition check.
func (e *Engine) requirePlayer(op string, id uint) (*models.Player, error) {
	p, err := e.store.GetPlayer(id)
	if errors.Is(err, ErrNotFound) {
		return nil, fail(op, CodePlayerNotFound, "unknown player")
	}
	if err != nil {
		return nil, storeFail(op, err)
	}
	return p, nil
}

// requireGame resolves a game id the same way.
func (e *Engine) requireGame(op string, id uint) (*models.Game, error) {
	g, err := e.store.GetGame(id)
	if errors.Is(err, ErrNotFound) {
		return nil, fail(op, CodeGameNotFound, "unknown game")
	}
	if err != nil {
		return nil, storeFail(op, err)
	}
	return g, nil
}

// shuffle produces a fresh permutation of the full deck.
func (e *Engine) shuffle() []deck.Card {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	return deck.Shuffle(deck.BuildDeck(), e.rng)
}
