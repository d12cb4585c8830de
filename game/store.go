package game

import (
	models "Bluff/models/postgres"
)

/*
 * 'Store' is the persistence collaborator the engine is written against.
 * Implementations: storage/gormstore (PostgreSQL, parameterized queries via
 * GORM) and storage/memstore (in-memory, used by tests).
 *
 * Lookup methods return ErrNotFound (possibly wrapped) when the row does
 * not exist. Multi-row writes (AppendAction) must be atomic within one
 * call; multi-call sequences go through Atomic. Exclusion between
 * concurrent actions is the engine's job via Locker.
 */
type Store interface {
	// Atomic runs fn against a transactional view of the store: writes made
	// through that view commit together or not at all. The engine wraps
	// every multi-write action (deal, throw, challenge, win settlement) in
	// one Atomic call so a failed request cannot leave the hand snapshots,
	// the action log and the winner column half-updated.
	Atomic(fn func(Store) error) error

	// Player registry
	CreatePlayer(name string) (*models.Player, error)
	GetPlayer(id uint) (*models.Player, error)

	// Game sessions
	CreateGame(creatorID uint) (*models.Game, error)
	GetGame(id uint) (*models.Game, error)
	// OpenGameIDs lists games with fewer than playerCount seats, oldest
	// first. A game with open seats has never been dealt, so it cannot
	// have a winner.
	OpenGameIDs(playerCount int) ([]uint, error)

	// Seats, ordered by seat order.
	Seats(gameID uint) ([]models.GameSeat, error)
	AddSeat(gameID, playerID uint, seatOrder int) error
	// MarkDealt flips the game's dealt flag. Compare-and-set: reports true
	// only for the single call that performed the transition.
	MarkDealt(gameID uint) (bool, error)
	// SetWinner sets the winner once. Compare-and-set like MarkDealt.
	SetWinner(gameID, playerID uint) (bool, error)

	// Append-only action log.
	AppendAction(action *models.GameAction, cards []models.ActionCard) error
	// LastTurnAction returns the most recent thrown or challenged action,
	// or ErrNotFound if the game has no turn history yet.
	LastTurnAction(gameID uint) (*models.GameAction, error)
	// LastThrow returns the most recent thrown action, or ErrNotFound.
	LastThrow(gameID uint) (*models.GameAction, error)
	ActionCardIDs(actionID uint, role string) ([]string, error)
	// LatestHand returns the card ids of the newest "current" snapshot for
	// the pair. dealt is false when no snapshot exists.
	LatestHand(gameID, playerID uint) (ids []string, dealt bool, err error)

	// Scoreboard
	IncrementWins(playerID, gameID uint) error
	ScoreboardAll() ([]models.ScoreboardEntry, error)
	ScoreboardFor(playerID uint) (*models.ScoreboardEntry, error)
}
