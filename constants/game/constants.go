package game_constants

// Number of players seated in a game before dealing happens. The original
// ruleset plays with 3; BLUFF_PLAYERS overrides this at startup.
const DefaultPlayerCount = 3

const DeckSize = 52

// Declared quantity bounds for a throw. There are only four cards of any
// rank in the deck, so claiming more than four is never a legal declaration.
const (
	MinDeclaredQuantity = 1
	MaxDeclaredQuantity = 4
)

// Bounded waits for the per-game locks (see game.Locker implementations).
const (
	LocalLockWaitSeconds = 3
	RedisLockWaitSeconds = 5
)
