package postgres

import (
	"time"
)

// Action kinds. The append-only action log is the single source of truth
// for turn order ("thrown"/"challenged") and hand contents ("current").
const (
	ActionThrown     = "thrown"
	ActionChallenged = "challenged"
	ActionCurrent    = "current"
)

// Roles a card plays in one action. "declared" cards are the sampled
// claim of a throw, "actual" cards are what was physically placed, and
// "held" cards make up a hand snapshot.
const (
	RoleDeclared = "declared"
	RoleActual   = "actual"
	RoleHeld     = "held"
)

/*
 * 'GameAction' is one row of the append-only per-game action log. Rows are
 * never updated; the latest "current" row per (game, player) is the
 * authoritative hand snapshot.
 */
type GameAction struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	GameID           uint      `gorm:"not null;index:idx_game_actions_game" json:"game_id"`
	PlayerID         uint      `gorm:"not null;index" json:"player_id"`
	Kind             string    `gorm:"size:20;not null;index" json:"kind"`
	DeclaredRank     string    `gorm:"size:3" json:"declared_rank,omitempty"`
	DeclaredQuantity int       `gorm:"default:0" json:"declared_quantity,omitempty"`
	CreatedAt        time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	// Relationships
	Game   Game         `gorm:"foreignKey:GameID"`
	Player Player       `gorm:"foreignKey:PlayerID"`
	Cards  []ActionCard `gorm:"foreignKey:ActionID;constraint:OnDelete:CASCADE"`
}

/*
 * 'ActionCard' associates a card with an action under a role. Card ids are
 * deck identities like "KH" or "10C" (see the deck package).
 */
type ActionCard struct {
	// NOTE: composite primary key definition
	ActionID uint   `gorm:"primaryKey" json:"action_id"`
	CardID   string `gorm:"primaryKey;size:4" json:"card_id"`
	Role     string `gorm:"primaryKey;size:10" json:"role"`

	// Relationship with the owning action
	Action GameAction `gorm:"foreignKey:ActionID"`
}
