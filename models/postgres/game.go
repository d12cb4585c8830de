package postgres

import (
	"time"
)

/*
 * 'Game' is one game instance. It stays "open" until the configured player
 * count has joined; Dealt flips exactly once when the last seat fills, and
 * WinnerID is set exactly once when the game concludes.
 */
type Game struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatorID uint      `gorm:"not null;index:idx_games_creator" json:"creator_id"`
	WinnerID  *uint     `gorm:"index:idx_games_winner" json:"winner_id,omitempty"`
	Dealt     bool      `gorm:"default:false" json:"dealt"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	// Relationships
	Creator Player       `gorm:"foreignKey:CreatorID"`
	Seats   []GameSeat   `gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE"`
	Actions []GameAction `gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE"`
}
