package postgres

import (
	"time"
)

/*
 * 'Player' is one registered player. Created on login, never mutated or
 * deleted. Names are not unique; the id is what a client keeps around.
 */
type Player struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	// Relationships
	Seats      []GameSeat       `gorm:"foreignKey:PlayerID"`
	Scoreboard *ScoreboardEntry `gorm:"foreignKey:PlayerID"`
}
