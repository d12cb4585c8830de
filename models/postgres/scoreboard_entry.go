package postgres

import (
	"gorm.io/datatypes"
)

/*
 * 'ScoreboardEntry' accumulates win counts per player across games.
 * Upserted (created at 0 then incremented) whenever a game concludes.
 */
type ScoreboardEntry struct {
	PlayerID uint           `gorm:"primaryKey" json:"player_id"`
	Wins     int            `gorm:"default:0" json:"wins"`
	Stats    datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"stats"`

	// Relationship with the player
	Player Player `gorm:"foreignKey:PlayerID"`
}
