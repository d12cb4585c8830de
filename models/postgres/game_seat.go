package postgres

/*
 * 'GameSeat' seats a player in a game. SeatOrder is 1-based, assigned at
 * join time and unique per game; it defines the turn rotation.
 */
type GameSeat struct {
	// NOTE: composite primary key definition. The unique index spans
	// (game_id, seat_order): seat orders restart at 1 in every game.
	GameID    uint `gorm:"primaryKey;uniqueIndex:idx_game_seats_order" json:"game_id"`
	PlayerID  uint `gorm:"primaryKey;index" json:"player_id"`
	SeatOrder int  `gorm:"not null;uniqueIndex:idx_game_seats_order" json:"seat_order"`

	// Relationships
	Game   Game   `gorm:"foreignKey:GameID"`
	Player Player `gorm:"foreignKey:PlayerID"`
}
