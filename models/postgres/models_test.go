package postgres_test

import (
	"sync"
	"testing"

	models "Bluff/models/postgres"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

// TestGameSeatOrderUniquePerGame pins the shape of the seat-order unique
// index: it must span (game_id, seat_order), so two games can both seat a
// player at order 1.
func TestGameSeatOrderUniquePerGame(t *testing.T) {
	s, err := schema.Parse(&models.GameSeat{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	var found *schema.Index
	for _, idx := range s.ParseIndexes() {
		if idx.Name == "idx_game_seats_order" {
			idx := idx
			found = &idx
		}
	}
	require.NotNil(t, found, "idx_game_seats_order missing")
	assert.Equal(t, "UNIQUE", found.Class)

	cols := make([]string, 0, len(found.Fields))
	for _, f := range found.Fields {
		cols = append(cols, f.DBName)
	}
	assert.Equal(t, []string{"game_id", "seat_order"}, cols)
}

// The composite primary key keeps a player from holding two seats in the
// same game while still allowing them to sit in many games.
func TestGameSeatPrimaryKey(t *testing.T) {
	s, err := schema.Parse(&models.GameSeat{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	pks := make([]string, 0, len(s.PrimaryFields))
	for _, f := range s.PrimaryFields {
		pks = append(pks, f.DBName)
	}
	assert.Equal(t, []string{"game_id", "player_id"}, pks)
}
