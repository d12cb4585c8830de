package gormstore

import (
	"errors"
	"fmt"
	"time"

	"Bluff/game"
	models "Bluff/models/postgres"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

/*
 * 'Store' is the PostgreSQL game.Store, built on GORM. Every query is
 * parameterized through GORM's builder; no SQL is assembled from request
 * input. Multi-row writes run in a transaction per call.
 */
type Store struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{DB: db}
}

// Atomic runs fn inside one database transaction; fn gets a Store bound
// to that transaction, so every write it makes commits or rolls back as a
// unit.
func (s *Store) Atomic(fn func(game.Store) error) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}

// translate maps GORM's not-found to the engine's sentinel.
func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return game.ErrNotFound
	}
	return err
}

func (s *Store) CreatePlayer(name string) (*models.Player, error) {
	p := models.Player{Name: name}
	if err := s.DB.Create(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) GetPlayer(id uint) (*models.Player, error) {
	var p models.Player
	if err := s.DB.Where("id = ?", id).First(&p).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (s *Store) CreateGame(creatorID uint) (*models.Game, error) {
	g := models.Game{CreatorID: creatorID}
	if err := s.DB.Create(&g).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *Store) GetGame(id uint) (*models.Game, error) {
	var g models.Game
	if err := s.DB.Where("id = ?", id).First(&g).Error; err != nil {
		return nil, translate(err)
	}
	return &g, nil
}

func (s *Store) OpenGameIDs(playerCount int) ([]uint, error) {
	var ids []uint
	err := s.DB.Model(&models.GameSeat{}).
		Select("game_id").
		Group("game_id").
		Having("COUNT(*) < ?", playerCount).
		Order("game_id").
		Pluck("game_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *Store) Seats(gameID uint) ([]models.GameSeat, error) {
	var seats []models.GameSeat
	err := s.DB.Where("game_id = ?", gameID).
		Order("seat_order").
		Find(&seats).Error
	if err != nil {
		return nil, err
	}
	return seats, nil
}

func (s *Store) AddSeat(gameID, playerID uint, seatOrder int) error {
	seat := models.GameSeat{GameID: gameID, PlayerID: playerID, SeatOrder: seatOrder}
	return s.DB.Create(&seat).Error
}

func (s *Store) MarkDealt(gameID uint) (bool, error) {
	res := s.DB.Model(&models.Game{}).
		Where("id = ? AND dealt = ?", gameID, false).
		Update("dealt", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (s *Store) SetWinner(gameID, playerID uint) (bool, error) {
	res := s.DB.Model(&models.Game{}).
		Where("id = ? AND winner_id IS NULL", gameID).
		Update("winner_id", playerID)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (s *Store) AppendAction(action *models.GameAction, cards []models.ActionCard) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(action).Error; err != nil {
			return err
		}
		if len(cards) == 0 {
			return nil
		}
		for i := range cards {
			cards[i].ActionID = action.ID
		}
		return tx.Create(&cards).Error
	})
}

func (s *Store) LastTurnAction(gameID uint) (*models.GameAction, error) {
	var a models.GameAction
	err := s.DB.Where("game_id = ? AND kind IN ?", gameID,
		[]string{models.ActionThrown, models.ActionChallenged}).
		Order("id DESC").
		First(&a).Error
	if err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (s *Store) LastThrow(gameID uint) (*models.GameAction, error) {
	var a models.GameAction
	err := s.DB.Where("game_id = ? AND kind = ?", gameID, models.ActionThrown).
		Order("id DESC").
		First(&a).Error
	if err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (s *Store) ActionCardIDs(actionID uint, role string) ([]string, error) {
	var ids []string
	err := s.DB.Model(&models.ActionCard{}).
		Where("action_id = ? AND role = ?", actionID, role).
		Order("card_id").
		Pluck("card_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *Store) LatestHand(gameID, playerID uint) ([]string, bool, error) {
	var a models.GameAction
	err := s.DB.Where("game_id = ? AND player_id = ? AND kind = ?",
		gameID, playerID, models.ActionCurrent).
		Order("id DESC").
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	ids, err := s.ActionCardIDs(a.ID, models.RoleHeld)
	if err != nil {
		return nil, false, err
	}
	return ids, true, nil
}

func (s *Store) IncrementWins(playerID, gameID uint) error {
	stats := datatypes.JSON(fmt.Sprintf(
		`{"last_win_game_id": %d, "last_win_at": %q}`,
		gameID, time.Now().UTC().Format(time.RFC3339)))
	entry := models.ScoreboardEntry{PlayerID: playerID, Wins: 1, Stats: stats}
	return s.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "player_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"wins":  gorm.Expr("scoreboard_entries.wins + 1"),
			"stats": stats,
		}),
	}).Create(&entry).Error
}

func (s *Store) ScoreboardAll() ([]models.ScoreboardEntry, error) {
	var entries []models.ScoreboardEntry
	err := s.DB.Order("wins DESC, player_id").Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *Store) ScoreboardFor(playerID uint) (*models.ScoreboardEntry, error) {
	var entry models.ScoreboardEntry
	err := s.DB.Where("player_id = ?", playerID).First(&entry).Error
	if err != nil {
		return nil, translate(err)
	}
	return &entry, nil
}
