package memstore

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"Bluff/game"
	models "Bluff/models/postgres"

	"gorm.io/datatypes"
)

/*
 * 'Memstore' is the in-memory game.Store. It backs the engine's unit tests
 * and single-node development runs; the production collaborator is
 * storage/gormstore.
 */
type Memstore struct {
	mu sync.Mutex

	nextPlayerID uint
	nextGameID   uint
	nextActionID uint

	players     map[uint]*models.Player
	games       map[uint]*models.Game
	seats       map[uint][]models.GameSeat
	actions     map[uint][]models.GameAction // per game, append order
	actionCards map[uint][]models.ActionCard
	scoreboard  map[uint]*models.ScoreboardEntry
}

func New() *Memstore {
	return &Memstore{
		players:     make(map[uint]*models.Player),
		games:       make(map[uint]*models.Game),
		seats:       make(map[uint][]models.GameSeat),
		actions:     make(map[uint][]models.GameAction),
		actionCards: make(map[uint][]models.ActionCard),
		scoreboard:  make(map[uint]*models.ScoreboardEntry),
	}
}

// memSnapshot is a deep copy of the store's state, taken before an Atomic
// body runs so a failure can roll everything back.
type memSnapshot struct {
	nextPlayerID uint
	nextGameID   uint
	nextActionID uint

	players     map[uint]*models.Player
	games       map[uint]*models.Game
	seats       map[uint][]models.GameSeat
	actions     map[uint][]models.GameAction
	actionCards map[uint][]models.ActionCard
	scoreboard  map[uint]*models.ScoreboardEntry
}

func (m *Memstore) snapshot() *memSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap := &memSnapshot{
		nextPlayerID: m.nextPlayerID,
		nextGameID:   m.nextGameID,
		nextActionID: m.nextActionID,
		players:      make(map[uint]*models.Player, len(m.players)),
		games:        make(map[uint]*models.Game, len(m.games)),
		seats:        make(map[uint][]models.GameSeat, len(m.seats)),
		actions:      make(map[uint][]models.GameAction, len(m.actions)),
		actionCards:  make(map[uint][]models.ActionCard, len(m.actionCards)),
		scoreboard:   make(map[uint]*models.ScoreboardEntry, len(m.scoreboard)),
	}
	for id, p := range m.players {
		cp := *p
		snap.players[id] = &cp
	}
	for id, g := range m.games {
		cp := *g
		if g.WinnerID != nil {
			w := *g.WinnerID
			cp.WinnerID = &w
		}
		snap.games[id] = &cp
	}
	for id, s := range m.seats {
		snap.seats[id] = append([]models.GameSeat(nil), s...)
	}
	for id, a := range m.actions {
		snap.actions[id] = append([]models.GameAction(nil), a...)
	}
	for id, c := range m.actionCards {
		snap.actionCards[id] = append([]models.ActionCard(nil), c...)
	}
	for id, e := range m.scoreboard {
		cp := *e
		cp.Stats = append([]byte(nil), e.Stats...)
		snap.scoreboard[id] = &cp
	}
	return snap
}

func (m *Memstore) restore(snap *memSnapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextPlayerID = snap.nextPlayerID
	m.nextGameID = snap.nextGameID
	m.nextActionID = snap.nextActionID
	m.players = snap.players
	m.games = snap.games
	m.seats = snap.seats
	m.actions = snap.actions
	m.actionCards = snap.actionCards
	m.scoreboard = snap.scoreboard
}

// Atomic runs fn against the store, restoring the pre-call state when fn
// fails. Rollback is a whole-store restore; that is sound here because the
// engine serializes actions per game through its Locker and the store is
// not shared across engines in production (gormstore is).
func (m *Memstore) Atomic(fn func(game.Store) error) error {
	snap := m.snapshot()
	if err := fn(m); err != nil {
		m.restore(snap)
		return err
	}
	return nil
}

func (m *Memstore) CreatePlayer(name string) (*models.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextPlayerID++
	p := &models.Player{ID: m.nextPlayerID, Name: name, CreatedAt: time.Now()}
	m.players[p.ID] = p
	out := *p
	return &out, nil
}

func (m *Memstore) GetPlayer(id uint) (*models.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.players[id]
	if !ok {
		return nil, game.ErrNotFound
	}
	out := *p
	return &out, nil
}

func (m *Memstore) CreateGame(creatorID uint) (*models.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextGameID++
	g := &models.Game{ID: m.nextGameID, CreatorID: creatorID, CreatedAt: time.Now()}
	m.games[g.ID] = g
	out := *g
	return &out, nil
}

func (m *Memstore) GetGame(id uint) (*models.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[id]
	if !ok {
		return nil, game.ErrNotFound
	}
	out := *g
	if g.WinnerID != nil {
		w := *g.WinnerID
		out.WinnerID = &w
	}
	return &out, nil
}

func (m *Memstore) OpenGameIDs(playerCount int) ([]uint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []uint
	for id := uint(1); id <= m.nextGameID; id++ {
		if _, ok := m.games[id]; ok && len(m.seats[id]) < playerCount {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (m *Memstore) Seats(gameID uint) ([]models.GameSeat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.GameSeat(nil), m.seats[gameID]...), nil
}

func (m *Memstore) AddSeat(gameID, playerID uint, seatOrder int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.seats[gameID] {
		if s.PlayerID == playerID || s.SeatOrder == seatOrder {
			return fmt.Errorf("seat conflict in game %d", gameID)
		}
	}
	m.seats[gameID] = append(m.seats[gameID], models.GameSeat{
		GameID: gameID, PlayerID: playerID, SeatOrder: seatOrder,
	})
	return nil
}

func (m *Memstore) MarkDealt(gameID uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[gameID]
	if !ok {
		return false, game.ErrNotFound
	}
	if g.Dealt {
		return false, nil
	}
	g.Dealt = true
	return true, nil
}

func (m *Memstore) SetWinner(gameID, playerID uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[gameID]
	if !ok {
		return false, game.ErrNotFound
	}
	if g.WinnerID != nil {
		return false, nil
	}
	w := playerID
	g.WinnerID = &w
	return true, nil
}

func (m *Memstore) AppendAction(action *models.GameAction, cards []models.ActionCard) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextActionID++
	action.ID = m.nextActionID
	action.CreatedAt = time.Now()
	m.actions[action.GameID] = append(m.actions[action.GameID], *action)
	for i := range cards {
		cards[i].ActionID = action.ID
	}
	m.actionCards[action.ID] = append([]models.ActionCard(nil), cards...)
	return nil
}

func (m *Memstore) LastTurnAction(gameID uint) (*models.GameAction, error) {
	return m.lastAction(gameID, func(kind string) bool {
		return kind == models.ActionThrown || kind == models.ActionChallenged
	})
}

func (m *Memstore) LastThrow(gameID uint) (*models.GameAction, error) {
	return m.lastAction(gameID, func(kind string) bool {
		return kind == models.ActionThrown
	})
}

func (m *Memstore) lastAction(gameID uint, match func(string) bool) (*models.GameAction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	log := m.actions[gameID]
	for i := len(log) - 1; i >= 0; i-- {
		if match(log[i].Kind) {
			out := log[i]
			return &out, nil
		}
	}
	return nil, game.ErrNotFound
}

func (m *Memstore) ActionCardIDs(actionID uint, role string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []string
	for _, ac := range m.actionCards[actionID] {
		if ac.Role == role {
			ids = append(ids, ac.CardID)
		}
	}
	return ids, nil
}

func (m *Memstore) LatestHand(gameID, playerID uint) ([]string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	log := m.actions[gameID]
	for i := len(log) - 1; i >= 0; i-- {
		if log[i].Kind == models.ActionCurrent && log[i].PlayerID == playerID {
			ids := make([]string, 0)
			for _, ac := range m.actionCards[log[i].ID] {
				if ac.Role == models.RoleHeld {
					ids = append(ids, ac.CardID)
				}
			}
			return ids, true, nil
		}
	}
	return nil, false, nil
}

func (m *Memstore) IncrementWins(playerID, gameID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.scoreboard[playerID]
	if !ok {
		entry = &models.ScoreboardEntry{PlayerID: playerID}
		m.scoreboard[playerID] = entry
	}
	entry.Wins++
	entry.Stats = datatypes.JSON(fmt.Sprintf(
		`{"last_win_game_id": %d, "last_win_at": %q}`,
		gameID, time.Now().UTC().Format(time.RFC3339)))
	return nil
}

func (m *Memstore) ScoreboardAll() ([]models.ScoreboardEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries := make([]models.ScoreboardEntry, 0, len(m.scoreboard))
	for _, e := range m.scoreboard {
		entries = append(entries, *e)
	}
	// Same ordering as gormstore: wins descending, then player id.
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Wins != entries[j].Wins {
			return entries[i].Wins > entries[j].Wins
		}
		return entries[i].PlayerID < entries[j].PlayerID
	})
	return entries, nil
}

func (m *Memstore) ScoreboardFor(playerID uint) (*models.ScoreboardEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.scoreboard[playerID]
	if !ok {
		return nil, game.ErrNotFound
	}
	out := *e
	return &out, nil
}
