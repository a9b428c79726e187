// service/game_manager.go
package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/benbeisheim/fablechess-backend/internal/model"
	"github.com/benbeisheim/fablechess-backend/internal/record"
	"github.com/benbeisheim/fablechess-backend/internal/storage"
	"github.com/benbeisheim/fablechess-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameExists   = errors.New("game already exists")
)

type GameManager struct {
	games            map[string]*model.Game
	queues           map[model.Variant]*model.Queue
	matchingChannels map[string]chan ws.MatchFoundEvent
	store            *storage.Storage
	codec            *record.Codec
	logger           zerolog.Logger
	done             chan struct{}
	closeOnce        sync.Once
	mu               sync.RWMutex
}

func NewGameManager(store *storage.Storage, codec *record.Codec, logger zerolog.Logger, matchInterval time.Duration) *GameManager {
	gm := &GameManager{
		games: make(map[string]*model.Game),
		queues: map[model.Variant]*model.Queue{
			model.Chess:    model.NewQueue(),
			model.Checkers: model.NewQueue(),
		},
		matchingChannels: make(map[string]chan ws.MatchFoundEvent),
		store:            store,
		codec:            codec,
		logger:           logger.With().Str("component", "game_manager").Logger(),
		done:             make(chan struct{}),
	}

	// Start matchmaking processor
	go gm.processMatchmaking(matchInterval)

	return gm
}

// Close stops the matchmaking loop. It is safe to call more than once.
func (gm *GameManager) Close() {
	gm.closeOnce.Do(func() { close(gm.done) })
}

func (gm *GameManager) RegisterMatchmakingChannel(playerID string, ch chan ws.MatchFoundEvent) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	// If there's an existing channel, we need to handle it properly
	if existingCh, exists := gm.matchingChannels[playerID]; exists {
		gm.logger.Debug().Str("player", playerID).Msg("replacing matchmaking channel")
		delete(gm.matchingChannels, playerID)
		close(existingCh)
	}
	gm.matchingChannels[playerID] = ch
}

func (gm *GameManager) UnregisterMatchmakingChannel(playerID string, ch chan ws.MatchFoundEvent) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	// Only the registered channel is removed; the creator closes its own channel
	if current, ok := gm.matchingChannels[playerID]; ok && current == ch {
		delete(gm.matchingChannels, playerID)
	}
}

func (gm *GameManager) processMatchmaking(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-gm.done:
			return
		case <-ticker.C:
			gm.matchQueued()
		}
	}
}

// matchQueued pairs waiting players per variant until every queue has
// fewer than two entries.
func (gm *GameManager) matchQueued() {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	for variant, queue := range gm.queues {
		for {
			player1, player2, ok := queue.GetNextPair()
			if !ok {
				break
			}
			if err := gm.startMatch(variant, player1, player2); err != nil {
				gm.logger.Error().Err(err).Str("variant", string(variant)).Msg("failed to start match")
			}
		}
	}
}

// startMatch must be called with gm.mu held.
func (gm *GameManager) startMatch(variant model.Variant, player1, player2 model.Player) error {
	gameID := uuid.New().String()
	game, err := model.NewGame(gameID, variant, false, gm.logger)
	if err != nil {
		return err
	}
	p1Color, err := game.AddPlayer(player1.ID)
	if err != nil {
		return err
	}
	p2Color, err := game.AddPlayer(player2.ID)
	if err != nil {
		return err
	}
	gm.games[gameID] = game

	gm.notifyMatch(player1.ID, ws.MatchFoundEvent{GameID: gameID, Color: string(p1Color), Variant: string(variant)})
	gm.notifyMatch(player2.ID, ws.MatchFoundEvent{GameID: gameID, Color: string(p2Color), Variant: string(variant)})
	gm.logger.Info().Str("game", gameID).Str("white", player1.ID).Str("black", player2.ID).Msg("match created")
	return nil
}

func (gm *GameManager) notifyMatch(playerID string, event ws.MatchFoundEvent) {
	ch, ok := gm.matchingChannels[playerID]
	if !ok {
		gm.logger.Warn().Str("player", playerID).Msg("no matchmaking channel for player")
		return
	}
	select {
	case ch <- event:
		delete(gm.matchingChannels, playerID)
		close(ch)
	default:
		gm.logger.Warn().Str("player", playerID).Msg("failed to send match found event")
	}
}

// CreateGame registers a fresh game under gameID.
func (gm *GameManager) CreateGame(gameID string, variant model.Variant, hotseat bool) (*model.Game, error) {
	game, err := model.NewGame(gameID, variant, hotseat, gm.logger)
	if err != nil {
		return nil, err
	}
	if err := gm.addGame(game); err != nil {
		return nil, err
	}
	return game, nil
}

func (gm *GameManager) addGame(game *model.Game) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[game.ID]; exists {
		return ErrGameExists
	}
	gm.games[game.ID] = game
	return nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}
	return game, nil
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (model.PlayerColor, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return "", err
	}
	return game.AddPlayer(playerID)
}

func (gm *GameManager) JoinMatchmaking(playerID string, variant model.Variant) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	queue, ok := gm.queues[variant]
	if !ok {
		return model.ErrUnknownVariant
	}
	if err := queue.AddPlayer(model.Player{ID: playerID}); err != nil {
		return err
	}
	gm.logger.Debug().Str("player", playerID).Str("variant", string(variant)).Msg("queued for matchmaking")
	return nil
}

// LeaveMatchmaking removes the player from every queue.
func (gm *GameManager) LeaveMatchmaking(playerID string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	for _, queue := range gm.queues {
		queue.RemovePlayer(playerID)
	}
}

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.GetState(), nil
}

func (gm *GameManager) Execute(gameID string, playerID string, cmd model.Command) (model.Result, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.Result{Kind: cmd.Kind}, err
	}
	return game.Execute(playerID, cmd)
}

// SaveGame stores the game's current move record under name.
func (gm *GameManager) SaveGame(gameID, playerID, name string) (storage.Summary, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return storage.Summary{}, err
	}
	if !game.IsPlayerInGame(playerID) {
		return storage.Summary{}, model.ErrNotInGame
	}
	plies := game.History()
	data, err := gm.codec.Pack(plies)
	if err != nil {
		return storage.Summary{}, fmt.Errorf("pack record: %w", err)
	}
	saved := &storage.SavedGame{
		Name:    name,
		Variant: string(game.Variant()),
		Record:  data,
		Moves:   len(plies),
	}
	if err := gm.store.SaveGame(saved); err != nil {
		return storage.Summary{}, err
	}
	gm.logger.Info().Str("game", gameID).Str("name", name).Int("moves", saved.Moves).Msg("game saved")
	return storage.Summary{Name: saved.Name, Variant: saved.Variant, Moves: saved.Moves, SavedAt: saved.SavedAt}, nil
}

// LoadGame replays a saved record into a new game registered under gameID.
func (gm *GameManager) LoadGame(gameID, name string, hotseat bool) (*model.Game, error) {
	saved, err := gm.store.LoadGame(name)
	if err != nil {
		return nil, err
	}
	variant, err := model.ParseVariant(saved.Variant)
	if err != nil {
		return nil, err
	}
	board, err := gm.codec.Unpack(variant, saved.Record)
	if err != nil {
		// the cause is kept as text so move errors are not mistaken for a bad request
		return nil, fmt.Errorf("%w: %q: %v", storage.ErrCorruptRecord, name, err)
	}
	game, err := model.NewGame(gameID, variant, hotseat, gm.logger)
	if err != nil {
		return nil, err
	}
	game.Load(board)
	if err := gm.addGame(game); err != nil {
		return nil, err
	}
	gm.logger.Info().Str("game", gameID).Str("name", name).Msg("game loaded")
	return game, nil
}

// Export returns the compressed move record of a live game.
func (gm *GameManager) Export(gameID string) ([]byte, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return gm.codec.Pack(game.History())
}

func (gm *GameManager) ListSaves() ([]storage.Summary, error) {
	return gm.store.ListGames()
}

func (gm *GameManager) DeleteSave(name string) error {
	return gm.store.DeleteGame(name)
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn *websocket.Conn) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string, conn *websocket.Conn) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID, conn)
}
