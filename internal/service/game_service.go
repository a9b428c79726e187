package service

import (
	"fmt"

	"github.com/benbeisheim/fablechess-backend/internal/model"
	"github.com/benbeisheim/fablechess-backend/internal/storage"
	"github.com/benbeisheim/fablechess-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) JoinGame(gameID string, playerID string) (model.PlayerColor, error) {
	return gs.gameManager.AddPlayerToGame(gameID, playerID)
}

// CreateGame starts a game and seats the creator as white.
func (gs *GameService) CreateGame(playerID string, variant model.Variant, hotseat bool) (string, model.PlayerColor, error) {
	gameID := uuid.New().String()

	game, err := gs.gameManager.CreateGame(gameID, variant, hotseat)
	if err != nil {
		return "", "", fmt.Errorf("failed to create game: %w", err)
	}
	color, err := game.AddPlayer(playerID)
	if err != nil {
		return "", "", err
	}
	return gameID, color, nil
}

func (gs *GameService) JoinMatchmaking(playerID string, variant model.Variant) error {
	return gs.gameManager.JoinMatchmaking(playerID, variant)
}

func (gs *GameService) LeaveMatchmaking(playerID string) {
	gs.gameManager.LeaveMatchmaking(playerID)
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	return gs.gameManager.GetGameState(gameID)
}

func (gs *GameService) HandleCommand(gameID string, playerID string, cmd model.Command) (model.Result, error) {
	return gs.gameManager.Execute(gameID, playerID, cmd)
}

func (gs *GameService) SaveGame(gameID, playerID, name string) (storage.Summary, error) {
	return gs.gameManager.SaveGame(gameID, playerID, name)
}

// LoadGame replays a save into a new game and seats the caller as white.
func (gs *GameService) LoadGame(playerID, name string, hotseat bool) (string, model.PlayerColor, error) {
	gameID := uuid.New().String()

	game, err := gs.gameManager.LoadGame(gameID, name, hotseat)
	if err != nil {
		return "", "", err
	}
	color, err := game.AddPlayer(playerID)
	if err != nil {
		return "", "", err
	}
	return gameID, color, nil
}

func (gs *GameService) ExportGame(gameID string) ([]byte, error) {
	return gs.gameManager.Export(gameID)
}

func (gs *GameService) ListSaves() ([]storage.Summary, error) {
	return gs.gameManager.ListSaves()
}

func (gs *GameService) DeleteSave(name string) error {
	return gs.gameManager.DeleteSave(name)
}

func (gs *GameService) GetGame(gameID string) (*model.Game, error) {
	return gs.gameManager.GetGame(gameID)
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn *websocket.Conn) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string, conn *websocket.Conn) {
	gs.gameManager.UnregisterConnection(gameID, playerID, conn)
}

func (gs *GameService) RegisterMatchmakingChannel(playerID string, ch chan ws.MatchFoundEvent) {
	gs.gameManager.RegisterMatchmakingChannel(playerID, ch)
}

func (gs *GameService) UnregisterMatchmakingChannel(playerID string, ch chan ws.MatchFoundEvent) {
	gs.gameManager.UnregisterMatchmakingChannel(playerID, ch)
}
