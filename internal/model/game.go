package model

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/benbeisheim/fablechess-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"
)

// The connections for a specific game
type GameConnections struct {
	connections map[string]*websocket.Conn // playerID -> connection
	mu          sync.RWMutex
	writeMu     sync.Mutex // a conn allows one writer at a time
}

// The Game struct focuses on a single game's state and its observers
type Game struct {
	ID          string
	mu          sync.Mutex
	session     *Session
	hotseat     bool
	white       ClientPlayer
	black       ClientPlayer
	connections *GameConnections // Connections just for this game
	logger      zerolog.Logger
}

// GameState is the snapshot sent to clients after every change.
type GameState struct {
	ID          string      `json:"id"`
	Variant     Variant     `json:"variant"`
	Board       []string    `json:"board"`
	ToMove      PlayerColor `json:"toMove"`
	MoveCount   int         `json:"moveCount"`
	MoveHistory []Ply       `json:"moveHistory"`
	CanUndo     bool        `json:"canUndo"`
	CanRedo     bool        `json:"canRedo"`
	LastMove    *SimpleMove `json:"lastMove"`
	Hotseat     bool        `json:"hotseat"`
	Players     struct {
		White ClientPlayer `json:"white"`
		Black ClientPlayer `json:"black"`
	} `json:"players"`
}

// NewGame starts a fresh board of the given variant. In a hotseat game every
// seated player acts for whichever side is to move.
func NewGame(id string, variant Variant, hotseat bool, logger zerolog.Logger) (*Game, error) {
	session, err := NewSession(variant)
	if err != nil {
		return nil, err
	}
	return &Game{
		ID:          id,
		session:     session,
		hotseat:     hotseat,
		white:       ClientPlayer{Color: PlayerColorWhite},
		black:       ClientPlayer{Color: PlayerColorBlack},
		connections: NewGameConnections(),
		logger:      logger.With().Str("game", id).Logger(),
	}, nil
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]*websocket.Conn),
	}
}

// AddPlayer seats the player in the first free colour. Joining twice returns
// the colour already held.
func (g *Game) AddPlayer(playerID string) (PlayerColor, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if color, ok := g.colorOf(playerID); ok {
		return color, nil
	}
	if g.white.ID == "" {
		g.white.ID = playerID
		return PlayerColorWhite, nil
	}
	if g.black.ID == "" {
		g.black.ID = playerID
		return PlayerColorBlack, nil
	}
	return "", ErrGameFull
}

func (g *Game) colorOf(playerID string) (PlayerColor, bool) {
	switch {
	case playerID == "":
		return "", false
	case g.white.ID == playerID:
		return PlayerColorWhite, true
	case g.black.ID == playerID:
		return PlayerColorBlack, true
	}
	return "", false
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, ok := g.colorOf(playerID)
	return ok
}

func (g *Game) CanSpectate() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.canSpectate()
}

func (g *Game) canSpectate() bool {
	return g.white.ID == "" || g.black.ID == ""
}

func (g *Game) Variant() Variant {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.session.Board.Variant
}

// Execute applies cmd on behalf of playerID. Changes are broadcast to every
// connection of the game.
func (g *Game) Execute(playerID string, cmd Command) (Result, error) {
	g.mu.Lock()
	color, ok := g.colorOf(playerID)
	if !ok {
		g.mu.Unlock()
		return Result{Kind: cmd.Kind}, ErrNotInGame
	}
	actor := color
	if g.hotseat {
		actor = g.session.ToMove()
	}
	res, err := g.session.Apply(actor, cmd)
	g.mu.Unlock()

	if err != nil {
		g.logger.Debug().Err(err).Str("player", playerID).Str("command", string(cmd.Kind)).Msg("command rejected")
		return res, err
	}
	if res.Changed {
		go g.broadcastState()
	}
	return res, nil
}

// History returns the plies currently on the board, oldest first.
func (g *Game) History() []Ply {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.session.Board.History()
}

// Load replaces the board wholesale. The variant follows the new board.
func (g *Game) Load(board *BoardState) {
	g.mu.Lock()
	g.session = &Session{Board: board}
	g.mu.Unlock()

	go g.broadcastState()
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.snapshot()
}

func (g *Game) snapshot() GameState {
	board := g.session.Board
	state := GameState{
		ID:          g.ID,
		Variant:     board.Variant,
		Board:       board.Rows(),
		ToMove:      g.session.ToMove(),
		MoveHistory: board.History(),
		CanUndo:     board.CanUndo(),
		CanRedo:     board.CanRedo(),
		Hotseat:     g.hotseat,
	}
	state.MoveCount = len(state.MoveHistory)
	if last, ok := board.LastPly(); ok {
		state.LastMove = &SimpleMove{From: last.From, To: last.To}
	}
	state.Players.White = g.white
	state.Players.Black = g.black
	return state
}

func (g *Game) RegisterConnection(playerID string, conn *websocket.Conn) error {
	g.mu.Lock()
	_, seated := g.colorOf(playerID)
	isAuthorized := seated || g.canSpectate()
	g.mu.Unlock()

	if !isAuthorized {
		return ErrNotAuthorized
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		// If we already have a healthy connection, keep it and reject the new one
		g.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(
				websocket.CloseNormalClosure,
				"Connection already exists",
			),
		)
		conn.Close()
		return nil // Not really an error, just rejecting duplicate connection
	}

	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()
	g.logger.Info().Str("player", playerID).Str("conn", fmt.Sprintf("%p", conn)).Msg("registered connection")

	// Send initial state...
	go g.broadcastState()
	return nil
}

// UnregisterConnection drops conn only if it is still the player's current
// connection, so a rejected duplicate cannot evict the live one.
func (g *Game) UnregisterConnection(playerID string, conn *websocket.Conn) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if current, exists := g.connections.connections[playerID]; exists && current == conn {
		g.logger.Info().Str("player", playerID).Msg("unregistered connection")
		delete(g.connections.connections, playerID)
	}
}

func (g *Game) broadcastState() {
	state := g.GetState()
	payload, err := json.Marshal(state)
	if err != nil {
		g.logger.Error().Err(err).Msg("failed to marshal state")
		return
	}
	msg := ws.Message{
		Type:    ws.MessageTypeGameState,
		Payload: json.RawMessage(payload),
	}

	// Get a snapshot of connections under the connections mutex
	g.connections.mu.RLock()
	activeConnections := make(map[string]*websocket.Conn, len(g.connections.connections))
	for playerID, conn := range g.connections.connections {
		activeConnections[playerID] = conn
	}
	g.connections.mu.RUnlock()

	for playerID, conn := range activeConnections {
		if err := g.Send(conn, msg); err != nil {
			g.logger.Warn().Err(err).Str("player", playerID).Msg("failed to send state")
			g.UnregisterConnection(playerID, conn)
		}
	}
}

// Send writes one message to a connection of this game.
func (g *Game) Send(conn *websocket.Conn, msg ws.Message) error {
	g.connections.writeMu.Lock()
	defer g.connections.writeMu.Unlock()
	return conn.WriteJSON(msg)
}
