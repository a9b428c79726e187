package controller

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/benbeisheim/fablechess-backend/internal/model"
	"github.com/benbeisheim/fablechess-backend/internal/service"
	"github.com/benbeisheim/fablechess-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"
)

type WebSocketController struct {
	gameService *service.GameService
	logger      zerolog.Logger
}

func NewWebSocketController(gameService *service.GameService, logger zerolog.Logger) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
		logger:      logger.With().Str("component", "websocket").Logger(),
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID, _ := c.Locals("playerID").(string)
	log := wsc.logger.With().Str("game", gameID).Str("player", playerID).Logger()

	game, err := wsc.gameService.GetGame(gameID)
	if err != nil {
		log.Warn().Err(err).Msg("connection to unknown game")
		c.Close()
		return
	}
	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		log.Warn().Err(err).Msg("failed to register connection")
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID, c)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debug().Err(err).Msg("read error")
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Debug().Err(err).Msg("parse error")
			wsc.sendError(game, c, fmt.Errorf("invalid message: %w", err))
			continue
		}

		reply, err := wsc.handleMessage(gameID, playerID, msg)
		if err != nil {
			log.Debug().Err(err).Str("type", string(msg.Type)).Msg("handle error")
			wsc.sendError(game, c, err)
			continue
		}
		if reply != nil {
			if err := game.Send(c, *reply); err != nil {
				log.Warn().Err(err).Msg("write error")
				return
			}
		}
	}
}

// handleMessage turns a client message into a command. Board changes reach
// the client through the state broadcast; read-only queries get a direct reply.
func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) (*ws.Message, error) {
	var cmd model.Command
	switch msg.Type {
	case ws.MessageTypeMove:
		var move ws.MovePayload
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return nil, err
		}
		cmd = model.Command{Kind: model.CommandMove, From: move.From, To: move.To}
	case ws.MessageTypeUndo:
		cmd = model.Command{Kind: model.CommandUndo}
	case ws.MessageTypeRedo:
		cmd = model.Command{Kind: model.CommandRedo}
	case ws.MessageTypeHint, ws.MessageTypeThreats:
		var sq ws.SquarePayload
		if err := json.Unmarshal(msg.Payload, &sq); err != nil {
			return nil, err
		}
		cmd = model.Command{Kind: model.CommandKind(msg.Type), Square: sq.Square}
	default:
		return nil, fmt.Errorf("unknown message type: %s", msg.Type)
	}

	result, err := wsc.gameService.HandleCommand(gameID, playerID, cmd)
	if err != nil {
		return nil, err
	}
	if cmd.Kind != model.CommandHint && cmd.Kind != model.CommandThreats {
		return nil, nil
	}
	reply, err := ws.NewMessage(msg.Type, result)
	if err != nil {
		return nil, err
	}
	return &reply, nil
}

func (wsc *WebSocketController) sendError(game *model.Game, c *websocket.Conn, err error) {
	msg, merr := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Error: err.Error()})
	if merr != nil {
		return
	}
	if werr := game.Send(c, msg); werr != nil {
		wsc.logger.Debug().Err(werr).Msg("failed to send error")
	}
}

// HandleMatchmaking queues the player and waits for a match on the socket.
// Closing the socket leaves the queue.
func (wsc *WebSocketController) HandleMatchmaking(c *websocket.Conn) {
	playerID, _ := c.Locals("playerID").(string)
	log := wsc.logger.With().Str("player", playerID).Logger()

	variant, err := model.ParseVariant(c.Query("variant"))
	if err != nil {
		writeError(c, err)
		c.Close()
		return
	}

	ch := make(chan ws.MatchFoundEvent, 1)
	wsc.gameService.RegisterMatchmakingChannel(playerID, ch)
	defer wsc.gameService.UnregisterMatchmakingChannel(playerID, ch)

	if err := wsc.gameService.JoinMatchmaking(playerID, variant); err != nil && !errors.Is(err, model.ErrAlreadyQueued) {
		writeError(c, err)
		c.Close()
		return
	}

	// Reader goroutine detects the client going away
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	select {
	case event, ok := <-ch:
		if !ok {
			log.Debug().Msg("matchmaking channel replaced")
			return
		}
		msg, err := ws.NewMessage(ws.MessageTypeMatchFound, event)
		if err != nil {
			return
		}
		if err := c.WriteJSON(msg); err != nil {
			log.Warn().Err(err).Msg("failed to send match found")
		}
		log.Info().Str("game", event.GameID).Msg("match found")
	case <-closed:
		wsc.gameService.LeaveMatchmaking(playerID)
		log.Debug().Msg("left matchmaking")
	}
}

// writeError is for sockets not attached to a game.
func writeError(c *websocket.Conn, err error) {
	msg, merr := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Error: err.Error()})
	if merr != nil {
		return
	}
	c.WriteJSON(msg)
}
