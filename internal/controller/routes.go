package controller

import (
	"github.com/benbeisheim/fablechess-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"
)

type RouteConfig struct {
	AllowOrigins string
	Logger       zerolog.Logger
}

// RegisterRoutes mounts the REST and WebSocket endpoints on app.
func RegisterRoutes(app *fiber.App, cfg RouteConfig, gameController *GameController, wsController *WebSocketController) {
	app.Use(requestid.New())
	app.Use(middleware.RequestLogger(cfg.Logger))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, X-Player-ID",
		AllowMethods:     "GET, POST, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// Set up WebSocket routes
	wsRoutes := app.Group("/ws", middleware.EnsurePlayerID(), middleware.WebSocketUpgrade())
	wsConfig := websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
	wsRoutes.Get("/game/:gameId", websocket.New(wsController.HandleConnection, wsConfig))
	wsRoutes.Get("/matchmaking", websocket.New(wsController.HandleMatchmaking, wsConfig))

	// Set up REST routes
	api := app.Group("/api", middleware.EnsurePlayerID())
	api.Get("/saves", gameController.ListSaves)
	api.Delete("/saves/:name", gameController.DeleteSave)

	gameRoutes := api.Group("/game")
	gameRoutes.Post("/matchmaking/join", gameController.JoinMatchmaking)
	gameRoutes.Post("/matchmaking/leave", gameController.LeaveMatchmaking)
	gameRoutes.Post("/create", gameController.CreateGame)
	gameRoutes.Post("/load", gameController.LoadGame)
	gameRoutes.Post("/join/:gameId", gameController.JoinGame)
	gameRoutes.Get("/:gameId", gameController.GetGameState)
	gameRoutes.Post("/:gameId/move", gameController.MakeMove)
	gameRoutes.Post("/:gameId/undo", gameController.Undo)
	gameRoutes.Post("/:gameId/redo", gameController.Redo)
	gameRoutes.Get("/:gameId/hint/:square", gameController.Hint)
	gameRoutes.Get("/:gameId/threats/:square", gameController.Threats)
	gameRoutes.Post("/:gameId/save", gameController.SaveGame)
	gameRoutes.Get("/:gameId/export", gameController.ExportGame)
}
