package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ParvGautam/Whiteboard/internal/config"
	"github.com/ParvGautam/Whiteboard/internal/core"
	"github.com/ParvGautam/Whiteboard/internal/store"
)

// NewServer builds the HTTP server: REST surface for room lookup/creation
// and the /ws endpoint bridging into the hub.
func NewServer(hub *core.Hub, st store.Store, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), LoggerMiddleware(logger), CORSMiddleware())

	rooms := NewRoomHandlers(st, logger)
	engine.GET("/health", rooms.Health)

	api := engine.Group("/api")
	{
		api.POST("/rooms", rooms.CreateRoom)
		api.POST("/rooms/join", rooms.JoinRoom)
		api.GET("/rooms/:roomId", rooms.RoomInfo)
		api.GET("/stats", rooms.Stats)
	}

	engine.GET("/ws", gin.WrapH(NewWSHandler(hub, logger, cfg.ClientMsgRate, cfg.ClientMsgBurst)))

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           engine,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}
