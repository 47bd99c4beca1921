package http

import (
	stdhttp "net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ParvGautam/Whiteboard/internal/replay"
	"github.com/ParvGautam/Whiteboard/internal/roomcode"
	"github.com/ParvGautam/Whiteboard/internal/store"
)

// ErrorResponse is the JSON body for REST errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RoomHandlers serves the REST surface around rooms: create, join, info,
// stats. Room codes are validated and normalized here; the socket core
// assumes roomIds it sees are already valid.
type RoomHandlers struct {
	store store.Store
	log   *zerolog.Logger
}

// NewRoomHandlers builds REST handlers over the store.
func NewRoomHandlers(st store.Store, logger *zerolog.Logger) *RoomHandlers {
	return &RoomHandlers{store: st, log: logger}
}

type joinRoomRequest struct {
	RoomID string `json:"roomId"`
}

type joinRoomResponse struct {
	RoomID       string `json:"roomId"`
	IsNew        bool   `json:"isNew"`
	CommandCount int    `json:"commandCount"`
}

// JoinRoom finds or creates the room for a client-supplied code.
func (h *RoomHandlers) JoinRoom(c *gin.Context) {
	var req joinRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(stdhttp.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	code := roomcode.Normalize(req.RoomID)
	if !roomcode.Valid(code) {
		c.JSON(stdhttp.StatusBadRequest, ErrorResponse{Error: "invalid room code"})
		return
	}

	room, created, count, err := h.store.FindOrCreateRoom(c.Request.Context(), code)
	if err != nil {
		h.log.Error().Err(err).Str("room", code).Msg("find or create room")
		c.JSON(stdhttp.StatusInternalServerError, ErrorResponse{Error: "failed to join room"})
		return
	}
	if created {
		h.log.Info().Str("room", room.ID).Msg("created new room")
	}

	c.JSON(stdhttp.StatusOK, joinRoomResponse{
		RoomID:       room.ID,
		IsNew:        created,
		CommandCount: count,
	})
}

type createRoomResponse struct {
	RoomID string `json:"roomId"`
}

// CreateRoom generates a fresh room code and creates the room record.
func (h *RoomHandlers) CreateRoom(c *gin.Context) {
	// A handful of retries covers the unlikely collision with an existing
	// room; the caller always gets a room that was new.
	for attempt := 0; attempt < 5; attempt++ {
		code := roomcode.New()
		room, created, _, err := h.store.FindOrCreateRoom(c.Request.Context(), code)
		if err != nil {
			h.log.Error().Err(err).Str("room", code).Msg("create room")
			c.JSON(stdhttp.StatusInternalServerError, ErrorResponse{Error: "failed to create room"})
			return
		}
		if created {
			h.log.Info().Str("room", room.ID).Msg("created new room")
			c.JSON(stdhttp.StatusCreated, createRoomResponse{RoomID: room.ID})
			return
		}
	}
	c.JSON(stdhttp.StatusInternalServerError, ErrorResponse{Error: "failed to allocate room code"})
}

type roomInfoResponse struct {
	RoomID       string    `json:"roomId"`
	CreatedAt    time.Time `json:"createdAt"`
	LastActivity time.Time `json:"lastActivity"`
	CommandCount int       `json:"commandCount"`
	PathCount    int       `json:"pathCount"`
}

// RoomInfo returns a room record with its log length and the number of
// paths a replay of that log produces.
func (h *RoomHandlers) RoomInfo(c *gin.Context) {
	code := roomcode.Normalize(c.Param("roomId"))
	if !roomcode.Valid(code) {
		c.JSON(stdhttp.StatusBadRequest, ErrorResponse{Error: "invalid room code"})
		return
	}

	room, err := h.store.GetRoom(c.Request.Context(), code)
	if err != nil {
		h.log.Error().Err(err).Str("room", code).Msg("get room")
		c.JSON(stdhttp.StatusInternalServerError, ErrorResponse{Error: "failed to fetch room"})
		return
	}
	if room == nil {
		c.JSON(stdhttp.StatusNotFound, ErrorResponse{Error: "room not found"})
		return
	}

	commands, err := h.store.FetchCommands(c.Request.Context(), code)
	if err != nil {
		h.log.Error().Err(err).Str("room", code).Msg("fetch commands")
		c.JSON(stdhttp.StatusInternalServerError, ErrorResponse{Error: "failed to fetch room"})
		return
	}

	c.JSON(stdhttp.StatusOK, roomInfoResponse{
		RoomID:       room.ID,
		CreatedAt:    room.CreatedAt,
		LastActivity: room.LastActivity,
		CommandCount: len(commands),
		PathCount:    len(replay.Render(commands).Paths()),
	})
}

// Stats returns aggregate room and command counters.
func (h *RoomHandlers) Stats(c *gin.Context) {
	stats, err := h.store.Stats(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("fetch stats")
		c.JSON(stdhttp.StatusInternalServerError, ErrorResponse{Error: "failed to fetch stats"})
		return
	}
	c.JSON(stdhttp.StatusOK, stats)
}

// Health is a liveness probe.
func (h *RoomHandlers) Health(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}
