package core

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/ParvGautam/Whiteboard/internal/store"
)

// Cursor liveness defaults: entries not refreshed within the TTL are removed
// by the periodic sweep.
const (
	DefaultCursorTTL           = 5 * time.Second
	DefaultCursorSweepInterval = time.Second
)

type clientCommand struct {
	client *Client
	cmd    *Command
}

// Hub is the authoritative room session core. A single run-loop goroutine
// owns all registry state, so every inbound command is handled to completion
// before the next one: no cross-connection locks, and events from one source
// reach the rest of a room in the order they were accepted. Log appends are
// handed to a writer goroutine and never block fan-out.
type Hub struct {
	CursorTTL           time.Duration
	CursorSweepInterval time.Duration

	registry *Registry
	store    store.Store
	writer   *logWriter
	log      zerolog.Logger

	register   chan *Client
	unregister chan *Client
	commands   chan clientCommand

	clients   map[*Client]struct{}
	lastStamp map[string]time.Time
}

// NewHub constructs a hub over the given command log store. The store and
// logger may be nil in tests that only exercise membership and fan-out.
func NewHub(st store.Store, logger *zerolog.Logger) *Hub {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Hub{
		CursorTTL:           DefaultCursorTTL,
		CursorSweepInterval: DefaultCursorSweepInterval,
		registry:            NewRegistry(),
		store:               st,
		writer:              newLogWriter(st, *logger),
		log:                 *logger,
		register:            make(chan *Client),
		unregister:          make(chan *Client),
		commands:            make(chan clientCommand, 64),
		clients:             make(map[*Client]struct{}),
		lastStamp:           make(map[string]time.Time),
	}
}

// RegisterClient attaches a connection to the hub.
func (h *Hub) RegisterClient(c *Client) {
	h.register <- c
}

// UnregisterClient detaches a connection, applying leave semantics to its
// current room. Called by the transport layer on disconnect.
func (h *Hub) UnregisterClient(c *Client) {
	h.unregister <- c
}

// Run processes registrations and commands until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	go h.writer.run(ctx)

	sweep := time.NewTicker(h.CursorSweepInterval)
	defer sweep.Stop()

	for {
		select {
		case c := <-h.register:
			h.clients[c] = struct{}{}
			go h.pump(ctx, c)
			h.log.Debug().Str("conn_id", c.ID).Msg("client registered")

		case c := <-h.unregister:
			h.handleDisconnect(c)

		case cc := <-h.commands:
			h.handle(ctx, cc.client, cc.cmd)

		case now := <-sweep.C:
			if pruned := h.registry.PruneStaleCursors(now, h.CursorTTL); pruned > 0 {
				h.log.Debug().Int("pruned", pruned).Msg("stale cursors removed")
			}

		case <-ctx.Done():
			return
		}
	}
}

// pump forwards one client's commands into the shared loop. One goroutine
// per client keeps per-source FIFO intact.
func (h *Hub) pump(ctx context.Context, c *Client) {
	for {
		select {
		case cmd := <-c.Commands:
			select {
			case h.commands <- clientCommand{client: c, cmd: cmd}:
			case <-c.done:
				return
			case <-ctx.Done():
				return
			}
		case <-c.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (h *Hub) handle(ctx context.Context, c *Client, cmd *Command) {
	switch cmd.Kind {
	case CommandJoinRoom:
		h.handleJoin(ctx, c, cmd.Room)
	case CommandLeaveRoom:
		h.handleLeave(c)
	case CommandCursorMove:
		h.handleCursorMove(c, cmd.X, cmd.Y)
	case CommandDrawStart, CommandDrawMove, CommandDrawEnd, CommandClearCanvas:
		h.handleDraw(c, cmd)
	default:
		c.send(&Event{Kind: EventError, Error: coreError(ErrCodeBadRequest, "unknown command")})
	}
}

func (h *Hub) handleJoin(ctx context.Context, c *Client, roomID string) {
	res := h.registry.Join(c, roomID)
	if res.Rejoin {
		// Join is idempotent: nothing changed, so no count broadcast and no
		// second replay delivery.
		return
	}
	if res.PrevRoom != "" {
		if res.PrevCount == 0 {
			delete(h.lastStamp, res.PrevRoom)
		}
		h.broadcastUserCount(res.PrevRoom)
	}
	h.broadcastUserCount(roomID)

	h.log.Info().Str("conn_id", c.ID).Str("room", roomID).Int("count", res.Count).Msg("joined room")

	// Replay is fetched off the loop so a slow store never stalls other
	// rooms; the log is delivered only to the joining connection.
	if h.store != nil {
		go h.loadDrawing(ctx, c, roomID)
	}
}

func (h *Hub) loadDrawing(ctx context.Context, c *Client, roomID string) {
	fetchCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	commands, err := h.store.FetchCommands(fetchCtx, roomID)
	if err != nil {
		h.log.Error().Err(err).Str("room", roomID).Msg("fetch drawing log")
		c.send(&Event{Kind: EventError, Error: coreError(ErrCodeLoadFailed, "failed to load existing drawings")})
		return
	}
	if len(commands) == 0 {
		return
	}
	c.send(&Event{Kind: EventLoadDrawing, Room: roomID, Commands: commands})
}

func (h *Hub) handleLeave(c *Client) {
	roomID, count, ok := h.registry.Leave(c)
	if !ok {
		return
	}
	if count == 0 {
		delete(h.lastStamp, roomID)
	}
	h.broadcastUserCount(roomID)
	h.log.Info().Str("conn_id", c.ID).Str("room", roomID).Int("count", count).Msg("left room")
}

func (h *Hub) handleCursorMove(c *Client, x, y float64) {
	roomID, ok := h.registry.RoomOf(c)
	if !ok {
		return
	}
	h.registry.RecordCursor(c, roomID, x, y, time.Now())

	room, _ := h.registry.Room(roomID)
	room.Broadcast(&Event{Kind: EventCursorMove, Room: roomID, From: c.ID, X: x, Y: y}, c)
}

func (h *Hub) handleDraw(c *Client, cmd *Command) {
	roomID, ok := h.registry.RoomOf(c)
	if !ok {
		// Draw events from connections not in any room are dropped, not
		// errored; they arise from reordering around reconnects.
		return
	}

	record := &store.DrawingCommand{
		RoomID:     roomID,
		Stroke:     cmd.Stroke,
		Point:      cmd.Point,
		RecordedAt: h.stamp(roomID),
	}

	ev := &Event{Room: roomID, From: c.ID}
	exclude := c
	switch cmd.Kind {
	case CommandDrawStart:
		record.Type = store.CommandStrokeStart
		ev.Kind = EventRemoteDrawStart
		ev.Stroke = cmd.Stroke
	case CommandDrawMove:
		record.Type = store.CommandStrokeMove
		ev.Kind = EventRemoteDrawMove
		ev.Point = cmd.Point
	case CommandDrawEnd:
		record.Type = store.CommandStrokeEnd
		ev.Kind = EventRemoteDrawEnd
	case CommandClearCanvas:
		record.Type = store.CommandClear
		ev.Kind = EventRemoteClearCanvas
		// Clearing is a global reset the initiator expects to see reflected
		// identically, so the sender is not excluded.
		exclude = nil
	}

	// Persistence is fire-and-forget relative to the broadcast: a failed
	// append is logged and reported to the originator only.
	if h.store != nil {
		h.writer.enqueue(appendJob{origin: c, cmd: record})
	}

	room, _ := h.registry.Room(roomID)
	room.Broadcast(ev, exclude)
}

func (h *Hub) handleDisconnect(c *Client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.done)
	h.handleLeave(c)
	h.log.Debug().Str("conn_id", c.ID).Msg("client unregistered")
}

func (h *Hub) broadcastUserCount(roomID string) {
	room, ok := h.registry.Room(roomID)
	if !ok {
		return
	}
	room.Broadcast(&Event{Kind: EventUserCount, Room: roomID, Count: room.Count()}, nil)
}

// stamp assigns the server-side timestamp for a room's next log entry,
// clamped so timestamps within one room's log never decrease.
func (h *Hub) stamp(roomID string) time.Time {
	now := time.Now()
	if last, ok := h.lastStamp[roomID]; ok && now.Before(last) {
		now = last
	}
	h.lastStamp[roomID] = now
	return now
}
