package store

import (
	"context"
	"time"
)

// Point is a single canvas coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Stroke describes the opening of one continuous drawing gesture.
type Stroke struct {
	Start Point   `json:"start"`
	Color string  `json:"color"`
	Width float64 `json:"width"`
}

// CommandType identifies the kind of a drawing command.
type CommandType string

const (
	CommandStrokeStart CommandType = "stroke-start"
	CommandStrokeMove  CommandType = "stroke-move"
	CommandStrokeEnd   CommandType = "stroke-end"
	CommandClear       CommandType = "clear"
)

// Valid reports whether t is one of the known command types.
func (t CommandType) Valid() bool {
	switch t {
	case CommandStrokeStart, CommandStrokeMove, CommandStrokeEnd, CommandClear:
		return true
	}
	return false
}

// DrawingCommand is one entry of a room's append-only drawing log.
// Stroke is set for stroke-start, Point for stroke-move; stroke-end and
// clear carry no payload. Entries are never mutated or deleted; a clear
// command is just another log entry that replay interprets as a reset.
type DrawingCommand struct {
	ID         int64
	RoomID     string
	Type       CommandType
	Stroke     *Stroke
	Point      *Point
	RecordedAt time.Time
}

// Room is the persistent record a room's log appends target.
type Room struct {
	ID           string
	CreatedAt    time.Time
	LastActivity time.Time
}

// RoomStore handles room records.
type RoomStore interface {
	// FindOrCreateRoom returns the room with the given ID, creating it if
	// missing. Reports whether it was created and the current log length.
	FindOrCreateRoom(ctx context.Context, roomID string) (room *Room, created bool, commandCount int, err error)

	// GetRoom retrieves a room by ID. Returns nil, nil when absent.
	GetRoom(ctx context.Context, roomID string) (*Room, error)

	// TouchRoom bumps the room's last-activity timestamp.
	TouchRoom(ctx context.Context, roomID string) error
}

// CommandLog handles the per-room append-only drawing log.
type CommandLog interface {
	// AppendCommand appends one command to its room's log. Appends to the
	// same room preserve call order.
	AppendCommand(ctx context.Context, cmd *DrawingCommand) error

	// FetchCommands returns a room's full log in append order.
	FetchCommands(ctx context.Context, roomID string) ([]DrawingCommand, error)

	// CommandCount returns the length of a room's log.
	CommandCount(ctx context.Context, roomID string) (int, error)
}

// Stats are aggregate counters for the stats endpoint.
type Stats struct {
	Rooms    int `json:"rooms"`
	Commands int `json:"commands"`
}

// Store aggregates all storage interfaces.
type Store interface {
	RoomStore
	CommandLog

	// Stats returns aggregate room/command counters.
	Stats(ctx context.Context) (*Stats, error)

	// Close closes the underlying database connection.
	Close() error
}
