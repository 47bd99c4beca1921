package core

import "github.com/ParvGautam/Whiteboard/internal/store"

// EventKind is a notification the core emits to connections.
type EventKind int

const (
	// EventUserCount announces a room's participant count to the whole room.
	EventUserCount EventKind = iota
	// EventLoadDrawing delivers the room's command log to a connection that
	// just joined, so it can replay the canvas.
	EventLoadDrawing
	// EventCursorMove relays another participant's cursor position.
	EventCursorMove
	// EventRemoteDrawStart relays a stroke opened by another participant.
	EventRemoteDrawStart
	// EventRemoteDrawMove relays a stroke point from another participant.
	EventRemoteDrawMove
	// EventRemoteDrawEnd relays a stroke close from another participant.
	EventRemoteDrawEnd
	// EventRemoteClearCanvas announces a canvas reset to the whole room,
	// the initiator included.
	EventRemoteClearCanvas
	// EventError notifies the originating connection about a domain error.
	EventError
)

// Event is sent to connections to describe what happened in a room.
type Event struct {
	Kind     EventKind
	Room     string
	From     string // originating connection ID, where relevant
	Count    int
	X, Y     float64
	Stroke   *store.Stroke
	Point    *store.Point
	Commands []store.DrawingCommand
	Error    *CoreError
}
