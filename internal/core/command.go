package core

import "github.com/ParvGautam/Whiteboard/internal/store"

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandJoinRoom subscribes the connection to a room.
	CommandJoinRoom CommandKind = iota
	// CommandLeaveRoom unsubscribes the connection from its current room.
	CommandLeaveRoom
	// CommandCursorMove reports the connection's cursor position.
	CommandCursorMove
	// CommandDrawStart opens a new stroke.
	CommandDrawStart
	// CommandDrawMove extends the current stroke.
	CommandDrawMove
	// CommandDrawEnd closes the current stroke.
	CommandDrawEnd
	// CommandClearCanvas resets the room's drawing surface.
	CommandClearCanvas
)

// Command represents an action requested by a connection. Room is only
// meaningful for CommandJoinRoom; every other command targets the room the
// connection is currently a member of.
type Command struct {
	Kind   CommandKind
	Room   string
	X, Y   float64
	Stroke *store.Stroke
	Point  *store.Point
}
