package proto

import (
	"encoding/json"
	"time"
)

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	InboundTypeJoinRoom    = "join-room"
	InboundTypeLeaveRoom   = "leave-room"
	InboundTypeCursorMove  = "cursor-move"
	InboundTypeDrawStart   = "draw-start"
	InboundTypeDrawMove    = "draw-move"
	InboundTypeDrawEnd     = "draw-end"
	InboundTypeClearCanvas = "clear-canvas"

	OutboundTypeEvent = "event"
	OutboundTypeError = "error"

	EventUserCount         = "user-count"
	EventLoadDrawing       = "load-drawing"
	EventCursorMove        = "cursor-move"
	EventRemoteDrawStart   = "remote-draw-start"
	EventRemoteDrawMove    = "remote-draw-move"
	EventRemoteDrawEnd     = "remote-draw-end"
	EventRemoteClearCanvas = "remote-clear-canvas"
)

// Point is a canvas coordinate on the wire.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Stroke opens a drawing gesture.
type Stroke struct {
	Start Point   `json:"start"`
	Color string  `json:"color"`
	Width float64 `json:"width"`
}

// JoinRoomData requests to join a room by its code.
type JoinRoomData struct {
	RoomID string `json:"roomId"`
}

// CursorMoveData reports the client's cursor position.
type CursorMoveData struct {
	RoomID string  `json:"roomId,omitempty"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// DrawStartData opens a stroke in the client's current room.
type DrawStartData struct {
	RoomID string `json:"roomId,omitempty"`
	Stroke Stroke `json:"stroke"`
}

// DrawMoveData extends the client's current stroke.
type DrawMoveData struct {
	RoomID string `json:"roomId,omitempty"`
	Point  Point  `json:"point"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	Event string `json:"event,omitempty"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// EventUserCountData announces a room's participant count.
type EventUserCountData struct {
	Count int `json:"count"`
}

// DrawingCommand is one log entry delivered during replay.
type DrawingCommand struct {
	Type       string    `json:"type"`
	Stroke     *Stroke   `json:"stroke,omitempty"`
	Point      *Point    `json:"point,omitempty"`
	RecordedAt time.Time `json:"recordedAt"`
}

// EventLoadDrawingData delivers the room's full log to a joining client.
type EventLoadDrawingData struct {
	DrawingData []DrawingCommand `json:"drawingData"`
}

// EventCursorMoveData relays another participant's cursor.
type EventCursorMoveData struct {
	UserID string  `json:"userId"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// EventRemoteDrawStartData relays a stroke opened by another participant.
type EventRemoteDrawStartData struct {
	SocketID string `json:"socketId"`
	Stroke   Stroke `json:"stroke"`
}

// EventRemoteDrawMoveData relays a stroke point from another participant.
type EventRemoteDrawMoveData struct {
	SocketID string `json:"socketId"`
	Point    Point  `json:"point"`
}

// EventRemoteDrawEndData relays a stroke close from another participant.
type EventRemoteDrawEndData struct {
	SocketID string `json:"socketId"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
