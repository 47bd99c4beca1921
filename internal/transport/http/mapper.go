package http

import (
	"encoding/json"

	"github.com/ParvGautam/Whiteboard/internal/core"
	"github.com/ParvGautam/Whiteboard/internal/proto"
	"github.com/ParvGautam/Whiteboard/internal/roomcode"
	"github.com/ParvGautam/Whiteboard/internal/store"
)

// inboundToCommand validates and maps a wire message to a core command.
// Validation failures come back as a protocol error for the sender; they
// never reach the hub.
func inboundToCommand(inbound proto.Inbound) (*core.Command, *proto.Error, error) {
	switch inbound.Type {
	case proto.InboundTypeJoinRoom:
		var join proto.JoinRoomData
		if err := json.Unmarshal(inbound.Data, &join); err != nil {
			return nil, nil, err
		}
		code := roomcode.Normalize(join.RoomID)
		if !roomcode.Valid(code) {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "invalid room code"}, nil
		}
		return &core.Command{Kind: core.CommandJoinRoom, Room: code}, nil, nil

	case proto.InboundTypeLeaveRoom:
		return &core.Command{Kind: core.CommandLeaveRoom}, nil, nil

	case proto.InboundTypeCursorMove:
		var cur proto.CursorMoveData
		if err := json.Unmarshal(inbound.Data, &cur); err != nil {
			return nil, nil, err
		}
		return &core.Command{Kind: core.CommandCursorMove, X: cur.X, Y: cur.Y}, nil, nil

	case proto.InboundTypeDrawStart:
		var start proto.DrawStartData
		if err := json.Unmarshal(inbound.Data, &start); err != nil {
			return nil, nil, err
		}
		return &core.Command{
			Kind: core.CommandDrawStart,
			Stroke: &store.Stroke{
				Start: store.Point{X: start.Stroke.Start.X, Y: start.Stroke.Start.Y},
				Color: start.Stroke.Color,
				Width: start.Stroke.Width,
			},
		}, nil, nil

	case proto.InboundTypeDrawMove:
		var move proto.DrawMoveData
		if err := json.Unmarshal(inbound.Data, &move); err != nil {
			return nil, nil, err
		}
		return &core.Command{
			Kind:  core.CommandDrawMove,
			Point: &store.Point{X: move.Point.X, Y: move.Point.Y},
		}, nil, nil

	case proto.InboundTypeDrawEnd:
		return &core.Command{Kind: core.CommandDrawEnd}, nil, nil

	case proto.InboundTypeClearCanvas:
		return &core.Command{Kind: core.CommandClearCanvas}, nil, nil

	default:
		return nil, &proto.Error{Code: "invalid_message", Msg: "unknown message type"}, nil
	}
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventUserCount:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventUserCount,
			Data:  proto.EventUserCountData{Count: event.Count},
		}
	case core.EventLoadDrawing:
		commands := make([]proto.DrawingCommand, 0, len(event.Commands))
		for _, cmd := range event.Commands {
			commands = append(commands, wireCommand(cmd))
		}
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventLoadDrawing,
			Data:  proto.EventLoadDrawingData{DrawingData: commands},
		}
	case core.EventCursorMove:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventCursorMove,
			Data:  proto.EventCursorMoveData{UserID: event.From, X: event.X, Y: event.Y},
		}
	case core.EventRemoteDrawStart:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventRemoteDrawStart,
			Data: proto.EventRemoteDrawStartData{
				SocketID: event.From,
				Stroke:   wireStroke(event.Stroke),
			},
		}
	case core.EventRemoteDrawMove:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventRemoteDrawMove,
			Data: proto.EventRemoteDrawMoveData{
				SocketID: event.From,
				Point:    wirePoint(event.Point),
			},
		}
	case core.EventRemoteDrawEnd:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventRemoteDrawEnd,
			Data:  proto.EventRemoteDrawEndData{SocketID: event.From},
		}
	case core.EventRemoteClearCanvas:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventRemoteClearCanvas,
		}
	case core.EventError:
		if event.Error == nil {
			return proto.Outbound{Type: proto.OutboundTypeError, Error: &proto.Error{Code: "unknown", Msg: "unknown error"}}
		}
		return proto.Outbound{
			Type:  proto.OutboundTypeError,
			Error: &proto.Error{Code: event.Error.Code, Msg: event.Error.Message},
		}
	default:
		return proto.Outbound{Type: proto.OutboundTypeEvent}
	}
}

func wireCommand(cmd store.DrawingCommand) proto.DrawingCommand {
	wire := proto.DrawingCommand{
		Type:       string(cmd.Type),
		RecordedAt: cmd.RecordedAt,
	}
	if cmd.Stroke != nil {
		s := wireStroke(cmd.Stroke)
		wire.Stroke = &s
	}
	if cmd.Point != nil {
		p := wirePoint(cmd.Point)
		wire.Point = &p
	}
	return wire
}

func wireStroke(s *store.Stroke) proto.Stroke {
	if s == nil {
		return proto.Stroke{}
	}
	return proto.Stroke{
		Start: proto.Point{X: s.Start.X, Y: s.Start.Y},
		Color: s.Color,
		Width: s.Width,
	}
}

func wirePoint(p *store.Point) proto.Point {
	if p == nil {
		return proto.Point{}
	}
	return proto.Point{X: p.X, Y: p.Y}
}
