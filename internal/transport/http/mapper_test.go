package http

import (
	"encoding/json"
	"testing"

	"github.com/ParvGautam/Whiteboard/internal/core"
	"github.com/ParvGautam/Whiteboard/internal/proto"
)

func inbound(t *testing.T, typ string, data any) proto.Inbound {
	t.Helper()
	payload, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return proto.Inbound{Type: typ, Data: payload}
}

func TestInboundToCommandJoinNormalizesCode(t *testing.T) {
	cmd, protoErr, err := inboundToCommand(inbound(t, proto.InboundTypeJoinRoom, proto.JoinRoomData{RoomID: "abc123"}))
	if err != nil || protoErr != nil {
		t.Fatalf("unexpected errors: %v %v", err, protoErr)
	}
	if cmd.Kind != core.CommandJoinRoom || cmd.Room != "ABC123" {
		t.Fatalf("unexpected command: %+v", cmd)
	}
}

func TestInboundToCommandJoinRejectsBadCode(t *testing.T) {
	for _, code := range []string{"", "abc", "toolongcode1", "bad co"} {
		_, protoErr, err := inboundToCommand(inbound(t, proto.InboundTypeJoinRoom, proto.JoinRoomData{RoomID: code}))
		if err != nil {
			t.Fatalf("unexpected mapping error for %q: %v", code, err)
		}
		if protoErr == nil || protoErr.Code != core.ErrCodeBadRequest {
			t.Fatalf("expected bad_request for %q, got %+v", code, protoErr)
		}
	}
}

func TestInboundToCommandDrawStart(t *testing.T) {
	cmd, protoErr, err := inboundToCommand(inbound(t, proto.InboundTypeDrawStart, proto.DrawStartData{
		Stroke: proto.Stroke{Start: proto.Point{X: 1, Y: 2}, Color: "#abc", Width: 3},
	}))
	if err != nil || protoErr != nil {
		t.Fatalf("unexpected errors: %v %v", err, protoErr)
	}
	if cmd.Kind != core.CommandDrawStart || cmd.Stroke == nil {
		t.Fatalf("unexpected command: %+v", cmd)
	}
	if cmd.Stroke.Start.X != 1 || cmd.Stroke.Color != "#abc" || cmd.Stroke.Width != 3 {
		t.Fatalf("stroke lost in mapping: %+v", cmd.Stroke)
	}
}

func TestInboundToCommandUnknownType(t *testing.T) {
	_, protoErr, err := inboundToCommand(proto.Inbound{Type: "telepathy"})
	if err != nil {
		t.Fatalf("unexpected mapping error: %v", err)
	}
	if protoErr == nil || protoErr.Code != "invalid_message" {
		t.Fatalf("expected invalid_message, got %+v", protoErr)
	}
}

func TestOutboundFromEventClearCanvas(t *testing.T) {
	out := outboundFromEvent(&core.Event{Kind: core.EventRemoteClearCanvas, Room: "ABC123"})
	if out.Type != proto.OutboundTypeEvent || out.Event != proto.EventRemoteClearCanvas {
		t.Fatalf("unexpected outbound: %+v", out)
	}
}

func TestOutboundFromEventError(t *testing.T) {
	out := outboundFromEvent(&core.Event{
		Kind:  core.EventError,
		Error: &core.CoreError{Code: core.ErrCodePersistFailed, Message: "failed to save drawing command"},
	})
	if out.Type != proto.OutboundTypeError || out.Error == nil || out.Error.Code != core.ErrCodePersistFailed {
		t.Fatalf("unexpected outbound: %+v", out)
	}
}
