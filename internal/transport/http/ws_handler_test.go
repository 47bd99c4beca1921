package http

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/ParvGautam/Whiteboard/internal/proto"
)

type wsEnvelope struct {
	Type  string          `json:"type"`
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
	Error *proto.Error    `json:"error"`
}

func dialWS(t *testing.T, ctx context.Context, url string) *websocket.Conn {
	t.Helper()

	wsURL := strings.Replace(url, "http", "ws", 1) + "/ws"
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", wsURL, err)
	}
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "done") })
	return conn
}

func send(t *testing.T, ctx context.Context, conn *websocket.Conn, typ string, data any) {
	t.Helper()

	payload, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal %s payload: %v", typ, err)
	}
	if err := wsjson.Write(ctx, conn, proto.Inbound{Type: typ, Data: payload}); err != nil {
		t.Fatalf("write %s: %v", typ, err)
	}
}

// readUntil skips events until it sees the wanted one; "error" matches the
// error envelope.
func readUntil(t *testing.T, ctx context.Context, conn *websocket.Conn, want string) wsEnvelope {
	t.Helper()

	for {
		var env wsEnvelope
		if err := wsjson.Read(ctx, conn, &env); err != nil {
			t.Fatalf("read waiting for %s: %v", want, err)
		}
		if want == "error" && env.Type == proto.OutboundTypeError {
			return env
		}
		if env.Event == want {
			return env
		}
	}
}

func TestWebSocketJoinAndDrawFanOut(t *testing.T) {
	ts := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	connA := dialWS(t, ctx, ts.URL)
	connB := dialWS(t, ctx, ts.URL)

	send(t, ctx, connA, proto.InboundTypeJoinRoom, proto.JoinRoomData{RoomID: "abc123"})
	env := readUntil(t, ctx, connA, proto.EventUserCount)

	var count proto.EventUserCountData
	if err := json.Unmarshal(env.Data, &count); err != nil {
		t.Fatalf("unmarshal user-count: %v", err)
	}
	if count.Count != 1 {
		t.Fatalf("expected count 1, got %d", count.Count)
	}

	send(t, ctx, connB, proto.InboundTypeJoinRoom, proto.JoinRoomData{RoomID: "ABC123"})
	readUntil(t, ctx, connB, proto.EventUserCount)

	send(t, ctx, connA, proto.InboundTypeDrawStart, proto.DrawStartData{
		Stroke: proto.Stroke{Start: proto.Point{X: 1, Y: 2}, Color: "#000", Width: 3},
	})

	env = readUntil(t, ctx, connB, proto.EventRemoteDrawStart)
	var start proto.EventRemoteDrawStartData
	if err := json.Unmarshal(env.Data, &start); err != nil {
		t.Fatalf("unmarshal remote-draw-start: %v", err)
	}
	if start.SocketID == "" || start.Stroke.Color != "#000" || start.Stroke.Start.X != 1 {
		t.Fatalf("unexpected remote-draw-start: %+v", start)
	}
}

func TestWebSocketClearCanvasReachesSender(t *testing.T) {
	ts := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	connA := dialWS(t, ctx, ts.URL)
	connB := dialWS(t, ctx, ts.URL)

	send(t, ctx, connA, proto.InboundTypeJoinRoom, proto.JoinRoomData{RoomID: "ABC123"})
	readUntil(t, ctx, connA, proto.EventUserCount)
	send(t, ctx, connB, proto.InboundTypeJoinRoom, proto.JoinRoomData{RoomID: "ABC123"})
	readUntil(t, ctx, connB, proto.EventUserCount)

	send(t, ctx, connA, proto.InboundTypeClearCanvas, struct{}{})

	readUntil(t, ctx, connB, proto.EventRemoteClearCanvas)
	readUntil(t, ctx, connA, proto.EventRemoteClearCanvas)
}

func TestWebSocketLateJoinerGetsReplay(t *testing.T) {
	ts := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	connA := dialWS(t, ctx, ts.URL)
	send(t, ctx, connA, proto.InboundTypeJoinRoom, proto.JoinRoomData{RoomID: "ABC123"})
	readUntil(t, ctx, connA, proto.EventUserCount)

	send(t, ctx, connA, proto.InboundTypeDrawStart, proto.DrawStartData{
		Stroke: proto.Stroke{Start: proto.Point{X: 0, Y: 0}, Color: "#123", Width: 1},
	})
	send(t, ctx, connA, proto.InboundTypeDrawEnd, struct{}{})

	// Give the fire-and-forget append a moment to land before joining.
	time.Sleep(300 * time.Millisecond)

	connB := dialWS(t, ctx, ts.URL)
	send(t, ctx, connB, proto.InboundTypeJoinRoom, proto.JoinRoomData{RoomID: "ABC123"})

	env := readUntil(t, ctx, connB, proto.EventLoadDrawing)
	var load proto.EventLoadDrawingData
	if err := json.Unmarshal(env.Data, &load); err != nil {
		t.Fatalf("unmarshal load-drawing: %v", err)
	}
	if len(load.DrawingData) != 2 {
		t.Fatalf("expected 2 replayed commands, got %d", len(load.DrawingData))
	}
	if load.DrawingData[0].Type != "stroke-start" || load.DrawingData[0].Stroke == nil {
		t.Fatalf("unexpected first replay command: %+v", load.DrawingData[0])
	}
}

func TestWebSocketRejectsInvalidRoomCode(t *testing.T) {
	ts := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn := dialWS(t, ctx, ts.URL)
	send(t, ctx, conn, proto.InboundTypeJoinRoom, proto.JoinRoomData{RoomID: "x"})

	env := readUntil(t, ctx, conn, "error")
	if env.Error == nil || env.Error.Code != "bad_request" {
		t.Fatalf("expected bad_request error, got %+v", env.Error)
	}
}
