package core

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ParvGautam/Whiteboard/internal/store"
)

func mustEvent(t *testing.T, ch <-chan *Event, kind EventKind) *Event {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev == nil {
				continue
			}
			if ev.Kind == kind {
				return ev
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
	t.Fatalf("expected event kind %v not received", kind)
	return nil
}

// mustNoEvent asserts that no event of the given kind shows up within the
// settle window. Other kinds are drained and ignored.
func mustNoEvent(t *testing.T, ch <-chan *Event, kind EventKind) {
	t.Helper()

	deadline := time.Now().Add(300 * time.Millisecond)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev != nil && ev.Kind == kind {
				t.Fatalf("unexpected event kind %v received: %+v", kind, ev)
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
}

// fakeStore is an in-memory store.Store with controllable failures.
type fakeStore struct {
	mu        sync.Mutex
	appended  []store.DrawingCommand
	fetched   []store.DrawingCommand
	appendErr error
	fetchErr  error
}

func (f *fakeStore) AppendCommand(_ context.Context, cmd *store.DrawingCommand) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		return f.appendErr
	}
	cmd.ID = int64(len(f.appended) + 1)
	f.appended = append(f.appended, *cmd)
	return nil
}

func (f *fakeStore) FetchCommands(_ context.Context, roomID string) ([]store.DrawingCommand, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	var out []store.DrawingCommand
	for _, cmd := range f.fetched {
		if cmd.RoomID == roomID {
			out = append(out, cmd)
		}
	}
	return out, nil
}

func (f *fakeStore) CommandCount(_ context.Context, roomID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, cmd := range f.appended {
		if cmd.RoomID == roomID {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) FindOrCreateRoom(_ context.Context, roomID string) (*store.Room, bool, int, error) {
	return &store.Room{ID: roomID}, false, 0, nil
}

func (f *fakeStore) GetRoom(_ context.Context, roomID string) (*store.Room, error) {
	return &store.Room{ID: roomID}, nil
}

func (f *fakeStore) TouchRoom(context.Context, string) error { return nil }

func (f *fakeStore) Stats(context.Context) (*store.Stats, error) { return &store.Stats{}, nil }

func (f *fakeStore) Close() error { return nil }

func (f *fakeStore) appendedCommands() []store.DrawingCommand {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]store.DrawingCommand, len(f.appended))
	copy(out, f.appended)
	return out
}
