package core

import "time"

// Registry maps room IDs to live session state. It is a plain in-process
// component with no locking of its own: all mutation must happen on the hub
// run loop (single writer), which is what linearizes join/leave/cursor
// updates. Tests may instantiate isolated registries directly.
type Registry struct {
	rooms  map[string]*Room
	byConn map[*Client]string
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		rooms:  make(map[string]*Room),
		byConn: make(map[*Client]string),
	}
}

// JoinResult reports the outcome of Join.
type JoinResult struct {
	Room    string
	Count   int
	Rejoin  bool // the client was already a member of this room
	// Set when the client was a member of a different room and was removed
	// from it first. PrevCount is that room's count after the removal.
	PrevRoom  string
	PrevCount int
}

// Join adds the client to the given room, creating it on first join. Joining
// the current room again is idempotent. A client belongs to at most one room:
// joining a new room first applies leave semantics to the old one.
func (r *Registry) Join(c *Client, roomID string) JoinResult {
	res := JoinResult{Room: roomID}

	if current, ok := r.byConn[c]; ok {
		if current == roomID {
			res.Rejoin = true
			res.Count = r.rooms[roomID].Count()
			return res
		}
		if prev, count, left := r.Leave(c); left {
			res.PrevRoom = prev
			res.PrevCount = count
		}
	}

	room, ok := r.rooms[roomID]
	if !ok {
		room = NewRoom(roomID)
		r.rooms[roomID] = room
	}
	room.AddClient(c)
	r.byConn[c] = roomID
	res.Count = room.Count()
	return res
}

// Leave removes the client from its current room, destroying the room when
// the last participant leaves. Returns false if the client was not in any
// room.
func (r *Registry) Leave(c *Client) (roomID string, count int, ok bool) {
	roomID, ok = r.byConn[c]
	if !ok {
		return "", 0, false
	}
	delete(r.byConn, c)

	room := r.rooms[roomID]
	room.RemoveClient(c)
	count = room.Count()
	if room.Empty() {
		delete(r.rooms, roomID)
	}
	return roomID, count, true
}

// RoomOf returns the room the client is currently a member of.
func (r *Registry) RoomOf(c *Client) (string, bool) {
	roomID, ok := r.byConn[c]
	return roomID, ok
}

// Room returns the live session state for a room ID.
func (r *Registry) Room(roomID string) (*Room, bool) {
	room, ok := r.rooms[roomID]
	return room, ok
}

// Count returns the participant count of a room, zero when absent.
func (r *Registry) Count(roomID string) int {
	if room, ok := r.rooms[roomID]; ok {
		return room.Count()
	}
	return 0
}

// Len returns the number of active rooms.
func (r *Registry) Len() int {
	return len(r.rooms)
}

// RecordCursor overwrites the client's last-known cursor position. Cursor
// reports from a room the client is not currently a member of are dropped
// silently; they arise naturally from event reordering during reconnect.
func (r *Registry) RecordCursor(c *Client, roomID string, x, y float64, now time.Time) bool {
	current, ok := r.byConn[c]
	if !ok || current != roomID {
		return false
	}
	room := r.rooms[roomID]
	room.cursors[c.ID] = Cursor{X: x, Y: y, LastSeen: now}
	return true
}

// PruneStaleCursors removes cursor entries not refreshed within window.
// Called periodically from the hub's sweep ticker, not per event. Returns
// the number of entries removed.
func (r *Registry) PruneStaleCursors(now time.Time, window time.Duration) int {
	pruned := 0
	for _, room := range r.rooms {
		for id, cur := range room.cursors {
			if now.Sub(cur.LastSeen) > window {
				delete(room.cursors, id)
				pruned++
			}
		}
	}
	return pruned
}
