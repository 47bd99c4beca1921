package core

import "time"

// Cursor is the last-known pointer position of one participant.
type Cursor struct {
	X, Y     float64
	LastSeen time.Time
}

// Room groups the live session state of one room: the connected participants
// and their cursors. A Room exists only while at least one participant is
// joined; it carries no persistent state.
type Room struct {
	ID      string
	clients map[*Client]struct{}
	cursors map[string]Cursor
}

// NewRoom constructs a room with no participants.
func NewRoom(id string) *Room {
	return &Room{
		ID:      id,
		clients: make(map[*Client]struct{}),
		cursors: make(map[string]Cursor),
	}
}

// AddClient inserts a client into the room. Returns true if newly added.
func (r *Room) AddClient(c *Client) bool {
	if _, exists := r.clients[c]; exists {
		return false
	}
	r.clients[c] = struct{}{}
	return true
}

// RemoveClient deletes a client and its cursor from the room. Returns true
// if removed.
func (r *Room) RemoveClient(c *Client) bool {
	if _, exists := r.clients[c]; !exists {
		return false
	}
	delete(r.clients, c)
	delete(r.cursors, c.ID)
	return true
}

// Count returns the number of participants.
func (r *Room) Count() int {
	return len(r.clients)
}

// Empty returns true if no participants remain.
func (r *Room) Empty() bool {
	return len(r.clients) == 0
}

// Broadcast sends an event to all participants except exclude (pass nil to
// reach the whole room). Delivery is best-effort per connection; a slow
// consumer never blocks the rest of the room.
func (r *Room) Broadcast(ev *Event, exclude *Client) {
	for client := range r.clients {
		if client == exclude {
			continue
		}
		client.send(ev)
	}
}

// Cursors returns a snapshot of the room's live cursor positions.
func (r *Room) Cursors() map[string]Cursor {
	snapshot := make(map[string]Cursor, len(r.cursors))
	for id, cur := range r.cursors {
		snapshot[id] = cur
	}
	return snapshot
}
