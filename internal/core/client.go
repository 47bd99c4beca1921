package core

// Client is a connected participant as seen by the core layer. The transport
// layer owns the underlying socket; the core only references the channels.
type Client struct {
	ID       string
	Commands chan *Command
	Events   chan *Event

	done chan struct{}
}

// NewClient constructs a client with initialized channels.
func NewClient(id string) *Client {
	return &Client{
		ID:       id,
		Commands: make(chan *Command, 16),
		Events:   make(chan *Event, 16),
		done:     make(chan struct{}),
	}
}

// send delivers an event without blocking. Slow consumers drop events rather
// than stalling the room.
func (c *Client) send(ev *Event) bool {
	select {
	case c.Events <- ev:
		return true
	default:
		return false
	}
}
