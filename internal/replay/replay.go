// Package replay reconstructs canvas state by interpreting a room's drawing
// log as a deterministic program. Applying the same log to a blank surface
// any number of times yields the same result, which is what makes the
// load-drawing handshake safe across reconnects.
package replay

import "github.com/ParvGautam/Whiteboard/internal/store"

// Path is one rendered stroke: the opening point followed by every point
// that extended it.
type Path struct {
	Color  string        `json:"color"`
	Width  float64       `json:"width"`
	Points []store.Point `json:"points"`
}

// Surface is the visual state produced by a command log.
type Surface struct {
	paths []Path
}

// NewSurface returns a blank surface.
func NewSurface() *Surface {
	return &Surface{}
}

// Apply interprets commands in order: stroke-start opens a new path,
// stroke-move extends the last opened path until the next stroke-start or
// clear, clear resets the surface to blank. stroke-end is only a marker and
// changes nothing: in a shared room two drawers interleave their commands in
// one log, so one drawer's end must not cut off the other's moves. A
// stroke-move before any stroke-start (or right after clear) has no path to
// extend and is skipped.
func (s *Surface) Apply(commands []store.DrawingCommand) {
	for _, cmd := range commands {
		switch cmd.Type {
		case store.CommandStrokeStart:
			if cmd.Stroke == nil {
				continue
			}
			s.paths = append(s.paths, Path{
				Color:  cmd.Stroke.Color,
				Width:  cmd.Stroke.Width,
				Points: []store.Point{cmd.Stroke.Start},
			})
		case store.CommandStrokeMove:
			if len(s.paths) == 0 || cmd.Point == nil {
				continue
			}
			last := len(s.paths) - 1
			s.paths[last].Points = append(s.paths[last].Points, *cmd.Point)
		case store.CommandClear:
			s.paths = nil
		}
	}
}

// Paths returns the rendered paths in draw order.
func (s *Surface) Paths() []Path {
	return s.paths
}

// Render is a convenience that applies a log to a fresh surface.
func Render(commands []store.DrawingCommand) *Surface {
	s := NewSurface()
	s.Apply(commands)
	return s
}
