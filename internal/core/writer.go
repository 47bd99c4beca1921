package core

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/ParvGautam/Whiteboard/internal/store"
)

type appendJob struct {
	origin *Client
	cmd    *store.DrawingCommand
}

// logWriter drains append jobs on a single goroutine so that appends to the
// same room's log land in arrival order, while the hub loop never waits on
// the store.
type logWriter struct {
	store   store.Store
	log     zerolog.Logger
	jobs    chan appendJob
	timeout time.Duration
}

func newLogWriter(st store.Store, logger zerolog.Logger) *logWriter {
	return &logWriter{
		store:   st,
		log:     logger,
		jobs:    make(chan appendJob, 256),
		timeout: 5 * time.Second,
	}
}

// enqueue hands a command to the writer without blocking. When the queue is
// saturated the entry is dropped: the broadcast has already happened, so the
// failure is logged and surfaced to the originator only.
func (w *logWriter) enqueue(job appendJob) bool {
	select {
	case w.jobs <- job:
		return true
	default:
		w.log.Warn().Str("room", job.cmd.RoomID).Str("type", string(job.cmd.Type)).Msg("append queue full, command dropped")
		w.notifyFailure(job.origin)
		return false
	}
}

func (w *logWriter) run(ctx context.Context) {
	for {
		select {
		case job := <-w.jobs:
			w.append(job)
		case <-ctx.Done():
			return
		}
	}
}

func (w *logWriter) append(job appendJob) {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	if err := w.store.AppendCommand(ctx, job.cmd); err != nil {
		w.log.Error().Err(err).Str("room", job.cmd.RoomID).Str("type", string(job.cmd.Type)).Msg("append drawing command")
		w.notifyFailure(job.origin)
	}
}

func (w *logWriter) notifyFailure(origin *Client) {
	if origin == nil {
		return
	}
	origin.send(&Event{Kind: EventError, Error: coreError(ErrCodePersistFailed, "failed to save drawing command")})
}
