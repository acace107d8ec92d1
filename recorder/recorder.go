// Package recorder runs the capture loop of the winhook recorder: it
// acquires the low-level hooks through the winhook facade, polls them
// for events, and fans the events out to sqlite storage and the live
// dashboard feed.
package recorder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/myood/winhook"
	"github.com/myood/winhook/config"
	"github.com/myood/winhook/event"
	"github.com/myood/winhook/hook"
	"github.com/myood/winhook/storage"
	"github.com/myood/winhook/web"
)

const pruneInterval = time.Hour

// Recorder coordinates hook polling, persistence, and the live feed
type Recorder struct {
	cfg *config.Config
	db  *storage.DB
	web *web.Server
}

// New creates a recorder. web may be nil when the dashboard is disabled.
func New(cfg *config.Config, db *storage.DB, webServer *web.Server) *Recorder {
	return &Recorder{cfg: cfg, db: db, web: webServer}
}

// Run acquires the configured hooks and records events until the
// context is cancelled. The hooks are released on return.
func (r *Recorder) Run(ctx context.Context) error {
	builder := winhook.NewBuilder()
	if r.cfg.Capture.Keyboard {
		builder.WithKeyboard()
	}
	if r.cfg.Capture.Mouse {
		builder.WithMouse()
	}

	h, err := builder.Build()
	if err != nil {
		return fmt.Errorf("failed to acquire input hooks: %w", err)
	}
	defer h.Close()

	slog.Info("Recording started",
		"keyboard", r.cfg.Capture.Keyboard,
		"mouse", r.cfg.Capture.Mouse,
		"mouse_moves", r.cfg.Capture.MouseMoves,
		"poll_interval", r.cfg.PollInterval())
	if r.web != nil {
		r.web.BroadcastStatus("recording")
	}

	poll := time.NewTicker(r.cfg.PollInterval())
	defer poll.Stop()
	prune := time.NewTicker(pruneInterval)
	defer prune.Stop()

	batchSize := r.cfg.Storage.BatchSize
	if batchSize <= 0 {
		batchSize = 64
	}
	batch := make([]storage.InputRecord, 0, batchSize)

	r.pruneOld()

	for {
		select {
		case <-ctx.Done():
			r.flush(batch)
			if r.web != nil {
				r.web.BroadcastStatus("stopped")
			}
			slog.Info("Recording stopped")
			return nil

		case <-prune.C:
			r.pruneOld()

		case <-poll.C:
			disconnected := false
			for {
				ev, err := h.TryRecv()
				if err != nil {
					if errors.Is(err, hook.ErrDisconnected) {
						disconnected = true
					}
					break
				}
				if r.skip(ev) {
					continue
				}
				batch = append(batch, storage.RecordFromEvent(ev, time.Now().UTC()))
				if len(batch) >= batchSize {
					r.flush(batch)
					batch = batch[:0]
				}
			}
			if len(batch) > 0 {
				r.flush(batch)
				batch = batch[:0]
			}
			if disconnected {
				return errors.New("hook event channel disconnected")
			}
		}
	}
}

// skip filters events excluded by configuration.
func (r *Recorder) skip(ev event.InputEvent) bool {
	return !r.cfg.Capture.MouseMoves &&
		ev.Mouse != nil && ev.Mouse.Action == event.MouseMove
}

func (r *Recorder) flush(batch []storage.InputRecord) {
	if len(batch) == 0 {
		return
	}
	if err := r.db.SaveBatch(batch); err != nil {
		slog.Error("Failed to save event batch", "error", err, "count", len(batch))
		return
	}
	if r.web != nil {
		for _, rec := range batch {
			r.web.BroadcastEvent(rec)
		}
	}
}

func (r *Recorder) pruneOld() {
	removed, err := r.db.Prune(r.cfg.Storage.RetentionDays)
	if err != nil {
		slog.Error("Failed to prune old events", "error", err)
		return
	}
	if removed > 0 {
		slog.Info("Pruned old events", "removed", removed, "retention_days", r.cfg.Storage.RetentionDays)
	}
}
