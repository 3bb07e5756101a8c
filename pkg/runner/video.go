package runner

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/simplets-git/simplets/internal/logging"
	"github.com/simplets-git/simplets/pkg/console"
	"github.com/simplets-git/simplets/pkg/domain"
)

// VideoControl starts and stops a VideoPlayer as console events ask,
// and reports a natural end of playback back to the console.
type VideoControl struct {
	Player VideoPlayer
	Logger *slog.Logger

	mu  sync.Mutex
	gen int
}

// NewVideoControl wraps p; a nil player makes every call a no-op.
func NewVideoControl(p VideoPlayer, logger *slog.Logger) *VideoControl {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &VideoControl{Player: p, Logger: logger}
}

// Apply reacts to the video events of one console step. A player that
// fails to start is reported to the console, and the resulting events
// are returned for the host to output after the step's own. When
// playback later ends on its own, the console is told and notify
// receives the resulting events from another goroutine.
func (v *VideoControl) Apply(ctx context.Context, c *console.Console, events []domain.Event, notify func([]domain.Event)) ([]domain.Event, error) {
	var (
		more     []domain.Event
		firstErr error
	)
	for _, ev := range events {
		switch ev.Type {
		case domain.EventVideoStop:
			v.Stop()
		case domain.EventVideoStart:
			if err := v.start(ctx, c, ev.Overlay, notify); err != nil {
				more = append(more, c.VideoFailed(err)...)
				if firstErr == nil {
					firstErr = err
				}
			}
		}
	}
	return more, firstErr
}

func (v *VideoControl) start(ctx context.Context, c *console.Console, overlay string, notify func([]domain.Event)) error {
	if v.Player == nil {
		return nil
	}
	done, err := v.Player.Start(ctx, overlay)
	if err != nil {
		return fmt.Errorf("failed to start video: %w", err)
	}

	v.mu.Lock()
	v.gen++
	gen := v.gen
	v.mu.Unlock()

	go func() {
		err := <-done
		v.mu.Lock()
		defer v.mu.Unlock()
		// Stopped or replaced on purpose.
		if gen != v.gen {
			return
		}
		if err != nil {
			v.Logger.Debug("video player exited", "error", err)
		}
		if events := c.VideoEnded(); len(events) > 0 && notify != nil {
			notify(events)
		}
	}()
	return nil
}

// Stop ends playback and forgets any pending end notification.
func (v *VideoControl) Stop() {
	v.mu.Lock()
	v.gen++
	v.mu.Unlock()

	if v.Player == nil {
		return
	}
	if err := v.Player.Stop(); err != nil {
		v.Logger.Debug("video stop failed", "error", err)
	}
}
