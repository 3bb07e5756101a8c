// Package process plays the background video through an external player
// process, since a terminal cannot draw video in-line.
package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"time"
)

// EnvOverlay carries the overlay text to the player process.
// Passing it through the environment keeps user text out of the argument list.
const EnvOverlay = "SIMPLETS_VIDEO_OVERLAY"

// ErrStopped is reported on the done channel when Stop ended playback.
var ErrStopped = errors.New("video stopped")

// Player launches "<command> <args...> <path>" for each video.
// Without a command it only keeps time, ending after the configured duration.
type Player struct {
	command  string
	args     []string
	path     string
	duration time.Duration
	baseDir  string

	mu     sync.Mutex
	cancel context.CancelFunc
}

// PlayerOption configures the player.
type PlayerOption func(*Player)

// WithCommand sets the player executable and its leading arguments.
func WithCommand(command string, args ...string) PlayerOption {
	return func(p *Player) {
		p.command = command
		p.args = args
	}
}

// WithVideoPath sets the file handed to the player as last argument.
func WithVideoPath(path string) PlayerOption {
	return func(p *Player) {
		p.path = path
	}
}

// WithDuration ends playback after d. Zero plays until the process exits or Stop.
func WithDuration(d time.Duration) PlayerOption {
	return func(p *Player) {
		p.duration = d
	}
}

// WithBaseDir sets the working directory of the player process.
func WithBaseDir(dir string) PlayerOption {
	return func(p *Player) {
		p.baseDir = dir
	}
}

// NewPlayer creates a player.
func NewPlayer(opts ...PlayerOption) *Player {
	p := &Player{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start begins playback, stopping any previous one. The channel receives
// nil on a natural end, ErrStopped after Stop, or the process failure.
func (p *Player) Start(ctx context.Context, overlay string) (<-chan error, error) {
	p.Stop()

	pctx, cancel := context.WithCancel(ctx)
	if p.duration > 0 {
		pctx, cancel = withTimeout(pctx, cancel, p.duration)
	}
	done := make(chan error, 1)

	if p.command == "" {
		p.setCancel(cancel)
		go func() {
			<-pctx.Done()
			done <- endReason(pctx)
		}()
		return done, nil
	}

	args := append([]string{}, p.args...)
	if p.path != "" {
		args = append(args, p.path)
	}
	cmd := exec.CommandContext(pctx, p.command, args...)
	cmd.Dir = p.baseDir
	cmd.Env = append(cmd.Environ(), EnvOverlay+"="+overlay)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to start %s: %w", p.command, err)
	}
	p.setCancel(cancel)

	go func() {
		err := cmd.Wait()
		switch {
		case pctx.Err() != nil:
			done <- endReason(pctx)
		case err != nil:
			done <- fmt.Errorf("player failed: %v. Stderr: %s", err, strings.TrimSpace(stderr.String()))
		default:
			done <- nil
		}
		cancel()
	}()
	return done, nil
}

// Stop ends the current playback, if any.
func (p *Player) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	return nil
}

func (p *Player) setCancel(cancel context.CancelFunc) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cancel = cancel
}

func withTimeout(ctx context.Context, parent context.CancelFunc, d time.Duration) (context.Context, context.CancelFunc) {
	tctx, tcancel := context.WithTimeout(ctx, d)
	return tctx, func() {
		tcancel()
		parent()
	}
}

// endReason maps a finished playback context to the done value:
// a reached duration is a natural end.
func endReason(ctx context.Context) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return nil
	}
	return ErrStopped
}
