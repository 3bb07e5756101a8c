package runner

import (
	"log/slog"
)

// DefaultInputBufferSize is the default number of lines to buffer for input handlers.
const DefaultInputBufferSize = 64

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithInputHandler configures a custom IOHandler.
func WithInputHandler(handler IOHandler) Option {
	return func(r *Runner) {
		r.Handler = handler
	}
}

// WithRenderer configures the content renderer of the default text handler.
func WithRenderer(renderer ContentRenderer) Option {
	return func(r *Runner) {
		r.Renderer = renderer
	}
}

// WithPlayer configures the external video player.
func WithPlayer(p VideoPlayer) Option {
	return func(r *Runner) {
		r.Player = p
	}
}

// WithSignals makes SIGINT and SIGTERM end the loop cleanly.
func WithSignals(enabled bool) Option {
	return func(r *Runner) {
		r.Signals = enabled
	}
}
