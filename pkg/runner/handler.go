package runner

import (
	"context"

	"github.com/simplets-git/simplets/pkg/domain"
)

// IOHandler defines the strategy for interacting with the user.
// This allows switching between Text and JSON modes.
type IOHandler interface {
	// Output presents the events produced by one console step.
	Output(ctx context.Context, events []domain.Event) error

	// Input reads the next line from the user.
	Input(ctx context.Context) (string, error)

	// SystemOutput presents a meta-message to the user (e.g. rejected input).
	// This is distinct from transcript content.
	SystemOutput(ctx context.Context, msg string) error
}

// Prompter is implemented by handlers that show a prompt before reading.
type Prompter interface {
	SetPrompt(prompt string)
}

// VideoPlayer runs the background video outside of the terminal.
type VideoPlayer interface {
	// Start launches playback. The returned channel yields once when
	// playback ends, with nil on a natural end.
	Start(ctx context.Context, overlay string) (<-chan error, error)

	// Stop ends playback if any.
	Stop() error
}

// ContentRenderer transforms Markdown content before it is written.
// This allows for ANSI rendering without coupling the core package.
type ContentRenderer func(string) (string, error)
