package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/simplets-git/simplets/internal/logging"
	"github.com/simplets-git/simplets/pkg/console"
	"github.com/simplets-git/simplets/pkg/domain"
)

// MenuPrompt is shown instead of the user prompt while a menu is open.
const MenuPrompt = "#"

// Runner handles the line loop of the console using the provided IO.
// It uses an IOHandler strategy to abstract the interaction mode (Text vs JSON).
type Runner struct {
	// Handler is the strategy for IO. If nil, a TextHandler on Input/Output is used.
	Handler IOHandler

	// Player runs the background video. If nil, video is state only.
	Player VideoPlayer

	// Logger is used for internal debug logging.
	// If nil, a no-op logger is used.
	Logger *slog.Logger

	// Renderer is given to the default TextHandler.
	Renderer ContentRenderer

	// Signals makes SIGINT and SIGTERM end the loop cleanly.
	Signals bool

	Input  io.Reader
	Output io.Writer

	video *VideoControl
	last  *domain.State
}

// NewRunner creates a Runner with default Stdin/Stdout.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		Input:  os.Stdin,
		Output: os.Stdout,
		Logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the loop until the console exits, the input ends or ctx is
// cancelled. A booting console is started first.
func (r *Runner) Run(ctx context.Context, c *console.Console) error {
	handler := r.resolveHandler()
	if r.Logger == nil {
		r.Logger = logging.NewNop()
	}
	r.video = NewVideoControl(r.Player, r.Logger)

	var signals *SignalManager
	if r.Signals {
		signals = NewSignalManager(ctx)
		defer signals.Stop()
		ctx = signals.Context()
	}
	defer r.video.Stop()

	if c.Mode() == domain.ModeBooting {
		if err := r.publish(ctx, c, handler, c.Start()); err != nil {
			return fmt.Errorf("output error: %w", err)
		}
	}
	r.last = c.State()

	for !c.Exited() {
		r.setPrompt(handler, c)

		line, err := handler.Input(ctx)
		if err != nil {
			switch {
			case errors.Is(err, ErrInputTooLarge), errors.Is(err, ErrInvalidUTF8):
				if err := handler.SystemOutput(ctx, c.Translate("inputRejected")+err.Error()); err != nil {
					return fmt.Errorf("output error: %w", err)
				}
				continue
			case errors.Is(err, io.EOF), ctx.Err() != nil:
				r.Logger.Debug("input closed", "reason", err)
				return nil
			}
			if signals != nil {
				signals.CheckRace()
				if ctx.Err() != nil {
					return nil
				}
			}
			return fmt.Errorf("input error: %w", err)
		}

		events, err := r.step(ctx, c, line)
		if err != nil {
			if err := handler.SystemOutput(ctx, err.Error()); err != nil {
				return fmt.Errorf("output error: %w", err)
			}
			continue
		}
		if err := r.publish(ctx, c, handler, events); err != nil {
			return fmt.Errorf("output error: %w", err)
		}
		r.trackState(c)
	}
	return nil
}

// trackState logs the settings a step changed.
func (r *Runner) trackState(c *console.Console) {
	now := c.State()
	if diff := domain.Diff(r.last, now); diff != nil && r.last != nil {
		r.Logger.Debug("state changed", "diff", diff)
	}
	r.last = now
}

// resolveHandler ensures a valid IOHandler is set.
func (r *Runner) resolveHandler() IOHandler {
	if r.Handler != nil {
		return r.Handler
	}
	r.Handler = NewTextHandler(r.Input, r.Output, WithTextHandlerRenderer(r.Renderer))
	return r.Handler
}

func (r *Runner) setPrompt(h IOHandler, c *console.Console) {
	p, ok := h.(Prompter)
	if !ok {
		return
	}
	if c.Mode() == domain.ModeMenu {
		p.SetPrompt(MenuPrompt)
		return
	}
	p.SetPrompt(c.State().Prompt())
}

func (r *Runner) step(ctx context.Context, c *console.Console, line string) ([]domain.Event, error) {
	if c.Mode() != domain.ModeMenu {
		return c.Submit(ctx, line)
	}

	choice := strings.TrimSpace(line)
	if choice == "" || strings.EqualFold(choice, "q") {
		return c.CancelMenu()
	}
	if n, err := strconv.Atoi(choice); err == nil {
		return c.SelectMenu(ctx, n-1)
	}
	if m := c.Menu(); m != nil {
		for i, item := range m.Request.Items {
			if strings.EqualFold(item.Label, choice) {
				return c.SelectMenu(ctx, i)
			}
		}
	}
	return nil, fmt.Errorf("no menu item %q", choice)
}

// publish starts or stops the player as the events ask, then outputs them
// along with any failure the player reported.
func (r *Runner) publish(ctx context.Context, c *console.Console, h IOHandler, events []domain.Event) error {
	notify := func(more []domain.Event) {
		_ = h.Output(ctx, more)
	}
	more, err := r.video.Apply(ctx, c, events, notify)
	if err != nil {
		r.Logger.Error("video player failed", "error", err)
	}
	return h.Output(ctx, append(events, more...))
}
