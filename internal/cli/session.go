package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/simplets-git/simplets/internal/config"
	"github.com/simplets-git/simplets/internal/presentation/tui"
	"github.com/simplets-git/simplets/pkg/boot"
	"github.com/simplets-git/simplets/pkg/console"
	"github.com/simplets-git/simplets/pkg/domain"
	"github.com/simplets-git/simplets/pkg/observability"
	"github.com/simplets-git/simplets/pkg/runner"
)

// lineWidth is the wrap width of line mode when stdout is not a terminal.
const lineWidth = 80

// Execute runs an interactive session: the full-screen terminal when
// attached to a TTY, line mode otherwise.
func Execute(ctx context.Context, opts RunOptions) error {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return err
	}

	logger, closer, err := createLogger(opts.Debug, opts.LogFile)
	if err != nil {
		return err
	}
	defer closer.Close()

	metrics := observability.NewMetrics()
	c, err := createConsole(cfg, logger, metrics)
	if err != nil {
		return err
	}

	sigCtx := NewSignalContext(ctx)
	defer sigCtx.Cancel()

	fullScreen := !opts.Plain && !opts.JSON && isTerminal()
	logger.Info("Session Started", "full_screen", fullScreen, "language", cfg.Language, "theme", cfg.Theme)

	var runErr error
	if fullScreen {
		runErr = runFullScreen(sigCtx, cfg, c, logger)
	} else {
		runErr = runLines(sigCtx, cfg, opts, c, logger)
	}
	if sigCtx.Err() != nil && runErr == nil {
		runErr = sigCtx.Err()
	}

	if cfg.MetricsFile != "" {
		if err := metrics.WriteFile(cfg.MetricsFile); err != nil {
			logger.Error("Metrics Not Written", "path", cfg.MetricsFile, "error", err)
		}
	}

	logCompletion(os.Stdout, runErr, opts.JSON, sigCtx.Signal())
	return handleExecutionError(runErr)
}

func runFullScreen(ctx context.Context, cfg config.Config, c *console.Console, logger *slog.Logger) error {
	app := tui.NewApp(c,
		tui.WithBoot(createBoot(cfg)),
		tui.WithVideoPlayer(createPlayer(cfg)),
		tui.WithAppLogger(logger),
		tui.WithWaves(tui.WaveOptions{
			Enabled:           cfg.Wave.Enabled,
			Interval:          cfg.Wave.Interval,
			ChangeProbability: cfg.Wave.ChangeProbability,
			BlankProbability:  cfg.Wave.BlankProbability,
		}),
	)
	return app.Run(ctx)
}

func runLines(ctx context.Context, cfg config.Config, opts RunOptions, c *console.Console, logger *slog.Logger) error {
	return runLinesWith(ctx, cfg, opts, c, logger, os.Stdin, os.Stdout, os.Stderr, isTerminal())
}

// runLinesWith plays the boot sequence and runs the line loop on the given streams.
func runLinesWith(ctx context.Context, cfg config.Config, opts RunOptions, c *console.Console, logger *slog.Logger, in io.Reader, out, errOut io.Writer, interactive bool) error {
	runnerOpts := []runner.Option{
		runner.WithLogger(logger),
		runner.WithPlayer(createPlayer(cfg)),
		runner.WithSignals(true),
	}

	if opts.JSON {
		runnerOpts = append(runnerOpts, runner.WithInputHandler(runner.NewJSONHandler(in, out)))
	} else {
		width := lineWidth
		if interactive {
			width = terminalWidth(lineWidth)
		}
		renderer := tui.NewThemedRenderer()
		render := func(markdown string) (string, error) {
			return renderer.Render(c.State().Theme, width, markdown)
		}
		runnerOpts = append(runnerOpts, runner.WithInputHandler(runner.NewTextHandler(in, out,
			runner.WithTextHandlerRenderer(render),
			runner.WithTextHandlerStyled(interactive),
		)))

		tui.PrintBanner(out, c.State().Theme)
		if seq := createBoot(cfg); seq != nil {
			var rep boot.Reporter = &boot.LogReporter{Logger: logger}
			if interactive {
				rep = boot.NewSpinnerReporter(errOut)
			}
			if err := seq.Run(ctx, rep); err != nil {
				return err
			}
		}
	}

	r := runner.NewRunner(runnerOpts...)
	if err := r.Run(ctx, c); err != nil {
		return fmt.Errorf("session failed: %w", err)
	}
	return nil
}

// RunExec dispatches a single command and prints its output.
func RunExec(ctx context.Context, opts RunOptions, args []string, out io.Writer) error {
	opts.NoBoot = true
	cfg, err := LoadConfig(opts)
	if err != nil {
		return err
	}
	logger, closer, err := createLogger(opts.Debug, opts.LogFile)
	if err != nil {
		return err
	}
	defer closer.Close()

	c, err := createConsole(cfg, logger, nil)
	if err != nil {
		return err
	}
	c.Start()

	events, err := c.Submit(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}

	var handler runner.IOHandler
	if opts.JSON {
		handler = runner.NewJSONHandler(nil, out)
	} else {
		renderer := tui.NewThemedRenderer()
		handler = runner.NewTextHandler(nil, out, runner.WithTextHandlerRenderer(func(markdown string) (string, error) {
			return renderer.Render(c.State().Theme, lineWidth, markdown)
		}))
	}
	return handler.Output(ctx, outputOnly(events))
}

// outputOnly drops events that only make sense in a running session.
func outputOnly(events []domain.Event) []domain.Event {
	out := make([]domain.Event, 0, len(events))
	for _, ev := range events {
		switch ev.Type {
		case domain.EventOutput, domain.EventMenuOpen:
			out = append(out, ev)
		}
	}
	return out
}
