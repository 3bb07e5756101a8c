package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/simplets-git/simplets/internal/logging"
	"github.com/simplets-git/simplets/pkg/boot"
	"github.com/simplets-git/simplets/pkg/console"
	"github.com/simplets-git/simplets/pkg/domain"
	"github.com/simplets-git/simplets/pkg/runner"
	"github.com/simplets-git/simplets/pkg/wave"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	// resizePoll is how often the size is checked when the bands are off.
	resizePoll = 250 * time.Millisecond
)

// WaveOptions configure the side bands.
type WaveOptions struct {
	Enabled           bool
	Interval          time.Duration
	ChangeProbability float64
	BlankProbability  float64
	Rand              *rand.Rand
}

// App is the full-screen terminal: alt screen, raw keys and a redraw on
// every change.
type App struct {
	console  *console.Console
	out      *termenv.Output
	w        io.Writer
	keys     KeyReader
	size     func() (int, int, error)
	boot     *boot.Sequence
	player   runner.VideoPlayer
	logger   *slog.Logger
	waves    WaveOptions
	markdown MarkdownFunc
	screen   *Screen

	left, right *wave.Panel
	width       int
	height      int
}

// AppOption configures an App.
type AppOption func(*App)

// WithOutput sets the terminal writer (default os.Stdout).
func WithOutput(w io.Writer, opts ...termenv.OutputOption) AppOption {
	return func(a *App) {
		a.w = w
		a.out = termenv.NewOutput(w, opts...)
	}
}

// WithKeys sets the key source instead of opening the terminal.
func WithKeys(k KeyReader) AppOption {
	return func(a *App) {
		a.keys = k
	}
}

// WithSize replaces terminal size detection.
func WithSize(fn func() (int, int, error)) AppOption {
	return func(a *App) {
		a.size = fn
	}
}

// WithBoot plays seq before the console starts.
func WithBoot(seq *boot.Sequence) AppOption {
	return func(a *App) {
		a.boot = seq
	}
}

// WithVideoPlayer sets the background video player.
func WithVideoPlayer(p runner.VideoPlayer) AppOption {
	return func(a *App) {
		a.player = p
	}
}

// WithAppLogger sets the logger. It must not write to the screen.
func WithAppLogger(logger *slog.Logger) AppOption {
	return func(a *App) {
		a.logger = logger
	}
}

// WithWaves enables the animated side bands.
func WithWaves(w WaveOptions) AppOption {
	return func(a *App) {
		a.waves = w
	}
}

// WithMarkdown sets how response text is rendered.
func WithMarkdown(fn MarkdownFunc) AppOption {
	return func(a *App) {
		a.markdown = fn
	}
}

// NewApp creates the full-screen UI for c.
func NewApp(c *console.Console, opts ...AppOption) *App {
	a := &App{
		console: c,
		w:       os.Stdout,
		out:     termenv.NewOutput(os.Stdout),
		size:    stdoutSize,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.markdown == nil {
		a.markdown = NewThemedRenderer().Render
	}
	a.screen = NewScreen(a.out, a.markdown)
	return a
}

func stdoutSize() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// Run draws until the console exits, the keys end or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a.keys == nil {
		ks, err := OpenKeys()
		if err != nil {
			return fmt.Errorf("failed to open keyboard: %w", err)
		}
		a.keys = ks
	}
	defer a.keys.Close()

	a.out.AltScreen()
	a.out.HideCursor()
	defer func() {
		a.out.ShowCursor()
		a.out.ExitAltScreen()
	}()

	a.measure()

	if a.boot != nil && a.console.Mode() == domain.ModeBooting {
		quit, err := a.runBoot(ctx)
		if err != nil || quit {
			return err
		}
	}
	if a.console.Mode() == domain.ModeBooting {
		a.console.Start()
	}
	return a.loop(ctx)
}

// bootReporter forwards steps to the draw loop.
type bootReporter struct {
	steps chan boot.Step
}

func (r *bootReporter) Start(int) {}

func (r *bootReporter) Step(_ int, step boot.Step) {
	select {
	case r.steps <- step:
	default:
	}
}

func (r *bootReporter) Finish() {}

// runBoot plays the loading screen. It reports true when Ctrl+C ended it.
func (a *App) runBoot(ctx context.Context) (bool, error) {
	rep := &bootReporter{steps: make(chan boot.Step, 16)}
	done := make(chan error, 1)
	go func() {
		done <- a.boot.Run(ctx, rep)
	}()

	frame := BootFrame{Theme: a.console.State().Theme}
	draw := func() {
		frame.Width, frame.Height = a.width, a.height
		frame.Theme = a.console.State().Theme
		a.flush(a.screen.ComposeBoot(frame))
	}
	draw()

	keys := a.keys.Keys()
	for {
		select {
		case err := <-done:
			if err != nil && ctx.Err() != nil {
				return true, nil
			}
			return false, err
		case step := <-rep.steps:
			frame.Apply(step)
			draw()
		case kp, ok := <-keys:
			if !ok {
				keys = nil
			}
			if !ok || kp.Err != nil {
				a.boot.Skip()
				continue
			}
			if kp.Key.Type == domain.KeyCtrlC {
				a.boot.Skip()
				<-done
				return true, nil
			}
			a.boot.Skip()
		}
	}
}

func (a *App) loop(ctx context.Context) error {
	video := runner.NewVideoControl(a.player, a.logger)
	defer video.Stop()

	ended := make(chan struct{}, 1)
	notify := func([]domain.Event) {
		select {
		case ended <- struct{}{}:
		default:
		}
	}

	interval := resizePoll
	if a.waves.Enabled && a.waves.Interval > 0 {
		interval = a.waves.Interval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	keys := a.keys.Keys()
	a.draw()
	for !a.console.Exited() {
		select {
		case <-ctx.Done():
			return nil
		case <-ended:
			a.draw()
		case <-ticker.C:
			a.measure()
			if a.left != nil {
				a.left.Tick()
				a.right.Tick()
			}
			a.draw()
		case kp, ok := <-keys:
			if !ok {
				return nil
			}
			if kp.Err != nil {
				return fmt.Errorf("keyboard error: %w", kp.Err)
			}
			events, err := a.console.HandleKey(ctx, kp.Key)
			if err != nil {
				a.logger.Debug("key rejected", "error", err)
			}
			if _, err := video.Apply(ctx, a.console, events, notify); err != nil {
				a.logger.Error("video player failed", "error", err)
			}
			a.draw()
		}
	}
	return nil
}

// measure reads the terminal size and fits the bands to it.
func (a *App) measure() {
	w, h, err := a.size()
	if err != nil || w <= 0 || h <= 0 {
		w, h = defaultWidth, defaultHeight
	}
	a.width, a.height = w, h

	if !a.waves.Enabled {
		return
	}
	rows := BodyHeight(h)
	if a.left == nil {
		opts := []wave.Option{wave.WithProbabilities(a.waves.ChangeProbability, a.waves.BlankProbability)}
		if a.waves.Rand != nil {
			opts = append(opts, wave.WithRand(a.waves.Rand))
		}
		a.left = wave.New(wave.Left, rows, opts...)
		a.right = wave.New(wave.Right, rows, opts...)
		return
	}
	if a.left.Rows() != rows {
		a.left.Resize(rows)
		a.right.Resize(rows)
	}
}

// Frame snapshots the console for drawing.
func (a *App) Frame() Frame {
	state := a.console.State()
	return Frame{
		Width:      a.width,
		Height:     a.height,
		Theme:      state.Theme,
		Lines:      a.console.Transcript(),
		Cursor:     a.console.Cursor(),
		Menu:       a.console.Menu(),
		Video:      state.Video,
		VideoLabel: a.console.Translate("videoPlaying"),
		Left:       a.left,
		Right:      a.right,
	}
}

func (a *App) draw() {
	a.flush(a.screen.Compose(a.Frame()))
}

// flush repaints every row from the top left corner in one write.
func (a *App) flush(rows []string) {
	var b strings.Builder
	b.WriteString(termenv.CSI + fmt.Sprintf(termenv.CursorPositionSeq, 1, 1))
	for i, row := range rows {
		b.WriteString(row)
		b.WriteString(termenv.CSI + termenv.EraseLineRightSeq)
		if i < len(rows)-1 {
			b.WriteString("\r\n")
		}
	}
	if _, err := io.WriteString(a.w, b.String()); err != nil {
		a.logger.Debug("draw failed", "error", err)
	}
}
