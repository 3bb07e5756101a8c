// Package console implements the input state machine of the terminal:
// a booting phase that ignores keys, line editing with history, and
// modal menu navigation. It owns the transcript and keeps the single
// editable prompt as its last line.
package console

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/simplets-git/simplets/internal/logging"
	"github.com/simplets-git/simplets/pkg/commands"
	"github.com/simplets-git/simplets/pkg/domain"
	"github.com/simplets-git/simplets/pkg/i18n"
)

// Console is safe for concurrent use: the key loop and the video
// watcher may both feed it.
type Console struct {
	mu sync.Mutex

	registry *commands.Registry
	env      *commands.Env
	logger   *slog.Logger

	mode       domain.Mode
	transcript []domain.Line
	editor     Editor
	history    *History
	menu       *Menu
	exited     bool
	hooks      domain.LifecycleHooks
}

// Option configures the Console.
type Option func(*config)

type config struct {
	registry    *commands.Registry
	catalog     *i18n.Catalog
	state       *domain.State
	random      io.Reader
	historySize int
	logger      *slog.Logger
	hooks       domain.LifecycleHooks
}

// WithRegistry replaces the built-in command table.
func WithRegistry(r *commands.Registry) Option {
	return func(c *config) { c.registry = r }
}

// WithCatalog sets the string tables.
func WithCatalog(cat *i18n.Catalog) Option {
	return func(c *config) { c.catalog = cat }
}

// WithState sets the initial session state.
func WithState(s *domain.State) Option {
	return func(c *config) { c.state = s }
}

// WithRandom sets the randomness source of the pair artwork.
func WithRandom(r io.Reader) Option {
	return func(c *config) { c.random = r }
}

// WithHistorySize bounds the command history.
func WithHistorySize(n int) Option {
	return func(c *config) { c.historySize = n }
}

// WithHooks registers callbacks for state changes.
func WithHooks(h domain.LifecycleHooks) Option {
	return func(c *config) { c.hooks = h }
}

// WithLogger configures debug logging.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// New creates a console in booting mode.
func New(opts ...Option) *Console {
	cfg := &config{historySize: DefaultHistorySize}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = logging.NewNop()
	}
	if cfg.registry == nil {
		cfg.registry = commands.Default(commands.WithLogger(cfg.logger))
	}
	if cfg.catalog == nil {
		cfg.catalog = i18n.MustLoad()
	}
	if cfg.state == nil {
		cfg.state = domain.NewState()
	}

	return &Console{
		registry: cfg.registry,
		env: &commands.Env{
			State:   cfg.state,
			Catalog: cfg.catalog,
			Random:  cfg.random,
		},
		logger:  cfg.logger,
		hooks:   cfg.hooks,
		mode:    domain.ModeBooting,
		history: NewHistory(cfg.historySize),
	}
}

// Start leaves booting mode, prints the welcome line and the first prompt.
// Calling it again is a no-op.
func (c *Console) Start() []domain.Event {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode != domain.ModeBooting {
		return nil
	}
	c.mode = domain.ModeLineEditing
	welcome := c.welcome()
	c.transcript = append(c.transcript, welcome)
	c.newPrompt()
	c.logger.Debug("console started", "language", c.env.State.Language, "theme", c.env.State.Theme)
	return []domain.Event{domain.OutputEvent(welcome)}
}

// HandleKey applies one key press.
func (c *Console) HandleKey(ctx context.Context, key domain.Key) ([]domain.Event, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode == domain.ModeBooting || c.exited {
		return nil, nil
	}

	switch key.Type {
	case domain.KeyCtrlC:
		c.exited = true
		return []domain.Event{{Type: domain.EventExit}}, nil
	case domain.KeyCtrlT:
		return c.toggleTheme(), nil
	}

	if c.mode == domain.ModeMenu {
		return c.handleMenuKey(ctx, key)
	}

	switch key.Type {
	case domain.KeyRune:
		c.editor.Insert(key.Rune)
	case domain.KeyBackspace:
		c.editor.Backspace()
	case domain.KeyDelete:
		c.editor.Delete()
	case domain.KeyLeft:
		c.editor.Left()
	case domain.KeyRight:
		c.editor.Right()
	case domain.KeyHome:
		c.editor.Home()
	case domain.KeyEnd:
		c.editor.End()
	case domain.KeyCtrlU:
		c.editor.Clear()
	case domain.KeyUp:
		if s, ok := c.history.Prev(c.editor.String()); ok {
			c.editor.Set(s)
		}
	case domain.KeyDown:
		if s, ok := c.history.Next(); ok {
			c.editor.Set(s)
		}
	case domain.KeyTab:
		c.complete()
	case domain.KeyCtrlL:
		return c.submit(ctx, "clear", false)
	case domain.KeyEnter:
		return c.submit(ctx, c.editor.String(), true)
	}
	c.syncPrompt()
	return nil, nil
}

// Submit runs input as if it had been typed and confirmed with Enter.
func (c *Console) Submit(ctx context.Context, input string) ([]domain.Event, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case c.mode == domain.ModeBooting:
		return nil, domain.ErrBooting
	case c.mode == domain.ModeMenu:
		return nil, domain.ErrMenuOpen
	case c.exited:
		return nil, nil
	}
	c.editor.Set(input)
	return c.submit(ctx, input, true)
}

// SelectMenu picks the item at index of the open menu.
func (c *Console) SelectMenu(ctx context.Context, index int) ([]domain.Event, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.menu == nil {
		return nil, domain.ErrNoMenu
	}
	if index < 0 || index >= len(c.menu.Request.Items) {
		return nil, fmt.Errorf("menu item %d out of range (%d items)", index, len(c.menu.Request.Items))
	}
	c.menu.Cursor = index
	return c.selectMenu(ctx)
}

// CancelMenu closes the open menu without selecting anything.
func (c *Console) CancelMenu() ([]domain.Event, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.menu == nil {
		return nil, domain.ErrNoMenu
	}
	return c.cancelMenu(), nil
}

// ToggleTheme flips the theme outside of the command line, like the logo click.
func (c *Console) ToggleTheme() []domain.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.toggleTheme()
}

// VideoEnded reports that the external player exited on its own.
func (c *Console) VideoEnded() []domain.Event {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.env.State.Video.Playing {
		return nil
	}
	c.env.State.Video = domain.VideoState{}
	line := domain.Line{Kind: domain.LineSystem, Text: c.env.T("videoEnded")}
	c.emit(line)
	stop := domain.Event{Type: domain.EventVideoStop}
	c.hooks.Fire(stop)
	return []domain.Event{stop, domain.OutputEvent(line)}
}

// VideoFailed reports that the player could not start. The video state
// is cleared and the failure is added to the transcript.
func (c *Console) VideoFailed(err error) []domain.Event {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.env.State.Video.Playing {
		return nil
	}
	c.env.State.Video = domain.VideoState{}
	line := domain.Line{Kind: domain.LineError, Text: err.Error()}
	c.emit(line)
	stop := domain.Event{Type: domain.EventVideoStop}
	c.hooks.Fire(stop)
	return []domain.Event{stop, domain.OutputEvent(line)}
}

// Transcript returns a copy of all lines, the editable prompt included.
func (c *Console) Transcript() []domain.Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]domain.Line, len(c.transcript))
	copy(out, c.transcript)
	return out
}

func (c *Console) Mode() domain.Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Menu returns a copy of the open menu, or nil.
func (c *Console) Menu() *Menu {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.menu == nil {
		return nil
	}
	m := *c.menu
	return &m
}

// Buffer returns the text of the editable line.
func (c *Console) Buffer() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editor.String()
}

// Cursor returns the rune offset of the cursor in the editable line.
func (c *Console) Cursor() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editor.Cursor()
}

// State returns a snapshot of the session state.
func (c *Console) State() *domain.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.env.State.Snapshot()
}

// History returns the submitted commands, oldest first.
func (c *Console) History() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.history.Entries()
}

// Exited reports whether the session was ended.
func (c *Console) Exited() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.exited
}

// Translate looks up key in the current language.
func (c *Console) Translate(key string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.env.T(key)
}

func (c *Console) submit(ctx context.Context, input string, record bool) ([]domain.Event, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		c.editor.Clear()
		c.history.Reset()
		c.syncPrompt()
		return nil, nil
	}

	if record {
		c.freezePrompt(input)
		c.history.Add(trimmed)
		c.editor.Clear()
	} else {
		c.dropPrompt()
	}
	return c.run(ctx, input)
}

// run dispatches input; the editable prompt must already be gone.
func (c *Console) run(ctx context.Context, input string) ([]domain.Event, error) {
	res, err := c.registry.Dispatch(ctx, c.env, input)
	if err != nil {
		c.logger.Error("command failed", "input", strings.TrimSpace(input), "error", err)
		line := domain.Line{Kind: domain.LineError, Text: err.Error()}
		c.transcript = append(c.transcript, line)
		c.newPrompt()
		return []domain.Event{domain.OutputEvent(line)}, nil
	}

	events := make([]domain.Event, 0, len(res.Events)+len(res.Lines))
	for _, ev := range res.Events {
		switch ev.Type {
		case domain.EventClear:
			welcome := c.welcome()
			c.transcript = append(c.transcript[:0], welcome)
			events = append(events, ev)
			ev = domain.OutputEvent(welcome)
		case domain.EventMenuOpen:
			if ev.Menu != nil && len(ev.Menu.Items) > 0 {
				c.menu = &Menu{Request: *ev.Menu}
				c.mode = domain.ModeMenu
			}
		case domain.EventExit:
			c.exited = true
		}
		c.hooks.Fire(ev)
		events = append(events, ev)
	}
	for _, line := range res.Lines {
		c.transcript = append(c.transcript, line)
		events = append(events, domain.OutputEvent(line))
	}

	if c.mode == domain.ModeLineEditing && !c.exited {
		c.newPrompt()
	}
	return events, nil
}

func (c *Console) handleMenuKey(ctx context.Context, key domain.Key) ([]domain.Event, error) {
	switch {
	case key.Type == domain.KeyUp:
		c.menu.Up()
	case key.Type == domain.KeyDown:
		c.menu.Down()
	case key.Type == domain.KeyEnter:
		return c.selectMenu(ctx)
	case key.Type == domain.KeyEscape, key.Type == domain.KeyRune && key.Rune == 'q':
		return c.cancelMenu(), nil
	}
	return nil, nil
}

func (c *Console) selectMenu(ctx context.Context) ([]domain.Event, error) {
	item, ok := c.menu.Selected()
	kind := c.menu.Request.Kind
	c.closeMenu()
	events := []domain.Event{{Type: domain.EventMenuClose}}
	if !ok {
		c.newPrompt()
		return events, nil
	}

	c.logger.Debug("menu selection", "kind", kind, "item", item.Label)
	switch kind {
	case domain.MenuCommands:
		c.transcript = append(c.transcript, domain.Line{
			Kind:   domain.LinePrompt,
			Prompt: c.env.State.Prompt(),
			Text:   item.Value,
		})
		c.history.Add(item.Value)
		more, err := c.run(ctx, item.Value)
		return append(events, more...), err
	default:
		line := domain.Line{Kind: domain.LineResponse, Text: item.Value}
		c.transcript = append(c.transcript, line)
		c.newPrompt()
		return append(events, domain.OutputEvent(line)), nil
	}
}

func (c *Console) cancelMenu() []domain.Event {
	c.closeMenu()
	line := domain.Line{Kind: domain.LineSystem, Text: c.env.T("menuCancelled")}
	c.transcript = append(c.transcript, line)
	c.newPrompt()
	return []domain.Event{{Type: domain.EventMenuClose}, domain.OutputEvent(line)}
}

func (c *Console) closeMenu() {
	c.menu = nil
	c.mode = domain.ModeLineEditing
}

func (c *Console) toggleTheme() []domain.Event {
	res := commands.ToggleTheme(c.env)
	for _, ev := range res.Events {
		c.hooks.Fire(ev)
	}
	if c.mode == domain.ModeBooting {
		return res.Events
	}
	events := res.Events
	for _, line := range res.Lines {
		c.emit(line)
		events = append(events, domain.OutputEvent(line))
	}
	return events
}

// complete extends the buffer to the only public command it prefixes.
func (c *Console) complete() {
	prefix := strings.ToLower(c.editor.String())
	if prefix == "" {
		return
	}
	match := ""
	for _, name := range c.registry.Public() {
		if strings.HasPrefix(name, prefix) {
			if match != "" {
				return
			}
			match = name
		}
	}
	if match != "" {
		c.editor.Set(match)
	}
}

// welcome is the first line of the transcript, kept by clear.
func (c *Console) welcome() domain.Line {
	return domain.Line{Kind: domain.LineWelcome, Text: c.env.T("welcome")}
}

// emit adds a line above the editable prompt, keeping the prompt last.
func (c *Console) emit(line domain.Line) {
	n := len(c.transcript)
	if n > 0 && c.transcript[n-1].Editable {
		prompt := c.transcript[n-1]
		c.transcript[n-1] = line
		c.transcript = append(c.transcript, prompt)
		return
	}
	c.transcript = append(c.transcript, line)
}

func (c *Console) newPrompt() {
	c.dropPrompt()
	c.transcript = append(c.transcript, domain.Line{
		Kind:     domain.LinePrompt,
		Prompt:   c.env.State.Prompt(),
		Editable: true,
	})
	c.syncPrompt()
}

func (c *Console) syncPrompt() {
	if n := len(c.transcript); n > 0 && c.transcript[n-1].Editable {
		c.transcript[n-1].Text = c.editor.String()
	}
}

func (c *Console) freezePrompt(text string) {
	if n := len(c.transcript); n > 0 && c.transcript[n-1].Editable {
		c.transcript[n-1].Text = text
		c.transcript[n-1].Editable = false
	}
}

func (c *Console) dropPrompt() {
	if n := len(c.transcript); n > 0 && c.transcript[n-1].Editable {
		c.transcript = c.transcript[:n-1]
	}
}
