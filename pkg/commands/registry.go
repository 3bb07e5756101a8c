// Package commands holds the static command table of the terminal and
// dispatches typed lines to it.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/simplets-git/simplets/internal/logging"
	"github.com/simplets-git/simplets/pkg/domain"
	"github.com/simplets-git/simplets/pkg/i18n"
)

// Env is what a handler may read and change.
type Env struct {
	State   *domain.State
	Catalog *i18n.Catalog

	// Random feeds the character-pair art; nil means crypto/rand.
	Random io.Reader
}

// T translates key in the current language.
func (e *Env) T(key string) string {
	return e.Catalog.T(e.State.Language, key, nil)
}

// Invocation is a parsed input line.
type Invocation struct {
	// Raw is the trimmed input with its original casing.
	Raw string
	// Name is the matched command name.
	Name string
	// Args holds the words after the command name, original casing.
	Args []string
}

// Result is the outcome of a dispatch.
type Result struct {
	Lines  []domain.Line
	Events []domain.Event
}

func respond(text string) Result {
	return Result{Lines: []domain.Line{{Kind: domain.LineResponse, Text: text}}}
}

// Handler executes one command.
type Handler func(ctx context.Context, env *Env, inv Invocation) (Result, error)

// Command is an entry of the table.
type Command struct {
	Name string
	// Hidden commands are not listed by help.
	Hidden bool
	// TakesArgs lets "name arg..." match; otherwise the whole line must equal Name.
	TakesArgs bool
	Handler   Handler
}

// Counter records dispatches, e.g. for metrics.
type Counter interface {
	CommandDispatched(name string)
}

// Registry maps command names to handlers.
type Registry struct {
	cmds    map[string]Command
	order   []string
	counter Counter
	logger  *slog.Logger
}

// Option configures the Registry.
type Option func(*Registry)

// WithCounter records each dispatch.
func WithCounter(c Counter) Option {
	return func(r *Registry) {
		r.counter = c
	}
}

// WithLogger configures debug logging of dispatches.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// NewRegistry creates an empty table.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		cmds:   make(map[string]Command),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds or replaces a command. Public commands keep registration order.
func (r *Registry) Register(cmd Command) {
	name := strings.ToLower(cmd.Name)
	cmd.Name = name
	if _, exists := r.cmds[name]; !exists && !cmd.Hidden {
		r.order = append(r.order, name)
	}
	r.cmds[name] = cmd
}

// Public returns the names listed by help, in table order.
func (r *Registry) Public() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Lookup returns the command registered under name.
func (r *Registry) Lookup(name string) (Command, bool) {
	cmd, ok := r.cmds[strings.ToLower(name)]
	return cmd, ok
}

// Parse resolves input to a command. Whole-line matches win over
// argument-taking prefixes; longer prefixes win over shorter ones.
func (r *Registry) Parse(input string) (Invocation, Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Invocation{}, Command{}, domain.ErrEmptyCommand
	}
	lower := strings.ToLower(raw)

	if cmd, ok := r.cmds[lower]; ok {
		return Invocation{Raw: raw, Name: cmd.Name}, cmd, nil
	}

	words := strings.Fields(raw)
	lowerWords := strings.Fields(lower)
	candidates := make([]Command, 0)
	for _, cmd := range r.cmds {
		if cmd.TakesArgs {
			candidates = append(candidates, cmd)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		return len(candidates[i].Name) > len(candidates[j].Name)
	})
	for _, cmd := range candidates {
		nameWords := strings.Fields(cmd.Name)
		if len(lowerWords) < len(nameWords) {
			continue
		}
		if strings.Join(lowerWords[:len(nameWords)], " ") == cmd.Name {
			return Invocation{Raw: raw, Name: cmd.Name, Args: words[len(nameWords):]}, cmd, nil
		}
	}

	return Invocation{Raw: raw}, Command{}, fmt.Errorf("%w: %s", domain.ErrUnknownCommand, raw)
}

// Dispatch runs input against the table. Unknown commands are not an error:
// they produce the translated not-found line.
func (r *Registry) Dispatch(ctx context.Context, env *Env, input string) (Result, error) {
	inv, cmd, err := r.Parse(input)
	if err != nil {
		if inv.Raw == "" {
			return Result{}, err
		}
		r.count("unknown")
		r.logger.Debug("command not found", "input", inv.Raw)
		return respond(env.T("commandNotFound") + inv.Raw), nil
	}

	r.count(cmd.Name)
	r.logger.Debug("dispatch", "command", cmd.Name, "args", len(inv.Args))

	res, err := cmd.Handler(ctx, env, inv)
	if err != nil {
		return Result{}, fmt.Errorf("command %s failed: %w", cmd.Name, err)
	}
	return res, nil
}

func (r *Registry) count(name string) {
	if r.counter != nil {
		r.counter.CommandDispatched(name)
	}
}
