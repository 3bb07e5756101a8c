package commands

import (
	"context"
	"strings"

	"github.com/simplets-git/simplets/pkg/domain"
	"github.com/simplets-git/simplets/pkg/i18n"
	"github.com/simplets-git/simplets/pkg/pairart"
)

// Vocabulary is the public command list, in help order.
var Vocabulary = []string{
	"help", "clear", "video", "stop",
	"about", "manifesto", "project", "minting",
	"roadmap", "team", "links", "legal", "language",
}

// Default builds the registry with the full built-in table.
func Default(opts ...Option) *Registry {
	r := NewRegistry(opts...)

	static := func(key string) Handler {
		return func(_ context.Context, env *Env, _ Invocation) (Result, error) {
			return respond(env.T(key)), nil
		}
	}

	handlers := map[string]Command{
		"help":      {Handler: r.help},
		"clear":     {Handler: clearScreen},
		"video":     {Handler: playVideo, TakesArgs: true},
		"stop":      {Handler: stopVideo},
		"about":     {Handler: static("commands.about")},
		"manifesto": {Handler: static("commands.manifesto")},
		"project":   {Handler: project},
		"minting":   {Handler: static("commands.minting")},
		"roadmap":   {Handler: static("commands.roadmap")},
		"team":      {Handler: static("commands.team")},
		"links":     {Handler: static("commands.links")},
		"legal":     {Handler: static("commands.legal")},
		"language":  {Handler: language},
	}
	for _, name := range Vocabulary {
		cmd := handlers[name]
		cmd.Name = name
		r.Register(cmd)
	}

	r.Register(Command{Name: "set lang", Hidden: true, TakesArgs: true, Handler: setLanguage})
	r.Register(Command{Name: "theme", Hidden: true, Handler: toggleTheme})
	r.Register(Command{Name: "menu", Hidden: true, Handler: r.menu})
	r.Register(Command{Name: "manifestos", Hidden: true, Handler: manifestos})
	r.Register(Command{Name: "exit", Hidden: true, Handler: exit})
	r.Register(Command{Name: "quit", Hidden: true, Handler: exit})
	return r
}

func (r *Registry) help(_ context.Context, env *Env, _ Invocation) (Result, error) {
	names := r.Public()
	for i, n := range names {
		names[i] = "`" + n + "`"
	}
	return respond(env.T("availableCommands") + strings.Join(names, ", ")), nil
}

func clearScreen(context.Context, *Env, Invocation) (Result, error) {
	return Result{Events: []domain.Event{{Type: domain.EventClear}}}, nil
}

func stopVideo(_ context.Context, env *Env, _ Invocation) (Result, error) {
	env.State.Video = domain.VideoState{}
	res := respond(env.T("videoStopped"))
	res.Events = []domain.Event{{Type: domain.EventVideoStop}}
	return res, nil
}

func playVideo(_ context.Context, env *Env, inv Invocation) (Result, error) {
	if env.State.Theme.IsLight() {
		return respond(env.T("videoThemeWarning")), nil
	}

	var events []domain.Event
	if env.State.Video.Playing {
		events = append(events, domain.Event{Type: domain.EventVideoStop})
	}

	overlay := strings.Join(inv.Args, " ")
	env.State.Video = domain.VideoState{Playing: true, Overlay: overlay}
	events = append(events, domain.Event{Type: domain.EventVideoStart, Overlay: overlay})

	msg := env.T("videoPlaying")
	if overlay != "" {
		msg = env.Catalog.T(env.State.Language, "videoPlayingOverlay", map[string]string{"text": overlay})
	}
	res := respond(msg)
	res.Events = events
	return res, nil
}

func project(_ context.Context, env *Env, _ Invocation) (Result, error) {
	first, err := pairart.NewPair(env.Random)
	if err != nil {
		return Result{}, err
	}
	second, err := pairart.NewPair(env.Random)
	if err != nil {
		return Result{}, err
	}

	body := strings.Join([]string{
		env.T("project.title"),
		env.T("project.description"),
		env.T("project.below"),
	}, "\n\n")

	return Result{Lines: []domain.Line{
		{Kind: domain.LineResponse, Text: env.T("project.above"), Pairs: []domain.Pair{first, second}},
		{Kind: domain.LineResponse, Text: body},
	}}, nil
}

func language(_ context.Context, env *Env, _ Invocation) (Result, error) {
	lang := env.State.Language
	return respond(env.Catalog.T(lang, "commands.language", map[string]string{"lang": lang})), nil
}

func setLanguage(_ context.Context, env *Env, inv Invocation) (Result, error) {
	if len(inv.Args) == 0 {
		return respond(env.T("invalidLanguage")), nil
	}
	code := strings.ToLower(inv.Args[0])
	if !i18n.Valid(code) {
		return respond(env.T("invalidLanguage")), nil
	}

	env.State.Language = code
	res := respond(env.T("languageChanged") + code)
	res.Events = []domain.Event{{Type: domain.EventLanguage, Language: code}}
	return res, nil
}

func toggleTheme(_ context.Context, env *Env, _ Invocation) (Result, error) {
	return ToggleTheme(env), nil
}

// ToggleTheme flips the theme and reports it, as the logo click does.
func ToggleTheme(env *Env) Result {
	env.State.Theme = env.State.Theme.Toggle()
	res := respond(env.T("currentTheme") + env.State.Theme.Label())
	res.Events = []domain.Event{{Type: domain.EventTheme, Theme: env.State.Theme}}
	return res
}

func (r *Registry) menu(_ context.Context, env *Env, _ Invocation) (Result, error) {
	names := r.Public()
	items := make([]domain.MenuItem, len(names))
	for i, n := range names {
		items[i] = domain.MenuItem{Label: n, Value: n}
	}
	req := &domain.MenuRequest{Kind: domain.MenuCommands, Title: env.T("menuTitle"), Items: items}
	return Result{Events: []domain.Event{{Type: domain.EventMenuOpen, Menu: req}}}, nil
}

func manifestos(_ context.Context, env *Env, _ Invocation) (Result, error) {
	texts := env.Catalog.List(env.State.Language, "commands.manifestos")
	items := make([]domain.MenuItem, len(texts))
	for i, text := range texts {
		items[i] = domain.MenuItem{Label: headline(text), Value: text}
	}
	req := &domain.MenuRequest{Kind: domain.MenuContent, Title: env.T("manifestosTitle"), Items: items}
	return Result{Events: []domain.Event{{Type: domain.EventMenuOpen, Menu: req}}}, nil
}

// headline extracts the bold first line of a Markdown block.
func headline(text string) string {
	first, _, _ := strings.Cut(strings.TrimSpace(text), "\n")
	first = strings.TrimSuffix(strings.TrimSpace(first), `\`)
	return strings.Trim(first, "*")
}

func exit(context.Context, *Env, Invocation) (Result, error) {
	return Result{Events: []domain.Event{{Type: domain.EventExit}}}, nil
}
