package console_test

import (
	"context"
	"errors"
	"testing"

	"github.com/simplets-git/simplets/pkg/console"
	"github.com/simplets-git/simplets/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func started(t *testing.T, opts ...console.Option) *console.Console {
	t.Helper()
	c := console.New(opts...)
	require.Equal(t, domain.ModeBooting, c.Mode())
	events := c.Start()
	require.Len(t, events, 1)
	return c
}

func typeKeys(t *testing.T, c *console.Console, s string) {
	t.Helper()
	for _, k := range domain.KeysFor(s) {
		_, err := c.HandleKey(context.Background(), k)
		require.NoError(t, err)
	}
}

func press(t *testing.T, c *console.Console, kt domain.KeyType) []domain.Event {
	t.Helper()
	events, err := c.HandleKey(context.Background(), domain.Key{Type: kt})
	require.NoError(t, err)
	return events
}

// assertSingleEditableLast checks the prompt invariant of the transcript.
func assertSingleEditableLast(t *testing.T, c *console.Console) {
	t.Helper()
	lines := c.Transcript()
	editable := 0
	for i, l := range lines {
		if l.Editable {
			editable++
			assert.Equal(t, len(lines)-1, i, "editable line must be last")
		}
	}
	if c.Mode() == domain.ModeLineEditing {
		assert.Equal(t, 1, editable)
	} else {
		assert.Equal(t, 0, editable)
	}
}

func TestBootingIgnoresKeys(t *testing.T) {
	c := console.New()
	events, err := c.HandleKey(context.Background(), domain.RuneKey('x'))
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.Empty(t, c.Transcript())

	_, err = c.Submit(context.Background(), "help")
	assert.ErrorIs(t, err, domain.ErrBooting)
}

func TestStart(t *testing.T) {
	c := started(t)
	lines := c.Transcript()
	require.Len(t, lines, 2)
	assert.Equal(t, domain.LineWelcome, lines[0].Kind)
	assert.Equal(t, "Welcome to the abyss. Type `help` to interact.", lines[0].Text)
	assert.Equal(t, "[anonymous]:~$", lines[1].Prompt)
	assert.True(t, lines[1].Editable)

	assert.Empty(t, c.Start(), "second start is a no-op")
	assertSingleEditableLast(t, c)
}

func TestTypingAndSubmit(t *testing.T) {
	c := started(t)
	typeKeys(t, c, "help")
	assert.Equal(t, "help", c.Buffer())
	assert.Equal(t, "help", c.Transcript()[1].Text)

	events := press(t, c, domain.KeyEnter)
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventOutput, events[0].Type)
	assert.Contains(t, events[0].Line.Text, "Available commands: `help`")

	lines := c.Transcript()
	require.Len(t, lines, 4)
	assert.Equal(t, "help", lines[1].Text)
	assert.False(t, lines[1].Editable)
	assert.Equal(t, domain.LineResponse, lines[2].Kind)
	assert.True(t, lines[3].Editable)
	assert.Equal(t, "", c.Buffer())
	assertSingleEditableLast(t, c)
}

func TestEmptySubmitKeepsPrompt(t *testing.T) {
	c := started(t)
	typeKeys(t, c, "   ")
	events := press(t, c, domain.KeyEnter)
	assert.Empty(t, events)
	assert.Len(t, c.Transcript(), 2)
	assert.Equal(t, "", c.Buffer())
	assert.Empty(t, c.History())
	assertSingleEditableLast(t, c)
}

func TestUnknownCommand(t *testing.T) {
	c := started(t)
	events, err := c.Submit(context.Background(), "FooBar")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Command not found: FooBar", events[0].Line.Text)
	assertSingleEditableLast(t, c)
}

func TestClearCommandAndCtrlL(t *testing.T) {
	c := started(t)
	_, err := c.Submit(context.Background(), "about")
	require.NoError(t, err)

	events, err := c.Submit(context.Background(), "clear")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, domain.EventClear, events[0].Type)
	assert.Equal(t, domain.LineWelcome, events[1].Line.Kind)
	lines := c.Transcript()
	require.Len(t, lines, 2)
	assert.Equal(t, domain.LineWelcome, lines[0].Kind)
	assert.True(t, lines[1].Editable)

	_, err = c.Submit(context.Background(), "about")
	require.NoError(t, err)
	typeKeys(t, c, "dra")
	events = press(t, c, domain.KeyCtrlL)
	assert.Equal(t, domain.EventClear, events[0].Type)
	lines = c.Transcript()
	require.Len(t, lines, 2)
	assert.Equal(t, "dra", lines[1].Text, "ctrl+l keeps the draft")
	assert.Equal(t, []string{"about", "clear", "about"}, c.History())
}

func TestHistoryNavigation(t *testing.T) {
	c := started(t)
	for _, cmd := range []string{"help", "about", "about"} {
		_, err := c.Submit(context.Background(), cmd)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"help", "about"}, c.History())

	typeKeys(t, c, "ro")
	press(t, c, domain.KeyUp)
	assert.Equal(t, "about", c.Buffer())
	press(t, c, domain.KeyUp)
	assert.Equal(t, "help", c.Buffer())
	assert.Equal(t, 4, c.Cursor())
	press(t, c, domain.KeyDown)
	press(t, c, domain.KeyDown)
	assert.Equal(t, "ro", c.Buffer())
}

func TestHistorySize(t *testing.T) {
	c := started(t, console.WithHistorySize(2))
	for _, cmd := range []string{"help", "about", "team"} {
		_, err := c.Submit(context.Background(), cmd)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"about", "team"}, c.History())
}

func TestTabCompletion(t *testing.T) {
	c := started(t)
	typeKeys(t, c, "ma")
	press(t, c, domain.KeyTab)
	assert.Equal(t, "manifesto", c.Buffer())

	press(t, c, domain.KeyCtrlU)
	typeKeys(t, c, "l")
	press(t, c, domain.KeyTab)
	assert.Equal(t, "l", c.Buffer(), "ambiguous prefix is left alone")
}

func TestCommandMenu(t *testing.T) {
	c := started(t)
	events, err := c.Submit(context.Background(), "menu")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventMenuOpen, events[0].Type)
	assert.Equal(t, domain.ModeMenu, c.Mode())
	assertSingleEditableLast(t, c)

	_, err = c.Submit(context.Background(), "help")
	assert.ErrorIs(t, err, domain.ErrMenuOpen)

	// Typed characters never reach the editor.
	typeKeys(t, c, "xyz")
	assert.Equal(t, "", c.Buffer())

	press(t, c, domain.KeyUp)
	assert.Equal(t, "language", menuSelection(t, c))
	press(t, c, domain.KeyDown)
	press(t, c, domain.KeyDown)
	assert.Equal(t, "clear", menuSelection(t, c))
	press(t, c, domain.KeyDown)
	press(t, c, domain.KeyDown)
	press(t, c, domain.KeyDown)
	assert.Equal(t, "about", menuSelection(t, c))

	events = press(t, c, domain.KeyEnter)
	require.GreaterOrEqual(t, len(events), 2)
	assert.Equal(t, domain.EventMenuClose, events[0].Type)
	assert.Contains(t, events[1].Line.Text, "SIMPLETS: Redefining Terminal Experience")
	assert.Equal(t, domain.ModeLineEditing, c.Mode())
	assert.Nil(t, c.Menu())

	lines := c.Transcript()
	assert.Equal(t, "about", lines[len(lines)-3].Text, "selection is echoed as a prompt line")
	assert.Equal(t, []string{"menu", "about"}, c.History())
	assertSingleEditableLast(t, c)
}

func TestManifestoMenu(t *testing.T) {
	c := started(t)
	_, err := c.Submit(context.Background(), "manifestos")
	require.NoError(t, err)

	events, err := c.SelectMenu(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, domain.EventMenuClose, events[0].Type)
	assert.Contains(t, events[1].Line.Text, "Open Access Manifesto")
	assertSingleEditableLast(t, c)

	_, err = c.SelectMenu(context.Background(), 0)
	assert.ErrorIs(t, err, domain.ErrNoMenu)
}

func TestMenuCancel(t *testing.T) {
	for _, key := range []domain.Key{{Type: domain.KeyEscape}, domain.RuneKey('q')} {
		c := started(t)
		_, err := c.Submit(context.Background(), "menu")
		require.NoError(t, err)

		events, err := c.HandleKey(context.Background(), key)
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, domain.EventMenuClose, events[0].Type)
		assert.Equal(t, "Menu closed.", events[1].Line.Text)
		assert.Equal(t, domain.ModeLineEditing, c.Mode())
		assertSingleEditableLast(t, c)
	}

	c := started(t)
	_, err := c.CancelMenu()
	assert.ErrorIs(t, err, domain.ErrNoMenu)
}

func TestSelectMenuOutOfRange(t *testing.T) {
	c := started(t)
	_, err := c.Submit(context.Background(), "menu")
	require.NoError(t, err)
	_, err = c.SelectMenu(context.Background(), 99)
	assert.Error(t, err)
	assert.Equal(t, domain.ModeMenu, c.Mode())
}

func TestToggleThemeKeepsDraft(t *testing.T) {
	c := started(t)
	typeKeys(t, c, "vid")

	events := press(t, c, domain.KeyCtrlT)
	require.Len(t, events, 2)
	assert.Equal(t, domain.EventTheme, events[0].Type)
	assert.Equal(t, domain.ThemeLight, events[0].Theme)
	assert.Equal(t, "Current Theme: Light", events[1].Line.Text)
	assert.Equal(t, "vid", c.Buffer())
	assertSingleEditableLast(t, c)

	c.ToggleTheme()
	assert.Equal(t, domain.ThemeDark, c.State().Theme)
}

func TestToggleThemeWhileBooting(t *testing.T) {
	c := console.New()
	events := c.ToggleTheme()
	require.Len(t, events, 1)
	assert.Equal(t, domain.ThemeLight, c.State().Theme)
	assert.Empty(t, c.Transcript())
}

func TestVideoLifecycle(t *testing.T) {
	c := started(t)
	assert.Empty(t, c.VideoEnded(), "nothing is playing")

	_, err := c.Submit(context.Background(), "video hello")
	require.NoError(t, err)
	assert.Equal(t, domain.VideoState{Playing: true, Overlay: "hello"}, c.State().Video)

	events := c.VideoEnded()
	require.Len(t, events, 2)
	assert.Equal(t, domain.EventVideoStop, events[0].Type)
	assert.Equal(t, "Video ended.", events[1].Line.Text)
	assert.False(t, c.State().Video.Playing)
	assertSingleEditableLast(t, c)
}

func TestVideoFailed(t *testing.T) {
	stops := 0
	c := started(t, console.WithHooks(domain.LifecycleHooks{OnVideoStop: func() { stops++ }}))
	assert.Empty(t, c.VideoFailed(errors.New("mpv not found")), "nothing is playing")

	_, err := c.Submit(context.Background(), "video")
	require.NoError(t, err)
	require.True(t, c.State().Video.Playing)

	events := c.VideoFailed(errors.New("mpv not found"))
	require.Len(t, events, 2)
	assert.Equal(t, domain.EventVideoStop, events[0].Type)
	assert.Equal(t, domain.Line{Kind: domain.LineError, Text: "mpv not found"}, *events[1].Line)
	assert.Equal(t, domain.VideoState{}, c.State().Video)
	assert.Equal(t, 1, stops)
	assertSingleEditableLast(t, c)
}

func TestLanguageSwitch(t *testing.T) {
	c := started(t)
	_, err := c.Submit(context.Background(), "set lang de")
	require.NoError(t, err)
	assert.Equal(t, "de", c.State().Language)

	events, err := c.Submit(context.Background(), "nope")
	require.NoError(t, err)
	assert.Equal(t, "Befehl nicht gefunden: nope", events[0].Line.Text)
}

func TestExit(t *testing.T) {
	c := started(t)
	events, err := c.Submit(context.Background(), "exit")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventExit, events[0].Type)
	assert.True(t, c.Exited())

	events = press(t, c, domain.KeyEnter)
	assert.Empty(t, events, "keys are ignored after exit")

	c = started(t)
	events = press(t, c, domain.KeyCtrlC)
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventExit, events[0].Type)
	assert.True(t, c.Exited())
}

func menuSelection(t *testing.T, c *console.Console) string {
	t.Helper()
	m := c.Menu()
	require.NotNil(t, m)
	item, ok := m.Selected()
	require.True(t, ok)
	return item.Value
}

func TestHooks(t *testing.T) {
	var themes []domain.Theme
	var langs []string
	starts, stops := 0, 0
	c := started(t, console.WithHooks(domain.LifecycleHooks{
		OnThemeChange:    func(th domain.Theme) { themes = append(themes, th) },
		OnLanguageChange: func(code string) { langs = append(langs, code) },
		OnVideoStart:     func(string) { starts++ },
		OnVideoStop:      func() { stops++ },
	}))

	for _, cmd := range []string{"theme", "set lang fr", "theme", "video", "video again", "stop"} {
		_, err := c.Submit(context.Background(), cmd)
		require.NoError(t, err)
	}
	press(t, c, domain.KeyCtrlT)

	assert.Equal(t, []domain.Theme{domain.ThemeLight, domain.ThemeDark, domain.ThemeLight}, themes)
	assert.Equal(t, []string{"fr"}, langs)
	assert.Equal(t, 2, starts)
	assert.Equal(t, 2, stops, "replacing a video stops the previous one")
}
