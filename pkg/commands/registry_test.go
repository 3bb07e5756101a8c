package commands_test

import (
	"bytes"
	"context"
	"encoding/binary"
	"testing"

	"github.com/simplets-git/simplets/pkg/commands"
	"github.com/simplets-git/simplets/pkg/domain"
	"github.com/simplets-git/simplets/pkg/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCounter struct {
	mock.Mock
}

func (m *MockCounter) CommandDispatched(name string) {
	m.Called(name)
}

func newEnv() *commands.Env {
	return &commands.Env{
		State:   domain.NewState(),
		Catalog: i18n.MustLoad(),
	}
}

func dispatch(t *testing.T, r *commands.Registry, env *commands.Env, input string) commands.Result {
	t.Helper()
	res, err := r.Dispatch(context.Background(), env, input)
	require.NoError(t, err)
	return res
}

func text(res commands.Result) string {
	if len(res.Lines) == 0 {
		return ""
	}
	return res.Lines[0].Text
}

func TestParse(t *testing.T) {
	r := commands.Default()

	tests := []struct {
		input    string
		wantName string
		wantArgs []string
		wantErr  error
	}{
		{input: "help", wantName: "help"},
		{input: "  HeLp  ", wantName: "help"},
		{input: "video", wantName: "video"},
		{input: "video Hello World", wantName: "video", wantArgs: []string{"Hello", "World"}},
		{input: "set lang de", wantName: "set lang", wantArgs: []string{"de"}},
		{input: "SET   LANG   DE", wantName: "set lang", wantArgs: []string{"DE"}},
		{input: "help me", wantErr: domain.ErrUnknownCommand},
		{input: "settings", wantErr: domain.ErrUnknownCommand},
		{input: "   ", wantErr: domain.ErrEmptyCommand},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			inv, _, err := r.Parse(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, inv.Name)
			assert.Equal(t, tt.wantArgs, inv.Args)
		})
	}
}

func TestDispatch_Empty(t *testing.T) {
	_, err := commands.Default().Dispatch(context.Background(), newEnv(), "")
	assert.ErrorIs(t, err, domain.ErrEmptyCommand)
}

func TestDispatch_Help(t *testing.T) {
	r := commands.Default()
	res := dispatch(t, r, newEnv(), "help")

	want := "Available commands: `help`, `clear`, `video`, `stop`, `about`, `manifesto`, " +
		"`project`, `minting`, `roadmap`, `team`, `links`, `legal`, `language`"
	assert.Equal(t, want, text(res))
	assert.Equal(t, commands.Vocabulary, r.Public())
	assert.NotContains(t, text(res), "set lang")
}

func TestDispatch_NotFoundEchoesOriginal(t *testing.T) {
	res := dispatch(t, commands.Default(), newEnv(), "  FooBar  ")
	assert.Equal(t, "Command not found: FooBar", text(res))
}

func TestDispatch_StaticCopy(t *testing.T) {
	r := commands.Default()
	env := newEnv()
	for _, name := range []string{"about", "manifesto", "minting", "roadmap", "team", "links", "legal"} {
		res := dispatch(t, r, env, name)
		assert.Equal(t, env.Catalog.T("en", "commands."+name, nil), text(res), name)
		assert.NotEmpty(t, text(res), name)
	}
}

func TestDispatch_Clear(t *testing.T) {
	res := dispatch(t, commands.Default(), newEnv(), "clear")
	assert.Empty(t, res.Lines)
	require.Len(t, res.Events, 1)
	assert.Equal(t, domain.EventClear, res.Events[0].Type)
}

func TestDispatch_Language(t *testing.T) {
	r := commands.Default()
	env := newEnv()

	res := dispatch(t, r, env, "set lang DE")
	assert.Equal(t, "de", env.State.Language)
	assert.Equal(t, "Sprache erfolgreich geändert zu: de", text(res))
	require.Len(t, res.Events, 1)
	assert.Equal(t, domain.EventLanguage, res.Events[0].Type)

	res = dispatch(t, r, env, "language")
	assert.Contains(t, text(res), "Aktuelle Sprache: `de`")

	res = dispatch(t, r, env, "set lang xx")
	assert.Equal(t, "de", env.State.Language)
	assert.Contains(t, text(res), "Ungültiger Sprachcode")

	res = dispatch(t, r, env, "set lang")
	assert.Contains(t, text(res), "Ungültiger Sprachcode")

	// Valid code without its own table speaks English.
	res = dispatch(t, r, env, "set lang ja")
	assert.Equal(t, "Language successfully changed to: ja", text(res))
	res = dispatch(t, r, env, "nope")
	assert.Equal(t, "Command not found: nope", text(res))
}

func TestDispatch_Video(t *testing.T) {
	r := commands.Default()
	env := newEnv()

	res := dispatch(t, r, env, "video")
	assert.Equal(t, "Playing video in background...", text(res))
	assert.Equal(t, domain.VideoState{Playing: true}, env.State.Video)
	require.Len(t, res.Events, 1)
	assert.Equal(t, domain.EventVideoStart, res.Events[0].Type)

	res = dispatch(t, r, env, "video Hello World")
	assert.Equal(t, `Playing video with overlay: "Hello World"`, text(res))
	require.Len(t, res.Events, 2, "a running video is stopped first")
	assert.Equal(t, domain.EventVideoStop, res.Events[0].Type)
	assert.Equal(t, "Hello World", res.Events[1].Overlay)

	res = dispatch(t, r, env, "stop")
	assert.Equal(t, "Video stopped. Returning to normal CLI view.", text(res))
	assert.False(t, env.State.Video.Playing)
	assert.Equal(t, domain.EventVideoStop, res.Events[0].Type)
}

func TestDispatch_VideoNeedsDarkTheme(t *testing.T) {
	env := newEnv()
	env.State.Theme = domain.ThemeLight

	res := dispatch(t, commands.Default(), env, "video hi")
	assert.Contains(t, text(res), "WARNING: Please switch to dark theme")
	assert.Empty(t, res.Events)
	assert.False(t, env.State.Video.Playing)
}

func TestDispatch_Theme(t *testing.T) {
	r := commands.Default()
	env := newEnv()

	res := dispatch(t, r, env, "theme")
	assert.Equal(t, "Current Theme: Light", text(res))
	assert.Equal(t, domain.ThemeLight, res.Events[0].Theme)

	res = dispatch(t, r, env, "theme")
	assert.Equal(t, "Current Theme: Dark", text(res))
}

func TestDispatch_Project(t *testing.T) {
	words := make([]byte, 16)
	for i, v := range []uint32{0, 1 << 31, 5 << 28, 5 << 28} {
		binary.BigEndian.PutUint32(words[i*4:], v)
	}
	env := newEnv()
	env.Random = bytes.NewReader(words)

	res := dispatch(t, commands.Default(), env, "project")
	require.Len(t, res.Lines, 2)
	assert.Equal(t, "*Random Character Pair NFT Example*", res.Lines[0].Text)
	require.Len(t, res.Lines[0].Pairs, 2)
	assert.Equal(t, domain.Pair{Left: 0, Right: 35}, res.Lines[0].Pairs[0])
	assert.Equal(t, domain.Pair{Left: 21, Right: 22}, res.Lines[0].Pairs[1])
	assert.Contains(t, res.Lines[1].Text, "**SIMPLETS Project**")
	assert.Contains(t, res.Lines[1].Text, "Theme switch = new art!")
}

func TestDispatch_ProjectRandomnessFailure(t *testing.T) {
	env := newEnv()
	env.Random = bytes.NewReader(nil)
	_, err := commands.Default().Dispatch(context.Background(), env, "project")
	assert.Error(t, err)
}

func TestDispatch_Menus(t *testing.T) {
	r := commands.Default()

	res := dispatch(t, r, newEnv(), "menu")
	require.Len(t, res.Events, 1)
	menu := res.Events[0].Menu
	require.NotNil(t, menu)
	assert.Equal(t, domain.MenuCommands, menu.Kind)
	assert.Len(t, menu.Items, len(commands.Vocabulary))
	assert.Equal(t, "help", menu.Items[0].Value)

	res = dispatch(t, r, newEnv(), "manifestos")
	menu = res.Events[0].Menu
	require.NotNil(t, menu)
	assert.Equal(t, domain.MenuContent, menu.Kind)
	require.Len(t, menu.Items, 3)
	assert.Equal(t, "Chyperpunk Manifesto", menu.Items[0].Label)
	assert.Equal(t, "Open Access Manifesto", menu.Items[1].Label)
	assert.Equal(t, "SIMPLETS Manifesto", menu.Items[2].Label)
}

func TestDispatch_Exit(t *testing.T) {
	for _, in := range []string{"exit", "QUIT"} {
		res := dispatch(t, commands.Default(), newEnv(), in)
		require.Len(t, res.Events, 1)
		assert.Equal(t, domain.EventExit, res.Events[0].Type)
	}
}

func TestDispatch_Counter(t *testing.T) {
	counter := new(MockCounter)
	counter.On("CommandDispatched", "help").Return().Once()
	counter.On("CommandDispatched", "unknown").Return().Once()

	r := commands.Default(commands.WithCounter(counter))
	dispatch(t, r, newEnv(), "help")
	dispatch(t, r, newEnv(), "what")

	counter.AssertExpectations(t)
}
