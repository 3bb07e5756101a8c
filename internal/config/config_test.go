package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/simplets-git/simplets/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "simplets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "anonymous", cfg.Username)
	assert.Equal(t, "en", cfg.Language)
	assert.Equal(t, "dark", cfg.Theme)
	assert.Equal(t, 4*time.Second, cfg.Boot.Duration)
	assert.Equal(t, 1500*time.Millisecond, cfg.Boot.Interval)
	assert.Equal(t, 100*time.Millisecond, cfg.Wave.Interval)
	assert.InDelta(t, 0.0125, cfg.Wave.ChangeProbability, 1e-9)
	assert.InDelta(t, 0.3, cfg.Wave.BlankProbability, 1e-9)
}

func TestLoad_File(t *testing.T) {
	path := writeFile(t, `
username: neo
theme: light
history_size: 5
boot:
  duration: 2s
wave:
  enabled: false
video:
  player: mpv
  args: [--no-terminal, --loop=no]
  path: /tmp/intro.mp4
  duration: 30s
`)
	cfg, err := load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "neo", cfg.Username)
	assert.Equal(t, "light", cfg.Theme)
	assert.Equal(t, 5, cfg.HistorySize)
	assert.Equal(t, 2*time.Second, cfg.Boot.Duration)
	assert.True(t, cfg.Boot.Enabled, "unset keys keep their defaults")
	assert.Equal(t, 1500*time.Millisecond, cfg.Boot.Interval)
	assert.False(t, cfg.Wave.Enabled)
	assert.Equal(t, []string{"--no-terminal", "--loop=no"}, cfg.Video.Args)
	assert.Equal(t, 30*time.Second, cfg.Video.Duration)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "language: de\nboot:\n  duration: 2s\n")
	cfg, err := load(path, []string{
		"SIMPLETS_LANGUAGE=fr",
		"SIMPLETS_BOOT_ENABLED=false",
		"SIMPLETS_HISTORY_SIZE=7",
		"SIMPLETS_WAVE_BLANK_PROBABILITY=0.5",
		"SIMPLETS_VIDEO_ARGS=--fs,--mute",
		"SIMPLETS_UNKNOWN=ignored",
		"PATH=/bin",
	})
	require.NoError(t, err)

	assert.Equal(t, "fr", cfg.Language)
	assert.False(t, cfg.Boot.Enabled)
	assert.Equal(t, 2*time.Second, cfg.Boot.Duration)
	assert.Equal(t, 7, cfg.HistorySize)
	assert.InDelta(t, 0.5, cfg.Wave.BlankProbability, 1e-9)
	assert.Equal(t, []string{"--fs", "--mute"}, cfg.Video.Args)
}

func TestLoad_Errors(t *testing.T) {
	_, err := load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)

	_, err = load(writeFile(t, "colour: blue\n"), nil)
	assert.ErrorContains(t, err, "colour")

	_, err = load(writeFile(t, "boot: [1, 2\n"), nil)
	assert.Error(t, err)

	_, err = load("", []string{"SIMPLETS_BOOT_DURATION=soon"})
	assert.ErrorContains(t, err, "environment")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Theme = "sepia"
	cfg.Language = "xx"
	cfg.HistorySize = -1
	cfg.Boot.Interval = -time.Second
	cfg.Wave.ChangeProbability = 1.5

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidTheme)
	assert.ErrorIs(t, err, domain.ErrInvalidLanguage)
	assert.ErrorContains(t, err, "history_size")
	assert.ErrorContains(t, err, "boot.interval")
	assert.ErrorContains(t, err, "wave.change_probability")
}

func TestState(t *testing.T) {
	cfg := Default()
	cfg.Username = "trinity"
	cfg.Language = "DE"
	cfg.Theme = "Light"

	s, err := cfg.State()
	require.NoError(t, err)
	assert.Equal(t, "[trinity]:~$", s.Prompt())
	assert.Equal(t, "de", s.Language)
	assert.Equal(t, domain.ThemeLight, s.Theme)
}
