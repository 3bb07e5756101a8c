package cli

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simplets-git/simplets/internal/config"
	"github.com/simplets-git/simplets/internal/logging"
	"github.com/simplets-git/simplets/pkg/domain"
	"github.com/simplets-git/simplets/pkg/observability"
)

func TestCreateConsole(t *testing.T) {
	cfg := config.Default()
	cfg.Username = "neo"
	cfg.Theme = "light"
	metrics := observability.NewMetrics()

	c, err := createConsole(cfg, logging.NewNop(), metrics)
	require.NoError(t, err)
	assert.Equal(t, "[neo]:~$", c.State().Prompt())
	assert.Equal(t, domain.ThemeLight, c.State().Theme)

	c.Start()
	_, err = c.Submit(t.Context(), "about")
	require.NoError(t, err)
	_, err = c.Submit(t.Context(), "theme")
	require.NoError(t, err)

	count, err := testutil.GatherAndCount(metrics.Registry(), "simplets_commands_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	count, err = testutil.GatherAndCount(metrics.Registry(), "simplets_theme_toggles_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCreateConsole_InvalidTheme(t *testing.T) {
	cfg := config.Default()
	cfg.Theme = "sepia"
	_, err := createConsole(cfg, logging.NewNop(), nil)
	assert.Error(t, err)
}

func TestCreateBoot(t *testing.T) {
	cfg := config.Default()
	seq := createBoot(cfg)
	require.NotNil(t, seq)
	assert.Equal(t, cfg.Boot.Duration, seq.Duration)

	cfg.Boot.Enabled = false
	assert.Nil(t, createBoot(cfg))
}

func TestChainHooks(t *testing.T) {
	var calls []string
	a := domain.LifecycleHooks{
		OnThemeChange: func(domain.Theme) { calls = append(calls, "a") },
	}
	b := domain.LifecycleHooks{
		OnThemeChange: func(domain.Theme) { calls = append(calls, "b") },
		OnVideoStop:   func() { calls = append(calls, "b-stop") },
	}

	h := chainHooks(a, b)
	h.Fire(domain.Event{Type: domain.EventTheme, Theme: domain.ThemeLight})
	h.Fire(domain.Event{Type: domain.EventVideoStop})

	assert.Equal(t, []string{"a", "b", "b-stop"}, calls)
}
