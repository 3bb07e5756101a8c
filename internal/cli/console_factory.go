package cli

import (
	"fmt"
	"log/slog"

	"github.com/simplets-git/simplets/internal/config"
	"github.com/simplets-git/simplets/pkg/adapters/process"
	"github.com/simplets-git/simplets/pkg/boot"
	"github.com/simplets-git/simplets/pkg/commands"
	"github.com/simplets-git/simplets/pkg/console"
	"github.com/simplets-git/simplets/pkg/domain"
	"github.com/simplets-git/simplets/pkg/observability"
)

// createConsole initializes a console with standard CLI conventions.
func createConsole(cfg config.Config, logger *slog.Logger, metrics *observability.Metrics) (*console.Console, error) {
	state, err := cfg.State()
	if err != nil {
		return nil, fmt.Errorf("error initializing console: %w", err)
	}

	registryOpts := []commands.Option{commands.WithLogger(logger)}
	hooks := debugHooks(logger)
	if metrics != nil {
		registryOpts = append(registryOpts, commands.WithCounter(metrics))
		hooks = chainHooks(hooks, metrics.Hooks())
	}

	return console.New(
		console.WithRegistry(commands.Default(registryOpts...)),
		console.WithState(state),
		console.WithHistorySize(cfg.HistorySize),
		console.WithHooks(hooks),
		console.WithLogger(logger),
	), nil
}

// createPlayer builds the video player. Without a configured player it
// only keeps time.
func createPlayer(cfg config.Config) *process.Player {
	opts := []process.PlayerOption{
		process.WithVideoPath(cfg.Video.Path),
		process.WithDuration(cfg.Video.Duration),
	}
	if cfg.Video.Player != "" {
		opts = append(opts, process.WithCommand(cfg.Video.Player, cfg.Video.Args...))
	}
	return process.NewPlayer(opts...)
}

// createBoot returns the loading sequence, or nil when disabled.
func createBoot(cfg config.Config) *boot.Sequence {
	if !cfg.Boot.Enabled {
		return nil
	}
	return boot.New(
		boot.WithDuration(cfg.Boot.Duration),
		boot.WithInterval(cfg.Boot.Interval),
	)
}

func debugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnThemeChange: func(theme domain.Theme) {
			logger.Debug("Theme Changed", "theme", theme)
		},
		OnLanguageChange: func(code string) {
			logger.Debug("Language Changed", "language", code)
		},
		OnVideoStart: func(overlay string) {
			logger.Debug("Video Started", "overlay", overlay)
		},
		OnVideoStop: func() {
			logger.Debug("Video Stopped")
		},
	}
}

// chainHooks calls every non-nil hook of a, then of b.
func chainHooks(a, b domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnThemeChange: func(theme domain.Theme) {
			if a.OnThemeChange != nil {
				a.OnThemeChange(theme)
			}
			if b.OnThemeChange != nil {
				b.OnThemeChange(theme)
			}
		},
		OnLanguageChange: func(code string) {
			if a.OnLanguageChange != nil {
				a.OnLanguageChange(code)
			}
			if b.OnLanguageChange != nil {
				b.OnLanguageChange(code)
			}
		},
		OnVideoStart: func(overlay string) {
			if a.OnVideoStart != nil {
				a.OnVideoStart(overlay)
			}
			if b.OnVideoStart != nil {
				b.OnVideoStart(overlay)
			}
		},
		OnVideoStop: func() {
			if a.OnVideoStop != nil {
				a.OnVideoStop()
			}
			if b.OnVideoStop != nil {
				b.OnVideoStop()
			}
		},
	}
}
