// Package config loads the terminal settings: defaults, then an optional
// YAML file, then SIMPLETS_* environment variables. Flags are applied by
// the CLI on top.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/simplets-git/simplets/pkg/boot"
	"github.com/simplets-git/simplets/pkg/domain"
	"github.com/simplets-git/simplets/pkg/i18n"
	"github.com/simplets-git/simplets/pkg/wave"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read when no path is given and it exists in the working directory.
const DefaultFile = "simplets.yaml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SIMPLETS_"

// Config holds every setting of a session.
type Config struct {
	Username    string      `mapstructure:"username" yaml:"username"`
	Hostname    string      `mapstructure:"hostname" yaml:"hostname"`
	Language    string      `mapstructure:"language" yaml:"language"`
	Theme       string      `mapstructure:"theme" yaml:"theme"`
	HistorySize int         `mapstructure:"history_size" yaml:"history_size"`
	Boot        BootConfig  `mapstructure:"boot" yaml:"boot"`
	Wave        WaveConfig  `mapstructure:"wave" yaml:"wave"`
	Video       VideoConfig `mapstructure:"video" yaml:"video"`
	MetricsFile string      `mapstructure:"metrics_file" yaml:"metrics_file"`
}

type BootConfig struct {
	Enabled  bool          `mapstructure:"enabled" yaml:"enabled"`
	Duration time.Duration `mapstructure:"duration" yaml:"duration"`
	Interval time.Duration `mapstructure:"interval" yaml:"interval"`
}

type WaveConfig struct {
	Enabled           bool          `mapstructure:"enabled" yaml:"enabled"`
	Interval          time.Duration `mapstructure:"interval" yaml:"interval"`
	ChangeProbability float64       `mapstructure:"change_probability" yaml:"change_probability"`
	BlankProbability  float64       `mapstructure:"blank_probability" yaml:"blank_probability"`
}

// VideoConfig describes the optional external player.
type VideoConfig struct {
	Path     string        `mapstructure:"path" yaml:"path"`
	Player   string        `mapstructure:"player" yaml:"player"`
	Args     []string      `mapstructure:"args" yaml:"args"`
	Duration time.Duration `mapstructure:"duration" yaml:"duration"`
}

// Keys lists every settable key in dotted form.
var Keys = []string{
	"username", "hostname", "language", "theme", "history_size",
	"boot.enabled", "boot.duration", "boot.interval",
	"wave.enabled", "wave.interval", "wave.change_probability", "wave.blank_probability",
	"video.path", "video.player", "video.args", "video.duration",
	"metrics_file",
}

// Default returns the built-in settings.
func Default() Config {
	state := domain.NewState()
	return Config{
		Username:    state.Username,
		Hostname:    state.Hostname,
		Language:    state.Language,
		Theme:       string(state.Theme),
		HistorySize: 100,
		Boot: BootConfig{
			Enabled:  true,
			Duration: boot.DefaultDuration,
			Interval: boot.DefaultInterval,
		},
		Wave: WaveConfig{
			Enabled:           true,
			Interval:          wave.DefaultInterval,
			ChangeProbability: wave.DefaultChangeProbability,
			BlankProbability:  wave.DefaultBlankProbability,
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path and
// the environment. An empty path reads DefaultFile when present.
func Load(path string) (Config, error) {
	return load(path, os.Environ())
}

func load(path string, environ []string) (Config, error) {
	cfg := Default()

	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config: %w", err)
		}
		if err := Parse(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if err := decode(envMap(environ), &cfg); err != nil {
		return cfg, fmt.Errorf("invalid environment override: %w", err)
	}
	return cfg, nil
}

// Parse decodes YAML data over cfg. Unknown keys are rejected.
func Parse(data []byte, cfg *Config) error {
	raw := make(map[string]any)
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}
	return decode(raw, cfg)
}

func decode(raw map[string]any, cfg *Config) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           cfg,
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}

// envMap turns SIMPLETS_BOOT_DURATION=2s into {"boot": {"duration": "2s"}}
// for every known key.
func envMap(environ []string) map[string]any {
	values := make(map[string]string, len(environ))
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			values[k] = v
		}
	}

	out := make(map[string]any)
	for _, key := range Keys {
		name := EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		v, ok := values[name]
		if !ok {
			continue
		}
		section, field, nested := strings.Cut(key, ".")
		if !nested {
			out[key] = v
			continue
		}
		m, _ := out[section].(map[string]any)
		if m == nil {
			m = make(map[string]any)
			out[section] = m
		}
		m[field] = v
	}
	return out
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if _, err := domain.ParseTheme(c.Theme); err != nil {
		errs = append(errs, err)
	}
	if !i18n.Valid(strings.ToLower(c.Language)) {
		errs = append(errs, fmt.Errorf("%w: %q", domain.ErrInvalidLanguage, c.Language))
	}
	if c.Username == "" {
		errs = append(errs, errors.New("username must not be empty"))
	}
	if c.HistorySize < 0 {
		errs = append(errs, fmt.Errorf("history_size must not be negative, got %d", c.HistorySize))
	}
	for key, d := range map[string]time.Duration{
		"boot.duration":  c.Boot.Duration,
		"boot.interval":  c.Boot.Interval,
		"wave.interval":  c.Wave.Interval,
		"video.duration": c.Video.Duration,
	} {
		if d < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %s", key, d))
		}
	}
	for key, p := range map[string]float64{
		"wave.change_probability": c.Wave.ChangeProbability,
		"wave.blank_probability":  c.Wave.BlankProbability,
	} {
		if p < 0 || p > 1 {
			errs = append(errs, fmt.Errorf("%s must be within [0,1], got %g", key, p))
		}
	}
	return errors.Join(errs...)
}

// State builds the initial session state.
func (c Config) State() (*domain.State, error) {
	theme, err := domain.ParseTheme(c.Theme)
	if err != nil {
		return nil, err
	}
	s := domain.NewState()
	s.Username = c.Username
	s.Hostname = c.Hostname
	s.Language = strings.ToLower(c.Language)
	s.Theme = theme
	return s, nil
}
