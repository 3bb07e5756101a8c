package observability

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/simplets-git/simplets/pkg/domain"
)

// Metrics counts command dispatches and state changes of one session.
type Metrics struct {
	registry        *prometheus.Registry
	commands        *prometheus.CounterVec
	themeToggles    prometheus.Counter
	languageChanges *prometheus.CounterVec
	videoStarts     prometheus.Counter
	session         prometheus.Gauge

	started time.Time
}

// NewMetrics creates the collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "simplets_commands_total",
				Help: "Total number of dispatched commands",
			},
			[]string{"command"},
		),
		themeToggles: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "simplets_theme_toggles_total",
			Help: "Total number of theme switches",
		}),
		languageChanges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "simplets_language_changes_total",
				Help: "Total number of language switches by target language",
			},
			[]string{"language"},
		),
		videoStarts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "simplets_video_starts_total",
			Help: "Total number of background video starts",
		}),
		session: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "simplets_session_seconds",
			Help: "Duration of the terminal session",
		}),
		started: time.Now(),
	}
	m.registry.MustRegister(m.commands, m.themeToggles, m.languageChanges, m.videoStarts, m.session)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// CommandDispatched implements commands.Counter.
func (m *Metrics) CommandDispatched(name string) {
	m.commands.WithLabelValues(name).Inc()
}

// Hooks returns the console callbacks feeding these metrics.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnThemeChange: func(domain.Theme) {
			m.themeToggles.Inc()
		},
		OnLanguageChange: func(code string) {
			m.languageChanges.WithLabelValues(code).Inc()
		},
		OnVideoStart: func(string) {
			m.videoStarts.Inc()
		},
	}
}

// Finish records the session duration up to now.
func (m *Metrics) Finish() {
	m.session.Set(time.Since(m.started).Seconds())
}

// WriteFile records the session duration and writes the registry to path.
func (m *Metrics) WriteFile(path string) error {
	m.Finish()
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}
