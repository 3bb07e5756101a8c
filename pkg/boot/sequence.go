// Package boot plays the scripted loading screen shown before the
// terminal becomes interactive.
package boot

import (
	"context"
	"sort"
	"sync"
	"time"
)

const (
	DefaultDuration = 4 * time.Second
	DefaultInterval = 1500 * time.Millisecond
)

// LoadingTexts rotate under the banner while booting.
var LoadingTexts = []string{
	"Initializing SIMPLETS kernel...",
	"Loading system modules...",
	"Configuring network interfaces...",
	"Mounting filesystems...",
	"Authenticating system...",
	"Preparing terminal environment...",
}

// StepKind identifies what a step reveals.
type StepKind string

const (
	StepLogo StepKind = "logo" // The □_□ logo fades in
	StepArt  StepKind = "art"  // The ASCII banner fades in
	StepText StepKind = "text" // A loading text replaces the previous one
)

// Step is one point of the boot timeline.
type Step struct {
	At   time.Duration
	Kind StepKind
	Text string
}

// Reporter receives the boot progress.
type Reporter interface {
	Start(total int)
	Step(index int, step Step)
	Finish()
}

// Sequence is a single run of the loading screen.
type Sequence struct {
	Duration time.Duration
	Interval time.Duration
	Texts    []string

	skip     chan struct{}
	skipOnce sync.Once
}

// Option configures the Sequence.
type Option func(*Sequence)

// WithDuration sets the time until the terminal appears.
func WithDuration(d time.Duration) Option {
	return func(s *Sequence) { s.Duration = d }
}

// WithInterval sets the loading text rotation period.
func WithInterval(d time.Duration) Option {
	return func(s *Sequence) { s.Interval = d }
}

// WithTexts replaces the loading texts.
func WithTexts(texts []string) Option {
	return func(s *Sequence) { s.Texts = texts }
}

// New creates a sequence with the default timings.
func New(opts ...Option) *Sequence {
	s := &Sequence{
		Duration: DefaultDuration,
		Interval: DefaultInterval,
		Texts:    LoadingTexts,
		skip:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Steps returns the timeline. The logo and banner reveals keep their
// share of the total duration; the first loading text shows at once.
func (s *Sequence) Steps() []Step {
	var steps []Step
	if s.Duration <= 0 {
		return steps
	}
	steps = append(steps,
		Step{At: s.Duration * 300 / 4000, Kind: StepLogo},
		Step{At: s.Duration * 500 / 4000, Kind: StepArt},
	)
	if len(s.Texts) > 0 && s.Interval > 0 {
		for i, at := 0, time.Duration(0); at < s.Duration; i, at = i+1, at+s.Interval {
			steps = append(steps, Step{At: at, Kind: StepText, Text: s.Texts[i%len(s.Texts)]})
		}
	}
	sort.SliceStable(steps, func(i, j int) bool { return steps[i].At < steps[j].At })
	return steps
}

// Skip ends a running sequence early. Safe to call more than once and
// from any goroutine.
func (s *Sequence) Skip() {
	s.skipOnce.Do(func() { close(s.skip) })
}

// Run plays the timeline on r. It returns nil when the sequence completes
// or is skipped, and the context error when ctx is cancelled first.
func (s *Sequence) Run(ctx context.Context, r Reporter) error {
	steps := s.Steps()
	r.Start(len(steps))
	defer r.Finish()

	start := time.Now()
	timer := time.NewTimer(s.Duration)
	timer.Stop()
	defer timer.Stop()

	wait := func(until time.Duration) (bool, error) {
		d := until - time.Since(start)
		if d <= 0 {
			return true, nil
		}
		timer.Reset(d)
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-s.skip:
			return false, nil
		case <-timer.C:
			return true, nil
		}
	}

	for i, step := range steps {
		ok, err := wait(step.At)
		if !ok {
			return err
		}
		r.Step(i, step)
	}
	_, err := wait(s.Duration)
	return err
}
