package boot

import (
	"io"
	"log/slog"

	"github.com/schollz/progressbar/v3"
)

// SpinnerReporter shows the loading texts on a progress bar.
type SpinnerReporter struct {
	w   io.Writer
	bar *progressbar.ProgressBar
}

// NewSpinnerReporter writes the bar to w, usually stderr.
func NewSpinnerReporter(w io.Writer) *SpinnerReporter {
	return &SpinnerReporter{w: w}
}

func (r *SpinnerReporter) Start(total int) {
	r.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(r.w),
		progressbar.OptionSetDescription("Booting"),
		progressbar.OptionSetWidth(30),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *SpinnerReporter) Step(index int, step Step) {
	if r.bar == nil {
		return
	}
	if step.Kind == StepText {
		r.bar.Describe(step.Text)
	}
	_ = r.bar.Set(index + 1)
}

func (r *SpinnerReporter) Finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}

// LogReporter logs each loading text, for non-interactive output.
type LogReporter struct {
	Logger *slog.Logger
}

func (r *LogReporter) Start(total int) {
	r.Logger.Debug("boot started", "steps", total)
}

func (r *LogReporter) Step(index int, step Step) {
	if step.Kind == StepText {
		r.Logger.Info(step.Text)
	}
}

func (r *LogReporter) Finish() {
	r.Logger.Debug("boot finished")
}
