package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"golang.org/x/term"

	"github.com/simplets-git/simplets/internal/logging"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	start  sync.Once
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	sc.start.Do(func() {
		signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case sig := <-sc.sigCh:
				sc.mu.Lock()
				sc.sigVal = sig
				sc.mu.Unlock()
				sc.Cancel()
			case <-sc.Context.Done():
			}
			sc.stop.Do(func() {
				signal.Stop(sc.sigCh)
			})
		}()
	})

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// createLogger configures the application logger.
// Without debug nothing is logged. With a log file, records go there so
// they cannot tear the full-screen terminal; otherwise they go to Stderr.
func createLogger(debug bool, logFile string) (*slog.Logger, io.Closer, error) {
	if !debug {
		return logging.NewNop(), nopCloser{}, nil
	}
	if logFile != "" {
		return logging.OpenFile(logFile, slog.LevelDebug)
	}
	return logging.New(slog.LevelDebug), nopCloser{}, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "[System] %s\n", fmt.Sprintf(format, args...))
}

// isTerminal reports whether both stdin and stdout are interactive.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// terminalWidth returns the stdout width, or fallback when unknown.
func terminalWidth(fallback int) int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}

func isInterrupted(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, context.Canceled) || errors.Is(err, io.EOF)
}

func handleExecutionError(err error) error {
	if err == nil {
		return nil
	}
	if isInterrupted(err) {
		return nil // Exit 0 for interruptions
	}
	return err
}

// logCompletion tells the user how the session ended.
func logCompletion(w io.Writer, err error, quiet bool, sig os.Signal) {
	if quiet || sig == nil {
		return
	}
	if err != nil && !isInterrupted(err) {
		return
	}
	if sig == os.Interrupt {
		fmt.Fprintf(w, "[CTRL+C]\n")
		printSystemMessage(w, "Interrupted.")
		return
	}
	fmt.Fprintln(w)
	printSystemMessage(w, "Terminated.")
}
