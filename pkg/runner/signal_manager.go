package runner

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// SignalManager turns SIGINT and SIGTERM into context cancellation for the
// line loop, and papers over the platform race where Ctrl+C surfaces as an
// input error before the signal itself.
type SignalManager struct {
	parent context.Context
	ctx    context.Context
	cancel context.CancelFunc
}

// NewSignalManager starts listening for signals on top of parent.
func NewSignalManager(parent context.Context) *SignalManager {
	sm := &SignalManager{parent: parent}
	sm.Reset()
	return sm
}

// Context returns the current signal context.
func (sm *SignalManager) Context() context.Context {
	return sm.ctx
}

// Reset re-arms the signal listener.
func (sm *SignalManager) Reset() {
	if sm.cancel != nil {
		sm.cancel()
	}
	sm.ctx, sm.cancel = signal.NotifyContext(sm.parent, os.Interrupt, syscall.SIGTERM)
}

// Stop permanently stops the signal listener.
func (sm *SignalManager) Stop() {
	if sm.cancel != nil {
		sm.cancel()
	}
}

// CheckRace waits briefly to see if a cancellation follows an input error.
func (sm *SignalManager) CheckRace() {
	if sm.ctx.Err() == nil {
		select {
		case <-sm.ctx.Done():
		case <-time.After(100 * time.Millisecond):
		}
	}
}
