package tui

import (
	"github.com/eiannone/keyboard"
	"github.com/simplets-git/simplets/pkg/domain"
)

// MapKey converts a key read by the keyboard package. It reports false for
// keys the console has no use for.
func MapKey(r rune, k keyboard.Key) (domain.Key, bool) {
	if k == 0 {
		if r == 0 {
			return domain.Key{}, false
		}
		return domain.RuneKey(r), true
	}

	switch k {
	case keyboard.KeySpace:
		return domain.RuneKey(' '), true
	case keyboard.KeyEnter:
		return domain.Key{Type: domain.KeyEnter}, true
	case keyboard.KeyBackspace, keyboard.KeyBackspace2:
		return domain.Key{Type: domain.KeyBackspace}, true
	case keyboard.KeyDelete:
		return domain.Key{Type: domain.KeyDelete}, true
	case keyboard.KeyArrowLeft:
		return domain.Key{Type: domain.KeyLeft}, true
	case keyboard.KeyArrowRight:
		return domain.Key{Type: domain.KeyRight}, true
	case keyboard.KeyArrowUp:
		return domain.Key{Type: domain.KeyUp}, true
	case keyboard.KeyArrowDown:
		return domain.Key{Type: domain.KeyDown}, true
	case keyboard.KeyHome, keyboard.KeyCtrlA:
		return domain.Key{Type: domain.KeyHome}, true
	case keyboard.KeyEnd, keyboard.KeyCtrlE:
		return domain.Key{Type: domain.KeyEnd}, true
	case keyboard.KeyEsc:
		return domain.Key{Type: domain.KeyEscape}, true
	case keyboard.KeyTab:
		return domain.Key{Type: domain.KeyTab}, true
	case keyboard.KeyCtrlC:
		return domain.Key{Type: domain.KeyCtrlC}, true
	case keyboard.KeyCtrlL:
		return domain.Key{Type: domain.KeyCtrlL}, true
	case keyboard.KeyCtrlT:
		return domain.Key{Type: domain.KeyCtrlT}, true
	case keyboard.KeyCtrlU:
		return domain.Key{Type: domain.KeyCtrlU}, true
	}
	return domain.Key{}, false
}

// KeyPress is one raw read from the terminal.
type KeyPress struct {
	Key domain.Key
	Err error
}

// KeyReader delivers key presses until closed.
type KeyReader interface {
	Keys() <-chan KeyPress
	Close() error
}

// KeySource reads the terminal in raw mode until closed.
type KeySource struct {
	ch   chan KeyPress
	done chan struct{}
}

// OpenKeys puts the terminal in raw mode and starts reading.
func OpenKeys() (*KeySource, error) {
	if err := keyboard.Open(); err != nil {
		return nil, err
	}
	ch := make(chan KeyPress, 16)
	ks := &KeySource{ch: ch, done: make(chan struct{})}

	go func() {
		for {
			r, k, err := keyboard.GetKey()
			if err != nil {
				select {
				case ch <- KeyPress{Err: err}:
				case <-ks.done:
				}
				return
			}
			key, ok := MapKey(r, k)
			if !ok {
				continue
			}
			select {
			case ch <- KeyPress{Key: key}:
			case <-ks.done:
				return
			}
		}
	}()
	return ks, nil
}

// Keys returns the press channel.
func (ks *KeySource) Keys() <-chan KeyPress { return ks.ch }

// Close restores the terminal.
func (ks *KeySource) Close() error {
	close(ks.done)
	return keyboard.Close()
}
