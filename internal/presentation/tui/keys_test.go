package tui

import (
	"testing"

	"github.com/eiannone/keyboard"
	"github.com/stretchr/testify/assert"

	"github.com/simplets-git/simplets/pkg/domain"
)

func TestMapKey(t *testing.T) {
	tests := []struct {
		name string
		r    rune
		k    keyboard.Key
		want domain.Key
		ok   bool
	}{
		{"Rune", 'x', 0, domain.RuneKey('x'), true},
		{"Unicode", 'ü', 0, domain.RuneKey('ü'), true},
		{"Space", 0, keyboard.KeySpace, domain.RuneKey(' '), true},
		{"Enter", 0, keyboard.KeyEnter, domain.Key{Type: domain.KeyEnter}, true},
		{"Backspace", 0, keyboard.KeyBackspace, domain.Key{Type: domain.KeyBackspace}, true},
		{"Backspace2", 0, keyboard.KeyBackspace2, domain.Key{Type: domain.KeyBackspace}, true},
		{"Delete", 0, keyboard.KeyDelete, domain.Key{Type: domain.KeyDelete}, true},
		{"Up", 0, keyboard.KeyArrowUp, domain.Key{Type: domain.KeyUp}, true},
		{"Down", 0, keyboard.KeyArrowDown, domain.Key{Type: domain.KeyDown}, true},
		{"Left", 0, keyboard.KeyArrowLeft, domain.Key{Type: domain.KeyLeft}, true},
		{"Right", 0, keyboard.KeyArrowRight, domain.Key{Type: domain.KeyRight}, true},
		{"Home", 0, keyboard.KeyHome, domain.Key{Type: domain.KeyHome}, true},
		{"CtrlA", 0, keyboard.KeyCtrlA, domain.Key{Type: domain.KeyHome}, true},
		{"End", 0, keyboard.KeyEnd, domain.Key{Type: domain.KeyEnd}, true},
		{"Esc", 0, keyboard.KeyEsc, domain.Key{Type: domain.KeyEscape}, true},
		{"Tab", 0, keyboard.KeyTab, domain.Key{Type: domain.KeyTab}, true},
		{"CtrlC", 0, keyboard.KeyCtrlC, domain.Key{Type: domain.KeyCtrlC}, true},
		{"CtrlL", 0, keyboard.KeyCtrlL, domain.Key{Type: domain.KeyCtrlL}, true},
		{"CtrlT", 0, keyboard.KeyCtrlT, domain.Key{Type: domain.KeyCtrlT}, true},
		{"CtrlU", 0, keyboard.KeyCtrlU, domain.Key{Type: domain.KeyCtrlU}, true},
		{"F1 ignored", 0, keyboard.KeyF1, domain.Key{}, false},
		{"Nothing", 0, 0, domain.Key{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MapKey(tt.r, tt.k)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
