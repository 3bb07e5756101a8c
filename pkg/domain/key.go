package domain

// KeyType identifies a key press independently of the terminal library.
type KeyType int

const (
	KeyRune KeyType = iota
	KeyEnter
	KeyBackspace
	KeyDelete
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyEscape
	KeyTab
	KeyCtrlC
	KeyCtrlL
	KeyCtrlT
	KeyCtrlU
)

// Key is a single key press. Rune is only meaningful for KeyRune.
type Key struct {
	Type KeyType
	Rune rune
}

// RuneKey builds a printable key press.
func RuneKey(r rune) Key { return Key{Type: KeyRune, Rune: r} }

// KeysFor converts a string into the rune key presses that would type it.
func KeysFor(s string) []Key {
	keys := make([]Key, 0, len(s))
	for _, r := range s {
		keys = append(keys, RuneKey(r))
	}
	return keys
}
