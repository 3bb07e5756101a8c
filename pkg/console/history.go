package console

// DefaultHistorySize bounds the command history when no size is configured.
const DefaultHistorySize = 100

// History keeps submitted commands, oldest first.
// Walking it with Prev/Next remembers the draft that was being typed.
type History struct {
	entries []string
	limit   int
	pos     int
	draft   string
}

// NewHistory creates a history holding at most limit entries.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistorySize
	}
	return &History{limit: limit}
}

// Add appends cmd unless it is empty or repeats the newest entry,
// then resets the walk position.
func (h *History) Add(cmd string) {
	defer h.Reset()
	if cmd == "" {
		return
	}
	if n := len(h.entries); n > 0 && h.entries[n-1] == cmd {
		return
	}
	h.entries = append(h.entries, cmd)
	if over := len(h.entries) - h.limit; over > 0 {
		h.entries = append(h.entries[:0], h.entries[over:]...)
	}
}

// Prev moves to the older entry. current is saved as the draft when
// the walk starts.
func (h *History) Prev(current string) (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	if h.pos == len(h.entries) {
		h.draft = current
	}
	if h.pos > 0 {
		h.pos--
	}
	return h.entries[h.pos], true
}

// Next moves to the newer entry; past the newest it returns the draft.
func (h *History) Next() (string, bool) {
	if h.pos >= len(h.entries) {
		return "", false
	}
	h.pos++
	if h.pos == len(h.entries) {
		return h.draft, true
	}
	return h.entries[h.pos], true
}

// Reset ends the current walk.
func (h *History) Reset() {
	h.pos = len(h.entries)
	h.draft = ""
}

// Entries returns a copy of the stored commands.
func (h *History) Entries() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

func (h *History) Len() int { return len(h.entries) }
