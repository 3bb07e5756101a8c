package console

// Editor is the buffer of the editable prompt line.
// The cursor is a rune offset in [0, len(buf)].
type Editor struct {
	buf    []rune
	cursor int
}

func (e *Editor) Insert(r rune) {
	e.buf = append(e.buf, 0)
	copy(e.buf[e.cursor+1:], e.buf[e.cursor:])
	e.buf[e.cursor] = r
	e.cursor++
}

// Backspace removes the rune before the cursor.
func (e *Editor) Backspace() {
	if e.cursor == 0 {
		return
	}
	e.buf = append(e.buf[:e.cursor-1], e.buf[e.cursor:]...)
	e.cursor--
}

// Delete removes the rune under the cursor.
func (e *Editor) Delete() {
	if e.cursor >= len(e.buf) {
		return
	}
	e.buf = append(e.buf[:e.cursor], e.buf[e.cursor+1:]...)
}

func (e *Editor) Left() {
	if e.cursor > 0 {
		e.cursor--
	}
}

func (e *Editor) Right() {
	if e.cursor < len(e.buf) {
		e.cursor++
	}
}

func (e *Editor) Home() { e.cursor = 0 }

func (e *Editor) End() { e.cursor = len(e.buf) }

// Set replaces the buffer and moves the cursor to its end.
func (e *Editor) Set(s string) {
	e.buf = []rune(s)
	e.cursor = len(e.buf)
}

func (e *Editor) Clear() {
	e.buf = e.buf[:0]
	e.cursor = 0
}

func (e *Editor) String() string { return string(e.buf) }

func (e *Editor) Cursor() int { return e.cursor }
