package console

import "github.com/simplets-git/simplets/pkg/domain"

// Menu is an open modal menu and its cursor.
type Menu struct {
	Request domain.MenuRequest
	Cursor  int
}

// Up moves the cursor, wrapping from the first item to the last.
func (m *Menu) Up() {
	n := len(m.Request.Items)
	if n == 0 {
		return
	}
	m.Cursor = (m.Cursor - 1 + n) % n
}

// Down moves the cursor, wrapping from the last item to the first.
func (m *Menu) Down() {
	n := len(m.Request.Items)
	if n == 0 {
		return
	}
	m.Cursor = (m.Cursor + 1) % n
}

// Selected returns the item under the cursor.
func (m *Menu) Selected() (domain.MenuItem, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Request.Items) {
		return domain.MenuItem{}, false
	}
	return m.Request.Items[m.Cursor], true
}
