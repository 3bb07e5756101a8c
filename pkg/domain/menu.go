package domain

// MenuKind tells the console what selecting an item means.
type MenuKind string

const (
	// MenuCommands runs the selected item as a typed command.
	MenuCommands MenuKind = "commands"
	// MenuContent prints the selected item's body.
	MenuContent MenuKind = "content"
)

// MenuItem is one selectable entry.
type MenuItem struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// MenuRequest asks the console to enter menu navigation mode.
type MenuRequest struct {
	Kind  MenuKind   `json:"kind"`
	Title string     `json:"title"`
	Items []MenuItem `json:"items"`
}
