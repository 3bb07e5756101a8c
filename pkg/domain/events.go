package domain

// EventType defines what the host must do.
type EventType string

const (
	EventOutput     EventType = "output"      // Append Line to the transcript
	EventClear      EventType = "clear"       // Reset the transcript
	EventTheme      EventType = "theme"       // Theme changed, redraw pairs
	EventLanguage   EventType = "language"    // Language changed
	EventVideoStart EventType = "video_start" // Start background video
	EventVideoStop  EventType = "video_stop"  // Stop background video
	EventMenuOpen   EventType = "menu_open"   // Menu mode entered
	EventMenuClose  EventType = "menu_close"  // Menu mode left
	EventExit       EventType = "exit"        // End the session
)

// Event is produced by the console after each step.
type Event struct {
	Type     EventType    `json:"type"`
	Line     *Line        `json:"line,omitempty"`
	Theme    Theme        `json:"theme,omitempty"`
	Language string       `json:"language,omitempty"`
	Overlay  string       `json:"overlay,omitempty"`
	Menu     *MenuRequest `json:"menu,omitempty"`
}

// OutputEvent wraps a line in an output event.
func OutputEvent(line Line) Event {
	return Event{Type: EventOutput, Line: &line}
}
