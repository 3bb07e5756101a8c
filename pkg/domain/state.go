package domain

// Mode is the input state of the console.
type Mode string

const (
	ModeBooting     Mode = "booting"      // Loading screen, keys are ignored
	ModeLineEditing Mode = "line_editing" // Keys edit the prompt line
	ModeMenu        Mode = "menu"         // Keys navigate a modal menu
)

// VideoState tracks the background video toggle.
type VideoState struct {
	Playing bool   `json:"playing"`
	Overlay string `json:"overlay,omitempty"`
}

// State captures the session settings commands may change.
type State struct {
	Language string     `json:"language"`
	Theme    Theme      `json:"theme"`
	Video    VideoState `json:"video"`
	Username string     `json:"username"`
	Hostname string     `json:"hostname"`
}

// NewState creates the default session: English, dark theme, no video.
func NewState() *State {
	return &State{
		Language: "en",
		Theme:    ThemeDark,
		Username: "anonymous",
		Hostname: "simplets",
	}
}

// Snapshot returns an independent copy of the state.
func (s *State) Snapshot() *State {
	if s == nil {
		return nil
	}
	cp := *s
	return &cp
}

// Prompt renders the "[user]:~$" prefix.
func (s *State) Prompt() string {
	return "[" + s.Username + "]:~$"
}
