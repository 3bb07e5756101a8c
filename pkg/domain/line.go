package domain

// LineKind classifies transcript lines for rendering.
type LineKind string

const (
	LineWelcome  LineKind = "welcome"
	LinePrompt   LineKind = "prompt"
	LineResponse LineKind = "response"
	LineSystem   LineKind = "system"
	LineError    LineKind = "error"
)

// Pair holds the alphabet indices of a character-pair artwork.
// Only indices are kept so the art can be redrawn for another theme.
type Pair struct {
	Left  int `json:"left"`
	Right int `json:"right"`
}

// Line is one entry of the terminal transcript.
type Line struct {
	Kind LineKind `json:"kind"`

	// Prompt is the "[user]:~$" prefix of prompt lines.
	Prompt string `json:"prompt,omitempty"`

	// Text is the typed command for prompt lines and Markdown otherwise.
	Text string `json:"text"`

	// Pairs are character pairs drawn alongside the text.
	Pairs []Pair `json:"pairs,omitempty"`

	// Editable marks the single line currently accepting keystrokes.
	Editable bool `json:"editable,omitempty"`
}
