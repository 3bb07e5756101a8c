package domain

import "log/slog"

// StateDiff represents the changes between two states.
// It is designed to be serialized to JSON for partial updates on the client.
type StateDiff struct {
	Language *string     `json:"language,omitempty"`
	Theme    *Theme      `json:"theme,omitempty"`
	Video    *VideoState `json:"video,omitempty"`
}

// Diff calculates the difference between oldState and newState.
// If oldState is nil, it returns a diff representing the entire newState (initial load).
func Diff(oldState, newState *State) *StateDiff {
	if newState == nil {
		return nil
	}

	diff := &StateDiff{}
	if oldState == nil || oldState.Language != newState.Language {
		lang := newState.Language
		diff.Language = &lang
	}
	if oldState == nil || oldState.Theme != newState.Theme {
		theme := newState.Theme
		diff.Theme = &theme
	}
	if oldState == nil || oldState.Video != newState.Video {
		video := newState.Video
		diff.Video = &video
	}

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *StateDiff) IsEmpty() bool {
	return d.Language == nil && d.Theme == nil && d.Video == nil
}

// LogValue lists only the changed fields.
func (d *StateDiff) LogValue() slog.Value {
	var attrs []slog.Attr
	if d.Language != nil {
		attrs = append(attrs, slog.String("language", *d.Language))
	}
	if d.Theme != nil {
		attrs = append(attrs, slog.String("theme", string(*d.Theme)))
	}
	if d.Video != nil {
		attrs = append(attrs, slog.Bool("video", d.Video.Playing))
	}
	return slog.GroupValue(attrs...)
}
