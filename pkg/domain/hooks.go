package domain

// LifecycleHooks are optional callbacks fired by the console as the
// session state changes. Nil fields are skipped.
type LifecycleHooks struct {
	OnThemeChange    func(theme Theme)
	OnLanguageChange func(code string)
	OnVideoStart     func(overlay string)
	OnVideoStop      func()
}

// Fire calls the hook matching ev, if any.
func (h LifecycleHooks) Fire(ev Event) {
	switch {
	case ev.Type == EventTheme && h.OnThemeChange != nil:
		h.OnThemeChange(ev.Theme)
	case ev.Type == EventLanguage && h.OnLanguageChange != nil:
		h.OnLanguageChange(ev.Language)
	case ev.Type == EventVideoStart && h.OnVideoStart != nil:
		h.OnVideoStart(ev.Overlay)
	case ev.Type == EventVideoStop && h.OnVideoStop != nil:
		h.OnVideoStop()
	}
}
