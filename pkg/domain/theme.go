package domain

import (
	"fmt"
	"strings"
)

// Theme is the colour scheme of the terminal.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// ParseTheme accepts "dark" or "light" in any case.
func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeDark, "":
		return ThemeDark, nil
	case ThemeLight:
		return ThemeLight, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTheme, s)
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

// Label is the human name shown after a theme switch.
func (t Theme) Label() string {
	if t == ThemeLight {
		return "Light"
	}
	return "Dark"
}

// IsLight reports whether the light scheme is active.
func (t Theme) IsLight() bool { return t == ThemeLight }
