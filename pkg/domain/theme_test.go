package domain

import (
	"errors"
	"testing"
)

func TestParseTheme(t *testing.T) {
	tests := []struct {
		in      string
		want    Theme
		wantErr bool
	}{
		{in: "dark", want: ThemeDark},
		{in: "LIGHT", want: ThemeLight},
		{in: " light ", want: ThemeLight},
		{in: "", want: ThemeDark},
		{in: "solarized", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseTheme(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidTheme) {
				t.Errorf("ParseTheme(%q) err = %v, want ErrInvalidTheme", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseTheme(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestTheme_Toggle(t *testing.T) {
	if ThemeDark.Toggle() != ThemeLight || ThemeLight.Toggle() != ThemeDark {
		t.Fatal("toggle must flip between dark and light")
	}
	if ThemeDark.Label() != "Dark" || ThemeLight.Label() != "Light" {
		t.Fatal("unexpected labels")
	}
}

func TestState_SnapshotIsIndependent(t *testing.T) {
	s := NewState()
	cp := s.Snapshot()
	cp.Language = "de"
	cp.Video.Playing = true

	if s.Language != "en" || s.Video.Playing {
		t.Errorf("snapshot mutated the original: %+v", s)
	}
	if s.Prompt() != "[anonymous]:~$" {
		t.Errorf("unexpected prompt %q", s.Prompt())
	}
}
