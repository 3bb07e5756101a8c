package tui

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/simplets-git/simplets/pkg/domain"
)

// DefaultCacheSize is how many rendered texts a ThemedRenderer keeps.
const DefaultCacheSize = 256

// ThemedRenderer renders Markdown for a theme and a wrap width,
// keeping one glamour renderer per combination and caching results.
// The cache is dropped whenever it reaches its limit.
type ThemedRenderer struct {
	mu        sync.Mutex
	renderers map[renderKey]*glamour.TermRenderer
	cache     map[cacheKey]string
	limit     int
}

type renderKey struct {
	theme domain.Theme
	width int
}

type cacheKey struct {
	renderKey
	text string
}

// NewThemedRenderer creates an empty renderer cache.
func NewThemedRenderer() *ThemedRenderer {
	return &ThemedRenderer{
		renderers: make(map[renderKey]*glamour.TermRenderer),
		cache:     make(map[cacheKey]string),
		limit:     DefaultCacheSize,
	}
}

// Render converts markdown to styled text wrapped at width.
func (t *ThemedRenderer) Render(theme domain.Theme, width int, markdown string) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	key := cacheKey{renderKey{theme, width}, markdown}
	if out, ok := t.cache[key]; ok {
		return out, nil
	}

	r, ok := t.renderers[key.renderKey]
	if !ok {
		style := "dark"
		if theme.IsLight() {
			style = "light"
		}
		var err error
		r, err = glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return "", fmt.Errorf("failed to create renderer: %w", err)
		}
		t.renderers[key.renderKey] = r
	}

	out, err := r.Render(markdown)
	if err != nil {
		return "", err
	}
	if len(t.cache) >= t.limit {
		clear(t.cache)
	}
	t.cache[key] = out
	return out, nil
}
