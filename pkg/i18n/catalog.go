// Package i18n holds the translated copy of the terminal.
//
// Tables are embedded YAML documents keyed by language code. Lookups use
// dot-separated keys ("commands.about") and fall back to English, then to
// the key itself, so a partially translated table never renders blank.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultLanguage is used when a table or key is missing.
const DefaultLanguage = "en"

//go:embed locales/*.yaml
var embedded embed.FS

// Language is a selectable language code.
type Language struct {
	Code string
	Name string
}

// Languages is the set accepted by "set lang", in display order.
var Languages = []Language{
	{Code: "en", Name: "English"},
	{Code: "hi", Name: "Hindi (India)"},
	{Code: "zh", Name: "Chinese"},
	{Code: "es", Name: "Spanish"},
	{Code: "pt", Name: "Portuguese (Brazil)"},
	{Code: "ru", Name: "Russian"},
	{Code: "id", Name: "Indonesian"},
	{Code: "vi", Name: "Vietnamese"},
	{Code: "ja", Name: "Japanese"},
	{Code: "tr", Name: "Turkish"},
	{Code: "de", Name: "German"},
	{Code: "fr", Name: "French"},
	{Code: "ar", Name: "Arabic"},
	{Code: "th", Name: "Thai"},
	{Code: "uk", Name: "Ukrainian"},
}

// Valid reports whether code is a supported language.
func Valid(code string) bool {
	for _, l := range Languages {
		if l.Code == code {
			return true
		}
	}
	return false
}

// Catalog maps language codes to nested string tables.
type Catalog struct {
	tables map[string]map[string]any
}

// Load reads the embedded tables.
func Load() (*Catalog, error) {
	return LoadFS(embedded, "locales")
}

// MustLoad is Load for package-level initialisation; the embedded tables are
// part of the binary so a failure is a build defect.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// LoadFS reads every <code>.yaml file in dir.
func LoadFS(fsys fs.FS, dir string) (*Catalog, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list locales: %w", err)
	}

	c := &Catalog{tables: make(map[string]map[string]any)}
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".yaml" {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", e.Name(), err)
		}
		table := make(map[string]any)
		if err := yaml.Unmarshal(data, &table); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", e.Name(), err)
		}
		c.tables[strings.TrimSuffix(e.Name(), ".yaml")] = table
	}

	if _, ok := c.tables[DefaultLanguage]; !ok {
		return nil, fmt.Errorf("missing %s table", DefaultLanguage)
	}
	return c, nil
}

// Tables returns the codes that carry their own table.
func (c *Catalog) Tables() []string {
	codes := make([]string, 0, len(c.tables))
	for code := range c.tables {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// T returns the string at key for lang, substituting ${name} placeholders.
func (c *Catalog) T(lang, key string, params map[string]string) string {
	v, ok := c.lookup(lang, key)
	if !ok {
		return key
	}
	s, ok := v.(string)
	if !ok {
		return key
	}
	return interpolate(s, params)
}

// List returns the string list at key for lang.
func (c *Catalog) List(lang, key string) []string {
	v, ok := c.lookup(lang, key)
	if !ok {
		return nil
	}
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// lookup resolves key in lang and retries the whole key in English if any
// segment is missing or empty.
func (c *Catalog) lookup(lang, key string) (any, bool) {
	if v, ok := resolve(c.tables[lang], key); ok {
		return v, true
	}
	return resolve(c.tables[DefaultLanguage], key)
}

func resolve(table map[string]any, key string) (any, bool) {
	if table == nil {
		return nil, false
	}
	var cur any = table
	for _, k := range strings.Split(key, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		next, ok := m[k]
		if !ok || isEmpty(next) {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	}
	return false
}

func interpolate(s string, params map[string]string) string {
	if len(params) == 0 {
		return s
	}
	pairs := make([]string, 0, len(params)*2)
	for k, v := range params {
		pairs = append(pairs, "${"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(s)
}
