package tui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
	"github.com/muesli/termenv"
	"github.com/simplets-git/simplets/pkg/boot"
	"github.com/simplets-git/simplets/pkg/console"
	"github.com/simplets-git/simplets/pkg/domain"
	"github.com/simplets-git/simplets/pkg/pairart"
	"github.com/simplets-git/simplets/pkg/wave"
)

// MinPanelWidth is the narrowest terminal that still shows the wave bands.
const MinPanelWidth = 80

// MarkdownFunc renders Markdown for a theme at a wrap width.
type MarkdownFunc func(theme domain.Theme, width int, markdown string) (string, error)

// Frame is everything drawn on one screen refresh.
type Frame struct {
	Width, Height int
	Theme         domain.Theme

	Lines  []domain.Line
	Cursor int
	Menu   *console.Menu
	Video  domain.VideoState

	// VideoLabel is shown when the overlay text is empty.
	VideoLabel string

	Left, Right *wave.Panel
}

// BootFrame is the loading screen state.
type BootFrame struct {
	Width, Height int
	Theme         domain.Theme
	Logo          bool
	Art           bool
	Text          string
}

// Screen turns frames into terminal rows. It holds no terminal state.
type Screen struct {
	out      *termenv.Output
	markdown MarkdownFunc
}

// NewScreen creates a Screen styling through out. markdown may be nil, in
// which case text is word wrapped as is.
func NewScreen(out *termenv.Output, markdown MarkdownFunc) *Screen {
	return &Screen{out: out, markdown: markdown}
}

// ShowPanels reports whether the wave bands fit next to the transcript.
func ShowPanels(width int, left, right *wave.Panel) bool {
	if left == nil || right == nil || width < MinPanelWidth {
		return false
	}
	return width-left.Columns()-right.Columns()-2 > 0
}

// BodyHeight is the number of transcript rows below the header.
func BodyHeight(height int) int {
	return max(height-2, 0)
}

// Compose returns exactly f.Height rows, each f.Width cells wide.
func (s *Screen) Compose(f Frame) []string {
	if f.Width <= 0 || f.Height <= 0 {
		return nil
	}
	rows := make([]string, 0, f.Height)
	rows = append(rows, s.header(f.Width, f.Theme), s.rule(f.Width))

	bodyH := BodyHeight(f.Height)
	panels := ShowPanels(f.Width, f.Left, f.Right)
	bodyW := f.Width
	if panels {
		bodyW = f.Width - f.Left.Columns() - f.Right.Columns() - 2
	}

	body := s.transcript(f, bodyW)
	if len(body) > bodyH {
		body = body[len(body)-bodyH:]
	}
	for len(body) < bodyH {
		body = append(body, "")
	}

	if f.Video.Playing {
		label := f.Video.Overlay
		if label == "" {
			label = f.VideoLabel
		}
		overlay := s.out.String("▶ " + label).Bold().String()
		body = s.overlay(body, bodyW, []string{overlay})
	}
	if f.Menu != nil {
		body = s.overlay(body, bodyW, s.menuBox(f.Menu, bodyW))
	}

	for y, line := range body {
		line = fit(line, bodyW)
		if panels {
			line = s.panelRow(f.Left, y, f.Theme) + " " + line + " " + s.panelRow(f.Right, y, f.Theme)
		}
		rows = append(rows, line)
	}
	return rows[:f.Height]
}

// ComposeBoot draws the loading screen.
func (s *Screen) ComposeBoot(f BootFrame) []string {
	if f.Width <= 0 || f.Height <= 0 {
		return nil
	}
	var block []string
	if f.Logo {
		block = append(block, s.out.String(Logo).Bold().String(), "")
	}
	if f.Art {
		block = append(block, BannerLines(s.out, f.Theme)...)
		block = append(block, "")
	}
	if f.Text != "" {
		block = append(block, s.out.String(f.Text).Faint().String())
	}

	rows := make([]string, f.Height)
	top := max((f.Height-len(block))/2, 0)
	for i, line := range block {
		if top+i >= f.Height {
			break
		}
		rows[top+i] = center(line, f.Width)
	}
	for i := range rows {
		rows[i] = fit(rows[i], f.Width)
	}
	return rows
}

// Apply reveals what a boot step shows.
func (f *BootFrame) Apply(step boot.Step) {
	switch step.Kind {
	case boot.StepLogo:
		f.Logo = true
	case boot.StepArt:
		f.Art = true
	case boot.StepText:
		f.Text = step.Text
	}
}

func (s *Screen) header(width int, theme domain.Theme) string {
	left := " " + s.out.String(Logo).Bold().String() + "  SIMPLETS"
	right := theme.Label() + " (ctrl+t) "
	gap := width - ansi.PrintableRuneWidth(left) - runewidth.StringWidth(right)
	if gap < 1 {
		return fit(left, width)
	}
	return left + strings.Repeat(" ", gap) + s.out.String(right).Faint().String()
}

func (s *Screen) rule(width int) string {
	return s.out.String(strings.Repeat("─", width)).Faint().String()
}

func (s *Screen) transcript(f Frame, width int) []string {
	var rows []string
	for _, line := range f.Lines {
		var text string
		switch line.Kind {
		case domain.LinePrompt:
			text = s.promptLine(line, f.Cursor)
			rows = append(rows, strings.Split(wrap.String(text, width), "\n")...)
		case domain.LineError:
			text = s.out.String(line.Text).Foreground(s.out.Color("1")).String()
			rows = append(rows, strings.Split(wordwrap.String(text, width), "\n")...)
		case domain.LineSystem:
			text = s.out.String(line.Text).Italic().Faint().String()
			rows = append(rows, strings.Split(wordwrap.String(text, width), "\n")...)
		default:
			rows = append(rows, s.markdownRows(f.Theme, width, line.Text)...)
		}
		if len(line.Pairs) > 0 {
			rows = append(rows, "", s.pairRow(line.Pairs, f.Theme))
		}
	}
	return rows
}

func (s *Screen) promptLine(line domain.Line, cursor int) string {
	prefix := s.out.String(line.Prompt).Bold().String() + " "
	if !line.Editable {
		return prefix + line.Text
	}
	text := []rune(line.Text)
	cursor = min(max(cursor, 0), len(text))
	at := " "
	after := ""
	if cursor < len(text) {
		at = string(text[cursor])
		after = string(text[cursor+1:])
	}
	return prefix + string(text[:cursor]) + s.out.String(at).Reverse().String() + after
}

func (s *Screen) markdownRows(theme domain.Theme, width int, text string) []string {
	if s.markdown != nil {
		out, err := s.markdown(theme, width, text)
		if err == nil {
			return strings.Split(strings.Trim(out, "\n"), "\n")
		}
	}
	return strings.Split(wordwrap.String(text, width), "\n")
}

func (s *Screen) pairRow(pairs []domain.Pair, theme domain.Theme) string {
	bg, fg := pairart.Colors(theme)
	badges := make([]string, len(pairs))
	for i, p := range pairs {
		badges[i] = s.out.String(" "+pairart.String(p)+" ").
			Background(s.out.Color(colorHex(bg))).
			Foreground(s.out.Color(colorHex(fg))).
			String()
	}
	return strings.Join(badges, "   ")
}

func (s *Screen) menuBox(m *console.Menu, width int) []string {
	inner := runewidth.StringWidth(m.Request.Title)
	for _, item := range m.Request.Items {
		inner = max(inner, runewidth.StringWidth(item.Label)+2)
	}
	inner = min(inner+2, max(width-2, 1))

	box := []string{
		"┌" + strings.Repeat("─", inner) + "┐",
		"│" + fit(" "+s.out.String(m.Request.Title).Bold().String(), inner) + "│",
		"├" + strings.Repeat("─", inner) + "┤",
	}
	for i, item := range m.Request.Items {
		label := "  " + item.Label
		if i == m.Cursor {
			label = s.out.String("> " + item.Label).Reverse().String()
		}
		box = append(box, "│"+fit(" "+label, inner)+"│")
	}
	return append(box, "└"+strings.Repeat("─", inner)+"┘")
}

// overlay replaces the middle rows of body with centred block rows.
func (s *Screen) overlay(body []string, width int, block []string) []string {
	top := max((len(body)-len(block))/2, 0)
	for i, line := range block {
		if top+i >= len(body) {
			break
		}
		body[top+i] = center(line, width)
	}
	return body
}

func (s *Screen) panelRow(p *wave.Panel, y int, theme domain.Theme) string {
	var b strings.Builder
	for x := 0; x < p.Columns(); x++ {
		c := p.Cell(x, y)
		if c == ' ' {
			b.WriteRune(' ')
			continue
		}
		b.WriteString(s.out.String(string(c)).Foreground(s.out.Color(shade(p.Intensity(x), theme))).String())
	}
	return b.String()
}

// shade maps an opacity onto a grey that fades into the background.
func shade(intensity float64, theme domain.Theme) string {
	intensity = min(max(intensity, 0), 1)
	level := int(intensity * 255)
	if theme.IsLight() {
		level = 255 - level
	}
	return fmt.Sprintf("#%02x%02x%02x", level, level, level)
}

func colorHex(name string) string {
	if name == "black" {
		return "#000000"
	}
	return "#ffffff"
}

// fit truncates or pads s to exactly width cells.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = truncate.String(s, uint(width))
	if w := ansi.PrintableRuneWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

func center(s string, width int) string {
	pad := (width - ansi.PrintableRuneWidth(s)) / 2
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}
