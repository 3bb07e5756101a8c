package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
	"github.com/simplets-git/simplets/pkg/domain"
)

// Banner is the boot screen artwork.
const Banner = ` _______ _____ _______  _____         _______ _______ _______
 |______   |   |  |  | |_____] |      |______    |    |______
 ______| __|__ |  |  | |       |_____ |______    |    ______|`

// Logo is shown in the header; Ctrl+T toggles the theme like clicking it.
const Logo = "□_□"

// bannerColors run from the brightest to the faintest row.
var bannerColors = map[domain.Theme][]string{
	domain.ThemeDark:  {"#ffffff", "#c8c8c8", "#8c8c8c"},
	domain.ThemeLight: {"#000000", "#3c3c3c", "#787878"},
}

// BannerLines returns the banner rows with a vertical gradient.
func BannerLines(out *termenv.Output, theme domain.Theme) []string {
	colors := bannerColors[theme]
	if colors == nil {
		colors = bannerColors[domain.ThemeDark]
	}
	rows := strings.Split(Banner, "\n")
	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = out.String(row).Foreground(out.Color(colors[i%len(colors)])).String()
	}
	return lines
}

// PrintBanner writes the banner, for line mode.
func PrintBanner(w io.Writer, theme domain.Theme) {
	out := termenv.NewOutput(w)
	fmt.Fprintln(w)
	for _, line := range BannerLines(out, theme) {
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w)
}
