// Package wave animates the two decorative side bands of random characters.
//
// A Panel is a grid of cells with a fixed horizontal opacity gradient that
// fades towards the terminal: the left band is brightest at its outer edge,
// the right band mirrors it. Cells start blank and flicker in over time.
package wave

import (
	"math"
	"math/rand/v2"
	"time"
)

// Side selects the gradient direction.
type Side int

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	if s == Right {
		return "right"
	}
	return "left"
}

// Glyphs are the characters a cell may take.
var Glyphs = []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789!?=*#$")

const (
	DefaultColumns           = 12
	DefaultInterval          = 100 * time.Millisecond
	DefaultChangeProbability = 0.0125
	DefaultBlankProbability  = 0.3
)

// Panel is one animated band.
type Panel struct {
	side       Side
	cols       int
	rows       int
	cells      []rune
	intensity  []float64
	rng        *rand.Rand
	changeProb float64
	blankProb  float64
}

// Option configures a Panel.
type Option func(*Panel)

// WithColumns sets the number of columns (minimum 2).
func WithColumns(n int) Option {
	return func(p *Panel) {
		if n >= 2 {
			p.cols = n
		}
	}
}

// WithRand injects the random source, for reproducible animations.
func WithRand(r *rand.Rand) Option {
	return func(p *Panel) {
		p.rng = r
	}
}

// WithProbabilities sets the per-tick change and blank probabilities.
func WithProbabilities(change, blank float64) Option {
	return func(p *Panel) {
		p.changeProb = change
		p.blankProb = blank
	}
}

// New creates a blank panel.
func New(side Side, rows int, opts ...Option) *Panel {
	p := &Panel{
		side:       side,
		cols:       DefaultColumns,
		changeProb: DefaultChangeProbability,
		blankProb:  DefaultBlankProbability,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.rng == nil {
		p.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	p.intensity = gradient(side, p.cols)
	p.Resize(rows)
	return p
}

func gradient(side Side, cols int) []float64 {
	out := make([]float64, cols)
	for x := 0; x < cols; x++ {
		t := float64(x) / float64(cols-1)
		if side == Left {
			t = 1 - t
		}
		out[x] = math.Pow(t, 1.5)
	}
	return out
}

// Side returns the band side.
func (p *Panel) Side() Side { return p.side }

// Columns returns the grid width in cells.
func (p *Panel) Columns() int { return p.cols }

// Rows returns the grid height in cells.
func (p *Panel) Rows() int { return p.rows }

// Intensity returns the opacity of column x in [0,1].
func (p *Panel) Intensity(x int) float64 {
	if x < 0 || x >= p.cols {
		return 0
	}
	return p.intensity[x]
}

// Resize changes the number of rows, keeping existing cells.
func (p *Panel) Resize(rows int) {
	if rows < 0 {
		rows = 0
	}
	cells := make([]rune, rows*p.cols)
	for i := range cells {
		cells[i] = ' '
	}
	copy(cells, p.cells)
	p.cells = cells
	p.rows = rows
}

// Tick advances the animation over every row.
func (p *Panel) Tick() {
	p.TickRange(0, p.rows)
}

// TickRange advances the animation over rows [start, end) only, so that
// scrolled-out rows stay frozen.
func (p *Panel) TickRange(start, end int) {
	start = max(start, 0)
	end = min(end, p.rows)
	for y := start; y < end; y++ {
		for x := 0; x < p.cols; x++ {
			if p.rng.Float64() >= p.changeProb {
				continue
			}
			r := ' '
			if p.rng.Float64() >= p.blankProb {
				r = Glyphs[p.rng.IntN(len(Glyphs))]
			}
			p.cells[y*p.cols+x] = r
		}
	}
}

// Cell returns the glyph at (x, y); out of range cells are blank.
func (p *Panel) Cell(x, y int) rune {
	if x < 0 || x >= p.cols || y < 0 || y >= p.rows {
		return ' '
	}
	return p.cells[y*p.cols+x]
}

// Row returns a copy of row y.
func (p *Panel) Row(y int) []rune {
	row := make([]rune, p.cols)
	for x := range row {
		row[x] = p.Cell(x, y)
	}
	return row
}

// Filled counts the non-blank cells.
func (p *Panel) Filled() int {
	n := 0
	for _, c := range p.cells {
		if c != ' ' {
			n++
		}
	}
	return n
}
