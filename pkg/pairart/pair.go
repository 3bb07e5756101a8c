// Package pairart draws the random character-pair artwork shown by the
// "project" command: two glyphs joined by an underscore on a disc.
package pairart

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"
	"github.com/simplets-git/simplets/pkg/domain"
)

// Alphabet is the glyph set a pair is drawn from.
var Alphabet = []rune(`abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789#$%-*^~"`)

// Size is the width and height of the SVG canvas.
const Size = 300

// ErrIndexRange is returned for indices outside the alphabet.
var ErrIndexRange = errors.New("pair index out of range")

// RandomIndex scales a uniform uint32 read from r onto the alphabet.
func RandomIndex(r io.Reader) (int, error) {
	var v uint32
	if err := binary.Read(r, binary.BigEndian, &v); err != nil {
		return 0, fmt.Errorf("failed to read randomness: %w", err)
	}
	return int(uint64(v) * uint64(len(Alphabet)) >> 32), nil
}

// NewPair draws two distinct indices from r. A nil reader uses crypto/rand.
func NewPair(r io.Reader) (domain.Pair, error) {
	if r == nil {
		r = rand.Reader
	}
	left, err := RandomIndex(r)
	if err != nil {
		return domain.Pair{}, err
	}
	right, err := RandomIndex(r)
	if err != nil {
		return domain.Pair{}, err
	}
	if left == right {
		right = (right + 1) % len(Alphabet)
	}
	return domain.Pair{Left: left, Right: right}, nil
}

// Validate checks both indices are inside the alphabet.
func Validate(p domain.Pair) error {
	n := len(Alphabet)
	if p.Left < 0 || p.Left >= n || p.Right < 0 || p.Right >= n {
		return fmt.Errorf("%w: %d,%d (alphabet has %d glyphs)", ErrIndexRange, p.Left, p.Right, n)
	}
	return nil
}

// Glyphs returns the two characters of p.
func Glyphs(p domain.Pair) (left, right rune, err error) {
	if err := Validate(p); err != nil {
		return 0, 0, err
	}
	return Alphabet[p.Left], Alphabet[p.Right], nil
}

// String renders p as "l_r"; invalid pairs render as "?_?".
func String(p domain.Pair) string {
	l, r, err := Glyphs(p)
	if err != nil {
		return "?_?"
	}
	return string(l) + "_" + string(r)
}

// Colors returns the disc and glyph colours for a theme.
// The disc contrasts with the page: white on dark, black on light.
func Colors(theme domain.Theme) (background, foreground string) {
	if theme.IsLight() {
		return "black", "white"
	}
	return "white", "black"
}

// ParseIndices parses "left,right".
func ParseIndices(s string) (domain.Pair, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return domain.Pair{}, fmt.Errorf("expected two comma separated indices, got %q", s)
	}
	left, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return domain.Pair{}, fmt.Errorf("invalid left index: %w", err)
	}
	right, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return domain.Pair{}, fmt.Errorf("invalid right index: %w", err)
	}
	p := domain.Pair{Left: left, Right: right}
	return p, Validate(p)
}

// WriteSVG writes the artwork for p in the colours of theme.
func WriteSVG(w io.Writer, p domain.Pair, theme domain.Theme) error {
	left, right, err := Glyphs(p)
	if err != nil {
		return err
	}
	bg, fg := Colors(theme)
	fill := fmt.Sprintf(`fill="%s"`, fg)

	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(Size, Size)
	canvas.Circle(Size/2, Size/2, 140, fmt.Sprintf(`fill="%s"`, bg))
	canvas.Style("text/css", "text { font-family: Arial, sans-serif; font-size: 80px; }")
	canvas.Text(125, 170, string(left), `text-anchor="end"`, fill)
	canvas.Text(150, 170, "_", `text-anchor="middle"`, fill)
	canvas.Text(175, 170, string(right), `text-anchor="start"`, fill)
	canvas.End()
	if ew.err != nil {
		return fmt.Errorf("failed to write svg: %w", ew.err)
	}
	return nil
}

// errWriter keeps the first write error; svgo ignores them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}
