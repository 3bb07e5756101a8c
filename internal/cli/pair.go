package cli

import (
	"crypto/rand"
	"fmt"
	"io"
	"os"

	"github.com/simplets-git/simplets/pkg/domain"
	"github.com/simplets-git/simplets/pkg/pairart"
)

// PairOptions selects the artwork to export.
type PairOptions struct {
	Theme   string
	Indices string // "left,right"; random when empty
	Output  string // file path; stdout when empty
}

// ExportPair writes a character pair as SVG and returns the pair.
func ExportPair(opts PairOptions, stdout io.Writer) (domain.Pair, error) {
	theme, err := domain.ParseTheme(opts.Theme)
	if err != nil {
		return domain.Pair{}, err
	}

	var pair domain.Pair
	if opts.Indices != "" {
		pair, err = pairart.ParseIndices(opts.Indices)
	} else {
		pair, err = pairart.NewPair(rand.Reader)
	}
	if err != nil {
		return domain.Pair{}, err
	}

	if opts.Output == "" {
		if err := pairart.WriteSVG(stdout, pair, theme); err != nil {
			return domain.Pair{}, err
		}
		return pair, nil
	}

	f, err := os.Create(opts.Output)
	if err != nil {
		return domain.Pair{}, fmt.Errorf("failed to create %s: %w", opts.Output, err)
	}
	if err := pairart.WriteSVG(f, pair, theme); err != nil {
		f.Close()
		return domain.Pair{}, err
	}
	if err := f.Close(); err != nil {
		return domain.Pair{}, fmt.Errorf("failed to write %s: %w", opts.Output, err)
	}
	return pair, nil
}
