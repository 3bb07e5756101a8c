package runner

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// DefaultMaxInputSize is 4KB, far above any command of the vocabulary.
	DefaultMaxInputSize = 4096
	// EnvMaxInputSize is the environment variable to override the default.
	EnvMaxInputSize = "SIMPLETS_MAX_INPUT_SIZE"
)

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
)

// SanitizeInput cleans one command line: it enforces the size limit,
// validates UTF-8, turns tabs into spaces and drops every other control
// character, so typed escape sequences never reach the screen.
func SanitizeInput(input string) (string, error) {
	input = strings.TrimRight(input, "\r\n")

	if limit := MaxInputSize(); len(input) > limit {
		// Rejected rather than truncated: a cut command would run something else.
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(input), limit)
	}
	if !utf8.ValidString(input) {
		return "", ErrInvalidUTF8
	}

	if strings.IndexFunc(input, unicode.IsControl) < 0 {
		return input, nil
	}

	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		switch {
		case r == '\t':
			b.WriteRune(' ')
		case unicode.IsControl(r):
		default:
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

// MaxInputSize returns the active limit in bytes.
func MaxInputSize() int {
	if val := os.Getenv(EnvMaxInputSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxInputSize
}
