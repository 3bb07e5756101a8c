package runner

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/simplets-git/simplets/pkg/domain"
)

// JSONHandler implements the IOHandler interface for JSON-Lines communication.
// Each console step is written as one JSON array of events.
type JSONHandler struct {
	Reader  *bufio.Reader
	Writer  io.Writer
	Encoder *json.Encoder

	mu sync.Mutex
}

// NewJSONHandler creates a handler for JSON IO.
func NewJSONHandler(r io.Reader, w io.Writer) *JSONHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{
		Reader:  bufio.NewReader(r),
		Writer:  w,
		Encoder: json.NewEncoder(w),
	}
}

func (h *JSONHandler) Output(ctx context.Context, events []domain.Event) error {
	if len(events) == 0 {
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.Encoder.Encode(events)
}

// Input reads one line: either a JSON string ("help") or raw text (help).
func (h *JSONHandler) Input(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	text, err := h.Reader.ReadString('\n')
	if err != nil && (err != io.EOF || text == "") {
		return "", err
	}
	text = strings.TrimSpace(text)

	var val string
	if err := json.Unmarshal([]byte(text), &val); err == nil {
		text = val
	}
	return SanitizeInput(text)
}

// SystemOutput emits the message as a system line event.
func (h *JSONHandler) SystemOutput(ctx context.Context, msg string) error {
	return h.Output(ctx, []domain.Event{
		domain.OutputEvent(domain.Line{Kind: domain.LineSystem, Text: msg}),
	})
}
