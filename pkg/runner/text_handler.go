package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"github.com/simplets-git/simplets/pkg/domain"
	"github.com/simplets-git/simplets/pkg/pairart"
)

// TextHandler implements the line-oriented text interface.
type TextHandler struct {
	Reader   *bufio.Reader
	Writer   io.Writer
	Renderer ContentRenderer
	// Styled enables terminal escape sequences such as clearing the screen.
	Styled bool

	mu        sync.Mutex
	prompt    string
	inputChan chan inputResult
	startOnce sync.Once
}

type inputResult struct {
	text string
	err  error
}

// TextHandlerOption defines configuration for TextHandler.
type TextHandlerOption func(*TextHandler)

// WithTextHandlerRenderer configures the content renderer.
func WithTextHandlerRenderer(renderer ContentRenderer) TextHandlerOption {
	return func(h *TextHandler) {
		h.Renderer = renderer
	}
}

// WithTextHandlerStyled enables escape sequences on the writer.
func WithTextHandlerStyled(styled bool) TextHandlerOption {
	return func(h *TextHandler) {
		h.Styled = styled
	}
}

// NewTextHandler creates a handler for standard text IO.
func NewTextHandler(r io.Reader, w io.Writer, opts ...TextHandlerOption) *TextHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	h := &TextHandler{
		Reader: bufio.NewReader(r),
		Writer: w,
		prompt: ">",
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// SetPrompt changes the prefix printed before each read.
func (h *TextHandler) SetPrompt(prompt string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.prompt = prompt
}

func (h *TextHandler) initPump() {
	h.startOnce.Do(func() {
		h.inputChan = make(chan inputResult, DefaultInputBufferSize)
		go h.pump()
	})
}

func (h *TextHandler) pump() {
	for {
		text, err := h.Reader.ReadString('\n')

		// A last line without newline still counts.
		if text != "" {
			h.inputChan <- inputResult{text: text}
		}

		if err != nil {
			if err == io.EOF {
				close(h.inputChan)
				return
			}
			h.inputChan <- inputResult{err: err}
			// Backoff for non-fatal errors to prevent CPU spikes on persistent failure
			time.Sleep(50 * time.Millisecond)
		}
	}
}

func (h *TextHandler) Output(ctx context.Context, events []domain.Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, ev := range events {
		switch ev.Type {
		case domain.EventOutput:
			if ev.Line != nil {
				fmt.Fprintln(h.Writer, h.renderLine(*ev.Line))
			}
		case domain.EventClear:
			if h.Styled {
				out := termenv.NewOutput(h.Writer)
				out.ClearScreen()
			}
		case domain.EventMenuOpen:
			if ev.Menu != nil {
				h.writeMenu(*ev.Menu)
			}
		}
	}
	return nil
}

func (h *TextHandler) renderLine(line domain.Line) string {
	output := line.Text
	if h.Renderer != nil {
		if rendered, err := h.Renderer(line.Text); err == nil {
			output = rendered
		}
	}
	output = strings.TrimSpace(output)

	if len(line.Pairs) > 0 {
		badges := make([]string, len(line.Pairs))
		for i, p := range line.Pairs {
			badges[i] = "( " + pairart.String(p) + " )"
		}
		output += "\n\n" + strings.Join(badges, "   ")
	}
	return output
}

func (h *TextHandler) writeMenu(menu domain.MenuRequest) {
	fmt.Fprintln(h.Writer, menu.Title)
	for i, item := range menu.Items {
		fmt.Fprintf(h.Writer, "  %d) %s\n", i+1, item.Label)
	}
}

func (h *TextHandler) Input(ctx context.Context) (string, error) {
	h.initPump()

	h.mu.Lock()
	if err := ctx.Err(); err != nil {
		h.mu.Unlock()
		return "", err
	}
	fmt.Fprint(h.Writer, h.prompt+" ")
	h.mu.Unlock()

	select {
	case <-ctx.Done():
		// Important: don't print anything here, just exit silently
		return "", ctx.Err()
	case res, ok := <-h.inputChan:
		if !ok {
			return "", io.EOF
		}
		if res.err != nil {
			return "", res.err
		}
		return SanitizeInput(res.text)
	}
}

func (h *TextHandler) SystemOutput(ctx context.Context, msg string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintf(h.Writer, "[System] %s\n", msg)
	return err
}
