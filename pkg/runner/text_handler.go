package runner

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/anthill/pkg/protocol"
)

// TextHandler implements the standard line-based transport.
type TextHandler struct {
	reader      *protocol.LineReader
	Writer      io.Writer
	MaxLineSize int

	// transcript receives a copy of every raw input line, if set.
	transcript io.Writer
}

// TextHandlerOption defines configuration for TextHandler.
type TextHandlerOption func(*TextHandler)

// WithMaxLineSize overrides DefaultMaxLineSize. Zero disables the limit.
func WithMaxLineSize(n int) TextHandlerOption {
	return func(h *TextHandler) {
		h.MaxLineSize = n
	}
}

// WithTranscript copies every input line to w, so a game can be replayed later
// with "anthill validate".
func WithTranscript(w io.Writer) TextHandlerOption {
	return func(h *TextHandler) {
		h.transcript = w
	}
}

// NewTextHandler creates a handler for line-based IO. Nil arguments default to
// os.Stdin and os.Stdout.
func NewTextHandler(r io.Reader, w io.Writer, opts ...TextHandlerOption) *TextHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	h := &TextHandler{
		reader:      protocol.NewLineReader(r),
		Writer:      w,
		MaxLineSize: DefaultMaxLineSize,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Next reads and sanitizes one input line.
func (h *TextHandler) Next() (string, error) {
	line, err := h.reader.ReadLine(h.MaxLineSize)
	if err != nil {
		return "", err
	}
	if h.transcript != nil {
		if _, err := fmt.Fprintln(h.transcript, line); err != nil {
			return "", fmt.Errorf("write transcript: %w", err)
		}
	}
	return SanitizeLine(line, h.MaxLineSize)
}

// Write sends p to the engine and flushes buffered writers.
func (h *TextHandler) Write(p []byte) (int, error) {
	n, err := h.Writer.Write(p)
	if err != nil {
		return n, err
	}
	switch w := h.Writer.(type) {
	case *bufio.Writer:
		return n, w.Flush()
	case interface{ Sync() error }:
		// Pipes and terminals report EINVAL/ENOTSUP on fsync; nothing to flush there.
		_ = w.Sync()
	}
	return n, nil
}
