package protocol

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/anthill/pkg/domain"
	"github.com/aretw0/anthill/pkg/ports"
)

// ErrLineTooLong is returned when an input line exceeds the reader's limit.
var ErrLineTooLong = fmt.Errorf("%w: input line exceeds maximum allowed size", domain.ErrProtocolDesync)

// LineReader adapts an io.Reader into a ports.LineSource.
// It reads one line at a time and never buffers past what bufio needs.
type LineReader struct {
	r *bufio.Reader

	// Limit caps the length of a line without its terminator. Zero means no limit.
	Limit int
}

var _ ports.LineSource = (*LineReader)(nil)

// NewLineReader creates a LineReader over r.
func NewLineReader(r io.Reader) *LineReader {
	if br, ok := r.(*bufio.Reader); ok {
		return &LineReader{r: br}
	}
	return &LineReader{r: bufio.NewReader(r)}
}

// Next returns the next line without "\n" or "\r\n".
// A final line without terminator is returned before io.EOF.
func (l *LineReader) Next() (string, error) {
	return l.ReadLine(l.Limit)
}

// ReadLine is Next with an explicit limit. A line longer than limit fails with
// ErrLineTooLong as soon as the limit is passed, so a stream without newlines
// holds at most limit plus one bufio buffer in memory.
func (l *LineReader) ReadLine(limit int) (string, error) {
	var line []byte
	for {
		chunk, err := l.r.ReadSlice('\n')
		line = append(line, chunk...)

		switch {
		case err == nil:
			return checkLimit(trimEOL(string(line)), limit)
		case errors.Is(err, bufio.ErrBufferFull):
			// One byte of slack for a "\r" whose "\n" has not arrived yet.
			if limit > 0 && len(line) > limit+1 {
				return "", fmt.Errorf("%w: no newline within limit=%d", ErrLineTooLong, limit)
			}
		case errors.Is(err, io.EOF) && len(line) > 0:
			return checkLimit(trimEOL(string(line)), limit)
		default:
			return "", err
		}
	}
}

func checkLimit(line string, limit int) (string, error) {
	if limit > 0 && len(line) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrLineTooLong, len(line), limit)
	}
	return line, nil
}

func trimEOL(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}

// SliceSource serves lines from memory. Useful for tests and recorded transcripts.
type SliceSource struct {
	lines []string
	pos   int
}

var _ ports.LineSource = (*SliceSource)(nil)

// NewSliceSource serves the given lines in order.
func NewSliceSource(lines ...string) *SliceSource {
	return &SliceSource{lines: lines}
}

// Lines splits text on newlines and serves the pieces. A trailing newline does not
// produce an extra empty line.
func Lines(text string) *SliceSource {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return NewSliceSource()
	}
	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = strings.TrimSuffix(lines[i], "\r")
	}
	return NewSliceSource(lines...)
}

// Next returns the next line or io.EOF.
func (s *SliceSource) Next() (string, error) {
	if s.pos >= len(s.lines) {
		return "", io.EOF
	}
	line := s.lines[s.pos]
	s.pos++
	return line, nil
}

// Remaining returns the lines not consumed yet.
func (s *SliceSource) Remaining() []string {
	return s.lines[s.pos:]
}
