package runner

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextHandler_Next(t *testing.T) {
	handler := NewTextHandler(strings.NewReader("turn 0\r\nready\n\ngo"), io.Discard)

	var lines []string
	for {
		line, err := handler.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		lines = append(lines, line)
	}
	assert.Equal(t, []string{"turn 0", "ready", "", "go"}, lines)
}

func TestTextHandler_Transcript(t *testing.T) {
	var transcript bytes.Buffer
	handler := NewTextHandler(strings.NewReader("turn 1\r\nf 1 2\ngo\n"), io.Discard, WithTranscript(&transcript))

	for {
		if _, err := handler.Next(); err != nil {
			require.ErrorIs(t, err, io.EOF)
			break
		}
	}
	assert.Equal(t, "turn 1\nf 1 2\ngo\n", transcript.String())
}

func TestTextHandler_MaxLineSize(t *testing.T) {
	handler := NewTextHandler(strings.NewReader("turn 123456\n"), io.Discard, WithMaxLineSize(4))

	_, err := handler.Next()
	assert.ErrorIs(t, err, ErrLineTooLong)
}

func TestTextHandler_WriteFlushes(t *testing.T) {
	var out bytes.Buffer
	buffered := bufio.NewWriterSize(&out, 1024)
	handler := NewTextHandler(strings.NewReader(""), buffered)

	n, err := handler.Write([]byte("go\n"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "go\n", out.String(), "buffered output must be flushed on every write")
}
