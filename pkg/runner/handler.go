package runner

import (
	"io"

	"github.com/aretw0/anthill/pkg/ports"
)

// IOHandler defines the transport used by the Runner.
type IOHandler interface {
	// Next returns the next input line without its terminator, or io.EOF.
	ports.LineSource

	// Write sends complete output lines to the engine. Implementations must flush
	// before returning: the engine waits for "go" before it continues.
	io.Writer
}
