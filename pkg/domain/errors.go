package domain

import (
	"errors"
	"fmt"
)

// ErrProtocolDesync is the root of every fatal wire error: the engine and the bot no
// longer agree on where they are in the conversation.
var ErrProtocolDesync = errors.New("protocol desync")

// ErrUnexpectedEOF is returned when the input ends before the "end" block completes.
var ErrUnexpectedEOF = fmt.Errorf("%w: unexpected end of input", ErrProtocolDesync)

// ErrScoreMismatch is returned when the score line disagrees with the players line.
var ErrScoreMismatch = fmt.Errorf("%w: score count does not match player count", ErrProtocolDesync)

// ErrUnknownParameter is returned by GameParameters.Put for unrecognised keys.
var ErrUnknownParameter = errors.New("unknown game parameter")

// ErrInvalidParameter is returned by GameParameters.Put for non-integer values.
var ErrInvalidParameter = errors.New("invalid game parameter value")

// ErrAgent wraps errors returned by Agent callbacks.
var ErrAgent = errors.New("agent failed")

// ErrMatchNotFound is returned when a match ID cannot be found in the store.
var ErrMatchNotFound = errors.New("match not found")

// ProtocolError identifies the input line that could not be processed.
type ProtocolError struct {
	// Line is the 1-based line number in the input stream, 0 when unknown.
	Line int
	// Text is the raw content of the offending line.
	Text   string
	Reason string
	Err    error
}

func (e *ProtocolError) Error() string {
	msg := e.Reason
	if e.Err != nil {
		if msg == "" {
			msg = e.Err.Error()
		} else {
			msg = msg + ": " + e.Err.Error()
		}
	}
	if e.Line > 0 {
		return fmt.Sprintf("line %d %q: %s", e.Line, e.Text, msg)
	}
	return fmt.Sprintf("%q: %s", e.Text, msg)
}

func (e *ProtocolError) Unwrap() error { return e.Err }

// LineOf extracts the offending line number from an error chain containing *ProtocolError.
func LineOf(err error) (int, bool) {
	var perr *ProtocolError
	if errors.As(err, &perr) {
		return perr.Line, true
	}
	return 0, false
}
