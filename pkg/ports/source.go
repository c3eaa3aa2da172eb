package ports

// LineSource is a forward-only cursor over input lines.
// Next returns the next line without its terminator, or io.EOF once exhausted.
// Implementations must not read ahead further than the line they return.
type LineSource interface {
	Next() (string, error)
}
