package runner

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aretw0/anthill/pkg/domain"
	"github.com/aretw0/anthill/pkg/protocol"
)

// DefaultMaxLineSize is the longest input line accepted by default.
// Engine lines are a few dozen bytes; anything near this limit is garbage.
const DefaultMaxLineSize = 4096

var (
	ErrLineTooLong = protocol.ErrLineTooLong
	ErrInvalidUTF8 = fmt.Errorf("%w: input contains invalid UTF-8 sequences", domain.ErrProtocolDesync)
)

// SanitizeLine enforces the size limit, validates UTF-8 and strips control
// characters other than tab. Oversized lines are rejected, not truncated.
func SanitizeLine(line string, limit int) (string, error) {
	if limit > 0 && len(line) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrLineTooLong, len(line), limit)
	}

	if !utf8.ValidString(line) {
		return "", ErrInvalidUTF8
	}

	// Fast path: if no control chars, return as is.
	clean := true
	for _, r := range line {
		if unicode.IsControl(r) && r != '\t' {
			clean = false
			break
		}
	}
	if clean {
		return line, nil
	}

	var b strings.Builder
	b.Grow(len(line))
	for _, r := range line {
		if !unicode.IsControl(r) || r == '\t' {
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}
