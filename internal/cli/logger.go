package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/anthill/internal/config"
	"github.com/aretw0/anthill/internal/logging"
)

// NewLogger configures the application logger from the log section.
// A nil w means stderr; stdout is never used because it carries the protocol.
func NewLogger(cfg config.LogConfig, w io.Writer) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	if w == nil {
		w = os.Stderr
	}
	return logging.NewWithWriter(w, level, logging.Format(cfg.Format)), nil
}
