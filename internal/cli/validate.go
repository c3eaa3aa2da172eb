package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/anthill/pkg/agents"
	"github.com/aretw0/anthill/pkg/protocol"
	"github.com/aretw0/anthill/pkg/runner"
)

// Validate drives an engine transcript through the turn loop with the idle
// agent. Bot output is discarded. The first fatal error is returned as is.
func Validate(ctx context.Context, r io.Reader, strict bool, logger *slog.Logger) (*runner.Outcome, error) {
	opts := []runner.Option{
		runner.WithLogger(logger),
		runner.WithInputHandler(runner.NewTextHandler(r, io.Discard)),
	}
	if strict {
		opts = append(opts, runner.WithSetupPolicy(protocol.SetupStrict))
	}
	return runner.NewRunner(opts...).Run(ctx, agents.Idle{})
}

// Summary describes a validated transcript in one markdown paragraph.
func Summary(o *runner.Outcome) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Transcript is valid: **%d** turns on a %dx%d map", o.Turns, o.Params.Rows, o.Params.Cols)
	if len(o.Score.PerPlayer) > 0 {
		fmt.Fprintf(&b, ", final score %v", o.Score.PerPlayer)
		if leaders := o.Score.Leaders(); len(leaders) == 1 {
			fmt.Fprintf(&b, ", player %d wins", leaders[0])
		}
	}
	b.WriteString(".\n")
	return b.String()
}
