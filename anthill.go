package anthill

import (
	"context"
	_ "embed"
	"io"

	"github.com/aretw0/anthill/pkg/ports"
	"github.com/aretw0/anthill/pkg/runner"
)

// Version is the release of this module, embedded from the VERSION file.
//
//go:embed VERSION
var Version string

// Agent is the bot logic driven by Play.
type Agent = ports.Agent

// Outcome is what Play returns after the end block.
type Outcome = runner.Outcome

// Play runs agent for one game on stdin and stdout. Options are the runner's;
// an input handler given among them wins over the standard streams.
func Play(ctx context.Context, agent Agent, opts ...runner.Option) (*Outcome, error) {
	return PlayIO(ctx, agent, nil, nil, opts...)
}

// PlayIO is Play on explicit streams. Nil streams mean stdin and stdout.
func PlayIO(ctx context.Context, agent Agent, r io.Reader, w io.Writer, opts ...runner.Option) (*Outcome, error) {
	all := append([]runner.Option{runner.WithInputHandler(runner.NewTextHandler(r, w))}, opts...)
	return runner.NewRunner(all...).Run(ctx, agent)
}
