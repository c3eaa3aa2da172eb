package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/anthill/internal/config"
	"github.com/aretw0/anthill/internal/logging"
	"github.com/aretw0/anthill/pkg/agents"
	"github.com/aretw0/anthill/pkg/domain"
	"github.com/aretw0/anthill/pkg/observability"
	"github.com/aretw0/anthill/pkg/protocol"
	"github.com/aretw0/anthill/pkg/registry"
	"github.com/aretw0/anthill/pkg/replay"
	"github.com/aretw0/anthill/pkg/runner"
)

// PlayOptions contains everything a play session needs.
type PlayOptions struct {
	Config config.Config
	// Agents resolves Config.Agent.Name. Nil means the built-in agents.
	Agents *registry.Registry
	Logger *slog.Logger
	In     io.Reader
	Out    io.Writer
	// Transcript, when set, receives a copy of every engine line.
	Transcript io.Writer
}

// PlayResult is what a finished or aborted session leaves behind.
type PlayResult struct {
	Outcome *runner.Outcome
	// MatchID is empty when recording is off.
	MatchID string
}

// Play runs one game on the configured streams. Recording and metrics
// failures are logged and never change the game result.
func Play(ctx context.Context, opts PlayOptions) (*PlayResult, error) {
	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	reg := opts.Agents
	if reg == nil {
		reg = agents.Builtin()
	}

	agent, err := reg.New(cfg.Agent.Name)
	if err != nil {
		return nil, err
	}

	store, closeStore, err := OpenStore(cfg.Record, logger)
	if err != nil {
		return nil, fmt.Errorf("open match store: %w", err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Warn("closing match store", "error", err)
		}
	}()

	in, out := opts.In, opts.Out
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	handlerOpts := []runner.TextHandlerOption{runner.WithMaxLineSize(cfg.Protocol.MaxLineSize)}
	if opts.Transcript != nil {
		handlerOpts = append(handlerOpts, runner.WithTranscript(opts.Transcript))
	}

	runnerOpts := []runner.Option{
		runner.WithLogger(logger),
		runner.WithInputHandler(runner.NewTextHandler(in, out, handlerOpts...)),
		runner.WithInterceptor(runner.SanitizeOrdersInterceptor(logger)),
	}
	if cfg.Protocol.StrictSetup {
		runnerOpts = append(runnerOpts, runner.WithSetupPolicy(protocol.SetupStrict))
	}

	result := &PlayResult{}
	var recorder *replay.Recorder
	if store != nil {
		recorder = replay.NewRecorder(store,
			replay.WithAgentName(cfg.Agent.Name),
			replay.WithLogger(logger),
		)
		result.MatchID = recorder.ID()
		runnerOpts = append(runnerOpts, runner.WithLifecycleHooks(recorder.Hooks()))
	}

	var metrics *observability.Metrics
	if cfg.Metrics.Textfile != "" {
		metrics = observability.NewMetrics()
		runnerOpts = append(runnerOpts, runner.WithLifecycleHooks(metrics.Hooks()))
	}

	outcome, runErr := runner.NewRunner(runnerOpts...).Run(ctx, agent)
	result.Outcome = outcome

	if recorder != nil {
		if err := recorder.Err(); err != nil {
			logger.Warn("match recording incomplete", "match_id", recorder.ID(), "error", err)
		}
	}
	if metrics != nil {
		if err := metrics.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			logger.Warn("writing metrics textfile", "path", cfg.Metrics.Textfile, "error", err)
		}
	}

	return result, runErr
}

// IsInterrupted reports whether err only says the session was cancelled.
func IsInterrupted(err error) bool {
	return errors.Is(err, context.Canceled)
}

// ExitCode maps a session error to a process exit status.
// Protocol errors are 2, agent errors 3, anything else 1.
func ExitCode(err error) int {
	var pe *domain.ProtocolError
	switch {
	case err == nil, IsInterrupted(err):
		return 0
	case errors.As(err, &pe), errors.Is(err, domain.ErrProtocolDesync):
		return 2
	case errors.Is(err, domain.ErrAgent):
		return 3
	default:
		return 1
	}
}
