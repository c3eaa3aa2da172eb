package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/anthill/internal/logging"
	"github.com/aretw0/anthill/pkg/domain"
	"github.com/aretw0/anthill/pkg/ports"
	"github.com/aretw0/anthill/pkg/protocol"
)

// Phase is the position of the Runner in the conversation.
type Phase int

const (
	// PhaseAwaitingSetup lasts until the "turn 0" block has been answered.
	PhaseAwaitingSetup Phase = iota
	// PhaseInTurn accepts numbered turns and the end block.
	PhaseInTurn
	// PhaseEnded is entered once the end block has been decoded.
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingSetup:
		return "awaiting_setup"
	case PhaseInTurn:
		return "in_turn"
	case PhaseEnded:
		return "ended"
	}
	return "unknown"
}

// Outcome summarizes a finished game. It carries the same values passed to Agent.AtEnd.
type Outcome struct {
	Params domain.GameParameters
	Final  *domain.WorldState
	Score  domain.Score
	// Turns is the number of turns the agent played.
	Turns int
}

// Runner drives an Agent through one game.
// A Runner is single-use: Run may be called once.
type Runner struct {
	// Handler is the transport. If nil, stdin/stdout are used.
	Handler IOHandler

	// Logger is used for turn-level debug logging and skipped setup lines.
	// If nil, a no-op logger is used.
	Logger *slog.Logger

	// SetupPolicy is forwarded to the Decoder. Defaults to lenient.
	SetupPolicy protocol.SetupPolicy

	// Interceptor rewrites orders before they are sent.
	// If nil, orders pass through unchanged.
	Interceptor OrderInterceptor

	hooks   []domain.LifecycleHooks
	started bool
	phase   Phase
	turn    int
	params  domain.GameParameters
}

// NewRunner creates a Runner. Without WithInputHandler it talks over stdin/stdout.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		Logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Phase reports where the Runner is in the conversation.
func (r *Runner) Phase() Phase {
	return r.phase
}

// Run plays one game. It returns after the agent's AtEnd call, or on the first
// error. Errors from the agent wrap domain.ErrAgent; wire errors wrap
// domain.ErrProtocolDesync. Cancelling ctx is observed between lines.
func (r *Runner) Run(ctx context.Context, agent ports.Agent) (*Outcome, error) {
	if agent == nil {
		return nil, errors.New("runner: nil agent")
	}
	if r.started {
		return nil, errors.New("runner: Run called twice")
	}
	r.started = true

	handler := r.resolveHandler()
	logger := r.resolveLogger()
	dec := protocol.NewDecoder(handler,
		protocol.WithLogger(logger),
		protocol.WithSetupPolicy(r.SetupPolicy),
	)
	enc := protocol.NewEncoder(handler)

	for {
		if err := ctx.Err(); err != nil {
			return nil, r.fail(ctx, err)
		}

		text, err := dec.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = &domain.ProtocolError{
					Line:   dec.Line(),
					Reason: fmt.Sprintf("input ended while %s", r.phase),
					Err:    domain.ErrUnexpectedEOF,
				}
			}
			return nil, r.fail(ctx, err)
		}

		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}

		switch {
		case fields[0] == domain.KeywordTurn && len(fields) == 2:
			n, convErr := strconv.ParseUint(fields[1], 10, 32)
			if convErr != nil {
				return nil, r.fail(ctx, unexpected(dec, text, "invalid turn number"))
			}
			if n == 0 {
				err = r.setup(ctx, dec, enc, agent, text)
			} else {
				err = r.playTurn(ctx, dec, enc, agent, text, int(n))
			}
		case len(fields) == 1 && fields[0] == domain.KeywordEnd:
			var outcome *Outcome
			outcome, err = r.finish(ctx, dec, agent, text)
			if err == nil {
				return outcome, nil
			}
		default:
			err = unexpected(dec, text, "unexpected line while "+r.phase.String())
		}
		if err != nil {
			return nil, r.fail(ctx, err)
		}
	}
}

func (r *Runner) setup(ctx context.Context, dec *protocol.Decoder, enc *protocol.Encoder, agent ports.Agent, text string) error {
	if r.phase != PhaseAwaitingSetup {
		return unexpected(dec, text, "setup turn received while "+r.phase.String())
	}

	params, err := dec.DecodeParameters()
	if err != nil {
		return err
	}
	r.params = params

	start := time.Now()
	if err := agent.Prepare(ctx, params); err != nil {
		return fmt.Errorf("%w: prepare: %w", domain.ErrAgent, err)
	}
	elapsed := time.Since(start)

	if err := enc.EncodeGo(); err != nil {
		return err
	}
	r.phase = PhaseInTurn

	r.resolveLogger().Debug("setup complete",
		"rows", params.Rows, "cols", params.Cols, "turns", params.Turns, "elapsed", elapsed)
	r.emitSetup(ctx, &domain.SetupEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventSetup},
		Params:    params,
		Elapsed:   elapsed,
	})
	return nil
}

func (r *Runner) playTurn(ctx context.Context, dec *protocol.Decoder, enc *protocol.Encoder, agent ports.Agent, text string, wire int) error {
	if r.phase != PhaseInTurn {
		return unexpected(dec, text, "turn received while "+r.phase.String())
	}
	logger := r.resolveLogger()

	r.turn++
	if wire != r.turn {
		logger.Warn("turn number mismatch", "line", dec.Line(), "expected", r.turn, "got", wire)
	}

	world, err := dec.DecodeWorld()
	if err != nil {
		return err
	}

	r.emitTurnStart(ctx, &domain.TurnEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventTurnStart},
		Turn:      r.turn,
		Params:    r.params,
		World:     world,
	})

	start := time.Now()
	orders, err := agent.MakeTurn(ctx, r.params, world, r.turn)
	if err != nil {
		return fmt.Errorf("%w: make turn %d: %w", domain.ErrAgent, r.turn, err)
	}
	elapsed := time.Since(start)

	if r.Interceptor != nil {
		orders, err = r.Interceptor(ctx, TurnContext{Turn: r.turn, Params: r.params, World: world}, orders)
		if err != nil {
			return fmt.Errorf("intercept turn %d: %w", r.turn, err)
		}
	}

	if err := enc.EncodeOrders(orders); err != nil {
		return fmt.Errorf("turn %d: %w", r.turn, err)
	}

	logger.Debug("turn complete", "turn", r.turn, "orders", len(orders), "elapsed", elapsed)
	r.emitTurnEnd(ctx, &domain.TurnEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventTurnEnd},
		Turn:      r.turn,
		Params:    r.params,
		World:     world,
		Orders:    orders,
		Elapsed:   elapsed,
	})
	return nil
}

func (r *Runner) finish(ctx context.Context, dec *protocol.Decoder, agent ports.Agent, text string) (*Outcome, error) {
	if r.phase != PhaseInTurn {
		return nil, unexpected(dec, text, "end received while "+r.phase.String())
	}

	world, score, err := dec.DecodeEnd()
	if err != nil {
		return nil, err
	}
	r.phase = PhaseEnded

	start := time.Now()
	if err := agent.AtEnd(ctx, r.params, world, score); err != nil {
		return nil, fmt.Errorf("%w: at end: %w", domain.ErrAgent, err)
	}
	elapsed := time.Since(start)

	r.resolveLogger().Info("game over", "turns", r.turn, "players", len(score.PerPlayer), "score", score.PerPlayer)
	r.emitGameEnd(ctx, &domain.GameEndEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventGameEnd},
		Turns:     r.turn,
		Params:    r.params,
		World:     world,
		Score:     score,
		Elapsed:   elapsed,
	})

	return &Outcome{
		Params: r.params,
		Final:  world,
		Score:  score,
		Turns:  r.turn,
	}, nil
}

func unexpected(dec *protocol.Decoder, text, reason string) error {
	return &domain.ProtocolError{
		Line:   dec.Line(),
		Text:   text,
		Reason: reason,
		Err:    domain.ErrProtocolDesync,
	}
}

func (r *Runner) fail(ctx context.Context, err error) error {
	r.resolveLogger().Error("game aborted", "turn", r.turn, "phase", r.phase.String(), "error", err)
	r.emitError(ctx, &domain.ErrorEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventError},
		Turn:      r.turn,
		Err:       err,
	})
	return err
}

func (r *Runner) resolveHandler() IOHandler {
	if r.Handler == nil {
		r.Handler = NewTextHandler(nil, nil)
	}
	return r.Handler
}

func (r *Runner) resolveLogger() *slog.Logger {
	if r.Logger == nil {
		r.Logger = logging.NewNop()
	}
	return r.Logger
}

func (r *Runner) emitSetup(ctx context.Context, e *domain.SetupEvent) {
	for _, h := range r.hooks {
		if h.OnSetup != nil {
			h.OnSetup(ctx, e)
		}
	}
}

func (r *Runner) emitTurnStart(ctx context.Context, e *domain.TurnEvent) {
	for _, h := range r.hooks {
		if h.OnTurnStart != nil {
			h.OnTurnStart(ctx, e)
		}
	}
}

func (r *Runner) emitTurnEnd(ctx context.Context, e *domain.TurnEvent) {
	for _, h := range r.hooks {
		if h.OnTurnEnd != nil {
			h.OnTurnEnd(ctx, e)
		}
	}
}

func (r *Runner) emitGameEnd(ctx context.Context, e *domain.GameEndEvent) {
	for _, h := range r.hooks {
		if h.OnGameEnd != nil {
			h.OnGameEnd(ctx, e)
		}
	}
}

func (r *Runner) emitError(ctx context.Context, e *domain.ErrorEvent) {
	for _, h := range r.hooks {
		if h.OnError != nil {
			h.OnError(ctx, e)
		}
	}
}
