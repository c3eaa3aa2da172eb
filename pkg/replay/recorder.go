package replay

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/anthill/internal/logging"
	"github.com/aretw0/anthill/pkg/domain"
	"github.com/aretw0/anthill/pkg/ports"
)

// DefaultCheckpointEvery is how many turns pass between full saves into a store
// that cannot append turns.
const DefaultCheckpointEvery = 25

// Recorder accumulates a domain.Match from lifecycle events.
//
// The match is saved at setup and at the end of the game. In between, stores
// implementing ports.TurnAppender receive each turn as it is played; other
// stores get a full save every checkpoint turns, and on abort.
type Recorder struct {
	store      ports.MatchStore
	appender   ports.TurnAppender
	logger     *slog.Logger
	now        func() time.Time
	checkpoint int

	mu    sync.Mutex
	match *domain.Match
	// stored is set once a full save succeeded; saved counts the turns the
	// store holds.
	stored bool
	saved  int
	errs   []error
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithMatchID overrides the generated UUID.
func WithMatchID(id string) Option {
	return func(r *Recorder) {
		r.match.ID = id
	}
}

// WithAgentName stores the agent name alongside the match.
func WithAgentName(name string) Option {
	return func(r *Recorder) {
		r.match.Agent = name
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Recorder) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(r *Recorder) {
		r.now = now
	}
}

// WithCheckpointEvery sets the full-save interval for stores without
// AppendTurn. n <= 0 saves only at setup, at the end and on abort.
func WithCheckpointEvery(n int) Option {
	return func(r *Recorder) {
		r.checkpoint = n
	}
}

// NewRecorder creates a Recorder that saves into store. A nil store keeps the
// match in memory only.
func NewRecorder(store ports.MatchStore, opts ...Option) *Recorder {
	r := &Recorder{
		store:      store,
		logger:     logging.NewNop(),
		now:        time.Now,
		checkpoint: DefaultCheckpointEvery,
		match:      &domain.Match{ID: uuid.NewString()},
	}
	if appender, ok := store.(ports.TurnAppender); ok {
		r.appender = appender
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ID returns the match ID.
func (r *Recorder) ID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.match.ID
}

// Match returns a snapshot of the recording so far.
func (r *Recorder) Match() *domain.Match {
	r.mu.Lock()
	defer r.mu.Unlock()
	m := *r.match
	m.Turns = slices.Clone(r.match.Turns)
	return &m
}

// Err returns the save failures seen so far, joined. Hooks cannot fail the game,
// so callers check this after Run.
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return errors.Join(r.errs...)
}

// Hooks returns the lifecycle hooks that feed the recorder.
func (r *Recorder) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSetup:   r.onSetup,
		OnTurnEnd: r.onTurnEnd,
		OnGameEnd: r.onGameEnd,
		OnError:   r.onError,
	}
}

func (r *Recorder) onSetup(ctx context.Context, e *domain.SetupEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.match.Params = e.Params
	r.match.StartedAt = r.now().UTC()
	r.save(ctx)
}

func (r *Recorder) onTurnEnd(ctx context.Context, e *domain.TurnEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	turn := domain.TurnRecord{
		Turn:    e.Turn,
		World:   e.World.Clone(),
		Orders:  slices.Clone(e.Orders),
		Elapsed: e.Elapsed,
	}
	r.match.Turns = append(r.match.Turns, turn)

	switch {
	case r.store == nil:
	case r.appender != nil && r.stored && r.saved == len(r.match.Turns)-1:
		r.append(ctx, turn)
	case r.checkpoint > 0 && len(r.match.Turns)-r.saved >= r.checkpoint:
		r.save(ctx)
	}
}

func (r *Recorder) onGameEnd(ctx context.Context, e *domain.GameEndEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	score := domain.Score{PerPlayer: slices.Clone(e.Score.PerPlayer)}
	r.match.Final = e.World.Clone()
	r.match.Score = &score
	r.match.EndedAt = r.now().UTC()
	r.save(ctx)
}

func (r *Recorder) onError(ctx context.Context, e *domain.ErrorEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saved < len(r.match.Turns) {
		r.save(ctx)
	}
	r.logger.Warn("recording left unfinished", "match", r.match.ID, "turn", e.Turn, "error", e.Err)
}

// save writes the whole match. It must be called with mu held.
func (r *Recorder) save(ctx context.Context) {
	if r.store == nil {
		return
	}
	// Saves outlive cancellation of the game context.
	ctx = context.WithoutCancel(ctx)
	if err := r.store.Save(ctx, r.match); err != nil {
		r.logger.Error("failed to save match", "match", r.match.ID, "turns", len(r.match.Turns), "error", err)
		r.errs = append(r.errs, err)
		return
	}
	r.stored = true
	r.saved = len(r.match.Turns)
}

// append writes a single turn. It must be called with mu held.
func (r *Recorder) append(ctx context.Context, turn domain.TurnRecord) {
	ctx = context.WithoutCancel(ctx)
	if err := r.appender.AppendTurn(ctx, r.match.ID, turn); err != nil {
		r.logger.Error("failed to append turn", "match", r.match.ID, "turn", turn.Turn, "error", err)
		r.errs = append(r.errs, err)
		return
	}
	r.saved++
}
