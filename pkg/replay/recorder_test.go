package replay_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/anthill/pkg/adapters/memory"
	"github.com/aretw0/anthill/pkg/agents"
	"github.com/aretw0/anthill/pkg/domain"
	"github.com/aretw0/anthill/pkg/dsl"
	"github.com/aretw0/anthill/pkg/ports"
	"github.com/aretw0/anthill/pkg/replay"
	"github.com/aretw0/anthill/pkg/runner"
)

const game = `turn 0
rows 20
cols 20
player_seed 42
ready
turn 1
f 6 5
a 10 8 0
go
turn 2
a 9 8 0
go
end
players 2
score 1 0
a 9 8 0
go
`

func play(t *testing.T, input string, rec *replay.Recorder, agent *agents.Scripted) error {
	t.Helper()
	r := runner.NewRunner(
		runner.WithInputHandler(runner.NewTextHandler(strings.NewReader(input), &bytes.Buffer{})),
		runner.WithLifecycleHooks(rec.Hooks()),
	)
	_, err := r.Run(t.Context(), agent)
	return err
}

func fixedClock() func() time.Time {
	t := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func TestRecorder_FullGame(t *testing.T) {
	store := memory.NewStore()
	rec := replay.NewRecorder(store, replay.WithAgentName("scripted"), replay.WithClock(fixedClock()))

	_, err := uuid.Parse(rec.ID())
	require.NoError(t, err, "default IDs are UUIDs")

	agent := &agents.Scripted{Every: domain.Orders{domain.Pos(10, 8).Order(domain.North)}}
	require.NoError(t, play(t, game, rec, agent))
	require.NoError(t, rec.Err())

	match, err := store.Load(t.Context(), rec.ID())
	require.NoError(t, err)

	assert.Equal(t, "scripted", match.Agent)
	assert.Equal(t, int64(20), match.Params.Rows)
	assert.Equal(t, int64(42), match.Params.PlayerSeed)
	require.Len(t, match.Turns, 2)
	assert.Equal(t, 1, match.Turns[0].Turn)
	assert.Equal(t, []domain.Position{domain.Pos(6, 5)}, match.Turns[0].World.Food)
	assert.Equal(t, domain.Orders{domain.Pos(10, 8).Order(domain.North)}, match.Turns[1].Orders)
	assert.Equal(t, []domain.Position{domain.Pos(9, 8)}, match.Final.LiveAntsFor(0))
	require.True(t, match.Finished())
	assert.Equal(t, []uint64{1, 0}, match.Score.PerPlayer)
	assert.True(t, match.EndedAt.After(match.StartedAt))
}

func TestRecorder_PartialGameIsSaved(t *testing.T) {
	store := memory.NewStore()
	rec := replay.NewRecorder(store, replay.WithMatchID("crash"))

	input := "turn 0\nrows 20\nready\nturn 1\na 1 1 0\ngo\nturn 2\nbogus\n"
	err := play(t, input, rec, &agents.Scripted{})
	require.ErrorIs(t, err, domain.ErrProtocolDesync)

	match, err := store.Load(t.Context(), "crash")
	require.NoError(t, err)
	assert.Len(t, match.Turns, 1)
	assert.False(t, match.Finished())
}

type failingStore struct{ *memory.Store }

func (*failingStore) Save(context.Context, *domain.Match) error { return errors.New("disk full") }

func TestRecorder_SaveErrorsDoNotStopTheGame(t *testing.T) {
	rec := replay.NewRecorder(&failingStore{memory.NewStore()})

	require.NoError(t, play(t, game, rec, &agents.Scripted{}))
	assert.ErrorContains(t, rec.Err(), "disk full")
	assert.True(t, rec.Match().Finished(), "the in-memory recording is still complete")
}

func TestRecorder_NilStore(t *testing.T) {
	rec := replay.NewRecorder(nil)
	require.NoError(t, play(t, game, rec, &agents.Scripted{}))
	require.NoError(t, rec.Err())
	assert.Len(t, rec.Match().Turns, 2)
}

// appendingStore counts calls into a store that supports AppendTurn.
type appendingStore struct {
	*memory.Store
	saves, appends int
}

func (s *appendingStore) Save(ctx context.Context, m *domain.Match) error {
	s.saves++
	return s.Store.Save(ctx, m)
}

func (s *appendingStore) AppendTurn(ctx context.Context, id string, turn domain.TurnRecord) error {
	s.appends++
	return s.Store.AppendTurn(ctx, id, turn)
}

// plainStore counts saves into a store without AppendTurn.
type plainStore struct {
	inner *memory.Store
	saves int
	turns []int
}

func (s *plainStore) Save(ctx context.Context, m *domain.Match) error {
	s.saves++
	s.turns = append(s.turns, len(m.Turns))
	return s.inner.Save(ctx, m)
}

func (s *plainStore) Load(ctx context.Context, id string) (*domain.Match, error) {
	return s.inner.Load(ctx, id)
}

func (s *plainStore) Delete(ctx context.Context, id string) error {
	return s.inner.Delete(ctx, id)
}

func (s *plainStore) List(ctx context.Context) ([]string, error) {
	return s.inner.List(ctx)
}

var (
	_ ports.TurnAppender = (*appendingStore)(nil)
	_ ports.MatchStore   = (*plainStore)(nil)
)

func longGame(turns int) string {
	return dsl.New().Param(domain.ParamRows, 20).Param(domain.ParamCols, 20).
		Turns(turns).
		End([]uint64{0}, nil).
		String()
}

func TestRecorder_AppendsOneTurnAtATime(t *testing.T) {
	store := &appendingStore{Store: memory.NewStore()}
	rec := replay.NewRecorder(store)

	require.NoError(t, play(t, longGame(100), rec, &agents.Scripted{}))
	require.NoError(t, rec.Err())

	assert.Equal(t, 2, store.saves, "full saves only at setup and game end")
	assert.Equal(t, 100, store.appends)

	match, err := store.Load(t.Context(), rec.ID())
	require.NoError(t, err)
	assert.Len(t, match.Turns, 100)
	assert.True(t, match.Finished())
}

func TestRecorder_Checkpoints(t *testing.T) {
	store := &plainStore{inner: memory.NewStore()}
	rec := replay.NewRecorder(store, replay.WithCheckpointEvery(25))

	require.NoError(t, play(t, longGame(100), rec, &agents.Scripted{}))
	require.NoError(t, rec.Err())

	assert.Equal(t, []int{0, 25, 50, 75, 100, 100}, store.turns)
}

func TestRecorder_AbortFlushesPendingTurns(t *testing.T) {
	store := &plainStore{inner: memory.NewStore()}
	rec := replay.NewRecorder(store, replay.WithMatchID("cut"), replay.WithCheckpointEvery(0))

	input := dsl.New().Param(domain.ParamRows, 20).Turns(10).String()
	require.ErrorIs(t, play(t, input, rec, &agents.Scripted{}), domain.ErrUnexpectedEOF)

	assert.Equal(t, []int{0, 10}, store.turns)
	match, err := store.Load(t.Context(), "cut")
	require.NoError(t, err)
	assert.Len(t, match.Turns, 10)
	assert.False(t, match.Finished())
}

func TestRecorder_AppendAfterFailedSetup(t *testing.T) {
	store := &appendingStore{Store: memory.NewStore()}
	rec := replay.NewRecorder(&failingFirstSave{appendingStore: store})

	require.NoError(t, play(t, game, rec, &agents.Scripted{}))
	assert.ErrorContains(t, rec.Err(), "disk full")
	assert.Equal(t, 0, store.appends, "turns are not appended to a match the store never saw")

	match, err := store.Load(t.Context(), rec.ID())
	require.NoError(t, err)
	assert.Len(t, match.Turns, 2)
}

type failingFirstSave struct {
	*appendingStore
	failed bool
}

func (s *failingFirstSave) Save(ctx context.Context, m *domain.Match) error {
	if !s.failed {
		s.failed = true
		return errors.New("disk full")
	}
	return s.appendingStore.Save(ctx, m)
}
