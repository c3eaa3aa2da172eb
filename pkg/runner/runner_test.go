package runner

import (
	"bytes"
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/anthill/pkg/domain"
	"github.com/aretw0/anthill/pkg/protocol"
)

const twoTurnGame = `turn 0
loadtime 3000
turntime 1000
rows 20
cols 20
turns 500
viewradius2 55
attackradius2 5
spawnradius2 1
player_seed 42
ready

turn 1
f 6 5
w 7 6
d 7 9 1
a 10 8 0
h 7 12 1
go

turn 2
f 6 5
w 7 6
d 7 9 1
a 10 8 0
h 7 12 1
go

end
players 2
score 1 0
f 6 5
w 7 6
d 7 9 1
a 10 8 0
h 7 12 1
go
`

type stubAgent struct {
	prepareCalls, turnCalls, endCalls int

	orders  domain.Orders
	turns   []int
	params  []domain.GameParameters
	worlds  []*domain.WorldState
	score   domain.Score
	failAt  string
	failErr error
}

func (a *stubAgent) Prepare(_ context.Context, params domain.GameParameters) error {
	a.prepareCalls++
	a.params = append(a.params, params)
	if a.failAt == "prepare" {
		return a.failErr
	}
	return nil
}

func (a *stubAgent) MakeTurn(_ context.Context, params domain.GameParameters, world *domain.WorldState, turn int) (domain.Orders, error) {
	a.turnCalls++
	a.turns = append(a.turns, turn)
	a.params = append(a.params, params)
	a.worlds = append(a.worlds, world.Clone())
	if a.failAt == "turn" {
		return nil, a.failErr
	}
	return a.orders, nil
}

func (a *stubAgent) AtEnd(_ context.Context, params domain.GameParameters, world *domain.WorldState, score domain.Score) error {
	a.endCalls++
	a.params = append(a.params, params)
	a.worlds = append(a.worlds, world.Clone())
	a.score = score
	if a.failAt == "end" {
		return a.failErr
	}
	return nil
}

func expectedParams() domain.GameParameters {
	return domain.GameParameters{
		LoadTimeMs:    3000,
		TurnTimeMs:    1000,
		Rows:          20,
		Cols:          20,
		Turns:         500,
		ViewRadius2:   55,
		AttackRadius2: 5,
		SpawnRadius2:  1,
		PlayerSeed:    42,
	}
}

func expectedWorld() *domain.WorldState {
	w := domain.NewWorldState()
	w.AddFood(domain.Pos(6, 5))
	w.AddWater(domain.Pos(7, 6))
	w.AddDeadAnt(domain.Pos(7, 9), 1)
	w.AddLiveAnt(domain.Pos(10, 8), 0)
	w.AddHill(domain.Pos(7, 12), 1)
	return w
}

func newTestRunner(input string, out *bytes.Buffer, opts ...Option) *Runner {
	opts = append([]Option{WithInputHandler(NewTextHandler(strings.NewReader(input), out))}, opts...)
	return NewRunner(opts...)
}

func TestRunner_Run_TwoTurnGame(t *testing.T) {
	agent := &stubAgent{orders: domain.Orders{domain.Pos(1, 2).Order(domain.North)}}
	var out bytes.Buffer

	outcome, err := newTestRunner(twoTurnGame, &out).Run(t.Context(), agent)
	require.NoError(t, err)

	assert.Equal(t, "go\no 1 2 N\ngo\no 1 2 N\ngo\n", out.String())
	assert.Equal(t, 1, agent.prepareCalls)
	assert.Equal(t, 2, agent.turnCalls)
	assert.Equal(t, 1, agent.endCalls)
	assert.Equal(t, []int{1, 2}, agent.turns)

	for _, p := range agent.params {
		assert.Equal(t, expectedParams(), p)
	}
	for _, w := range agent.worlds {
		assert.Equal(t, expectedWorld(), w)
	}
	assert.Equal(t, []uint64{1, 0}, agent.score.PerPlayer)

	require.NotNil(t, outcome)
	assert.Equal(t, expectedParams(), outcome.Params)
	assert.Equal(t, expectedWorld(), outcome.Final)
	assert.Equal(t, agent.score, outcome.Score)
	assert.Equal(t, 2, outcome.Turns)
}

func TestRunner_Run_StayOrdersOmitted(t *testing.T) {
	agent := &stubAgent{orders: domain.Orders{
		domain.Pos(3, 3).Order(domain.Stay),
		domain.Pos(4, 4).Order(domain.West),
	}}
	var out bytes.Buffer

	_, err := newTestRunner(twoTurnGame, &out).Run(t.Context(), agent)
	require.NoError(t, err)
	assert.Equal(t, "go\no 4 4 W\ngo\no 4 4 W\ngo\n", out.String())
}

func TestRunner_Run_ZeroTurnGame(t *testing.T) {
	input := "turn 0\nrows 5\nready\nend\nplayers 1\nscore 0\ngo\n"
	agent := &stubAgent{}
	var out bytes.Buffer

	outcome, err := newTestRunner(input, &out).Run(t.Context(), agent)
	require.NoError(t, err)
	assert.Equal(t, "go\n", out.String())
	assert.Equal(t, 0, agent.turnCalls)
	assert.Equal(t, 1, agent.endCalls)
	assert.Equal(t, 0, outcome.Turns)
	assert.Equal(t, domain.NewWorldState(), outcome.Final)
}

func TestRunner_Run_Desync(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
	}{
		{"Turn Before Setup", "turn 1\ngo\n", 1},
		{"End Before Setup", "end\n", 1},
		{"Garbage First Line", "hello\n", 1},
		{"Second Setup", "turn 0\nready\nturn 0\n", 3},
		{"Negative Turn", "turn 0\nready\nturn -1\n", 3},
		{"Turn Without Number", "turn 0\nready\nturn\n", 3},
		{"Garbage Between Turns", "turn 0\nready\nturn 1\ngo\nready\n", 5},
		{"Bad Record", "turn 0\nready\nturn 1\nx 1 2\ngo\n", 4},
		{"Bad End Header", "turn 0\nready\nend\nscore 1\n", 4},
		{"Score Mismatch", "turn 0\nready\nend\nplayers 2\nscore 1\n", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agent := &stubAgent{}
			_, err := newTestRunner(tt.input, &bytes.Buffer{}).Run(t.Context(), agent)
			require.ErrorIs(t, err, domain.ErrProtocolDesync)
			line, ok := domain.LineOf(err)
			require.True(t, ok, "error should carry the offending line: %v", err)
			assert.Equal(t, tt.line, line)
			assert.Equal(t, 0, agent.endCalls)
		})
	}
}

func TestRunner_Run_RejectedLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"Invalid UTF-8", "turn 0\nready\nturn 1\na 1 \xff 0\ngo\n", ErrInvalidUTF8},
		{"Too Long", "turn 0\nready\nturn 1\nf 1 " + strings.Repeat("9", DefaultMaxLineSize) + "\ngo\n", ErrLineTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agent := &stubAgent{}
			_, err := newTestRunner(tt.input, &bytes.Buffer{}).Run(t.Context(), agent)
			require.ErrorIs(t, err, tt.want)
			require.ErrorIs(t, err, domain.ErrProtocolDesync)
			line, ok := domain.LineOf(err)
			require.True(t, ok, "error should carry the offending line: %v", err)
			assert.Equal(t, 4, line)
			assert.Equal(t, 0, agent.turnCalls)
		})
	}
}

func TestRunner_Run_UnexpectedEOF(t *testing.T) {
	inputs := map[string]string{
		"Empty":         "",
		"Inside Setup":  "turn 0\nrows 20\n",
		"Between Turns": "turn 0\nready\nturn 1\ngo\n",
		"Inside Turn":   "turn 0\nready\nturn 1\nf 1 1\n",
		"Inside End":    "turn 0\nready\nend\nplayers 1\nscore 3\n",
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			agent := &stubAgent{}
			outcome, err := newTestRunner(input, &bytes.Buffer{}).Run(t.Context(), agent)
			assert.ErrorIs(t, err, domain.ErrUnexpectedEOF)
			assert.Nil(t, outcome)
			assert.Equal(t, 0, agent.endCalls)
		})
	}
}

func TestRunner_Run_AgentErrors(t *testing.T) {
	boom := errors.New("boom")

	for _, phase := range []string{"prepare", "turn", "end"} {
		t.Run(phase, func(t *testing.T) {
			agent := &stubAgent{failAt: phase, failErr: boom}
			_, err := newTestRunner(twoTurnGame, &bytes.Buffer{}).Run(t.Context(), agent)
			assert.ErrorIs(t, err, domain.ErrAgent)
			assert.ErrorIs(t, err, boom)
		})
	}
}

func TestRunner_Run_FailedTurnWritesNothing(t *testing.T) {
	agent := &stubAgent{orders: domain.Orders{{Pos: domain.Pos(1, 1), Dir: domain.Direction(9)}}}
	var out bytes.Buffer

	_, err := newTestRunner(twoTurnGame, &out).Run(t.Context(), agent)
	require.Error(t, err)
	assert.Equal(t, "go\n", out.String())
}

func TestRunner_Run_TurnMismatchIsNotFatal(t *testing.T) {
	input := "turn 0\nready\nturn 7\ngo\nend\nplayers 1\nscore 0\ngo\n"
	agent := &stubAgent{}

	outcome, err := newTestRunner(input, &bytes.Buffer{}).Run(t.Context(), agent)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, agent.turns)
	assert.Equal(t, 1, outcome.Turns)
}

func TestRunner_Run_StrictSetup(t *testing.T) {
	input := "turn 0\nrows twenty\nready\nend\nplayers 1\nscore 0\ngo\n"

	_, err := newTestRunner(input, &bytes.Buffer{}).Run(t.Context(), &stubAgent{})
	require.NoError(t, err, "lenient by default")

	_, err = newTestRunner(input, &bytes.Buffer{}, WithSetupPolicy(protocol.SetupStrict)).Run(t.Context(), &stubAgent{})
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
}

func TestRunner_Run_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := newTestRunner(twoTurnGame, &bytes.Buffer{}).Run(ctx, &stubAgent{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunner_Run_Twice(t *testing.T) {
	r := newTestRunner(twoTurnGame, &bytes.Buffer{})
	_, err := r.Run(t.Context(), &stubAgent{})
	require.NoError(t, err)
	assert.Equal(t, PhaseEnded, r.Phase())

	_, err = r.Run(t.Context(), &stubAgent{})
	assert.Error(t, err)
}

func TestRunner_Run_Hooks(t *testing.T) {
	var events []string
	hooks := domain.LifecycleHooks{
		OnSetup: func(_ context.Context, e *domain.SetupEvent) {
			events = append(events, "setup")
			assert.Equal(t, int64(20), e.Params.Rows)
		},
		OnTurnStart: func(_ context.Context, e *domain.TurnEvent) {
			events = append(events, "start "+strconv.Itoa(e.Turn))
			assert.Empty(t, e.Orders)
		},
		OnTurnEnd: func(_ context.Context, e *domain.TurnEvent) {
			events = append(events, "end "+strconv.Itoa(e.Turn))
			assert.Len(t, e.Orders, 1)
		},
		OnGameEnd: func(_ context.Context, e *domain.GameEndEvent) {
			events = append(events, "game over")
			assert.Equal(t, 2, e.Turns)
		},
		OnError: func(context.Context, *domain.ErrorEvent) {
			events = append(events, "error")
		},
	}
	agent := &stubAgent{orders: domain.Orders{domain.Pos(1, 2).Order(domain.North)}}

	_, err := newTestRunner(twoTurnGame, &bytes.Buffer{}, WithLifecycleHooks(hooks)).Run(t.Context(), agent)
	require.NoError(t, err)
	assert.Equal(t, []string{"setup", "start 1", "end 1", "start 2", "end 2", "game over"}, events)
}

func TestRunner_Run_ErrorHook(t *testing.T) {
	var got *domain.ErrorEvent
	hooks := domain.LifecycleHooks{
		OnError: func(_ context.Context, e *domain.ErrorEvent) { got = e },
	}

	_, err := newTestRunner("turn 0\nready\nturn 1\nbogus\n", &bytes.Buffer{}, WithLifecycleHooks(hooks)).Run(t.Context(), &stubAgent{})
	require.Error(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 1, got.Turn)
	assert.Equal(t, domain.EventError, got.Type)
	assert.ErrorIs(t, got.Err, domain.ErrProtocolDesync)
}

func TestRunner_Run_Interceptor(t *testing.T) {
	agent := &stubAgent{orders: domain.Orders{
		domain.Pos(10, 8).Order(domain.East),
		domain.Pos(1, 2).Order(domain.North),
	}}
	var out bytes.Buffer

	_, err := newTestRunner(twoTurnGame, &out, WithInterceptor(SanitizeOrdersInterceptor(nil))).Run(t.Context(), agent)
	require.NoError(t, err)
	assert.Equal(t, "go\no 10 8 E\ngo\no 10 8 E\ngo\n", out.String())
}
