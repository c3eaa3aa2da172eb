package agents_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/anthill/pkg/agents"
	"github.com/aretw0/anthill/pkg/domain"
	"github.com/aretw0/anthill/pkg/runner"
)

func params() domain.GameParameters {
	return domain.GameParameters{Rows: 10, Cols: 10, PlayerSeed: 42}
}

func TestIdle(t *testing.T) {
	orders, err := agents.Idle{}.MakeTurn(t.Context(), params(), domain.NewWorldState(), 1)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestScripted(t *testing.T) {
	every := domain.Orders{domain.Pos(1, 2).Order(domain.North)}
	special := domain.Orders{domain.Pos(3, 3).Order(domain.West)}
	agent := &agents.Scripted{Every: every, Turns: map[int]domain.Orders{2: special}}

	got, err := agent.MakeTurn(t.Context(), params(), nil, 1)
	require.NoError(t, err)
	assert.Equal(t, every, got)

	got, err = agent.MakeTurn(t.Context(), params(), nil, 2)
	require.NoError(t, err)
	assert.Equal(t, special, got)

	got[0].Dir = domain.South
	again, _ := agent.MakeTurn(t.Context(), params(), nil, 2)
	assert.Equal(t, domain.West, again[0].Dir, "returned orders must not alias the script")

	require.NoError(t, agent.AtEnd(t.Context(), params(), nil, domain.Score{PerPlayer: []uint64{4}}))
	assert.Equal(t, []uint64{4}, agent.Score.PerPlayer)
}

func TestFuncs(t *testing.T) {
	var zero agents.Funcs
	require.NoError(t, zero.Prepare(t.Context(), params()))
	orders, err := zero.MakeTurn(t.Context(), params(), nil, 1)
	require.NoError(t, err)
	assert.Nil(t, orders)
	require.NoError(t, zero.AtEnd(t.Context(), params(), nil, domain.Score{}))

	boom := errors.New("boom")
	f := agents.Funcs{
		MakeTurnFunc: func(context.Context, domain.GameParameters, *domain.WorldState, int) (domain.Orders, error) {
			return nil, boom
		},
	}
	_, err = f.MakeTurn(t.Context(), params(), nil, 1)
	assert.ErrorIs(t, err, boom)
}

func TestRandomWalk_AvoidsWaterAndCollisions(t *testing.T) {
	agent := agents.NewRandomWalk()
	require.NoError(t, agent.Prepare(t.Context(), params()))

	// Ant at (5,5) is boxed in on three sides by water; only East is open.
	world := domain.NewWorldState()
	world.AddWater(domain.Pos(4, 5))
	world.AddWater(domain.Pos(6, 5))
	world.AddWater(domain.Pos(5, 4))
	world.AddLiveAnt(domain.Pos(5, 5), 0)
	world.AddLiveAnt(domain.Pos(0, 0), 1)

	for turn := 1; turn <= 20; turn++ {
		orders, err := agent.MakeTurn(t.Context(), params(), world, turn)
		require.NoError(t, err)
		require.Len(t, orders, 1, "only our own ants get orders")
		assert.Equal(t, domain.Pos(5, 5).Order(domain.East), orders[0])
	}
}

func TestRandomWalk_RemembersWater(t *testing.T) {
	agent := agents.NewRandomWalk()
	require.NoError(t, agent.Prepare(t.Context(), params()))

	seen := domain.NewWorldState()
	seen.AddWater(domain.Pos(4, 5))
	seen.AddWater(domain.Pos(6, 5))
	seen.AddWater(domain.Pos(5, 4))
	_, err := agent.MakeTurn(t.Context(), params(), seen, 1)
	require.NoError(t, err)

	world := domain.NewWorldState()
	world.AddLiveAnt(domain.Pos(5, 5), 0)
	orders, err := agent.MakeTurn(t.Context(), params(), world, 2)
	require.NoError(t, err)
	assert.Equal(t, domain.Orders{domain.Pos(5, 5).Order(domain.East)}, orders)
}

func TestRandomWalk_NoTwoAntsShareATarget(t *testing.T) {
	agent := agents.NewRandomWalk()
	require.NoError(t, agent.Prepare(t.Context(), params()))

	world := domain.NewWorldState()
	for r := uint16(2); r < 7; r++ {
		for c := uint16(2); c < 7; c++ {
			world.AddLiveAnt(domain.Pos(r, c), 0)
		}
	}

	bounds := params().Bounds()
	for turn := 1; turn <= 10; turn++ {
		orders, err := agent.MakeTurn(t.Context(), params(), world, turn)
		require.NoError(t, err)
		targets := map[domain.Position]bool{}
		for _, o := range orders {
			target := o.TargetPos(bounds)
			assert.False(t, targets[target], "two ants ordered into %s", target)
			targets[target] = true
		}
	}
}

func TestRandomWalk_Deterministic(t *testing.T) {
	world := domain.NewWorldState()
	for c := uint16(0); c < 10; c += 2 {
		world.AddLiveAnt(domain.Pos(3, c), 0)
	}

	play := func() []domain.Orders {
		agent := agents.NewRandomWalk()
		require.NoError(t, agent.Prepare(t.Context(), params()))
		var all []domain.Orders
		for turn := 1; turn <= 5; turn++ {
			orders, err := agent.MakeTurn(t.Context(), params(), world, turn)
			require.NoError(t, err)
			all = append(all, orders)
		}
		return all
	}

	assert.Equal(t, play(), play())
}

func TestBuiltin(t *testing.T) {
	reg := agents.Builtin()
	assert.Equal(t, []string{"idle", "random"}, reg.Names())
}

func TestRandomWalk_FullGame(t *testing.T) {
	input := strings.Join([]string{
		"turn 0", "rows 8", "cols 8", "player_seed 7", "ready",
		"turn 1", "a 1 1 0", "go",
		"end", "players 1", "score 1", "go",
	}, "\n")
	var out bytes.Buffer

	r := runner.NewRunner(runner.WithInputHandler(runner.NewTextHandler(strings.NewReader(input), &out)))
	_, err := r.Run(t.Context(), agents.NewRandomWalk())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "go", lines[0])
	assert.Regexp(t, `^o 1 1 [NESW]$`, lines[1])
	assert.Equal(t, "go", lines[2])
}
