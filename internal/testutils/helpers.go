package testutils

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aretw0/anthill/pkg/domain"
	"github.com/aretw0/anthill/pkg/dsl"
)

// ReferenceParams are the parameters of the reference game.
func ReferenceParams() domain.GameParameters {
	return domain.GameParameters{
		LoadTimeMs: 3000, TurnTimeMs: 1000, Rows: 20, Cols: 20, Turns: 500,
		ViewRadius2: 55, AttackRadius2: 5, SpawnRadius2: 1, PlayerSeed: 42,
	}
}

// ReferenceWorld is the snapshot sent on every turn of the reference game.
func ReferenceWorld(b *dsl.Block) {
	b.Food(6, 5).Water(7, 6).DeadAnt(7, 9, 1).Ant(10, 8, 0).Hill(7, 12, 1)
}

// ReferenceGame is a two-turn game for two players ending with score 1 0.
// Player 0 has a single ant at (10, 8).
func ReferenceGame() *dsl.Builder {
	return dsl.New().
		Params(ReferenceParams()).
		Turn(ReferenceWorld).
		Turn(ReferenceWorld).
		End([]uint64{1, 0}, ReferenceWorld)
}

// SampleMatch returns a finished match recorded from the reference game.
func SampleMatch(t *testing.T, id string) *domain.Match {
	t.Helper()

	world := domain.NewWorldState()
	world.AddFood(domain.Pos(6, 5))
	world.AddWater(domain.Pos(7, 6))
	world.AddDeadAnt(domain.Pos(7, 9), 1)
	world.AddLiveAnt(domain.Pos(10, 8), 0)
	world.AddHill(domain.Pos(7, 12), 1)

	m := &domain.Match{ID: id, Agent: "scripted", Params: ReferenceParams()}
	for turn := 1; turn <= 2; turn++ {
		m.Turns = append(m.Turns, domain.TurnRecord{
			Turn:   turn,
			World:  world.Clone(),
			Orders: domain.Orders{domain.Pos(10, 8).Order(domain.North)},
		})
	}
	m.Final = world.Clone()
	m.Score = &domain.Score{PerPlayer: []uint64{1, 0}}
	require.True(t, m.Finished())
	return m
}
