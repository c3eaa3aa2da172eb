package agents

import (
	"context"
	"math/rand/v2"

	"github.com/aretw0/anthill/pkg/domain"
)

// RandomWalk moves each of its ants in a random direction that is not known
// water and that no other of its ants is moving into. The generator is seeded
// from player_seed, so a game replays identically.
type RandomWalk struct {
	rng    *rand.Rand
	bounds domain.Position
	water  map[domain.Position]struct{}
}

// NewRandomWalk returns an agent ready for Prepare.
func NewRandomWalk() *RandomWalk {
	return &RandomWalk{}
}

func (a *RandomWalk) Prepare(_ context.Context, params domain.GameParameters) error {
	seed := uint64(params.PlayerSeed)
	a.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	a.bounds = params.Bounds()
	a.water = make(map[domain.Position]struct{})
	return nil
}

func (a *RandomWalk) MakeTurn(_ context.Context, params domain.GameParameters, world *domain.WorldState, _ int) (domain.Orders, error) {
	if a.rng == nil {
		_ = a.Prepare(context.Background(), params)
	}
	for _, w := range world.Water {
		a.water[w] = struct{}{}
	}
	if a.bounds.Row == 0 || a.bounds.Col == 0 {
		return nil, nil
	}

	ants := world.LiveAntsFor(0)
	occupied := make(map[domain.Position]struct{}, len(ants))
	for _, p := range ants {
		occupied[p] = struct{}{}
	}

	orders := make(domain.Orders, 0, len(ants))
	dirs := make([]domain.Direction, len(domain.Directions))
	for _, ant := range ants {
		copy(dirs, domain.Directions)
		a.rng.Shuffle(len(dirs), func(i, j int) { dirs[i], dirs[j] = dirs[j], dirs[i] })
		for _, d := range dirs {
			target := ant.Order(d).TargetPos(a.bounds)
			if _, wet := a.water[target]; wet {
				continue
			}
			if _, taken := occupied[target]; taken {
				continue
			}
			delete(occupied, ant)
			occupied[target] = struct{}{}
			orders = append(orders, ant.Order(d))
			break
		}
	}
	return orders, nil
}

func (a *RandomWalk) AtEnd(context.Context, domain.GameParameters, *domain.WorldState, domain.Score) error {
	return nil
}
