package ports

import (
	"context"

	"github.com/aretw0/anthill/pkg/domain"
)

// Agent is the game logic driven by the turn loop.
// The runner calls Prepare once, MakeTurn once per turn starting at turn 1, and
// AtEnd exactly once after the end block. No call follows AtEnd.
//
// The engine enforces time budgets by killing the process; the runner imposes none.
// Returning an error aborts the game.
type Agent interface {
	// Prepare is called once with the turn-0 parameters, before any turn.
	Prepare(ctx context.Context, params domain.GameParameters) error

	// MakeTurn returns the orders for this turn. Stay orders are not sent.
	// The world belongs to the runner and is discarded after the call; clone it to keep it.
	MakeTurn(ctx context.Context, params domain.GameParameters, world *domain.WorldState, turn int) (domain.Orders, error)

	// AtEnd receives the final snapshot and the score of every player.
	AtEnd(ctx context.Context, params domain.GameParameters, world *domain.WorldState, score domain.Score) error
}
