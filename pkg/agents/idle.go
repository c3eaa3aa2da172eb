package agents

import (
	"context"

	"github.com/aretw0/anthill/pkg/domain"
)

// Idle never moves.
type Idle struct{}

func (Idle) Prepare(context.Context, domain.GameParameters) error { return nil }

func (Idle) MakeTurn(context.Context, domain.GameParameters, *domain.WorldState, int) (domain.Orders, error) {
	return nil, nil
}

func (Idle) AtEnd(context.Context, domain.GameParameters, *domain.WorldState, domain.Score) error {
	return nil
}
