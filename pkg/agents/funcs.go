package agents

import (
	"context"

	"github.com/aretw0/anthill/pkg/domain"
	"github.com/aretw0/anthill/pkg/ports"
)

// Funcs adapts plain functions to ports.Agent. Nil fields are no-ops.
type Funcs struct {
	PrepareFunc  func(ctx context.Context, params domain.GameParameters) error
	MakeTurnFunc func(ctx context.Context, params domain.GameParameters, world *domain.WorldState, turn int) (domain.Orders, error)
	AtEndFunc    func(ctx context.Context, params domain.GameParameters, world *domain.WorldState, score domain.Score) error
}

var _ ports.Agent = Funcs{}

func (f Funcs) Prepare(ctx context.Context, params domain.GameParameters) error {
	if f.PrepareFunc == nil {
		return nil
	}
	return f.PrepareFunc(ctx, params)
}

func (f Funcs) MakeTurn(ctx context.Context, params domain.GameParameters, world *domain.WorldState, turn int) (domain.Orders, error) {
	if f.MakeTurnFunc == nil {
		return nil, nil
	}
	return f.MakeTurnFunc(ctx, params, world, turn)
}

func (f Funcs) AtEnd(ctx context.Context, params domain.GameParameters, world *domain.WorldState, score domain.Score) error {
	if f.AtEndFunc == nil {
		return nil
	}
	return f.AtEndFunc(ctx, params, world, score)
}
