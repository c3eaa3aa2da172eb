package agents

import (
	"context"
	"slices"

	"github.com/aretw0/anthill/pkg/domain"
)

// Scripted replays fixed orders. Turns maps a turn number to its orders;
// turns without an entry get Every.
type Scripted struct {
	Turns map[int]domain.Orders
	Every domain.Orders

	// Score holds the score seen by AtEnd.
	Score domain.Score
}

func (s *Scripted) Prepare(context.Context, domain.GameParameters) error { return nil }

func (s *Scripted) MakeTurn(_ context.Context, _ domain.GameParameters, _ *domain.WorldState, turn int) (domain.Orders, error) {
	if orders, ok := s.Turns[turn]; ok {
		return slices.Clone(orders), nil
	}
	return slices.Clone(s.Every), nil
}

func (s *Scripted) AtEnd(_ context.Context, _ domain.GameParameters, _ *domain.WorldState, score domain.Score) error {
	s.Score = score
	return nil
}
