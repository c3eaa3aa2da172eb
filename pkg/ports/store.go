package ports

import (
	"context"

	"github.com/aretw0/anthill/pkg/domain"
)

// MatchStore defines the interface for persisting recorded matches.
type MatchStore interface {
	// Save creates or replaces the match identified by match.ID.
	Save(ctx context.Context, match *domain.Match) error

	// Load retrieves a match by ID.
	// Returns domain.ErrMatchNotFound if the match does not exist.
	Load(ctx context.Context, id string) (*domain.Match, error)

	// Delete removes a match. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of all stored matches, sorted.
	List(ctx context.Context) ([]string, error)
}

// TurnAppender is implemented by stores that can add one turn to a saved match
// without rewriting the rest of it. Recording uses it to keep the per-turn cost
// independent of the match length.
type TurnAppender interface {
	// AppendTurn adds turn after the last recorded turn of match id.
	// Returns domain.ErrMatchNotFound if the match was never saved.
	AppendTurn(ctx context.Context, id string, turn domain.TurnRecord) error
}
