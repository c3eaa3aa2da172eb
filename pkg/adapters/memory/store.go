package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/aretw0/anthill/pkg/domain"
)

// Store implements ports.MatchStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Match
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Match),
	}
}

// Save persists a deep copy of the match.
func (s *Store) Save(_ context.Context, match *domain.Match) error {
	copied := match.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[match.ID] = copied
	return nil
}

// AppendTurn adds a copy of turn to a saved match.
func (s *Store) AppendTurn(_ context.Context, id string, turn domain.TurnRecord) error {
	turn.World = turn.World.Clone()
	turn.Orders = slices.Clone(turn.Orders)

	s.mu.Lock()
	defer s.mu.Unlock()
	match, ok := s.data[id]
	if !ok {
		return domain.ErrMatchNotFound
	}
	match.Turns = append(match.Turns, turn)
	return nil
}

// Load retrieves the match from memory.
func (s *Store) Load(_ context.Context, id string) (*domain.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	match, ok := s.data[id]
	if !ok {
		return nil, domain.ErrMatchNotFound
	}

	// Copy on read so the caller can't mutate store state through the pointer.
	return match.Clone(), nil
}

// Delete removes the match.
func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns the stored match IDs, sorted.
func (s *Store) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}
