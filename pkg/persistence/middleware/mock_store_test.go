package middleware_test

import (
	"context"
	"errors"
	"slices"

	"github.com/aretw0/anthill/pkg/domain"
)

// MockStore is a simple map-based store for testing middleware.
// It keeps the pointers it is given so tests can inspect what was saved.
type MockStore struct {
	data    map[string]*domain.Match
	failing bool
}

func NewMockStore() *MockStore {
	return &MockStore{
		data: make(map[string]*domain.Match),
	}
}

func (s *MockStore) Save(_ context.Context, match *domain.Match) error {
	if s.failing {
		return errors.New("disk full")
	}
	s.data[match.ID] = match
	return nil
}

func (s *MockStore) Load(_ context.Context, id string) (*domain.Match, error) {
	match, ok := s.data[id]
	if !ok {
		return nil, domain.ErrMatchNotFound
	}
	return match, nil
}

func (s *MockStore) Delete(_ context.Context, id string) error {
	delete(s.data, id)
	return nil
}

func (s *MockStore) List(_ context.Context) ([]string, error) {
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, nil
}
