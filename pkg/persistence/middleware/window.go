package middleware

import (
	"context"

	"github.com/aretw0/anthill/pkg/domain"
	"github.com/aretw0/anthill/pkg/ports"
)

type windowMiddleware struct {
	next ports.MatchStore
	keep int
}

// NewWindowMiddleware keeps the world snapshot of only the last keep turns.
// Older turns are still saved with their orders and timings. keep <= 0 disables it.
//
// Appended turns pass through untouched; the window applies on the next Save,
// which the recorder issues when the game ends.
func NewWindowMiddleware(keep int) Middleware {
	return func(next ports.MatchStore) ports.MatchStore {
		if keep <= 0 {
			return next
		}
		m := &windowMiddleware{next: next, keep: keep}
		if appender, ok := next.(ports.TurnAppender); ok {
			return &windowAppender{windowMiddleware: m, TurnAppender: appender}
		}
		return m
	}
}

type windowAppender struct {
	*windowMiddleware
	ports.TurnAppender
}

func (m *windowMiddleware) Save(ctx context.Context, match *domain.Match) error {
	if len(match.Turns) <= m.keep {
		return m.next.Save(ctx, match)
	}

	// Shallow copy: the caller keeps its own snapshots.
	trimmed := *match
	trimmed.Turns = make([]domain.TurnRecord, len(match.Turns))
	copy(trimmed.Turns, match.Turns)
	for i := range trimmed.Turns[:len(trimmed.Turns)-m.keep] {
		trimmed.Turns[i].World = nil
	}
	return m.next.Save(ctx, &trimmed)
}

func (m *windowMiddleware) Load(ctx context.Context, id string) (*domain.Match, error) {
	return m.next.Load(ctx, id)
}

func (m *windowMiddleware) Delete(ctx context.Context, id string) error {
	return m.next.Delete(ctx, id)
}

func (m *windowMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}
