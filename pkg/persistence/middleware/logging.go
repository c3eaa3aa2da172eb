package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aretw0/anthill/pkg/domain"
	"github.com/aretw0/anthill/pkg/ports"
)

type loggingMiddleware struct {
	next   ports.MatchStore
	logger *slog.Logger
}

// NewLoggingMiddleware logs every store call at Debug and failures at Error.
// A missing match on Load is not treated as a failure.
func NewLoggingMiddleware(logger *slog.Logger) Middleware {
	return func(next ports.MatchStore) ports.MatchStore {
		m := &loggingMiddleware{next: next, logger: logger}
		if appender, ok := next.(ports.TurnAppender); ok {
			return &loggingAppender{loggingMiddleware: m, appender: appender}
		}
		return m
	}
}

// loggingAppender is the loggingMiddleware of a store that supports AppendTurn.
type loggingAppender struct {
	*loggingMiddleware
	appender ports.TurnAppender
}

func (m *loggingAppender) AppendTurn(ctx context.Context, id string, turn domain.TurnRecord) error {
	start := time.Now()
	err := m.appender.AppendTurn(ctx, id, turn)
	m.log("append", id, start, err, "turn", turn.Turn)
	return err
}

func (m *loggingMiddleware) log(op, id string, start time.Time, err error, attrs ...any) {
	attrs = append([]any{"op", op, "match", id, "elapsed", time.Since(start)}, attrs...)
	if err != nil {
		m.logger.Error("match store call failed", append(attrs, "error", err)...)
		return
	}
	m.logger.Debug("match store call", attrs...)
}

func (m *loggingMiddleware) Save(ctx context.Context, match *domain.Match) error {
	start := time.Now()
	err := m.next.Save(ctx, match)
	m.log("save", match.ID, start, err, "turns", len(match.Turns))
	return err
}

func (m *loggingMiddleware) Load(ctx context.Context, id string) (*domain.Match, error) {
	start := time.Now()
	match, err := m.next.Load(ctx, id)
	if errors.Is(err, domain.ErrMatchNotFound) {
		m.log("load", id, start, nil, "found", false)
		return nil, err
	}
	m.log("load", id, start, err)
	return match, err
}

func (m *loggingMiddleware) Delete(ctx context.Context, id string) error {
	start := time.Now()
	err := m.next.Delete(ctx, id)
	m.log("delete", id, start, err)
	return err
}

func (m *loggingMiddleware) List(ctx context.Context) ([]string, error) {
	start := time.Now()
	ids, err := m.next.List(ctx)
	m.log("list", "", start, err, "count", len(ids))
	return ids, err
}
