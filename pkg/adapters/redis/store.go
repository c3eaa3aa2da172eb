// Package redis stores recorded matches in Redis.
//
// Each match is a JSON value under "<prefix><id>" holding everything but the
// turns, which are JSON items of the list "<prefix><id>:turns" so a turn can be
// appended with one RPUSH. A sorted set "<prefix>index" scores every ID by its
// expiry time so List can prune expired entries lazily.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/anthill/pkg/domain"
)

// DefaultPrefix namespaces the keys written by the store.
const DefaultPrefix = "anthill:match:"

// farFuture is the index score of matches without TTL (2100-01-01).
const farFuture = 4102444800

// Store implements ports.MatchStore using Redis.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
	now    func() time.Time
}

type Option func(*Store)

// WithTTL sets the expiration for matches.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for matches.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// WithClock replaces time.Now when computing index scores.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: DefaultPrefix,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) key(id string) string {
	return s.prefix + id
}

func (s *Store) turnsKey(id string) string {
	return s.prefix + id + ":turns"
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save persists the match to Redis, replacing any turns stored before.
func (s *Store) Save(ctx context.Context, match *domain.Match) error {
	if match.ID == "" {
		return errors.New("match ID cannot be empty")
	}
	header := *match
	header.Turns = nil
	data, err := json.Marshal(&header)
	if err != nil {
		return fmt.Errorf("failed to marshal match: %w", err)
	}
	turns := make([]any, 0, len(match.Turns))
	for _, t := range match.Turns {
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Errorf("failed to marshal turn %d: %w", t.Turn, err)
		}
		turns = append(turns, b)
	}

	score := float64(s.now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = farFuture
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(match.ID), data, s.ttl)
	pipe.Del(ctx, s.turnsKey(match.ID))
	if len(turns) > 0 {
		pipe.RPush(ctx, s.turnsKey(match.ID), turns...)
		if s.ttl > 0 {
			pipe.Expire(ctx, s.turnsKey(match.ID), s.ttl)
		}
	}
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  score,
		Member: match.ID,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// AppendTurn pushes one turn onto the list of a saved match.
func (s *Store) AppendTurn(ctx context.Context, id string, turn domain.TurnRecord) error {
	data, err := json.Marshal(turn)
	if err != nil {
		return fmt.Errorf("failed to marshal turn %d: %w", turn.Turn, err)
	}
	n, err := s.client.Exists(ctx, s.key(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to check match in redis: %w", err)
	}
	if n == 0 {
		return domain.ErrMatchNotFound
	}

	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, s.turnsKey(id), data)
	if s.ttl > 0 {
		pipe.Expire(ctx, s.turnsKey(id), s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append turn to redis: %w", err)
	}
	return nil
}

// Load retrieves the match from Redis.
func (s *Store) Load(ctx context.Context, id string) (*domain.Match, error) {
	val, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var match domain.Match
	if err := json.Unmarshal(val, &match); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match %s: %w", id, err)
	}

	items, err := s.client.LRange(ctx, s.turnsKey(id), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get turns from redis: %w", err)
	}
	for i, item := range items {
		var t domain.TurnRecord
		if err := json.Unmarshal([]byte(item), &t); err != nil {
			return nil, fmt.Errorf("failed to unmarshal turn %d of match %s: %w", i, id, err)
		}
		match.Turns = append(match.Turns, t)
	}
	return &match, nil
}

// Delete removes the match and its index entry.
func (s *Store) Delete(ctx context.Context, id string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.key(id), s.turnsKey(id))
	pipe.ZRem(ctx, s.indexKey(), id)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete from redis: %w", err)
	}
	return nil
}

// List prunes expired index entries and returns the remaining IDs, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := float64(s.now().Unix())
	err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("(%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired matches: %w", err)
	}

	ids, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	slices.Sort(ids)
	return ids, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
