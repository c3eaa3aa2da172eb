// Package sqlite stores recorded matches in a SQLite database (pure Go driver).
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/aretw0/anthill/pkg/domain"
)

// Store implements ports.MatchStore on SQLite. Matches live in "matches",
// their turns in "turns" (one row per TurnRecord).
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path. ":memory:" is accepted.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("empty db path")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS matches (
			id TEXT PRIMARY KEY,
			agent TEXT NOT NULL DEFAULT '',
			params_json TEXT NOT NULL,
			final_json TEXT,
			score_json TEXT,
			started_at TEXT NOT NULL,
			ended_at TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS turns (
			match_id TEXT NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			turn INTEGER NOT NULL,
			world_json TEXT,
			orders_json TEXT NOT NULL,
			elapsed_ns INTEGER NOT NULL,
			PRIMARY KEY (match_id, seq)
		);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// Save replaces the match and all of its turns in one transaction.
func (s *Store) Save(ctx context.Context, match *domain.Match) (err error) {
	if match.ID == "" {
		return errors.New("match ID cannot be empty")
	}
	params, err := json.Marshal(match.Params)
	if err != nil {
		return fmt.Errorf("marshal params: %w", err)
	}
	final, err := nullJSON(match.Final, match.Final == nil)
	if err != nil {
		return fmt.Errorf("marshal final world: %w", err)
	}
	score, err := nullJSON(match.Score, match.Score == nil)
	if err != nil {
		return fmt.Errorf("marshal score: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, `INSERT INTO matches (id, agent, params_json, final_json, score_json, started_at, ended_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			agent = excluded.agent,
			params_json = excluded.params_json,
			final_json = excluded.final_json,
			score_json = excluded.score_json,
			started_at = excluded.started_at,
			ended_at = excluded.ended_at`,
		match.ID, match.Agent, string(params), final, score,
		formatTime(match.StartedAt), nullTime(match.EndedAt))
	if err != nil {
		return fmt.Errorf("upsert match: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM turns WHERE match_id = ?`, match.ID); err != nil {
		return fmt.Errorf("clear turns: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO turns (match_id, seq, turn, world_json, orders_json, elapsed_ns) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, t := range match.Turns {
		world, orders, mErr := turnColumns(t)
		if mErr != nil {
			return mErr
		}
		if _, err = stmt.ExecContext(ctx, match.ID, i, t.Turn, world, orders, int64(t.Elapsed)); err != nil {
			return fmt.Errorf("insert turn %d: %w", t.Turn, err)
		}
	}

	return tx.Commit()
}

// AppendTurn inserts one turn row after the last one of match id.
func (s *Store) AppendTurn(ctx context.Context, id string, turn domain.TurnRecord) error {
	world, orders, err := turnColumns(turn)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `INSERT INTO turns (match_id, seq, turn, world_json, orders_json, elapsed_ns)
		SELECT ?, COALESCE((SELECT MAX(seq) + 1 FROM turns WHERE match_id = ?), 0), ?, ?, ?, ?
		WHERE EXISTS (SELECT 1 FROM matches WHERE id = ?)`,
		id, id, turn.Turn, world, orders, int64(turn.Elapsed), id)
	if err != nil {
		return fmt.Errorf("append turn %d: %w", turn.Turn, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrMatchNotFound
	}
	return nil
}

func turnColumns(t domain.TurnRecord) (sql.NullString, string, error) {
	world, err := nullJSON(t.World, t.World == nil)
	if err != nil {
		return sql.NullString{}, "", fmt.Errorf("marshal turn %d world: %w", t.Turn, err)
	}
	orders := t.Orders
	if orders == nil {
		orders = domain.Orders{}
	}
	ordersJSON, err := json.Marshal(orders)
	if err != nil {
		return sql.NullString{}, "", fmt.Errorf("marshal turn %d orders: %w", t.Turn, err)
	}
	return world, string(ordersJSON), nil
}

// Load retrieves a match and its turns.
func (s *Store) Load(ctx context.Context, id string) (*domain.Match, error) {
	var (
		match               = domain.Match{ID: id}
		params              string
		final, score, ended sql.NullString
		started             string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT agent, params_json, final_json, score_json, started_at, ended_at FROM matches WHERE id = ?`, id,
	).Scan(&match.Agent, &params, &final, &score, &started, &ended)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrMatchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query match: %w", err)
	}

	if err := json.Unmarshal([]byte(params), &match.Params); err != nil {
		return nil, fmt.Errorf("decode params: %w", err)
	}
	if final.Valid {
		match.Final = &domain.WorldState{}
		if err := json.Unmarshal([]byte(final.String), match.Final); err != nil {
			return nil, fmt.Errorf("decode final world: %w", err)
		}
	}
	if score.Valid {
		match.Score = &domain.Score{}
		if err := json.Unmarshal([]byte(score.String), match.Score); err != nil {
			return nil, fmt.Errorf("decode score: %w", err)
		}
	}
	if match.StartedAt, err = parseTime(started); err != nil {
		return nil, err
	}
	if ended.Valid {
		if match.EndedAt, err = parseTime(ended.String); err != nil {
			return nil, err
		}
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT turn, world_json, orders_json, elapsed_ns FROM turns WHERE match_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("query turns: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			rec     domain.TurnRecord
			world   sql.NullString
			orders  string
			elapsed int64
		)
		if err := rows.Scan(&rec.Turn, &world, &orders, &elapsed); err != nil {
			return nil, fmt.Errorf("scan turn: %w", err)
		}
		if world.Valid {
			rec.World = &domain.WorldState{}
			if err := json.Unmarshal([]byte(world.String), rec.World); err != nil {
				return nil, fmt.Errorf("decode turn %d world: %w", rec.Turn, err)
			}
		}
		if err := json.Unmarshal([]byte(orders), &rec.Orders); err != nil {
			return nil, fmt.Errorf("decode turn %d orders: %w", rec.Turn, err)
		}
		rec.Elapsed = time.Duration(elapsed)
		match.Turns = append(match.Turns, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &match, nil
}

// Delete removes the match; its turns go with it.
func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM matches WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete match: %w", err)
	}
	return nil
}

// List returns all match IDs, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM matches ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func nullJSON(v any, isNil bool) (sql.NullString, error) {
	if isNil {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func nullTime(t time.Time) sql.NullString {
	if t.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: formatTime(t), Valid: true}
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", s, err)
	}
	return t, nil
}
