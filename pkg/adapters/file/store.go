// Package file stores recorded matches as zstd-compressed JSON files.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/aretw0/anthill/pkg/domain"
)

// Ext is the suffix of every match file.
const Ext = ".json.zst"

// Store implements ports.MatchStore using the local filesystem.
// It stores one file per match in a configured directory.
type Store struct {
	BasePath string
	Level    zstd.EncoderLevel
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".anthill/matches".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".anthill", "matches")
	}
	return &Store{BasePath: basePath, Level: zstd.SpeedDefault}
}

func (s *Store) path(id string) (string, error) {
	if id == "" {
		return "", errors.New("match ID cannot be empty")
	}
	if strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return "", fmt.Errorf("invalid match ID %q", id)
	}
	return filepath.Join(s.BasePath, id+Ext), nil
}

// Save persists the match atomically.
// It writes to a temporary file first, syncs via fsync, and then renames it to the destination.
func (s *Store) Save(_ context.Context, match *domain.Match) error {
	destPath, err := s.path(match.ID)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.BasePath, 0o755); err != nil {
		return fmt.Errorf("failed to ensure match directory: %w", err)
	}

	// Same directory as the destination: rename is only atomic within one filesystem.
	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-"+match.ID+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath) // no-op after a successful rename
	}()

	enc, err := zstd.NewWriter(tmpFile, zstd.WithEncoderLevel(s.Level))
	if err != nil {
		return fmt.Errorf("failed to create zstd writer: %w", err)
	}
	if err := json.NewEncoder(enc).Encode(match); err != nil {
		_ = enc.Close()
		return fmt.Errorf("failed to encode match: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finish zstd stream: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Windows cannot rename an open file.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file to match file: %w", err)
	}
	return nil
}

// Load retrieves the match from its file.
func (s *Store) Load(_ context.Context, id string) (*domain.Match, error) {
	filePath, err := s.path(id)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to open match file: %w", err)
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd reader: %w", err)
	}
	defer dec.Close()

	var match domain.Match
	if err := json.NewDecoder(dec).Decode(&match); err != nil {
		return nil, fmt.Errorf("failed to decode match %s: %w", id, err)
	}
	return &match, nil
}

// Delete removes the match file.
func (s *Store) Delete(_ context.Context, id string) error {
	filePath, err := s.path(id)
	if err != nil {
		return err
	}

	if err := os.Remove(filePath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete match file: %w", err)
	}
	return nil
}

// List returns all stored match IDs, sorted.
func (s *Store) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}

	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, "tmp-") {
			continue
		}
		if id, ok := strings.CutSuffix(name, Ext); ok {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids, nil
}
