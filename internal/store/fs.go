// Package store persists puzzles to a flat directory of JSON files.
// Shikaku has no difficulty dimension to bucket by, so unlike the
// bucketed layout this is adapted from, every puzzle lives directly under
// one directory keyed by ID.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"shikaku.dev/solver/internal/domain"
)

// FS is a JSON-file-per-puzzle Store rooted at dir.
type FS struct{ dir string }

// NewFS returns a Store rooted at dir; dir is created lazily on first Save.
func NewFS(dir string) *FS { return &FS{dir: dir} }

func (s *FS) pathFor(id string) string {
	return filepath.Join(s.dir, strings.TrimSpace(id)+".json")
}

// Save writes p as indented JSON, creating the store directory if needed.
func (s *FS) Save(ctx context.Context, p *domain.Puzzle) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p == nil || p.ID == "" {
		return errors.New("shikaku: invalid puzzle: missing ID")
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	f, err := os.Create(s.pathFor(p.ID))
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}

// Load reads and decodes the puzzle stored under id.
func (s *FS) Load(ctx context.Context, id string) (*domain.Puzzle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.pathFor(id))
	if err != nil {
		return nil, err
	}
	var out domain.Puzzle
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// List returns metadata for every puzzle in the store, skipping any file
// that fails to parse rather than failing the whole listing.
func (s *FS) List(ctx context.Context) ([]domain.PuzzleMeta, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ents, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var out []domain.PuzzleMeta
	for _, e := range ents {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, e.Name()))
		if err != nil {
			continue
		}
		var meta struct {
			ID        string `json:"id"`
			Name      string `json:"name,omitempty"`
			CreatedAt int64  `json:"createdAt"`
		}
		if err := json.Unmarshal(data, &meta); err != nil || meta.ID == "" {
			continue
		}
		out = append(out, domain.PuzzleMeta{ID: meta.ID, Name: meta.Name, CreatedAt: meta.CreatedAt})
	}
	return out, nil
}
