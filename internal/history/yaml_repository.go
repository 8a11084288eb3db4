package history

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"
)

// YAMLRepository keeps every draw in a single YAML file, oldest first.
type YAMLRepository struct {
	path string

	mu sync.Mutex
}

func NewYAMLRepository(path string) *YAMLRepository {
	return &YAMLRepository{path: path}
}

func (r *YAMLRepository) Save(ctx context.Context, draw *Draw) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	draws, err := r.readAll()
	if err != nil {
		return err
	}
	var lastID int64
	if len(draws) > 0 {
		lastID = draws[len(draws)-1].ID
	}
	draw.ID = lastID + 1
	draws = append(draws, *draw)

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("os.MkdirAll > %w", err)
	}
	data, err := yaml.Marshal(draws)
	if err != nil {
		return fmt.Errorf("yaml.Marshal > %w", err)
	}
	if err := os.WriteFile(r.path, data, 0644); err != nil {
		return fmt.Errorf("os.WriteFile(%s) > %w", r.path, err)
	}
	return nil
}

func (r *YAMLRepository) FindRecent(ctx context.Context, limit int) ([]Draw, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	draws, err := r.readAll()
	if err != nil {
		return nil, err
	}
	slices.Reverse(draws)
	if limit >= 0 && len(draws) > limit {
		draws = draws[:limit]
	}
	return draws, nil
}

func (r *YAMLRepository) readAll() ([]Draw, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s) > %w", r.path, err)
	}

	var draws []Draw
	if err := yaml.Unmarshal(data, &draws); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal(%s) > %w", r.path, err)
	}
	return draws, nil
}
