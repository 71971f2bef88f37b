package approvals

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"flex_reviews/internal/adapters/observability"
)

// FileStore keeps the id -> approved mapping as one flat JSON object.
// An absent file is an empty mapping, not an error. Writes go through a
// temp file + rename so a concurrent reader never sees a partial mapping.
type FileStore struct{ path string }

func NewFileStore(path string) *FileStore { return &FileStore{path: path} }

func (s *FileStore) Load(ctx context.Context) (map[string]bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		observability.ObserveStore("file", "miss")
		return map[string]bool{}, nil
	}
	if err != nil {
		observability.ObserveStore("file", "error")
		return nil, fmt.Errorf("read approvals %s: %w", s.path, err)
	}

	m := map[string]bool{}
	if err := json.Unmarshal(b, &m); err != nil {
		observability.ObserveStore("file", "error")
		return nil, fmt.Errorf("decode approvals %s: %w", s.path, err)
	}
	observability.ObserveStore("file", "load")
	return m, nil
}

func (s *FileStore) Set(ctx context.Context, id string, approved bool) error {
	m, err := s.Load(ctx)
	if err != nil {
		return err
	}
	m[id] = approved

	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode approvals: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".approvals-*.json")
	if err != nil {
		observability.ObserveStore("file", "error")
		return fmt.Errorf("create temp approvals file: %w", err)
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		observability.ObserveStore("file", "error")
		return fmt.Errorf("write approvals: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		observability.ObserveStore("file", "error")
		return fmt.Errorf("close approvals: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		observability.ObserveStore("file", "error")
		return fmt.Errorf("replace approvals %s: %w", s.path, err)
	}
	observability.ObserveStore("file", "set")
	return nil
}
