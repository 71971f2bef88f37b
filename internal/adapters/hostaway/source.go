package hostaway

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"flex_reviews/internal/adapters/observability"
	"flex_reviews/internal/domain"
)

// FileSource reads Hostaway review exports from a JSON file shaped as
// {"result": [ ... ]}. It re-reads the file on every Load; there is no
// caching between requests.
type FileSource struct{ path string }

func NewFileSource(path string) *FileSource { return &FileSource{path: path} }

func (s *FileSource) Load(ctx context.Context) ([]domain.RawReview, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b, err := os.ReadFile(s.path)
	if err != nil {
		observability.ObserveSource(domain.SourceHostaway, "error")
		return nil, fmt.Errorf("%w: read %s: %v", domain.ErrSourceUnavailable, s.path, err)
	}

	var payload struct {
		Result []domain.RawReview `json:"result"`
	}
	if err := json.Unmarshal(b, &payload); err != nil {
		observability.ObserveSource(domain.SourceHostaway, "error")
		return nil, fmt.Errorf("%w: decode %s: %v", domain.ErrSourceUnavailable, s.path, err)
	}
	if payload.Result == nil {
		observability.ObserveSource(domain.SourceHostaway, "error")
		return nil, fmt.Errorf("%w: %s has no result array", domain.ErrSourceUnavailable, s.path)
	}

	observability.ObserveSource(domain.SourceHostaway, "ok")
	return payload.Result, nil
}
