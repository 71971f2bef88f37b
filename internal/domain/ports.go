package domain

import "context"

// ReviewSource supplies the raw review records for one integration.
// Implementations fail with ErrSourceUnavailable when the backing data is
// missing or not the expected shape.
type ReviewSource interface {
	Load(ctx context.Context) ([]RawReview, error)
}

// ApprovalStore persists the canonical-review-id -> approved mapping.
// Load returns an empty (non-nil) map when nothing has been stored yet.
type ApprovalStore interface {
	Load(ctx context.Context) (map[string]bool, error)
	Set(ctx context.Context, id string, approved bool) error
}
