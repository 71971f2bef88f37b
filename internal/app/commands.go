package app

import (
	"context"
	"fmt"

	"golang.org/x/sync/semaphore"

	"flex_reviews/internal/domain"
)

// ApprovalService toggles moderation flags. Writes are funneled through a
// single-permit semaphore so concurrent read-modify-write cycles on the
// backing store cannot clobber each other.
type ApprovalService struct {
	store  domain.ApprovalStore
	writes *semaphore.Weighted
}

func NewApprovalService(store domain.ApprovalStore) *ApprovalService {
	return &ApprovalService{store: store, writes: semaphore.NewWeighted(1)}
}

func (s *ApprovalService) SetApproval(ctx context.Context, id string, approved bool) (domain.Approval, error) {
	if id == "" {
		return domain.Approval{}, fmt.Errorf("%w: empty review id", domain.ErrInvalidArgument)
	}

	if err := s.writes.Acquire(ctx, 1); err != nil {
		return domain.Approval{}, err
	}
	defer s.writes.Release(1)

	if err := s.store.Set(ctx, id, approved); err != nil {
		return domain.Approval{}, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return domain.Approval{ID: id, Approved: approved}, nil
}
