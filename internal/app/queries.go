package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"flex_reviews/internal/domain"
)

type QueryService struct {
	source domain.ReviewSource
	store  domain.ApprovalStore
	now    func() time.Time
}

func NewQueryService(src domain.ReviewSource, store domain.ApprovalStore) *QueryService {
	return &QueryService{source: src, store: store, now: time.Now}
}

// Query runs the read pipeline: load raw records and approvals, normalize,
// filter, aggregate, envelope. Both reads hit durable state on every call so
// moderation flags are always current.
func (s *QueryService) Query(ctx context.Context, c domain.FilterCriteria) (domain.QueryResult, error) {
	var (
		raws      []domain.RawReview
		approvals map[string]bool
	)

	// The two reads have no ordering dependency; fetch them together.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		raws, err = s.source.Load(gctx)
		return err
	})
	g.Go(func() error {
		// Approvals are best-effort: a read failure must never block the
		// read path, so degrade to an empty mapping.
		m, err := s.store.Load(gctx)
		if err != nil {
			log.Warn().Err(err).Msg("approval store read failed, serving unapproved")
			m = map[string]bool{}
		}
		approvals = m
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.QueryResult{}, err
	}

	reviews := make([]domain.Review, 0, len(raws))
	for _, raw := range raws {
		reviews = append(reviews, Normalize(raw, approvals))
	}
	reviews = Filter(reviews, c)

	return domain.QueryResult{
		Source:      domain.SourceHostaway,
		Count:       len(reviews),
		ByListing:   Aggregate(reviews),
		Reviews:     reviews,
		GeneratedAt: s.now().UTC(),
	}, nil
}
