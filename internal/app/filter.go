package app

import (
	"strings"

	"flex_reviews/internal/domain"
)

// Filter applies the optional criteria to reviews, preserving order.
// All present predicates are ANDed.
func Filter(reviews []domain.Review, c domain.FilterCriteria) []domain.Review {
	out := make([]domain.Review, 0, len(reviews))
	for _, rv := range reviews {
		if matches(rv, c) {
			out = append(out, rv)
		}
	}
	return out
}

func matches(rv domain.Review, c domain.FilterCriteria) bool {
	if c.Listing != nil {
		if rv.ListingName == nil ||
			!strings.Contains(strings.ToLower(*rv.ListingName), strings.ToLower(*c.Listing)) {
			return false
		}
	}
	if c.Status != nil && !equalsFold(rv.Status, *c.Status) {
		return false
	}
	if c.Type != nil && !equalsFold(rv.Type, *c.Type) {
		return false
	}
	if c.RatingMin != nil {
		if rv.OverallRating == nil || *rv.OverallRating < *c.RatingMin {
			return false
		}
	}
	if c.RatingMax != nil {
		if rv.OverallRating == nil || *rv.OverallRating > *c.RatingMax {
			return false
		}
	}
	if c.DateFrom != nil {
		if rv.SubmittedAt == nil || rv.SubmittedAt.Before(*c.DateFrom) {
			return false
		}
	}
	if c.DateTo != nil {
		if rv.SubmittedAt == nil || rv.SubmittedAt.After(*c.DateTo) {
			return false
		}
	}
	return true
}

func equalsFold(field *string, want string) bool {
	return field != nil && strings.EqualFold(*field, want)
}
