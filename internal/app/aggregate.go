package app

import "flex_reviews/internal/domain"

// Aggregate groups reviews by listing name, keeping first-seen group order
// and in-group encounter order. The average counts every non-nil rating,
// zero included; a group with no rated reviews keeps a nil average.
func Aggregate(reviews []domain.Review) *domain.ListingGroups {
	groups := domain.NewListingGroups()
	for _, rv := range reviews {
		key := domain.UnknownListing
		if rv.ListingName != nil && *rv.ListingName != "" {
			key = *rv.ListingName
		}
		agg := groups.Group(key)
		agg.Reviews = append(agg.Reviews, rv)
	}

	for _, key := range groups.Keys() {
		agg, _ := groups.Get(key)
		sum, n := 0.0, 0
		for _, rv := range agg.Reviews {
			if rv.OverallRating != nil {
				sum += *rv.OverallRating
				n++
			}
		}
		if n > 0 {
			avg := sum / float64(n)
			agg.AverageRating = &avg
		}
	}
	return groups
}
