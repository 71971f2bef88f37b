package app

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"flex_reviews/internal/domain"
)

// hostawayTime is the upstream timestamp layout ("2024-01-15 10:30:00").
const hostawayTime = "2006-01-02 15:04:05"

/********** tiny helpers **********/

func lookupAny(m domain.RawReview, key string) any {
	if m == nil {
		return nil
	}
	return m[key]
}

// lookupStr returns the string at key or "".
func lookupStr(m domain.RawReview, key string) string {
	if s, ok := lookupAny(m, key).(string); ok {
		return s
	}
	return ""
}

func ptrStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// floatFlexible coerces float64/int/numeric-string values. NaN and ±Inf are
// rejected so a canonical rating is always finite.
func floatFlexible(v any) *float64 {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return nil
		}
		f := t
		return &f
	case int:
		f := float64(t)
		return &f
	case int64:
		f := float64(t)
		return &f
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(t, ",", "."))
		if s == "" {
			return nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return &f
		}
	}
	return nil
}

// idString renders a raw identifier (number or string) in canonical form.
func idString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	}
	return ""
}

/********** normalizer **********/

// Normalize converts one raw record plus an approvals snapshot into a
// canonical Review. It is pure and total: missing or malformed fields become
// nil/empty defaults, never an error.
func Normalize(raw domain.RawReview, approvals map[string]bool) domain.Review {
	rawID := idString(lookupAny(raw, "id"))
	id := domain.SourceHostaway + "-" + rawID

	rv := domain.Review{
		ID:             id,
		Source:         domain.SourceHostaway,
		RawID:          rawID,
		ListingName:    ptrStr(lookupStr(raw, "listingName")),
		ListingID:      ptrStr(idString(lookupAny(raw, "listingId"))),
		Type:           ptrStr(lookupStr(raw, "type")),
		Channel:        ptrStr(lookupStr(raw, "channel")),
		Status:         ptrStr(lookupStr(raw, "status")),
		GuestName:      ptrStr(lookupStr(raw, "guestName")),
		PublicReview:   ptrStr(lookupStr(raw, "publicReview")),
		ReviewCategory: mapCategories(lookupAny(raw, "reviewCategory")),
		SubmittedAt:    parseSubmittedAt(lookupStr(raw, "submittedAt")),
		Approved:       approvals[id],
	}
	rv.OverallRating = computeOverall(raw, rv.ReviewCategory)
	return rv
}

// computeOverall applies the rating policy: an explicit rating (zero
// included) wins; otherwise the rounded mean of category ratings, treating a
// missing per-category rating as 0; otherwise nil.
func computeOverall(raw domain.RawReview, cats []domain.CategoryRating) *float64 {
	if v := lookupAny(raw, "rating"); v != nil {
		if f := floatFlexible(v); f != nil {
			return f
		}
	}
	if len(cats) == 0 {
		return nil
	}
	sum := 0.0
	for _, c := range cats {
		if c.Rating != nil {
			sum += *c.Rating
		}
	}
	mean := math.Round(sum / float64(len(cats)))
	return &mean
}

func mapCategories(v any) []domain.CategoryRating {
	items, ok := v.([]any)
	if !ok {
		return []domain.CategoryRating{}
	}
	out := make([]domain.CategoryRating, 0, len(items))
	for _, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		cat := ""
		if s, ok := m["category"].(string); ok {
			cat = s
		}
		out = append(out, domain.CategoryRating{
			Category: cat,
			Rating:   floatFlexible(m["rating"]),
		})
	}
	return out
}

// parseSubmittedAt converts the upstream timestamp to UTC. A malformed value
// degrades to nil instead of poisoning downstream date comparisons.
func parseSubmittedAt(s string) *time.Time {
	if s == "" {
		return nil
	}
	if t, err := time.ParseInLocation(hostawayTime, s, time.UTC); err == nil {
		return &t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		u := t.UTC()
		return &u
	}
	log.Warn().Str("submittedAt", s).Msg("unparseable review timestamp, dropping")
	return nil
}
