package domain

import "time"

// SourceHostaway is the only integration currently wired.
const SourceHostaway = "hostaway"

// RawReview is one record in the shape supplied by the upstream source.
// Field names and types vary, so it stays a loose map until normalization.
type RawReview map[string]any

type CategoryRating struct {
	Category string   `json:"category"`
	Rating   *float64 `json:"rating"`
}

// Review is the canonical, source-agnostic representation.
type Review struct {
	ID             string           `json:"id"` // "<source>-<rawId>"
	Source         string           `json:"source"`
	RawID          string           `json:"rawId"`
	ListingName    *string          `json:"listingName"`
	ListingID      *string          `json:"listingId"`
	Type           *string          `json:"type"`
	Channel        *string          `json:"channel"`
	Status         *string          `json:"status"`
	GuestName      *string          `json:"guestName"`
	PublicReview   *string          `json:"publicReview"`
	ReviewCategory []CategoryRating `json:"reviewCategory"`
	OverallRating  *float64         `json:"overallRating"`
	SubmittedAt    *time.Time       `json:"submittedAt"`
	Approved       bool             `json:"approved"`
}

// FilterCriteria holds the optional query predicates. A nil field means
// "no filtering on that dimension".
type FilterCriteria struct {
	Listing   *string
	Status    *string
	Type      *string
	RatingMin *float64
	RatingMax *float64
	DateFrom  *time.Time
	DateTo    *time.Time
}

// QueryResult is the envelope returned by the read path.
type QueryResult struct {
	Source      string         `json:"source"`
	Count       int            `json:"count"`
	ByListing   *ListingGroups `json:"byListing"`
	Reviews     []Review       `json:"reviews"`
	GeneratedAt time.Time      `json:"generatedAt"`
}

// Approval is the result of a moderation toggle.
type Approval struct {
	ID       string `json:"id"`
	Approved bool   `json:"approved"`
}
