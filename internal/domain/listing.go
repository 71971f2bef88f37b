package domain

import (
	"bytes"
	"encoding/json"
)

// UnknownListing groups reviews whose listing name is absent.
const UnknownListing = "Unknown Listing"

// ListingAggregate is recomputed per query and never persisted.
type ListingAggregate struct {
	ListingName   string   `json:"listingName"`
	Reviews       []Review `json:"reviews"`
	AverageRating *float64 `json:"averageRating"`
}

// ListingGroups is a listingName -> aggregate map that remembers insertion
// order, so the byListing envelope object keeps first-seen group order.
type ListingGroups struct {
	keys   []string
	groups map[string]*ListingAggregate
}

func NewListingGroups() *ListingGroups {
	return &ListingGroups{groups: make(map[string]*ListingAggregate)}
}

// Group returns the aggregate for name, creating it on first use.
func (g *ListingGroups) Group(name string) *ListingAggregate {
	if agg, ok := g.groups[name]; ok {
		return agg
	}
	agg := &ListingAggregate{ListingName: name}
	g.keys = append(g.keys, name)
	g.groups[name] = agg
	return agg
}

func (g *ListingGroups) Get(name string) (*ListingAggregate, bool) {
	agg, ok := g.groups[name]
	return agg, ok
}

// Keys returns group names in insertion order.
func (g *ListingGroups) Keys() []string { return g.keys }

func (g *ListingGroups) Len() int { return len(g.keys) }

// MarshalJSON emits an object whose keys follow insertion order.
// encoding/json would sort a plain map's keys.
func (g *ListingGroups) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range g.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(g.groups[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
