package httpserver

// A small static property/review dataset kept from the original front-end
// demo. It is passed in explicitly and never mutated, so handlers can share
// it without locking.

type DemoProperty struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type DemoReview struct {
	ID       int64   `json:"id"`
	Guest    string  `json:"guest"`
	Rating   float64 `json:"rating"`
	Text     string  `json:"text"`
	Approved *bool   `json:"approved,omitempty"`
}

type DemoFixture struct {
	Properties []DemoProperty
	reviewsByProperty map[int64][]DemoReview
}

func (f *DemoFixture) Property(id int64) (DemoProperty, bool) {
	for _, p := range f.Properties {
		if p.ID == id {
			return p, true
		}
	}
	return DemoProperty{}, false
}

// Reviews returns the reviews for a property; approvedOnly drops reviews
// explicitly marked not approved (an unset flag counts as approved).
func (f *DemoFixture) Reviews(id int64, approvedOnly bool) []DemoReview {
	rs := f.reviewsByProperty[id]
	out := make([]DemoReview, 0, len(rs))
	for _, r := range rs {
		if approvedOnly && r.Approved != nil && !*r.Approved {
			continue
		}
		out = append(out, r)
	}
	return out
}

func DefaultDemoFixture() *DemoFixture {
	return &DemoFixture{
		Properties: []DemoProperty{
			{ID: 85974, Name: "Cozy Apartment in Lekki", Description: "A stylish modern apartment with ocean views."},
			{ID: 85975, Name: "Ikeja Executive Suite", Description: "Close to the airport, quiet and comfortable."},
		},
		reviewsByProperty: map[int64][]DemoReview{
			85974: {
				{ID: 1, Guest: "Jane Doe", Rating: 5, Text: "Loved it! So clean and peaceful."},
				{ID: 2, Guest: "John Smith", Rating: 4, Text: "Great location and comfortable stay."},
			},
			85975: {
				{ID: 3, Guest: "Mary Johnson", Rating: 5, Text: "Excellent experience!"},
			},
		},
	}
}
