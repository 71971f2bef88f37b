package httpserver_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"flex_reviews/internal/adapters/approvals"
	"flex_reviews/internal/adapters/hostaway"
	server "flex_reviews/internal/adapters/http_server"
	"flex_reviews/internal/app"
	"flex_reviews/internal/domain"
)

const sourceFixture = `{
  "status": "success",
  "result": [
    {
      "id": 7453,
      "type": "host-to-guest",
      "channel": "airbnb",
      "status": "published",
      "rating": null,
      "publicReview": "Shane and family are wonderful!",
      "reviewCategory": [
        {"category": "cleanliness", "rating": 10},
        {"category": "communication", "rating": 10},
        {"category": "respect_house_rules", "rating": 10}
      ],
      "submittedAt": "2020-08-21 22:45:14",
      "guestName": "Shane Finkelstein",
      "listingName": "2B N1 A - 29 Shoreditch Heights"
    },
    {
      "id": 7454,
      "type": "guest-to-host",
      "channel": "booking",
      "status": "published",
      "rating": 4,
      "publicReview": "Nice place, noisy street.",
      "submittedAt": "2021-03-02 09:15:00",
      "guestName": "Ana Gomez",
      "listingName": "Ikeja Executive Suite"
    },
    {
      "id": 7455,
      "status": "pending",
      "rating": 8,
      "submittedAt": "2022-01-10 08:00:00",
      "guestName": "No Listing"
    }
  ]
}`

type env struct {
	ts            *httptest.Server
	approvalsPath string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	dir := t.TempDir()

	sourcePath := filepath.Join(dir, "hostaway_reviews.json")
	if err := os.WriteFile(sourcePath, []byte(sourceFixture), 0o644); err != nil {
		t.Fatalf("write source fixture: %v", err)
	}
	approvalsPath := filepath.Join(dir, "approvals.json")

	source := hostaway.NewFileSource(sourcePath)
	store := approvals.NewFileStore(approvalsPath)

	srv := server.New(0)
	srv.MountHandlers(&server.Handlers{
		Q:    app.NewQueryService(source, store),
		A:    app.NewApprovalService(store),
		Demo: server.DefaultDemoFixture(),
	})

	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return &env{ts: ts, approvalsPath: approvalsPath}
}

func getEnvelope(t *testing.T, url string) (domain.QueryResult, map[string]domain.ListingAggregate) {
	t.Helper()
	res, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}

	var out struct {
		domain.QueryResult
		ByListing map[string]domain.ListingAggregate `json:"byListing"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return out.QueryResult, out.ByListing
}

func TestGetReviews_Envelope(t *testing.T) {
	e := newEnv(t)
	out, byListing := getEnvelope(t, e.ts.URL+"/api/reviews/hostaway")

	if out.Source != "hostaway" || out.Count != 3 || len(out.Reviews) != 3 {
		t.Fatalf("unexpected envelope: source=%s count=%d", out.Source, out.Count)
	}
	if out.GeneratedAt.IsZero() {
		t.Fatalf("generatedAt missing")
	}

	first := out.Reviews[0]
	if first.ID != "hostaway-7453" || first.OverallRating == nil || *first.OverallRating != 10 {
		t.Fatalf("category fallback not applied: %+v", first)
	}
	if first.SubmittedAt == nil {
		t.Fatalf("submittedAt not converted")
	}

	g, ok := byListing["2B N1 A - 29 Shoreditch Heights"]
	if !ok || len(g.Reviews) != 1 || g.AverageRating == nil || *g.AverageRating != 10 {
		t.Fatalf("byListing group wrong: %+v", g)
	}
	if _, ok := byListing[domain.UnknownListing]; !ok {
		t.Fatalf("unknown-listing sentinel group missing")
	}
}

func TestGetReviews_Filters(t *testing.T) {
	e := newEnv(t)

	out, _ := getEnvelope(t, e.ts.URL+"/api/reviews/hostaway?rating_min=5&rating_max=9")
	if out.Count != 1 || out.Reviews[0].ID != "hostaway-7455" {
		t.Fatalf("rating range: %+v", out.Reviews)
	}

	out, _ = getEnvelope(t, e.ts.URL+"/api/reviews/hostaway?listing=ikeja")
	if out.Count != 1 || out.Reviews[0].ID != "hostaway-7454" {
		t.Fatalf("listing substring: %+v", out.Reviews)
	}

	out, _ = getEnvelope(t, e.ts.URL+"/api/reviews/hostaway?status=published&type=guest-to-host")
	if out.Count != 1 || out.Reviews[0].ID != "hostaway-7454" {
		t.Fatalf("status+type: %+v", out.Reviews)
	}

	out, _ = getEnvelope(t, e.ts.URL+"/api/reviews/hostaway?date_from=2021-01-01&date_to=2021-12-31")
	if out.Count != 1 || out.Reviews[0].ID != "hostaway-7454" {
		t.Fatalf("date range: %+v", out.Reviews)
	}
}

func TestGetReviews_MalformedCriteria(t *testing.T) {
	e := newEnv(t)
	for _, q := range []string{"rating_min=high", "rating_max=++", "date_from=lastweek", "date_to=2024-13-99"} {
		res, err := http.Get(e.ts.URL + "/api/reviews/hostaway?" + q)
		if err != nil {
			t.Fatalf("GET: %v", err)
		}
		res.Body.Close()
		if res.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: status %d, want 400", q, res.StatusCode)
		}
	}
}

func TestGetReviews_MissingSource(t *testing.T) {
	dir := t.TempDir()
	store := approvals.NewFileStore(filepath.Join(dir, "approvals.json"))
	srv := server.New(0)
	srv.MountHandlers(&server.Handlers{
		Q: app.NewQueryService(hostaway.NewFileSource(filepath.Join(dir, "missing.json")), store),
		A: app.NewApprovalService(store),
	})
	ts := httptest.NewServer(srv.Mux())
	defer ts.Close()

	res, err := http.Get(ts.URL + "/api/reviews/hostaway")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status %d, want 500", res.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil || body["error"] == "" {
		t.Fatalf("expected {error} body, got %v (%v)", body, err)
	}
}

func TestApprove_RoundTrip(t *testing.T) {
	e := newEnv(t)

	res, err := http.Post(
		e.ts.URL+"/api/reviews/hostaway/hostaway-7454/approve",
		"application/json",
		bytes.NewBufferString(`{"approved": true}`),
	)
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}
	var ap domain.Approval
	if err := json.NewDecoder(res.Body).Decode(&ap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ap.ID != "hostaway-7454" || !ap.Approved {
		t.Fatalf("unexpected approval: %+v", ap)
	}

	// next read reflects the flag
	out, _ := getEnvelope(t, e.ts.URL+"/api/reviews/hostaway?listing=ikeja")
	if len(out.Reviews) != 1 || !out.Reviews[0].Approved {
		t.Fatalf("approval not visible on read: %+v", out.Reviews)
	}
}

func TestApprove_NonBooleanBody(t *testing.T) {
	e := newEnv(t)

	for _, body := range []string{`{"approved": "yes"}`, `{"approved": 1}`, `{}`, `not json`} {
		res, err := http.Post(
			e.ts.URL+"/api/reviews/hostaway/hostaway-7453/approve",
			"application/json",
			bytes.NewBufferString(body),
		)
		if err != nil {
			t.Fatalf("POST: %v", err)
		}
		res.Body.Close()
		if res.StatusCode != http.StatusBadRequest {
			t.Fatalf("body %q: status %d, want 400", body, res.StatusCode)
		}
	}

	// the store was never touched
	if _, err := os.Stat(e.approvalsPath); !os.IsNotExist(err) {
		t.Fatalf("approval store modified by rejected request")
	}
}

func TestDemoEndpoints(t *testing.T) {
	e := newEnv(t)

	res, err := http.Get(e.ts.URL + "/api/properties/85974")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	var p server.DemoProperty
	if err := json.NewDecoder(res.Body).Decode(&p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusOK || p.Name != "Cozy Apartment in Lekki" {
		t.Fatalf("property: %d %+v", res.StatusCode, p)
	}

	res, err = http.Get(e.ts.URL + "/api/properties/99999")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown property: status %d", res.StatusCode)
	}

	res, err = http.Get(e.ts.URL + "/api/properties/85975/reviews?approved=true")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	var rs []server.DemoReview
	if err := json.NewDecoder(res.Body).Decode(&rs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	res.Body.Close()
	if len(rs) != 1 || rs[0].Guest != "Mary Johnson" {
		t.Fatalf("demo reviews: %+v", rs)
	}
}

func TestHealthz(t *testing.T) {
	e := newEnv(t)
	res, err := http.Get(e.ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}
}
