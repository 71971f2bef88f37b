package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"flex_reviews/internal/app"
	"flex_reviews/internal/domain"
)

type Handlers struct {
	Q    *app.QueryService
	A    *app.ApprovalService
	Demo *DemoFixture
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/api/reviews/hostaway", h.getReviews)
	s.mux.Post("/api/reviews/hostaway/{id}/approve", h.approve)
	if h.Demo != nil {
		s.mux.Get("/api/properties/{id}", h.getProperty)
		s.mux.Get("/api/properties/{id}/reviews", h.getPropertyReviews)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// parseCriteria validates query params up front; malformed numbers or dates
// are a 400, not the legacy silent-empty-result.
func parseCriteria(q url.Values) (domain.FilterCriteria, error) {
	var c domain.FilterCriteria

	str := func(key string) *string {
		if v := q.Get(key); v != "" {
			return &v
		}
		return nil
	}
	c.Listing = str("listing")
	c.Status = str("status")
	c.Type = str("type")

	num := func(key string) (*float64, error) {
		v := q.Get(key)
		if v == "" {
			return nil, nil
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("%s must be a number", key)
		}
		return &f, nil
	}
	var err error
	if c.RatingMin, err = num("rating_min"); err != nil {
		return c, err
	}
	if c.RatingMax, err = num("rating_max"); err != nil {
		return c, err
	}

	date := func(key string) (*time.Time, error) {
		v := q.Get(key)
		if v == "" {
			return nil, nil
		}
		if t, perr := time.ParseInLocation("2006-01-02", v, time.UTC); perr == nil {
			return &t, nil
		}
		if t, perr := time.Parse(time.RFC3339, v); perr == nil {
			u := t.UTC()
			return &u, nil
		}
		return nil, fmt.Errorf("%s must be YYYY-MM-DD or RFC 3339", key)
	}
	if c.DateFrom, err = date("date_from"); err != nil {
		return c, err
	}
	if c.DateTo, err = date("date_to"); err != nil {
		return c, err
	}
	return c, nil
}

func (h *Handlers) getReviews(w http.ResponseWriter, r *http.Request) {
	criteria, err := parseCriteria(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	out, err := h.Q.Query(r.Context(), criteria)
	if err != nil {
		log.Error().Err(err).Msg("hostaway review query failed")
		writeError(w, http.StatusInternalServerError, "Failed to fetch hostaway reviews")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) approve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	// *bool keeps the strictness: {"approved":"yes"} fails the decode and
	// an absent field stays nil. No coercion either way.
	var body struct {
		Approved *bool `json:"approved"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Approved == nil {
		writeError(w, http.StatusBadRequest, "body must include { approved: boolean }")
		return
	}

	res, err := h.A.SetApproval(r.Context(), id, *body.Approved)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidArgument) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Error().Err(err).Str("id", id).Msg("approval write failed")
		writeError(w, http.StatusInternalServerError, "Failed to save approval")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handlers) getProperty(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(strings.TrimSpace(chi.URLParam(r, "id")), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "id must be a number")
		return
	}
	p, ok := h.Demo.Property(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Property not found"})
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handlers) getPropertyReviews(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(strings.TrimSpace(chi.URLParam(r, "id")), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "id must be a number")
		return
	}
	approvedOnly := r.URL.Query().Get("approved") == "true"
	writeJSON(w, http.StatusOK, h.Demo.Reviews(id, approvedOnly))
}
