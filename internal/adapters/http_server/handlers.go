package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/reviewpulse/reviewpulse/internal/app"
	"github.com/reviewpulse/reviewpulse/internal/domain"
)

type Handlers struct{ Q *app.QueryService }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/apps/{id}", h.getApp)
	s.mux.Get("/v1/apps/{id}/reviews", h.listReviews)
	s.mux.Get("/v1/apps/{id}/comments", h.listComments)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

func limitParam(r *http.Request) (int, bool) {
	limit := 50
	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > 200 {
			return 0, false
		}
		limit = l
	}
	return limit, true
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

func (h *Handlers) getApp(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a positive number")
		return
	}
	resp, err := h.Q.GetApp(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeProblem(w, http.StatusNotFound, "Not Found", "app not found")
			return
		}
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	writeJSON(w, r, resp)
}

func (h *Handlers) listReviews(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a positive number")
		return
	}
	limit, ok := limitParam(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and 200")
		return
	}

	out, err := h.Q.ListReviews(r.Context(), id, limit)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	if out == nil {
		out = []domain.ArchivedReview{}
	}
	writeJSON(w, r, out)
}

func (h *Handlers) listComments(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a positive number")
		return
	}
	limit, ok := limitParam(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and 200")
		return
	}

	out, err := h.Q.ListComments(r.Context(), id, limit)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	if out == nil {
		out = []domain.Comment{}
	}
	writeJSON(w, r, out)
}
