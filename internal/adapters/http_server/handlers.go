// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"sentiment_intel/internal/adapters/n8n"
	"sentiment_intel/internal/app"
	"sentiment_intel/internal/domain"
)

type Handlers struct {
	Q *app.AnalysisService
	// WebhookTimeout applies to per-request webhook URL overrides.
	WebhookTimeout time.Duration
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

const (
	defaultTableLimit = 50
	maxTableLimit     = 100
	defaultKeywords   = 25
)

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Post("/v1/analysis/refresh", h.refresh)
	s.mux.Get("/v1/analysis/overview", h.overview)
	s.mux.Get("/v1/reviews", h.listReviews)
	s.mux.Get("/v1/reviews/table", h.reviewTable)
	s.mux.Get("/v1/keywords", h.keywords)
	s.mux.Get("/v1/charts", h.charts)
	s.mux.Get("/v1/filters", h.filters)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// writeNoData maps the empty-store read error; anything else on a read path
// is unexpected.
func writeNoData(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrNoData) {
		writeProblem(w, http.StatusNotFound, "No Analysis", "run a refresh first to load data")
		return
	}
	writeProblem(w, http.StatusInternalServerError, "Internal Error", err.Error())
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

func writeCacheable(w http.ResponseWriter, r *http.Request, v any) {
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

func filterFromQuery(r *http.Request) domain.ReviewFilter {
	q := r.URL.Query()
	return domain.ReviewFilter{
		Sentiment: q.Get("sentiment"),
		Theme:     q.Get("theme"),
	}
}

// refresh triggers the workflow and installs a new snapshot. The body may
// carry a one-off URL override: {"webhook_url": "..."}.
func (h *Handlers) refresh(w http.ResponseWriter, r *http.Request) {
	var body struct {
		WebhookURL string `json:"webhook_url"`
	}
	// body is optional; a decode failure on a non-empty body is a client error
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "body must be empty or a JSON object")
		return
	}

	var (
		snap domain.Snapshot
		err  error
	)
	if url := strings.TrimSpace(body.WebhookURL); url != "" {
		cl, cerr := n8n.New(url, h.WebhookTimeout, 1)
		if cerr != nil {
			writeProblem(w, http.StatusBadRequest, "Validation Error", cerr.Error())
			return
		}
		snap, err = h.Q.RefreshWith(r.Context(), cl)
	} else {
		snap, err = h.Q.Refresh(r.Context())
	}

	if err != nil {
		if errors.Is(err, app.ErrNoWorkflow) {
			writeProblem(w, http.StatusBadRequest, "Validation Error", n8n.ErrURLRequired.Error())
			return
		}
		writeProblem(w, http.StatusBadGateway, "Workflow Error", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"version":  snap.Version,
		"loadedAt": snap.LoadedAt,
		"reviews":  len(snap.Reviews),
		"total":    snap.Summary.TotalItems,
	})
}

func (h *Handlers) overview(w http.ResponseWriter, r *http.Request) {
	ov, err := h.Q.Overview(r.Context())
	if err != nil {
		writeNoData(w, err)
		return
	}
	writeCacheable(w, r, ov)
}

func (h *Handlers) listReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.Q.Reviews(r.Context(), filterFromQuery(r))
	if err != nil {
		writeNoData(w, err)
		return
	}
	writeCacheable(w, r, map[string]any{"items": reviews, "count": len(reviews)})
}

func (h *Handlers) reviewTable(w http.ResponseWriter, r *http.Request) {
	limit := defaultTableLimit
	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > maxTableLimit {
			writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and 100")
			return
		}
		limit = l
	}
	rows, err := h.Q.Table(r.Context(), filterFromQuery(r), limit)
	if err != nil {
		writeNoData(w, err)
		return
	}
	writeCacheable(w, r, map[string]any{"rows": rows})
}

func (h *Handlers) keywords(w http.ResponseWriter, r *http.Request) {
	q := domain.KeywordQuery{
		ReviewFilter: filterFromQuery(r),
		TopN:         defaultKeywords,
		Alphabetical: strings.EqualFold(r.URL.Query().Get("sort"), "alpha"),
	}
	if ts := r.URL.Query().Get("top"); ts != "" {
		n, err := strconv.Atoi(ts)
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "Invalid top", "top must be an integer")
			return
		}
		q.TopN = n // clamped to [10,50] by the service
	}
	entries, err := h.Q.Keywords(r.Context(), q)
	if err != nil {
		writeNoData(w, err)
		return
	}
	writeCacheable(w, r, map[string]any{"keywords": entries})
}

func (h *Handlers) charts(w http.ResponseWriter, r *http.Request) {
	data, err := h.Q.Charts(r.Context())
	if err != nil {
		writeNoData(w, err)
		return
	}
	writeCacheable(w, r, data)
}

// filters exposes the fixed filter vocabularies and chart colors so the
// frontend carries no hard-coded tables.
func (h *Handlers) filters(w http.ResponseWriter, r *http.Request) {
	writeCacheable(w, r, map[string]any{
		"sentiments":   domain.SentimentFilters,
		"themes":       domain.ThemeFilters,
		"chartColors":  domain.ChartColors,
		"sourceColors": domain.SourceColors,
	})
}
