package api

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"expvar"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/rs/cors"

	"github.com/speaknative/verbgen/internal/lookup"
	"github.com/speaknative/verbgen/internal/models"
)

// Server is an HTTP API server that exposes the generated verb manifest.
type Server struct {
	index          *lookup.Index
	runID          string
	logger         *slog.Logger
	authToken      string // empty = no auth required
	allowedOrigins []string
}

// NewServer creates a new Server over idx. runID identifies the generation
// run or manifest file the index was built from.
func NewServer(idx *lookup.Index, runID string, logger *slog.Logger, authToken string, allowedOrigins []string) *Server {
	return &Server{
		index:          idx,
		runID:          runID,
		logger:         logger,
		authToken:      authToken,
		allowedOrigins: allowedOrigins,
	}
}

// Handler returns an http.Handler with all routes registered and CORS applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Health check, no auth required.
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.Handle("GET /debug/vars", expvar.Handler())

	mux.HandleFunc("GET /v1/verbs", s.auth(s.handleListVerbs))
	mux.HandleFunc("GET /v1/verbs/{id}", s.auth(s.handleGetVerb))
	mux.HandleFunc("GET /v1/verbs/{id}/{locale}", s.auth(s.handleGetConjugation))
	mux.HandleFunc("GET /v1/forms/{form}", s.auth(s.handleFindForm))
	mux.HandleFunc("GET /v1/stats", s.auth(s.handleStats))

	c := cors.New(cors.Options{
		AllowedOrigins: s.allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         600,
	})
	return c.Handler(mux)
}

// --- middleware ---

// auth wraps a handler with Bearer token authentication when authToken is set.
func (s *Server) auth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.authToken == "" {
			next(w, r)
			return
		}
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(s.authToken)) != 1 {
			s.writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next(w, r)
	}
}

// --- handlers ---

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// listVerbsResponse is returned by GET /v1/verbs.
type listVerbsResponse struct {
	Verbs []lookup.Verb `json:"verbs,omitempty"`
	IDs   []string      `json:"ids,omitempty"`
}

// handleListVerbs returns flattened verbs when both source and target query
// parameters are given, otherwise the list of ids.
func (s *Server) handleListVerbs(w http.ResponseWriter, r *http.Request) {
	source := r.URL.Query().Get("source")
	target := r.URL.Query().Get("target")

	if source == "" && target == "" {
		ids := make([]string, 0, s.index.Len())
		for _, rec := range s.index.Records() {
			ids = append(ids, rec.ID)
		}
		s.writeJSON(w, http.StatusOK, listVerbsResponse{IDs: ids})
		return
	}
	if source == "" || target == "" {
		s.writeError(w, http.StatusBadRequest, "source and target must be given together")
		return
	}

	s.writeJSON(w, http.StatusOK, listVerbsResponse{Verbs: s.index.ForLocales(source, target)})
}

func (s *Server) handleGetVerb(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	rec, err := s.index.ByID(id)
	if err != nil {
		if errors.Is(err, lookup.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "verb not found")
			return
		}
		s.logger.Error("failed to get verb", "id", id, "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to get verb")
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

// conjugationResponse is returned by GET /v1/verbs/{id}/{locale}.
type conjugationResponse struct {
	ID          string                  `json:"id"`
	Locale      string                  `json:"locale"`
	Conjugation models.ConjugationTable `json:"conjugation"`
}

func (s *Server) handleGetConjugation(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	locale := r.PathValue("locale")

	table, tag, err := s.index.Conjugation(id, locale)
	if err != nil {
		if errors.Is(err, lookup.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "verb or locale not found")
			return
		}
		s.logger.Error("failed to get conjugation", "id", id, "locale", locale, "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to get conjugation")
		return
	}

	if tense := r.URL.Query().Get("tense"); tense != "" {
		if !models.Tense(tense).IsValid() {
			s.writeError(w, http.StatusBadRequest, "invalid tense")
			return
		}
		table = models.ConjugationTable{models.Tense(tense): table[models.Tense(tense)]}
	}

	s.writeJSON(w, http.StatusOK, conjugationResponse{ID: id, Locale: tag, Conjugation: table})
}

// findFormResponse is returned by GET /v1/forms/{form}.
type findFormResponse struct {
	Matches []lookup.FormMatch `json:"matches"`
}

func (s *Server) handleFindForm(w http.ResponseWriter, r *http.Request) {
	form := r.PathValue("form")
	if strings.TrimSpace(form) == "" {
		s.writeError(w, http.StatusBadRequest, "form is required")
		return
	}
	matches := s.index.FindForm(form)
	if matches == nil {
		matches = []lookup.FormMatch{}
	}
	s.writeJSON(w, http.StatusOK, findFormResponse{Matches: matches})
}

// statsResponse is returned by GET /v1/stats.
type statsResponse struct {
	RunID   string   `json:"run_id"`
	Verbs   int      `json:"verbs"`
	Locales []string `json:"locales"`
	Cells   int      `json:"cells"`
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, statsResponse{
		RunID:   s.runID,
		Verbs:   s.index.Len(),
		Locales: s.index.Locales(),
		Cells:   s.index.Cells(),
	})
}

// --- helpers ---

// writeJSON encodes v as JSON and writes it to w with the given status code.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if encErr := json.NewEncoder(w).Encode(v); encErr != nil {
		s.logger.Error("failed to encode response", "error", encErr)
	}
}

// writeError writes a JSON error response.
func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

// Shutdown gracefully shuts down an http.Server with the given timeout.
// This is a convenience helper used by the serve command.
func Shutdown(srv *http.Server, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return srv.Shutdown(ctx)
}
