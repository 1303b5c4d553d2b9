package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"vispell/internal/corrector"
)

const maxBodyBytes = 1 << 20

func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/check_spelling", s.handleCheckSpelling)
	mux.HandleFunc("POST /api/suggestions", s.handleSuggestions)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/stats", s.handleStats)
	mux.HandleFunc("POST /api/cache/clear", s.handleClearCache)
	mux.HandleFunc("POST /api/v1/custom-word", s.handleAddCustomWord)
	mux.HandleFunc("DELETE /api/v1/custom-word/{word}", s.handleRemoveCustomWord)
}

type checkRequest struct {
	Text string `json:"text"`
}

// CheckResponse is a correction result annotated with request details.
type CheckResponse struct {
	corrector.CorrectionResult
	ProcessingTimeMs float64   `json:"processing_time_ms"`
	TextLength       int       `json:"text_length"`
	Timestamp        time.Time `json:"timestamp"`
}

type suggestionsRequest struct {
	Word string `json:"word"`
}

type SuggestionsResponse struct {
	Word        string    `json:"word"`
	Suggestions []string  `json:"suggestions"`
	Timestamp   time.Time `json:"timestamp"`
}

type HealthResponse struct {
	Status        string               `json:"status"`
	Version       string               `json:"version"`
	UptimeSeconds float64              `json:"uptime"`
	Timestamp     time.Time            `json:"timestamp"`
	CacheStats    corrector.CacheStats `json:"cache_stats"`
	Config        any                  `json:"config,omitempty"`
}

type StatsResponse struct {
	MetricsSnapshot
	UptimeSeconds float64              `json:"uptime"`
	Timestamp     time.Time            `json:"timestamp"`
	CacheStats    corrector.CacheStats `json:"cache_stats"`
	Config        any                  `json:"config,omitempty"`
}

type wordRequest struct {
	Word string `json:"word"`
}

func (s *Server) handleCheckSpelling(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	failed, cached := true, false
	defer func() { s.metrics.Record("check_spelling", time.Since(start), failed, cached) }()

	var req checkRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, corrector.ErrEmptyText.Error())
		return
	}

	res, err := s.checker.CheckText(req.Text)
	if err != nil {
		s.writeCheckerError(w, r, err)
		return
	}
	failed, cached = res.Error != "", res.Cached

	writeJSON(w, http.StatusOK, CheckResponse{
		CorrectionResult: res,
		ProcessingTimeMs: round2(float64(time.Since(start)) / float64(time.Millisecond)),
		TextLength:       utf8.RuneCountInString(req.Text),
		Timestamp:        time.Now(),
	})
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	failed := true
	defer func() { s.metrics.Record("suggestions", time.Since(start), failed, false) }()

	var req suggestionsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	list, err := s.checker.GetSuggestions(req.Word)
	if err != nil {
		s.writeCheckerError(w, r, err)
		return
	}
	failed = false
	writeJSON(w, http.StatusOK, SuggestionsResponse{
		Word:        req.Word,
		Suggestions: list,
		Timestamp:   time.Now(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:        "healthy",
		Version:       s.cfg.Version,
		UptimeSeconds: s.uptime(),
		Timestamp:     time.Now(),
		CacheStats:    s.checker.CacheStats(),
		Config:        s.cfg.Settings,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StatsResponse{
		MetricsSnapshot: s.metrics.Snapshot(),
		UptimeSeconds:   s.uptime(),
		Timestamp:       time.Now(),
		CacheStats:      s.checker.CacheStats(),
		Config:          s.cfg.Settings,
	})
}

func (s *Server) handleClearCache(w http.ResponseWriter, r *http.Request) {
	s.checker.ClearCache()
	s.logger.Info("cache cleared", "request_id", RequestID(r.Context()))
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAddCustomWord(w http.ResponseWriter, r *http.Request) {
	var req wordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.checker.AddCustomWord(r.Context(), req.Word); err != nil {
		s.writeCheckerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
}

func (s *Server) handleRemoveCustomWord(w http.ResponseWriter, r *http.Request) {
	if err := s.checker.RemoveCustomWord(r.Context(), r.PathValue("word")); err != nil {
		s.writeCheckerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) uptime() float64 {
	return round2(time.Since(s.started).Seconds())
}

// writeCheckerError maps input errors to 400 and hides anything else behind
// a 500.
func (s *Server) writeCheckerError(w http.ResponseWriter, r *http.Request, err error) {
	if corrector.IsInputError(err) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Error("request failed", "path", r.URL.Path, "error", err, "request_id", RequestID(r.Context()))
	writeError(w, http.StatusInternalServerError, "internal server error")
}

var errInvalidJSON = errors.New("invalid JSON body")

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return errInvalidJSON
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
