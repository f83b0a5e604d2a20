// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package web exposes the stored jobs over a small JSON API.
package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"chakri-scan/internal/cache"
	"chakri-scan/internal/cleaner"
	"chakri-scan/internal/formatters"
	"chakri-scan/internal/job"
	"chakri-scan/internal/store"
	"chakri-scan/internal/version"
)

// Server serves the job API.
type Server struct {
	addr   string
	store  *store.Store
	cache  *cache.Cache
	server *http.Server
}

// NewServer creates a server over the store. cache may be nil when Redis is
// not configured; list responses are then computed per request.
func NewServer(addr string, st *store.Store, c *cache.Cache) *Server {
	return &Server{
		addr:  addr,
		store: st,
		cache: c,
	}
}

// Start blocks serving HTTP until the listener fails or Stop is called.
func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/jobs", s.handleJobs)
	mux.HandleFunc("/jobs/", s.handleJobByID)
	mux.HandleFunc("/search/", s.handleSearch)
	mux.HandleFunc("/export/", s.handleExport)

	s.server = &http.Server{
		Addr:              s.addr,
		Handler:           mux,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("[web] listening on %s", s.addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop closes the server.
func (s *Server) Stop() error {
	if s.server != nil {
		return s.server.Close()
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	activeJobs, err := s.store.CountActive(r.Context())
	status := "healthy"
	if err != nil {
		status = "degraded"
		log.Printf("[web] health check count: %v", err)
	}

	versionInfo := version.Full()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":      status,
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"service":     "chakri-scan-web",
		"version":     versionInfo["version"],
		"active_jobs": activeJobs,
	})
}

func (s *Server) handleJobs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	filter := store.Filter{
		Department: q.Get("department"),
		Location:   q.Get("location"),
		ActiveOnly: q.Get("include_inactive") != "true",
		Limit:      queryInt(q.Get("limit"), 50),
		Offset:     queryInt(q.Get("offset"), 0),
	}
	if minQ, err := strconv.ParseFloat(q.Get("min_quality"), 64); err == nil {
		filter.MinQuality = minQ
	}

	// Cache keyed by the full query so filter variants do not collide.
	cacheKey := "jobs:list:" + r.URL.RawQuery
	if s.cache != nil {
		var cached []job.CanonicalJob
		if err := s.cache.Get(r.Context(), cacheKey, &cached); err == nil {
			writeJSON(w, http.StatusOK, map[string]interface{}{"jobs": cached, "cached": true})
			return
		}
	}

	jobs, err := s.store.List(r.Context(), filter)
	if err != nil {
		http.Error(w, "failed to list jobs", http.StatusInternalServerError)
		log.Printf("[web] list: %v", err)
		return
	}

	if s.cache != nil {
		if err := s.cache.Set(r.Context(), cacheKey, jobs); err != nil {
			log.Printf("[web] cache set: %v", err)
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"jobs": jobs})
}

func (s *Server) handleJobByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/jobs/")
	if id == "" || strings.Contains(id, "/") {
		http.Error(w, "invalid job id", http.StatusBadRequest)
		return
	}

	j, err := s.store.GetByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "job not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "failed to load job", http.StatusInternalServerError)
		log.Printf("[web] get %s: %v", id, err)
		return
	}

	writeJSON(w, http.StatusOK, j)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := strings.TrimPrefix(r.URL.Path, "/search/")
	if query == "" {
		http.Error(w, "empty search query", http.StatusBadRequest)
		return
	}

	jobs, err := s.store.Search(r.Context(), query, queryInt(r.URL.Query().Get("limit"), 50))
	if err != nil {
		http.Error(w, "search failed", http.StatusInternalServerError)
		log.Printf("[web] search %q: %v", query, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"query": query,
		"count": len(jobs),
		"jobs":  jobs,
	})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	format := strings.TrimPrefix(r.URL.Path, "/export/")
	if format == "" {
		http.Error(w, "missing export format", http.StatusBadRequest)
		return
	}

	jobs, err := s.store.List(r.Context(), store.Filter{ActiveOnly: true})
	if err != nil {
		http.Error(w, "failed to load jobs", http.StatusInternalServerError)
		log.Printf("[web] export list: %v", err)
		return
	}

	scored := make([]job.ScoredJob, 0, len(jobs))
	for _, j := range jobs {
		scored = append(scored, job.ScoredJob{Job: j})
	}

	content, mimeType, filename, err := formatters.ExportForWeb(format, scored, cleaner.BatchReport{}, formatters.FormatterOptions{NoColor: true})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(content)); err != nil {
		log.Printf("[web] export write: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[web] encode response: %v", err)
	}
}

func queryInt(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
