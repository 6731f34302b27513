package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/coinscope/pkg/domain"
	"github.com/umputun/coinscope/pkg/pipeline"
)

// statusResponse is returned by the status endpoint
type statusResponse struct {
	Status     string           `json:"status"`
	Version    string           `json:"version"`
	Time       time.Time        `json:"time"`
	Counter    int64            `json:"counter"`
	Running    bool             `json:"running"`
	LastReport *pipeline.Report `json:"last_report,omitempty"`
}

// articlesHandler lists stored articles, newest first. Supports category and limit query params.
func (s *Server) articlesHandler(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r, defaultArticlesLimit)
	if err != nil {
		RenderError(w, r, err, http.StatusBadRequest)
		return
	}

	articles, err := s.db.Articles(r.Context(), filter)
	if err != nil {
		lgr.Printf("[ERROR] failed to get articles: %v", err)
		RenderError(w, r, fmt.Errorf("can't get articles"), http.StatusInternalServerError)
		return
	}
	RenderJSON(w, r, http.StatusOK, articles)
}

// statusHandler returns server status with the allocator counter and the last run report
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	resp := statusResponse{
		Status:  "ok",
		Version: s.version,
		Time:    time.Now().UTC(),
		Counter: s.runner.Counter(),
		Running: s.running.Load(),
	}
	if report, ok := s.runner.LastReport(); ok {
		resp.LastReport = &report
	}
	RenderJSON(w, r, http.StatusOK, resp)
}

// runHandler starts a run in background. Only one triggered run can be in flight,
// it is serialized with scheduled runs by the pipeline itself.
func (s *Server) runHandler(w http.ResponseWriter, r *http.Request) {
	if !s.running.CompareAndSwap(false, true) {
		RenderError(w, r, fmt.Errorf("run already in progress"), http.StatusConflict)
		return
	}

	s.lock.Lock()
	ctx := s.baseCtx
	s.lock.Unlock()

	s.runs.Add(1)
	go func(ctx context.Context) {
		defer s.runs.Done()
		defer s.running.Store(false)
		report, err := s.runner.RunOnce(ctx)
		if err != nil {
			lgr.Printf("[WARN] triggered run failed: %v", err)
			return
		}
		lgr.Printf("[INFO] triggered run inserted %d new articles", report.Inserted)
	}(ctx)

	RenderJSON(w, r, http.StatusAccepted, map[string]string{"status": "started"})
}

// parseFilter reads category and limit query params
func parseFilter(r *http.Request, defLimit int) (domain.ArticleFilter, error) {
	filter := domain.ArticleFilter{Category: r.URL.Query().Get("category"), Limit: defLimit}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			return filter, fmt.Errorf("invalid limit %q", limitStr)
		}
		filter.Limit = min(limit, maxArticlesLimit)
	}
	return filter, nil
}
