package server

import (
	"net/http"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/coinscope/pkg/domain"
	"github.com/umputun/coinscope/pkg/feed"
)

// rssHandler serves RSS feed for stored articles.
// Supports both /rss/{category} and /rss?category=... patterns, all categories when neither is set.
func (s *Server) rssHandler(w http.ResponseWriter, r *http.Request) {
	category := r.PathValue("category")
	if category == "" {
		category = r.URL.Query().Get("category")
	}

	articles, err := s.db.Articles(r.Context(), domain.ArticleFilter{Category: category, Limit: defaultRSSLimit})
	if err != nil {
		lgr.Printf("[ERROR] failed to get articles for RSS: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	rss, err := feed.NewGenerator(s.config.GetBaseURL()).GenerateRSS(articles, category)
	if err != nil {
		lgr.Printf("[ERROR] failed to generate RSS feed: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	if _, err := w.Write([]byte(rss)); err != nil {
		lgr.Printf("[ERROR] failed to write RSS response: %v", err)
	}
}

// opmlHandler lists per-category RSS feeds for stored categories
func (s *Server) opmlHandler(w http.ResponseWriter, r *http.Request) {
	categories, err := s.db.Categories(r.Context())
	if err != nil {
		lgr.Printf("[ERROR] failed to get categories for OPML: %v", err)
		http.Error(w, "Failed to generate OPML", http.StatusInternalServerError)
		return
	}

	opml, err := feed.NewGenerator(s.config.GetBaseURL()).GenerateOPML(categories)
	if err != nil {
		lgr.Printf("[ERROR] failed to generate OPML: %v", err)
		http.Error(w, "Failed to generate OPML", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/x-opml; charset=utf-8")
	if _, err := w.Write([]byte(opml)); err != nil {
		lgr.Printf("[ERROR] failed to write OPML response: %v", err)
	}
}
