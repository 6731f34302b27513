package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/coinscope/pkg/domain"
	"github.com/umputun/coinscope/pkg/pipeline"
	"github.com/umputun/coinscope/server/mocks"
)

func testConfig(listen string) *mocks.ConfigProviderMock {
	return &mocks.ConfigProviderMock{
		GetServerConfigFunc: func() (string, time.Duration) { return listen, 30 * time.Second },
		GetBaseURLFunc:      func() string { return "https://news.example.com" },
	}
}

func testRunner() *mocks.RunnerMock {
	return &mocks.RunnerMock{
		CounterFunc:    func() int64 { return 42 },
		LastReportFunc: func() (pipeline.Report, bool) { return pipeline.Report{}, false },
		RunOnceFunc:    func(context.Context) (pipeline.Report, error) { return pipeline.Report{Inserted: 1}, nil },
	}
}

var storedArticles = []domain.Article{
	{ID: 2, Title: "Ethereum upgrade", Date: "March 07, 2024", Source: "cryptopotato.com",
		SourceURL: "https://cryptopotato.com/crypto-news/", Category: "ETH", Sentiment: domain.SentimentPositive},
	{ID: 1, Title: "Bitcoin hits new high", Description: "Analysts react", Date: "March 07, 2024",
		Source: "www.newsbtc.com", SourceURL: "https://www.newsbtc.com/news/", Category: "BTC",
		Sentiment: domain.SentimentNeutral},
}

func TestServer_Run(t *testing.T) {
	// find free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())

	srv := New(testConfig(fmt.Sprintf("127.0.0.1:%d", port)), &mocks.DatabaseMock{}, testRunner(), "1.0.0", false)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = http.Get(fmt.Sprintf("http://127.0.0.1:%d/ping", port))
		return err == nil
	}, time.Second, 10*time.Millisecond)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "pong", string(body))
	assert.Equal(t, "coinscope", resp.Header.Get("App-Name"))

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server didn't stop")
	}
}

func TestServer_RunWaitsForTriggeredRun(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())

	started, release := make(chan struct{}), make(chan struct{})
	var finished atomic.Bool
	runner := testRunner()
	runner.RunOnceFunc = func(context.Context) (pipeline.Report, error) {
		close(started)
		<-release
		finished.Store(true)
		return pipeline.Report{}, nil
	}
	srv := New(testConfig(fmt.Sprintf("127.0.0.1:%d", port)), &mocks.DatabaseMock{}, runner, "1.0.0", false)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = http.Post(fmt.Sprintf("http://127.0.0.1:%d/api/v1/run", port), "application/json", http.NoBody)
		return err == nil
	}, time.Second, 10*time.Millisecond)
	resp.Body.Close()
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)

	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("triggered run didn't start")
	}

	cancel()
	select {
	case <-done:
		t.Fatal("server stopped while a triggered run was in flight")
	case <-time.After(100 * time.Millisecond):
	}

	close(release)
	select {
	case err := <-done:
		require.NoError(t, err)
		assert.True(t, finished.Load())
	case <-time.After(2 * time.Second):
		t.Fatal("server didn't stop")
	}
}

func TestServer_articlesHandler(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantFilter domain.ArticleFilter
		wantCode   int
	}{
		{name: "defaults", query: "", wantFilter: domain.ArticleFilter{Limit: defaultArticlesLimit}, wantCode: http.StatusOK},
		{name: "category and limit", query: "?category=BTC&limit=5", wantFilter: domain.ArticleFilter{Category: "BTC", Limit: 5},
			wantCode: http.StatusOK},
		{name: "limit capped", query: "?limit=100000", wantFilter: domain.ArticleFilter{Limit: maxArticlesLimit},
			wantCode: http.StatusOK},
		{name: "bad limit", query: "?limit=abc", wantCode: http.StatusBadRequest},
		{name: "zero limit", query: "?limit=0", wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := &mocks.DatabaseMock{ArticlesFunc: func(_ context.Context, filter domain.ArticleFilter) ([]domain.Article, error) {
				return storedArticles, nil
			}}
			srv := New(testConfig(":8080"), db, testRunner(), "test", false)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/articles"+tt.query, http.NoBody)
			w := httptest.NewRecorder()
			srv.router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantCode != http.StatusOK {
				assert.Empty(t, db.ArticlesCalls())
				return
			}
			require.Len(t, db.ArticlesCalls(), 1)
			assert.Equal(t, tt.wantFilter, db.ArticlesCalls()[0].Filter)

			var got []domain.Article
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			assert.Equal(t, storedArticles, got)
		})
	}

	t.Run("store error", func(t *testing.T) {
		db := &mocks.DatabaseMock{ArticlesFunc: func(context.Context, domain.ArticleFilter) ([]domain.Article, error) {
			return nil, errors.New("db down")
		}}
		srv := New(testConfig(":8080"), db, testRunner(), "test", false)
		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/articles", http.NoBody))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "can't get articles")
	})
}

func TestServer_statusHandler(t *testing.T) {
	runner := testRunner()
	runner.LastReportFunc = func() (pipeline.Report, bool) {
		return pipeline.Report{Extracted: 3, Inserted: 2, Sites: []pipeline.SiteReport{{URL: "https://a/", Extracted: 3}}}, true
	}
	srv := New(testConfig(":8080"), &mocks.DatabaseMock{}, runner, "1.2.3", false)

	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/status", http.NoBody))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var status statusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, "1.2.3", status.Version)
	assert.Equal(t, int64(42), status.Counter)
	assert.False(t, status.Running)
	require.NotNil(t, status.LastReport)
	assert.Equal(t, 2, status.LastReport.Inserted)
	assert.Equal(t, "https://a/", status.LastReport.Sites[0].URL)
}

func TestServer_runHandler(t *testing.T) {
	release := make(chan struct{})
	var runs atomic.Int32
	runner := testRunner()
	runner.RunOnceFunc = func(context.Context) (pipeline.Report, error) {
		runs.Add(1)
		<-release
		return pipeline.Report{}, nil
	}
	srv := New(testConfig(":8080"), &mocks.DatabaseMock{}, runner, "test", false)

	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/run", http.NoBody))
	assert.Equal(t, http.StatusAccepted, w.Code)

	// second trigger while the first is in flight is rejected
	w = httptest.NewRecorder()
	srv.router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/run", http.NoBody))
	assert.Equal(t, http.StatusConflict, w.Code)

	close(release)
	require.Eventually(t, func() bool { return !srv.running.Load() }, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(1), runs.Load())
}

func TestServer_rssHandler(t *testing.T) {
	tests := []struct {
		name         string
		path         string
		wantCategory string
		wantTitle    string
	}{
		{name: "category path", path: "/rss/BTC", wantCategory: "BTC", wantTitle: "<title>Coinscope - BTC</title>"},
		{name: "category query", path: "/rss?category=ETH", wantCategory: "ETH", wantTitle: "<title>Coinscope - ETH</title>"},
		{name: "all", path: "/rss", wantTitle: "<title>Coinscope - All Categories</title>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := &mocks.DatabaseMock{ArticlesFunc: func(context.Context, domain.ArticleFilter) ([]domain.Article, error) {
				return storedArticles, nil
			}}
			srv := New(testConfig(":8080"), db, testRunner(), "test", false)

			w := httptest.NewRecorder()
			srv.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, http.NoBody))

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "application/rss+xml; charset=utf-8", w.Header().Get("Content-Type"))
			assert.Contains(t, w.Body.String(), tt.wantTitle)
			assert.Contains(t, w.Body.String(), "<title>[BTC] Bitcoin hits new high</title>")
			assert.Contains(t, w.Body.String(), `href="https://news.example.com/rss`)

			require.Len(t, db.ArticlesCalls(), 1)
			assert.Equal(t, domain.ArticleFilter{Category: tt.wantCategory, Limit: defaultRSSLimit}, db.ArticlesCalls()[0].Filter)
		})
	}

	t.Run("store error", func(t *testing.T) {
		db := &mocks.DatabaseMock{ArticlesFunc: func(context.Context, domain.ArticleFilter) ([]domain.Article, error) {
			return nil, errors.New("db down")
		}}
		srv := New(testConfig(":8080"), db, testRunner(), "test", false)
		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rss/BTC", http.NoBody))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestServer_opmlHandler(t *testing.T) {
	db := &mocks.DatabaseMock{CategoriesFunc: func(context.Context) ([]string, error) { return []string{"BTC", "DOGE"}, nil }}
	srv := New(testConfig(":8080"), db, testRunner(), "test", false)

	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/opml", http.NoBody))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `xmlUrl="https://news.example.com/rss/DOGE"`)
}
