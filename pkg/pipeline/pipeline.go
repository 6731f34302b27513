// Package pipeline runs extraction over all configured sites and persists the combined batch.
//
// A run resyncs the id allocator from the store, prefetches all site pages (concurrently
// when more than one worker is allowed), extracts sites one by one in configuration order,
// persists everything once and resyncs the allocator again. Sites are extracted sequentially
// so ids are assigned in a deterministic order regardless of fetch concurrency.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/coinscope/pkg/domain"
)

//go:generate moq -out mocks/extractor.go -pkg mocks -skip-ensure -fmt goimports . Extractor
//go:generate moq -out mocks/persister.go -pkg mocks -skip-ensure -fmt goimports . Persister
//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store

// Extractor loads site pages and extracts articles from them
type Extractor interface {
	Load(ctx context.Context, site domain.Site) (*goquery.Document, error)
	ExtractDocument(ctx context.Context, site domain.Site, doc *goquery.Document) ([]domain.Article, error)
}

// Persister writes the combined batch
type Persister interface {
	Persist(ctx context.Context, articles []domain.Article) (int, error)
}

// Store reports the highest persisted id
type Store interface {
	MaxID(ctx context.Context) (int64, error)
}

// Allocator is the id counter shared with the extractor
type Allocator interface {
	Resync(maxPersistedID int64)
	Current() int64
}

// Config holds pipeline configuration
type Config struct {
	Sites           []domain.Site
	MaxWorkers      int
	IsolateFailures bool
	Interval        time.Duration
}

// SiteReport is the outcome of one site in a run
type SiteReport struct {
	URL       string `json:"url"`
	Extracted int    `json:"extracted"`
	Err       error  `json:"-"`
	Error     string `json:"error,omitempty"`
}

// Report summarizes a run
type Report struct {
	StartedAt time.Time     `json:"started_at"`
	Sites     []SiteReport  `json:"sites"`
	Extracted int           `json:"extracted"`
	Inserted  int           `json:"inserted"`
	Duration  time.Duration `json:"duration"`
}

// Failed returns the number of sites that failed in the run
func (r Report) Failed() int {
	res := 0
	for _, s := range r.Sites {
		if s.Err != nil {
			res++
		}
	}
	return res
}

// Pipeline orchestrates extraction runs. Runs are serialized, a scheduled run and a
// manually triggered one never overlap.
type Pipeline struct {
	extractor Extractor
	persister Persister
	store     Store
	ids       Allocator
	cfg       Config

	runMu  sync.Mutex // serializes runs
	lastMu sync.RWMutex
	last   *Report

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

// New creates a pipeline
func New(extractor Extractor, persister Persister, store Store, ids Allocator, cfg Config) *Pipeline {
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = 1
	}
	return &Pipeline{extractor: extractor, persister: persister, store: store, ids: ids, cfg: cfg}
}

// RunOnce performs a single run. With failure isolation on, site errors are recorded in the
// report and don't fail the run; otherwise the first site error aborts the run before anything
// is persisted. Resync and persist errors always fail the run.
func (p *Pipeline) RunOnce(ctx context.Context) (Report, error) {
	p.runMu.Lock()
	defer p.runMu.Unlock()

	report := Report{StartedAt: time.Now(), Sites: make([]SiteReport, 0, len(p.cfg.Sites))}
	if err := p.resync(ctx); err != nil {
		return report, err
	}

	docs, loadErrs, err := p.prefetch(ctx)
	if err != nil {
		return report, err
	}

	batch := []domain.Article{}
	for i, site := range p.cfg.Sites {
		sr := SiteReport{URL: site.URL}
		var extracted []domain.Article
		err := loadErrs[i]
		if err == nil {
			extracted, err = p.extractor.ExtractDocument(ctx, site, docs[i])
		}
		if err != nil {
			if !p.cfg.IsolateFailures {
				return report, fmt.Errorf("site %s: %w", site.URL, err)
			}
			lgr.Printf("[WARN] skip site %s: %v", site.URL, err)
			sr.Err, sr.Error = err, err.Error()
			report.Sites = append(report.Sites, sr)
			continue
		}
		lgr.Printf("[INFO] extracted %d articles from %s", len(extracted), site.URL)
		sr.Extracted = len(extracted)
		report.Sites = append(report.Sites, sr)
		report.Extracted += len(extracted)
		batch = append(batch, extracted...)
	}

	inserted, err := p.persister.Persist(ctx, batch)
	if err != nil {
		return report, fmt.Errorf("persist articles: %w", err)
	}
	report.Inserted = inserted
	lgr.Printf("[INFO] inserted %d new articles", inserted)

	if err := p.resync(ctx); err != nil {
		return report, err
	}

	report.Duration = time.Since(report.StartedAt)
	p.lastMu.Lock()
	p.last = &report
	p.lastMu.Unlock()

	lgr.Printf("[INFO] run completed in %v, sites %d, failed %d, extracted %d, inserted %d",
		report.Duration, len(report.Sites), report.Failed(), report.Extracted, report.Inserted)
	return report, nil
}

// LastReport returns the report of the last completed run
func (p *Pipeline) LastReport() (Report, bool) {
	p.lastMu.RLock()
	defer p.lastMu.RUnlock()
	if p.last == nil {
		return Report{}, false
	}
	return *p.last, true
}

// Counter returns the current value of the id allocator
func (p *Pipeline) Counter() int64 {
	return p.ids.Current()
}

// Start begins periodic runs, the first one immediately. Does nothing when no interval is set.
func (p *Pipeline) Start(ctx context.Context) {
	if p.cfg.Interval <= 0 {
		return
	}
	ctx, p.cancel = context.WithCancel(ctx)

	p.wg.Add(1)
	go p.worker(ctx)

	lgr.Printf("[INFO] pipeline started with interval %v, %d sites", p.cfg.Interval, len(p.cfg.Sites))
}

// Stop gracefully stops periodic runs
func (p *Pipeline) Stop() {
	lgr.Printf("[INFO] stopping pipeline...")
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
	lgr.Printf("[INFO] pipeline stopped")
}

func (p *Pipeline) worker(ctx context.Context) {
	defer p.wg.Done()

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	// run immediately on start
	p.scheduledRun(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.scheduledRun(ctx)
		}
	}
}

func (p *Pipeline) scheduledRun(ctx context.Context) {
	if _, err := p.RunOnce(ctx); err != nil && !errors.Is(err, context.Canceled) {
		lgr.Printf("[ERROR] run failed: %v", err)
	}
}

// resync advances the allocator to the highest stored id
func (p *Pipeline) resync(ctx context.Context) error {
	maxID, err := p.store.MaxID(ctx)
	if err != nil {
		return fmt.Errorf("resync ids: %w", err)
	}
	p.ids.Resync(maxID)
	lgr.Printf("[DEBUG] allocator resynced to %d", maxID)
	return nil
}

// prefetch loads all site documents with up to MaxWorkers concurrent fetches.
// Per-site errors are returned by index. Without failure isolation the first error
// cancels the remaining fetches and is returned as err.
func (p *Pipeline) prefetch(ctx context.Context) (docs []*goquery.Document, loadErrs []error, err error) {
	docs = make([]*goquery.Document, len(p.cfg.Sites))
	loadErrs = make([]error, len(p.cfg.Sites))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.MaxWorkers)
	for i, site := range p.cfg.Sites {
		g.Go(func() error {
			doc, err := p.extractor.Load(gctx, site)
			if err != nil {
				loadErrs[i] = err
				if !p.cfg.IsolateFailures {
					return fmt.Errorf("site %s: %w", site.URL, err)
				}
				return nil
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return docs, loadErrs, nil
}
