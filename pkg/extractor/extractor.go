// Package extractor turns a news site's listing page into categorized article records.
// Each matching fragment of the page is classified by its title, scored for sentiment
// and assigned the next identifier. Fragments without a title or a category are skipped
// and consume no identifier.
package extractor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/umputun/coinscope/pkg/domain"
	"github.com/umputun/coinscope/pkg/sentiment"
)

//go:generate moq -out mocks/fetcher.go -pkg mocks -skip-ensure -fmt goimports . Fetcher
//go:generate moq -out mocks/scorer.go -pkg mocks -skip-ensure -fmt goimports . Scorer

// Fetcher retrieves and parses a page
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) (*goquery.Document, error)
}

// Classifier maps a title to a category
type Classifier interface {
	Classify(text string) (string, bool)
}

// Scorer returns an external sentiment label for text
type Scorer interface {
	Score(ctx context.Context, text string) (string, error)
}

// Allocator hands out article identifiers
type Allocator interface {
	Next() int64
}

// Extractor builds article records from site listing pages
type Extractor struct {
	fetcher    Fetcher
	classifier Classifier
	scorer     Scorer
	ids        Allocator
	now        func() time.Time
}

// New makes an extractor
func New(fetcher Fetcher, classifier Classifier, scorer Scorer, ids Allocator) *Extractor {
	return &Extractor{fetcher: fetcher, classifier: classifier, scorer: scorer, ids: ids, now: time.Now}
}

// Extract fetches the site page and returns its categorized articles in document order
func (e *Extractor) Extract(ctx context.Context, site domain.Site) ([]domain.Article, error) {
	doc, err := e.Load(ctx, site)
	if err != nil {
		return nil, err
	}
	return e.ExtractDocument(ctx, site, doc)
}

// Load validates the site and fetches its document. Nothing is fetched for an invalid site.
func (e *Extractor) Load(ctx context.Context, site domain.Site) (*goquery.Document, error) {
	if err := site.Validate(); err != nil {
		return nil, err
	}
	doc, err := e.fetcher.Fetch(ctx, site.URL)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", site.URL, err)
	}
	return doc, nil
}

// ExtractDocument runs extraction over an already parsed document.
// An identifier is allocated only for emitted articles, after scoring succeeded.
func (e *Extractor) ExtractDocument(ctx context.Context, site domain.Site, doc *goquery.Document) ([]domain.Article, error) {
	if err := site.Validate(); err != nil {
		return nil, err
	}

	date := e.now().Format(domain.DateLayout)
	source := site.Source()

	fragments := doc.Find(site.ArticleSelector)
	if fragments.Length() > site.Limit() {
		fragments = fragments.Slice(0, site.Limit())
	}

	res := []domain.Article{}
	for i := range fragments.Length() {
		frag := fragments.Eq(i)

		titleNode := findByClass(frag, site.TitleSelector, site.TitleClass)
		if titleNode.Length() == 0 {
			continue // decoration, not an article
		}
		title := strings.TrimSpace(titleNode.Text())

		category, ok := e.classifier.Classify(title)
		if !ok {
			continue
		}

		description := ""
		if site.DescriptionSelector != "" {
			if d := frag.Find(site.DescriptionSelector).First(); d.Length() > 0 {
				description = strings.TrimSpace(d.Text())
			}
		}

		label, err := e.scorer.Score(ctx, title+" "+description)
		if err != nil {
			return nil, fmt.Errorf("score sentiment for %q: %w", title, err)
		}

		res = append(res, domain.Article{
			ID:          e.ids.Next(),
			Title:       title,
			Description: description,
			Date:        date,
			Source:      source,
			SourceURL:   site.URL,
			Category:    category,
			Sentiment:   sentiment.Normalize(label),
		})
	}
	return res, nil
}

// findByClass returns the first descendant with the given tag (any tag when empty) carrying all classes of class
func findByClass(frag *goquery.Selection, tag, class string) *goquery.Selection {
	if tag == "" {
		tag = "*"
	}
	classes := strings.Fields(class)
	return frag.Find(tag).FilterFunction(func(_ int, s *goquery.Selection) bool {
		for _, c := range classes {
			if !s.HasClass(c) {
				return false
			}
		}
		return true
	}).First()
}
