// Package feed renders stored articles as RSS 2.0 and lists per-category feeds as OPML
package feed

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/umputun/coinscope/pkg/domain"
)

// Generator creates RSS feeds from articles
type Generator struct {
	baseURL string
}

// NewGenerator creates a new feed generator
func NewGenerator(baseURL string) *Generator {
	return &Generator{
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// GenerateRSS creates an RSS 2.0 feed from articles, for one category or all of them when category is empty
func (g *Generator) GenerateRSS(articles []domain.Article, category string) (string, error) {
	title := "Coinscope - All Categories"
	selfLink := g.baseURL + "/rss"
	if category != "" {
		title = "Coinscope - " + category
		selfLink = fmt.Sprintf("%s/rss/%s", g.baseURL, category)
	}

	rssItems := make([]*RSSItem, 0, len(articles))
	for _, a := range articles {
		rssItems = append(rssItems, g.convertToRSSItem(a))
	}

	feed := &RSS{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: &RSSChannel{
			Title:         title,
			Link:          g.baseURL + "/",
			Description:   "Categorized crypto news with sentiment",
			AtomLink:      &AtomLink{Href: selfLink, Rel: "self", Type: "application/rss+xml"},
			LastBuildDate: time.Now().Format(time.RFC1123Z),
			Items:         rssItems,
		},
	}

	output, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal RSS: %w", err)
	}

	// add XML declaration
	return xml.Header + string(output), nil
}

// convertToRSSItem converts an article to an RSS item. The listing page is the only link an article has.
func (g *Generator) convertToRSSItem(a domain.Article) *RSSItem {
	desc := fmt.Sprintf("Sentiment: %s", a.Sentiment)
	if a.Description != "" {
		desc += "\n\n" + a.Description
	}

	item := &RSSItem{
		Title:       fmt.Sprintf("[%s] %s", a.Category, a.Title),
		Link:        a.SourceURL,
		GUID:        RSSGUID{Value: fmt.Sprintf("coinscope-%d", a.ID)},
		Description: desc,
		Source:      a.Source,
		Categories:  []string{a.Category, string(a.Sentiment)},
	}

	// the stored date has no time part, skip pubDate when it can't be parsed
	if ts, err := time.Parse(domain.DateLayout, a.Date); err == nil {
		item.PubDate = ts.Format(time.RFC1123Z)
	}
	return item
}

// GenerateOPML creates an OPML file with one RSS subscription per category
func (g *Generator) GenerateOPML(categories []string) (string, error) {
	type outline struct {
		XMLName xml.Name `xml:"outline"`
		Text    string   `xml:"text,attr"`
		Title   string   `xml:"title,attr"`
		Type    string   `xml:"type,attr"`
		XMLUrl  string   `xml:"xmlUrl,attr"`
		HTMLUrl string   `xml:"htmlUrl,attr,omitempty"`
	}

	type body struct {
		XMLName  xml.Name  `xml:"body"`
		Outlines []outline `xml:"outline"`
	}

	type head struct {
		XMLName     xml.Name `xml:"head"`
		Title       string   `xml:"title"`
		DateCreated string   `xml:"dateCreated"`
	}

	type opml struct {
		XMLName xml.Name `xml:"opml"`
		Version string   `xml:"version,attr"`
		Head    head     `xml:"head"`
		Body    body     `xml:"body"`
	}

	outlines := make([]outline, 0, len(categories))
	for _, c := range categories {
		outlines = append(outlines, outline{
			Text:    "Coinscope - " + c,
			Title:   "Coinscope - " + c,
			Type:    "rss",
			XMLUrl:  fmt.Sprintf("%s/rss/%s", g.baseURL, c),
			HTMLUrl: fmt.Sprintf("%s/api/v1/articles?category=%s", g.baseURL, c),
		})
	}

	doc := opml{
		Version: "2.0",
		Head: head{
			Title:       "Coinscope Category Feeds",
			DateCreated: time.Now().Format(time.RFC1123Z),
		},
		Body: body{
			Outlines: outlines,
		},
	}

	output, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal OPML: %w", err)
	}

	return xml.Header + string(output), nil
}
