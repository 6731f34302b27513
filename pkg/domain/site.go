package domain

import (
	"net/url"
	"strings"
)

// DefaultMaxArticles is the fragment cap used when a site doesn't set one
const DefaultMaxArticles = 100

// Site describes how to locate articles on one news site's listing page.
// Selectors are tag names, classes are matched against the element's class list.
type Site struct {
	URL                 string
	ArticleSelector     string // tag of the repeating article fragment, e.g. "article"
	TitleSelector       string // tag of the title element, any tag when empty
	TitleClass          string
	DescriptionSelector string // optional, no description when empty
	DateSelector        string // required for compatibility, the value is never read
	DateClass           string
	MaxArticles         int
}

// Validate checks the mandatory discriminators. Without them fragment location is ambiguous.
func (s Site) Validate() error {
	switch {
	case s.URL == "":
		return &ConfigurationError{Site: s.URL, Field: "url"}
	case !hasHost(s.URL):
		return &ConfigurationError{Site: s.URL, Field: "url", Reason: "must be absolute with a host"}
	case s.ArticleSelector == "":
		return &ConfigurationError{Site: s.URL, Field: "article_selector"}
	case s.TitleClass == "":
		return &ConfigurationError{Site: s.URL, Field: "title_class"}
	case s.DateSelector == "":
		return &ConfigurationError{Site: s.URL, Field: "date_selector"}
	}
	return nil
}

// Limit returns the number of fragments to read from the page
func (s Site) Limit() int {
	if s.MaxArticles <= 0 {
		return DefaultMaxArticles
	}
	return s.MaxArticles
}

// Source returns the host part of the site URL, the third slash-delimited segment
// ("https://www.newsbtc.com/news/" -> "www.newsbtc.com"). Empty if the URL has no such segment.
func (s Site) Source() string {
	parts := strings.Split(s.URL, "/")
	if len(parts) < 3 {
		return ""
	}
	return parts[2]
}

// hasHost reports whether u parses with a non-empty host, i.e. Source has something to return
func hasHost(u string) bool {
	parsed, err := url.Parse(u)
	return err == nil && parsed.Host != ""
}
