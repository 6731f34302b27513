package domain

// DateLayout renders the scrape date stored with each article, e.g. "March 07, 2024"
const DateLayout = "January 02, 2006"

// Sentiment is the canonical sentiment label of an article
type Sentiment string

// sentiment values
const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Article is a single categorized news article extracted from a site.
// Date is the observation date of the scrape, not the publish date of the article.
type Article struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	Source      string    `json:"source"`
	SourceURL   string    `json:"source_url"`
	Category    string    `json:"category"`
	Sentiment   Sentiment `json:"sentiment"`
}

// ArticleFilter represents filtering criteria for stored articles
type ArticleFilter struct {
	Category string
	Limit    int
}
