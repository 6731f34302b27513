// Package sentiment scores article text and maps raw labels to the canonical three-value vocabulary
package sentiment

import (
	"context"
	"strings"

	"github.com/umputun/coinscope/pkg/domain"
)

// raw labels produced by scorers in this package
const (
	LabelPositive = "POSITIVE"
	LabelNegative = "NEGATIVE"
	LabelNeutral  = "NEUTRAL"
)

// Scorer returns a raw sentiment label for text. The label vocabulary is open, use Normalize.
type Scorer interface {
	Score(ctx context.Context, text string) (string, error)
}

// Normalize maps a raw label to a canonical sentiment. POSITIVE and NEGATIVE (any case)
// map to their counterparts, anything else is neutral.
func Normalize(label string) domain.Sentiment {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case LabelPositive:
		return domain.SentimentPositive
	case LabelNegative:
		return domain.SentimentNegative
	default:
		return domain.SentimentNeutral
	}
}
