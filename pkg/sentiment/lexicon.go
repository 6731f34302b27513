package sentiment

import (
	"context"
	"strings"
	"unicode"
)

var positiveWords = map[string]bool{
	"surge": true, "surges": true, "surged": true, "surging": true,
	"rally": true, "rallies": true, "rallied": true,
	"soar": true, "soars": true, "soared": true, "soaring": true,
	"gain": true, "gains": true, "gained": true,
	"jump": true, "jumps": true, "jumped": true,
	"rise": true, "rises": true, "rising": true, "rose": true,
	"bull": true, "bullish": true, "record": true, "high": true, "highs": true,
	"boost": true, "boosts": true, "boosted": true, "breakout": true,
	"approve": true, "approves": true, "approved": true, "approval": true,
	"adoption": true, "recover": true, "recovers": true, "recovery": true,
	"upgrade": true, "partnership": true, "inflows": true,
}

var negativeWords = map[string]bool{
	"crash": true, "crashes": true, "crashed": true,
	"drop": true, "drops": true, "dropped": true,
	"fall": true, "falls": true, "fell": true, "falling": true,
	"plunge": true, "plunges": true, "plunged": true,
	"slump": true, "slumps": true, "tumble": true, "tumbles": true, "tumbled": true,
	"decline": true, "declines": true, "declined": true,
	"dump": true, "dumps": true, "bear": true, "bearish": true,
	"hack": true, "hacked": true, "exploit": true, "exploited": true,
	"scam": true, "fraud": true, "lawsuit": true, "sued": true, "ban": true, "bans": true, "banned": true,
	"loss": true, "losses": true, "liquidation": true, "liquidations": true, "outflows": true,
	"warning": true, "risk": true, "risks": true,
}

// LexiconScorer is an offline scorer counting positive and negative words.
// Ties, including no hits at all, are neutral.
type LexiconScorer struct{}

// NewLexiconScorer makes a lexicon scorer
func NewLexiconScorer() *LexiconScorer {
	return &LexiconScorer{}
}

// Score implements Scorer
func (s *LexiconScorer) Score(_ context.Context, text string) (string, error) {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	balance := 0
	for _, w := range words {
		switch {
		case positiveWords[w]:
			balance++
		case negativeWords[w]:
			balance--
		}
	}

	switch {
	case balance > 0:
		return LabelPositive, nil
	case balance < 0:
		return LabelNegative, nil
	default:
		return LabelNeutral, nil
	}
}
