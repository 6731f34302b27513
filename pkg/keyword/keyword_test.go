package keyword

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestClassifier_Classify(t *testing.T) {
	m := Map{
		{Name: "BTC", Keywords: []string{"BTC", "Bitcoin", "Digital Gold"}},
		{Name: "ETH", Keywords: []string{"ETH", "Ethereum", "Smart Contracts"}},
		{Name: "DOGE", Keywords: []string{"Dogecoin", "Meme Coin"}},
	}
	c := NewClassifier(m)

	tests := []struct {
		name    string
		text    string
		want    string
		matched bool
	}{
		{name: "single category", text: "Ethereum gas fees drop", want: "ETH", matched: true},
		{name: "case insensitive", text: "BITCOIN hits new high", want: "BTC", matched: true},
		{name: "lower case keyword in text", text: "why digital gold matters", want: "BTC", matched: true},
		{name: "substring match", text: "Bitcoins everywhere", want: "BTC", matched: true},
		{name: "first declared wins", text: "Bitcoin and Ethereum surge", want: "BTC", matched: true},
		{name: "first declared wins regardless of position", text: "Ethereum outpaces Bitcoin", want: "BTC", matched: true},
		{name: "later category", text: "Meme coin mania returns", want: "DOGE", matched: true},
		{name: "no match", text: "Local weather update", matched: false},
		{name: "empty text", text: "", matched: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.Classify(tt.text)
			assert.Equal(t, tt.matched, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassify_TieBreak(t *testing.T) {
	m := Map{{Name: "BTC", Keywords: []string{"Bitcoin"}}, {Name: "ETH", Keywords: []string{"Ethereum"}}}
	got, ok := Classify("Bitcoin and Ethereum surge", m)
	require.True(t, ok)
	assert.Equal(t, "BTC", got)

	// reversed declaration order flips the result
	m = Map{{Name: "ETH", Keywords: []string{"Ethereum"}}, {Name: "BTC", Keywords: []string{"Bitcoin"}}}
	got, ok = Classify("Bitcoin and Ethereum surge", m)
	require.True(t, ok)
	assert.Equal(t, "ETH", got)
}

func TestClassifier_Deterministic(t *testing.T) {
	m := Map{{Name: "SOL", Keywords: []string{"Solana", "Web3"}}, {Name: "BNB", Keywords: []string{"BNB", "DeFi"}}}
	c := NewClassifier(m)
	texts := []string{"Web3 and DeFi", "nothing here", "BNB chain", "solana"}

	first := make([]string, len(texts))
	for i, txt := range texts {
		first[i], _ = c.Classify(txt)
	}
	// reverse call order, results must not change
	for i := len(texts) - 1; i >= 0; i-- {
		got, _ := c.Classify(texts[i])
		assert.Equal(t, first[i], got, "text %q", texts[i])
	}
	assert.Equal(t, []string{"SOL", "", "BNB", "SOL"}, first)
}

func TestClassifier_SharedAndEmptyKeywords(t *testing.T) {
	m := Map{
		{Name: "BTC", Keywords: []string{"", "  ", "crypto"}},
		{Name: "ETH", Keywords: []string{"Crypto", "Ethereum"}},
	}
	c := NewClassifier(m)

	got, ok := c.Classify("Ethereum is a crypto asset")
	require.True(t, ok)
	assert.Equal(t, "BTC", got, "shared keyword belongs to the first category")

	got, ok = c.Classify("plain text")
	assert.False(t, ok, "empty keywords never match")
	assert.Empty(t, got)
}

func TestClassifier_EmptyMap(t *testing.T) {
	c := NewClassifier(nil)
	got, ok := c.Classify("Bitcoin")
	assert.False(t, ok)
	assert.Empty(t, got)
}

func TestMap_YAMLOrder(t *testing.T) {
	doc := `
ETH: [ETH, Ethereum]
BTC: [BTC, Bitcoin]
DOGE:
  - Dogecoin
`
	var m Map
	require.NoError(t, yaml.Unmarshal([]byte(doc), &m))
	assert.Equal(t, []string{"ETH", "BTC", "DOGE"}, m.Names())
	assert.Equal(t, []string{"ETH", "Ethereum"}, m[0].Keywords)
	assert.Equal(t, []string{"Dogecoin"}, m[2].Keywords)

	out, err := yaml.Marshal(m)
	require.NoError(t, err)
	var back Map
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, m, back)
}

func TestMap_YAMLInvalid(t *testing.T) {
	var m Map
	err := yaml.Unmarshal([]byte("- BTC\n- ETH\n"), &m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected mapping, got sequence")
}
