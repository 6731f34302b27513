package config

import "github.com/umputun/coinscope/pkg/keyword"

// DefaultKeywords returns the built-in coin categories, BTC is evaluated first
func DefaultKeywords() keyword.Map {
	return keyword.Map{
		{Name: "BTC", Keywords: []string{"BTC", "Bitcoin", "Bitcoin Core", "Digital Gold", "Cryptocurrency"}},
		{Name: "ETH", Keywords: []string{"ETH", "Ethereum", "Smart Contracts", "Decentralized Finance"}},
		{Name: "SOL", Keywords: []string{"SOL", "Solana", "Web3", "Scalability"}},
		{Name: "BNB", Keywords: []string{"BNB", "Binance Coin", "Binance Smart Chain", "DeFi"}},
		{Name: "DOGE", Keywords: []string{"DOGE", "Dogecoin", "Meme Coin", "Shiba Inu"}},
	}
}

// DefaultSites returns the built-in news sites
func DefaultSites() []SiteConfig {
	return []SiteConfig{
		{
			URL: "https://www.newsbtc.com/news/", ArticleSelector: "article",
			TitleSelector: "h4", TitleClass: "block-article__title", DescriptionSelector: "p",
			DateSelector: "span", DateClass: "block-article__author", MaxArticles: 100,
		},
		{
			URL: "https://cryptopotato.com/crypto-news/", ArticleSelector: "article",
			TitleSelector: "h3", TitleClass: "rpwe-title", DescriptionSelector: "p",
			DateSelector: "time", DateClass: "entry-date", MaxArticles: 100,
		},
		{
			URL: "https://cryptobriefing.com/news/", ArticleSelector: "section",
			TitleSelector: "h2", TitleClass: "main-news-title", DescriptionSelector: "p",
			DateSelector: "time", DateClass: "entry-date", MaxArticles: 100,
		},
	}
}
