package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/umputun/coinscope/pkg/domain"
	"github.com/umputun/coinscope/pkg/keyword"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" json:"server" jsonschema:"description=Read API server configuration"`
	Database  DatabaseConfig  `yaml:"database" json:"database" jsonschema:"description=SQLite article store configuration"`
	Mongo     MongoConfig     `yaml:"mongo" json:"mongo" jsonschema:"description=MongoDB article store, used instead of SQLite when uri is set"`
	Fetch     FetchConfig     `yaml:"fetch" json:"fetch" jsonschema:"description=Page fetching configuration"`
	Run       RunConfig       `yaml:"run" json:"run" jsonschema:"description=Extraction run configuration"`
	Sentiment SentimentConfig `yaml:"sentiment" json:"sentiment" jsonschema:"description=LLM sentiment scoring, lexicon scoring is used when model is empty"`
	Keywords  keyword.Map     `yaml:"keywords" json:"keywords" jsonschema:"description=Category to keyword list mapping"`
	Sites     []SiteConfig    `yaml:"sites" json:"sites" jsonschema:"description=News sites to extract articles from"`
}

// ServerConfig holds read API settings
type ServerConfig struct {
	Enabled bool          `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Run the read API server"`
	Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	BaseURL string        `yaml:"base_url" json:"base_url" jsonschema:"default=http://localhost:8080,description=Base URL for RSS feeds"`
}

// DatabaseConfig holds SQLite settings
type DatabaseConfig struct {
	DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:coinscope.db?cache=shared&mode=rwc&_txlock=immediate,description=Database connection string"`
	MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
	MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
}

// MongoConfig holds MongoDB settings
type MongoConfig struct {
	URI        string        `yaml:"uri" json:"uri" jsonschema:"description=MongoDB connection URI"`
	Database   string        `yaml:"database" json:"database" jsonschema:"default=test,description=Database name"`
	Collection string        `yaml:"collection" json:"collection" jsonschema:"default=news,description=Collection name"`
	Timeout    time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=10s,description=Connect and ping timeout"`
}

// FetchConfig holds page fetching settings
type FetchConfig struct {
	Timeout    time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Request timeout per page"`
	UserAgent  string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=Mozilla/5.0 (compatible; Coinscope/1.0),description=User agent for HTTP requests"`
	MaxWorkers int           `yaml:"max_workers" json:"max_workers" jsonschema:"default=1,minimum=1,description=Pages fetched concurrently"`
}

// RunConfig holds run orchestration settings
type RunConfig struct {
	Interval        time.Duration `yaml:"interval" json:"interval" jsonschema:"default=0s,description=Repeat runs at this interval, single run when zero"`
	IsolateFailures *bool         `yaml:"isolate_failures" json:"isolate_failures" jsonschema:"default=true,description=Keep going when one site fails"`
}

// Isolate reports whether a failing site should be skipped rather than abort the run
func (r RunConfig) Isolate() bool {
	return r.IsolateFailures == nil || *r.IsolateFailures
}

// SentimentConfig holds LLM settings for sentiment scoring
type SentimentConfig struct {
	Endpoint     string        `yaml:"endpoint" json:"endpoint" jsonschema:"description=OpenAI-compatible API endpoint"`
	APIKey       string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model        string        `yaml:"model" json:"model" jsonschema:"description=Model name, enables LLM scoring when set"`
	Temperature  float64       `yaml:"temperature" json:"temperature" jsonschema:"default=0,description=Temperature for response generation"`
	MaxTokens    int           `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=10,description=Maximum tokens in response"`
	Timeout      time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Request timeout"`
	SystemPrompt string        `yaml:"system_prompt" json:"system_prompt" jsonschema:"description=System prompt for the LLM (optional)"`
}

// Enabled reports whether an LLM model is configured
func (s SentimentConfig) Enabled() bool {
	return s.Model != ""
}

// SiteConfig describes one news site's listing page markup
type SiteConfig struct {
	URL                 string `yaml:"url" json:"url" jsonschema:"required,description=Listing page URL"`
	ArticleSelector     string `yaml:"article_selector" json:"article_selector" jsonschema:"required,description=Tag of repeating article fragments"`
	TitleSelector       string `yaml:"title_selector" json:"title_selector,omitempty" jsonschema:"description=Tag of the title element"`
	TitleClass          string `yaml:"title_class" json:"title_class" jsonschema:"required,description=Class of the title element"`
	DescriptionSelector string `yaml:"description_selector" json:"description_selector,omitempty" jsonschema:"description=Tag of the description element"`
	DateSelector        string `yaml:"date_selector" json:"date_selector" jsonschema:"required,description=Tag of the date element (not read, scrape date is stored)"`
	DateClass           string `yaml:"date_class" json:"date_class,omitempty" jsonschema:"description=Class of the date element"`
	MaxArticles         int    `yaml:"max_articles" json:"max_articles,omitempty" jsonschema:"default=100,description=Maximum fragments read from the page"`
}

// Site converts the config entry to a domain site
func (s SiteConfig) Site() domain.Site {
	return domain.Site{
		URL:                 s.URL,
		ArticleSelector:     s.ArticleSelector,
		TitleSelector:       s.TitleSelector,
		TitleClass:          s.TitleClass,
		DescriptionSelector: s.DescriptionSelector,
		DateSelector:        s.DateSelector,
		DateClass:           s.DateClass,
		MaxArticles:         s.MaxArticles,
	}
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

// Default returns the built-in configuration: the original three sites and five coin categories
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

func setDefaults(cfg *Config) {
	// server
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}
	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = "http://localhost:8080"
	}

	// database
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "file:coinscope.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 3600
	}

	// mongo
	if cfg.Mongo.Database == "" {
		cfg.Mongo.Database = "test"
	}
	if cfg.Mongo.Collection == "" {
		cfg.Mongo.Collection = "news"
	}
	if cfg.Mongo.Timeout == 0 {
		cfg.Mongo.Timeout = 10 * time.Second
	}

	// fetch
	if cfg.Fetch.Timeout == 0 {
		cfg.Fetch.Timeout = 30 * time.Second
	}
	if cfg.Fetch.UserAgent == "" {
		cfg.Fetch.UserAgent = "Mozilla/5.0 (compatible; Coinscope/1.0)"
	}
	if cfg.Fetch.MaxWorkers == 0 {
		cfg.Fetch.MaxWorkers = 1
	}

	// sentiment
	if cfg.Sentiment.MaxTokens == 0 {
		cfg.Sentiment.MaxTokens = 10
	}
	if cfg.Sentiment.Timeout == 0 {
		cfg.Sentiment.Timeout = 30 * time.Second
	}

	// domain defaults
	if len(cfg.Keywords) == 0 {
		cfg.Keywords = DefaultKeywords()
	}
	if len(cfg.Sites) == 0 {
		cfg.Sites = DefaultSites()
	}
	for i := range cfg.Sites {
		if cfg.Sites[i].MaxArticles == 0 {
			cfg.Sites[i].MaxArticles = domain.DefaultMaxArticles
		}
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	for i, s := range cfg.Sites {
		if err := s.Site().Validate(); err != nil {
			return fmt.Errorf("sites[%d]: %w", i, err)
		}
		if s.MaxArticles < 0 {
			return fmt.Errorf("sites[%d]: max_articles must be non-negative", i)
		}
	}

	names := make(map[string]bool, len(cfg.Keywords))
	for _, c := range cfg.Keywords {
		if c.Name == "" {
			return fmt.Errorf("keywords: category name is required")
		}
		if names[c.Name] {
			return fmt.Errorf("keywords: duplicate category %s", c.Name)
		}
		names[c.Name] = true
	}

	if cfg.Fetch.MaxWorkers < 1 {
		return fmt.Errorf("fetch.max_workers must be at least 1")
	}
	if cfg.Fetch.Timeout < time.Second {
		return fmt.Errorf("fetch timeout must be at least 1 second")
	}
	if cfg.Run.Interval < 0 {
		return fmt.Errorf("run.interval must be non-negative")
	}
	if cfg.Sentiment.Temperature < 0 || cfg.Sentiment.Temperature > 2 {
		return fmt.Errorf("sentiment.temperature must be between 0 and 2")
	}
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetBaseURL returns base URL used in RSS links
func (c *Config) GetBaseURL() string {
	return c.Server.BaseURL
}

// DomainSites returns configured sites as domain values, in configuration order
func (c *Config) DomainSites() []domain.Site {
	res := make([]domain.Site, len(c.Sites))
	for i, s := range c.Sites {
		res[i] = s.Site()
	}
	return res
}
