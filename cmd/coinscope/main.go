package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/coinscope/pkg/allocator"
	"github.com/umputun/coinscope/pkg/config"
	"github.com/umputun/coinscope/pkg/domain"
	"github.com/umputun/coinscope/pkg/extractor"
	"github.com/umputun/coinscope/pkg/fetch"
	"github.com/umputun/coinscope/pkg/keyword"
	"github.com/umputun/coinscope/pkg/mongostore"
	"github.com/umputun/coinscope/pkg/persister"
	"github.com/umputun/coinscope/pkg/pipeline"
	"github.com/umputun/coinscope/pkg/repository"
	"github.com/umputun/coinscope/pkg/sentiment"
	"github.com/umputun/coinscope/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" description:"configuration file, built-in defaults when empty"`

	Once     bool   `long:"once" description:"run extraction once and exit"`
	List     bool   `long:"list" description:"print stored articles and exit"`
	Category string `long:"category" description:"category filter for --list"`
	Limit    int    `long:"limit" default:"20" description:"number of articles for --list"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

// articleStore is what both sqlite and mongo stores provide
type articleStore interface {
	persister.Store
	pipeline.Store
	server.Database
}

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	cfg := config.Default()
	if opts.Config != "" {
		var err error
		if cfg, err = config.Load(opts.Config); err != nil {
			fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
			os.Exit(1)
		}
	}

	if opts.NoColor {
		color.NoColor = true
	}
	setupLog(opts.Debug, secrets(cfg)...)
	lgr.Printf("[INFO] starting coinscope version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		lgr.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts, cfg)
	cancel()
	if err != nil {
		lgr.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
	lgr.Print("[INFO] shutdown complete")
}

func run(ctx context.Context, opts Opts, cfg *config.Config) error {
	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer closeStore()

	if opts.List {
		return listArticles(ctx, store, domain.ArticleFilter{Category: opts.Category, Limit: opts.Limit})
	}

	ids := allocator.New()
	ext := extractor.New(
		fetch.NewHTTPFetcher(cfg.Fetch.Timeout, cfg.Fetch.UserAgent),
		keyword.NewClassifier(cfg.Keywords),
		makeScorer(cfg.Sentiment),
		ids,
	)
	p := pipeline.New(ext, persister.New(store), store, ids, pipeline.Config{
		Sites:           cfg.DomainSites(),
		MaxWorkers:      cfg.Fetch.MaxWorkers,
		IsolateFailures: cfg.Run.Isolate(),
		Interval:        cfg.Run.Interval,
	})

	if opts.Once || (cfg.Run.Interval == 0 && !cfg.Server.Enabled) {
		report, err := p.RunOnce(ctx)
		if err != nil {
			return fmt.Errorf("run: %w", err)
		}
		printReport(report)
		return nil
	}

	p.Start(ctx)
	defer p.Stop()

	if !cfg.Server.Enabled {
		<-ctx.Done()
		return nil
	}

	srv := server.New(cfg, store, p, revision, opts.Debug)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// openStore returns mongo store when mongo.uri is set, sqlite otherwise
func openStore(ctx context.Context, cfg *config.Config) (articleStore, func(), error) {
	if cfg.Mongo.URI != "" {
		ms, err := mongostore.New(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database,
			Collection: cfg.Mongo.Collection, Timeout: cfg.Mongo.Timeout})
		if err != nil {
			return nil, nil, err
		}
		lgr.Printf("[INFO] using mongo store %s.%s", cfg.Mongo.Database, cfg.Mongo.Collection)
		return ms, func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := ms.Close(closeCtx); err != nil {
				lgr.Printf("[WARN] failed to close mongo store: %v", err)
			}
		}, nil
	}

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return nil, nil, err
	}
	lgr.Printf("[DEBUG] using sqlite store %s", cfg.Database.DSN)
	return repos.Article, func() {
		if err := repos.Close(); err != nil {
			lgr.Printf("[WARN] failed to close database: %v", err)
		}
	}, nil
}

// makeScorer returns LLM scorer when a model is configured, offline lexicon scorer otherwise
func makeScorer(cfg config.SentimentConfig) extractor.Scorer {
	if cfg.Enabled() {
		lgr.Printf("[INFO] sentiment scoring with model %s", cfg.Model)
		return sentiment.NewLLMScorer(cfg)
	}
	lgr.Printf("[INFO] sentiment scoring with built-in lexicon")
	return sentiment.NewLexiconScorer()
}

func listArticles(ctx context.Context, store server.Database, filter domain.ArticleFilter) error {
	articles, err := store.Articles(ctx, filter)
	if err != nil {
		return fmt.Errorf("list articles: %w", err)
	}
	for _, a := range articles {
		fmt.Printf("%6d  %-5s %-8s %s  %s\n", a.ID, a.Category, a.Sentiment, a.Date, color.New(color.Bold).Sprint(a.Title))
		if a.Description != "" {
			fmt.Printf("%6s  %s\n", "", a.Description)
		}
		fmt.Printf("%6s  %s\n", "", color.New(color.FgCyan).Sprint(a.SourceURL))
	}
	return nil
}

func printReport(r pipeline.Report) {
	for _, s := range r.Sites {
		if s.Err != nil {
			fmt.Printf("%s: %s\n", s.URL, color.New(color.FgRed).Sprintf("failed, %v", s.Err))
			continue
		}
		fmt.Printf("%s: extracted %d articles\n", s.URL, s.Extracted)
	}
	fmt.Printf("inserted %d new articles of %d extracted in %v\n", r.Inserted, r.Extracted, r.Duration.Round(time.Millisecond))
}

// secrets returns config values to mask in logs
func secrets(cfg *config.Config) []string {
	res := []string{}
	if cfg.Sentiment.APIKey != "" {
		res = append(res, cfg.Sentiment.APIKey)
	}
	if cfg.Mongo.URI != "" {
		res = append(res, cfg.Mongo.URI)
	}
	return res
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
