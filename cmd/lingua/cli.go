package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/lingua"
	"github.com/fwojciec/lingua/crawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Words     lingua.WordService
	Alphabets lingua.AlphabetService

	Discoverer  *crawl.AlphabetDiscoverer
	Coordinator *crawl.Coordinator
	Scraper     *crawl.DefinitionScraper
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool   `short:"v" help:"Enable debug logging"`
	Headful bool   `help:"Show the Chrome window instead of running headless"`
	Store   string `default:"sqlite" enum:"sqlite,postgres" env:"LINGUA_STORE" help:"Word store backend (sqlite, postgres)"`
	DB      string `name:"db" env:"LINGUA_DB" help:"SQLite database path (default ~/.lingua/lingua.db)"`

	Postgres PostgresFlags `embed:"" prefix:"pg-" group:"Postgres"`

	Alphabets AlphabetsCmd `cmd:"" help:"Discover the letter sections of the dictionary index"`
	Crawl     CrawlCmd     `cmd:"" help:"Crawl the word lists of letter sections"`
	Define    DefineCmd    `cmd:"" help:"Scrape definitions for words without any"`
	Review    ReviewCmd    `cmd:"" help:"Enter definitions for words flagged for review"`
	Words     WordsCmd     `cmd:"" help:"List words recorded for a letter"`
	Export    ExportCmd    `cmd:"" help:"Export word definitions as a tab-separated file"`
}

// PostgresFlags holds connection settings used with --store=postgres.
type PostgresFlags struct {
	Host     string `env:"PGHOST" default:"localhost" help:"Postgres host"`
	Port     string `env:"PGPORT" default:"5432" help:"Postgres port"`
	User     string `env:"PGUSER" help:"Postgres user"`
	Password string `env:"PGPASSWORD" help:"Postgres password"`
	Database string `env:"PGDATABASE" default:"lingua" help:"Postgres database"`
	SSLMode  string `env:"PGSSLMODE" default:"disable" help:"Postgres sslmode"`
}

// AlphabetsCmd is the "alphabets" subcommand.
type AlphabetsCmd struct {
	Force bool `short:"f" help:"Rediscover even if alphabets are already stored"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	Letter        []string `short:"l" name:"letter" help:"Crawl only this letter (repeatable)"`
	Concurrency   int      `short:"c" default:"5" env:"LINGUA_CONCURRENCY" help:"Letter sections crawled at once"`
	CheckpointDir string   `env:"LINGUA_CHECKPOINT_DIR" help:"Checkpoint directory (default ~/.lingua/checkpoints)"`
}

// DefineCmd is the "define" subcommand.
type DefineCmd struct {
	Limit       int  `short:"n" help:"Maximum number of words to process (0 for all)"`
	Browser     bool `help:"Fetch pages with a headless browser instead of HTTP"`
	Concurrency int  `short:"c" default:"3" help:"Concurrent fetch limit"`
}

// ReviewCmd is the "review" subcommand.
type ReviewCmd struct{}

// WordsCmd is the "words" subcommand.
type WordsCmd struct {
	Letter string `arg:"" help:"Alphabet letter"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Path   string `arg:"" help:"Output file path"`
	Letter string `short:"l" help:"Export only this letter"`
}
