package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/lingua"
	"github.com/fwojciec/lingua/crawl"
	"github.com/fwojciec/lingua/fs"
	"github.com/fwojciec/lingua/goquery"
	"github.com/fwojciec/lingua/htmlquery"
	linguahttp "github.com/fwojciec/lingua/http"
	"github.com/fwojciec/lingua/postgres"
	"github.com/fwojciec/lingua/rod"
	linguaslog "github.com/fwojciec/lingua/slog"
	"github.com/fwojciec/lingua/sqlite"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "warning: failed to load .env: %v\n", err)
	}

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Default SQLite path and checkpoint directory. Set before calling Run().
	DBPath        string
	CheckpointDir string

	// Opened store, closed by Close.
	closer io.Closer

	// Services for end-to-end testing. When set, no store is opened.
	WordService     lingua.WordService
	AlphabetService lingua.AlphabetService

	// Browser overrides the Chrome browser for end-to-end testing.
	Browser lingua.Browser
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath:        defaultPath("lingua.db"),
		CheckpointDir: defaultPath("checkpoints"),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.closer != nil {
		return m.closer.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("lingua"),
		kong.Description("Build a Malayalam word and definition dataset from Wiktionary."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'lingua --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	if err := m.openStore(cli, stderr); err != nil {
		return err
	}
	defer m.Close()

	deps.Words = m.WordService
	deps.Alphabets = m.AlphabetService

	switch cmd := strings.Fields(kongCtx.Command())[0]; cmd {
	case "alphabets":
		browser, err := m.browser(stderr, rod.WithHeadless(!cli.Headful))
		if err != nil {
			return err
		}
		defer browser.Close()

		deps.Discoverer = &crawl.AlphabetDiscoverer{
			Browser:   browser,
			Extractor: goquery.NewAlphabetExtractor(lingua.BaseOrigin),
			Alphabets: deps.Alphabets,
			Logger:    logger,
		}

	case "crawl":
		browser, err := m.browser(stderr, rod.WithHeadless(!cli.Headful))
		if err != nil {
			return err
		}
		defer browser.Close()

		dir := cli.Crawl.CheckpointDir
		if dir == "" {
			dir = m.CheckpointDir
		}

		deps.Coordinator = &crawl.Coordinator{
			Browser:     browser,
			Extractor:   linguaslog.NewLoggingLinkExtractor(htmlquery.NewLinkExtractor(lingua.BaseOrigin), logger),
			Checkpoints: linguaslog.NewLoggingCheckpointTracker(fs.NewCheckpointTracker(dir), logger),
			Words:       linguaslog.NewLoggingWordStore(deps.Words, logger),
			Logger:      logger,
			Concurrency: cli.Crawl.Concurrency,
			Navigator: crawl.NavigatorOptions{
				Limiter: crawl.NewDomainLimiter(crawl.DefaultRequestsPerSecond),
			},
		}

	case "define":
		var fetcher lingua.Fetcher
		if cli.Define.Browser {
			f, err := rod.NewFetcher(rod.WithBrowserOptions(rod.WithHeadless(!cli.Headful)))
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			fetcher = f
		} else {
			fetcher = linguahttp.NewFetcher()
		}
		fetcher = linguaslog.NewLoggingFetcher(fetcher, logger)
		defer fetcher.Close()

		deps.Scraper = &crawl.DefinitionScraper{
			Fetcher:     fetcher,
			Extractor:   htmlquery.NewDefinitionExtractor(),
			Words:       deps.Words,
			RateLimiter: crawl.NewDomainLimiter(crawl.DefaultRequestsPerSecond),
			Logger:      logger,
			Concurrency: cli.Define.Concurrency,
		}
	}

	return kongCtx.Run(deps)
}

// openStore opens the configured word store unless services were injected.
func (m *Main) openStore(cli *CLI, stderr io.Writer) error {
	if m.WordService != nil && m.AlphabetService != nil {
		return nil
	}

	switch cli.Store {
	case "postgres":
		cfg := postgres.Config{
			Host:     cli.Postgres.Host,
			Port:     cli.Postgres.Port,
			User:     cli.Postgres.User,
			Password: cli.Postgres.Password,
			DBName:   cli.Postgres.Database,
			SSLMode:  cli.Postgres.SSLMode,
		}
		db := postgres.NewDB(cfg.DSN())
		if err := db.Open(); err != nil {
			fmt.Fprintln(stderr, "Hint: Check the PGHOST, PGUSER, PGPASSWORD and PGDATABASE settings")
			return fmt.Errorf("failed to open postgres database %q on %s: %w", cfg.DBName, cfg.Host, err)
		}
		m.closer = db
		m.WordService = postgres.NewWordService(db)
		m.AlphabetService = postgres.NewAlphabetService(db)

	default:
		path := cli.DB
		if path == "" {
			path = m.DBPath
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
		db := sqlite.NewDB(path)
		if err := db.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set LINGUA_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", path, err)
		}
		m.closer = db
		m.WordService = sqlite.NewWordService(db)
		m.AlphabetService = sqlite.NewAlphabetService(db)
	}

	return nil
}

// browser returns the injected browser or launches Chrome.
func (m *Main) browser(stderr io.Writer, opts ...rod.ManagerOption) (lingua.Browser, error) {
	if m.Browser != nil {
		return m.Browser, nil
	}
	b, err := rod.NewBrowser(opts...)
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}
	return b, nil
}

func defaultPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(home, ".lingua", name)
}
