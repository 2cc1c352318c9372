package crawl

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/fwojciec/lingua"
	"golang.org/x/sync/errgroup"
)

// DefinitionScraper fills in definitions for stored words by fetching
// each word's entry page.
type DefinitionScraper struct {
	Fetcher     lingua.Fetcher
	Extractor   lingua.DefinitionExtractor
	Words       lingua.WordService
	RateLimiter lingua.DomainLimiter
	Logger      *slog.Logger
	Concurrency int
	RetryDelays []time.Duration
}

// DefineResult holds the outcome of a definition pass.
type DefineResult struct {
	// Defined counts words whose definitions were saved.
	Defined int

	// Flagged counts words marked for manual review.
	Flagged int

	// Failed counts words whose page could not be fetched or parsed.
	Failed int
}

type defineOutcome struct {
	word *lingua.Word
	defs []string
	err  error
}

// Scrape processes up to limit words that have no definitions and are
// not already flagged for review; a limit of zero means all of them.
// Pages are fetched concurrently and results saved in word order.
// Words without recognisable definitions are flagged for review. Fetch
// failures are logged and leave the word untouched.
func (s *DefinitionScraper) Scrape(ctx context.Context, limit int) (*DefineResult, error) {
	logger := s.logger()

	unflagged := false
	words, err := s.Words.FindWords(ctx, lingua.WordFilter{
		NeedsReview:        &unflagged,
		MissingDefinitions: true,
		Limit:              limit,
	})
	if err != nil {
		return nil, err
	}

	outcomes := make([]defineOutcome, len(words))

	var g errgroup.Group
	g.SetLimit(s.concurrency())
	for i, word := range words {
		g.Go(func() error {
			defs, err := s.define(ctx, word)
			outcomes[i] = defineOutcome{word: word, defs: defs, err: err}
			return nil
		})
	}
	_ = g.Wait()

	result := &DefineResult{}
	for _, o := range outcomes {
		if o.err != nil {
			result.Failed++
			logger.Warn("definition skipped", "word", o.word.Text, "url", o.word.URL, "err", o.err)
			continue
		}

		upd := lingua.WordUpdate{}
		if len(o.defs) == 0 {
			flag := true
			upd.NeedsReview = &flag
		} else {
			upd.Definitions = &o.defs
		}
		if _, err := s.Words.UpdateWord(ctx, o.word.ID, upd); err != nil {
			return result, err
		}

		if len(o.defs) == 0 {
			result.Flagged++
			logger.Info("word flagged for review", "word", o.word.Text)
		} else {
			result.Defined++
			logger.Debug("word defined", "word", o.word.Text, "definitions", len(o.defs))
		}
	}

	return result, nil
}

func (s *DefinitionScraper) define(ctx context.Context, word *lingua.Word) ([]string, error) {
	var fetcher lingua.Fetcher = s.Fetcher
	if s.RateLimiter != nil {
		u, err := url.Parse(word.URL)
		if err != nil {
			return nil, lingua.Errorf(lingua.EINVALID, "invalid word URL %q", word.URL)
		}
		fetcher = &throttledFetcher{Fetcher: s.Fetcher, limiter: s.RateLimiter, host: u.Host}
	}

	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := FetchWithRetry(ctx, fetcher, word.URL, delays, s.Logger)
	if err != nil {
		return nil, err
	}

	return s.Extractor.ExtractDefinitions(html, word.Text)
}

// throttledFetcher waits for the host's limiter before every attempt.
type throttledFetcher struct {
	lingua.Fetcher
	limiter lingua.DomainLimiter
	host    string
}

func (f *throttledFetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := f.limiter.Wait(ctx, f.host); err != nil {
		return "", err
	}
	return f.Fetcher.Fetch(ctx, url)
}

func (s *DefinitionScraper) concurrency() int {
	if s.Concurrency <= 0 {
		return DefaultConcurrency
	}
	return s.Concurrency
}

func (s *DefinitionScraper) logger() *slog.Logger {
	if s.Logger == nil {
		return discardLogger()
	}
	return s.Logger
}
