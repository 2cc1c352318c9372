package crawl

import (
	"context"
	"log/slog"

	"github.com/fwojciec/lingua"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of letter sections crawled at once.
const DefaultConcurrency = 5

// Coordinator walks the paginated word list of each grouping key,
// recording every link in the word store exactly once.
type Coordinator struct {
	Browser     lingua.Browser
	Extractor   lingua.LinkExtractor
	Checkpoints lingua.CheckpointTracker
	Words       lingua.WordStore
	Logger      *slog.Logger

	// Concurrency bounds the number of active runs in RunAll.
	Concurrency int

	Navigator NavigatorOptions
}

// RunAll crawls every run with at most Concurrency runs active and
// returns one result per run, in input order. A failed run does not
// stop its siblings.
func (c *Coordinator) RunAll(ctx context.Context, runs []lingua.Run) []*lingua.RunResult {
	results := make([]*lingua.RunResult, len(runs))

	var g errgroup.Group
	g.SetLimit(c.concurrency())
	for i, run := range runs {
		g.Go(func() error {
			results[i] = c.Run(ctx, run)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// Run crawls one grouping key from its start URL until the section has
// no next page. Links already in the key's checkpoint are skipped; the
// last of them is handed to the store again in case the previous
// process stopped between recording and storing it.
func (c *Coordinator) Run(ctx context.Context, run lingua.Run) *lingua.RunResult {
	result := &lingua.RunResult{Key: run.Key, State: lingua.RunStarting}
	logger := c.logger().With("key", run.Key)

	fail := func(phase lingua.Phase, err error) *lingua.RunResult {
		result.State = lingua.RunFailed
		result.Err = &lingua.RunError{Key: run.Key, Phase: phase, Err: err}
		logger.Error("run failed", "phase", phase, "page", result.Pages, "err", err)
		return result
	}

	if err := run.Validate(); err != nil {
		return fail(lingua.PhaseNavigate, err)
	}

	cp, err := c.Checkpoints.Load(ctx, run.Key)
	if err != nil {
		return fail(lingua.PhaseCheckpoint, err)
	}
	if last, ok := cp.Last(); ok && lingua.WordText(last) != "" {
		if err := c.store(ctx, run.Key, last); err != nil {
			return fail(lingua.PhaseStore, err)
		}
		logger.Info("run resumed", "processed", cp.Len())
	}

	session, err := c.Browser.NewSession(ctx)
	if err != nil {
		return fail(lingua.PhaseNavigate, err)
	}
	nav := NewNavigator(session, c.Navigator)
	defer nav.Close()

	logger.Info("run started", "url", run.StartURL)
	if err := nav.Open(ctx, run.StartURL); err != nil {
		return fail(lingua.PhaseNavigate, err)
	}

	for {
		result.State = lingua.RunPageLoaded
		result.Pages++

		links, err := c.extract(ctx, nav)
		switch {
		case err == nil:
			result.State = lingua.RunLinksExtracted
			result.Discovered += len(links)
			if phase, err := c.record(ctx, run.Key, cp, links, result); err != nil {
				return fail(phase, err)
			}
			logger.Debug("page loaded", "page", result.Pages, "links", len(links))
		case lingua.ErrorCode(err) == lingua.EEXTRACT || lingua.ErrorCode(err) == lingua.EINVALID:
			result.SkippedPages++
			logger.Warn("page skipped", "phase", lingua.PhaseExtract, "page", result.Pages, "err", err)
		default:
			return fail(lingua.PhaseNavigate, err)
		}

		result.State = lingua.RunAdvancing
		more, err := nav.Advance(ctx)
		if err != nil {
			return fail(lingua.PhaseNavigate, err)
		}
		if !more {
			break
		}
	}

	if err := c.Checkpoints.MarkComplete(ctx, run.Key); err != nil {
		return fail(lingua.PhaseCheckpoint, err)
	}
	result.State = lingua.RunComplete
	logger.Info("run complete",
		"pages", result.Pages,
		"stored", result.Stored,
		"seen", result.Seen,
		"skipped_pages", result.SkippedPages,
		"skipped_links", result.SkippedLinks,
	)
	return result
}

func (c *Coordinator) extract(ctx context.Context, nav *Navigator) ([]string, error) {
	region, err := nav.ExtractCurrentRegion(ctx)
	if err != nil {
		return nil, err
	}
	return c.Extractor.Extract(region.Markup, region.Locator)
}

// record checkpoints then stores each new link in page order. Anchors
// that cannot name a word are skipped before they reach the checkpoint.
func (c *Coordinator) record(ctx context.Context, key string, cp *lingua.Checkpoint, links []string, result *lingua.RunResult) (lingua.Phase, error) {
	for _, link := range links {
		if lingua.WordText(link) == "" {
			result.SkippedLinks++
			c.logger().Warn("link skipped", "key", key, "url", link)
			continue
		}
		if cp.Has(link) {
			result.Seen++
			continue
		}
		if err := c.Checkpoints.MarkProcessed(ctx, key, link); err != nil {
			return lingua.PhaseCheckpoint, err
		}
		cp.Add(link)
		if err := c.store(ctx, key, link); err != nil {
			return lingua.PhaseStore, err
		}
		result.Stored++
	}
	return "", nil
}

// store hands link to the word store, reporting rejections as ESTORE.
func (c *Coordinator) store(ctx context.Context, key, link string) error {
	if _, err := c.Words.AddLink(ctx, key, link); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return lingua.Errorf(lingua.ESTORE, "add %s: %v", link, err)
	}
	return nil
}

func (c *Coordinator) concurrency() int {
	if c.Concurrency <= 0 {
		return DefaultConcurrency
	}
	return c.Concurrency
}

func (c *Coordinator) logger() *slog.Logger {
	if c.Logger == nil {
		return discardLogger()
	}
	return c.Logger
}
