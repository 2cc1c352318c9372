package crawl_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fwojciec/lingua"
	"github.com/fwojciec/lingua/crawl"
	"github.com/fwojciec/lingua/fs"
	"github.com/fwojciec/lingua/htmlquery"
	"github.com/fwojciec/lingua/mock"
	"github.com/fwojciec/lingua/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	site        *fixtureSite
	words       *sqlite.WordService
	checkpoints *fs.CheckpointTracker
	coordinator *crawl.Coordinator
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })

	h := &harness{
		site:        newFixtureSite(),
		words:       sqlite.NewWordService(db),
		checkpoints: fs.NewCheckpointTracker(t.TempDir()),
	}
	h.coordinator = &crawl.Coordinator{
		Browser:     h.site,
		Extractor:   htmlquery.NewLinkExtractor(origin),
		Checkpoints: h.checkpoints,
		Words:       h.words,
		Navigator:   fastOptions(),
	}
	return h
}

func (h *harness) storedURLs(t *testing.T, alphabet string) []string {
	t.Helper()
	words, err := h.words.FindWords(context.Background(), lingua.WordFilter{Alphabet: &alphabet})
	require.NoError(t, err)
	urls := make([]string, len(words))
	for i, w := range words {
		urls[i] = w.URL
	}
	return urls
}

func assertUnique(t *testing.T, urls []string) {
	t.Helper()
	seen := make(map[string]bool)
	for _, u := range urls {
		assert.False(t, seen[u], "duplicate %s", u)
		seen[u] = true
	}
}

// Story: Paginated Section Crawl
// A run walks every page of a letter section and stores each link once.

func TestCoordinator_Run_CompletesSection(t *testing.T) {
	t.Parallel()

	// Given a section of three pages holding 10, 10 and 5 links
	h := newHarness(t)
	start := h.site.addSection("അ", 10, 10, 5)

	// When I run it
	result := h.coordinator.Run(context.Background(), lingua.Run{Key: "അ", StartURL: start})

	// Then all 25 links are stored in page order
	require.NoError(t, result.Err)
	assert.Equal(t, lingua.RunComplete, result.State)
	assert.Equal(t, 3, result.Pages)
	assert.Equal(t, 25, result.Discovered)
	assert.Equal(t, 25, result.Stored)
	urls := h.storedURLs(t, "അ")
	require.Len(t, urls, 25)
	assertUnique(t, urls)
	assert.Equal(t, origin+linkPath("അ", 1, 1), urls[0])
	assert.Equal(t, origin+linkPath("അ", 3, 5), urls[24])

	// And the checkpoint record is gone
	assert.False(t, h.checkpoints.Exists("അ"))

	// And the session was released
	requireSessionsClosed(t, h.site)
}

func TestCoordinator_Run_ResumesAfterAbort(t *testing.T) {
	t.Parallel()

	// Given a run that aborts while advancing past the first page
	h := newHarness(t)
	start := h.site.addSection("ക", 10, 10, 5)
	h.site.failClicks(errors.New("target closed"))
	ctx := context.Background()

	first := h.coordinator.Run(ctx, lingua.Run{Key: "ക", StartURL: start})

	require.Equal(t, lingua.RunFailed, first.State)
	assert.Equal(t, lingua.PhaseNavigate, lingua.ErrorPhase(first.Err))
	assert.Len(t, h.storedURLs(t, "ക"), 10)
	cp, err := h.checkpoints.Load(ctx, "ക")
	require.NoError(t, err)
	assert.Equal(t, 10, cp.Len())

	// When the run is invoked again
	h.site.failClicks(nil)
	second := h.coordinator.Run(ctx, lingua.Run{Key: "ക", StartURL: start})

	// Then it completes without duplicating the first page
	require.NoError(t, second.Err)
	assert.Equal(t, lingua.RunComplete, second.State)
	assert.Equal(t, 10, second.Seen)
	assert.Equal(t, 15, second.Stored)
	urls := h.storedURLs(t, "ക")
	assert.Len(t, urls, 25)
	assertUnique(t, urls)
	assert.False(t, h.checkpoints.Exists("ക"))
	requireSessionsClosed(t, h.site)
}

func TestCoordinator_Run_RecoversLinkCheckpointedButNotStored(t *testing.T) {
	t.Parallel()

	// Given a run whose store fails on the fifth link
	h := newHarness(t)
	start := h.site.addSection("ച", 10, 10, 5)
	ctx := context.Background()
	c := *h.coordinator
	c.Words = &failingStore{next: h.words, failAt: 5}

	first := c.Run(ctx, lingua.Run{Key: "ച", StartURL: start})

	// Then the run fails in the store phase with the link already checkpointed
	require.Equal(t, lingua.RunFailed, first.State)
	assert.Equal(t, lingua.PhaseStore, lingua.ErrorPhase(first.Err))
	assert.Equal(t, lingua.ESTORE, lingua.ErrorCode(first.Err))
	assert.Len(t, h.storedURLs(t, "ച"), 4)
	cp, err := h.checkpoints.Load(ctx, "ച")
	require.NoError(t, err)
	assert.Equal(t, 5, cp.Len())

	// When the run resumes with a healthy store
	second := h.coordinator.Run(ctx, lingua.Run{Key: "ച", StartURL: start})

	// Then no link is lost or duplicated
	require.NoError(t, second.Err)
	urls := h.storedURLs(t, "ച")
	assert.Len(t, urls, 25)
	assertUnique(t, urls)
	last, _ := cp.Last()
	assert.Contains(t, urls, last)
}

func TestCoordinator_Run_SkipsAnchorsThatAreNotWords(t *testing.T) {
	t.Parallel()

	// Given a single-page section mixing word links with a fragment,
	// a root link and a mail link
	h := newHarness(t)
	start := sectionPageURL("ത", 1)
	h.site.pages[start] = sectionPage([]string{"/wiki/A", "#top", "/", "mailto:editor@example.org", "/wiki/B"}, "", true)
	ctx := context.Background()

	// When I run it
	result := h.coordinator.Run(ctx, lingua.Run{Key: "ത", StartURL: start})

	// Then only the word links are stored and the others are counted as skipped
	require.NoError(t, result.Err)
	assert.Equal(t, lingua.RunComplete, result.State)
	assert.Equal(t, 3, result.SkippedLinks)
	assert.Equal(t, 2, result.Stored)
	assert.Equal(t, []string{origin + "/wiki/A", origin + "/wiki/B"}, h.storedURLs(t, "ത"))
}

func TestCoordinator_Run_ResumesPastNonWordCheckpointEntry(t *testing.T) {
	t.Parallel()

	// Given a checkpoint whose last entry cannot name a word
	h := newHarness(t)
	start := h.site.addSection("ഥ", 3)
	ctx := context.Background()
	first := origin + linkPath("ഥ", 1, 1)
	require.NoError(t, h.checkpoints.MarkProcessed(ctx, "ഥ", first))
	_, err := h.words.AddLink(ctx, "ഥ", first)
	require.NoError(t, err)
	require.NoError(t, h.checkpoints.MarkProcessed(ctx, "ഥ", origin+"#top"))

	// When the run resumes
	result := h.coordinator.Run(ctx, lingua.Run{Key: "ഥ", StartURL: start})

	// Then the entry is not re-delivered and the rest of the section is stored
	require.NoError(t, result.Err)
	assert.Equal(t, 1, result.Seen)
	assert.Equal(t, 2, result.Stored)
	assert.Len(t, h.storedURLs(t, "ഥ"), 3)
	assert.False(t, h.checkpoints.Exists("ഥ"))
}

func TestCoordinator_Run_SinglePageWithoutLinks(t *testing.T) {
	t.Parallel()

	// Given a section whose only page has no links and no next control
	h := newHarness(t)
	start := h.site.addSection("ഞ", 0)

	// When I run it
	result := h.coordinator.Run(context.Background(), lingua.Run{Key: "ഞ", StartURL: start})

	// Then it completes with nothing stored and no checkpoint left
	require.NoError(t, result.Err)
	assert.Equal(t, lingua.RunComplete, result.State)
	assert.Equal(t, 1, result.Pages)
	assert.Equal(t, 0, result.Stored)
	assert.Empty(t, h.storedURLs(t, "ഞ"))
	assert.False(t, h.checkpoints.Exists("ഞ"))
}

func TestCoordinator_Run_IsIdempotent(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	start := h.site.addSection("ട", 10, 10, 5)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		result := h.coordinator.Run(ctx, lingua.Run{Key: "ട", StartURL: start})
		require.NoError(t, result.Err)
	}

	urls := h.storedURLs(t, "ട")
	assert.Len(t, urls, 25)
	assertUnique(t, urls)
}

func TestCoordinator_Run_SkipsPageThatFailsExtraction(t *testing.T) {
	t.Parallel()

	// Given an extractor that cannot parse the second page
	h := newHarness(t)
	start := h.site.addSection("ത", 10, 10, 5)
	inner := htmlquery.NewLinkExtractor(origin)
	h.coordinator.Extractor = &mock.LinkExtractor{
		ExtractFn: func(markup string, region lingua.Locator) ([]string, error) {
			if strings.Contains(markup, linkPath("ത", 2, 1)) {
				return nil, lingua.Errorf(lingua.EEXTRACT, "region %q not found in page", region.Name)
			}
			return inner.Extract(markup, region)
		},
	}

	// When I run it
	result := h.coordinator.Run(context.Background(), lingua.Run{Key: "ത", StartURL: start})

	// Then the run still reaches the last page
	require.NoError(t, result.Err)
	assert.Equal(t, lingua.RunComplete, result.State)
	assert.Equal(t, 3, result.Pages)
	assert.Equal(t, 1, result.SkippedPages)
	assert.Len(t, h.storedURLs(t, "ത"), 15)
}

func TestCoordinator_Run_Failures(t *testing.T) {
	t.Parallel()

	t.Run("missing start page fails in navigate phase and keeps no record", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)

		result := h.coordinator.Run(context.Background(), lingua.Run{Key: "ഥ", StartURL: origin + "/wiki/missing"})

		assert.Equal(t, lingua.RunFailed, result.State)
		assert.Equal(t, lingua.PhaseNavigate, lingua.ErrorPhase(result.Err))
		assert.Equal(t, lingua.ENAVIGATION, lingua.ErrorCode(result.Err))
		requireSessionsClosed(t, h.site)
	})

	t.Run("checkpoint failure is fatal", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)
		start := h.site.addSection("ദ", 3)
		h.coordinator.Checkpoints = &mock.CheckpointTracker{
			LoadFn: func(_ context.Context, key string) (*lingua.Checkpoint, error) {
				return lingua.NewCheckpoint(key), nil
			},
			MarkProcessedFn: func(context.Context, string, string) error {
				return lingua.Errorf(lingua.ECHECKPOINT, "disk full")
			},
		}

		result := h.coordinator.Run(context.Background(), lingua.Run{Key: "ദ", StartURL: start})

		assert.Equal(t, lingua.RunFailed, result.State)
		assert.Equal(t, lingua.PhaseCheckpoint, lingua.ErrorPhase(result.Err))
		assert.Empty(t, h.storedURLs(t, "ദ"), "store must not run before the checkpoint append")
	})

	t.Run("invalid run", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)

		result := h.coordinator.Run(context.Background(), lingua.Run{Key: "ധ"})

		assert.Equal(t, lingua.RunFailed, result.State)
		assert.Equal(t, lingua.EINVALID, lingua.ErrorCode(result.Err))
	})
}

func TestCoordinator_RunAll(t *testing.T) {
	t.Parallel()

	// Given four sections, one of which is unreachable
	h := newHarness(t)
	h.coordinator.Concurrency = 2
	runs := []lingua.Run{
		{Key: "അ", StartURL: h.site.addSection("അ", 3, 2)},
		{Key: "ആ", StartURL: origin + "/wiki/missing"},
		{Key: "ഇ", StartURL: h.site.addSection("ഇ", 4)},
		{Key: "ഈ", StartURL: h.site.addSection("ഈ", 1, 1, 1)},
	}

	// When I run them together
	results := h.coordinator.RunAll(context.Background(), runs)

	// Then each run reports its own outcome in input order
	require.Len(t, results, 4)
	for i, r := range results {
		assert.Equal(t, runs[i].Key, r.Key)
	}
	assert.Equal(t, lingua.RunComplete, results[0].State)
	assert.Equal(t, lingua.RunFailed, results[1].State)
	assert.Equal(t, lingua.RunComplete, results[2].State)
	assert.Equal(t, lingua.RunComplete, results[3].State)
	assert.Len(t, h.storedURLs(t, "അ"), 5)
	assert.Len(t, h.storedURLs(t, "ഇ"), 4)
	assert.Len(t, h.storedURLs(t, "ഈ"), 3)

	// And no more than two sessions were open at once
	_, _, maxActive := h.site.stats()
	assert.LessOrEqual(t, maxActive, 2)
	requireSessionsClosed(t, h.site)
}
