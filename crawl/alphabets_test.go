package crawl_test

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/lingua"
	"github.com/fwojciec/lingua/crawl"
	"github.com/fwojciec/lingua/goquery"
	"github.com/fwojciec/lingua/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const indexURL = origin + "/wiki/index"

func indexPage(letters ...string) string {
	var b strings.Builder
	b.WriteString(`<html><body><div id="mwCA"><div id="mwBw">`)
	for _, l := range letters {
		fmt.Fprintf(&b, `<a href="/wiki/section-%s-1">%s</a> `, url.PathEscape(l), l)
	}
	b.WriteString(`</div></div></body></html>`)
	return b.String()
}

func newDiscoverer(t *testing.T, site *fixtureSite) (*crawl.AlphabetDiscoverer, *sqlite.AlphabetService, *sqlite.WordService) {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })

	alphabets := sqlite.NewAlphabetService(db)
	d := &crawl.AlphabetDiscoverer{
		Browser:      site,
		Extractor:    goquery.NewAlphabetExtractor(origin),
		Alphabets:    alphabets,
		ReadyTimeout: 50 * time.Millisecond,
		PollInterval: 5 * time.Millisecond,
	}
	return d, alphabets, sqlite.NewWordService(db)
}

func TestAlphabetDiscoverer_Discover(t *testing.T) {
	t.Parallel()

	t.Run("stores letters from the index in page order", func(t *testing.T) {
		t.Parallel()

		site := newFixtureSite()
		site.pages[indexURL] = indexPage("അ", "ആ", "ഇ")
		d, alphabets, _ := newDiscoverer(t, site)

		result, err := d.Discover(context.Background(), indexURL, false)

		require.NoError(t, err)
		assert.False(t, result.Skipped)
		stored, err := alphabets.FindAlphabets(context.Background(), lingua.AlphabetFilter{})
		require.NoError(t, err)
		require.Len(t, stored, 3)
		assert.Equal(t, "അ", stored[0].Letter)
		assert.Equal(t, sectionPageURL("അ", 1), stored[0].URL)
		assert.Equal(t, "ഇ", stored[2].Letter)
		requireSessionsClosed(t, site)
	})

	t.Run("skips when a complete list is stored", func(t *testing.T) {
		t.Parallel()

		site := newFixtureSite()
		d, alphabets, _ := newDiscoverer(t, site)
		ctx := context.Background()
		for i := 0; i < lingua.MinAlphabets; i++ {
			require.NoError(t, alphabets.UpsertAlphabet(ctx, &lingua.Alphabet{
				Letter: fmt.Sprintf("L%d", i),
				URL:    fmt.Sprintf("%s/wiki/L%d", origin, i),
			}))
		}

		result, err := d.Discover(ctx, indexURL, false)

		require.NoError(t, err)
		assert.True(t, result.Skipped)
		assert.Len(t, result.Alphabets, lingua.MinAlphabets)
		opened, _, _ := site.stats()
		assert.Zero(t, opened, "index should not be loaded")
	})

	t.Run("replaces an incomplete list", func(t *testing.T) {
		t.Parallel()

		site := newFixtureSite()
		site.pages[indexURL] = indexPage("അ", "ആ")
		d, alphabets, words := newDiscoverer(t, site)
		ctx := context.Background()
		require.NoError(t, alphabets.UpsertAlphabet(ctx, &lingua.Alphabet{Letter: "stale", URL: origin + "/wiki/stale"}))
		_, err := words.AddLink(ctx, "stale", origin+"/wiki/old-word")
		require.NoError(t, err)

		result, err := d.Discover(ctx, indexURL, false)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Deleted)
		stored, err := alphabets.FindAlphabets(ctx, lingua.AlphabetFilter{})
		require.NoError(t, err)
		require.Len(t, stored, 2)
		visible, err := words.FindWords(ctx, lingua.WordFilter{})
		require.NoError(t, err)
		assert.Empty(t, visible)
	})

	t.Run("keeps existing list when the index fails to render", func(t *testing.T) {
		t.Parallel()

		site := newFixtureSite()
		site.pages[indexURL] = `<html><body><p>maintenance</p></body></html>`
		d, alphabets, _ := newDiscoverer(t, site)
		ctx := context.Background()
		require.NoError(t, alphabets.UpsertAlphabet(ctx, &lingua.Alphabet{Letter: "അ", URL: origin + "/wiki/a"}))

		_, err := d.Discover(ctx, indexURL, true)

		assert.Equal(t, lingua.ENAVIGATION, lingua.ErrorCode(err))
		stored, err := alphabets.FindAlphabets(ctx, lingua.AlphabetFilter{})
		require.NoError(t, err)
		assert.Len(t, stored, 1)
		requireSessionsClosed(t, site)
	})

	t.Run("returns EEXTRACT for an index without letters", func(t *testing.T) {
		t.Parallel()

		site := newFixtureSite()
		site.pages[indexURL] = indexPage()
		d, _, _ := newDiscoverer(t, site)

		_, err := d.Discover(context.Background(), indexURL, false)

		assert.Equal(t, lingua.EEXTRACT, lingua.ErrorCode(err))
	})
}
