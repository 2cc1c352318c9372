package crawl_test

import (
	"testing"

	"github.com/fwojciec/lingua"
	"github.com/fwojciec/lingua/crawl"
	"github.com/stretchr/testify/assert"
)

func TestTruncateURL(t *testing.T) {
	t.Parallel()

	t.Run("returns URL unchanged when shorter than max", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "https://x.com", crawl.TruncateURL("https://x.com", 50))
	})

	t.Run("truncates with ellipsis when longer than max", func(t *testing.T) {
		t.Parallel()
		url := "https://example.com/very/long/path/to/documentation"
		result := crawl.TruncateURL(url, 20)
		assert.Equal(t, ".../to/documentation", result)
		assert.Len(t, result, 20)
	})

	t.Run("counts runes rather than bytes", func(t *testing.T) {
		t.Parallel()
		result := crawl.TruncateURL("https://ml.wiktionary.org/wiki/അമ്മ", 7)
		assert.Equal(t, "...അമ്മ", result)
	})

	t.Run("returns empty string when maxLen is zero", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, crawl.TruncateURL("https://example.com", 0))
	})

	t.Run("returns prefix when maxLen is too short for ellipsis", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "htt", crawl.TruncateURL("https://example.com", 3))
	})
}

func TestFormatRunResult(t *testing.T) {
	t.Parallel()

	t.Run("complete run", func(t *testing.T) {
		t.Parallel()

		line := crawl.FormatRunResult(&lingua.RunResult{Key: "അ", State: lingua.RunComplete, Pages: 3, Stored: 25})

		assert.Equal(t, "അ: COMPLETE pages=3 stored=25 seen=0", line)
	})

	t.Run("failed run", func(t *testing.T) {
		t.Parallel()

		line := crawl.FormatRunResult(&lingua.RunResult{
			Key:          "ക",
			State:        lingua.RunFailed,
			Pages:        1,
			SkippedPages: 1,
			SkippedLinks: 2,
			Err:          &lingua.RunError{Key: "ക", Phase: lingua.PhaseStore, Err: lingua.Errorf(lingua.ESTORE, "locked")},
		})

		assert.Contains(t, line, "ക: FAILED pages=1")
		assert.Contains(t, line, "skipped_pages=1")
		assert.Contains(t, line, "skipped_links=2")
		assert.Contains(t, line, `err="run ക: store: `)
	})
}
