package crawl

import (
	"fmt"

	"github.com/fwojciec/lingua"
)

// TruncateURL shortens a URL for display, keeping the end which is more
// informative. Lengths count runes so unescaped titles are never split
// mid-character.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(url)
	if maxLen < 4 {
		return string(runes[:min(len(runes), maxLen)])
	}
	if len(runes) <= maxLen {
		return url
	}
	return "..." + string(runes[len(runes)-maxLen+3:])
}

// FormatRunResult renders a one-line summary of a run for terminal output.
func FormatRunResult(r *lingua.RunResult) string {
	line := fmt.Sprintf("%s: %s pages=%d stored=%d seen=%d", r.Key, r.State, r.Pages, r.Stored, r.Seen)
	if r.SkippedPages > 0 {
		line += fmt.Sprintf(" skipped_pages=%d", r.SkippedPages)
	}
	if r.SkippedLinks > 0 {
		line += fmt.Sprintf(" skipped_links=%d", r.SkippedLinks)
	}
	if r.Err != nil {
		line += fmt.Sprintf(" err=%q", r.Err.Error())
	}
	return line
}
