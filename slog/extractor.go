package slog

import (
	"log/slog"

	"github.com/fwojciec/lingua"
)

// Ensure LoggingLinkExtractor implements lingua.LinkExtractor.
var _ lingua.LinkExtractor = (*LoggingLinkExtractor)(nil)

// LoggingLinkExtractor wraps a LinkExtractor with debug logging of the
// region strategy used on each page.
type LoggingLinkExtractor struct {
	next   lingua.LinkExtractor
	logger *slog.Logger
}

// NewLoggingLinkExtractor creates a new LoggingLinkExtractor.
func NewLoggingLinkExtractor(next lingua.LinkExtractor, logger *slog.Logger) *LoggingLinkExtractor {
	return &LoggingLinkExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the result.
func (e *LoggingLinkExtractor) Extract(markup string, region lingua.Locator) ([]string, error) {
	links, err := e.next.Extract(markup, region)
	e.logger.Debug("extract links",
		"region", region.Name,
		"count", len(links),
		"err", err,
	)
	return links, err
}
