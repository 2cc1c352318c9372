// Package crawl orchestrates the dictionary crawl: discovering letter
// sections, walking each section's paginated word list with resumable
// checkpoints, and scraping definitions for stored words.
package crawl

import (
	"io"
	"log/slog"
)

// discardLogger is used when a component is not given a logger.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
