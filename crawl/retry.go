package crawl

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/lingua"
)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// FetchWithRetry fetches url, retrying once per delay with the given
// backoff. ENOTFOUND and EINVALID are returned without retrying. The
// logger, if non-nil, records each retry.
func FetchWithRetry(ctx context.Context, fetcher lingua.Fetcher, url string, delays []time.Duration, logger *slog.Logger) (string, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		html, err := fetcher.Fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if code := lingua.ErrorCode(err); code == lingua.ENOTFOUND || code == lingua.EINVALID {
			return "", err
		}
		if attempt >= maxAttempts-1 {
			break
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		if logger != nil {
			logger.Debug("fetch retry", "url", url, "attempt", attempt+2, "err", err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}
