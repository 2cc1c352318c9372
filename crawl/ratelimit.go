package crawl

import (
	"context"
	"sync"

	"github.com/fwojciec/lingua"
	"golang.org/x/time/rate"
)

var _ lingua.DomainLimiter = (*DomainLimiter)(nil)

// DefaultRequestsPerSecond is the per-host request rate used by the CLI.
const DefaultRequestsPerSecond = 1.0

// DomainLimiter throttles requests per host using token buckets, so
// concurrent runs against the same wiki share one budget.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
}

// NewDomainLimiter creates a DomainLimiter allowing rps requests per
// second to each host with no bursting. A non-positive rps disables
// throttling.
func NewDomainLimiter(rps float64) *DomainLimiter {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
	}
}

// Wait blocks until the host's bucket allows a request.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, host string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(d.limit, 1)
		d.limiters[host] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
