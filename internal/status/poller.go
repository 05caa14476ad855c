package status

import (
	"context"
	"log/slog"
	"time"

	"parkmap/internal/metrics"
)

// Fetcher returns one payload of the live feed.
type Fetcher interface {
	Fetch(ctx context.Context) ([]Record, error)
}

// Result is the outcome of one poll. On failure Lookup is nil and Err says
// why; the consumer keeps whatever lookup it had.
type Result struct {
	Lookup Lookup
	Err    error
	At     time.Time
}

// OK reports whether the poll produced a lookup.
func (r Result) OK() bool { return r.Err == nil }

// Poller re-fetches the feed on a fixed interval.
type Poller struct {
	Source   Fetcher
	Interval time.Duration
	Logger   *slog.Logger
}

// Poll fetches once and merges the payload.
func (p *Poller) Poll(ctx context.Context) Result {
	start := time.Now()
	records, err := p.Source.Fetch(ctx)
	metrics.PollDurationMs.Observe(float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.PollsTotal.WithLabelValues("error").Inc()
		if p.Logger != nil {
			p.Logger.Warn("status_poll_error", "err", err)
		}
		return Result{Err: err, At: start}
	}
	metrics.PollsTotal.WithLabelValues("ok").Inc()
	lookup := Merge(records)
	if p.Logger != nil {
		p.Logger.Debug("status_poll_ok", "records", len(records), "slots", len(lookup))
	}
	return Result{Lookup: lookup, At: start}
}

// Run polls immediately and then every Interval until ctx is cancelled,
// sending each Result to out. It closes out before returning. A send blocks
// until the consumer is ready or ctx ends.
func (p *Poller) Run(ctx context.Context, out chan<- Result) {
	defer close(out)
	interval := p.Interval
	if interval <= 0 {
		interval = 15 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		res := p.Poll(ctx)
		if ctx.Err() != nil {
			return
		}
		select {
		case out <- res:
		case <-ctx.Done():
			return
		}
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		}
	}
}
