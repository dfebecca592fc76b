package collector

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/edgedebug/internal/domain"
	"github.com/hamed0406/edgedebug/internal/probe"
)

// Collector runs every registered probe and assembles the diagnostic record.
// Probes run concurrently up to Concurrency, but the record always comes out
// in registry order: ordering is a presentation guarantee, not an execution
// guarantee.
type Collector struct {
	Logger      *zap.Logger
	Probes      []probe.Probe
	Timeout     time.Duration
	Concurrency int
}

func New(logger *zap.Logger, probes []probe.Probe, timeout time.Duration, concurrency int) *Collector {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &Collector{
		Logger:      logger,
		Probes:      probes,
		Timeout:     timeout,
		Concurrency: concurrency,
	}
}

// Collect runs all probes and returns the record. A failing or hanging probe
// becomes a Failure entry and never stops the others; the only error Collect
// returns is ctx cancellation, in which case no record is usable and the
// caller must emit nothing.
func (c *Collector) Collect(ctx context.Context) (domain.Record, error) {
	results := make([]probe.Result, len(c.Probes))

	sem := make(chan struct{}, c.Concurrency)
	var wg sync.WaitGroup

	for i, p := range c.Probes {
		select {
		case <-ctx.Done():
		case sem <- struct{}{}:
		}
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		go func(i int, p probe.Probe) {
			defer func() { <-sem }()
			defer wg.Done()

			start := time.Now()
			results[i] = c.runOne(ctx, p)
			c.Logger.Debug("probe_finished",
				zap.String("probe", p.ID()),
				zap.Bool("ok", results[i].OK),
				zap.Duration("elapsed", time.Since(start)),
			)
		}(i, p)
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		c.Logger.Info("collect_cancelled", zap.Error(err))
		return domain.Record{}, err
	}

	rec := domain.Record{Entries: make([]domain.Entry, len(c.Probes))}
	for i, p := range c.Probes {
		rec.Entries[i] = domain.Entry{Probe: p.ID(), Result: results[i]}
	}
	return rec, nil
}

// runOne executes a single probe under the hard per-probe deadline. The
// probe gets a ctx carrying the deadline, but the deadline is enforced here
// with a select: a probe that ignores its ctx is abandoned and recorded as
// timed out rather than allowed to hang the run.
func (c *Collector) runOne(ctx context.Context, p probe.Probe) probe.Result {
	pctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	done := make(chan probe.Result, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- probe.Fail(fmt.Sprintf("probe panicked: %v", r))
			}
		}()
		done <- p.Run(pctx)
	}()

	select {
	case res := <-done:
		return res
	case <-pctx.Done():
		if ctx.Err() != nil {
			return probe.Fail("cancelled")
		}
		c.Logger.Warn("probe_timeout", zap.String("probe", p.ID()), zap.Duration("timeout", c.Timeout))
		return probe.Fail(fmt.Sprintf("timed out after %s", c.Timeout))
	}
}
