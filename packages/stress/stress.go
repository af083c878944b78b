package stress

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/snapdriver/snapreq/packages/reqbuild"
)

// Runner fires pre-built requests at a handler for the configured duration.
type Runner struct {
	config   *Config
	handler  http.Handler
	requests []*reqbuild.Request
	metrics  *Metrics

	limiter *rate.Limiter
	sem     chan struct{}
	next    atomic.Int64
}

// NewRunner creates a runner for the given handler and request set.
func NewRunner(config *Config, handler http.Handler, requests []*reqbuild.Request) (*Runner, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid stress config: %w", err)
	}
	if handler == nil {
		return nil, fmt.Errorf("handler is required")
	}
	if len(requests) == 0 {
		return nil, fmt.Errorf("at least one request is required")
	}

	return &Runner{
		config:   config,
		handler:  handler,
		requests: requests,
		metrics:  NewMetrics(),
		limiter:  rate.NewLimiter(rate.Limit(config.Rate), 1),
		sem:      make(chan struct{}, config.MaxConcurrent),
	}, nil
}

// Run executes the load until the configured duration elapses or ctx is
// cancelled, then returns the aggregated summary. Context cancellation is a
// normal early stop, not an error.
func (r *Runner) Run(ctx context.Context) *Summary {
	runCtx, cancel := context.WithTimeout(ctx, r.config.Duration)
	defer cancel()

	var wg sync.WaitGroup
	r.metrics.Start()

	for {
		if err := r.limiter.Wait(runCtx); err != nil {
			break
		}
		select {
		case r.sem <- struct{}{}:
		case <-runCtx.Done():
		}
		if runCtx.Err() != nil {
			break
		}

		req := r.selectRequest()
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-r.sem }()
			r.serve(req)
		}()
	}

	wg.Wait()
	r.metrics.Stop()
	return r.metrics.GetSummary()
}

// selectRequest hands out requests round-robin.
func (r *Runner) selectRequest() *reqbuild.Request {
	n := r.next.Add(1) - 1
	return r.requests[int(n)%len(r.requests)]
}

// serve runs one in-memory exchange. A handler response of 500 or above, or
// a request that cannot be materialized, counts as a failure.
func (r *Runner) serve(req *reqbuild.Request) {
	start := time.Now()

	httpReq, err := req.ToHTTP()
	if err != nil {
		r.metrics.Record(time.Since(start), true)
		return
	}

	rec := httptest.NewRecorder()
	r.handler.ServeHTTP(rec, httpReq)
	r.metrics.Record(time.Since(start), rec.Code >= http.StatusInternalServerError)
}
