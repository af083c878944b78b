package stress

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snapdriver/snapreq/packages/reqbuild"
)

func buildRequest(t *testing.T) *reqbuild.Request {
	t.Helper()
	req, err := reqbuild.New().Get("/ping", nil).Build()
	require.NoError(t, err)
	return req
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	bad := DefaultConfig()
	bad.Duration = 0
	assert.Error(t, bad.Validate())

	bad = DefaultConfig()
	bad.Rate = -1
	assert.Error(t, bad.Validate())

	bad = DefaultConfig()
	bad.MaxConcurrent = 0
	assert.Error(t, bad.Validate())
}

func TestNewRunner_RequiresHandlerAndRequests(t *testing.T) {
	cfg := DefaultConfig()

	_, err := NewRunner(cfg, nil, []*reqbuild.Request{buildRequest(t)})
	assert.Error(t, err)

	_, err = NewRunner(cfg, http.NotFoundHandler(), nil)
	assert.Error(t, err)
}

func TestRunner_DrivesHandlerAtRate(t *testing.T) {
	var served atomic.Int64
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		served.Add(1)
		w.WriteHeader(http.StatusOK)
	})

	cfg := &Config{
		Duration:      300 * time.Millisecond,
		Rate:          200,
		MaxConcurrent: 8,
	}
	runner, err := NewRunner(cfg, handler, []*reqbuild.Request{buildRequest(t)})
	require.NoError(t, err)

	summary := runner.Run(context.Background())

	assert.Positive(t, summary.TotalRequests)
	assert.Equal(t, served.Load(), summary.TotalRequests)
	assert.Zero(t, summary.FailedCount)
	assert.Positive(t, summary.RPS)
}

func TestRunner_CountsServerErrorsAsFailures(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	cfg := &Config{Duration: 100 * time.Millisecond, Rate: 100, MaxConcurrent: 4}
	runner, err := NewRunner(cfg, handler, []*reqbuild.Request{buildRequest(t)})
	require.NoError(t, err)

	summary := runner.Run(context.Background())

	assert.Positive(t, summary.TotalRequests)
	assert.Equal(t, summary.TotalRequests, summary.FailedCount)
	assert.InDelta(t, 1.0, summary.ErrorRate, 0.0001)
}

func TestRunner_ContextCancelStopsEarly(t *testing.T) {
	cfg := &Config{Duration: 10 * time.Second, Rate: 50, MaxConcurrent: 4}
	runner, err := NewRunner(cfg, http.NotFoundHandler(), []*reqbuild.Request{buildRequest(t)})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	done := make(chan *Summary, 1)
	go func() { done <- runner.Run(ctx) }()

	select {
	case summary := <-done:
		assert.Less(t, summary.Duration, 2*time.Second)
	case <-time.After(5 * time.Second):
		t.Fatal("runner did not stop after context cancellation")
	}
}

func TestSummary_EvaluateThresholds(t *testing.T) {
	m := NewMetrics()
	m.Start()
	m.Record(2*time.Millisecond, false)
	m.Record(4*time.Millisecond, false)
	m.Record(6*time.Millisecond, true)
	m.Stop()

	summary := m.GetSummary()

	results := summary.EvaluateThresholds(Thresholds{
		P95:       time.Second,
		ErrorRate: 0.5,
	})
	require.Len(t, results, 2)
	for _, r := range results {
		assert.True(t, r.Passed, r.Name)
	}

	results = summary.EvaluateThresholds(Thresholds{MaxLatency: time.Microsecond})
	require.Len(t, results, 1)
	assert.False(t, results[0].Passed)
}

func TestRunner_RoundRobinAcrossRequests(t *testing.T) {
	var gets, posts atomic.Int64
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			gets.Add(1)
		case http.MethodPost:
			posts.Add(1)
		}
		w.WriteHeader(http.StatusOK)
	})

	getReq := buildRequest(t)
	postReq, err := reqbuild.New().PostURLEncoded("/submit", []reqbuild.Param{{Name: "a", Value: "1"}}).Build()
	require.NoError(t, err)

	cfg := &Config{Duration: 200 * time.Millisecond, Rate: 200, MaxConcurrent: 8}
	runner, err := NewRunner(cfg, handler, []*reqbuild.Request{getReq, postReq})
	require.NoError(t, err)

	runner.Run(context.Background())

	assert.Positive(t, gets.Load())
	assert.Positive(t, posts.Load())
}
