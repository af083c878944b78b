package stress

import (
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// Metrics collects results during a run.
type Metrics struct {
	mu sync.Mutex

	totalRequests  atomic.Int64
	failedRequests atomic.Int64

	// Latency histogram in microseconds, 1us to 60s, 3 significant digits.
	histogram *hdrhistogram.Histogram

	startTime time.Time
	endTime   time.Time
}

// NewMetrics creates a new Metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		histogram: hdrhistogram.New(1, 60_000_000, 3),
	}
}

// Start marks the beginning of the run.
func (m *Metrics) Start() {
	m.startTime = time.Now()
}

// Stop marks the end of the run.
func (m *Metrics) Stop() {
	m.endTime = time.Now()
}

// Record records one handler invocation.
func (m *Metrics) Record(duration time.Duration, failed bool) {
	m.totalRequests.Add(1)
	if failed {
		m.failedRequests.Add(1)
	}

	latencyUs := duration.Microseconds()
	if latencyUs < 1 {
		latencyUs = 1
	}
	if latencyUs > 60_000_000 {
		latencyUs = 60_000_000
	}

	m.mu.Lock()
	_ = m.histogram.RecordValue(latencyUs)
	m.mu.Unlock()
}

// Summary is the final result of a run.
type Summary struct {
	Duration      time.Duration
	TotalRequests int64
	FailedCount   int64

	RPS       float64
	ErrorRate float64

	P50  time.Duration
	P95  time.Duration
	P99  time.Duration
	Min  time.Duration
	Max  time.Duration
	Mean time.Duration
}

// GetSummary returns the aggregated results.
func (m *Metrics) GetSummary() *Summary {
	m.mu.Lock()
	defer m.mu.Unlock()

	duration := m.endTime.Sub(m.startTime)
	if m.endTime.IsZero() {
		duration = time.Since(m.startTime)
	}

	total := m.totalRequests.Load()
	failed := m.failedRequests.Load()

	rps := float64(0)
	if duration.Seconds() > 0 {
		rps = float64(total) / duration.Seconds()
	}
	errorRate := float64(0)
	if total > 0 {
		errorRate = float64(failed) / float64(total)
	}

	return &Summary{
		Duration:      duration,
		TotalRequests: total,
		FailedCount:   failed,
		RPS:           rps,
		ErrorRate:     errorRate,
		P50:           time.Duration(m.histogram.ValueAtQuantile(50)) * time.Microsecond,
		P95:           time.Duration(m.histogram.ValueAtQuantile(95)) * time.Microsecond,
		P99:           time.Duration(m.histogram.ValueAtQuantile(99)) * time.Microsecond,
		Min:           time.Duration(m.histogram.Min()) * time.Microsecond,
		Max:           time.Duration(m.histogram.Max()) * time.Microsecond,
		Mean:          time.Duration(m.histogram.Mean()) * time.Microsecond,
	}
}

// ThresholdResult is the outcome of one threshold check.
type ThresholdResult struct {
	Name     string
	Passed   bool
	Expected string
	Actual   string
}

// EvaluateThresholds checks the summary against the configured thresholds.
func (s *Summary) EvaluateThresholds(t Thresholds) []ThresholdResult {
	var results []ThresholdResult

	check := func(name string, limit time.Duration, actual time.Duration) {
		if limit <= 0 {
			return
		}
		results = append(results, ThresholdResult{
			Name:     name,
			Passed:   actual <= limit,
			Expected: "< " + limit.String(),
			Actual:   actual.String(),
		})
	}

	check("p50", t.P50, s.P50)
	check("p95", t.P95, s.P95)
	check("p99", t.P99, s.P99)
	check("max latency", t.MaxLatency, s.Max)

	if t.ErrorRate > 0 {
		results = append(results, ThresholdResult{
			Name:     "error rate",
			Passed:   s.ErrorRate <= t.ErrorRate,
			Expected: formatRate(t.ErrorRate),
			Actual:   formatRate(s.ErrorRate),
		})
	}

	return results
}

func formatRate(f float64) string {
	return strconv.FormatFloat(f*100, 'f', 2, 64) + "%"
}
