// Package stress drives synthesized requests through an http.Handler at a
// fixed rate, entirely in memory, collecting latency percentiles and
// evaluating pass/fail thresholds. It answers "how does this handler behave
// under sustained load" without a listener or a client in the loop.
package stress

import (
	"fmt"
	"time"
)

// Config holds the load shape for a run.
type Config struct {
	Duration      time.Duration
	Rate          float64 // requests per second
	MaxConcurrent int     // max in-flight handler invocations
	Thresholds    Thresholds
}

// Thresholds defines pass/fail criteria evaluated against the run summary.
// Zero values are not evaluated.
type Thresholds struct {
	P50        time.Duration
	P95        time.Duration
	P99        time.Duration
	MaxLatency time.Duration
	ErrorRate  float64 // maximum failure rate, 0.0 - 1.0
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Duration:      10 * time.Second,
		Rate:          100,
		MaxConcurrent: 64,
	}
}

// Validate checks if the config is valid.
func (c *Config) Validate() error {
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive")
	}
	if c.Rate <= 0 {
		return fmt.Errorf("rate must be positive")
	}
	if c.MaxConcurrent < 1 {
		return fmt.Errorf("max concurrency must be at least 1")
	}
	return nil
}
