// Package drive serves synthesized requests through an http.Handler
// entirely in memory. It is the glue between a reqbuild.Builder and the
// handler under test: no listener, no connection, just ServeHTTP against a
// recorder.
package drive

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/google/uuid"

	"github.com/snapdriver/snapreq/packages/reqbuild"
)

// Exchange records one in-memory round trip through a handler.
type Exchange struct {
	ID       string
	Request  *reqbuild.Request
	Code     int
	Header   http.Header
	Body     []byte
	Duration time.Duration
}

// Run builds the accumulated request and serves it through h, returning the
// recorded exchange.
func Run(h http.Handler, b *reqbuild.Builder) (*Exchange, error) {
	req, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	return RunRequest(h, req)
}

// RunRequest serves an already-built request through h. The same request
// value can be replayed any number of times; each run gets a fresh body
// reader and its own exchange ID.
func RunRequest(h http.Handler, req *reqbuild.Request) (*Exchange, error) {
	httpReq, err := req.ToHTTP()
	if err != nil {
		return nil, err
	}

	rec := httptest.NewRecorder()
	start := time.Now()
	h.ServeHTTP(rec, httpReq)
	duration := time.Since(start)

	return &Exchange{
		ID:       uuid.NewString(),
		Request:  req,
		Code:     rec.Code,
		Header:   rec.Header(),
		Body:     rec.Body.Bytes(),
		Duration: duration,
	}, nil
}
