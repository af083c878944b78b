package reqbuild

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Connection facts attached to every synthesized request. They stand in for
// what a real listener would report about the peer.
const (
	DefaultHost       = "localhost"
	DefaultRemoteAddr = "127.0.0.1:60000"
	DefaultProto      = "HTTP/1.1"
)

// Request is the immutable result of building a configured Builder.
type Request struct {
	Method string

	// URI is the draft URI, with the encoded query string appended for a
	// GET carrying parameters.
	URI string

	// QueryString is the encoded parameters for a GET and empty otherwise,
	// kept as its own field regardless of whether it was folded into URI.
	QueryString string

	// Headers is the draft header set, with Content-Type rewritten to
	// carry the boundary parameter when the body is multipart.
	Headers http.Header

	Body []byte

	// ContentLength is -1 when no body was set, which callers must keep
	// distinct from an explicit zero-byte body.
	ContentLength int64

	// Params exposes the parameter map verbatim for handler introspection.
	Params Params

	Secure     bool
	Host       string
	RemoteAddr string
	Proto      string
}

// Build resolves the accumulated configuration into a final Request. The
// only failure path is the boundary random source. The Builder should be
// discarded afterwards.
func (b *Builder) Build() (*Request, error) {
	resolved, err := b.resolveBody()
	if err != nil {
		return nil, err
	}

	uri := b.uri
	query := ""
	if b.method == http.MethodGet {
		query = EncodeQuery(b.params)
		if len(b.params) > 0 {
			uri = uri + "?" + query
		}
	}

	headers := b.headers.Clone()
	if headers == nil {
		headers = make(http.Header)
	}
	if resolved.boundary != "" && b.contentType == ContentTypeMultipart {
		headers.Set("Content-Type", ContentTypeMultipart+"; boundary="+resolved.boundary)
	}

	contentLength := int64(-1)
	if resolved.hasLength {
		contentLength = resolved.length
	}

	return &Request{
		Method:        b.method,
		URI:           uri,
		QueryString:   query,
		Headers:       headers,
		Body:          resolved.body,
		ContentLength: contentLength,
		Params:        cloneParams(b.params),
		Secure:        b.secure,
		Host:          DefaultHost,
		RemoteAddr:    DefaultRemoteAddr,
		Proto:         DefaultProto,
	}, nil
}

// ToHTTP converts the request into a *net/http.Request ready to hand to an
// http.Handler together with an httptest recorder. No network connection is
// involved; the body is served from memory.
func (r *Request) ToHTTP() (*http.Request, error) {
	target := r.URI
	if target == "" {
		target = "/"
	}
	u, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("parsing request URI %q: %w", target, err)
	}

	req := &http.Request{
		Method:     r.Method,
		URL:        u,
		Proto:      r.Proto,
		ProtoMajor: 1,
		ProtoMinor: 1,
		Header:     r.Headers.Clone(),
		Host:       r.Host,
		RemoteAddr: r.RemoteAddr,
		RequestURI: target,
		Body:       http.NoBody,
	}
	if r.ContentLength >= 0 {
		req.Body = io.NopCloser(bytes.NewReader(r.Body))
		req.ContentLength = r.ContentLength
	}
	if r.Secure {
		req.TLS = &tls.ConnectionState{}
	}
	return req, nil
}

func cloneParams(params Params) Params {
	clone := make(Params, len(params))
	for name, values := range params {
		clone[name] = append([]string(nil), values...)
	}
	return clone
}
