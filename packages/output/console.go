// Package output renders built requests for humans: the exact wire bytes a
// client would send, a colored console view of the same, and a JSON summary
// for machine consumption.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/fatih/color"

	"github.com/snapdriver/snapreq/packages/reqbuild"
)

// WireFormat renders the request line, headers, and body as the bytes that
// would cross the wire. A Content-Length header is synthesized from the
// resolved length when one exists.
func WireFormat(r *reqbuild.Request) []byte {
	var buf bytes.Buffer

	target := r.URI
	if target == "" {
		target = "/"
	}
	fmt.Fprintf(&buf, "%s %s %s\r\n", r.Method, target, r.Proto)
	fmt.Fprintf(&buf, "Host: %s\r\n", r.Host)

	names := make([]string, 0, len(r.Headers))
	for name := range r.Headers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, value := range r.Headers[name] {
			fmt.Fprintf(&buf, "%s: %s\r\n", name, value)
		}
	}
	if r.ContentLength >= 0 {
		fmt.Fprintf(&buf, "Content-Length: %d\r\n", r.ContentLength)
	}

	buf.WriteString("\r\n")
	buf.Write(r.Body)
	return buf.Bytes()
}

// ConsoleRenderer pretty-prints requests to a terminal.
type ConsoleRenderer struct {
	writer   io.Writer
	noColor  bool
	showBody bool
}

// ConsoleOption configures a ConsoleRenderer.
type ConsoleOption func(*ConsoleRenderer)

// NewConsoleRenderer creates a renderer writing to stdout by default.
func NewConsoleRenderer(opts ...ConsoleOption) *ConsoleRenderer {
	r := &ConsoleRenderer{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.noColor {
		color.NoColor = true
	}
	return r
}

// WithWriter redirects rendered output.
func WithWriter(w io.Writer) ConsoleOption {
	return func(r *ConsoleRenderer) {
		r.writer = w
	}
}

// WithNoColor disables ANSI colors.
func WithNoColor(nc bool) ConsoleOption {
	return func(r *ConsoleRenderer) {
		r.noColor = nc
	}
}

// WithBody includes body bytes in the rendered output.
func WithBody(show bool) ConsoleOption {
	return func(r *ConsoleRenderer) {
		r.showBody = show
	}
}

// Render prints one request under its display name.
func (c *ConsoleRenderer) Render(name string, r *reqbuild.Request) {
	bold := color.New(color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	if name != "" {
		fmt.Fprintf(c.writer, "%s\n", bold(name))
	}

	target := r.URI
	if target == "" {
		target = "/"
	}
	scheme := "http"
	if r.Secure {
		scheme = "https"
	}
	fmt.Fprintf(c.writer, "  %s %s  %s\n", cyan(r.Method), target, yellow(scheme))

	names := make([]string, 0, len(r.Headers))
	for n := range r.Headers {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		for _, v := range r.Headers[n] {
			fmt.Fprintf(c.writer, "  %s: %s\n", n, v)
		}
	}

	switch {
	case r.ContentLength < 0:
		fmt.Fprintf(c.writer, "  (no body)\n")
	case c.showBody:
		fmt.Fprintf(c.writer, "\n%s\n", r.Body)
	default:
		fmt.Fprintf(c.writer, "  (%d body bytes)\n", len(r.Body))
	}
	fmt.Fprintln(c.writer)
}

// Summary is the machine-readable view of a built request.
type Summary struct {
	Name          string              `json:"name,omitempty"`
	Method        string              `json:"method"`
	URI           string              `json:"uri"`
	QueryString   string              `json:"queryString,omitempty"`
	Headers       map[string][]string `json:"headers"`
	ContentLength int64               `json:"contentLength"`
	BodyBytes     int                 `json:"bodyBytes"`
	Secure        bool                `json:"secure"`
}

// Summarize builds the JSON-ready view of a request.
func Summarize(name string, r *reqbuild.Request) *Summary {
	return &Summary{
		Name:          name,
		Method:        r.Method,
		URI:           r.URI,
		QueryString:   r.QueryString,
		Headers:       r.Headers,
		ContentLength: r.ContentLength,
		BodyBytes:     len(r.Body),
		Secure:        r.Secure,
	}
}

// JSON renders the summary with indentation.
func (s *Summary) JSON() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}
