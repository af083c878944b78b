// Package reqbuild synthesizes in-memory HTTP requests for driving handler
// tests without a network stack. A Builder accumulates method, URI,
// parameters, file uploads, headers, and body through chainable steps;
// Build resolves the accumulated state into an immutable Request with a
// fully encoded body, content type, and content length.
//
// Body encoding is decided by (method, content type): POST with the
// urlencoded tag percent-encodes parameters, POST with the multipart tag
// produces a multipart/form-data body (with nested multipart/mixed parts
// for fields carrying several files), PUT passes the raw body through, and
// everything else resolves to an empty body. GET parameters surface in the
// final URI as a query string rather than in the body.
package reqbuild
