package reqbuild

import "net/http"

// resolvedBody is the output of body resolution: the encoded bytes, the
// content length (hasLength false means "no body was set", which is distinct
// from a zero-byte body), and the top-level boundary token when the body is
// multipart.
type resolvedBody struct {
	body      []byte
	length    int64
	hasLength bool
	boundary  string
}

// resolveBody picks a body encoding from (method, content type). Branches
// are tried in order and the first match wins; combinations matched by none
// fall through to an empty body, silently discarding any parameters, files,
// or raw body accumulated on the builder. GET parameters are not lost: they
// reach the final URI through assembly instead.
func (b *Builder) resolveBody() (resolvedBody, error) {
	switch {
	case b.method == http.MethodPost && b.contentType == ContentTypeURLEncoded:
		body := []byte(EncodeQuery(b.params))
		return resolvedBody{body: body, length: int64(len(body)), hasLength: true}, nil

	case b.method == http.MethodPost && b.contentType == ContentTypeMultipart:
		// Both boundaries are generated eagerly; the file boundary goes
		// unused unless some field carries several files.
		boundary, err := NewBoundary(b.random)
		if err != nil {
			return resolvedBody{}, err
		}
		fileBoundary, err := NewBoundary(b.random)
		if err != nil {
			return resolvedBody{}, err
		}
		body := EncodeMultipart(boundary, fileBoundary, b.params, b.fileParams)
		return resolvedBody{body: body, length: int64(len(body)), hasLength: true, boundary: boundary}, nil

	case b.method == http.MethodPut:
		if b.rawBody == nil {
			return resolvedBody{}, nil
		}
		return resolvedBody{body: b.rawBody, length: int64(len(b.rawBody)), hasLength: true}, nil

	default:
		return resolvedBody{}, nil
	}
}
