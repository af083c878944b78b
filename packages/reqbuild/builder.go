package reqbuild

import (
	"crypto/rand"
	"io"
	"net/http"
)

// Content-type tags carried on the builder. The urlencoded tag deliberately
// uses the bare literal, without the application/ prefix, in both the tag
// and the Content-Type header it sets.
const (
	ContentTypeURLEncoded = "x-www-form-urlencoded"
	ContentTypeMultipart  = "multipart/form-data"
)

// Param is a single name/value pair, used by SetParams and the composite
// request verbs.
type Param struct {
	Name  string
	Value string
}

// FileParam declares one file upload for SetFileParams and PostMultipart.
type FileParam struct {
	Field    string
	Filename string
	Content  []byte
}

// File is one (filename, content) pair stored under a file field.
type File struct {
	Name    string
	Content []byte
}

// Params maps a parameter name to its values, most recently added first.
type Params map[string][]string

// FileParams maps a form field to the files uploaded under it. A field with
// exactly one file is encoded as a plain form-data part; a field with two or
// more becomes a nested multipart/mixed part.
type FileParams map[string][]File

// Builder accumulates the configuration of a single synthetic request.
// Mutators are order-dependent (later calls win) and perform no validation;
// combinations that no body encoding matches resolve to an empty body.
// A Builder is owned by one test and is not safe for concurrent use.
type Builder struct {
	method      string
	uri         string
	params      Params
	fileParams  FileParams
	rawBody     []byte
	headers     http.Header
	contentType string
	secure      bool
	random      io.Reader
}

// Option configures a Builder at construction time.
type Option func(*Builder)

// WithRandomSource overrides the source of multipart boundary randomness.
// Tests pass a fixed reader to make multipart bodies reproducible.
func WithRandomSource(r io.Reader) Option {
	return func(b *Builder) {
		b.random = r
	}
}

// New returns a Builder with the fixed defaults: GET, empty parameters,
// no body, empty headers, the urlencoded content-type tag, insecure, and an
// empty URI.
func New(opts ...Option) *Builder {
	b := &Builder{
		method:      http.MethodGet,
		params:      make(Params),
		fileParams:  make(FileParams),
		headers:     make(http.Header),
		contentType: ContentTypeURLEncoded,
		random:      rand.Reader,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// SetMethod overwrites the request method.
func (b *Builder) SetMethod(method string) *Builder {
	b.method = method
	return b
}

// SetURI overwrites the request URI.
func (b *Builder) SetURI(uri string) *Builder {
	b.uri = uri
	return b
}

// AddParam prepends value to the list stored under name, creating the list
// if absent. Repeated calls with the same name keep every value, most
// recent first.
func (b *Builder) AddParam(name, value string) *Builder {
	b.params[name] = append([]string{value}, b.params[name]...)
	return b
}

// SetParams replaces the entire parameter map. Each name maps to a
// single-element list built from the input pairs.
func (b *Builder) SetParams(params []Param) *Builder {
	b.params = make(Params, len(params))
	for _, p := range params {
		b.params[p.Name] = []string{p.Value}
	}
	return b
}

// SetFileParams replaces the entire file-parameter map. Each field maps to a
// singleton list holding its (filename, content) pair.
func (b *Builder) SetFileParams(files []FileParam) *Builder {
	b.fileParams = make(FileParams, len(files))
	for _, f := range files {
		b.fileParams[f.Field] = []File{{Name: f.Filename, Content: f.Content}}
	}
	return b
}

// AddFile appends a (filename, content) pair under field. A field that ends
// up with several files is encoded as a nested multipart/mixed part.
func (b *Builder) AddFile(field, filename string, content []byte) *Builder {
	b.fileParams[field] = append(b.fileParams[field], File{Name: filename, Content: content})
	return b
}

// SetRequestBody sets the raw body. It only reaches the final request when
// the builder resolves under PUT.
func (b *Builder) SetRequestBody(body []byte) *Builder {
	b.rawBody = body
	return b
}

// SetHeader replaces the values of the named header.
func (b *Builder) SetHeader(name, value string) *Builder {
	b.headers.Set(name, value)
	return b
}

// AddHeader appends a value to the named header.
func (b *Builder) AddHeader(name, value string) *Builder {
	b.headers.Add(name, value)
	return b
}

// FormURLEncoded marks the request as urlencoded and sets the Content-Type
// header to the same literal tag.
func (b *Builder) FormURLEncoded() *Builder {
	b.contentType = ContentTypeURLEncoded
	b.headers.Set("Content-Type", ContentTypeURLEncoded)
	return b
}

// MultipartEncoded marks the request as multipart/form-data and sets the
// Content-Type header likewise. The boundary parameter is appended at build
// time, once a boundary token exists.
func (b *Builder) MultipartEncoded() *Builder {
	b.contentType = ContentTypeMultipart
	b.headers.Set("Content-Type", ContentTypeMultipart)
	return b
}

// SetContentType installs a caller-supplied content-type tag and header.
func (b *Builder) SetContentType(value string) *Builder {
	b.contentType = value
	b.headers.Set("Content-Type", value)
	return b
}

// UseHTTPS marks the request as arriving over TLS.
func (b *Builder) UseHTTPS() *Builder {
	b.secure = true
	return b
}

// Get configures a urlencoded GET of uri with the given parameters.
func (b *Builder) Get(uri string, params []Param) *Builder {
	return b.FormURLEncoded().SetMethod(http.MethodGet).SetURI(uri).SetParams(params)
}

// PostURLEncoded configures a urlencoded POST of uri with the given
// parameters.
func (b *Builder) PostURLEncoded(uri string, params []Param) *Builder {
	return b.FormURLEncoded().SetMethod(http.MethodPost).SetURI(uri).SetParams(params)
}

// PostMultipart configures a multipart/form-data POST of uri with the given
// parameters and file uploads.
func (b *Builder) PostMultipart(uri string, params []Param, files []FileParam) *Builder {
	return b.MultipartEncoded().SetMethod(http.MethodPost).SetURI(uri).SetParams(params).SetFileParams(files)
}
