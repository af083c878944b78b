// Package define loads YAML request definitions and compiles them into
// reqbuild Builders. A definition file holds one or more YAML documents,
// each describing a single request: method, URI, encoding, headers,
// parameters, file uploads, and raw body. Documents are validated against a
// JSON schema before compilation, so malformed fixtures fail fast with a
// field-level message instead of producing a surprising request.
package define

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/snapdriver/snapreq/packages/reqbuild"
)

// Definition describes one request in a YAML document.
type Definition struct {
	Name     string            `yaml:"name"`
	Method   string            `yaml:"method"`
	URI      string            `yaml:"uri"`
	Encoding string            `yaml:"encoding"` // urlencoded (default), multipart, raw
	HTTPS    bool              `yaml:"https"`
	Headers  map[string]string `yaml:"headers"`
	Params   []ParamDef        `yaml:"params"`
	Files    []FileDef         `yaml:"files"`
	Body     string            `yaml:"body"`
}

// ParamDef is one name/value pair in a definition.
type ParamDef struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// FileDef declares one file upload. Content is either literal text or
// base64 for binary payloads.
type FileDef struct {
	Field         string `yaml:"field"`
	Filename      string `yaml:"filename"`
	Content       string `yaml:"content"`
	ContentBase64 string `yaml:"contentBase64"`
}

// Load reads and parses a definition file.
func Load(path string) ([]Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading definition file: %w", err)
	}
	defs, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return defs, nil
}

// Parse decodes every YAML document in data, validating each against the
// definition schema.
func Parse(data []byte) ([]Definition, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var defs []Definition
	for {
		var node yaml.Node
		err := dec.Decode(&node)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing definition: %w", err)
		}

		var raw any
		if err := node.Decode(&raw); err != nil {
			return nil, fmt.Errorf("parsing definition: %w", err)
		}
		if raw == nil {
			continue
		}
		if err := validateDocument(raw); err != nil {
			return nil, err
		}

		var def Definition
		if err := node.Decode(&def); err != nil {
			return nil, fmt.Errorf("decoding definition: %w", err)
		}
		defs = append(defs, def)
	}

	if len(defs) == 0 {
		return nil, fmt.Errorf("no request definitions found")
	}
	return defs, nil
}

// Builder compiles the definition into a request builder.
func (d *Definition) Builder(opts ...reqbuild.Option) (*reqbuild.Builder, error) {
	b := reqbuild.New(opts...)

	switch d.Encoding {
	case "", "urlencoded":
		b.FormURLEncoded()
	case "multipart":
		b.MultipartEncoded()
	case "raw":
		// No content-type step; the body passes through when the method
		// resolves it (PUT).
	default:
		return nil, fmt.Errorf("unknown encoding %q", d.Encoding)
	}

	if d.Method != "" {
		b.SetMethod(strings.ToUpper(d.Method))
	}
	b.SetURI(d.URI)
	if d.HTTPS {
		b.UseHTTPS()
	}

	for name, value := range d.Headers {
		b.SetHeader(name, value)
	}
	for _, p := range d.Params {
		b.AddParam(p.Name, p.Value)
	}
	for _, f := range d.Files {
		content, err := f.content()
		if err != nil {
			return nil, err
		}
		b.AddFile(f.Field, f.Filename, content)
	}
	if d.Body != "" {
		b.SetRequestBody([]byte(d.Body))
	}

	return b, nil
}

func (f *FileDef) content() ([]byte, error) {
	if f.ContentBase64 != "" {
		if f.Content != "" {
			return nil, fmt.Errorf("file %q: content and contentBase64 are mutually exclusive", f.Field)
		}
		decoded, err := base64.StdEncoding.DecodeString(f.ContentBase64)
		if err != nil {
			return nil, fmt.Errorf("file %q: decoding contentBase64: %w", f.Field, err)
		}
		return decoded, nil
	}
	return []byte(f.Content), nil
}
