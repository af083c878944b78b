package reqbuild

import (
	"bytes"
	"mime"
	"path/filepath"
	"sort"
)

// EncodeMultipart renders params and fileParams as a multipart/form-data
// body delimited by boundary: parameter parts first, then file parts, then
// the closing "--boundary--". A field holding more than one file is wrapped
// in a multipart/mixed sub-body delimited by fileBoundary. All line breaks
// are literal CRLF.
func EncodeMultipart(boundary, fileBoundary string, params Params, fileParams FileParams) []byte {
	var buf bytes.Buffer

	for _, name := range sortedKeys(params) {
		for _, value := range params[name] {
			buf.WriteString("--" + boundary + "\r\n")
			buf.WriteString(`Content-Disposition: form-data; name="` + name + `"` + "\r\n\r\n")
			buf.WriteString(value)
			buf.WriteString("\r\n")
		}
	}

	for _, field := range sortedKeys(fileParams) {
		files := fileParams[field]
		if len(files) == 1 {
			writeFilePart(&buf, boundary, field, files[0])
		} else {
			writeMixedField(&buf, boundary, fileBoundary, field, files)
		}
	}

	buf.WriteString("--" + boundary + "--")
	return buf.Bytes()
}

// writeFilePart emits a single-file field as one form-data part.
func writeFilePart(buf *bytes.Buffer, boundary, field string, file File) {
	buf.WriteString("--" + boundary + "\r\n")
	buf.WriteString(`Content-Disposition: form-data; name="` + field + `"; filename="` + file.Name + `"` + "\r\n")
	buf.WriteString("Content-Type: " + contentTypeForFile(file.Name) + "\r\n\r\n")
	buf.Write(file.Content)
	buf.WriteString("\r\n")
}

// writeMixedField emits a multi-file field: an outer form-data part whose
// content is a multipart/mixed body. The inner Content-Disposition carries
// the bare field name without the form-data prefix; downstream consumers
// depend on that exact layout.
func writeMixedField(buf *bytes.Buffer, boundary, fileBoundary, field string, files []File) {
	buf.WriteString("--" + boundary + "\r\n")
	buf.WriteString(`Content-Disposition: form-data; name="` + field + `"` + "\r\n")
	buf.WriteString("Content-Type: multipart/mixed; boundary=" + fileBoundary + "\r\n\r\n")
	for _, file := range files {
		buf.WriteString("--" + fileBoundary + "\r\n")
		buf.WriteString("Content-Disposition: " + field + `; filename="` + file.Name + `"` + "\r\n")
		buf.WriteString("Content-Type: " + contentTypeForFile(file.Name) + "\r\n\r\n")
		buf.Write(file.Content)
		buf.WriteString("\r\n")
	}
	buf.WriteString("--" + fileBoundary + "--\r\n")
}

// contentTypeForFile resolves a part's Content-Type from the filename
// extension, defaulting to application/octet-stream.
func contentTypeForFile(filename string) string {
	if t := mime.TypeByExtension(filepath.Ext(filename)); t != "" {
		return t
	}
	return "application/octet-stream"
}

// sortedKeys returns the map's keys in sorted order. Cross-field part order
// is unconstrained, but keeping it deterministic keeps encoded bodies
// byte-stable.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
