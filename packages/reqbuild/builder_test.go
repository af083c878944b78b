package reqbuild

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	b := New()

	assert.Equal(t, http.MethodGet, b.method)
	assert.Equal(t, "", b.uri)
	assert.Empty(t, b.params)
	assert.Empty(t, b.fileParams)
	assert.Nil(t, b.rawBody)
	assert.Empty(t, b.headers)
	assert.Equal(t, ContentTypeURLEncoded, b.contentType)
	assert.False(t, b.secure)
}

func TestBuilder_AddParamPrepends(t *testing.T) {
	b := New().AddParam("k", "first").AddParam("k", "second").AddParam("k", "third")

	assert.Equal(t, []string{"third", "second", "first"}, b.params["k"])
}

func TestBuilder_SetParamsReplaces(t *testing.T) {
	b := New().AddParam("old", "gone")
	b.SetParams([]Param{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}})

	assert.Equal(t, Params{"a": {"1"}, "b": {"2"}}, b.params)
}

func TestBuilder_SetParamsDuplicateNameKeepsSingleton(t *testing.T) {
	b := New().SetParams([]Param{{Name: "a", Value: "first"}, {Name: "a", Value: "second"}})

	assert.Equal(t, []string{"second"}, b.params["a"])
}

func TestBuilder_SetFileParamsReplaces(t *testing.T) {
	b := New().AddFile("old", "gone.bin", []byte("x"))
	b.SetFileParams([]FileParam{{Field: "f", Filename: "a.bin", Content: []byte("abc")}})

	assert.Equal(t, FileParams{"f": {{Name: "a.bin", Content: []byte("abc")}}}, b.fileParams)
}

func TestBuilder_AddFileAccumulates(t *testing.T) {
	b := New().
		AddFile("docs", "a.bin", []byte("A")).
		AddFile("docs", "b.bin", []byte("B"))

	require.Len(t, b.fileParams["docs"], 2)
	assert.Equal(t, "a.bin", b.fileParams["docs"][0].Name)
	assert.Equal(t, "b.bin", b.fileParams["docs"][1].Name)
}

func TestBuilder_HeaderSetAndAdd(t *testing.T) {
	b := New().
		SetHeader("X-Token", "one").
		SetHeader("x-token", "two").
		AddHeader("X-Token", "three")

	// http.Header canonicalizes names, so set/add are case-insensitive.
	assert.Equal(t, []string{"two", "three"}, b.headers.Values("X-Token"))
}

func TestBuilder_FormURLEncodedSetsTagAndHeader(t *testing.T) {
	b := New().MultipartEncoded().FormURLEncoded()

	assert.Equal(t, ContentTypeURLEncoded, b.contentType)
	assert.Equal(t, "x-www-form-urlencoded", b.headers.Get("Content-Type"))
}

func TestBuilder_MultipartEncodedSetsTagAndHeader(t *testing.T) {
	b := New().MultipartEncoded()

	assert.Equal(t, ContentTypeMultipart, b.contentType)
	assert.Equal(t, "multipart/form-data", b.headers.Get("Content-Type"))
}

func TestBuilder_SetContentType(t *testing.T) {
	b := New().SetContentType("application/json")

	assert.Equal(t, "application/json", b.contentType)
	assert.Equal(t, "application/json", b.headers.Get("Content-Type"))
}

func TestBuilder_Get(t *testing.T) {
	b := New().SetMethod(http.MethodDelete).Get("/search", []Param{{Name: "q", Value: "x"}})

	assert.Equal(t, http.MethodGet, b.method)
	assert.Equal(t, "/search", b.uri)
	assert.Equal(t, Params{"q": {"x"}}, b.params)
	assert.Equal(t, ContentTypeURLEncoded, b.contentType)
}

func TestBuilder_PostMultipart(t *testing.T) {
	b := New().PostMultipart("/upload",
		[]Param{{Name: "title", Value: "t"}},
		[]FileParam{{Field: "file", Filename: "a.bin", Content: []byte("abc")}},
	)

	assert.Equal(t, http.MethodPost, b.method)
	assert.Equal(t, "/upload", b.uri)
	assert.Equal(t, ContentTypeMultipart, b.contentType)
	assert.Equal(t, Params{"title": {"t"}}, b.params)
	assert.Len(t, b.fileParams["file"], 1)
}

func TestBuilder_NoValidationAtConfigurationTime(t *testing.T) {
	// File params under a urlencoded draft are accepted silently; they only
	// matter at resolution.
	b := New().FormURLEncoded().AddFile("f", "a.bin", []byte("x"))

	assert.Len(t, b.fileParams["f"], 1)
}
