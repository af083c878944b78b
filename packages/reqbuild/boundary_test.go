package reqbuild

import (
	"bytes"
	"crypto/rand"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoundary_FixedSource(t *testing.T) {
	src := bytes.NewReader([]byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09})

	boundary, err := NewBoundary(src)
	require.NoError(t, err)
	assert.Equal(t, "snap-boundary-00010203040506070809", boundary)
}

func TestNewBoundary_PrefixAndLength(t *testing.T) {
	boundary, err := NewBoundary(rand.Reader)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(boundary, "snap-boundary-"))
	assert.Len(t, boundary, len("snap-boundary-")+20)
}

func TestNewBoundary_ConsecutiveCallsDiffer(t *testing.T) {
	first, err := NewBoundary(rand.Reader)
	require.NoError(t, err)
	second, err := NewBoundary(rand.Reader)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

type failingReader struct{ err error }

func (r failingReader) Read([]byte) (int, error) { return 0, r.err }

func TestNewBoundary_SourceFailurePropagates(t *testing.T) {
	cause := errors.New("entropy pool closed")

	_, err := NewBoundary(failingReader{err: cause})
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
}

func TestNewBoundary_ShortSourceFails(t *testing.T) {
	_, err := NewBoundary(bytes.NewReader([]byte{0x01, 0x02}))
	assert.Error(t, err)
}
