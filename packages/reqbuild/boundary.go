package reqbuild

import (
	"encoding/hex"
	"fmt"
	"io"
)

const (
	boundaryPrefix    = "snap-boundary-"
	boundaryRandomLen = 10
)

// NewBoundary draws ten bytes from random and returns a multipart boundary
// token: the fixed prefix followed by the bytes in lowercase hex. Uniqueness
// is probabilistic; a failing random source is the only error path.
func NewBoundary(random io.Reader) (string, error) {
	buf := make([]byte, boundaryRandomLen)
	if _, err := io.ReadFull(random, buf); err != nil {
		return "", fmt.Errorf("reading boundary randomness: %w", err)
	}
	return boundaryPrefix + hex.EncodeToString(buf), nil
}
