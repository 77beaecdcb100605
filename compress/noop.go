package compress

import (
	"fmt"

	"github.com/scigolib/hipo/errs"
)

// NoOpCompressor is the None codec: a record written with no compression
// has its index+user-header+payload blob memcpy'd as-is.
type NoOpCompressor struct{}

var _ BoundedCodec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a new no-operation compressor.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns the input slice as-is, without copying.
//
// Note: the returned slice shares the same underlying memory as the input.
// Callers must not mutate input after calling this if they still hold the
// returned slice.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns the input slice as-is, without copying.
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}

// WorstCaseBound returns n: None never expands its input.
func (c NoOpCompressor) WorstCaseBound(n int) int {
	return n
}

// CompressInto copies src into dst[:len(src)].
func (c NoOpCompressor) CompressInto(src, dst []byte) ([]byte, error) {
	if len(dst) < len(src) {
		return nil, fmt.Errorf("%w: %w", errs.InsufficientSpace, errs.ErrDestTooSmall)
	}

	n := copy(dst, src)

	return dst[:n], nil
}
