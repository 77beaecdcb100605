package compress

import (
	"errors"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/scigolib/hipo/errs"
)

// lz4CompressorPool pools lz4.Compressor instances for reuse; the
// compressor keeps an internal hash table that benefits from reuse across
// calls instead of being reallocated per record.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// lz4HCCompressorPool pools the high-compression variant used for LZ4Best.
var lz4HCCompressorPool = sync.Pool{
	New: func() any {
		return &lz4.CompressorHC{Level: lz4.Level9}
	},
}

// LZ4Compressor is the fast-mode LZ4 codec (format.CompressionLZ4).
type LZ4Compressor struct{}

var _ BoundedCodec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new fast-mode LZ4 compressor.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// WorstCaseBound returns pierrec/lz4's block compression bound.
func (c LZ4Compressor) WorstCaseBound(n int) int {
	return lz4.CompressBlockBound(n)
}

// Compress compresses data using pooled fast-mode LZ4 block compression.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dst := make([]byte, c.WorstCaseBound(len(data)))
	out, err := c.CompressInto(data, dst)
	if err != nil {
		return nil, err
	}

	return out, nil
}

// CompressInto compresses data into dst using a pooled lz4.Compressor.
func (c LZ4Compressor) CompressInto(src, dst []byte) ([]byte, error) {
	if len(dst) < c.WorstCaseBound(len(src)) {
		return nil, fmt.Errorf("%w: %w", errs.InsufficientSpace, errs.ErrDestTooSmall)
	}

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(src, dst)
	if err != nil {
		return nil, err
	}

	return dst[:n], nil
}

// Decompress decompresses LZ4 block data using an adaptive buffer strategy:
// start at 4x the compressed size (a common expansion ratio) and double on
// ErrInvalidSourceShortBuffer up to a safety cap.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	return lz4Decompress(data)
}

func lz4Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	bufSize := len(data) * 4
	const maxSize = 128 * 1024 * 1024 // 128MB safety limit

	for bufSize <= maxSize {
		buf := make([]byte, bufSize)
		n, err := lz4.UncompressBlock(data, buf)
		if err != nil {
			if errors.Is(err, lz4.ErrInvalidSourceShortBuffer) && bufSize < maxSize {
				bufSize *= 2
				continue
			}

			return nil, fmt.Errorf("%w: %w", errs.CorruptData, err)
		}

		return buf[:n], nil
	}

	return nil, fmt.Errorf("%w: %w", errs.CorruptData, lz4.ErrInvalidSourceShortBuffer)
}

// LZ4BestCompressor is the high-compression-mode LZ4 codec
// (format.CompressionLZ4Best). Decompression uses the same block format as
// fast mode, so only the compress side differs.
type LZ4BestCompressor struct{}

var _ BoundedCodec = (*LZ4BestCompressor)(nil)

// NewLZ4BestCompressor creates a new high-compression-mode LZ4 compressor.
func NewLZ4BestCompressor() LZ4BestCompressor {
	return LZ4BestCompressor{}
}

// WorstCaseBound returns pierrec/lz4's block compression bound, shared with
// fast-mode since the block format is identical.
func (c LZ4BestCompressor) WorstCaseBound(n int) int {
	return lz4.CompressBlockBound(n)
}

// Compress compresses data using pooled high-compression LZ4.
func (c LZ4BestCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dst := make([]byte, c.WorstCaseBound(len(data)))
	out, err := c.CompressInto(data, dst)
	if err != nil {
		return nil, err
	}

	return out, nil
}

// CompressInto compresses data into dst using a pooled lz4.CompressorHC.
func (c LZ4BestCompressor) CompressInto(src, dst []byte) ([]byte, error) {
	if len(dst) < c.WorstCaseBound(len(src)) {
		return nil, fmt.Errorf("%w: %w", errs.InsufficientSpace, errs.ErrDestTooSmall)
	}

	hc, _ := lz4HCCompressorPool.Get().(*lz4.CompressorHC)
	defer lz4HCCompressorPool.Put(hc)

	n, err := hc.CompressBlock(src, dst)
	if err != nil {
		return nil, err
	}

	return dst[:n], nil
}

// Decompress decompresses LZ4 block data compressed with either LZ4 mode.
func (c LZ4BestCompressor) Decompress(data []byte) ([]byte, error) {
	return lz4Decompress(data)
}
