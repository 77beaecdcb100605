// Package compress provides the opaque compress/decompress primitives a
// record's index+user-header+payload blob is run through. Compression
// codecs are a black box to the rest of the core: this package is the only
// place that knows about pierrec/lz4 or klauspost/compress/gzip.
package compress

import (
	"fmt"

	"github.com/scigolib/hipo/errs"
	"github.com/scigolib/hipo/format"
)

// Compressor compresses a record payload in one shot.
//
// Memory management:
//   - Returned slice is newly allocated and owned by the caller, except for
//     NoOpCompressor which aliases the input for zero-copy passthrough.
//   - Input slice is never modified.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor expands a previously compressed record payload.
//
// Decompress receives only the compressed bytes: no expected output length
// is passed, so each implementation sizes its output from the stream itself.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions for a single compression kind.
type Codec interface {
	Compressor
	Decompressor
}

// BoundedCodec additionally reports a worst-case output size for Compress,
// and supports compressing directly into a caller-owned destination region
// (record.Builder's borrowed-buffer mode needs both to detect
// InsufficientSpace before committing to a write).
type BoundedCodec interface {
	Codec

	// WorstCaseBound returns an upper bound on the compressed size of an
	// n-byte input.
	WorstCaseBound(n int) int

	// CompressInto compresses src into dst starting at dst's current
	// position (dst[0]) and returns the written sub-slice of dst.
	//
	// LZ4/LZ4Best fail with an InsufficientSpace-wrapped error if
	// len(dst) < WorstCaseBound(len(src)); GZIP may instead return a
	// freshly allocated slice unrelated to dst, per its streaming API.
	CompressInto(src, dst []byte) ([]byte, error)
}

// CreateCodec is a factory function that creates a Codec for the given
// compression kind.
//
// Returns errs-wrapped error for an unrecognized kind.
func CreateCodec(kind format.CompressionKind) (BoundedCodec, error) {
	switch kind {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	case format.CompressionLZ4Best:
		return NewLZ4BestCompressor(), nil
	case format.CompressionGZIP:
		return NewGZIPCompressor(), nil
	default:
		return nil, fmt.Errorf("%w: %w: %s", errs.InvalidArgument, errs.ErrInvalidCompression, kind)
	}
}

var builtinCodecs = map[format.CompressionKind]BoundedCodec{
	format.CompressionNone:    NewNoOpCompressor(),
	format.CompressionLZ4:     NewLZ4Compressor(),
	format.CompressionLZ4Best: NewLZ4BestCompressor(),
	format.CompressionGZIP:    NewGZIPCompressor(),
}

// GetCodec retrieves a shared, stateless codec for the given compression
// kind. All builtin codecs are safe for concurrent use, so the returned
// value may be reused across goroutines.
func GetCodec(kind format.CompressionKind) (BoundedCodec, error) {
	if codec, ok := builtinCodecs[kind]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %w: %s", errs.InvalidArgument, errs.ErrInvalidCompression, kind)
}
