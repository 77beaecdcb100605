package compress

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/gzip"

	"github.com/scigolib/hipo/errs"
)

// gzipWriterPool pools gzip.Writer instances; Reset is used to rebind each
// writer to a fresh buffer instead of allocating a new one per call.
var gzipWriterPool = sync.Pool{
	New: func() any {
		w, _ := gzip.NewWriterLevel(io.Discard, gzip.BestSpeed)
		return w
	},
}

// GZIPCompressor is the GZIP codec (format.CompressionGZIP). Unlike the LZ4
// codecs, it has no meaningful worst-case block bound: CompressInto
// compresses into a fresh slice and copies the result into dst only when
// it fits, otherwise returning the fresh slice.
type GZIPCompressor struct{}

var _ BoundedCodec = (*GZIPCompressor)(nil)

// NewGZIPCompressor creates a new GZIP compressor.
func NewGZIPCompressor() GZIPCompressor {
	return GZIPCompressor{}
}

// WorstCaseBound returns a conservative estimate: gzip's stream framing can
// expand incompressible input by roughly 0.1% plus a fixed header/trailer
// overhead, so callers relying on this for a borrowed buffer should expect
// CompressInto to fall back to allocation for small inputs.
func (c GZIPCompressor) WorstCaseBound(n int) int {
	return n + n/1024 + 64
}

// Compress compresses data using a pooled gzip.Writer.
func (c GZIPCompressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer

	w, _ := gzipWriterPool.Get().(*gzip.Writer)
	defer gzipWriterPool.Put(w)

	w.Reset(&buf)

	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.CorruptData, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.CorruptData, err)
	}

	return buf.Bytes(), nil
}

// CompressInto compresses src and copies the result into dst if it fits;
// otherwise it returns the freshly allocated compressed slice directly,
// since gzip's stream output size cannot be bounded ahead of time.
func (c GZIPCompressor) CompressInto(src, dst []byte) ([]byte, error) {
	out, err := c.Compress(src)
	if err != nil {
		return nil, err
	}

	if len(dst) >= len(out) {
		n := copy(dst, out)
		return dst[:n], nil
	}

	return out, nil
}

// Decompress decompresses a gzip stream in one shot.
func (c GZIPCompressor) Decompress(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %w", errs.CorruptData, errs.ErrDecompressFailed, err)
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %w", errs.CorruptData, errs.ErrDecompressFailed, err)
	}

	return out, nil
}
