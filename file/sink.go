package file

import (
	"fmt"

	"github.com/scigolib/hipo/errs"
)

// Sink is the destination a FileAssembler writes to: either an *os.File
// (which already satisfies io.Writer and io.WriterAt) or a BufferSink for
// an in-memory output buffer. WriterAt is what lets Close patch the file
// header's record-count and trailer-position fields in place after every
// record has been written.
type Sink interface {
	Write(p []byte) (int, error)
	WriteAt(p []byte, off int64) (int, error)
}

// BufferSink is a growable in-memory Sink, for building a complete file in
// a buffer rather than on disk.
type BufferSink struct {
	buf []byte
}

// NewBufferSink creates an empty BufferSink.
func NewBufferSink() *BufferSink { return &BufferSink{} }

// Write appends p to the sink.
func (s *BufferSink) Write(p []byte) (int, error) {
	s.buf = append(s.buf, p...)

	return len(p), nil
}

// WriteAt writes len(p) bytes starting at off, growing the buffer
// (zero-filling any gap) if the range extends past the current length —
// matching *os.File.WriteAt, which likewise never fails on a write past
// EOF. This is what lets dispatchWrite place records at their final
// position concurrently with Write-appended bytes still in flight ahead
// of them.
func (s *BufferSink) WriteAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, fmt.Errorf("%w: negative WriteAt offset %d", errs.OutOfBounds, off)
	}

	end := off + int64(len(p))
	if end > int64(len(s.buf)) {
		grown := make([]byte, end)
		copy(grown, s.buf)
		s.buf = grown
	}

	copy(s.buf[off:], p)

	return len(p), nil
}

// Bytes returns the accumulated file bytes.
func (s *BufferSink) Bytes() []byte { return s.buf }
