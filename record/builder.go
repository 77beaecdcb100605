package record

import (
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/scigolib/hipo/compress"
	"github.com/scigolib/hipo/endian"
	"github.com/scigolib/hipo/errs"
	"github.com/scigolib/hipo/format"
	"github.com/scigolib/hipo/header"
	"github.com/scigolib/hipo/internal/options"
	"github.com/scigolib/hipo/internal/pool"
)

// BufferKind distinguishes a RecordBuilder's output buffer ownership: an
// Owned buffer may grow to fit an oversized single event in an empty
// record; a Borrowed (caller-supplied) buffer never reallocates and fails
// with InsufficientSpace instead.
type BufferKind uint8

const (
	OwnedBuffer BufferKind = iota
	BorrowedBuffer
)

// AddResult reports the outcome of AddEvent without treating a refused add
// as an error: the caller is expected to build the current record and
// retry on a fresh one.
type AddResult uint8

const (
	Added AddResult = iota
	WouldExceedCount
	WouldExceedSize
)

// RecordBuilder accumulates events into an index+user-header+payload blob
// and finalizes it into a self-consistent, optionally compressed record.
//
// Not safe for concurrent use; not reusable across unrelated records
// without an intervening Reset.
type RecordBuilder struct {
	*Config

	order        endian.EndianEngine
	compression  format.CompressionKind
	recordNumber uint32

	userHeader    []byte
	hasDictionary bool
	hasFirstEvent bool

	events  [][]byte
	dataLen uint32 // sum of unpadded event byte lengths

	bufKind BufferKind
	outBuf  []byte // only meaningful when bufKind == BorrowedBuffer

	staging *pool.ByteBuffer
}

// NewRecordBuilder creates a RecordBuilder that owns its output buffer,
// growing it as needed.
func NewRecordBuilder(order endian.EndianEngine, opts ...Option) *RecordBuilder {
	cfg := defaultConfig()
	_ = options.Apply(cfg, opts...)

	return &RecordBuilder{
		Config:      cfg,
		order:       order,
		compression: format.CompressionNone,
		bufKind:     OwnedBuffer,
		staging:     pool.GetRecordBuffer(),
	}
}

// NewBorrowedRecordBuilder creates a RecordBuilder that writes into a
// caller-supplied output buffer. Build fails with InsufficientSpace if the
// finished record would not fit.
func NewBorrowedRecordBuilder(order endian.EndianEngine, outBuf []byte, opts ...Option) *RecordBuilder {
	b := NewRecordBuilder(order, opts...)
	b.bufKind = BorrowedBuffer
	b.outBuf = outBuf

	return b
}

// SetRecordNumber sets the sequence number stamped into the built header;
// FileAssembler calls this before each Build.
func (b *RecordBuilder) SetRecordNumber(n uint32) {
	b.recordNumber = n
}

// SetCompression sets the compression kind. Must be called before any
// event is added.
func (b *RecordBuilder) SetCompression(kind format.CompressionKind) error {
	if len(b.events) != 0 {
		return fmt.Errorf("%w: compression must be set before any event is added", errs.InvalidState)
	}

	b.compression = kind

	return nil
}

// SetUserHeader sets a raw user-header blob. May be called at most once
// per Reset cycle, and is mutually exclusive with
// SetUserHeaderFromDictAndFirstEvent.
func (b *RecordBuilder) SetUserHeader(data []byte) error {
	if b.userHeader != nil {
		return fmt.Errorf("%w: user header already set", errs.InvalidState)
	}

	b.userHeader = data

	return nil
}

// SetUserHeaderFromDictAndFirstEvent builds an inner carrier record holding
// the XML dictionary and/or first-event payload and installs it as the
// user header, setting the corresponding header flags.
func (b *RecordBuilder) SetUserHeaderFromDictAndFirstEvent(dictXML, firstEvent []byte) error {
	if b.userHeader != nil {
		return fmt.Errorf("%w: user header already set", errs.InvalidState)
	}

	inner, err := BuildDictionaryRecord(b.order, dictXML, firstEvent)
	if err != nil {
		return err
	}

	b.userHeader = inner
	b.hasDictionary = len(dictXML) > 0
	b.hasFirstEvent = len(firstEvent) > 0

	return nil
}

// AddEvent appends a raw structure's bytes as the next event. Returns
// WouldExceedCount or WouldExceedSize (not an error) when the event would
// cross a configured cap on a non-empty record; the caller should Build
// the current record and retry on a fresh one.
//
// The one exception: an empty record whose single event exceeds
// maxPayloadBytes is accepted, growing the builder's own staging buffer,
// unless the output buffer is caller-provided, in which case AddEvent
// itself fails with InsufficientSpace.
func (b *RecordBuilder) AddEvent(data []byte) (AddResult, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("%w: %w", errs.InvalidArgument, errs.ErrEmptyInput)
	}

	empty := len(b.events) == 0
	nextCount := uint32(len(b.events)) + 1
	nextDataLen := b.dataLen + uint32(len(data))

	if !empty {
		if nextCount > b.maxEventCount {
			return WouldExceedCount, nil
		}
		if nextDataLen > b.maxPayloadBytes {
			return WouldExceedSize, nil
		}
	} else if nextDataLen > b.maxPayloadBytes && b.bufKind == BorrowedBuffer {
		// An oversized single event in an empty record can only be
		// accommodated by growing the builder's own buffer; a
		// caller-provided buffer cannot grow, so reject up front.
		return 0, fmt.Errorf("%w: %w", errs.InsufficientSpace, errs.ErrWouldExceedSize)
	}

	b.events = append(b.events, data)
	b.dataLen = nextDataLen

	return Added, nil
}

func padTo4(n int) int {
	return (n + 3) &^ 3
}

// Build finalizes the record: concatenates index + padded user-header +
// events into a staging region, compresses it (unless compression is
// None), stamps a freshly created header with the resulting lengths, and returns
// the complete header+payload bytes.
//
// Build is idempotent: calling it again without modifying the builder's
// inputs reproduces the same bytes.
func (b *RecordBuilder) Build() ([]byte, error) {
	indexLen := 4 * len(b.events)
	userHeaderPadded := padTo4(len(b.userHeader))
	rawLen := indexLen + userHeaderPadded + int(b.dataLen)

	b.staging.Reset()
	b.staging.ExtendOrGrow(rawLen)
	raw := b.staging.Bytes()

	pos := 0
	for _, ev := range b.events {
		b.order.PutUint32(raw[pos:pos+4], uint32(len(ev)))
		pos += 4
	}

	copy(raw[pos:], b.userHeader)
	for i := pos + len(b.userHeader); i < pos+userHeaderPadded; i++ {
		raw[i] = 0
	}
	pos += userHeaderPadded

	for _, ev := range b.events {
		copy(raw[pos:], ev)
		pos += len(ev)
	}

	codec, err := compress.GetCodec(b.compression)
	if err != nil {
		return nil, err
	}

	var payload []byte
	if b.compression == format.CompressionNone {
		payload = raw
	} else {
		payload, err = codec.Compress(raw)
		if err != nil {
			return nil, err
		}
	}

	payloadPadded := padTo4(len(payload))
	totalLen := header.Size + payloadPadded

	var out []byte
	switch b.bufKind {
	case BorrowedBuffer:
		if len(b.outBuf) < totalLen {
			return nil, fmt.Errorf("%w: %w (need %d, have %d)", errs.InsufficientSpace, errs.ErrDestTooSmall, totalLen, len(b.outBuf))
		}
		out = b.outBuf[:totalLen]
	default:
		out = make([]byte, totalLen)
	}

	rh := header.NewRecordHeader(b.order)
	rh.SetRecordNumber(b.recordNumber)
	rh.SetEventCount(uint32(len(b.events)))
	rh.SetIndexLength(uint32(indexLen))
	rh.SetUserHeaderLength(uint32(len(b.userHeader)))
	rh.SetDataLength(uint32(rawLen))
	rh.SetCompressedDataLength(uint32(payloadPadded/4), b.compression)
	rh.SetHasDictionary(b.hasDictionary)
	rh.SetHasFirstEvent(b.hasFirstEvent)
	rh.SetLength(uint32(totalLen / 4))

	copy(out[header.Size:], payload)
	for i := len(payload); i < payloadPadded; i++ {
		out[header.Size+i] = 0
	}

	if b.computeChecksum {
		rh.SetChecksum(xxhash.Sum64(out[header.Size : header.Size+payloadPadded]))
	}

	copy(out[:header.Size], rh.Bytes())

	return out, nil
}

// Reset clears accumulated events, index, and user-header state while
// keeping compression kind, caps, and buffer ownership.
func (b *RecordBuilder) Reset() {
	b.events = b.events[:0]
	b.dataLen = 0
	b.userHeader = nil
	b.hasDictionary = false
	b.hasFirstEvent = false
	b.staging.Reset()
}

// EventCount returns the number of events currently staged.
func (b *RecordBuilder) EventCount() int { return len(b.events) }

// DataLen returns the total unpadded byte length of staged events.
func (b *RecordBuilder) DataLen() uint32 { return b.dataLen }

// IsEmpty reports whether the builder has no staged events.
func (b *RecordBuilder) IsEmpty() bool { return len(b.events) == 0 }
