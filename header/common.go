package header

import (
	"fmt"

	"github.com/scigolib/hipo/endian"
	"github.com/scigolib/hipo/errs"
	"github.com/scigolib/hipo/format"
)

// headerCommon holds the 14 words shared verbatim by RecordHeader and
// FileHeader; spec.md §3 states the file header uses the same 56-byte
// layout as the record header with certain fields reinterpreted.
type headerCommon struct {
	length           uint32 // word 0, in 32-bit words
	secondWord       uint32 // word 1
	headerLength     uint32 // word 2, in 32-bit words
	count            uint32 // word 3
	indexLength      uint32 // word 4, bytes
	bitInfo          uint32 // word 5: low byte version, upper bits flags
	userHeaderLength uint32 // word 6, bytes
	magic            uint32 // word 7
	dataLength       uint32 // word 8, bytes (record) / reserved (file)
	compressedWord   uint32 // word 9: low 28 bits words, top nibble kind
	reserved1        uint64 // words 10-11
	reserved2        uint64 // words 12-13

	order endian.EndianEngine
}

func newHeaderCommon(order endian.EndianEngine) headerCommon {
	return headerCommon{
		headerLength: WordCount,
		order:        order,
	}
}

func parseHeaderCommon(data []byte, wantMagic func(uint32) bool) (headerCommon, error) {
	if len(data) < Size {
		return headerCommon{}, fmt.Errorf("%w: %w: need %d bytes, got %d", errs.BadFormat, errs.ErrInvalidHeaderSize, Size, len(data))
	}

	var order endian.EndianEngine
	le := endian.GetLittleEndianEngine()
	be := endian.GetBigEndianEngine()

	switch {
	case wantMagic(le.Uint32(data[offMagic : offMagic+4])):
		order = le
	case wantMagic(be.Uint32(data[offMagic : offMagic+4])):
		order = be
	default:
		return headerCommon{}, fmt.Errorf("%w: %w", errs.BadFormat, errs.ErrBadMagic)
	}

	h := headerCommon{order: order}
	h.length = order.Uint32(data[offLength : offLength+4])
	h.secondWord = order.Uint32(data[offSecondWord : offSecondWord+4])
	h.headerLength = order.Uint32(data[offHeaderLength : offHeaderLength+4])
	h.count = order.Uint32(data[offCount : offCount+4])
	h.indexLength = order.Uint32(data[offIndexLength : offIndexLength+4])
	h.bitInfo = order.Uint32(data[offBitInfo : offBitInfo+4])
	h.userHeaderLength = order.Uint32(data[offUserHeaderLength : offUserHeaderLength+4])
	h.magic = order.Uint32(data[offMagic : offMagic+4])
	h.dataLength = order.Uint32(data[offDataLength : offDataLength+4])
	h.compressedWord = order.Uint32(data[offCompressedWord : offCompressedWord+4])
	h.reserved1 = order.Uint64(data[offReserved1 : offReserved1+8])
	h.reserved2 = order.Uint64(data[offReserved2 : offReserved2+8])

	return h, nil
}

func (h *headerCommon) bytes() []byte {
	b := make([]byte, Size)

	h.order.PutUint32(b[offLength:offLength+4], h.length)
	h.order.PutUint32(b[offSecondWord:offSecondWord+4], h.secondWord)
	h.order.PutUint32(b[offHeaderLength:offHeaderLength+4], h.headerLength)
	h.order.PutUint32(b[offCount:offCount+4], h.count)
	h.order.PutUint32(b[offIndexLength:offIndexLength+4], h.indexLength)
	h.order.PutUint32(b[offBitInfo:offBitInfo+4], h.bitInfo)
	h.order.PutUint32(b[offUserHeaderLength:offUserHeaderLength+4], h.userHeaderLength)
	h.order.PutUint32(b[offMagic:offMagic+4], h.magic)
	h.order.PutUint32(b[offDataLength:offDataLength+4], h.dataLength)
	h.order.PutUint32(b[offCompressedWord:offCompressedWord+4], h.compressedWord)
	h.order.PutUint64(b[offReserved1:offReserved1+8], h.reserved1)
	h.order.PutUint64(b[offReserved2:offReserved2+8], h.reserved2)

	return b
}

// padWords rounds a byte count up to the nearest 4-byte (1-word) boundary
// and returns the word count.
func padWords(byteLen uint32) uint32 {
	return (byteLen + 3) / 4
}

func (h *headerCommon) compressionKind() format.CompressionKind {
	return format.CompressionKind(h.compressedWord >> compressedKindShift)
}

func (h *headerCommon) setCompressedWord(words uint32, kind format.CompressionKind) {
	h.compressedWord = (words & compressedLengthMask) | (uint32(kind) << compressedKindShift)
}

func (h *headerCommon) compressedLengthWords() uint32 {
	return h.compressedWord & compressedLengthMask
}
