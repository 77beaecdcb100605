package header

import (
	"fmt"

	"github.com/scigolib/hipo/endian"
	"github.com/scigolib/hipo/errs"
	"github.com/scigolib/hipo/format"
)

// RecordHeader is the 14-word (56-byte) header prefixing every record.
// Version lives in the low byte of the bit-info word (word 5); has-dictionary,
// has-first-event, and is-last-record are bits 8, 9, 10 of that same word.
type RecordHeader struct {
	headerCommon
}

// NewRecordHeader creates a RecordHeader for version 6, with magic and
// header length pre-filled; all length fields default to zero until the
// owning RecordBuilder stamps them during build().
func NewRecordHeader(order endian.EndianEngine) *RecordHeader {
	h := RecordHeader{headerCommon: newHeaderCommon(order)}
	h.magic = RecordMagic
	h.bitInfo = 6 // version 6, no flags set

	return &h
}

// ParseRecordHeader parses a RecordHeader from data, detecting byte order
// from the magic word per spec I5.
func ParseRecordHeader(data []byte) (*RecordHeader, error) {
	common, err := parseHeaderCommon(data, func(magic uint32) bool { return magic == RecordMagic })
	if err != nil {
		return nil, err
	}

	version := common.bitInfo & 0xff
	if version < 4 {
		return nil, fmt.Errorf("%w: %w (got version %d)", errs.BadFormat, errs.ErrUnsupportedVersion, version)
	}

	return &RecordHeader{headerCommon: common}, nil
}

// Clone returns a deep copy of the header, so the copy's fields can be
// changed without affecting the original.
func (h *RecordHeader) Clone() *RecordHeader {
	clone := *h
	return &clone
}

// Bytes serializes the header into a new 56-byte slice, in the header's
// configured byte order.
func (h *RecordHeader) Bytes() []byte {
	return h.bytes()
}

// Length returns the total record length in bytes (header + index +
// user-header + payload, including any compression padding).
func (h *RecordHeader) Length() uint32 { return h.length * 4 }

// LengthWords returns the total record length in 32-bit words.
func (h *RecordHeader) LengthWords() uint32 { return h.length }

// SetLength sets the total record length from a word count.
func (h *RecordHeader) SetLength(words uint32) { h.length = words }

// RecordNumber returns the record's sequence number.
func (h *RecordHeader) RecordNumber() uint32 { return h.secondWord }

// SetRecordNumber sets the record's sequence number.
func (h *RecordHeader) SetRecordNumber(n uint32) { h.secondWord = n }

// HeaderLengthWords returns the header length in 32-bit words (always 14).
func (h *RecordHeader) HeaderLengthWords() uint32 { return h.headerLength }

// EventCount returns the number of events in this record.
func (h *RecordHeader) EventCount() uint32 { return h.count }

// SetEventCount sets the number of events in this record.
func (h *RecordHeader) SetEventCount(n uint32) { h.count = n }

// IndexLength returns the event-length index size in bytes (unpadded;
// exactly 4*EventCount()).
func (h *RecordHeader) IndexLength() uint32 { return h.indexLength }

// SetIndexLength sets the event-length index size in bytes.
func (h *RecordHeader) SetIndexLength(n uint32) { h.indexLength = n }

// Version returns the format version from the low byte of the bit-info word.
func (h *RecordHeader) Version() uint8 { return uint8(h.bitInfo & 0xff) }

// SetVersion sets the format version in the low byte of the bit-info word.
func (h *RecordHeader) SetVersion(v uint8) {
	h.bitInfo = (h.bitInfo &^ 0xff) | uint32(v)
}

// HasDictionary reports whether the record's user-header carries an XML
// dictionary as its first (or sole) content.
func (h *RecordHeader) HasDictionary() bool { return h.bitInfo&(1<<bitHasDictionary) != 0 }

// SetHasDictionary sets or clears the has-dictionary flag.
func (h *RecordHeader) SetHasDictionary(v bool) { h.setBit(bitHasDictionary, v) }

// HasFirstEvent reports whether the record's user-header carries a
// first-event payload.
func (h *RecordHeader) HasFirstEvent() bool { return h.bitInfo&(1<<bitHasFirstEvent) != 0 }

// SetHasFirstEvent sets or clears the has-first-event flag.
func (h *RecordHeader) SetHasFirstEvent(v bool) { h.setBit(bitHasFirstEvent, v) }

// IsLastRecord reports whether this record is marked as the file's last
// record (used by the trailer record).
func (h *RecordHeader) IsLastRecord() bool { return h.bitInfo&(1<<bitIsLastRecord) != 0 }

// SetIsLastRecord sets or clears the is-last-record flag.
func (h *RecordHeader) SetIsLastRecord(v bool) { h.setBit(bitIsLastRecord, v) }

func (h *RecordHeader) setBit(bit uint, v bool) {
	if v {
		h.bitInfo |= 1 << bit
	} else {
		h.bitInfo &^= 1 << bit
	}
}

// UserHeaderLength returns the unpadded user-header size in bytes.
func (h *RecordHeader) UserHeaderLength() uint32 { return h.userHeaderLength }

// SetUserHeaderLength sets the unpadded user-header size in bytes.
func (h *RecordHeader) SetUserHeaderLength(n uint32) { h.userHeaderLength = n }

// UserHeaderPaddedLength returns the user-header size padded to a 4-byte
// boundary, in bytes.
func (h *RecordHeader) UserHeaderPaddedLength() uint32 { return padWords(h.userHeaderLength) * 4 }

// Magic returns the header's magic word; should always equal RecordMagic
// for a successfully parsed header.
func (h *RecordHeader) Magic() uint32 { return h.magic }

// DataLength returns the uncompressed length in bytes (unpadded) of the
// region compression covers: index + padded user-header + event payload.
func (h *RecordHeader) DataLength() uint32 { return h.dataLength }

// SetDataLength sets the uncompressed index + padded user-header + event
// payload length in bytes.
func (h *RecordHeader) SetDataLength(n uint32) { h.dataLength = n }

// DataLengthPaddedWords returns the uncompressed payload length padded to
// a 4-byte boundary, in words.
func (h *RecordHeader) DataLengthPaddedWords() uint32 { return padWords(h.dataLength) }

// CompressionKind returns the compression kind from the top nibble of word 9.
func (h *RecordHeader) CompressionKind() format.CompressionKind { return h.compressionKind() }

// CompressedDataLengthWords returns the on-disk payload length in 32-bit
// words: the compressed length, or the padded uncompressed length when
// compression kind is None.
func (h *RecordHeader) CompressedDataLengthWords() uint32 { return h.compressedLengthWords() }

// SetCompressedDataLength sets the compressed payload length (words) and
// compression kind together, since they share word 9.
func (h *RecordHeader) SetCompressedDataLength(words uint32, kind format.CompressionKind) {
	h.setCompressedWord(words, kind)
}

// Checksum returns the optional payload checksum carried in the header's
// second reserved 64-bit word. A value of zero means no checksum was
// computed (the record predates this field, or the writer opted out);
// RecordReader treats zero as "skip verification" rather than a failure.
func (h *RecordHeader) Checksum() uint64 { return h.reserved2 }

// SetChecksum sets the optional payload checksum.
func (h *RecordHeader) SetChecksum(sum uint64) { h.reserved2 = sum }

// Reserved1 returns the header's first general-purpose 64-bit word.
func (h *RecordHeader) Reserved1() uint64 { return h.reserved1 }

// SetReserved1 sets the header's first general-purpose 64-bit word.
func (h *RecordHeader) SetReserved1(v uint64) { h.reserved1 = v }

// ByteOrder returns the header's configured byte order.
func (h *RecordHeader) ByteOrder() endian.EndianEngine { return h.order }
