package header

import (
	"fmt"

	"github.com/scigolib/hipo/endian"
	"github.com/scigolib/hipo/errs"
)

// FileHeader is the 14-word (56-byte) header at the start of a HIPO/EVIO
// file. Same wire layout as RecordHeader (spec.md §3), with word 3 reused
// for record count, word 4 for the record-length index size, word 6 for
// the user-header size, and the first reserved 64-bit word (words 10-11)
// for the trailer's byte position.
type FileHeader struct {
	headerCommon
}

// NewFileHeader creates a FileHeader for version 6, little- or big-endian
// per order, with the HIPO magic.
func NewFileHeader(order endian.EndianEngine) *FileHeader {
	h := FileHeader{headerCommon: newHeaderCommon(order)}
	h.magic = FileMagicHIPO
	h.bitInfo = 6

	return &h
}

// ParseFileHeader parses a FileHeader from data, detecting byte order from
// whichever magic (HIPO or EVIO) matches, per spec I5.
func ParseFileHeader(data []byte) (*FileHeader, error) {
	common, err := parseHeaderCommon(data, func(magic uint32) bool {
		return magic == FileMagicHIPO || magic == FileMagicEVIO
	})
	if err != nil {
		return nil, err
	}

	version := common.bitInfo & 0xff
	if version < 4 {
		return nil, fmt.Errorf("%w: %w (got version %d)", errs.BadFormat, errs.ErrUnsupportedVersion, version)
	}

	return &FileHeader{headerCommon: common}, nil
}

// Bytes serializes the header into a new 56-byte slice.
func (h *FileHeader) Bytes() []byte {
	return h.bytes()
}

// Version returns the format version.
func (h *FileHeader) Version() uint8 { return uint8(h.bitInfo & 0xff) }

// SetVersion sets the format version.
func (h *FileHeader) SetVersion(v uint8) {
	h.bitInfo = (h.bitInfo &^ 0xff) | uint32(v)
}

// Magic returns the header's magic word (FileMagicHIPO or FileMagicEVIO).
func (h *FileHeader) Magic() uint32 { return h.magic }

// IsEVIO reports whether the file was written under the EVIO magic rather
// than HIPO; the two are otherwise wire-identical.
func (h *FileHeader) IsEVIO() bool { return h.magic == FileMagicEVIO }

// HeaderLengthWords returns the header length in words (always 14).
func (h *FileHeader) HeaderLengthWords() uint32 { return h.headerLength }

// RecordCount returns the number of data records in the file; the trailer
// record, if any, is not counted.
func (h *FileHeader) RecordCount() uint32 { return h.count }

// SetRecordCount sets the number of records.
func (h *FileHeader) SetRecordCount(n uint32) { h.count = n }

// IndexLength returns the size, in bytes, of the record-length index
// (record_count * 2 words) that follows the trailer, when present.
func (h *FileHeader) IndexLength() uint32 { return h.indexLength }

// SetIndexLength sets the size, in bytes, of the record-length index.
func (h *FileHeader) SetIndexLength(n uint32) { h.indexLength = n }

// UserHeaderLength returns the unpadded file-level user-header size in
// bytes (the dictionary/first-event carrier record, if any).
func (h *FileHeader) UserHeaderLength() uint32 { return h.userHeaderLength }

// SetUserHeaderLength sets the unpadded file-level user-header size in
// bytes.
func (h *FileHeader) SetUserHeaderLength(n uint32) { h.userHeaderLength = n }

// UserHeaderPaddedLength returns the user-header size padded to a 4-byte
// boundary, in bytes.
func (h *FileHeader) UserHeaderPaddedLength() uint32 { return padWords(h.userHeaderLength) * 4 }

// TrailerPosition returns the byte offset of the trailer record within
// the file, or 0 if no trailer was written.
func (h *FileHeader) TrailerPosition() uint64 { return h.reserved1 }

// SetTrailerPosition sets the byte offset of the trailer record.
func (h *FileHeader) SetTrailerPosition(pos uint64) { h.reserved1 = pos }

// ByteOrder returns the header's configured byte order.
func (h *FileHeader) ByteOrder() endian.EndianEngine { return h.order }
