package record

import (
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/scigolib/hipo/compress"
	"github.com/scigolib/hipo/errs"
	"github.com/scigolib/hipo/format"
	"github.com/scigolib/hipo/header"
)

// RecordReader parses a record header and lazily decompresses its payload
// into addressable events. ReadRecord keeps no state between calls.
type RecordReader struct {
	scratch []byte
}

// NewRecordReader creates a RecordReader.
func NewRecordReader() *RecordReader {
	return &RecordReader{}
}

// ReadRecord parses the record header at buf[offset:] and returns a
// RecordView over its events. Compressed records are decompressed into a
// new slice returned by the codec; uncompressed records alias buf directly.
func (r *RecordReader) ReadRecord(buf []byte, offset int) (*RecordView, error) {
	if offset < 0 || offset+header.Size > len(buf) {
		return nil, fmt.Errorf("%w: record header at offset %d exceeds buffer", errs.OutOfBounds, offset)
	}

	rh, err := header.ParseRecordHeader(buf[offset : offset+header.Size])
	if err != nil {
		return nil, err
	}

	payloadStart := offset + header.Size
	payloadWords := rh.CompressedDataLengthWords()
	payloadBytes := int(payloadWords) * 4

	if payloadStart+payloadBytes > len(buf) {
		return nil, fmt.Errorf("%w: %w (need %d bytes at offset %d)", errs.CorruptData, errs.ErrTruncatedPayload, payloadBytes, payloadStart)
	}

	onDisk := buf[payloadStart : payloadStart+payloadBytes]

	if sum := rh.Checksum(); sum != 0 {
		if xxhash.Sum64(onDisk) != sum {
			return nil, fmt.Errorf("%w: %w", errs.CorruptData, errs.ErrCorruptChecksum)
		}
	}

	var region []byte
	if rh.CompressionKind() == format.CompressionNone {
		region = onDisk[:rh.DataLength()]
	} else {
		codec, err := compress.GetCodec(rh.CompressionKind())
		if err != nil {
			return nil, err
		}

		decompressed, err := codec.Decompress(onDisk)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errs.ErrDecompressFailed, err)
		}

		if uint32(len(decompressed)) < rh.DataLength() {
			return nil, fmt.Errorf("%w: %w", errs.CorruptData, errs.ErrLengthMismatch)
		}

		region = decompressed[:rh.DataLength()]
	}

	return newRecordView(rh.ByteOrder(), region, rh), nil
}
