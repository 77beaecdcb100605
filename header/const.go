// Package header implements the 14-word (56-byte) record and file header
// layouts shared by every on-disk or in-buffer HIPO record and file.
package header

const (
	// Size is the fixed byte length of a record or file header.
	Size = 56

	// WordCount is Size/4.
	WordCount = 14
)

// Byte offsets of each 32-bit word within the 56-byte header.
const (
	offLength           = 0  // word 0: total length, in 32-bit words
	offSecondWord       = 4  // word 1: record_number (record) / unused (file)
	offHeaderLength     = 8  // word 2: header length, in 32-bit words
	offCount            = 12 // word 3: event_count (record) / record_count (file)
	offIndexLength      = 16 // word 4: index length, in bytes
	offBitInfo          = 20 // word 5: bit-info + version
	offUserHeaderLength = 24 // word 6: user-header length, in bytes
	offMagic            = 28 // word 7: magic number
	offDataLength       = 32 // word 8: uncompressed data length, bytes (record) / reserved (file)
	offCompressedWord   = 36 // word 9: compressed data length (low 28 bits) + compression kind (top 4 bits)
	offReserved1        = 40 // words 10-11: 64-bit general-purpose word (record) / trailer position (file)
	offReserved2        = 48 // words 12-13: 64-bit general-purpose word
)

// RecordMagic is the magic constant every record header must contain at
// offMagic, per spec I5.
const RecordMagic uint32 = 0xc0da0100

// File header magic constants: either is accepted on read.
const (
	FileMagicHIPO uint32 = 0x48495050
	FileMagicEVIO uint32 = 0x4556494f
)

// Bit-info word flag bits (version 6 encoding).
const (
	bitHasDictionary = 8
	bitHasFirstEvent = 9
	bitIsLastRecord  = 10
)

// compressedLengthMask / compressedKindShift split word 9 into a 28-bit
// word-count and a 4-bit compression kind in the top nibble.
const (
	compressedLengthMask = 0x0fffffff
	compressedKindShift  = 28
)
