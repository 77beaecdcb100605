package node

import (
	"fmt"

	"github.com/scigolib/hipo/endian"
	"github.com/scigolib/hipo/errs"
	"github.com/scigolib/hipo/format"
)

// ReadLengthWords reads the raw payload-word count stored at a structure's
// header, per the table in §3: the full first word for a bank, the
// low 16 bits of the first word for a segment or tagsegment.
func ReadLengthWords(order endian.EndianEngine, buf []byte, pos int, kind format.StructKind) uint32 {
	word0 := order.Uint32(buf[pos : pos+4])
	if kind == format.KindBank {
		return word0
	}

	return word0 & 0xffff
}

// WriteLengthWords writes a new payload-word count into a structure's
// header, preserving every other bit in the word.
func WriteLengthWords(order endian.EndianEngine, buf []byte, pos int, kind format.StructKind, words uint32) {
	if kind == format.KindBank {
		order.PutUint32(buf[pos:pos+4], words)
		return
	}

	word0 := order.Uint32(buf[pos : pos+4])
	word0 = (word0 &^ 0xffff) | (words & 0xffff)
	order.PutUint32(buf[pos:pos+4], word0)
}

// AdjustLengthWords adds deltaWords (which may be negative) to the
// payload-word count stored at a structure's header.
func AdjustLengthWords(order endian.EndianEngine, buf []byte, pos int, kind format.StructKind, deltaWords int32) error {
	current := ReadLengthWords(order, buf, pos, kind)
	next := int64(current) + int64(deltaWords)
	if next < 0 {
		return fmt.Errorf("%w: %w (length word would go negative at %d)", errs.BadFormat, errs.ErrInvalidStructureLen, pos)
	}

	WriteLengthWords(order, buf, pos, kind, uint32(next))

	return nil
}
