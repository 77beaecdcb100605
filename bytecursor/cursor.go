// Package bytecursor provides an endian-aware, bounds-checked, absolute-offset
// view over a contiguous byte region. Unlike internal/pool.ByteBuffer, which
// is append-oriented, a Cursor addresses a fixed backing slice by position:
// it is the primitive every header/record/node reader builds on.
package bytecursor

import (
	"fmt"

	"github.com/scigolib/hipo/endian"
	"github.com/scigolib/hipo/errs"
)

// Cursor is an absolute-offset, endian-aware view over a byte slice. All
// get/put operations are random-access and never mutate the cursor's
// position; every get/put is bounds-checked against the cursor's limit.
type Cursor struct {
	data  []byte
	order endian.EndianEngine
	pos   int
	limit int
}

// New creates a Cursor over data using the given byte order, with limit set
// to len(data).
func New(data []byte, order endian.EndianEngine) *Cursor {
	return &Cursor{
		data:  data,
		order: order,
		limit: len(data),
	}
}

// Detect creates a Cursor over data, determining byte order by reading the
// 4-byte magic word at offset under both orders: whichever yields magic
// wins. Fails with BadFormat if neither order matches.
func Detect(data []byte, offset int, magic uint32) (*Cursor, error) {
	order, ok := endian.DetectByteOrder(data, offset, magic)
	if !ok {
		return nil, fmt.Errorf("%w: magic %#x not found at offset %d in either byte order", errs.BadFormat, magic, offset)
	}

	return New(data, order.(endian.EndianEngine)), nil
}

// Order returns the cursor's configured byte order.
func (c *Cursor) Order() endian.EndianEngine {
	return c.order
}

// Capacity returns the length of the backing slice.
func (c *Cursor) Capacity() int {
	return len(c.data)
}

// Limit returns the cursor's current limit.
func (c *Cursor) Limit() int {
	return c.limit
}

// SetLimit sets the cursor's limit. Panics if limit exceeds capacity.
func (c *Cursor) SetLimit(limit int) {
	if limit < 0 || limit > len(c.data) {
		panic("bytecursor: SetLimit out of range")
	}

	c.limit = limit
}

// Position returns the cursor's current sequential-read position.
func (c *Cursor) Position() int {
	return c.pos
}

// SetPosition sets the cursor's sequential-read position.
func (c *Cursor) SetPosition(pos int) {
	c.pos = pos
}

// Bytes returns the full backing slice up to limit.
func (c *Cursor) Bytes() []byte {
	return c.data[:c.limit]
}

func (c *Cursor) checkBounds(pos, n int) error {
	if pos < 0 || n < 0 || pos+n > c.limit {
		return fmt.Errorf("%w: range [%d, %d) exceeds limit %d", errs.OutOfBounds, pos, pos+n, c.limit)
	}

	return nil
}

// GetU16 reads a uint16 at the absolute position pos.
func (c *Cursor) GetU16(pos int) (uint16, error) {
	if err := c.checkBounds(pos, 2); err != nil {
		return 0, err
	}

	return c.order.Uint16(c.data[pos : pos+2]), nil
}

// GetU32 reads a uint32 at the absolute position pos.
func (c *Cursor) GetU32(pos int) (uint32, error) {
	if err := c.checkBounds(pos, 4); err != nil {
		return 0, err
	}

	return c.order.Uint32(c.data[pos : pos+4]), nil
}

// GetU64 reads a uint64 at the absolute position pos.
func (c *Cursor) GetU64(pos int) (uint64, error) {
	if err := c.checkBounds(pos, 8); err != nil {
		return 0, err
	}

	return c.order.Uint64(c.data[pos : pos+8]), nil
}

// GetBytes returns a slice of n bytes at the absolute position pos. The
// returned slice aliases the backing storage; callers must not retain it
// past the cursor's lifetime if the buffer may be reused.
func (c *Cursor) GetBytes(pos, n int) ([]byte, error) {
	if err := c.checkBounds(pos, n); err != nil {
		return nil, err
	}

	return c.data[pos : pos+n], nil
}

// PutU16 writes a uint16 at the absolute position pos.
func (c *Cursor) PutU16(pos int, v uint16) error {
	if err := c.checkBounds(pos, 2); err != nil {
		return err
	}

	c.order.PutUint16(c.data[pos:pos+2], v)

	return nil
}

// PutU32 writes a uint32 at the absolute position pos.
func (c *Cursor) PutU32(pos int, v uint32) error {
	if err := c.checkBounds(pos, 4); err != nil {
		return err
	}

	c.order.PutUint32(c.data[pos:pos+4], v)

	return nil
}

// PutU64 writes a uint64 at the absolute position pos.
func (c *Cursor) PutU64(pos int, v uint64) error {
	if err := c.checkBounds(pos, 8); err != nil {
		return err
	}

	c.order.PutUint64(c.data[pos:pos+8], v)

	return nil
}

// PutBytes copies src into the backing slice starting at pos.
func (c *Cursor) PutBytes(pos int, src []byte) error {
	if err := c.checkBounds(pos, len(src)); err != nil {
		return err
	}

	copy(c.data[pos:pos+len(src)], src)

	return nil
}

// Slice returns a sub-Cursor over data[from:to], sharing the same byte
// order and backing storage.
func (c *Cursor) Slice(from, to int) (*Cursor, error) {
	if from < 0 || to < from || to > c.limit {
		return nil, fmt.Errorf("%w: slice [%d, %d) exceeds limit %d", errs.OutOfBounds, from, to, c.limit)
	}

	return &Cursor{
		data:  c.data[from:to],
		order: c.order,
		limit: to - from,
	}, nil
}
