package node

import (
	"fmt"

	"github.com/scigolib/hipo/endian"
	"github.com/scigolib/hipo/errs"
	"github.com/scigolib/hipo/format"
)

// Scan recursively parses event-bytes into a Tree rooted at a bank (the
// top-level structure of an event is always a bank). eventPlace is the
// event's position within its record or file, recorded on the root node.
func Scan(data []byte, order endian.EndianEngine, eventPlace int) (*Tree, error) {
	t := &Tree{Buffer: data, Order: order}

	rootIdx, _, err := scanOne(t, 0, format.KindBank, -1)
	if err != nil {
		return nil, err
	}

	t.Root = rootIdx
	t.Nodes[rootIdx].EventPlace = eventPlace

	return t, nil
}

// ScanInto parses a single well-formed structure at pos within an
// already-scanned tree's buffer, appending it (and any descendants) to the
// tree's arena and pre-order "all nodes" list as the new node's parent's
// last child. Used by editor.Insert after splicing new bytes in.
func ScanInto(t *Tree, pos int, kind format.StructKind, parent int) (int, error) {
	idx, _, err := scanOne(t, pos, kind, parent)

	return idx, err
}

// scanOne parses the structure header at pos as a node of the given kind,
// recurses into it if it is a container, and returns its arena index and
// total on-disk byte length (header + data, padding included).
func scanOne(t *Tree, pos int, kind format.StructKind, parent int) (int, int, error) {
	headerWords := 1
	if kind == format.KindBank {
		headerWords = 2
	}
	headerBytes := 4 * headerWords

	if pos+headerBytes > len(t.Buffer) {
		return 0, 0, fmt.Errorf("%w: structure header at %d exceeds buffer", errs.OutOfBounds, pos)
	}

	var tag, num uint32
	var pad uint8
	var dataType format.DataType
	var dataLengthWords uint32

	switch kind {
	case format.KindBank:
		word0 := t.Order.Uint32(t.Buffer[pos : pos+4])
		word1 := t.Order.Uint32(t.Buffer[pos+4 : pos+8])

		dataLengthWords = word0 - 1
		tag = (word1 >> 16) & 0xffff
		num = word1 & 0xff

		b := byte((word1 >> 8) & 0xff)
		dataType = format.DataType(b & 0x3f)
		pad = b >> 6

	case format.KindSegment:
		word0 := t.Order.Uint32(t.Buffer[pos : pos+4])

		dataLengthWords = word0 & 0xffff
		tag = (word0 >> 24) & 0xff
		num = 0

		b := byte((word0 >> 16) & 0xff)
		dataType = format.DataType(b & 0x3f)
		pad = b >> 6

	case format.KindTagSegment:
		word0 := t.Order.Uint32(t.Buffer[pos : pos+4])

		dataLengthWords = word0 & 0xffff
		tag = (word0 >> 20) & 0xfff
		num = 0
		pad = 0
		dataType = format.DataType((word0 >> 16) & 0xf)

	default:
		return 0, 0, fmt.Errorf("%w: %w", errs.BadFormat, errs.ErrUnknownStructKind)
	}

	if !dataType.IsDefined() {
		return 0, 0, fmt.Errorf("%w: %w (0x%x)", errs.BadFormat, errs.ErrUnknownDataType, uint8(dataType))
	}

	dataPosition := pos + headerBytes
	dataLengthBytes := int(dataLengthWords) * 4

	if dataLengthBytes < 0 || dataPosition+dataLengthBytes > len(t.Buffer) {
		return 0, 0, fmt.Errorf("%w: %w at position %d", errs.BadFormat, errs.ErrInvalidStructureLen, pos)
	}

	n := &Node{
		Position:      pos,
		DataPosition:  dataPosition,
		dataSpanBytes: dataLengthBytes,
		Tag:           tag,
		Num:           num,
		Pad:           pad,
		Kind:          kind,
		DataType:      dataType,
		Parent:        parent,
		EventPlace:    -1,
	}

	idx := len(t.Nodes)
	t.Nodes = append(t.Nodes, n)
	t.AllNodes = append(t.AllNodes, idx)

	if parent >= 0 {
		t.Nodes[parent].Children = append(t.Nodes[parent].Children, idx)
	}

	if dataType.IsContainer() {
		n.DataLength = dataLengthBytes

		childKind := dataType.ChildKind()
		consumed := 0
		for consumed < dataLengthBytes {
			_, childLen, err := scanOne(t, dataPosition+consumed, childKind, idx)
			if err != nil {
				return 0, 0, err
			}

			consumed += childLen
		}

		if consumed != dataLengthBytes {
			return 0, 0, fmt.Errorf("%w: %w at position %d", errs.BadFormat, errs.ErrInvalidStructureLen, pos)
		}
	} else {
		n.DataLength = dataLengthBytes - int(pad)
	}

	return idx, headerBytes + dataLengthBytes, nil
}
