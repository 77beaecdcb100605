// Package node describes a single structure within a scanned event buffer.
//
// A Node is a lightweight, non-owning descriptor: absolute header position,
// data position, tag/num/pad, structure kind, data-type, and links to its
// parent and children within the Tree arena that owns it. Nodes never copy
// structure bytes; every accessor slices the Tree's backing buffer.
package node

import (
	"github.com/scigolib/hipo/endian"
	"github.com/scigolib/hipo/format"
)

// Node describes one bank, segment, or tagsegment within a Tree.
type Node struct {
	Position     int // absolute byte offset of the structure's header
	DataPosition int // absolute byte offset of the structure's data region

	// DataLength is the logical data length in bytes: for a leaf, the
	// declared word span times 4 minus padding; for a container, the full
	// byte span of its descendants (containers carry no padding).
	DataLength int

	dataSpanBytes int // raw on-disk span from DataPosition, padding included

	Tag      uint32
	Num      uint32
	Pad      uint8
	Kind     format.StructKind
	DataType format.DataType

	Parent     int   // arena index, -1 for the event root
	Children   []int // arena indices, in scan order
	EventPlace int   // top-level event index; -1 for non-root nodes

	Obsolete bool
}

// HeaderWords returns the number of 32-bit words in this node's header: 2
// for a bank, 1 for a segment or tagsegment.
func (n *Node) HeaderWords() int {
	if n.Kind == format.KindBank {
		return 2
	}

	return 1
}

// HeaderBytes returns HeaderWords in bytes.
func (n *Node) HeaderBytes() int { return 4 * n.HeaderWords() }

// End returns the absolute byte offset one past this node's data region,
// padding included.
func (n *Node) End() int { return n.DataPosition + n.dataSpanBytes }

// Length returns the node's total on-disk byte span: header plus data,
// padding included. This is the Δ a Remove shifts everything after it by.
func (n *Node) Length() int { return n.HeaderBytes() + n.dataSpanBytes }

// Tree is an arena of Nodes scanned from a single event's bytes. Nodes
// reference each other by index into Nodes rather than by pointer, so the
// whole tree can be rebound to a relocated buffer without walking pointers.
type Tree struct {
	Buffer []byte // the event's bytes; len(Buffer) is the valid length
	Order  endian.EndianEngine

	Nodes []*Node // arena; index is the Node's identity

	// AllNodes is the pre-order scan-order list of arena indices rooted at
	// the event. It is the source of truth for shift/update sweeps after
	// an edit.
	AllNodes []int

	Root int
}

// NodeAt returns the Node at the given arena index.
func (t *Tree) NodeAt(idx int) *Node { return t.Nodes[idx] }

// Data returns the node's logical data bytes, aliasing the tree's buffer:
// for a leaf, padding is excluded; for a container, the full descendant
// span (containers carry no padding of their own).
func (t *Tree) Data(idx int) []byte {
	n := t.Nodes[idx]

	return t.Buffer[n.DataPosition : n.DataPosition+n.DataLength]
}

// RawSpan returns the node's raw on-disk data bytes, padding included.
func (t *Tree) RawSpan(idx int) []byte {
	n := t.Nodes[idx]

	return t.Buffer[n.DataPosition:n.End()]
}
