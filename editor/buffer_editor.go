// Package editor mutates an already-scanned node.Tree in place: removing a
// structure's subtree or inserting a new one, keeping every Node's position
// consistent with the buffer and every ancestor's length word consistent
// with its (possibly changed) descendant byte count.
//
// Both operations require the tree's buffer to be uncompressed: shifting
// bytes inside a compressed blob would desynchronize it from its declared
// compressed length.
package editor

import (
	"fmt"

	"github.com/scigolib/hipo/errs"
	"github.com/scigolib/hipo/node"
)

// BufferEditor mutates a single event's node.Tree. Growable controls
// whether Insert may reallocate the tree's backing buffer; a Tree built
// over a caller-provided, fixed-capacity region should set it false.
type BufferEditor struct {
	Tree     *node.Tree
	Growable bool
}

// New wraps a scanned Tree for editing.
func New(tree *node.Tree, growable bool) *BufferEditor {
	return &BufferEditor{Tree: tree, Growable: growable}
}

// Remove deletes the subtree rooted at nodeIdx: marks it and its
// descendants obsolete, shifts every following byte and Node left by the
// removed span, and decrements every ancestor's length word. Returns the
// number of bytes removed (the record/file-level Δ a caller should apply
// to its own length and index bookkeeping).
func (e *BufferEditor) Remove(nodeIdx int) (int, error) {
	tree := e.Tree
	n := tree.Nodes[nodeIdx]

	if n.Obsolete {
		return 0, fmt.Errorf("%w: %w", errs.InvalidState, errs.ErrNodeObsolete)
	}

	delta := n.Length()
	end := n.End()

	markObsolete(tree, nodeIdx)

	copy(tree.Buffer[n.Position:], tree.Buffer[end:])
	tree.Buffer = tree.Buffer[:len(tree.Buffer)-delta]

	for _, idx := range tree.AllNodes {
		m := tree.Nodes[idx]
		if m.Obsolete || idx == nodeIdx {
			continue
		}

		if m.Position >= end {
			m.Position -= delta
			m.DataPosition -= delta
		}
	}

	deltaWords := int32(delta / 4)
	for p := n.Parent; p >= 0; p = tree.Nodes[p].Parent {
		ancestor := tree.Nodes[p]
		if err := node.AdjustLengthWords(tree.Order, tree.Buffer, ancestor.Position, ancestor.Kind, -deltaWords); err != nil {
			return 0, err
		}
	}

	if n.Parent >= 0 {
		parent := tree.Nodes[n.Parent]
		parent.Children = removeChild(parent.Children, nodeIdx)
	}

	tree.AllNodes = compactAllNodes(tree)

	return delta, nil
}

// Insert splices a well-formed structure's bytes in as the last child of
// parentIdx, growing the buffer if needed and permitted. parent's
// data-type must already identify a container. Returns the number of
// bytes inserted.
func (e *BufferEditor) Insert(parentIdx int, newStruct []byte) (int, error) {
	tree := e.Tree
	parent := tree.Nodes[parentIdx]

	if !parent.DataType.IsContainer() {
		return 0, fmt.Errorf("%w: %w", errs.InvalidArgument, errs.ErrIncompatibleParent)
	}

	delta := len(newStruct)
	if delta%4 != 0 {
		return 0, fmt.Errorf("%w: new structure is not word-aligned", errs.InvalidArgument)
	}

	insertAt := parent.End()

	if len(tree.Buffer)+delta > cap(tree.Buffer) {
		if !e.Growable {
			return 0, fmt.Errorf("%w: %w", errs.InsufficientSpace, errs.ErrBufferFixedCap)
		}

		grown := make([]byte, len(tree.Buffer), len(tree.Buffer)+delta)
		copy(grown, tree.Buffer)
		tree.Buffer = grown
	}

	tree.Buffer = tree.Buffer[:len(tree.Buffer)+delta]
	copy(tree.Buffer[insertAt+delta:], tree.Buffer[insertAt:len(tree.Buffer)-delta])
	copy(tree.Buffer[insertAt:insertAt+delta], newStruct)

	for _, idx := range tree.AllNodes {
		m := tree.Nodes[idx]
		if m.Position >= insertAt {
			m.Position += delta
			m.DataPosition += delta
		}
	}

	deltaWords := int32(delta / 4)
	for p := parentIdx; p >= 0; p = tree.Nodes[p].Parent {
		ancestor := tree.Nodes[p]
		if err := node.AdjustLengthWords(tree.Order, tree.Buffer, ancestor.Position, ancestor.Kind, deltaWords); err != nil {
			return 0, err
		}
	}

	childKind := parent.DataType.ChildKind()
	if _, err := node.ScanInto(tree, insertAt, childKind, parentIdx); err != nil {
		return 0, err
	}

	return delta, nil
}

func markObsolete(tree *node.Tree, idx int) {
	n := tree.Nodes[idx]
	n.Obsolete = true
	for _, c := range n.Children {
		markObsolete(tree, c)
	}
}

func removeChild(children []int, idx int) []int {
	out := children[:0]
	for _, c := range children {
		if c != idx {
			out = append(out, c)
		}
	}

	return out
}

// compactAllNodes rebuilds the pre-order index list, dropping obsolete
// entries left behind by a Remove.
func compactAllNodes(tree *node.Tree) []int {
	out := make([]int, 0, len(tree.AllNodes))
	for _, idx := range tree.AllNodes {
		if !tree.Nodes[idx].Obsolete {
			out = append(out, idx)
		}
	}

	return out
}
