// Package hipo provides a hierarchical binary container format for
// physics-style event data: a file of self-describing records, each
// holding a sequence of events, each event a tree of banks, segments, and
// tagsegments.
//
// # Core Features
//
//   - Self-describing 56-byte record/file headers shared by one wire layout
//   - Optional LZ4, LZ4-best, or GZIP record compression
//   - Structure trees (banks/segments/tagsegments) addressed by an
//     index-based arena, so in-place edits never invalidate sibling nodes
//   - In-place Remove/Insert editing of a parsed event tree
//   - Double-buffered pipelined file writing with an optional trailer index
//     for O(log n) random event access
//
// # Basic Usage
//
// Writing a file:
//
//	import (
//		"github.com/scigolib/hipo"
//		"github.com/scigolib/hipo/endian"
//	)
//
//	order := endian.GetLittleEndianEngine()
//	asm := hipo.NewAssembler(order)
//	asm.SetTrailerIndex(true)
//	sink := hipo.NewBufferSink()
//	asm.Open(sink, nil, nil)
//	asm.AddEvent(eventBytes)
//	asm.Close()
//
// Reading events back:
//
//	idx, err := hipo.OpenFile(sink.Bytes())
//	event, err := idx.GetEvent(0)
//
// Parsing a single event's structure tree:
//
//	tree, err := hipo.ScanEvent(eventBytes, order)
//	root := tree.NodeAt(tree.Root)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the inner
// packages (bytecursor, header, record, node, editor, file). For advanced
// usage and fine-grained control, use those packages directly.
package hipo

import (
	"github.com/scigolib/hipo/editor"
	"github.com/scigolib/hipo/endian"
	"github.com/scigolib/hipo/file"
	"github.com/scigolib/hipo/format"
	"github.com/scigolib/hipo/header"
	"github.com/scigolib/hipo/node"
	"github.com/scigolib/hipo/record"
)

// NativeByteOrder is the byte-order engine matching the host's native
// endianness; most writers should use this unless interoperating with a
// file written under a different order.
var NativeByteOrder = nativeByteOrder()

func nativeByteOrder() endian.EndianEngine {
	if endian.IsNativeBigEndian() {
		return endian.GetBigEndianEngine()
	}

	return endian.GetLittleEndianEngine()
}

// NewAssembler creates a FileAssembler that writes records under order,
// ready for Open. opts configure the internal RecordBuilder caps (event
// count, payload size, checksum).
func NewAssembler(order endian.EndianEngine, opts ...record.Option) *file.Assembler {
	return file.NewAssembler(order, opts...)
}

// NewBufferSink creates an in-memory Sink for building a complete file in
// a buffer rather than on disk.
func NewBufferSink() *file.BufferSink {
	return file.NewBufferSink()
}

// OpenFile parses a complete file's bytes (already read into memory, or
// mmap'd) and builds an event index, using the trailer's record-length
// index when present and falling back to a linear record-header scan
// otherwise.
func OpenFile(source []byte) (*file.Indexer, error) {
	return file.Open(source)
}

// NewRecordBuilder creates a RecordBuilder for accumulating events into a
// single record, independent of a FileAssembler.
func NewRecordBuilder(order endian.EndianEngine, opts ...record.Option) *record.RecordBuilder {
	return record.NewRecordBuilder(order, opts...)
}

// NewRecordReader creates a RecordReader for parsing records out of an
// arbitrary buffer at arbitrary offsets.
func NewRecordReader() *record.RecordReader {
	return record.NewRecordReader()
}

// ScanEvent parses a single event's bytes (the content framed by a
// record's event-length index, with no record header of its own) into a
// Tree of banks/segments/tagsegments. eventPlace records the event's
// ordinal position within its record; it is stored on the root node only,
// so callers trace a node back to its source event through the root.
func ScanEvent(data []byte, order endian.EndianEngine, eventPlace int) (*node.Tree, error) {
	return node.Scan(data, order, eventPlace)
}

// NewEditor creates a BufferEditor over tree. growable must be true if
// Insert may need to grow the tree's backing buffer beyond its current
// capacity.
func NewEditor(tree *node.Tree, growable bool) *editor.BufferEditor {
	return editor.New(tree, growable)
}

// CompressionKind re-exports format.CompressionKind so callers rarely need
// to import the format package directly for this one type.
type CompressionKind = format.CompressionKind

// Compression kind constants, re-exported from format.
const (
	CompressionNone    = format.CompressionNone
	CompressionLZ4     = format.CompressionLZ4
	CompressionLZ4Best = format.CompressionLZ4Best
	CompressionGZIP    = format.CompressionGZIP
)

// HeaderSize is the fixed size, in bytes, of both the record header and
// the file header.
const HeaderSize = header.Size
