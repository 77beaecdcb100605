// Package errs defines the sentinel error values used across the hipo core.
//
// Errors the core returns wrap a kind marker together with a specific
// sentinel, as fmt.Errorf("%w: %w", errs.Kind, errs.ErrX) plus any detail,
// or a kind marker alone, so callers can use errors.Is against either the
// specific sentinel or, for broader handling, one of the six kind markers
// (BadFormat, CorruptData, OutOfBounds, InsufficientSpace, InvalidState,
// InvalidArgument).
package errs

import "errors"

// Kind markers. Call sites wrap a specific sentinel together with the kind
// it is grouped under below (a second %w in the same fmt.Errorf), or return
// a kind marker alone when no finer-grained cause applies.
var (
	BadFormat         = errors.New("bad format")
	CorruptData       = errors.New("corrupt data")
	OutOfBounds       = errors.New("out of bounds")
	InsufficientSpace = errors.New("insufficient space")
	InvalidState      = errors.New("invalid state")
	InvalidArgument   = errors.New("invalid argument")
)

// BadFormat causes.
var (
	ErrBadMagic            = errors.New("magic number mismatch")
	ErrUnsupportedVersion  = errors.New("unsupported format version")
	ErrInvalidHeaderSize   = errors.New("invalid header size")
	ErrInvalidStructureLen = errors.New("structure length out of range")
	ErrUnknownDataType     = errors.New("data-type code not in defined set")
	ErrUnknownStructKind   = errors.New("structure kind not bank/segment/tagsegment")
)

// CorruptData causes.
var (
	ErrDecompressFailed  = errors.New("decompression failed")
	ErrLengthMismatch    = errors.New("length fields contradict each other")
	ErrCorruptChecksum   = errors.New("payload checksum mismatch")
	ErrTruncatedPayload  = errors.New("payload shorter than declared length")
	ErrTrailerIndexShort = errors.New("trailer index truncated")
)

// OutOfBounds causes.
var (
	ErrOutOfRange     = errors.New("position exceeds buffer limit")
	ErrEventIndexOOR  = errors.New("event index out of range")
	ErrRecordIndexOOR = errors.New("record index out of range")
)

// InsufficientSpace causes.
var (
	ErrWouldExceedCount = errors.New("would exceed max event count")
	ErrWouldExceedSize  = errors.New("would exceed max payload size")
	ErrBufferFixedCap   = errors.New("caller-provided buffer cannot grow")
	ErrDestTooSmall     = errors.New("output buffer too small for compressed data")
)

// InvalidState causes.
var (
	ErrNotOpen             = errors.New("object not opened")
	ErrAlreadyOpen         = errors.New("object already opened")
	ErrClosed              = errors.New("object already closed")
	ErrNodeObsolete        = errors.New("node is obsolete")
	ErrTrailerAlreadyExist = errors.New("file already has a trailer")
	ErrBuilderNotReset     = errors.New("builder must be reset before reuse")
)

// InvalidArgument causes.
var (
	ErrEmptyInput         = errors.New("empty input where non-empty required")
	ErrNilBuffer          = errors.New("nil buffer")
	ErrByteOrderMismatch  = errors.New("byte order mismatch between structure and target")
	ErrIncompatibleParent = errors.New("structure type incompatible with parent data-type")
	ErrInvalidCompression = errors.New("invalid compression kind")
)
