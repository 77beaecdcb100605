// Package format holds small shared value types used across the hipo core.
package format

// CompressionKind identifies the compression algorithm applied to a
// record's index+user-header+payload blob. Stored in the top 4 bits of a
// record/file header's compressed-data-length word.
type CompressionKind uint8

const (
	CompressionNone    CompressionKind = 0 // CompressionNone represents no compression.
	CompressionLZ4     CompressionKind = 1 // CompressionLZ4 represents fast-mode LZ4 block compression.
	CompressionLZ4Best CompressionKind = 2 // CompressionLZ4Best represents high-compression-mode LZ4.
	CompressionGZIP    CompressionKind = 3 // CompressionGZIP represents GZIP/DEFLATE compression.
)

func (k CompressionKind) String() string {
	switch k {
	case CompressionNone:
		return "None"
	case CompressionLZ4:
		return "LZ4"
	case CompressionLZ4Best:
		return "LZ4Best"
	case CompressionGZIP:
		return "GZIP"
	default:
		return "Unknown"
	}
}

// StructKind is one of the three structure kinds a node can describe.
type StructKind uint8

const (
	KindBank StructKind = iota
	KindSegment
	KindTagSegment
)

func (k StructKind) String() string {
	switch k {
	case KindBank:
		return "Bank"
	case KindSegment:
		return "Segment"
	case KindTagSegment:
		return "TagSegment"
	default:
		return "Unknown"
	}
}

// DataType identifies what a structure's data region holds: one of the
// container kinds (nested banks/segments/tagsegments) or a leaf primitive
// kind. Values follow the EVIO/HIPO convention.
type DataType uint8

const (
	DataTypeUnknown32  DataType = 0x0
	DataTypeUint32     DataType = 0x1
	DataTypeFloat32    DataType = 0x2
	DataTypeCharStar8  DataType = 0x3
	DataTypeShort16    DataType = 0x4
	DataTypeUshort16   DataType = 0x5
	DataTypeChar8      DataType = 0x6
	DataTypeUchar8     DataType = 0x7
	DataTypeDouble64   DataType = 0x8
	DataTypeLong64     DataType = 0x9
	DataTypeUlong64    DataType = 0xA
	DataTypeInt32      DataType = 0xB
	DataTypeTagSegment  DataType = 0xC
	DataTypeSegment     DataType = 0xD
	DataTypeBank        DataType = 0xE
	DataTypeComposite   DataType = 0xF
	DataTypeAlsoBank    DataType = 0x10 // legacy alias of DataTypeBank
	DataTypeAlsoSegment DataType = 0x20 // legacy alias of DataTypeSegment
)

// IsContainer reports whether structures of this data-type hold nested
// structures rather than leaf primitive data.
func (d DataType) IsContainer() bool {
	switch d {
	case DataTypeBank, DataTypeAlsoBank,
		DataTypeSegment, DataTypeAlsoSegment,
		DataTypeTagSegment:
		return true
	default:
		return false
	}
}

// ChildKind returns the structure kind a container's children are parsed
// as, given the container's own data-type code.
func (d DataType) ChildKind() StructKind {
	switch d {
	case DataTypeBank, DataTypeAlsoBank:
		return KindBank
	case DataTypeSegment, DataTypeAlsoSegment:
		return KindSegment
	case DataTypeTagSegment:
		return KindTagSegment
	default:
		return KindBank
	}
}

// ElementSize returns the byte size of one leaf element for this data
// type, or 0 for container / variable-size types (string, composite).
func (d DataType) ElementSize() int {
	switch d {
	case DataTypeChar8, DataTypeUchar8, DataTypeCharStar8:
		return 1
	case DataTypeShort16, DataTypeUshort16:
		return 2
	case DataTypeUint32, DataTypeFloat32, DataTypeInt32, DataTypeUnknown32:
		return 4
	case DataTypeDouble64, DataTypeLong64, DataTypeUlong64:
		return 8
	default:
		return 0
	}
}

// IsDefined reports whether d is one of the data-type codes the format
// defines. A structure header claiming any other 6-bit (bank/segment) code
// is malformed; tag-segments only ever encode a 4-bit code, which is
// always within the defined range.
func (d DataType) IsDefined() bool {
	switch d {
	case DataTypeUnknown32, DataTypeUint32, DataTypeFloat32, DataTypeCharStar8,
		DataTypeShort16, DataTypeUshort16, DataTypeChar8, DataTypeUchar8,
		DataTypeDouble64, DataTypeLong64, DataTypeUlong64, DataTypeInt32,
		DataTypeTagSegment, DataTypeSegment, DataTypeBank, DataTypeComposite,
		DataTypeAlsoBank, DataTypeAlsoSegment:
		return true
	default:
		return false
	}
}
