package endian

import "encoding/binary"

// DetectByteOrder reads the 4 bytes at data[offset:offset+4] under both byte
// orders and returns whichever one decodes to the expected magic value.
//
// Returns ok=false if neither order matches (caller should report BadFormat).
func DetectByteOrder(data []byte, offset int, magic uint32) (binary.ByteOrder, bool) {
	if offset < 0 || offset+4 > len(data) {
		return nil, false
	}

	word := data[offset : offset+4]
	if binary.LittleEndian.Uint32(word) == magic {
		return binary.LittleEndian, true
	}
	if binary.BigEndian.Uint32(word) == magic {
		return binary.BigEndian, true
	}

	return nil, false
}
