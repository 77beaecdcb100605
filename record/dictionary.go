package record

import (
	"github.com/scigolib/hipo/endian"
)

// BuildDictionaryRecord builds a complete, uncompressed inner record
// carrying an XML dictionary and/or a first-event payload as its sole
// event(s), for installation as a file's user-header.
//
// dictXML and firstEvent are each optional (nil/empty skips that event);
// at least one must be non-empty. The dictionary's XML text is treated as
// opaque bytes: parsing it is explicitly out of scope for this library.
func BuildDictionaryRecord(order endian.EndianEngine, dictXML, firstEvent []byte) ([]byte, error) {
	b := NewRecordBuilder(order)
	defer b.Reset()

	if len(dictXML) > 0 {
		if _, err := b.AddEvent(dictXML); err != nil {
			return nil, err
		}
	}

	if len(firstEvent) > 0 {
		if _, err := b.AddEvent(firstEvent); err != nil {
			return nil, err
		}
	}

	return b.Build()
}
