package record

import (
	"fmt"

	"github.com/scigolib/hipo/endian"
	"github.com/scigolib/hipo/errs"
	"github.com/scigolib/hipo/header"
)

// RecordView exposes event-by-event access to a parsed, decompressed
// record. Its backing region either aliases the source buffer directly
// (uncompressed records) or owns a freshly decompressed scratch buffer.
type RecordView struct {
	Header *header.RecordHeader

	order  endian.EndianEngine
	region []byte // index + padded user-header + events, decompressed

	indexLen         int
	userHeaderLen    int
	userHeaderPadded int

	eventOffsets []uint32 // cumulative start offsets into region (past index and padded user-header), len = eventCount+1
}

func newRecordView(order endian.EndianEngine, region []byte, rh *header.RecordHeader) *RecordView {
	indexLen := int(rh.IndexLength())
	userHeaderLen := int(rh.UserHeaderLength())

	v := &RecordView{
		Header:           rh,
		order:            order,
		region:           region,
		indexLen:         indexLen,
		userHeaderLen:    userHeaderLen,
		userHeaderPadded: padTo4(userHeaderLen),
	}

	eventCount := int(rh.EventCount())
	v.eventOffsets = make([]uint32, eventCount+1)

	payloadStart := indexLen + v.userHeaderPadded
	offset := uint32(payloadStart)
	for i := 0; i < eventCount; i++ {
		v.eventOffsets[i] = offset
		length := order.Uint32(region[i*4 : i*4+4])
		offset += length
	}
	v.eventOffsets[eventCount] = offset

	return v
}

// EventCount returns the number of events in the record.
func (v *RecordView) EventCount() int { return int(v.Header.EventCount()) }

// EventLength returns the unpadded byte length of event i.
func (v *RecordView) EventLength(i int) (uint32, error) {
	if i < 0 || i >= v.EventCount() {
		return 0, fmt.Errorf("%w: %w (index %d, count %d)", errs.OutOfBounds, errs.ErrEventIndexOOR, i, v.EventCount())
	}

	return v.eventOffsets[i+1] - v.eventOffsets[i], nil
}

// Event returns the byte slice for event i, aliasing the view's backing
// region.
func (v *RecordView) Event(i int) ([]byte, error) {
	if i < 0 || i >= v.EventCount() {
		return nil, fmt.Errorf("%w: %w (index %d, count %d)", errs.OutOfBounds, errs.ErrEventIndexOOR, i, v.EventCount())
	}

	return v.region[v.eventOffsets[i]:v.eventOffsets[i+1]], nil
}

// UserHeader returns the record's user-header bytes, or nil if the record
// has none.
func (v *RecordView) UserHeader() []byte {
	if v.userHeaderLen == 0 {
		return nil
	}

	start := v.indexLen

	return v.region[start : start+v.userHeaderLen]
}

// RecordNumber returns the record's sequence number.
func (v *RecordView) RecordNumber() uint32 { return v.Header.RecordNumber() }
