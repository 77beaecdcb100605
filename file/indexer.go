package file

import (
	"fmt"
	"sort"

	"github.com/scigolib/hipo/errs"
	"github.com/scigolib/hipo/header"
	"github.com/scigolib/hipo/record"
)

// recordEntry is one row of the record table: a record's byte position in
// the source, its total length, and the cumulative event count through
// (and including) this record.
type recordEntry struct {
	position       int64
	length         uint32
	eventCount     uint32
	cumulativeUpTo uint32 // sum of eventCount for every record up to and including this one
}

// Indexer parses a file's header and builds an event-number-to-record
// table, either from the trailer's record index (fast path) or by
// scanning every record header linearly (fallback for trailer-less files).
type Indexer struct {
	source []byte
	fh     *header.FileHeader
	order  *record.RecordReader

	records []recordEntry
	cursor  int // index of the event last returned by GetNext/GetPrev; -1 before the first
}

// Open parses the file header at the start of source and builds the
// record table.
func Open(source []byte) (*Indexer, error) {
	if len(source) < header.Size {
		return nil, fmt.Errorf("%w: file shorter than a file header", errs.OutOfBounds)
	}

	fh, err := header.ParseFileHeader(source[:header.Size])
	if err != nil {
		return nil, err
	}

	idx := &Indexer{source: source, fh: fh, order: record.NewRecordReader(), cursor: -1}

	if fh.TrailerPosition() != 0 && fh.IndexLength() > 0 {
		if err := idx.loadFromTrailerIndex(); err != nil {
			return nil, err
		}
	} else {
		if err := idx.loadByLinearScan(); err != nil {
			return nil, err
		}
	}

	return idx, nil
}

func (idx *Indexer) loadFromTrailerIndex() error {
	fh := idx.fh
	start := int64(fh.TrailerPosition())

	trailerHeader, err := idx.parseRecordHeaderAt(start)
	if err != nil {
		return err
	}

	indexStart := start + int64(trailerHeader.Length())
	indexLen := int(fh.IndexLength())

	if indexStart+int64(indexLen) > int64(len(idx.source)) {
		return fmt.Errorf("%w: %w", errs.CorruptData, errs.ErrTrailerIndexShort)
	}

	order := fh.ByteOrder()
	pairCount := indexLen / 8

	idx.records = make([]recordEntry, 0, pairCount)

	pos := int64(header.Size) + int64(fh.UserHeaderPaddedLength())

	var cumulative uint32
	for i := 0; i < pairCount; i++ {
		off := indexStart + int64(i*8)
		length := order.Uint32(idx.source[off : off+4])
		eventCount := order.Uint32(idx.source[off+4 : off+8])

		cumulative += eventCount
		idx.records = append(idx.records, recordEntry{
			position:       pos,
			length:         length,
			eventCount:     eventCount,
			cumulativeUpTo: cumulative,
		})

		pos += int64(length)
	}

	return nil
}

func (idx *Indexer) loadByLinearScan() error {
	pos := int64(header.Size) + int64(idx.fh.UserHeaderPaddedLength())

	var cumulative uint32
	for pos < int64(len(idx.source)) {
		rh, err := idx.parseRecordHeaderAt(pos)
		if err != nil {
			return err
		}

		cumulative += rh.EventCount()
		idx.records = append(idx.records, recordEntry{
			position:       pos,
			length:         rh.Length(),
			eventCount:     rh.EventCount(),
			cumulativeUpTo: cumulative,
		})

		pos += int64(rh.Length())

		if rh.IsLastRecord() {
			break
		}
	}

	return nil
}

func (idx *Indexer) parseRecordHeaderAt(pos int64) (*header.RecordHeader, error) {
	if pos < 0 || pos+int64(header.Size) > int64(len(idx.source)) {
		return nil, fmt.Errorf("%w: record header at %d exceeds source", errs.OutOfBounds, pos)
	}

	return header.ParseRecordHeader(idx.source[pos : pos+int64(header.Size)])
}

// EventCount returns the total number of events across every record.
func (idx *Indexer) EventCount() uint32 {
	if len(idx.records) == 0 {
		return 0
	}

	return idx.records[len(idx.records)-1].cumulativeUpTo
}

// RecordCount returns the number of data records (the trailer, if any, is
// excluded from this count).
func (idx *Indexer) RecordCount() int {
	n := len(idx.records)
	if n > 0 && idx.records[n-1].eventCount == 0 {
		return n - 1
	}

	return n
}

// GetEvent returns the byte slice for the n-th event (0-based) across the
// whole file, lazily reading its owning record.
func (idx *Indexer) GetEvent(n int) ([]byte, error) {
	if n < 0 || uint32(n) >= idx.EventCount() {
		return nil, fmt.Errorf("%w: %w (index %d, count %d)", errs.OutOfBounds, errs.ErrEventIndexOOR, n, idx.EventCount())
	}

	recIdx := sort.Search(len(idx.records), func(i int) bool {
		return idx.records[i].cumulativeUpTo > uint32(n)
	})

	rec := idx.records[recIdx]
	localIdx := uint32(n) - (rec.cumulativeUpTo - rec.eventCount)

	view, err := idx.order.ReadRecord(idx.source, int(rec.position))
	if err != nil {
		return nil, err
	}

	return view.Event(int(localIdx))
}

// GetNextEvent advances the cursor and returns the event it now points to.
// The cursor starts one before the first event, so the first call returns
// event 0.
func (idx *Indexer) GetNextEvent() ([]byte, error) {
	next := idx.cursor + 1

	ev, err := idx.GetEvent(next)
	if err != nil {
		return nil, err
	}

	idx.cursor = next

	return ev, nil
}

// GetPrevEvent moves the cursor back one position and returns the event it
// now points to.
func (idx *Indexer) GetPrevEvent() ([]byte, error) {
	prev := idx.cursor - 1

	ev, err := idx.GetEvent(prev)
	if err != nil {
		return nil, err
	}

	idx.cursor = prev

	return ev, nil
}

// FileHeader returns the parsed file header.
func (idx *Indexer) FileHeader() *header.FileHeader { return idx.fh }
