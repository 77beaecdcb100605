package file

import (
	"fmt"
	"sync"

	"github.com/scigolib/hipo/endian"
	"github.com/scigolib/hipo/errs"
	"github.com/scigolib/hipo/format"
	"github.com/scigolib/hipo/header"
	"github.com/scigolib/hipo/record"
)

// State is the FileAssembler's lifecycle position.
type State uint8

const (
	Idle State = iota
	Open
	Writing
	Closed
)

// Assembler writes a complete HIPO/EVIO file to a Sink: a file header,
// optional dictionary/first-event user-header, a sequence of records, and
// an optional trailer with record index.
//
// Writing is pipelined with at most one in-flight write: two RecordBuilder
// instances alternate, so the next record is filled in memory while the
// previous one's bytes are written to the sink. Not safe for concurrent
// use from multiple goroutines.
type Assembler struct {
	state State
	sink  Sink
	order endian.EndianEngine

	fh  *header.FileHeader
	pos int64

	builders  [2]*record.RecordBuilder
	activeIdx int

	recordNumber uint32

	recordLengths     []uint32
	recordEventCounts []uint32

	withTrailerIndex bool

	writeWG  sync.WaitGroup
	writeErr error

	compression format.CompressionKind
	opts        []record.Option
}

// NewAssembler creates an Assembler in the Idle state. opts are applied to
// every internal RecordBuilder (caps on event count / payload bytes,
// checksum).
func NewAssembler(order endian.EndianEngine, opts ...record.Option) *Assembler {
	return &Assembler{order: order, opts: opts}
}

// SetCompression sets the compression kind applied to every record built
// from this point; must be called before Open.
func (a *Assembler) SetCompression(kind format.CompressionKind) error {
	if a.state != Idle {
		return fmt.Errorf("%w: compression must be set before Open", errs.InvalidState)
	}

	a.compression = kind

	return nil
}

// SetTrailerIndex controls whether Close writes a record-length/event-count
// index immediately after the trailer record.
func (a *Assembler) SetTrailerIndex(enabled bool) { a.withTrailerIndex = enabled }

func padTo4(n int) int { return (n + 3) &^ 3 }

// Open writes the file header, followed by a padded user-header built from
// dictXML/firstEvent (either may be empty; both empty means no user-header
// at all), and transitions to Writing.
func (a *Assembler) Open(sink Sink, dictXML, firstEvent []byte) error {
	if a.state != Idle {
		return fmt.Errorf("%w: %w", errs.InvalidState, errs.ErrAlreadyOpen)
	}

	fh := header.NewFileHeader(a.order)

	var userHeader []byte
	if len(dictXML) > 0 || len(firstEvent) > 0 {
		var err error

		userHeader, err = record.BuildDictionaryRecord(a.order, dictXML, firstEvent)
		if err != nil {
			return err
		}
	}

	fh.SetUserHeaderLength(uint32(len(userHeader)))

	if _, err := sink.Write(fh.Bytes()); err != nil {
		return err
	}

	paddedLen := padTo4(len(userHeader))
	if paddedLen > 0 {
		padded := make([]byte, paddedLen)
		copy(padded, userHeader)

		if _, err := sink.Write(padded); err != nil {
			return err
		}
	}

	a.sink = sink
	a.fh = fh
	a.pos = int64(header.Size) + int64(paddedLen)

	a.builders[0] = record.NewRecordBuilder(a.order, a.opts...)
	a.builders[1] = record.NewRecordBuilder(a.order, a.opts...)

	if a.compression != format.CompressionNone {
		for _, b := range a.builders {
			if err := b.SetCompression(a.compression); err != nil {
				return err
			}
		}
	}

	a.activeIdx = 0
	a.state = Writing

	return nil
}

// AddEvent appends event bytes to the current record, flushing and
// swapping to a fresh record when the current one refuses the add.
func (a *Assembler) AddEvent(data []byte) error {
	if a.state != Writing {
		return fmt.Errorf("%w: %w", errs.InvalidState, errs.ErrNotOpen)
	}

	cur := a.builders[a.activeIdx]

	res, err := cur.AddEvent(data)
	if err != nil {
		return err
	}

	if res == record.Added {
		return nil
	}

	if err := a.flushCurrent(); err != nil {
		return err
	}

	cur = a.builders[a.activeIdx]

	res, err = cur.AddEvent(data)
	if err != nil {
		return err
	}

	if res != record.Added {
		return fmt.Errorf("%w: event refused even by a freshly reset record", errs.InsufficientSpace)
	}

	return nil
}

// WriteRecord writes an already-built record's bytes directly to the sink,
// bypassing the internal builder. eventCount is recorded for the trailer
// index.
func (a *Assembler) WriteRecord(prebuilt []byte, eventCount uint32) error {
	if a.state != Writing {
		return fmt.Errorf("%w: %w", errs.InvalidState, errs.ErrNotOpen)
	}

	a.writeWG.Wait()
	if a.writeErr != nil {
		return a.writeErr
	}

	a.dispatchWrite(prebuilt, eventCount)
	a.recordNumber++

	return nil
}

// flushCurrent builds the active record (if non-empty), dispatches its
// write, and swaps to the other builder slot, resetting it for reuse.
func (a *Assembler) flushCurrent() error {
	cur := a.builders[a.activeIdx]
	if cur.IsEmpty() {
		return nil
	}

	cur.SetRecordNumber(a.recordNumber)

	out, err := cur.Build()
	if err != nil {
		return err
	}

	eventCount := uint32(cur.EventCount())

	a.writeWG.Wait()
	if a.writeErr != nil {
		return a.writeErr
	}

	a.dispatchWrite(out, eventCount)
	a.recordNumber++

	nextIdx := 1 - a.activeIdx
	a.builders[nextIdx].Reset()
	a.activeIdx = nextIdx

	return nil
}

// dispatchWrite writes out to the sink at the assembler's current position
// in a background goroutine, advancing pos immediately (the position is
// known synchronously; only the I/O itself is asynchronous) and recording
// the record's length/event-count for the trailer index.
func (a *Assembler) dispatchWrite(out []byte, eventCount uint32) {
	pos := a.pos
	a.pos += int64(len(out))

	a.recordLengths = append(a.recordLengths, uint32(len(out)))
	a.recordEventCounts = append(a.recordEventCounts, eventCount)

	a.writeWG.Add(1)
	go func() {
		defer a.writeWG.Done()

		if _, err := a.sink.WriteAt(out, pos); err != nil {
			a.writeErr = err
		}
	}()
}

// Close finalizes any non-empty partial record, optionally writes a
// trailer record (zero events, is-last-record set) followed by the
// record-length index, then patches the file header's record-count and
// trailer-position fields in place.
func (a *Assembler) Close() error {
	if a.state != Writing {
		return fmt.Errorf("%w: %w", errs.InvalidState, errs.ErrNotOpen)
	}

	if err := a.flushCurrent(); err != nil {
		return err
	}

	a.writeWG.Wait()
	if a.writeErr != nil {
		return a.writeErr
	}

	var trailerPos uint64

	recordCount := a.recordNumber

	if a.withTrailerIndex {
		trailerPos = uint64(a.pos)

		trailer := record.NewRecordBuilder(a.order, a.opts...)
		trailer.SetRecordNumber(a.recordNumber)

		if a.compression != format.CompressionNone {
			if err := trailer.SetCompression(a.compression); err != nil {
				return err
			}
		}

		out, err := trailer.Build()
		if err != nil {
			return err
		}

		rh, err := header.ParseRecordHeader(out[:header.Size])
		if err != nil {
			return err
		}

		rh.SetIsLastRecord(true)
		copy(out[:header.Size], rh.Bytes())

		if _, err := a.sink.Write(out); err != nil {
			return err
		}

		a.recordLengths = append(a.recordLengths, uint32(len(out)))
		a.recordEventCounts = append(a.recordEventCounts, 0)
		a.pos += int64(len(out))
		a.recordNumber++

		idx := make([]byte, 8*len(a.recordLengths))
		for i := range a.recordLengths {
			a.order.PutUint32(idx[i*8:i*8+4], a.recordLengths[i])
			a.order.PutUint32(idx[i*8+4:i*8+8], a.recordEventCounts[i])
		}

		if _, err := a.sink.Write(idx); err != nil {
			return err
		}

		a.fh.SetIndexLength(uint32(len(idx)))
		a.pos += int64(len(idx))
	}

	a.fh.SetRecordCount(recordCount)
	a.fh.SetTrailerPosition(trailerPos)

	if _, err := a.sink.WriteAt(a.fh.Bytes(), 0); err != nil {
		return err
	}

	a.state = Closed

	return nil
}

// State returns the assembler's current lifecycle state.
func (a *Assembler) State() State { return a.state }
