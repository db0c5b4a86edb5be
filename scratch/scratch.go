// Package scratch implements the binary hydraulics scratch file a run
// writes while stepping through time and a report pass rereads: a fixed
// prologue describing the network's size followed by one fixed-size
// record per saved hydraulic step. The format mirrors EPANET's own .hyd
// scratch file, trading a textual or self-describing encoding for direct
// fwrite/fread-style record access.
package scratch

import (
	"encoding/binary"
	"io"

	"github.com/cpmech/waternet/errs"
)

const magic uint32 = 0x57544e31 // "WTN1"

// Prologue records the network dimensions a scratch file was written for;
// a reader uses it to size every per-step record without looking anything
// up in the network itself.
type Prologue struct {
	Nnodes int32
	Nlinks int32
	Ntanks int32
}

// Writer appends fixed-size step records to an underlying stream after
// having written the prologue once at construction.
type Writer struct {
	w   io.Writer
	pro Prologue
}

// NewWriter writes the prologue immediately and returns a Writer ready to
// append step records.
func NewWriter(w io.Writer, pro Prologue) (*Writer, error) {
	if err := binary.Write(w, binary.LittleEndian, magic); err != nil {
		return nil, errs.New(errs.IO, "scratch: write magic: %v", err)
	}
	if err := binary.Write(w, binary.LittleEndian, pro); err != nil {
		return nil, errs.New(errs.IO, "scratch: write prologue: %v", err)
	}
	return &Writer{w: w, pro: pro}, nil
}

// StepRecord is one saved hydraulic step: the clock time it was solved at,
// every node's head, every link's flow, and every link's discrete status
// packed as an int32.
type StepRecord struct {
	Time     float64
	Head     []float64
	Flow     []float64
	Status   []int32
	TankVol  []float64
}

// WriteStep appends one step record. The caller must supply slices sized
// exactly to the prologue's Nnodes/Nlinks/Ntanks.
func (w *Writer) WriteStep(r StepRecord) error {
	if int32(len(r.Head)) != w.pro.Nnodes || int32(len(r.Flow)) != w.pro.Nlinks ||
		int32(len(r.Status)) != w.pro.Nlinks || int32(len(r.TankVol)) != w.pro.Ntanks {
		return errs.New(errs.InvalidArgument, "scratch: step record size mismatch with prologue")
	}
	fields := []interface{}{r.Time, r.Head, r.Flow, r.Status, r.TankVol}
	for _, f := range fields {
		if err := binary.Write(w.w, binary.LittleEndian, f); err != nil {
			return errs.New(errs.IO, "scratch: write step: %v", err)
		}
	}
	return nil
}

// Reader replays step records back out of a stream previously produced by
// Writer.
type Reader struct {
	r   io.Reader
	Pro Prologue
}

// NewReader reads and validates the prologue, returning a Reader
// positioned at the first step record.
func NewReader(r io.Reader) (*Reader, error) {
	var m uint32
	if err := binary.Read(r, binary.LittleEndian, &m); err != nil {
		return nil, errs.New(errs.IO, "scratch: read magic: %v", err)
	}
	if m != magic {
		return nil, errs.New(errs.InvalidArgument, "scratch: not a waternet scratch file")
	}
	var pro Prologue
	if err := binary.Read(r, binary.LittleEndian, &pro); err != nil {
		return nil, errs.New(errs.IO, "scratch: read prologue: %v", err)
	}
	return &Reader{r: r, Pro: pro}, nil
}

// ReadStep reads the next step record, returning io.EOF once the stream is
// exhausted.
func (rd *Reader) ReadStep() (StepRecord, error) {
	var rec StepRecord
	rec.Head = make([]float64, rd.Pro.Nnodes)
	rec.Flow = make([]float64, rd.Pro.Nlinks)
	rec.Status = make([]int32, rd.Pro.Nlinks)
	rec.TankVol = make([]float64, rd.Pro.Ntanks)

	if err := binary.Read(rd.r, binary.LittleEndian, &rec.Time); err != nil {
		return StepRecord{}, err
	}
	fields := []interface{}{rec.Head, rec.Flow, rec.Status, rec.TankVol}
	for _, f := range fields {
		if err := binary.Read(rd.r, binary.LittleEndian, f); err != nil {
			return StepRecord{}, errs.New(errs.IO, "scratch: read step: %v", err)
		}
	}
	return rec, nil
}
