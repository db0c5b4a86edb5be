package scratch

import (
	"bytes"
	"io"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_roundtrip01(tst *testing.T) {
	chk.PrintTitle("roundtrip01. write then read back two step records")

	var buf bytes.Buffer
	pro := Prologue{Nnodes: 2, Nlinks: 1, Ntanks: 1}
	w, err := NewWriter(&buf, pro)
	if err != nil {
		tst.Fatal(err)
	}

	recs := []StepRecord{
		{Time: 0, Head: []float64{100, 90}, Flow: []float64{5}, Status: []int32{3}, TankVol: []float64{500}},
		{Time: 3600, Head: []float64{100, 88}, Flow: []float64{5.2}, Status: []int32{3}, TankVol: []float64{518720}},
	}
	for _, r := range recs {
		if err := w.WriteStep(r); err != nil {
			tst.Fatal(err)
		}
	}

	rd, err := NewReader(&buf)
	if err != nil {
		tst.Fatal(err)
	}
	if rd.Pro != pro {
		tst.Fatalf("prologue mismatch: got %+v want %+v", rd.Pro, pro)
	}

	for i, want := range recs {
		got, err := rd.ReadStep()
		if err != nil {
			tst.Fatal(err)
		}
		chk.Scalar(tst, "time", 1e-12, got.Time, want.Time)
		chk.Scalar(tst, "head[1]", 1e-12, got.Head[1], want.Head[1])
		chk.Scalar(tst, "flow[0]", 1e-12, got.Flow[0], want.Flow[0])
		if got.Status[0] != want.Status[0] {
			tst.Fatalf("step %d: status mismatch", i)
		}
	}

	if _, err := rd.ReadStep(); err != io.EOF {
		tst.Fatalf("expected io.EOF at end of stream, got %v", err)
	}
}
