package quality

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_chainwithdrawfront01(tst *testing.T) {
	chk.PrintTitle("chainwithdrawfront01. withdraw from the oldest (exit) end")

	ch := chain{{V: 10, C: 1.0}, {V: 10, C: 2.0}}
	ch, vsum, c := ch.withdrawFront(15)

	chk.Scalar(tst, "vsum", 1e-12, vsum, 15)
	chk.Scalar(tst, "c", 1e-12, c, (10*1.0+5*2.0)/15)
	if ch.volume() != 5 {
		tst.Fatalf("expected 5 remaining, got %v", ch.volume())
	}
}

func Test_chainwithdrawback01(tst *testing.T) {
	chk.PrintTitle("chainwithdrawback01. withdraw from the newest (entry) end")

	ch := chain{{V: 10, C: 1.0}, {V: 10, C: 2.0}}
	ch, vsum, c := ch.withdrawBack(15)

	chk.Scalar(tst, "vsum", 1e-12, vsum, 15)
	chk.Scalar(tst, "c", 1e-12, c, (10*2.0+5*1.0)/15)
	if ch.volume() != 5 {
		tst.Fatalf("expected 5 remaining, got %v", ch.volume())
	}
}

func Test_chainmerge01(tst *testing.T) {
	chk.PrintTitle("chainmerge01. entries within tolerance merge instead of appending")

	ch := chain{{V: 10, C: 1.0}}
	ch = ch.mergeOrAppend(5, 1.0000001, 1e-4)
	if len(ch) != 1 {
		tst.Fatalf("expected merge into one segment, got %d", len(ch))
	}
	chk.Scalar(tst, "volume", 1e-12, ch[0].V, 15)

	ch = ch.mergeOrAppend(5, 9.0, 1e-4)
	if len(ch) != 2 {
		tst.Fatalf("expected a new segment for a dissimilar concentration, got %d", len(ch))
	}
}
