package timestep

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_untilnextboundary01(tst *testing.T) {
	chk.PrintTitle("untilnextboundary01. mid-interval time returns the remaining distance")

	chk.Scalar(tst, "remaining", 1e-12, untilNextBoundary(1300, 3600), 2300)
}

func Test_untilnextboundary02(tst *testing.T) {
	chk.PrintTitle("untilnextboundary02. time sitting exactly on a boundary returns a full step")

	chk.Scalar(tst, "remaining", 1e-12, untilNextBoundary(7200, 3600), 3600)
}

func Test_untilnextboundary03(tst *testing.T) {
	chk.PrintTitle("untilnextboundary03. a disabled (zero) step never bounds the clock")

	if untilNextBoundary(1000, 0) < 1e300 {
		tst.Fatal("expected an effectively unbounded remaining time")
	}
}
