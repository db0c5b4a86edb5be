package quality

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/waternet/net"
	"github.com/cpmech/waternet/wntest"
)

func Test_massbalance01(tst *testing.T) {
	chk.PrintTitle("massbalance01. uniform initial concentration is unchanged by zero-reaction transport")

	n, opt := wntest.ChlorineMassBalance()
	l, err := n.LinkByID("P1")
	if err != nil {
		tst.Fatal(err)
	}
	l.Flow = 500.0 / 448.831
	l.Status = net.Open

	e := NewEngine(n, opt)
	e.UpdateHydraulics()

	htime := 0.0
	for i := 0; i < 12; i++ {
		e.Step(opt.QualityStep, htime)
		htime += opt.QualityStep
	}

	chk.Scalar(tst, "junction quality", 1e-6, e.NodeQuality(1), 1.0)
	chk.Scalar(tst, "reacted mass", 1e-9, e.Mass.Reacted, 0.0)
	chk.Scalar(tst, "tank reacted mass", 1e-9, e.Mass.TankRx, 0.0)
}
