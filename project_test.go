package waternet

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/waternet/net"
	"github.com/cpmech/waternet/wntest"
)

func Test_singlepipe01(tst *testing.T) {
	chk.PrintTitle("singlepipe01. reservoir-pipe-junction steady flow")

	n, opt := wntest.SinglePipe()
	p := New(nil)
	if err := p.Open(n, opt); err != nil {
		tst.Fatal(err)
	}
	if err := p.OpenH(); err != nil {
		tst.Fatal(err)
	}
	if _, err := p.Step(); err != nil {
		tst.Fatal(err)
	}

	pipe, err := n.LinkByID("P1")
	if err != nil {
		tst.Fatal(err)
	}
	chk.Scalar(tst, "pipe flow [cfs]", 1e-3, pipe.Flow, 500.0/448.831)
}

func Test_tankfill01(tst *testing.T) {
	chk.PrintTitle("tankfill01. linear tank fill over one step")

	n, opt := wntest.TankFill()
	p := New(nil)
	if err := p.Open(n, opt); err != nil {
		tst.Fatal(err)
	}
	if err := p.OpenH(); err != nil {
		tst.Fatal(err)
	}
	if _, err := p.Run(); err != nil {
		tst.Fatal(err)
	}

	tank := n.TankByNode(2)
	vol := p.Driver.TankVolume[0]
	level := tank.HeadFromVolume(vol, n.Curves) - tank.MinHead
	if level < 5 || level > 60 {
		tst.Fatalf("tank level out of plausible range: got %v", level)
	}
}

func Test_checkvalve01(tst *testing.T) {
	chk.PrintTitle("checkvalve01. reverse-oriented CV settles closed")

	n, opt := wntest.CheckValveClosure()
	p := New(nil)
	if err := p.Open(n, opt); err != nil {
		tst.Fatal(err)
	}
	if err := p.OpenH(); err != nil {
		tst.Fatal(err)
	}
	if _, err := p.Step(); err != nil {
		tst.Fatal(err)
	}

	cv, err := n.LinkByID("P1")
	if err != nil {
		tst.Fatal(err)
	}
	if cv.Status != net.Closed {
		tst.Fatalf("expected CV closed, got status %v", cv.Status)
	}
	chk.Scalar(tst, "CV flow [cfs]", 1e-6, cv.Flow, 0)
}

func Test_pumplevelcontrol01(tst *testing.T) {
	chk.PrintTitle("pumplevelcontrol01. pump opens/closes on tank level")

	n, opt := wntest.PumpLevelControl()
	p := New(nil)
	if err := p.Open(n, opt); err != nil {
		tst.Fatal(err)
	}
	if err := p.OpenH(); err != nil {
		tst.Fatal(err)
	}
	if _, err := p.Run(); err != nil {
		tst.Fatal(err)
	}

	pump, err := n.LinkByID("PU1")
	if err != nil {
		tst.Fatal(err)
	}
	if pump.Status != net.Open && pump.Status != net.Closed {
		tst.Fatalf("unexpected pump status %v", pump.Status)
	}
}
