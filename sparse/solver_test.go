package sparse

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/waternet/net"
)

func Test_factorandsolve01(tst *testing.T) {
	chk.PrintTitle("factorandsolve01. a tiny two-junction system solves to the known head vector")

	s := NewSolver(2, [][3]int{{1, 2, 1}})
	s.Reset()
	s.AddDiag(1, 2)
	s.AddDiag(2, 2)
	s.AddOffByLink(1, -1)

	h, err := s.FactorAndSolve([]float64{0, 3, 3})
	if err != nil {
		tst.Fatal(err)
	}

	chk.Scalar(tst, "h[1]", 1e-9, h[1], 3)
	chk.Scalar(tst, "h[2]", 1e-9, h[2], 3)
}

func Test_junctionlinks01(tst *testing.T) {
	chk.PrintTitle("junctionlinks01. only links between two junctions are extracted")

	n := net.NewNetwork()
	if _, err := n.AddJunction("J1", 0); err != nil {
		tst.Fatal(err)
	}
	if _, err := n.AddJunction("J2", 0); err != nil {
		tst.Fatal(err)
	}
	if _, err := n.AddTankNode("R1", 100, &net.Tank{}); err != nil {
		tst.Fatal(err)
	}
	if _, err := n.AddLink("P1", 1, 2, net.Pipe); err != nil {
		tst.Fatal(err)
	}
	if _, err := n.AddLink("P2", 2, 3, net.Pipe); err != nil {
		tst.Fatal(err)
	}

	links := JunctionLinks(n)
	if len(links) != 1 {
		tst.Fatalf("expected exactly one junction-junction link, got %d", len(links))
	}
	if links[0][0] != 1 || links[0][1] != 2 {
		tst.Fatalf("unexpected link endpoints: %v", links[0])
	}
}
