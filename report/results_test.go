package report

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/waternet/hydraulics"
	"github.com/cpmech/waternet/net"
	"github.com/cpmech/waternet/sparse"
)

func Test_recordstep01(tst *testing.T) {
	chk.PrintTitle("recordstep01. one report step appends a snapshot per node and link")

	n := net.NewNetwork()
	j, err := n.AddJunction("J1", 0)
	if err != nil {
		tst.Fatal(err)
	}
	j.Demands = []net.Demand{{Base: 2.0}}
	if _, err = n.AddTankNode("R1", 100, &net.Tank{}); err != nil {
		tst.Fatal(err)
	}
	l, err := n.AddLink("P1", 2, 1, net.Pipe)
	if err != nil {
		tst.Fatal(err)
	}
	l.Flow = 2.0
	l.Status = net.Open

	opt := net.DefaultOptions()
	solver := sparse.NewSolver(n.Njuncs, sparse.JunctionLinks(n))
	st := hydraulics.NewState(n, &opt, solver, nil)
	st.Head[j.Index] = 80
	st.DemandFlow[j.Index] = 2.0

	c := NewCollector(n)
	c.RecordStep(n, &opt, st, nil, 0, 300)

	if len(c.Nodes[j.Index-1]) != 1 {
		tst.Fatalf("expected one recorded node snapshot, got %d", len(c.Nodes[j.Index-1]))
	}
	got := c.Nodes[j.Index-1][0]
	chk.Scalar(tst, "recorded head", 1e-12, got.Head, 80)
	chk.Scalar(tst, "recorded demand", 1e-12, got.Demand, 2.0)

	if len(c.Links[l.Index-1]) != 1 {
		tst.Fatalf("expected one recorded link snapshot, got %d", len(c.Links[l.Index-1]))
	}
	chk.Scalar(tst, "recorded flow", 1e-12, c.Links[l.Index-1][0].Flow, 2.0)

	chk.Scalar(tst, "flow balance consumer demand", 1e-12, c.Flow.ConsumerDemand, 2.0*300)
}
