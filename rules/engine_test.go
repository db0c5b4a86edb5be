package rules

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/waternet/net"
)

func buildTwoLinkNetwork(tst *testing.T) *net.Network {
	n := net.NewNetwork()
	if _, err := n.AddJunction("J1", 0); err != nil {
		tst.Fatal(err)
	}
	if _, err := n.AddTankNode("R1", 100, &net.Tank{}); err != nil {
		tst.Fatal(err)
	}
	l, err := n.AddLink("P1", 2, 1, net.Pipe)
	if err != nil {
		tst.Fatal(err)
	}
	l.Status = net.Open
	return n
}

func Test_linkpremise01(tst *testing.T) {
	chk.PrintTitle("linkpremise01. LINK FLOW premise closes a link")

	n := buildTwoLinkNetwork(tst)
	l, err := n.LinkByID("P1")
	if err != nil {
		tst.Fatal(err)
	}
	l.Flow = 5.0

	r := &net.Rule{
		Label:    "R1",
		Priority: 1,
		Index:    1,
		Premises: []net.Premise{
			{Logic: net.First, Object: net.LinkObj, ObjIndex: l.Index, Variable: net.VarFlow, Relop: net.Above, Value: 1.0},
		},
		ThenActions: []net.RuleAction{
			{LinkIndex: l.Index, Status: net.Closed, HasStatus: true},
		},
	}
	n.AddRule(r)

	e := NewEngine(n)
	head := make([]float64, len(n.Nodes)+1)
	changed := e.Evaluate(n, head, 0, 0)

	if !changed {
		tst.Fatal("expected rule to change link status")
	}
	if l.Status != net.Closed {
		tst.Fatalf("expected link closed, got %v", l.Status)
	}
}

func Test_priorityconflict01(tst *testing.T) {
	chk.PrintTitle("priorityconflict01. higher priority rule wins on same link")

	n := buildTwoLinkNetwork(tst)
	l, err := n.LinkByID("P1")
	if err != nil {
		tst.Fatal(err)
	}

	low := &net.Rule{
		Label: "LOW", Priority: 1, Index: 1,
		ThenActions: []net.RuleAction{{LinkIndex: l.Index, Status: net.Open, HasStatus: true}},
	}
	high := &net.Rule{
		Label: "HIGH", Priority: 5, Index: 2,
		ThenActions: []net.RuleAction{{LinkIndex: l.Index, Status: net.Closed, HasStatus: true}},
	}
	n.AddRule(low)
	n.AddRule(high)

	e := NewEngine(n)
	head := make([]float64, len(n.Nodes)+1)
	e.Evaluate(n, head, 0, 0)

	if l.Status != net.Closed {
		tst.Fatalf("expected higher-priority rule to win, got status %v", l.Status)
	}
}

func Test_clockboundary01(tst *testing.T) {
	chk.PrintTitle("clockboundary01. SYSTEM TIME = fires exactly once per crossing")

	n := buildTwoLinkNetwork(tst)
	l, err := n.LinkByID("P1")
	if err != nil {
		tst.Fatal(err)
	}

	r := &net.Rule{
		Label: "T1", Priority: 1, Index: 1,
		Premises: []net.Premise{
			{Logic: net.First, Object: net.SystemObj, Variable: net.VarTime, Relop: net.Eq, Value: 3600},
		},
		ThenActions: []net.RuleAction{{LinkIndex: l.Index, Status: net.Closed, HasStatus: true}},
	}
	n.AddRule(r)

	e := NewEngine(n)
	head := make([]float64, len(n.Nodes)+1)

	if e.Evaluate(n, head, 1800, 0) {
		tst.Fatal("rule should not fire before the boundary is crossed")
	}
	if l.Status == net.Closed {
		tst.Fatal("link closed before the boundary crossing")
	}

	if !e.Evaluate(n, head, 3600, 1800) {
		tst.Fatal("rule should fire exactly when the boundary is crossed")
	}
	if l.Status != net.Closed {
		tst.Fatalf("expected link closed after boundary crossing, got %v", l.Status)
	}
}
