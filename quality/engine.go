// Package quality implements the Lagrangian segment-transport
// water-quality engine: bulk and wall reaction kinetics, advection of
// discrete volume segments through every link, volume-weighted mixing at
// nodes, the four tank-mixing models, and source injection. It runs on the
// same topology the hydraulic solver populates, consuming the flows and
// statuses recorded at each hydraulic step and sub-stepping between them
// at a finer QualityStep.
package quality

import (
	"math"

	"github.com/cpmech/waternet/net"
)

// MassBalance accumulates the running totals a quality run reports:
// mass that entered and left through boundary nodes, mass destroyed or
// created by reaction, and mass added by sources. A converged simulation
// has (initial + in + source) - (out + reacted-as-loss) close to final.
type MassBalance struct {
	Inflow   float64
	Outflow  float64
	Source   float64
	Reacted  float64 // net mass change from pipe bulk+wall reaction
	TankRx   float64 // net mass change from tank bulk reaction
}

// Engine advances water quality across a network whose flows and statuses
// are owned by the hydraulic layer; it never mutates them.
type Engine struct {
	n   *net.Network
	opt *net.Options

	linkChain []chain // index 1..Nlinks
	wallCoeff []float64

	tankChain []chain    // index by position in n.Tanks, for CSTR/FIFO/LIFO models
	tank2     []twoComp  // index by position in n.Tanks, for the 2-compartment model

	nodeQual []float64 // index 1..len(Nodes): current outflow concentration/age/trace value

	order    []int   // topological processing order over node indices, upstream to downstream
	inLinks  [][]int // per node index: links entering that node this hydraulic step
	outLinks [][]int // per node index: links leaving that node this hydraulic step

	Mass MassBalance
}

// twoComp holds the mixing-zone and stagnant-zone state of a 2-compartment
// tank model.
type twoComp struct {
	mixV, mixC   float64
	stagV, stagC float64
}

// NewEngine builds an Engine seeded from each node's InitQual and each
// link/tank's starting volume, ready for UpdateHydraulics once flows are
// available.
func NewEngine(n *net.Network, opt *net.Options) *Engine {
	e := &Engine{
		n:         n,
		opt:       opt,
		linkChain: make([]chain, len(n.Links)+1),
		wallCoeff: make([]float64, len(n.Links)+1),
		tankChain: make([]chain, len(n.Tanks)),
		tank2:     make([]twoComp, len(n.Tanks)),
		nodeQual:  make([]float64, len(n.Nodes)+1),
	}

	for i := 1; i <= len(n.Nodes); i++ {
		e.nodeQual[i] = n.Nodes[i-1].InitQual
	}

	for _, l := range n.Links {
		vol := pipeVolume(l)
		c := 0.5 * (n.Nodes[l.N1-1].InitQual + n.Nodes[l.N2-1].InitQual)
		e.linkChain[l.Index] = chain{{V: vol, C: c}}
	}

	for i, t := range n.Tanks {
		c0 := n.Nodes[t.NodeIndex-1].InitQual
		vol0 := t.InitVolume
		if t.Mix == net.Mix2Comp {
			mixV := t.MixFrac * t.MaxVolume
			if mixV > vol0 {
				mixV = vol0
			}
			e.tank2[i] = twoComp{mixV: mixV, mixC: c0, stagV: vol0 - mixV, stagC: c0}
		} else {
			e.tankChain[i] = chain{{V: vol0, C: c0}}
		}
	}

	return e
}

func pipeVolume(l *net.Link) float64 {
	r := l.Diameter / 2.0
	return math.Pi * r * r * l.Length
}

// UpdateHydraulics refreshes everything that depends on the current flow
// field: each pipe's wall rate coefficient and the topological node
// processing order. Call once after each hydraulic solve, before the
// water-quality sub-steps that use that solve's flows.
func (e *Engine) UpdateHydraulics() {
	for _, l := range e.n.Links {
		if l.Type == net.Pipe || l.Type == net.CVPipe {
			e.wallCoeff[l.Index] = wallRateCoeff(l, e.opt)
		}
	}
	e.buildTopology()
}

// buildTopology computes, from the current flow direction of every open
// link, a Kahn topological order over nodes (upstream before downstream)
// along with each node's incident link lists. A network with flow cycles
// (possible around loops with near-zero flow) cannot be fully ordered;
// any nodes left over once the queue empties are appended in index order,
// which only degrades accuracy for the links inside that cycle.
func (e *Engine) buildTopology() {
	nNodes := len(e.n.Nodes)
	e.inLinks = make([][]int, nNodes+1)
	e.outLinks = make([][]int, nNodes+1)
	indeg := make([]int, nNodes+1)

	for _, l := range e.n.Links {
		if l.Status <= net.Closed {
			continue
		}
		from, to := l.N1, l.N2
		if l.Flow < 0 {
			from, to = l.N2, l.N1
		}
		e.outLinks[from] = append(e.outLinks[from], l.Index)
		e.inLinks[to] = append(e.inLinks[to], l.Index)
		indeg[to]++
	}

	queue := make([]int, 0, nNodes)
	visited := make([]bool, nNodes+1)
	for i := 1; i <= nNodes; i++ {
		if indeg[i] == 0 {
			queue = append(queue, i)
		}
	}
	order := make([]int, 0, nNodes)
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		if visited[v] {
			continue
		}
		visited[v] = true
		order = append(order, v)
		for _, lk := range e.outLinks[v] {
			l := e.n.Links[lk-1]
			to := l.N2
			if l.Flow < 0 {
				to = l.N1
			}
			indeg[to]--
			if indeg[to] == 0 {
				queue = append(queue, to)
			}
		}
	}
	for i := 1; i <= nNodes; i++ {
		if !visited[i] {
			order = append(order, i)
		}
	}
	e.order = order
}

// NodeQuality returns the last-computed outflow concentration, age, or
// trace value at node index idx.
func (e *Engine) NodeQuality(idx int) float64 { return e.nodeQual[idx] }

// TankQuality returns the reported bulk quality of the tank attached to
// node index idx.
func (e *Engine) TankQuality(nodeIdx int) float64 { return e.nodeQual[nodeIdx] }
