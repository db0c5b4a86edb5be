package net

import (
	"github.com/cpmech/waternet/errs"
)

// Network owns the full set of components in a hydraulic model. Indices
// are dense and 1-based; Nodes[0..Njuncs) (in Index-1 offset) are
// junctions, the rest are tanks/reservoirs.
type Network struct {
	Nodes  []*Node
	Njuncs int

	Links []*Link

	// Tanks is keyed by NodeIndex-Njuncs-1 is NOT assumed; callers look it
	// up via TankByNode.
	Tanks []*Tank

	Pumps    []*Pump
	Patterns []*Pattern
	Curves   []*Curve

	Controls []*SimpleControl
	Rules    []*Rule

	idByNode map[string]int
	idByLink map[string]int
	idByPat  map[string]int
	idByCrv  map[string]int

	tankByNode map[int]*Tank
}

// NewNetwork returns an empty, ready-to-populate Network.
func NewNetwork() *Network {
	return &Network{
		idByNode:   make(map[string]int),
		idByLink:   make(map[string]int),
		idByPat:    make(map[string]int),
		idByCrv:    make(map[string]int),
		tankByNode: make(map[int]*Tank),
	}
}

// NodeByID looks up a node by its string ID, returning a LookupFailure
// error on miss.
func (n *Network) NodeByID(id string) (*Node, error) {
	idx, ok := n.idByNode[id]
	if !ok {
		return nil, errs.New(errs.LookupFailure, "unknown node id %q", id)
	}
	return n.Nodes[idx-1], nil
}

// LinkByID looks up a link by its string ID.
func (n *Network) LinkByID(id string) (*Link, error) {
	idx, ok := n.idByLink[id]
	if !ok {
		return nil, errs.New(errs.LookupFailure, "unknown link id %q", id)
	}
	return n.Links[idx-1], nil
}

// PatternByID looks up a pattern by its string ID.
func (n *Network) PatternByID(id string) (*Pattern, error) {
	idx, ok := n.idByPat[id]
	if !ok {
		return nil, errs.New(errs.LookupFailure, "unknown pattern id %q", id)
	}
	return n.Patterns[idx-1], nil
}

// CurveByID looks up a curve by its string ID.
func (n *Network) CurveByID(id string) (*Curve, error) {
	idx, ok := n.idByCrv[id]
	if !ok {
		return nil, errs.New(errs.LookupFailure, "unknown curve id %q", id)
	}
	return n.Curves[idx-1], nil
}

// TankByNode returns the Tank record for a given node index, or nil if the
// node is a junction.
func (n *Network) TankByNode(nodeIdx int) *Tank { return n.tankByNode[nodeIdx] }

// AddJunction appends a junction node. Junctions must all be added before
// any tank/reservoir; AddTankNode enforces this.
func (n *Network) AddJunction(id string, elevation float64) (*Node, error) {
	if _, exists := n.idByNode[id]; exists {
		return nil, errs.New(errs.UniquenessViolation, "duplicate node id %q", id)
	}
	if len(n.Nodes) != n.Njuncs {
		return nil, errs.New(errs.InvalidArgument, "junctions must be added before any tank or reservoir")
	}
	nd := &Node{ID: id, Elevation: elevation}
	n.Nodes = append(n.Nodes, nd)
	n.Njuncs++
	n.renumberNodes()
	return nd, nil
}

// AddTankNode appends a tank or reservoir node plus its Tank record.
func (n *Network) AddTankNode(id string, elevation float64, tank *Tank) (*Node, error) {
	if _, exists := n.idByNode[id]; exists {
		return nil, errs.New(errs.UniquenessViolation, "duplicate node id %q", id)
	}
	nd := &Node{ID: id, Elevation: elevation}
	n.Nodes = append(n.Nodes, nd)
	n.renumberNodes()
	tank.NodeIndex = nd.Index
	n.Tanks = append(n.Tanks, tank)
	n.tankByNode[nd.Index] = tank
	return nd, nil
}

// AddLink appends a link between two existing node indices.
func (n *Network) AddLink(id string, n1, n2 int, typ LinkType) (*Link, error) {
	if _, exists := n.idByLink[id]; exists {
		return nil, errs.New(errs.UniquenessViolation, "duplicate link id %q", id)
	}
	if n1 < 1 || n1 > len(n.Nodes) || n2 < 1 || n2 > len(n.Nodes) {
		return nil, errs.New(errs.InvalidArgument, "link %q references out-of-range node index", id)
	}
	l := &Link{ID: id, N1: n1, N2: n2, Type: typ, Status: Open, InitStatus: Open}
	n.Links = append(n.Links, l)
	n.renumberLinks()
	return l, nil
}

// AddPattern appends a time pattern.
func (n *Network) AddPattern(id string, f []float64) (*Pattern, error) {
	if _, exists := n.idByPat[id]; exists {
		return nil, errs.New(errs.UniquenessViolation, "duplicate pattern id %q", id)
	}
	p := &Pattern{ID: id, F: f}
	n.Patterns = append(n.Patterns, p)
	n.renumberPatterns()
	return p, nil
}

// AddCurve appends a curve.
func (n *Network) AddCurve(id string, typ CurveType, x, y []float64) (*Curve, error) {
	if _, exists := n.idByCrv[id]; exists {
		return nil, errs.New(errs.UniquenessViolation, "duplicate curve id %q", id)
	}
	c := &Curve{ID: id, Type: typ, X: x, Y: y}
	n.Curves = append(n.Curves, c)
	n.renumberCurves()
	return c, nil
}

// referencesNode reports whether any control or rule mentions nodeIdx.
func (n *Network) referencesNode(nodeIdx int) bool {
	for _, c := range n.Controls {
		if c.NodeIndex == nodeIdx {
			return true
		}
	}
	for _, r := range n.Rules {
		for _, p := range r.Premises {
			if p.Object == NodeObj && p.ObjIndex == nodeIdx {
				return true
			}
		}
	}
	return false
}

// referencesLink reports whether any control or rule mentions linkIdx.
func (n *Network) referencesLink(linkIdx int) bool {
	for _, c := range n.Controls {
		if c.LinkIndex == linkIdx {
			return true
		}
	}
	for _, r := range n.Rules {
		for _, p := range r.Premises {
			if p.Object == LinkObj && p.ObjIndex == linkIdx {
				return true
			}
		}
		for _, a := range r.ThenActions {
			if a.LinkIndex == linkIdx {
				return true
			}
		}
		for _, a := range r.ElseActions {
			if a.LinkIndex == linkIdx {
				return true
			}
		}
	}
	return false
}

// DeleteNode removes a node. If conditional is true and the node is
// referenced by any control or rule, it returns a StructuralMutationConflict
// error and makes no changes, mirroring project.c's EN_CONDITIONAL delete.
func (n *Network) DeleteNode(nodeIdx int, conditional bool) error {
	if nodeIdx < 1 || nodeIdx > len(n.Nodes) {
		return errs.New(errs.InvalidArgument, "node index %d out of range", nodeIdx)
	}
	if conditional && n.referencesNode(nodeIdx) {
		return errs.New(errs.StructuralMutationConflict, "node %d is referenced by a control or rule", nodeIdx)
	}
	for _, l := range n.Links {
		if l.N1 == nodeIdx || l.N2 == nodeIdx {
			return errs.New(errs.StructuralMutationConflict, "node %d is an endpoint of link %q", nodeIdx, l.ID)
		}
	}
	isJunc := IsJunction(nodeIdx, n.Njuncs)
	delete(n.idByNode, n.Nodes[nodeIdx-1].ID)
	n.Nodes = append(n.Nodes[:nodeIdx-1], n.Nodes[nodeIdx:]...)
	if isJunc {
		n.Njuncs--
	} else {
		delete(n.tankByNode, nodeIdx)
		for i, t := range n.Tanks {
			if t.NodeIndex == nodeIdx {
				n.Tanks = append(n.Tanks[:i], n.Tanks[i+1:]...)
				break
			}
		}
	}
	n.renumberNodes()
	n.rewriteNodeRefs(nodeIdx)
	return nil
}

// DeleteLink removes a link, subject to the same conditional-delete
// semantics as DeleteNode.
func (n *Network) DeleteLink(linkIdx int, conditional bool) error {
	if linkIdx < 1 || linkIdx > len(n.Links) {
		return errs.New(errs.InvalidArgument, "link index %d out of range", linkIdx)
	}
	if conditional && n.referencesLink(linkIdx) {
		return errs.New(errs.StructuralMutationConflict, "link %d is referenced by a control or rule", linkIdx)
	}
	delete(n.idByLink, n.Links[linkIdx-1].ID)
	n.Links = append(n.Links[:linkIdx-1], n.Links[linkIdx:]...)
	n.renumberLinks()
	n.rewriteLinkRefs(linkIdx)
	return nil
}

// renumberNodes recomputes Index on every node and rebuilds idByNode,
// tankByNode: deletion renumbers higher indices downward.
func (n *Network) renumberNodes() {
	oldToNew := make(map[int]int, len(n.Nodes))
	newTankByNode := make(map[int]*Tank, len(n.tankByNode))
	n.idByNode = make(map[string]int, len(n.Nodes))
	for i, nd := range n.Nodes {
		old := nd.Index
		nd.Index = i + 1
		n.idByNode[nd.ID] = nd.Index
		if old != 0 {
			oldToNew[old] = nd.Index
		}
	}
	for _, t := range n.Tanks {
		if nn, ok := oldToNew[t.NodeIndex]; ok {
			t.NodeIndex = nn
		}
		newTankByNode[t.NodeIndex] = t
	}
	n.tankByNode = newTankByNode
}

func (n *Network) renumberLinks() {
	n.idByLink = make(map[string]int, len(n.Links))
	for i, l := range n.Links {
		l.Index = i + 1
		n.idByLink[l.ID] = l.Index
	}
}

func (n *Network) renumberPatterns() {
	n.idByPat = make(map[string]int, len(n.Patterns))
	for i, p := range n.Patterns {
		p.Index = i + 1
		n.idByPat[p.ID] = p.Index
	}
}

func (n *Network) renumberCurves() {
	n.idByCrv = make(map[string]int, len(n.Curves))
	for i, c := range n.Curves {
		c.Index = i + 1
		n.idByCrv[c.ID] = c.Index
	}
}

// rewriteNodeRefs shifts down any link endpoint and control/rule reference
// to a node index greater than the deleted one, matching the renumbering
// that just happened to Nodes.
func (n *Network) rewriteNodeRefs(deleted int) {
	shift := func(idx int) int {
		if idx > deleted {
			return idx - 1
		}
		return idx
	}
	for _, l := range n.Links {
		l.N1 = shift(l.N1)
		l.N2 = shift(l.N2)
	}
	for _, c := range n.Controls {
		c.NodeIndex = shift(c.NodeIndex)
	}
	for _, r := range n.Rules {
		for i := range r.Premises {
			if r.Premises[i].Object == NodeObj {
				r.Premises[i].ObjIndex = shift(r.Premises[i].ObjIndex)
			}
		}
	}
}

func (n *Network) rewriteLinkRefs(deleted int) {
	shift := func(idx int) int {
		if idx > deleted {
			return idx - 1
		}
		return idx
	}
	for _, c := range n.Controls {
		c.LinkIndex = shift(c.LinkIndex)
	}
	for _, r := range n.Rules {
		for i := range r.Premises {
			if r.Premises[i].Object == LinkObj {
				r.Premises[i].ObjIndex = shift(r.Premises[i].ObjIndex)
			}
		}
		for i := range r.ThenActions {
			r.ThenActions[i].LinkIndex = shift(r.ThenActions[i].LinkIndex)
		}
		for i := range r.ElseActions {
			r.ElseActions[i].LinkIndex = shift(r.ElseActions[i].LinkIndex)
		}
	}
}

// AddControl appends a simple control.
func (n *Network) AddControl(c *SimpleControl) { n.Controls = append(n.Controls, c) }

// AddRule appends a rule-based control, assigning it its index (used as the
// deterministic equal-priority tie-break).
func (n *Network) AddRule(r *Rule) {
	r.Index = len(n.Rules)
	n.Rules = append(n.Rules, r)
}

// ResetControls clears fired/armed bookkeeping on every simple control,
// matching initH's reset of transient statuses.
func (n *Network) ResetControls() {
	for _, c := range n.Controls {
		c.Reset()
	}
}
