// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sparse implements the symbolic reordering and numeric Cholesky
// factorization of the GGA system matrix A: order Njuncs, symmetric
// positive definite, never stored densely. The three phases (symbolic
// ordering, symbolic factor, numeric factor + solve) are kept as separate
// steps the way an FEM solver keeps equation numbering distinct from
// coefficient assembly -- a reordering/degree-count pass here, a
// coefficient-accumulation pass there.
package sparse

import "sort"

// junctionGraph is the working adjacency used only during reordering: a set
// of neighbor rows per junction, restricted to junction-junction edges
// (links touching a tank/reservoir contribute no off-diagonal unknown and
// are excluded here).
type junctionGraph struct {
	n   int
	adj []map[int]bool // 1-based, size n+1
}

func newJunctionGraph(n int) *junctionGraph {
	g := &junctionGraph{n: n, adj: make([]map[int]bool, n+1)}
	for i := 1; i <= n; i++ {
		g.adj[i] = make(map[int]bool)
	}
	return g
}

func (g *junctionGraph) addEdge(i, j int) {
	if i == j {
		return
	}
	g.adj[i][j] = true
	g.adj[j][i] = true
}

func (g *junctionGraph) degree(i int) int { return len(g.adj[i]) }

// EdgeSet is a canonical, deduplicated set of junction-junction edges
// derived from the network's links: multiple parallel links between the
// same node pair contribute additively to a single off-diagonal entry.
type EdgeSet struct {
	N        int
	Adjacent map[[2]int][]int // canonical (min,max) pair -> list of link indices sharing that edge
}

// NewEdgeSet builds the deduplicated edge list from a caller-provided list
// of (n1, n2, linkIndex) triples restricted to junction endpoints (tank and
// reservoir endpoints are excluded by the caller beforehand).
func NewEdgeSet(n int, edges [][3]int) *EdgeSet {
	es := &EdgeSet{N: n, Adjacent: make(map[[2]int][]int)}
	for _, e := range edges {
		i, j, link := e[0], e[1], e[2]
		if i == j {
			continue
		}
		key := canon(i, j)
		es.Adjacent[key] = append(es.Adjacent[key], link)
	}
	return es
}

func canon(i, j int) [2]int {
	if i < j {
		return [2]int{i, j}
	}
	return [2]int{j, i}
}

// Ordering is the result of minimum-degree reordering: Order[row] is the
// original junction index eliminated at step `row`; Row[orig] is its
// inverse.
type Ordering struct {
	N     int
	Order []int // 1-based, size N+1
	Row   []int // 1-based, size N+1, Row[0] unused
}

// MinimumDegree performs iterative minimum-degree elimination: repeatedly
// select the junction of lowest current degree, eliminate it, and record
// the implied fill-in (edges between every pair of its neighbors). Ties
// are broken deterministically by node index.
func MinimumDegree(es *EdgeSet) *Ordering {
	n := es.N
	g := newJunctionGraph(n)
	for key, links := range es.Adjacent {
		if len(links) > 0 {
			g.addEdge(key[0], key[1])
		}
	}

	eliminated := make([]bool, n+1)
	order := make([]int, n+1)
	row := make([]int, n+1)

	for step := 1; step <= n; step++ {
		best, bestDeg := -1, -1
		for i := 1; i <= n; i++ {
			if eliminated[i] {
				continue
			}
			d := g.degree(i)
			if bestDeg == -1 || d < bestDeg || (d == bestDeg && i < best) {
				best, bestDeg = i, d
			}
		}
		// fill-in: connect every pair of best's remaining neighbors
		nbrs := make([]int, 0, bestDeg)
		for m := range g.adj[best] {
			nbrs = append(nbrs, m)
		}
		sort.Ints(nbrs)
		for a := 0; a < len(nbrs); a++ {
			for b := a + 1; b < len(nbrs); b++ {
				g.addEdge(nbrs[a], nbrs[b])
			}
		}
		// remove best from the graph
		for _, m := range nbrs {
			delete(g.adj[m], best)
		}
		g.adj[best] = nil
		eliminated[best] = true

		order[step] = best
		row[best] = step
	}

	return &Ordering{N: n, Order: order, Row: row}
}
