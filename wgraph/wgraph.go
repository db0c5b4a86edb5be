// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package wgraph implements the undirected node-incidence adjacency graph
// of a pipe network. It is styled after the adjacency-list representation
// in katalvlaran-lvlath's graph package, but specialized to an
// arena-indexed layout: two flat tables (Nodes, Links) plus one derived
// adjacency list, no node-by-node pointer graph.
package wgraph

import "github.com/cpmech/waternet/net"

// Arc is one entry of a node's adjacency list: the neighboring node's index
// and the link index connecting them.
type Arc struct {
	Neighbor int
	Link     int
}

// Graph is the adjacency view over a Network. It owns no Nodes/Links of its
// own -- it is an index-to-index view, rebuilt whenever topology changes.
type Graph struct {
	adj [][]Arc // 1-based: adj[nodeIndex] holds nodeIndex's arcs
}

// Build constructs the adjacency graph from n's current Links. Each link
// appears in both endpoints' lists, so node traversal is O(degree).
func Build(n *net.Network) *Graph {
	g := &Graph{adj: make([][]Arc, len(n.Nodes)+1)}
	for _, l := range n.Links {
		g.adj[l.N1] = append(g.adj[l.N1], Arc{Neighbor: l.N2, Link: l.Index})
		g.adj[l.N2] = append(g.adj[l.N2], Arc{Neighbor: l.N1, Link: l.Index})
	}
	return g
}

// Adj returns the arcs incident to nodeIndex.
func (g *Graph) Adj(nodeIndex int) []Arc {
	if nodeIndex < 0 || nodeIndex >= len(g.adj) {
		return nil
	}
	return g.adj[nodeIndex]
}

// Degree returns the number of arcs incident to nodeIndex (parallel links
// each count once per endpoint; sparse.MinimumDegree instead counts each
// neighboring junction once, after parallel-link dedup).
func (g *Graph) Degree(nodeIndex int) int { return len(g.Adj(nodeIndex)) }

// NumNodes returns the number of node slots the graph was built for
// (including node 0, which is unused, to keep indices 1-based throughout).
func (g *Graph) NumNodes() int { return len(g.adj) }
