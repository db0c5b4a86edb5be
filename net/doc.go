// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package net holds the network data model: nodes, tanks/reservoirs,
// links, pumps, patterns, curves, simple controls and rules. It
// plays the role gofem's inp package plays for a mesh -- a set of
// plain, index-addressable records with no behavior of their own beyond
// lookup and lifecycle bookkeeping. All solving logic lives in sibling
// packages that read from a *Network.
package net
