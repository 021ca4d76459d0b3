// Copyright 2026 The qrlower Authors. SPDX-License-Identifier: Apache-2.0

// Package graph builds and, immediately, evaluates the dataflow graph the QR lowering emits:
// every node has a fixed shape known at graph-building time, an operation name, a list of
// input nodes, and a concrete value (see pkg/core/tensors) computed eagerly as soon as the
// node is constructed.
//
// The specification describes a pure dataflow graph with no cycles and no shared mutable
// state: a graph produced by this package is a record of exactly that, plus the tensor values
// an eager evaluation produced along the way. Graph.Validate checks the no-cycles invariant
// directly on that record, even though by construction (every node can only reference nodes
// that already exist) the graph can never actually contain one; it exists so tooling built on
// top of a Graph (visualizers, serializers) has something to call before trusting the record.
package graph

import (
	"fmt"

	"github.com/google/uuid"
	"k8s.io/klog/v2"

	"github.com/katalvlaran/lvlath/core"
	"github.com/katalvlaran/lvlath/dfs"
)

// NodeId identifies a Node within its Graph.
type NodeId int

// Graph accumulates the Nodes built by one call to a lowering entry point (see qr.BuildQR).
type Graph struct {
	name  string
	nodes []*Node
}

// New creates an empty, named Graph. If name is empty a random one is generated, mirroring
// gomlx's habit of tagging graphs for logging even when the caller doesn't care to name one.
func New(name string) *Graph {
	if name == "" {
		name = "graph-" + uuid.NewString()
	}
	return &Graph{name: name}
}

// Name returns the graph's name.
func (g *Graph) Name() string { return g.name }

// NumNodes is the number of nodes registered in the graph so far.
func (g *Graph) NumNodes() int { return len(g.nodes) }

// Nodes returns the registered nodes in construction order. The returned slice is shared;
// callers must not mutate it.
func (g *Graph) Nodes() []*Node { return g.nodes }

func (g *Graph) register(n *Node) *Node {
	n.id = NodeId(len(g.nodes))
	n.graph = g
	g.nodes = append(g.nodes, n)
	if klog.V(2).Enabled() {
		klog.Infof("graph %s: node #%d %s -> %s", g.name, n.id, n.op, n.Shape())
	}
	return n
}

// Validate checks the "no cycles" invariant the specification requires of the emitted graph
// (it does not inspect node values for shared mutable state), by rebuilding it as an github.com/katalvlaran/lvlath graph
// and running a DFS cycle check plus a topological sort over it. Every input edge of every
// node must point at a node with a strictly smaller id (construction order already guarantees
// this; Validate exists to make that guarantee checkable by something other than "trust the
// Go code that built it").
func (g *Graph) Validate() error {
	gb := core.NewGraph(core.WithDirected(true))
	for _, n := range g.nodes {
		if err := gb.AddVertex(nodeVertexID(n.id)); err != nil {
			return fmt.Errorf("graph %s: failed to add vertex for node #%d: %w", g.name, n.id, err)
		}
	}
	for _, n := range g.nodes {
		for _, in := range n.inputs {
			if in.id >= n.id {
				return fmt.Errorf("graph %s: node #%d (%s) has an input #%d that is not strictly earlier in construction order", g.name, n.id, n.op, in.id)
			}
			if _, err := gb.AddEdge(nodeVertexID(in.id), nodeVertexID(n.id), 1); err != nil {
				return fmt.Errorf("graph %s: failed to link node #%d -> #%d: %w", g.name, in.id, n.id, err)
			}
		}
	}
	hasCycle, cycles, err := dfs.DetectCycles(gb)
	if err != nil {
		return fmt.Errorf("graph %s: cycle detection failed: %w", g.name, err)
	}
	if hasCycle {
		return fmt.Errorf("graph %s: found %d cycle(s), violating the acyclic dataflow invariant", g.name, len(cycles))
	}
	if _, err := dfs.TopologicalSort(gb); err != nil {
		return fmt.Errorf("graph %s: not a valid DAG: %w", g.name, err)
	}
	return nil
}

func nodeVertexID(id NodeId) string {
	return fmt.Sprintf("n%d", id)
}

func (g *Graph) String() string {
	return fmt.Sprintf("Graph(%s, %d nodes)", g.name, len(g.nodes))
}
