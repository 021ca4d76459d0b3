// Copyright 2026 The qrlower Authors. SPDX-License-Identifier: Apache-2.0

package graph

import (
	"fmt"

	"github.com/lattice-ml/qrlower/pkg/core/shapes"
	"github.com/lattice-ml/qrlower/pkg/core/tensors"
	"github.com/lattice-ml/qrlower/pkg/support/exceptions"
)

// Node represents the result of one operation in the graph. It carries both the static shape
// an op produced and the concrete value this evaluator already computed for it -- there is no
// separate "compile, then run" step in this package; construction and evaluation are the same
// act. See the package doc for why that is a legitimate stand-in for the staged
// graph-building/execution split a real backend would use.
type Node struct {
	graph  *Graph
	id     NodeId
	op     string
	inputs []*Node
	value  *tensors.Tensor
}

// Graph returns the Graph this node belongs to.
func (n *Node) Graph() *Graph { return n.graph }

// Id returns the node's id within its graph.
func (n *Node) Id() NodeId { return n.id }

// Op returns the name of the operation that produced this node (e.g. "Add", "Slice", "MatMul:Default").
func (n *Node) Op() string { return n.op }

// Inputs returns the nodes this node was built from.
func (n *Node) Inputs() []*Node { return n.inputs }

// Shape returns the node's static shape.
func (n *Node) Shape() shapes.Shape { return n.value.Shape() }

// Value returns the concrete tensor this node evaluated to.
func (n *Node) Value() *tensors.Tensor { return n.value }

func (n *Node) String() string {
	return fmt.Sprintf("#%d %s%s", n.id, n.op, n.Shape())
}

// newNode registers a freshly computed value as a node of g, attributed to op and built from
// inputs. Every op-construction function in ops.go funnels through here so that every tensor
// that ever exists inside a graph also exists as a Node with provenance.
func newNode(g *Graph, op string, inputs []*Node, value *tensors.Tensor) *Node {
	if g == nil {
		exceptions.Panicf("%s: node has no graph", op)
	}
	n := &Node{op: op, inputs: inputs, value: value}
	return g.register(n)
}

// Parameter registers a graph input: a node with no inputs of its own, wrapping a
// caller-provided tensor. This is how A enters the graph that BuildQR constructs.
func Parameter(g *Graph, name string, value *tensors.Tensor) *Node {
	return newNode(g, "Parameter:"+name, nil, value)
}

// Constant registers a graph-time constant, such as the identity matrix BuildQR seeds Q with.
func Constant(g *Graph, value *tensors.Tensor) *Node {
	return newNode(g, "Constant", nil, value)
}
