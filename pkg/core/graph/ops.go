// Copyright 2026 The qrlower Authors. SPDX-License-Identifier: Apache-2.0

package graph

import (
	"github.com/lattice-ml/qrlower/pkg/core/shapes"
	"github.com/lattice-ml/qrlower/pkg/core/tensors"
	"github.com/lattice-ml/qrlower/pkg/support/exceptions"
)

func sameGraph(op string, nodes ...*Node) *Graph {
	var g *Graph
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if g == nil {
			g = n.graph
			continue
		}
		if n.graph != g {
			exceptions.Panicf("%s: inputs belong to different graphs", op)
		}
	}
	return g
}

// Add returns the node for elementwise a+b, with broadcasting.
func Add(a, b *Node) *Node {
	return newNode(sameGraph("Add", a, b), "Add", []*Node{a, b}, tensors.Add(a.value, b.value))
}

// Sub returns the node for elementwise a-b, with broadcasting.
func Sub(a, b *Node) *Node {
	return newNode(sameGraph("Sub", a, b), "Sub", []*Node{a, b}, tensors.Sub(a.value, b.value))
}

// Mul returns the node for elementwise a*b, with broadcasting.
func Mul(a, b *Node) *Node {
	return newNode(sameGraph("Mul", a, b), "Mul", []*Node{a, b}, tensors.Mul(a.value, b.value))
}

// Div returns the node for elementwise a/b, with broadcasting.
func Div(a, b *Node) *Node {
	return newNode(sameGraph("Div", a, b), "Div", []*Node{a, b}, tensors.Div(a.value, b.value))
}

// MulScalar returns the node for a*scalar.
func MulScalar(a *Node, scalar float64) *Node {
	return newNode(a.graph, "MulScalar", []*Node{a}, tensors.MulScalar(a.value, scalar))
}

// AddScalar returns the node for a+scalar.
func AddScalar(a *Node, scalar float64) *Node {
	return newNode(a.graph, "AddScalar", []*Node{a}, tensors.AddScalar(a.value, scalar))
}

// Neg returns the node for -a.
func Neg(a *Node) *Node { return newNode(a.graph, "Neg", []*Node{a}, tensors.Neg(a.value)) }

// Abs returns the node for |a|.
func Abs(a *Node) *Node { return newNode(a.graph, "Abs", []*Node{a}, tensors.Abs(a.value)) }

// Sqrt returns the node for sqrt(a).
func Sqrt(a *Node) *Node { return newNode(a.graph, "Sqrt", []*Node{a}, tensors.Sqrt(a.value)) }

// Square returns the node for a*a.
func Square(a *Node) *Node { return newNode(a.graph, "Square", []*Node{a}, tensors.Square(a.value)) }

// Sign returns the node for sign(a), with sign(0):=+1 (see House, specification section 4.1).
func Sign(a *Node) *Node { return newNode(a.graph, "Sign", []*Node{a}, tensors.Sign(a.value)) }

// IsZero returns the node for the Bool mask a==0.
func IsZero(a *Node) *Node { return newNode(a.graph, "IsZero", []*Node{a}, tensors.IsZero(a.value)) }

// LessThan returns the node for the Bool mask a<b.
func LessThan(a, b *Node) *Node {
	return newNode(sameGraph("LessThan", a, b), "LessThan", []*Node{a, b}, tensors.LessThan(a.value, b.value))
}

// GreaterThan returns the node for the Bool mask a>b.
func GreaterThan(a, b *Node) *Node {
	return newNode(sameGraph("GreaterThan", a, b), "GreaterThan", []*Node{a, b}, tensors.GreaterThan(a.value, b.value))
}

// LessOrEqual returns the node for the Bool mask a<=b.
func LessOrEqual(a, b *Node) *Node {
	return newNode(sameGraph("LessOrEqual", a, b), "LessOrEqual", []*Node{a, b}, tensors.LessOrEqual(a.value, b.value))
}

// GreaterOrEqual returns the node for the Bool mask a>=b.
func GreaterOrEqual(a, b *Node) *Node {
	return newNode(sameGraph("GreaterOrEqual", a, b), "GreaterOrEqual", []*Node{a, b}, tensors.GreaterOrEqual(a.value, b.value))
}

// Equal returns the node for the Bool mask a==b.
func Equal(a, b *Node) *Node {
	return newNode(sameGraph("Equal", a, b), "Equal", []*Node{a, b}, tensors.Equal(a.value, b.value))
}

// Where returns the node that selects elementwise between onTrue and onFalse per condition.
func Where(condition, onTrue, onFalse *Node) *Node {
	g := sameGraph("Where", condition, onTrue, onFalse)
	return newNode(g, "Where", []*Node{condition, onTrue, onFalse}, tensors.Where(condition.value, onTrue.value, onFalse.value))
}

// Iota returns a node of the given shape whose value at each position equals its index along
// iotaAxis.
func Iota(g *Graph, shape shapes.Shape, iotaAxis int) *Node {
	return newNode(g, "Iota", nil, tensors.Iota(shape, iotaAxis))
}

// ReduceSum returns the node summing a over the given axes.
func ReduceSum(a *Node, axes []int, keepDims bool) *Node {
	return newNode(a.graph, "ReduceSum", []*Node{a}, tensors.ReduceSum(a.value, axes, keepDims))
}

// Reshape returns the node reinterpreting a's data under a new shape of equal size.
func Reshape(a *Node, dims ...int) *Node {
	return newNode(a.graph, "Reshape", []*Node{a}, tensors.Reshape(a.value, dims...))
}

// InsertAxis returns the node inserting a size-1 axis at the given position.
func InsertAxis(a *Node, axis int) *Node {
	return newNode(a.graph, "InsertAxis", []*Node{a}, tensors.InsertAxis(a.value, axis))
}

// TransposeLast2 returns the node swapping a's last two axes.
func TransposeLast2(a *Node) *Node {
	return newNode(a.graph, "TransposeLast2", []*Node{a}, tensors.TransposeLast2(a.value))
}

// MatMul returns the node for the batched matrix product of a and b, tagged with the
// accumulation precision a real backend would honor for the dot's inner reduction (see
// tensors.Precision). The op name carries the tag so the recorded graph exposes it, mirroring
// how the original XLA expansion attaches a PrecisionConfig to every BatchDot it builds.
func MatMul(a, b *Node, precision tensors.Precision) *Node {
	return newNode(sameGraph("MatMul", a, b), "MatMul:"+precision.String(), []*Node{a, b}, tensors.MatMul(a.value, b.value, precision))
}

// Slice returns the node extracting a static rectangular sub-tensor of a.
func Slice(a *Node, ranges []tensors.AxisRange) *Node {
	return newNode(a.graph, "Slice", []*Node{a}, tensors.Slice(a.value, ranges))
}

// UpdateSlice returns the node overwriting the rectangular region of a described by starts
// with update's values.
func UpdateSlice(a, update *Node, starts []int) *Node {
	g := sameGraph("UpdateSlice", a, update)
	return newNode(g, "UpdateSlice", []*Node{a, update}, tensors.UpdateSlice(a.value, update.value, starts))
}

// Identity returns a node holding a batched identity matrix.
func Identity(g *Graph, shape shapes.Shape, rows, cols int, batchDims ...int) *Node {
	return newNode(g, "Identity", nil, tensors.Identity(shape, rows, cols, batchDims...))
}
