// Copyright 2026 The qrlower Authors. SPDX-License-Identifier: Apache-2.0

package qr

import (
	"github.com/lattice-ml/qrlower/pkg/core/dtypes"
	"github.com/lattice-ml/qrlower/pkg/core/graph"
	"github.com/lattice-ml/qrlower/pkg/core/shapes"
	"github.com/lattice-ml/qrlower/pkg/core/tensors"
)

// The static-shape device described in the specification's design notes (section 9) replaces
// every "slice the part I actually need" with "build a full-width mask and select". The helpers
// in this file build those masks, each shaped so that broadcasting it against a batched
// operand needs nothing beyond the size-1 and append-new-trailing-axis rules implemented in
// pkg/core/tensors/broadcast.go.

func ones(n int) []int {
	o := make([]int, n)
	for i := range o {
		o[i] = 1
	}
	return o
}

func zeros(n int) []int {
	return make([]int, n)
}

// appendDims returns a new slice with extra appended after a copy of prefix; a convenience
// for building dimension lists like "batch dims, then m" without aliasing the caller's slice.
func appendDims(prefix []int, extra ...int) []int {
	out := make([]int, 0, len(prefix)+len(extra))
	out = append(out, prefix...)
	out = append(out, extra...)
	return out
}

// scalarConst registers a rank-0 constant holding value.
func scalarConst(g *graph.Graph, dtype dtypes.DType, value float64) *graph.Node {
	return graph.Constant(g, tensors.Scalar(dtype, value))
}

// axisIndex returns a node of shape (1^batchRank, axisLen) holding 0..axisLen-1 along its one
// real axis. Used for masks that vary over a single trailing axis (the column axis of a
// [*B, m] vector, or the column axis of taus).
func axisIndex(g *graph.Graph, batchRank, axisLen int) *graph.Node {
	shape := shapes.Make(dtypes.Int64, append(ones(batchRank), axisLen)...)
	return graph.Iota(g, shape, batchRank)
}

// rowIndex returns a node of shape (1^batchRank, rows, 1) holding the row index, broadcastable
// against a [*B, rows, cols] matrix without touching the column axis.
func rowIndex(g *graph.Graph, batchRank, rows int) *graph.Node {
	return graph.Reshape(axisIndex(g, batchRank, rows), append(ones(batchRank), rows, 1)...)
}

// colIndex returns a node of shape (1^batchRank, 1, cols) holding the column index,
// broadcastable against a [*B, rows, cols] matrix without touching the row axis.
func colIndex(g *graph.Graph, batchRank, cols int) *graph.Node {
	return graph.Reshape(axisIndex(g, batchRank, cols), append(ones(batchRank), 1, cols)...)
}

func pivotConst(g *graph.Graph, pivot int) *graph.Node {
	return scalarConst(g, dtypes.Int64, float64(pivot))
}

// gtMask returns the Bool mask (1^batchRank, axisLen) for "index > pivot" along a single
// trailing axis (used against [*B, axisLen] vectors such as a column or the taus row).
func gtMask(g *graph.Graph, batchRank, axisLen, pivot int) *graph.Node {
	return graph.GreaterThan(axisIndex(g, batchRank, axisLen), pivotConst(g, pivot))
}

// ltMask returns the Bool mask (1^batchRank, axisLen) for "index < pivot".
func ltMask(g *graph.Graph, batchRank, axisLen, pivot int) *graph.Node {
	return graph.LessThan(axisIndex(g, batchRank, axisLen), pivotConst(g, pivot))
}

// eqMask returns the Bool mask (1^batchRank, axisLen) for "index == pivot".
func eqMask(g *graph.Graph, batchRank, axisLen, pivot int) *graph.Node {
	return graph.Equal(axisIndex(g, batchRank, axisLen), pivotConst(g, pivot))
}

// colGTMask returns the Bool mask (1^batchRank, 1, cols) for "column index > pivot", meant to
// be broadcast against a [*B, rows, cols] matrix (the trailing-update mask in QrBlock).
func colGTMask(g *graph.Graph, batchRank, cols, pivot int) *graph.Node {
	return graph.GreaterThan(colIndex(g, batchRank, cols), pivotConst(g, pivot))
}

// oneHot returns a node of shape (1^batchRank, axisLen), dtype dtype, with value 1 at index k
// and 0 elsewhere: this is e_k, the canonical basis column House falls back to when a column
// is already zero below the pivot.
func oneHot(g *graph.Graph, batchRank, axisLen, k int, dtype dtypes.DType) *graph.Node {
	mask := eqMask(g, batchRank, axisLen, k)
	one := scalarConst(g, dtype, 1)
	zero := scalarConst(g, dtype, 0)
	return graph.Where(mask, one, zero)
}

// strictUpperTriangleMask returns the Bool mask of shape (1^batchRank, rows, cols) that is true
// strictly above the diagonal (column index > row index), used to isolate VᵀV's strict upper
// part in CompactWY.
func strictUpperTriangleMask(g *graph.Graph, batchRank, rows, cols int) *graph.Node {
	return graph.GreaterThan(colIndex(g, batchRank, cols), rowIndex(g, batchRank, rows))
}

// strictLowerTriangleMask returns the Bool mask of shape (1^batchRank, rows, cols) that is true
// strictly below the diagonal (row index > column index), used to pull the essential
// Householder vectors out of a factored panel and to turn the final A into R.
func strictLowerTriangleMask(g *graph.Graph, batchRank, rows, cols int) *graph.Node {
	return graph.GreaterThan(rowIndex(g, batchRank, rows), colIndex(g, batchRank, cols))
}

// diagonalMask returns the Bool mask of shape (1^batchRank, rows, cols) that is true exactly on
// the main diagonal (row index == column index).
func diagonalMask(g *graph.Graph, batchRank, rows, cols int) *graph.Node {
	return graph.Equal(rowIndex(g, batchRank, rows), colIndex(g, batchRank, cols))
}

// upperTriangle returns a with its strictly-lower part zeroed, keeping the diagonal and above.
// This is how BuildQR turns the final panel-carrying A into R.
func upperTriangle(g *graph.Graph, a *graph.Node) *graph.Node {
	rows, cols := a.Shape().Dim(-2), a.Shape().Dim(-1)
	batchRank := a.Shape().Rank() - 2
	mask := strictLowerTriangleMask(g, batchRank, rows, cols)
	zero := scalarConst(g, a.Shape().DType, 0)
	return graph.Where(mask, zero, a)
}

// axisRanges returns the full set of AxisRange values needed to call graph.Slice, with every
// axis left whole except the given one, which is set to r.
func axisRanges(shape shapes.Shape, axis int, r tensors.AxisRange) []tensors.AxisRange {
	rank := shape.Rank()
	adjusted := axis
	if adjusted < 0 {
		adjusted += rank
	}
	ranges := make([]tensors.AxisRange, rank)
	for i := range ranges {
		ranges[i] = tensors.AxisRange{Start: 0, End: shape.Dim(i)}
	}
	ranges[adjusted] = r
	return ranges
}

// matrixRanges returns the AxisRange values needed to slice the trailing two axes of shape to
// rowRange x colRange, leaving every batch axis whole. This is how BuildQR carves out panels
// and trailing-update regions of A and Q.
func matrixRanges(shape shapes.Shape, rowRange, colRange tensors.AxisRange) []tensors.AxisRange {
	rank := shape.Rank()
	ranges := make([]tensors.AxisRange, rank)
	for i := 0; i < rank-2; i++ {
		ranges[i] = tensors.AxisRange{Start: 0, End: shape.Dim(i)}
	}
	ranges[rank-2] = rowRange
	ranges[rank-1] = colRange
	return ranges
}
