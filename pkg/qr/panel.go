// Copyright 2026 The qrlower Authors. SPDX-License-Identifier: Apache-2.0

package qr

import (
	"github.com/lattice-ml/qrlower/pkg/core/graph"
	"github.com/lattice-ml/qrlower/pkg/core/shapes"
	"github.com/lattice-ml/qrlower/pkg/core/tensors"
)

// QrBlock factors a single panel of width n = k' by unblocked Householder QR.
//
// a has shape [*B, m, n]. The returned panel has R in its upper triangle and the essential
// Householder vectors in its strict lower triangle; taus has shape [*B, min(m,n)]. The loop
// bound is a plain Go for: min(m,n) is known at graph-construction time for every call site in
// this package (see specification section 4.2 and the design note on static-trip loops).
func QrBlock(g *graph.Graph, a *graph.Node, precision tensors.Precision) (panel, taus *graph.Node) {
	m, n := a.Shape().Dim(-2), a.Shape().Dim(-1)
	batchRank := a.Shape().Rank() - 2
	dtype := a.Shape().DType
	p := min(m, n)

	batchDims := a.Shape().BatchDims(2)
	taus = graph.Constant(g, tensors.NewZeros(shapes.Make(dtype, appendDims(batchDims, p)...)))

	for j := 0; j < p; j++ {
		x := graph.Reshape(
			graph.Slice(a, axisRanges(a.Shape(), -1, tensors.AxisRange{Start: j, End: j + 1})),
			appendDims(batchDims, m)...,
		)
		v, tau, beta := House(g, x, j)

		// Trailing update: A := A - tau * (v * (vᵀ * A_masked)), restricted to columns > j by
		// zeroing everything else first so the subtracted term is zero there (specification
		// section 4.2 step 3).
		colMask := colGTMask(g, batchRank, n, j)
		aMasked := graph.Where(colMask, a, scalarConst(g, dtype, 0))
		vCol := graph.InsertAxis(v, v.Shape().Rank())
		w := graph.MatMul(graph.TransposeLast2(vCol), aMasked, precision)
		u := graph.MatMul(vCol, w, precision)
		a = graph.Sub(a, graph.Mul(tau, u))

		// Column j rewrite: positions [0,j) keep their original value (x, unaffected by the
		// trailing update since column j itself was excluded from aMasked above), position j
		// becomes beta exactly, and positions (j, m) become the essential reflector v[j+1:].
		belowPivot := ltMask(g, batchRank, m, j)
		atPivot := eqMask(g, batchRank, m, j)
		replacement := graph.Where(belowPivot, x, graph.Where(atPivot, beta, v))
		a = graph.UpdateSlice(a, graph.InsertAxis(replacement, replacement.Shape().Rank()), appendDims(zeros(batchRank), 0, j))

		taus = graph.UpdateSlice(taus, graph.InsertAxis(tau, tau.Shape().Rank()), appendDims(zeros(batchRank), j))
	}
	return a, taus
}
