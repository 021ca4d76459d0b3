// Copyright 2026 The qrlower Authors. SPDX-License-Identifier: Apache-2.0

package qr

import (
	"github.com/lattice-ml/qrlower/pkg/core/graph"
	"github.com/lattice-ml/qrlower/pkg/core/tensors"
)

// CompactWY assembles the upper-triangular T such that (I + V*T*Vᵀ) equals the product of the
// Householder reflectors H_0 * ... * H_{k'-1} built from V's columns and taus, following
// Schreiber-Van Loan (specification section 4.3). T carries -tau on its diagonal, so the minus
// sign of the usual (I - Y*T*Yᵀ) form is folded into T. V has shape [*B, m', k']; taus has
// shape [*B, k']; the returned T has shape [*B, k', k'].
func CompactWY(g *graph.Graph, v, taus *graph.Node, precision tensors.Precision) *graph.Node {
	k := v.Shape().Dim(-1)
	batchRank := v.Shape().Rank() - 2
	dtype := v.Shape().DType

	vtv := graph.MatMul(graph.TransposeLast2(v), v, precision)
	strictUpper := strictUpperTriangleMask(g, batchRank, k, k)
	identity := graph.Identity(g, v.Shape(), k, k, v.Shape().BatchDims(2)...)
	strictUpperVTV := graph.Where(strictUpper, vtv, scalarConst(g, dtype, 0))

	// negTauByColumn has shape (*B, 1, k): -tau[j] broadcast down every row of column j, which
	// is exactly the "scale columnwise by -tau" operation the specification describes.
	negTau := graph.Neg(taus)
	negTauByColumn := graph.InsertAxis(negTau, negTau.Shape().Rank()-1)
	m := graph.Mul(negTauByColumn, graph.Add(strictUpperVTV, identity))

	// T starts as the identity; column j is then replaced by T*M[:,j], which combines the
	// already-final columns 0..j-1 with M[j,j] = -tau[j] on the diagonal.
	t := identity

	for j := 0; j < k; j++ {
		mCol := graph.Slice(m, axisRanges(m.Shape(), -1, tensors.AxisRange{Start: j, End: j + 1}))
		tCol := graph.MatMul(t, mCol, precision)
		t = graph.UpdateSlice(t, tCol, appendDims(zeros(batchRank), 0, j))
	}
	return t
}
