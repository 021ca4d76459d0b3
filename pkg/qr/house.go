// Copyright 2026 The qrlower Authors. SPDX-License-Identifier: Apache-2.0

package qr

import (
	"github.com/lattice-ml/qrlower/pkg/core/graph"
	"github.com/lattice-ml/qrlower/pkg/core/tensors"
)

// House builds the Householder reflector that zeroes column x below pivot row k.
//
// x has shape [*B, m]. The returned v has shape [*B, m]; tau and beta have shape [*B]. H :=
// I - tau*v*vᵀ satisfies H*x = x on [0,k), H*x = beta at k, and H*x = 0 on (k, m); see the
// specification's section 4.1 for the derivation this follows (mu, sigma, the sign(alpha)
// convention for beta, and the sigma==0 degenerate branch).
func House(g *graph.Graph, x *graph.Node, k int) (v, tau, beta *graph.Node) {
	m := x.Shape().Dim(-1)
	batchRank := x.Shape().Rank() - 1
	dtype := x.Shape().DType

	alphaFull := graph.Slice(x, axisRanges(x.Shape(), -1, tensors.AxisRange{Start: k, End: k + 1}))
	alpha := graph.Reshape(alphaFull, x.Shape().BatchDims(1)...)

	tailMask := gtMask(g, batchRank, m, k)
	zeroLikeX := scalarConst(g, dtype, 0)
	xTail := graph.Where(tailMask, x, zeroLikeX)

	sigma := graph.ReduceSum(graph.Square(xTail), []int{-1}, false)
	mu := graph.Sqrt(graph.Add(graph.Square(alpha), sigma))

	negSignAlpha := graph.Neg(graph.Sign(alpha))
	betaNonzero := graph.Mul(negSignAlpha, mu)
	tauNonzero := graph.Div(graph.Sub(betaNonzero, alpha), betaNonzero)
	vNonzero := graph.Add(oneHot(g, batchRank, m, k, dtype), graph.Div(xTail, graph.Sub(alpha, betaNonzero)))

	sigmaIsZero := graph.IsZero(sigma)
	beta = graph.Where(sigmaIsZero, alpha, betaNonzero)
	tau = graph.Where(sigmaIsZero, scalarConst(g, dtype, 0), tauNonzero)
	v = graph.Where(sigmaIsZero, oneHot(g, batchRank, m, k, dtype), vNonzero)
	return v, tau, beta
}
