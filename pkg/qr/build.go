// Copyright 2026 The qrlower Authors. SPDX-License-Identifier: Apache-2.0

// Package qr implements the blocked, compact-WY Householder QR lowering: a pure dataflow
// expansion of a "QR decomposition" node into primitive tensor operations (slice, reshape,
// elementwise arithmetic, reductions, batched matmul, static-trip loops), built eagerly over
// the evaluator in pkg/core/tensors and recorded as a pkg/core/graph.Graph.
//
// Every shape in the expansion is fixed by (m, n, *B, block size) before the first tensor op
// runs; the outer block loop, the per-panel column loop, and CompactWY's column loop are all
// plain Go for loops rather than graph-level control-flow nodes, because their trip counts are
// known the moment BuildQR is called (see house.go, panel.go, wy.go).
package qr

import (
	"k8s.io/klog/v2"

	"github.com/lattice-ml/qrlower/pkg/core/graph"
	"github.com/lattice-ml/qrlower/pkg/core/tensors"
)

// Precision is the accumulation hint threaded into every matmul this package builds. It is an
// alias of tensors.Precision rather than a distinct type, since build.go's only use of it is to
// forward it unchanged into graph.MatMul calls.
type Precision = tensors.Precision

const (
	// Default is the zero value; MatMul treats it as High.
	Default = tensors.Default
	// Highest requests Kahan-compensated accumulation in every matmul's inner reduction.
	Highest = tensors.Highest
	// High requests plain running summation (the faster, less accurate choice).
	High = tensors.High
)

// DefaultBlockSize is the block size the lowering collaborator wires in when the caller
// doesn't specify one (specification section 6).
const DefaultBlockSize = 128

// BuildQR factors a of shape [*B, m, n] into Q of shape [*B, m, m] and R of shape [*B, m, n]
// such that Q is orthogonal per batch slice and Q*R reproduces a up to numerical error. It
// walks columns in blocks of blockSize, factoring each panel with QrBlock, assembling its
// compact-WY representation with CompactWY, and applying the resulting block reflector
// (I + Y*T*Yᵀ, with T's -tau diagonal carrying the sign) to the trailing columns of A (as its
// transpose) and to the running Q (specification section 4.4).
//
// BuildQR returns an *InvalidArgumentError, synchronously, if a's rank is below 2 or if
// blockSize is below 1; those are the only two documented failure modes (specification
// section 7). Degenerate columns (zero norm below the pivot) are handled in-band by House and
// never produce an error.
func BuildQR(a *tensors.Tensor, blockSize int, precision Precision) (q, r *tensors.Tensor, err error) {
	if a.Rank() < 2 {
		return nil, nil, errRankTooLow(a.Rank(), a.Dims())
	}
	if blockSize < 1 {
		return nil, nil, errBlockSizeTooSmall(blockSize)
	}

	g := graph.New("")
	aNode := graph.Parameter(g, "A", a)
	if klog.V(1).Enabled() {
		klog.Infof("qr.BuildQR: shape=%s block_size=%d precision=%s", a.Shape(), blockSize, precision)
	}

	qNode, rNode := buildQR(g, aNode, blockSize, precision)
	if klog.V(1).Enabled() {
		klog.Infof("qr.BuildQR: built %d graph nodes", g.NumNodes())
	}
	if err := g.Validate(); err != nil {
		return nil, nil, err
	}
	return qNode.Value(), rNode.Value(), nil
}

func buildQR(g *graph.Graph, a *graph.Node, blockSize int, precision tensors.Precision) (q, r *graph.Node) {
	shape := a.Shape()
	m, n := shape.Dim(-2), shape.Dim(-1)
	p := min(m, n)
	batchDims := shape.BatchDims(2)

	q = graph.Identity(g, shape, m, m, batchDims...)

	for i := 0; i < p; i += blockSize {
		k := min(blockSize, p-i)

		panel := graph.Slice(a, matrixRanges(a.Shape(), tensors.AxisRange{Start: i, End: m}, tensors.AxisRange{Start: i, End: i + k}))
		factoredPanel, taus := QrBlock(g, panel, precision)

		batchRank := a.Shape().Rank() - 2
		strictLower := strictLowerTriangleMask(g, batchRank, m-i, k)
		identityBlock := graph.Identity(g, shape, m-i, k, batchDims...)
		y := graph.Add(identityBlock, graph.Where(strictLower, factoredPanel, scalarConst(g, shape.DType, 0)))

		a = graph.UpdateSlice(a, factoredPanel, appendDims(zeros(batchRank), i, i))

		t := CompactWY(g, y, taus, precision)
		yt := graph.MatMul(y, graph.TransposeLast2(t), precision)

		if i+k < n {
			aTail := graph.Slice(a, matrixRanges(a.Shape(), tensors.AxisRange{Start: i, End: m}, tensors.AxisRange{Start: i + k, End: n}))
			aTail = graph.Add(aTail, graph.MatMul(yt, graph.MatMul(graph.TransposeLast2(y), aTail, precision), precision))
			a = graph.UpdateSlice(a, aTail, appendDims(zeros(batchRank), i, i+k))
		}

		qPanel := graph.Slice(q, matrixRanges(q.Shape(), tensors.AxisRange{Start: 0, End: m}, tensors.AxisRange{Start: i, End: m}))
		qPanel = graph.Add(qPanel, graph.MatMul(graph.MatMul(qPanel, y, precision), graph.TransposeLast2(yt), precision))
		q = graph.UpdateSlice(q, qPanel, appendDims(zeros(batchRank), 0, i))
	}

	r = upperTriangle(g, a)
	return q, r
}
