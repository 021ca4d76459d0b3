// Copyright 2026 The qrlower Authors. SPDX-License-Identifier: Apache-2.0

package qr

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lattice-ml/qrlower/pkg/core/dtypes"
	"github.com/lattice-ml/qrlower/pkg/core/graph"
	"github.com/lattice-ml/qrlower/pkg/core/shapes"
	"github.com/lattice-ml/qrlower/pkg/core/tensors"
)

func TestHouseZeroesBelowPivot(t *testing.T) {
	g := graph.New("house-test")
	x := graph.Parameter(g, "x", tensors.NewFromFlat(shapes.Make(dtypes.Float64, 4), []float64{3, 4, 0, 0}))
	v, tau, beta := House(g, x, 0)

	// H = I - tau*v*v^T, applied to x, should be [beta, 0, 0, 0].
	vCol := graph.InsertAxis(v, 1)
	vvt := graph.MatMul(vCol, graph.TransposeLast2(vCol), tensors.Default)
	xCol := graph.InsertAxis(x, 1)
	hx := graph.Sub(xCol, graph.Mul(tau, graph.MatMul(vvt, xCol, tensors.Default)))

	hxFlat := graph.Reshape(hx, 4)
	assert.InDelta(t, beta.Value().At(), hxFlat.Value().At(0), 1e-9)
	for i := 1; i < 4; i++ {
		assert.InDelta(t, 0, hxFlat.Value().At(i), 1e-9)
	}
}

func TestHouseDegenerateColumnIsIdentity(t *testing.T) {
	g := graph.New("house-degenerate")
	x := graph.Parameter(g, "x", tensors.NewFromFlat(shapes.Make(dtypes.Float64, 3), []float64{5, 0, 0}))
	v, tau, beta := House(g, x, 0)
	require.Equal(t, 0.0, tau.Value().At())
	assert.Equal(t, 5.0, beta.Value().At())
	for _, got := range v.Value().Data() {
		assert.False(t, math.IsNaN(got))
	}
}

func TestQrBlockOutputShapes(t *testing.T) {
	g := graph.New("qrblock-test")
	a := graph.Parameter(g, "a", tensors.NewFromFlat(shapes.Make(dtypes.Float64, 3, 2), []float64{
		1, 2,
		3, 4,
		5, 6,
	}))
	factored, taus := QrBlock(g, a, tensors.Default)
	require.Equal(t, []int{2}, taus.Shape().Dimensions)
	// The panel's strict lower triangle (rows>cols) holds the essential reflector parts rather
	// than zeros (e.g. row 2, column 1), so this test only checks the output shapes.
	require.Equal(t, []int{3, 2}, factored.Shape().Dimensions)
}

func TestCompactWYIsUpperTriangular(t *testing.T) {
	g := graph.New("wy-test")
	a := graph.Parameter(g, "a", tensors.NewFromFlat(shapes.Make(dtypes.Float64, 3, 2), []float64{
		1, 2,
		3, 4,
		5, 6,
	}))
	factored, taus := QrBlock(g, a, tensors.Default)
	batchRank := 0
	strictLower := strictLowerTriangleMask(g, batchRank, 3, 2)
	identityBlock := graph.Identity(g, shapes.Make(dtypes.Float64, 3, 2), 3, 2)
	y := graph.Add(identityBlock, graph.Where(strictLower, factored, scalarConst(g, dtypes.Float64, 0)))

	tMat := CompactWY(g, y, taus, tensors.Default)
	k := tMat.Shape().Dim(-1)
	for i := 0; i < k; i++ {
		for j := 0; j < i; j++ {
			assert.Equal(t, 0.0, tMat.Value().At(i, j))
		}
	}
}
