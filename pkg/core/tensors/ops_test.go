// Copyright 2026 The qrlower Authors. SPDX-License-Identifier: Apache-2.0

package tensors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lattice-ml/qrlower/pkg/core/dtypes"
	"github.com/lattice-ml/qrlower/pkg/core/shapes"
)

func TestAddBroadcastsLowerRankOverTrailingAxes(t *testing.T) {
	// a is [2] (per-batch scalar), b is [2,3]: a must broadcast by appending the trailing axis,
	// not by the equal-rank size-1 rule.
	a := NewFromFlat(shapes.Make(dtypes.Float64, 2), []float64{10, 20})
	b := NewFromFlat(shapes.Make(dtypes.Float64, 2, 3), []float64{1, 2, 3, 4, 5, 6})
	got := Add(a, b)
	assert.Equal(t, []int{2, 3}, got.Dims())
	assert.Equal(t, []float64{11, 12, 13, 24, 25, 26}, got.Data())
}

func TestAddBroadcastsSizeOneAxis(t *testing.T) {
	a := NewFromFlat(shapes.Make(dtypes.Float64, 1, 3), []float64{1, 2, 3})
	b := NewFromFlat(shapes.Make(dtypes.Float64, 2, 3), []float64{10, 10, 10, 20, 20, 20})
	got := Add(a, b)
	assert.Equal(t, []float64{11, 12, 13, 21, 22, 23}, got.Data())
}

func TestSignConventionZeroIsPositive(t *testing.T) {
	a := NewFromFlat(shapes.Make(dtypes.Float64, 3), []float64{-2, 0, 2})
	got := Sign(a)
	assert.Equal(t, []float64{-1, 1, 1}, got.Data())
}

func TestIsZero(t *testing.T) {
	a := NewFromFlat(shapes.Make(dtypes.Float64, 3), []float64{0, 1, -1})
	got := IsZero(a)
	assert.Equal(t, dtypes.Bool, got.Shape().DType)
	assert.Equal(t, []float64{1, 0, 0}, got.Data())
}

func TestWhereSelectsElementwise(t *testing.T) {
	cond := NewFromFlat(shapes.Make(dtypes.Bool, 3), []float64{1, 0, 1})
	onTrue := NewFromFlat(shapes.Make(dtypes.Float64, 3), []float64{1, 2, 3})
	onFalse := NewFromFlat(shapes.Make(dtypes.Float64, 3), []float64{10, 20, 30})
	got := Where(cond, onTrue, onFalse)
	assert.Equal(t, []float64{1, 20, 3}, got.Data())
}

func TestIotaAlongAxis(t *testing.T) {
	got := Iota(shapes.Make(dtypes.Int64, 3, 2), 0)
	assert.Equal(t, []float64{0, 0, 1, 1, 2, 2}, got.Data())

	got = Iota(shapes.Make(dtypes.Int64, 3, 2), 1)
	assert.Equal(t, []float64{0, 1, 0, 1, 0, 1}, got.Data())
}

func TestReduceSumKeepDims(t *testing.T) {
	a := NewFromFlat(shapes.Make(dtypes.Float64, 2, 3), []float64{1, 2, 3, 4, 5, 6})
	got := ReduceSum(a, []int{-1}, false)
	assert.Equal(t, []int{2}, got.Dims())
	assert.Equal(t, []float64{6, 15}, got.Data())

	kept := ReduceSum(a, []int{-1}, true)
	assert.Equal(t, []int{2, 1}, kept.Dims())
}

func TestInsertAxisIsPureRelabel(t *testing.T) {
	a := NewFromFlat(shapes.Make(dtypes.Float64, 3), []float64{1, 2, 3})
	got := InsertAxis(a, 1)
	assert.Equal(t, []int{3, 1}, got.Dims())
	assert.Equal(t, a.Data(), got.Data())
}

func TestTransposeLast2(t *testing.T) {
	a := NewFromFlat(shapes.Make(dtypes.Float64, 2, 3), []float64{1, 2, 3, 4, 5, 6})
	got := TransposeLast2(a)
	assert.Equal(t, []int{3, 2}, got.Dims())
	assert.Equal(t, []float64{1, 4, 2, 5, 3, 6}, got.Data())
}

func TestSliceAndUpdateSliceRoundTrip(t *testing.T) {
	a := NewFromFlat(shapes.Make(dtypes.Float64, 3, 3), []float64{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	})
	sub := Slice(a, []AxisRange{{Start: 1, End: 3}, {Start: 1, End: 3}})
	assert.Equal(t, []float64{5, 6, 8, 9}, sub.Data())

	zeroed := NewZeros(shapes.Make(dtypes.Float64, 2, 2))
	updated := UpdateSlice(a, zeroed, []int{1, 1})
	assert.Equal(t, []float64{
		1, 2, 3,
		4, 0, 0,
		7, 0, 0,
	}, updated.Data())
	// a itself must be unchanged (no in-place mutation).
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9}, a.Data())
}

func TestMatMulBatched(t *testing.T) {
	a := NewFromFlat(shapes.Make(dtypes.Float64, 2, 2, 2), []float64{
		1, 0, 0, 1,
		2, 0, 0, 2,
	})
	b := NewFromFlat(shapes.Make(dtypes.Float64, 2, 2, 2), []float64{
		1, 2, 3, 4,
		1, 2, 3, 4,
	})
	got := MatMul(a, b, Default)
	require.Equal(t, []int{2, 2, 2}, got.Dims())
	assert.Equal(t, []float64{1, 2, 3, 4, 2, 4, 6, 8}, got.Data())
}

func TestMatMulHighestPrecisionUsesKahanSummation(t *testing.T) {
	// A dot product of terms spanning many orders of magnitude: plain running summation loses
	// the small terms to rounding once the accumulator is dominated by the large one, Kahan
	// compensation recovers them.
	const big = 1e16
	a := NewFromFlat(shapes.Make(dtypes.Float64, 1, 4), []float64{big, 1, 1, 1})
	b := NewFromFlat(shapes.Make(dtypes.Float64, 4, 1), []float64{1, 1, 1, 1})

	plain := MatMul(a, b, High)
	compensated := MatMul(a, b, Highest)

	assert.Equal(t, big, plain.At(0, 0))
	assert.Equal(t, big+3, compensated.At(0, 0))
}

func TestIdentityBatched(t *testing.T) {
	got := Identity(shapes.Make(dtypes.Float64, 2, 3, 3), 3, 3, 2)
	assert.Equal(t, []float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}, got.Data()[:9])
}
