// Copyright 2026 The qrlower Authors. SPDX-License-Identifier: Apache-2.0

package tensors

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lattice-ml/qrlower/pkg/core/dtypes"
	"github.com/lattice-ml/qrlower/pkg/core/shapes"
)

func TestBroadcastToDimsAppendsTrailingAxes(t *testing.T) {
	tau := NewFromFlat(shapes.Make(dtypes.Float64, 2), []float64{10, 20})
	got := tau.BroadcastToDims(2, 3, 4)
	assert.Equal(t, []int{2, 3, 4}, got.Dims())
	assert.Equal(t, 10.0, got.At(0, 0, 0))
	assert.Equal(t, 10.0, got.At(0, 2, 3))
	assert.Equal(t, 20.0, got.At(1, 0, 0))
}

func TestBroadcastToDimsSizeOneAxis(t *testing.T) {
	row := NewFromFlat(shapes.Make(dtypes.Float64, 1, 3), []float64{1, 2, 3})
	got := row.BroadcastToDims(2, 3)
	assert.Equal(t, []float64{1, 2, 3, 1, 2, 3}, got.Data())
}

func TestBroadcastShapeSymmetric(t *testing.T) {
	assert.Equal(t, []int{2, 3}, broadcastShape([]int{2, 1}, []int{1, 3}))
	assert.Equal(t, []int{2, 3, 4}, broadcastShape([]int{2}, []int{2, 3, 4}))
}
