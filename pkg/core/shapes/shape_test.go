// Copyright 2026 The qrlower Authors. SPDX-License-Identifier: Apache-2.0

package shapes

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lattice-ml/qrlower/pkg/core/dtypes"
)

func TestMakePanicsOnNonPositiveDim(t *testing.T) {
	assert.Panics(t, func() {
		Make(dtypes.Float64, 2, 0, 3)
	})
}

func TestBatchDims(t *testing.T) {
	s := Make(dtypes.Float64, 5, 3, 4)
	assert.Equal(t, []int{5}, s.BatchDims(2))
}

func TestDimNegativeIndex(t *testing.T) {
	s := Make(dtypes.Float64, 3, 4, 5)
	assert.Equal(t, 5, s.Dim(-1))
	assert.Equal(t, 4, s.Dim(-2))
}

func TestEqualAndEqualDimensions(t *testing.T) {
	a := Make(dtypes.Float64, 2, 3)
	b := Make(dtypes.Float32, 2, 3)
	assert.False(t, a.Equal(b))
	assert.True(t, a.EqualDimensions(b))
}

func TestConcat(t *testing.T) {
	s := Concat(dtypes.Float64, []int{2, 3}, 4, 5)
	assert.Equal(t, []int{2, 3, 4, 5}, s.Dimensions)
}

func TestScalarIsRank0(t *testing.T) {
	s := Scalar(dtypes.Float64)
	assert.True(t, s.IsScalar())
	assert.Equal(t, 1, s.Size())
}
