// Copyright 2026 The qrlower Authors. SPDX-License-Identifier: Apache-2.0

// Package shapes describes the static shape of a graph-time tensor handle: its element type
// and dimensions. Every tensor produced by the QR lowering has a shape known at graph
// construction time -- see the package doc of qr for why that constraint exists.
package shapes

import (
	"fmt"
	"slices"

	"github.com/lattice-ml/qrlower/pkg/core/dtypes"
	"github.com/lattice-ml/qrlower/pkg/support/exceptions"
)

// Shape is the (DType, Dimensions) pair attached to every Node. Dimensions are stored in
// row-major order, batch axes first, as described by the specification's "*B" prefix notation.
type Shape struct {
	DType      dtypes.DType
	Dimensions []int
}

// Make builds a Shape, panicking if any dimension is non-positive.
func Make(dtype dtypes.DType, dimensions ...int) Shape {
	s := Shape{DType: dtype, Dimensions: slices.Clone(dimensions)}
	for _, d := range dimensions {
		if d <= 0 {
			exceptions.Panicf("shapes.Make(%s): dimensions must all be > 0, got %v", dtype, dimensions)
		}
	}
	return s
}

// Scalar returns a rank-0 shape of the given dtype.
func Scalar(dtype dtypes.DType) Shape {
	return Shape{DType: dtype}
}

// Ok reports whether the shape was constructed through Make/Scalar (as opposed to a bare zero value).
func (s Shape) Ok() bool {
	return s.DType != dtypes.InvalidDType
}

// Rank is the number of dimensions (0 for a scalar).
func (s Shape) Rank() int { return len(s.Dimensions) }

// IsScalar reports whether the shape has rank 0.
func (s Shape) IsScalar() bool { return s.Ok() && s.Rank() == 0 }

// Dim returns the dimension at axis, which may be negative to count from the end.
func (s Shape) Dim(axis int) int {
	adjusted := axis
	if adjusted < 0 {
		adjusted += s.Rank()
	}
	if adjusted < 0 || adjusted >= s.Rank() {
		exceptions.Panicf("Shape.Dim(%d) out of bounds for rank %d (shape=%s)", axis, s.Rank(), s)
	}
	return s.Dimensions[adjusted]
}

// Size is the product of all dimensions (1 for a scalar).
func (s Shape) Size() int {
	size := 1
	for _, d := range s.Dimensions {
		size *= d
	}
	return size
}

// Equal compares dtype and dimensions.
func (s Shape) Equal(other Shape) bool {
	return s.DType == other.DType && slices.Equal(s.Dimensions, other.Dimensions)
}

// EqualDimensions compares dimensions only, ignoring dtype.
func (s Shape) EqualDimensions(other Shape) bool {
	return slices.Equal(s.Dimensions, other.Dimensions)
}

// Clone returns a deep copy.
func (s Shape) Clone() Shape {
	return Shape{DType: s.DType, Dimensions: slices.Clone(s.Dimensions)}
}

// WithDType returns a copy of s with a different dtype, same dimensions.
func (s Shape) WithDType(dtype dtypes.DType) Shape {
	return Shape{DType: dtype, Dimensions: slices.Clone(s.Dimensions)}
}

func (s Shape) String() string {
	if s.Rank() == 0 {
		return fmt.Sprintf("(%s)", s.DType)
	}
	return fmt.Sprintf("(%s)%v", s.DType, s.Dimensions)
}

// BatchDims returns the leading "*B" batch dimensions, i.e. all but the last trailingRank axes.
func (s Shape) BatchDims(trailingRank int) []int {
	if trailingRank > s.Rank() {
		exceptions.Panicf("BatchDims(%d): shape %s has rank %d, smaller than trailingRank", trailingRank, s, s.Rank())
	}
	return slices.Clone(s.Dimensions[:s.Rank()-trailingRank])
}

// Concat returns a new Shape whose dimensions are prefix followed by trailing.
func Concat(dtype dtypes.DType, prefix []int, trailing ...int) Shape {
	dims := make([]int, 0, len(prefix)+len(trailing))
	dims = append(dims, prefix...)
	dims = append(dims, trailing...)
	return Make(dtype, dims...)
}
