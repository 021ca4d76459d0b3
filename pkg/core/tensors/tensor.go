// Copyright 2026 The qrlower Authors. SPDX-License-Identifier: Apache-2.0

// Package tensors is the concrete, eager evaluator that backs every graph.Node while the QR
// lowering is under construction.
//
// The specification treats the tensor primitives (slice, reshape, elementwise arithmetic,
// reductions, batched matmul, masked select, static-trip loops) as externally supplied by a
// backend; this subsystem only ever builds a graph out of them. This package plays the role
// of that backend for a pure-Go software target: a small, portable "interpreter" with no
// dependency on XLA/PJRT, so that the lowering can be exercised and its numerical properties
// tested without a native compiler toolchain. It is deliberately not a performance-tuned
// kernel library -- see internal/vecmath for the one place (contiguous elementwise passes)
// where that matters enough to route through SIMD.
//
// All data is stored internally as float64 regardless of the declared DType. The DType tag is
// carried through every op so that shape/dtype bookkeeping matches what a real backend would
// report, but the storage width itself is collapsed to simplify this software evaluator; see
// DESIGN.md for the rationale.
package tensors

import (
	"slices"

	"github.com/lattice-ml/qrlower/internal/vecmath"
	"github.com/lattice-ml/qrlower/pkg/core/dtypes"
	"github.com/lattice-ml/qrlower/pkg/core/shapes"
	"github.com/lattice-ml/qrlower/pkg/support/exceptions"
)

// Tensor is an immutable, row-major, dense array with a known shape. Every operation in this
// package returns a new Tensor; none of them mutate their operands -- this mirrors the
// single-assignment discipline the specification requires of the graph it builds.
type Tensor struct {
	shape shapes.Shape
	data  []float64
}

// Shape returns the tensor's shape.
func (t *Tensor) Shape() shapes.Shape { return t.shape }

// Rank is a shortcut for t.Shape().Rank().
func (t *Tensor) Rank() int { return t.shape.Rank() }

// Dims returns the dimensions slice (not a copy; callers must not mutate it).
func (t *Tensor) Dims() []int { return t.shape.Dimensions }

// Data returns the flat, row-major backing array (not a copy; callers must not mutate it).
func (t *Tensor) Data() []float64 { return t.data }

// NewZeros allocates a tensor of the given shape filled with zeros.
func NewZeros(shape shapes.Shape) *Tensor {
	return &Tensor{shape: shape, data: make([]float64, shape.Size())}
}

// NewFull allocates a tensor of the given shape with every element set to value.
func NewFull(shape shapes.Shape, value float64) *Tensor {
	data := make([]float64, shape.Size())
	for i := range data {
		data[i] = value
	}
	return &Tensor{shape: shape, data: data}
}

// NewFromFlat wraps a caller-provided flat, row-major array. data is copied.
func NewFromFlat(shape shapes.Shape, data []float64) *Tensor {
	if len(data) != shape.Size() {
		exceptions.Panicf("NewFromFlat: shape %s needs %d elements, got %d", shape, shape.Size(), len(data))
	}
	return &Tensor{shape: shape, data: slices.Clone(data)}
}

// Scalar builds a rank-0 tensor holding a single value.
func Scalar(dtype dtypes.DType, value float64) *Tensor {
	return &Tensor{shape: shapes.Scalar(dtype), data: []float64{value}}
}

// At reads the element at a fully-specified multi-index.
func (t *Tensor) At(index ...int) float64 {
	return t.data[flatIndex(t.shape.Dimensions, strides(t.shape.Dimensions), index)]
}

// Clone returns a deep copy.
func (t *Tensor) Clone() *Tensor {
	return &Tensor{shape: t.shape.Clone(), data: slices.Clone(t.data)}
}

// WithDType returns a copy of t tagged with a different dtype; the underlying values are
// unchanged (this evaluator stores everything as float64; see package doc).
func (t *Tensor) WithDType(dtype dtypes.DType) *Tensor {
	return &Tensor{shape: t.shape.WithDType(dtype), data: slices.Clone(t.data)}
}

// strides returns the row-major strides (in elements, not bytes) for dims.
func strides(dims []int) []int {
	s := make([]int, len(dims))
	acc := 1
	for i := len(dims) - 1; i >= 0; i-- {
		s[i] = acc
		acc *= dims[i]
	}
	return s
}

func flatIndex(dims, strd, index []int) int {
	if len(index) != len(dims) {
		exceptions.Panicf("flatIndex: expected %d indices, got %d", len(dims), len(index))
	}
	offset := 0
	for i, idx := range index {
		if idx < 0 || idx >= dims[i] {
			exceptions.Panicf("flatIndex: index %d out of bounds for axis %d (dim=%d)", idx, i, dims[i])
		}
		offset += idx * strd[i]
	}
	return offset
}

// forEachIndex calls fn once per multi-index of a tensor shaped dims, in row-major order.
// The slice passed to fn is reused across calls; fn must not retain it.
func forEachIndex(dims []int, fn func(index []int)) {
	rank := len(dims)
	if rank == 0 {
		fn(nil)
		return
	}
	idx := make([]int, rank)
	for {
		fn(idx)
		axis := rank - 1
		for axis >= 0 {
			idx[axis]++
			if idx[axis] < dims[axis] {
				break
			}
			idx[axis] = 0
			axis--
		}
		if axis < 0 {
			return
		}
	}
}
