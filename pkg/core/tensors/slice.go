// Copyright 2026 The qrlower Authors. SPDX-License-Identifier: Apache-2.0

package tensors

import (
	"github.com/lattice-ml/qrlower/pkg/core/shapes"
	"github.com/lattice-ml/qrlower/pkg/support/exceptions"
)

// AxisRange is a half-open [Start, End) range along one axis, matching how House and QrBlock
// carve out panels and sub-columns of A.
type AxisRange struct {
	Start, End int
}

// Len is the number of elements the range covers.
func (r AxisRange) Len() int { return r.End - r.Start }

// FullAxis returns the range covering all of dim.
func FullAxis(dim int) AxisRange { return AxisRange{Start: 0, End: dim} }

// Slice extracts a static rectangular sub-tensor. ranges must have one entry per axis of a, each
// a non-empty range inside that axis (use FullAxis(a.Dims()[axis]) to take a whole axis); any
// other range panics.
func Slice(a *Tensor, ranges []AxisRange) *Tensor {
	if len(ranges) != a.Rank() {
		exceptions.Panicf("Slice: expected %d ranges, got %d (shape=%s)", a.Rank(), len(ranges), a.shape)
	}
	outDims := make([]int, a.Rank())
	for i, r := range ranges {
		if r.Start < 0 || r.End > a.shape.Dimensions[i] || r.Start >= r.End {
			exceptions.Panicf("Slice: range %v invalid for axis %d (dim=%d)", r, i, a.shape.Dimensions[i])
		}
		outDims[i] = r.Len()
	}
	out := NewZeros(shapes.Make(a.shape.DType, outDims...))
	srcStrides := strides(a.shape.Dimensions)
	forEachIndex(outDims, func(index []int) {
		srcIdx := make([]int, len(index))
		for i, v := range index {
			srcIdx[i] = v + ranges[i].Start
		}
		out.data[flatIndex(outDims, strides(outDims), index)] = a.data[flatIndex(a.shape.Dimensions, srcStrides, srcIdx)]
	})
	return out
}

// UpdateSlice returns a copy of a with the rectangular region described by starts overwritten
// by update. update's shape gives the extent of the region on every axis; starts gives the
// offset of that region within a. This is the mechanism BuildQR and QrBlock use to write a
// panel factorization or a trailing update back into a larger tensor without ever mutating
// an existing value in place (see the specification's note on masked-select in lieu of
// in-place writes).
func UpdateSlice(a, update *Tensor, starts []int) *Tensor {
	if len(starts) != a.Rank() || a.Rank() != update.Rank() {
		exceptions.Panicf("UpdateSlice: rank mismatch (base=%s, update=%s, starts=%v)", a.shape, update.shape, starts)
	}
	for i, s := range starts {
		if s < 0 || s+update.shape.Dimensions[i] > a.shape.Dimensions[i] {
			exceptions.Panicf("UpdateSlice: update axis %d (start=%d, len=%d) out of bounds for base dim %d", i, s, update.shape.Dimensions[i], a.shape.Dimensions[i])
		}
	}
	out := a.Clone()
	baseStrides := strides(a.shape.Dimensions)
	forEachIndex(update.shape.Dimensions, func(index []int) {
		dstIdx := make([]int, len(index))
		for i, v := range index {
			dstIdx[i] = v + starts[i]
		}
		out.data[flatIndex(a.shape.Dimensions, baseStrides, dstIdx)] = update.data[flatIndex(update.shape.Dimensions, strides(update.shape.Dimensions), index)]
	})
	return out
}
