// Copyright 2026 The qrlower Authors. SPDX-License-Identifier: Apache-2.0

package tensors

import (
	"github.com/lattice-ml/qrlower/pkg/core/shapes"
	"github.com/lattice-ml/qrlower/pkg/support/exceptions"
)

// BroadcastToDims broadcasts t to the given dimensions.
//
// t must have rank <= len(dims). The leading len(t.Dims()) entries of dims must each equal
// the corresponding dimension of t, or t's dimension there must be 1 (standard broadcasting).
// Any trailing axes beyond t's rank are new: t is replicated across them. This mirrors the
// specification's "broadcast tau over the trailing two axes" phrasing, where a per-batch
// scalar (shape [*B]) is broadcast against a per-batch matrix (shape [*B, m, n]).
func (t *Tensor) BroadcastToDims(dims ...int) *Tensor {
	r := t.Rank()
	if r > len(dims) {
		exceptions.Panicf("BroadcastToDims: target rank %d is smaller than tensor rank %d (shape=%s)", len(dims), r, t.shape)
	}
	for i := 0; i < r; i++ {
		if t.shape.Dimensions[i] != dims[i] && t.shape.Dimensions[i] != 1 {
			exceptions.Panicf("BroadcastToDims: axis %d of shape %s cannot broadcast to %d", i, t.shape, dims[i])
		}
	}
	out := NewZeros(shapes.Make(t.shape.DType, dims...))
	srcStrides := strides(t.shape.Dimensions)
	forEachIndex(dims, func(index []int) {
		srcOffset := 0
		for i := 0; i < r; i++ {
			if t.shape.Dimensions[i] != 1 {
				srcOffset += index[i] * srcStrides[i]
			}
		}
		dstOffset := flatIndex(dims, strides(dims), index)
		out.data[dstOffset] = t.data[srcOffset]
	})
	return out
}

// broadcastShape computes the shared broadcast shape of two dimension slices using the same
// rule as BroadcastToDims applied symmetrically: align from the left, each axis must match or
// be 1 on at least one side, and the longer slice's extra trailing axes pass through.
func broadcastShape(a, b []int) []int {
	n := max(len(a), len(b))
	out := make([]int, n)
	for i := 0; i < n; i++ {
		var da, db int = 1, 1
		if i < len(a) {
			da = a[i]
		}
		if i < len(b) {
			db = b[i]
		}
		switch {
		case da == db:
			out[i] = da
		case da == 1:
			out[i] = db
		case db == 1:
			out[i] = da
		default:
			exceptions.Panicf("broadcastShape: incompatible dimensions %v and %v at axis %d", a, b, i)
		}
	}
	return out
}
