// Copyright 2026 The qrlower Authors. SPDX-License-Identifier: Apache-2.0

package tensors

import (
	"math"
	"slices"

	"github.com/lattice-ml/qrlower/internal/vecmath"
	"github.com/lattice-ml/qrlower/pkg/core/dtypes"
	"github.com/lattice-ml/qrlower/pkg/core/shapes"
	"github.com/lattice-ml/qrlower/pkg/support/exceptions"
)

// elementwiseBinary evaluates op over a and b with standard (left-aligned, see broadcast.go)
// broadcasting, tagging the result with resultDType. When fastOp (backed by vecmath) is given
// it is used instead of the per-element op: directly on a and b when they share the exact same
// dimensions, and otherwise on their materialized broadcast copies.
func elementwiseBinary(a, b *Tensor, resultDType dtypes.DType, op func(x, y float64) float64, fastOp func(dst, x, y []float64)) *Tensor {
	if a.shape.EqualDimensions(b.shape) {
		out := NewZeros(a.shape.WithDType(resultDType))
		if fastOp != nil {
			fastOp(out.data, a.data, b.data)
		} else {
			for i := range out.data {
				out.data[i] = op(a.data[i], b.data[i])
			}
		}
		return out
	}
	outDims := broadcastShape(a.shape.Dimensions, b.shape.Dimensions)
	ba := a.BroadcastToDims(outDims...)
	bb := b.BroadcastToDims(outDims...)
	out := NewZeros(shapes.Make(resultDType, outDims...))
	if fastOp != nil {
		fastOp(out.data, ba.data, bb.data)
	} else {
		for i := range out.data {
			out.data[i] = op(ba.data[i], bb.data[i])
		}
	}
	return out
}

// Add is elementwise a+b with broadcasting.
func Add(a, b *Tensor) *Tensor {
	return elementwiseBinary(a, b, a.shape.DType, func(x, y float64) float64 { return x + y }, vecmath.Add)
}

// Sub is elementwise a-b with broadcasting.
func Sub(a, b *Tensor) *Tensor {
	return elementwiseBinary(a, b, a.shape.DType, func(x, y float64) float64 { return x - y }, vecmath.Sub)
}

// Mul is elementwise a*b with broadcasting.
func Mul(a, b *Tensor) *Tensor {
	return elementwiseBinary(a, b, a.shape.DType, func(x, y float64) float64 { return x * y }, vecmath.Mul)
}

// Div is elementwise a/b with broadcasting.
func Div(a, b *Tensor) *Tensor {
	return elementwiseBinary(a, b, a.shape.DType, func(x, y float64) float64 { return x / y }, vecmath.Div)
}

// MulScalar multiplies every element by a Go float64 scalar.
func MulScalar(a *Tensor, scalar float64) *Tensor {
	return Mul(a, Scalar(a.shape.DType, scalar))
}

// AddScalar adds a Go float64 scalar to every element.
func AddScalar(a *Tensor, scalar float64) *Tensor {
	return Add(a, Scalar(a.shape.DType, scalar))
}

func unary(a *Tensor, op func(float64) float64, fastOp func(dst, x []float64)) *Tensor {
	out := NewZeros(a.shape)
	if fastOp != nil {
		fastOp(out.data, a.data)
	} else {
		for i, v := range a.data {
			out.data[i] = op(v)
		}
	}
	return out
}

// Neg is elementwise negation.
func Neg(a *Tensor) *Tensor { return unary(a, func(x float64) float64 { return -x }, vecmath.Neg) }

// Abs is elementwise absolute value.
func Abs(a *Tensor) *Tensor { return unary(a, math.Abs, vecmath.Abs) }

// Sqrt is elementwise square root.
func Sqrt(a *Tensor) *Tensor { return unary(a, math.Sqrt, vecmath.Sqrt) }

// Square is elementwise x*x.
func Square(a *Tensor) *Tensor { return Mul(a, a) }

// Sign returns +1 where x >= 0 and -1 where x < 0. Unlike math.Signbit-based sign functions,
// it never returns 0: House relies on sign(0) := +1 (see specification section 4.1).
func Sign(a *Tensor) *Tensor {
	return unary(a, func(x float64) float64 {
		if x < 0 {
			return -1
		}
		return 1
	}, nil)
}

func compare(a, b *Tensor, op func(x, y float64) bool) *Tensor {
	return elementwiseBinary(a, b, dtypes.Bool, func(x, y float64) float64 {
		if op(x, y) {
			return 1
		}
		return 0
	}, nil)
}

// LessThan is elementwise a<b, returning a Bool tensor.
func LessThan(a, b *Tensor) *Tensor { return compare(a, b, func(x, y float64) bool { return x < y }) }

// GreaterThan is elementwise a>b, returning a Bool tensor.
func GreaterThan(a, b *Tensor) *Tensor { return compare(a, b, func(x, y float64) bool { return x > y }) }

// LessOrEqual is elementwise a<=b, returning a Bool tensor.
func LessOrEqual(a, b *Tensor) *Tensor { return compare(a, b, func(x, y float64) bool { return x <= y }) }

// GreaterOrEqual is elementwise a>=b, returning a Bool tensor.
func GreaterOrEqual(a, b *Tensor) *Tensor {
	return compare(a, b, func(x, y float64) bool { return x >= y })
}

// Equal is elementwise a==b, returning a Bool tensor.
func Equal(a, b *Tensor) *Tensor { return compare(a, b, func(x, y float64) bool { return x == y }) }

// IsZero is elementwise a==0, returning a Bool tensor.
func IsZero(a *Tensor) *Tensor { return compare(a, Scalar(a.shape.DType, 0), func(x, y float64) bool { return x == y }) }

// Where selects elementwise between onTrue and onFalse according to a boolean condition, with
// the same broadcasting behaviour as the other binary ops (condition, onTrue and onFalse are
// all first broadcast against each other's shape).
func Where(condition, onTrue, onFalse *Tensor) *Tensor {
	if condition.shape.DType != dtypes.Bool {
		exceptions.Panicf("Where: condition must be a Bool tensor, got %s", condition.shape)
	}
	outDims := broadcastShape(condition.shape.Dimensions, broadcastShape(onTrue.shape.Dimensions, onFalse.shape.Dimensions))
	bc := condition.BroadcastToDims(outDims...)
	bt := onTrue.BroadcastToDims(outDims...)
	bf := onFalse.BroadcastToDims(outDims...)
	out := NewZeros(shapes.Make(onTrue.shape.DType, outDims...))
	for i := range out.data {
		if bc.data[i] != 0 {
			out.data[i] = bt.data[i]
		} else {
			out.data[i] = bf.data[i]
		}
	}
	return out
}

// Iota returns a tensor of the given shape where the value at each position equals its index
// along iotaAxis (broadcast over every other axis). Iota(shape,0) with shape=[3,2] gives
// [[0,0],[1,1],[2,2]]; Iota(shape,1) gives [[0,1],[0,1],[0,1]].
func Iota(shape shapes.Shape, iotaAxis int) *Tensor {
	axis := iotaAxis
	if axis < 0 {
		axis += shape.Rank()
	}
	if axis < 0 || axis >= shape.Rank() {
		exceptions.Panicf("Iota: axis %d out of range for shape %s", iotaAxis, shape)
	}
	out := NewZeros(shape)
	forEachIndex(shape.Dimensions, func(index []int) {
		out.data[flatIndex(shape.Dimensions, strides(shape.Dimensions), index)] = float64(index[axis])
	})
	return out
}

// ReduceSum sums a over the given axes. If keepDims is true the reduced axes are kept with
// size 1 (matching the specification's "[*B, 1, n]" intermediate shapes); otherwise they are
// dropped and the remaining axes shift down.
func ReduceSum(a *Tensor, axes []int, keepDims bool) *Tensor {
	reduce := make(map[int]bool, len(axes))
	for _, ax := range axes {
		adjusted := ax
		if adjusted < 0 {
			adjusted += a.Rank()
		}
		reduce[adjusted] = true
	}
	var outDims []int
	for i, d := range a.shape.Dimensions {
		if reduce[i] {
			if keepDims {
				outDims = append(outDims, 1)
			}
			continue
		}
		outDims = append(outDims, d)
	}
	if len(outDims) == 0 {
		out := Scalar(a.shape.DType, 0)
		out.data[0] = vecmath.Sum(a.data)
		return out
	}
	out := NewZeros(shapes.Make(a.shape.DType, outDims...))
	outStrides := strides(outDims)
	forEachIndex(a.shape.Dimensions, func(index []int) {
		var outIdx []int
		for i, v := range index {
			if reduce[i] {
				if keepDims {
					outIdx = append(outIdx, 0)
				}
				continue
			}
			outIdx = append(outIdx, v)
		}
		off := flatIndex(outDims, outStrides, outIdx)
		out.data[off] += a.data[flatIndex(a.shape.Dimensions, strides(a.shape.Dimensions), index)]
	})
	return out
}

// Reshape returns a with the same data reinterpreted under a new shape of equal size.
func Reshape(a *Tensor, dims ...int) *Tensor {
	newShape := shapes.Make(a.shape.DType, dims...)
	if newShape.Size() != a.shape.Size() {
		exceptions.Panicf("Reshape: cannot reshape %s into %v (size mismatch)", a.shape, dims)
	}
	return &Tensor{shape: newShape, data: slices.Clone(a.data)}
}

// InsertAxis inserts a size-1 axis at the given position (0 <= axis <= a.Rank()). Since a
// size-1 axis does not change the row-major ordering of existing elements, this is a pure
// relabeling of the shape and does not touch the data.
func InsertAxis(a *Tensor, axis int) *Tensor {
	if axis < 0 || axis > a.Rank() {
		exceptions.Panicf("InsertAxis: axis %d out of range for rank %d", axis, a.Rank())
	}
	dims := make([]int, 0, a.Rank()+1)
	dims = append(dims, a.shape.Dimensions[:axis]...)
	dims = append(dims, 1)
	dims = append(dims, a.shape.Dimensions[axis:]...)
	return &Tensor{shape: shapes.Make(a.shape.DType, dims...), data: slices.Clone(a.data)}
}

// TransposeLast2 swaps the last two axes of a, which must have rank >= 2.
func TransposeLast2(a *Tensor) *Tensor {
	r := a.Rank()
	if r < 2 {
		exceptions.Panicf("TransposeLast2: rank must be >= 2, got shape %s", a.shape)
	}
	dims := slices.Clone(a.shape.Dimensions)
	dims[r-2], dims[r-1] = dims[r-1], dims[r-2]
	out := NewZeros(shapes.Make(a.shape.DType, dims...))
	srcStrides := strides(a.shape.Dimensions)
	forEachIndex(dims, func(index []int) {
		srcIdx := slices.Clone(index)
		srcIdx[r-2], srcIdx[r-1] = srcIdx[r-1], srcIdx[r-2]
		out.data[flatIndex(dims, strides(dims), index)] = a.data[flatIndex(a.shape.Dimensions, srcStrides, srcIdx)]
	})
	return out
}
