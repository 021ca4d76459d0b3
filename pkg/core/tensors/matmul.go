// Copyright 2026 The qrlower Authors. SPDX-License-Identifier: Apache-2.0

package tensors

import (
	"github.com/lattice-ml/qrlower/pkg/core/shapes"
	"github.com/lattice-ml/qrlower/pkg/support/exceptions"
)

// Precision is the accumulation-width hint spec.md §4.4/§6 requires every batched matmul to
// accept and carry through unchanged ("a precision tag passed through to every matmul"). A
// real backend would use it to pick the accumulation type for the dot's inner reduction (e.g.
// bf16-multiply/fp32-accumulate vs full fp32); this software evaluator has only one storage
// width (float64, see tensor.go's package doc), so it expresses the same hint as a choice of
// summation algorithm for MatMul's inner reduction: Highest uses Kahan-compensated summation,
// Default and High use plain running summation.
type Precision int

const (
	// Default is the zero value; MatMul treats it as High.
	Default Precision = iota
	// Highest requests Kahan-compensated summation for the inner reduction.
	Highest
	// High requests plain running summation (the faster, less accurate choice).
	High
)

func (p Precision) String() string {
	switch p {
	case Highest:
		return "Highest"
	case High:
		return "High"
	default:
		return "Default"
	}
}

// MatMul performs a batched matrix multiply: a has shape [*B, m, k], b has shape [*B, k, n],
// the result has shape [*B, m, n]. The batch prefixes of a and b are broadcast against each
// other exactly like any other pair of leading axes (see broadcastShape); this is what lets a
// per-batch matrix multiply against, e.g., a single shared Y built from only the live batch
// rows of a panel. precision selects the inner reduction's accumulation strategy (see the
// Precision doc above); it never changes the shapes or the operands.
func MatMul(a, b *Tensor, precision Precision) *Tensor {
	if a.Rank() < 2 || b.Rank() < 2 {
		exceptions.Panicf("MatMul: both operands must have rank >= 2, got %s and %s", a.shape, b.shape)
	}
	m, k := a.shape.Dimensions[a.Rank()-2], a.shape.Dimensions[a.Rank()-1]
	k2, n := b.shape.Dimensions[b.Rank()-2], b.shape.Dimensions[b.Rank()-1]
	if k != k2 {
		exceptions.Panicf("MatMul: inner dimensions disagree (a=%s, b=%s)", a.shape, b.shape)
	}
	batchA := a.shape.Dimensions[:a.Rank()-2]
	batchB := b.shape.Dimensions[:b.Rank()-2]
	batch := broadcastShape(batchA, batchB)

	ba := a.BroadcastToDims(append(append([]int{}, batch...), m, k)...)
	bb := b.BroadcastToDims(append(append([]int{}, batch...), k, n)...)

	outDims := append(append([]int{}, batch...), m, n)
	out := NewZeros(shapes.Make(a.shape.DType, outDims...))

	outStrides := strides(outDims)
	aStrides := strides(ba.shape.Dimensions)
	bStrides := strides(bb.shape.Dimensions)

	forEachIndex(batch, func(batchIdx []int) {
		for i := 0; i < m; i++ {
			for j := 0; j < n; j++ {
				var sum float64
				var compensation float64
				for p := 0; p < k; p++ {
					aOff := flatIndex(ba.shape.Dimensions, aStrides, append(append([]int{}, batchIdx...), i, p))
					bOff := flatIndex(bb.shape.Dimensions, bStrides, append(append([]int{}, batchIdx...), p, j))
					term := ba.data[aOff] * bb.data[bOff]
					if precision == Highest {
						y := term - compensation
						t := sum + y
						compensation = (t - sum) - y
						sum = t
					} else {
						sum += term
					}
				}
				outOff := flatIndex(outDims, outStrides, append(append([]int{}, batchIdx...), i, j))
				out.data[outOff] = sum
			}
		}
	})
	return out
}

// Identity returns a batched identity matrix of shape [*batchDims, rows, cols], 1 on the main
// diagonal and 0 elsewhere. Used to seed the running orthogonal factor Q before the first
// panel update.
func Identity(shape shapes.Shape, rows, cols int, batchDims ...int) *Tensor {
	dims := append(append([]int{}, batchDims...), rows, cols)
	out := NewZeros(shapes.Make(shape.DType, dims...))
	forEachIndex(dims, func(index []int) {
		r, c := index[len(index)-2], index[len(index)-1]
		if r == c {
			out.data[flatIndex(dims, strides(dims), index)] = 1
		}
	})
	return out
}
