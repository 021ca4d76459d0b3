// Copyright 2026 The qrlower Authors. SPDX-License-Identifier: Apache-2.0

// Package vecmath is the chunked-SIMD elementwise engine used by the eager tensor evaluator
// (see pkg/core/tensors) when it materializes the result of an elementwise op over contiguous
// operands of equal length (broadcast operands are first materialized at the full shape). It is a thin wrapper over github.com/ajroetker/go-highway/hwy, which
// dispatches each chunk to the widest SIMD instruction set available on the host and falls
// back to plain scalar Go when none is available.
//
// The specification's motivation for blocking QR into compact-WY updates is exactly this:
// push the bulk of the work onto hardware that does many lanes per cycle. The elementwise
// passes over panels (the trailing update, the tau scaling) are the one place outside of
// MatMul where that throughput matters, so they go through here instead of a plain Go loop.
package vecmath

import "github.com/ajroetker/go-highway/hwy"

// Add writes dst[i] = a[i] + b[i] for all three slices of equal length.
func Add(dst, a, b []float64) { binary(dst, a, b, hwy.Add[float64]) }

// Sub writes dst[i] = a[i] - b[i].
func Sub(dst, a, b []float64) { binary(dst, a, b, hwy.Sub[float64]) }

// Mul writes dst[i] = a[i] * b[i].
func Mul(dst, a, b []float64) { binary(dst, a, b, hwy.Mul[float64]) }

// Div writes dst[i] = a[i] / b[i].
func Div(dst, a, b []float64) { binary(dst, a, b, hwy.Div[float64]) }

// FMA writes dst[i] = a[i]*b[i] + c[i] (fused multiply-add).
func FMA(dst, a, b, c []float64) {
	lanes := hwy.MaxLanes[float64]()
	if lanes <= 0 {
		lanes = 1
	}
	n := len(dst)
	for i := 0; i < n; i += lanes {
		end := min(i+lanes, n)
		va := hwy.Load(a[i:end])
		vb := hwy.Load(b[i:end])
		vc := hwy.Load(c[i:end])
		hwy.FMA(va, vb, vc).Store(dst[i:end])
	}
}

func binary(dst, a, b []float64, op func(hwy.Vec[float64], hwy.Vec[float64]) hwy.Vec[float64]) {
	lanes := hwy.MaxLanes[float64]()
	if lanes <= 0 {
		lanes = 1
	}
	n := len(dst)
	for i := 0; i < n; i += lanes {
		end := min(i+lanes, n)
		va := hwy.Load(a[i:end])
		vb := hwy.Load(b[i:end])
		op(va, vb).Store(dst[i:end])
	}
}

// Neg writes dst[i] = -a[i].
func Neg(dst, a []float64) { unary(dst, a, hwy.Neg[float64]) }

// Abs writes dst[i] = |a[i]|.
func Abs(dst, a []float64) { unary(dst, a, hwy.Abs[float64]) }

// Sqrt writes dst[i] = sqrt(a[i]).
func Sqrt(dst, a []float64) { unary(dst, a, hwy.Sqrt[float64]) }

func unary(dst, a []float64, op func(hwy.Vec[float64]) hwy.Vec[float64]) {
	lanes := hwy.MaxLanes[float64]()
	if lanes <= 0 {
		lanes = 1
	}
	n := len(dst)
	for i := 0; i < n; i += lanes {
		end := min(i+lanes, n)
		va := hwy.Load(a[i:end])
		op(va).Store(dst[i:end])
	}
}

// Sum reduces a to a single scalar by summing all elements, accumulating chunk-wise to keep
// the SIMD reduction path hot even for long vectors.
func Sum(a []float64) float64 {
	lanes := hwy.MaxLanes[float64]()
	if lanes <= 0 {
		lanes = 1
	}
	var total float64
	n := len(a)
	for i := 0; i < n; i += lanes {
		end := min(i+lanes, n)
		total += hwy.ReduceSum(hwy.Load(a[i:end]))
	}
	return total
}
