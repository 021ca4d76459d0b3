// Copyright 2026 The qrlower Authors. SPDX-License-Identifier: Apache-2.0

// Package dtypes defines the element types that a graph-time tensor handle can carry.
//
// The lowering pass only ever needs to reason about the two floating point types named in
// the specification (Float32, Float64), plus the small set of internal types (Bool, Int64)
// used to build masks and indices during graph construction. It is deliberately not the full
// dtype lattice a real backend would support (no complex numbers, no low precision floats):
// those are out of scope for this subsystem.
package dtypes

import "fmt"

// DType identifies the element type of a tensor handle.
type DType int8

const (
	// InvalidDType is the zero value, used to catch uninitialized shapes.
	InvalidDType DType = iota

	// Bool is used only for masks produced by comparisons (Iota-derived triangle/column masks).
	// It is never a valid dtype for a named tensor in the specification (A, Q, R, v, tau, Y, T).
	Bool

	// Int64 is used only for Iota-generated indices that feed comparisons.
	Int64

	// Float32 is one of the two dtypes the specification allows for named tensors.
	Float32

	// Float64 is the other dtype the specification allows for named tensors.
	Float64
)

//go:generate go run golang.org/x/tools/cmd/stringer -type=DType

func (d DType) String() string {
	switch d {
	case InvalidDType:
		return "InvalidDType"
	case Bool:
		return "Bool"
	case Int64:
		return "Int64"
	case Float32:
		return "Float32"
	case Float64:
		return "Float64"
	default:
		return fmt.Sprintf("DType(%d)", int8(d))
	}
}

// IsFloat reports whether d is one of the specification's two numeric element types.
func (d DType) IsFloat() bool {
	return d == Float32 || d == Float64
}

// IsSupported reports whether d is a value this package knows about.
func (d DType) IsSupported() bool {
	return d > InvalidDType && d <= Float64
}
