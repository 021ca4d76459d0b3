// Copyright 2026 The qrlower Authors. SPDX-License-Identifier: Apache-2.0

// Package exceptions provides helpers to use Go's panic/recover as a lightweight
// exceptions system for graph-building code.
//
// Graph (and Node) construction functions "throw" errors with panic(): this avoids having
// to thread an error return through every single tensor op (Add, Slice, MatMul, ...) and
// keeps the expansion code readable. qr.BuildQR reports its caller errors by checking its
// arguments up front and returning an error; it does not recover panics, and Try/TryCatch are
// available to callers that want to turn a panic into a value.
package exceptions

import (
	"fmt"

	"github.com/pkg/errors"
)

// Panicf panics with an error built from a pkg/errors stack trace and the formatted message.
func Panicf(format string, args ...any) {
	panic(errors.WithStack(fmt.Errorf(format, args...)))
}

// Catch calls handler if a panic of the given type occurred. Meant to be used in a defer.
//
//	defer exceptions.Catch(func(err error) { ... })
func Catch[E any](handler func(exception E)) {
	exception := recover()
	if exception == nil {
		return
	}
	e, ok := exception.(E)
	if !ok {
		panic(exception)
	}
	handler(e)
}

// Try calls fn and returns whatever value was passed to panic, or nil if fn didn't panic.
func Try(fn func()) (exception any) {
	defer func() { exception = recover() }()
	fn()
	return
}

// TryFor calls fn and recovers only panics of type E, returning the zero value of E if fn
// didn't panic. A panic of a different type is re-thrown.
func TryFor[E any](fn func()) (exception E) {
	defer Catch(func(e E) { exception = e })
	fn()
	return
}

// TryCatch calls fn and, if it panics with a value assignable to E, returns it as the error.
// This is the shape most graph-building helper functions want: fn is expected to either
// succeed silently or panic with an error.
func TryCatch[E any](fn func()) (exception E) {
	return TryFor[E](fn)
}

// Throw is an alias for panic, for callers who prefer the exceptions vocabulary.
func Throw(exception any) {
	panic(exception)
}
