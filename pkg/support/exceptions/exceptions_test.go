// Copyright 2026 The qrlower Authors. SPDX-License-Identifier: Apache-2.0

package exceptions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPanicfRecoveredByTryCatch(t *testing.T) {
	err := TryCatch[error](func() {
		Panicf("bad shape: %d", 3)
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad shape: 3")
}

func TestTryReturnsNilWhenNoPanic(t *testing.T) {
	exception := Try(func() {})
	assert.Nil(t, exception)
}

func TestCatchRethrowsWrongType(t *testing.T) {
	assert.Panics(t, func() {
		defer Catch(func(e error) {
			t.Fatalf("should not have caught a string panic as error")
		})
		Throw("not an error")
	})
}
