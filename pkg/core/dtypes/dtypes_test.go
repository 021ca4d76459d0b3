// Copyright 2026 The qrlower Authors. SPDX-License-Identifier: Apache-2.0

package dtypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsFloat(t *testing.T) {
	assert.True(t, Float32.IsFloat())
	assert.True(t, Float64.IsFloat())
	assert.False(t, Bool.IsFloat())
	assert.False(t, Int64.IsFloat())
}

func TestIsSupported(t *testing.T) {
	assert.False(t, InvalidDType.IsSupported())
	assert.True(t, Bool.IsSupported())
	assert.True(t, Float64.IsSupported())
}

func TestString(t *testing.T) {
	assert.Equal(t, "Float64", Float64.String())
	assert.Equal(t, "InvalidDType", InvalidDType.String())
}
