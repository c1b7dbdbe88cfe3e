// SPDX-FileCopyrightText: © 2024 David Stainton
// SPDX-License-Identifier: AGPL-3.0-only

package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCtIsZero(t *testing.T) {
	require.True(t, CtIsZero(nil))
	require.True(t, CtIsZero(make([]byte, 128)))

	b := make([]byte, 128)
	b[127] = 1
	require.False(t, CtIsZero(b))
}

func TestExplicitBzero(t *testing.T) {
	b := []byte{1, 2, 3, 4}
	ExplicitBzero(b)
	require.True(t, CtIsZero(b))
}
