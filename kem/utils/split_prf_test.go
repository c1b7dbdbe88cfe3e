// SPDX-FileCopyrightText: © 2024 David Stainton
// SPDX-License-Identifier: AGPL-3.0-only

package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitPRF(t *testing.T) {
	ss1 := []byte("ss1ss1ss1ss1ss1ss1ss1ss1ss1ss1ss")
	ss2 := []byte("ss2ss2ss2ss2ss2ss2ss2ss2ss2ss2ss")
	cct1 := []byte("cct1cct1cct1cct1")
	cct2 := []byte("cct2cct2cct2cct2")

	out := SplitPRF([][]byte{ss1, ss2}, [][]byte{cct1, cct2})
	require.Len(t, out, 32)

	// XOR is commutative only over matching ciphertext concatenations:
	// swapping the order changes the concatenation and so the output.
	swapped := SplitPRF([][]byte{ss2, ss1}, [][]byte{cct2, cct1})
	require.NotEqual(t, out, swapped)

	// Deterministic.
	require.Equal(t, out, SplitPRF([][]byte{ss1, ss2}, [][]byte{cct1, cct2}))

	require.Panics(t, func() { SplitPRF([][]byte{ss1}, [][]byte{cct1, cct2}) })
}
