// SPDX-FileCopyrightText: © 2024 David Stainton
// SPDX-License-Identifier: AGPL-3.0-only

package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExists(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")

	require.False(t, Exists(a))
	require.True(t, BothNotExists(a, b))
	require.False(t, BothExists(a, b))

	require.NoError(t, os.WriteFile(a, []byte("x"), 0600))
	require.True(t, Exists(a))
	require.False(t, BothNotExists(a, b))
	require.False(t, BothExists(a, b))

	require.NoError(t, os.WriteFile(b, []byte("y"), 0600))
	require.True(t, BothExists(a, b))
}
