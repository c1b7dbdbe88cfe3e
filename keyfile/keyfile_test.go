// SPDX-FileCopyrightText: © 2024 David Stainton
// SPDX-License-Identifier: AGPL-3.0-only

package keyfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katzenpost/hrss/kem/schemes"
)

func TestSaveLoad(t *testing.T) {
	for _, s := range schemes.All() {
		_, priv, err := s.GenerateKeyPair()
		require.NoError(t, err)

		f := filepath.Join(t.TempDir(), "kem.key")
		require.NoError(t, Save(f, priv))

		pub2, priv2, err := Load(f)
		require.NoError(t, err)
		require.Equal(t, s.Name(), pub2.Scheme().Name())
		require.True(t, priv.Equal(priv2))
		require.True(t, priv.Public().Equal(pub2))
	}
}

func TestLoadUnknownScheme(t *testing.T) {
	f := filepath.Join(t.TempDir(), "kem.key")
	blob, err := ccbor.Marshal(&keyPairRecord{Scheme: "no-such-kem"})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(f, blob, 0600))

	_, _, err = Load(f)
	require.Equal(t, ErrUnknownScheme, err)
}

func TestLoadMalformed(t *testing.T) {
	f := filepath.Join(t.TempDir(), "kem.key")
	require.NoError(t, os.WriteFile(f, []byte("not cbor at all"), 0600))

	_, _, err := Load(f)
	require.Error(t, err)
}
