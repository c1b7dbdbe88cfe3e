// SPDX-FileCopyrightText: © 2024 David Stainton
// SPDX-License-Identifier: AGPL-3.0-only

package schemes

import (
	"testing"

	"github.com/cloudflare/circl/kem"
	"github.com/stretchr/testify/require"
)

func testScheme(t *testing.T, s kem.Scheme) {
	t.Logf("ciphertext size %d", s.CiphertextSize())
	t.Logf("shared key size %d", s.SharedKeySize())
	t.Logf("private key size %d", s.PrivateKeySize())
	t.Logf("public key size %d", s.PublicKeySize())
	t.Logf("seed size %d", s.SeedSize())
	t.Logf("encapsulation seed size %d", s.EncapsulationSeedSize())

	pubkey1, privkey1, err := s.GenerateKeyPair()
	require.NoError(t, err)
	ct1, ss1, err := s.Encapsulate(pubkey1)
	require.NoError(t, err)
	ss1b, err := s.Decapsulate(privkey1, ct1)
	require.NoError(t, err)
	require.Equal(t, ss1, ss1b)

	ct2, ss2, err := s.Encapsulate(pubkey1)
	require.NoError(t, err)
	require.NotEqual(t, ct1, ct2)
	require.NotEqual(t, ss1, ss2)

	// Round trip through the binary encodings.
	blob, err := pubkey1.MarshalBinary()
	require.NoError(t, err)
	pubkey2, err := s.UnmarshalBinaryPublicKey(blob)
	require.NoError(t, err)
	require.True(t, pubkey1.Equal(pubkey2))
}

func TestSchemes(t *testing.T) {
	for _, s := range All() {
		t.Logf("Testing %s ----------------------------------", s.Name())
		testScheme(t, s)
	}
}

func TestByName(t *testing.T) {
	s := ByName("ntru-hrss-701")
	require.Equal(t, "NTRU-HRSS-701", s.Name())

	hybrid := ByName("NTRU-HRSS-701-Kyber768")
	require.Equal(t, s.PublicKeySize()+1184, hybrid.PublicKeySize())

	require.Panics(t, func() { ByName("no-such-kem") })
}
