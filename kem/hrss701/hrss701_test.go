// SPDX-FileCopyrightText: © 2024 David Stainton
// SPDX-License-Identifier: AGPL-3.0-only

package hrss701

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katzenpost/hrss/utils"
)

func TestHRSSKEM(t *testing.T) {
	s := Scheme()

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
	require.False(t, utils.CtIsZero(ss1))
	require.False(t, utils.CtIsZero(ct1))

	ss1b, err := s.Decapsulate(privkey1, ct1)
	require.NoError(t, err)
	require.Equal(t, ss1, ss1b)

	ct2, ss2, err := s.Encapsulate(pubkey1)
	require.NoError(t, err)
	require.NotEqual(t, ct1, ct2)
	require.NotEqual(t, ss1, ss2)
}

func TestDeriveKeyPair(t *testing.T) {
	s := Scheme()

	seed := make([]byte, s.SeedSize())
	for i := range seed {
		seed[i] = byte(i)
	}
	pub1, priv1 := s.DeriveKeyPair(seed)
	pub2, priv2 := s.DeriveKeyPair(seed)
	require.True(t, pub1.Equal(pub2))
	require.True(t, priv1.Equal(priv2))

	seed[0] ^= 1
	pub3, _ := s.DeriveKeyPair(seed)
	require.False(t, pub1.Equal(pub3))

	require.Panics(t, func() { s.DeriveKeyPair(seed[:16]) })
}

func TestDeterministicEncapsulation(t *testing.T) {
	s := Scheme()

	pubkey, privkey, err := s.GenerateKeyPair()
	require.NoError(t, err)

	seed := make([]byte, s.EncapsulationSeedSize())
	for i := range seed {
		seed[i] = byte(i * 3)
	}
	ct1, ss1, err := s.EncapsulateDeterministically(pubkey, seed)
	require.NoError(t, err)
	ct2, ss2, err := s.EncapsulateDeterministically(pubkey, seed)
	require.NoError(t, err)
	require.Equal(t, ct1, ct2)
	require.Equal(t, ss1, ss2)

	ss1b, err := s.Decapsulate(privkey, ct1)
	require.NoError(t, err)
	require.Equal(t, ss1, ss1b)
}

func TestImplicitRejectionViaScheme(t *testing.T) {
	s := Scheme()

	pubkey, privkey, err := s.GenerateKeyPair()
	require.NoError(t, err)
	ct, ss, err := s.Encapsulate(pubkey)
	require.NoError(t, err)

	// A corrupted ciphertext decapsulates without error to a
	// different key.
	ct[0] ^= 1
	ssBad, err := s.Decapsulate(privkey, ct)
	require.NoError(t, err)
	require.Len(t, ssBad, s.SharedKeySize())
	require.NotEqual(t, ss, ssBad)

	_, err = s.Decapsulate(privkey, ct[:len(ct)-1])
	require.Error(t, err)
}

func TestMarshalUnmarshal(t *testing.T) {
	s := Scheme()

	pubkey, privkey, err := s.GenerateKeyPair()
	require.NoError(t, err)

	pubBlob, err := pubkey.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, pubBlob, s.PublicKeySize())
	pubkey2, err := s.UnmarshalBinaryPublicKey(pubBlob)
	require.NoError(t, err)
	require.True(t, pubkey.Equal(pubkey2))

	privBlob, err := privkey.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, privBlob, s.PrivateKeySize())
	privkey2, err := s.UnmarshalBinaryPrivateKey(privBlob)
	require.NoError(t, err)
	require.True(t, privkey.Equal(privkey2))
	require.True(t, privkey2.Public().Equal(pubkey))

	// A parsed private key must still decapsulate.
	ct, ss, err := s.Encapsulate(pubkey)
	require.NoError(t, err)
	ssb, err := s.Decapsulate(privkey2, ct)
	require.NoError(t, err)
	require.Equal(t, ss, ssb)
}
