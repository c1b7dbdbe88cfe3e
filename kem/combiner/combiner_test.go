// SPDX-FileCopyrightText: © 2024 David Stainton
// SPDX-License-Identifier: AGPL-3.0-only

package combiner

import (
	"testing"

	"github.com/cloudflare/circl/kem"
	"github.com/cloudflare/circl/kem/kyber/kyber768"
	"github.com/stretchr/testify/require"

	"github.com/katzenpost/hrss/kem/hrss701"
)

func testCombiner(t *testing.T) *Scheme {
	return New("NTRU-HRSS-701-Kyber768", []kem.Scheme{
		hrss701.Scheme(),
		kyber768.Scheme(),
	})
}

func TestCombinerRoundTrip(t *testing.T) {
	s := testCombiner(t)

	require.Equal(t, hrss701.Scheme().PublicKeySize()+kyber768.Scheme().PublicKeySize(), s.PublicKeySize())
	require.Equal(t, hrss701.Scheme().CiphertextSize()+kyber768.Scheme().CiphertextSize(), s.CiphertextSize())
	require.Equal(t, 32, s.SharedKeySize())

	pubkey, privkey, err := s.GenerateKeyPair()
	require.NoError(t, err)

	ct, ss, err := s.Encapsulate(pubkey)
	require.NoError(t, err)
	require.Len(t, ct, s.CiphertextSize())
	require.Len(t, ss, s.SharedKeySize())

	ssb, err := s.Decapsulate(privkey, ct)
	require.NoError(t, err)
	require.Equal(t, ss, ssb)
}

func TestCombinerDeriveKeyPair(t *testing.T) {
	s := testCombiner(t)

	seed := make([]byte, s.SeedSize())
	for i := range seed {
		seed[i] = byte(i + 1)
	}
	pub1, _ := s.DeriveKeyPair(seed)
	pub2, _ := s.DeriveKeyPair(seed)
	require.True(t, pub1.Equal(pub2))
}

func TestCombinerMarshal(t *testing.T) {
	s := testCombiner(t)

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
	privkey2, err := s.UnmarshalBinaryPrivateKey(privBlob)
	require.NoError(t, err)
	require.True(t, privkey.Equal(privkey2))

	// Either component failing to parse fails the whole key. The
	// final nibble of the NTRU component must be zero.
	pubBlob[hrss701.Scheme().PublicKeySize()-1] |= 0xf0
	_, err = s.UnmarshalBinaryPublicKey(pubBlob)
	require.Error(t, err)

	_, err = s.UnmarshalBinaryPublicKey(pubBlob[:len(pubBlob)-1])
	require.Equal(t, kem.ErrPubKeySize, err)
}

func TestCombinerEqualMismatchedComponents(t *testing.T) {
	hybrid := testCombiner(t)
	plain := New("NTRU-HRSS-701", []kem.Scheme{hrss701.Scheme()})

	hybridPub, hybridPriv, err := hybrid.GenerateKeyPair()
	require.NoError(t, err)
	plainPub, plainPriv, err := plain.GenerateKeyPair()
	require.NoError(t, err)

	// Combiners with different component counts are never equal, in
	// either direction.
	require.False(t, hybridPub.Equal(plainPub))
	require.False(t, plainPub.Equal(hybridPub))
	require.False(t, hybridPriv.Equal(plainPriv))
	require.False(t, plainPriv.Equal(hybridPriv))
}

func TestCombinerTamperedComponent(t *testing.T) {
	s := testCombiner(t)

	pubkey, privkey, err := s.GenerateKeyPair()
	require.NoError(t, err)
	ct, ss, err := s.Encapsulate(pubkey)
	require.NoError(t, err)

	// Corrupting either component ciphertext must change the combined
	// key: the NTRU component rejects implicitly, Kyber rejects
	// implicitly as well, and the split PRF binds both ciphertexts.
	corruptFirst := append([]byte{}, ct...)
	corruptFirst[10] ^= 1
	ss1, err := s.Decapsulate(privkey, corruptFirst)
	require.NoError(t, err)
	require.NotEqual(t, ss, ss1)

	corruptSecond := append([]byte{}, ct...)
	corruptSecond[hrss701.Scheme().CiphertextSize()+10] ^= 1
	ss2, err := s.Decapsulate(privkey, corruptSecond)
	require.NoError(t, err)
	require.NotEqual(t, ss, ss2)
}
