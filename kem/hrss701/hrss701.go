// SPDX-FileCopyrightText: © 2024 David Stainton
// SPDX-License-Identifier: AGPL-3.0-only

// Package hrss701 exposes the NTRU-HRSS-701 KEM through the unified
// kem.Scheme interface.
package hrss701

import (
	"crypto/hmac"
	"hash"
	"io"

	"github.com/cloudflare/circl/kem"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/hkdf"

	"github.com/katzenpost/hrss"
	"github.com/katzenpost/hrss/rand"
)

const (
	// PublicKeySize is the public key size in bytes.
	PublicKeySize = hrss.PublicKeySize

	// PrivateKeySize is the private key size in bytes.
	PrivateKeySize = hrss.PrivateKeySize

	// SharedKeySize is the size of the shared key in bytes.
	SharedKeySize = hrss.SharedKeySize

	// CiphertextSize is the size of the ciphertext in bytes.
	CiphertextSize = hrss.CiphertextSize

	// KeySeedSize is the size of the key generation seed. The seed is
	// stretched to the entropy the underlying sampler consumes.
	KeySeedSize = 32

	// EncapsulationSeedSize is the size of the encapsulation seed.
	EncapsulationSeedSize = 32
)

var kdfKeyGenInfo = []byte("hrss-kem-ntru-hrss-701-hkdf-blake2b-keygen")
var kdfEncapInfo = []byte("hrss-kem-ntru-hrss-701-hkdf-blake2b-encap")

func newKDF(seed, info []byte) io.Reader {
	blakeHash := func() hash.Hash {
		h, err := blake2b.New256(nil)
		if err != nil {
			panic(err)
		}
		return h
	}

	return hkdf.New(blakeHash, nil, seed, info)
}

func expandSeed(seed, info []byte, n int) []byte {
	out := make([]byte, n)
	if _, err := io.ReadFull(newKDF(seed, info), out); err != nil {
		panic(err)
	}
	return out
}

// PublicKey is an NTRU-HRSS-701 public key.
type PublicKey struct {
	scheme *scheme
	key    *hrss.PublicKey
}

// PrivateKey is an NTRU-HRSS-701 private key.
type PrivateKey struct {
	scheme *scheme
	key    *hrss.PrivateKey
}

// NewKeyFromSeed derives a public/private keypair deterministically
// from the given seed.
//
// Panics if seed is not of length KeySeedSize.
func NewKeyFromSeed(seed []byte) (*PublicKey, *PrivateKey) {
	if len(seed) != KeySeedSize {
		panic("seed must be of length KeySeedSize")
	}

	entropy := expandSeed(seed, kdfKeyGenInfo, hrss.GenerateKeyEntropySize)
	pubKey, privKey := hrss.GenerateKey(entropy)

	return &PublicKey{
			scheme: &scheme{},
			key:    pubKey,
		}, &PrivateKey{
			scheme: &scheme{},
			key:    privKey,
		}
}

// GenerateKeyPair generates public and private keys using entropy from
// rng. If rng is nil, rand.Reader will be used.
func GenerateKeyPair(rng io.Reader) (*PublicKey, *PrivateKey, error) {
	var seed [KeySeedSize]byte
	if rng == nil {
		rng = rand.Reader
	}
	_, err := io.ReadFull(rng, seed[:])
	if err != nil {
		return nil, nil, err
	}
	pk, sk := NewKeyFromSeed(seed[:])
	return pk, sk, nil
}

type scheme struct{}

var sch kem.Scheme = &scheme{}

// Scheme returns a KEM interface.
func Scheme() kem.Scheme { return sch }

func (*scheme) Name() string               { return "NTRU-HRSS-701" }
func (*scheme) PublicKeySize() int         { return PublicKeySize }
func (*scheme) PrivateKeySize() int        { return PrivateKeySize }
func (*scheme) SeedSize() int              { return KeySeedSize }
func (*scheme) SharedKeySize() int         { return SharedKeySize }
func (*scheme) CiphertextSize() int        { return CiphertextSize }
func (*scheme) EncapsulationSeedSize() int { return EncapsulationSeedSize }

func (*scheme) GenerateKeyPair() (kem.PublicKey, kem.PrivateKey, error) {
	return GenerateKeyPair(rand.Reader)
}

func (*scheme) DeriveKeyPair(seed []byte) (kem.PublicKey, kem.PrivateKey) {
	if len(seed) != KeySeedSize {
		panic(kem.ErrSeedSize)
	}
	return NewKeyFromSeed(seed)
}

func (*scheme) Encapsulate(pk kem.PublicKey) (ct, ss []byte, err error) {
	ct = make([]byte, CiphertextSize)
	ss = make([]byte, SharedKeySize)

	pub, ok := pk.(*PublicKey)
	if !ok {
		return nil, nil, kem.ErrTypeMismatch
	}
	pub.EncapsulateTo(ct, ss, nil)
	return
}

func (*scheme) EncapsulateDeterministically(pk kem.PublicKey, seed []byte) (
	ct, ss []byte, err error) {
	if len(seed) != EncapsulationSeedSize {
		return nil, nil, kem.ErrSeedSize
	}

	ct = make([]byte, CiphertextSize)
	ss = make([]byte, SharedKeySize)

	pub, ok := pk.(*PublicKey)
	if !ok {
		return nil, nil, kem.ErrTypeMismatch
	}
	pub.EncapsulateTo(ct, ss, seed)
	return
}

func (*scheme) Decapsulate(sk kem.PrivateKey, ct []byte) ([]byte, error) {
	if len(ct) != CiphertextSize {
		return nil, kem.ErrCiphertextSize
	}

	priv, ok := sk.(*PrivateKey)
	if !ok {
		return nil, kem.ErrTypeMismatch
	}
	ss := make([]byte, SharedKeySize)
	priv.DecapsulateTo(ss, ct)
	return ss, nil
}

func (s *scheme) UnmarshalBinaryPublicKey(buf []byte) (kem.PublicKey, error) {
	if len(buf) != PublicKeySize {
		return nil, kem.ErrPubKeySize
	}
	pubKey, err := hrss.ParsePublicKey(buf)
	if err != nil {
		return nil, err
	}
	return &PublicKey{
		scheme: s,
		key:    pubKey,
	}, nil
}

func (s *scheme) UnmarshalBinaryPrivateKey(buf []byte) (kem.PrivateKey, error) {
	if len(buf) != PrivateKeySize {
		return nil, kem.ErrPrivKeySize
	}
	privKey, err := hrss.ParsePrivateKey(buf)
	if err != nil {
		return nil, err
	}
	return &PrivateKey{
		scheme: s,
		key:    privKey,
	}, nil
}

// public key methods

func (pk *PublicKey) Scheme() kem.Scheme {
	return pk.scheme
}

// EncapsulateTo derives a shared key and the ciphertext that carries
// it for the public key, using randomness from seed, and writes the
// shared key to ss and ciphertext to ct.
//
// Panics if ss, ct or seed are not of length SharedKeySize,
// CiphertextSize and EncapsulationSeedSize respectively.
//
// seed may be nil, in which case rand.Reader is used to generate one.
func (pk *PublicKey) EncapsulateTo(ct, ss []byte, seed []byte) {
	if seed == nil {
		seed = make([]byte, EncapsulationSeedSize)
		if _, err := rand.Reader.Read(seed); err != nil {
			panic(err)
		}
	} else {
		if len(seed) != EncapsulationSeedSize {
			panic("seed must be of length EncapsulationSeedSize")
		}
	}

	if len(ct) != CiphertextSize {
		panic("ct must be of length CiphertextSize")
	}

	if len(ss) != SharedKeySize {
		panic("ss must be of length SharedKeySize")
	}

	entropy := expandSeed(seed, kdfEncapInfo, hrss.EncapEntropySize)
	ciphertext, sharedKey := pk.key.Encapsulate(entropy)

	copy(ct, ciphertext)
	copy(ss, sharedKey)
}

func (pk *PublicKey) MarshalBinary() (data []byte, err error) {
	return pk.key.Marshal(), nil
}

func (pk *PublicKey) Equal(other kem.PublicKey) bool {
	oth, ok := other.(*PublicKey)
	if !ok {
		return false
	}
	if pk.key == nil || oth.key == nil {
		panic("keys cannot be nil")
	}
	return hmac.Equal(pk.key.Marshal(), oth.key.Marshal())
}

// private key methods

func (sk *PrivateKey) Scheme() kem.Scheme {
	return sk.scheme
}

func (sk *PrivateKey) Public() kem.PublicKey {
	return &PublicKey{
		scheme: sk.scheme,
		key:    sk.key.Public(),
	}
}

// DecapsulateTo computes the shared key which is encapsulated in ct
// for the private key. Invalid ciphertexts yield the implicit
// rejection key rather than an error.
//
// Panics if ct or ss are not of length CiphertextSize and
// SharedKeySize respectively.
func (sk *PrivateKey) DecapsulateTo(ss, ct []byte) {
	if len(ct) != CiphertextSize {
		panic("ct must be of length CiphertextSize")
	}

	if len(ss) != SharedKeySize {
		panic("ss must be of length SharedKeySize")
	}

	copy(ss, sk.key.Decapsulate(ct))
}

func (sk *PrivateKey) MarshalBinary() (data []byte, err error) {
	return sk.key.Marshal(), nil
}

func (sk *PrivateKey) Equal(other kem.PrivateKey) bool {
	oth, ok := other.(*PrivateKey)
	if !ok {
		return false
	}
	if sk.key == nil || oth.key == nil {
		panic("keys cannot be nil")
	}
	return hmac.Equal(sk.key.Marshal(), oth.key.Marshal())
}
