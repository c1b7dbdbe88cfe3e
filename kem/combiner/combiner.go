// SPDX-FileCopyrightText: © 2024 David Stainton
// SPDX-License-Identifier: AGPL-3.0-only

// Package combiner defines a KEM combiner type that can combine any
// number of KEMs into a single hybrid. The construction is the split
// PRF combiner of https://eprint.iacr.org/2018/024.pdf.
package combiner

import (
	"errors"
	"fmt"

	"github.com/cloudflare/circl/kem"

	"github.com/katzenpost/hrss/kem/utils"
	"github.com/katzenpost/hrss/rand"
)

var (
	// ErrUninitialized indicates a key wasn't initialized.
	ErrUninitialized = errors.New("public or private key not initialized")
)

// PublicKey is the public key of a combined KEM.
type PublicKey struct {
	scheme *Scheme
	keys   []kem.PublicKey
}

// PrivateKey is the private key of a combined KEM.
type PrivateKey struct {
	scheme *Scheme
	keys   []kem.PrivateKey
}

// Scheme is a hybrid KEM built from any number of component KEMs.
type Scheme struct {
	name    string
	schemes []kem.Scheme
}

// PrivateKey methods

// Scheme returns the given private key's scheme object.
func (sk *PrivateKey) Scheme() kem.Scheme { return sk.scheme }

// MarshalBinary creates a binary blob of the key.
func (sk *PrivateKey) MarshalBinary() ([]byte, error) {
	if sk.keys == nil {
		return nil, ErrUninitialized
	}

	blobs := []byte{}
	for i := 0; i < len(sk.keys); i++ {
		if sk.keys[i] == nil {
			return nil, ErrUninitialized
		}
		blob, err := sk.keys[i].MarshalBinary()
		if err != nil {
			return nil, err
		}
		blobs = append(blobs, blob...)
	}

	return blobs, nil
}

// Equal performs a non-constant time key comparison.
func (sk *PrivateKey) Equal(other kem.PrivateKey) bool {
	oth, ok := other.(*PrivateKey)
	if !ok {
		return false
	}
	if len(sk.keys) != len(oth.keys) {
		return false
	}

	for i := 0; i < len(sk.keys); i++ {
		if !sk.keys[i].Equal(oth.keys[i]) {
			return false
		}
	}
	return true
}

// Public returns a public key, given a private key.
func (sk *PrivateKey) Public() kem.PublicKey {
	pubkeys := make([]kem.PublicKey, len(sk.keys))
	for i := 0; i < len(sk.keys); i++ {
		pubkeys[i] = sk.keys[i].Public()
	}
	return &PublicKey{
		scheme: sk.scheme,
		keys:   pubkeys,
	}
}

// PublicKey methods

// Scheme returns the scheme object for the given public key.
func (pk *PublicKey) Scheme() kem.Scheme { return pk.scheme }

// Equal performs a non-constant time key comparison.
func (pk *PublicKey) Equal(other kem.PublicKey) bool {
	oth, ok := other.(*PublicKey)
	if !ok {
		return false
	}
	if len(pk.keys) != len(oth.keys) {
		return false
	}

	for i := 0; i < len(pk.keys); i++ {
		if !pk.keys[i].Equal(oth.keys[i]) {
			return false
		}
	}
	return true
}

// MarshalBinary returns a binary blob of the key.
func (pk *PublicKey) MarshalBinary() ([]byte, error) {
	if pk.keys == nil {
		return nil, ErrUninitialized
	}

	blobs := []byte{}
	for i := 0; i < len(pk.keys); i++ {
		if pk.keys[i] == nil {
			return nil, ErrUninitialized
		}
		blob, err := pk.keys[i].MarshalBinary()
		if err != nil {
			return nil, err
		}
		blobs = append(blobs, blob...)
	}

	return blobs, nil
}

// Scheme methods

// New creates a new hybrid KEM given the slice of component KEM
// schemes. The order of the schemes fixes the wire layout of keys,
// ciphertexts and seeds.
func New(name string, schemes []kem.Scheme) *Scheme {
	for _, x := range schemes {
		if x == nil {
			panic("KEM scheme cannot be nil")
		}
	}
	return &Scheme{
		name:    name,
		schemes: schemes,
	}
}

// Name returns the name of the KEM.
func (sch *Scheme) Name() string { return sch.name }

// PublicKeySize returns the KEM's public key size in bytes.
func (sch *Scheme) PublicKeySize() int {
	sum := 0
	for _, s := range sch.schemes {
		sum += s.PublicKeySize()
	}
	return sum
}

// PrivateKeySize returns the KEM's private key size in bytes.
func (sch *Scheme) PrivateKeySize() int {
	sum := 0
	for _, s := range sch.schemes {
		sum += s.PrivateKeySize()
	}
	return sum
}

// SeedSize returns the KEM's seed size in bytes.
func (sch *Scheme) SeedSize() int {
	sum := 0
	for _, s := range sch.schemes {
		sum += s.SeedSize()
	}
	return sum
}

// SharedKeySize returns the KEM's shared key size in bytes.
func (sch *Scheme) SharedKeySize() int {
	return 32
}

// CiphertextSize returns the KEM's ciphertext size in bytes.
func (sch *Scheme) CiphertextSize() int {
	sum := 0
	for _, s := range sch.schemes {
		sum += s.CiphertextSize()
	}
	return sum
}

// EncapsulationSeedSize returns the KEM's encapsulation seed size in
// bytes.
func (sch *Scheme) EncapsulationSeedSize() int {
	sum := 0
	for _, s := range sch.schemes {
		sum += s.EncapsulationSeedSize()
	}
	return sum
}

// GenerateKeyPair generates a keypair.
func (sch *Scheme) GenerateKeyPair() (kem.PublicKey, kem.PrivateKey, error) {
	pubKeys := make([]kem.PublicKey, len(sch.schemes))
	privKeys := make([]kem.PrivateKey, len(sch.schemes))

	for i := 0; i < len(sch.schemes); i++ {
		pk, sk, err := sch.schemes[i].GenerateKeyPair()
		if err != nil {
			return nil, nil, err
		}
		pubKeys[i] = pk
		privKeys[i] = sk
	}

	return &PublicKey{
			scheme: sch,
			keys:   pubKeys,
		}, &PrivateKey{
			scheme: sch,
			keys:   privKeys,
		}, nil
}

// DeriveKeyPair uses a seed value to deterministically generate a key
// pair.
func (sch *Scheme) DeriveKeyPair(seed []byte) (kem.PublicKey, kem.PrivateKey) {
	if len(seed) != sch.SeedSize() {
		panic(fmt.Sprintf("seed size must be %d", sch.SeedSize()))
	}

	pubKeys := make([]kem.PublicKey, len(sch.schemes))
	privKeys := make([]kem.PrivateKey, len(sch.schemes))

	offset := 0
	for i := 0; i < len(sch.schemes); i++ {
		seedSize := sch.schemes[i].SeedSize()
		pubKeys[i], privKeys[i] = sch.schemes[i].DeriveKeyPair(seed[offset : offset+seedSize])
		offset += seedSize
	}

	return &PublicKey{
			scheme: sch,
			keys:   pubKeys,
		}, &PrivateKey{
			scheme: sch,
			keys:   privKeys,
		}
}

// Encapsulate creates a shared secret and ciphertext given a public
// key.
func (sch *Scheme) Encapsulate(pk kem.PublicKey) (ct, ss []byte, err error) {
	seed := make([]byte, sch.EncapsulationSeedSize())
	_, err = rand.Reader.Read(seed)
	if err != nil {
		return
	}
	return sch.EncapsulateDeterministically(pk, seed)
}

// EncapsulateDeterministically encapsulates a shared secret to the
// given public key using the given seed value.
func (sch *Scheme) EncapsulateDeterministically(publicKey kem.PublicKey, seed []byte) (ct, ss []byte, err error) {
	if len(seed) != sch.EncapsulationSeedSize() {
		return nil, nil, kem.ErrSeedSize
	}

	pub, ok := publicKey.(*PublicKey)
	if !ok {
		return nil, nil, kem.ErrTypeMismatch
	}

	ciphertexts := make([][]byte, len(sch.schemes))
	sharedSecrets := make([][]byte, len(sch.schemes))
	ciphertextBlob := []byte{}

	offset := 0
	for i := 0; i < len(sch.schemes); i++ {
		seedSize := sch.schemes[i].EncapsulationSeedSize()
		cct, ss, err := sch.schemes[i].EncapsulateDeterministically(pub.keys[i], seed[offset:offset+seedSize])
		if err != nil {
			return nil, nil, err
		}
		ciphertexts[i] = cct
		sharedSecrets[i] = ss
		ciphertextBlob = append(ciphertextBlob, cct...)
		offset += seedSize
	}

	ss = utils.SplitPRF(sharedSecrets, ciphertexts)

	return ciphertextBlob, ss, nil
}

// Decapsulate decrypts a given KEM ciphertext using the given private
// key.
func (sch *Scheme) Decapsulate(sk kem.PrivateKey, ct []byte) ([]byte, error) {
	if len(ct) != sch.CiphertextSize() {
		return nil, kem.ErrCiphertextSize
	}

	priv, ok := sk.(*PrivateKey)
	if !ok {
		return nil, kem.ErrTypeMismatch
	}

	sharedSecrets := make([][]byte, len(sch.schemes))
	ciphertexts := make([][]byte, len(sch.schemes))

	offset := 0
	for i := 0; i < len(sch.schemes); i++ {
		ciphertextSize := sch.schemes[i].CiphertextSize()
		ciphertexts[i] = ct[offset : offset+ciphertextSize]
		ss, err := sch.schemes[i].Decapsulate(priv.keys[i], ciphertexts[i])
		if err != nil {
			return nil, err
		}
		sharedSecrets[i] = ss
		offset += ciphertextSize
	}

	return utils.SplitPRF(sharedSecrets, ciphertexts), nil
}

// UnmarshalBinaryPublicKey unmarshals a binary blob representing a
// public key.
func (sch *Scheme) UnmarshalBinaryPublicKey(buf []byte) (kem.PublicKey, error) {
	if len(buf) != sch.PublicKeySize() {
		return nil, kem.ErrPubKeySize
	}

	publicKeys := make([]kem.PublicKey, len(sch.schemes))
	offset := 0
	for i := 0; i < len(sch.schemes); i++ {
		keySize := sch.schemes[i].PublicKeySize()
		pk, err := sch.schemes[i].UnmarshalBinaryPublicKey(buf[offset : offset+keySize])
		if err != nil {
			return nil, err
		}
		publicKeys[i] = pk
		offset += keySize
	}

	return &PublicKey{
		scheme: sch,
		keys:   publicKeys,
	}, nil
}

// UnmarshalBinaryPrivateKey unmarshals a binary blob representing a
// private key.
func (sch *Scheme) UnmarshalBinaryPrivateKey(buf []byte) (kem.PrivateKey, error) {
	if len(buf) != sch.PrivateKeySize() {
		return nil, kem.ErrPrivKeySize
	}

	privateKeys := make([]kem.PrivateKey, len(sch.schemes))
	offset := 0
	for i := 0; i < len(sch.schemes); i++ {
		keySize := sch.schemes[i].PrivateKeySize()
		sk, err := sch.schemes[i].UnmarshalBinaryPrivateKey(buf[offset : offset+keySize])
		if err != nil {
			return nil, err
		}
		privateKeys[i] = sk
		offset += keySize
	}

	return &PrivateKey{
		scheme: sch,
		keys:   privateKeys,
	}, nil
}
