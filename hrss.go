// SPDX-FileCopyrightText: © 2024 David Stainton
// SPDX-License-Identifier: AGPL-3.0-only

// Package hrss implements the NTRU-HRSS-701 key encapsulation
// mechanism: the scheme of Hülsing, Rijneveld, Schanck and Schwabe
// (https://eprint.iacr.org/2017/667.pdf), instantiated over
// x^701 - 1 with coefficients mod 8192, with implicit rejection of
// invalid ciphertexts.
//
// All operations on secret data run in constant time: loop counts are
// fixed, there are no secret-dependent branches and no memory accesses
// indexed by secret values.
package hrss

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
)

const (
	// N is the degree of the ring; x^N - 1 with N prime.
	N = 701
	// Q is the coefficient modulus of the outer ring, 2¹³.
	Q = 8192

	mod3Bytes = 140
	modQBytes = 1138

	sampleBytes = 350

	// PublicKeySize is the size of a marshaled public key in bytes.
	PublicKeySize = modQBytes
	// CiphertextSize is the size of a ciphertext in bytes.
	CiphertextSize = modQBytes
	// SharedKeySize is the size of an established shared key in bytes.
	SharedKeySize = 32
	// PrivateKeySize is the size of a marshaled private key in bytes:
	// f, f⁻¹ mod 3, h, h⁻¹ mod Q and the implicit-rejection HMAC key.
	PrivateKeySize = 2*mod3Bytes + 2*modQBytes + 32

	// GenerateKeyEntropySize is the number of entropy bytes consumed
	// by GenerateKey.
	GenerateKeyEntropySize = 2*sampleBytes + 32
	// EncapEntropySize is the number of entropy bytes consumed by
	// Encapsulate.
	EncapEntropySize = 2 * sampleBytes
)

var (
	// ErrPublicKeySize indicates a public key blob of the wrong length.
	ErrPublicKeySize = errors.New("hrss: invalid public key size")
	// ErrPublicKeyFormat indicates a malformed public key encoding.
	ErrPublicKeyFormat = errors.New("hrss: malformed public key")
	// ErrPrivateKeySize indicates a private key blob of the wrong length.
	ErrPrivateKeySize = errors.New("hrss: invalid private key size")
	// ErrPrivateKeyFormat indicates a malformed private key encoding.
	ErrPrivateKeyFormat = errors.New("hrss: malformed private key")
)

// PublicKey is an NTRU-HRSS-701 public key.
type PublicKey struct {
	h poly
}

// PrivateKey is an NTRU-HRSS-701 private key. It carries the public
// key so that decapsulation can re-encapsulate the recovered message.
type PrivateKey struct {
	PublicKey
	f, fp   poly3
	hInv    poly
	hmacKey [32]byte
}

// ParsePublicKey parses a marshaled public key. No partial object is
// returned on error.
func ParsePublicKey(in []byte) (*PublicKey, error) {
	pub := new(PublicKey)
	if err := pub.FromBytes(in); err != nil {
		return nil, err
	}
	return pub, nil
}

// FromBytes deserializes a marshaled public key into pub. On error pub
// is left unchanged.
func (pub *PublicKey) FromBytes(in []byte) error {
	if len(in) != PublicKeySize {
		return ErrPublicKeySize
	}
	var h poly
	if !h.unmarshal(in) {
		return ErrPublicKeyFormat
	}
	pub.h = h
	return nil
}

// Bytes returns the canonical encoding of the public key.
func (pub *PublicKey) Bytes() []byte { return pub.Marshal() }

// KeyType returns the PEM block type for public keys.
func (pub *PublicKey) KeyType() string { return "NTRU-HRSS-701 PUBLIC KEY" }

// Marshal returns the canonical 1138-byte encoding of the public key.
func (pub *PublicKey) Marshal() []byte {
	ret := make([]byte, modQBytes)
	pub.h.marshal(ret)
	return ret
}

// GenerateKey generates a key pair from the given entropy, which must
// be GenerateKeyEntropySize bytes: two ternary samples for f and g and
// the implicit-rejection HMAC key. It is a total function of the
// entropy and never fails.
func GenerateKey(entropy []byte) (*PublicKey, *PrivateKey) {
	if len(entropy) != GenerateKeyEntropySize {
		panic("hrss: wrong entropy length for key generation")
	}

	var f poly
	f.shortSamplePlus(entropy[:sampleBytes])
	priv := new(PrivateKey)
	priv.f.fromDiscrete(&f)
	priv.fp.invertMod3(&priv.f)

	var g poly
	g.shortSamplePlus(entropy[sampleBytes : 2*sampleBytes])

	// pgPhi1 is p (i.e. 3) × g × Φ₁ (i.e. x-1).
	var pgPhi1 poly
	for i := range g {
		pgPhi1[i] = mod3ToModQ(g[i]) * 3 % Q
	}
	pgPhi1.mulXMinus1()

	var fModQ poly
	fModQ.fromMod3ToModQ(&priv.f)

	// A single inversion of f×(3gΦ₁) yields both h and h⁻¹ with two
	// multiplications each.
	var pfgPhi1, inv poly
	pfgPhi1.mul(&fModQ, &pgPhi1)
	inv.invert(&pfgPhi1)

	priv.h.mul(&inv, &pgPhi1)
	priv.h.mul(&priv.h, &pgPhi1)

	priv.hInv.mul(&inv, &fModQ)
	priv.hInv.mul(&priv.hInv, &fModQ)

	copy(priv.hmacKey[:], entropy[2*sampleBytes:])

	wipePoly(&f)
	wipePoly(&g)
	wipePoly(&fModQ)
	wipePoly(&pfgPhi1)
	wipePoly(&inv)

	pub := new(PublicKey)
	pub.h = priv.h
	return pub, priv
}

// owf is the deterministic one-way function at the heart of both
// encapsulation and the re-encryption check: r·h + lift(m), marshaled.
// r is consumed.
func (pub *PublicKey) owf(m, r *poly) []byte {
	for i := range r {
		r[i] = mod3ToModQ(r[i])
	}

	var mq poly
	mq.lift(m)

	var e poly
	e.mul(r, &pub.h)
	for i := range e {
		e[i] = (e[i] + mq[i]) % Q
	}

	ret := make([]byte, modQBytes)
	e.marshal(ret)
	return ret
}

// Encapsulate derives a ciphertext and shared key from the given
// entropy, which must be EncapEntropySize bytes (two ternary samples,
// m and r). It is a total function of the public key and the entropy.
func (pub *PublicKey) Encapsulate(entropy []byte) (ciphertext, sharedKey []byte) {
	if len(entropy) != EncapEntropySize {
		panic("hrss: wrong entropy length for encapsulation")
	}

	var m, r poly
	m.shortSample(entropy[:sampleBytes])
	r.shortSample(entropy[sampleBytes:])

	var mBytes, rBytes [mod3Bytes]byte
	m.marshalS3(mBytes[:])
	r.marshalS3(rBytes[:])

	ciphertext = pub.owf(&m, &r)

	h := sha256.New()
	h.Write([]byte("shared key\x00"))
	h.Write(mBytes[:])
	h.Write(rBytes[:])
	h.Write(ciphertext)
	sharedKey = h.Sum(nil)

	wipePoly(&m)
	wipePoly(&r)

	return ciphertext, sharedKey
}

// Decapsulate recovers the shared key from a ciphertext. It never
// fails: a ciphertext that is malformed, of the wrong length, or that
// does not survive the re-encryption check yields the implicit
// rejection key HMAC-SHA-256(hmacKey, ciphertext) instead, so a
// caller cannot distinguish the cases. On the non-trivial path the
// selection between the real and rejection keys is a constant-time
// bytewise select.
func (priv *PrivateKey) Decapsulate(ciphertext []byte) (sharedKey []byte) {
	// The rejection key is computed unconditionally, first, so that
	// the publicly-visible early returns below reveal nothing that
	// the attacker does not already know.
	hmacHash := hmac.New(sha256.New, priv.hmacKey[:])
	hmacHash.Write(ciphertext)
	rejectionKey := hmacHash.Sum(nil)

	if len(ciphertext) != CiphertextSize {
		return rejectionKey
	}
	var e poly
	if !e.unmarshal(ciphertext) {
		return rejectionKey
	}

	// m = (e·f)·f⁻¹ over GF(3). The product e·f is reduced mod 3
	// coefficient-wise; the poly3 product tolerates the unreduced
	// intermediate.
	var f, v1 poly
	f.fromMod3ToModQ(&priv.f)
	v1.mul(&e, &f)

	var v13, m3 poly3
	v13.fromDiscreteMod3(&v1)
	m3.mulMod3(&v13, &priv.fp)
	m3.modPhiN()

	var m poly
	m.fromMod3(&m3)

	// Candidate r = (e - lift(m))·h⁻¹ mod Φ(N), which must reduce to
	// a ternary polynomial for a well-formed ciphertext.
	var mLift, delta poly
	mLift.lift(&m)
	for i := range delta {
		delta[i] = (e[i] - mLift[i] + Q) % Q
	}
	delta.mul(&delta, &priv.hInv)
	delta.modPhiN()

	var r3 poly3
	allOk := r3.fromModQ(&delta)

	var mBytes, rBytes [mod3Bytes]byte
	m.marshalS3(mBytes[:])
	r3.marshal(rBytes[:])

	// Re-encrypt (m, r) and compare with what was received.
	var rPoly poly
	rPoly.fromMod3(&r3)
	expectedCiphertext := priv.PublicKey.owf(&m, &rPoly)

	allOk &= subtle.ConstantTimeCompare(ciphertext, expectedCiphertext)

	h := sha256.New()
	h.Write([]byte("shared key\x00"))
	h.Write(mBytes[:])
	h.Write(rBytes[:])
	h.Write(ciphertext)
	sharedKey = h.Sum(nil)

	mask := byte(allOk - 1)
	for i := range sharedKey {
		sharedKey[i] = (sharedKey[i] & ^mask) | (rejectionKey[i] & mask)
	}

	wipePoly(&f)
	wipePoly(&v1)
	wipePoly(&m)
	wipePoly(&rPoly)
	v13.zero()
	m3.zero()
	r3.zero()

	return sharedKey
}

// Marshal returns the fixed 2588-byte private key encoding:
// f ‖ f⁻¹ ‖ h ‖ h⁻¹ ‖ hmacKey. Nothing is recomputed on load.
func (priv *PrivateKey) Marshal() []byte {
	ret := make([]byte, PrivateKeySize)
	priv.f.marshal(ret)
	priv.fp.marshal(ret[mod3Bytes:])
	priv.h.marshal(ret[2*mod3Bytes:])
	priv.hInv.marshal(ret[2*mod3Bytes+modQBytes:])
	copy(ret[2*mod3Bytes+2*modQBytes:], priv.hmacKey[:])
	return ret
}

// ParsePrivateKey parses a marshaled private key, validating each
// component encoding. No partial object is returned on error.
func ParsePrivateKey(in []byte) (*PrivateKey, error) {
	priv := new(PrivateKey)
	if err := priv.FromBytes(in); err != nil {
		return nil, err
	}
	return priv, nil
}

// Bytes returns the canonical encoding of the private key.
func (priv *PrivateKey) Bytes() []byte { return priv.Marshal() }

// KeyType returns the PEM block type for private keys.
func (priv *PrivateKey) KeyType() string { return "NTRU-HRSS-701 PRIVATE KEY" }

// FromBytes deserializes a marshaled private key into priv.
func (priv *PrivateKey) FromBytes(in []byte) error {
	if len(in) != PrivateKeySize {
		return ErrPrivateKeySize
	}

	var tmp poly
	if !tmp.unmarshalS3(in[:mod3Bytes]) {
		return ErrPrivateKeyFormat
	}
	priv.f.fromDiscrete(&tmp)
	if !tmp.unmarshalS3(in[mod3Bytes : 2*mod3Bytes]) {
		return ErrPrivateKeyFormat
	}
	priv.fp.fromDiscrete(&tmp)
	if !priv.h.unmarshal(in[2*mod3Bytes : 2*mod3Bytes+modQBytes]) {
		return ErrPrivateKeyFormat
	}
	if !priv.hInv.unmarshal(in[2*mod3Bytes+modQBytes : 2*mod3Bytes+2*modQBytes]) {
		return ErrPrivateKeyFormat
	}
	copy(priv.hmacKey[:], in[2*mod3Bytes+2*modQBytes:])
	wipePoly(&tmp)
	return nil
}

// Public returns the public half of the key pair.
func (priv *PrivateKey) Public() *PublicKey {
	pub := new(PublicKey)
	pub.h = priv.h
	return pub
}

// Reset scrubs all key material from the private key.
func (priv *PrivateKey) Reset() {
	priv.f.zero()
	priv.fp.zero()
	wipePoly(&priv.hInv)
	wipePoly(&priv.h)
	for i := range priv.hmacKey {
		priv.hmacKey[i] = 0
	}
}

func wipePoly(p *poly) {
	for i := range p {
		p[i] = 0
	}
}
