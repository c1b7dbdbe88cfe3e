// SPDX-FileCopyrightText: © 2024 David Stainton
// SPDX-License-Identifier: AGPL-3.0-only

package hrss

import "crypto/subtle"

// poly is a degree-700 polynomial with coefficients mod Q. Transient
// values outside [0, Q) are allowed inside multiplication and are
// normalized before results escape.
type poly [N]uint16

// mod3ToModQ maps {0, 1, 2, 3} to {0, 1, Q-1, 0xffff}. An input of
// three should never occur but is mapped to an impossible value so
// that modQToMod3 can catch invalid inputs.
func mod3ToModQ(n uint16) uint16 {
	return uint16(uint64(0xffff1fff00010000) >> (16 * n))
}

// modQToMod3 maps {0, 1, Q-1} to {0, 1, 2} and also returns one if the
// input was in range and zero otherwise.
func modQToMod3(n uint16) (uint16, int) {
	result := n&3 - n>>1&1
	return result, subtle.ConstantTimeEq(int32(mod3ToModQ(result)), int32(n))
}

// mod3ResultToModQ maps {0, 1, 2, 4} (the possible products of two
// trits) to {0, 1, Q-1, 1}.
func mod3ResultToModQ(n uint16) uint16 {
	return ((((uint16(0x13) >> n) & 1) - 1) & 0x1fff) | ((uint16(0x12) >> n) & 1)
}

func (p *poly) fromMod2(in *poly2) {
	var shift uint
	words := in[:]
	word := words[0]

	for i := range p {
		p[i] = uint16(word & 1)
		word >>= 1
		shift++
		if shift == bitsPerWord {
			words = words[1:]
			word = words[0]
			shift = 0
		}
	}
}

func (p *poly) fromMod3(in *poly3) {
	var shift uint
	s := in.s[:]
	a := in.a[:]
	sw := s[0]
	aw := a[0]

	for i := range p {
		p[i] = uint16(aw&1) + uint16(sw&1)
		aw >>= 1
		sw >>= 1
		shift++
		if shift == bitsPerWord {
			a = a[1:]
			s = s[1:]
			aw = a[0]
			sw = s[0]
			shift = 0
		}
	}
}

func (p *poly) fromMod3ToModQ(in *poly3) {
	var shift uint
	s := in.s[:]
	a := in.a[:]
	sw := s[0]
	aw := a[0]

	for i := range p {
		p[i] = mod3ToModQ(uint16(aw&1) + uint16(sw&1))
		aw >>= 1
		sw >>= 1
		shift++
		if shift == bitsPerWord {
			a = a[1:]
			s = s[1:]
			aw = a[0]
			sw = s[0]
			shift = 0
		}
	}
}

// marshal packs the low 700 coefficients as a little-endian bitstream
// of 13-bit values, eight coefficients per 13 bytes. The 701st
// coefficient is implicit: marshaled ring elements are multiples of
// (x-1) and so their coefficients sum to zero mod Q.
func (in *poly) marshal(out []byte) {
	p := in[:]

	for len(p) >= 8 {
		out[0] = byte(p[0])
		out[1] = byte(p[0]>>8) | byte((p[1]&0x07)<<5)
		out[2] = byte(p[1] >> 3)
		out[3] = byte(p[1]>>11) | byte((p[2]&0x3f)<<2)
		out[4] = byte(p[2]>>6) | byte((p[3]&0x01)<<7)
		out[5] = byte(p[3] >> 1)
		out[6] = byte(p[3]>>9) | byte((p[4]&0x0f)<<4)
		out[7] = byte(p[4] >> 4)
		out[8] = byte(p[4]>>12) | byte((p[5]&0x7f)<<1)
		out[9] = byte(p[5]>>7) | byte((p[6]&0x03)<<6)
		out[10] = byte(p[6] >> 2)
		out[11] = byte(p[6]>>10) | byte((p[7]&0x1f)<<3)
		out[12] = byte(p[7] >> 5)

		p = p[8:]
		out = out[13:]
	}

	// There are four remaining values.
	out[0] = byte(p[0])
	out[1] = byte(p[0]>>8) | byte((p[1]&0x07)<<5)
	out[2] = byte(p[1] >> 3)
	out[3] = byte(p[1]>>11) | byte((p[2]&0x3f)<<2)
	out[4] = byte(p[2]>>6) | byte((p[3]&0x01)<<7)
	out[5] = byte(p[3] >> 1)
	out[6] = byte(p[3] >> 9)
}

// unmarshal parses a 1138-byte encoding. It returns false if the spare
// bits in the final byte are not zero; no other value is rejected. The
// implicit 701st coefficient is reconstructed so that the coefficients
// sum to zero mod Q.
func (out *poly) unmarshal(in []byte) bool {
	p := out[:]
	for i := 0; i < 87; i++ {
		p[0] = uint16(in[0]) | uint16(in[1]&0x1f)<<8
		p[1] = uint16(in[1]>>5) | uint16(in[2])<<3 | uint16(in[3]&3)<<11
		p[2] = uint16(in[3]>>2) | uint16(in[4]&0x7f)<<6
		p[3] = uint16(in[4]>>7) | uint16(in[5])<<1 | uint16(in[6]&0xf)<<9
		p[4] = uint16(in[6]>>4) | uint16(in[7])<<4 | uint16(in[8]&1)<<12
		p[5] = uint16(in[8]>>1) | uint16(in[9]&0x3f)<<7
		p[6] = uint16(in[9]>>6) | uint16(in[10])<<2 | uint16(in[11]&7)<<10
		p[7] = uint16(in[11]>>3) | uint16(in[12])<<5

		p = p[8:]
		in = in[13:]
	}

	// There are four coefficients left over.
	p[0] = uint16(in[0]) | uint16(in[1]&0x1f)<<8
	p[1] = uint16(in[1]>>5) | uint16(in[2])<<3 | uint16(in[3]&3)<<11
	p[2] = uint16(in[3]>>2) | uint16(in[4]&0x7f)<<6
	p[3] = uint16(in[4]>>7) | uint16(in[5])<<1 | uint16(in[6]&0xf)<<9

	if in[6]&0xf0 != 0 {
		return false
	}

	out[N-1] = 0
	var top int
	for _, v := range out {
		top += int(v)
	}

	out[N-1] = uint16(-top) % Q
	return true
}

// marshalS3 packs a polynomial with coefficients in {0, 1, 2} as
// base-3 digits, five per byte.
func (in *poly) marshalS3(out []byte) {
	p := in[:]
	for len(p) >= 5 {
		out[0] = byte(p[0] + p[1]*3 + p[2]*9 + p[3]*27 + p[4]*81)
		out = out[1:]
		p = p[5:]
	}
}

// unmarshalS3 parses a 140-byte base-3 encoding, rejecting any byte
// not less than 3⁵.
func (out *poly) unmarshalS3(in []byte) bool {
	p := out[:]
	for i := 0; i < mod3Bytes; i++ {
		c := in[0]
		if c >= 243 {
			return false
		}
		p[0] = uint16(c % 3)
		p[1] = uint16(c / 3 % 3)
		p[2] = uint16(c / 9 % 3)
		p[3] = uint16(c / 27 % 3)
		p[4] = uint16(c / 81 % 3)

		p = p[5:]
		in = in[1:]
	}

	out[N-1] = 0
	return true
}

func (p *poly) modPhiN() {
	for i := range p {
		p[i] = (p[i] + Q - p[N-1]) % Q
	}
}

// mulXMinus1 sets p to p×(x - 1) mod (x^N - 1): each coefficient is
// negated and the previous one added in.
func (p *poly) mulXMinus1() {
	orig700 := p[N-1]

	for i := N - 1; i > 0; i-- {
		p[i] = (Q - p[i] + p[i-1]) % Q
	}
	p[0] = (Q - p[0] + orig700) % Q
}

// lift computes the HRSS lift of a ternary message polynomial: the
// result is Φ₁·(a/Φ₁ mod Φ(N)) over GF(3), mapped to mod-Q
// coefficients.
//
// 1/(x-1) mod Φ(N) over GF(3) is the repeating pattern
// [1, 0, 2, 1, 0, 2, …], which lets the division be computed as N
// inner products, each derived from the previous one in constant time
// (algorithm eight of appendix B of the HRSS paper). Only the first
// three inner products are computed in full; the rest follow from the
// three-cycle of the pattern and the fixed pattern of differences.
func (out *poly) lift(a *poly) {
	// The first three elements of each of the first three inner
	// products.
	out[0] = a[0] + a[2]
	out[1] = a[1]
	out[2] = 2*a[0] + a[2]

	// Use the repeating pattern to complete the first three inner
	// products.
	for i := 3; i < N-2; i += 3 {
		out[0] += 2*a[i] + a[i+2]
		out[1] += a[i] + 2*a[i+1]
		out[2] += a[i+1] + 2*a[i+2]
	}

	// The three-element pattern does not fill the polynomial exactly
	// since N is not a multiple of three.
	out[2] += a[N-1]
	out[0] += 2 * a[N-2]
	out[1] += a[N-2] + 2*a[N-1]

	// Doubling is used instead of subtraction throughout to avoid
	// underflow: "% 3" does not work correctly for values that have
	// wrapped around 2¹⁶.
	out[0] %= 3
	out[1] %= 3
	out[2] %= 3

	// The remaining inner products each follow from the one three
	// positions back, adjusted by the rotated pattern of differences.
	for i := 3; i < N; i++ {
		out[i] = (out[i-3] + 2*(a[i-2]+a[i-1]+a[i])) % 3
	}

	// Reduce mod Φ(N) by subtracting a multiple of out[700] from
	// every element, and convert to mod Q.
	v := out[N-1] * 2
	for i := range out {
		out[i] = mod3ToModQ((out[i] + v) % 3)
	}

	out.mulXMinus1()
}

// invert sets out to a⁻¹ mod (Q, x^N - 1), computed by inverting mod 2
// and then lifting to mod 2¹³ with four Newton iterations.
func (out *poly) invert(origA *poly) {
	var a, tmp, tmp2, b poly
	b.invertMod2(origA)

	for i := range a {
		a[i] = Q - origA[i]
	}

	// Q is 2¹³ so ceil(log₂ 13) = 4 iterations are required.
	for i := 0; i < 4; i++ {
		tmp.mul(&a, &b)
		tmp[0] += 2
		tmp2.mul(&b, &tmp)
		b = tmp2
	}

	*out = b
}

func (p *poly) cswap(other *poly, swap uint16) {
	for i := range p {
		sum := swap & (p[i] ^ other[i])
		p[i] ^= sum
		other[i] ^= sum
	}
}
