// SPDX-FileCopyrightText: © 2024 David Stainton
// SPDX-License-Identifier: AGPL-3.0-only

package hrss

import "math/bits"

const (
	bitsPerWord      = bits.UintSize
	wordsPerPoly     = (N + bitsPerWord - 1) / bitsPerWord
	fullWordsPerPoly = N / bitsPerWord
	bitsInLastWord   = N % bitsPerWord
)

// poly3 is a degree-700 polynomial over GF(3). Each coefficient is
// bitsliced across the s and a planes:
//
//	 s | a | value
//	---------------
//	 0 | 0 | 0
//	 0 | 1 | 1
//	 1 | 1 | 2 (aka -1)
//	 1 | 0 | <invalid>
//
// With this encoding the following circuits implement arithmetic mod 3:
//
//	(s3, a3) = (s1, a1) × (s2, a2)
//	a3 = a1 ∧ a2
//	s3 = (s1 ⊕ s2) ∧ a3
//
//	(s3, a3) = (s1, a1) + (s2, a2)
//	t = s1 ⊕ a2
//	s3 = t ∧ (s2 ⊕ a1)
//	a3 = (a1 ⊕ a2) ∨ (t ⊕ s2)
//
// Negating a value XORs a into s. The bits above N in the last word are
// always zero.
type poly3 struct {
	s [wordsPerPoly]uint
	a [wordsPerPoly]uint
}

// lsbToAll replicates the least-significant bit of v across a full word.
func lsbToAll(v uint) uint {
	return uint(int(v<<(bitsPerWord-1)) >> (bitsPerWord - 1))
}

func (p *poly3) trim() {
	p.s[wordsPerPoly-1] &= (1 << bitsInLastWord) - 1
	p.a[wordsPerPoly-1] &= (1 << bitsInLastWord) - 1
}

func (p *poly3) zero() {
	for i := range p.a {
		p.s[i] = 0
		p.a[i] = 0
	}
}

// fromDiscrete sets p from a polynomial with coefficients in {0, 1, 2}.
func (p *poly3) fromDiscrete(in *poly) {
	var shift uint
	s := p.s[:]
	a := p.a[:]
	s[0] = 0
	a[0] = 0

	for _, v := range in {
		sBit := uint(v>>1) & 1
		aBit := (uint(v) & 1) | sBit
		s[0] >>= 1
		s[0] |= sBit << (bitsPerWord - 1)
		a[0] >>= 1
		a[0] |= aBit << (bitsPerWord - 1)
		shift++
		if shift == bitsPerWord {
			s = s[1:]
			a = a[1:]
			s[0] = 0
			a[0] = 0
			shift = 0
		}
	}

	a[0] >>= bitsPerWord - shift
	s[0] >>= bitsPerWord - shift
}

// fromModQ sets p from a mod-Q polynomial whose coefficients are
// expected to be in {0, 1, Q-1}. The return value is one if every
// coefficient was in range and zero otherwise; out-of-range
// coefficients still produce some valid trit so that processing can
// continue in constant time.
func (p *poly3) fromModQ(in *poly) int {
	var shift uint
	s := p.s[:]
	a := p.a[:]
	s[0] = 0
	a[0] = 0
	ok := 1

	for _, v := range in {
		vMod3, vOk := modQToMod3(v)
		ok &= vOk

		sBit := uint(vMod3>>1) & 1
		aBit := (uint(vMod3) | uint(vMod3)>>1) & 1
		s[0] >>= 1
		s[0] |= sBit << (bitsPerWord - 1)
		a[0] >>= 1
		a[0] |= aBit << (bitsPerWord - 1)
		shift++
		if shift == bitsPerWord {
			s = s[1:]
			a = a[1:]
			s[0] = 0
			a[0] = 0
			shift = 0
		}
	}

	a[0] >>= bitsPerWord - shift
	s[0] >>= bitsPerWord - shift

	return ok
}

// fromDiscreteMod3 reduces an arbitrary mod-Q polynomial mod 3,
// treating each 13-bit coefficient as a signed value.
func (p *poly3) fromDiscreteMod3(in *poly) {
	var shift uint
	s := p.s[:]
	a := p.a[:]
	s[0] = 0
	a[0] = 0

	for _, v := range in {
		// Duplicate the 13th bit upwards so that the coefficient
		// becomes a signed int16, then reduce mod 3, yielding
		// {-2, -1, 0, 1, 2}.
		v = uint16((int16(v<<3)>>3)%3) & 7

		// The constants below, indexed by the three low bits,
		// map {-2, -1, 0, 1, 2} to the bitsliced forms of
		// {1, -1, 0, 1, -1}.
		s[0] >>= 1
		s[0] |= uint((0x84>>v)&1) << (bitsPerWord - 1)
		a[0] >>= 1
		a[0] |= uint((0xc6>>v)&1) << (bitsPerWord - 1)
		shift++
		if shift == bitsPerWord {
			s = s[1:]
			a = a[1:]
			s[0] = 0
			a[0] = 0
			shift = 0
		}
	}

	a[0] >>= bitsPerWord - shift
	s[0] >>= bitsPerWord - shift
}

// marshal packs the low 700 coefficients as base-3 digits, five per
// byte.
func (p *poly3) marshal(out []byte) {
	s := p.s[:]
	a := p.a[:]
	sw := s[0]
	aw := a[0]
	var shift int

	for i := 0; i < N-1; i += 5 {
		acc, scale := 0, 1
		for j := 0; j < 5; j++ {
			acc += scale * (int(aw&1) + int(sw&1))
			scale *= 3

			shift++
			if shift == bitsPerWord {
				s = s[1:]
				a = a[1:]
				sw = s[0]
				aw = a[0]
				shift = 0
			} else {
				sw >>= 1
				aw >>= 1
			}
		}

		out[0] = byte(acc)
		out = out[1:]
	}
}

// mulConst multiplies every coefficient by the trit (ms, ma).
func (p *poly3) mulConst(ms, ma uint) {
	ms = lsbToAll(ms)
	ma = lsbToAll(ma)

	for i := range p.a {
		outa := ma & p.a[i]
		p.s[i] = (ms ^ p.s[i]) & outa
		p.a[i] = outa
	}
}

func cmovWords(out, in *[wordsPerPoly]uint, mov uint) {
	for i := range out {
		out[i] = (out[i] & ^mov) | (in[i] & mov)
	}
}

// rotWords right-rotates the N-bit value in |in| by |bits|, which must
// be a multiple of bitsPerWord.
func rotWords(out, in *[wordsPerPoly]uint, bits uint) {
	start := bits / bitsPerWord
	n := (N - bits) / bitsPerWord

	for i := uint(0); i < n; i++ {
		out[i] = in[start+i]
	}

	carry := in[wordsPerPoly-1]

	for i := uint(0); i < start; i++ {
		out[n+i] = carry | in[i]<<bitsInLastWord
		carry = in[i] >> (bitsPerWord - bitsInLastWord)
	}

	out[wordsPerPoly-1] = carry
}

// rotBits right-rotates the N-bit value in |in| by |bits|, which must
// be a non-zero power of two less than bitsPerWord.
func rotBits(out, in *[wordsPerPoly]uint, bits uint) {
	if bits == 0 || bits&(bits-1) != 0 || bits > bitsPerWord/2 ||
		bitsInLastWord < bitsPerWord/2 {
		panic("internal error")
	}

	carry := in[wordsPerPoly-1] << (bitsPerWord - bits)

	for i := wordsPerPoly - 2; i >= 0; i-- {
		out[i] = carry | in[i]>>bits
		carry = in[i] << (bitsPerWord - bits)
	}

	out[wordsPerPoly-1] = carry>>(bitsPerWord-bitsInLastWord) |
		in[wordsPerPoly-1]>>bits
}

func (p *poly3) rotWords(bits uint, in *poly3) {
	rotWords(&p.s, &in.s, bits)
	rotWords(&p.a, &in.a, bits)
}

func (p *poly3) rotBits(bits uint, in *poly3) {
	rotBits(&p.s, &in.s, bits)
	rotBits(&p.a, &in.a, bits)
}

func (p *poly3) cmov(in *poly3, mov uint) {
	cmovWords(&p.s, &in.s, mov)
	cmovWords(&p.a, &in.a, mov)
}

// rot right-rotates the coefficients by bits, which must be at most N.
// The runtime does not depend on the value of bits: the rotation is
// assembled from fixed word- and bit-granular rotations, each selected
// by a constant-time conditional move on one bit of the shift.
func (p *poly3) rot(bits uint) {
	if bits > N {
		panic("invalid")
	}
	var shifted poly3

	shift := uint(9)
	for ; (1 << shift) >= bitsPerWord; shift-- {
		shifted.rotWords(1<<shift, p)
		p.cmov(&shifted, lsbToAll(bits>>shift))
	}
	for ; shift < 9; shift-- {
		shifted.rotBits(1<<shift, p)
		p.cmov(&shifted, lsbToAll(bits>>shift))
	}
}

// fmadd sets p to p + m×in, where m is the trit (ms, ma).
func (p *poly3) fmadd(ms, ma uint, in *poly3) {
	ms = lsbToAll(ms)
	ma = lsbToAll(ma)

	for i := range p.a {
		producta := ma & in.a[i]
		products := (ms ^ in.s[i]) & producta

		t := p.s[i] ^ producta
		p.s[i], p.a[i] = t&(products^p.a[i]), (p.a[i]^producta)|(t^products)
	}
}

// modPhiN reduces p mod Φ(N) by subtracting the top coefficient from
// every coefficient.
func (p *poly3) modPhiN() {
	topS := p.s[wordsPerPoly-1] >> (bitsInLastWord - 1)
	topA := p.a[wordsPerPoly-1] >> (bitsInLastWord - 1)
	// Subtraction is addition of the negated trit, and negation XORs
	// a into s.
	adds := lsbToAll(topS ^ topA)
	adda := lsbToAll(topA)

	for i := range p.s {
		t := p.s[i] ^ adda
		p.s[i], p.a[i] = t&(adds^p.a[i]), (p.a[i]^adda)|(t^adds)
	}
}

func (p *poly3) cswap(other *poly3, swap uint) {
	for i := range p.s {
		sums := swap & (p.s[i] ^ other.s[i])
		p.s[i] ^= sums
		other.s[i] ^= sums

		suma := swap & (p.a[i] ^ other.a[i])
		p.a[i] ^= suma
		other.a[i] ^= suma
	}
}

// mulx multiplies p by x mod (x^N - 1), i.e. cyclically shifts the
// coefficients up by one.
func (p *poly3) mulx() {
	carryS := (p.s[wordsPerPoly-1] >> (bitsInLastWord - 1)) & 1
	carryA := (p.a[wordsPerPoly-1] >> (bitsInLastWord - 1)) & 1

	for i := range p.s {
		outCarryS := p.s[i] >> (bitsPerWord - 1)
		outCarryA := p.a[i] >> (bitsPerWord - 1)
		p.s[i] = p.s[i]<<1 | carryS
		p.a[i] = p.a[i]<<1 | carryA
		carryS = outCarryS
		carryA = outCarryA
	}
	p.trim()
}

// divx divides p by x mod (x^N - 1), i.e. cyclically shifts the
// coefficients down by one.
func (p *poly3) divx() {
	carryS := p.s[0] & 1
	carryA := p.a[0] & 1

	for i := 0; i < wordsPerPoly-1; i++ {
		p.s[i] = p.s[i]>>1 | p.s[i+1]<<(bitsPerWord-1)
		p.a[i] = p.a[i]>>1 | p.a[i+1]<<(bitsPerWord-1)
	}
	p.s[wordsPerPoly-1] = p.s[wordsPerPoly-1]>>1 | carryS<<(bitsInLastWord-1)
	p.a[wordsPerPoly-1] = p.a[wordsPerPoly-1]>>1 | carryA<<(bitsInLastWord-1)
}

// mulMod3 sets p to x×y mod Φ(N). The inputs may be unreduced: the
// product is accumulated mod (x^N - 1), which is a multiple of Φ(N),
// and reduced once at the end.
func (p *poly3) mulMod3(x, y *poly3) {
	x3 := *x
	y3 := *y
	s := x3.s[:]
	a := x3.a[:]
	sw := s[0]
	aw := a[0]
	p.zero()
	var shift uint
	for i := 0; i < N; i++ {
		p.fmadd(sw, aw, &y3)
		sw >>= 1
		aw >>= 1
		shift++
		if shift == bitsPerWord {
			s = s[1:]
			a = a[1:]
			sw = s[0]
			aw = a[0]
			shift = 0
		}
		y3.mulx()
	}
	p.modPhiN()
}

// invertMod3 sets p to in⁻¹ mod Φ(N) using the constant-time
// almost-inverse algorithm (algorithm 10 of the HRSS paper, with k
// starting at zero). The iteration count is fixed; every conditional
// is a masked select.
func (p *poly3) invertMod3(in *poly3) {
	var k uint
	degF, degG := uint(N-1), uint(N-1)

	var b, c, g poly3
	f := *in

	// g = Φ(N), i.e. all ones.
	for i := range g.a {
		g.a[i] = ^uint(0)
	}
	g.trim()

	b.a[0] = 1

	var f0s, f0a uint
	stillGoing := ^uint(0)
	for i := 0; i < 2*(N-1)-1; i++ {
		// s = -f₀·g₀, i.e. the product of the constant terms,
		// negated so that the fmadd below subtracts.
		sa := f.a[0] & g.a[0] & 1
		ss := (f.s[0] ^ g.s[0]) & sa
		ss = (ss ^ sa) & stillGoing & 1
		sa &= stillGoing & 1

		shouldSwap := ^uint(int((ss|sa)-1)>>(bitsPerWord-1)) & lt(degF, degG)
		f.cswap(&g, shouldSwap)
		b.cswap(&c, shouldSwap)
		degF, degG = (degG&shouldSwap)|(degF&^shouldSwap), (degF&shouldSwap)|(degG&^shouldSwap)
		f.fmadd(ss, sa, &g)
		b.fmadd(ss, sa, &c)

		f.divx()
		f.s[wordsPerPoly-1] &= ((1 << bitsInLastWord) - 1) >> 1
		f.a[wordsPerPoly-1] &= ((1 << bitsInLastWord) - 1) >> 1
		c.mulx()
		c.s[0] &= ^uint(1)
		c.a[0] &= ^uint(1)

		degF--
		k += 1 & stillGoing
		f0s = (stillGoing & f.s[0]) | (^stillGoing & f0s)
		f0a = (stillGoing & f.a[0]) | (^stillGoing & f0a)
		stillGoing = ^uint(int(degF-1) >> (bitsPerWord - 1))
	}

	k -= N & lt(N, k)
	*p = b
	p.rot(k)
	p.mulConst(f0s, f0a)
	p.modPhiN()
}

// lt returns all ones if a < b and zero otherwise, without branching.
// Both arguments must be small enough that the subtraction cannot wrap
// for a ≥ b, which holds for the degree counters used here.
func lt(a, b uint) uint {
	return uint(int(a-b) >> (bitsPerWord - 1))
}
