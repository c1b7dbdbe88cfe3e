// SPDX-FileCopyrightText: © 2024 David Stainton
// SPDX-License-Identifier: AGPL-3.0-only

package hrss

import "encoding/binary"

// shortSample generates a ternary polynomial from 350 bytes of
// entropy, four bits per coefficient. Each pair of bits is summed and
// two adjacent sums are combined as (a - b) mod 3 through a lookup
// word. This is the bias described in section 3.3 of the HRSS paper
// and must be preserved exactly; it is not uniform ternary.
//
//	 b  a  result
//	00 00 00
//	00 01 01
//	00 10 10
//	01 00 10
//	01 01 00
//	01 10 01
//	10 00 01
//	10 01 10
//	10 10 00
//
// (The remaining rows cannot occur as sums of two bits; the lookup
// word maps them to three so that misuse is loud downstream.)
//
//	1111 1111 1100 1001 1101 0010 1110 0100
//	  f    f    c    9    d    2    e    4
func (out *poly) shortSample(in []byte) {
	if len(in) != sampleBytes {
		panic("hrss: wrong entropy length for sample")
	}

	const lookup = uint32(0xffc9d2e4)

	p := out[:]
	for i := 0; i < 87; i++ {
		v := binary.LittleEndian.Uint32(in)
		v2 := (v & 0x55555555) + ((v >> 1) & 0x55555555)
		for j := 0; j < 8; j++ {
			p[j] = uint16(lookup >> ((v2 & 15) << 1) & 3)
			v2 >>= 4
		}
		p = p[8:]
		in = in[4:]
	}

	// The final two bytes provide the last four coefficients.
	v := uint32(binary.LittleEndian.Uint16(in))
	v2 := (v & 0x5555) + ((v >> 1) & 0x5555)
	for j := 0; j < 4; j++ {
		p[j] = uint16(lookup >> ((v2 & 15) << 1) & 3)
		v2 >>= 4
	}

	out[N-1] = 0
}

// shortSamplePlus samples a ternary polynomial and then negates the
// even-positioned coefficients if the correlation between adjacent
// coefficients is negative. The resulting distribution guarantees the
// invertibility precondition needed by key generation (T+ in the HRSS
// paper). The sign test and the conditional negation are both
// constant-time.
func (out *poly) shortSamplePlus(in []byte) {
	out.shortSample(in)

	var sum uint16
	for i := 0; i < N-1; i++ {
		sum += mod3ResultToModQ(out[i] * out[i+1])
	}

	// scale is 1 if the sum is non-negative and 2 (i.e. -1 mod 3)
	// otherwise.
	scale := 1 + (1 & (sum >> 12))
	for i := 0; i < len(out); i += 2 {
		out[i] = (out[i] * scale) % 3
	}
}
