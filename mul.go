// SPDX-FileCopyrightText: © 2024 David Stainton
// SPDX-License-Identifier: AGPL-3.0-only

package hrss

import "golang.org/x/sys/cpu"

// useKaratsuba selects the multiplication strategy once at startup.
// Wide vector units make the recursive blocked Karatsuba layout
// profitable; without them the flat schoolbook loop wins on small
// cores. Both paths produce bit-identical results and neither
// branches on, or indexes memory by, coefficient values.
var useKaratsuba = cpu.X86.HasAVX2 || cpu.ARM64.HasASIMD

const schoolbookLimit = 32

// karatsubaMul sets out to a×b, where out has twice the length of a
// and b, which must be of equal length. All arithmetic wraps at 2¹⁶,
// which preserves the result mod Q.
func karatsubaMul(out, scratch, a, b []uint16) {
	if len(a) < schoolbookLimit {
		for i := 0; i < len(a)*2; i++ {
			out[i] = 0
		}
		for i := range a {
			for j := range b {
				out[i+j] += a[i] * b[j]
			}
		}
		return
	}

	lowLen := len(a) / 2
	highLen := len(a) - lowLen
	aLow, aHigh := a[:lowLen], a[lowLen:]
	bLow, bHigh := b[:lowLen], b[lowLen:]

	for i := 0; i < lowLen; i++ {
		out[i] = aHigh[i] + aLow[i]
	}
	if highLen != lowLen {
		out[lowLen] = aHigh[lowLen]
	}

	for i := 0; i < lowLen; i++ {
		out[highLen+i] = bHigh[i] + bLow[i]
	}
	if highLen != lowLen {
		out[highLen+lowLen] = bHigh[lowLen]
	}

	karatsubaMul(scratch, scratch[2*highLen:], out[:highLen], out[highLen:highLen*2])
	karatsubaMul(out[lowLen*2:], scratch[2*highLen:], aHigh, bHigh)
	karatsubaMul(out, scratch[2*highLen:], aLow, bLow)

	for i := 0; i < lowLen*2; i++ {
		scratch[i] -= out[i] + out[lowLen*2+i]
	}
	if lowLen != highLen {
		scratch[lowLen*2] -= out[lowLen*4]
	}

	for i := 0; i < 2*highLen; i++ {
		out[lowLen+i] += scratch[i]
	}
}

// schoolbookMul sets out to a×b by direct convolution.
func schoolbookMul(out, a, b []uint16) {
	for i := 0; i < len(a)*2; i++ {
		out[i] = 0
	}
	for i := range a {
		for j := range b {
			out[i+j] += a[i] * b[j]
		}
	}
}

// mul sets out to a×b mod (Q, x^N - 1).
func (out *poly) mul(a, b *poly) {
	var prod, scratch [2 * N]uint16
	if useKaratsuba {
		karatsubaMul(prod[:], scratch[:], a[:], b[:])
	} else {
		schoolbookMul(prod[:], a[:], b[:])
	}
	for i := range out {
		out[i] = (prod[i] + prod[i+N]) % Q
	}
}
