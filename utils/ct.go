// SPDX-FileCopyrightText: © 2024 David Stainton
// SPDX-License-Identifier: AGPL-3.0-only

package utils

import "crypto/subtle"

// CtIsZero returns true iff the buffer is all zero, in constant time.
func CtIsZero(b []byte) bool {
	var sum byte
	for _, v := range b {
		sum |= v
	}
	return subtle.ConstantTimeByteEq(sum, 0) == 1
}

// ExplicitBzero scrubs the buffer. The write is not conditional on the
// contents so the compiler cannot elide it.
func ExplicitBzero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
