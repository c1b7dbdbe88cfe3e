// SPDX-FileCopyrightText: © 2024 David Stainton
// SPDX-License-Identifier: AGPL-3.0-only

package utils

import (
	"github.com/go-faster/xor"
	"golang.org/x/crypto/blake2b"
)

// SplitPRF combines the shared secrets of several KEMs into one key:
//
//	cct := cct1 || cct2 || cct3 || ...
//	return H(ss1 || cct) XOR H(ss2 || cct) XOR H(ss3 || cct)
//
// which retains IND-CCA2 security as long as any one component KEM
// has it, per "KEM Combiners" by Giacon, Heuer and Poettering
// (https://eprint.iacr.org/2018/024.pdf).
func SplitPRF(ss, cct [][]byte) []byte {
	if len(ss) != len(cct) {
		panic("mismatched slices")
	}

	cctcat := []byte{}
	for i := 0; i < len(cct); i++ {
		cctcat = append(cctcat, cct[i]...)
	}

	hash := func(key, data []byte) []byte {
		h, err := blake2b.New256(nil)
		if err != nil {
			panic(err)
		}
		if _, err = h.Write(key); err != nil {
			panic(err)
		}
		if _, err = h.Write(data); err != nil {
			panic(err)
		}
		return h.Sum(nil)
	}

	acc := hash(ss[0], cctcat)
	for i := 1; i < len(ss); i++ {
		out := make([]byte, len(acc))
		xor.Bytes(out, acc, hash(ss[i], cctcat))
		acc = out
	}
	return acc
}
