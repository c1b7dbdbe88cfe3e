// rand_reader.go - `crypto/rand.Reader` replacement
// Copyright (C) 2016  Yawning Angel.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package rand provides various utilities related to generating
// cryptographically secure random numbers and byte vectors.
package rand

import (
	"io"

	"golang.org/x/crypto/blake2b"

	"github.com/katzenpost/hrss/utils"
)

const xofEntropySize = 32

var (
	// Reader is a replacement for crypto/rand.Reader.
	Reader io.Reader

	usingImprovedSyscallEntropy = false
	xofKey                      [xofEntropySize]byte
)

type syscallRandReader struct {
	getentropyFn func([]byte) error
}

func (r *syscallRandReader) Read(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}

	// Whiten the output using BLAKE2Xb: the syscall provides a fixed
	// amount of entropy which is stretched to the requested length.
	var xofEntropy [xofEntropySize]byte
	xof, err := blake2b.NewXOF(uint32(len(b)), xofKey[:])
	if err != nil {
		return 0, err
	}
	defer func() {
		xof.Reset()
		utils.ExplicitBzero(xofEntropy[:])
	}()
	if err := r.getentropyFn(xofEntropy[:]); err != nil {
		return 0, err
	}
	if _, err := xof.Write(xofEntropy[:]); err != nil {
		return 0, err
	}
	return xof.Read(b)
}

func initWhitening() {
	if _, err := Reader.Read(xofKey[:]); err != nil {
		panic("BUG: failed to initialize XOF key: " + err.Error())
	}
}
