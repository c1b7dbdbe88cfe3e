// SPDX-FileCopyrightText: © 2024 David Stainton
// SPDX-License-Identifier: AGPL-3.0-only

// Package schemes is a registry of the KEM schemes this module
// provides, addressable by name.
package schemes

import (
	"fmt"
	"strings"

	"github.com/cloudflare/circl/kem"
	"github.com/cloudflare/circl/kem/kyber/kyber768"

	"github.com/katzenpost/hrss/kem/combiner"
	"github.com/katzenpost/hrss/kem/hrss701"
)

var allSchemes = [...]kem.Scheme{
	hrss701.Scheme(),

	// A lattice/lattice hybrid: the shared key stays secure as long
	// as either component KEM does.
	combiner.New(
		"NTRU-HRSS-701-Kyber768",
		[]kem.Scheme{
			hrss701.Scheme(),
			kyber768.Scheme(),
		},
	),
}

var allSchemeNames map[string]kem.Scheme

func init() {
	allSchemeNames = make(map[string]kem.Scheme)
	for _, scheme := range allSchemes {
		allSchemeNames[strings.ToLower(scheme.Name())] = scheme
	}
}

// ByName returns the KEM scheme with the given case-insensitive name.
func ByName(name string) kem.Scheme {
	ret := allSchemeNames[strings.ToLower(name)]
	if ret == nil {
		panic(fmt.Sprintf("no such name as %s\n", name))
	}
	return ret
}

// All returns all KEM schemes supported.
func All() []kem.Scheme {
	a := allSchemes
	return a[:]
}
