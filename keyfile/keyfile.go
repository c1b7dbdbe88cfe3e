// SPDX-FileCopyrightText: © 2024 David Stainton
// SPDX-License-Identifier: AGPL-3.0-only

// Package keyfile persists KEM key pairs as CBOR records tagged with
// their scheme name, so a key loaded from disk always comes back under
// the scheme that produced it.
package keyfile

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/cloudflare/circl/kem"
	"github.com/fxamacker/cbor/v2"

	"github.com/katzenpost/hrss/kem/schemes"
)

var (
	// ErrUnknownScheme is returned when loading a key pair whose
	// scheme this build does not provide.
	ErrUnknownScheme = errors.New("keyfile: unknown KEM scheme")

	// Create reusable EncMode interface with immutable options, safe
	// for concurrent use.
	ccbor cbor.EncMode
)

type keyPairRecord struct {
	Scheme     string
	PublicKey  []byte
	PrivateKey []byte
}

// Save writes the key pair to f with mode 0600.
func Save(f string, priv kem.PrivateKey) error {
	pubBlob, err := priv.Public().MarshalBinary()
	if err != nil {
		return err
	}
	privBlob, err := priv.MarshalBinary()
	if err != nil {
		return err
	}

	blob, err := ccbor.Marshal(&keyPairRecord{
		Scheme:     priv.Scheme().Name(),
		PublicKey:  pubBlob,
		PrivateKey: privBlob,
	})
	if err != nil {
		return err
	}
	return os.WriteFile(f, blob, 0600)
}

// Load reads a key pair record from f and parses both halves under
// the scheme named in the record.
func Load(f string) (kem.PublicKey, kem.PrivateKey, error) {
	blob, err := os.ReadFile(f)
	if err != nil {
		return nil, nil, err
	}

	record := new(keyPairRecord)
	if err = cbor.Unmarshal(blob, record); err != nil {
		return nil, nil, fmt.Errorf("keyfile: malformed record %s: %s", f, err)
	}

	scheme := byName(record.Scheme)
	if scheme == nil {
		return nil, nil, ErrUnknownScheme
	}

	pub, err := scheme.UnmarshalBinaryPublicKey(record.PublicKey)
	if err != nil {
		return nil, nil, err
	}
	priv, err := scheme.UnmarshalBinaryPrivateKey(record.PrivateKey)
	if err != nil {
		return nil, nil, err
	}
	return pub, priv, nil
}

func byName(name string) kem.Scheme {
	for _, s := range schemes.All() {
		if strings.EqualFold(s.Name(), name) {
			return s
		}
	}
	return nil
}

func init() {
	var err error
	opts := cbor.CanonicalEncOptions()
	ccbor, err = opts.EncMode()
	if err != nil {
		panic(err)
	}
}
