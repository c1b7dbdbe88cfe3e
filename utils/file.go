// SPDX-FileCopyrightText: © 2024 David Stainton
// SPDX-License-Identifier: AGPL-3.0-only

package utils

import (
	"errors"
	"os"
)

// Exists returns true if the file exists. Stat failures other than
// non-existence are treated as fatal.
func Exists(f string) bool {
	_, err := os.Stat(f)
	if err == nil {
		return true
	}
	if errors.Is(err, os.ErrNotExist) {
		return false
	}
	panic(err)
}

// BothExists returns true if both files exist. Key pairs are written
// as two files and must be handled as a unit.
func BothExists(a, b string) bool {
	return Exists(a) && Exists(b)
}

// BothNotExists returns true if neither file exists.
func BothNotExists(a, b string) bool {
	return !Exists(a) && !Exists(b)
}
