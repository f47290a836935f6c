// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Gala Games Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainkey

import (
	"strings"

	"github.com/GalaChain/tokenchain/fault"
)

const (
	// MinUnicodeRune - the composite key separator, sorts below every
	// other rune
	MinUnicodeRune = "\u0000"

	// MaxUnicodeRune - upper bound rune for closing a prefix range
	MaxUnicodeRune = "\U0010ffff"
)

// Record - implemented by every entity stored under a composite key
type Record interface {
	IndexKey() string
	KeyParts() []string
}

// MakeKey - encode an index key and a full set of parts
//
// every part must be non-empty and free of the separator rune; an
// empty index key is rejected
func MakeKey(indexKey string, parts []string) (string, error) {
	if indexKey == "" {
		return "", fault.ErrMissingIndexKey
	}
	if strings.Contains(indexKey, MinUnicodeRune) {
		return "", fault.Invalidf("invalid composite key: index key %q contains the separator rune", indexKey)
	}
	s := strings.Builder{}
	s.WriteString(MinUnicodeRune)
	s.WriteString(indexKey)
	s.WriteString(MinUnicodeRune)
	for i, part := range parts {
		if part == "" {
			return "", fault.ErrEmptyKeyPart
		}
		if strings.Contains(part, MinUnicodeRune) {
			return "", fault.Invalidf("invalid composite key: part %d of %q contains the separator rune", i, indexKey)
		}
		s.WriteString(part)
		s.WriteString(MinUnicodeRune)
	}
	return s.String(), nil
}

// PartialKey - encode a stable prefix of key parts for a range scan
//
// identical encoding to MakeKey; kept separate so call sites show
// whether a full or partial key is intended
func PartialKey(indexKey string, parts []string) (string, error) {
	return MakeKey(indexKey, parts)
}

// KeyOf - encode the full composite key of a record
//
// the part count is checked against the registered descriptor
func KeyOf(r Record) (string, error) {
	d, err := DescriptorFor(r.IndexKey())
	if err != nil {
		return "", err
	}
	parts := r.KeyParts()
	if len(parts) != len(d.Fields) {
		return "", fault.Invalidf("invalid composite key: %q expects %d parts, have %d", r.IndexKey(), len(d.Fields), len(parts))
	}
	return MakeKey(r.IndexKey(), parts)
}

// SplitKey - decode a composite key back into index key and parts
func SplitKey(key string) (string, []string, error) {
	if !strings.HasPrefix(key, MinUnicodeRune) || !strings.HasSuffix(key, MinUnicodeRune) {
		return "", nil, fault.ErrInvalidCompositeKey
	}
	pieces := strings.Split(strings.TrimSuffix(key[len(MinUnicodeRune):], MinUnicodeRune), MinUnicodeRune)
	if len(pieces) == 0 || pieces[0] == "" {
		return "", nil, fault.ErrInvalidCompositeKey
	}
	return pieces[0], pieces[1:], nil
}

// RangeOf - the scan bounds covering every key sharing a partial key
func RangeOf(partial string) (startKey string, endKey string) {
	return partial, partial + MaxUnicodeRune
}
