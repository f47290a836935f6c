// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Gala Games Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/GalaChain/tokenchain/fault"
)

// TokenClassKey - the four-part identity of a token class
type TokenClassKey struct {
	Collection    string `json:"collection"`
	Category      string `json:"category"`
	Type          string `json:"type"`
	AdditionalKey string `json:"additionalKey"`
}

// Parts - key parts in declaration order
func (k TokenClassKey) Parts() []string {
	return []string{k.Collection, k.Category, k.Type, k.AdditionalKey}
}

func (k TokenClassKey) String() string {
	return fmt.Sprintf("%s|%s|%s|%s", k.Collection, k.Category, k.Type, k.AdditionalKey)
}

// Validate - every field must be present; tokens without a natural
// additional key use the "none" placeholder
func (k TokenClassKey) Validate() error {
	if k.Collection == "" || k.Category == "" || k.Type == "" || k.AdditionalKey == "" {
		return fault.Invalidf("incomplete token class key: %s", k)
	}
	return nil
}

// TokenInstanceKey - a token class key plus an instance number
//
// fungible tokens use instance 0
type TokenInstanceKey struct {
	TokenClassKey
	Instance decimal.Decimal `json:"instance"`
}

func (k TokenInstanceKey) String() string {
	return fmt.Sprintf("%s|%s", k.TokenClassKey, k.Instance)
}

// FungibleInstance - the instance number shared by all units of a
// fungible token
func FungibleInstance() decimal.Decimal {
	return decimal.Zero
}

// TokenInstanceQueryKey - a possibly-partial token instance key
//
// empty fields are unset; set fields must form a stable prefix in key
// field order so the query can bound a range scan
type TokenInstanceQueryKey struct {
	Collection    string           `json:"collection,omitempty"`
	Category      string           `json:"category,omitempty"`
	Type          string           `json:"type,omitempty"`
	AdditionalKey string           `json:"additionalKey,omitempty"`
	Instance      *decimal.Decimal `json:"instance,omitempty"`
}

// IsComplete - true when every field is set
func (q TokenInstanceQueryKey) IsComplete() bool {
	return q.Collection != "" && q.Category != "" && q.Type != "" &&
		q.AdditionalKey != "" && q.Instance != nil
}

// PrefixParts - the stable prefix of set fields
//
// fails if a set field follows an unset one, which would make the
// query unable to bound a scan
func (q TokenInstanceQueryKey) PrefixParts() ([]string, error) {
	all := []string{q.Collection, q.Category, q.Type, q.AdditionalKey}
	if q.Instance != nil {
		all = append(all, q.Instance.String())
	}
	parts := make([]string, 0, len(all))
	done := false
	for i, part := range all {
		if part == "" {
			done = true
			continue
		}
		if done {
			return nil, fault.Invalidf("token query key sets field %d after an unset field", i)
		}
		parts = append(parts, part)
	}
	return parts, nil
}

// ToInstanceKey - convert a complete query key
func (q TokenInstanceQueryKey) ToInstanceKey() (TokenInstanceKey, error) {
	if !q.IsComplete() {
		return TokenInstanceKey{}, fault.Invalidf("token query key is not a complete instance key")
	}
	return TokenInstanceKey{
		TokenClassKey: TokenClassKey{
			Collection:    q.Collection,
			Category:      q.Category,
			Type:          q.Type,
			AdditionalKey: q.AdditionalKey,
		},
		Instance: *q.Instance,
	}, nil
}

// ClassQuery - the class-level portion of the query
func (q TokenInstanceQueryKey) ClassQuery() TokenClassKey {
	return TokenClassKey{
		Collection:    q.Collection,
		Category:      q.Category,
		Type:          q.Type,
		AdditionalKey: q.AdditionalKey,
	}
}
