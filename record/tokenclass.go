// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Gala Games Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"github.com/shopspring/decimal"

	"github.com/GalaChain/tokenchain/chainkey"
	"github.com/GalaChain/tokenchain/fault"
)

// TokenClassIndexKey - namespace for token class records
const TokenClassIndexKey = "TCN"

// TokenClass - the definition of a token
//
// read-only from the allowance and supply engines; TotalSupply and
// TotalMintAllowance are legacy bookkeeping kept for compatibility
// with pre-ledger records, the authoritative totals are derived from
// the running-total ledger
type TokenClass struct {
	Collection         string          `json:"collection"`
	Category           string          `json:"category"`
	Type               string          `json:"type"`
	AdditionalKey      string          `json:"additionalKey"`
	Name               string          `json:"name"`
	Symbol             string          `json:"symbol"`
	Description        string          `json:"description,omitempty"`
	Decimals           int             `json:"decimals"`
	IsNonFungible      bool            `json:"isNonFungible"`
	MaxSupply          decimal.Decimal `json:"maxSupply"`
	MaxCapacity        decimal.Decimal `json:"maxCapacity"`
	Authorities        []string        `json:"authorities"`
	TotalSupply        decimal.Decimal `json:"totalSupply"`
	TotalMintAllowance decimal.Decimal `json:"totalMintAllowance"`
}

func (c *TokenClass) IndexKey() string   { return TokenClassIndexKey }
func (c *TokenClass) KeyParts() []string { return c.ClassKey().Parts() }

func (c *TokenClass) ClassKey() TokenClassKey {
	return TokenClassKey{
		Collection:    c.Collection,
		Category:      c.Category,
		Type:          c.Type,
		AdditionalKey: c.AdditionalKey,
	}
}

// Key - the composite key of this class
func (c *TokenClass) Key() (string, error) {
	return chainkey.KeyOf(c)
}

// HasAuthority - is the user permitted to grant mint allowances
func (c *TokenClass) HasAuthority(user string) bool {
	for _, a := range c.Authorities {
		if a == user {
			return true
		}
	}
	return false
}

// ValidatePrecision - reject quantities finer than the declared
// decimal places
func (c *TokenClass) ValidatePrecision(quantity decimal.Decimal) error {
	if !quantity.Round(int32(c.Decimals)).Equal(quantity) {
		return fault.Invalidf("quantity %s exceeds the %d decimal places of %s", quantity, c.Decimals, c.ClassKey())
	}
	return nil
}

// Validate - structural checks applied at creation time
func (c *TokenClass) Validate() error {
	if err := c.ClassKey().Validate(); err != nil {
		return err
	}
	if c.Decimals < 0 || c.Decimals > 32 {
		return fault.Invalidf("decimals %d out of range for %s", c.Decimals, c.ClassKey())
	}
	if c.IsNonFungible && c.Decimals != 0 {
		return fault.Invalidf("non-fungible token %s cannot declare decimal places", c.ClassKey())
	}
	if c.MaxSupply.IsNegative() || c.MaxCapacity.IsNegative() {
		return fault.Invalidf("supply caps cannot be negative for %s", c.ClassKey())
	}
	if len(c.Authorities) == 0 {
		return fault.Invalidf("token class %s declares no authorities", c.ClassKey())
	}
	return nil
}

func init() {
	chainkey.MustRegister(chainkey.Descriptor{
		IndexKey: TokenClassIndexKey,
		Fields: []chainkey.Field{
			{Name: "collection", Position: 0},
			{Name: "category", Position: 1},
			{Name: "type", Position: 2},
			{Name: "additionalKey", Position: 3},
		},
	})
}
