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

// TokenBalanceIndexKey - namespace for balance records
const TokenBalanceIndexKey = "TBL"

// TokenBalance - one owner's holding of one token class
//
// fungible classes track Quantity; non-fungible classes track the set
// of held instance numbers
type TokenBalance struct {
	Owner         string            `json:"owner"`
	Collection    string            `json:"collection"`
	Category      string            `json:"category"`
	Type          string            `json:"type"`
	AdditionalKey string            `json:"additionalKey"`
	Quantity      decimal.Decimal   `json:"quantity"`
	InstanceIDs   []decimal.Decimal `json:"instanceIds,omitempty"`
}

func (b *TokenBalance) IndexKey() string { return TokenBalanceIndexKey }

func (b *TokenBalance) KeyParts() []string {
	return []string{b.Owner, b.Collection, b.Category, b.Type, b.AdditionalKey}
}

func (b *TokenBalance) ClassKey() TokenClassKey {
	return TokenClassKey{
		Collection:    b.Collection,
		Category:      b.Category,
		Type:          b.Type,
		AdditionalKey: b.AdditionalKey,
	}
}

func (b *TokenBalance) Key() (string, error) {
	return chainkey.KeyOf(b)
}

// SpendableQuantity - the quantity available to spend or burn
func (b *TokenBalance) SpendableQuantity() decimal.Decimal {
	return b.Quantity
}

// ContainsInstance - does this balance hold the instance
func (b *TokenBalance) ContainsInstance(instance decimal.Decimal) bool {
	for _, id := range b.InstanceIDs {
		if id.Equal(instance) {
			return true
		}
	}
	return false
}

// AddInstance - record a newly held instance
func (b *TokenBalance) AddInstance(instance decimal.Decimal) error {
	if b.ContainsInstance(instance) {
		return fault.Existsf("balance of %s for %s already holds instance %s", b.Owner, b.ClassKey(), instance)
	}
	b.InstanceIDs = append(b.InstanceIDs, instance)
	return nil
}

// RemoveInstance - release a held instance
func (b *TokenBalance) RemoveInstance(instance decimal.Decimal) error {
	for i, id := range b.InstanceIDs {
		if id.Equal(instance) {
			b.InstanceIDs = append(b.InstanceIDs[:i], b.InstanceIDs[i+1:]...)
			return nil
		}
	}
	return fault.Resourcef("balance of %s for %s does not hold instance %s", b.Owner, b.ClassKey(), instance)
}

// AddQuantity - credit a fungible balance
func (b *TokenBalance) AddQuantity(quantity decimal.Decimal) error {
	if quantity.Sign() <= 0 {
		return fault.ErrQuantityMustBePositive
	}
	b.Quantity = b.Quantity.Add(quantity)
	return nil
}

// SubtractQuantity - debit a fungible balance
func (b *TokenBalance) SubtractQuantity(quantity decimal.Decimal) error {
	if quantity.Sign() <= 0 {
		return fault.ErrQuantityMustBePositive
	}
	if b.SpendableQuantity().Cmp(quantity) < 0 {
		return fault.Resourcef("insufficient balance: %s holds %s of %s, need %s",
			b.Owner, b.SpendableQuantity(), b.ClassKey(), quantity)
	}
	b.Quantity = b.Quantity.Sub(quantity)
	return nil
}

func init() {
	chainkey.MustRegister(chainkey.Descriptor{
		IndexKey: TokenBalanceIndexKey,
		Fields: []chainkey.Field{
			{Name: "owner", Position: 0},
			{Name: "collection", Position: 1},
			{Name: "category", Position: 2},
			{Name: "type", Position: 3},
			{Name: "additionalKey", Position: 4},
		},
	})
}
