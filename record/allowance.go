// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Gala Games Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/GalaChain/tokenchain/chainkey"
)

// AllowanceType - the action an allowance permits
type AllowanceType int

const (
	Use      AllowanceType = 0
	Lock     AllowanceType = 1
	Spend    AllowanceType = 2
	Transfer AllowanceType = 3
	Mint     AllowanceType = 4
	Swap     AllowanceType = 5
	Burn     AllowanceType = 6
)

func (a AllowanceType) String() string {
	switch a {
	case Use:
		return "Use"
	case Lock:
		return "Lock"
	case Spend:
		return "Spend"
	case Transfer:
		return "Transfer"
	case Mint:
		return "Mint"
	case Swap:
		return "Swap"
	case Burn:
		return "Burn"
	default:
		return "Unknown(" + strconv.Itoa(int(a)) + ")"
	}
}

// KeyPart - fixed-width numeric encoding used in composite keys
func (a AllowanceType) KeyPart() string {
	return strconv.Itoa(int(a))
}

// TokenAllowanceIndexKey - namespace for allowance records
const TokenAllowanceIndexKey = "TAL"

// TokenAllowance - a capability granting GrantedTo a bounded quantity
// and use count of an action against GrantedBy's tokens
//
// Expires of 0 means never; a nil UsesSpent or QuantitySpent marks an
// unlimited allowance that consumption never mutates
type TokenAllowance struct {
	GrantedTo     string           `json:"grantedTo"`
	Collection    string           `json:"collection"`
	Category      string           `json:"category"`
	Type          string           `json:"type"`
	AdditionalKey string           `json:"additionalKey"`
	Instance      decimal.Decimal  `json:"instance"`
	AllowanceType AllowanceType    `json:"allowanceType"`
	GrantedBy     string           `json:"grantedBy"`
	Created       int64            `json:"created"`
	Uses          decimal.Decimal  `json:"uses"`
	UsesSpent     *decimal.Decimal `json:"usesSpent,omitempty"`
	Expires       int64            `json:"expires"`
	Quantity      decimal.Decimal  `json:"quantity"`
	QuantitySpent *decimal.Decimal `json:"quantitySpent,omitempty"`
}

func (a *TokenAllowance) IndexKey() string { return TokenAllowanceIndexKey }

func (a *TokenAllowance) KeyParts() []string {
	return []string{
		a.GrantedTo,
		a.Collection,
		a.Category,
		a.Type,
		a.AdditionalKey,
		a.Instance.String(),
		a.AllowanceType.KeyPart(),
		a.GrantedBy,
		strconv.FormatInt(a.Created, 10),
	}
}

func (a *TokenAllowance) Key() (string, error) {
	return chainkey.KeyOf(a)
}

func (a *TokenAllowance) InstanceKey() TokenInstanceKey {
	return TokenInstanceKey{
		TokenClassKey: TokenClassKey{
			Collection:    a.Collection,
			Category:      a.Category,
			Type:          a.Type,
			AdditionalKey: a.AdditionalKey,
		},
		Instance: a.Instance,
	}
}

// IsUnlimited - consumption tracking is absent, the allowance never
// drains
func (a *TokenAllowance) IsUnlimited() bool {
	return a.UsesSpent == nil || a.QuantitySpent == nil
}

// IsExpired - time-based expiry only
func (a *TokenAllowance) IsExpired(nowMs int64) bool {
	return a.Expires != 0 && a.Expires <= nowMs
}

// IsUsable - unexpired with remaining uses and quantity
func (a *TokenAllowance) IsUsable(nowMs int64) bool {
	if a.IsExpired(nowMs) {
		return false
	}
	if a.UsesSpent != nil && a.UsesSpent.Cmp(a.Uses) >= 0 {
		return false
	}
	if a.QuantitySpent != nil && a.QuantitySpent.Cmp(a.Quantity) >= 0 {
		return false
	}
	return true
}

// UsableQuantity - quantity remaining before the allowance drains
func (a *TokenAllowance) UsableQuantity() decimal.Decimal {
	if a.QuantitySpent == nil {
		return a.Quantity
	}
	return a.Quantity.Sub(*a.QuantitySpent)
}

// Matches - does this allowance cover the given instance and action
func (a *TokenAllowance) Matches(key TokenInstanceKey, action AllowanceType) bool {
	return a.AllowanceType == action &&
		a.Collection == key.Collection &&
		a.Category == key.Category &&
		a.Type == key.Type &&
		a.AdditionalKey == key.AdditionalKey &&
		a.Instance.Equal(key.Instance)
}

func init() {
	chainkey.MustRegister(chainkey.Descriptor{
		IndexKey: TokenAllowanceIndexKey,
		Fields: []chainkey.Field{
			{Name: "grantedTo", Position: 0},
			{Name: "collection", Position: 1},
			{Name: "category", Position: 2},
			{Name: "type", Position: 3},
			{Name: "additionalKey", Position: 4},
			{Name: "instance", Position: 5},
			{Name: "allowanceType", Position: 6},
			{Name: "grantedBy", Position: 7},
			{Name: "created", Position: 8},
		},
	})
}
