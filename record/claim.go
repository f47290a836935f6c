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

// TokenClaimIndexKey - namespace for claim records
const TokenClaimIndexKey = "TCM"

// TokenClaim - immutable receipt written each time an allowance is
// partially consumed; never mutated after the write
type TokenClaim struct {
	OwnerKey         string          `json:"ownerKey"`
	Collection       string          `json:"collection"`
	Category         string          `json:"category"`
	Type             string          `json:"type"`
	AdditionalKey    string          `json:"additionalKey"`
	Instance         decimal.Decimal `json:"instance"`
	Action           AllowanceType   `json:"action"`
	IssuerKey        string          `json:"issuerKey"`
	AllowanceCreated int64           `json:"allowanceCreated"`
	ClaimSequence    decimal.Decimal `json:"claimSequence"`
	Created          int64           `json:"created"`
	Quantity         decimal.Decimal `json:"quantity"`
}

func (c *TokenClaim) IndexKey() string { return TokenClaimIndexKey }

func (c *TokenClaim) KeyParts() []string {
	return []string{
		c.OwnerKey,
		c.Collection,
		c.Category,
		c.Type,
		c.AdditionalKey,
		c.Instance.String(),
		c.Action.KeyPart(),
		c.IssuerKey,
		strconv.FormatInt(c.AllowanceCreated, 10),
		c.ClaimSequence.String(),
		strconv.FormatInt(c.Created, 10),
	}
}

func (c *TokenClaim) Key() (string, error) {
	return chainkey.KeyOf(c)
}

func init() {
	chainkey.MustRegister(chainkey.Descriptor{
		IndexKey: TokenClaimIndexKey,
		Fields: []chainkey.Field{
			{Name: "ownerKey", Position: 0},
			{Name: "collection", Position: 1},
			{Name: "category", Position: 2},
			{Name: "type", Position: 3},
			{Name: "additionalKey", Position: 4},
			{Name: "instance", Position: 5},
			{Name: "action", Position: 6},
			{Name: "issuerKey", Position: 7},
			{Name: "allowanceCreated", Position: 8},
			{Name: "claimSequence", Position: 9},
			{Name: "created", Position: 10},
		},
	})
}
