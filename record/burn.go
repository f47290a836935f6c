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

// TokenBurnIndexKey - namespace for burn receipt records
const TokenBurnIndexKey = "TBR"

// TokenBurn - receipt for one burn action, append-only
type TokenBurn struct {
	BurnedBy      string          `json:"burnedBy"`
	Collection    string          `json:"collection"`
	Category      string          `json:"category"`
	Type          string          `json:"type"`
	AdditionalKey string          `json:"additionalKey"`
	Instance      decimal.Decimal `json:"instance"`
	Created       int64           `json:"created"`
	Quantity      decimal.Decimal `json:"quantity"`
}

func (b *TokenBurn) IndexKey() string { return TokenBurnIndexKey }

func (b *TokenBurn) KeyParts() []string {
	return []string{
		b.BurnedBy,
		b.Collection,
		b.Category,
		b.Type,
		b.AdditionalKey,
		b.Instance.String(),
		strconv.FormatInt(b.Created, 10),
	}
}

func (b *TokenBurn) Key() (string, error) {
	return chainkey.KeyOf(b)
}

func init() {
	chainkey.MustRegister(chainkey.Descriptor{
		IndexKey: TokenBurnIndexKey,
		Fields: []chainkey.Field{
			{Name: "burnedBy", Position: 0},
			{Name: "collection", Position: 1},
			{Name: "category", Position: 2},
			{Name: "type", Position: 3},
			{Name: "additionalKey", Position: 4},
			{Name: "instance", Position: 5},
			{Name: "created", Position: 6},
		},
	})
}
