// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Gala Games Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"github.com/shopspring/decimal"

	"github.com/GalaChain/tokenchain/chainkey"
)

// TokenInstanceIndexKey - namespace for token instance records
const TokenInstanceIndexKey = "TIN"

// TokenInstance - one concrete unit of a token class
//
// Owner is only tracked for non-fungible instances
type TokenInstance struct {
	Collection    string          `json:"collection"`
	Category      string          `json:"category"`
	Type          string          `json:"type"`
	AdditionalKey string          `json:"additionalKey"`
	Instance      decimal.Decimal `json:"instance"`
	IsNonFungible bool            `json:"isNonFungible"`
	Owner         string          `json:"owner,omitempty"`
}

func (i *TokenInstance) IndexKey() string { return TokenInstanceIndexKey }

func (i *TokenInstance) KeyParts() []string {
	return []string{i.Collection, i.Category, i.Type, i.AdditionalKey, i.Instance.String()}
}

func (i *TokenInstance) InstanceKey() TokenInstanceKey {
	return TokenInstanceKey{
		TokenClassKey: TokenClassKey{
			Collection:    i.Collection,
			Category:      i.Category,
			Type:          i.Type,
			AdditionalKey: i.AdditionalKey,
		},
		Instance: i.Instance,
	}
}

func (i *TokenInstance) Key() (string, error) {
	return chainkey.KeyOf(i)
}

func init() {
	chainkey.MustRegister(chainkey.Descriptor{
		IndexKey: TokenInstanceIndexKey,
		Fields: []chainkey.Field{
			{Name: "collection", Position: 0},
			{Name: "category", Position: 1},
			{Name: "type", Position: 2},
			{Name: "additionalKey", Position: 3},
			{Name: "instance", Position: 4},
		},
	})
}
