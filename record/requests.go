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

// running-total ledger entries
//
// each entry is immutable once written and carries the aggregate
// total the writer believed to hold immediately before it (the
// baseline) plus its own delta; the current total is always derived
// by scan, never stored in a single contended key
//
// TimeKey is the inverted transaction timestamp, fixed width and
// zero padded so that ascending key order is reverse-chronological;
// Epoch is a coarser bucket reserved for future compaction of very
// old ledgers

// index keys for the three entry kinds
const (
	TokenMintRequestIndexKey          = "TMR"
	TokenMintAllowanceRequestIndexKey = "TMA"
	TokenBurnCounterIndexKey          = "TBC"
)

// TokenMintRequest - one requested mint
type TokenMintRequest struct {
	Collection           string          `json:"collection"`
	Category             string          `json:"category"`
	Type                 string          `json:"type"`
	AdditionalKey        string          `json:"additionalKey"`
	TimeKey              string          `json:"timeKey"`
	Epoch                string          `json:"epoch"`
	Owner                string          `json:"owner"`
	Created              int64           `json:"created"`
	ID                   string          `json:"id"`
	TotalKnownMintsCount decimal.Decimal `json:"totalKnownMintsCount"`
	Quantity             decimal.Decimal `json:"quantity"`
}

func (r *TokenMintRequest) IndexKey() string { return TokenMintRequestIndexKey }

func (r *TokenMintRequest) KeyParts() []string {
	return []string{
		r.Collection, r.Category, r.Type, r.AdditionalKey,
		r.TimeKey, r.Owner, strconv.FormatInt(r.Created, 10), r.ID,
	}
}

func (r *TokenMintRequest) Key() (string, error) { return chainkey.KeyOf(r) }

// Baseline - the running total observed before this entry
func (r *TokenMintRequest) Baseline() decimal.Decimal { return r.TotalKnownMintsCount }

// Delta - the contribution of this entry
func (r *TokenMintRequest) Delta() decimal.Decimal { return r.Quantity }

// TokenMintAllowanceRequest - one requested mint allowance grant
type TokenMintAllowanceRequest struct {
	Collection                    string          `json:"collection"`
	Category                      string          `json:"category"`
	Type                          string          `json:"type"`
	AdditionalKey                 string          `json:"additionalKey"`
	TimeKey                       string          `json:"timeKey"`
	Epoch                         string          `json:"epoch"`
	GrantedTo                     string          `json:"grantedTo"`
	Created                       int64           `json:"created"`
	ID                            string          `json:"id"`
	TotalKnownMintAllowancesCount decimal.Decimal `json:"totalKnownMintAllowancesCount"`
	Quantity                      decimal.Decimal `json:"quantity"`
}

func (r *TokenMintAllowanceRequest) IndexKey() string { return TokenMintAllowanceRequestIndexKey }

func (r *TokenMintAllowanceRequest) KeyParts() []string {
	return []string{
		r.Collection, r.Category, r.Type, r.AdditionalKey,
		r.TimeKey, r.GrantedTo, strconv.FormatInt(r.Created, 10), r.ID,
	}
}

func (r *TokenMintAllowanceRequest) Key() (string, error) { return chainkey.KeyOf(r) }

func (r *TokenMintAllowanceRequest) Baseline() decimal.Decimal {
	return r.TotalKnownMintAllowancesCount
}

func (r *TokenMintAllowanceRequest) Delta() decimal.Decimal { return r.Quantity }

// TokenBurnCounter - one burn's contribution to the burn total
type TokenBurnCounter struct {
	Collection           string          `json:"collection"`
	Category             string          `json:"category"`
	Type                 string          `json:"type"`
	AdditionalKey        string          `json:"additionalKey"`
	TimeKey              string          `json:"timeKey"`
	Epoch                string          `json:"epoch"`
	BurnedBy             string          `json:"burnedBy"`
	Created              int64           `json:"created"`
	ID                   string          `json:"id"`
	TotalKnownBurnsCount decimal.Decimal `json:"totalKnownBurnsCount"`
	Quantity             decimal.Decimal `json:"quantity"`
}

func (r *TokenBurnCounter) IndexKey() string { return TokenBurnCounterIndexKey }

func (r *TokenBurnCounter) KeyParts() []string {
	return []string{
		r.Collection, r.Category, r.Type, r.AdditionalKey,
		r.TimeKey, r.BurnedBy, strconv.FormatInt(r.Created, 10), r.ID,
	}
}

func (r *TokenBurnCounter) Key() (string, error) { return chainkey.KeyOf(r) }

func (r *TokenBurnCounter) Baseline() decimal.Decimal { return r.TotalKnownBurnsCount }

func (r *TokenBurnCounter) Delta() decimal.Decimal { return r.Quantity }

func init() {
	for _, indexKey := range []string{
		TokenMintRequestIndexKey,
		TokenMintAllowanceRequestIndexKey,
		TokenBurnCounterIndexKey,
	} {
		chainkey.MustRegister(chainkey.Descriptor{
			IndexKey: indexKey,
			Fields: []chainkey.Field{
				{Name: "collection", Position: 0},
				{Name: "category", Position: 1},
				{Name: "type", Position: 2},
				{Name: "additionalKey", Position: 3},
				{Name: "timeKey", Position: 4},
				{Name: "requestor", Position: 5},
				{Name: "created", Position: 6},
				{Name: "id", Position: 7},
			},
		})
	}
}
