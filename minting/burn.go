// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Gala Games Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package minting

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/GalaChain/tokenchain/allowance"
	"github.com/GalaChain/tokenchain/balance"
	"github.com/GalaChain/tokenchain/fault"
	"github.com/GalaChain/tokenchain/record"
	"github.com/GalaChain/tokenchain/state"
	"github.com/GalaChain/tokenchain/supply"
)

// BurnQuantity - one instance and quantity to burn
type BurnQuantity struct {
	Token    record.TokenInstanceKey `json:"tokenInstance"`
	Quantity decimal.Decimal         `json:"quantity"`
}

// BurnParams - burn tokens held by Owner
//
// when the calling user is not the owner, a burn allowance granted by
// the owner backs each quantity
type BurnParams struct {
	CallingUser string         `json:"-"`
	Owner       string         `json:"owner,omitempty"`
	Quantities  []BurnQuantity `json:"quantities"`
}

// Burn - destroy tokens, debiting the holder's balance and appending
// a receipt and a ledger counter per instance
func Burn(st state.Store, p BurnParams) ([]*record.TokenBurn, error) {
	if len(p.Quantities) == 0 {
		return nil, fault.Invalidf("burn names no tokens")
	}
	owner := p.Owner
	if owner == "" {
		owner = p.CallingUser
	}

	burns := make([]*record.TokenBurn, 0, len(p.Quantities))
	sequence := 0
	for _, bq := range p.Quantities {
		burn, err := burnOne(st, p.CallingUser, owner, bq, sequence)
		if err != nil {
			return nil, err
		}
		burns = append(burns, burn)
		sequence++
	}
	return burns, nil
}

func burnOne(st state.Store, callingUser string, owner string, bq BurnQuantity, sequence int) (*record.TokenBurn, error) {
	if bq.Quantity.Sign() <= 0 {
		return nil, fault.ErrQuantityMustBePositive
	}

	classKey := bq.Token.TokenClassKey
	class, err := allowance.FetchClass(st, classKey)
	if err != nil {
		return nil, err
	}
	if err := class.ValidatePrecision(bq.Quantity); err != nil {
		return nil, err
	}

	if callingUser != owner {
		if err := useBurnAllowance(st, callingUser, owner, bq); err != nil {
			return nil, err
		}
	}

	bal, err := balance.Fetch(st, owner, classKey)
	if err != nil {
		if fault.IsErrNotFound(err) {
			return nil, fault.ErrNotFoundBalance
		}
		return nil, err
	}

	if class.IsNonFungible && !bq.Token.Instance.IsZero() {
		if !bq.Quantity.Equal(decimal.NewFromInt(1)) {
			return nil, fault.Invalidf("non-fungible burns destroy exactly one instance, not %s", bq.Quantity)
		}
		instance := &record.TokenInstance{
			Collection:    classKey.Collection,
			Category:      classKey.Category,
			Type:          classKey.Type,
			AdditionalKey: classKey.AdditionalKey,
			Instance:      bq.Token.Instance,
		}
		if err := state.GetObjectOf(st, instance); err != nil {
			if fault.IsErrNotFound(err) {
				return nil, fault.ErrNotFoundTokenInstance
			}
			return nil, err
		}
		if err := bal.RemoveInstance(bq.Token.Instance); err != nil {
			return nil, err
		}
		if err := state.DeleteObject(st, instance); err != nil {
			return nil, err
		}
	} else {
		if err := bal.SubtractQuantity(bq.Quantity); err != nil {
			return nil, err
		}
	}
	if err := state.PutObject(st, bal); err != nil {
		return nil, err
	}

	burn, err := writeBurnReceipt(st, owner, bq)
	if err != nil {
		return nil, err
	}

	knownBurns, err := supply.FetchKnownBurnCount(st, classKey, -1)
	if err != nil {
		return nil, err
	}
	if _, err := supply.WriteBurnCounter(st, classKey, owner, bq.Quantity, knownBurns, sequence); err != nil {
		return nil, err
	}
	return burn, nil
}

// a burn by someone other than the holder consumes a burn allowance
// the holder granted
func useBurnAllowance(st state.Store, callingUser string, owner string, bq BurnQuantity) error {
	candidates, err := allowance.Fetch(st, allowance.ForInstance(callingUser, bq.Token, record.Burn, owner))
	if err != nil {
		return err
	}
	total, unlimited, err := allowance.Check(st, candidates, bq.Token, record.Burn, callingUser)
	if err != nil {
		return err
	}
	if !unlimited && total.Cmp(bq.Quantity) < 0 {
		return fault.Resourcef("burn allowances from %s to %s hold %s, %s required", owner, callingUser, total, bq.Quantity)
	}
	return allowance.UseAllowances(st, candidates, bq.Quantity)
}

// receipts for the same holder, instance and millisecond accumulate
// in place instead of colliding
func writeBurnReceipt(st state.Store, owner string, bq BurnQuantity) (*record.TokenBurn, error) {
	burn := &record.TokenBurn{
		BurnedBy:      owner,
		Collection:    bq.Token.Collection,
		Category:      bq.Token.Category,
		Type:          bq.Token.Type,
		AdditionalKey: bq.Token.AdditionalKey,
		Instance:      bq.Token.Instance,
		Created:       st.TxTime().UnixMilli(),
	}

	existing := &record.TokenBurn{}
	key, err := burn.Key()
	if err != nil {
		return nil, err
	}
	err = state.GetObject(st, key, existing)
	switch {
	case err == nil:
		burn.Quantity = existing.Quantity.Add(bq.Quantity)
	case fault.IsErrNotFound(err):
		burn.Quantity = bq.Quantity
	default:
		return nil, err
	}

	if err := state.PutObject(st, burn); err != nil {
		return nil, err
	}
	return burn, nil
}

// BurnQuery - partial key over stored burn receipts
type BurnQuery struct {
	BurnedBy      string           `json:"burnedBy"`
	Collection    string           `json:"collection,omitempty"`
	Category      string           `json:"category,omitempty"`
	Type          string           `json:"type,omitempty"`
	AdditionalKey string           `json:"additionalKey,omitempty"`
	Instance      *decimal.Decimal `json:"instance,omitempty"`
}

func (q BurnQuery) prefixParts() ([]string, error) {
	if q.BurnedBy == "" {
		return nil, fault.Invalidf("burn query requires burnedBy")
	}
	fields := []struct {
		name  string
		set   bool
		value string
	}{
		{"collection", q.Collection != "", q.Collection},
		{"category", q.Category != "", q.Category},
		{"type", q.Type != "", q.Type},
		{"additionalKey", q.AdditionalKey != "", q.AdditionalKey},
		{"instance", q.Instance != nil, instancePart(q.Instance)},
	}

	parts := []string{q.BurnedBy}
	done := false
	for _, f := range fields {
		if !f.set {
			done = true
			continue
		}
		if done {
			return nil, fault.Invalidf("burn query has a gap before: %s", f.name)
		}
		parts = append(parts, f.value)
	}
	return parts, nil
}

func instancePart(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}

// FetchBurns - burn receipts matching the query, in key order
func FetchBurns(st state.Store, q BurnQuery) ([]*record.TokenBurn, error) {
	parts, err := q.prefixParts()
	if err != nil {
		return nil, err
	}

	burns := []*record.TokenBurn{}
	err = state.IterateByPartialKey(st, record.TokenBurnIndexKey, parts, func(key string, data []byte) (bool, error) {
		b := &record.TokenBurn{}
		if err := json.Unmarshal(data, b); err != nil {
			return true, fault.Processf("corrupt burn receipt at key %q: %s", key, err)
		}
		burns = append(burns, b)
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	return burns, nil
}
