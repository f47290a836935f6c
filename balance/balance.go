// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Gala Games Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package balance - balance lookup over the keyed object model
package balance

import (
	"encoding/json"

	"github.com/GalaChain/tokenchain/fault"
	"github.com/GalaChain/tokenchain/record"
	"github.com/GalaChain/tokenchain/state"
)

// Fetch - the committed balance of one owner for one token class
//
// returns a not-found error when no balance record exists
func Fetch(st state.Store, owner string, key record.TokenClassKey) (*record.TokenBalance, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}
	b := emptyBalance(owner, key)
	bKey, err := b.Key()
	if err != nil {
		return nil, err
	}
	data, err := st.Get(bKey)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, fault.NotFoundf("no balance of %s held by %s", key, owner)
	}
	if err := json.Unmarshal(data, b); err != nil {
		return nil, fault.Processf("corrupt balance record for %s of %s: %s", key, owner, err)
	}
	return b, nil
}

// FetchOrCreate - the balance of one owner for one token class,
// zero-valued when absent
//
// the zero balance is not written until the caller mutates and stores
// it
func FetchOrCreate(st state.Store, owner string, key record.TokenClassKey) (*record.TokenBalance, error) {
	b, err := Fetch(st, owner, key)
	if err == nil {
		return b, nil
	}
	if fault.IsErrNotFound(err) {
		return emptyBalance(owner, key), nil
	}
	return nil, err
}

// FetchAll - every balance of one owner matching a stable prefix of
// token key fields; an empty query matches all of the owner's
// balances
func FetchAll(st state.Store, owner string, query record.TokenInstanceQueryKey) ([]*record.TokenBalance, error) {
	// balances are keyed per class; an instance number in the query
	// does not contribute to the prefix
	classQuery := query
	classQuery.Instance = nil
	prefix, err := classQuery.PrefixParts()
	if err != nil {
		return nil, err
	}
	parts := append([]string{owner}, prefix...)

	balances := []*record.TokenBalance{}
	err = state.IterateByPartialKey(st, record.TokenBalanceIndexKey, parts, func(key string, data []byte) (bool, error) {
		b := &record.TokenBalance{}
		if err := json.Unmarshal(data, b); err != nil {
			return false, fault.Processf("corrupt balance record at %q: %s", key, err)
		}
		balances = append(balances, b)
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	return balances, nil
}

func emptyBalance(owner string, key record.TokenClassKey) *record.TokenBalance {
	return &record.TokenBalance{
		Owner:         owner,
		Collection:    key.Collection,
		Category:      key.Category,
		Type:          key.Type,
		AdditionalKey: key.AdditionalKey,
	}
}
