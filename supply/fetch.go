// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Gala Games Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package supply

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/GalaChain/tokenchain/chainkey"
	"github.com/GalaChain/tokenchain/fault"
	"github.com/GalaChain/tokenchain/record"
	"github.com/GalaChain/tokenchain/state"
)

// FetchMintSupply - current known total of minted quantity for a
// token class
//
// offsetMs skips the most recent window; pass a negative value for
// the default lookback, zero to read right up to the transaction time
func FetchMintSupply(st state.Store, key record.TokenClassKey, offsetMs int64) (decimal.Decimal, error) {
	return fetchTotal(st, record.TokenMintRequestIndexKey, key, offsetMs, func(data []byte) (baseline decimal.Decimal, delta decimal.Decimal, err error) {
		entry := record.TokenMintRequest{}
		if err := json.Unmarshal(data, &entry); err != nil {
			return decimal.Zero, decimal.Zero, err
		}
		return entry.Baseline(), entry.Delta(), nil
	})
}

// FetchMintAllowanceSupply - current known total of granted mint
// allowance quantity for a token class
func FetchMintAllowanceSupply(st state.Store, key record.TokenClassKey, offsetMs int64) (decimal.Decimal, error) {
	return fetchTotal(st, record.TokenMintAllowanceRequestIndexKey, key, offsetMs, func(data []byte) (baseline decimal.Decimal, delta decimal.Decimal, err error) {
		entry := record.TokenMintAllowanceRequest{}
		if err := json.Unmarshal(data, &entry); err != nil {
			return decimal.Zero, decimal.Zero, err
		}
		return entry.Baseline(), entry.Delta(), nil
	})
}

// FetchKnownBurnCount - current known total of burned quantity for a
// token class
func FetchKnownBurnCount(st state.Store, key record.TokenClassKey, offsetMs int64) (decimal.Decimal, error) {
	return fetchTotal(st, record.TokenBurnCounterIndexKey, key, offsetMs, func(data []byte) (baseline decimal.Decimal, delta decimal.Decimal, err error) {
		entry := record.TokenBurnCounter{}
		if err := json.Unmarshal(data, &entry); err != nil {
			return decimal.Zero, decimal.Zero, err
		}
		return entry.Baseline(), entry.Delta(), nil
	})
}

type aggregateEntry struct {
	baseline decimal.Decimal
	delta    decimal.Decimal
}

// fetchTotal - bounded-lookback aggregation over one entry kind
//
// the scan runs from inverseTime(now - offset) towards inverseTime(0)
// and therefore visits entries newest first; entries are reassembled
// oldest-first by front insertion so the replay is chronological:
// baseline of the oldest entry plus every delta from there forward
func fetchTotal(st state.Store, indexKey string, key record.TokenClassKey, offsetMs int64, decode func([]byte) (decimal.Decimal, decimal.Decimal, error)) (decimal.Decimal, error) {
	if err := key.Validate(); err != nil {
		return decimal.Zero, err
	}
	if offsetMs < 0 {
		offsetMs = DefaultLookbackOffsetMs
	}

	scope, err := chainkey.PartialKey(indexKey, key.Parts())
	if err != nil {
		return decimal.Zero, err
	}
	nowMs := st.TxTime().UnixMilli()
	startKey := scope + InverseTime(nowMs, offsetMs)
	endKey := scope + InverseTime(0, 0) + chainkey.MaxUnicodeRune

	iter, err := st.Range(startKey, endKey)
	if err != nil {
		return decimal.Zero, fault.Processf("supply scan failed for %s %s: %s", indexKey, key, err)
	}
	defer iter.Close()

	entries := make([]aggregateEntry, 0, 16)
	for iter.Next() {
		baseline, delta, err := decode(iter.Value())
		if err != nil {
			return decimal.Zero, fault.Processf("corrupt supply entry for %s %s: %s", indexKey, key, err)
		}
		// front insertion: scan order is newest first, replay wants
		// oldest first
		entries = append([]aggregateEntry{{baseline: baseline, delta: delta}}, entries...)
		if len(entries) >= DefaultLookbackTxCount {
			break
		}
	}
	if err := iter.Err(); err != nil {
		// an undercounted total is worse than a failed call
		return decimal.Zero, fault.Processf("supply scan failed for %s %s: %s", indexKey, key, err)
	}

	if len(entries) == 0 {
		return decimal.Zero, nil
	}

	total := entries[0].baseline
	for _, entry := range entries {
		total = total.Add(entry.delta)
	}
	return total, nil
}
