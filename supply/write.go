// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Gala Games Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package supply

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/GalaChain/tokenchain/record"
	"github.com/GalaChain/tokenchain/state"
)

// the write path appends one immutable entry per action; no existing
// key is ever updated, so concurrent writers never collide on a
// ledger key.  sequence disambiguates multiple entries appended by
// one transaction (batch operations)

// WriteMintRequest - append one mint entry
func WriteMintRequest(st state.Store, key record.TokenClassKey, owner string, quantity decimal.Decimal, baseline decimal.Decimal, sequence int) (*record.TokenMintRequest, error) {
	nowMs := st.TxTime().UnixMilli()
	entry := &record.TokenMintRequest{
		Collection:           key.Collection,
		Category:             key.Category,
		Type:                 key.Type,
		AdditionalKey:        key.AdditionalKey,
		TimeKey:              InverseTime(nowMs, 0),
		Epoch:                InverseEpoch(nowMs, 0),
		Owner:                owner,
		Created:              nowMs,
		ID:                   entryID(st, sequence),
		TotalKnownMintsCount: baseline,
		Quantity:             quantity,
	}
	if err := state.PutObject(st, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// WriteMintAllowanceRequest - append one mint allowance entry
func WriteMintAllowanceRequest(st state.Store, key record.TokenClassKey, grantedTo string, quantity decimal.Decimal, baseline decimal.Decimal, sequence int) (*record.TokenMintAllowanceRequest, error) {
	nowMs := st.TxTime().UnixMilli()
	entry := &record.TokenMintAllowanceRequest{
		Collection:                    key.Collection,
		Category:                      key.Category,
		Type:                          key.Type,
		AdditionalKey:                 key.AdditionalKey,
		TimeKey:                       InverseTime(nowMs, 0),
		Epoch:                         InverseEpoch(nowMs, 0),
		GrantedTo:                     grantedTo,
		Created:                       nowMs,
		ID:                            entryID(st, sequence),
		TotalKnownMintAllowancesCount: baseline,
		Quantity:                      quantity,
	}
	if err := state.PutObject(st, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// WriteBurnCounter - append one burn entry
func WriteBurnCounter(st state.Store, key record.TokenClassKey, burnedBy string, quantity decimal.Decimal, baseline decimal.Decimal, sequence int) (*record.TokenBurnCounter, error) {
	nowMs := st.TxTime().UnixMilli()
	entry := &record.TokenBurnCounter{
		Collection:           key.Collection,
		Category:             key.Category,
		Type:                 key.Type,
		AdditionalKey:        key.AdditionalKey,
		TimeKey:              InverseTime(nowMs, 0),
		Epoch:                InverseEpoch(nowMs, 0),
		BurnedBy:             burnedBy,
		Created:              nowMs,
		ID:                   entryID(st, sequence),
		TotalKnownBurnsCount: baseline,
		Quantity:             quantity,
	}
	if err := state.PutObject(st, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func entryID(st state.Store, sequence int) string {
	return fmt.Sprintf("%s|%d", st.TxID(), sequence)
}
