// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Gala Games Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package allowance

import (
	"github.com/shopspring/decimal"

	"github.com/GalaChain/tokenchain/fault"
	"github.com/GalaChain/tokenchain/record"
	"github.com/GalaChain/tokenchain/state"
)

// UseAllowances - drain quantity from the allowances in caller order
//
// each limited allowance touched has its spent counters advanced, a
// claim receipt written, and its expiry forced to the transaction
// time once exhausted; an unlimited allowance absorbs whatever
// remains without mutation and without a receipt
//
// fails without partial effect rollback when the allowances cannot
// cover the quantity, so callers verify sufficiency first
func UseAllowances(st state.Store, allowances []*record.TokenAllowance, quantity decimal.Decimal) error {
	if quantity.Sign() <= 0 {
		return fault.ErrQuantityMustBePositive
	}

	nowMs := st.TxTime().UnixMilli()
	one := decimal.NewFromInt(1)
	remaining := quantity

	for _, a := range allowances {
		if remaining.Sign() <= 0 {
			break
		}
		if !a.IsUsable(nowMs) {
			continue
		}
		if a.IsUnlimited() {
			remaining = decimal.Zero
			break
		}

		draw := a.UsableQuantity()
		if draw.Cmp(remaining) > 0 {
			draw = remaining
		}
		if draw.Sign() <= 0 {
			continue
		}

		quantitySpent := a.QuantitySpent.Add(draw)
		usesSpent := a.UsesSpent.Add(one)
		a.QuantitySpent = &quantitySpent
		a.UsesSpent = &usesSpent

		// exhausted allowances are expired in place so later scans
		// can sweep them without re-deriving the spent state
		if quantitySpent.Cmp(a.Quantity) >= 0 || usesSpent.Cmp(a.Uses) >= 0 {
			a.Expires = nowMs
		}

		claim := &record.TokenClaim{
			OwnerKey:         a.GrantedTo,
			Collection:       a.Collection,
			Category:         a.Category,
			Type:             a.Type,
			AdditionalKey:    a.AdditionalKey,
			Instance:         a.Instance,
			Action:           a.AllowanceType,
			IssuerKey:        a.GrantedBy,
			AllowanceCreated: a.Created,
			ClaimSequence:    usesSpent,
			Created:          nowMs,
			Quantity:         draw,
		}
		if err := state.PutObject(st, claim); err != nil {
			return err
		}
		if err := state.PutObject(st, a); err != nil {
			return err
		}
		remaining = remaining.Sub(draw)
	}

	if remaining.Sign() > 0 {
		return fault.Processf("allowances cover only %s of the requested %s", quantity.Sub(remaining), quantity)
	}
	return nil
}
