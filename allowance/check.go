// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Gala Games Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package allowance

import (
	"github.com/shopspring/decimal"

	"github.com/GalaChain/tokenchain/record"
	"github.com/GalaChain/tokenchain/state"
)

// Check - the total quantity grantedTo may still apply to the given
// instance and action
//
// cleans the candidate set first, so stale entries are swept as a
// side effect of every balance check; an unlimited allowance in the
// set makes the second return true and the quantity meaningless
func Check(st state.Store, candidates []*record.TokenAllowance, key record.TokenInstanceKey, action record.AllowanceType, grantedTo string) (decimal.Decimal, bool, error) {
	nowMs := st.TxTime().UnixMilli()
	total := decimal.Zero
	unlimited := false

	for _, a := range CleanUsable(st, candidates, nowMs) {
		if a.GrantedTo != grantedTo || !a.Matches(key, action) {
			continue
		}
		if a.IsUnlimited() {
			unlimited = true
			continue
		}
		total = total.Add(a.UsableQuantity())
	}
	return total, unlimited, nil
}

// CheckBalance - fetch and total the usable allowances for one
// grantee, instance, action and grantor
func CheckBalance(st state.Store, grantedTo string, key record.TokenInstanceKey, action record.AllowanceType, grantedBy string) (decimal.Decimal, bool, error) {
	candidates, err := Fetch(st, ForInstance(grantedTo, key, action, grantedBy))
	if err != nil {
		return decimal.Zero, false, err
	}
	return Check(st, candidates, key, action, grantedTo)
}
