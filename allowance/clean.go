// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Gala Games Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package allowance

import (
	"github.com/GalaChain/tokenchain/balance"
	"github.com/GalaChain/tokenchain/record"
	"github.com/GalaChain/tokenchain/state"
)

// CleanUsable - filter candidates down to usable allowances
//
// unusable entries and entries whose grantor no longer holds the
// backing token are dropped from the result and deleted from state on
// a best-effort basis; a failed delete never fails the caller, the
// entry is simply retained for a later sweep
func CleanUsable(st state.Store, candidates []*record.TokenAllowance, nowMs int64) []*record.TokenAllowance {
	usable := make([]*record.TokenAllowance, 0, len(candidates))

scan:
	for _, a := range candidates {
		if !a.IsUsable(nowMs) {
			_ = state.DeleteObject(st, a)
			continue scan
		}
		if !grantorStillHolds(st, a) {
			_ = state.DeleteObject(st, a)
			continue scan
		}
		usable = append(usable, a)
	}
	return usable
}

// a non-fungible allowance is only as good as the grantor's ongoing
// ownership of the instance; mint allowances are backed by class
// authority, not by a balance
func grantorStillHolds(st state.Store, a *record.TokenAllowance) bool {
	if a.AllowanceType == record.Mint {
		return true
	}
	if a.Instance.IsZero() {
		return true
	}
	bal, err := balance.Fetch(st, a.GrantedBy, a.InstanceKey().TokenClassKey)
	if err != nil {
		return false
	}
	return bal.ContainsInstance(a.Instance)
}
