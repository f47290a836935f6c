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

// VerifyUseParams - consumption of caller-nominated allowances
type VerifyUseParams struct {
	CallingUser   string
	GrantedBy     string
	Key           record.TokenInstanceKey
	Action        record.AllowanceType
	Quantity      decimal.Decimal
	AllowanceKeys []string
}

// VerifyAndUse - validate the nominated allowances and drain quantity
// from them in nomination order
//
// duplicate keys are collapsed keeping the first occurrence; every
// allowance must have been granted by GrantedBy to the calling user
// and cover the instance and action, and together they must be
// sufficient before any consumption happens
func VerifyAndUse(st state.Store, p VerifyUseParams) error {
	if p.Quantity.Sign() <= 0 {
		return fault.ErrQuantityMustBePositive
	}
	if len(p.AllowanceKeys) == 0 {
		return fault.Invalidf("no allowances nominated")
	}

	keys := dedupeKeys(p.AllowanceKeys)
	allowances := make([]*record.TokenAllowance, 0, len(keys))
	for _, key := range keys {
		a := &record.TokenAllowance{}
		if err := state.GetObject(st, key, a); err != nil {
			if fault.IsErrNotFound(err) {
				return fault.ErrNotFoundAllowance
			}
			return err
		}
		allowances = append(allowances, a)
	}

	nowMs := st.TxTime().UnixMilli()
	available := decimal.Zero
	unlimited := false
	for _, a := range allowances {
		if a.GrantedTo != p.CallingUser || a.GrantedBy != p.GrantedBy {
			return fault.Authorizationf("allowance granted by %s to %s does not belong to this action",
				a.GrantedBy, a.GrantedTo)
		}
		if !a.Matches(p.Key, p.Action) {
			return fault.Invalidf("allowance for %s %s does not cover %s %s",
				a.AllowanceType, a.InstanceKey(), p.Action, p.Key)
		}
		if a.IsExpired(nowMs) {
			return fault.ErrAllowanceExpired
		}
		if !a.IsUsable(nowMs) {
			continue
		}
		if a.IsUnlimited() {
			unlimited = true
			continue
		}
		available = available.Add(a.UsableQuantity())
	}

	if !unlimited && available.Cmp(p.Quantity) < 0 {
		return fault.Resourcef("nominated allowances hold %s, %s required", available, p.Quantity)
	}
	return UseAllowances(st, allowances, p.Quantity)
}

func dedupeKeys(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
