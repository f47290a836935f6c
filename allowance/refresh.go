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

// RefreshSpec - new uses and expiry for one stored allowance
type RefreshSpec struct {
	AllowanceKey string          `json:"allowanceKey"`
	Uses         decimal.Decimal `json:"uses"`
	Expires      int64           `json:"expires"`
}

// Refresh - reset the uses and expiry of existing allowances
//
// only the grantor may refresh; quantity and spent counters are
// untouched, so a refresh revives an exhausted-by-uses allowance but
// never restores drained quantity
func Refresh(st state.Store, callingUser string, refreshes []RefreshSpec) ([]*record.TokenAllowance, error) {
	if len(refreshes) == 0 {
		return nil, fault.Invalidf("refresh names no allowances")
	}

	refreshed := make([]*record.TokenAllowance, 0, len(refreshes))
	for _, r := range refreshes {
		if r.Uses.Sign() <= 0 {
			return nil, fault.ErrUsesMustBePositive
		}

		a := &record.TokenAllowance{}
		if err := state.GetObject(st, r.AllowanceKey, a); err != nil {
			if fault.IsErrNotFound(err) {
				return nil, fault.ErrNotFoundAllowance
			}
			return nil, err
		}
		if a.GrantedBy != callingUser {
			return nil, fault.Authorizationf("%s did not grant the allowance held by %s", callingUser, a.GrantedTo)
		}

		a.Uses = r.Uses
		a.Expires = r.Expires
		if err := state.PutObject(st, a); err != nil {
			return nil, err
		}
		refreshed = append(refreshed, a)
	}
	return refreshed, nil
}
