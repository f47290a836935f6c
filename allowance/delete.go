// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Gala Games Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package allowance

import (
	"github.com/GalaChain/tokenchain/fault"
	"github.com/GalaChain/tokenchain/state"
)

// Delete - remove every allowance matching the query
//
// the calling user must be a party to each matched allowance, either
// its grantor or its grantee; a query matching someone else's
// allowance fails the whole call before anything is deleted
func Delete(st state.Store, callingUser string, q Query) (int, error) {
	matched, err := Fetch(st, q)
	if err != nil {
		return 0, err
	}

	for _, a := range matched {
		if a.GrantedTo != callingUser && a.GrantedBy != callingUser {
			return 0, fault.Authorizationf("%s is not a party to the allowance granted by %s to %s",
				callingUser, a.GrantedBy, a.GrantedTo)
		}
	}
	for _, a := range matched {
		if err := state.DeleteObject(st, a); err != nil {
			return 0, err
		}
	}
	return len(matched), nil
}
