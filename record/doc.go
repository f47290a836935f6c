// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Gala Games Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package record - ledger entity definitions
//
// Each record class declares a short index key namespace and an
// ordered list of key fields; the composite key layout is registered
// with chainkey at initialisation.  Records serialise to JSON under
// their composite keys.
//
// Index keys:
//
//	TCN  token class
//	TIN  token instance
//	TBL  token balance
//	TAL  token allowance
//	TCM  token claim
//	TBR  token burn
//	TMR  token mint request        (running-total ledger)
//	TMA  token mint allowance request (running-total ledger)
//	TBC  token burn counter        (running-total ledger)
package record
