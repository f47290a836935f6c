// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Gala Games Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package minting - mint and burn orchestration over the allowance
// engine and the running-total supply ledger
//
// minting consumes mint allowances, appends a ledger entry and
// credits the recipient's balance; burning debits the holder and
// appends both a burn receipt and a ledger counter.  The batch path
// groups operations per token class so every ledger entry written by
// one transaction shares the batch-start baseline.
package minting
