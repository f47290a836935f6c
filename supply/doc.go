// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Gala Games Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package supply - append-only running totals for mints, mint
// allowances and burns
//
// A hot counter key updated in place would serialise every writer and
// abort most concurrent transactions.  Instead every action appends a
// uniquely-keyed entry carrying the total the writer observed (the
// baseline) plus its own delta, and the current total is derived by a
// bounded range scan: take the baseline of the oldest entry in the
// window, then add every delta from that entry forward.
//
// Reads skip a lookback window at the head of the range.  Entries
// written in the block currently being assembled may not be durably
// ordered yet, and reading them would put their keys in this
// transaction's read set, colliding with every concurrent writer.
// Callers that need exact real-time totals pass a zero offset and
// accept the conflict risk.
package supply
