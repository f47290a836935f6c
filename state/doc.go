// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Gala Games Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package state - the substrate read/write contract
//
// A Store is one transaction's view of the key-value substrate: point
// reads see the committed snapshot overlaid with this transaction's
// own pending writes, writes are collected for an atomic commit, and
// the substrate aborts the transaction at commit time if any key it
// read was changed by another transaction committed first.  Range
// scans see committed state only, never pending writes.
//
// The object helpers serialise records to flat key -> JSON-string
// entries under their composite keys, and resolve partial-key queries
// through bounded range scans.
package state
