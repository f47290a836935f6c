// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Gala Games Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package supply

import (
	"fmt"
)

const (
	// largest timestamp representable in a time key, 16 decimal
	// digits (2^53 - 1, for compatibility with ledgers written by
	// clients limited to that range)
	maxKeyTime int64 = 9007199254740991

	timeKeyWidth = 16

	// epoch bucket length for the coarse rotation key
	epochLengthMs int64 = 365 * 24 * 60 * 60 * 1000

	// DefaultLookbackOffsetMs - the window skipped at the head of a
	// running-total scan; at least one block commit interval
	DefaultLookbackOffsetMs int64 = 2000

	// DefaultLookbackTxCount - entries scanned past the first hit
	// before aggregation stops
	DefaultLookbackTxCount = 1000
)

// InverseTime - fixed-width zero-padded encoding of
// maxKeyTime - (timestamp - offset), so that ascending lexicographic
// order is reverse-chronological
func InverseTime(timestampMs int64, offsetMs int64) string {
	t := timestampMs - offsetMs
	if t < 0 {
		t = 0
	}
	if t > maxKeyTime {
		t = maxKeyTime
	}
	return fmt.Sprintf("%0*d", timeKeyWidth, maxKeyTime-t)
}

// InverseEpoch - coarse bucket key accompanying InverseTime; a hook
// for rotating very old ledger ranges without breaking the scan
// contract
func InverseEpoch(timestampMs int64, offsetMs int64) string {
	t := timestampMs - offsetMs
	if t < 0 {
		t = 0
	}
	return fmt.Sprintf("%d", (maxKeyTime-t)/epochLengthMs)
}
