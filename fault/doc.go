// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Gala Games Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// Provides typed error classes so callers can test the kind of a
// failure without resorting to partial string matches.  The offending
// values are carried in the message text; the class carries the
// taxonomy.
package fault
