// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Gala Games Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package allowance - the allowance lifecycle engine
//
// An allowance moves through: active (unexpired, remaining uses and
// quantity), exhausted (consumption forces the expiry to the current
// transaction time), expired, and finally deleted by explicit
// cleanup.  Consumption mutates only the allowance's own key and
// writes one immutable claim receipt per allowance touched, so two
// grantees consuming different allowances never conflict on the
// substrate.
package allowance
