// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Gala Games Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chainkey - composite key encoding for ledger records
//
// Every record is stored under a composite key of the form:
//
//	NUL ++ indexKey ++ SEP ++ part0 ++ SEP ++ part1 ++ ... ++ SEP
//
// where SEP is U+0000, the minimum unicode code point.  Because the
// separator sorts below every other rune, any stable prefix of the key
// parts is also a prefix of the encoded key, so partial keys bound
// range scans without false matches.
//
// Each record class registers a Descriptor naming its index key and
// the ordered list of fields contributing key parts.  Registration is
// validated once, at package initialisation, replacing any runtime
// type introspection.
package chainkey
