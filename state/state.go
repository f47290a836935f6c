// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Gala Games Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state

import (
	"time"
)

// Iterator - ordered traversal of a key range
//
// the returned key and value are only valid until the next call to
// Next; copy them if they must be preserved
type Iterator interface {
	Next() bool
	Key() string
	Value() []byte
	Err() error
	Close()
}

// Store - one transaction's access to the substrate
type Store interface {

	// Get - read a value; nil value and nil error when absent
	Get(key string) ([]byte, error)

	// Put - stage a write
	Put(key string, value []byte) error

	// Delete - stage a removal
	Delete(key string) error

	// Range - scan committed state over [startKey, endKey)
	Range(startKey string, endKey string) (Iterator, error)

	// RangeWithPagination - bounded page of a range scan; the
	// returned bookmark resumes the scan on a later call, empty when
	// the range is exhausted
	RangeWithPagination(startKey string, endKey string, pageSize int32, bookmark string) (Iterator, string, error)

	// TxTime - the transaction timestamp, identical for every peer
	// executing this transaction
	TxTime() time.Time

	// TxID - the unique transaction identifier
	TxID() string
}
