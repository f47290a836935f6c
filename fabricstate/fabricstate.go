// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Gala Games Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fabricstate - state.Store backed by a Fabric chaincode stub
//
// Fabric reads are snapshot reads of committed state, a GetState
// never observes the transaction's own pending writes.  This adapter
// layers a write cache over the stub so point reads do observe them,
// while range scans keep the committed-only snapshot semantics the
// conflict detection of the endorsement flow depends on.
package fabricstate

import (
	"time"

	"github.com/hyperledger/fabric-chaincode-go/shim"

	"github.com/GalaChain/tokenchain/fault"
	"github.com/GalaChain/tokenchain/state"
)

type cachedWrite struct {
	value   []byte
	deleted bool
}

// StubStore - state.Store over one transaction's chaincode stub
type StubStore struct {
	stub   shim.ChaincodeStubInterface
	writes map[string]cachedWrite
	txTime time.Time
}

// New - wrap a stub for the duration of one transaction
//
// the transaction timestamp is captured once so every read of the
// clock within the transaction agrees
func New(stub shim.ChaincodeStubInterface) (*StubStore, error) {
	ts, err := stub.GetTxTimestamp()
	if err != nil {
		return nil, fault.Processf("cannot read transaction timestamp: %s", err)
	}
	return &StubStore{
		stub:   stub,
		writes: make(map[string]cachedWrite),
		txTime: ts.AsTime(),
	}, nil
}

// Get - pending writes shadow committed state
func (s *StubStore) Get(key string) ([]byte, error) {
	if w, ok := s.writes[key]; ok {
		if w.deleted {
			return nil, nil
		}
		return w.value, nil
	}
	data, err := s.stub.GetState(key)
	if err != nil {
		return nil, fault.Processf("state read failed: %s", err)
	}
	return data, nil
}

func (s *StubStore) Put(key string, value []byte) error {
	if err := s.stub.PutState(key, value); err != nil {
		return fault.Processf("state write failed: %s", err)
	}
	s.writes[key] = cachedWrite{value: value}
	return nil
}

func (s *StubStore) Delete(key string) error {
	if err := s.stub.DelState(key); err != nil {
		return fault.Processf("state delete failed: %s", err)
	}
	s.writes[key] = cachedWrite{deleted: true}
	return nil
}

// Range - committed-state scan, pending writes excluded
func (s *StubStore) Range(startKey string, endKey string) (state.Iterator, error) {
	iter, err := s.stub.GetStateByRange(startKey, endKey)
	if err != nil {
		return nil, fault.Processf("range scan failed: %s", err)
	}
	return &stubIterator{iter: iter}, nil
}

// RangeWithPagination - one page of a committed-state scan
func (s *StubStore) RangeWithPagination(startKey string, endKey string, pageSize int32, bookmark string) (state.Iterator, string, error) {
	iter, metadata, err := s.stub.GetStateByRangeWithPagination(startKey, endKey, pageSize, bookmark)
	if err != nil {
		return nil, "", fault.Processf("paginated range scan failed: %s", err)
	}
	next := ""
	if metadata != nil {
		next = metadata.GetBookmark()
	}
	return &stubIterator{iter: iter}, next, nil
}

func (s *StubStore) TxTime() time.Time {
	return s.txTime
}

func (s *StubStore) TxID() string {
	return s.stub.GetTxID()
}

// adapt the shim's HasNext/Next pull model to state.Iterator
type stubIterator struct {
	iter  shim.StateQueryIteratorInterface
	key   string
	value []byte
	err   error
}

func (it *stubIterator) Next() bool {
	if it.err != nil || !it.iter.HasNext() {
		return false
	}
	kv, err := it.iter.Next()
	if err != nil {
		it.err = err
		return false
	}
	it.key = kv.GetKey()
	it.value = kv.GetValue()
	return true
}

func (it *stubIterator) Key() string   { return it.key }
func (it *stubIterator) Value() []byte { return it.value }

func (it *stubIterator) Err() error {
	if it.err != nil {
		return fault.Processf("range scan failed: %s", it.err)
	}
	return nil
}

func (it *stubIterator) Close() {
	_ = it.iter.Close()
}
