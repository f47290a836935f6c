// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Gala Games Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fabricstate_test

import (
	"sort"
	"testing"
	"time"

	"github.com/hyperledger/fabric-chaincode-go/shim"
	"github.com/hyperledger/fabric-protos-go/ledger/queryresult"
	"github.com/hyperledger/fabric-protos-go/peer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/GalaChain/tokenchain/fabricstate"
)

// fakeStub mimics Fabric's read semantics: GetState serves committed
// state only, PutState and DelState land in a write set the reads
// never observe
type fakeStub struct {
	shim.ChaincodeStubInterface
	committed map[string][]byte
	writes    map[string][]byte
	deletes   map[string]bool
	txTime    time.Time
}

func newFakeStub() *fakeStub {
	return &fakeStub{
		committed: make(map[string][]byte),
		writes:    make(map[string][]byte),
		deletes:   make(map[string]bool),
		txTime:    time.UnixMilli(1_700_000_000_000),
	}
}

func (f *fakeStub) GetState(key string) ([]byte, error) {
	return f.committed[key], nil
}

func (f *fakeStub) PutState(key string, value []byte) error {
	f.writes[key] = value
	return nil
}

func (f *fakeStub) DelState(key string) error {
	f.deletes[key] = true
	return nil
}

func (f *fakeStub) GetTxTimestamp() (*timestamppb.Timestamp, error) {
	return timestamppb.New(f.txTime), nil
}

func (f *fakeStub) GetTxID() string {
	return "faketx-000001"
}

func (f *fakeStub) rangeKV(startKey string, endKey string) []*queryresult.KV {
	keys := make([]string, 0, len(f.committed))
	for k := range f.committed {
		if k >= startKey && k < endKey {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	kvs := make([]*queryresult.KV, 0, len(keys))
	for _, k := range keys {
		kvs = append(kvs, &queryresult.KV{Key: k, Value: f.committed[k]})
	}
	return kvs
}

func (f *fakeStub) GetStateByRange(startKey string, endKey string) (shim.StateQueryIteratorInterface, error) {
	return &fakeIterator{items: f.rangeKV(startKey, endKey)}, nil
}

func (f *fakeStub) GetStateByRangeWithPagination(startKey string, endKey string, pageSize int32, bookmark string) (shim.StateQueryIteratorInterface, *peer.QueryResponseMetadata, error) {
	items := f.rangeKV(startKey, endKey)
	start := 0
	if bookmark != "" {
		for i, kv := range items {
			if kv.Key >= bookmark {
				start = i
				break
			}
		}
	}
	end := start + int(pageSize)
	next := ""
	if end < len(items) {
		next = items[end].Key
	} else {
		end = len(items)
	}
	metadata := &peer.QueryResponseMetadata{
		FetchedRecordsCount: int32(end - start),
		Bookmark:            next,
	}
	return &fakeIterator{items: items[start:end]}, metadata, nil
}

type fakeIterator struct {
	items    []*queryresult.KV
	position int
}

func (it *fakeIterator) HasNext() bool {
	return it.position < len(it.items)
}

func (it *fakeIterator) Next() (*queryresult.KV, error) {
	kv := it.items[it.position]
	it.position++
	return kv, nil
}

func (it *fakeIterator) Close() error { return nil }

func TestGetReadsOwnWrites(t *testing.T) {
	stub := newFakeStub()
	stub.committed["a"] = []byte("committed")

	st, err := fabricstate.New(stub)
	require.NoError(t, err)

	data, err := st.Get("a")
	require.NoError(t, err)
	assert.Equal(t, []byte("committed"), data)

	require.NoError(t, st.Put("a", []byte("pending")))
	data, err = st.Get("a")
	require.NoError(t, err)
	assert.Equal(t, []byte("pending"), data)

	// the write also reached the stub's write set
	assert.Equal(t, []byte("pending"), stub.writes["a"])
}

func TestGetSeesOwnDelete(t *testing.T) {
	stub := newFakeStub()
	stub.committed["a"] = []byte("committed")

	st, err := fabricstate.New(stub)
	require.NoError(t, err)

	require.NoError(t, st.Delete("a"))
	data, err := st.Get("a")
	require.NoError(t, err)
	assert.Nil(t, data)
	assert.True(t, stub.deletes["a"])
}

func TestRangeIsCommittedOnly(t *testing.T) {
	stub := newFakeStub()
	stub.committed["k1"] = []byte("one")
	stub.committed["k2"] = []byte("two")

	st, err := fabricstate.New(stub)
	require.NoError(t, err)
	require.NoError(t, st.Put("k3", []byte("three")))

	iter, err := st.Range("k", "l")
	require.NoError(t, err)
	defer iter.Close()

	keys := []string{}
	for iter.Next() {
		keys = append(keys, iter.Key())
	}
	require.NoError(t, iter.Err())
	assert.Equal(t, []string{"k1", "k2"}, keys)
}

func TestRangeWithPagination(t *testing.T) {
	stub := newFakeStub()
	stub.committed["k1"] = []byte("one")
	stub.committed["k2"] = []byte("two")
	stub.committed["k3"] = []byte("three")

	st, err := fabricstate.New(stub)
	require.NoError(t, err)

	iter, bookmark, err := st.RangeWithPagination("k", "l", 2, "")
	require.NoError(t, err)
	keys := []string{}
	for iter.Next() {
		keys = append(keys, iter.Key())
	}
	iter.Close()
	require.NoError(t, iter.Err())
	assert.Equal(t, []string{"k1", "k2"}, keys)
	assert.Equal(t, "k3", bookmark)

	iter, bookmark, err = st.RangeWithPagination("k", "l", 2, bookmark)
	require.NoError(t, err)
	keys = keys[:0]
	for iter.Next() {
		keys = append(keys, iter.Key())
	}
	iter.Close()
	require.NoError(t, iter.Err())
	assert.Equal(t, []string{"k3"}, keys)
	assert.Equal(t, "", bookmark)
}

func TestTxClock(t *testing.T) {
	stub := newFakeStub()
	st, err := fabricstate.New(stub)
	require.NoError(t, err)

	assert.Equal(t, int64(1_700_000_000_000), st.TxTime().UnixMilli())
	assert.Equal(t, "faketx-000001", st.TxID())
}
