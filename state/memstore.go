// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Gala Games Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// MemStore - an in-process Store over a sorted map
//
// used by tests and local tooling; it mimics the substrate contract:
// reads see committed state plus this transaction's own point writes,
// while range scans see committed state only
type MemStore struct {
	sync.Mutex
	committed map[string][]byte
	pending   map[string]pendingWrite
	txTime    time.Time
	txSeq     int
}

type pendingWrite struct {
	value   []byte
	deleted bool
}

// NewMemStore - create an empty store with the clock set to now
func NewMemStore() *MemStore {
	return &MemStore{
		committed: make(map[string][]byte),
		pending:   make(map[string]pendingWrite),
		txTime:    time.Now().UTC(),
	}
}

// SetTxTime - position the transaction clock, for tests
func (m *MemStore) SetTxTime(t time.Time) {
	m.Lock()
	defer m.Unlock()
	m.txTime = t
}

// AdvanceTxTime - move the transaction clock forward, for tests
func (m *MemStore) AdvanceTxTime(d time.Duration) {
	m.Lock()
	defer m.Unlock()
	m.txTime = m.txTime.Add(d)
}

// Commit - apply pending writes to committed state and start the next
// transaction
func (m *MemStore) Commit() {
	m.Lock()
	defer m.Unlock()
	for key, w := range m.pending {
		if w.deleted {
			delete(m.committed, key)
		} else {
			m.committed[key] = w.value
		}
	}
	m.pending = make(map[string]pendingWrite)
	m.txSeq += 1
}

// Abort - discard pending writes
func (m *MemStore) Abort() {
	m.Lock()
	defer m.Unlock()
	m.pending = make(map[string]pendingWrite)
	m.txSeq += 1
}

func (m *MemStore) Get(key string) ([]byte, error) {
	m.Lock()
	defer m.Unlock()
	if w, ok := m.pending[key]; ok {
		if w.deleted {
			return nil, nil
		}
		return append([]byte{}, w.value...), nil
	}
	value, ok := m.committed[key]
	if !ok {
		return nil, nil
	}
	return append([]byte{}, value...), nil
}

func (m *MemStore) Put(key string, value []byte) error {
	m.Lock()
	defer m.Unlock()
	m.pending[key] = pendingWrite{value: append([]byte{}, value...)}
	return nil
}

func (m *MemStore) Delete(key string) error {
	m.Lock()
	defer m.Unlock()
	m.pending[key] = pendingWrite{deleted: true}
	return nil
}

func (m *MemStore) Range(startKey string, endKey string) (Iterator, error) {
	return m.rangeSlice(startKey, endKey, 0, "")
}

func (m *MemStore) RangeWithPagination(startKey string, endKey string, pageSize int32, bookmark string) (Iterator, string, error) {
	iter, err := m.rangeSlice(startKey, endKey, pageSize, bookmark)
	if err != nil {
		return nil, "", err
	}
	return iter, iter.(*memIterator).nextBookmark, nil
}

func (m *MemStore) TxTime() time.Time {
	m.Lock()
	defer m.Unlock()
	return m.txTime
}

func (m *MemStore) TxID() string {
	m.Lock()
	defer m.Unlock()
	return fmt.Sprintf("memtx-%06d", m.txSeq)
}

func (m *MemStore) rangeSlice(startKey string, endKey string, pageSize int32, bookmark string) (Iterator, error) {
	m.Lock()
	defer m.Unlock()

	from := startKey
	if bookmark != "" && bookmark > from {
		from = bookmark
	}

	keys := make([]string, 0, len(m.committed))
	for key := range m.committed {
		if key >= from && key < endKey {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	nextBookmark := ""
	if pageSize > 0 && int32(len(keys)) > pageSize {
		nextBookmark = keys[pageSize]
		keys = keys[:pageSize]
	}

	items := make([]kv, len(keys))
	for i, key := range keys {
		items[i] = kv{key: key, value: append([]byte{}, m.committed[key]...)}
	}
	return &memIterator{items: items, position: -1, nextBookmark: nextBookmark}, nil
}

type kv struct {
	key   string
	value []byte
}

type memIterator struct {
	items        []kv
	position     int
	nextBookmark string
}

func (it *memIterator) Next() bool {
	if it.position+1 >= len(it.items) {
		return false
	}
	it.position += 1
	return true
}

func (it *memIterator) Key() string   { return it.items[it.position].key }
func (it *memIterator) Value() []byte { return it.items[it.position].value }
func (it *memIterator) Err() error    { return nil }
func (it *memIterator) Close()        {}
