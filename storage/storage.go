// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Gala Games Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - a local LevelDB-backed substrate
//
// implements the same store contract as the chaincode stub adapter,
// so the engine packages run unchanged against a local database for
// development, replay and offline inspection.  Pending writes live in
// a cache layered over the database and a LevelDB batch, point reads
// observe them, range scans do not, matching the substrate semantics
// on chain.
package storage

import (
	"fmt"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	cache "github.com/patrickmn/go-cache"
	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/GalaChain/tokenchain/fault"
	"github.com/GalaChain/tokenchain/state"
)

// Database - one LevelDB instance holding token state
type Database struct {
	sync.Mutex
	db    *leveldb.DB
	log   *logger.L
	txSeq int
}

// Open - open or create the database directory
func Open(path string) (*Database, error) {
	opt := &ldb_opt.Options{
		BlockCacheCapacity: 8 * ldb_opt.MiB,
		WriteBuffer:        4 * ldb_opt.MiB,
	}
	db, err := leveldb.OpenFile(path, opt)
	if err != nil {
		return nil, fault.Processf("cannot open database %q: %s", path, err)
	}
	return &Database{
		db:  db,
		log: logger.New("storage"),
	}, nil
}

// Close - release the database
func (d *Database) Close() error {
	return d.db.Close()
}

// Begin - start a transaction positioned at the current wall clock
func (d *Database) Begin() *Tx {
	d.Lock()
	d.txSeq++
	seq := d.txSeq
	d.Unlock()

	return &Tx{
		database: d,
		batch:    new(leveldb.Batch),
		writes:   newWriteCache(),
		txTime:   time.Now().UTC(),
		txID:     fmt.Sprintf("local-%06d", seq),
	}
}

const (
	dbPut = iota
	dbDelete
)

const (
	defaultTimeout    = 1 * time.Minute
	defaultExpiration = 2 * time.Minute
)

// pending writes of one transaction, keyed on the composite key
type writeCache struct {
	cache *cache.Cache
}

type cachedWrite struct {
	op    int
	value []byte
}

func newWriteCache() *writeCache {
	return &writeCache{
		cache: cache.New(defaultTimeout, defaultExpiration),
	}
}

// Get - the pending value; the second result distinguishes a cached
// delete from an absent entry
func (c *writeCache) Get(key string) ([]byte, bool, bool) {
	obj, found := c.cache.Get(key)
	if !found {
		return nil, false, false
	}
	w := obj.(cachedWrite)
	if w.op == dbDelete {
		return nil, true, true
	}
	return w.value, false, true
}

func (c *writeCache) Set(op int, key string, value []byte) {
	c.cache.Set(key, cachedWrite{op: op, value: value}, defaultExpiration)
}

func (c *writeCache) Clear() {
	c.cache.Flush()
}

// Tx - one transaction over the local database
//
// satisfies state.Store; nothing reaches the database until Commit
type Tx struct {
	database *Database
	batch    *leveldb.Batch
	writes   *writeCache
	txTime   time.Time
	txID     string
	done     bool
}

func (t *Tx) Get(key string) ([]byte, error) {
	if value, deleted, found := t.writes.Get(key); found {
		if deleted {
			return nil, nil
		}
		return value, nil
	}
	data, err := t.database.db.Get([]byte(key), nil)
	if err == leveldb.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fault.Processf("database read failed: %s", err)
	}
	return data, nil
}

func (t *Tx) Put(key string, value []byte) error {
	if t.done {
		return fault.Processf("transaction %s already finished", t.txID)
	}
	t.batch.Put([]byte(key), value)
	t.writes.Set(dbPut, key, value)
	return nil
}

func (t *Tx) Delete(key string) error {
	if t.done {
		return fault.Processf("transaction %s already finished", t.txID)
	}
	t.batch.Delete([]byte(key))
	t.writes.Set(dbDelete, key, nil)
	return nil
}

func (t *Tx) Range(startKey string, endKey string) (state.Iterator, error) {
	iter := t.database.db.NewIterator(&util.Range{
		Start: []byte(startKey),
		Limit: []byte(endKey),
	}, nil)
	return &dbIterator{iter: iter}, nil
}

func (t *Tx) RangeWithPagination(startKey string, endKey string, pageSize int32, bookmark string) (state.Iterator, string, error) {
	if pageSize <= 0 {
		return nil, "", fault.ErrInvalidCount
	}
	start := startKey
	if bookmark != "" {
		start = bookmark
	}

	iter := t.database.db.NewIterator(&util.Range{
		Start: []byte(start),
		Limit: []byte(endKey),
	}, nil)
	defer iter.Release()

	items := make([]kv, 0, pageSize)
	next := ""
	for iter.Next() {
		if int32(len(items)) >= pageSize {
			next = string(iter.Key())
			break
		}
		key := make([]byte, len(iter.Key()))
		copy(key, iter.Key())
		value := make([]byte, len(iter.Value()))
		copy(value, iter.Value())
		items = append(items, kv{key: string(key), value: value})
	}
	if err := iter.Error(); err != nil {
		return nil, "", fault.Processf("database scan failed: %s", err)
	}
	return &sliceIterator{items: items, position: -1}, next, nil
}

func (t *Tx) TxTime() time.Time {
	return t.txTime
}

func (t *Tx) TxID() string {
	return t.txID
}

// Commit - apply the batch atomically
func (t *Tx) Commit() error {
	if t.done {
		return fault.Processf("transaction %s already finished", t.txID)
	}
	t.done = true
	if err := t.database.db.Write(t.batch, nil); err != nil {
		return fault.Processf("database write failed: %s", err)
	}
	t.database.log.Debugf("committed %s", t.txID)
	return nil
}

// Abort - discard the pending writes
func (t *Tx) Abort() {
	t.done = true
	t.batch.Reset()
	t.writes.Clear()
}

type kv struct {
	key   string
	value []byte
}

// LevelDB reuses its key and value buffers between moves, so the
// iterator copies before handing them out
type dbIterator struct {
	iter  ldbIterator
	key   string
	value []byte
}

type ldbIterator interface {
	Next() bool
	Key() []byte
	Value() []byte
	Error() error
	Release()
}

func (it *dbIterator) Next() bool {
	if !it.iter.Next() {
		return false
	}
	it.key = string(it.iter.Key())
	value := make([]byte, len(it.iter.Value()))
	copy(value, it.iter.Value())
	it.value = value
	return true
}

func (it *dbIterator) Key() string   { return it.key }
func (it *dbIterator) Value() []byte { return it.value }

func (it *dbIterator) Err() error {
	if err := it.iter.Error(); err != nil {
		return fault.Processf("database scan failed: %s", err)
	}
	return nil
}

func (it *dbIterator) Close() {
	it.iter.Release()
}

type sliceIterator struct {
	items    []kv
	position int
}

func (it *sliceIterator) Next() bool {
	if it.position+1 >= len(it.items) {
		return false
	}
	it.position++
	return true
}

func (it *sliceIterator) Key() string   { return it.items[it.position].key }
func (it *sliceIterator) Value() []byte { return it.items[it.position].value }
func (it *sliceIterator) Err() error    { return nil }
func (it *sliceIterator) Close()        {}
