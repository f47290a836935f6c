// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Gala Games Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GalaChain/tokenchain/record"
	"github.com/GalaChain/tokenchain/state"
	"github.com/GalaChain/tokenchain/storage"
)

// Tx must satisfy the store contract the engine packages run against
var _ state.Store = (*storage.Tx)(nil)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "storage-test-log")
	if err != nil {
		os.Exit(1)
	}

	logging := logger.Configuration{
		Directory: dir,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	_ = logger.Initialise(logging)

	rc := m.Run()
	logger.Finalise()
	os.RemoveAll(dir)
	os.Exit(rc)
}

func openTestDB(t *testing.T) *storage.Database {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "tokens.leveldb"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestReadYourWrites(t *testing.T) {
	db := openTestDB(t)

	tx := db.Begin()
	require.NoError(t, tx.Put("k1", []byte("one")))

	data, err := tx.Get("k1")
	require.NoError(t, err)
	assert.Equal(t, []byte("one"), data)

	// range scans only see committed state
	iter, err := tx.Range("k", "l")
	require.NoError(t, err)
	assert.False(t, iter.Next())
	require.NoError(t, iter.Err())
	iter.Close()

	require.NoError(t, tx.Commit())

	tx2 := db.Begin()
	data, err = tx2.Get("k1")
	require.NoError(t, err)
	assert.Equal(t, []byte("one"), data)

	iter, err = tx2.Range("k", "l")
	require.NoError(t, err)
	require.True(t, iter.Next())
	assert.Equal(t, "k1", iter.Key())
	assert.Equal(t, []byte("one"), iter.Value())
	assert.False(t, iter.Next())
	require.NoError(t, iter.Err())
	iter.Close()
}

func TestDeleteShadowsCommitted(t *testing.T) {
	db := openTestDB(t)

	tx := db.Begin()
	require.NoError(t, tx.Put("k1", []byte("one")))
	require.NoError(t, tx.Commit())

	tx2 := db.Begin()
	require.NoError(t, tx2.Delete("k1"))
	data, err := tx2.Get("k1")
	require.NoError(t, err)
	assert.Nil(t, data)
	require.NoError(t, tx2.Commit())

	tx3 := db.Begin()
	data, err = tx3.Get("k1")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestAbort(t *testing.T) {
	db := openTestDB(t)

	tx := db.Begin()
	require.NoError(t, tx.Put("k1", []byte("one")))
	tx.Abort()

	tx2 := db.Begin()
	data, err := tx2.Get("k1")
	require.NoError(t, err)
	assert.Nil(t, data)

	assert.Error(t, tx.Commit())
}

func TestPagination(t *testing.T) {
	db := openTestDB(t)

	tx := db.Begin()
	require.NoError(t, tx.Put("k1", []byte("one")))
	require.NoError(t, tx.Put("k2", []byte("two")))
	require.NoError(t, tx.Put("k3", []byte("three")))
	require.NoError(t, tx.Commit())

	tx2 := db.Begin()
	iter, bookmark, err := tx2.RangeWithPagination("k", "l", 2, "")
	require.NoError(t, err)
	keys := []string{}
	for iter.Next() {
		keys = append(keys, iter.Key())
	}
	iter.Close()
	assert.Equal(t, []string{"k1", "k2"}, keys)
	assert.Equal(t, "k3", bookmark)

	iter, bookmark, err = tx2.RangeWithPagination("k", "l", 2, bookmark)
	require.NoError(t, err)
	keys = keys[:0]
	for iter.Next() {
		keys = append(keys, iter.Key())
	}
	iter.Close()
	assert.Equal(t, []string{"k3"}, keys)
	assert.Equal(t, "", bookmark)
}

// the engine record helpers run unchanged over a local transaction
func TestRecordRoundTrip(t *testing.T) {
	db := openTestDB(t)

	class := &record.TokenClass{
		Collection:    "platform",
		Category:      "currency",
		Type:          "GALA",
		AdditionalKey: "none",
		Name:          "Gala",
		Symbol:        "GALA",
		Decimals:      2,
	}

	tx := db.Begin()
	require.NoError(t, state.PutObject(tx, class))
	require.NoError(t, tx.Commit())

	tx2 := db.Begin()
	fetched := &record.TokenClass{
		Collection:    "platform",
		Category:      "currency",
		Type:          "GALA",
		AdditionalKey: "none",
	}
	require.NoError(t, state.GetObjectOf(tx2, fetched))
	assert.Equal(t, "Gala", fetched.Name)
	assert.Equal(t, 2, fetched.Decimals)
}
