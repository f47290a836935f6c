// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Gala Games Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state

import (
	"encoding/json"

	"github.com/GalaChain/tokenchain/chainkey"
	"github.com/GalaChain/tokenchain/fault"
)

// PutObject - serialise a record and write it under its composite key
func PutObject(st Store, r chainkey.Record) error {
	key, err := chainkey.KeyOf(r)
	if err != nil {
		return err
	}
	data, err := json.Marshal(r)
	if err != nil {
		return fault.Processf("cannot serialise %q record: %s", r.IndexKey(), err)
	}
	return st.Put(key, data)
}

// GetObject - read and deserialise the record stored under key
func GetObject(st Store, key string, v interface{}) error {
	data, err := st.Get(key)
	if err != nil {
		return err
	}
	if data == nil {
		return fault.NotFoundf("no record at key %q", printable(key))
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fault.Processf("cannot deserialise record at key %q: %s", printable(key), err)
	}
	return nil
}

// GetObjectOf - read the record stored under a record's own key
func GetObjectOf(st Store, r chainkey.Record) error {
	key, err := chainkey.KeyOf(r)
	if err != nil {
		return err
	}
	return GetObject(st, key, r)
}

// DeleteObject - remove the record stored under a record's own key
func DeleteObject(st Store, r chainkey.Record) error {
	key, err := chainkey.KeyOf(r)
	if err != nil {
		return err
	}
	return st.Delete(key)
}

// IterateByPartialKey - visit every committed record sharing a
// partial composite key, in key order
//
// fn returns stop to end the scan early; any error from fn or from
// the scan aborts and propagates
func IterateByPartialKey(st Store, indexKey string, parts []string, fn func(key string, data []byte) (stop bool, err error)) error {
	partial, err := chainkey.PartialKey(indexKey, parts)
	if err != nil {
		return err
	}
	startKey, endKey := chainkey.RangeOf(partial)
	iter, err := st.Range(startKey, endKey)
	if err != nil {
		return fault.Processf("range scan failed for %q: %s", indexKey, err)
	}
	defer iter.Close()

	for iter.Next() {
		stop, err := fn(iter.Key(), iter.Value())
		if err != nil {
			return err
		}
		if stop {
			return nil
		}
	}
	if err := iter.Err(); err != nil {
		return fault.Processf("range scan failed for %q: %s", indexKey, err)
	}
	return nil
}

// IterateByPartialKeyPaged - one page of a partial-key query
//
// the bookmark must be empty or one returned by an earlier page of
// the same query; returns the bookmark for the next page, empty when
// the query is exhausted
func IterateByPartialKeyPaged(st Store, indexKey string, parts []string, pageSize int32, bookmark string, fn func(key string, data []byte) error) (string, error) {
	if pageSize <= 0 {
		return "", fault.ErrInvalidCount
	}
	partial, err := chainkey.PartialKey(indexKey, parts)
	if err != nil {
		return "", err
	}
	startKey, endKey := chainkey.RangeOf(partial)
	if bookmark != "" && (bookmark < startKey || bookmark >= endKey) {
		return "", fault.ErrInvalidCursor
	}
	iter, nextBookmark, err := st.RangeWithPagination(startKey, endKey, pageSize, bookmark)
	if err != nil {
		return "", fault.Processf("paginated range scan failed for %q: %s", indexKey, err)
	}
	defer iter.Close()

	for iter.Next() {
		if err := fn(iter.Key(), iter.Value()); err != nil {
			return "", err
		}
	}
	if err := iter.Err(); err != nil {
		return "", fault.Processf("paginated range scan failed for %q: %s", indexKey, err)
	}
	return nextBookmark, nil
}

// composite keys contain NUL separators; make them printable for
// error messages
func printable(key string) string {
	out := make([]rune, 0, len(key))
	for _, r := range key {
		if r == 0 {
			out = append(out, '/')
		} else {
			out = append(out, r)
		}
	}
	return string(out)
}
