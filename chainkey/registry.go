// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Gala Games Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainkey

import (
	"fmt"
	"sync"

	"github.com/GalaChain/tokenchain/fault"
)

// Field - one key field of a record class
type Field struct {
	Name     string
	Position int
}

// Descriptor - the declared key layout of a record class
type Descriptor struct {
	IndexKey string
	Fields   []Field
}

// Validate - check the descriptor for gaps and duplicates
//
// positions must cover 0..n-1 exactly once and field names must be
// unique
func (d Descriptor) Validate() error {
	if d.IndexKey == "" {
		return fault.ErrMissingIndexKey
	}
	seenPosition := make(map[int]struct{}, len(d.Fields))
	seenName := make(map[string]struct{}, len(d.Fields))
	for _, f := range d.Fields {
		if f.Name == "" {
			return fault.Invalidf("descriptor %q: unnamed key field at position %d", d.IndexKey, f.Position)
		}
		if f.Position < 0 || f.Position >= len(d.Fields) {
			return fault.Invalidf("descriptor %q: field %q position %d out of range", d.IndexKey, f.Name, f.Position)
		}
		if _, ok := seenPosition[f.Position]; ok {
			return fault.Invalidf("descriptor %q: duplicate key position %d", d.IndexKey, f.Position)
		}
		if _, ok := seenName[f.Name]; ok {
			return fault.Invalidf("descriptor %q: duplicate key field %q", d.IndexKey, f.Name)
		}
		seenPosition[f.Position] = struct{}{}
		seenName[f.Name] = struct{}{}
	}
	return nil
}

var registry struct {
	sync.RWMutex
	descriptors map[string]Descriptor
}

// Register - record a descriptor for an index key
//
// fails on an invalid descriptor or a second registration of the same
// index key
func Register(d Descriptor) error {
	if err := d.Validate(); err != nil {
		return err
	}
	registry.Lock()
	defer registry.Unlock()
	if registry.descriptors == nil {
		registry.descriptors = make(map[string]Descriptor)
	}
	if _, ok := registry.descriptors[d.IndexKey]; ok {
		return fault.Existsf("descriptor %q is already registered", d.IndexKey)
	}
	registry.descriptors[d.IndexKey] = d
	return nil
}

// MustRegister - Register for package init blocks
func MustRegister(d Descriptor) {
	if err := Register(d); err != nil {
		panic(fmt.Sprintf("chainkey: %s", err))
	}
}

// DescriptorFor - look up the registered descriptor of an index key
func DescriptorFor(indexKey string) (Descriptor, error) {
	registry.RLock()
	defer registry.RUnlock()
	d, ok := registry.descriptors[indexKey]
	if !ok {
		return Descriptor{}, fault.NotFoundf("no descriptor registered for index key %q", indexKey)
	}
	return d, nil
}
