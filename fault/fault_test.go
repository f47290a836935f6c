// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Gala Games Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault_test

import (
	"testing"

	"github.com/GalaChain/tokenchain/fault"
)

var (
	errAuthOne     = fault.AuthorizationError("auth one")
	errConflictOne = fault.ConflictError("conflict one")
	errExistsOne   = fault.ExistsError("exists one")
	errInvalidOne  = fault.InvalidError("invalid one")
	errNotFoundOne = fault.NotFoundError("not found one")
	errProcessOne  = fault.ProcessError("process one")
	errResourceOne = fault.ResourceError("resource one")
)

// test that each error class is detected by exactly its own predicate
func TestErrorClasses(t *testing.T) {
	errorList := []struct {
		err           error
		authorization bool
		conflict      bool
		exists        bool
		invalid       bool
		notFound      bool
		process       bool
		resource      bool
	}{
		{errAuthOne, true, false, false, false, false, false, false},
		{errConflictOne, false, true, false, false, false, false, false},
		{errExistsOne, false, false, true, false, false, false, false},
		{errInvalidOne, false, false, false, true, false, false, false},
		{errNotFoundOne, false, false, false, false, true, false, false},
		{errProcessOne, false, false, false, false, false, true, false},
		{errResourceOne, false, false, false, false, false, false, true},
	}

	for i, e := range errorList {
		err := e.err
		if fault.IsErrAuthorization(err) != e.authorization {
			t.Errorf("%d: expected 'authorization' == %v for err = %v", i, e.authorization, err)
		}
		if fault.IsErrConflict(err) != e.conflict {
			t.Errorf("%d: expected 'conflict' == %v for err = %v", i, e.conflict, err)
		}
		if fault.IsErrExists(err) != e.exists {
			t.Errorf("%d: expected 'exists' == %v for err = %v", i, e.exists, err)
		}
		if fault.IsErrInvalid(err) != e.invalid {
			t.Errorf("%d: expected 'invalid' == %v for err = %v", i, e.invalid, err)
		}
		if fault.IsErrNotFound(err) != e.notFound {
			t.Errorf("%d: expected 'not found' == %v for err = %v", i, e.notFound, err)
		}
		if fault.IsErrProcess(err) != e.process {
			t.Errorf("%d: expected 'process' == %v for err = %v", i, e.process, err)
		}
		if fault.IsErrResource(err) != e.resource {
			t.Errorf("%d: expected 'resource' == %v for err = %v", i, e.resource, err)
		}
	}
}

// constructors must produce values of the matching class
func TestConstructors(t *testing.T) {
	err := fault.Conflictf("user %q duplicated", "client|alice")
	if !fault.IsErrConflict(err) {
		t.Fatalf("expected conflict class, got: %v", err)
	}
	if err.Error() != `user "client|alice" duplicated` {
		t.Errorf("unexpected message: %q", err.Error())
	}

	err = fault.Resourcef("insufficient balance: have %s  want %s", "10", "25")
	if !fault.IsErrResource(err) {
		t.Fatalf("expected resource class, got: %v", err)
	}
}
