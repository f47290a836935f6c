// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Gala Games Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import "fmt"

// error base
type GenericError string

// to allow for different classes of errors
type AuthorizationError GenericError
type ConflictError GenericError
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type ResourceError GenericError

// common errors - keep in alphabetic order
var (
	ErrAllowanceExpired        = ResourceError("allowance is expired")
	ErrEmptyKeyPart            = InvalidError("composite key part is empty")
	ErrInvalidCompositeKey     = InvalidError("invalid composite key")
	ErrInvalidCount            = InvalidError("count is invalid")
	ErrInvalidCursor           = InvalidError("cursor is invalid")
	ErrMissingIndexKey         = InvalidError("record class declares no index key")
	ErrNotFoundAllowance       = NotFoundError("allowance record is not found")
	ErrNotFoundBalance         = NotFoundError("balance record is not found")
	ErrNotFoundTokenClass      = NotFoundError("token class is not found")
	ErrNotFoundTokenInstance   = NotFoundError("token instance is not found")
	ErrQuantityMustBePositive  = InvalidError("quantity must be positive")
	ErrUsesMustBePositive      = InvalidError("uses must be positive")
	ErrZeroQuantityRequested   = InvalidError("requested quantity must be positive")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e AuthorizationError) Error() string { return string(e) }
func (e ConflictError) Error() string      { return string(e) }
func (e ExistsError) Error() string        { return string(e) }
func (e InvalidError) Error() string       { return string(e) }
func (e NotFoundError) Error() string      { return string(e) }
func (e ProcessError) Error() string       { return string(e) }
func (e ResourceError) Error() string      { return string(e) }

// determine the class of an error
func IsErrAuthorization(e error) bool { _, ok := e.(AuthorizationError); return ok }
func IsErrConflict(e error) bool      { _, ok := e.(ConflictError); return ok }
func IsErrExists(e error) bool        { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool       { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool      { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool       { _, ok := e.(ProcessError); return ok }
func IsErrResource(e error) bool      { _, ok := e.(ResourceError); return ok }

// constructors for errors that carry the offending values in the
// message, while still being comparable by class
func Authorizationf(format string, args ...interface{}) error {
	return AuthorizationError(fmt.Sprintf(format, args...))
}
func Conflictf(format string, args ...interface{}) error {
	return ConflictError(fmt.Sprintf(format, args...))
}
func Existsf(format string, args ...interface{}) error {
	return ExistsError(fmt.Sprintf(format, args...))
}
func Invalidf(format string, args ...interface{}) error {
	return InvalidError(fmt.Sprintf(format, args...))
}
func NotFoundf(format string, args ...interface{}) error {
	return NotFoundError(fmt.Sprintf(format, args...))
}
func Processf(format string, args ...interface{}) error {
	return ProcessError(fmt.Sprintf(format, args...))
}
func Resourcef(format string, args ...interface{}) error {
	return ResourceError(fmt.Sprintf(format, args...))
}
