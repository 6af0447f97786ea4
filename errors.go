package dataspace

import (
	"errors"
	"fmt"
)

// ConflictingSelectorsError reports a read request that supplies both a
// type identifier and an object identifier. Exactly one selector may be
// used per call.
type ConflictingSelectorsError struct {
	TypeID   string
	ObjectID string
}

func (e *ConflictingSelectorsError) Error() string {
	return "provide only one of type_id or object_id"
}

// Is implements errors.Is support for ConflictingSelectorsError.
// This allows errors.Is(err, &ConflictingSelectorsError{}) to work with wrapped errors.
func (e *ConflictingSelectorsError) Is(target error) bool {
	_, ok := target.(*ConflictingSelectorsError)
	return ok
}

// NewConflictingSelectorsError creates a new conflicting selectors error
// recording both offending identifiers.
func NewConflictingSelectorsError(typeID, objectID string) *ConflictingSelectorsError {
	return &ConflictingSelectorsError{TypeID: typeID, ObjectID: objectID}
}

// IsConflictingSelectors reports whether err is, or wraps, a
// *ConflictingSelectorsError.
func IsConflictingSelectors(err error) bool {
	var target *ConflictingSelectorsError
	return errors.As(err, &target)
}

// UnknownTypeError reports a type identifier that is not declared in the
// catalog.
type UnknownTypeError struct {
	TypeID string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown type_id '%s'", e.TypeID)
}

// Is implements errors.Is support for UnknownTypeError.
// This allows errors.Is(err, &UnknownTypeError{}) to work with wrapped errors.
func (e *UnknownTypeError) Is(target error) bool {
	_, ok := target.(*UnknownTypeError)
	return ok
}

// NewUnknownTypeError creates a new unknown type error naming the
// offending identifier.
func NewUnknownTypeError(typeID string) *UnknownTypeError {
	return &UnknownTypeError{TypeID: typeID}
}

// IsUnknownType reports whether err is, or wraps, an *UnknownTypeError.
func IsUnknownType(err error) bool {
	var target *UnknownTypeError
	return errors.As(err, &target)
}
