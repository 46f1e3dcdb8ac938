package persist

import (
	"errors"
	"fmt"
)

var (
	// ErrNotRegistered is the sentinel behind every UnregisteredTagError.
	ErrNotRegistered = errors.New("tag not registered")
	// ErrMalformedRecord is the sentinel behind every MalformedRecordError.
	ErrMalformedRecord = errors.New("malformed record")
	// ErrTagCollision is returned when a tag is registered twice.
	ErrTagCollision = errors.New("tag already registered")
	// ErrUnexpectedType is returned by ImportAs when the factory built a
	// different kind of behaviour than the caller asked for.
	ErrUnexpectedType = errors.New("unexpected behaviour type")
)

// UnregisteredTagError reports a record whose tag has no factory.
type UnregisteredTagError struct {
	Tag string
}

func (e *UnregisteredTagError) Error() string {
	return fmt.Sprintf("persist: tag %q not registered", e.Tag)
}

func (e *UnregisteredTagError) Unwrap() error { return ErrNotRegistered }

// MalformedRecordError reports a record that is missing a field or holds a
// value of the wrong kind.
type MalformedRecordError struct {
	Tag    string
	Field  string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("persist: malformed %q record: %s", e.Tag, e.Reason)
	}
	return fmt.Sprintf("persist: malformed %q record: field %q %s", e.Tag, e.Field, e.Reason)
}

func (e *MalformedRecordError) Unwrap() error { return ErrMalformedRecord }
