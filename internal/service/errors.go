package service

import "errors"

var (
	// ErrDuplicateName is returned when a sibling with the same name exists.
	ErrDuplicateName = errors.New("name already exists in this folder")

	// ErrQuotaExceeded is returned when an upload would overrun the quota.
	ErrQuotaExceeded = errors.New("file will exceed storage capacity")

	// ErrNotFound covers absent objects, objects the requesting user
	// cannot see, and operations they may not perform; all three are
	// deliberately indistinguishable so existence is never leaked.
	ErrNotFound = errors.New("not found")

	// ErrRange marks an internal invariant violation such as a storage
	// percentage outside [0,100].
	ErrRange = errors.New("percentage out of range")

	// ErrStorageIO wraps blob backend failures.
	ErrStorageIO = errors.New("object storage failure")
)
