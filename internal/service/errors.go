package service

import "errors"

var (
	// Vault
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrTooLarge        = errors.New("file too large")
	ErrContentRequired = errors.New("file content is required")

	// Appointments
	ErrMissingFields   = errors.New("service, date and time are required")
	ErrInvalidSchedule = errors.New("invalid appointment date or time")

	// Tracker
	ErrEmptyInput = errors.New("application id is required")

	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrUploadInProgress = errors.New("upload already in progress")

	// ErrPersistenceFailed aborts a mutation: the in-memory collection is
	// left as it was before the call.
	ErrPersistenceFailed = errors.New("persistence failed")

	// ErrPersistenceCorrupt is only logged. Restore recovers to an empty collection.
	ErrPersistenceCorrupt = errors.New("persisted data is corrupt")
)
