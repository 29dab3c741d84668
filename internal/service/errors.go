package service

import "errors"

var (
	// ErrNotFound marks a referenced product id that no longer exists.
	ErrNotFound = errors.New("not found")
	// ErrPermissionDenied marks a non-administrator touching an
	// admin-only operation.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrNoActiveSession marks input arriving for a session that has no
	// open dialog.
	ErrNoActiveSession = errors.New("no active session")
)
