package proc

import "errors"

var (
	// ErrNotFound means the target process exited before we could signal it.
	ErrNotFound = errors.New("process not found")

	// ErrPermissionDenied means the caller lacks the rights to signal the
	// target. Re-running with elevated rights usually fixes it.
	ErrPermissionDenied = errors.New("permission denied")
)
