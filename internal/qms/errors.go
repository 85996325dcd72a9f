package qms

import (
	"errors"
	"fmt"
)

// ErrAuthDenied is returned when the admin password does not match the
// configured shared secret.
var ErrAuthDenied = errors.New("access denied: incorrect admin password")

// StoreError wraps a spreadsheet failure, distinguishing the read taken for
// ID generation from the append of the finished row.
type StoreError struct {
	Op    string // "read" or "append"
	Table string
	Err   error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s failed for table %s: %v", e.Op, e.Table, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// UploadError wraps a file-store failure. When it surfaces from Submit, no
// row was appended.
type UploadError struct {
	Filename string
	Err      error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload of %s failed: %v", e.Filename, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }
