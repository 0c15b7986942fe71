package contract

import "errors"

// ErrVersionConflict is returned by versioned updates when the row was
// modified since it was read.
var ErrVersionConflict = errors.New("version conflict: record was modified concurrently")
