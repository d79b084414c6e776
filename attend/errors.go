package attend

import "errors"

// ErrNotFound is returned by repositories when no record matches.
var ErrNotFound = errors.New("record not found")
