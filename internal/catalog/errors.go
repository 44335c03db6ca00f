package catalog

import "errors"

// ErrNotFound is returned when a lookup by ID matches nothing
var ErrNotFound = errors.New("not found")
