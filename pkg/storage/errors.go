package storage

import "errors"

// ErrInvalidName is returned when a file name would escape the storage root.
var ErrInvalidName = errors.New("invalid file name")
