package availability

import "errors"

// ErrInvalidArgument is returned for unknown modes and missing snapshots.
var ErrInvalidArgument = errors.New("invalid argument")
