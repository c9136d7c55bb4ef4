package result

import "errors"

// ErrUnknown is reported by Get for a failure that carries no cause.
var ErrUnknown = errors.New("unknown failure")
