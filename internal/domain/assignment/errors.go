package assignment

import "errors"

// ErrStaleSnapshot is returned by repositories when a persist call carries a
// roster version the store has already moved past.
var ErrStaleSnapshot = errors.New("stale roster snapshot")
