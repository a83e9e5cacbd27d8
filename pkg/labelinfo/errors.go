// Package labelinfo implements the three label-membership representations
// (AllNodes / SingleLabel / MultiLabel) selected at build time, plus the
// atomic, concurrent-writer builder that produces them.
package labelinfo

import "errors"

// AllNodes is the pseudo-label every real label information variant treats
// as a superset of whatever it stores.
const AllNodes NodeLabel = "__ALL__"

// ErrUnsupportedOperation covers calls the underlying variant cannot serve.
// IterateNodes with a label filter on a MultiLabel with no bitsets stored
// reports ErrUnknownLabel, not this error.
var ErrUnsupportedOperation = errors.New("labelinfo: unsupported operation")

// ErrUnknownLabel is returned when a caller filters by a label the
// representation was never told about (SingleLabel rejects any label
// outside {its one label, AllNodes}).
var ErrUnknownLabel = errors.New("labelinfo: unknown label")
