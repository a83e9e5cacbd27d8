// Package nodeprops implements the lazy, type-dispatching node-property
// builder and the no-op double codec that anchors the property-codec
// interface.
package nodeprops

import "errors"

// ErrTypeMismatch is returned when a write disagrees with the value type
// inferred from an earlier write.
var ErrTypeMismatch = errors.New("nodeprops: value type mismatch")

// ErrMissingType is returned by Build when neither a value nor a default
// was ever supplied, so the property's value type cannot be inferred.
var ErrMissingType = errors.New("nodeprops: cannot infer type: no value or default written")
