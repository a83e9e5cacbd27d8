// Package idmap implements the bijection between original (external) node
// ids and the dense internal ids in [0, nodeCount) that the rest of the
// storage engine addresses nodes by, plus the concurrent build pipeline
// that constructs one from many producer batches.
package idmap

import "errors"

// NotFound is the sentinel returned for an original id with no internal
// mapping.
const NotFound int64 = -1

// ErrInvalidBatch is returned when Insert is called with a slice whose
// length doesn't match the batch reserved by Allocate.
var ErrInvalidBatch = errors.New("idmap: insert length does not match allocated batch length")
