// Package graphstore composes an id map, a schema, node properties and one
// or more CSR topologies into HugeGraph, the read-only facade algorithms
// traverse, and CSRGraphStore, the assembled container deposited into the
// catalog.
package graphstore

import "errors"

// ErrUnsupportedRelationshipType is returned when a caller requests a
// relationship-type filtered view over types outside the schema's
// supported set.
var ErrUnsupportedRelationshipType = errors.New("graphstore: unsupported relationship type")

// ErrUnsupportedOperation covers capability gaps: inverse-degree on a
// graph with no inverse index, or a per-edge property read against a
// composed multi-type view (property access requires filtering to a
// single relationship type first).
var ErrUnsupportedOperation = errors.New("graphstore: unsupported operation")
