package graphstore

import "github.com/graphcore/corestore/pkg/csr"

// Topology pairs one relationship type's adjacency list with its (at most
// one) per-edge property channel.
type Topology struct {
	RelType         RelationshipType
	Adjacency       csr.AdjacencyList
	HasProperty     bool
	PropertyKey     string
	PropertyChannel int
	PropertyDefault float64
}

// adjacencyCursor is the minimal surface both csr.Cursor and
// csr.CompositeAdjacencyCursor satisfy, letting HugeGraph drive a single-
// or multi-type traversal through the same code path.
type adjacencyCursor interface {
	HasNext() bool
	Next() int64
	Peek() int64
	Advance(target int64) int64
}
