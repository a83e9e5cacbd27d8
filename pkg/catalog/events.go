package catalog

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/graphcore/corestore/pkg/logging"
)

// GraphStoreAddedEvent fires after a successful Set.
type GraphStoreAddedEvent struct {
	CorrelationID string
	User          string
	DatabaseName  string
	GraphName     string
	MemoryBytes   int64
}

// GraphStoreRemovedEvent fires after a successful Remove.
type GraphStoreRemovedEvent struct {
	CorrelationID string
	User          string
	DatabaseName  string
	GraphName     string
	MemoryBytes   int64
}

// Listener observes catalog mutations. Every method is called
// synchronously on the caller's goroutine, inside the triggering
// operation — a listener MUST NOT try to acquire the same catalog lock,
// or it will deadlock.
type Listener interface {
	OnGraphStoreAdded(event GraphStoreAddedEvent)
	OnGraphStoreRemoved(event GraphStoreRemovedEvent)
}

// ListenerFuncs adapts two plain functions to the Listener interface,
// for callers that only care about one event kind.
type ListenerFuncs struct {
	Added   func(GraphStoreAddedEvent)
	Removed func(GraphStoreRemovedEvent)
}

func (f ListenerFuncs) OnGraphStoreAdded(event GraphStoreAddedEvent) {
	if f.Added != nil {
		f.Added(event)
	}
}

func (f ListenerFuncs) OnGraphStoreRemoved(event GraphStoreRemovedEvent) {
	if f.Removed != nil {
		f.Removed(event)
	}
}

func newCorrelationID() string { return uuid.NewString() }

// notifyAdded fires OnGraphStoreAdded on every listener. A listener that
// panics is caught, logged, and never allowed to stop the remaining
// listeners from running or the triggering operation from returning
// successfully.
func notifyAdded(listeners []Listener, log logging.Log, event GraphStoreAddedEvent) {
	for _, l := range listeners {
		safeNotify(log, "graph_store_added", func() { l.OnGraphStoreAdded(event) })
	}
}

func notifyRemoved(listeners []Listener, log logging.Log, event GraphStoreRemovedEvent) {
	for _, l := range listeners {
		safeNotify(log, "graph_store_removed", func() { l.OnGraphStoreRemoved(event) })
	}
}

func safeNotify(log logging.Log, eventName string, call func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn("catalog listener failed",
				logging.String("event", eventName),
				logging.Any("panic", fmt.Sprintf("%v", r)),
			)
		}
	}()
	call()
}
