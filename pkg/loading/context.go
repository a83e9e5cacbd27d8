// Package loading holds the injected collaborators a graph projection
// runs under: the GraphLoaderContext bundle (transaction handle, log
// sink, executor, termination flag, registry factories) and the
// registry of graph-store factory suppliers consulted when a projection
// config arrives.
package loading

import (
	"github.com/graphcore/corestore/pkg/logging"
	"github.com/graphcore/corestore/pkg/termination"
)

// Transaction is the opaque source-database transaction handle a loader
// context carries. The core never calls into it; it is passed through to
// the factory that talks to the source of truth.
type Transaction interface{}

// Executor schedules import work. Implementations may run tasks on a
// pool; the null implementation runs them inline.
type Executor interface {
	Submit(task func())
}

// TaskRegistry tracks a running projection job for progress surfaces.
type TaskRegistry interface {
	RegisterTask(description string)
	UnregisterTask()
}

// TaskRegistryFactory mints one TaskRegistry per projection job.
type TaskRegistryFactory interface {
	NewInstance(jobId string) TaskRegistry
}

// UserLogRegistry collects per-user warnings emitted during a
// projection.
type UserLogRegistry interface {
	AddWarningToLog(message string)
}

// UserLogRegistryFactory mints one UserLogRegistry per requesting user.
type UserLogRegistryFactory interface {
	NewInstance(username string) UserLogRegistry
}

// GraphLoaderContext bundles everything a graph-store factory needs from
// its environment.
type GraphLoaderContext interface {
	Transaction() Transaction
	DatabaseId() string
	Log() logging.Log
	Executor() Executor
	TerminationFlag() termination.Flag
	TaskRegistryFactory() TaskRegistryFactory
	UserLogRegistryFactory() UserLogRegistryFactory
}

type nullContext struct{}

type inlineExecutor struct{}

func (inlineExecutor) Submit(task func()) { task() }

type nopTaskRegistry struct{}

func (nopTaskRegistry) RegisterTask(string) {}
func (nopTaskRegistry) UnregisterTask()     {}

type nopTaskRegistryFactory struct{}

func (nopTaskRegistryFactory) NewInstance(string) TaskRegistry { return nopTaskRegistry{} }

type nopUserLogRegistry struct{}

func (nopUserLogRegistry) AddWarningToLog(string) {}

type nopUserLogRegistryFactory struct{}

func (nopUserLogRegistryFactory) NewInstance(string) UserLogRegistry { return nopUserLogRegistry{} }

func (nullContext) Transaction() Transaction         { return nil }
func (nullContext) DatabaseId() string               { return "" }
func (nullContext) Log() logging.Log                 { return logging.NewNopLog() }
func (nullContext) Executor() Executor               { return inlineExecutor{} }
func (nullContext) TerminationFlag() termination.Flag { return termination.RunningTrue }
func (nullContext) TaskRegistryFactory() TaskRegistryFactory {
	return nopTaskRegistryFactory{}
}
func (nullContext) UserLogRegistryFactory() UserLogRegistryFactory {
	return nopUserLogRegistryFactory{}
}

// NullContext returns the no-op GraphLoaderContext: discarding log,
// inline executor, never-terminating flag, no-op registries.
func NullContext() GraphLoaderContext { return nullContext{} }
