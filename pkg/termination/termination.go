// Package termination carries the injected cancellation collaborator:
// long-running operations receive a Flag and check it at page boundaries
// and between sources, abandoning work when it reports not-running.
// Timeouts are implemented by external collaborators setting the flag;
// the core itself never starts timers.
package termination

import (
	"errors"
	"sync/atomic"
)

// ErrTerminated is returned by an operation that observed its flag
// cleared and abandoned work.
var ErrTerminated = errors.New("termination: operation terminated")

// Flag is polled by long-running operations. Running returns false once
// the operation should abandon work.
type Flag interface {
	Running() bool
}

// FlagFunc adapts a plain function to Flag.
type FlagFunc func() bool

func (f FlagFunc) Running() bool { return f() }

// RunningTrue never terminates. It is the flag NULL_CONTEXT supplies and
// the default wherever a caller passes nil.
var RunningTrue Flag = FlagFunc(func() bool { return true })

// StopFlag is a settable Flag shared between the collaborator that
// decides to stop (signal handler, timeout timer, transaction rollback)
// and the operations polling it.
type StopFlag struct {
	stopped atomic.Bool
}

// NewStopFlag returns a running StopFlag.
func NewStopFlag() *StopFlag { return &StopFlag{} }

func (f *StopFlag) Running() bool { return !f.stopped.Load() }

// Stop flips the flag; every subsequent Running call returns false.
func (f *StopFlag) Stop() { f.stopped.Store(true) }

// OrNil returns flag, or RunningTrue when flag is nil, so operations can
// poll unconditionally.
func OrNil(flag Flag) Flag {
	if flag == nil {
		return RunningTrue
	}
	return flag
}
