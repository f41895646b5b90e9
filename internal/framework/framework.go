// Package framework is the boundary to the external runtime the daemon is
// hosted by. The daemon only needs two things from it: a one-time Init and a
// liveness predicate it polls between sleeps.
package framework

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// Runtime is the external framework collaborator.
type Runtime interface {
	// Init prepares the framework. It is called once per process.
	Init(args []string) error
	// OK reports whether the process should keep running.
	OK() bool
}

var signalNotify = signal.Notify

// SignalRuntime is a Runtime that stays operational until the process
// receives SIGINT or SIGTERM.
type SignalRuntime struct {
	once   sync.Once
	ctx    context.Context
	cancel context.CancelFunc
}

// NewSignalRuntime returns a runtime whose lifetime is also bounded by parent.
func NewSignalRuntime(parent context.Context) *SignalRuntime {
	ctx, cancel := context.WithCancel(parent)
	return &SignalRuntime{ctx: ctx, cancel: cancel}
}

// Init installs the signal handlers. The arguments are not interpreted.
// Repeated calls are no-ops.
func (r *SignalRuntime) Init([]string) error {
	r.once.Do(func() {
		sigs := make(chan os.Signal, 1)
		signalNotify(sigs, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case <-sigs:
				r.cancel()
			case <-r.ctx.Done():
			}
			signal.Stop(sigs)
		}()
	})
	return nil
}

// OK implements Runtime.
func (r *SignalRuntime) OK() bool {
	return r.ctx.Err() == nil
}

// Context is cancelled once the runtime stops being operational.
func (r *SignalRuntime) Context() context.Context {
	return r.ctx
}

// Shutdown marks the runtime as no longer operational.
func (r *SignalRuntime) Shutdown() {
	r.cancel()
}
