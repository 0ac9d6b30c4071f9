// Copyright (c) 2026 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package lifecycle runs start and stop functions of long lived objects at
// most once, in a thread safe manner.
package lifecycle

import (
	"sync"

	"go.uber.org/atomic"
)

// State is the progress of an object through its lifecycle.
type State int32

const (
	// Idle objects have not been started or stopped.
	Idle State = iota
	// Starting objects are running their start function.
	Starting
	// Running objects started successfully.
	Running
	// Stopping objects are running their stop function.
	Stopping
	// Stopped objects were stopped, or stopped before they started.
	Stopped
	// Errored objects failed to start or stop.
	Errored
)

var _stateToName = map[State]string{
	Idle:     "idle",
	Starting: "starting",
	Running:  "running",
	Stopping: "stopping",
	Stopped:  "stopped",
	Errored:  "errored",
}

func (s State) String() string {
	if name, ok := _stateToName[s]; ok {
		return name
	}
	return "unknown"
}

// Once advances monotonically from Idle to Stopped or Errored.
//
//  1. Start blocks until the state is at least Running.
//  2. Stop blocks until the state is at least Stopped.
//  3. Stop pre-empts Start if it happens first.
//  4. The start and stop functions are each called at most once.
type Once struct {
	startCh chan struct{}
	stopCh  chan struct{}

	state atomic.Int32

	// mu guards err, which is set by whichever goroutine is starting or
	// stopping.
	mu  sync.Mutex
	err error
}

// NewOnce returns a lifecycle controller in the Idle state.
func NewOnce() *Once {
	return &Once{
		startCh: make(chan struct{}),
		stopCh:  make(chan struct{}),
	}
}

// Start runs f once. Later calls return the error of the first.
func (o *Once) Start(f func() error) error {
	if o.state.CAS(int32(Idle), int32(Starting)) {
		var err error
		if f != nil {
			err = f()
		}

		if err != nil {
			o.setError(err)
			o.state.Store(int32(Errored))
			close(o.stopCh)
		} else {
			o.state.Store(int32(Running))
		}
		close(o.startCh)
		return err
	}

	<-o.startCh
	return o.loadError()
}

// Stop runs f once if the object is running. Later calls return the error
// of the first.
func (o *Once) Stop(f func() error) error {
	if o.state.CAS(int32(Idle), int32(Stopped)) {
		close(o.startCh)
		close(o.stopCh)
		return nil
	}

	<-o.startCh

	if o.state.CAS(int32(Running), int32(Stopping)) {
		var err error
		if f != nil {
			err = f()
		}

		if err != nil {
			o.setError(err)
			o.state.Store(int32(Errored))
		} else {
			o.state.Store(int32(Stopped))
		}
		close(o.stopCh)
		return err
	}

	<-o.stopCh
	return o.loadError()
}

// Stopped returns a channel that closes once the object is stopped or
// errored.
func (o *Once) Stopped() <-chan struct{} {
	return o.stopCh
}

// State returns the current state. The object has at least reached the
// returned state.
func (o *Once) State() State {
	return State(o.state.Load())
}

// IsRunning reports whether the object is Running.
func (o *Once) IsRunning() bool {
	return o.State() == Running
}

func (o *Once) setError(err error) {
	o.mu.Lock()
	o.err = err
	o.mu.Unlock()
}

func (o *Once) loadError() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.err
}
