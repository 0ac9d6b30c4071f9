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

package lifecycle

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/atomic"
)

func TestStartStop(t *testing.T) {
	var starts, stops atomic.Int32
	o := NewOnce()
	assert.Equal(t, Idle, o.State())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, o.Start(func() error {
				starts.Inc()
				return nil
			}))
		}()
	}
	wg.Wait()
	assert.True(t, o.IsRunning())
	assert.Equal(t, int32(1), starts.Load())

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, o.Stop(func() error {
				stops.Inc()
				return nil
			}))
		}()
	}
	wg.Wait()
	assert.Equal(t, Stopped, o.State())
	assert.Equal(t, int32(1), stops.Load())

	select {
	case <-o.Stopped():
	default:
		t.Fatal("stopped channel not closed")
	}
}

func TestStopBeforeStart(t *testing.T) {
	o := NewOnce()
	assert.NoError(t, o.Stop(func() error {
		t.Fatal("stop must not run for an idle object")
		return nil
	}))
	assert.NoError(t, o.Start(func() error {
		t.Fatal("start must not run after stop")
		return nil
	}))
	assert.Equal(t, Stopped, o.State())
}

func TestStartError(t *testing.T) {
	o := NewOnce()
	err := errors.New("great sadness")
	assert.Equal(t, err, o.Start(func() error { return err }))
	assert.Equal(t, Errored, o.State())
	assert.Equal(t, err, o.Start(nil))
	assert.Equal(t, err, o.Stop(nil))
}

func TestStopError(t *testing.T) {
	o := NewOnce()
	assert.NoError(t, o.Start(nil))
	err := errors.New("great sadness")
	assert.Equal(t, err, o.Stop(func() error { return err }))
	assert.Equal(t, Errored, o.State())
	assert.Equal(t, err, o.Stop(nil))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "running", Running.String())
	assert.Equal(t, "unknown", State(99).String())
}
