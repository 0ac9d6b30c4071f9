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

package tchdispatch

import (
	"math"
	"time"

	"go.uber.org/tchdispatch/api/transport"
)

// AttemptSettings bound the attempts made for a request. Zero fields are
// unset and fall through to the next level of defaults.
type AttemptSettings struct {
	// TTL is the overall deadline across all attempts.
	TTL time.Duration

	// TimeoutPerAttempt bounds each single attempt.
	TimeoutPerAttempt time.Duration

	// MaxAttempts bounds the number of peers tried, first attempt included.
	MaxAttempts uint

	// ScoreThreshold is the minimum score of an eligible peer.
	ScoreThreshold float64
}

// merge fills the unset fields of s from fallback.
func (s AttemptSettings) merge(fallback AttemptSettings) AttemptSettings {
	if s.TTL == 0 {
		s.TTL = fallback.TTL
	}
	if s.TimeoutPerAttempt == 0 {
		s.TimeoutPerAttempt = fallback.TimeoutPerAttempt
	}
	if s.MaxAttempts == 0 {
		s.MaxAttempts = fallback.MaxAttempts
	}
	if s.ScoreThreshold == 0 {
		s.ScoreThreshold = fallback.ScoreThreshold
	}
	return s
}

var _libraryDefaults = AttemptSettings{
	TTL:               transport.DefaultTTL,
	TimeoutPerAttempt: transport.DefaultTimeoutPerAttempt,
	MaxAttempts:       transport.DefaultMaxAttempts,
	ScoreThreshold:    math.Inf(-1),
}

type serviceProcedure struct {
	Service   string
	Procedure string
}

// ProcedureDefaults keeps a registry of AttemptSettings with ordered
// precedence:
//
//  1. Settings for a specific Service and Procedure match.
//  2. Settings for a specific Service match.
//  3. Default settings.
//
// Fields set on the request itself always win, and fields left unset at
// every level take the library defaults.
//
// ProcedureDefaults is not safe for concurrent registration; register
// everything before handing it to a Dispatcher.
type ProcedureDefaults struct {
	serviceProcedureToSettings map[serviceProcedure]AttemptSettings
	defaultSettings            AttemptSettings
}

// NewProcedureDefaults creates an empty ProcedureDefaults.
func NewProcedureDefaults() *ProcedureDefaults {
	return &ProcedureDefaults{
		serviceProcedureToSettings: make(map[serviceProcedure]AttemptSettings),
	}
}

// RegisterServiceProcedure specifies the settings for requests that match
// the given service and procedure name.
func (pd *ProcedureDefaults) RegisterServiceProcedure(service, procedure string, s AttemptSettings) {
	pd.serviceProcedureToSettings[serviceProcedure{Service: service, Procedure: procedure}] = s
}

// RegisterService specifies the settings for requests that match the given
// service name.
func (pd *ProcedureDefaults) RegisterService(service string, s AttemptSettings) {
	pd.serviceProcedureToSettings[serviceProcedure{Service: service}] = s
}

// SetDefault specifies the settings used when neither the service nor the
// procedure has a match.
func (pd *ProcedureDefaults) SetDefault(s AttemptSettings) {
	pd.defaultSettings = s
}

// Settings returns the effective settings for req.
func (pd *ProcedureDefaults) Settings(req *transport.Request) AttemptSettings {
	s := AttemptSettings{
		TTL:               req.TTL,
		TimeoutPerAttempt: req.TimeoutPerAttempt,
		MaxAttempts:       req.MaxAttempts,
		ScoreThreshold:    req.ScoreThreshold,
	}
	if pd == nil {
		return s.merge(_libraryDefaults)
	}

	if sp, ok := pd.serviceProcedureToSettings[serviceProcedure{Service: req.Service, Procedure: req.Procedure}]; ok {
		s = s.merge(sp)
	}
	if sv, ok := pd.serviceProcedureToSettings[serviceProcedure{Service: req.Service}]; ok {
		s = s.merge(sv)
	}
	return s.merge(pd.defaultSettings).merge(_libraryDefaults)
}
