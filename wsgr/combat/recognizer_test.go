// Copyright (C) 2018 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package combat_test

import (
	"context"
	"testing"
	"time"

	"github.com/OpenWSGR/autowsgr/core/assert"
	"github.com/OpenWSGR/autowsgr/core/event/task"
	"github.com/OpenWSGR/autowsgr/core/fault"
	"github.com/OpenWSGR/autowsgr/core/log"
	"github.com/OpenWSGR/autowsgr/wsgr/combat"
	"github.com/OpenWSGR/autowsgr/wsgr/device/devstub"
)

func candidates(ps ...combat.Phase) []combat.Candidate {
	cs := make([]combat.Candidate, len(ps))
	for i, p := range ps {
		cs[i] = combat.Candidate{Phase: p}
	}
	return cs
}

func TestWaitForPhaseOrder(t *testing.T) {
	ctx := log.Testing(t)

	// A screen that matches several candidates resolves to the first one.
	both := newScreen()
	markPhase(both, combat.Formation)
	markPhase(both, combat.Proceed)
	d := devstub.New(both)

	r := testRecognizer(time.Second)
	phase, s, err := r.WaitForPhase(ctx, d, candidates(combat.Formation, combat.Proceed), nil)
	assert.For(ctx, "err").ThatError(err).Succeeded()
	assert.For(ctx, "phase").That(phase).Equals(combat.Formation)
	assert.For(ctx, "screen").That(s).Equals(both)
	assert.For(ctx, "screenshots").ThatInteger(d.Screenshots).Equals(1)
}

func TestWaitForPhaseEventually(t *testing.T) {
	ctx := log.Testing(t)

	// The first two sweeps see screens that match nothing.
	d := devstub.New(newScreen(), newScreen(), phaseScreen(combat.Result))

	r := testRecognizer(time.Second)
	phase, _, err := r.WaitForPhase(ctx, d, candidates(combat.Result), nil)
	assert.For(ctx, "err").ThatError(err).Succeeded()
	assert.For(ctx, "phase").That(phase).Equals(combat.Result)
	assert.For(ctx, "screenshots").ThatInteger(d.Screenshots).Equals(3)
}

func TestWaitForPhaseTimeout(t *testing.T) {
	ctx := log.Testing(t)
	d := devstub.New() // Always a blank screen.

	r := testRecognizer(30 * time.Millisecond)
	_, _, err := r.WaitForPhase(ctx, d, candidates(combat.Proceed, combat.MapPage), nil)
	assert.For(ctx, "err").ThatError(err).Failed()

	timeout, ok := err.(*combat.RecognitionTimeout)
	assert.For(ctx, "type").That(ok).Equals(true)
	assert.For(ctx, "candidates").ThatSlice(timeout.Candidates).Equals([]combat.Phase{combat.Proceed, combat.MapPage})
	assert.For(ctx, "elapsed").That(timeout.Elapsed >= 30*time.Millisecond).Equals(true)
}

func TestWaitForPhaseCandidateTimeout(t *testing.T) {
	ctx := log.Testing(t)
	d := devstub.New()

	// The candidate's override replaces the spec's long default, so the
	// wait gives up quickly.
	r := testRecognizer(time.Minute)
	start := time.Now()
	_, _, err := r.WaitForPhase(ctx, d, []combat.Candidate{
		{Phase: combat.Result, Timeout: 25 * time.Millisecond},
	}, nil)
	assert.For(ctx, "err").ThatError(err).Failed()
	assert.For(ctx, "gave up early").That(time.Since(start) < 10*time.Second).Equals(true)
}

func TestWaitForPhasePoll(t *testing.T) {
	ctx := log.Testing(t)

	// The poll action runs before every screenshot.
	d := devstub.New(newScreen(), phaseScreen(combat.Proceed))
	polls := 0
	poll := func(context.Context) error {
		polls++
		return nil
	}

	r := testRecognizer(time.Second)
	phase, _, err := r.WaitForPhase(ctx, d, candidates(combat.Proceed), poll)
	assert.For(ctx, "err").ThatError(err).Succeeded()
	assert.For(ctx, "phase").That(phase).Equals(combat.Proceed)
	assert.For(ctx, "polls").ThatInteger(polls).Equals(2)
	assert.For(ctx, "screenshots").ThatInteger(d.Screenshots).Equals(2)
}

func TestWaitForPhasePollError(t *testing.T) {
	ctx := log.Testing(t)
	const boom = fault.Const("boom")

	d := devstub.New(phaseScreen(combat.Proceed))
	poll := func(context.Context) error { return boom }

	r := testRecognizer(time.Second)
	_, _, err := r.WaitForPhase(ctx, d, candidates(combat.Proceed), poll)
	assert.For(ctx, "err").ThatError(err).Equals(boom)
	assert.For(ctx, "screenshots").ThatInteger(d.Screenshots).Equals(0)
}

func TestWaitForPhaseSettleDelay(t *testing.T) {
	ctx := log.Testing(t)
	d := devstub.New(phaseScreen(combat.Result))

	table := testSpecs(time.Second)
	spec := table[combat.Result]
	spec.PostMatchDelay = 50 * time.Millisecond
	table[combat.Result] = spec

	r := &combat.Recognizer{Specs: table, Interval: time.Millisecond}
	start := time.Now()
	_, _, err := r.WaitForPhase(ctx, d, candidates(combat.Result), nil)
	assert.For(ctx, "err").ThatError(err).Succeeded()
	assert.For(ctx, "settle").That(time.Since(start) >= 50*time.Millisecond).Equals(true)
}

func TestWaitForPhaseNoCandidates(t *testing.T) {
	ctx := log.Testing(t)
	d := devstub.New()

	r := testRecognizer(time.Second)
	_, _, err := r.WaitForPhase(ctx, d, nil, nil)
	assert.For(ctx, "err").ThatError(err).Failed()
	assert.For(ctx, "screenshots").ThatInteger(d.Screenshots).Equals(0)
}

func TestWaitForPhaseUnknownPhase(t *testing.T) {
	ctx := log.Testing(t)
	d := devstub.New()

	// Start has no signature; asking for it is a programming error, not a
	// polling loop.
	r := testRecognizer(time.Second)
	_, _, err := r.WaitForPhase(ctx, d, candidates(combat.Start), nil)
	assert.For(ctx, "err").ThatError(err).Failed()
	assert.For(ctx, "screenshots").ThatInteger(d.Screenshots).Equals(0)
}

func TestWaitForPhaseScreenshotError(t *testing.T) {
	ctx := log.Testing(t)
	const detached = fault.Const("usb detached")

	d := devstub.New()
	d.ScreenshotErr = detached

	r := testRecognizer(time.Second)
	_, _, err := r.WaitForPhase(ctx, d, candidates(combat.Proceed), nil)
	assert.For(ctx, "err").ThatError(err).Equals(detached)
}

func TestWaitForPhaseStop(t *testing.T) {
	ctx := log.Testing(t)
	ctx, cancel := task.WithCancel(ctx)
	cancel()

	d := devstub.New(newScreen())
	r := testRecognizer(200 * time.Millisecond)
	_, _, err := r.WaitForPhase(ctx, d, candidates(combat.Proceed), nil)
	assert.For(ctx, "err").ThatError(err).Equals(context.Canceled)
}

func TestIdentifyCurrent(t *testing.T) {
	ctx := log.Testing(t)
	r := testRecognizer(time.Second)

	phase, ok := r.IdentifyCurrent(phaseScreen(combat.MapPage), candidates(combat.Proceed, combat.MapPage))
	assert.For(ctx, "found").That(ok).Equals(true)
	assert.For(ctx, "phase").That(phase).Equals(combat.MapPage)

	_, ok = r.IdentifyCurrent(newScreen(), candidates(combat.Proceed, combat.MapPage))
	assert.For(ctx, "blank").That(ok).Equals(false)

	_, ok = r.IdentifyCurrent(phaseScreen(combat.MapPage), candidates(combat.Start))
	assert.For(ctx, "unknown phase").That(ok).Equals(false)
}
