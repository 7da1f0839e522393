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

package combat

import (
	"context"
	"fmt"
	"time"

	"github.com/OpenWSGR/autowsgr/core/event/task"
	"github.com/OpenWSGR/autowsgr/core/log"
	"github.com/OpenWSGR/autowsgr/wsgr/device"
	"github.com/OpenWSGR/autowsgr/wsgr/plan"
	"github.com/OpenWSGR/autowsgr/wsgr/vision"
	"github.com/pkg/errors"
)

// pollInterval is the default time between recognition sweeps.
const pollInterval = 300 * time.Millisecond

// PollAction runs once per recognition sweep, before the screenshot. The
// engine uses it to keep animations moving and popups dismissed while a
// phase is awaited.
type PollAction func(ctx context.Context) error

// RecognitionTimeout reports that none of the candidate phases appeared
// before the deadline.
type RecognitionTimeout struct {
	Candidates []Phase
	Elapsed    time.Duration
}

func (e *RecognitionTimeout) Error() string {
	return fmt.Sprintf("no combat phase of %v recognized after %v", e.Candidates, e.Elapsed)
}

// Recognizer matches screens against the phase signature table.
type Recognizer struct {
	Specs SpecTable
	// Interval overrides the time between sweeps. Zero means the default.
	Interval time.Duration
}

// NewRecognizer returns a recognizer over the default signature table of
// the given fight mode.
func NewRecognizer(mode plan.Mode) *Recognizer {
	return &Recognizer{Specs: DefaultSpecs(mode)}
}

func (r *Recognizer) interval() time.Duration {
	if r.Interval > 0 {
		return r.Interval
	}
	return pollInterval
}

// candidateSpecs resolves each candidate against the signature table,
// applying timeout overrides.
func (r *Recognizer) candidateSpecs(candidates []Candidate) ([]Spec, error) {
	specs := make([]Spec, len(candidates))
	for i, c := range candidates {
		spec, ok := r.Specs[c.Phase]
		if !ok || spec.Check == nil {
			return nil, errors.Errorf("no signature for phase %v", c.Phase)
		}
		if c.Timeout > 0 {
			spec.Timeout = c.Timeout
		}
		specs[i] = spec
	}
	return specs, nil
}

func phasesOf(candidates []Candidate) []Phase {
	ps := make([]Phase, len(candidates))
	for i, c := range candidates {
		ps[i] = c.Phase
	}
	return ps
}

// WaitForPhase polls the device until one of the candidate phases shows,
// returning the phase and the screenshot that matched it. Candidates are
// tried in order, at the lowest confidence any of them asks for, until the
// largest candidate timeout expires. After a match the recognizer sleeps
// the phase's post-match delay so the decision reads a settled screen.
func (r *Recognizer) WaitForPhase(ctx context.Context, d device.Device, candidates []Candidate, poll PollAction) (Phase, *vision.Screen, error) {
	if len(candidates) == 0 {
		return 0, nil, errors.New("no candidate phases to wait for")
	}
	specs, err := r.candidateSpecs(candidates)
	if err != nil {
		return 0, nil, err
	}
	wait, confidence := specs[0].Timeout, specs[0].Confidence
	for _, spec := range specs[1:] {
		if spec.Timeout > wait {
			wait = spec.Timeout
		}
		if spec.Confidence < confidence {
			confidence = spec.Confidence
		}
	}
	log.D(ctx, "Waiting up to %v for %v", wait, phasesOf(candidates))
	start := time.Now()
	deadline := start.Add(wait)
	for {
		if poll != nil {
			if err := poll(ctx); err != nil {
				return 0, nil, err
			}
		}
		s, err := d.Screenshot(ctx)
		if err != nil {
			return 0, nil, err
		}
		for i, c := range candidates {
			if !specs[i].Check(s, confidence) {
				continue
			}
			log.D(ctx, "Recognized %v after %v", c.Phase, time.Since(start))
			if err := sleep(ctx, specs[i].PostMatchDelay); err != nil {
				return 0, nil, err
			}
			return c.Phase, s, nil
		}
		if time.Now().After(deadline) {
			return 0, nil, &RecognitionTimeout{Candidates: phasesOf(candidates), Elapsed: time.Since(start)}
		}
		if err := sleep(ctx, r.interval()); err != nil {
			return 0, nil, err
		}
	}
}

// IdentifyCurrent checks a single screen against the candidates, without
// polling. Timeout recovery uses it to probe for the terminal page.
func (r *Recognizer) IdentifyCurrent(s *vision.Screen, candidates []Candidate) (Phase, bool) {
	specs, err := r.candidateSpecs(candidates)
	if err != nil {
		return 0, false
	}
	confidence := specs[0].Confidence
	for _, spec := range specs[1:] {
		if spec.Confidence < confidence {
			confidence = spec.Confidence
		}
	}
	for i, c := range candidates {
		if specs[i].Check(s, confidence) {
			return c.Phase, true
		}
	}
	return 0, false
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-task.ShouldStop(ctx):
		return task.StopReason(ctx)
	case <-time.After(d):
		return nil
	}
}
