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

package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/OpenWSGR/autowsgr/core/event/task"
	"github.com/OpenWSGR/autowsgr/core/math/f64"
	"github.com/OpenWSGR/autowsgr/wsgr/device"
	"github.com/OpenWSGR/autowsgr/wsgr/vision"
)

const (
	// pollInterval is the default time between screenshots while waiting
	// for a page.
	pollInterval = 300 * time.Millisecond
	// defaultTimeout is the default upper bound on a page wait.
	defaultTimeout = 10 * time.Second
	// retryBackoff is the pause before ClickAndWait retries a click whose
	// page never arrived.
	retryBackoff = 500 * time.Millisecond
)

// NavigationError reports that an expected page never appeared.
type NavigationError struct {
	// Source is the page navigation started from, if known.
	Source string
	// Target is the page that was expected.
	Target string
	// LastPage is the page identified on the final screenshot, or "" if no
	// registered page matched.
	LastPage string
}

func (e *NavigationError) Error() string {
	last := e.LastPage
	if last == "" {
		last = "an unknown page"
	}
	return fmt.Sprintf("navigation %s -> %s timed out on %s", e.Source, e.Target, last)
}

// WaitOpts tunes a page wait. The zero value gives the defaults: a 10
// second timeout, 300ms polling, no overlay handling and one retry for
// ClickAndWait.
type WaitOpts struct {
	// Timeout bounds the whole wait.
	Timeout time.Duration
	// Interval is the pause between polls.
	Interval time.Duration
	// Source and Target name the navigation for the NavigationError.
	Source, Target string
	// Overlays are dismissed in-loop when they cover the screen.
	Overlays []Overlay
	// Registry, when set, names the last identified page in the
	// NavigationError.
	Registry *Registry
	// Retries is the number of times ClickAndWait repeats the whole
	// click+wait pair. 0 means the default single retry; negative
	// disables retrying.
	Retries int
}

func (o WaitOpts) timeout() time.Duration {
	if o.Timeout <= 0 {
		return defaultTimeout
	}
	return o.Timeout
}

func (o WaitOpts) interval() time.Duration {
	if o.Interval <= 0 {
		return pollInterval
	}
	return o.Interval
}

func (o WaitOpts) retries() int {
	if o.Retries < 0 {
		return 0
	}
	if o.Retries == 0 {
		return 1
	}
	return o.Retries
}

func (o WaitOpts) lastPage(ctx context.Context, s *vision.Screen) string {
	if o.Registry == nil || s == nil {
		return ""
	}
	name, _ := o.Registry.CurrentPage(ctx, s)
	return name
}

// sleep pauses for d, honoring cancellation.
func sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-task.ShouldStop(ctx):
		return task.StopReason(ctx)
	case <-time.After(d):
		return nil
	}
}

// WaitForPage polls the device until check matches a screenshot, returning
// the matching screen. Known overlays are dismissed between polls. On
// timeout it returns a *NavigationError.
func WaitForPage(ctx context.Context, d device.Device, check Checker, o WaitOpts) (*vision.Screen, error) {
	deadline := time.Now().Add(o.timeout())
	var last *vision.Screen
	for {
		s, err := d.Screenshot(ctx)
		if err != nil {
			return nil, err
		}
		last = s
		if check(s) {
			return s, nil
		}
		if _, err := DismissOverlays(ctx, d, s, o.Overlays); err != nil {
			return nil, err
		}
		if time.Now().After(deadline) {
			return nil, &NavigationError{Source: o.Source, Target: o.Target, LastPage: o.lastPage(ctx, last)}
		}
		if err := sleep(ctx, o.interval()); err != nil {
			return nil, err
		}
	}
}

// WaitLeavePage polls the device until check no longer matches, for moves
// whose destination has no signature of its own.
func WaitLeavePage(ctx context.Context, d device.Device, check Checker, o WaitOpts) error {
	deadline := time.Now().Add(o.timeout())
	for {
		s, err := d.Screenshot(ctx)
		if err != nil {
			return err
		}
		if !check(s) {
			return nil
		}
		if time.Now().After(deadline) {
			return &NavigationError{Source: o.Source, Target: o.Target, LastPage: o.lastPage(ctx, s)}
		}
		if err := sleep(ctx, o.interval()); err != nil {
			return err
		}
	}
}

// ClickAndWait clicks at and waits for check to match. If the page never
// arrives the whole click+wait pair is retried, so a dropped tap costs one
// timeout rather than the fight. Input errors are not retried.
func ClickAndWait(ctx context.Context, d device.Device, at f64.Point, check Checker, o WaitOpts) (*vision.Screen, error) {
	var screen *vision.Screen
	err := task.Retry(ctx, o.retries()+1, retryBackoff, func(ctx context.Context) (bool, error) {
		if err := d.Click(ctx, at.X, at.Y); err != nil {
			return true, err
		}
		s, err := WaitForPage(ctx, d, check, o)
		if err != nil {
			if _, dropped := err.(*NavigationError); dropped {
				return false, err
			}
			return true, err
		}
		screen = s
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return screen, nil
}
