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

package ui_test

import (
	"time"

	"github.com/OpenWSGR/autowsgr/wsgr/ui"
	"github.com/OpenWSGR/autowsgr/wsgr/vision"
)

// Shared screen-building helpers for the ui tests. All screens are at the
// 960x540 reference size.

var (
	amber = vision.RGB(0xe0, 0xa0, 0x20)
	teal  = vision.RGB(0x20, 0xb0, 0xa0)
)

func newScreen() *vision.Screen {
	return vision.NewScreen(vision.ReferenceWidth, vision.ReferenceHeight)
}

// paint sets the pixel sampled by the relative coordinate (x, y).
func paint(s *vision.Screen, x, y float64, c vision.Color) {
	s.SetPixelAt(int(x*float64(s.Width())), int(y*float64(s.Height())), c)
}

// marked builds a screen with a single colored probe at (x, y).
func marked(x, y float64, c vision.Color) *vision.Screen {
	s := newScreen()
	paint(s, x, y, c)
	return s
}

// probeChecker matches screens whose probe at (x, y) is close to c.
func probeChecker(x, y float64, c vision.Color) ui.Checker {
	return func(s *vision.Screen) bool {
		return vision.Distance(s.RGBAt(x, y), c) <= 30
	}
}

// tabbedScreen builds a screen whose tab row has the given slot active.
func tabbedScreen(active int) *vision.Screen {
	s := newScreen()
	for i := 0; i < vision.TabCount; i++ {
		p := vision.TabProbe(i)
		if i == active {
			paint(s, p.X, p.Y, vision.RGB(0x17, 0x90, 0xd4))
		} else {
			paint(s, p.X, p.Y, vision.RGB(0x28, 0x32, 0x3c))
		}
	}
	return s
}

// fastWait keeps the polling waiters quick under test.
func fastWait(o ui.WaitOpts) ui.WaitOpts {
	if o.Timeout == 0 {
		o.Timeout = 50 * time.Millisecond
	}
	if o.Interval == 0 {
		o.Interval = time.Millisecond
	}
	return o
}
