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

// Package devstub provides a scripted device for testing the automation
// core without an emulator.
//
// Screens are served from a queue: each Screenshot call consumes the next
// entry, and the final entry repeats once the queue is exhausted, so a test
// can model a UI that settles into a stable state. All gestures are
// recorded for inspection.
package devstub

import (
	"context"
	"fmt"
	"time"

	"github.com/OpenWSGR/autowsgr/core/math/f64"
	"github.com/OpenWSGR/autowsgr/wsgr/device"
	"github.com/OpenWSGR/autowsgr/wsgr/vision"
)

// Gesture records one input sent to the device.
type Gesture struct {
	Kind     string // "click", "swipe", "longtap", "key", "text"
	At       f64.Point
	To       f64.Point // swipe end point
	Duration time.Duration
	Code     int    // key code
	Text     string // typed text
}

// Device is a scripted device.Device. The zero value serves a black
// 960×540 screen and records gestures.
type Device struct {
	// ScreenshotErr, when set, is returned by every Screenshot call.
	ScreenshotErr error
	// InputErr, when set, is returned by every gesture call.
	InputErr error
	// OnScreenshot, when set, is called before each screenshot is served.
	// It can push screens to model a UI that reacts to gestures.
	OnScreenshot func(d *Device)
	// ShellResponses maps a command line to the output Shell returns for it.
	ShellResponses map[string]string

	// Gestures records every input sent to the device, in order.
	Gestures []Gesture
	// ShellCalls records every shell command line, in order.
	ShellCalls []string
	// Screenshots counts the Screenshot calls served.
	Screenshots int

	queue []*vision.Screen
	w, h  int
}

var _ device.Device = (*Device)(nil)

// New returns a stub that serves the given screens in order.
func New(screens ...*vision.Screen) *Device {
	d := &Device{}
	d.Push(screens...)
	return d
}

// Push appends screens to the screenshot queue.
func (d *Device) Push(screens ...*vision.Screen) {
	d.queue = append(d.queue, screens...)
	if n := len(d.queue); n > 0 {
		d.w, d.h = d.queue[n-1].Width(), d.queue[n-1].Height()
	}
}

// Screenshot serves the next queued screen. The last screen repeats.
func (d *Device) Screenshot(ctx context.Context) (*vision.Screen, error) {
	if d.OnScreenshot != nil {
		d.OnScreenshot(d)
	}
	if d.ScreenshotErr != nil {
		return nil, d.ScreenshotErr
	}
	d.Screenshots++
	switch len(d.queue) {
	case 0:
		return vision.NewScreen(960, 540), nil
	case 1:
		return d.queue[0], nil
	default:
		s := d.queue[0]
		d.queue = d.queue[1:]
		return s, nil
	}
}

func (d *Device) record(g Gesture) error {
	if d.InputErr != nil {
		return d.InputErr
	}
	d.Gestures = append(d.Gestures, g)
	return nil
}

func (d *Device) Click(ctx context.Context, x, y float64) error {
	return d.record(Gesture{Kind: "click", At: f64.Pt(x, y)})
}

func (d *Device) Swipe(ctx context.Context, x1, y1, x2, y2 float64, duration time.Duration) error {
	return d.record(Gesture{Kind: "swipe", At: f64.Pt(x1, y1), To: f64.Pt(x2, y2), Duration: duration})
}

func (d *Device) LongTap(ctx context.Context, x, y float64, duration time.Duration) error {
	return d.record(Gesture{Kind: "longtap", At: f64.Pt(x, y), Duration: duration})
}

func (d *Device) Key(ctx context.Context, code int) error {
	return d.record(Gesture{Kind: "key", Code: code})
}

func (d *Device) Text(ctx context.Context, s string) error {
	return d.record(Gesture{Kind: "text", Text: s})
}

func (d *Device) Shell(ctx context.Context, name string, args ...string) (string, error) {
	line := name
	for _, a := range args {
		line += " " + a
	}
	d.ShellCalls = append(d.ShellCalls, line)
	if out, ok := d.ShellResponses[line]; ok {
		return out, nil
	}
	return "", nil
}

func (d *Device) Resolution() (w, h int) {
	if d.w == 0 {
		return 960, 540
	}
	return d.w, d.h
}

// Clicks returns the recorded click points, in order.
func (d *Device) Clicks() []f64.Point {
	var out []f64.Point
	for _, g := range d.Gestures {
		if g.Kind == "click" {
			out = append(out, g.At)
		}
	}
	return out
}

// LastClick returns the most recent click, or false if none was recorded.
func (d *Device) LastClick() (f64.Point, bool) {
	clicks := d.Clicks()
	if len(clicks) == 0 {
		return f64.Point{}, false
	}
	return clicks[len(clicks)-1], true
}

// ClickedNear reports whether any recorded click lies within tolerance of
// p in both axes.
func (d *Device) ClickedNear(p f64.Point, tolerance float64) bool {
	for _, c := range d.Clicks() {
		if abs(c.X-p.X) <= tolerance && abs(c.Y-p.Y) <= tolerance {
			return true
		}
	}
	return false
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func (d *Device) String() string {
	return fmt.Sprintf("stub(%d screens queued, %d gestures)", len(d.queue), len(d.Gestures))
}
