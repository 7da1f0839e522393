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

package device

import (
	"context"
	"time"

	"github.com/OpenWSGR/autowsgr/core/fault"
	"github.com/OpenWSGR/autowsgr/core/log"
	"github.com/OpenWSGR/autowsgr/core/math/f64"
	"github.com/OpenWSGR/autowsgr/core/os/android"
	"github.com/OpenWSGR/autowsgr/core/os/android/adb"
	"github.com/OpenWSGR/autowsgr/wsgr/vision"
	"github.com/pkg/errors"
)

const (
	// ErrNoResolution is returned by FromADB when the display size cannot
	// be probed.
	ErrNoResolution = fault.Const("Could not probe the display resolution")
)

// adbDevice adapts an adb binding to the Device contract, scaling relative
// coordinates by the resolution probed at connect time.
type adbDevice struct {
	d adb.Device
	w int
	h int
}

// FromADB wraps an adb device, probing its resolution once.
func FromADB(ctx context.Context, d adb.Device) (Device, error) {
	_, w, h, ok := d.ScreenDimensions(ctx)
	if !ok {
		return nil, log.Errf(ctx, ErrNoResolution, "device: %v", d.Serial())
	}
	log.I(ctx, "Connected to %v at %d×%d", d.Serial(), w, h)
	return &adbDevice{d: d, w: w, h: h}, nil
}

func (a *adbDevice) pixel(x, y float64) (int, int) {
	return int(x * float64(a.w)), int(y * float64(a.h))
}

func (a *adbDevice) Screenshot(ctx context.Context) (*vision.Screen, error) {
	img, err := a.d.Screencap(ctx)
	if err != nil {
		if errors.Cause(err) == context.DeadlineExceeded {
			return nil, log.Err(ctx, ErrScreenshotTimeout, "")
		}
		return nil, err
	}
	return vision.FromImage(img), nil
}

func (a *adbDevice) Click(ctx context.Context, x, y float64) error {
	px, py := a.pixel(x, y)
	return a.d.Tap(ctx, px, py)
}

func (a *adbDevice) Swipe(ctx context.Context, x1, y1, x2, y2 float64, duration time.Duration) error {
	px1, py1 := a.pixel(x1, y1)
	px2, py2 := a.pixel(x2, y2)
	return a.d.Swipe(ctx, px1, py1, px2, py2, duration)
}

func (a *adbDevice) LongTap(ctx context.Context, x, y float64, duration time.Duration) error {
	px, py := a.pixel(x, y)
	return a.d.LongTap(ctx, px, py, duration)
}

func (a *adbDevice) Key(ctx context.Context, code int) error {
	return a.d.KeyEvent(ctx, android.KeyCode(code))
}

func (a *adbDevice) Text(ctx context.Context, s string) error {
	return a.d.InputText(ctx, s)
}

func (a *adbDevice) Shell(ctx context.Context, name string, args ...string) (string, error) {
	return a.d.Shell(name, args...).Call(ctx)
}

func (a *adbDevice) Resolution() (w, h int) {
	return a.w, a.h
}

// ClickPoint taps the relative point p.
func ClickPoint(ctx context.Context, d Device, p f64.Point) error {
	return d.Click(ctx, p.X, p.Y)
}
