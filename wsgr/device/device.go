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

// Package device defines the screen and input surface the automation core
// drives.
//
// All coordinates are relative: values in [0,1]² scaled to pixels by the
// implementation. The device is exclusively owned by one task at a time;
// implementations are not required to be safe for concurrent use.
package device

import (
	"context"
	"time"

	"github.com/OpenWSGR/autowsgr/core/fault"
	"github.com/OpenWSGR/autowsgr/wsgr/vision"
)

const (
	// ErrScreenshotTimeout is returned by Screenshot when the device fails
	// to produce a frame within the configured deadline.
	ErrScreenshotTimeout = fault.Const("Screenshot timed out")
)

// Device is a connected emulator or handset.
type Device interface {
	// Screenshot captures the current framebuffer.
	Screenshot(ctx context.Context) (*vision.Screen, error)
	// Click taps the relative coordinate (x, y).
	Click(ctx context.Context, x, y float64) error
	// Swipe drags from (x1, y1) to (x2, y2) over the given duration.
	Swipe(ctx context.Context, x1, y1, x2, y2 float64, duration time.Duration) error
	// LongTap holds a touch at (x, y) for the given duration.
	LongTap(ctx context.Context, x, y float64, duration time.Duration) error
	// Key sends the key event with the given code.
	Key(ctx context.Context, code int) error
	// Text types the given text.
	Text(ctx context.Context, s string) error
	// Shell runs a command in the device shell and returns its output.
	Shell(ctx context.Context, name string, args ...string) (string, error)
	// Resolution returns the pixel dimensions probed at connect time.
	// The core only uses it for logging; all geometry is relative.
	Resolution() (w, h int)
}
