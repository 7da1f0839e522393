// Copyright (C) 2017 Google Inc.
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

// Package android provides types used to control Android devices.
package android

import (
	"context"
	"time"

	"github.com/OpenWSGR/autowsgr/core/os/shell"
)

// Device is the interface to a connected Android device.
type Device interface {
	// Serial returns the serial the device was bound with.
	Serial() string
	// Shell is a helper that builds a shell.Cmd that runs in the device shell.
	Shell(name string, args ...string) shell.Cmd
	// SystemProperty returns the system property with the given name.
	SystemProperty(ctx context.Context, name string) (string, error)
	// StartActivity launches the specified activity, force-stopping any
	// running instance and waiting for the launch to complete.
	StartActivity(ctx context.Context, a Activity, extras ...ActionExtra) error
	// ForceStop stops everything associated with the given package.
	ForceStop(ctx context.Context, pkg string) error
	// Pid returns the PID of the newest running process belonging to the
	// given package, or ErrProcessNotFound if the package is not running.
	Pid(ctx context.Context, pkg string) (int, error)
	// KeyEvent simulates a key-event on the device.
	KeyEvent(ctx context.Context, key KeyCode) error
	// Tap simulates a touch screen tap at the pixel position x, y.
	Tap(ctx context.Context, x, y int) error
	// LongTap simulates a touch held at the pixel position x, y for the
	// given duration.
	LongTap(ctx context.Context, x, y int, duration time.Duration) error
	// Swipe simulates a touch dragged from x0, y0 to x1, y1 over the given
	// duration.
	Swipe(ctx context.Context, x0, y0, x1, y1 int, duration time.Duration) error
	// InputText types the given text on the device.
	InputText(ctx context.Context, text string) error
	// ScreenDimensions returns the resolution of the display.
	ScreenDimensions(ctx context.Context) (orientation, width, height int, ok bool)
	// IsScreenOn returns true if the device's screen is currently on.
	IsScreenOn(ctx context.Context) (bool, error)
	// UnlockScreen returns true if it managed to turn on and unlock the screen.
	UnlockScreen(ctx context.Context) (bool, error)
}
