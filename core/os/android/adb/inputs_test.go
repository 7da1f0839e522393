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

package adb_test

import (
	"testing"
	"time"

	"github.com/OpenWSGR/autowsgr/core/assert"
	"github.com/OpenWSGR/autowsgr/core/log"
	"github.com/OpenWSGR/autowsgr/core/os/android"
)

func TestKeyEvent(t_ *testing.T) {
	ctx := log.Testing(t_)
	d := mustConnect(ctx, "emulator-5554")
	err := d.KeyEvent(ctx, android.KeyCode_Back)
	expectedCommand(ctx, adbPath.System()+` -s emulator-5554 shell input keyevent 4`, err)
}

func TestTap(t_ *testing.T) {
	ctx := log.Testing(t_)
	d := mustConnect(ctx, "emulator-5554")
	err := d.Tap(ctx, 568, 121)
	expectedCommand(ctx, adbPath.System()+` -s emulator-5554 shell input tap 568 121`, err)
}

func TestLongTap(t_ *testing.T) {
	ctx := log.Testing(t_)
	d := mustConnect(ctx, "emulator-5554")
	err := d.LongTap(ctx, 100, 200, 2*time.Second)
	expectedCommand(ctx, adbPath.System()+` -s emulator-5554 shell input swipe 100 200 100 200 2000`, err)
}

func TestSwipe(t_ *testing.T) {
	ctx := log.Testing(t_)
	d := mustConnect(ctx, "emulator-5554")
	err := d.Swipe(ctx, 0, 0, 500, 500, 500*time.Millisecond)
	expectedCommand(ctx, adbPath.System()+` -s emulator-5554 shell input swipe 0 0 500 500 500`, err)
}

func TestInputText(t_ *testing.T) {
	ctx := log.Testing(t_)
	d := mustConnect(ctx, "emulator-5554")
	err := d.InputText(ctx, `fleet "one" ready`)
	expectedCommand(ctx, adbPath.System()+` -s emulator-5554 shell input text fleet%s\"one\"%sready`, err)
}

func TestScreenDimensions(t_ *testing.T) {
	ctx := log.Testing(t_)

	d := mustConnect(ctx, "127.0.0.1:7555")
	orientation, width, height, ok := d.ScreenDimensions(ctx)
	assert.For(ctx, "ok").That(ok).Equals(true)
	assert.For(ctx, "orientation").That(orientation).Equals(1)
	assert.For(ctx, "width").That(width).Equals(960)
	assert.For(ctx, "height").That(height).Equals(540)

	d = mustConnect(ctx, "emulator-5554")
	_, _, _, ok = d.ScreenDimensions(ctx)
	assert.For(ctx, "ok").That(ok).Equals(false)
}
