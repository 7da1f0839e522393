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
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/OpenWSGR/autowsgr/core/assert"
	"github.com/OpenWSGR/autowsgr/core/os/android/adb"
	"github.com/OpenWSGR/autowsgr/core/os/file"
	"github.com/OpenWSGR/autowsgr/core/os/shell"
	"github.com/OpenWSGR/autowsgr/core/os/shell/stub"
)

var (
	adbPath = file.Abs("/adb")

	validDevices = stub.RespondTo(adbPath.System()+` devices`, `
List of devices attached
adb server version (41) doesn't match this client (39); killing...
* daemon not running. starting it now on port 5037 *
* daemon started successfully *
127.0.0.1:7555           device
127.0.0.1:16384          offline
emulator-5554            device
unauthorized_device      unauthorized
forgotten_device         unknown
unlocked_device          device
locked_device            offline
invalid_device           device
screen_off_device        offline
screen_doze_device       offline
screen_unready_device    offline
screen_on_device         device
ok_pgrep_no_ps_device    device
ok_pgrep_ok_ps_device    unauthorized
no_pgrep_ok_ps_device    offline
no_pgrep_no_ps_device    unknown
`)
	emptyDevices = stub.RespondTo(adbPath.System()+` devices`, `
List of devices attached
* daemon not running. starting it now on port 5037 *
* daemon started successfully *
`)
	invalidDevices = stub.RespondTo(adbPath.System()+` devices`, `
List of devices attached
* daemon not running. starting it now on port 5037 *
* daemon started successfully *
127.0.0.1:7555           device extra
`)
	invalidStatus = stub.RespondTo(adbPath.System()+` devices`, `
List of devices attached
* daemon not running. starting it now on port 5037 *
* daemon started successfully *
127.0.0.1:7555           sideways
`)
	notDevices = stub.RespondTo(adbPath.System()+` devices`, ``)
	devices    = &stub.Delegate{Handlers: []shell.Target{validDevices}}

	screencapImage = screencapFixture()
)

func init() {
	adb.ADB = file.Abs("/adb")

	shell.LocalTarget = stub.OneOf(
		devices,

		// Product name queries issued when a device first comes online.
		stub.RespondTo(adbPath.System()+` -s 127.0.0.1:7555 shell getprop ro.build.product`, `cancro`),
		stub.RespondTo(adbPath.System()+` -s emulator-5554 shell getprop ro.build.product`, `ttVM_Hdragon`),

		// Screen on / off / doze / unready queries.
		stub.RespondTo(adbPath.System()+` -s screen_off_device shell dumpsys power`, `
POWER MANAGER (dumpsys power)
  mScreenBrightnessBoostInProgress=false
  mDisplayReady=true
  mHoldingWakeLockSuspendBlocker=false
Display Power: state=OFF`),
		stub.RespondTo(adbPath.System()+` -s screen_doze_device shell dumpsys power`, `
POWER MANAGER (dumpsys power)
  mScreenBrightnessBoostInProgress=false
  mDisplayReady=true
  mHoldingWakeLockSuspendBlocker=false
Display Power: state=DOZE`),
		stub.RespondTo(adbPath.System()+` -s screen_unready_device shell dumpsys power`, `
POWER MANAGER (dumpsys power)
  mScreenBrightnessBoostInProgress=false
  mDisplayReady=false
  mHoldingWakeLockSuspendBlocker=false
Display Power: state=ON`),
		stub.RespondTo(adbPath.System()+` -s screen_on_device shell dumpsys power`, `
POWER MANAGER (dumpsys power)
  mScreenBrightnessBoostInProgress=false
  mDisplayReady=true
  mHoldingWakeLockSuspendBlocker=false
Display Power: state=ON`),

		// Lock state queries.
		stub.RespondTo(adbPath.System()+` -s unlocked_device shell dumpsys window`, `
WINDOW MANAGER POLICY STATE (dumpsys window policy)
    mSystemReady=true mSystemBooted=true
    mAwake=true
    mShowingLockscreen=false mShowingDream=false mDreamingToLockscreen=false`),
		stub.RespondTo(adbPath.System()+` -s locked_device shell dumpsys window`, `
WINDOW MANAGER POLICY STATE (dumpsys window policy)
    mSystemReady=true mSystemBooted=true
    mAwake=false
    mDreamingLockscreen=true mShowingDream=false mDreamingToLockscreen=false`),

		stub.RespondTo(adbPath.System()+` -s invalid_device shell dumpsys power`, `not a normal response`),
		stub.RespondTo(adbPath.System()+` -s invalid_device shell dumpsys window`, `not a normal response`),

		// Display viewport query.
		stub.RespondTo(adbPath.System()+` -s 127.0.0.1:7555 shell dumpsys display`, `
DISPLAY MANAGER (dumpsys display)
  mDefaultViewport=DisplayViewport{valid=true, orientation=1, logicalFrame=Rect(0, 0 - 960, 540), deviceWidth=960, deviceHeight=540}`),

		// Pid queries.
		stub.Regex(`adb -s ok_pgrep_\S*device shell pgrep .* com.hulaoo.zhanjian`, stub.Respond("")),
		stub.Regex(`adb -s ok_pgrep\S*device shell pgrep -n -f com.huanmeng.zhanjian2`, stub.Respond("2778")),
		stub.RespondTo(adbPath.System()+` -s no_pgrep_ok_ps_device shell ps`, `
u0_a11    21926 5061  1976096 42524 SyS_epoll_ 0000000000 S com.netease.mumu.launcher
u0_a111   2778  5062  1990796 59268 SyS_epoll_ 0000000000 S com.huanmeng.zhanjian2
u0_a69    22841 5062  1255788 88672 SyS_epoll_ 0000000000 S com.android.systemui`),
		stub.Regex(`adb -s \S*no_ps\S*device shell ps`, stub.Respond("/system/bin/sh: ps: not found")),
		stub.Regex(`adb -s \S*no_pgrep\S*device shell pgrep \S+`, stub.Respond("/system/bin/sh: pgrep: not found")),

		// Screen captures.
		stub.RespondTo(adbPath.System()+` -s 127.0.0.1:7555 exec-out screencap -p`, screencapImage),
		stub.RespondTo(adbPath.System()+` -s invalid_device exec-out screencap -p`, `not a png`),

		// Emulator bridge connections.
		stub.RespondTo(adbPath.System()+` connect 127.0.0.1:7555`, `connected to 127.0.0.1:7555`),
		stub.RespondTo(adbPath.System()+` connect 127.0.0.1:21503`, `connected to 127.0.0.1:21503`),
		stub.RespondTo(adbPath.System()+` connect 10.0.2.2:5555`, `unable to connect to 10.0.2.2:5555`),
		stub.RespondTo(adbPath.System()+` disconnect 127.0.0.1:7555`, `disconnected 127.0.0.1:7555`),
	)
}

// screencapFixture returns the bytes of a small PNG, standing in for the
// stream that screencap -p writes to stdout.
func screencapFixture() string {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 60), G: uint8(y * 80), B: 0xff, A: 0xff})
		}
	}
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, img); err != nil {
		panic(err)
	}
	return buf.String()
}

// expectedCommand uses the standard response for an unexpected command to the stub in order to check the command itself
// was as expected.
func expectedCommand(ctx context.Context, expect string, err error) {
	assert.For(ctx, "Expected an unmatched command").
		ThatError(err).HasMessage(fmt.Sprintf(`Failed to start process
   Cause: unmatched:%s`, expect))
}
