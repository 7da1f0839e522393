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

package adb

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/OpenWSGR/autowsgr/core/os/android"
)

var displayViewportRegex = regexp.MustCompile(
	"mDefaultViewport.*orientation=([0-9]+).*deviceWidth=([0-9]+).*deviceHeight=([0-9]+)")

// input text treats '%s' as a space, so spaces need replacing before the
// string is handed to the shell.
var inputTextReplacer = strings.NewReplacer(" ", "%s", `"`, `\"`)

// KeyEvent simulates a key-event on the device.
func (b *binding) KeyEvent(ctx context.Context, key android.KeyCode) error {
	return b.Shell("input", "keyevent", strconv.Itoa(int(key))).Run(ctx)
}

// Tap simulates a touch screen tap at the pixel position x, y.
func (b *binding) Tap(ctx context.Context, x, y int) error {
	return b.Shell("input", "tap", strconv.Itoa(x), strconv.Itoa(y)).Run(ctx)
}

// LongTap simulates a touch held at the pixel position x, y for the given
// duration. It is implemented as a swipe that does not move.
func (b *binding) LongTap(ctx context.Context, x, y int, duration time.Duration) error {
	return b.Swipe(ctx, x, y, x, y, duration)
}

// Swipe simulates a touch dragged from x0, y0 to x1, y1 over the given
// duration.
func (b *binding) Swipe(ctx context.Context, x0, y0, x1, y1 int, duration time.Duration) error {
	return b.Shell("input", "swipe",
		strconv.Itoa(x0), strconv.Itoa(y0),
		strconv.Itoa(x1), strconv.Itoa(y1),
		strconv.Itoa(int(duration/time.Millisecond))).Run(ctx)
}

// InputText types the given text on the device.
func (b *binding) InputText(ctx context.Context, text string) error {
	return b.Shell("input", "text", inputTextReplacer.Replace(text)).Run(ctx)
}

// ScreenDimensions returns the resolution of the display.
func (b *binding) ScreenDimensions(ctx context.Context) (orientation, width, height int, ok bool) {
	if info, err := b.Shell("dumpsys", "display").Call(ctx); err == nil {
		if match := displayViewportRegex.FindStringSubmatch(info); match != nil {
			return atoi(match[1]), atoi(match[2]), atoi(match[3]), true
		}
	}
	return 0, 0, 0, false
}

func atoi(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		panic(err)
	}
	return v
}
