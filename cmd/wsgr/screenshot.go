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

package main

import (
	"context"
	"flag"
	"image/png"
	"os"

	"github.com/OpenWSGR/autowsgr/core/app"
	"github.com/OpenWSGR/autowsgr/core/log"
)

type screenshotVerb struct{ ScreenshotFlags }

func init() {
	verb := &screenshotVerb{
		ScreenshotFlags{
			Out: "screenshot.png",
		},
	}
	app.AddVerb(&app.Verb{
		Name:      "screenshot",
		ShortHelp: "Captures the game screen to a PNG file",
		Auto:      verb,
	})
}

func (verb *screenshotVerb) Run(ctx context.Context, flags flag.FlagSet) error {
	d, err := getDevice(ctx, verb.DeviceFlags)
	if err != nil {
		return err
	}

	s, err := d.Screenshot(ctx)
	if err != nil {
		return log.Err(ctx, err, "Failed to capture the screen")
	}

	out, err := os.Create(verb.Out)
	if err != nil {
		return err
	}
	defer out.Close()
	if err := png.Encode(out, s.Image()); err != nil {
		return log.Errf(ctx, err, "Encoding %v", verb.Out)
	}
	log.I(ctx, "Saved %d×%d screenshot to %v", s.Width(), s.Height(), verb.Out)

	return nil
}
