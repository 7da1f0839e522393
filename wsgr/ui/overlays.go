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

	"github.com/OpenWSGR/autowsgr/core/log"
	"github.com/OpenWSGR/autowsgr/core/math/f64"
	"github.com/OpenWSGR/autowsgr/wsgr/device"
	"github.com/OpenWSGR/autowsgr/wsgr/vision"
)

// Overlay is a dialog the game draws on top of whatever page is current:
// the daily sign-in sheet, the news popup after login, the network-retry
// dialog on a dropped connection. Each knows its own signature and where
// to click to make it go away.
type Overlay struct {
	Name      string
	Signature vision.Signature
	Dismiss   f64.Point
}

// StandardOverlays returns the known overlays in dismissal priority order:
// sign-in first, then news, then network retry. At most one is dismissed
// per wait iteration, so the order is deterministic when several stack.
func StandardOverlays() []Overlay {
	return []Overlay{
		{
			Name: "signin",
			Signature: vision.AllOf("signin",
				vision.PixelRule{X: 0.479, Y: 0.145, Color: vision.RGB(0xf8, 0xe7, 0xc3), Tolerance: 30},
				vision.PixelRule{X: 0.812, Y: 0.146, Color: vision.RGB(0xd6, 0x48, 0x35), Tolerance: 30},
				vision.PixelRule{X: 0.479, Y: 0.680, Color: vision.RGB(0xef, 0xd8, 0xa9), Tolerance: 30},
			),
			Dismiss: f64.Pt(0.812, 0.146),
		},
		{
			Name: "news",
			Signature: vision.AllOf("news",
				vision.PixelRule{X: 0.500, Y: 0.093, Color: vision.RGB(0x20, 0x2c, 0x3a), Tolerance: 30},
				vision.PixelRule{X: 0.905, Y: 0.096, Color: vision.RGB(0xc8, 0xcd, 0xd2), Tolerance: 30},
				vision.PixelRule{X: 0.500, Y: 0.870, Color: vision.RGB(0x18, 0x20, 0x2a), Tolerance: 30},
			),
			Dismiss: f64.Pt(0.905, 0.096),
		},
		{
			Name: "retry",
			Signature: vision.AllOf("retry",
				vision.PixelRule{X: 0.500, Y: 0.400, Color: vision.RGB(0x3a, 0x42, 0x4a), Tolerance: 30},
				vision.PixelRule{X: 0.584, Y: 0.603, Color: vision.RGB(0x2d, 0x9c, 0xdb), Tolerance: 30},
			),
			Dismiss: f64.Pt(0.584, 0.603),
		},
	}
}

// DismissOverlays clicks away the first overlay whose signature matches
// the screen, reporting whether one was dismissed.
func DismissOverlays(ctx context.Context, d device.Device, s *vision.Screen, overlays []Overlay) (bool, error) {
	for _, o := range overlays {
		if !o.Signature.Check(s).Matched {
			continue
		}
		log.I(ctx, "Dismissing %v overlay", o.Name)
		if err := d.Click(ctx, o.Dismiss.X, o.Dismiss.Y); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}
