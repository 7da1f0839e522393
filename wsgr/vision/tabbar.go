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

package vision

import "github.com/OpenWSGR/autowsgr/core/math/f64"

// The major tabbed pages (map, build, intensify, mission, friend) share one
// header layout: up to five tab titles on a single row near the top of the
// screen. One probe per title slot is enough to tell the selected tab, which
// renders in the highlight blues, from the inactive ones, which render in
// the dark slate shades.
var tabProbes = [...]f64.Point{
	{X: 0.065, Y: 0.050},
	{X: 0.195, Y: 0.050},
	{X: 0.325, Y: 0.050},
	{X: 0.455, Y: 0.050},
	{X: 0.585, Y: 0.050},
}

var (
	tabSelected = []Color{RGB(0x17, 0x90, 0xd4), RGB(0x2a, 0xa0, 0xe0)}
	tabInactive = []Color{RGB(0x28, 0x32, 0x3c), RGB(0x1e, 0x26, 0x2e)}
)

const tabTolerance = 45.0

// TabCount is the number of tab slots on a tabbed page header.
const TabCount = len(tabProbes)

// TabProbe returns the sampled point of tab slot i. The probes sit on the
// tab titles, so controllers click the same point to switch tabs.
func TabProbe(i int) f64.Point { return tabProbes[i] }

func inPalette(c Color, palette []Color) bool {
	for _, p := range palette {
		if Distance(c, p) <= tabTolerance {
			return true
		}
	}
	return false
}

// IsTabbedPage reports whether the screen shows one of the tabbed pages:
// exactly one tab probe reads as selected and all the others as inactive.
func IsTabbedPage(s *Screen) bool {
	_, ok := ActiveTabIndex(s)
	return ok
}

// ActiveTabIndex returns the index of the selected tab, or false if the
// screen is not a tabbed page.
func ActiveTabIndex(s *Screen) (int, bool) {
	selected := -1
	for i, p := range tabProbes {
		c := s.RGBAt(p.X, p.Y)
		switch {
		case inPalette(c, tabSelected):
			if selected >= 0 {
				return 0, false
			}
			selected = i
		case inPalette(c, tabInactive):
			// inactive slot
		default:
			return 0, false
		}
	}
	if selected < 0 {
		return 0, false
	}
	return selected, true
}
