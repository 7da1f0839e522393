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
	"time"

	"github.com/OpenWSGR/autowsgr/core/math/f64"
	"github.com/OpenWSGR/autowsgr/wsgr/device"
	"github.com/OpenWSGR/autowsgr/wsgr/vision"
)

// The registered page names.
const (
	PageMain      = "main"
	PageSidebar   = "sidebar"
	PageMap       = "map"
	PageExercise  = "exercise"
	PageBattle    = "battle"
	PagePrepare   = "prepare"
	PageBuild     = "build"
	PageIntensify = "intensify"
	PageMission   = "mission"
	PageFriend    = "friend"
)

// Fixed chrome probes. All geometry is relative to the 960x540 reference
// layout the game letterboxes onto every resolution.
var (
	mainSignature = vision.AllOf(PageMain,
		vision.PixelRule{X: 0.052, Y: 0.055, Color: vision.RGB(0xe7, 0xb5, 0x3a), Tolerance: 30},
		vision.PixelRule{X: 0.700, Y: 0.055, Color: vision.RGB(0x1f, 0x28, 0x33), Tolerance: 30},
		vision.PixelRule{X: 0.938, Y: 0.889, Color: vision.RGB(0xd8, 0x47, 0x2f), Tolerance: 30},
	)
	sidebarSignature = vision.AllOf(PageSidebar,
		vision.PixelRule{X: 0.063, Y: 0.300, Color: vision.RGB(0x2b, 0x36, 0x44), Tolerance: 30},
		vision.PixelRule{X: 0.063, Y: 0.540, Color: vision.RGB(0x2b, 0x36, 0x44), Tolerance: 30},
		vision.PixelRule{X: 0.240, Y: 0.080, Color: vision.RGB(0xe7, 0xb5, 0x3a), Tolerance: 30},
	)
	prepareSignature = vision.AllOf(PagePrepare,
		vision.PixelRule{X: 0.350, Y: 0.060, Color: vision.RGB(0x22, 0x5a, 0x77), Tolerance: 30},
		vision.PixelRule{X: 0.900, Y: 0.900, Color: vision.RGB(0xf5, 0xc8, 0x42), Tolerance: 30},
		vision.PixelRule{X: 0.063, Y: 0.898, Color: vision.RGB(0x2d, 0x9c, 0x8f), Tolerance: 30},
	)

	// The sortie overview carries the tab row (sortie, exercise, battle,
	// expedition) plus a compass ornament that tells it apart from the
	// other tabbed screens.
	sortieChrome = vision.AllOf("sortie chrome",
		vision.PixelRule{X: 0.900, Y: 0.055, Color: vision.RGB(0xd9, 0xa4, 0x41), Tolerance: 30},
	)
	buildChrome = vision.AllOf("build chrome",
		vision.PixelRule{X: 0.930, Y: 0.500, Color: vision.RGB(0xc9, 0x6f, 0x22), Tolerance: 30},
	)
	intensifyChrome = vision.AllOf("intensify chrome",
		vision.PixelRule{X: 0.928, Y: 0.480, Color: vision.RGB(0x7f, 0x8e, 0xa0), Tolerance: 30},
	)
	missionChrome = vision.AllOf("mission chrome",
		vision.PixelRule{X: 0.068, Y: 0.880, Color: vision.RGB(0xe8, 0xd5, 0xa8), Tolerance: 30},
	)
	friendChrome = vision.AllOf("friend chrome",
		vision.PixelRule{X: 0.075, Y: 0.860, Color: vision.RGB(0x5f, 0xa8, 0xd0), Tolerance: 30},
	)
)

// Tab slots on the sortie overview.
const (
	sortieTab   = 0
	exerciseTab = 1
	battleTab   = 2
)

// Button coordinates shared by the standard edges.
var (
	backButton    = f64.Pt(0.031, 0.046)
	sortieButton  = f64.Pt(0.938, 0.889)
	sidebarButton = f64.Pt(0.031, 0.900)
	missionButton = f64.Pt(0.207, 0.907)

	// Sidebar groups open a submenu; the entry is clicked after a short
	// slide-out animation.
	sidebarBuildGroup     = f64.Pt(0.063, 0.300)
	sidebarBuildEntry     = f64.Pt(0.240, 0.300)
	sidebarIntensifyGroup = f64.Pt(0.063, 0.420)
	sidebarIntensifyEntry = f64.Pt(0.240, 0.420)
	sidebarFriendEntry    = f64.Pt(0.063, 0.540)
)

// submenuDelay is the slide-out animation of a sidebar group.
const submenuDelay = 500 * time.Millisecond

// sortieTabChecker matches the sortie overview with the given tab active.
func sortieTabChecker(tab int) Checker {
	return func(s *vision.Screen) bool {
		if !sortieChrome.Check(s).Matched {
			return false
		}
		active, ok := vision.ActiveTabIndex(s)
		return ok && active == tab
	}
}

// tabbedChecker matches a tabbed page by its distinguishing chrome.
func tabbedChecker(chrome vision.Signature) Checker {
	return func(s *vision.Screen) bool {
		return vision.IsTabbedPage(s) && chrome.Check(s).Matched
	}
}

// clickEdge returns an edge action that clicks at and waits for the target
// page, dismissing overlays while it waits.
func clickEdge(at f64.Point, source, target string, r *Registry) Action {
	return func(ctx context.Context, d device.Device) error {
		_, err := ClickAndWait(ctx, d, at, r.Checker(target), WaitOpts{
			Source:   source,
			Target:   target,
			Overlays: StandardOverlays(),
			Registry: r,
		})
		return err
	}
}

// submenuEdge returns an edge action for the sidebar's two-step submenus:
// click the group, let the submenu slide out, then click the entry and
// verify arrival.
func submenuEdge(group, entry f64.Point, source, target string, r *Registry) Action {
	click := clickEdge(entry, source, target, r)
	return func(ctx context.Context, d device.Device) error {
		if err := d.Click(ctx, group.X, group.Y); err != nil {
			return err
		}
		if err := sleep(ctx, submenuDelay); err != nil {
			return err
		}
		return click(ctx, d)
	}
}

// tabEdge returns an edge action that switches sortie-overview tabs.
func tabEdge(tab int, source, target string, r *Registry) Action {
	return clickEdge(vision.TabProbe(tab), source, target, r)
}

// StandardPages builds the sealed registry and navigation graph for the
// game's screens.
func StandardPages() *Graph {
	r := NewRegistry()
	r.Register(PageMain, SignatureChecker(mainSignature))
	r.Register(PageSidebar, SignatureChecker(sidebarSignature))
	r.Register(PagePrepare, SignatureChecker(prepareSignature))
	r.Register(PageMap, sortieTabChecker(sortieTab))
	r.Register(PageExercise, sortieTabChecker(exerciseTab))
	r.Register(PageBattle, sortieTabChecker(battleTab))
	r.Register(PageBuild, tabbedChecker(buildChrome))
	r.Register(PageIntensify, tabbedChecker(intensifyChrome))
	r.Register(PageMission, tabbedChecker(missionChrome))
	r.Register(PageFriend, tabbedChecker(friendChrome))
	r.Seal()

	g := NewGraph(r)

	// Main hub.
	g.AddEdge(PageMain, PageMap, clickEdge(sortieButton, PageMain, PageMap, r))
	g.AddEdge(PageMain, PageSidebar, clickEdge(sidebarButton, PageMain, PageSidebar, r))
	g.AddEdge(PageMain, PageMission, clickEdge(missionButton, PageMain, PageMission, r))

	// Sortie overview tabs.
	tabs := []struct {
		page string
		tab  int
	}{
		{PageMap, sortieTab},
		{PageExercise, exerciseTab},
		{PageBattle, battleTab},
	}
	for _, from := range tabs {
		for _, to := range tabs {
			if from.page == to.page {
				continue
			}
			g.AddEdge(from.page, to.page, tabEdge(to.tab, from.page, to.page, r))
		}
	}

	// Sidebar submenus.
	g.AddEdge(PageSidebar, PageBuild, submenuEdge(sidebarBuildGroup, sidebarBuildEntry, PageSidebar, PageBuild, r))
	g.AddEdge(PageSidebar, PageIntensify, submenuEdge(sidebarIntensifyGroup, sidebarIntensifyEntry, PageSidebar, PageIntensify, r))
	g.AddEdge(PageSidebar, PageFriend, clickEdge(sidebarFriendEntry, PageSidebar, PageFriend, r))

	// Ways back to the main page.
	for _, page := range []string{PageSidebar, PageMap, PageExercise, PageBattle, PageBuild, PageIntensify, PageMission, PageFriend} {
		g.AddEdge(page, PageMain, clickEdge(backButton, page, PageMain, r))
	}
	g.AddEdge(PagePrepare, PageMap, clickEdge(backButton, PagePrepare, PageMap, r))

	return g
}
