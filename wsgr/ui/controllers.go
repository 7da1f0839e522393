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
	"fmt"
	"time"

	"github.com/OpenWSGR/autowsgr/core/math/f64"
	"github.com/OpenWSGR/autowsgr/wsgr/device"
	"github.com/OpenWSGR/autowsgr/wsgr/ship"
	"github.com/OpenWSGR/autowsgr/wsgr/vision"
	"github.com/pkg/errors"
)

// GoBack clicks the back button. Arrival is verified against the target
// page's signature when the registry has one; otherwise GoBack only waits
// to leave the source page.
func GoBack(ctx context.Context, d device.Device, r *Registry, source, target string) error {
	if check := r.Checker(target); check != nil {
		_, err := ClickAndWait(ctx, d, backButton, check, WaitOpts{
			Source:   source,
			Target:   target,
			Overlays: StandardOverlays(),
			Registry: r,
		})
		return err
	}
	if err := d.Click(ctx, backButton.X, backButton.Y); err != nil {
		return err
	}
	return WaitLeavePage(ctx, d, r.Checker(source), WaitOpts{Source: source, Target: target, Registry: r})
}

// Main reads state off the main page.
type Main struct {
	D device.Device
}

var expeditionBadge = vision.AllOf("expedition badge",
	vision.PixelRule{X: 0.859, Y: 0.058, Color: vision.RGB(0xff, 0xc4, 0x00), Tolerance: 40},
)

// HasExpeditionNotice reports whether a returned expedition is flashing its
// badge on the main page.
func (Main) HasExpeditionNotice(s *vision.Screen) bool {
	return expeditionBadge.Check(s).Matched
}

// Tabbed switches the sub-tabs of one of the tabbed pages.
type Tabbed struct {
	D    device.Device
	Page string
}

// ActiveTab returns the selected tab slot.
func (Tabbed) ActiveTab(s *vision.Screen) (int, bool) {
	return vision.ActiveTabIndex(s)
}

// SelectTab clicks tab slot tab and waits for it to become the active one.
func (t Tabbed) SelectTab(ctx context.Context, tab int) error {
	if tab < 0 || tab >= vision.TabCount {
		return errors.Errorf("tab %d outside 0..%d", tab, vision.TabCount-1)
	}
	at := vision.TabProbe(tab)
	_, err := ClickAndWait(ctx, t.D, at, func(s *vision.Screen) bool {
		active, ok := vision.ActiveTabIndex(s)
		return ok && active == tab
	}, WaitOpts{Source: t.Page, Target: fmt.Sprintf("%s tab %d", t.Page, tab)})
	return err
}

// MapSelect drives the chapter and map pickers on the sortie overview.
type MapSelect struct {
	D device.Device
}

const (
	chaptersPerScreen = 4
	// selectDelay lets the map list redraw after a chapter or map click;
	// neither click changes page, so there is nothing to verify against.
	selectDelay = 500 * time.Millisecond
)

var (
	chapterStripTop    = f64.Pt(0.075, 0.300)
	chapterStripBottom = f64.Pt(0.075, 0.800)
	chapterRow0        = f64.Pt(0.075, 0.210)
	chapterRowStep     = 0.145
	mapRow0            = f64.Pt(0.700, 0.200)
	mapRowStep         = 0.130
	weighAnchorButton  = f64.Pt(0.938, 0.889)
)

// SelectChapter scrolls the chapter strip to the wanted chapter and clicks
// it. The strip is first swiped back to the top so the scroll position is
// known.
func (m MapSelect) SelectChapter(ctx context.Context, chapter int) error {
	if chapter < 1 {
		return errors.Errorf("chapter %d outside 1..", chapter)
	}
	for i := 0; i < 3; i++ {
		if err := m.D.Swipe(ctx, chapterStripTop.X, chapterStripTop.Y, chapterStripBottom.X, chapterStripBottom.Y, 400*time.Millisecond); err != nil {
			return err
		}
	}
	page := (chapter - 1) / chaptersPerScreen
	row := (chapter - 1) % chaptersPerScreen
	for i := 0; i < page; i++ {
		if err := m.D.Swipe(ctx, chapterStripBottom.X, chapterStripBottom.Y, chapterStripTop.X, chapterStripTop.Y, 400*time.Millisecond); err != nil {
			return err
		}
	}
	if err := m.D.Click(ctx, chapterRow0.X, chapterRow0.Y+float64(row)*chapterRowStep); err != nil {
		return err
	}
	return sleep(ctx, selectDelay)
}

// SelectMap clicks the mapID-th map of the selected chapter.
func (m MapSelect) SelectMap(ctx context.Context, mapID int) error {
	if mapID < 1 {
		return errors.Errorf("map %d outside 1..", mapID)
	}
	if err := m.D.Click(ctx, mapRow0.X, mapRow0.Y+float64(mapID-1)*mapRowStep); err != nil {
		return err
	}
	return sleep(ctx, selectDelay)
}

// EnterPrepare weighs anchor on the selected map and waits for the
// battle-preparation page.
func (m MapSelect) EnterPrepare(ctx context.Context) error {
	_, err := ClickAndWait(ctx, m.D, weighAnchorButton, SignatureChecker(prepareSignature), WaitOpts{
		Source:   PageMap,
		Target:   PagePrepare,
		Overlays: StandardOverlays(),
	})
	return err
}

// Prepare drives the battle-preparation page: fleet choice, damage readout,
// quick repair and the sortie start.
type Prepare struct {
	D device.Device
}

// FleetCount is the number of selectable fleets on the preparation page.
const FleetCount = 4

var (
	fleetTab0    = f64.Pt(0.350, 0.060)
	fleetTabStep = 0.065

	fleetSelected = vision.RGB(0x2d, 0x9c, 0xdb)

	damageAnchor0    = f64.Pt(0.225, 0.210)
	damageAnchorStep = 0.105

	quickRepairButton = f64.Pt(0.063, 0.898)
	repairConfirm     = f64.Pt(0.700, 0.750)
	startSortieButton = f64.Pt(0.900, 0.900)
	fleetTabTolerance = 40.0
	damageTolerance   = 40.0
)

func fleetTabAt(id int) f64.Point {
	return f64.Pt(fleetTab0.X+float64(id-1)*fleetTabStep, fleetTab0.Y)
}

// SelectedFleet returns the 1-based id of the highlighted fleet tab.
func (Prepare) SelectedFleet(s *vision.Screen) (int, bool) {
	for id := 1; id <= FleetCount; id++ {
		at := fleetTabAt(id)
		if vision.Distance(s.RGBAt(at.X, at.Y), fleetSelected) <= fleetTabTolerance {
			return id, true
		}
	}
	return 0, false
}

// SelectFleet clicks the fleet tab and waits for it to highlight.
func (p Prepare) SelectFleet(ctx context.Context, id int) error {
	if id < 1 || id > FleetCount {
		return errors.Errorf("fleet %d outside 1..%d", id, FleetCount)
	}
	at := fleetTabAt(id)
	_, err := ClickAndWait(ctx, p.D, at, func(s *vision.Screen) bool {
		selected, ok := p.SelectedFleet(s)
		return ok && selected == id
	}, WaitOpts{Source: PagePrepare, Target: fmt.Sprintf("fleet %d", id)})
	return err
}

// ShipDamages classifies the blood bar of each fleet slot.
func (Prepare) ShipDamages(s *vision.Screen) []ship.Damage {
	stats := make([]ship.Damage, ship.Slots)
	for i := range stats {
		c := s.RGBAt(damageAnchor0.X, damageAnchor0.Y+float64(i)*damageAnchorStep)
		stats[i] = ship.ClassifyDamage(c, damageTolerance)
	}
	return stats
}

// QuickRepair opens the quick-repair tool and repairs every slot whose
// damage has reached its threshold (-1 ignores the slot). It is a no-op
// when nothing qualifies.
func (p Prepare) QuickRepair(ctx context.Context, stats []ship.Damage, thresholds []int) error {
	var slots []int
	for i, d := range stats {
		if i >= len(thresholds) || d == ship.NoShip || thresholds[i] < 0 {
			continue
		}
		if int(d) >= thresholds[i] {
			slots = append(slots, i)
		}
	}
	if len(slots) == 0 {
		return nil
	}
	if err := p.D.Click(ctx, quickRepairButton.X, quickRepairButton.Y); err != nil {
		return err
	}
	if err := sleep(ctx, selectDelay); err != nil {
		return err
	}
	for _, i := range slots {
		if err := p.D.Click(ctx, damageAnchor0.X, damageAnchor0.Y+float64(i)*damageAnchorStep); err != nil {
			return err
		}
	}
	if err := p.D.Click(ctx, repairConfirm.X, repairConfirm.Y); err != nil {
		return err
	}
	return sleep(ctx, selectDelay)
}

// Start weighs anchor. The combat engine owns the screen from here on, so
// Start does not wait for a page.
func (p Prepare) Start(ctx context.Context) error {
	return p.D.Click(ctx, startSortieButton.X, startSortieButton.Y)
}

// Battle drives the battle (战役) tab of the sortie overview.
type Battle struct {
	D device.Device
}

var battleRow0 = f64.Pt(0.500, 0.200)

const battleRowStep = 0.130

// EnterPrepare opens the preparation page for the slot-th listed battle.
func (b Battle) EnterPrepare(ctx context.Context, slot int) error {
	if slot < 1 {
		return errors.Errorf("battle slot %d outside 1..", slot)
	}
	at := f64.Pt(battleRow0.X, battleRow0.Y+float64(slot-1)*battleRowStep)
	_, err := ClickAndWait(ctx, b.D, at, SignatureChecker(prepareSignature), WaitOpts{
		Source:   PageBattle,
		Target:   PagePrepare,
		Overlays: StandardOverlays(),
	})
	return err
}

// Exercise drives the exercise (演习) tab of the sortie overview.
type Exercise struct {
	D device.Device
}

var (
	rivalCard0    = f64.Pt(0.200, 0.420)
	rivalCardStep = 0.190
	challengeAt   = f64.Pt(0.700, 0.700)
)

// ChallengeRival opens the preparation page for the rival-th opponent:
// click the opponent card, then the challenge button on their detail sheet.
func (e Exercise) ChallengeRival(ctx context.Context, rival int) error {
	if rival < 1 {
		return errors.Errorf("rival %d outside 1..", rival)
	}
	at := f64.Pt(rivalCard0.X+float64(rival-1)*rivalCardStep, rivalCard0.Y)
	if err := e.D.Click(ctx, at.X, at.Y); err != nil {
		return err
	}
	if err := sleep(ctx, selectDelay); err != nil {
		return err
	}
	_, err := ClickAndWait(ctx, e.D, challengeAt, SignatureChecker(prepareSignature), WaitOpts{
		Source:   PageExercise,
		Target:   PagePrepare,
		Overlays: StandardOverlays(),
	})
	return err
}
