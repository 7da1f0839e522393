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

package combat_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/OpenWSGR/autowsgr/wsgr/combat"
	"github.com/OpenWSGR/autowsgr/wsgr/plan"
	"github.com/OpenWSGR/autowsgr/wsgr/vision"
)

// Shared fixtures for the combat tests. Screens are built at the 960x540
// reference size. Phases are recognized through single-pixel probes instead
// of the production signatures, so each test controls exactly which queued
// screen matches which phase.

var amber = vision.RGB(0xe0, 0xa0, 0x20)

func newScreen() *vision.Screen {
	return vision.NewScreen(vision.ReferenceWidth, vision.ReferenceHeight)
}

// paint sets the pixel sampled by the relative coordinate (x, y).
func paint(s *vision.Screen, x, y float64, c vision.Color) {
	s.SetPixelAt(int(x*float64(s.Width())), int(y*float64(s.Height())), c)
}

// textured returns a w × h patch of deterministic noise. Distinct seeds give
// patches that do not correlate, so a template never locks onto another
// template's stamp.
func textured(w, h int, seed uint32) *vision.Screen {
	s := vision.NewScreen(w, h)
	state := seed
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			state = state*1664525 + 1013904223
			s.SetPixelAt(x, y, vision.RGB(
				uint8(state>>24),
				uint8(state>>16),
				uint8(state>>8),
			))
		}
	}
	return s
}

// cut returns the w × h pixel region at (px, py) of s as a template.
func cut(name string, s *vision.Screen, px, py, w, h int) *vision.Template {
	sw, sh := float64(s.Width()), float64(s.Height())
	roi := vision.NewROI(float64(px)/sw, float64(py)/sh, float64(px+w)/sw, float64(py+h)/sh)
	return vision.TemplateFromScreen(name, s, roi)
}

const (
	stampW = 12
	stampH = 10
)

// stamped returns a noise patch and the template that finds it. Blitting the
// patch at (px, py) puts the template's detection center on the pixel
// (px + stampW/2, py + stampH/2).
func stamped(name string, px, py int, seed uint32) (*vision.Screen, *vision.Template) {
	patch := textured(stampW, stampH, seed)
	s := newScreen()
	s.Blit(patch, px, py)
	return patch, cut(name, s, px, py, stampW, stampH)
}

// Stamped patches and the templates that find them. Every patch carries its
// own noise seed so no template matches another's stamp.
var (
	fleetPatch, fleetIcon     = stamped("fleet", 474, 265, 11)
	detourPatch, detourTmpl   = stamped("detour", 100, 400, 22)
	dockPatch, dockTmpl       = stamped("dock_full", 420, 380, 33)
	missilePatch, missileTmpl = stamped("missile_support", 780, 300, 44)
	flagPatch, flagTmpl       = stamped("flagship_confirm", 460, 350, 55)
)

// phaseProbe is where synthetic screens carry the marker for phase p.
func phaseProbe(p combat.Phase) (x, y float64) {
	return 0.05 + 0.06*float64(int(p)), 0.92
}

// markPhase adds p's probe marker to the screen.
func markPhase(s *vision.Screen, p combat.Phase) {
	x, y := phaseProbe(p)
	paint(s, x, y, amber)
}

// phaseScreen returns a screen the test spec table recognizes as p.
func phaseScreen(p combat.Phase) *vision.Screen {
	s := newScreen()
	markPhase(s, p)
	return s
}

// recognizable lists every phase the transition tables can ask for.
var recognizable = []combat.Phase{
	combat.Proceed, combat.FightCondition, combat.SpotEnemy,
	combat.Formation, combat.MissileAnimation, combat.FightPeriod,
	combat.NightPrompt, combat.Result, combat.GetShip,
	combat.FlagshipSevere, combat.MapPage, combat.BattlePage,
	combat.ExercisePage,
}

// testSpecs recognizes each phase by its probe pixel, with a uniform timeout
// and no settle delays.
func testSpecs(timeout time.Duration) combat.SpecTable {
	table := combat.SpecTable{}
	for _, p := range recognizable {
		x, y := phaseProbe(p)
		table[p] = combat.Spec{
			Timeout:    timeout,
			Confidence: 0.75,
			Check: func(s *vision.Screen, confidence float64) bool {
				return vision.Distance(s.RGBAt(x, y), amber) <= 30
			},
		}
	}
	return table
}

// testRecognizer sweeps the test spec table every millisecond.
func testRecognizer(timeout time.Duration) *combat.Recognizer {
	return &combat.Recognizer{Specs: testSpecs(timeout), Interval: time.Millisecond}
}

func readPlan(t *testing.T, text string) *plan.Plan {
	p, err := plan.Read(bytes.NewReader([]byte(text)))
	if err != nil {
		t.Fatalf("reading plan: %v", err)
	}
	return p
}

func readMap(t *testing.T, text string) *plan.MapData {
	m, err := plan.ReadMap(bytes.NewReader([]byte(text)))
	if err != nil {
		t.Fatalf("reading map data: %v", err)
	}
	return m
}

// crossroads is the node layout shared by the engine and tracker tests. The
// fleet spawns at "0" and moves to A, which the recorded edges continue to
// B or C. Positions line up with fleetPatch stamps: the patch blitted at
// (474, 265) centers exactly on A, at (198, 425) on B, at (676, 220) on C.
const crossroads = `
"0": {position: [96, 486], next: [A]}
A: {position: [480, 270], next: [B, C]}
B: {position: [204, 430]}
C: {position: [682, 225]}
`
