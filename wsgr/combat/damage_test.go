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
	"testing"

	"github.com/OpenWSGR/autowsgr/core/assert"
	"github.com/OpenWSGR/autowsgr/core/log"
	"github.com/OpenWSGR/autowsgr/wsgr/combat"
	"github.com/OpenWSGR/autowsgr/wsgr/ship"
	"github.com/OpenWSGR/autowsgr/wsgr/vision"
)

func TestResultDamages(t *testing.T) {
	ctx := log.Testing(t)

	// Paint five health bars in the result panel's left column and leave
	// the sixth slot empty.
	bars := []vision.Color{
		vision.RGB(0x35, 0xb8, 0x38),
		vision.RGB(0xd3, 0xc0, 0x2c),
		vision.RGB(0xe2, 0x77, 0x25),
		vision.RGB(0xc4, 0x20, 0x17),
		vision.RGB(0x2a, 0x9a, 0xd0),
	}
	s := newScreen()
	for i, c := range bars {
		paint(s, 0.272, 0.155+float64(i)*0.118, c)
	}

	assert.For(ctx, "stats").ThatSlice(combat.ResultDamages(s)).Equals([]ship.Damage{
		ship.Normal, ship.Light, ship.Moderate, ship.Severe, ship.Repairing, ship.NoShip,
	})
}

func TestResultDamagesTolerance(t *testing.T) {
	ctx := log.Testing(t)

	// A bar rendered slightly off its reference color still classifies;
	// a color nowhere near any bar reads as an empty slot.
	s := newScreen()
	paint(s, 0.272, 0.155, vision.RGB(0x3c, 0xc0, 0x40))
	paint(s, 0.272, 0.155+0.118, vision.RGB(0xff, 0xff, 0xff))

	stats := combat.ResultDamages(s)
	assert.For(ctx, "near green").That(stats[0]).Equals(ship.Normal)
	assert.For(ctx, "white").That(stats[1]).Equals(ship.NoShip)
}

func TestDetectGrade(t *testing.T) {
	ctx := log.Testing(t)

	patch := textured(stampW, stampH, 70)
	s := newScreen()
	s.Blit(patch, 100, 100)
	gradeS := cut("S", s, 100, 100, stampW, stampH)

	other := newScreen()
	other.Blit(textured(stampW, stampH, 71), 100, 100)
	gradeA := cut("A", other, 100, 100, stampW, stampH)

	grades := []*vision.Template{gradeA, gradeS}
	assert.For(ctx, "match").ThatString(combat.DetectGrade(s, grades)).Equals("S")
	assert.For(ctx, "blank").ThatString(combat.DetectGrade(newScreen(), grades)).Equals("")

	// The grade plate sits in the top left corner; a letter rendered
	// elsewhere is not a grade.
	misplaced := newScreen()
	misplaced.Blit(patch, 600, 400)
	assert.For(ctx, "outside plate").ThatString(combat.DetectGrade(misplaced, grades)).Equals("")
}
