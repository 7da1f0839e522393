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

package ship_test

import (
	"testing"

	"github.com/OpenWSGR/autowsgr/core/assert"
	"github.com/OpenWSGR/autowsgr/core/log"
	"github.com/OpenWSGR/autowsgr/wsgr/ship"
	"github.com/OpenWSGR/autowsgr/wsgr/vision"
)

func TestParseClass(t *testing.T) {
	ctx := log.Testing(t)
	for _, token := range []string{"DD", "CL", "CA", "CVL", "CV", "AV", "BB", "BC", "SS", "NAP", "NO", "ALL"} {
		c, ok := ship.ParseClass(token)
		assert.For(ctx, "token %s", token).ThatBoolean(ok).IsTrue()
		assert.For(ctx, "class %s", token).ThatString(string(c)).Equals(token)
	}
	for _, token := range []string{"", "dd", "XX", "BBV"} {
		_, ok := ship.ParseClass(token)
		assert.For(ctx, "reject %q", token).ThatBoolean(ok).IsFalse()
	}
}

func TestCount(t *testing.T) {
	ctx := log.Testing(t)
	counts := ship.Count([]ship.Class{ship.BB, ship.BB, ship.CV, ship.DD, ship.NO, ship.NO})
	assert.For(ctx, "BB").ThatInteger(counts[ship.BB]).Equals(2)
	assert.For(ctx, "CV").ThatInteger(counts[ship.CV]).Equals(1)
	assert.For(ctx, "DD").ThatInteger(counts[ship.DD]).Equals(1)
	assert.For(ctx, "ALL").ThatInteger(counts[ship.ALL]).Equals(4)
	_, hasNo := counts[ship.NO]
	assert.For(ctx, "NO skipped").ThatBoolean(hasNo).IsFalse()
}

func TestClassifyDamage(t *testing.T) {
	ctx := log.Testing(t)
	cases := []struct {
		color vision.Color
		want  ship.Damage
	}{
		{vision.RGB(0x35, 0xb8, 0x38), ship.Normal},
		{vision.RGB(0x38, 0xb5, 0x3b), ship.Normal}, // slightly off
		{vision.RGB(0xd3, 0xc0, 0x2c), ship.Light},
		{vision.RGB(0xe2, 0x77, 0x25), ship.Moderate},
		{vision.RGB(0xc4, 0x20, 0x17), ship.Severe},
		{vision.RGB(0x2a, 0x9a, 0xd0), ship.Repairing},
		{vision.RGB(0x10, 0x10, 0x10), ship.NoShip}, // background
	}
	for _, c := range cases {
		got := ship.ClassifyDamage(c.color, 30)
		assert.For(ctx, "color %v", c.color).That(got).Equals(c.want)
	}
}

func TestCheckBlood(t *testing.T) {
	ctx := log.Testing(t)
	healthy := []ship.Damage{ship.Normal, ship.Light, ship.Normal, ship.Normal, ship.NoShip, ship.NoShip}

	// Every slot under its threshold passes.
	assert.For(ctx, "all under").ThatBoolean(
		ship.CheckBlood(healthy, []int{2, 2, 2, 2, 2, 2})).IsTrue()

	// One slot at the threshold fails.
	hurt := []ship.Damage{ship.Normal, ship.Moderate, ship.Normal, ship.Normal, ship.NoShip, ship.NoShip}
	assert.For(ctx, "at threshold").ThatBoolean(
		ship.CheckBlood(hurt, []int{2, 2, 2, 2, 2, 2})).IsFalse()

	// -1 ignores the slot.
	assert.For(ctx, "ignored slot").ThatBoolean(
		ship.CheckBlood(hurt, []int{2, -1, 2, 2, 2, 2})).IsTrue()

	// Empty slots never stop the fleet.
	empty := []ship.Damage{ship.NoShip, ship.NoShip, ship.NoShip, ship.NoShip, ship.NoShip, ship.NoShip}
	assert.For(ctx, "empty fleet").ThatBoolean(
		ship.CheckBlood(empty, []int{0, 0, 0, 0, 0, 0})).IsTrue()
}
