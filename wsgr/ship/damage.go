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

package ship

import "github.com/OpenWSGR/autowsgr/wsgr/vision"

// Slots is the fleet size. Every per-slot vector in plans and damage
// readouts has exactly this many entries.
const Slots = 6

// Damage is the per-slot hull state read from the colored health bars.
// The numeric values match the damage thresholds used in plans, so they
// compare directly against proceed_stop and repair_mode entries.
type Damage int

const (
	// NoShip marks an empty fleet slot.
	NoShip Damage = iota - 1
	// Normal is an undamaged ship.
	Normal
	// Light is a lightly damaged ship.
	Light
	// Moderate is a moderately damaged ship.
	Moderate
	// Severe is a severely damaged ship.
	Severe
	// Repairing is a ship under repair.
	Repairing
)

func (d Damage) String() string {
	switch d {
	case NoShip:
		return "no ship"
	case Normal:
		return "normal"
	case Light:
		return "light"
	case Moderate:
		return "moderate"
	case Severe:
		return "severe"
	case Repairing:
		return "repairing"
	default:
		return "unknown"
	}
}

// The health bar renders one reference color per damage state: green for
// normal down to red for severe, and the repair wrench blue. The anchors
// sampled by the damage readouts land inside the solid part of the bar.
var bloodColors = map[Damage]vision.Color{
	Normal:    vision.RGB(0x35, 0xb8, 0x38),
	Light:     vision.RGB(0xd3, 0xc0, 0x2c),
	Moderate:  vision.RGB(0xe2, 0x77, 0x25),
	Severe:    vision.RGB(0xc4, 0x20, 0x17),
	Repairing: vision.RGB(0x2a, 0x9a, 0xd0),
}

// ClassifyDamage returns the damage state whose reference color is nearest
// to c, or NoShip if none is within tolerance (an empty slot renders the
// page background instead of a bar).
func ClassifyDamage(c vision.Color, tolerance float64) Damage {
	best, bestDist := NoShip, tolerance
	for _, d := range []Damage{Normal, Light, Moderate, Severe, Repairing} {
		if dist := vision.Distance(c, bloodColors[d]); dist <= bestDist {
			best, bestDist = d, dist
		}
	}
	return best
}

// CheckBlood reports whether the fleet is healthy enough to continue under
// the given per-slot thresholds: it returns false if any slot has reached
// its threshold. A threshold of -1 ignores the slot, and empty slots never
// stop the fleet.
func CheckBlood(stats []Damage, thresholds []int) bool {
	for i, t := range thresholds {
		if t == -1 || i >= len(stats) {
			continue
		}
		if stats[i] == NoShip {
			continue
		}
		if int(stats[i]) >= t {
			return false
		}
	}
	return true
}
