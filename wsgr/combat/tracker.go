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

package combat

import (
	"math"

	"github.com/OpenWSGR/autowsgr/core/math/f64"
	"github.com/OpenWSGR/autowsgr/wsgr/plan"
	"github.com/OpenWSGR/autowsgr/wsgr/vision"
)

// trackerConfidence is the template score the fleet icon must reach before
// the tracker trusts a position.
const trackerConfidence = 0.7

// Tracker follows the fleet across the sortie map by template matching the
// fleet icon and snapping its position to the nearest known node.
type Tracker struct {
	maps   *plan.MapData
	icons  []*vision.Template
	node   string
	pos    f64.Point
	hasPos bool
}

// NewTracker returns a tracker at the starting node "0". The icon renders
// in a couple of variants depending on fleet direction; all are tried.
func NewTracker(maps *plan.MapData, icons []*vision.Template) *Tracker {
	return &Tracker{maps: maps, icons: icons, node: "0"}
}

// Node returns the node the fleet was last seen at.
func (t *Tracker) Node() string { return t.node }

// Update looks for the fleet icon in the screen and reassigns the current
// node. An icon that has not moved keeps the previous assignment without
// recomputation; a missing icon keeps it too, since mid-animation frames
// routinely hide the fleet.
func (t *Tracker) Update(s *vision.Screen) string {
	d := vision.FindBest(s, t.icons, vision.FullScreen, trackerConfidence)
	if d == nil {
		return t.node
	}
	if t.hasPos && d.Center == t.pos {
		return t.node
	}
	t.pos, t.hasPos = d.Center, true

	// Prefer the nodes reachable from here; the icon can only have moved
	// along an edge. Nodes without recorded edges fall back to the whole
	// map, except the spawn point.
	candidates := t.maps.Next(t.node)
	if len(candidates) == 0 {
		for _, name := range t.maps.Names() {
			if name != "0" {
				candidates = append(candidates, name)
			}
		}
	}
	best, bestDist := t.node, math.MaxFloat64
	for _, name := range candidates {
		n, ok := t.maps.Node(name)
		if !ok {
			continue
		}
		if dist := f64.Distance(d.Center, n.Position); dist < bestDist {
			best, bestDist = name, dist
		}
	}
	t.node = best
	return t.node
}
