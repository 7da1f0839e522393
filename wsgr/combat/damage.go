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
	"github.com/OpenWSGR/autowsgr/core/math/f64"
	"github.com/OpenWSGR/autowsgr/wsgr/ship"
	"github.com/OpenWSGR/autowsgr/wsgr/vision"
)

// The result panel lists the fleet down its left column, one health bar
// per slot. The anchors sample the solid part of each bar.
var (
	resultDamageAnchor = f64.Pt(0.272, 0.155)
	resultDamageStep   = 0.118
	damageTolerance    = 40.0
)

// gradeROI is the plate on the result panel that carries the grade letter.
var gradeROI = vision.NewROI(0.060, 0.090, 0.300, 0.330)

// gradeConfidence is the template score a grade letter must reach.
const gradeConfidence = 0.75

// ResultDamages reads the per-slot damage states off a result panel.
func ResultDamages(s *vision.Screen) []ship.Damage {
	stats := make([]ship.Damage, ship.Slots)
	for i := range stats {
		c := s.RGBAt(resultDamageAnchor.X, resultDamageAnchor.Y+float64(i)*resultDamageStep)
		stats[i] = ship.ClassifyDamage(c, damageTolerance)
	}
	return stats
}

// DetectGrade matches the grade letter templates against a result panel
// and returns the name of the best match, or "" if none scores.
func DetectGrade(s *vision.Screen, grades []*vision.Template) string {
	if d := vision.FindBest(s, grades, gradeROI, gradeConfidence); d != nil {
		return d.Name
	}
	return ""
}
