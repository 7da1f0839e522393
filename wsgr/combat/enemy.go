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
	"github.com/OpenWSGR/autowsgr/wsgr/plan"
	"github.com/OpenWSGR/autowsgr/wsgr/recog"
	"github.com/OpenWSGR/autowsgr/wsgr/vision"
)

// FormationAllowlist is every character the enemy formation label can
// contain. Restricting the OCR engine to it keeps misreads inside the
// formation vocabulary.
const FormationAllowlist = "单复纵横轮形梯阵"

// formationROI is the enemy formation label on the spot-enemy screen.
var formationROI = vision.NewROI(0.715, 0.125, 0.940, 0.190)

// The spot-enemy screen lays the six enemy slots out differently per mode:
// sorties show one row of six, exercises two rows of three.
var (
	fightSlot0    = vision.NewROI(0.040, 0.250, 0.140, 0.430)
	fightSlotStep = 0.152

	exerciseSlot0     = vision.NewROI(0.250, 0.220, 0.370, 0.420)
	exerciseSlotStepX = 0.170
	exerciseSlotStepY = 0.240
)

func shiftROI(r vision.ROI, dx, dy float64) vision.ROI {
	return vision.ROI{X1: r.X1 + dx, Y1: r.Y1 + dy, X2: r.X2 + dx, Y2: r.Y2 + dy}
}

// EnemyCrops cuts the six enemy slot regions out of a spot-enemy screen,
// in slot order, ready for the recognition helper.
func EnemyCrops(s *vision.Screen, mode plan.Mode) []*vision.Screen {
	crops := make([]*vision.Screen, recog.EnemySlots)
	for i := range crops {
		var roi vision.ROI
		if mode == plan.Exercise {
			roi = shiftROI(exerciseSlot0, float64(i%3)*exerciseSlotStepX, float64(i/3)*exerciseSlotStepY)
		} else {
			roi = shiftROI(fightSlot0, float64(i)*fightSlotStep, 0)
		}
		crops[i] = s.Crop(roi)
	}
	return crops
}
