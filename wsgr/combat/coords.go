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
	"github.com/OpenWSGR/autowsgr/wsgr/vision"
)

// shipNameROI is the name plate on the ship drop panel.
var shipNameROI = vision.NewROI(0.370, 0.500, 0.630, 0.570)

// Click targets on the battle screens, all relative coordinates.
var (
	// proceedYes and proceedNo are the buttons of the continue prompt.
	proceedYes = f64.Pt(0.618, 0.620)
	proceedNo  = f64.Pt(0.380, 0.620)

	// speedUpTap hurries node movement; battleSpeedUpTap hurries the
	// campaign entry animation. Both land on inert background.
	speedUpTap       = f64.Pt(0.420, 0.500)
	battleSpeedUpTap = f64.Pt(0.790, 0.880)

	// retreatButton and enterFightButton sit on the spot-enemy screen.
	retreatButton    = f64.Pt(0.617, 0.856)
	enterFightButton = f64.Pt(0.883, 0.856)

	// nightYes and nightNo are the buttons of the night battle prompt.
	nightYes = f64.Pt(0.618, 0.600)
	nightNo  = f64.Pt(0.382, 0.600)

	// resultTap advances past the result panel.
	resultTap = f64.Pt(0.500, 0.500)

	// missileSkipTap skips the missile support cut-in.
	missileSkipTap = f64.Pt(0.900, 0.100)

	// getShipTap advances past the ship drop panel.
	getShipTap = f64.Pt(0.500, 0.800)

	// flagshipConfirmFallback is clicked when the flagship warning confirm
	// template cannot be located.
	flagshipConfirmFallback = f64.Pt(0.500, 0.680)
)

// The condition picks and formation buttons are evenly spaced rows.
var (
	fightConditionFirst = f64.Pt(0.132, 0.500)
	fightConditionStep  = 0.184

	formationFirst = f64.Pt(0.856, 0.168)
	formationStep  = 0.130
)

// fightConditionAt returns the click target of condition n (1 based).
func fightConditionAt(n int) f64.Point {
	return f64.Pt(fightConditionFirst.X+float64(n-1)*fightConditionStep, fightConditionFirst.Y)
}

// formationAt returns the click target of formation f (1 based).
func formationAt(f int) f64.Point {
	return f64.Pt(formationFirst.X, formationFirst.Y+float64(f-1)*formationStep)
}
