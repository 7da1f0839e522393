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
	"time"

	"github.com/OpenWSGR/autowsgr/wsgr/plan"
	"github.com/OpenWSGR/autowsgr/wsgr/vision"
)

// Check reports whether a screen shows a phase. The confidence only matters
// to checks built on template matching; pixel signatures ignore it.
type Check func(s *vision.Screen, confidence float64) bool

// Spec describes how one phase is recognized: its screen check, how long
// the recognizer polls for it, and how long to let the UI settle after a
// match before the decision reads the screen.
type Spec struct {
	Timeout        time.Duration
	Confidence     float64
	PostMatchDelay time.Duration
	Check          Check
}

// SpecTable maps each recognizable phase to its signature. Start is absent:
// it is never recognized.
type SpecTable map[Phase]Spec

// SignatureCheck adapts a pixel signature into a phase check.
func SignatureCheck(sig vision.Signature) Check {
	return func(s *vision.Screen, confidence float64) bool {
		return sig.Check(s).Matched
	}
}

// TemplateCheck adapts a template lookup into a phase check. The template
// must score at least the recognizer's confidence inside roi.
func TemplateCheck(t *vision.Template, roi vision.ROI) Check {
	return func(s *vision.Screen, confidence float64) bool {
		return vision.Find(s, t, roi, confidence) != nil
	}
}

// The battle screens redraw slowly; the animations between map nodes are
// the slowest part of a sortie. The defaults below bound each wait.
const (
	proceedTimeout        = 7500 * time.Millisecond
	fightConditionTimeout = 22500 * time.Millisecond
	spotEnemyTimeout      = 22500 * time.Millisecond
	formationTimeout      = 22500 * time.Millisecond
	missileTimeout        = 20 * time.Second
	fightPeriodTimeout    = 150 * time.Second
	nightPromptTimeout    = 150 * time.Second
	resultTimeout         = 90 * time.Second
	getShipTimeout        = 5 * time.Second
	flagshipTimeout       = 7500 * time.Millisecond
	terminalTimeout       = 60 * time.Second

	// Single-round modes skip the between-node animations, so their
	// pre-battle screens appear much faster.
	shortSpotEnemyTimeout = 15 * time.Second
	shortFormationTimeout = 15 * time.Second

	defaultConfidence = 0.75
)

var phaseSignatures = map[Phase]vision.Signature{
	Proceed: vision.AllOf("proceed",
		vision.PixelRule{X: 0.500, Y: 0.353, Color: vision.RGB(0x29, 0x32, 0x3e), Tolerance: 30},
		vision.PixelRule{X: 0.618, Y: 0.620, Color: vision.RGB(0x32, 0xa6, 0x53), Tolerance: 30},
		vision.PixelRule{X: 0.380, Y: 0.620, Color: vision.RGB(0x44, 0x4e, 0x5a), Tolerance: 30},
	),
	FightCondition: vision.AllOf("fight condition",
		vision.PixelRule{X: 0.500, Y: 0.107, Color: vision.RGB(0xe8, 0xc8, 0x6a), Tolerance: 30},
		vision.PixelRule{X: 0.132, Y: 0.500, Color: vision.RGB(0x23, 0x44, 0x5e), Tolerance: 30},
		vision.PixelRule{X: 0.868, Y: 0.500, Color: vision.RGB(0x23, 0x44, 0x5e), Tolerance: 30},
	),
	SpotEnemy: vision.AllOf("spot enemy",
		vision.PixelRule{X: 0.500, Y: 0.120, Color: vision.RGB(0xbf, 0x3b, 0x2f), Tolerance: 30},
		vision.PixelRule{X: 0.883, Y: 0.856, Color: vision.RGB(0xd9, 0x7b, 0x2a), Tolerance: 30},
		vision.PixelRule{X: 0.120, Y: 0.320, Color: vision.RGB(0x1b, 0x25, 0x31), Tolerance: 30},
	),
	Formation: vision.AllOf("formation",
		vision.PixelRule{X: 0.856, Y: 0.168, Color: vision.RGB(0x2d, 0x9c, 0xdb), Tolerance: 30},
		vision.PixelRule{X: 0.856, Y: 0.688, Color: vision.RGB(0x2d, 0x9c, 0xdb), Tolerance: 30},
		vision.PixelRule{X: 0.500, Y: 0.083, Color: vision.RGB(0xe4, 0xd2, 0xa0), Tolerance: 30},
	),
	MissileAnimation: vision.AllOf("missile animation",
		vision.PixelRule{X: 0.500, Y: 0.060, Color: vision.RGB(0x20, 0x28, 0x38), Tolerance: 25},
		vision.PixelRule{X: 0.500, Y: 0.940, Color: vision.RGB(0x20, 0x28, 0x38), Tolerance: 25},
		vision.PixelRule{X: 0.900, Y: 0.100, Color: vision.RGB(0x9a, 0xa4, 0xae), Tolerance: 30},
	),
	FightPeriod: vision.AllOf("fight period",
		vision.PixelRule{X: 0.043, Y: 0.057, Color: vision.RGB(0xf0, 0xd8, 0x60), Tolerance: 35},
		vision.PixelRule{X: 0.938, Y: 0.926, Color: vision.RGB(0xd9, 0xa4, 0x41), Tolerance: 35},
		vision.PixelRule{X: 0.062, Y: 0.926, Color: vision.RGB(0x3a, 0x88, 0xc0), Tolerance: 35},
	),
	NightPrompt: vision.AllOf("night prompt",
		vision.PixelRule{X: 0.500, Y: 0.400, Color: vision.RGB(0x23, 0x2d, 0x3a), Tolerance: 30},
		vision.PixelRule{X: 0.618, Y: 0.600, Color: vision.RGB(0x32, 0xa6, 0x53), Tolerance: 30},
		vision.PixelRule{X: 0.382, Y: 0.600, Color: vision.RGB(0xc4, 0x45, 0x36), Tolerance: 30},
	),
	Result: vision.AllOf("result",
		vision.PixelRule{X: 0.500, Y: 0.093, Color: vision.RGB(0xe8, 0xc0, 0x4a), Tolerance: 30},
		vision.PixelRule{X: 0.160, Y: 0.190, Color: vision.RGB(0x1d, 0x28, 0x36), Tolerance: 30},
		vision.PixelRule{X: 0.840, Y: 0.870, Color: vision.RGB(0xd9, 0xa4, 0x41), Tolerance: 30},
	),
	GetShip: vision.AllOf("get ship",
		vision.PixelRule{X: 0.500, Y: 0.120, Color: vision.RGB(0xea, 0xd8, 0xb0), Tolerance: 30},
		vision.PixelRule{X: 0.500, Y: 0.800, Color: vision.RGB(0xc9, 0xa2, 0x3f), Tolerance: 30},
		vision.PixelRule{X: 0.200, Y: 0.500, Color: vision.RGB(0x12, 0x16, 0x1c), Tolerance: 30},
	),
	FlagshipSevere: vision.AllOf("flagship severe",
		vision.PixelRule{X: 0.500, Y: 0.300, Color: vision.RGB(0xb0, 0x30, 0x30), Tolerance: 30},
		vision.PixelRule{X: 0.500, Y: 0.680, Color: vision.RGB(0x2d, 0x9c, 0xdb), Tolerance: 30},
		vision.PixelRule{X: 0.500, Y: 0.470, Color: vision.RGB(0xe8, 0xe4, 0xda), Tolerance: 30},
	),
	MapPage: vision.AllOf("map page",
		vision.PixelRule{X: 0.900, Y: 0.055, Color: vision.RGB(0xd9, 0xa4, 0x41), Tolerance: 30},
		vision.PixelRule{X: 0.938, Y: 0.889, Color: vision.RGB(0xd8, 0x47, 0x2f), Tolerance: 30},
		vision.PixelRule{X: 0.065, Y: 0.050, Color: vision.RGB(0x17, 0x90, 0xd4), Tolerance: 30},
	),
	BattlePage: vision.AllOf("battle page",
		vision.PixelRule{X: 0.900, Y: 0.055, Color: vision.RGB(0xd9, 0xa4, 0x41), Tolerance: 30},
		vision.PixelRule{X: 0.325, Y: 0.050, Color: vision.RGB(0x17, 0x90, 0xd4), Tolerance: 30},
		vision.PixelRule{X: 0.500, Y: 0.200, Color: vision.RGB(0x26, 0x30, 0x3c), Tolerance: 30},
	),
	ExercisePage: vision.AllOf("exercise page",
		vision.PixelRule{X: 0.900, Y: 0.055, Color: vision.RGB(0xd9, 0xa4, 0x41), Tolerance: 30},
		vision.PixelRule{X: 0.195, Y: 0.050, Color: vision.RGB(0x17, 0x90, 0xd4), Tolerance: 30},
		vision.PixelRule{X: 0.200, Y: 0.420, Color: vision.RGB(0x2b, 0x36, 0x44), Tolerance: 30},
	),
}

var phaseTimeouts = map[Phase]time.Duration{
	Proceed:          proceedTimeout,
	FightCondition:   fightConditionTimeout,
	SpotEnemy:        spotEnemyTimeout,
	Formation:        formationTimeout,
	MissileAnimation: missileTimeout,
	FightPeriod:      fightPeriodTimeout,
	NightPrompt:      nightPromptTimeout,
	Result:           resultTimeout,
	GetShip:          getShipTimeout,
	FlagshipSevere:   flagshipTimeout,
	MapPage:          terminalTimeout,
	BattlePage:       terminalTimeout,
	ExercisePage:     terminalTimeout,
}

var phaseDelays = map[Phase]time.Duration{
	Proceed:        500 * time.Millisecond,
	FightCondition: 300 * time.Millisecond,
	SpotEnemy:      500 * time.Millisecond,
	Formation:      300 * time.Millisecond,
	NightPrompt:    300 * time.Millisecond,
	// The result panel slides in over an animation; decisions made before
	// it settles read the wrong pixels.
	Result:         time.Second,
	GetShip:        500 * time.Millisecond,
	FlagshipSevere: 300 * time.Millisecond,
}

// DefaultSpecs returns the signature table of a fight mode: the shared
// phase signatures with the mode's timeout adjustments applied.
func DefaultSpecs(mode plan.Mode) SpecTable {
	table := make(SpecTable, len(phaseSignatures))
	for phase, sig := range phaseSignatures {
		table[phase] = Spec{
			Timeout:        phaseTimeouts[phase],
			Confidence:     defaultConfidence,
			PostMatchDelay: phaseDelays[phase],
			Check:          SignatureCheck(sig),
		}
	}
	if mode == plan.Battle || mode == plan.Exercise {
		adjust(table, SpotEnemy, shortSpotEnemyTimeout)
		adjust(table, Formation, shortFormationTimeout)
	}
	return table
}

func adjust(table SpecTable, phase Phase, timeout time.Duration) {
	spec := table[phase]
	spec.Timeout = timeout
	table[phase] = spec
}
