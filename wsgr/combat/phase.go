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

// Package combat drives fights: it recognizes which battle screen the game
// is showing, walks the per-mode phase machine, and applies the decisions a
// plan configures for each map node.
package combat

import (
	"fmt"

	"github.com/OpenWSGR/autowsgr/wsgr/plan"
)

// Phase is one screen of the battle flow. The set is closed; the transition
// tables and the signature table cover every member.
type Phase int

const (
	// Start is the pseudo phase a fight begins in. It is never recognized
	// on screen and has no signature.
	Start Phase = iota
	// Proceed is the "continue forward?" prompt between map nodes.
	Proceed
	// FightCondition is the pre-battle condition pick.
	FightCondition
	// SpotEnemy is the enemy sighting report with the fleet composition.
	SpotEnemy
	// Formation is the formation pick.
	Formation
	// MissileAnimation is the long range missile support cut-in.
	MissileAnimation
	// FightPeriod is the battle itself.
	FightPeriod
	// NightPrompt is the "pursue into night battle?" prompt.
	NightPrompt
	// Result is the battle result panel with the grade and damage readout.
	Result
	// GetShip is the new ship drop panel.
	GetShip
	// FlagshipSevere is the severely damaged flagship warning.
	FlagshipSevere
	// MapPage is the sortie map, the terminal screen of normal fights.
	MapPage
	// BattlePage is the campaign list, the terminal screen of battle mode.
	BattlePage
	// ExercisePage is the rival list, the terminal screen of exercises.
	ExercisePage
)

func (p Phase) String() string {
	switch p {
	case Start:
		return "start"
	case Proceed:
		return "proceed"
	case FightCondition:
		return "fight condition"
	case SpotEnemy:
		return "spot enemy"
	case Formation:
		return "formation"
	case MissileAnimation:
		return "missile animation"
	case FightPeriod:
		return "fight period"
	case NightPrompt:
		return "night prompt"
	case Result:
		return "result"
	case GetShip:
		return "get ship"
	case FlagshipSevere:
		return "flagship severe"
	case MapPage:
		return "map page"
	case BattlePage:
		return "battle page"
	case ExercisePage:
		return "exercise page"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Terminal returns the phase that ends a fight in the given mode: the
// screen the game lands on once the fleet is back home.
func Terminal(mode plan.Mode) Phase {
	switch mode {
	case plan.Battle:
		return BattlePage
	case plan.Exercise:
		return ExercisePage
	default:
		return MapPage
	}
}
