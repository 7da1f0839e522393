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

// Package plan holds battle plans: per-node decisions, the rule engine
// that picks combat actions from enemy compositions and formations, and
// the map node data fleets navigate by.
package plan

import "fmt"

// ActionKind discriminates the combat actions a rule can yield.
type ActionKind int

const (
	// NoAction leaves the decision to the node defaults.
	NoAction ActionKind = iota
	// Retreat withdraws from the encounter and ends the fight.
	Retreat
	// Detour skips the encounter, moving to an adjacent node.
	Detour
	// SetFormation fights using the formation carried by the action.
	SetFormation
)

// Action is the outcome of evaluating combat rules. Formation is only
// meaningful for SetFormation actions.
type Action struct {
	Kind      ActionKind
	Formation int
}

func (a Action) String() string {
	switch a.Kind {
	case NoAction:
		return "no action"
	case Retreat:
		return "retreat"
	case Detour:
		return "detour"
	case SetFormation:
		return fmt.Sprintf("formation %d", a.Formation)
	default:
		return fmt.Sprintf("ActionKind(%d)", int(a.Kind))
	}
}

// FormationCount is the number of selectable formations. Formation ids in
// plans and actions are 1 based.
const FormationCount = 5
