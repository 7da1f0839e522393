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
	"sort"
	"time"

	"github.com/OpenWSGR/autowsgr/wsgr/plan"
	"github.com/pkg/errors"
)

// Candidate is one phase the game may show next. A non-zero timeout
// overrides the phase's default recognition timeout.
type Candidate struct {
	Phase   Phase
	Timeout time.Duration
}

// Table maps (phase, last action) to the phases that can legally follow.
// Rows keyed "" apply to every action; rows with action keys fall back to
// the union of the row when the action has no entry of its own.
//
// Terminal pages are not keys: nothing follows them.
type Table map[Phase]map[string][]Candidate

// Resolve returns the candidate successors of the given phase after the
// given action. Phases outside the table are an error.
func (t Table) Resolve(phase Phase, action string) ([]Candidate, error) {
	row, ok := t[phase]
	if !ok {
		return nil, errors.Errorf("no transitions from phase %v", phase)
	}
	if list, ok := row[action]; ok {
		return list, nil
	}
	if list, ok := row[""]; ok {
		return list, nil
	}
	// An action the row does not know keeps the fight alive: anything the
	// phase can ever lead to is a candidate.
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var union []Candidate
	seen := map[Phase]bool{}
	for _, k := range keys {
		for _, c := range row[k] {
			if !seen[c.Phase] {
				seen[c.Phase] = true
				union = append(union, c)
			}
		}
	}
	return union, nil
}

func phases(ps ...Phase) []Candidate {
	cs := make([]Candidate, len(ps))
	for i, p := range ps {
		cs[i] = Candidate{Phase: p}
	}
	return cs
}

// The night prompt's "no" answer lands on the result panel quickly; waiting
// the full result timeout there would stall timeout recovery.
const (
	nightNoResultDelay      = 10 * time.Second
	nightNoResultDelayShort = 7 * time.Second
)

var normalTable = Table{
	Start: {
		"yes": phases(Proceed, FightCondition, SpotEnemy, Formation, MapPage),
	},
	Proceed: {
		"yes": phases(FightCondition, SpotEnemy, Formation, FightPeriod, MapPage),
		"no":  phases(MapPage),
	},
	FightCondition: {
		"": phases(SpotEnemy, Formation, FightPeriod),
	},
	SpotEnemy: {
		"retreat": phases(MapPage),
		"fight":   phases(MissileAnimation, Formation, FightPeriod),
		"detour":  phases(FightCondition, SpotEnemy, Formation),
	},
	MissileAnimation: {
		"": phases(Formation, FightPeriod),
	},
	Formation: {
		"": phases(FightPeriod),
	},
	FightPeriod: {
		"": phases(NightPrompt, Result),
	},
	NightPrompt: {
		"yes": phases(FightPeriod, Result),
		"no":  {{Phase: Result, Timeout: nightNoResultDelay}},
	},
	Result: {
		"": phases(Proceed, GetShip, FlagshipSevere, MapPage),
	},
	GetShip: {
		"": phases(Proceed, MapPage, FlagshipSevere),
	},
	FlagshipSevere: {
		"": phases(MapPage),
	},
}

var battleTable = Table{
	Start: {
		"": phases(Proceed, SpotEnemy, Formation, FightPeriod),
	},
	Proceed: {
		"yes": phases(SpotEnemy, Formation, FightPeriod),
		"no":  phases(BattlePage),
	},
	SpotEnemy: {
		"retreat": phases(BattlePage),
		"fight":   phases(Formation, FightPeriod),
	},
	Formation: {
		"": phases(FightPeriod),
	},
	FightPeriod: {
		"": phases(NightPrompt, Result),
	},
	NightPrompt: {
		"yes": phases(FightPeriod, Result),
		"no":  {{Phase: Result, Timeout: nightNoResultDelayShort}},
	},
	Result: {
		"": phases(BattlePage),
	},
}

var exerciseTable = Table{
	Start: {
		"": phases(SpotEnemy, Formation),
	},
	SpotEnemy: {
		"retreat": phases(ExercisePage),
		"fight":   phases(Formation),
	},
	Formation: {
		"": phases(FightPeriod),
	},
	FightPeriod: {
		"": phases(NightPrompt, Result),
	},
	NightPrompt: {
		"yes": phases(FightPeriod, Result),
		"no":  {{Phase: Result, Timeout: nightNoResultDelayShort}},
	},
	Result: {
		"": phases(ExercisePage),
	},
}

// TableFor returns the phase transition table of the given fight mode.
func TableFor(mode plan.Mode) Table {
	switch mode {
	case plan.Battle:
		return battleTable
	case plan.Exercise:
		return exerciseTable
	default:
		return normalTable
	}
}
