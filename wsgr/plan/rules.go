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

package plan

import (
	"fmt"

	"github.com/OpenWSGR/autowsgr/wsgr/ship"
)

// Op is a numeric comparison operator in a rule condition.
type Op int

const (
	GT Op = iota // >
	GE           // >=
	LT           // <
	LE           // <=
	EQ           // ==
	NE           // !=
)

func (o Op) String() string {
	switch o {
	case GT:
		return ">"
	case GE:
		return ">="
	case LT:
		return "<"
	case LE:
		return "<="
	case EQ:
		return "=="
	case NE:
		return "!="
	default:
		return fmt.Sprintf("Op(%d)", int(o))
	}
}

func (o Op) compare(a, b float64) bool {
	switch o {
	case GT:
		return a > b
	case GE:
		return a >= b
	case LT:
		return a < b
	case LE:
		return a <= b
	case EQ:
		return a == b
	case NE:
		return a != b
	default:
		return false
	}
}

// Condition compares one context field against a literal. A field missing
// from the context reads as zero.
type Condition struct {
	Field string
	Op    Op
	Value float64
}

func (c Condition) String() string {
	return fmt.Sprintf("(%s %v %v)", c.Field, c.Op, c.Value)
}

// holds reports whether the condition is satisfied by the context.
func (c Condition) holds(context map[string]float64) bool {
	return c.Op.compare(context[c.Field], c.Value)
}

// Rule pairs a conjunction of conditions with the action taken when all of
// them hold. A rule with no conditions always matches.
type Rule struct {
	Conditions []Condition
	Action     Action
}

func (r Rule) matches(context map[string]float64) bool {
	for _, c := range r.Conditions {
		if !c.holds(context) {
			return false
		}
	}
	return true
}

// RuleSet is an ordered list of rules. Evaluation returns the action of
// the first rule whose conditions all hold, or NoAction when none match.
type RuleSet []Rule

// Evaluate returns the action of the first matching rule.
func (rs RuleSet) Evaluate(context map[string]float64) Action {
	for _, r := range rs {
		if r.matches(context) {
			return r.Action
		}
	}
	return Action{Kind: NoAction}
}

// formationKey is the context key carrying the recognized enemy formation
// name; formation rules test it for equality with 1.
func formationKey(name string) string {
	return "_formation:" + name
}

// CompositionContext builds the rule context for an enemy composition.
func CompositionContext(counts map[ship.Class]int) map[string]float64 {
	context := make(map[string]float64, len(counts))
	for c, n := range counts {
		context[string(c)] = float64(n)
	}
	return context
}

// FormationContext builds the rule context for a recognized enemy
// formation name.
func FormationContext(name string) map[string]float64 {
	return map[string]float64{formationKey(name): 1}
}
