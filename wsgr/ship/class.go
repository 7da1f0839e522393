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

// Package ship holds the ship vocabulary shared by the recognizers, the
// combat rules and the damage readouts.
package ship

// Class is a ship type token. The set is closed: it is exactly the
// vocabulary the enemy recognizer emits and the only identifiers the combat
// rule grammar accepts.
type Class string

const (
	// DD is a destroyer.
	DD = Class("DD")
	// CL is a light cruiser.
	CL = Class("CL")
	// CA is a heavy cruiser.
	CA = Class("CA")
	// CVL is a light aircraft carrier.
	CVL = Class("CVL")
	// CV is an aircraft carrier.
	CV = Class("CV")
	// AV is a seaplane carrier.
	AV = Class("AV")
	// BB is a battleship.
	BB = Class("BB")
	// BC is a battlecruiser.
	BC = Class("BC")
	// SS is a submarine.
	SS = Class("SS")
	// NAP is a supply ship.
	NAP = Class("NAP")
	// NO marks an empty enemy slot.
	NO = Class("NO")
	// ALL is the pseudo class carrying the total enemy count in rule
	// contexts. It is never emitted by the recognizer.
	ALL = Class("ALL")
)

// Classes lists every real ship class, in recognizer vocabulary order.
var Classes = []Class{DD, CL, CA, CVL, CV, AV, BB, BC, SS, NAP, NO}

// ParseClass returns the class for a recognizer or rule token.
func ParseClass(token string) (Class, bool) {
	switch c := Class(token); c {
	case DD, CL, CA, CVL, CV, AV, BB, BC, SS, NAP, NO, ALL:
		return c, true
	}
	return "", false
}

// Count tallies the given slot tokens into a rule context composition,
// skipping empty slots and filling in the ALL total.
func Count(slots []Class) map[Class]int {
	counts := map[Class]int{}
	for _, c := range slots {
		if c == NO || c == "" {
			continue
		}
		counts[c]++
		counts[ALL]++
	}
	return counts
}
