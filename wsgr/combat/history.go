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
	"fmt"
	"strings"

	"github.com/OpenWSGR/autowsgr/wsgr/ship"
)

// Event is one recognized phase and the decision taken on it.
type Event struct {
	Phase Phase
	// Node is the map node the fleet was at, "" outside normal mode.
	Node string
	// Action is the decision label: "yes", "no", "fight", "retreat",
	// "detour", a formation number, "SL", or "return" for terminals.
	Action string
	// Grade is the battle grade read off a result panel.
	Grade string
	// Ship is the drop name read off a get-ship panel.
	Ship string
	// Formation is the enemy formation recognized at spot-enemy.
	Formation string
	// Enemies is the enemy composition recognized at spot-enemy.
	Enemies map[ship.Class]int
	// Stats is the fleet damage readout taken at a result panel.
	Stats []ship.Damage
}

func (e Event) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v", e.Phase)
	if e.Node != "" {
		fmt.Fprintf(&b, "@%s", e.Node)
	}
	if e.Action != "" {
		fmt.Fprintf(&b, " %s", e.Action)
	}
	if e.Grade != "" {
		fmt.Fprintf(&b, " grade=%s", e.Grade)
	}
	if e.Ship != "" {
		fmt.Fprintf(&b, " ship=%s", e.Ship)
	}
	return b.String()
}

// History is the append-only log of a single fight. It is written by the
// engine while the fight runs and read-only afterwards.
type History struct {
	events []Event
}

func (h *History) append(e Event) {
	h.events = append(h.events, e)
}

// Len returns the number of recorded events.
func (h *History) Len() int { return len(h.events) }

// Events returns a copy of the recorded events, in order.
func (h *History) Events() []Event {
	out := make([]Event, len(h.events))
	copy(out, h.events)
	return out
}

// Phases returns just the phase of each recorded event, in order.
func (h *History) Phases() []Phase {
	out := make([]Phase, len(h.events))
	for i, e := range h.events {
		out[i] = e.Phase
	}
	return out
}

// Last returns the most recent event, if any.
func (h *History) Last() (Event, bool) {
	if len(h.events) == 0 {
		return Event{}, false
	}
	return h.events[len(h.events)-1], true
}
