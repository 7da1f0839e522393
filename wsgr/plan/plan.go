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
	"io"
	"os"

	"github.com/OpenWSGR/autowsgr/core/fault"
	"github.com/OpenWSGR/autowsgr/wsgr/ship"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Mode selects the engagement flavor a plan drives. Each mode has its own
// transition table and its own terminal page.
type Mode string

const (
	// Normal is a sortie on a campaign map with node movement.
	Normal = Mode("normal")
	// Battle is the daily battle (战役): a single fixed engagement.
	Battle = Mode("battle")
	// Exercise is a player-versus-player exercise (演习).
	Exercise = Mode("exercise")
)

func (m Mode) valid() bool {
	switch m {
	case Normal, Battle, Exercise:
		return true
	}
	return false
}

func (m *Mode) UnmarshalYAML(node *yaml.Node) error {
	v := Mode(node.Value)
	if !v.valid() {
		return errors.Errorf("unknown mode %q (want normal, battle or exercise)", node.Value)
	}
	*m = v
	return nil
}

// ID holds a chapter or map identifier. Plans write them as bare ints for
// regular maps and as strings for event maps, so both forms decode.
type ID string

func (i *ID) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return errors.New("chapter and map ids must be scalars")
	}
	*i = ID(node.Value)
	return nil
}

func (i ID) String() string { return string(i) }

// SlotVector is a per-fleet-slot integer vector. It decodes from either a
// single scalar, broadcast to all six slots, or an explicit six-element list.
type SlotVector [ship.Slots]int

func (v *SlotVector) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var n int
		if err := node.Decode(&n); err != nil {
			return err
		}
		*v = Broadcast(n)
		return nil
	}
	var list []int
	if err := node.Decode(&list); err != nil {
		return err
	}
	if len(list) != ship.Slots {
		return errors.Errorf("slot vector has %d entries, want %d", len(list), ship.Slots)
	}
	copy(v[:], list)
	return nil
}

// Broadcast returns the vector with n in every slot.
func Broadcast(n int) SlotVector {
	var v SlotVector
	for i := range v {
		v[i] = n
	}
	return v
}

// Thresholds returns the vector as a slice for ship.CheckBlood.
func (v SlotVector) Thresholds() []int { return v[:] }

// RuleList decodes a YAML list of [condition, action] pairs into parsed
// rules, so a malformed condition fails the plan load rather than a fight.
type RuleList RuleSet

func (l *RuleList) UnmarshalYAML(node *yaml.Node) error {
	pairs, err := rulePairs(node)
	if err != nil {
		return err
	}
	rules := make(RuleList, 0, len(pairs))
	for _, p := range pairs {
		r, err := ParseRule(p[0], p[1])
		if err != nil {
			return err
		}
		rules = append(rules, r)
	}
	*l = rules
	return nil
}

// FormationRuleList decodes a YAML list of [formation name, action] pairs.
type FormationRuleList RuleSet

func (l *FormationRuleList) UnmarshalYAML(node *yaml.Node) error {
	pairs, err := rulePairs(node)
	if err != nil {
		return err
	}
	rules := make(FormationRuleList, 0, len(pairs))
	for _, p := range pairs {
		action, err := ParseAction(p[1])
		if err != nil {
			return err
		}
		rules = append(rules, FormationRule(p[0], action))
	}
	*l = rules
	return nil
}

func rulePairs(node *yaml.Node) ([][2]string, error) {
	var raw [][]string
	if err := node.Decode(&raw); err != nil {
		return nil, err
	}
	pairs := make([][2]string, 0, len(raw))
	for i, p := range raw {
		if len(p) != 2 {
			return nil, errors.Errorf("rule %d has %d elements, want [condition, action]", i, len(p))
		}
		pairs = append(pairs, [2]string{p[0], p[1]})
	}
	return pairs, nil
}

// NodeDecision configures the engine's choices at one map node. Plans give
// a default decision and may override it per node; overrides only replace
// the keys they mention.
type NodeDecision struct {
	// Formation is the formation id (1..5) selected on the formation page.
	Formation int `yaml:"formation"`
	// Night pursues night battle when prompted.
	Night bool `yaml:"night"`
	// Proceed advances to the next node after a result, health permitting.
	Proceed bool `yaml:"proceed"`
	// ProceedStop stops the sortie when any slot's damage reaches the
	// slot's threshold. -1 ignores the slot.
	ProceedStop SlotVector `yaml:"proceed_stop"`
	// EnemyRules map the recognized enemy composition to an action.
	EnemyRules RuleList `yaml:"enemy_rules"`
	// FormationRules map the recognized enemy formation to an action.
	// They take priority over EnemyRules.
	FormationRules FormationRuleList `yaml:"enemy_formation_rules"`
	// Detour requests the detour branch when the node offers one.
	Detour bool `yaml:"detour"`
	// LongMissileSupport toggles the missile support switch before fighting.
	LongMissileSupport bool `yaml:"long_missile_support"`

	SLWhenSpotEnemyFails bool `yaml:"SL_when_spot_enemy_fails"`
	SLWhenDetourFails    bool `yaml:"SL_when_detour_fails"`
	SLWhenEnterFight     bool `yaml:"SL_when_enter_fight"`

	// FormationWhenSpotEnemyFails overrides Formation when the spot-enemy
	// stage was skipped. 0 falls back to Formation.
	FormationWhenSpotEnemyFails int `yaml:"formation_when_spot_enemy_fails"`
}

// DefaultDecision is the decision used where a plan specifies nothing:
// double line, no night pursuit, keep proceeding, never stop on damage.
func DefaultDecision() NodeDecision {
	return NodeDecision{
		Formation:   2,
		Proceed:     true,
		ProceedStop: Broadcast(-1),
	}
}

// Evaluate resolves the action for a recognized enemy fleet. Formation
// rules run first; the enemy composition rules only apply if no formation
// rule matched.
func (d *NodeDecision) Evaluate(enemies map[ship.Class]int, formation string) Action {
	if formation != "" {
		if a := RuleSet(d.FormationRules).Evaluate(FormationContext(formation)); a.Kind != NoAction {
			return a
		}
	}
	return RuleSet(d.EnemyRules).Evaluate(CompositionContext(enemies))
}

// SpotFailFormation is the formation to select when the spot-enemy stage
// was skipped by the game.
func (d *NodeDecision) SpotFailFormation() int {
	if d.FormationWhenSpotEnemyFails != 0 {
		return d.FormationWhenSpotEnemyFails
	}
	return d.Formation
}

func (d *NodeDecision) validate(node string) error {
	if d.Formation < 1 || d.Formation > FormationCount {
		return errors.Errorf("node %s: formation %d outside 1..%d", node, d.Formation, FormationCount)
	}
	if f := d.FormationWhenSpotEnemyFails; f != 0 && (f < 1 || f > FormationCount) {
		return errors.Errorf("node %s: formation_when_spot_enemy_fails %d outside 1..%d", node, f, FormationCount)
	}
	return nil
}

// ErrNoPlanName is returned when a plan file has no name.
const ErrNoPlanName = fault.Const("Combat plan has no name")

// Plan is a loaded combat plan: which map to fight, with which fleet, and
// what to decide at every node. Plans are immutable once loaded.
type Plan struct {
	Name           string
	Mode           Mode
	Chapter        ID
	Map            ID
	FleetID        int
	Fleet          []string
	RepairMode     SlotVector
	FightCondition int
	SelectedNodes  []string

	defaults NodeDecision
	nodes    map[string]NodeDecision
}

type planSchema struct {
	Name           string               `yaml:"name"`
	Mode           Mode                 `yaml:"mode"`
	Chapter        ID                   `yaml:"chapter"`
	Map            ID                   `yaml:"map"`
	FleetID        int                  `yaml:"fleet_id"`
	Fleet          []string             `yaml:"fleet"`
	RepairMode     *SlotVector          `yaml:"repair_mode"`
	FightCondition int                  `yaml:"fight_condition"`
	SelectedNodes  []string             `yaml:"selected_nodes"`
	NodeDefaults   yaml.Node            `yaml:"node_defaults"`
	NodeArgs       map[string]yaml.Node `yaml:"node_args"`
}

func (p *Plan) UnmarshalYAML(node *yaml.Node) error {
	s := planSchema{FleetID: 1, FightCondition: 1}
	if err := node.Decode(&s); err != nil {
		return err
	}

	defaults := DefaultDecision()
	if !s.NodeDefaults.IsZero() {
		if err := s.NodeDefaults.Decode(&defaults); err != nil {
			return err
		}
	}

	nodes := make(map[string]NodeDecision, len(s.NodeArgs))
	for name, raw := range s.NodeArgs {
		d := defaults
		if err := raw.Decode(&d); err != nil {
			return errors.Wrapf(err, "node %s", name)
		}
		nodes[name] = d
	}

	repair := Broadcast(2)
	if s.RepairMode != nil {
		repair = *s.RepairMode
	}

	*p = Plan{
		Name:           s.Name,
		Mode:           s.Mode,
		Chapter:        s.Chapter,
		Map:            s.Map,
		FleetID:        s.FleetID,
		Fleet:          s.Fleet,
		RepairMode:     repair,
		FightCondition: s.FightCondition,
		SelectedNodes:  s.SelectedNodes,
		defaults:       defaults,
		nodes:          nodes,
	}
	return p.validate()
}

func (p *Plan) validate() error {
	if p.Name == "" {
		return ErrNoPlanName
	}
	if !p.Mode.valid() {
		return errors.Errorf("plan %s: missing mode", p.Name)
	}
	if p.FightCondition < 1 || p.FightCondition > 5 {
		return errors.Errorf("plan %s: fight_condition %d outside 1..5", p.Name, p.FightCondition)
	}
	if err := p.defaults.validate("defaults"); err != nil {
		return errors.Wrapf(err, "plan %s", p.Name)
	}
	for name, d := range p.nodes {
		if err := d.validate(name); err != nil {
			return errors.Wrapf(err, "plan %s", p.Name)
		}
	}
	return nil
}

// Node returns the decision for the named map node, falling back to the
// plan's defaults for nodes without explicit arguments.
func (p *Plan) Node(name string) NodeDecision {
	if d, ok := p.nodes[name]; ok {
		return d
	}
	return p.defaults
}

// Selected reports whether fighting at the named node is allowed. An empty
// whitelist allows every node.
func (p *Plan) Selected(name string) bool {
	if len(p.SelectedNodes) == 0 {
		return true
	}
	for _, n := range p.SelectedNodes {
		if n == name {
			return true
		}
	}
	return false
}

// NodeNames returns the nodes with explicit per-node arguments.
func (p *Plan) NodeNames() []string {
	names := make([]string, 0, len(p.nodes))
	for n := range p.nodes {
		names = append(names, n)
	}
	return names
}

// Read decodes a single combat plan from YAML.
func Read(r io.Reader) (*Plan, error) {
	bytes, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	p := &Plan{}
	if err := yaml.Unmarshal(bytes, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Load reads a combat plan from a YAML file.
func Load(path string) (*Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	p, err := Read(f)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return p, nil
}
