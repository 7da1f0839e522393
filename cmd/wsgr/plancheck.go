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

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/OpenWSGR/autowsgr/core/app"
	"github.com/OpenWSGR/autowsgr/core/log"
	"github.com/OpenWSGR/autowsgr/wsgr/plan"
)

type plancheckVerb struct{ PlancheckFlags }

func init() {
	verb := &plancheckVerb{}
	app.AddVerb(&app.Verb{
		Name:       "plancheck",
		ShortHelp:  "Validates a combat plan and prints its normalized decisions",
		ShortUsage: "<plan.yaml>",
		Auto:       verb,
	})
}

func (verb *plancheckVerb) Run(ctx context.Context, flags flag.FlagSet) error {
	if flags.NArg() != 1 {
		app.Usage(ctx, "Exactly one plan file expected, got %d", flags.NArg())
		return nil
	}

	p, err := plan.Load(flags.Arg(0))
	if err != nil {
		return log.Errf(ctx, err, "Loading the plan %v", flags.Arg(0))
	}

	w := os.Stdout
	fmt.Fprintf(w, "plan:           %s\n", p.Name)
	fmt.Fprintf(w, "mode:           %s\n", p.Mode)
	if p.Mode == plan.Normal {
		fmt.Fprintf(w, "map:            %s-%s\n", p.Chapter, p.Map)
	} else {
		fmt.Fprintf(w, "slot:           %s\n", p.Map)
	}
	fmt.Fprintf(w, "fleet:          %d\n", p.FleetID)
	if len(p.Fleet) > 0 {
		fmt.Fprintf(w, "ships:          %s\n", strings.Join(p.Fleet, ", "))
	}
	fmt.Fprintf(w, "fight cond.:    %d\n", p.FightCondition)
	fmt.Fprintf(w, "repair:         %v\n", p.RepairMode.Thresholds())
	if len(p.SelectedNodes) > 0 {
		fmt.Fprintf(w, "selected nodes: %s\n", strings.Join(p.SelectedNodes, ", "))
	} else {
		fmt.Fprintf(w, "selected nodes: all\n")
	}

	fmt.Fprintf(w, "\nnode defaults:\n")
	printDecision(w, p.Node(""))
	names := p.NodeNames()
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "\nnode %s:\n", name)
		printDecision(w, p.Node(name))
	}

	return verb.checkMap(ctx, p)
}

// checkMap cross-checks the plan against its node-data file when a map
// directory was given.
func (verb *plancheckVerb) checkMap(ctx context.Context, p *plan.Plan) error {
	if verb.Maps == "" || p.Mode != plan.Normal {
		return nil
	}
	path := plan.MapPath(verb.Maps, p.Chapter, p.Map)
	maps, err := plan.LoadMap(path)
	if err != nil {
		return log.Errf(ctx, err, "Loading the map data %v", path)
	}
	fmt.Fprintf(os.Stdout, "\nmap data:       %s (%d nodes)\n", path, len(maps.Names()))
	for _, name := range append(append([]string{}, p.SelectedNodes...), p.NodeNames()...) {
		if _, ok := maps.Node(name); !ok {
			log.W(ctx, "Node %v is not in the map data", name)
		}
	}
	return nil
}

func printDecision(w io.Writer, d plan.NodeDecision) {
	fmt.Fprintf(w, "  formation:      %d\n", d.Formation)
	fmt.Fprintf(w, "  night:          %v\n", d.Night)
	fmt.Fprintf(w, "  proceed:        %v\n", d.Proceed)
	fmt.Fprintf(w, "  proceed stop:   %v\n", d.ProceedStop.Thresholds())
	if d.Detour {
		fmt.Fprintf(w, "  detour:         true\n")
	}
	if d.LongMissileSupport {
		fmt.Fprintf(w, "  missile:        true\n")
	}
	if d.SLWhenSpotEnemyFails || d.SLWhenDetourFails || d.SLWhenEnterFight {
		fmt.Fprintf(w, "  SL when:        spot fails %v, detour fails %v, enter fight %v\n",
			d.SLWhenSpotEnemyFails, d.SLWhenDetourFails, d.SLWhenEnterFight)
	}
	if f := d.FormationWhenSpotEnemyFails; f != 0 {
		fmt.Fprintf(w, "  spot-fail form: %d\n", f)
	}
	for _, r := range d.FormationRules {
		fmt.Fprintf(w, "  formation rule: %s -> %v\n", conditions(r), r.Action)
	}
	for _, r := range d.EnemyRules {
		fmt.Fprintf(w, "  enemy rule:     %s -> %v\n", conditions(r), r.Action)
	}
}

func conditions(r plan.Rule) string {
	parts := make([]string, len(r.Conditions))
	for i, c := range r.Conditions {
		parts[i] = c.String()
	}
	return strings.Join(parts, " and ")
}
