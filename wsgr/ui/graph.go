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

package ui

import (
	"context"
	"fmt"

	"github.com/OpenWSGR/autowsgr/core/fault"
	"github.com/OpenWSGR/autowsgr/core/log"
	"github.com/OpenWSGR/autowsgr/wsgr/device"
)

const (
	// ErrNoPath is returned by Navigate when the graph has no route
	// between the pages.
	ErrNoPath = fault.Const("No path between pages")
	// ErrUnknownPage is returned when the current screen matches no
	// registered page.
	ErrUnknownPage = fault.Const("Current page not recognized")
)

// Action performs the interaction of one navigation edge: the click or
// clicks, any intermediate animation delays, and the arrival verification.
type Action func(ctx context.Context, d device.Device) error

// Edge is one directed move in the navigation graph.
type Edge struct {
	From, To string
	Action   Action
}

// Graph is the directed page-navigation graph. Edges are added at startup
// against a registry of known pages.
type Graph struct {
	registry *Registry
	edges    map[string][]Edge
}

// NewGraph returns an empty graph over the registry's pages.
func NewGraph(r *Registry) *Graph {
	return &Graph{registry: r, edges: map[string][]Edge{}}
}

// Registry returns the page registry the graph was built over.
func (g *Graph) Registry() *Registry { return g.registry }

// AddEdge connects from to to. It panics if either page is unregistered or
// the action is nil: the graph is fixed program structure.
func (g *Graph) AddEdge(from, to string, action Action) {
	if g.registry.Checker(from) == nil {
		panic(fmt.Errorf("AddEdge %s -> %s: unregistered page %s", from, to, from))
	}
	if g.registry.Checker(to) == nil {
		panic(fmt.Errorf("AddEdge %s -> %s: unregistered page %s", from, to, to))
	}
	if action == nil {
		panic(fmt.Errorf("AddEdge %s -> %s: nil action", from, to))
	}
	g.edges[from] = append(g.edges[from], Edge{From: from, To: to, Action: action})
}

// Path returns the shortest edge list from from to to, found breadth-first.
// from == to gives an empty path; an unreachable target gives nil.
func (g *Graph) Path(from, to string) []Edge {
	if from == to {
		return []Edge{}
	}
	type visit struct {
		name string
		path []Edge
	}
	seen := map[string]bool{from: true}
	queue := []visit{{name: from}}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, e := range g.edges[v.name] {
			if seen[e.To] {
				continue
			}
			path := append(append([]Edge{}, v.path...), e)
			if e.To == to {
				return path
			}
			seen[e.To] = true
			queue = append(queue, visit{name: e.To, path: path})
		}
	}
	return nil
}

// Navigate walks the device from from to to, running each edge's action in
// turn. Edge actions verify their own arrival, so when Navigate returns nil
// the device is on the target page.
func (g *Graph) Navigate(ctx context.Context, d device.Device, from, to string) error {
	path := g.Path(from, to)
	if path == nil {
		return log.Errf(ctx, ErrNoPath, "%v -> %v", from, to)
	}
	for _, e := range path {
		log.D(ctx, "Navigating %v -> %v", e.From, e.To)
		if err := e.Action(ctx, d); err != nil {
			return err
		}
	}
	return nil
}

// NavigateCurrent identifies the current page from a fresh screenshot and
// navigates from it to to.
func (g *Graph) NavigateCurrent(ctx context.Context, d device.Device, to string) error {
	s, err := d.Screenshot(ctx)
	if err != nil {
		return err
	}
	from, ok := g.registry.CurrentPage(ctx, s)
	if !ok {
		return log.Err(ctx, ErrUnknownPage, "")
	}
	return g.Navigate(ctx, d, from, to)
}
