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

package ui_test

import (
	"context"
	"testing"

	"github.com/OpenWSGR/autowsgr/core/assert"
	"github.com/OpenWSGR/autowsgr/core/fault"
	"github.com/OpenWSGR/autowsgr/core/log"
	"github.com/OpenWSGR/autowsgr/wsgr/device"
	"github.com/OpenWSGR/autowsgr/wsgr/device/devstub"
	"github.com/OpenWSGR/autowsgr/wsgr/ui"
	"github.com/OpenWSGR/autowsgr/wsgr/vision"
)

// diamond builds a graph a -> b -> d, a -> c, with e unreachable. Taken
// edges are appended to walked.
func diamond(walked *[]string) *ui.Graph {
	r := ui.NewRegistry()
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		r.Register(name, func(*vision.Screen) bool { return false })
	}
	r.Seal()

	g := ui.NewGraph(r)
	edge := func(from, to string) {
		g.AddEdge(from, to, func(ctx context.Context, d device.Device) error {
			*walked = append(*walked, from+">"+to)
			return nil
		})
	}
	edge("a", "b")
	edge("b", "d")
	edge("a", "c")
	return g
}

func TestGraphPath(t *testing.T) {
	ctx := log.Testing(t)

	var walked []string
	g := diamond(&walked)

	path := g.Path("a", "d")
	assert.For(ctx, "a->d").ThatSlice(path).IsLength(2)
	assert.For(ctx, "a->d from").ThatString(path[0].From).Equals("a")
	assert.For(ctx, "a->d via").ThatString(path[1].From).Equals("b")
	assert.For(ctx, "a->d to").ThatString(path[1].To).Equals("d")

	assert.For(ctx, "a->c").ThatSlice(g.Path("a", "c")).IsLength(1)

	same := g.Path("a", "a")
	assert.For(ctx, "a->a non-nil").That(same).IsNotNil()
	assert.For(ctx, "a->a empty").ThatSlice(same).IsEmpty()

	assert.For(ctx, "a->e").That(g.Path("a", "e")).IsNil()
	assert.For(ctx, "d->a").That(g.Path("d", "a")).IsNil()
}

func TestGraphNavigate(t *testing.T) {
	ctx := log.Testing(t)

	var walked []string
	g := diamond(&walked)
	d := devstub.New()

	err := g.Navigate(ctx, d, "a", "d")
	assert.For(ctx, "err").ThatError(err).Succeeded()
	assert.For(ctx, "walked").ThatSlice(walked).Equals([]string{"a>b", "b>d"})
}

func TestGraphNavigateNoPath(t *testing.T) {
	ctx := log.Testing(t)

	var walked []string
	g := diamond(&walked)
	d := devstub.New()

	err := g.Navigate(ctx, d, "a", "e")
	assert.For(ctx, "err").ThatError(err).HasCause(ui.ErrNoPath)
	assert.For(ctx, "walked").ThatSlice(walked).IsEmpty()
}

func TestGraphNavigateStopsOnEdgeError(t *testing.T) {
	ctx := log.Testing(t)

	const boom = fault.Const("edge failed")

	r := ui.NewRegistry()
	r.Register("a", func(*vision.Screen) bool { return false })
	r.Register("b", func(*vision.Screen) bool { return false })
	r.Register("c", func(*vision.Screen) bool { return false })
	r.Seal()

	var walked []string
	g := ui.NewGraph(r)
	g.AddEdge("a", "b", func(context.Context, device.Device) error {
		walked = append(walked, "a>b")
		return boom
	})
	g.AddEdge("b", "c", func(context.Context, device.Device) error {
		walked = append(walked, "b>c")
		return nil
	})

	err := g.Navigate(ctx, devstub.New(), "a", "c")
	assert.For(ctx, "err").ThatError(err).Equals(boom)
	assert.For(ctx, "walked").ThatSlice(walked).Equals([]string{"a>b"})
}

func TestGraphNavigateCurrent(t *testing.T) {
	ctx := log.Testing(t)

	lobby := marked(0.1, 0.1, amber)

	r := ui.NewRegistry()
	r.Register("lobby", probeChecker(0.1, 0.1, amber))
	r.Register("shop", probeChecker(0.2, 0.2, teal))
	r.Seal()

	var walked []string
	g := ui.NewGraph(r)
	g.AddEdge("lobby", "shop", func(context.Context, device.Device) error {
		walked = append(walked, "lobby>shop")
		return nil
	})

	d := devstub.New(lobby)
	err := g.NavigateCurrent(ctx, d, "shop")
	assert.For(ctx, "err").ThatError(err).Succeeded()
	assert.For(ctx, "walked").ThatSlice(walked).Equals([]string{"lobby>shop"})

	blank := devstub.New(newScreen())
	err = g.NavigateCurrent(ctx, blank, "shop")
	assert.For(ctx, "unknown page").ThatError(err).HasCause(ui.ErrUnknownPage)
}

func TestGraphConstructionPanics(t *testing.T) {
	r := ui.NewRegistry()
	r.Register("a", func(*vision.Screen) bool { return false })
	r.Seal()
	g := ui.NewGraph(r)

	expectPanic(t, "unknown from", func() {
		g.AddEdge("nope", "a", func(context.Context, device.Device) error { return nil })
	})
	expectPanic(t, "unknown to", func() {
		g.AddEdge("a", "nope", func(context.Context, device.Device) error { return nil })
	})
	expectPanic(t, "nil action", func() {
		g.AddEdge("a", "a", nil)
	})
}
