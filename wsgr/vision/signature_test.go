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

package vision_test

import (
	"testing"

	"github.com/OpenWSGR/autowsgr/core/assert"
	"github.com/OpenWSGR/autowsgr/core/log"
	"github.com/OpenWSGR/autowsgr/wsgr/vision"
)

var (
	red   = vision.RGB(200, 30, 30)
	green = vision.RGB(30, 200, 30)
	blue  = vision.RGB(30, 30, 200)
	white = vision.RGB(255, 255, 255)
)

// quadrants returns a 40×20 screen split into four 20×10 blocks colored
// red, green (top) and blue, white (bottom).
func quadrants() *vision.Screen {
	s := vision.NewScreen(40, 20)
	for y := 0; y < 20; y++ {
		for x := 0; x < 40; x++ {
			switch {
			case x < 20 && y < 10:
				s.SetPixelAt(x, y, red)
			case y < 10:
				s.SetPixelAt(x, y, green)
			case x < 20:
				s.SetPixelAt(x, y, blue)
			default:
				s.SetPixelAt(x, y, white)
			}
		}
	}
	return s
}

func rule(x, y float64, c vision.Color) vision.PixelRule {
	return vision.PixelRule{X: x, Y: y, Color: c, Tolerance: 10}
}

func TestCheckAll(t *testing.T) {
	ctx := log.Testing(t)
	s := quadrants()

	hit := vision.AllOf("quadrants",
		rule(0.25, 0.25, red),
		rule(0.75, 0.25, green),
		rule(0.25, 0.75, blue),
	)
	res := hit.Check(s)
	assert.For(ctx, "matched").ThatBoolean(res.Matched).IsTrue()
	assert.For(ctx, "count").ThatInteger(res.MatchedCount).Equals(3)
	assert.For(ctx, "total").ThatInteger(res.TotalCount).Equals(3)

	// The first rule misses, so evaluation stops there.
	miss := vision.AllOf("wrong",
		rule(0.25, 0.25, white),
		rule(0.75, 0.25, green),
	)
	res = miss.Check(s)
	assert.For(ctx, "matched").ThatBoolean(res.Matched).IsFalse()
	assert.For(ctx, "count").ThatInteger(res.MatchedCount).Equals(0)
}

func TestCheckAny(t *testing.T) {
	ctx := log.Testing(t)
	s := quadrants()

	// The first rule hits, so the second is never evaluated.
	sig := vision.AnyOf("either",
		rule(0.25, 0.25, red),
		rule(0.75, 0.25, green),
	)
	res := sig.Check(s)
	assert.For(ctx, "matched").ThatBoolean(res.Matched).IsTrue()
	assert.For(ctx, "count").ThatInteger(res.MatchedCount).Equals(1)

	res = vision.AnyOf("neither", rule(0.25, 0.25, white), rule(0.75, 0.25, blue)).Check(s)
	assert.For(ctx, "matched").ThatBoolean(res.Matched).IsFalse()
	assert.For(ctx, "count").ThatInteger(res.MatchedCount).Equals(0)
}

func TestCheckCount(t *testing.T) {
	ctx := log.Testing(t)
	s := quadrants()

	rules := []vision.PixelRule{
		rule(0.25, 0.25, red),
		rule(0.75, 0.25, blue), // miss
		rule(0.25, 0.75, blue),
		rule(0.75, 0.75, white),
	}
	assert.For(ctx, "two of four").ThatBoolean(vision.AtLeast("sig", 2, rules...).Check(s).Matched).IsTrue()
	assert.For(ctx, "three of four").ThatBoolean(vision.AtLeast("sig", 3, rules...).Check(s).Matched).IsTrue()
	assert.For(ctx, "four of four").ThatBoolean(vision.AtLeast("sig", 4, rules...).Check(s).Matched).IsFalse()
}

func TestCheckDetailed(t *testing.T) {
	ctx := log.Testing(t)
	s := quadrants()

	sig := vision.AllOf("detail",
		rule(0.25, 0.25, white), // miss
		rule(0.75, 0.25, green),
	)
	res := sig.CheckDetailed(s)
	assert.For(ctx, "matched").ThatBoolean(res.Matched).IsFalse()
	assert.For(ctx, "details").ThatSlice(res.Details).IsLength(2)
	assert.For(ctx, "count").ThatInteger(res.MatchedCount).Equals(1)
	assert.For(ctx, "first").ThatBoolean(res.Details[0].Matched).IsFalse()
	assert.For(ctx, "first actual").That(res.Details[0].Actual).Equals(red)
	assert.For(ctx, "second").ThatBoolean(res.Details[1].Matched).IsTrue()
	assert.For(ctx, "second distance").ThatFloat(res.Details[1].Distance).Equals(0, 0.001)
}

func TestIdentifyOrder(t *testing.T) {
	ctx := log.Testing(t)
	s := quadrants()

	a := vision.AllOf("A", rule(0.25, 0.25, red), rule(0.75, 0.25, green))
	b := vision.AllOf("B", rule(0.25, 0.25, red), rule(0.75, 0.25, white), rule(0.25, 0.75, blue))
	c := vision.AnyOf("C", rule(0.75, 0.75, white))

	sig, ok := vision.Identify(s, a, b, c)
	assert.For(ctx, "identified").ThatBoolean(ok).IsTrue()
	assert.For(ctx, "name").ThatString(sig.Name).Equals("A")

	// Break A's first rule: B stays broken, C takes over.
	for y := 0; y < 10; y++ {
		for x := 0; x < 20; x++ {
			s.SetPixelAt(x, y, white)
		}
	}
	sig, ok = vision.Identify(s, a, b, c)
	assert.For(ctx, "identified").ThatBoolean(ok).IsTrue()
	assert.For(ctx, "name").ThatString(sig.Name).Equals("C")

	all := vision.IdentifyAll(s, a, b, c)
	assert.For(ctx, "all").ThatSlice(all).IsLength(1)
}

func TestIdentifyResolutionIndependence(t *testing.T) {
	ctx := log.Testing(t)
	sig := vision.AllOf("quadrants",
		rule(0.25, 0.25, red),
		rule(0.75, 0.25, green),
		rule(0.25, 0.75, blue),
		rule(0.75, 0.75, white),
	)

	small := quadrants()
	big := vision.NewScreen(160, 80)
	for y := 0; y < 80; y++ {
		for x := 0; x < 160; x++ {
			big.SetPixelAt(x, y, small.RGBAt(float64(x)/160, float64(y)/80))
		}
	}

	assert.For(ctx, "small").ThatBoolean(sig.Check(small).Matched).IsTrue()
	assert.For(ctx, "big").ThatBoolean(sig.Check(big).Matched).IsTrue()
}

func TestSignatureValidation(t *testing.T) {
	ctx := log.Testing(t)
	for _, test := range []struct {
		name string
		make func()
	}{
		{"no rules", func() { vision.AllOf("empty") }},
		{"coordinate", func() { vision.AllOf("bad", rule(1.5, 0.5, red)) }},
		{"tolerance", func() { vision.AllOf("bad", vision.PixelRule{X: 0.5, Y: 0.5, Color: red, Tolerance: -1}) }},
		{"threshold", func() { vision.AtLeast("bad", 3, rule(0.5, 0.5, red)) }},
	} {
		func() {
			defer func() {
				assert.For(ctx, "%s panic", test.name).That(recover()).IsNotNil()
			}()
			test.make()
		}()
	}
}

func TestClassifyColor(t *testing.T) {
	ctx := log.Testing(t)
	s := quadrants()
	refs := map[string]vision.Color{
		"normal": vision.RGB(35, 195, 35), // close to green
		"severe": vision.RGB(200, 30, 30), // exactly red
	}

	name, ok := vision.ClassifyColor(s, 0.25, 0.25, refs, 30)
	assert.For(ctx, "red ok").ThatBoolean(ok).IsTrue()
	assert.For(ctx, "red name").ThatString(name).Equals("severe")

	name, ok = vision.ClassifyColor(s, 0.75, 0.25, refs, 30)
	assert.For(ctx, "green ok").ThatBoolean(ok).IsTrue()
	assert.For(ctx, "green name").ThatString(name).Equals("normal")

	_, ok = vision.ClassifyColor(s, 0.75, 0.75, refs, 30)
	assert.For(ctx, "white ok").ThatBoolean(ok).IsFalse()
}
