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
	"bytes"
	"image/png"
	"math"
	"testing"

	"github.com/OpenWSGR/autowsgr/core/assert"
	"github.com/OpenWSGR/autowsgr/core/log"
	"github.com/OpenWSGR/autowsgr/wsgr/vision"
)

// textured returns a w × h screen with a deterministic non-repeating
// pattern, so embedded patches have a unique best placement.
func textured(w, h int, seed uint32) *vision.Screen {
	s := vision.NewScreen(w, h)
	state := seed
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			state = state*1664525 + 1013904223
			s.SetPixelAt(x, y, vision.RGB(
				uint8(state>>24),
				uint8(state>>16),
				uint8(state>>8),
			))
		}
	}
	return s
}

// cut returns the w × h pixel region at (px, py) of s as a template.
func cut(name string, s *vision.Screen, px, py, w, h int) *vision.Template {
	sw, sh := float64(s.Width()), float64(s.Height())
	roi := vision.NewROI(float64(px)/sw, float64(py)/sh, float64(px+w)/sw, float64(py+h)/sh)
	return vision.TemplateFromScreen(name, s, roi)
}

func TestFindEmbedded(t *testing.T) {
	ctx := log.Testing(t)
	screen := textured(96, 64, 1)
	screen.Blit(textured(12, 10, 99), 30, 20)
	tmpl := cut("mark", screen, 30, 20, 12, 10)

	d := vision.Find(screen, tmpl, vision.FullScreen, 0.95)
	assert.For(ctx, "found").That(d).IsNotNil()
	assert.For(ctx, "confidence").ThatFloat(d.Confidence).IsAtLeast(0.95)
	assert.For(ctx, "name").ThatString(d.Name).Equals("mark")

	// Center within a pixel of the true embedding center.
	cx := d.Center.X * 96
	cy := d.Center.Y * 64
	assert.For(ctx, "center x").ThatFloat(math.Abs(cx-36)).IsAtMost(1)
	assert.For(ctx, "center y").ThatFloat(math.Abs(cy-25)).IsAtMost(1)
}

func TestFindMiss(t *testing.T) {
	ctx := log.Testing(t)
	screen := textured(64, 48, 1)
	tmpl := cut("absent", textured(64, 48, 99), 20, 20, 12, 10)

	assert.For(ctx, "miss").That(vision.Find(screen, tmpl, vision.FullScreen, 0.9)).IsNil()
}

func TestFindRespectsROI(t *testing.T) {
	ctx := log.Testing(t)
	screen := textured(100, 100, 1)
	screen.Blit(textured(10, 10, 99), 70, 70)
	tmpl := cut("mark", screen, 70, 70, 10, 10)

	left := vision.NewROI(0, 0, 0.5, 1)
	right := vision.NewROI(0.5, 0.5, 1, 1)
	assert.For(ctx, "wrong region").That(vision.Find(screen, tmpl, left, 0.9)).IsNil()

	d := vision.Find(screen, tmpl, right, 0.9)
	assert.For(ctx, "right region").That(d).IsNotNil()
	assert.For(ctx, "whole-screen coords").ThatFloat(d.Center.X).IsAtLeast(0.5)
}

func TestTemplateLargerThanRegion(t *testing.T) {
	ctx := log.Testing(t)
	screen := textured(40, 40, 1)
	tmpl := cut("big", screen, 0, 0, 30, 30)

	// A 30×30 template cannot fit the 20×20 pixel region.
	d := vision.Find(screen, tmpl, vision.NewROI(0, 0, 0.5, 0.5), 0.5)
	assert.For(ctx, "too large").That(d).IsNil()
}

func TestFlatTemplate(t *testing.T) {
	ctx := log.Testing(t)
	screen := vision.NewScreen(40, 40)
	screen.Fill(white)
	tmpl := cut("flat", screen, 0, 0, 8, 8)

	// A constant template correlates with everything, so it is undetectable.
	assert.For(ctx, "flat").That(vision.Find(screen, tmpl, vision.FullScreen, 0.5)).IsNil()
}

func TestFindAllSuppression(t *testing.T) {
	ctx := log.Testing(t)
	screen := textured(120, 60, 1)
	patch := textured(10, 8, 99)
	screen.Blit(patch, 10, 10)
	screen.Blit(patch, 30, 10) // centers 20px apart, suppressed at 25
	screen.Blit(patch, 80, 30)
	tmpl := cut("mark", screen, 10, 10, 10, 8)

	ds := vision.FindAll(screen, tmpl, vision.FullScreen, 0.9, 10, 25)
	assert.For(ctx, "suppressed").ThatSlice(ds).IsLength(2)
	for i := range ds {
		for j := i + 1; j < len(ds); j++ {
			dx := math.Abs(ds[i].Center.X-ds[j].Center.X) * 120
			dy := math.Abs(ds[i].Center.Y-ds[j].Center.Y) * 60
			assert.For(ctx, "distance %d %d", i, j).ThatFloat(math.Max(dx, dy)).IsAtLeast(25)
		}
	}

	capped := vision.FindAll(screen, tmpl, vision.FullScreen, 0.9, 1, 25)
	assert.For(ctx, "capped").ThatSlice(capped).IsLength(1)
}

func TestFindAnyAndBest(t *testing.T) {
	ctx := log.Testing(t)
	screen := textured(80, 60, 1)
	screen.Blit(textured(10, 8, 99), 40, 30)

	hit := cut("hit", screen, 40, 30, 10, 8)
	miss := cut("miss", textured(80, 60, 7), 40, 30, 10, 8)

	d := vision.FindAny(screen, []*vision.Template{miss, hit}, vision.FullScreen, 0.9)
	assert.For(ctx, "any").That(d).IsNotNil()
	assert.For(ctx, "any name").ThatString(d.Name).Equals("hit")

	d = vision.FindBest(screen, []*vision.Template{miss, hit}, vision.FullScreen, 0.2)
	assert.For(ctx, "best").That(d).IsNotNil()
	assert.For(ctx, "best name").ThatString(d.Name).Equals("hit")
}

func TestTemplateRescaling(t *testing.T) {
	ctx := log.Testing(t)

	// A smooth pattern survives resampling between capture resolutions.
	screen := vision.NewScreen(64, 48)
	for y := 0; y < 48; y++ {
		for x := 0; x < 64; x++ {
			screen.SetPixelAt(x, y, vision.RGB(uint8(x*4), uint8(y*5), uint8((x+y)*2)))
		}
	}
	for y := 20; y < 26; y++ {
		for x := 30; x < 38; x++ {
			screen.SetPixelAt(x, y, white)
		}
	}

	// Cut the template from a double-resolution capture of the same scene.
	capture := screen.Scaled(128, 96)
	tmpl := cut("mark", capture, 56, 36, 24, 20)

	d := vision.Find(screen, tmpl, vision.FullScreen, 0.7)
	assert.For(ctx, "found").That(d).IsNotNil()
	cx := d.Center.X * 64
	cy := d.Center.Y * 48
	assert.For(ctx, "center x").ThatFloat(math.Abs(cx-34)).IsAtMost(2)
	assert.For(ctx, "center y").ThatFloat(math.Abs(cy-23)).IsAtMost(2)
}

func TestDecodeTemplate(t *testing.T) {
	ctx := log.Testing(t)
	patch := textured(6, 5, 3)
	buf := &bytes.Buffer{}
	err := png.Encode(buf, patch.Image())
	assert.For(ctx, "encode").ThatError(err).Succeeded()

	tmpl, err := vision.DecodeTemplate("probe", buf, 960, 540)
	assert.For(ctx, "decode").ThatError(err).Succeeded()
	assert.For(ctx, "name").ThatString(tmpl.Name).Equals("probe")

	_, err = vision.DecodeTemplate("junk", bytes.NewBufferString("not a png"), 960, 540)
	assert.For(ctx, "junk").ThatError(err).Failed()
}
