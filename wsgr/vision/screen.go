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

// Package vision recognizes game state from emulator framebuffers.
//
// All geometry is expressed in relative coordinates: points in [0,1]² that
// are mapped to pixels at the moment a screen is sampled, so signatures,
// regions and templates work unchanged across emulator resolutions.
//
// The package never reports "not found" as an error. Checks return a Result
// with Matched set to false and template searches return a nil Detection;
// errors are reserved for malformed inputs such as undecodable image data.
package vision

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/OpenWSGR/autowsgr/core/math/sint"
)

// Reference resolution the bundled assets and map data were authored at.
const (
	ReferenceWidth  = 960
	ReferenceHeight = 540
)

// Screen is a single framebuffer capture, held as packed RGB bytes in row
// major order.
type Screen struct {
	pix []uint8
	w   int
	h   int
}

// NewScreen returns a black screen of the given pixel dimensions.
func NewScreen(w, h int) *Screen {
	return &Screen{
		pix: make([]uint8, w*h*3),
		w:   w,
		h:   h,
	}
}

// FromImage converts an image to a Screen, dropping any alpha channel.
func FromImage(img image.Image) *Screen {
	b := img.Bounds()
	s := NewScreen(b.Dx(), b.Dy())
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			s.pix[i+0] = uint8(r >> 8)
			s.pix[i+1] = uint8(g >> 8)
			s.pix[i+2] = uint8(b >> 8)
			i += 3
		}
	}
	return s
}

// Width returns the width of the screen in pixels.
func (s *Screen) Width() int { return s.w }

// Height returns the height of the screen in pixels.
func (s *Screen) Height() int { return s.h }

// PixelAt returns the color of the pixel at (px, py).
// Coordinates are clamped to the screen bounds.
func (s *Screen) PixelAt(px, py int) Color {
	px = sint.Clamp(px, 0, s.w-1)
	py = sint.Clamp(py, 0, s.h-1)
	i := (py*s.w + px) * 3
	return Color{R: s.pix[i], G: s.pix[i+1], B: s.pix[i+2]}
}

// RGBAt returns the color at the relative coordinate (x, y), sampling the
// pixel at (⌊x·W⌋, ⌊y·H⌋).
func (s *Screen) RGBAt(x, y float64) Color {
	return s.PixelAt(int(x*float64(s.w)), int(y*float64(s.h)))
}

// SetPixelAt sets the pixel at (px, py). Out of bounds writes are dropped.
func (s *Screen) SetPixelAt(px, py int, c Color) {
	if px < 0 || px >= s.w || py < 0 || py >= s.h {
		return
	}
	i := (py*s.w + px) * 3
	s.pix[i+0] = c.R
	s.pix[i+1] = c.G
	s.pix[i+2] = c.B
}

// Fill sets every pixel of the screen to c.
func (s *Screen) Fill(c Color) {
	for i := 0; i < len(s.pix); i += 3 {
		s.pix[i+0] = c.R
		s.pix[i+1] = c.G
		s.pix[i+2] = c.B
	}
}

// Blit copies src onto s with its top left corner at (px, py).
// The parts of src that fall outside s are dropped.
func (s *Screen) Blit(src *Screen, px, py int) {
	for y := 0; y < src.h; y++ {
		for x := 0; x < src.w; x++ {
			s.SetPixelAt(px+x, py+y, src.PixelAt(x, y))
		}
	}
}

// Crop returns a copy of the part of the screen covered by roi.
func (s *Screen) Crop(roi ROI) *Screen {
	r := roi.pixels(s.w, s.h)
	out := NewScreen(r.Dx(), r.Dy())
	for y := 0; y < out.h; y++ {
		si := ((r.Min.Y+y)*s.w + r.Min.X) * 3
		copy(out.pix[y*out.w*3:(y+1)*out.w*3], s.pix[si:si+out.w*3])
	}
	return out
}

// Rows returns a copy of the pixel rows [y0, y1) of the screen.
// Unlike Crop it takes absolute rows, for callers that already hold pixel
// positions such as located text lines.
func (s *Screen) Rows(y0, y1 int) *Screen {
	out := NewScreen(s.w, y1-y0)
	copy(out.pix, s.pix[y0*s.w*3:y1*s.w*3])
	return out
}

// Scaled returns the screen resampled to w × h pixels.
func (s *Screen) Scaled(w, h int) *Screen {
	if w == s.w && h == s.h {
		return s
	}
	src := s.Image()
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return FromImage(dst)
}

// Image returns the screen as an RGBA image.
func (s *Screen) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, s.w, s.h))
	i := 0
	for y := 0; y < s.h; y++ {
		o := img.PixOffset(0, y)
		for x := 0; x < s.w; x++ {
			img.Pix[o+0] = s.pix[i+0]
			img.Pix[o+1] = s.pix[i+1]
			img.Pix[o+2] = s.pix[i+2]
			img.Pix[o+3] = 0xff
			o += 4
			i += 3
		}
	}
	return img
}
