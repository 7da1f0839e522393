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

package vision

import (
	"fmt"
	"image"
)

// ROI is a region of interest in relative coordinates.
// A valid ROI satisfies 0 ≤ X1 < X2 ≤ 1 and 0 ≤ Y1 < Y2 ≤ 1.
type ROI struct {
	X1, Y1, X2, Y2 float64
}

// FullScreen is the ROI covering the whole screen.
var FullScreen = ROI{X1: 0, Y1: 0, X2: 1, Y2: 1}

// NewROI returns the region with the given relative bounds.
// It panics if the bounds are malformed, since regions are fixed UI geometry
// declared at startup.
func NewROI(x1, y1, x2, y2 float64) ROI {
	r := ROI{X1: x1, Y1: y1, X2: x2, Y2: y2}
	if x1 < 0 || y1 < 0 || x2 > 1 || y2 > 1 || x1 >= x2 || y1 >= y2 {
		panic(fmt.Errorf("Malformed ROI %v", r))
	}
	return r
}

func (r ROI) String() string {
	return fmt.Sprintf("(%v, %v, %v, %v)", r.X1, r.Y1, r.X2, r.Y2)
}

// Center returns the relative center of the region.
func (r ROI) Center() (x, y float64) {
	return (r.X1 + r.X2) / 2, (r.Y1 + r.Y2) / 2
}

// pixels maps the region onto a w × h pixel grid. The origin is the floor of
// the scaled minimum and the size is the floor of the scaled extent, so a
// region's pixel size depends only on its extent, not its position.
func (r ROI) pixels(w, h int) image.Rectangle {
	x := int(r.X1 * float64(w))
	y := int(r.Y1 * float64(h))
	dx := int((r.X2 - r.X1) * float64(w))
	dy := int((r.Y2 - r.Y1) * float64(h))
	return image.Rect(x, y, x+dx, y+dy)
}
