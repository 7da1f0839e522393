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
	"math"
	"sort"
)

// Color is an 8 bit RGB color.
type Color struct {
	R, G, B uint8
}

// RGB returns the color with the given channel values.
func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b} }

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Distance returns the Euclidean distance between a and b in RGB space.
func Distance(a, b Color) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// ClassifyColor samples the relative coordinate (x, y) and returns the name
// of the nearest reference color no further than tolerance away. Ties are
// broken by name so the result is deterministic.
func ClassifyColor(s *Screen, x, y float64, refs map[string]Color, tolerance float64) (string, bool) {
	actual := s.RGBAt(x, y)
	names := make([]string, 0, len(refs))
	for name := range refs {
		names = append(names, name)
	}
	sort.Strings(names)
	best, bestDist := "", tolerance
	for _, name := range names {
		if d := Distance(actual, refs[name]); d < bestDist || (best == "" && d == bestDist) {
			best, bestDist = name, d
		}
	}
	return best, best != ""
}
