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
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/OpenWSGR/autowsgr/core/math/f64"
	"github.com/OpenWSGR/autowsgr/core/math/sint"
	"github.com/pkg/errors"
)

// Template is a small reference image searched for inside screens.
// The capture resolution records the screen size the template was cut from,
// so it can be rescaled when matched against a screen of a different size.
type Template struct {
	Name string
	img  *Screen
	capW int
	capH int
}

// TemplateFromScreen cuts the region roi out of s as a template.
func TemplateFromScreen(name string, s *Screen, roi ROI) *Template {
	return &Template{
		Name: name,
		img:  s.Crop(roi),
		capW: s.Width(),
		capH: s.Height(),
	}
}

// DecodeTemplate reads a PNG template captured at the given resolution.
func DecodeTemplate(name string, r io.Reader, capW, capH int) (*Template, error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, errors.Wrapf(err, "Decoding template %s", name)
	}
	return &Template{Name: name, img: FromImage(img), capW: capW, capH: capH}, nil
}

// LoadTemplate reads a PNG template file captured at the reference
// resolution. The template is named after the file, without the extension.
func LoadTemplate(path string) (*Template, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return DecodeTemplate(name, f, ReferenceWidth, ReferenceHeight)
}

// Detection is a confirmed template match.
type Detection struct {
	Name       string
	Confidence float64
	Center     f64.Point // whole-screen relative coordinates
}

// Find searches roi for the template and returns the best match with
// confidence at least the given threshold, or nil if there is none.
// A template larger than the region is not detectable and yields nil.
func Find(s *Screen, t *Template, roi ROI, confidence float64) *Detection {
	ds := findAll(s, t, roi, confidence)
	if len(ds) == 0 {
		return nil
	}
	return &ds[0]
}

// FindAny returns the first template with a match in roi, trying each in
// order, or nil if none match.
func FindAny(s *Screen, ts []*Template, roi ROI, confidence float64) *Detection {
	for _, t := range ts {
		if d := Find(s, t, roi, confidence); d != nil {
			return d
		}
	}
	return nil
}

// FindBest returns the highest-confidence match in roi across all the
// templates, or nil if none match.
func FindBest(s *Screen, ts []*Template, roi ROI, confidence float64) *Detection {
	var best *Detection
	for _, t := range ts {
		if d := Find(s, t, roi, confidence); d != nil && (best == nil || d.Confidence > best.Confidence) {
			best = d
		}
	}
	return best
}

// FindAll returns up to maxCount matches of the template in roi, best first,
// greedily suppressing any later match whose center lies within minDistancePx
// (Chebyshev) of an accepted one.
func FindAll(s *Screen, t *Template, roi ROI, confidence float64, maxCount, minDistancePx int) []Detection {
	all := findAll(s, t, roi, confidence)
	var out []Detection
	var centers [][2]int
	for i := range all {
		cx := int(all[i].Center.X * float64(s.Width()))
		cy := int(all[i].Center.Y * float64(s.Height()))
		ok := true
		for _, c := range centers {
			if sint.Max(sint.Abs(cx-c[0]), sint.Abs(cy-c[1])) < minDistancePx {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		out = append(out, all[i])
		centers = append(centers, [2]int{cx, cy})
		if len(out) == maxCount {
			break
		}
	}
	return out
}

// findAll scores every placement of the template inside roi and returns
// those at or above the confidence threshold, sorted by descending score.
func findAll(s *Screen, t *Template, roi ROI, confidence float64) []Detection {
	region := roi.pixels(s.Width(), s.Height())
	sw, sh := region.Dx(), region.Dy()

	// Bring the template to the screen's scale before comparing.
	img := t.img
	tw := f64.Round(float64(img.w) * float64(s.Width()) / float64(t.capW))
	th := f64.Round(float64(img.h) * float64(s.Height()) / float64(t.capH))
	if tw < 1 || th < 1 || tw > sw || th > sh {
		return nil
	}
	img = img.Scaled(tw, th)

	tpl := grayscale(img)
	tplMean := mean(tpl)
	tplEnergy := 0.0
	for i, v := range tpl {
		tpl[i] = v - tplMean
		tplEnergy += tpl[i] * tpl[i]
	}
	if tplEnergy == 0 {
		// A flat template correlates equally with everything.
		return nil
	}

	win := grayscale(s.Crop(roi))
	sum, sumSq := integrals(win, sw, sh)
	n := float64(tw * th)

	var out []Detection
	for y := 0; y+th <= sh; y++ {
		for x := 0; x+tw <= sw; x++ {
			winSum := rectSum(sum, sw, x, y, tw, th)
			winSumSq := rectSum(sumSq, sw, x, y, tw, th)
			winVar := winSumSq - winSum*winSum/n
			if winVar <= 0 {
				continue
			}
			// The template is zero-mean, so the window mean term in the
			// cross correlation cancels out.
			dot := 0.0
			for j := 0; j < th; j++ {
				row := (y+j)*sw + x
				trow := j * tw
				for i := 0; i < tw; i++ {
					dot += tpl[trow+i] * win[row+i]
				}
			}
			score := dot / math.Sqrt(tplEnergy*winVar)
			if score >= confidence {
				out = append(out, Detection{
					Name:       t.Name,
					Confidence: score,
					Center: f64.Pt(
						(float64(region.Min.X+x)+float64(tw)/2)/float64(s.Width()),
						(float64(region.Min.Y+y)+float64(th)/2)/float64(s.Height()),
					),
				})
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Confidence > out[j].Confidence })
	return out
}

// grayscale flattens a screen to Rec. 601 luma values.
func grayscale(s *Screen) []float64 {
	out := make([]float64, s.w*s.h)
	for i := range out {
		c := s.pix[i*3:]
		out[i] = 0.299*float64(c[0]) + 0.587*float64(c[1]) + 0.114*float64(c[2])
	}
	return out
}

func mean(v []float64) float64 {
	sum := 0.0
	for _, x := range v {
		sum += x
	}
	return sum / float64(len(v))
}

// integrals returns summed-area tables of v and v², each (w+1)×(h+1).
func integrals(v []float64, w, h int) (sum, sumSq []float64) {
	sum = make([]float64, (w+1)*(h+1))
	sumSq = make([]float64, (w+1)*(h+1))
	for y := 0; y < h; y++ {
		rowSum, rowSq := 0.0, 0.0
		for x := 0; x < w; x++ {
			p := v[y*w+x]
			rowSum += p
			rowSq += p * p
			sum[(y+1)*(w+1)+x+1] = sum[y*(w+1)+x+1] + rowSum
			sumSq[(y+1)*(w+1)+x+1] = sumSq[y*(w+1)+x+1] + rowSq
		}
	}
	return sum, sumSq
}

// rectSum reads the sum over the w × h rectangle at (x, y) from a
// summed-area table built by integrals.
func rectSum(table []float64, imgW, x, y, w, h int) float64 {
	s := imgW + 1
	return table[(y+h)*s+x+w] - table[y*s+x+w] - table[(y+h)*s+x] + table[y*s+x]
}
