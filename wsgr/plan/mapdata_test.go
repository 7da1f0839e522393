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

package plan_test

import (
	"bytes"
	"testing"

	"github.com/OpenWSGR/autowsgr/core/assert"
	"github.com/OpenWSGR/autowsgr/core/log"
	"github.com/OpenWSGR/autowsgr/core/math/f64"
	"github.com/OpenWSGR/autowsgr/wsgr/plan"
)

func TestReadMap(t *testing.T) {
	ctx := log.Testing(t)

	m, err := plan.ReadMap(bytes.NewReader([]byte(`
"0":
  position: [96, 270]
  next: [A]
A:
  position: [480, 270]
  next: [B, C]
B: [864, 135]
C:
  position: [864, 405]
`)))
	assert.For(ctx, "err").ThatError(err).Succeeded()
	assert.For(ctx, "names").ThatSlice(m.Names()).Equals([]string{"0", "A", "B", "C"})

	a, ok := m.Node("A")
	assert.For(ctx, "A found").That(ok).Equals(true)
	assert.For(ctx, "A position").That(a.Position).Equals(f64.Pt(0.5, 0.5))
	assert.For(ctx, "A next").ThatSlice(a.Next).Equals([]string{"B", "C"})

	// Legacy bare-pair form has a position but no successor list.
	b, ok := m.Node("B")
	assert.For(ctx, "B found").That(ok).Equals(true)
	assert.For(ctx, "B position").That(b.Position).Equals(f64.Pt(0.9, 0.25))
	assert.For(ctx, "B next").ThatSlice(b.Next).IsEmpty()

	assert.For(ctx, "next A").ThatSlice(m.Next("A")).Equals([]string{"B", "C"})
	assert.For(ctx, "next unknown").ThatSlice(m.Next("Z")).IsEmpty()

	_, ok = m.Node("Z")
	assert.For(ctx, "Z found").That(ok).Equals(false)
}

func TestReadMapRejectsMalformed(t *testing.T) {
	ctx := log.Testing(t)

	for _, test := range []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"short position", "A: [100]"},
		{"long position", "A: [1, 2, 3]"},
		{"out of frame", "A: [1000, 200]"},
		{"negative", "A: [-5, 200]"},
		{"not a map", "- A\n- B"},
	} {
		_, err := plan.ReadMap(bytes.NewReader([]byte(test.text)))
		assert.For(ctx, test.name).ThatError(err).Failed()
	}
}

func TestMapPath(t *testing.T) {
	ctx := log.Testing(t)

	got := plan.MapPath("maps", plan.ID("7"), plan.ID("2"))
	assert.For(ctx, "path").ThatString(got).Equals("maps/7-2.yaml")
}
