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

package recog_test

import (
	"testing"

	"github.com/OpenWSGR/autowsgr/core/assert"
	"github.com/OpenWSGR/autowsgr/core/log"
	"github.com/OpenWSGR/autowsgr/core/os/shell/stub"
	"github.com/OpenWSGR/autowsgr/wsgr/recog"
	"github.com/OpenWSGR/autowsgr/wsgr/ship"
	"github.com/OpenWSGR/autowsgr/wsgr/vision"
)

func crops(n int) []*vision.Screen {
	out := make([]*vision.Screen, n)
	for i := range out {
		out[i] = vision.NewScreen(8, 8)
	}
	return out
}

func TestRecognizeEnemy(t *testing.T) {
	ctx := log.Testing(t)
	helper := &recog.Exec{
		Path:   "helper",
		Target: stub.OneOf(stub.RespondTo("helper enemy", "BB BB CV DD NO NO\n")),
	}

	classes, err := helper.RecognizeEnemy(ctx, crops(6))
	assert.For(ctx, "err").ThatError(err).Succeeded()
	assert.For(ctx, "classes").ThatSlice(classes).Equals(
		[]ship.Class{ship.BB, ship.BB, ship.CV, ship.DD, ship.NO, ship.NO})
}

func TestRecognizeEnemyBadCount(t *testing.T) {
	ctx := log.Testing(t)
	helper := &recog.Exec{
		Path:   "helper",
		Target: stub.OneOf(stub.RespondTo("helper enemy", "BB BB\n")),
	}

	_, err := helper.RecognizeEnemy(ctx, crops(6))
	assert.For(ctx, "short output").ThatError(err).Failed()

	_, err = helper.RecognizeEnemy(ctx, crops(4))
	assert.For(ctx, "short input").ThatError(err).Failed()
}

func TestRecognizeMap(t *testing.T) {
	ctx := log.Testing(t)
	for _, c := range []struct {
		out  string
		want string
		ok   bool
	}{
		{"C\n", "C", true},
		{"0", "0", true},
		{"Z", "", false},
		{"AB", "", false},
	} {
		helper := &recog.Exec{
			Path:   "helper",
			Target: stub.OneOf(stub.RespondTo("helper map", c.out)),
		}
		got, err := helper.RecognizeMap(ctx, vision.NewScreen(8, 8))
		if c.ok {
			assert.For(ctx, "err %q", c.out).ThatError(err).Succeeded()
			assert.For(ctx, "letter %q", c.out).ThatString(got).Equals(c.want)
		} else {
			assert.For(ctx, "reject %q", c.out).ThatError(err).Failed()
		}
	}
}

func TestLocate(t *testing.T) {
	ctx := log.Testing(t)
	helper := &recog.Exec{
		Path:   "helper",
		Target: stub.OneOf(stub.RespondTo("helper locate", "4,12\n20,31\n")),
	}

	spans, err := helper.Locate(ctx, vision.NewScreen(8, 8))
	assert.For(ctx, "err").ThatError(err).Succeeded()
	assert.For(ctx, "spans").ThatSlice(spans).Equals([]recog.RowSpan{{Start: 4, End: 12}, {Start: 20, End: 31}})
}
