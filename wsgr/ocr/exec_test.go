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

package ocr_test

import (
	"testing"

	"github.com/OpenWSGR/autowsgr/core/assert"
	"github.com/OpenWSGR/autowsgr/core/log"
	"github.com/OpenWSGR/autowsgr/core/os/shell/stub"
	"github.com/OpenWSGR/autowsgr/wsgr/ocr"
	"github.com/OpenWSGR/autowsgr/wsgr/vision"
)

func TestExecRecognize(t *testing.T) {
	ctx := log.Testing(t)
	engine := &ocr.Exec{
		Path: "recognizer",
		Target: stub.OneOf(
			stub.RespondTo("recognizer", "0.97\t单纵阵\n0.41\t单横阵\n"),
		),
	}

	texts, err := engine.Recognize(ctx, vision.NewScreen(8, 8), "")
	assert.For(ctx, "err").ThatError(err).Succeeded()
	assert.For(ctx, "count").ThatSlice(texts).IsLength(2)
	assert.For(ctx, "best").ThatString(texts[0].Text).Equals("单纵阵")
	assert.For(ctx, "confidence").ThatFloat(texts[0].Confidence).Equals(0.97, 1e-9)
}

func TestExecRecognizeSingle(t *testing.T) {
	ctx := log.Testing(t)
	engine := &ocr.Exec{
		Path: "recognizer",
		Target: stub.OneOf(
			stub.RespondTo("recognizer --allowlist 单复纵横轮形梯阵", "0.88\t复纵阵\n"),
		),
	}

	text, err := engine.RecognizeSingle(ctx, vision.NewScreen(8, 8), "单复纵横轮形梯阵")
	assert.For(ctx, "err").ThatError(err).Succeeded()
	assert.For(ctx, "text").ThatString(text.Text).Equals("复纵阵")
}

func TestExecRecognizeSingleEmpty(t *testing.T) {
	ctx := log.Testing(t)
	engine := &ocr.Exec{
		Path:   "recognizer",
		Target: stub.OneOf(stub.RespondTo("recognizer", "")),
	}

	_, err := engine.RecognizeSingle(ctx, vision.NewScreen(8, 8), "")
	assert.For(ctx, "err").ThatError(err).Equals(ocr.ErrNoText)
}

func TestExecMalformedOutput(t *testing.T) {
	ctx := log.Testing(t)
	engine := &ocr.Exec{
		Path:   "recognizer",
		Target: stub.OneOf(stub.RespondTo("recognizer", "not-a-line")),
	}

	_, err := engine.Recognize(ctx, vision.NewScreen(8, 8), "")
	assert.For(ctx, "err").ThatError(err).Failed()
}
