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

// Package ocr defines the text recognition contract the automation core
// consumes. The engine itself is an external collaborator; this package
// only carries its interface and an adapter that shells out to a
// recognizer process.
package ocr

import (
	"context"

	"github.com/OpenWSGR/autowsgr/core/fault"
	"github.com/OpenWSGR/autowsgr/wsgr/vision"
)

const (
	// ErrNoText is returned by RecognizeSingle when the engine finds no
	// text in the image.
	ErrNoText = fault.Const("No text recognized")
)

// Text is one recognized string with the engine's confidence in it.
type Text struct {
	Text       string
	Confidence float64
}

// Engine recognizes text in screen regions.
type Engine interface {
	// Recognize returns every string found in the image, best first.
	// A non-empty allowlist restricts the characters the engine may emit.
	Recognize(ctx context.Context, img *vision.Screen, allowlist string) ([]Text, error)
	// RecognizeSingle returns the best string found in the image, or
	// ErrNoText if the engine finds none.
	RecognizeSingle(ctx context.Context, img *vision.Screen, allowlist string) (Text, error)
}
