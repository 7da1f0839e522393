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

// Package recog defines the contract of the native recognition helper the
// combat engine consumes for enemy compositions, map node letters and text
// row location. The helper itself is an external collaborator.
package recog

import (
	"context"

	"github.com/OpenWSGR/autowsgr/wsgr/ship"
	"github.com/OpenWSGR/autowsgr/wsgr/vision"
)

// EnemySlots is the number of enemy fleet slots the spot-enemy screen
// shows, and so the number of crops RecognizeEnemy consumes.
const EnemySlots = 6

// RowSpan is a horizontal band of text rows located in an image.
type RowSpan struct {
	Start int // first row, inclusive
	End   int // last row, exclusive
}

// Helper recognizes game sprites the template matcher cannot separate
// reliably.
type Helper interface {
	// RecognizeEnemy classifies the six enemy slot crops into ship class
	// tokens. Empty slots come back as ship.NO.
	RecognizeEnemy(ctx context.Context, crops []*vision.Screen) ([]ship.Class, error)
	// RecognizeMap reads the node letter shown in the crop: "A".."J", or
	// "0" when no letter is visible.
	RecognizeMap(ctx context.Context, crop *vision.Screen) (string, error)
	// Locate finds the text rows in the image, for cutting ship name
	// regions ahead of OCR.
	Locate(ctx context.Context, img *vision.Screen) ([]RowSpan, error)
}
