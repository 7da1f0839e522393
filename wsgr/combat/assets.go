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

package combat

import (
	"path/filepath"

	"github.com/OpenWSGR/autowsgr/wsgr/vision"
	"github.com/pkg/errors"
)

// Assets are the image templates the engine matches during fights: buttons
// that move around or only sometimes exist, the fleet icon the tracker
// follows, and the battle grade letters.
//
// Individual fields may be left nil; the engine then skips the checks that
// need them. LoadAssets always fills everything in.
type Assets struct {
	// Detour is the detour button on the spot-enemy screen.
	Detour *vision.Template
	// MissileSupport is the missile support toggle on the spot-enemy screen.
	MissileSupport *vision.Template
	// ResourceConfirm is the confirm button of the resource-gained popup
	// that interrupts node movement.
	ResourceConfirm *vision.Template
	// FlagshipConfirm is the confirm button of the flagship damage warning.
	FlagshipConfirm *vision.Template
	// DockFull is the full-dock notice shown instead of a ship drop.
	DockFull *vision.Template
	// FleetIcons are the fleet marker variants the node tracker follows.
	FleetIcons []*vision.Template
	// Grades are the battle grade letter templates, named by grade.
	Grades []*vision.Template
}

// LoadAssets reads every template the engine uses from dir. The templates
// are PNG cuts captured at the reference resolution, laid out as
// dir/<name>.png with the grade letters under dir/grades/.
func LoadAssets(dir string) (*Assets, error) {
	a := &Assets{}
	for _, f := range []struct {
		dst  **vision.Template
		file string
	}{
		{&a.Detour, "detour.png"},
		{&a.MissileSupport, "missile_support.png"},
		{&a.ResourceConfirm, "resource_confirm.png"},
		{&a.FlagshipConfirm, "flagship_confirm.png"},
		{&a.DockFull, "dock_full.png"},
	} {
		t, err := vision.LoadTemplate(filepath.Join(dir, f.file))
		if err != nil {
			return nil, errors.Wrap(err, "Loading combat templates")
		}
		*f.dst = t
	}
	for _, file := range []string{"fleet_icon_1.png", "fleet_icon_2.png"} {
		t, err := vision.LoadTemplate(filepath.Join(dir, file))
		if err != nil {
			return nil, errors.Wrap(err, "Loading fleet icon templates")
		}
		a.FleetIcons = append(a.FleetIcons, t)
	}
	for _, grade := range []string{"S", "A", "B", "C", "D"} {
		t, err := vision.LoadTemplate(filepath.Join(dir, "grades", grade+".png"))
		if err != nil {
			return nil, errors.Wrap(err, "Loading grade templates")
		}
		a.Grades = append(a.Grades, t)
	}
	return a, nil
}
