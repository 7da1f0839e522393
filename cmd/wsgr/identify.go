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

package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/OpenWSGR/autowsgr/core/app"
	"github.com/OpenWSGR/autowsgr/core/log"
	"github.com/OpenWSGR/autowsgr/wsgr/ui"
)

type identifyVerb struct{ IdentifyFlags }

func init() {
	verb := &identifyVerb{}
	app.AddVerb(&app.Verb{
		Name:      "identify",
		ShortHelp: "Names the game page currently on screen",
		Auto:      verb,
	})
}

func (verb *identifyVerb) Run(ctx context.Context, flags flag.FlagSet) error {
	d, err := getDevice(ctx, verb.DeviceFlags)
	if err != nil {
		return err
	}

	s, err := d.Screenshot(ctx)
	if err != nil {
		return log.Err(ctx, err, "Failed to capture the screen")
	}

	page, ok := ui.StandardPages().Registry().CurrentPage(ctx, s)
	if !ok {
		return log.Err(ctx, ui.ErrUnknownPage, "")
	}
	fmt.Fprintln(os.Stdout, page)

	return nil
}
