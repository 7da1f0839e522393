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
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/OpenWSGR/autowsgr/core/app"
	"github.com/OpenWSGR/autowsgr/core/log"
	"github.com/OpenWSGR/autowsgr/core/os/android/adb"
)

type devicesVerb struct{ DevicesFlags }

// deviceObj wraps one scan row in a JSON-marshalable shape.
type deviceObj struct {
	Serial  string
	Product string
	Status  string
}

func init() {
	verb := &devicesVerb{}
	app.AddVerb(&app.Verb{
		Name:      "devices",
		ShortHelp: "Lists the attached Android devices",
		Auto:      verb,
	})
}

func (verb *devicesVerb) Run(ctx context.Context, flags flag.FlagSet) error {
	if err := prepareADB(ctx, verb.DeviceFlags); err != nil {
		return err
	}
	devices, err := adb.Devices(ctx)
	if err != nil {
		return log.Err(ctx, err, "Failed to scan for devices")
	}

	objs := make([]deviceObj, 0, len(devices))
	for _, d := range devices {
		objs = append(objs, deviceObj{
			Serial:  d.Serial(),
			Product: d.Product(),
			Status:  d.Status().String(),
		})
	}
	sort.Slice(objs, func(i, j int) bool { return objs[i].Serial < objs[j].Serial })

	jsonBytes, err := json.MarshalIndent(objs, "", "  ")
	if err != nil {
		return log.Err(ctx, err, "Failed to marshal devices to JSON")
	}
	fmt.Fprintln(os.Stdout, string(jsonBytes))

	return nil
}
