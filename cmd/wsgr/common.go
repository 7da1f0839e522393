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
	"os"
	"sort"

	"github.com/OpenWSGR/autowsgr/core/log"
	"github.com/OpenWSGR/autowsgr/core/os/android/adb"
	"github.com/OpenWSGR/autowsgr/core/os/remotessh"
	"github.com/OpenWSGR/autowsgr/wsgr/device"
	"github.com/pkg/errors"
)

// prepareADB points the adb layer at the configured target: an SSH host
// from the -ssh configuration if given, then an `adb connect` to -addr if
// given, then a scan restriction to -serial.
func prepareADB(ctx context.Context, flags DeviceFlags) error {
	if flags.SSH != "" {
		f, err := os.Open(flags.SSH)
		if err != nil {
			return log.Errf(ctx, err, "Opening the host configuration %v", flags.SSH)
		}
		defer f.Close()
		hosts, err := remotessh.Devices(ctx, f)
		if err != nil {
			return err
		}
		if len(hosts) == 0 {
			return errors.Errorf("no reachable host in %v", flags.SSH)
		}
		// Only the first host is driven; drop the other connections.
		for _, h := range hosts[1:] {
			h.Close()
		}
		adb.Host = hosts[0].Target()
		log.I(ctx, "adb commands run on %v", hosts[0].Name())
	}
	if flags.Addr != "" {
		if _, err := adb.Connect(ctx, flags.Addr); err != nil {
			return err
		}
	}
	if flags.Serial != "" {
		adb.LimitToSerial(flags.Serial)
	}
	return nil
}

// getADBDevice resolves the device flags to a single online device.
func getADBDevice(ctx context.Context, flags DeviceFlags) (adb.Device, error) {
	if err := prepareADB(ctx, flags); err != nil {
		return nil, err
	}
	devices, err := adb.Devices(ctx)
	if err != nil {
		return nil, log.Err(ctx, err, "Failed to scan for devices")
	}
	online := make(adb.DeviceList, 0, len(devices))
	for _, d := range devices {
		if d.Status() == adb.Online {
			online = append(online, d)
		}
	}
	if flags.Serial != "" {
		if d := online.FindBySerial(flags.Serial); d != nil {
			return d, nil
		}
		return nil, errors.Errorf("device %s is not online", flags.Serial)
	}
	if flags.Addr != "" {
		// adb binds TCP endpoints under their address as the serial.
		if d := online.FindBySerial(flags.Addr); d != nil {
			return d, nil
		}
	}
	switch len(online) {
	case 0:
		return nil, errors.New("no online device; start the emulator or pass -addr")
	case 1:
		return online[0], nil
	default:
		serials := make([]string, len(online))
		for i, d := range online {
			serials[i] = d.Serial()
		}
		sort.Strings(serials)
		return nil, errors.Errorf("%d devices online, pick one with -serial: %v", len(online), serials)
	}
}

// getDevice wraps the resolved adb device in the relative-coordinate screen
// and input surface the automation core drives.
func getDevice(ctx context.Context, flags DeviceFlags) (device.Device, error) {
	d, err := getADBDevice(ctx, flags)
	if err != nil {
		return nil, err
	}
	return device.FromADB(ctx, d)
}
