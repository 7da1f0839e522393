// Copyright (C) 2017 Google Inc.
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

package adb

import (
	"context"
	"strings"

	"github.com/OpenWSGR/autowsgr/core/fault"
	"github.com/OpenWSGR/autowsgr/core/log"
	"github.com/OpenWSGR/autowsgr/core/os/shell"
)

const (
	// ErrConnectFailed is returned when adb refuses a connection to a TCP
	// device address.
	ErrConnectFailed = fault.Const("Unable to connect to remote device")
)

// Connect attaches the emulator or TCP device listening on address and
// returns its binding. Emulators expose their adb bridge on a local port,
// for example 127.0.0.1:7555 or 127.0.0.1:16384.
func Connect(ctx context.Context, address string) (Device, error) {
	exe, err := adb()
	if err != nil {
		return nil, log.Err(ctx, err, "")
	}
	out, err := shell.Command(exe.System(), "connect", address).On(host()).Call(ctx)
	if err != nil {
		return nil, err
	}
	// adb connect reports failure on its stdout with exit status 0.
	if !strings.Contains(out, "connected to "+address) {
		return nil, log.Errf(ctx, ErrConnectFailed, "output: %v", out)
	}
	devices, err := Devices(ctx)
	if err != nil {
		return nil, err
	}
	if d := devices.FindBySerial(address); d != nil {
		return d, nil
	}
	return nil, log.Errf(ctx, ErrConnectFailed, "%v missing from the device list", address)
}

// Disconnect detaches the TCP device listening on address.
func Disconnect(ctx context.Context, address string) error {
	exe, err := adb()
	if err != nil {
		return log.Err(ctx, err, "")
	}
	return shell.Command(exe.System(), "disconnect", address).On(host()).Run(ctx)
}
