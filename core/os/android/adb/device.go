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
	"image"
	"strings"
	"sync"

	"github.com/OpenWSGR/autowsgr/core/fault"
	"github.com/OpenWSGR/autowsgr/core/log"
	"github.com/OpenWSGR/autowsgr/core/os/android"
	"github.com/OpenWSGR/autowsgr/core/os/shell"
)

const (
	// ErrNoDeviceList May be returned if the adb fails to return a device list when asked.
	ErrNoDeviceList = fault.Const("Device list not returned")
	// ErrInvalidDeviceList May be returned if the device list could not be parsed.
	ErrInvalidDeviceList = fault.Const("Could not parse device list")
	// ErrInvalidStatus May be returned if the status string is not a known status.
	ErrInvalidStatus = fault.Const("Invalid status string")
)

// Status is the connection status of a device reported by adb.
type Status int

const (
	// UnknownStatus is the status of a device adb cannot identify.
	UnknownStatus Status = iota
	// Offline is the status of a device that is known to adb but unreachable.
	Offline
	// Online is the status of a device that is connected and ready for commands.
	Online
	// Unauthorized is the status of a device that has not authorized the host.
	Unauthorized
)

func (s Status) String() string {
	switch s {
	case Offline:
		return "offline"
	case Online:
		return "online"
	case Unauthorized:
		return "unauthorized"
	default:
		return "unknown"
	}
}

// Device extends the android.Device interface with adb specific features.
type Device interface {
	android.Device
	// Command is a helper that builds a shell.Cmd with the device as its target.
	Command(name string, args ...string) shell.Cmd
	// Status returns the connection status seen on the last device scan.
	Status() Status
	// Product returns the product name reported by the device.
	Product() string
	// Screencap captures the device screen, returning the decoded image.
	Screencap(ctx context.Context) (image.Image, error)
}

// DeviceList is a list of devices.
type DeviceList []Device

// FindBySerial returns the device with the matching serial, or nil if the
// device cannot be found.
func (l DeviceList) FindBySerial(serial string) Device {
	for _, d := range l {
		if d.Serial() == serial {
			return d
		}
	}
	return nil
}

// binding represents an attached Android device.
type binding struct {
	serial  string
	product string
	status  Status
}

var _ Device = (*binding)(nil)

var (
	// cache is a map of device serials to resolved bindings.
	cache      = map[string]*binding{}
	cacheMutex sync.Mutex // Guards cache.

	// devSerial is an Android device serial id. If it is not empty, then device
	// scanning will only consider the device with that particular id.
	devSerial      string
	devSerialMutex sync.Mutex
)

// LimitToSerial restricts the device lookup to only scan and operate on the
// device with the given serial id.
func LimitToSerial(serial string) {
	devSerialMutex.Lock()
	defer devSerialMutex.Unlock()
	devSerial = serial
}

// Serial returns the serial the device was bound with.
func (b *binding) Serial() string { return b.serial }

// Product returns the product name reported by the device.
func (b *binding) Product() string { return b.product }

// Status returns the connection status seen on the last device scan.
func (b *binding) Status() Status { return b.status }

// String returns the product name if known, otherwise the serial.
func (b *binding) String() string {
	if b.product != "" {
		return b.product
	}
	return b.serial
}

// Devices returns the list of attached Android devices.
func Devices(ctx context.Context) (DeviceList, error) {
	if err := scanDevices(ctx); err != nil {
		return nil, err
	}
	cacheMutex.Lock()
	defer cacheMutex.Unlock()
	deviceList := make(DeviceList, 0, len(cache))
	for _, d := range cache {
		deviceList = append(deviceList, d)
	}
	return deviceList, nil
}

func newDevice(ctx context.Context, serial string, status Status) (*binding, error) {
	d := &binding{serial: serial, status: status}

	// Lookup the basic hardware information
	if status == Online {
		if res, err := d.SystemProperty(ctx, "ro.build.product"); err == nil {
			d.product = strings.TrimSpace(res)
		}
	}

	return d, nil
}

// scanDevices updates the device cache from the adb device list. It is
// impacted by previous calls to LimitToSerial().
func scanDevices(ctx context.Context) error {
	exe, err := adb()
	if err != nil {
		return log.Err(ctx, err, "")
	}
	stdout, err := shell.Command(exe.System(), "devices").On(host()).Call(ctx)
	if err != nil {
		return err
	}
	parsed, err := parseDevices(ctx, stdout)
	if err != nil {
		return err
	}

	cacheMutex.Lock()
	defer cacheMutex.Unlock()

	for serial, status := range parsed {
		if (devSerial != "") && (serial != devSerial) {
			continue
		}
		cached, ok := cache[serial]
		if !ok || status != cached.Status() {
			device, err := newDevice(ctx, serial, status)
			if err != nil {
				return err
			}
			cache[serial] = device
		}
	}

	// Remove cached results for removed devices. If we're limited to a single
	// serial, make sure to remove any device that doesn't match it.
	for serial := range cache {
		notTheSerialDevice := (devSerial != "") && (serial != devSerial)
		if _, found := parsed[serial]; !found || notTheSerialDevice {
			delete(cache, serial)
		}
	}

	return nil
}

func parseDevices(ctx context.Context, out string) (map[string]Status, error) {
	a := strings.SplitAfter(out, "List of devices attached")
	if len(a) != 2 {
		return nil, ErrNoDeviceList
	}
	lines := strings.Split(a[1], "\n")
	devices := make(map[string]Status, len(lines))
	for _, line := range lines {
		if strings.HasPrefix(line, "adb server version") && strings.HasSuffix(line, "killing...") {
			continue // adb server version (36) doesn't match this client (35); killing...
		}
		if strings.HasPrefix(line, "*") {
			continue // For example, "* daemon started successfully *"
		}
		fields := strings.Fields(line)
		switch len(fields) {
		case 0:
			continue
		case 2:
			serial, status := fields[0], fields[1]
			switch status {
			case "unknown":
				devices[serial] = UnknownStatus
			case "offline":
				devices[serial] = Offline
			case "device":
				devices[serial] = Online
			case "unauthorized":
				devices[serial] = Unauthorized
			default:
				return nil, log.Errf(ctx, ErrInvalidStatus, "value: %v", status)
			}
		default:
			return nil, ErrInvalidDeviceList
		}
	}
	return devices, nil
}
