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

type (
	DeviceFlags struct {
		Serial string `help:"use the device with this adb serial; empty picks the only online device"`
		Addr   string `help:"emulator adb endpoint (host:port) to connect before scanning"`
		SSH    string `help:"YAML configuration of remote emulator hosts; adb runs on the first reachable one"`
	}
	DevicesFlags struct {
		DeviceFlags
	}
	ScreenshotFlags struct {
		DeviceFlags
		Out string `help:"output PNG path"`
	}
	IdentifyFlags struct {
		DeviceFlags
	}
	PlancheckFlags struct {
		Maps string `help:"directory holding the per-map node data; set it to check the plan's map file too"`
	}
	FightFlags struct {
		DeviceFlags
		Assets     string `help:"directory holding the recognition template images"`
		Maps       string `help:"directory holding the per-map node data"`
		Times      int    `help:"number of engagements to run"`
		OCR        string `help:"OCR helper executable for text readouts"`
		Helper     string `help:"recognition helper executable for enemy and map readouts"`
		Game       string `help:"game component (package/activity); relaunched on the device after a forced exit"`
		RestartCmd string `fullname:"restart-cmd" help:"command run on this machine to restart the game after a forced exit"`
		DockFull   string `fullname:"dock-full" help:"what to do when the dock is full: stop or dismantle"`
	}
)
