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

// The wsgr command automates the Warship Girls R emulator client over adb.
package main

import (
	"github.com/OpenWSGR/autowsgr/core/app"
)

func main() {
	app.ShortHelp = "Wsgr automates the Warship Girls R emulator client."
	app.ShortUsage = "<command> [arguments]"
	app.Version = app.VersionSpec{Major: 0, Minor: 1}
	app.Run(app.VerbMain)
}
