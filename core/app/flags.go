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

package app

// AppFlags holds the flags that are common to all applications.
type AppFlags struct {
	Log      LogFlags
	Profile  ProfileFlags
	Version  bool `help:"display the application version and exit"`
	FullHelp bool `fullname:"fullhelp" help:"_show help for all flags, including hidden ones"`
}
