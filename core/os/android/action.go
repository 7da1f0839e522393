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

package android

import (
	"fmt"
	"strings"
)

// Activity identifies an activity that can be launched on a device.
type Activity struct {
	// Package is the name of the package that owns the activity.
	// Example: com.huanmeng.zhanjian2
	Package string

	// Name is the activity that should be launched.
	// Example: .MainActivity or com.example.app.MainActivity
	Name string
}

// Component returns the component name with package name prefix. For example:
// "com.example.app/.ExampleActivity" or "com.example.app/com.foo.ExampleActivity"
func (a Activity) Component() string {
	if strings.ContainsRune(a.Name, '.') {
		return fmt.Sprintf("%s/%s", a.Package, a.Name)
	}
	return fmt.Sprintf("%s/.%s", a.Package, a.Name)
}

func (a Activity) String() string {
	return a.Component()
}

// ActionExtra is the interface implemented by intent extras.
type ActionExtra interface {
	// Flags returns the formatted flags to pass to the Android am command.
	Flags() []string
}

// StringExtra represents an extra with a string value.
type StringExtra struct {
	Key   string
	Value string
}

// BoolExtra represents an extra with a bool value.
type BoolExtra struct {
	Key   string
	Value bool
}

// IntExtra represents an extra with an int value.
type IntExtra struct {
	Key   string
	Value int
}

// CustomExtras is a list of custom intent extras.
type CustomExtras []string

// Flags returns the formatted flags to pass to the Android am command.
func (e StringExtra) Flags() []string { return []string{"--es", e.Key, fmt.Sprintf(`"%v"`, e.Value)} }

// Flags returns the formatted flags to pass to the Android am command.
func (e BoolExtra) Flags() []string { return []string{"--ez", e.Key, fmt.Sprintf("%v", e.Value)} }

// Flags returns the formatted flags to pass to the Android am command.
func (e IntExtra) Flags() []string { return []string{"--ei", e.Key, fmt.Sprintf("%v", e.Value)} }

// Flags returns the formatted flags to pass to the Android am command.
func (e CustomExtras) Flags() []string { return []string(e) }
