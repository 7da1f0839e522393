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

// Package compare implements a deep comparison of arbitrary go values,
// delivering the differences found as paths from the root of the object
// hierarchy.
package compare

type stop string

// LimitReached is the panic value difference handlers use to abort further
// comparison. It is absorbed by Compare.
const LimitReached = stop("LimitReached")

type missing string

// Missing is the marker used in paths for array entries or map keys that are
// present on one side of the comparison only.
const Missing = missing("⚠ Missing")

// Register assigns the function f with signature func(Comparator, T, T) to be
// used as the global comparator for instances of type T.
func Register(f interface{}) { globalCustom.Register(f) }

// Compare delivers all the differences between reference and value to the
// handler. If the two are equal, the handler is never invoked.
func Compare(reference, value interface{}, handler Handler) {
	compare(reference, value, handler, globalCustom)
}

// DeepEqual compares a value against a reference and returns true if they are
// equal.
func DeepEqual(reference, value interface{}) bool {
	return globalCustom.DeepEqual(reference, value)
}

// Diff returns the differences between the reference and the value.
// The maximum number of differences is controlled by limit, which must be >0.
// If they compare equal, the length of the returned slice will be 0.
func Diff(reference, value interface{}, limit int) []Path {
	return globalCustom.Diff(reference, value, limit)
}

func compare(reference, value interface{}, handler Handler, custom *Custom) {
	defer func() {
		if r := recover(); r != nil && r != LimitReached {
			panic(r)
		}
	}()
	t := Comparator{Handler: handler, seen: seen{}, custom: custom}
	t.Compare(reference, value)
}
