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

import (
	"fmt"
	"os"

	"github.com/OpenWSGR/autowsgr/core/fault/stacktrace"
)

// onCrash writes the stack of an uncaught panic to stderr before the process
// dies. The log handler may already be closed by this point, so it writes
// directly to the file descriptor.
func onCrash(e interface{}, s stacktrace.Callstack) {
	fmt.Fprintf(os.Stderr, "\nPanic: %v\n", e)
	for _, entry := range s.All() {
		fmt.Fprintf(os.Stderr, "    %v\n", entry)
	}
}
