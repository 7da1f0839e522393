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

package shell

import "context"

// Process is the interface to a running process, as started by a Target.
type Process interface {
	// Kill terminates the process immediately.
	Kill() error
	// Wait blocks until the process is finished, returning the error state
	// of the command.
	Wait(ctx context.Context) error
}

// Target is the interface for objects that can start a command and track
// the process it runs in.
type Target interface {
	// Start runs the supplied command, returning a Process to track its
	// state.
	Start(cmd Cmd) (Process, error)
}
