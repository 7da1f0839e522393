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

package stub

import (
	"fmt"
	"regexp"

	"github.com/OpenWSGR/autowsgr/core/os/shell"
)

// MatchTarget is an implementation of Target that delegates the command to
// another target only if the formatted command exactly matches a string.
type MatchTarget struct {
	// Match is the string the formatted command must equal.
	Match string
	// Target is the target to hand matching commands to.
	Target shell.Target
}

func (t *MatchTarget) Start(cmd shell.Cmd) (shell.Process, error) {
	if fmt.Sprint(cmd) != t.Match {
		return nil, UnhandledCmdError(cmd)
	}
	return t.Target.Start(cmd)
}

// RegexpTarget is an implementation of Target that delegates the command to
// another target only if the formatted command matches a pattern.
type RegexpTarget struct {
	// Match is the pattern the formatted command must match.
	Match *regexp.Regexp
	// Target is the target to hand matching commands to.
	Target shell.Target
}

func (t *RegexpTarget) Start(cmd shell.Cmd) (shell.Process, error) {
	if !t.Match.MatchString(fmt.Sprint(cmd)) {
		return nil, UnhandledCmdError(cmd)
	}
	return t.Target.Start(cmd)
}
