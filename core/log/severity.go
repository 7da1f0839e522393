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

package log

import "github.com/OpenWSGR/autowsgr/core/app/flags"

// Severity defines the severity of a logging message.
// The levels match the ones defined in rfc5424 for syslog.
type Severity int32

const (
	// Verbose indicates extremely detailed messages.
	Verbose Severity = iota
	// Debug indicates debugging messages.
	Debug
	// Info indicates information messages.
	Info
	// Warning indicates warning messages.
	Warning
	// Error indicates error messages.
	Error
	// Fatal indicates fatal error messages.
	Fatal
)

// String returns the full name of the severity.
func (s Severity) String() string {
	switch s {
	case Verbose:
		return "Verbose"
	case Debug:
		return "Debug"
	case Info:
		return "Info"
	case Warning:
		return "Warning"
	case Error:
		return "Error"
	case Fatal:
		return "Fatal"
	default:
		return "?"
	}
}

// Short returns the severity as a single character.
func (s Severity) Short() string {
	switch s {
	case Verbose:
		return "V"
	case Debug:
		return "D"
	case Info:
		return "I"
	case Warning:
		return "W"
	case Error:
		return "E"
	case Fatal:
		return "F"
	default:
		return "?"
	}
}

// Choose sets the severity to the supplied choice.
func (s *Severity) Choose(c interface{}) { *s = c.(Severity) }

// Chooser returns a chooser for the set of severities.
func (s *Severity) Chooser() flags.Chooser {
	c := flags.Chooser{Value: s}
	for i := Verbose; i <= Fatal; i++ {
		c.Choices = append(c.Choices, i)
	}
	return c
}
