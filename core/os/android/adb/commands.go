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
	"regexp"
	"strconv"

	"github.com/OpenWSGR/autowsgr/core/fault"
	"github.com/OpenWSGR/autowsgr/core/log"
	"github.com/OpenWSGR/autowsgr/core/os/android"
)

const (
	// ErrProcessNotFound is returned by Pid when the package has no running
	// process.
	ErrProcessNotFound = fault.Const("Process not found")
)

var (
	pgrepOutputRegex = regexp.MustCompile(`^[0-9]+$`)
	psOutputRegex    = regexp.MustCompile(`(?m)^\S+\s+([0-9]+)\s+[0-9]+\s+[0-9]+\s+[^\n\r]*\s+(\S+)\s*$`)
)

// StartActivity launches the specified activity, force-stopping any running
// instance and waiting for the launch to complete.
func (b *binding) StartActivity(ctx context.Context, a android.Activity, extras ...android.ActionExtra) error {
	args := append([]string{
		"start",
		"-S", // Force-stop the target app before starting the activity
		"-W", // Wait until the launch finishes
		"-n", a.Component(),
	}, extrasFlags(extras)...)
	return b.Shell("am", args...).Run(ctx)
}

// ForceStop stops everything associated with the given package.
func (b *binding) ForceStop(ctx context.Context, pkg string) error {
	return b.Shell("am", "force-stop", pkg).Run(ctx)
}

// Pid returns the PID of the newest (if pgrep exists) running process
// belonging to the given package.
func (b *binding) Pid(ctx context.Context, pkg string) (int, error) {
	// First, try pgrep.
	out, err := b.Shell("pgrep", "-n", "-f", pkg).Call(ctx)
	if err == nil {
		if out == "" {
			// Empty pgrep output. Process not found.
			return -1, ErrProcessNotFound
		}
		if pgrepOutputRegex.MatchString(out) {
			pid, _ := strconv.Atoi(out)
			return pid, nil
		}
	}

	// pgrep not found or other error, fall back to trying ps.
	out, err = b.Shell("ps").Call(ctx)
	if err != nil {
		return -1, err
	}

	matches := psOutputRegex.FindAllStringSubmatch(out, -1)
	if matches != nil {
		// If we're here, we're getting sensible output from ps.
		for _, match := range matches {
			if match[2] == pkg {
				pid, _ := strconv.Atoi(match[1])
				return pid, nil
			}
		}
		// Process not found.
		return -1, ErrProcessNotFound
	}

	return -1, log.Errf(ctx, nil, "Failed to get pid for package %v (pgrep and ps both missing or misbehaving)", pkg)
}

// SystemProperty returns the system property with the given name.
func (b *binding) SystemProperty(ctx context.Context, name string) (string, error) {
	res, err := b.Shell("getprop", name).Call(ctx)
	if err != nil {
		return "", log.Errf(ctx, err, "getprop returned error: \n%s", err.Error())
	}
	return res, nil
}

func extrasFlags(extras []android.ActionExtra) []string {
	flags := []string{}
	for _, e := range extras {
		flags = append(flags, e.Flags()...)
	}
	return flags
}
