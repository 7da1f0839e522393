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

// Package ui knows the game's screens: how to recognize them, how to move
// between them, and how to read state off them.
//
// Pages are identified by sparse pixel signatures registered in a Registry,
// connected by a navigation Graph whose edges perform the clicks, and driven
// by small stateless controllers that hold only a device reference.
package ui

import (
	"context"
	"fmt"

	"github.com/OpenWSGR/autowsgr/core/log"
	"github.com/OpenWSGR/autowsgr/wsgr/vision"
)

// Checker reports whether a screen shows a particular page. Checkers are
// pure and must not touch the device.
type Checker func(s *vision.Screen) bool

// SignatureChecker adapts a pixel signature to a Checker.
func SignatureChecker(sig vision.Signature) Checker {
	return func(s *vision.Screen) bool { return sig.Check(s).Matched }
}

// Registry maps page names to checkers. Pages are registered once at
// startup, in the order identification should try them, and the registry is
// then sealed.
type Registry struct {
	names    []string
	checkers map[string]Checker
	sealed   bool
}

// NewRegistry returns an empty page registry.
func NewRegistry() *Registry {
	return &Registry{checkers: map[string]Checker{}}
}

// Register adds a page. It panics on a duplicate name, a nil checker, or a
// sealed registry: pages are fixed program structure, so these are
// programmer errors.
func (r *Registry) Register(name string, check Checker) {
	if r.sealed {
		panic(fmt.Errorf("Register %s: registry is sealed", name))
	}
	if check == nil {
		panic(fmt.Errorf("Register %s: nil checker", name))
	}
	if _, dup := r.checkers[name]; dup {
		panic(fmt.Errorf("Register %s: duplicate page", name))
	}
	r.names = append(r.names, name)
	r.checkers[name] = check
}

// Seal freezes the registry. Registering after Seal panics.
func (r *Registry) Seal() { r.sealed = true }

// Names returns the registered page names in registration order.
func (r *Registry) Names() []string {
	return append([]string{}, r.names...)
}

// Checker returns the checker for the named page, or nil if unregistered.
func (r *Registry) Checker(name string) Checker {
	return r.checkers[name]
}

// CurrentPage identifies the screen, trying checkers in registration order
// and returning the first page that matches. A panicking checker is logged
// at warning and treated as a non-match, so one broken signature cannot
// take identification down with it.
func (r *Registry) CurrentPage(ctx context.Context, s *vision.Screen) (string, bool) {
	for _, name := range r.names {
		if r.check(ctx, name, s) {
			return name, true
		}
	}
	return "", false
}

func (r *Registry) check(ctx context.Context, name string, s *vision.Screen) (matched bool) {
	defer func() {
		if err := recover(); err != nil {
			log.W(ctx, "Page checker %v panicked: %v", name, err)
			matched = false
		}
	}()
	return r.checkers[name](s)
}
