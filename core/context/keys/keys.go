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

// Package keys tracks the set of keys stored on a context, so that the
// values of one context can be copied onto another.
package keys

import "context"

// keySetType is hidden so nobody can reach the key list directly.
type keySetType int

// keySet is the hidden key used to store the key list on the context.
const keySet = keySetType(0)

// link is one entry of the key list. Each WithValue pushes a new head.
type link struct {
	value interface{}
	next  *link
}

// Get returns the set of keys that have been stored with WithValue.
func Get(ctx context.Context) []interface{} {
	seen := map[interface{}]bool{}
	result := make([]interface{}, 0, 10)
	for l, _ := ctx.Value(keySet).(*link); l != nil; l = l.next {
		if !seen[l.value] {
			seen[l.value] = true
			result = append(result, l.value)
		}
	}
	return result
}

// WithValue registers the key as well as adding the value to the context.
func WithValue(ctx context.Context, key interface{}, value interface{}) context.Context {
	old, _ := ctx.Value(keySet).(*link)
	ctx = context.WithValue(ctx, key, value)
	return context.WithValue(ctx, keySet, &link{value: key, next: old})
}

// Clone copies the tracked values of from onto ctx.
// This is used to produce associated but detached contexts.
func Clone(ctx context.Context, from context.Context) context.Context {
	for _, key := range Get(from) {
		ctx = WithValue(ctx, key, from.Value(key))
	}
	return ctx
}
