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

package keys_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/OpenWSGR/autowsgr/core/context/keys"
)

func TestNoKeys(t *testing.T) {
	ctx := context.Background()
	list := keys.Get(ctx)
	if len(list) != 0 {
		t.Errorf("Background context had non zero sized key list")
	}
}

func TestKeys(t *testing.T) {
	ctx := context.Background()
	ctx = keys.WithValue(ctx, "A", "a")
	ctx = keys.WithValue(ctx, "B", "b")
	ctx = keys.WithValue(ctx, "A", "c")

	if ctx.Value("A") != "c" {
		t.Errorf("Context had %v for A, expected c", ctx.Value("A"))
	}
	if ctx.Value("B") != "b" {
		t.Errorf("Context had %v for B, expected b", ctx.Value("B"))
	}
	list := keys.Get(ctx)
	if len(list) != 2 {
		t.Errorf("Key list was the wrong length, got %d expected 2", len(list))
	}
}

func TestManyKeys(t *testing.T) {
	ctx := context.Background()
	const max = 100
	for i := 0; i < max; i++ {
		ctx = keys.WithValue(ctx, i, fmt.Sprint(i))
	}
	list := keys.Get(ctx)
	if len(list) != max {
		t.Errorf("Key list was the wrong length, got %d expected %d", len(list), max)
	}
}

func TestClone(t *testing.T) {
	a := keys.WithValue(context.Background(), "a", "A")
	b := keys.WithValue(context.Background(), "b", "B")
	c := keys.Clone(b, a)

	got := fmt.Sprintf("%v", keys.Get(c))
	expect := "[a b]"
	if got != expect {
		t.Errorf("Cloned key list incorrect, got %v expected %v", got, expect)
	}
	if c.Value("a") != "A" {
		t.Errorf("Cloned context had %v for a, expected A", c.Value("a"))
	}
}
