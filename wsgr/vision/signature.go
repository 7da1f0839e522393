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

package vision

import "fmt"

// PixelRule is a single sampled point: it matches when the color at the
// relative coordinate (X, Y) is within Tolerance of Color.
type PixelRule struct {
	X, Y      float64
	Color     Color
	Tolerance float64
}

func (r PixelRule) check(s *Screen) (actual Color, dist float64, ok bool) {
	actual = s.RGBAt(r.X, r.Y)
	dist = Distance(actual, r.Color)
	return actual, dist, dist <= r.Tolerance
}

// Strategy selects how a signature combines its rules.
type Strategy int

const (
	// All requires every rule to match.
	All Strategy = iota
	// Any requires at least one rule to match.
	Any
	// Count requires at least Threshold rules to match.
	Count
)

func (s Strategy) String() string {
	switch s {
	case All:
		return "all"
	case Any:
		return "any"
	case Count:
		return "count"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// Signature identifies a screen by a sparse set of sampled pixels.
type Signature struct {
	Name      string
	rules     []PixelRule
	strategy  Strategy
	threshold int
}

// NewSignature returns a signature combining rules with the given strategy.
// It panics on malformed input: no rules, a coordinate outside [0,1], a
// negative tolerance, or a Count threshold that can never be met. Signatures
// are fixed UI geometry declared at startup, so these are programmer errors.
func NewSignature(name string, strategy Strategy, threshold int, rules ...PixelRule) Signature {
	if len(rules) == 0 {
		panic(fmt.Errorf("Signature %s has no rules", name))
	}
	for _, r := range rules {
		if r.X < 0 || r.X > 1 || r.Y < 0 || r.Y > 1 {
			panic(fmt.Errorf("Signature %s: coordinate (%v, %v) outside [0,1]", name, r.X, r.Y))
		}
		if r.Tolerance < 0 {
			panic(fmt.Errorf("Signature %s: negative tolerance %v", name, r.Tolerance))
		}
	}
	if strategy == Count && (threshold < 1 || threshold > len(rules)) {
		panic(fmt.Errorf("Signature %s: count threshold %d outside 1..%d", name, threshold, len(rules)))
	}
	return Signature{Name: name, rules: rules, strategy: strategy, threshold: threshold}
}

// AllOf returns a signature that matches when every rule matches.
func AllOf(name string, rules ...PixelRule) Signature {
	return NewSignature(name, All, 0, rules...)
}

// AnyOf returns a signature that matches when at least one rule matches.
func AnyOf(name string, rules ...PixelRule) Signature {
	return NewSignature(name, Any, 0, rules...)
}

// AtLeast returns a signature that matches when at least n rules match.
func AtLeast(name string, n int, rules ...PixelRule) Signature {
	return NewSignature(name, Count, n, rules...)
}

// Rules returns the number of rules in the signature.
func (sig Signature) Rules() int { return len(sig.rules) }

// Result is the outcome of checking a signature against a screen.
type Result struct {
	Matched      bool
	MatchedCount int
	TotalCount   int
	// Details holds one entry per evaluated rule. Only CheckDetailed fills
	// it in.
	Details []RuleDetail
}

// RuleDetail records how a single rule evaluated.
type RuleDetail struct {
	Rule     PixelRule
	Actual   Color
	Distance float64
	Matched  bool
}

// Check evaluates the signature against the screen, short-circuiting where
// the strategy allows: All stops at the first miss, Any at the first hit,
// and Count as soon as the threshold is reached.
func (sig Signature) Check(s *Screen) Result {
	res := Result{TotalCount: len(sig.rules)}
	for _, r := range sig.rules {
		_, _, ok := r.check(s)
		if ok {
			res.MatchedCount++
		}
		switch sig.strategy {
		case All:
			if !ok {
				return res
			}
		case Any:
			if ok {
				res.Matched = true
				return res
			}
		case Count:
			if res.MatchedCount >= sig.threshold {
				res.Matched = true
				return res
			}
		}
	}
	res.Matched = sig.strategy == All
	return res
}

// CheckDetailed evaluates every rule with no short-circuiting and records
// per-rule detail, for debugging signatures against saved screens.
func (sig Signature) CheckDetailed(s *Screen) Result {
	res := Result{TotalCount: len(sig.rules), Details: make([]RuleDetail, 0, len(sig.rules))}
	for _, r := range sig.rules {
		actual, dist, ok := r.check(s)
		if ok {
			res.MatchedCount++
		}
		res.Details = append(res.Details, RuleDetail{Rule: r, Actual: actual, Distance: dist, Matched: ok})
	}
	switch sig.strategy {
	case All:
		res.Matched = res.MatchedCount == res.TotalCount
	case Any:
		res.Matched = res.MatchedCount > 0
	case Count:
		res.Matched = res.MatchedCount >= sig.threshold
	}
	return res
}

// Identify returns the first signature that matches the screen, in the given
// order.
func Identify(s *Screen, sigs ...Signature) (Signature, bool) {
	for _, sig := range sigs {
		if sig.Check(s).Matched {
			return sig, true
		}
	}
	return Signature{}, false
}

// IdentifyAll returns every signature that matches the screen, in the given
// order.
func IdentifyAll(s *Screen, sigs ...Signature) []Signature {
	var out []Signature
	for _, sig := range sigs {
		if sig.Check(s).Matched {
			out = append(out, sig)
		}
	}
	return out
}
