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

package plan_test

import (
	"testing"

	"github.com/OpenWSGR/autowsgr/core/assert"
	"github.com/OpenWSGR/autowsgr/core/log"
	"github.com/OpenWSGR/autowsgr/wsgr/plan"
)

func TestParseConditions(t *testing.T) {
	ctx := log.Testing(t)

	for _, test := range []struct {
		input    string
		expected []plan.Condition
	}{
		{"(DD >= 2)", []plan.Condition{
			{Field: "DD", Op: plan.GE, Value: 2},
		}},
		{"(CV == 1) and (SS != 0)", []plan.Condition{
			{Field: "CV", Op: plan.EQ, Value: 1},
			{Field: "SS", Op: plan.NE, Value: 0},
		}},
		{"( BB > 1 )", []plan.Condition{
			{Field: "BB", Op: plan.GT, Value: 1},
		}},
		{"(ALL <= 6) and (CA < 2) and (CL >= 1)", []plan.Condition{
			{Field: "ALL", Op: plan.LE, Value: 6},
			{Field: "CA", Op: plan.LT, Value: 2},
			{Field: "CL", Op: plan.GE, Value: 1},
		}},
	} {
		got, err := plan.ParseConditions(test.input)
		assert.For(ctx, "%s err", test.input).ThatError(err).Succeeded()
		assert.For(ctx, "%s", test.input).ThatSlice(got).Equals(test.expected)
	}
}

func TestParseConditionsRejectsMalformed(t *testing.T) {
	ctx := log.Testing(t)

	for _, test := range []struct {
		input  string
		offset int
	}{
		{"", 0},                          // empty
		{"DD >= 2", 0},                   // missing parens
		{"(XX >= 2)", 1},                 // unknown class
		{"(DD >= 2) or (CV == 1)", 10},   // disjunction
		{"(DD >= two)", 7},               // not a number
		{"(DD % 2)", 4},                  // bad operator
		{"(DD >= 2", 9},                  // unterminated
		{"(DD >= 2) (CV == 1)", 10},      // missing and
		{"(DD >= 2) and garbage here", 14}, // junk after and
	} {
		_, err := plan.ParseConditions(test.input)
		assert.For(ctx, "%q err", test.input).ThatError(err).Failed()
		perr, ok := err.(*plan.ParseError)
		assert.For(ctx, "%q type", test.input).That(ok).Equals(true)
		assert.For(ctx, "%q offset", test.input).ThatInteger(perr.Offset).Equals(test.offset)
	}
}

func TestParseAction(t *testing.T) {
	ctx := log.Testing(t)

	for _, test := range []struct {
		input    string
		expected plan.Action
	}{
		{"retreat", plan.Action{Kind: plan.Retreat}},
		{"detour", plan.Action{Kind: plan.Detour}},
		{"1", plan.Action{Kind: plan.SetFormation, Formation: 1}},
		{" 5 ", plan.Action{Kind: plan.SetFormation, Formation: 5}},
	} {
		got, err := plan.ParseAction(test.input)
		assert.For(ctx, "%q err", test.input).ThatError(err).Succeeded()
		assert.For(ctx, "%q", test.input).That(got).Equals(test.expected)
	}

	for _, input := range []string{"", "0", "6", "charge", "-1"} {
		_, err := plan.ParseAction(input)
		assert.For(ctx, "%q err", input).ThatError(err).Failed()
	}
}

func TestParseRule(t *testing.T) {
	ctx := log.Testing(t)

	rule, err := plan.ParseRule("(CV >= 2) and (BB >= 1)", "retreat")
	assert.For(ctx, "err").ThatError(err).Succeeded()
	assert.For(ctx, "conditions").ThatSlice(rule.Conditions).IsLength(2)
	assert.For(ctx, "action").That(rule.Action).Equals(plan.Action{Kind: plan.Retreat})

	_, err = plan.ParseRule("(CV >= 2)", "charge")
	assert.For(ctx, "bad action").ThatError(err).Failed()
}
