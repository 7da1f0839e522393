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

package plan

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/OpenWSGR/autowsgr/wsgr/ship"
)

// ParseError reports a malformed rule string. Rules are validated when a
// plan loads, so a ParseError is fatal at load time, never at runtime.
type ParseError struct {
	Input  string
	Offset int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing rule %q at offset %d: %s", e.Input, e.Offset, e.Reason)
}

// ParseConditions parses a condition string of the strict grammar
//
//	"(" CLASS OP NUMBER ")" ( "and" "(" CLASS OP NUMBER ")" )*
//
// where CLASS is a ship class token or ALL, and OP is one of
// >=, <=, >, <, ==, !=. Conditions are conjunctive only; "or" is rejected
// so the string can never reach a general expression evaluator. Use
// multiple rules for alternatives.
func ParseConditions(input string) ([]Condition, error) {
	p := &condParser{input: input}
	var conditions []Condition

	p.skipSpace()
	if p.done() {
		return nil, p.fail("empty rule")
	}
	for {
		c, err := p.group()
		if err != nil {
			return nil, err
		}
		conditions = append(conditions, c)

		p.skipSpace()
		if p.done() {
			return conditions, nil
		}
		if err := p.keywordAnd(); err != nil {
			return nil, err
		}
		p.skipSpace()
	}
}

// condParser scans a single condition string. It keeps the byte offset of
// the token being read so errors point into the input.
type condParser struct {
	input string
	pos   int
}

func (p *condParser) fail(reason string, args ...interface{}) error {
	return &ParseError{Input: p.input, Offset: p.pos, Reason: fmt.Sprintf(reason, args...)}
}

func (p *condParser) done() bool {
	return p.pos >= len(p.input)
}

func (p *condParser) skipSpace() {
	for !p.done() && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t') {
		p.pos++
	}
}

// word reads a run of letters, digits and underscores.
func (p *condParser) word() string {
	start := p.pos
	for !p.done() {
		ch := p.input[p.pos]
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') || ch == '_' || ch == '.' {
			p.pos++
			continue
		}
		break
	}
	return p.input[start:p.pos]
}

// group parses one parenthesized condition.
func (p *condParser) group() (Condition, error) {
	if p.done() || p.input[p.pos] != '(' {
		return Condition{}, p.fail("expected '('")
	}
	p.pos++

	p.skipSpace()
	start := p.pos
	field := p.word()
	if field == "" {
		return Condition{}, p.fail("expected a ship class")
	}
	if _, ok := ship.ParseClass(field); !ok {
		p.pos = start
		return Condition{}, p.fail("unknown ship class %q", field)
	}

	p.skipSpace()
	op, err := p.operator()
	if err != nil {
		return Condition{}, err
	}

	p.skipSpace()
	start = p.pos
	number := p.word()
	value, convErr := strconv.ParseFloat(number, 64)
	if number == "" || convErr != nil {
		p.pos = start
		return Condition{}, p.fail("expected a number")
	}

	p.skipSpace()
	if p.done() || p.input[p.pos] != ')' {
		return Condition{}, p.fail("expected ')'")
	}
	p.pos++

	return Condition{Field: field, Op: op, Value: value}, nil
}

func (p *condParser) operator() (Op, error) {
	rest := p.input[p.pos:]
	// Two-character operators first, so ">=" is not read as ">".
	for _, c := range []struct {
		text string
		op   Op
	}{
		{">=", GE}, {"<=", LE}, {"==", EQ}, {"!=", NE}, {">", GT}, {"<", LT},
	} {
		if strings.HasPrefix(rest, c.text) {
			p.pos += len(c.text)
			return c.op, nil
		}
	}
	return 0, p.fail("expected a comparison operator")
}

// keywordAnd consumes the "and" joining two groups, rejecting "or"
// explicitly so the error says why.
func (p *condParser) keywordAnd() error {
	start := p.pos
	word := p.word()
	switch word {
	case "and":
		return nil
	case "or":
		p.pos = start
		return p.fail("\"or\" is not allowed; split into separate rules")
	default:
		p.pos = start
		return p.fail("expected \"and\"")
	}
}

// ParseAction parses a rule action token: "retreat", "detour", or a
// formation id 1..5.
func ParseAction(input string) (Action, error) {
	token := strings.TrimSpace(input)
	switch token {
	case "retreat":
		return Action{Kind: Retreat}, nil
	case "detour":
		return Action{Kind: Detour}, nil
	}
	if f, err := strconv.Atoi(token); err == nil {
		if f < 1 || f > FormationCount {
			return Action{}, &ParseError{Input: input, Reason: fmt.Sprintf("formation %d outside 1..%d", f, FormationCount)}
		}
		return Action{Kind: SetFormation, Formation: f}, nil
	}
	return Action{}, &ParseError{Input: input, Reason: "expected retreat, detour or a formation id"}
}

// ParseRule parses a (condition string, action token) pair.
func ParseRule(condition, action string) (Rule, error) {
	conditions, err := ParseConditions(condition)
	if err != nil {
		return Rule{}, err
	}
	act, err := ParseAction(action)
	if err != nil {
		return Rule{}, err
	}
	return Rule{Conditions: conditions, Action: act}, nil
}

// FormationRule builds the rule matching a recognized enemy formation
// name, mapping it to the given action.
func FormationRule(name string, action Action) Rule {
	return Rule{
		Conditions: []Condition{{Field: formationKey(name), Op: EQ, Value: 1}},
		Action:     action,
	}
}
