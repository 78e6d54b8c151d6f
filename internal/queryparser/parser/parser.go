// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 INSPIRE Contributors

// Package parser implements the stateful, backtracking recursive-descent
// PEG parser for the SPIRES/Invenio query grammar, ported from
// original_source/inspire_query_parser/{parser,stateful_pypeg_parser}.py.
//
// The parser carries two context-sensitive flags as fields on *Parser
// (never package-level state, per SPEC_FULL.md §5): inParenTerminal and
// inParenSimpleValue. Each call to ParseQuery constructs a fresh *Parser,
// so concurrent calls never share parser state.
package parser

import (
	"fmt"
	"strings"

	"github.com/inspirehep/queryparser/internal/queryparser/config"
	"github.com/inspirehep/queryparser/internal/queryparser/cst"
	"github.com/inspirehep/queryparser/internal/queryparser/lexer"
)

// SyntaxError is returned when the grammar could not match any production
// at all (mirrors the Python parser's plain SyntaxError).
type SyntaxError struct {
	Text string
	Rule string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("parser: expecting %s at %q", e.Rule, truncate(e.Text, 40))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// Parser is the stateful recursive-descent parser. A Parser value must not
// be reused across unrelated ParseQuery calls from different goroutines —
// construct one per call with New().
type Parser struct {
	original string

	inParenTerminal    bool
	inParenSimpleValue bool
}

// New constructs a fresh Parser for a single ParseQuery call.
func New() *Parser {
	return &Parser{}
}

func (p *Parser) pos(text string) lexer.Position {
	offset := len(p.original) - len(text)
	return lexer.Position{Offset: offset, Line: 1, Column: offset + 1}
}

// ParseQuery is the grammar entry point, mirroring the Python Query
// production. It returns the parsed *cst.Query and any unrecognized
// trailing text is folded into the node's MalformedTail.
func (p *Parser) ParseQuery(input string) (*cst.Query, error) {
	p.original = input
	startPos := p.pos(input)

	text := input
	if loc := lexer.FindPrefixRegex.FindStringIndex(text); loc != nil {
		text = text[loc[1]:]
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return &cst.Query{Pos: startPos, Op: &cst.EmptyQuery{Pos: p.pos(text)}}, nil
	}

	rest, stmt, err := p.parseStatement(text)
	if err != nil {
		return nil, err
	}

	remaining := strings.TrimSpace(rest)
	if remaining == "" {
		return &cst.Query{Pos: startPos, Op: stmt}, nil
	}

	// Partial parse: fold the unrecognized tail into MalformedQueryWords,
	// mirroring the parsing_driver.py "unrecognized_text" warning path.
	words := strings.Fields(remaining)
	malformed := &cst.MalformedQueryWords{Pos: p.pos(rest), Children: words}
	return &cst.Query{Pos: startPos, Op: stmt, MalformedTail: malformed}, nil
}

// #### Statement / Expression / BooleanQuery ####

func (p *Parser) parseStatement(text string) (string, cst.Node, error) {
	if rest, bq, err := p.parseBooleanQuery(text); err == nil {
		return rest, bq, nil
	}
	return p.parseExpression(text)
}

func (p *Parser) parseExpression(text string) (string, cst.Node, error) {
	pos := p.pos(text)
	if rest, nq, err := p.parseNotQuery(text); err == nil {
		return rest, nq, nil
	}
	if rest, nkq, err := p.parseNestedKeywordQuery(text); err == nil {
		return rest, nkq, nil
	}
	if rest, pq, err := p.parseParenthesizedQuery(text); err == nil {
		return rest, pq, nil
	}
	if rest, sq, err := p.parseSimpleQuery(text); err == nil {
		return rest, &cst.Expression{Pos: pos, Op: sq}, nil
	}
	return text, nil, &SyntaxError{Text: text, Rule: "Expression"}
}

func (p *Parser) parseNotQuery(text string) (string, cst.Node, error) {
	pos := p.pos(text)
	rest, ok := consumeNotKeyword(text)
	if !ok {
		return text, nil, &SyntaxError{Text: text, Rule: "NotQuery"}
	}
	rest, op, err := p.parseExpression(rest)
	if err != nil {
		return text, nil, err
	}
	return rest, &cst.NotQuery{Pos: pos, Op: op}, nil
}

// consumeNotKeyword matches the case-insensitive "not" keyword followed by
// mandatory whitespace, or a "-" followed by anything (so "-author:x" and
// "-(" both negate).
func consumeNotKeyword(text string) (string, bool) {
	trimmed := strings.TrimLeft(text, " \t")
	lower := strings.ToLower(trimmed)
	switch {
	case strings.HasPrefix(lower, "not ") || strings.HasPrefix(lower, "not\t"):
		return trimmed[len("not"):], true
	case strings.HasPrefix(trimmed, "-"):
		return trimmed[len("-"):], true
	default:
		return text, false
	}
}

func (p *Parser) parseParenthesizedQuery(text string) (string, cst.Node, error) {
	pos := p.pos(text)
	trimmed := strings.TrimLeft(text, " \t")
	if !strings.HasPrefix(trimmed, "(") {
		return text, nil, &SyntaxError{Text: text, Rule: "ParenthesizedQuery"}
	}
	rest, stmt, err := p.parseStatement(trimmed[1:])
	if err != nil {
		return text, nil, err
	}
	rest = strings.TrimLeft(rest, " \t")
	if !strings.HasPrefix(rest, ")") {
		return text, nil, &SyntaxError{Text: text, Rule: "ParenthesizedQuery closing paren"}
	}
	return rest[1:], &cst.ParenthesizedQuery{Pos: pos, Op: stmt}, nil
}

func (p *Parser) parseBooleanQuery(text string) (string, cst.Node, error) {
	pos := p.pos(text)
	rest, left, err := p.parseExpression(text)
	if err != nil {
		return text, nil, err
	}

	afterLeft := rest
	wsRest := strings.TrimLeft(afterLeft, " \t")
	hadWS := wsRest != afterLeft

	if op, opRest, ok := matchBoolOperator(wsRest); ok {
		opRest = strings.TrimLeft(opRest, " \t")
		rRest, right, err := p.parseStatement(opRest)
		if err == nil {
			return rRest, &cst.BooleanQuery{Pos: pos, Left: left, Right: right, BoolOp: op}, nil
		}
	}

	// Implicit-and: Expression immediately followed (after mandatory
	// whitespace) by another Statement.
	if hadWS {
		rRest, right, err := p.parseStatement(wsRest)
		if err == nil {
			return rRest, &cst.BooleanQuery{Pos: pos, Left: left, Right: right, BoolOp: cst.OpAnd}, nil
		}
	}

	return text, nil, &SyntaxError{Text: text, Rule: "BooleanQuery"}
}

func matchBoolOperator(text string) (cst.BooleanOperator, string, bool) {
	lower := strings.ToLower(text)
	switch {
	case strings.HasPrefix(lower, "and") && followedByBoundary(text, 3):
		return cst.OpAnd, text[3:], true
	case strings.HasPrefix(text, "+"):
		return cst.OpAnd, text[1:], true
	case strings.HasPrefix(text, "&"):
		return cst.OpAnd, text[1:], true
	case strings.HasPrefix(lower, "or") && followedByBoundary(text, 2):
		return cst.OpOr, text[2:], true
	case strings.HasPrefix(text, "|"):
		return cst.OpOr, text[1:], true
	}
	return 0, text, false
}

func followedByBoundary(text string, n int) bool {
	if len(text) == n {
		return true
	}
	c := text[n]
	return c == ' ' || c == '\t' || c == '('
}

// #### NestedKeywordQuery ####

func (p *Parser) parseNestedKeywordQuery(text string) (string, cst.Node, error) {
	pos := p.pos(text)
	trimmed := strings.TrimLeft(text, " \t")
	lower := strings.ToLower(trimmed)

	var matchedKeyword string
	for _, kw := range config.NestedKeywords {
		if strings.HasPrefix(lower, kw) {
			matchedKeyword = trimmed[:len(kw)]
			trimmed = trimmed[len(kw):]
			break
		}
	}
	if matchedKeyword == "" {
		return text, nil, &SyntaxError{Text: text, Rule: "NestedKeywordQuery"}
	}

	trimmed = strings.TrimPrefix(trimmed, ":")
	rest, expr, err := p.parseExpression(trimmed)
	if err != nil {
		return text, nil, err
	}
	return rest, &cst.NestedKeywordQuery{Pos: pos, Left: strings.ToLower(matchedKeyword), Right: expr}, nil
}

// #### SimpleQuery / keyword queries ####

func (p *Parser) parseSimpleQuery(text string) (string, cst.Node, error) {
	pos := p.pos(text)
	if rest, ikq, err := p.parseInvenioKeywordQuery(text); err == nil {
		return rest, &cst.SimpleQuery{Pos: pos, Op: ikq}, nil
	}
	if rest, skq, err := p.parseSpiresKeywordQuery(text); err == nil {
		return rest, &cst.SimpleQuery{Pos: pos, Op: skq}, nil
	}
	if rest, v, err := p.parseValue(text); err == nil {
		return rest, &cst.SimpleQuery{Pos: pos, Op: v}, nil
	}
	return text, nil, &SyntaxError{Text: text, Rule: "SimpleQuery"}
}

func (p *Parser) parseInspireKeyword(text string) (string, *cst.InspireKeyword, error) {
	pos := p.pos(text)
	trimmed := strings.TrimLeft(text, " \t")
	for alias, canonical := range config.KeywordAliases {
		if !strings.HasPrefix(strings.ToLower(trimmed), alias) {
			continue
		}
		afterAlias := trimmed[len(alias):]
		if afterAlias == "" || afterAlias[0] == ':' || afterAlias[0] == ' ' || afterAlias[0] == '\t' {
			return afterAlias, &cst.InspireKeyword{Pos: pos, Value: canonical}, nil
		}
	}
	return text, nil, &SyntaxError{Text: text, Rule: "InspireKeyword"}
}

func (p *Parser) parseInvenioKeywordQuery(text string) (string, *cst.InvenioKeywordQuery, error) {
	pos := p.pos(text)
	trimmed := strings.TrimLeft(text, " \t")

	var left *cst.InspireKeyword
	var leftText string
	var rest string

	if r, kw, err := p.parseInspireKeyword(trimmed); err == nil && strings.HasPrefix(strings.TrimLeft(r, " \t"), ":") {
		left, rest = kw, strings.TrimLeft(r, " \t")
	} else {
		m := lexer.TokenRegex.FindString(trimmed)
		if m == "" {
			return text, nil, &SyntaxError{Text: text, Rule: "InvenioKeywordQuery"}
		}
		after := trimmed[len(m):]
		if !strings.HasPrefix(after, ":") {
			return text, nil, &SyntaxError{Text: text, Rule: "InvenioKeywordQuery"}
		}
		leftText, rest = m, after
	}

	rest = rest[1:] // omit ':'
	rest, val, err := p.parseValueNode(rest)
	if err != nil {
		return text, nil, err
	}
	return rest, &cst.InvenioKeywordQuery{Pos: pos, Left: left, LeftText: leftText, Right: val}, nil
}

func (p *Parser) parseSpiresKeywordQuery(text string) (string, *cst.SpiresKeywordQuery, error) {
	pos := p.pos(text)
	rest, kw, err := p.parseInspireKeyword(text)
	if err != nil {
		return text, nil, err
	}
	if !strings.HasPrefix(rest, " ") && !strings.HasPrefix(rest, "\t") {
		return text, nil, &SyntaxError{Text: text, Rule: "SpiresKeywordQuery requires space"}
	}
	rest, val, err := p.parseValueNode(strings.TrimLeft(rest, " \t"))
	if err != nil {
		return text, nil, err
	}
	return rest, &cst.SpiresKeywordQuery{Pos: pos, Left: kw, Right: val}, nil
}

// parseValueNode parses a Value production and returns its *cst.Value.
func (p *Parser) parseValueNode(text string) (string, *cst.Value, error) {
	rest, v, err := p.parseValue(text)
	if err != nil {
		return text, nil, err
	}
	return rest, v, nil
}

// #### Value and its alternatives ####

func (p *Parser) parseValue(text string) (string, *cst.Value, error) {
	pos := p.pos(text)

	if strings.HasPrefix(text, "=") {
		rest, sv, err := p.parseSimpleValue(text[1:])
		if err == nil {
			return rest, &cst.Value{Pos: pos, Op: sv}, nil
		}
	}
	if rest, r, err := p.parseRangeOp(text); err == nil {
		return rest, &cst.Value{Pos: pos, Op: r}, nil
	}
	if rest, g, err := p.parseGreaterEqualOp(text); err == nil {
		return rest, &cst.Value{Pos: pos, Op: g}, nil
	}
	if rest, l, err := p.parseLessEqualOp(text); err == nil {
		return rest, &cst.Value{Pos: pos, Op: l}, nil
	}
	if rest, g, err := p.parseGreaterThanOp(text); err == nil {
		return rest, &cst.Value{Pos: pos, Op: g}, nil
	}
	if rest, l, err := p.parseLessThanOp(text); err == nil {
		return rest, &cst.Value{Pos: pos, Op: l}, nil
	}
	if rest, cv, err := p.parseComplexValue(text); err == nil {
		return rest, &cst.Value{Pos: pos, Op: cv}, nil
	}
	if rest, psv, err := p.parseParenthesizedSimpleValues(text); err == nil {
		return rest, &cst.Value{Pos: pos, Op: psv}, nil
	}
	if rest, sv, err := p.parseSimpleValue(text); err == nil {
		return rest, &cst.Value{Pos: pos, Op: sv}, nil
	}
	return text, nil, &SyntaxError{Text: text, Rule: "Value"}
}

func (p *Parser) parseComplexValue(text string) (string, *cst.ComplexValue, error) {
	pos := p.pos(text)
	m := lexer.ComplexValueRegex.FindString(text)
	if m == "" {
		return text, nil, &SyntaxError{Text: text, Rule: "ComplexValue"}
	}
	return text[len(m):], &cst.ComplexValue{Pos: pos, Value: m}, nil
}

func (p *Parser) parseSimpleRangeValue(text string) (string, *cst.SimpleRangeValue, error) {
	pos := p.pos(text)
	m := lexer.SimpleRangeValueRegex.FindString(text)
	if m == "" {
		return text, nil, &SyntaxError{Text: text, Rule: "SimpleRangeValue"}
	}
	return text[len(m):], &cst.SimpleRangeValue{Pos: pos, Value: m}, nil
}

func (p *Parser) parseRangeOp(text string) (string, *cst.RangeOp, error) {
	pos := p.pos(text)
	rest, left, err := p.parseRangeOperand(text)
	if err != nil {
		return text, nil, err
	}
	if !strings.HasPrefix(rest, "->") {
		return text, nil, &SyntaxError{Text: text, Rule: "RangeOp arrow"}
	}
	rest, right, err := p.parseRangeOperand(rest[2:])
	if err != nil {
		return text, nil, err
	}
	return rest, &cst.RangeOp{Pos: pos, Left: left, Right: right}, nil
}

func (p *Parser) parseRangeOperand(text string) (string, cst.Node, error) {
	if rest, cv, err := p.parseComplexValue(text); err == nil {
		return rest, cv, nil
	}
	if rest, sv, err := p.parseSimpleRangeValue(text); err == nil {
		return rest, sv, nil
	}
	return text, nil, &SyntaxError{Text: text, Rule: "RangeOp operand"}
}

func (p *Parser) parseGreaterThanOp(text string) (string, *cst.GreaterThanOp, error) {
	pos := p.pos(text)
	lower := strings.ToLower(text)
	var rest string
	switch {
	case strings.HasPrefix(lower, "after"):
		rest = text[len("after"):]
	case strings.HasPrefix(text, ">"):
		rest = text[1:]
	default:
		return text, nil, &SyntaxError{Text: text, Rule: "GreaterThanOp"}
	}
	rest = strings.TrimLeft(rest, " \t")
	rest, sv, err := p.parseSimpleValue(rest)
	if err != nil {
		return text, nil, err
	}
	return rest, &cst.GreaterThanOp{Pos: pos, Op: sv}, nil
}

func (p *Parser) parseLessThanOp(text string) (string, *cst.LessThanOp, error) {
	pos := p.pos(text)
	lower := strings.ToLower(text)
	var rest string
	switch {
	case strings.HasPrefix(lower, "before"):
		rest = text[len("before"):]
	case strings.HasPrefix(text, "<"):
		rest = text[1:]
	default:
		return text, nil, &SyntaxError{Text: text, Rule: "LessThanOp"}
	}
	rest = strings.TrimLeft(rest, " \t")
	rest, sv, err := p.parseSimpleValue(rest)
	if err != nil {
		return text, nil, err
	}
	return rest, &cst.LessThanOp{Pos: pos, Op: sv}, nil
}

func (p *Parser) parseGreaterEqualOp(text string) (string, *cst.GreaterEqualOp, error) {
	pos := p.pos(text)
	if strings.HasPrefix(text, ">=") {
		rest, sv, err := p.parseSimpleValue(strings.TrimLeft(text[2:], " \t"))
		if err == nil {
			return rest, &cst.GreaterEqualOp{Pos: pos, Op: sv}, nil
		}
	}
	// "100+" trailing-sign form: digits followed by '+' at a word boundary.
	if rest, raw, ok := matchTrailingSign(text, '+', true); ok {
		return rest, &cst.GreaterEqualOp{Pos: pos, RawText: raw}, nil
	}
	// Non-numeric prefix followed by '+'.
	if rest, raw, ok := matchTrailingSign(text, '+', false); ok {
		return rest, &cst.GreaterEqualOp{Pos: pos, RawText: raw}, nil
	}
	return text, nil, &SyntaxError{Text: text, Rule: "GreaterEqualOp"}
}

func (p *Parser) parseLessEqualOp(text string) (string, *cst.LessEqualOp, error) {
	pos := p.pos(text)
	if strings.HasPrefix(text, "<=") {
		rest, sv, err := p.parseSimpleValue(strings.TrimLeft(text[2:], " \t"))
		if err == nil {
			return rest, &cst.LessEqualOp{Pos: pos, Op: sv}, nil
		}
	}
	if rest, raw, ok := matchTrailingSign(text, '-', true); ok {
		return rest, &cst.LessEqualOp{Pos: pos, RawText: raw}, nil
	}
	if rest, raw, ok := matchTrailingSign(text, '-', false); ok {
		return rest, &cst.LessEqualOp{Pos: pos, RawText: raw}, nil
	}
	return text, nil, &SyntaxError{Text: text, Rule: "LessEqualOp"}
}

// matchTrailingSign matches either a run of digits (digitsOnly) or a run of
// non-{whitespace,(,),:} characters, immediately followed by sign, itself
// followed by whitespace/')'/end-of-input.
func matchTrailingSign(text string, sign byte, digitsOnly bool) (rest string, raw string, ok bool) {
	i := 0
	for i < len(text) {
		c := text[i]
		if digitsOnly {
			if c < '0' || c > '9' {
				break
			}
		} else {
			if c == ' ' || c == '\t' || c == '(' || c == ')' || c == ':' || c == sign {
				break
			}
		}
		i++
	}
	if i == 0 {
		return text, "", false
	}
	if i >= len(text) || text[i] != sign {
		return text, "", false
	}
	after := text[i+1:]
	if after != "" && after[0] != ' ' && after[0] != '\t' && after[0] != ')' {
		return text, "", false
	}
	return after, text[:i], true
}

// #### SimpleValue / SimpleValueUnit ####

func (p *Parser) parseSimpleValue(text string) (string, *cst.SimpleValue, error) {
	pos := p.pos(text)

	type unit struct {
		value string
		isWS  bool
	}
	var units []unit
	rest := text

	for {
		if rest == "" {
			break
		}
		if m := lexer.WhitespaceRegex.FindString(rest); m != "" {
			// Whitespace only continues the unit run if at least one more
			// SimpleValueUnit follows; try parsing ahead.
			after := rest[len(m):]
			r2, u, err := p.parseSimpleValueUnit(after)
			if err != nil {
				break
			}
			units = append(units, unit{value: m, isWS: true})
			units = append(units, unit{value: u.Value})
			rest = r2
			continue
		}
		r2, u, err := p.parseSimpleValueUnit(rest)
		if err != nil {
			break
		}
		units = append(units, unit{value: u.Value})
		rest = r2
	}

	if len(units) == 0 {
		return text, nil, &SyntaxError{Text: text, Rule: "SimpleValue"}
	}

	// "Back up three units before a ComplexValue" rule: once a
	// ComplexValue-shaped unit is found at index idx of units (whitespace
	// units included), keep only units[:idx-2] (clamped to 0 if negative)
	// and hand " " + units[idx-2:] + " " + rest back for re-parsing, so
	// "foo t 'bar'" keeps "foo" and returns " t 'bar' ". When nothing is
	// kept, SimpleValue fails (see DESIGN.md Open Questions).
	for i, u := range units {
		if !u.isWS && lexer.ComplexValueRegex.MatchString(u.value) {
			cut := i - 2
			if cut < 0 {
				cut = 0
			}

			var remaining strings.Builder
			remaining.WriteString(" ")
			for _, u2 := range units[cut:] {
				remaining.WriteString(u2.value)
			}
			remaining.WriteString(" ")
			remaining.WriteString(rest)

			units = units[:cut]
			rest = remaining.String()
			break
		}
	}

	if len(units) == 0 {
		return text, nil, &SyntaxError{Text: text, Rule: "SimpleValue"}
	}

	var sb strings.Builder
	for _, u := range units {
		sb.WriteString(u.value)
	}
	value := strings.TrimSpace(sb.String())
	if value == "" {
		return text, nil, &SyntaxError{Text: text, Rule: "SimpleValue"}
	}

	return rest, &cst.SimpleValue{Pos: pos, Value: value}, nil
}

func (p *Parser) parseSimpleValueUnit(text string) (string, *cst.SimpleValueUnit, error) {
	pos := p.pos(text)

	if m := lexer.DateSpecifiersRegex.FindString(text); m != "" {
		return text[len(m):], &cst.SimpleValueUnit{Pos: pos, Value: m}, nil
	}

	if rest, tok, ok := p.parseTerminalToken(text); ok {
		return rest, &cst.SimpleValueUnit{Pos: pos, Value: tok}, nil
	}

	// Parenthesized-terminal fallback: "(" SimpleValue ")", with
	// inParenTerminal scoped to this sub-parse only (the saved value is
	// restored as soon as the sub-parse returns).
	if strings.HasPrefix(text, "(") {
		saved := p.inParenTerminal
		p.inParenTerminal = true
		rest, sv, err := p.parseSimpleValue(text[1:])
		p.inParenTerminal = saved
		if err == nil && strings.HasPrefix(rest, ")") {
			surface := "(" + sv.Value + ")"
			return rest[1:], &cst.SimpleValueUnit{Pos: pos, Value: surface}, nil
		}
	}

	return text, nil, &SyntaxError{Text: text, Rule: "SimpleValueUnit"}
}

// parseTerminalToken implements SimpleValueUnit.parse_terminal_token.
func (p *Parser) parseTerminalToken(text string) (rest string, token string, ok bool) {
	m := lexer.TokenRegex.FindString(text)
	if m == "" {
		return text, "", false
	}

	if !p.inParenTerminal {
		if lexer.IsDSLKeyword(strings.ToLower(m)) {
			return text, "", false
		}
	}

	after := text[len(m):]
	if lexer.StartsWithColon.MatchString(after) {
		return text, "", false
	}

	if !p.inParenSimpleValue {
		if _, isKeyword := config.KeywordSet[m]; isKeyword {
			return text, "", false
		}
	}

	return after, m, true
}

// #### SimpleValue-boolean-query family (keyword:(... and/or ...)) ####

func (p *Parser) parseSimpleValueNegation(text string) (string, *cst.SimpleValueNegation, error) {
	pos := p.pos(text)
	rest, ok := consumeNotKeyword(text)
	if !ok {
		return text, nil, &SyntaxError{Text: text, Rule: "SimpleValueNegation"}
	}
	rest, sv, err := p.parseSimpleValue(strings.TrimLeft(rest, " \t"))
	if err != nil {
		return text, nil, err
	}
	return rest, &cst.SimpleValueNegation{Pos: pos, Op: sv}, nil
}

func (p *Parser) parseSimpleValueBooleanQuery(text string) (string, *cst.SimpleValueBooleanQuery, error) {
	pos := p.pos(text)

	var left cst.Node
	var rest string
	if r, neg, err := p.parseSimpleValueNegation(text); err == nil {
		left, rest = neg, r
	} else if r, sv, err := p.parseSimpleValue(text); err == nil {
		left, rest = sv, r
	} else {
		return text, nil, &SyntaxError{Text: text, Rule: "SimpleValueBooleanQuery left"}
	}

	rest = strings.TrimLeft(rest, " \t")
	op, rest2, ok := matchBoolOperator(rest)
	if !ok {
		return text, nil, &SyntaxError{Text: text, Rule: "SimpleValueBooleanQuery operator"}
	}
	rest2 = strings.TrimLeft(rest2, " \t")

	var right cst.Node
	if r, sub, err := p.parseSimpleValueBooleanQuery(rest2); err == nil {
		right, rest = sub, r
	} else if r, neg, err := p.parseSimpleValueNegation(rest2); err == nil {
		right, rest = neg, r
	} else if r, sv, err := p.parseSimpleValue(rest2); err == nil {
		right, rest = sv, r
	} else {
		return text, nil, &SyntaxError{Text: text, Rule: "SimpleValueBooleanQuery right"}
	}

	return rest, &cst.SimpleValueBooleanQuery{Pos: pos, Left: left, Right: right, BoolOp: op}, nil
}

func (p *Parser) parseParenthesizedSimpleValues(text string) (string, *cst.ParenthesizedSimpleValues, error) {
	pos := p.pos(text)
	if !strings.HasPrefix(text, "(") {
		return text, nil, &SyntaxError{Text: text, Rule: "ParenthesizedSimpleValues"}
	}

	saved := p.inParenSimpleValue
	p.inParenSimpleValue = true
	defer func() { p.inParenSimpleValue = saved }()

	inner := text[1:]
	var op cst.Node
	var rest string
	var err error

	if r, sbq, e := p.parseSimpleValueBooleanQuery(inner); e == nil {
		op, rest = sbq, r
	} else if r, neg, e := p.parseSimpleValueNegation(inner); e == nil {
		op, rest = neg, r
	} else if r, sv, e := p.parseSimpleValue(inner); e == nil {
		op, rest = sv, r
	} else {
		err = &SyntaxError{Text: text, Rule: "ParenthesizedSimpleValues"}
	}
	if err != nil {
		return text, nil, err
	}

	rest = strings.TrimLeft(rest, " \t")
	if !strings.HasPrefix(rest, ")") {
		return text, nil, &SyntaxError{Text: text, Rule: "ParenthesizedSimpleValues closing paren"}
	}
	return rest[1:], &cst.ParenthesizedSimpleValues{Pos: pos, Op: op}, nil
}
