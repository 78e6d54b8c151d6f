// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 INSPIRE Contributors

// Package lexer provides the grammar terminals shared by the stateful PEG
// parser: the DSL-keyword set, terminal regexes ported from parser.py, and
// participle's lexer.Position type for node positions. A participle flat
// tokenizer for punctuation terminals (Tokens) is also defined; the parser
// does not use it and matches every terminal by hand.
package lexer

import (
	"regexp"
	"sync"

	"github.com/alecthomas/participle/v2/lexer"
)

// Position re-exports participle's position type so that cst nodes can
// embed it without importing participle directly everywhere.
type Position = lexer.Position

// Punctuation token names produced by Tokens.
const (
	TokenLParen  = "LParen"
	TokenRParen  = "RParen"
	TokenColon   = "Colon"
	TokenArrow   = "Arrow"
	TokenGe      = "Ge"
	TokenLe      = "Le"
	TokenGt      = "Gt"
	TokenLt      = "Lt"
	TokenEquals  = "Equals"
	TokenWS      = "whitespace"
)

// Tokens is the participle simple-lexer definition for the flat punctuation
// terminals of the grammar. Order matters: longer patterns before shorter
// ones sharing a prefix ("->" before nothing, ">=" before ">").
var Tokens = lexer.MustSimple([]lexer.SimpleRule{
	{Name: TokenArrow, Pattern: `->`},
	{Name: TokenGe, Pattern: `>=`},
	{Name: TokenLe, Pattern: `<=`},
	{Name: TokenGt, Pattern: `>`},
	{Name: TokenLt, Pattern: `<`},
	{Name: TokenLParen, Pattern: `\(`},
	{Name: TokenRParen, Pattern: `\)`},
	{Name: TokenColon, Pattern: `:`},
	{Name: TokenEquals, Pattern: `=`},
	{Name: TokenWS, Pattern: `\s+`},
})

// booleanKeywords is the DSL keyword table (pypeg2's Keyword.table
// equivalent): terminals that must not be accepted as bare SimpleValue
// tokens outside of a parenthesized-terminal context.
var booleanKeywords = map[string]struct{}{
	"and": {}, "+": {}, "&": {},
	"or": {}, "|": {},
	"not": {}, "-": {},
}

// IsDSLKeyword reports whether the lower-cased token is one of the
// boolean-operator DSL keywords (and/+/&, or/|, not/-).
func IsDSLKeyword(tokenLower string) bool {
	_, ok := booleanKeywords[tokenLower]
	return ok
}

// Keywords returns the read-only DSL keyword set. Exposed as a function
// (mirroring sync.OnceValue) rather than a package var, so call sites can't
// accidentally mutate the map out from under concurrent ParseQuery calls.
var Keywords = sync.OnceValue(func() map[string]struct{} {
	out := make(map[string]struct{}, len(booleanKeywords))
	for k, v := range booleanKeywords {
		out[k] = v
	}
	return out
})

// Terminal-level regexes ported from parser.py.
var (
	// TokenRegex matches a bare terminal token: anything but whitespace or
	// parentheses/colon ("[^\s:)(]+" in the original).
	TokenRegex = regexp.MustCompile(`^[^\s:)(]+`)

	// ComplexValueRegex matches a regex-, single- or double-quoted value.
	ComplexValueRegex = regexp.MustCompile(`^((/.+?/)|('.*?')|(".*?"))`)

	// SimpleRangeValueRegex matches a SimpleRangeValue unit.
	SimpleRangeValueRegex = regexp.MustCompile(`^([^\s)(-]|-+[^\s)(>])+`)

	// DateSpecifiersRegex matches the relative date-specifier grammar used
	// by SimpleValueUnit.parse (yesterday/today/this month/last month,
	// followed by "- N"). It matches only the "- N" form; a bare specifier
	// such as "yesterday" is an ordinary token.
	DateSpecifiersRegex = regexp.MustCompile(`(?i)^(yesterday|today|(this\s+month)|(last\s+month))\s*-\s*\d+`)

	// StartsWithColon recognizes a terminal immediately followed by ":",
	// which signals the token is actually a keyword, not a bare value.
	StartsWithColon = regexp.MustCompile(`^\s*:`)

	// ComparisonTrailingPlus / Minus match the "N+" / "N-" GreaterEqualOp /
	// LessEqualOp trailing-sign forms.
	ComparisonTrailingPlus  = regexp.MustCompile(`\+(\s|\)|$)`)
	ComparisonTrailingMinus = regexp.MustCompile(`-(\s|\)|$)`)

	// FindPrefixRegex matches the ignored SPIRES "find"/"fin"/"fi"/"f"
	// prefix at the start of a query.
	FindPrefixRegex = regexp.MustCompile(`(?i)^(find|fin|fi|f)\s`)

	// WhitespaceRegex matches one or more whitespace characters, used by
	// SimpleValue's contiguous-unit grammar.
	WhitespaceRegex = regexp.MustCompile(`^\s+`)
)
