// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 INSPIRE Contributors

package emit_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/inspirehep/queryparser/internal/queryparser/ast"
	"github.com/inspirehep/queryparser/internal/queryparser/emit"
)

func TestVisit_EmptyQuery(t *testing.T) {
	v := emit.New()
	got := v.Visit(ast.EmptyQuery{})
	assert.Equal(t, map[string]any{"match_all": map[string]any{}}, got)
}

func TestVisit_ValueOpGeneratesMultiMatch(t *testing.T) {
	v := emit.New()
	got := v.Visit(ast.ValueOp{Value: ast.Value{Text: "ellis"}})

	mm, ok := got["multi_match"].(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, "ellis", mm["query"])
	assert.Equal(t, []any{"_all"}, mm["fields"])
}

func TestVisit_TitleKeyword(t *testing.T) {
	v := emit.New()
	got := v.Visit(ast.KeywordOp{Keyword: "title", Value: ast.Value{Text: "higgs boson"}})

	match, ok := got["match"].(map[string]any)
	assert.True(t, ok)
	inner, ok := match["titles.full_title"].(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, "higgs boson", inner["query"])
	assert.Equal(t, "and", inner["operator"])
}

func TestVisit_TitleKeywordWithSymbolCharUsesMatchPhrase(t *testing.T) {
	v := emit.New()
	got := v.Visit(ast.KeywordOp{Keyword: "title", Value: ast.Value{Text: "Z'"}})

	phrase, ok := got["match_phrase"].(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, "Z'", phrase["titles.full_title"])
}

func TestVisit_AuthorKeywordExactMatchUsesTerm(t *testing.T) {
	v := emit.New()
	got := v.Visit(ast.KeywordOp{Keyword: "author", Value: ast.ExactMatchValue{Text: "ellis"}})

	term, ok := got["term"].(map[string]any)
	assert.True(t, ok, "expected a term query, got %#v", got)
	assert.Equal(t, "ellis", term["authors.full_name"])
}

func TestVisit_AuthorKeywordPartialMatchUsesQueryString(t *testing.T) {
	v := emit.New()
	got := v.Visit(ast.KeywordOp{Keyword: "author", Value: ast.PartialMatchValue{Text: "ellis"}})

	qs, ok := got["query_string"].(map[string]any)
	assert.True(t, ok, "expected a query_string query, got %#v", got)
	assert.Equal(t, "*ellis*", qs["query"])
	assert.Equal(t, "authors.full_name", qs["default_field"])
	assert.Equal(t, true, qs["analyze_wildcard"])
}

func TestVisit_AuthorKeywordRegexUsesNestedRegexp(t *testing.T) {
	v := emit.New()
	got := v.Visit(ast.KeywordOp{Keyword: "author", Value: ast.RegexValue{Text: "^xi$"}})

	nested, ok := got["nested"].(map[string]any)
	assert.True(t, ok, "expected a nested query, got %#v", got)
	assert.Equal(t, "authors", nested["path"])

	inner, ok := nested["query"].(map[string]any)
	assert.True(t, ok)
	regexp, ok := inner["regexp"].(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, "^xi$", regexp["authors.full_name"])
}

func TestVisit_AuthorKeywordWithBAI(t *testing.T) {
	v := emit.New()
	got := v.Visit(ast.KeywordOp{Keyword: "author", Value: ast.Value{Text: "M.E.Peskin.1"}})

	nested, ok := got["nested"].(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, "authors", nested["path"])
}

func TestVisit_AuthorKeywordPlainName(t *testing.T) {
	v := emit.New()
	got := v.Visit(ast.KeywordOp{Keyword: "author", Value: ast.Value{Text: "Ellis, John"}})

	nested, ok := got["nested"].(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, "authors", nested["path"])
}

func TestVisit_JournalKeywordSplitsFields(t *testing.T) {
	v := emit.New()
	got := v.Visit(ast.KeywordOp{Keyword: "journal", Value: ast.Value{Text: "Phys.Rev.,D51,123"}})

	nested, ok := got["nested"].(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, "publication_info", nested["path"])

	inner, ok := nested["query"].(map[string]any)
	assert.True(t, ok)
	b, ok := inner["bool"].(map[string]any)
	assert.True(t, ok)
	assert.Len(t, b["must"], 3)
}

func TestVisit_TypeCodeKeywordMapsShorthand(t *testing.T) {
	v := emit.New()
	got := v.Visit(ast.KeywordOp{Keyword: "type-code", Value: ast.Value{Text: "published"}})

	match, ok := got["match"].(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, true, match["refereed"])
}

func TestVisit_TypeCodeKeywordFallsBackToDocumentTypeShould(t *testing.T) {
	v := emit.New()
	got := v.Visit(ast.KeywordOp{Keyword: "type-code", Value: ast.Value{Text: "unknown-type"}})

	b, ok := got["bool"].(map[string]any)
	assert.True(t, ok)
	should, ok := b["should"].([]any)
	assert.True(t, ok)
	assert.Len(t, should, 2)

	first := should[0].(map[string]any)["match"].(map[string]any)
	assert.Equal(t, "unknown-type", first["document_type"])
	second := should[1].(map[string]any)["match"].(map[string]any)
	assert.Equal(t, "unknown-type", second["publication_type"])
}

func TestVisit_UnmappedKeywordFallsBackToShouldOverLiteralAndAll(t *testing.T) {
	v := emit.New()
	got := v.Visit(ast.KeywordOp{Keyword: "banana", Value: ast.Value{Text: "split"}})

	b, ok := got["bool"].(map[string]any)
	assert.True(t, ok)
	should, ok := b["should"].([]any)
	assert.True(t, ok)
	assert.Len(t, should, 2)

	first := should[0].(map[string]any)["match"].(map[string]any)
	assert.Equal(t, "split", first["banana"])
	second := should[1].(map[string]any)["match"].(map[string]any)
	assert.Equal(t, "banana:split", second["_all"])
}

func TestVisit_UnmappedKeywordWithTexkeyShapeUsesTexkeysRaw(t *testing.T) {
	v := emit.New()
	got := v.Visit(ast.KeywordOp{Keyword: "xyzkey", Value: ast.Value{Text: "2020abc"}})

	match, ok := got["match"].(map[string]any)
	assert.True(t, ok, "expected a match query, got %#v", got)
	assert.Equal(t, "xyzkey:2020abc", match["texkeys.raw"])
}

func TestVisit_DateKeywordBareValue(t *testing.T) {
	v := emit.New()
	got := v.Visit(ast.KeywordOp{Keyword: "date-added", Value: ast.Value{Text: "2015-03-14"}})

	rng, ok := got["range"].(map[string]any)
	assert.True(t, ok)
	inner, ok := rng["_created"].(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, "2015-03-14||/d", inner["gte"])
	assert.Equal(t, "2015-03-15||/d", inner["lt"])
}

func TestVisit_DateKeywordRange(t *testing.T) {
	v := emit.New()
	got := v.Visit(ast.KeywordOp{
		Keyword: "date-added",
		Value:   ast.RangeOp{Left: ast.Value{Text: "2000"}, Right: ast.Value{Text: "2010"}},
	})

	rng, ok := got["range"].(map[string]any)
	assert.True(t, ok)
	inner, ok := rng["_created"].(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, "2000||/y", inner["gte"])
	assert.Equal(t, "2010||/y", inner["lte"])
}

func TestVisit_MultiFieldKeywordWrapsInShouldBool(t *testing.T) {
	v := emit.New()
	got := v.Visit(ast.KeywordOp{Keyword: "affiliation-id", Value: ast.Value{Text: "INST-1"}})

	b, ok := got["bool"].(map[string]any)
	assert.True(t, ok)
	assert.Len(t, b["should"], 4)
}

func TestVisit_CitedbyKeywordGeneratesTermsLookup(t *testing.T) {
	v := emit.New()
	got := v.Visit(ast.KeywordOp{Keyword: "citedby", Value: ast.Value{Text: "12345"}})

	terms, ok := got["terms"].(map[string]any)
	assert.True(t, ok)
	lookup, ok := terms["references.record.$ref.raw"].(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, "12345", lookup["id"])
	assert.Equal(t, "self.$ref.raw", lookup["path"])
}

func TestVisit_AndOpWrapsInMustBool(t *testing.T) {
	v := emit.New()
	got := v.Visit(ast.AndOp{
		Left:  ast.KeywordOp{Keyword: "author", Value: ast.Value{Text: "ellis"}},
		Right: ast.KeywordOp{Keyword: "title", Value: ast.Value{Text: "higgs"}},
	})

	b, ok := got["bool"].(map[string]any)
	assert.True(t, ok)
	assert.Len(t, b["must"], 2)
}

func TestVisit_OrOpWrapsInShouldBool(t *testing.T) {
	v := emit.New()
	got := v.Visit(ast.OrOp{
		Left:  ast.KeywordOp{Keyword: "author", Value: ast.Value{Text: "ellis"}},
		Right: ast.KeywordOp{Keyword: "author", Value: ast.Value{Text: "witten"}},
	})

	b, ok := got["bool"].(map[string]any)
	assert.True(t, ok)
	assert.Len(t, b["should"], 2)
}

func TestVisit_NotOpWrapsInMustNotBool(t *testing.T) {
	v := emit.New()
	got := v.Visit(ast.NotOp{Child: ast.KeywordOp{Keyword: "author", Value: ast.Value{Text: "ellis"}}})

	b, ok := got["bool"].(map[string]any)
	assert.True(t, ok)
	assert.Len(t, b["must_not"], 1)
}

func TestVisit_QueryWithMalformedPartCombinesBothHalves(t *testing.T) {
	v := emit.New()
	got := v.Visit(ast.QueryWithMalformedPart{
		Recognized: ast.KeywordOp{Keyword: "author", Value: ast.Value{Text: "ellis"}},
		Malformed:  ast.MalformedQuery{Words: []string{"and", "or"}},
	})

	b, ok := got["bool"].(map[string]any)
	assert.True(t, ok)
	assert.Len(t, b["must"], 2)
}

func TestVisit_MalformedQueryUsesSimpleQueryStringWithColonsStripped(t *testing.T) {
	v := emit.New()
	got := v.Visit(ast.MalformedQuery{Words: []string{"and", "and"}})

	sqs, ok := got["simple_query_string"].(map[string]any)
	assert.True(t, ok, "expected a simple_query_string query, got %#v", got)
	assert.Equal(t, []any{"_all"}, sqs["fields"])
	assert.Equal(t, "and and", sqs["query"])
}

func TestVisit_MalformedQueryStripsColonsFromWords(t *testing.T) {
	v := emit.New()
	got := v.Visit(ast.MalformedQuery{Words: []string{"foo:bar", "baz"}})

	sqs, ok := got["simple_query_string"].(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, "foobar baz", sqs["query"])
}

func TestVisit_RegexValueBareQuery(t *testing.T) {
	v := emit.New()
	got := v.Visit(ast.ValueOp{Value: ast.RegexValue{Text: "^abc$"}})

	regexp, ok := got["regexp"].(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, "^abc$", regexp["_all"])
}

func TestVisit_ExactMatchFieldQueryUsesTerm(t *testing.T) {
	v := emit.New()
	got := v.Visit(ast.KeywordOp{Keyword: "subject", Value: ast.ExactMatchValue{Text: "hep-th"}})

	term, ok := got["term"].(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, "hep-th", term["facet_inspire_categories"])
}

func TestVisit_PartialMatchFieldQueryUsesQueryStringWithWildcards(t *testing.T) {
	v := emit.New()
	got := v.Visit(ast.KeywordOp{Keyword: "subject", Value: ast.PartialMatchValue{Text: "hep"}})

	qs, ok := got["query_string"].(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, "*hep*", qs["query"])
	assert.Equal(t, "facet_inspire_categories", qs["default_field"])
	assert.Equal(t, true, qs["analyze_wildcard"])
}

func TestVisit_WildcardValueUsesQueryString(t *testing.T) {
	v := emit.New()
	got := v.Visit(ast.KeywordOp{Keyword: "subject", Value: ast.Value{Text: "hep*", HasWildcard: true}})

	qs, ok := got["query_string"].(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, "*hep*", qs["query"])
}

// sanity-check against time zone/DST surprises: a date comparison should
// never depend on wall-clock time.
func TestVisit_DateComparisonOpsAreDeterministic(t *testing.T) {
	v := emit.New()
	got1 := v.Visit(ast.KeywordOp{Keyword: "date", Value: ast.GreaterThanOp{Value: ast.Value{Text: "2015"}}})
	time.Sleep(time.Millisecond)
	got2 := v.Visit(ast.KeywordOp{Keyword: "date", Value: ast.GreaterThanOp{Value: ast.Value{Text: "2015"}}})
	assert.Equal(t, got1, got2)
}
