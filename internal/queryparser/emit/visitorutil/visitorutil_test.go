// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 INSPIRE Contributors

package visitorutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inspirehep/queryparser/internal/queryparser/emit/visitorutil"
)

func TestGenerateMatchQuery_WithAndOperator(t *testing.T) {
	got := visitorutil.GenerateMatchQuery("title", "higgs boson", true)
	want := map[string]any{
		"match": map[string]any{
			"title": map[string]any{"query": "higgs boson", "operator": "and"},
		},
	}
	assert.Equal(t, want, got)
}

func TestGenerateMatchQuery_WithoutAndOperator(t *testing.T) {
	got := visitorutil.GenerateMatchQuery("title", "higgs boson", false)
	want := map[string]any{"match": map[string]any{"title": "higgs boson"}}
	assert.Equal(t, want, got)
}

func TestGenerateMatchQuery_BooleanLiteralBypassesOperator(t *testing.T) {
	got := visitorutil.GenerateMatchQuery("core", "true", true)
	want := map[string]any{"match": map[string]any{"core": "true"}}
	assert.Equal(t, want, got)
}

func TestGenerateNestedQuery(t *testing.T) {
	inner := map[string]any{"match": map[string]any{"authors.full_name": "ellis"}}
	got := visitorutil.GenerateNestedQuery("authors", inner)
	want := map[string]any{"nested": map[string]any{"path": "authors", "query": inner}}
	assert.Equal(t, want, got)
}

func TestGenerateNestedQuery_EmptyQueryReturnsEmptyMap(t *testing.T) {
	got := visitorutil.GenerateNestedQuery("authors", map[string]any{})
	assert.Empty(t, got)
}

func TestWrapQueriesInBoolClausesIfMoreThanOne(t *testing.T) {
	q1 := map[string]any{"match": map[string]any{"a": "1"}}
	q2 := map[string]any{"match": map[string]any{"b": "2"}}

	assert.Empty(t, visitorutil.WrapQueriesInBoolClausesIfMoreThanOne(nil, true, false))

	got := visitorutil.WrapQueriesInBoolClausesIfMoreThanOne([]map[string]any{q1}, true, false)
	assert.Equal(t, q1, got)

	got = visitorutil.WrapQueriesInBoolClausesIfMoreThanOne([]map[string]any{q1}, true, true)
	assert.Equal(t, map[string]any{"bool": map[string]any{"must": []any{q1}}}, got)

	got = visitorutil.WrapQueriesInBoolClausesIfMoreThanOne([]map[string]any{q1, q2}, true, false)
	assert.Equal(t, map[string]any{"bool": map[string]any{"must": []any{q1, q2}}}, got)

	got = visitorutil.WrapQueriesInBoolClausesIfMoreThanOne([]map[string]any{q1, q2}, false, false)
	assert.Equal(t, map[string]any{"bool": map[string]any{"should": []any{q1, q2}}}, got)
}

func TestWrapQueriesInBoolClausesIfMoreThanOne_SkipsEmptyQueries(t *testing.T) {
	q1 := map[string]any{"match": map[string]any{"a": "1"}}
	got := visitorutil.WrapQueriesInBoolClausesIfMoreThanOne([]map[string]any{{}, q1, {}}, true, false)
	assert.Equal(t, q1, got)
}

func TestWrapQueryInNestedIfFieldIsNested(t *testing.T) {
	q := map[string]any{"match": map[string]any{"authors.full_name": "ellis"}}
	nestedFields := []string{"authors", "publication_info"}

	got := visitorutil.WrapQueryInNestedIfFieldIsNested(q, "authors.full_name", nestedFields)
	assert.Equal(t, map[string]any{"nested": map[string]any{"path": "authors", "query": q}}, got)

	got = visitorutil.WrapQueryInNestedIfFieldIsNested(q, "document_type", nestedFields)
	assert.Equal(t, q, got)
}

func TestEscapeQueryStringSpecialCharacters(t *testing.T) {
	got := visitorutil.EscapeQueryStringSpecialCharacters(`a+b-c:d"e`)
	assert.Equal(t, `a\+b\-c\:d\"e`, got)
}

func TestSplitJournalValue(t *testing.T) {
	tests := []struct {
		in              string
		title           string
		volume          string
		pageOrArtID     string
	}{
		{"Phys.Rev.", "Phys.Rev.", "", ""},
		{"Phys.Rev.,D51", "Phys.Rev.", "D51", ""},
		{"Phys.Rev.,D51,123", "Phys.Rev.", "D51", "123"},
		{"Phys.Rev., D51 , 123", "Phys.Rev.", "D51", "123"},
	}

	for _, tt := range tests {
		title, volume, pageOrArtID := visitorutil.SplitJournalValue(tt.in)
		assert.Equal(t, tt.title, title)
		assert.Equal(t, tt.volume, volume)
		assert.Equal(t, tt.pageOrArtID, pageOrArtID)
	}
}
