// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 INSPIRE Contributors

// Package visitorutil holds the small ElasticSearch query-building helpers
// used by emit, ported from
// original_source/inspire_query_parser/utils/visitor_utils.py.
package visitorutil

import (
	"regexp"
	"strings"
)

// GenerateMatchQuery builds a "match" query, optionally requesting the AND
// operator between terms. Mirrors generate_match_query. Boolean-looking
// values ("true"/"false") are emitted as a bare match on the raw value,
// since ES happily matches on the stringified boolean either way and
// withOperatorAnd has no meaning for a single token.
func GenerateMatchQuery(field string, value string, withOperatorAnd bool) map[string]any {
	if isBooleanLiteral(value) {
		return map[string]any{
			"match": map[string]any{field: value},
		}
	}
	if !withOperatorAnd {
		return map[string]any{
			"match": map[string]any{field: value},
		}
	}
	return map[string]any{
		"match": map[string]any{
			field: map[string]any{
				"query":    value,
				"operator": "and",
			},
		},
	}
}

func isBooleanLiteral(value string) bool {
	lower := strings.ToLower(strings.TrimSpace(value))
	return lower == "true" || lower == "false"
}

// GenerateNestedQuery wraps query in a "nested" clause at path. Returns an
// empty map if query is empty, mirroring generate_nested_query's falsy
// short-circuit.
func GenerateNestedQuery(path string, query map[string]any) map[string]any {
	if len(query) == 0 {
		return map[string]any{}
	}
	return map[string]any{
		"nested": map[string]any{
			"path":  path,
			"query": query,
		},
	}
}

// WrapQueriesInBoolClausesIfMoreThanOne collapses queries to: the bare
// query if there is exactly one and preserveBoolSemanticsIfOne is false; an
// empty map if there are none; or a bool/must|should clause otherwise.
// Mirrors wrap_queries_in_bool_clauses_if_more_than_one.
func WrapQueriesInBoolClausesIfMoreThanOne(queries []map[string]any, useMustClause bool, preserveBoolSemanticsIfOne bool) map[string]any {
	nonEmpty := make([]map[string]any, 0, len(queries))
	for _, q := range queries {
		if len(q) > 0 {
			nonEmpty = append(nonEmpty, q)
		}
	}

	switch {
	case len(nonEmpty) == 0:
		return map[string]any{}
	case len(nonEmpty) == 1 && !preserveBoolSemanticsIfOne:
		return nonEmpty[0]
	}

	clause := "should"
	if useMustClause {
		clause = "must"
	}
	arr := make([]any, len(nonEmpty))
	for i, q := range nonEmpty {
		arr[i] = q
	}
	return map[string]any{
		"bool": map[string]any{clause: arr},
	}
}

var nestedFieldPrefix = func(field string) *regexp.Regexp {
	return regexp.MustCompile(`^` + regexp.QuoteMeta(field) + `\.`)
}

// WrapQueryInNestedIfFieldIsNested wraps query in a nested clause at
// whichever of nestedFields prefixes field (e.g. "authors.full_name"
// matches "authors"), otherwise returns query unchanged. Mirrors
// wrap_query_in_nested_if_field_is_nested.
func WrapQueryInNestedIfFieldIsNested(query map[string]any, field string, nestedFields []string) map[string]any {
	for _, nf := range nestedFields {
		if nestedFieldPrefix(nf).MatchString(field) {
			return GenerateNestedQuery(nf, query)
		}
	}
	return query
}

// specialCharsRegex matches the Lucene/ES query_string special characters
// that must be backslash-escaped, mirroring
// escape_query_string_special_characters's ES_SPECIAL_CHARACTERS list.
// '*' is deliberately excluded: callers that build wildcarded queries rely
// on an unescaped leading/trailing '*' to signal the wildcard.
var specialCharsRegex = regexp.MustCompile(`([+\-=&|><!(){}\[\]^"~?:\\/])`)

// EscapeQueryStringSpecialCharacters backslash-escapes Lucene/ES
// query_string special characters.
func EscapeQueryStringSpecialCharacters(s string) string {
	return specialCharsRegex.ReplaceAllString(s, `\$1`)
}

// SplitJournalValue splits a "Title,Volume,PageOrArtID" journal query
// value into its (up to three) comma-separated parts. This is a simplified,
// self-contained re-implementation of _preprocess_journal_query_value: the
// original calls out to inspire_schemas.utils.convert_old_publication_info_
// to_new for legacy publication_info normalization, which is not present in
// the retrieval pack (see DESIGN.md).
func SplitJournalValue(value string) (title, volume, pageOrArtID string) {
	parts := strings.SplitN(value, ",", 3)
	switch len(parts) {
	case 1:
		return strings.TrimSpace(parts[0]), "", ""
	case 2:
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), ""
	default:
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), strings.TrimSpace(parts[2])
	}
}
