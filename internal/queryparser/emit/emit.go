// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 INSPIRE Contributors

// Package emit turns a restructured ast.Node into an ElasticSearch 2.x
// query body (map[string]any), ported method-for-method from
// original_source/inspire_query_parser/visitors/elastic_search_visitor.py.
// Dispatch is an exhaustive Go type switch rather than an Accept/Visitor
// pair, matching the teacher's own dsl.evaluator.go style.
package emit

import (
	"regexp"
	"strings"

	"github.com/inspirehep/queryparser/internal/queryparser/ast"
	"github.com/inspirehep/queryparser/internal/queryparser/config"
	"github.com/inspirehep/queryparser/internal/queryparser/emit/visitorutil"
	"github.com/inspirehep/queryparser/internal/queryparser/nameparser"
	"github.com/inspirehep/queryparser/internal/queryparser/partialdate"
)

// baiRegex recognizes a full structured author identifier, e.g.
// "M.E.Peskin.1". partialBAIRegex recognizes the shorter, ambiguous form
// missing leading initials, e.g. "Peskin.1". Ported from BAI_REGEX.
var (
	baiRegex        = regexp.MustCompile(`(?i)^((\w|-|')+\.)+\d+$`)
	partialBAIRegex = regexp.MustCompile(`(?i)^(\w|-|')+\.\d+$`)
)

// titleSymbolChars lists characters that, when present in a title query
// value, indicate the author meant an exact symbolic match (e.g. "Z'")
// rather than free text, mirroring TITLE_SYMBOL_INDICATING_CHARACTER.
const titleSymbolChars = `'^~*+-`

// Visitor emits ElasticSearch query bodies from an ast.Node. Stateless
// save for its date/name parsers, cheap to construct fresh per call.
type Visitor struct {
	dateParser partialdate.DefaultParser
	nameParser nameparser.DefaultParser
}

// New constructs a Visitor using the built-in date and name parsers.
func New() *Visitor {
	return &Visitor{}
}

// Visit is the entry point and the recursive dispatch used by every
// sub-query builder.
func (v *Visitor) Visit(node ast.Node) map[string]any {
	switch n := node.(type) {
	case nil:
		return map[string]any{"match_all": map[string]any{}}

	case ast.EmptyQuery:
		return map[string]any{"match_all": map[string]any{}}

	case ast.QueryWithMalformedPart:
		return v.visitQueryWithMalformedPart(n)

	case ast.MalformedQuery:
		return generateMalformedQuery(n)

	case ast.AndOp:
		return visitorutil.WrapQueriesInBoolClausesIfMoreThanOne(
			[]map[string]any{v.Visit(n.Left), v.Visit(n.Right)}, true, false)

	case ast.OrOp:
		return visitorutil.WrapQueriesInBoolClausesIfMoreThanOne(
			[]map[string]any{v.Visit(n.Left), v.Visit(n.Right)}, false, false)

	case ast.NotOp:
		return v.visitNotOp(n)

	case ast.NestedKeywordOp:
		return v.visitNestedKeywordOp(n)

	case ast.KeywordOp:
		return v.visitKeywordOp(n)

	case ast.ValueOp:
		return v.generateBareValueQuery(n.Value)

	default:
		return map[string]any{}
	}
}

func (v *Visitor) visitNotOp(n ast.NotOp) map[string]any {
	inner := v.Visit(n.Child)
	if len(inner) == 0 {
		return map[string]any{}
	}
	return map[string]any{"bool": map[string]any{"must_not": []any{inner}}}
}

func (v *Visitor) visitQueryWithMalformedPart(n ast.QueryWithMalformedPart) map[string]any {
	recognized := v.Visit(n.Recognized)
	malformed := v.Visit(n.Malformed)
	useMust := config.DefaultESOperatorForMalformedQueries == config.ESMustQuery
	return visitorutil.WrapQueriesInBoolClausesIfMoreThanOne(
		[]map[string]any{recognized, malformed}, useMust, true)
}

func generateMalformedQuery(m ast.MalformedQuery) map[string]any {
	words := make([]string, 0, len(m.Words))
	for _, w := range m.Words {
		words = append(words, strings.ReplaceAll(w, ":", ""))
	}
	return map[string]any{
		"simple_query_string": map[string]any{
			"fields": []any{"_all"},
			"query":  strings.Join(words, " "),
		},
	}
}

// #### keyword dispatch ####

func (v *Visitor) visitKeywordOp(n ast.KeywordOp) map[string]any {
	keyword := string(n.Keyword)

	switch keyword {
	case "author", "first_author":
		return v.generateAuthorQuery(keyword, n.Value)
	case "title":
		return generateTitleQueries(n.Value)
	case "journal":
		return generateJournalQueries(n.Value)
	case "type-code":
		return generateTypeCodeQuery(n.Value)
	}

	fieldSpec, ok := config.KeywordToFieldName[keyword]
	if !ok {
		return generateUnmappedKeywordQuery(keyword, n.Value)
	}

	if config.IsDateKeyword(keyword) {
		return v.generateDateQuery(fieldSpec, n.Value)
	}

	switch fields := fieldSpec.(type) {
	case string:
		q := generateFieldQuery(fields, n.Value)
		return visitorutil.WrapQueryInNestedIfFieldIsNested(q, fields, config.NestedFields)
	case []string:
		queries := make([]map[string]any, 0, len(fields))
		for _, f := range fields {
			q := generateFieldQuery(f, n.Value)
			queries = append(queries, visitorutil.WrapQueryInNestedIfFieldIsNested(q, f, config.NestedFields))
		}
		return visitorutil.WrapQueriesInBoolClausesIfMoreThanOne(queries, false, false)
	case *config.CitedbyFields:
		return v.generateTermsLookup(fields.Path, fields.SearchPath, valueText(n.Value))
	default:
		return map[string]any{}
	}
}

func (v *Visitor) visitNestedKeywordOp(n ast.NestedKeywordOp) map[string]any {
	canonical := canonicalNestedKeyword(string(n.Keyword))
	fieldSpec := config.KeywordToFieldName[canonical]

	if kw, ok := n.Inner.(ast.KeywordOp); ok && (kw.Keyword == "recid" || kw.Keyword == "control_number") {
		recid := valueText(kw.Value)
		if cb, ok := fieldSpec.(*config.CitedbyFields); ok {
			return v.generateTermsLookup(cb.Path, cb.SearchPath, recid)
		}
		if s, ok := fieldSpec.(string); ok {
			return map[string]any{"term": map[string]any{s: recid}}
		}
	}

	inner := v.Visit(n.Inner)
	if cb, ok := fieldSpec.(*config.CitedbyFields); ok {
		return visitorutil.GenerateNestedQuery(cb.SearchPath, inner)
	}
	if s, ok := fieldSpec.(string); ok {
		return visitorutil.WrapQueryInNestedIfFieldIsNested(inner, s, config.NestedFields)
	}
	return inner
}

func canonicalNestedKeyword(raw string) string {
	if canonical, ok := config.KeywordAliases[raw]; ok {
		return canonical
	}
	return raw
}

// texkeyPattern recognizes "keyword:value" combinations shaped like a
// citation key, e.g. "Smith:2020abc".
var texkeyPattern = regexp.MustCompile(`^[A-Za-z.\-]+:\d{4}[a-z]{2,3}$`)

// generateUnmappedKeywordQuery handles a keyword with no entry in
// config.KeywordToFieldName: a two-branch should over a match on the
// keyword used literally as a field name, and a match on _all for the
// "keyword:value" text, unless that text looks like a texkey.
func generateUnmappedKeywordQuery(keyword string, value ast.Node) map[string]any {
	text := valueText(value)
	combined := keyword + ":" + text

	if texkeyPattern.MatchString(combined) {
		return map[string]any{"match": map[string]any{"texkeys.raw": combined}}
	}

	return map[string]any{"bool": map[string]any{"should": []any{
		map[string]any{"match": map[string]any{keyword: text}},
		map[string]any{"match": map[string]any{"_all": combined}},
	}}}
}

func (v *Visitor) generateTermsLookup(path, searchPath, recid string) map[string]any {
	return map[string]any{
		"terms": map[string]any{
			path: map[string]any{
				"index": "records-hep",
				"type":  "hep",
				"id":    recid,
				"path":  searchPath,
			},
		},
	}
}

// #### author queries ####

func (v *Visitor) generateAuthorQuery(keyword string, value ast.Node) map[string]any {
	base, baiField, fullNameField := "authors", "author_bai", "authors.full_name"
	if keyword == "first_author" {
		base, baiField, fullNameField = "first_author", "first_author_bai", "first_author.full_name"
	}

	switch val := value.(type) {
	case ast.ExactMatchValue:
		return v.generateExactAuthorQuery(val.Text, baiField, fullNameField)
	case ast.PartialMatchValue:
		return generatePartialAuthorQuery(val.Text, fullNameField)
	case ast.RegexValue:
		return v.generateRegexAuthorQuery(val.Text, base, baiField, fullNameField)
	}

	text := valueText(value)

	if baiRegex.MatchString(text) || partialBAIRegex.MatchString(text) {
		field, _ := config.KeywordToFieldName[baiField].(string)
		q := map[string]any{"match": map[string]any{field: text}}
		return visitorutil.WrapQueryInNestedIfFieldIsNested(q, base+".ids", config.NestedFields)
	}

	parsed, err := v.nameParser.Parse(text)
	if err != nil || (len(parsed.LastNames) == 0 && len(parsed.FirstNames) == 0) {
		q := visitorutil.GenerateMatchQuery(fullNameField, text, true)
		return visitorutil.WrapQueryInNestedIfFieldIsNested(q, fullNameField, config.NestedFields)
	}

	tokens := make([]string, 0, len(parsed.LastNames)+len(parsed.FirstNames))
	tokens = append(tokens, parsed.LastNames...)
	tokens = append(tokens, parsed.FirstNames...)
	q := visitorutil.GenerateMatchQuery(fullNameField, strings.Join(tokens, " "), true)
	return visitorutil.WrapQueryInNestedIfFieldIsNested(q, fullNameField, config.NestedFields)
}

// generateExactAuthorQuery builds the exact-author term query: on the BAI
// field for a BAI-shaped value, on the full-name field otherwise.
func (v *Visitor) generateExactAuthorQuery(text, baiField, fullNameField string) map[string]any {
	if baiRegex.MatchString(text) || partialBAIRegex.MatchString(text) {
		field, _ := config.KeywordToFieldName[baiField].(string)
		return map[string]any{"term": map[string]any{field: text}}
	}
	return map[string]any{"term": map[string]any{fullNameField: text}}
}

// generatePartialAuthorQuery builds the partial-author query_string query,
// wrapping the value in wildcards unless already present.
func generatePartialAuthorQuery(text, fullNameField string) map[string]any {
	return map[string]any{"query_string": map[string]any{
		"query":            wrapInWildcards(visitorutil.EscapeQueryStringSpecialCharacters(text)),
		"default_field":    fullNameField,
		"analyze_wildcard": true,
	}}
}

// generateRegexAuthorQuery builds the nested regexp author query.
func (v *Visitor) generateRegexAuthorQuery(text, base, baiField, fullNameField string) map[string]any {
	field := fullNameField
	if baiRegex.MatchString(text) || partialBAIRegex.MatchString(text) {
		field, _ = config.KeywordToFieldName[baiField].(string)
	}
	q := map[string]any{"regexp": map[string]any{field: text}}
	return visitorutil.GenerateNestedQuery(base, q)
}

// #### title / journal / type-code queries ####

func generateTitleQueries(value ast.Node) map[string]any {
	text := valueText(value)
	field, _ := config.KeywordToFieldName["title"].(string)
	if strings.ContainsAny(text, titleSymbolChars) {
		return map[string]any{"match_phrase": map[string]any{field: text}}
	}
	return visitorutil.GenerateMatchQuery(field, text, true)
}

func generateJournalQueries(value ast.Node) map[string]any {
	text := valueText(value)
	title, volume, pageOrArtID := visitorutil.SplitJournalValue(text)

	var queries []map[string]any
	if title != "" {
		queries = append(queries, visitorutil.GenerateMatchQuery(config.JournalFieldsMapping[config.JournalTitle], title, true))
	}
	if volume != "" {
		queries = append(queries, map[string]any{
			"match": map[string]any{config.JournalFieldsMapping[config.JournalVolume]: volume},
		})
	}
	if pageOrArtID != "" {
		queries = append(queries, map[string]any{
			"bool": map[string]any{
				"should": []any{
					map[string]any{"match": map[string]any{config.JournalFieldsMapping[config.JournalPageStart]: pageOrArtID}},
					map[string]any{"match": map[string]any{config.JournalFieldsMapping[config.JournalArtID]: pageOrArtID}},
				},
			},
		})
	}

	combined := visitorutil.WrapQueriesInBoolClausesIfMoreThanOne(queries, true, false)
	return visitorutil.WrapQueryInNestedIfFieldIsNested(combined, config.JournalFieldsMapping[config.JournalTitle], config.NestedFields)
}

func generateTypeCodeQuery(value ast.Node) map[string]any {
	text := strings.ToLower(valueText(value))
	if tc, ok := config.TypeCodeTable[text]; ok {
		return map[string]any{"match": map[string]any{tc.Field: tc.Value}}
	}
	return map[string]any{"bool": map[string]any{"should": []any{
		map[string]any{"match": map[string]any{"document_type": text}},
		map[string]any{"match": map[string]any{"publication_type": text}},
	}}}
}

// #### date queries ####

func (v *Visitor) generateDateQuery(fieldSpec any, value ast.Node) map[string]any {
	fields := fieldsOf(fieldSpec)
	queries := make([]map[string]any, 0, len(fields))
	for _, f := range fields {
		if q := v.generateDateQueryForField(f, value); len(q) > 0 {
			queries = append(queries, visitorutil.WrapQueryInNestedIfFieldIsNested(q, f, config.NestedFields))
		}
	}
	return visitorutil.WrapQueriesInBoolClausesIfMoreThanOne(queries, false, false)
}

func (v *Visitor) generateDateQueryForField(field string, value ast.Node) map[string]any {
	switch val := value.(type) {
	case ast.Value:
		d, err := v.dateParser.Parse(val.Text)
		if err != nil {
			return map[string]any{}
		}
		d = truncateForField(field, d)
		next := truncateForField(field, d.NextDate())
		return map[string]any{"range": map[string]any{field: map[string]any{
			"gte": d.String() + d.ESRoundingAnchor(),
			"lt":  next.String() + next.ESRoundingAnchor(),
		}}}

	case ast.RangeOp:
		left, errL := v.dateParser.Parse(val.Left.String())
		right, errR := v.dateParser.Parse(val.Right.String())
		if errL != nil || errR != nil {
			return map[string]any{}
		}
		left, right = truncateForField(field, left), truncateForField(field, right)
		return map[string]any{"range": map[string]any{field: map[string]any{
			"gte": left.String() + left.ESRoundingAnchor(),
			"lte": right.String() + right.ESRoundingAnchor(),
		}}}

	case ast.GreaterThanOp:
		return v.comparisonDateRange(field, val.Value, "gt")
	case ast.GreaterEqualThanOp:
		return v.comparisonDateRange(field, val.Value, "gte")
	case ast.LessThanOp:
		return v.comparisonDateRange(field, val.Value, "lt")
	case ast.LessEqualThanOp:
		return v.comparisonDateRange(field, val.Value, "lte")

	default:
		return map[string]any{}
	}
}

func (v *Visitor) comparisonDateRange(field string, leaf ast.ValueLeaf, op string) map[string]any {
	d, err := v.dateParser.Parse(leaf.String())
	if err != nil {
		return map[string]any{}
	}
	d = truncateForField(field, d)
	return map[string]any{"range": map[string]any{field: map[string]any{
		op: d.String() + d.ESRoundingAnchor(),
	}}}
}

// truncateForField forces year-only granularity on the one field known to
// store years as bare integers, mirroring
// _truncate_date_value_according_on_date_field.
func truncateForField(field string, d partialdate.PartialDate) partialdate.PartialDate {
	if field == config.JournalFieldsMapping[config.JournalYear] {
		return partialdate.PartialDate{Year: d.Year, Granularity: partialdate.Year}
	}
	return d
}

// #### bare value (keyword-less) queries ####

func (v *Visitor) generateBareValueQuery(value ast.Node) map[string]any {
	switch val := value.(type) {
	case ast.Value:
		return map[string]any{"multi_match": map[string]any{
			"query":            val.Text,
			"fields":           []any{"_all"},
			"zero_terms_query": "all",
		}}
	case ast.ExactMatchValue:
		return map[string]any{"multi_match": map[string]any{
			"query": val.Text, "fields": []any{"_all"}, "type": "phrase",
		}}
	case ast.PartialMatchValue:
		return map[string]any{"multi_match": map[string]any{
			"query": val.Text, "fields": []any{"_all"},
		}}
	case ast.RegexValue:
		return map[string]any{"regexp": map[string]any{"_all": val.Text}}
	case ast.RangeOp:
		return map[string]any{"range": map[string]any{"_all": map[string]any{
			"gte": val.Left.String(), "lte": val.Right.String(),
		}}}
	default:
		return map[string]any{"multi_match": map[string]any{
			"query": value.String(), "fields": []any{"_all"}, "zero_terms_query": "all",
		}}
	}
}

// #### generic field query ####

func generateFieldQuery(field string, value ast.Node) map[string]any {
	switch val := value.(type) {
	case ast.Value:
		if val.HasWildcard {
			return map[string]any{"query_string": map[string]any{
				"query":            wrapInWildcards(visitorutil.EscapeQueryStringSpecialCharacters(val.Text)),
				"default_field":    field,
				"analyze_wildcard": true,
			}}
		}
		return visitorutil.GenerateMatchQuery(field, val.Text, false)

	case ast.ExactMatchValue:
		return map[string]any{"term": map[string]any{field: val.Text}}

	case ast.PartialMatchValue:
		return map[string]any{"query_string": map[string]any{
			"query":            wrapInWildcards(visitorutil.EscapeQueryStringSpecialCharacters(val.Text)),
			"default_field":    field,
			"analyze_wildcard": true,
		}}

	case ast.RegexValue:
		return map[string]any{"regexp": map[string]any{field: val.Text}}

	case ast.RangeOp:
		return map[string]any{"range": map[string]any{field: map[string]any{
			"gte": val.Left.String(),
			"lte": val.Right.String(),
		}}}

	case ast.GreaterThanOp:
		return map[string]any{"range": map[string]any{field: map[string]any{"gt": val.Value.String()}}}
	case ast.GreaterEqualThanOp:
		return map[string]any{"range": map[string]any{field: map[string]any{"gte": val.Value.String()}}}
	case ast.LessThanOp:
		return map[string]any{"range": map[string]any{field: map[string]any{"lt": val.Value.String()}}}
	case ast.LessEqualThanOp:
		return map[string]any{"range": map[string]any{field: map[string]any{"lte": val.Value.String()}}}

	default:
		return map[string]any{}
	}
}

// #### helpers ####

func fieldsOf(spec any) []string {
	switch s := spec.(type) {
	case string:
		return []string{s}
	case []string:
		return s
	default:
		return nil
	}
}

// wrapInWildcards adds a leading and trailing '*' to a partial-match
// value unless already present, mirroring the query_string wildcard
// convention used for partial and wildcarded-plain field matches.
func wrapInWildcards(s string) string {
	if !strings.HasPrefix(s, "*") {
		s = "*" + s
	}
	if !strings.HasSuffix(s, "*") {
		s = s + "*"
	}
	return s
}

// valueText extracts a value leaf's raw text (unlike String(), which
// reinstates ES-DSL-irrelevant quoting/slash delimiters).
func valueText(node ast.Node) string {
	switch v := node.(type) {
	case ast.Value:
		return v.Text
	case ast.ExactMatchValue:
		return v.Text
	case ast.PartialMatchValue:
		return v.Text
	case ast.RegexValue:
		return v.Text
	default:
		return node.String()
	}
}
