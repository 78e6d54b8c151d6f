// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 INSPIRE Contributors

// Package config holds the built-in keyword alias tables, keyword to
// search-field mappings, and date-specifier patterns that drive the parser,
// restructuring visitor and emitter. All tables are plain Go map literals,
// initialised once and read-only for the remainder of the process (see
// SPEC_FULL.md §5 concurrency invariants).
package config

import "regexp"

// NonDateKeywordAliases maps SPIRES/Invenio keyword aliases to their
// canonical, non-date keyword. Ported verbatim from
// INSPIRE_PARSER_NONDATE_KEYWORDS in the original Python config module.
var NonDateKeywordAliases = map[string]string{
	"abstract": "abstract",

	"address": "address",

	"affiliation": "affiliation",
	"affil":       "affiliation",
	"aff":         "affiliation",
	"af":          "affiliation",
	"institution": "affiliation",
	"inst":        "affiliation",

	"affid":          "affiliation-id",
	"affiliation-id": "affiliation-id",

	"author": "author",
	"au":     "author",
	"a":      "author",
	"name":   "author",

	"author-count": "author-count",
	"authorcount":  "author-count",
	"ac":           "author-count",

	"cat": "cataloguer",

	"caption": "caption",

	"cite":      "cite",
	"c":         "cite",
	"reference": "cite",

	"citedby": "citedby",

	"citedbyexcludingselfcites": "citedbyexcludingselfcites",
	"citedbyx":                  "citedbyexcludingselfcites",

	"citedexcludingselfcites": "citedexcludingselfcites",
	"cx":                      "citedexcludingselfcites",

	"collaboration": "collaboration",
	"cn":            "collaboration",

	"cnum": "confnumber",

	"control_number": "control_number",
	"recid":          "control_number",

	"country": "country",
	"cc":      "country",

	"doi": "doi",

	"bb":    "eprint",
	"bull":  "eprint",
	"eprint": "eprint",
	"arxiv": "eprint",
	"arXiv": "eprint",

	"exact-author": "exact-author",
	"exactauthor":  "exact-author",
	"ea":           "exact-author",

	"experiment": "experiment",
	"exp":        "experiment",

	"fc":         "field-code",
	"field-code": "field-code",

	"first-author": "first_author",
	"firstauthor":  "first_author",
	"fa":           "first_author",

	"fulltext": "fulltext",
	"ft":       "fulltext",

	"irn": "irn",

	"coden":        "journal",
	"journal":      "journal",
	"j":            "journal",
	"published_in": "journal",
	"volume":       "volume",
	"vol":          "volume",

	"keyword":  "keyword",
	"keywords": "keyword",
	"kw":       "keyword",
	"k":        "keyword",

	"primarch": "primary_arxiv_category",

	"rawref": "rawref",

	"citation":     "reference",
	"jour-vol-page": "reference",
	"jvp":          "reference",

	"refersto": "refersto",

	"referstoexcludingselfcites": "referstoexcludingselfcites",
	"referstox":                  "referstoexcludingselfcites",

	"reportnumber": "reportnumber",
	"report-num":   "reportnumber",
	"report":       "reportnumber",
	"rept":         "reportnumber",
	"rn":           "reportnumber",
	"r":            "reportnumber",

	"subject": "subject",

	"title": "title",
	"ti":    "title",
	"t":     "title",

	"texkey": "texkeys.raw",

	"cited":   "topcite",
	"topcit":  "topcite",
	"topcite": "topcite",

	"type-code":  "type-code",
	"type":       "type-code",
	"tc":         "type-code",
	"ty":         "type-code",
	"scl":        "type-code",
	"ps":         "type-code",
	"collection": "type-code",
}

// DateKeywordAliases maps date-related keyword aliases to their canonical
// keyword. Ported from INSPIRE_PARSER_DATE_KEYWORDS.
var DateKeywordAliases = map[string]string{
	"date": "date",
	"d":    "date",
	"year": "date",

	"date-added": "date-added",
	"dadd":       "date-added",
	"da":         "date-added",

	"date-earliest": "date-earliest",
	"de":            "date-earliest",

	"date-updated": "date-updated",
	"dupd":         "date-updated",
	"du":           "date-updated",

	"journal-year": "publication_info.year",
	"jy":           "publication_info.year",
}

// KeywordAliases is the union of NonDateKeywordAliases and
// DateKeywordAliases, mirroring INSPIRE_PARSER_KEYWORDS.
var KeywordAliases = mergedKeywordAliases()

// KeywordSet is the set of canonical keyword values, mirroring
// INSPIRE_KEYWORDS_SET. Used by the parser's "non-shortened keyword"
// implicit-and heuristic.
var KeywordSet = canonicalKeywordSet()

func mergedKeywordAliases() map[string]string {
	merged := make(map[string]string, len(NonDateKeywordAliases)+len(DateKeywordAliases))
	for k, v := range NonDateKeywordAliases {
		merged[k] = v
	}
	for k, v := range DateKeywordAliases {
		merged[k] = v
	}
	return merged
}

func canonicalKeywordSet() map[string]struct{} {
	set := make(map[string]struct{}, len(KeywordAliases))
	for _, v := range KeywordAliases {
		set[v] = struct{}{}
	}
	return set
}

// IsDateKeyword reports whether the canonical keyword is a date keyword.
func IsDateKeyword(canonical string) bool {
	switch canonical {
	case "date", "date-added", "date-earliest", "date-updated", "publication_info.year":
		return true
	default:
		return false
	}
}

// NestedKeywords lists nestable keyword forms, longest-match-first so that
// "citedbyexcludingselfcites" is tried before its "citedby" prefix.
var NestedKeywords = []string{
	"citedbyexcludingselfcites",
	"citedbyx",
	"citedby",
	"referstoexcludingselfcites",
	"referstox",
	"refersto",
}

// CitedbyFields holds the nested-lookup path/search_path pair for the
// "citedby" keyword, mirroring KEYWORD_TO_ES_FIELDNAME['citedby'].
type CitedbyFields struct {
	Path       string
	SearchPath string
}

// KeywordToFieldName maps a canonical keyword to its ElasticSearch field(s).
// Values are one of: string (single field), []string (multi_match fields),
// or *CitedbyFields (the citedby nested-lookup pair). Ported verbatim from
// ElasticSearchVisitor.KEYWORD_TO_ES_FIELDNAME.
var KeywordToFieldName = map[string]any{
	"author":       "authors.full_name",
	"first_author": "first_author.full_name",

	"author_first_name":          "authors.first_name",
	"author_last_name":           "authors.last_name",
	"author_bai":                 "authors.ids.value",
	"author_first_name_initials": "authors.first_name.initials",

	"first_author_first_name":          "first_author.first_name",
	"first_author_last_name":           "first_author.last_name",
	"first_author_first_name_initials": "first_author.first_name.initials",
	"first_author_bai":                 "first_author.ids.value",

	"author-count":  "author_count",
	"collaboration": "collaborations.value",

	"date": []string{
		"earliest_date",
		"imprints.date",
		"preprint_date",
		"publication_info.year",
		"thesis_info.date",
	},
	"date-added":   "_created",
	"date-earliest": "earliest_date",
	"date-updated": "_updated",

	"doi":          "dois.value.raw",
	"eprint":       "arxiv_eprints.value.raw",
	"exact-author": "authors.full_name_unicode_normalized",
	"irn":          "external_system_identifiers.value.raw",

	"journal": []string{
		JournalFieldsMapping[JournalTitle],
		JournalFieldsMapping[JournalVolume],
		JournalFieldsMapping[JournalPageStart],
		JournalFieldsMapping[JournalArtID],
		JournalFieldsMapping[JournalYear],
	},
	"keyword":      "keywords.value",
	"refersto":     "references.record.$ref",
	"reportnumber": "report_numbers.value.fuzzy",
	"subject":      "facet_inspire_categories",
	"texkey":       "texkeys.raw",
	"title":        "titles.full_title",
	"type-code":    "document_type",
	"topcite":      "citation_count",
	"affiliation":  "authors.affiliations.value",
	"affiliation-id": []string{
		"authors.affiliations.record.$ref",
		"supervisors.affiliations.record.$ref",
		"thesis_info.institutions.record.$ref",
		"record_affiliations.record.$ref",
	},
	"fulltext": "documents.attachment.content",
	"citedby": &CitedbyFields{
		Path:       "references.record.$ref.raw",
		SearchPath: "self.$ref.raw",
	},
}

// Journal field names, mirroring ElasticSearchVisitor's JOURNAL_* constants.
const (
	JournalFieldsPrefix          = "publication_info"
	JournalTitle                 = "journal_title_variants"
	JournalTitleForOldPubInfo    = "journal_title"
	JournalVolume                = "journal_volume"
	JournalPageStart             = "page_start"
	JournalArtID                 = "artid"
	JournalYear                  = "year"
)

// JournalFieldsMapping maps the abstract journal field names above to their
// full ElasticSearch field paths.
var JournalFieldsMapping = map[string]string{
	JournalTitle:     JournalFieldsPrefix + "." + JournalTitleForOldPubInfo,
	JournalVolume:    JournalFieldsPrefix + "." + JournalVolume,
	JournalPageStart: JournalFieldsPrefix + "." + JournalPageStart,
	JournalArtID:     JournalFieldsPrefix + "." + JournalArtID,
	JournalYear:      JournalFieldsPrefix + "." + JournalYear,
}

// TypeCodeValue is a (field, value) pair queried in place of a raw
// type-code value, e.g. "published" -> (refereed, true).
type TypeCodeValue struct {
	Field string
	Value any
}

// TypeCodeTable maps type-code query values (lower-cased) to the field and
// value that should actually be queried. Ported from
// TYPECODE_VALUE_TO_FIELD_AND_VALUE_PAIRS_MAPPING.
var TypeCodeTable = map[string]TypeCodeValue{
	"b":              {"document_type", "book"},
	"book":           {"document_type", "book"},
	"c":              {"document_type", "conference paper"},
	"conferencepaper": {"document_type", "conference paper"},
	"citeable":       {"citeable", true},
	"core":           {"core", true},
	"i":              {"publication_type", "introductory"},
	"introductory":   {"publication_type", "introductory"},
	"l":              {"publication_type", "lectures"},
	"lectures":       {"publication_type", "lectures"},
	"p":              {"refereed", true},
	"published":      {"refereed", true},
	"r":              {"publication_type", "review"},
	"review":         {"publication_type", "review"},
	"t":              {"document_type", "thesis"},
	"thesis":         {"document_type", "thesis"},
	"proceedings":    {"document_type", "proceedings"},
}

// NestedFields lists the ES fields that require a "nested" query wrapper.
var NestedFields = []string{"authors", "publication_info", "first_author", "supervisors"}

// Date-specifier regexes, ported from config.py's DATE_*_REGEX_PATTERN.
var (
	DateTodayRegex     = regexp.MustCompile(`(?i)^today`)
	DateYesterdayRegex = regexp.MustCompile(`(?i)^yesterday`)
	DateLastMonthRegex = regexp.MustCompile(`(?i)^last\s+month`)
	DateThisMonthRegex = regexp.MustCompile(`(?i)^this\s+month`)
)

// DateSpecifierPattern associates a compiled date-specifier regex with a
// Name that restructure's resolveDateSpecifier switches on to pick the
// conversion.
type DateSpecifierPattern struct {
	Name  string
	Regex *regexp.Regexp
}

// DateSpecifiers lists the recognised relative date specifiers, in the same
// order as DATE_SPECIFIERS_COLLECTION (today, yesterday, this month, last
// month).
var DateSpecifiers = []DateSpecifierPattern{
	{Name: "today", Regex: DateTodayRegex},
	{Name: "yesterday", Regex: DateYesterdayRegex},
	{Name: "this_month", Regex: DateThisMonthRegex},
	{Name: "last_month", Regex: DateLastMonthRegex},
}

// ESMustQuery / ESShouldQuery name the two ES bool-clause kinds used when
// combining a recognized and a malformed query fragment.
const (
	ESMustQuery   = "must"
	ESShouldQuery = "should"

	// DefaultESOperatorForMalformedQueries mirrors
	// DEFAULT_ES_OPERATOR_FOR_MALFORMED_QUERIES.
	DefaultESOperatorForMalformedQueries = ESMustQuery
)
