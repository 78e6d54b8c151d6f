// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 INSPIRE Contributors

// Package restructure turns the concrete syntax tree produced by parser
// into the canonical ast tree consumed by emit. It is a straight,
// exhaustive Go type switch, ported method-for-method from
// original_source/inspire_query_parser/visitors/restructuring_visitor.py —
// translated from pypeg2's accept()-based visitor dispatch to a switch on
// concrete CST node shape, matching the teacher's own evaluator.go style.
package restructure

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/inspirehep/queryparser/internal/queryparser/ast"
	"github.com/inspirehep/queryparser/internal/queryparser/config"
	"github.com/inspirehep/queryparser/internal/queryparser/cst"
	"github.com/inspirehep/queryparser/internal/queryparser/partialdate"
)

// Visitor restructures a parsed cst.Query into an ast.Node. Stateless save
// for its date parser, so a Visitor is safe to construct fresh per call (and
// cheap enough that callers should do so rather than share one).
type Visitor struct {
	dateParser partialdate.DefaultParser
}

// New constructs a Visitor using the real wall clock for relative-date
// resolution.
func New() *Visitor {
	return &Visitor{}
}

// VisitQuery is the entry point, mirroring visit_query.
func (v *Visitor) VisitQuery(q *cst.Query) ast.Node {
	result := foldJournalVolumeDeep(v.visit(q.Op))

	if q.MalformedTail != nil {
		return ast.QueryWithMalformedPart{
			Recognized: result,
			Malformed:  ast.MalformedQuery{Words: q.MalformedTail.Children},
		}
	}
	return result
}

func (v *Visitor) visit(node cst.Node) ast.Node {
	switch n := node.(type) {
	case nil:
		return ast.EmptyQuery{}

	case *cst.EmptyQuery:
		return ast.EmptyQuery{}

	case *cst.Statement:
		return v.visit(n.Op)

	case *cst.Expression:
		return v.visit(n.Op)

	case *cst.BooleanQuery:
		left := v.visit(n.Left)
		right := v.visit(n.Right)
		if n.BoolOp == cst.OpOr {
			return ast.OrOp{Left: left, Right: right}
		}
		return ast.AndOp{Left: left, Right: right}

	case *cst.NotQuery:
		return ast.NotOp{Child: v.visit(n.Op)}

	case *cst.ParenthesizedQuery:
		return v.visit(n.Op)

	case *cst.NestedKeywordQuery:
		return ast.NestedKeywordOp{Keyword: ast.Keyword(n.Left), Inner: v.visit(n.Right)}

	case *cst.SimpleQuery:
		return v.visit(n.Op)

	case *cst.SpiresKeywordQuery:
		keyword := ""
		if n.Left != nil {
			keyword = n.Left.Value
		}
		return v.visitKeywordOp(keyword, n.Right)

	case *cst.InvenioKeywordQuery:
		keyword := n.LeftText
		if n.Left != nil {
			keyword = n.Left.Value
		}
		return v.visitKeywordOp(keyword, n.Right)

	case *cst.Value:
		return ast.ValueOp{Value: v.visitValueOperand(n.Op, "")}

	case *cst.MalformedQueryWords:
		return ast.MalformedQuery{Words: n.Children}

	default:
		return ast.EmptyQuery{}
	}
}

// visitKeywordOp builds the KeywordOp (or, for a parenthesized
// boolean-chain value, the distributed And/Or/Not tree of KeywordOps)
// for a SPIRES or Invenio keyword query. Mirrors visit_keyword_op plus
// _convert_simple_value_boolean_query_to_and_boolean_queries.
func (v *Visitor) visitKeywordOp(keyword string, rightNode cst.Node) ast.Node {
	val, ok := rightNode.(*cst.Value)
	if !ok {
		return ast.KeywordOp{Keyword: ast.Keyword(keyword), Value: v.visitValueOperand(rightNode, keyword)}
	}

	if psv, ok := val.Op.(*cst.ParenthesizedSimpleValues); ok {
		return v.visitSimpleValueChain(psv.Op, ast.Keyword(keyword))
	}

	return ast.KeywordOp{Keyword: ast.Keyword(keyword), Value: v.visitValueOperand(val.Op, keyword)}
}

// visitSimpleValueChain converts a SimpleValueBooleanQuery/
// SimpleValueNegation/SimpleValue cst subtree into an ast And/Or/Not tree
// with keyword distributed onto every leaf, ported from
// _convert_simple_value_boolean_query_to_and_boolean_queries.
func (v *Visitor) visitSimpleValueChain(node cst.Node, keyword ast.Keyword) ast.Node {
	if bq, ok := node.(*cst.SimpleValueBooleanQuery); ok {
		left := v.visitSimpleValueChainLeaf(bq.Left, keyword)
		right := v.visitSimpleValueChain(bq.Right, keyword)
		if bq.BoolOp == cst.OpOr {
			return ast.OrOp{Left: left, Right: right}
		}
		return ast.AndOp{Left: left, Right: right}
	}
	return v.visitSimpleValueChainLeaf(node, keyword)
}

func (v *Visitor) visitSimpleValueChainLeaf(node cst.Node, keyword ast.Keyword) ast.Node {
	switch n := node.(type) {
	case *cst.SimpleValueNegation:
		return ast.NotOp{Child: v.visitSimpleValueChainLeaf(n.Op, keyword)}
	case *cst.SimpleValue:
		return ast.KeywordOp{Keyword: keyword, Value: v.classifyKeywordSimpleValue(n.Value, string(keyword))}
	default:
		return ast.KeywordOp{Keyword: keyword, Value: ast.Value{}}
	}
}

// visitValueOperand classifies a Value's inner Op node (everything the
// Value production can wrap except a boolean chain, which visitKeywordOp
// intercepts earlier) into its ast shape.
func (v *Visitor) visitValueOperand(node cst.Node, keyword string) ast.Node {
	switch n := node.(type) {
	case *cst.SimpleValue:
		return v.classifyKeywordSimpleValue(n.Value, keyword)

	case *cst.ComplexValue:
		return classifyComplexValue(n.Value)

	case *cst.RangeOp:
		return ast.RangeOp{
			Left:  v.classifyRangeOperand(n.Left, keyword),
			Right: v.classifyRangeOperand(n.Right, keyword),
		}

	case *cst.GreaterThanOp:
		return ast.GreaterThanOp{Value: v.classifySimpleValueOperand(n.Op, keyword)}

	case *cst.LessThanOp:
		return ast.LessThanOp{Value: v.classifySimpleValueOperand(n.Op, keyword)}

	case *cst.GreaterEqualOp:
		if n.Op != nil {
			return ast.GreaterEqualThanOp{Value: v.classifySimpleValueOperand(n.Op, keyword)}
		}
		return ast.GreaterEqualThanOp{Value: v.classifyKeywordSimpleValue(n.RawText, keyword)}

	case *cst.LessEqualOp:
		if n.Op != nil {
			return ast.LessEqualThanOp{Value: v.classifySimpleValueOperand(n.Op, keyword)}
		}
		return ast.LessEqualThanOp{Value: v.classifyKeywordSimpleValue(n.RawText, keyword)}

	case *cst.ParenthesizedSimpleValues:
		return v.visitSimpleValueChain(n.Op, ast.Keyword(keyword))

	default:
		return ast.Value{}
	}
}

func (v *Visitor) classifySimpleValueOperand(node cst.Node, keyword string) ast.ValueLeaf {
	sv, ok := node.(*cst.SimpleValue)
	if !ok {
		return ast.Value{}
	}
	return v.classifyKeywordSimpleValue(sv.Value, keyword)
}

func (v *Visitor) classifyRangeOperand(node cst.Node, keyword string) ast.ValueLeaf {
	switch n := node.(type) {
	case *cst.ComplexValue:
		return classifyComplexValue(n.Value)
	case *cst.SimpleRangeValue:
		return v.classifyKeywordSimpleValue(n.Value, keyword)
	default:
		return ast.Value{}
	}
}

// classifyKeywordSimpleValue wraps a plain SimpleValue's text, resolving
// relative date specifiers first when the owning keyword is a date
// keyword (mirroring RestructuringVisitor's date-specifier handling,
// dispatched through the DATE_SPECIFIERS_CONVERSION_HANDLERS table in the
// original).
func (v *Visitor) classifyKeywordSimpleValue(text string, keyword string) ast.ValueLeaf {
	if config.IsDateKeyword(keyword) {
		if resolved, ok := v.resolveDateSpecifier(text); ok {
			return ast.Value{Text: resolved}
		}
	}
	return ast.Value{Text: text, HasWildcard: strings.Contains(text, ast.WildcardToken)}
}

var trailingNumberRegex = regexp.MustCompile(`-\s*(\d+)\s*$`)

// resolveDateSpecifier resolves "today", "yesterday[- N]", "this month[- N]"
// and "last month[- N]" against the visitor's date parser. The yesterday
// and last-month base offsets of 1 (rather than 0) before subtracting any
// extra N are preserved exactly from convert_yesterday_date_specifier /
// convert_last_month_date — see DESIGN.md Open Questions.
func (v *Visitor) resolveDateSpecifier(text string) (string, bool) {
	trimmed := strings.TrimSpace(text)

	extra := 0
	if m := trailingNumberRegex.FindStringSubmatch(trimmed); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			extra = n
		}
	}

	for _, spec := range config.DateSpecifiers {
		if !spec.Regex.MatchString(trimmed) {
			continue
		}
		switch spec.Name {
		case "today":
			return v.dateParser.ConvertToday().String(), true
		case "yesterday":
			return v.dateParser.ConvertYesterday(extra).String(), true
		case "this_month":
			return v.dateParser.ConvertThisMonth(extra).String(), true
		case "last_month":
			return v.dateParser.ConvertLastMonth(extra).String(), true
		}
	}
	return "", false
}

func classifyComplexValue(raw string) ast.ValueLeaf {
	if len(raw) < 2 {
		return ast.Value{Text: raw}
	}
	switch raw[0] {
	case '"':
		return ast.ExactMatchValue{Text: strings.Trim(raw, `"`)}
	case '\'':
		inner := strings.Trim(raw, "'")
		return ast.PartialMatchValue{Text: inner, HasWildcard: strings.Contains(inner, ast.WildcardToken)}
	case '/':
		return ast.RegexValue{Text: strings.Trim(raw, "/")}
	default:
		return ast.Value{Text: raw}
	}
}

// foldJournalVolumeDeep walks the whole tree folding a trailing
// "volume:X" KeywordOp into a preceding "journal:Y" KeywordOp's value as
// "Y,X", ported from _restructure_if_volume_follows_journal.
func foldJournalVolumeDeep(node ast.Node) ast.Node {
	switch n := node.(type) {
	case ast.AndOp:
		left := foldJournalVolumeDeep(n.Left)
		right := foldJournalVolumeDeep(n.Right)
		return tryFoldJournalVolume(ast.AndOp{Left: left, Right: right})
	case ast.OrOp:
		return ast.OrOp{Left: foldJournalVolumeDeep(n.Left), Right: foldJournalVolumeDeep(n.Right)}
	case ast.NotOp:
		return ast.NotOp{Child: foldJournalVolumeDeep(n.Child)}
	case ast.NestedKeywordOp:
		return ast.NestedKeywordOp{Keyword: n.Keyword, Inner: foldJournalVolumeDeep(n.Inner)}
	case ast.QueryWithMalformedPart:
		return ast.QueryWithMalformedPart{Recognized: foldJournalVolumeDeep(n.Recognized), Malformed: n.Malformed}
	default:
		return node
	}
}

// tryFoldJournalVolume handles four sub-cases: a bare
// "journal:Y and volume:X" pair, the same pair heading a longer and-chain
// ("journal:Y and volume:X and ..."), and the two same shapes with a
// negated volume, whose clause is dropped without merging its value.
func tryFoldJournalVolume(and ast.AndOp) ast.Node {
	journal, ok := and.Left.(ast.KeywordOp)
	if !ok || journal.Keyword != "journal" {
		return and
	}

	if volume, ok := and.Right.(ast.KeywordOp); ok && volume.Keyword == "volume" {
		return mergeJournalVolume(journal, volume)
	}
	if not, ok := and.Right.(ast.NotOp); ok {
		if volume, ok := not.Child.(ast.KeywordOp); ok && volume.Keyword == "volume" {
			return journal
		}
	}

	if rightAnd, ok := and.Right.(ast.AndOp); ok {
		if volume, ok := rightAnd.Left.(ast.KeywordOp); ok && volume.Keyword == "volume" {
			return ast.AndOp{Left: mergeJournalVolume(journal, volume), Right: rightAnd.Right}
		}
		if not, ok := rightAnd.Left.(ast.NotOp); ok {
			if volume, ok := not.Child.(ast.KeywordOp); ok && volume.Keyword == "volume" {
				return ast.AndOp{Left: journal, Right: rightAnd.Right}
			}
		}
	}

	return and
}

func mergeJournalVolume(journal, volume ast.KeywordOp) ast.KeywordOp {
	merged := journal.Value.String() + "," + volume.Value.String()
	return ast.KeywordOp{Keyword: journal.Keyword, Value: ast.Value{Text: merged}}
}
