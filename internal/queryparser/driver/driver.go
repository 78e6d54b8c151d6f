// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 INSPIRE Contributors

// Package driver wires the lexer/parser, restructure and emit stages into
// the single ParseQuery entry point, ported from
// original_source/inspire_query_parser/parsing_driver.py. Every internal
// failure is logged and degrades to a match-all-fields fallback query —
// ParseQuery itself never returns an error or panics.
package driver

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/inspirehep/queryparser/internal/queryparser/ast"
	"github.com/inspirehep/queryparser/internal/queryparser/cst"
	"github.com/inspirehep/queryparser/internal/queryparser/emit"
	"github.com/inspirehep/queryparser/internal/queryparser/parser"
	"github.com/inspirehep/queryparser/internal/queryparser/restructure"
	"github.com/inspirehep/queryparser/internal/queryparser/telemetry"
)

var defaultLogger = telemetry.NewLogger("queryparser", nil)

// ParseQuery parses a SPIRES/Invenio search query string into an
// ElasticSearch 2.x query body. It never panics and never returns an
// error: any internal failure is logged at warn level and degrades to a
// multi_match-against-_all fallback, mirroring parse_query's blanket
// try/except degradation.
func ParseQuery(ctx context.Context, queryStr string) map[string]any {
	start := time.Now()
	queryID := ulid.Make().String()
	logger := defaultLogger.With("query_id", queryID)

	outcome := telemetry.OutcomeOK
	result := run(ctx, logger, queryStr, &outcome)

	telemetry.RecordParse(time.Since(start), outcome)
	return result
}

func run(ctx context.Context, logger *slog.Logger, queryStr string, outcome *telemetry.Outcome) map[string]any {
	tree, err := parser.New().ParseQuery(queryStr)
	if err != nil {
		wrapped := oops.Code("QUERYPARSER_PARSE_SYNTAX").With("query", queryStr).Wrap(err)
		logError(ctx, logger, "failed to parse query, falling back to match-all-fields", wrapped)
		*outcome = telemetry.OutcomeSyntaxError
		return fallbackQuery(queryStr)
	}

	if tree.MalformedTail != nil {
		logger.WarnContext(ctx, "query parsed with unrecognized trailing text",
			"query", queryStr, "unrecognized", strings.Join(tree.MalformedTail.Children, " "))
		*outcome = telemetry.OutcomePartial
	}

	restructured, ok := restructureQuery(ctx, logger, tree)
	if !ok {
		*outcome = telemetry.OutcomeSemanticError
		return fallbackQuery(queryStr)
	}

	esQuery, ok := emitQuery(ctx, logger, restructured)
	if !ok {
		*outcome = telemetry.OutcomeSemanticError
		return fallbackQuery(queryStr)
	}

	if len(esQuery) == 0 {
		logger.WarnContext(ctx, "emitted an empty query, falling back to match-all-fields", "query", queryStr)
		if *outcome == telemetry.OutcomeOK {
			*outcome = telemetry.OutcomeEmptyFallback
		}
		return fallbackQuery(queryStr)
	}

	return esQuery
}

// restructureQuery runs the restructuring visitor, recovering from any
// panic the way the Python driver's blanket except Exception does.
func restructureQuery(ctx context.Context, logger *slog.Logger, tree *cst.Query) (result ast.Node, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			wrapped := oops.Code("QUERYPARSER_VISITOR_PANIC").
				With("stage", "restructure").With("panic", r).
				Errorf("restructuring visitor panicked")
			logError(ctx, logger, "restructuring visitor failed", wrapped)
			result, ok = nil, false
		}
	}()

	return restructure.New().VisitQuery(tree), true
}

// emitQuery runs the emitter visitor, recovering from any panic the same
// way restructureQuery does.
func emitQuery(ctx context.Context, logger *slog.Logger, node ast.Node) (result map[string]any, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			wrapped := oops.Code("QUERYPARSER_VISITOR_PANIC").
				With("stage", "emit").With("panic", r).
				Errorf("emitter visitor panicked")
			logError(ctx, logger, "emitter visitor failed", wrapped)
			result, ok = nil, false
		}
	}()

	return emit.New().Visit(node), true
}

// logError mirrors pkg/errutil/log.go's LogError, logging at warn instead
// of error since every failure here is already handled by a fallback.
func logError(ctx context.Context, logger *slog.Logger, msg string, err error) {
	if oopsErr, ok := oops.AsOops(err); ok {
		attrs := []any{"error", oopsErr.Error()}
		if code := oopsErr.Code(); code != "" {
			attrs = append(attrs, "code", code)
		}
		if c := oopsErr.Context(); len(c) > 0 {
			attrs = append(attrs, "context", c)
		}
		logger.WarnContext(ctx, msg, attrs...)
		return
	}
	logger.WarnContext(ctx, msg, "error", err)
}

// fallbackQuery mirrors _generate_match_all_fields_query: strip ':' and
// collapse whitespace, then search _all with zero_terms_query "all" (when
// analysis leaves no terms, every document matches).
func fallbackQuery(queryStr string) map[string]any {
	stripped := strings.ReplaceAll(queryStr, ":", "")
	stripped = strings.Join(strings.Fields(stripped), " ")
	return map[string]any{
		"multi_match": map[string]any{
			"query":            stripped,
			"fields":           []any{"_all"},
			"zero_terms_query": "all",
		},
	}
}
