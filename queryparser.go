// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 INSPIRE Contributors

// Package queryparser turns SPIRES/Invenio search query strings into
// ElasticSearch 2.x query bodies for the INSPIRE-HEP literature search.
package queryparser

import (
	"context"

	"github.com/inspirehep/queryparser/internal/queryparser/driver"
)

// ParseQuery parses a query string into an ElasticSearch query body. It
// never panics and never returns an error: any internal failure degrades
// to a fallback multi_match query across all fields.
func ParseQuery(ctx context.Context, queryStr string) map[string]any {
	return driver.ParseQuery(ctx, queryStr)
}
