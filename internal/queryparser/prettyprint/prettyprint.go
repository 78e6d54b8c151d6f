// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 INSPIRE Contributors

// Package prettyprint renders an ast.Node as an indented tree, ported from
// original_source/inspire_query_parser/utils/format_parse_tree.py /
// parse_tree_formatter.py.
package prettyprint

import (
	"fmt"
	"strings"

	"github.com/inspirehep/queryparser/internal/queryparser/ast"
)

// Format renders node as a multi-line indented tree, one node per line.
func Format(node ast.Node) string {
	var sb strings.Builder
	write(&sb, node, 0)
	return sb.String()
}

func write(sb *strings.Builder, node ast.Node, depth int) {
	indent := strings.Repeat("  ", depth)

	switch n := node.(type) {
	case ast.AndOp:
		fmt.Fprintf(sb, "%sAndOp\n", indent)
		write(sb, n.Left, depth+1)
		write(sb, n.Right, depth+1)
	case ast.OrOp:
		fmt.Fprintf(sb, "%sOrOp\n", indent)
		write(sb, n.Left, depth+1)
		write(sb, n.Right, depth+1)
	case ast.NotOp:
		fmt.Fprintf(sb, "%sNotOp\n", indent)
		write(sb, n.Child, depth+1)
	case ast.KeywordOp:
		fmt.Fprintf(sb, "%sKeywordOp(%s)\n", indent, n.Keyword)
		write(sb, n.Value, depth+1)
	case ast.NestedKeywordOp:
		fmt.Fprintf(sb, "%sNestedKeywordOp(%s)\n", indent, n.Keyword)
		write(sb, n.Inner, depth+1)
	case ast.ValueOp:
		fmt.Fprintf(sb, "%sValueOp\n", indent)
		write(sb, n.Value, depth+1)
	case ast.QueryWithMalformedPart:
		fmt.Fprintf(sb, "%sQueryWithMalformedPart\n", indent)
		write(sb, n.Recognized, depth+1)
		write(sb, n.Malformed, depth+1)
	case ast.EmptyQuery:
		fmt.Fprintf(sb, "%sEmptyQuery\n", indent)
	default:
		fmt.Fprintf(sb, "%s%s\n", indent, node.String())
	}
}
