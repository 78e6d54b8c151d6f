// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 INSPIRE Contributors

package driver_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"

	"github.com/inspirehep/queryparser/internal/queryparser/driver"
)

func TestParseQuery_EndToEnd(t *testing.T) {
	defer goleak.VerifyNone(t)

	tests := []struct {
		name  string
		query string
		check func(t *testing.T, got map[string]any)
	}{
		{
			name:  "bare value query with no keyword",
			query: "ellis",
			check: func(t *testing.T, got map[string]any) {
				mm, ok := got["multi_match"].(map[string]any)
				assert.True(t, ok, "expected a multi_match query, got %#v", got)
				assert.Equal(t, "ellis", mm["query"])
			},
		},
		{
			name:  "simple author keyword query",
			query: "author:ellis",
			check: func(t *testing.T, got map[string]any) {
				assert.NotEmpty(t, got)
			},
		},
		{
			name:  "title keyword with exact phrase",
			query: `title:"Higgs boson"`,
			check: func(t *testing.T, got map[string]any) {
				assert.NotEmpty(t, got)
			},
		},
		{
			name:  "boolean and query",
			query: "author:ellis and title:higgs",
			check: func(t *testing.T, got map[string]any) {
				b, ok := got["bool"].(map[string]any)
				assert.True(t, ok, "expected a bool query, got %#v", got)
				assert.NotEmpty(t, b["must"])
			},
		},
		{
			name:  "boolean or query",
			query: "author:ellis or author:witten",
			check: func(t *testing.T, got map[string]any) {
				b, ok := got["bool"].(map[string]any)
				assert.True(t, ok, "expected a bool query, got %#v", got)
				assert.NotEmpty(t, b["should"])
			},
		},
		{
			name:  "negated query",
			query: "not author:ellis",
			check: func(t *testing.T, got map[string]any) {
				b, ok := got["bool"].(map[string]any)
				assert.True(t, ok, "expected a bool query, got %#v", got)
				assert.NotEmpty(t, b["must_not"])
			},
		},
		{
			name:  "range query",
			query: "date 2000->2010",
			check: func(t *testing.T, got map[string]any) {
				assert.NotEmpty(t, got)
			},
		},
		{
			name:  "empty query falls back to match_all",
			query: "",
			check: func(t *testing.T, got map[string]any) {
				assert.Contains(t, got, "match_all")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := driver.ParseQuery(context.Background(), tt.query)
			tt.check(t, got)
		})
	}
}

func TestParseQuery_NeverPanics(t *testing.T) {
	defer goleak.VerifyNone(t)

	malformed := []string{
		"((((",
		"author:",
		":::",
		"and and and",
		"title:'unterminated",
		"date < ",
		strRepeat("a and ", 200) + "a",
	}

	for _, q := range malformed {
		assert.NotPanics(t, func() {
			got := driver.ParseQuery(context.Background(), q)
			assert.NotNil(t, got)
		})
	}
}

func FuzzParseQuery(f *testing.F) {
	seeds := []string{
		"",
		"ellis",
		"author:ellis",
		"author ellis",
		"au:witten and title:higgs",
		"refersto:author:witten",
		"date 2000->2010",
		"date > 2015",
		"author:(ellis or witten)",
		"not author:ellis",
		"-author:ellis",
		`title:"Higgs boson"`,
		"find a ellis",
		"banana:split",
		"M.E.Peskin.1",
		":::",
		"((((",
		"author: and and",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, query string) {
		got := driver.ParseQuery(context.Background(), query)
		assert.NotNil(t, got)
	})
}

func strRepeat(s string, n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += s
	}
	return out
}
