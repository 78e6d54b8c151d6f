// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 INSPIRE Contributors

// Package telemetry provides the Prometheus metrics and trace-context
// aware structured logging used by driver. Grounded on
// internal/access/policy/metrics.go and internal/logging/handler.go.
package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome names the result of a single ParseQuery call, used as the
// "outcome" label on parsesTotal.
type Outcome string

const (
	OutcomeOK            Outcome = "ok"
	OutcomeSyntaxError   Outcome = "syntax_error"
	OutcomePartial       Outcome = "partial"
	OutcomeSemanticError Outcome = "semantic_error"
	OutcomeEmptyFallback Outcome = "empty_fallback"
)

var (
	parseDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "queryparser_parse_duration_seconds",
		Help:    "Histogram of ParseQuery call latency in seconds",
		Buckets: prometheus.DefBuckets,
	})

	parsesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "queryparser_parses_total",
		Help: "Total number of ParseQuery calls by outcome",
	}, []string{"outcome"})
)

// RecordParse records the duration and outcome of a completed ParseQuery
// call.
func RecordParse(duration time.Duration, outcome Outcome) {
	parseDuration.Observe(duration.Seconds())
	parsesTotal.WithLabelValues(string(outcome)).Inc()
}
