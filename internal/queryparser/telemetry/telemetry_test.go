// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 INSPIRE Contributors

package telemetry_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/inspirehep/queryparser/internal/queryparser/telemetry"
)

func TestRecordParse_DoesNotPanicForEveryOutcome(t *testing.T) {
	outcomes := []telemetry.Outcome{
		telemetry.OutcomeOK,
		telemetry.OutcomeSyntaxError,
		telemetry.OutcomePartial,
		telemetry.OutcomeSemanticError,
		telemetry.OutcomeEmptyFallback,
	}

	for _, outcome := range outcomes {
		assert.NotPanics(t, func() {
			telemetry.RecordParse(5*time.Millisecond, outcome)
		})
	}
}

func TestNewLogger_WritesJSONWithServiceAttribute(t *testing.T) {
	var buf bytes.Buffer
	logger := telemetry.NewLogger("queryparser", &buf)

	logger.Info("test message", "query_id", "abc123")

	var record map[string]any
	assert.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "queryparser", record["service"])
	assert.Equal(t, "test message", record["msg"])
	assert.Equal(t, "abc123", record["query_id"])
}

func TestNewLogger_DefaultsToStderrWhenWriterIsNil(t *testing.T) {
	logger := telemetry.NewLogger("queryparser", nil)
	assert.NotNil(t, logger)
}

func TestNewLogger_WithAttrsPreservesServiceStamping(t *testing.T) {
	var buf bytes.Buffer
	logger := telemetry.NewLogger("queryparser", &buf).With("query_id", "fixed-id")

	logger.Warn("warning message")

	var record map[string]any
	assert.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "queryparser", record["service"])
	assert.Equal(t, "fixed-id", record["query_id"])
	assert.Equal(t, slog.LevelWarn.String(), record["level"])
}
