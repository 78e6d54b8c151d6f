// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 INSPIRE Contributors

// Package main is a trivial demo CLI around the queryparser library: it
// parses a single query string given on the command line (or via
// --config overrides for field-mapping) and prints the resulting
// ElasticSearch query body as JSON.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	queryparser "github.com/inspirehep/queryparser"
	"github.com/inspirehep/queryparser/internal/queryparser/config"
)

var configFile string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queryparser",
		Short: "Parse an INSPIRE-HEP SPIRES/Invenio search query into an ElasticSearch query body",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runParse,
	}
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "optional YAML field-mapping override file")
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	if configFile != "" {
		overrides, err := config.LoadOverrides(configFile)
		if err != nil {
			return fmt.Errorf("queryparser: %w", err)
		}
		config.ApplyOverrides(overrides)
	}

	query := strings.Join(args, " ")
	esQuery := queryparser.ParseQuery(context.Background(), query)

	out, err := json.MarshalIndent(esQuery, "", "  ")
	if err != nil {
		return fmt.Errorf("queryparser: marshaling result: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
