// Package main provides the lexgraph binary: one-shot extraction, folder
// watching, and relationship queries over a case document store.
package main

import (
	"fmt"
	"os"

	"github.com/lexgraph/lexgraph"
	"github.com/lexgraph/lexgraph/core/extract"
	"github.com/lexgraph/lexgraph/helper"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "lexgraph",
		Short:         "Knowledge extraction and cross-referencing for legal case documents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(extractCmd())
	cmd.AddCommand(watchCmd())
	cmd.AddCommand(relatedCmd())
	return cmd
}

// newLexGraph wires a LexGraph from the environment (DB_* variables, .env
// supported).
func newLexGraph() (*lexgraph.LexGraph, error) {
	config, err := helper.NewDatabaseConfiguration()
	if err != nil {
		return nil, err
	}
	return lexgraph.NewLexGraph(config, extract.DefaultEmbeddingDim)
}
