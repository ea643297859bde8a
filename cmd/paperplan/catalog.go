// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paperplan/internal/planindex"
	"github.com/pdiddy/paperplan/pkg/types"
)

var indexCmd = &cobra.Command{
	Use:   "index [dir]",
	Short: "Catalog generated plans under a directory",
	Long: `Index walks a directory tree for generated plan.md files and records
them in a SQLite catalog at <dir>/index/plans.db. Unchanged plans are
skipped on subsequent runs.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIndex,
}

func runIndex(cmd *cobra.Command, args []string) error {
	store, err := planindex.NewStore(catalogConfig(cmd, args))
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Scan(context.Background(), os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d plan(s) failed indexing", summary.Failed)
	}
	return nil
}

var listCmd = &cobra.Command{
	Use:   "list [query]",
	Short: "List cataloged plans, optionally filtered by objective",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	dir, _ := cmd.Flags().GetString("dir")
	maxResults, _ := cmd.Flags().GetInt("max-results")

	store, err := planindex.NewStore(types.CatalogConfig{BaseDir: dir, MaxResults: maxResults})
	if err != nil {
		return err
	}
	defer store.Close()

	query := ""
	if len(args) > 0 {
		query = args[0]
	}

	records, err := store.List(context.Background(), query)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Println("No plans found.")
		return nil
	}

	for _, r := range records {
		marker := " "
		if r.HasEvidence {
			marker = "+"
		}
		fmt.Fprintf(os.Stdout, "%s %-40s  %s\n", marker, r.ID, r.Objective)
	}
	return nil
}

func catalogConfig(cmd *cobra.Command, args []string) types.CatalogConfig {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	maxResults, _ := cmd.Flags().GetInt("max-results")
	return types.CatalogConfig{BaseDir: dir, MaxResults: maxResults}
}

func init() {
	indexCmd.Flags().Int("max-results", 20, "maximum listing results")

	listCmd.Flags().String("dir", ".", "catalog base directory")
	listCmd.Flags().Int("max-results", 20, "maximum listing results")

	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(listCmd)
}
