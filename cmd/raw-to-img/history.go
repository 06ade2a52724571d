// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jzbor/raw-to-img/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded conversion runs",
	Long: `History lists past conversion runs from the local SQLite history
database, newest first. Use --files with a run ID to show the per-file
records of one run.`,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	path := stringSetting(cmd, "db", "history.db_path")
	if path == "" {
		var err error
		path, err = history.DefaultPath()
		if err != nil {
			return err
		}
	}

	if _, err := os.Stat(path); err != nil {
		fmt.Fprintln(os.Stdout, "No conversion history recorded.")
		return nil
	}

	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	jsonOutput, _ := cmd.Flags().GetBool("json")

	if runID, _ := cmd.Flags().GetInt64("files"); runID > 0 {
		records, err := store.Files(context.Background(), runID)
		if err != nil {
			return err
		}
		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(records)
		}
		for _, rec := range records {
			line := fmt.Sprintf("%-10s %s", rec.Status, rec.Input)
			if rec.Output != "" {
				line += " -> " + rec.Output
			}
			if rec.Error != "" {
				line += " (" + rec.Error + ")"
			}
			fmt.Fprintln(os.Stdout, line)
		}
		return nil
	}

	limit := intSetting(cmd, "limit", "history.limit")
	runs, err := store.Recent(context.Background(), limit)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(os.Stdout, "No conversion history recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-19s  %-40s  %-6s  %9s  %6s  %5s  %7s  %6s\n",
		"ID", "Started", "Input", "Format", "Converted", "Copied", "Moved", "Skipped", "Failed")
	for _, r := range runs {
		input := r.Input
		if len(input) > 40 {
			input = "..." + input[len(input)-37:]
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-19s  %-40s  %-6s  %9d  %6d  %5d  %7d  %6d\n",
			r.ID, r.StartedAt.Local().Format(time.DateTime), input, r.Format,
			r.Converted, r.Copied, r.Moved, r.Skipped, r.Failed)
	}
	return nil
}

func init() {
	historyCmd.Flags().String("db", "", "history database path (default: user cache directory)")
	historyCmd.Flags().Int("limit", 10, "maximum number of runs to list")
	historyCmd.Flags().Int64("files", 0, "show per-file records for a run ID")
	historyCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(historyCmd)
}
