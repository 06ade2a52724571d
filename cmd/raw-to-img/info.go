// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jzbor/raw-to-img/internal/raw"
	"github.com/jzbor/raw-to-img/internal/stats"
)

var infoCmd = &cobra.Command{
	Use:   "info <file>...",
	Short: "Print camera metadata from raw files",
	Long: `Info reads the EXIF directory of each raw file and prints the camera
make, model, and sensor dimensions. Only the metadata tags are read; the
image itself is not decoded.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	failed := 0
	for _, path := range args {
		start := time.Now()
		meta, err := raw.ReadMetaFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed: %s: %v\n", path, err)
			failed++
			continue
		}

		fmt.Fprintf(os.Stdout, "File: %s\n", path)
		if meta.Width > 0 && meta.Height > 0 {
			fmt.Fprintf(os.Stdout, "\tSize: %dx%d\n", meta.Width, meta.Height)
		}
		if meta.Make != "" || meta.Model != "" {
			fmt.Fprintf(os.Stdout, "\tTaken with %s %s\n", meta.Make, meta.Model)
		}
		fmt.Fprintf(os.Stdout, "\tRead metadata in %s\n", stats.FormatDuration(time.Since(start)))
	}

	if failed > 0 {
		return fmt.Errorf("%d file(s) failed", failed)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
