// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jzbor/raw-to-img/internal/scan"
	"github.com/jzbor/raw-to-img/pkg/types"
)

var scanCmd = &cobra.Command{
	Use:   "scan <path>",
	Short: "List files and how a conversion run would classify them",
	Long: `Scan resolves a file or directory the same way convert does and prints
each file with its classification (raw, image, or other) without touching
anything.`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	recursive, _ := cmd.Flags().GetBool("recursive")
	rawOnly, _ := cmd.Flags().GetBool("raw-only")

	entries, err := scan.Resolve(args[0], recursive)
	if err != nil {
		return err
	}

	counts := map[types.FileKind]int{}
	for _, e := range entries {
		counts[e.Kind]++
		if rawOnly && e.Kind != types.KindRaw {
			continue
		}
		fmt.Fprintf(os.Stdout, "%-6s %s\n", e.Kind, e.Path)
	}

	fmt.Fprintf(os.Stdout, "\n%d files: %d raw, %d image, %d other\n",
		len(entries), counts[types.KindRaw], counts[types.KindImage], counts[types.KindOther])
	return nil
}

func init() {
	scanCmd.Flags().BoolP("recursive", "r", false, "walk directory trees")
	scanCmd.Flags().Bool("raw-only", false, "list only whitelisted raw files")

	rootCmd.AddCommand(scanCmd)
}
