// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jzbor/raw-to-img/internal/convert"
	"github.com/jzbor/raw-to-img/internal/encode"
	"github.com/jzbor/raw-to-img/internal/history"
	"github.com/jzbor/raw-to-img/internal/raw"
	"github.com/jzbor/raw-to-img/internal/scan"
	"github.com/jzbor/raw-to-img/internal/stats"
	"github.com/jzbor/raw-to-img/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert <path>",
	Short: "Convert raw files to jpeg, png, or tiff",
	Long: `Convert decodes camera raw files and re-encodes them in a standard
raster format. A single file converts to a sibling with the output
extension (or into --output). A directory converts every whitelisted raw
file it contains, mirroring the tree under --output; files that are
already images and other files are copied, moved, or ignored per
--images and --files.

Per-file failures are reported and the run continues; the exit code is
non-zero if any file failed.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := convertConfig(cmd)
	if err != nil {
		return err
	}

	enc, err := encode.For(cfg.Format, cfg.Quality)
	if err != nil {
		return err
	}

	input := args[0]
	info, err := os.Stat(input)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", input, err)
	}

	entries, err := scan.Resolve(input, cfg.Recursive)
	if err != nil {
		return err
	}

	inputBase := ""
	if info.IsDir() {
		inputBase = input
	} else if entries[0].Kind != types.KindRaw {
		// Direct invocation on a non-raw file is an error; only directory
		// runs skip past them.
		return fmt.Errorf("%s: %w", input, convert.ErrUnsupported)
	}

	started := time.Now()
	batch := &convert.Batch{
		Decoder:   raw.FileDecoder{},
		Encoder:   enc,
		Config:    cfg,
		InputBase: inputBase,
		Out:       os.Stdout,
		Errw:      os.Stderr,
	}
	st, records := batch.Run(entries)
	elapsed := time.Since(started)

	fmt.Fprintln(os.Stdout)
	st.Summary(os.Stdout, elapsed, cfg.Jobs)

	if noHistory, _ := cmd.Flags().GetBool("no-history"); !noHistory {
		recordHistory(input, cfg, st, records, started)
	}

	if st.Errors.Count > 0 {
		return fmt.Errorf("%d file(s) failed", st.Errors.Count)
	}
	return nil
}

func convertConfig(cmd *cobra.Command) (types.ConvertConfig, error) {
	var cfg types.ConvertConfig

	format, err := types.ParseOutputFormat(stringSetting(cmd, "format", "convert.format"))
	if err != nil {
		return cfg, err
	}
	onImage, err := types.ParseFileAction(stringSetting(cmd, "images", "convert.on_image"))
	if err != nil {
		return cfg, err
	}
	onOther, err := types.ParseFileAction(stringSetting(cmd, "files", "convert.on_other"))
	if err != nil {
		return cfg, err
	}

	cfg = types.ConvertConfig{
		Format:    format,
		Quality:   intSetting(cmd, "quality", "convert.quality"),
		Recursive: boolSetting(cmd, "recursive", "convert.recursive"),
		OutputDir: stringSetting(cmd, "output", "convert.output_dir"),
		Overwrite: boolSetting(cmd, "overwrite", "convert.overwrite"),
		Jobs:      intSetting(cmd, "jobs", "convert.jobs"),
		MaxDim:    intSetting(cmd, "max-dim", "convert.max_dim"),
		OnImage:   onImage,
		OnOther:   onOther,
		Sidecar:   boolSetting(cmd, "sidecar", "convert.sidecar"),
	}
	if cfg.Quality < 1 || cfg.Quality > 100 {
		return cfg, fmt.Errorf("quality %d out of range (1-100)", cfg.Quality)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// recordHistory stores the finished run in the history database. Failures
// only warn: history is bookkeeping, not part of the conversion.
func recordHistory(input string, cfg types.ConvertConfig, st *stats.Stats, records []types.FileRecord, started time.Time) {
	path := viper.GetString("history.db_path")
	if path == "" {
		var err error
		path, err = history.DefaultPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: history not recorded: %v\n", err)
			return
		}
	}

	store, err := history.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: history not recorded: %v\n", err)
		return
	}
	defer store.Close()

	run := history.Run{
		StartedAt: started,
		Finished:  time.Now(),
		Input:     input,
		Format:    string(cfg.Format),
		Converted: st.Encoded.Count,
		Copied:    st.Copied.Count,
		Moved:     st.Moved.Count,
		Skipped:   st.Skipped.Count,
		Failed:    st.Errors.Count,
	}
	if _, err := store.Record(context.Background(), run, records); err != nil {
		fmt.Fprintf(os.Stderr, "warning: history not recorded: %v\n", err)
	}
}

func init() {
	convertCmd.Flags().String("format", "jpeg", "output format: jpeg, png, or tiff")
	convertCmd.Flags().Int("quality", 90, "JPEG quality (1-100)")
	convertCmd.Flags().BoolP("recursive", "r", false, "walk directory trees")
	convertCmd.Flags().StringP("output", "o", "", "output base directory (default: next to inputs)")
	convertCmd.Flags().Bool("overwrite", false, "replace existing output files")
	convertCmd.Flags().IntP("jobs", "j", 1, "number of concurrent conversion workers")
	convertCmd.Flags().Int("max-dim", 0, "downscale so the longer edge does not exceed this (0 = off)")
	convertCmd.Flags().String("images", "copy", "action for already-encoded images: copy, move, or ignore")
	convertCmd.Flags().String("files", "copy", "action for other files: copy, move, or ignore")
	convertCmd.Flags().Bool("sidecar", false, "write a YAML metadata sidecar next to each converted file")
	convertCmd.Flags().Bool("no-history", false, "do not record this run in the history database")

	rootCmd.AddCommand(convertCmd)
}
