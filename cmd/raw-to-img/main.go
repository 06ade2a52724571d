// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the raw-to-img CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the raw-to-img CLI.
var rootCmd = &cobra.Command{
	Use:   "raw-to-img",
	Short: "Convert camera raw files to standard image formats",
	Long: `raw-to-img converts camera raw files (currently Canon CR2) into JPEG,
PNG, or TIFF. It processes a single file or walks a directory tree,
mirroring it into an output directory and copying or moving the files it
does not convert.

Decoding and encoding are delegated to image libraries; raw-to-img selects
input files, derives output paths, and reports what happened.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./raw-to-img.yaml or ~/.config/raw-to-img/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("raw-to-img")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "raw-to-img"))
		}
	}

	viper.SetEnvPrefix("RAW_TO_IMG")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// stringSetting reads a flag value; an unchanged flag is overridden by the
// config file key when one is set.
func stringSetting(cmd *cobra.Command, flag, key string) string {
	if !cmd.Flags().Changed(flag) && viper.IsSet(key) {
		return viper.GetString(key)
	}
	v, _ := cmd.Flags().GetString(flag)
	return v
}

func intSetting(cmd *cobra.Command, flag, key string) int {
	if !cmd.Flags().Changed(flag) && viper.IsSet(key) {
		return viper.GetInt(key)
	}
	v, _ := cmd.Flags().GetInt(flag)
	return v
}

func boolSetting(cmd *cobra.Command, flag, key string) bool {
	if !cmd.Flags().Changed(flag) && viper.IsSet(key) {
		return viper.GetBool(key)
	}
	v, _ := cmd.Flags().GetBool(flag)
	return v
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
