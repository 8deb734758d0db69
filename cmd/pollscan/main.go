// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pollscan CLI: capture candidate
// payloads, discover the authoritative poll dataset among them, and emit
// or store the normalized report.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pollscan/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the pollscan CLI.
var rootCmd = &cobra.Command{
	Use:   "pollscan",
	Short: "Discover and normalize tabular poll datasets",
	Long: `pollscan ingests a pool of raw network payloads (spreadsheet exports,
JSON, wrapped query responses), picks the one authoritative tabular poll
dataset among them, and normalizes it into bucketed canonical records:
generic-ballot polls, approval polls, and per-race lists.

Each stage is a subcommand: harvest fetches payloads and runs the full
pipeline, discover runs the engine over already-captured payload files,
and runs lists or re-exports stored harvests.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pollscan.yaml or ~/.config/pollscan/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pollscan")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pollscan"))
		}
	}

	viper.SetEnvPrefix("POLLSCAN")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// engineConfig builds the engine thresholds from config keys, falling back
// to the built-in defaults.
func engineConfig() types.EngineConfig {
	return types.EngineConfig{
		MinScore:         viper.GetFloat64("engine.min_score"),
		MinRows:          viper.GetInt("engine.min_rows"),
		AnswerDensity:    viper.GetFloat64("engine.answer_density"),
		AnswerSampleRows: viper.GetInt("engine.answer_sample_rows"),
	}.Defaults()
}

// captureConfig builds the capture settings from config keys.
func captureConfig() types.CaptureConfig {
	cfg := types.CaptureConfig{
		FetchDelay:   viper.GetDuration("capture.fetch_delay"),
		MaxBodyBytes: viper.GetInt64("capture.max_body_bytes"),
		MaxRetries:   viper.GetInt("capture.max_retries"),
	}
	cfg.Timeout = viper.GetDuration("capture.timeout")
	cfg.UserAgent = viper.GetString("capture.user_agent")
	if cfg.UserAgent == "" {
		cfg.UserAgent = "pollscan/" + version
	}
	if cfg.FetchDelay == 0 {
		cfg.FetchDelay = time.Second
	}
	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
