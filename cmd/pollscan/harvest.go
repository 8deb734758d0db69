// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pollscan/internal/capture"
	"github.com/pdiddy/pollscan/internal/discover"
	"github.com/pdiddy/pollscan/internal/engine"
	"github.com/pdiddy/pollscan/internal/store"
	"github.com/pdiddy/pollscan/pkg/types"
)

var harvestCmd = &cobra.Command{
	Use:   "harvest [urls...]",
	Short: "Fetch candidate payloads and run the full pipeline",
	Long: `Harvest fetches the given URLs (or those listed in --url-file), skips
tracking endpoints and markup, runs the discovery and normalization
engine over the captured payloads, and writes the report document.

Exit is non-zero when no dataset cleared the selection floor or when the
selected dataset normalized to zero records; the diagnostic output names
every candidate and its score so the failure can be debugged offline.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		urls := args
		if urlFile, _ := cmd.Flags().GetString("url-file"); urlFile != "" {
			fromFile, err := readURLFile(urlFile)
			if err != nil {
				return err
			}
			urls = append(urls, fromFile...)
		}
		if len(urls) == 0 {
			return fmt.Errorf("no URLs given: pass them as arguments or via --url-file")
		}

		captured, err := capture.Fetch(cmd.Context(), urls, captureConfig(), os.Stderr)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "captured %d payloads (%d excluded)\n",
			len(captured.Payloads), len(captured.Excluded))

		report, err := engine.Run(captured.Payloads, engineConfig(), time.Now().UTC(), os.Stderr)
		if err != nil {
			return describeOutcome(err)
		}

		if save, _ := cmd.Flags().GetBool("store"); save {
			runID, err := saveReport(cmd, report)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "stored run %d\n", runID)
		}

		out, _ := cmd.Flags().GetString("out")
		format, _ := cmd.Flags().GetString("format")
		return writeReport(report, out, format)
	},
}

func init() {
	harvestCmd.Flags().String("url-file", "", "file with one candidate URL per line")
	harvestCmd.Flags().String("out", "", "write the report to this file (default: stdout)")
	harvestCmd.Flags().String("format", "json", "report format: json or yaml")
	harvestCmd.Flags().Bool("store", false, "also persist the report as a run in the database")

	rootCmd.AddCommand(harvestCmd)
}

// readURLFile reads one URL per line, skipping blanks and # comments.
func readURLFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening url file: %w", err)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	return urls, scanner.Err()
}

// describeOutcome prints diagnostics for the two terminal engine outcomes
// before handing the error back to cobra.
func describeOutcome(err error) error {
	var noData *discover.NoDatasetError
	if errors.As(err, &noData) {
		fmt.Fprintln(os.Stderr, "no dataset found; candidates considered:")
		for _, c := range noData.Candidates {
			fmt.Fprintf(os.Stderr, "  %-8s %7.1f  %3d rows  %s\n", c.Format, c.Score, c.Rows, c.URL)
		}
		return err
	}

	var empty *discover.EmptyNormalizationError
	if errors.As(err, &empty) {
		fmt.Fprintf(os.Stderr, "empty after normalization: %s\n", empty.DatasetURL)
		fmt.Fprintf(os.Stderr, "  columns: %s\n", strings.Join(empty.Columns, ", "))
		fmt.Fprintf(os.Stderr, "  sample row: %v\n", empty.SampleRow)
		return err
	}
	return err
}

func saveReport(cmd *cobra.Command, report *types.Report) (int64, error) {
	st, err := store.Open(types.StoreConfig{DataDir: viper.GetString("store.data_dir")})
	if err != nil {
		return 0, err
	}
	defer st.Close()
	return st.SaveReport(cmd.Context(), report)
}

// writeReport serializes the report as JSON or YAML to path, or stdout
// when path is empty.
func writeReport(report *types.Report, path, format string) error {
	var data []byte
	var err error
	switch format {
	case "yaml":
		data, err = yaml.Marshal(report)
	case "json", "":
		data, err = json.MarshalIndent(report, "", "  ")
		data = append(data, '\n')
	default:
		return fmt.Errorf("unknown format %q: want json or yaml", format)
	}
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}

	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
