// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pollscan/internal/engine"
	"github.com/pdiddy/pollscan/pkg/types"
)

var discoverCmd = &cobra.Command{
	Use:   "discover <payload-dir>",
	Short: "Run the engine over already-captured payload files",
	Long: `Discover reads every file in a directory as one candidate payload and
runs the discovery and normalization engine over the pool. Content types
are guessed from file extensions; the engine only uses them as a bias,
so a wrong guess costs nothing.

Useful for replaying a captured pool while tuning scoring thresholds.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		payloads, err := readPayloadDir(args[0])
		if err != nil {
			return err
		}
		if len(payloads) == 0 {
			return fmt.Errorf("no payload files in %s", args[0])
		}
		fmt.Fprintf(os.Stderr, "loaded %d payloads from %s\n", len(payloads), args[0])

		report, err := engine.Run(payloads, engineConfig(), time.Now().UTC(), os.Stderr)
		if err != nil {
			return describeOutcome(err)
		}

		out, _ := cmd.Flags().GetString("out")
		format, _ := cmd.Flags().GetString("format")
		return writeReport(report, out, format)
	},
}

func init() {
	discoverCmd.Flags().String("out", "", "write the report to this file (default: stdout)")
	discoverCmd.Flags().String("format", "json", "report format: json or yaml")

	rootCmd.AddCommand(discoverCmd)
}

// readPayloadDir loads every regular file in dir as a RawPayload.
func readPayloadDir(dir string) ([]types.RawPayload, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading payload directory %s: %w", dir, err)
	}

	var payloads []types.RawPayload
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read %s: %v\n", path, err)
			continue
		}
		payloads = append(payloads, types.RawPayload{
			URL:         "file://" + path,
			ContentType: contentTypeByExt(entry.Name()),
			Body:        string(data),
		})
	}
	return payloads, nil
}

func contentTypeByExt(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return "application/json"
	case ".csv":
		return "text/csv"
	case ".tsv":
		return "text/tab-separated-values"
	case ".js":
		return "text/javascript"
	}
	return "text/plain"
}
