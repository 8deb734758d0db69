// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pollscan/internal/store"
	"github.com/pdiddy/pollscan/pkg/types"
)

var runsCmd = &cobra.Command{
	Use:   "runs [run-id]",
	Short: "List stored harvest runs or re-export one",
	Long: `Runs lists the harvest runs stored in the database, newest first. With
a run ID it reconstructs that run's report document and writes it in the
requested format.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.Open(types.StoreConfig{DataDir: viper.GetString("store.data_dir")})
		if err != nil {
			return err
		}
		defer st.Close()

		if len(args) == 0 {
			runs, err := st.ListRuns(cmd.Context())
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("No stored runs.")
				return nil
			}
			fmt.Printf("%-5s  %-20s  %-10s  %-8s  %s\n", "ID", "Fetched", "Format", "Records", "Dataset")
			for _, r := range runs {
				fmt.Printf("%-5d  %-20s  %-10s  %-8d  %s\n",
					r.ID, r.FetchedAt.Format("2006-01-02 15:04:05"), r.DatasetFormat, r.Records, r.DatasetURL)
			}
			return nil
		}

		runID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid run id %q", args[0])
		}
		report, err := st.LoadReport(cmd.Context(), runID)
		if err != nil {
			return err
		}

		out, _ := cmd.Flags().GetString("out")
		format, _ := cmd.Flags().GetString("format")
		if err := writeReport(report, out, format); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "run %d: %d records\n", runID, report.TotalRecords())
		return nil
	},
}

func init() {
	runsCmd.Flags().String("out", "", "write the report to this file (default: stdout)")
	runsCmd.Flags().String("format", "json", "report format: json or yaml")

	rootCmd.AddCommand(runsCmd)
}
