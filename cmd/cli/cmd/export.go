// Package cmd - export command
package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"retail-analytics/core/engine"
	"retail-analytics/core/report"
	"retail-analytics/export"
	"retail-analytics/internal/config"
	"retail-analytics/internal/errors"
)

var (
	exportFormat string
	exportOut    string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Write every report to CSV, JSON or Excel files",
	Long: `Load data, run every report and write the results to disk.

Examples:
  retail-analytics export ./data
  retail-analytics export --out ./reports --export-format xlsx ./data
  retail-analytics export --export-format json ./data`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "export-format", "", "output file format (csv, json, xlsx)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output directory")
	exportCmd.Flags().StringVar(&dataFormat, "data-format", "", "input data format (csv, json)")
	exportCmd.Flags().StringVar(&dsn, "dsn", "", "load data from a MySQL database instead of files")
	exportCmd.Flags().IntVarP(&topN, "top", "n", 10, "row count for top-customer and top-product rankings")
}

func runExport(cmd *cobra.Command, args []string) error {
	startTime := time.Now()
	cfg := config.Get()

	format := exportFormat
	if format == "" {
		format = cfg.Output.DefaultFormat
	}
	out := exportOut
	if out == "" {
		out = cfg.Output.Dir
	}
	if out == "" {
		out = "."
	}

	ds, issues, err := loadDataset(args)
	if err != nil {
		return err
	}
	for _, issue := range issues {
		fmt.Printf("Warning: %s\n", issue)
	}

	bundle := engine.New(ds).Bundle(topN)
	tables := bundle.Tables()

	switch format {
	case "", "csv":
		err = exportCSV(out, tables)
	case "json":
		err = export.WriteJSON(filepath.Join(out, "reports.json"), bundle)
	case "xlsx":
		err = export.WriteExcel(filepath.Join(out, "reports.xlsx"), tables)
	default:
		return errors.NotSupported("export format " + format)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Exported %d reports to %s in %s\n", len(tables), out, time.Since(startTime).Round(time.Millisecond))
	return nil
}

func exportCSV(out string, tables []report.Table) error {
	bar := progressbar.Default(int64(len(tables)))
	for _, table := range tables {
		if err := export.WriteCSV(out, []report.Table{table}); err != nil {
			return err
		}
		_ = bar.Add(1)
	}
	return nil
}
