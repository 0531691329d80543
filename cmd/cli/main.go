package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"scadaval/adapters/excel"
	"scadaval/app"
	"scadaval/internal"
	"scadaval/internal/config"
	"scadaval/internal/deviation"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:           "scadaval",
		Short:         "Compare two numeric columns of a workbook and classify their deviation",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// A missing .env file is fine; the environment is used as is
			_ = godotenv.Load()
			if level, ok := internal.ParseLogLevel(logLevel); ok {
				internal.DefaultLogger = internal.NewLoggerTo(level, os.Stderr)
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (error, warn, info, debug, trace)")

	rootCmd.AddCommand(
		newColumnsCmd(),
		newCompareCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newColumnsCmd() *cobra.Command {
	var sheet string

	cmd := &cobra.Command{
		Use:   "columns [file]",
		Short: "List the columns of an Excel or CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := excel.NewDataReader(args[0]).WithSheet(sheet).ReadData()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Data loaded: %d rows and %d columns.\n", data.RowCount(), len(data.Columns()))
			for i, name := range data.Columns() {
				fmt.Fprintf(out, "%3d  %s\n", i+1, name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", "", "Worksheet to read (default: first sheet)")

	return cmd
}

func newCompareCmd() *cobra.Command {
	var (
		sheet      string
		asJSON     bool
		exportPath string
		noColor    bool
		workers    int
	)

	cmd := &cobra.Command{
		Use:   "compare [file] [baseline-column] [reference-column]",
		Short: "Compare two columns row by row",
		Long: `Compare a baseline column against a reference column.

Every row gets a percentage deviation relative to the baseline and a tier:
green within 2%, orange within 5%, red beyond. Rows with a blank cell are
reported as missing, rows with a zero baseline as undefined.

Example: scadaval compare readings.xlsx SCADA Reference --export deviation.xlsx`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if workers > 0 {
				cfg.Engine.Workers = workers
			}
			if sheet == "" {
				sheet = cfg.Data.Sheet
			}

			report, err := runCompare(cmd.Context(), cfg, args[0], sheet, args[1], args[2])
			if err != nil {
				return err
			}

			if exportPath != "" {
				if err := exportReport(exportPath, report); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}

			newPrinter(out, useColor(out, noColor)).printReport(report)
			if exportPath != "" {
				fmt.Fprintf(out, "\nExported to %s\n", exportPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", "", "Worksheet to read (default: first sheet)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")
	cmd.Flags().StringVar(&exportPath, "export", "", "Write the results to an xlsx file")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable coloured output")
	cmd.Flags().IntVar(&workers, "workers", 0, "Parallel workers (default: ENGINE_WORKERS or CPU count)")

	return cmd
}

func runCompare(ctx context.Context, cfg *config.Config, path, sheet, columnA, columnB string) (*app.ComparisonReport, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	data, err := excel.NewDataReader(path).WithSheet(sheet).ReadData()
	if err != nil {
		return nil, err
	}

	logger := internal.DefaultLogger
	engine := deviation.NewEngine(deviation.Options{
		Workers:   cfg.Engine.Workers,
		ChunkSize: cfg.Engine.ChunkSize,
	}, logger)

	return app.NewComparisonService(engine, logger).Compare(ctx, app.ComparisonRequest{
		Table:   data,
		ColumnA: columnA,
		ColumnB: columnB,
	})
}

func exportReport(path string, report *app.ComparisonReport) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := excel.ExportResults(file, report.ColumnA, report.ColumnB, report.Result()); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// useColor enables styling only for terminals
func useColor(w io.Writer, noColor bool) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
