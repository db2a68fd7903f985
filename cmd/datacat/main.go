// Command datacat inspects, converts, and compares tabular data files in
// avro, csv, json, and parquet formats.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/boringdata/datacat/internal/compare"
	"github.com/boringdata/datacat/internal/meta"
	"github.com/boringdata/datacat/internal/output"
	"github.com/boringdata/datacat/internal/table"
)

// Build info
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	// CLI flags (shared)
	verbose   bool
	hasHeader bool

	// view flags
	viewLimit  int
	viewFormat string

	// compare flags
	epsilon  float64
	absolute bool

	logger = zap.NewNop()
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(2)
	}
}

var rootCmd = &cobra.Command{
	Use:   "datacat",
	Short: "View, convert, and compare tabular data files",
	Long: `datacat works with avro, csv, json, and parquet files.

The file format is detected from the file extension.

Examples:
  datacat view data.parquet
  datacat schema data.csv
  datacat count data.avro
  datacat convert data.csv data.parquet
  datacat compare left.parquet right.parquet --epsilon 0.0001
  datacat meta data.parquet`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			if l, err := zap.NewDevelopment(); err == nil {
				logger = l
			}
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&hasHeader, "header", true, "Treat the first row of csv input as a header row")

	viewCmd.Flags().IntVarP(&viewLimit, "limit", "l", 10, "Maximum number of rows to show (0 = no limit)")
	viewCmd.Flags().StringVarP(&viewFormat, "format", "f", "table", "Output format: table, csv, or jsonl")

	compareCmd.Flags().Float64VarP(&epsilon, "epsilon", "e", 0, "Tolerance for floating point comparisons")
	compareCmd.Flags().BoolVar(&absolute, "absolute", false, "Apply the epsilon tolerance to the absolute difference")

	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(countCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(metaCmd)
	rootCmd.AddCommand(versionCmd)
}

func loadOptions() table.Options {
	return table.Options{Header: hasHeader, Logger: logger}
}

var viewCmd = &cobra.Command{
	Use:   "view <file>",
	Short: "Show the contents of a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tbl, err := table.Load(cmd.Context(), args[0], loadOptions())
		if err != nil {
			return err
		}
		defer tbl.Release()

		formatter, err := output.New(viewFormat, os.Stdout)
		if err != nil {
			return err
		}
		return formatter.Format(tbl.ColumnNames(), tbl.RowMaps(viewLimit))
	},
}

var schemaCmd = &cobra.Command{
	Use:   "schema <file>",
	Short: "Show the schema of a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tbl, err := table.Load(cmd.Context(), args[0], loadOptions())
		if err != nil {
			return err
		}
		defer tbl.Release()

		formatter := output.NewTableFormatter(os.Stdout)
		return formatter.Format(schemaColumns, schemaRows(tbl))
	},
}

var schemaColumns = []string{"column_name", "data_type", "nullable"}

func schemaRows(tbl *table.Table) []map[string]interface{} {
	rows := make([]map[string]interface{}, tbl.Schema.NumFields())
	for i, f := range tbl.Schema.Fields() {
		rows[i] = map[string]interface{}{
			"column_name": f.Name,
			"data_type":   f.Type.String(),
			"nullable":    f.Nullable,
		}
	}
	return rows
}

var countCmd = &cobra.Command{
	Use:   "count <file>",
	Short: "Show the row count of a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tbl, err := table.Load(cmd.Context(), args[0], loadOptions())
		if err != nil {
			return err
		}
		defer tbl.Release()

		fmt.Println(tbl.NumRows())
		return nil
	},
}

var convertCmd = &cobra.Command{
	Use:   "convert <input> <output>",
	Short: "Convert a file to another format",
	Long: `Convert a file to the format implied by the output file's extension.

Examples:
  datacat convert data.csv data.parquet
  datacat convert data.parquet data.json`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		tbl, err := table.Load(cmd.Context(), args[0], loadOptions())
		if err != nil {
			return err
		}
		defer tbl.Release()

		return table.Write(cmd.Context(), tbl, args[1])
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare <left> <right>",
	Short: "Compare the contents of two files",
	Long: `Compare two files row by row and report the first difference.

The files may be in different formats. With --epsilon, floating point cells
of the same width match when the left value minus the right value is below
the tolerance; --absolute applies the tolerance to the absolute difference
instead.

Exit status is 0 when the files match, 1 when a difference is found, and 2
when the comparison could not be carried out.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var opts compare.Options
		if cmd.Flags().Changed("epsilon") {
			if epsilon < 0 {
				return fmt.Errorf("epsilon must be non-negative, got %v", epsilon)
			}
			e := epsilon
			opts.Epsilon = &e
		}
		opts.Absolute = absolute

		left, err := table.Load(cmd.Context(), args[0], loadOptions())
		if err != nil {
			return err
		}
		defer left.Release()

		right, err := table.Load(cmd.Context(), args[1], loadOptions())
		if err != nil {
			return err
		}
		defer right.Release()

		result, err := compare.Compare(left.Batches, right.Batches, opts)
		if err != nil {
			return err
		}

		fmt.Println(result.String())
		if !result.Matched() {
			os.Exit(1)
		}
		return nil
	},
}

var metaCmd = &cobra.Command{
	Use:   "meta <file>",
	Short: "Show the metadata of a parquet file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := meta.Read(args[0])
		if err != nil {
			return err
		}
		return renderMeta(os.Stdout, info)
	},
}

// renderMeta writes file-level metadata followed by one statistics table per
// row group.
func renderMeta(w io.Writer, info *meta.FileInfo) error {
	formatter := output.NewTableFormatter(w)

	fileRows := []map[string]interface{}{
		{"key": "version", "value": fmt.Sprintf("%d", info.Version)},
		{"key": "created_by", "value": info.CreatedBy},
		{"key": "num_rows", "value": fmt.Sprintf("%d", info.NumRows)},
		{"key": "num_row_groups", "value": fmt.Sprintf("%d", len(info.RowGroups))},
	}
	if err := formatter.Format([]string{"key", "value"}, fileRows); err != nil {
		return err
	}

	columns := []string{"column_name", "physical_type", "logical_type", "nulls", "distinct", "min", "max"}
	for i, rg := range info.RowGroups {
		fmt.Fprintf(w, "\nrow group %d: %d rows, %d bytes\n", i, rg.NumRows, rg.TotalByteSize)

		rows := make([]map[string]interface{}, len(rg.Columns))
		for j, col := range rg.Columns {
			rows[j] = map[string]interface{}{
				"column_name":   col.Name,
				"physical_type": col.PhysicalType,
				"logical_type":  col.LogicalType,
				"nulls":         fmt.Sprintf("%d", col.NullCount),
				"distinct":      fmt.Sprintf("%d", col.DistinctCount),
				"min":           col.Min,
				"max":           col.Max,
			}
		}
		if err := formatter.Format(columns, rows); err != nil {
			return err
		}
	}
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("datacat %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}
