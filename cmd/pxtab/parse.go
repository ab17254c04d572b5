package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"tabworks/pxtab/pkg/cli"
	"tabworks/pxtab/pkg/pcaxis"
	"tabworks/pxtab/pkg/pcaxis/table"
)

var parseFlags struct {
	output   string
	encoding string
}

var parseCmd = &cobra.Command{
	Use:   "parse <locator>",
	Short: "Parse a PX document and print its table",
	Long: `Parse a PX document and print its expanded table.

The locator is a filesystem path or an HTTP(S) URL. The document's
dimensions are expanded into one row per observation, each row carrying
its member labels. Missing values print as the conventional ".." marker.

Examples:
  # Parse a local file
  pxtab parse tables/population.px

  # Parse from a statistics server
  pxtab parse https://example.org/api/population.px

  # Legacy charset
  pxtab parse --encoding ISO-8859-15 tables/legacy.px

  # Machine-readable output for pipelines
  pxtab parse --output csv tables/population.px
  pxtab parse --output json tables/population.px`,
	Args: cobra.ExactArgs(1),
	RunE: parseDocument,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseFlags.output, "output", "o", "text", "output format: text, json, csv")
	parseCmd.Flags().StringVarP(&parseFlags.encoding, "encoding", "e", "", "document charset by IANA name (default UTF-8)")
}

func parseDocument(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(parseFlags.output)
	if err != nil {
		return cli.NewConfigError("output", err.Error())
	}

	ctx := cli.SetupSignalHandler()
	ds, err := pcaxis.Load(ctx, args[0], parseFlags.encoding)
	if err != nil {
		return cli.NewCommandError("parse", err)
	}

	return outputDataset(os.Stdout, ds, format)
}

func outputDataset(w io.Writer, ds *table.Dataset, format cli.OutputFormat) error {
	switch format {
	case cli.FormatJSON, cli.FormatCSV:
		return cli.NewFormatter(format).FormatTo(w, ds)
	default:
		return outputDatasetText(w, ds)
	}
}

func outputDatasetText(w io.Writer, ds *table.Dataset) error {
	if title := ds.Title(); title != "" {
		fmt.Fprintf(w, "Title: %s\n", title)
	}
	if units := ds.Units(); units != "" {
		fmt.Fprintf(w, "Units: %s\n", units)
	}

	fmt.Fprintf(w, "Dimensions: %d\n", len(ds.Dimensions))
	for _, d := range ds.Dimensions {
		fmt.Fprintf(w, "  %s (%s, %d members)\n", d.Name, d.Role, d.Size())
	}

	fmt.Fprintf(w, "Rows: %d", ds.RowCount())
	if missing := ds.MissingCount(); missing > 0 {
		fmt.Fprintf(w, " (%d missing)", missing)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w)

	for _, row := range ds.Rows {
		label := strings.Join(row.Labels, ", ")
		if label == "" {
			label = "value"
		}
		fmt.Fprintf(w, "%s: %s\n", label, table.FormatValue(row.Value))
	}

	return nil
}
