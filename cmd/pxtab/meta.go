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

var metaFlags struct {
	output   string
	encoding string
}

var metaCmd = &cobra.Command{
	Use:   "meta <locator>",
	Short: "Print the metadata header of a PX document",
	Long: `Print the metadata header of a PX document without its table.

Attributes print in declaration order, one per line, with repeated
declarations of the same name merged into one value list.

Examples:
  # Inspect a document's header
  pxtab meta tables/population.px

  # JSON keeps the declaration order as an array
  pxtab meta --output json tables/population.px`,
	Args: cobra.ExactArgs(1),
	RunE: showMetadata,
}

func init() {
	rootCmd.AddCommand(metaCmd)

	metaCmd.Flags().StringVarP(&metaFlags.output, "output", "o", "text", "output format: text, json, csv")
	metaCmd.Flags().StringVarP(&metaFlags.encoding, "encoding", "e", "", "document charset by IANA name (default UTF-8)")
}

func showMetadata(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(metaFlags.output)
	if err != nil {
		return cli.NewConfigError("output", err.Error())
	}

	ctx := cli.SetupSignalHandler()
	ds, err := pcaxis.Load(ctx, args[0], metaFlags.encoding)
	if err != nil {
		return cli.NewCommandError("meta", err)
	}

	return outputMetadata(os.Stdout, ds.Metadata, format)
}

func outputMetadata(w io.Writer, meta *table.Metadata, format cli.OutputFormat) error {
	switch format {
	case cli.FormatJSON:
		return cli.NewFormatter(format).FormatTo(w, meta)
	case cli.FormatCSV:
		records := make([][]string, 0, meta.Len()+1)
		records = append(records, []string{"name", "values"})
		for _, name := range meta.Keys() {
			records = append(records, []string{name, strings.Join(meta.Get(name), ";")})
		}
		return cli.NewFormatter(format).FormatTo(w, records)
	default:
		for _, name := range meta.Keys() {
			fmt.Fprintf(w, "%s: %s\n", name, strings.Join(meta.Get(name), ", "))
		}
		return nil
	}
}
