package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"tabworks/pxtab/pkg/catalog"
	"tabworks/pxtab/pkg/cli"
	"tabworks/pxtab/pkg/config"
	"tabworks/pxtab/pkg/fetch"
	"tabworks/pxtab/pkg/pcaxis"
)

var watchFlags struct {
	encoding string
	debounce time.Duration
}

var watchCmd = &cobra.Command{
	Use:   "watch <path>",
	Short: "Re-parse a PX file whenever it changes",
	Long: `Watch a PX file and re-parse it on every change.

The file is parsed once up front, then again after each write, with a
short debounce so editors that save in bursts trigger one parse. Each
parse prints a one-line summary; parse failures are reported without
stopping the watch.

Examples:
  # Watch a file being edited
  pxtab watch tables/population.px

  # Slower debounce for tools that write in many chunks
  pxtab watch --debounce 2s tables/population.px`,
	Args: cobra.ExactArgs(1),
	RunE: watchDocument,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchFlags.encoding, "encoding", "e", "", "document charset by IANA name (default UTF-8)")
	watchCmd.Flags().DurationVar(&watchFlags.debounce, "debounce", config.DefaultCatalogDebounceDelay, "delay between a file change and the re-parse")
}

func watchDocument(cmd *cobra.Command, args []string) error {
	locator := args[0]
	if fetch.Classify(locator) != fetch.KindFile {
		return cli.NewConfigError("", "watch requires a filesystem path")
	}

	// Parse once before watching so a bad path fails immediately.
	if err := reportParse(os.Stdout, locator, watchFlags.encoding); err != nil {
		return cli.NewCommandError("watch", err)
	}

	watcher, err := catalog.NewWatcher(watchFlags.debounce)
	if err != nil {
		return cli.NewCommandError("watch", err)
	}
	defer watcher.Stop()

	if err := watcher.Add("watch", locator); err != nil {
		return cli.NewCommandError("watch", err)
	}

	fmt.Printf("Watching %s (Ctrl+C to stop)\n", locator)

	ctx := cli.SetupSignalHandler()
	err = watcher.Watch(ctx, func(string) {
		if err := reportParse(os.Stdout, locator, watchFlags.encoding); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %v\n", err)
		}
	})
	if err != nil {
		return cli.NewCommandError("watch", err)
	}

	fmt.Println("\n✓ Stopped")
	return nil
}

// reportParse parses the document and prints a one-line summary.
func reportParse(w io.Writer, locator, encoding string) error {
	start := time.Now()
	ds, err := pcaxis.Load(context.Background(), locator, encoding)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s parsed %s: %d rows", time.Now().Format("15:04:05"), locator, ds.RowCount())
	if missing := ds.MissingCount(); missing > 0 {
		fmt.Fprintf(w, " (%d missing)", missing)
	}
	fmt.Fprintf(w, " in %s\n", time.Since(start).Round(time.Millisecond))
	return nil
}
