/*
Package cli provides command-line interface utilities for pxtab.

The cli package includes output formatters, typed command errors, and
signal handling helpers used by the pxtab command.

Output Formatting:

Command results render as text, JSON or CSV. The CSV formatter
understands expanded datasets directly:

	format, err := cli.ParseFormat(flagValue)
	if err != nil {
		return err
	}
	formatter := cli.NewFormatter(format)
	if err := formatter.FormatTo(os.Stdout, dataset); err != nil {
		return err
	}

Errors and Exit Codes:

Commands wrap failures in typed errors so the binary can map them to
exit codes:

	if err := doRun(); err != nil {
		return cli.NewCommandError("run", err)
	}

	// in main: os.Exit(cli.ExitCode(err))

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx := cli.SetupSignalHandler()
	// Use ctx for operations that should be cancelled on shutdown
*/
package cli
