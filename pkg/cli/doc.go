/*
Package cli provides command-line helpers shared by the aircause command:
output formatters, typed command errors with exit codes, and signal handling.

Output Formatting:

	formatter := cli.NewFormatter(cli.FormatJSON)
	if err := formatter.FormatTo(os.Stdout, info); err != nil {
		return err
	}

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx, stop := cli.SetupSignalHandler(logger)
	defer stop()
	// ctx is cancelled when a shutdown signal arrives
*/
package cli
