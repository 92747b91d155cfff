/*
Package cli provides command-line helpers for the farmgenius command.

Output Formatting:

Command results are printed as text or JSON. Results implementing Texter
control their own text rendering:

	formatter := cli.NewFormatter(cli.FormatJSON)
	if err := formatter.FormatTo(os.Stdout, banner); err != nil {
		return err
	}

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx, stop := cli.SignalContext(context.Background())
	defer stop()

Errors:

ExitCode maps command errors to process exit codes; configuration errors
exit with 2.
*/
package cli
