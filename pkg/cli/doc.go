/*
Package cli provides helpers shared by the yamlio commands.

Output Formatting:

Command results can be printed as text, JSON or YAML:

	format, err := cli.ParseOutputFormat(flagValue)
	if err != nil {
		return err
	}
	if err := cli.NewFormatter(format).FormatTo(os.Stdout, result); err != nil {
		return err
	}

Errors:

CommandError and ConfigError carry the failing command or field. ExitCode
maps any error to the process exit status, distinguishing configuration
problems from documents that failed to resolve.

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()
*/
package cli
