package main

import (
	"github.com/spf13/cobra"

	"github.com/superstrong/yaml-io/pkg/cli"
)

var loadFlags struct {
	output string
	export string
	all    bool
}

var loadCmd = &cobra.Command{
	Use:   "load <file>",
	Short: "Decode a document and print its value",
	Long: `Resolve and decode a document, then print the resulting value.

Only the document's own content is printed; imported documents contribute
values through aliases.

Examples:
  # Print the value as YAML
  yamlio load app.yaml

  # Print the value as JSON
  yamlio load app.yaml --output json

  # Print one exported anchor. A re-export such as "#!export base.defaults"
  # is exported as "defaults".
  yamlio load app.yaml --export defaults

  # Print every exported anchor
  yamlio load app.yaml --exports`,
	Args: cobra.ExactArgs(1),
	RunE: loadDocument,
}

func init() {
	rootCmd.AddCommand(loadCmd)

	loadCmd.Flags().StringVarP(&loadFlags.output, "output", "o", "yaml", "output format: yaml, json")
	loadCmd.Flags().StringVar(&loadFlags.export, "export", "", "print the value of one exported name")
	loadCmd.Flags().BoolVar(&loadFlags.all, "exports", false, "print the values of all exported names")
}

func loadDocument(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseOutputFormat(loadFlags.output)
	if err != nil {
		return err
	}
	if format == cli.FormatText {
		format = cli.FormatYAML
	}

	a, ctx, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	res, err := a.loader.Resolve(ctx, args[0])
	if err != nil {
		return cli.NewCommandError("load", err)
	}

	var value any
	switch {
	case loadFlags.export != "":
		err = res.DecodeExport(loadFlags.export, &value)
	case loadFlags.all:
		value, err = res.Exports()
	default:
		err = res.Decode(&value)
	}
	if err != nil {
		return cli.NewCommandError("load", err)
	}

	return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), value)
}
