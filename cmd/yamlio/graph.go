package main

import (
	"github.com/spf13/cobra"

	"github.com/superstrong/yaml-io/pkg/cli"
)

var graphCmd = &cobra.Command{
	Use:   "graph <file>",
	Short: "Print the import graph in Graphviz DOT format",
	Long: `Resolve a document and print its import graph in Graphviz DOT format.

Vertices are canonical document paths; edges point from the importing
document to the imported one and are labelled with the import alias.

Examples:
  yamlio graph app.yaml | dot -Tsvg > imports.svg`,
	Args: cobra.ExactArgs(1),
	RunE: printGraph,
}

func init() {
	rootCmd.AddCommand(graphCmd)
}

func printGraph(cmd *cobra.Command, args []string) error {
	a, ctx, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	res, err := a.loader.Resolve(ctx, args[0])
	if err != nil {
		return cli.NewCommandError("graph", err)
	}

	if err := res.Graph.DOT(cmd.OutOrStdout()); err != nil {
		return cli.NewCommandError("graph", err)
	}
	return nil
}
