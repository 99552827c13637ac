package main

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/superstrong/yaml-io/pkg/cli"
	"github.com/superstrong/yaml-io/pkg/provenance"
	"github.com/superstrong/yaml-io/pkg/yamlio"
)

var resolveFlags struct {
	format     string
	provenance bool
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <file>",
	Short: "Print the assembled YAML of a document",
	Long: `Resolve a document and its imports and print the assembled YAML.

The output can be parsed by any YAML parser: imported documents are emitted
ahead of the document that uses them and colliding anchor names are renamed.

Examples:
  # Print the assembled YAML
  yamlio resolve app.yaml

  # JSON report with documents, anchors and the assembled text
  yamlio resolve app.yaml --format json

  # Include the Git commit and worktree state of every document
  yamlio resolve app.yaml --format json --provenance`,
	Args: cobra.ExactArgs(1),
	RunE: resolveDocument,
}

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().StringVarP(&resolveFlags.format, "format", "f", "text", "output format: text, json, yaml")
	resolveCmd.Flags().BoolVar(&resolveFlags.provenance, "provenance", false, "report the Git provenance of every document")
}

// ResolveReport is the structured output of the resolve command.
type ResolveReport struct {
	LoadID     string             `json:"load_id" yaml:"load_id"`
	Path       string             `json:"path" yaml:"path"`
	Layout     string             `json:"layout" yaml:"layout"`
	Documents  []string           `json:"documents" yaml:"documents"`
	Exports    []string           `json:"exports" yaml:"exports"`
	Anchors    []AnchorReport     `json:"anchors" yaml:"anchors"`
	DurationMS float64            `json:"duration_ms" yaml:"duration_ms"`
	Provenance *provenance.Report `json:"provenance,omitempty" yaml:"provenance,omitempty"`
	Artifact   string             `json:"artifact" yaml:"artifact"`
}

// AnchorReport maps an anchor to its name in the assembled text.
type AnchorReport struct {
	Document string `json:"document" yaml:"document"`
	Name     string `json:"name" yaml:"name"`
	Emitted  string `json:"emitted" yaml:"emitted"`
}

func resolveDocument(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseOutputFormat(resolveFlags.format)
	if err != nil {
		return err
	}

	a, ctx, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	res, err := a.loader.Resolve(ctx, args[0])
	if err != nil {
		return cli.NewCommandError("resolve", err)
	}

	var prov *provenance.Report
	if resolveFlags.provenance {
		prov, err = provenance.Inspect(res.Graph)
		switch {
		case errors.Is(err, provenance.ErrNotRepository):
			a.logger.Warn("no provenance available", "path", res.Path, "error", err)
		case err != nil:
			return cli.NewCommandError("resolve", err)
		}
	}

	out := cmd.OutOrStdout()
	if format == cli.FormatText {
		writeProvenanceHeader(out, prov)
		return cli.NewFormatter(format).FormatTo(out, res.Artifact.Text)
	}
	return cli.NewFormatter(format).FormatTo(out, newResolveReport(res, prov))
}

func newResolveReport(res *yamlio.Result, prov *provenance.Report) *ResolveReport {
	report := &ResolveReport{
		LoadID:     res.LoadID,
		Path:       res.Path,
		Layout:     res.Artifact.Layout.String(),
		Documents:  res.Artifact.Documents,
		Exports:    res.Graph.Root.Namespace.Names(),
		Anchors:    make([]AnchorReport, 0, len(res.Artifact.Anchors)),
		DurationMS: float64(res.Duration.Microseconds()) / 1000,
		Provenance: prov,
		Artifact:   res.Artifact.Text,
	}
	for id, emitted := range res.Artifact.Anchors {
		report.Anchors = append(report.Anchors, AnchorReport{
			Document: id.Path,
			Name:     id.Name,
			Emitted:  emitted,
		})
	}
	sort.Slice(report.Anchors, func(i, j int) bool {
		if report.Anchors[i].Document != report.Anchors[j].Document {
			return report.Anchors[i].Document < report.Anchors[j].Document
		}
		return report.Anchors[i].Name < report.Anchors[j].Name
	})
	return report
}

// writeProvenanceHeader prefixes the assembled text with YAML comments, so
// the output stays parseable.
func writeProvenanceHeader(w io.Writer, prov *provenance.Report) {
	if prov == nil {
		return
	}
	if prov.Commit != nil {
		fmt.Fprintf(w, "# commit: %s", prov.Commit.SHA)
		if prov.Commit.Branch != "" {
			fmt.Fprintf(w, " (%s)", prov.Commit.Branch)
		}
		fmt.Fprintln(w)
	}
	for _, doc := range prov.Documents {
		if doc.State != provenance.StateClean {
			fmt.Fprintf(w, "# %s: %s\n", doc.State, doc.Path)
		}
	}
}
