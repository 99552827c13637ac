package assembler

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/superstrong/yaml-io/pkg/imports/directive"
	importErrors "github.com/superstrong/yaml-io/pkg/imports/errors"
	"github.com/superstrong/yaml-io/pkg/imports/resolver"
)

// resolveFiles writes files into a temporary directory and resolves
// main.yaml.
func resolveFiles(t *testing.T, files map[string]string) (string, *resolver.Graph) {
	t.Helper()

	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("EvalSymlinks() error = %v", err)
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("MkdirAll() error = %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
	}

	g, err := resolver.New().Resolve(context.Background(), filepath.Join(dir, "main.yaml"))
	if err != nil {
		t.Fatalf("Resolve() error = %v, want nil", err)
	}
	return dir, g
}

// decodeDocument parses a wrapped artifact and returns its document value.
func decodeDocument(t *testing.T, text string) map[string]interface{} {
	t.Helper()

	var out struct {
		Document map[string]interface{} `yaml:"document"`
	}
	if err := yaml.Unmarshal([]byte(text), &out); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v\n%s", err, text)
	}
	return out.Document
}

func TestAssemble_WrappedText(t *testing.T) {
	dir, g := resolveFiles(t, map[string]string{
		"main.yaml":   "#!import shared.yaml as s\nuse: *s.value\n",
		"shared.yaml": "value: &value 42\n",
	})

	artifact, err := New().Assemble(g)
	if err != nil {
		t.Fatalf("Assemble() error = %v, want nil", err)
	}

	want := "imports:\n" +
		"  - # " + filepath.Join(dir, "shared.yaml") + "\n" +
		"    value: &value 42\n" +
		"document:\n" +
		"  use: *value\n"
	if artifact.Text != want {
		t.Errorf("Text =\n%s\nwant\n%s", artifact.Text, want)
	}

	if artifact.Layout != LayoutWrapped {
		t.Errorf("Layout = %q, want wrapped", artifact.Layout)
	}
	wantDocs := []string{filepath.Join(dir, "shared.yaml"), filepath.Join(dir, "main.yaml")}
	if !reflect.DeepEqual(artifact.Documents, wantDocs) {
		t.Errorf("Documents = %v, want %v", artifact.Documents, wantDocs)
	}

	doc := decodeDocument(t, artifact.Text)
	if doc["use"] != 42 {
		t.Errorf("use = %v, want 42", doc["use"])
	}
}

func TestAssemble_NoImports(t *testing.T) {
	_, g := resolveFiles(t, map[string]string{
		"main.yaml": "a: &a 1\nb: *a\n",
	})

	artifact, err := New().Assemble(g)
	if err != nil {
		t.Fatalf("Assemble() error = %v, want nil", err)
	}
	if want := "document:\n  a: &a 1\n  b: *a\n"; artifact.Text != want {
		t.Errorf("Text = %q, want %q", artifact.Text, want)
	}
}

func TestAssemble_AnchorCollisions(t *testing.T) {
	_, g := resolveFiles(t, map[string]string{
		"main.yaml": "#!import b.yaml as b\nlocal: &x mine\nremote: *b.x\nself: *x\n",
		"b.yaml":    "x: &x from-b\n",
	})

	artifact, err := New().Assemble(g)
	if err != nil {
		t.Fatalf("Assemble() error = %v, want nil", err)
	}

	bID := resolver.AnchorID{Path: g.Order[0].Path, Name: "x"}
	mainID := resolver.AnchorID{Path: g.Root.Path, Name: "x"}
	if artifact.Anchors[bID] != "x" || artifact.Anchors[mainID] != "x_1" {
		t.Errorf("Anchors = %v, want b#x=x main#x=x_1", artifact.Anchors)
	}
	if got := artifact.Renamed(); !reflect.DeepEqual(got, []resolver.AnchorID{mainID}) {
		t.Errorf("Renamed() = %v, want [%v]", got, mainID)
	}

	if want := "local: &x_1 mine\nremote: *x\nself: *x_1\n"; g.Root.ResolvedBody != want {
		t.Errorf("ResolvedBody = %q, want %q", g.Root.ResolvedBody, want)
	}

	doc := decodeDocument(t, artifact.Text)
	want := map[string]interface{}{"local": "mine", "remote": "from-b", "self": "mine"}
	if !reflect.DeepEqual(doc, want) {
		t.Errorf("document = %v, want %v", doc, want)
	}
}

func TestAssemble_ReExportChain(t *testing.T) {
	_, g := resolveFiles(t, map[string]string{
		"versioned.yaml": "stable: &stable\n  version: 1.2.0\n  channel: stable\n",
		"router.yaml":    "#!import versioned.yaml as ver\n#!export ver.stable\nroute: &route\n  <<: *ver.stable\n  path: /api\n",
		"main.yaml":      "#!import router.yaml as router\nservice:\n  release: *router.stable\n  route: *router.route\n",
	})

	artifact, err := New().Assemble(g)
	if err != nil {
		t.Fatalf("Assemble() error = %v, want nil", err)
	}

	doc := decodeDocument(t, artifact.Text)
	service, ok := doc["service"].(map[string]interface{})
	if !ok {
		t.Fatalf("service = %#v, want mapping", doc["service"])
	}

	release := map[string]interface{}{"version": "1.2.0", "channel": "stable"}
	if !reflect.DeepEqual(service["release"], release) {
		t.Errorf("release = %v, want %v", service["release"], release)
	}
	route := map[string]interface{}{"version": "1.2.0", "channel": "stable", "path": "/api"}
	if !reflect.DeepEqual(service["route"], route) {
		t.Errorf("route = %v, want %v", service["route"], route)
	}

	if _, ok := doc["stable"]; ok {
		t.Error("imported content leaked into the document value")
	}
}

func TestAssemble_AnchorsPrecedeAliases(t *testing.T) {
	_, g := resolveFiles(t, map[string]string{
		"main.yaml":   "#!import left.yaml as l\n#!import right.yaml as r\na: *l.left\nb: *r.right\nc: *r.shared\n",
		"left.yaml":   "#!import shared.yaml as s\nleft: &left [*s.shared, 1]\n",
		"right.yaml":  "#!import shared.yaml as s\n#!export s.shared\nright: &right {v: *s.shared}\n",
		"shared.yaml": "shared: &shared common\n",
	})

	for _, layout := range []Layout{LayoutWrapped, LayoutConcatenated} {
		t.Run(string(layout), func(t *testing.T) {
			artifact, err := New(WithLayout(layout)).Assemble(g)
			if err != nil {
				t.Fatalf("Assemble() error = %v, want nil", err)
			}

			scanned, err := directive.Scan("artifact", []byte(artifact.Text))
			if err != nil {
				t.Fatalf("Scan(artifact) error = %v", err)
			}
			if len(scanned.References) != 5 {
				t.Errorf("artifact references = %d, want 5", len(scanned.References))
			}
			for _, ref := range scanned.References {
				defined := false
				for _, anchor := range scanned.Anchors {
					if anchor.Name == ref.Raw && anchor.Offset < ref.Offset {
						defined = true
						break
					}
				}
				if !defined {
					t.Errorf("alias *%s at line %d precedes its anchor", ref.Raw, ref.Line)
				}
			}

			if len(artifact.Documents) != 4 {
				t.Errorf("Documents = %v, want each document once", artifact.Documents)
			}
		})
	}
}

func TestAssemble_Concatenated(t *testing.T) {
	_, g := resolveFiles(t, map[string]string{
		"main.yaml": "#!import base.yaml as base\nport: *base.port\n",
		"base.yaml": "default_port: &port 8080\n",
	})

	artifact, err := New(WithLayout(LayoutConcatenated)).Assemble(g)
	if err != nil {
		t.Fatalf("Assemble() error = %v, want nil", err)
	}
	if want := "default_port: &port 8080\nport: *port\n"; artifact.Text != want {
		t.Errorf("Text = %q, want %q", artifact.Text, want)
	}

	var out map[string]int
	if err := yaml.Unmarshal([]byte(artifact.Text), &out); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	if out["port"] != 8080 || out["default_port"] != 8080 {
		t.Errorf("decoded = %v, want both ports 8080", out)
	}
}

func TestAssemble_UnresolvedAliases(t *testing.T) {
	tests := []struct {
		name      string
		files     map[string]string
		reference string
		errText   string
	}{
		{
			name: "unknown import alias",
			files: map[string]string{
				"main.yaml": "a: *nope.x\n",
			},
			reference: "nope.x",
			errText:   `alias "nope"`,
		},
		{
			name: "anchor not re-exported",
			files: map[string]string{
				"main.yaml": "#!import b.yaml as b\nv: *b.deep\n",
				"b.yaml":    "#!import c.yaml as c\nb: 1\n",
				"c.yaml":    "deep: &deep 1\n",
			},
			reference: "b.deep",
			errText:   `does not export "deep"`,
		},
		{
			name: "unqualified alias of an imported anchor",
			files: map[string]string{
				"main.yaml": "#!import b.yaml as b\nv: *x\n",
				"b.yaml":    "x: &x 1\n",
			},
			reference: "x",
			errText:   `no anchor named "x"`,
		},
		{
			name: "alias before local anchor",
			files: map[string]string{
				"main.yaml": "a: *x\nb: &x 1\n",
			},
			reference: "x",
			errText:   "defined after the alias",
		},
		{
			name: "two periods",
			files: map[string]string{
				"main.yaml": "a: *b.c.d\n",
			},
			reference: "b.c.d",
			errText:   "only one period",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, g := resolveFiles(t, tt.files)

			_, err := New().Assemble(g)

			var aliasErr *importErrors.UnresolvedAliasError
			if !errors.As(err, &aliasErr) {
				t.Fatalf("Assemble() error = %v, want *UnresolvedAliasError", err)
			}
			if aliasErr.Reference != tt.reference {
				t.Errorf("Reference = %q, want %q", aliasErr.Reference, tt.reference)
			}
			if aliasErr.FilePath != g.Root.Path {
				t.Errorf("FilePath = %q, want %q", aliasErr.FilePath, g.Root.Path)
			}
			if !strings.Contains(err.Error(), tt.errText) {
				t.Errorf("Error() = %q, want to contain %q", err.Error(), tt.errText)
			}
		})
	}
}

func TestAssemble_EmptyGraph(t *testing.T) {
	if _, err := New().Assemble(&resolver.Graph{}); err == nil {
		t.Error("Assemble(empty) error = nil, want error")
	}
}

func TestParseLayout(t *testing.T) {
	tests := []struct {
		input   string
		want    Layout
		wantErr bool
	}{
		{input: "", want: LayoutWrapped},
		{input: "wrapped", want: LayoutWrapped},
		{input: " Concatenated ", want: LayoutConcatenated},
		{input: "merged", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLayout(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLayout(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLayout(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIndent(t *testing.T) {
	tests := []struct {
		name string
		body string
		n    int
		want string
	}{
		{name: "empty", body: "", n: 2, want: ""},
		{name: "blank lines stay empty", body: "a: |\n  x\n\n  y\n", n: 2, want: "  a: |\n    x\n\n    y\n"},
		{name: "no trailing newline", body: "a: 1", n: 4, want: "    a: 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := indent(tt.body, tt.n); got != tt.want {
				t.Errorf("indent() = %q, want %q", got, tt.want)
			}
		})
	}
}
