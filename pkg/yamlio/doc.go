// Package yamlio loads YAML documents that import anchors from other files.
//
// A document declares imports and exports in comment directives:
//
//	#!import base/versions.yaml as versions
//	#!export versions.stable
//	service:
//	  image: *versions.stable
//
// The Loader resolves the import graph, assembles it into a single YAML
// text in which every alias follows its anchor, and decodes only the root
// document's own content with gopkg.in/yaml.v3.
//
// # Usage
//
//	var cfg ServiceConfig
//	if err := yamlio.LoadFile("service.yaml", &cfg); err != nil {
//	    return err
//	}
//
// Unmarshal accepts anything yaml.Unmarshal would plus file paths and open
// files. Inputs that do not name an existing file are passed to yaml.v3
// unmodified, with no directive processing:
//
//	yamlio.Unmarshal("service.yaml", &cfg) // import-aware
//	yamlio.Unmarshal([]byte("a: 1"), &cfg)   // plain yaml.v3
//
// A Loader is explicit and injectable; nothing in this package replaces
// yaml.v3 entry points.
package yamlio
