// yamlio resolves YAML documents that share anchors across files.
//
// Documents declare imports and exports in directive comments:
//
//	#!import ../shared/base.yaml as base
//	#!export base.defaults
//	service:
//	  <<: *base.defaults
//
// Usage:
//
//	# Print the assembled YAML
//	yamlio resolve app.yaml
//
//	# Print a JSON report including Git provenance
//	yamlio resolve app.yaml --format json --provenance
//
//	# Decode the document and print it as JSON
//	yamlio load app.yaml --output json
//
//	# Render the import graph
//	yamlio graph app.yaml | dot -Tsvg > imports.svg
//
//	# Re-resolve on every change and serve metrics
//	yamlio watch app.yaml --metrics-addr 127.0.0.1:9464
package main

func main() {
	Execute()
}
