package yamlio

import (
	"context"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// FilePath reports whether input names an existing regular file and
// returns its path. Strings are treated as paths; any other value with a
// Name() string method (such as *os.File) is treated by its name.
func FilePath(input any) (string, bool) {
	var path string
	switch v := input.(type) {
	case string:
		path = v
	case interface{ Name() string }:
		path = v.Name()
	default:
		return "", false
	}

	if path == "" {
		return "", false
	}
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return path, true
}

// Unmarshal decodes input into out. Inputs naming an existing file are
// loaded with import resolution; readers, strings and byte slices are
// passed to yaml.v3 unmodified.
func (l *Loader) Unmarshal(ctx context.Context, input, out any) error {
	if path, ok := FilePath(input); ok {
		return l.Load(ctx, path, out)
	}

	switch v := input.(type) {
	case []byte:
		return yaml.Unmarshal(v, out)
	case string:
		return yaml.Unmarshal([]byte(v), out)
	case io.Reader:
		data, err := io.ReadAll(v)
		if err != nil {
			return fmt.Errorf("failed to read YAML input: %w", err)
		}
		return yaml.Unmarshal(data, out)
	default:
		return fmt.Errorf("unsupported YAML input type %T", input)
	}
}

// Unmarshal decodes input into out with a default Loader.
func Unmarshal(input, out any) error {
	return NewLoader().Unmarshal(context.Background(), input, out)
}

// LoadFile loads the document at path into out with a default Loader.
func LoadFile(path string, out any) error {
	return NewLoader().Load(context.Background(), path, out)
}
