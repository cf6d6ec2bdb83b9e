package scene

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/ecstree/pkg/errors"
)

// Format selects a document decoder.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatOf returns the format implied by a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported scene extension %q", filepath.Ext(path))
	}
}

// Load reads and validates the scene document at path. Failures are
// reported as *errors.ReconcileError of kind config.
func Load(path string) (*Document, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, errors.Config("scene.Load", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Config("scene.Load", fmt.Errorf("read scene: %w", err))
	}
	doc, err := Parse(data, format)
	if err != nil {
		return nil, errors.Config("scene.Load", fmt.Errorf("%s: %w", path, err))
	}
	return doc, nil
}

// Parse decodes and validates a scene document. Unknown fields are errors.
func Parse(data []byte, format Format) (*Document, error) {
	var doc Document
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil && !stderrors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse yaml scene: %w", err)
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), &doc)
		if err != nil {
			return nil, fmt.Errorf("parse toml scene: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("parse toml scene: unknown field %q", undecoded[0].String())
		}
	default:
		return nil, fmt.Errorf("unsupported scene format %q", format)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}
