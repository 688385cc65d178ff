// Package codec reads and writes dialogue trees.
//
// JSON is the canonical interchange format: nodes and variables are objects
// keyed by id, flags an array. YAML uses the same shape and is accepted for
// hand-written trees.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/parley/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Format names a tree encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnsupportedFormat is returned for unknown file extensions or formats.
var ErrUnsupportedFormat = errors.New("unsupported tree format")

// Serialize encodes a tree as JSON with 2-space indentation.
func Serialize(tree *domain.Tree) ([]byte, error) {
	data, err := json.MarshalIndent(tree, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize tree: %w", err)
	}
	return data, nil
}

// Deserialize decodes a JSON tree. Missing collections are filled in.
func Deserialize(data []byte) (*domain.Tree, error) {
	var tree domain.Tree
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("failed to deserialize tree: %w", err)
	}
	tree.Normalize()
	return &tree, nil
}

// DecodeYAML decodes a YAML tree.
func DecodeYAML(data []byte) (*domain.Tree, error) {
	var tree domain.Tree
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("failed to decode yaml tree: %w", err)
	}
	tree.Normalize()
	return &tree, nil
}

// EncodeYAML encodes a tree as YAML.
func EncodeYAML(tree *domain.Tree) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(tree); err != nil {
		return nil, fmt.Errorf("failed to encode yaml tree: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode dispatches on format.
func Decode(data []byte, format Format) (*domain.Tree, error) {
	switch format {
	case FormatJSON:
		return Deserialize(data)
	case FormatYAML:
		return DecodeYAML(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// FormatOf infers the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// LoadFile reads a tree file. A tree without an id takes the file's base name.
func LoadFile(path string) (*domain.Tree, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tree %s: %w", path, err)
	}
	tree, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if tree.ID == "" {
		tree.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return tree, nil
}

// WriteFile encodes a tree according to the file extension and writes it.
func WriteFile(path string, tree *domain.Tree) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	var data []byte
	switch format {
	case FormatJSON:
		data, err = Serialize(tree)
	case FormatYAML:
		data, err = EncodeYAML(tree)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
