// FILE: lixenwraith/iniconf/format.go
package iniconf

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format names a text encoding of the section tree.
type Format string

const (
	// FormatAuto selects the format from the file extension
	FormatAuto Format = ""
	// FormatINI is the [section] / key = value syntax, the default
	FormatINI Format = "ini"
	// FormatTOML maps top-level tables to sections
	FormatTOML Format = "toml"
	// FormatYAML maps top-level mappings to sections
	FormatYAML Format = "yaml"
	// FormatJSON maps top-level objects to sections
	FormatJSON Format = "json"
)

func (f Format) valid() bool {
	switch f {
	case FormatAuto, FormatINI, FormatTOML, FormatYAML, FormatJSON:
		return true
	}
	return false
}

// ParseFormat converts a user supplied name such as "yml" or "TOML".
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "", "auto":
		return FormatAuto, nil
	case "ini", "conf", "cfg":
		return FormatINI, nil
	case "toml", "tml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	}
	return FormatAuto, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// DetectFormat determines the format from the file extension.
// Unknown extensions are treated as INI.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".tml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	default:
		return FormatINI
	}
}

func decodeTree(data []byte, format Format) (*Tree, error) {
	var (
		tree *Tree
		err  error
	)
	switch format {
	case FormatINI, FormatAuto:
		tree, err = decodeINI(data)
	case FormatTOML:
		tree, err = decodeTOML(data)
	case FormatYAML:
		tree, err = decodeYAML(data)
	case FormatJSON:
		tree, err = decodeJSON(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSourceMalformed, format, err)
	}
	return tree, nil
}

func encodeTree(tree *Tree, format Format) ([]byte, error) {
	switch format {
	case FormatINI, FormatAuto:
		return encodeINI(tree)
	case FormatTOML:
		return encodeTOML(tree)
	case FormatYAML:
		return encodeYAML(tree)
	case FormatJSON:
		return encodeJSON(tree)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}
