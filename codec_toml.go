// FILE: lixenwraith/iniconf/codec_toml.go
package iniconf

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// decodeTOML maps top-level tables to sections. Key order comes from the
// decoder metadata; nested tables flatten into dotted key names.
func decodeTOML(data []byte) (*Tree, error) {
	raw := make(map[string]any)
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, err
	}

	tree := NewTree()
	for _, key := range md.Keys() {
		val := navigateToKey(raw, key)

		if len(key) == 1 {
			if _, isTable := val.(map[string]any); !isTable {
				return nil, fmt.Errorf("top-level key %q is not a table", key[0])
			}
			tree.Ensure(key[0])
			continue
		}

		switch v := val.(type) {
		case map[string]any:
			tree.Ensure(key[0])
		case []map[string]any:
			return nil, fmt.Errorf("array of tables %q is not supported", key.String())
		default:
			s, err := stringify(v)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", key.String(), err)
			}
			tree.Ensure(key[0]).Set(strings.Join(key[1:], "."), s)
		}
	}

	// Inline tables are not always itemized in the metadata
	for name, val := range raw {
		table, ok := val.(map[string]any)
		if !ok {
			continue
		}
		sec := tree.Ensure(name)
		flat := flattenMap(table, "")
		paths := make([]string, 0, len(flat))
		for p := range flat {
			paths = append(paths, p)
		}
		slices.Sort(paths)
		for _, p := range paths {
			if _, exists := sec.Get(p); exists {
				continue
			}
			s, err := stringify(flat[p])
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", Path(name, p), err)
			}
			sec.Set(p, s)
		}
	}

	return tree, nil
}

func encodeTOML(tree *Tree) ([]byte, error) {
	var buf bytes.Buffer
	var err error

	tree.Range(func(sec *Section) bool {
		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		fmt.Fprintf(&buf, "[%s]\n", toml.Key{sec.Name()}.String())
		sec.Range(func(key, value string) bool {
			// One single-entry map per key keeps section order intact
			if err = toml.NewEncoder(&buf).Encode(map[string]string{key: value}); err != nil {
				err = fmt.Errorf("key %q: %w", Path(sec.Name(), key), err)
				return false
			}
			return true
		})
		return err == nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal TOML: %w", err)
	}
	return buf.Bytes(), nil
}

// navigateToKey walks a decoded TOML document along key.
func navigateToKey(raw map[string]any, key toml.Key) any {
	var current any = raw
	for _, segment := range key {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current = m[segment]
	}
	return current
}
