// FILE: lixenwraith/iniconf/convenience.go
package iniconf

import (
	"fmt"
	"io"
	"strings"
)

// Quick loads configFile into a new Store, filling absent keys from defaults,
// a map of section name to defaults struct. A missing file is reported but the
// Store is still usable.
func Quick(configFile string, defaults map[string]any) (*Store, error) {
	b := NewBuilder().WithFile(configFile)
	for section, values := range defaults {
		b.WithDefaults(section, values)
	}
	return b.Build()
}

// MustQuick is like Quick but panics on fatal errors
func MustQuick(configFile string, defaults map[string]any) *Store {
	b := NewBuilder().WithFile(configFile)
	for section, values := range defaults {
		b.WithDefaults(section, values)
	}
	return b.MustBuild()
}

// Validate checks that every required "section.key" path is present and non-empty.
// The section is everything before the first dot.
func (s *Store) Validate(required ...string) error {
	var missing []string
	for _, path := range required {
		section, key, ok := strings.Cut(path, ".")
		if !ok {
			missing = append(missing, path)
			continue
		}
		if v, err := s.String(section, key); err != nil || v == "" {
			missing = append(missing, path)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required configuration: %s", ErrValueAbsent, strings.Join(missing, ", "))
	}
	return nil
}

// Dump writes the current tree to w in the given format.
func (s *Store) Dump(w io.Writer, format Format) error {
	data, err := s.Bytes(format)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Clone returns an independent copy of the Store, including its loaded state
// and save target.
func (s *Store) Clone() *Store {
	c := *s
	c.tree = s.tree.Clone()
	return &c
}
