// FILE: lixenwraith/iniconf/type.go
package iniconf

import (
	"fmt"
	"strconv"
	"strings"
)

// String retrieves the raw text stored under section.key.
func (s *Store) String(section, key string) (string, error) {
	sec := s.tree.Section(section)
	if sec == nil {
		return "", fmt.Errorf("%w: section %q", ErrValueAbsent, section)
	}
	v, ok := sec.Get(key)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrValueAbsent, Path(section, key))
	}
	return v, nil
}

// Int64 retrieves section.key as a signed integer.
// Base prefixes such as "0x" are honored.
func (s *Store) Int64(section, key string) (int64, error) {
	raw, err := s.String(section, key)
	if err != nil {
		return 0, err
	}
	i, err := strconv.ParseInt(strings.TrimSpace(raw), 0, 64)
	if err != nil {
		return 0, unparsable(section, key, raw, "int64", err)
	}
	return i, nil
}

// Uint64 retrieves section.key as an unsigned integer.
func (s *Store) Uint64(section, key string) (uint64, error) {
	raw, err := s.String(section, key)
	if err != nil {
		return 0, err
	}
	u, err := strconv.ParseUint(strings.TrimSpace(raw), 0, 64)
	if err != nil {
		return 0, unparsable(section, key, raw, "uint64", err)
	}
	return u, nil
}

// Bool retrieves section.key as a boolean. Accepts the forms understood by
// strconv.ParseBool ("1", "t", "true", "0", "f", "false", ...).
func (s *Store) Bool(section, key string) (bool, error) {
	raw, err := s.String(section, key)
	if err != nil {
		return false, err
	}
	b, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false, unparsable(section, key, raw, "bool", err)
	}
	return b, nil
}

// Float64 retrieves section.key as a double.
func (s *Store) Float64(section, key string) (float64, error) {
	raw, err := s.String(section, key)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, unparsable(section, key, raw, "float64", err)
	}
	return f, nil
}

func unparsable(section, key, raw, typ string, err error) error {
	return fmt.Errorf("%w: cannot convert %q to %s for %s: %w", ErrValueUnparsable, raw, typ, Path(section, key), err)
}

func formatInt(v int64) string     { return strconv.FormatInt(v, 10) }
func formatUint(v uint64) string   { return strconv.FormatUint(v, 10) }
func formatBool(v bool) string     { return strconv.FormatBool(v) }
func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
