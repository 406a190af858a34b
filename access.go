// FILE: lixenwraith/iniconf/access.go
package iniconf

// ReadString returns section.key, or def when absent.
func (s *Store) ReadString(section, key, def string) string {
	v, err := s.String(section, key)
	return absorb(s, v, err, def)
}

// ReadInt returns section.key as an int64, or def when absent or unparsable.
func (s *Store) ReadInt(section, key string, def int64) int64 {
	v, err := s.Int64(section, key)
	return absorb(s, v, err, def)
}

// ReadUInt returns section.key as a uint64, or def when absent or unparsable.
func (s *Store) ReadUInt(section, key string, def uint64) uint64 {
	v, err := s.Uint64(section, key)
	return absorb(s, v, err, def)
}

// ReadBool returns section.key as a bool, or def when absent or unparsable.
func (s *Store) ReadBool(section, key string, def bool) bool {
	v, err := s.Bool(section, key)
	return absorb(s, v, err, def)
}

// ReadDouble returns section.key as a float64, or def when absent or unparsable.
func (s *Store) ReadDouble(section, key string, def float64) float64 {
	v, err := s.Float64(section, key)
	return absorb(s, v, err, def)
}

// WriteString inserts or overwrites section.key, creating the section if
// needed. Empty names are ignored.
func (s *Store) WriteString(section, key, value string) {
	if section == "" || key == "" {
		s.logger.Debug("config write ignored", "err", ErrInvalidName, "section", section, "key", key)
		return
	}
	s.tree.Ensure(section).Set(key, value)
}

func (s *Store) WriteInt(section, key string, value int64) {
	s.WriteString(section, key, formatInt(value))
}

func (s *Store) WriteUInt(section, key string, value uint64) {
	s.WriteString(section, key, formatUint(value))
}

func (s *Store) WriteBool(section, key string, value bool) {
	s.WriteString(section, key, formatBool(value))
}

func (s *Store) WriteDouble(section, key string, value float64) {
	s.WriteString(section, key, formatFloat(value))
}

// RemoveValue deletes section.key if present. The section itself stays, even
// when it becomes empty.
func (s *Store) RemoveValue(section, key string) {
	if sec := s.tree.Section(section); sec != nil {
		sec.Delete(key)
	}
}

// RemoveSection deletes the section and all its keys if present.
func (s *Store) RemoveSection(section string) {
	s.tree.Delete(section)
}

// Has reports whether section.key exists.
func (s *Store) Has(section, key string) bool {
	sec := s.tree.Section(section)
	if sec == nil {
		return false
	}
	_, ok := sec.Get(key)
	return ok
}

// HasSection reports whether the section exists.
func (s *Store) HasSection(section string) bool {
	return s.tree.Section(section) != nil
}

// Sections returns the section names in tree order.
func (s *Store) Sections() []string { return s.tree.Names() }

// Keys returns the key names of section in order, or nil.
func (s *Store) Keys(section string) []string {
	sec := s.tree.Section(section)
	if sec == nil {
		return nil
	}
	return sec.Keys()
}

// ReadSections appends every section name to out and returns how many were
// appended.
func (s *Store) ReadSections(out *[]string) int {
	names := s.tree.Names()
	*out = append(*out, names...)
	return len(names)
}

// ReadSectionKeys appends the key names of section to out. A missing section
// yields 0.
func (s *Store) ReadSectionKeys(section string, out *[]string) int {
	sec := s.tree.Section(section)
	if sec == nil {
		return 0
	}
	n := 0
	sec.Range(func(key, _ string) bool {
		*out = append(*out, key)
		n++
		return true
	})
	return n
}

// ReadSectionKeyValues appends the keys of section to keys and their values
// to vals, index aligned.
func (s *Store) ReadSectionKeyValues(section string, keys, vals *[]string) int {
	sec := s.tree.Section(section)
	if sec == nil {
		return 0
	}
	n := 0
	sec.Range(func(key, value string) bool {
		*keys = append(*keys, key)
		*vals = append(*vals, value)
		n++
		return true
	})
	return n
}
