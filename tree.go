// FILE: lixenwraith/iniconf/tree.go
package iniconf

import "slices"

// Section is an ordered set of key/value pairs. Values are stored as text and
// only interpreted by the typed accessors.
type Section struct {
	name   string
	keys   []string
	values map[string]string
}

func newSection(name string) *Section {
	return &Section{
		name:   name,
		values: make(map[string]string),
	}
}

// Name returns the section name.
func (s *Section) Name() string { return s.name }

// Len returns the number of keys in the section.
func (s *Section) Len() int { return len(s.keys) }

// Keys returns the key names in insertion order.
func (s *Section) Keys() []string { return slices.Clone(s.keys) }

// Get returns the raw value stored under key.
func (s *Section) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Set inserts or overwrites key. An overwritten key keeps its position.
func (s *Section) Set(key, value string) {
	if _, exists := s.values[key]; !exists {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

// Delete removes key and reports whether it was present.
func (s *Section) Delete(key string) bool {
	if _, exists := s.values[key]; !exists {
		return false
	}
	delete(s.values, key)
	s.keys = slices.DeleteFunc(s.keys, func(k string) bool { return k == key })
	return true
}

// Range calls fn for each pair in order until fn returns false.
func (s *Section) Range(fn func(key, value string) bool) {
	for _, k := range s.keys {
		if !fn(k, s.values[k]) {
			return
		}
	}
}

func (s *Section) clone() *Section {
	c := &Section{
		name:   s.name,
		keys:   slices.Clone(s.keys),
		values: make(map[string]string, len(s.values)),
	}
	for k, v := range s.values {
		c.values[k] = v
	}
	return c
}

// Tree is the ordered section tree held by a Store.
type Tree struct {
	order    []string
	sections map[string]*Section
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{sections: make(map[string]*Section)}
}

// Len returns the number of sections.
func (t *Tree) Len() int { return len(t.order) }

// Names returns the section names in insertion order.
func (t *Tree) Names() []string { return slices.Clone(t.order) }

// Section returns the named section, or nil.
func (t *Tree) Section(name string) *Section { return t.sections[name] }

// Ensure returns the named section, appending it when absent.
func (t *Tree) Ensure(name string) *Section {
	if sec, ok := t.sections[name]; ok {
		return sec
	}
	sec := newSection(name)
	t.sections[name] = sec
	t.order = append(t.order, name)
	return sec
}

// Delete removes the named section and reports whether it was present.
func (t *Tree) Delete(name string) bool {
	if _, ok := t.sections[name]; !ok {
		return false
	}
	delete(t.sections, name)
	t.order = slices.DeleteFunc(t.order, func(n string) bool { return n == name })
	return true
}

// Range calls fn for each section in order until fn returns false.
func (t *Tree) Range(fn func(sec *Section) bool) {
	for _, n := range t.order {
		if !fn(t.sections[n]) {
			return
		}
	}
}

// Clone returns a deep copy.
func (t *Tree) Clone() *Tree {
	c := &Tree{
		order:    slices.Clone(t.order),
		sections: make(map[string]*Section, len(t.sections)),
	}
	for n, sec := range t.sections {
		c.sections[n] = sec.clone()
	}
	return c
}

// Equal reports whether both trees hold the same sections, keys and values
// in the same order.
func (t *Tree) Equal(o *Tree) bool {
	if !slices.Equal(t.order, o.order) {
		return false
	}
	for _, n := range t.order {
		a, b := t.sections[n], o.sections[n]
		if !slices.Equal(a.keys, b.keys) {
			return false
		}
		for _, k := range a.keys {
			if a.values[k] != b.values[k] {
				return false
			}
		}
	}
	return true
}
