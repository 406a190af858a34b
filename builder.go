// FILE: lixenwraith/iniconf/builder.go
package iniconf

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

// ValidatorFunc validates a fully built Store.
type ValidatorFunc func(s *Store) error

type sectionDefaults struct {
	section string
	values  any
}

// Builder provides a fluent interface for building a Store
type Builder struct {
	store      *Store
	file       string
	defaults   []sectionDefaults
	err        error
	validators []ValidatorFunc
}

// NewBuilder creates a new Store builder
func NewBuilder() *Builder {
	return &Builder{
		store:      New(),
		validators: make([]ValidatorFunc, 0),
	}
}

// WithFile sets the configuration file path
func (b *Builder) WithFile(path string) *Builder {
	b.file = path
	return b
}

// WithFormat forces the file format instead of detecting it from the extension
func (b *Builder) WithFormat(f Format) *Builder {
	if err := b.store.SetFormat(f); err != nil && b.err == nil {
		b.err = err
	}
	return b
}

// WithLogger sets the logger that reports load, save and absorbed lookup failures
func (b *Builder) WithLogger(l *log.Logger) *Builder {
	b.store.SetLogger(l)
	return b
}

// WithDefaults registers a struct whose fields fill keys of section that are
// still absent after loading. May be called once per section.
func (b *Builder) WithDefaults(section string, values any) *Builder {
	if section == "" && b.err == nil {
		b.err = fmt.Errorf("defaults: %w", ErrInvalidName)
	}
	b.defaults = append(b.defaults, sectionDefaults{section: section, values: values})
	return b
}

// WithValidator adds a validation function that runs at the end of the build process
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// Build loads the file, applies defaults and runs validators.
// A missing file is not fatal: the Store is returned together with an error
// wrapping ErrSourceNotFound.
func (b *Builder) Build() (*Store, error) {
	if b.err != nil {
		return nil, b.err
	}

	var loadErr error
	if b.file != "" {
		loadErr = b.store.Load(b.file)
		if loadErr != nil && !errors.Is(loadErr, ErrSourceNotFound) {
			return nil, loadErr
		}
	}

	for _, d := range b.defaults {
		if err := b.store.applyDefaults(d.section, d.values); err != nil {
			return nil, fmt.Errorf("failed to apply defaults for section %q: %w", d.section, err)
		}
	}

	for _, validator := range b.validators {
		if err := validator(b.store); err != nil {
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
	}

	return b.store, loadErr
}

// MustBuild is like Build but panics on fatal errors
func (b *Builder) MustBuild() *Store {
	s, err := b.Build()
	if err != nil && !errors.Is(err, ErrSourceNotFound) {
		panic(fmt.Sprintf("config build failed: %v", err))
	}
	return s
}

// BuildAndScan builds the Store and decodes section into target
func (b *Builder) BuildAndScan(section string, target any) (*Store, error) {
	s, err := b.Build()
	if err != nil && !errors.Is(err, ErrSourceNotFound) {
		return nil, err
	}
	if scanErr := s.Scan(section, target); scanErr != nil {
		return nil, fmt.Errorf("failed to scan final config into target: %w", scanErr)
	}
	return s, err
}

// applyDefaults writes the fields of values into section where absent.
func (s *Store) applyDefaults(section string, values any) error {
	defaults := New()
	if err := defaults.WriteStruct(section, values); err != nil {
		return err
	}
	defaults.tree.Section(section).Range(func(key, value string) bool {
		if !s.Has(section, key) {
			s.WriteString(section, key, value)
		}
		return true
	})
	return nil
}
