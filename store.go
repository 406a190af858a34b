// FILE: lixenwraith/iniconf/store.go
package iniconf

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// Store holds a section/key configuration tree loaded from a text source.
// A Store is not safe for concurrent use; callers sharing one must serialize
// access themselves.
type Store struct {
	tree     *Tree
	filePath string // default save target, set by Load
	format   Format // FormatAuto selects by file extension
	loaded   bool
	loadErr  error
	logger   *log.Logger
}

// New creates an empty, unloaded Store.
func New() *Store {
	return &Store{
		tree:   NewTree(),
		logger: log.New(io.Discard),
	}
}

// SetLogger replaces the logger used to report absorbed failures.
func (s *Store) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	s.logger = l
}

// SetFormat forces the codec used by Load and Save. FormatAuto restores
// detection by file extension.
func (s *Store) SetFormat(f Format) error {
	if !f.valid() {
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	s.format = f
	return nil
}

// Load replaces the tree with the content of the file at path.
// On failure the tree keeps its previous content. Either way path becomes the
// default save target and IsLoaded reports true. The returned error is
// informational; callers that treat configuration as best effort may ignore it.
func (s *Store) Load(path string) error {
	s.filePath = path
	s.loaded = true

	tree, err := readTree(path, s.formatFor(path))
	s.loadErr = err
	if err != nil {
		s.logger.Warn("config load failed, keeping previous values", "file", path, "err", err)
		return err
	}

	s.tree = tree
	s.logger.Info("config loaded", "file", path, "sections", tree.Len())
	return nil
}

// LoadBytes behaves like Load for an in-memory source. The save target is
// left unchanged.
func (s *Store) LoadBytes(data []byte, format Format) error {
	s.loaded = true

	tree, err := decodeTree(data, format)
	s.loadErr = err
	if err != nil {
		s.logger.Warn("config parse failed, keeping previous values", "format", format, "err", err)
		return err
	}

	s.tree = tree
	return nil
}

// IsLoaded reports whether a load was attempted, successful or not.
func (s *Store) IsLoaded() bool { return s.loaded }

// LoadSucceeded reports whether the most recent load populated the tree.
func (s *Store) LoadSucceeded() bool { return s.loaded && s.loadErr == nil }

// LoadErr returns the failure of the most recent load, or nil.
func (s *Store) LoadErr() error { return s.loadErr }

// FilePath returns the path recorded by the last Load.
func (s *Store) FilePath() string { return s.filePath }

// Save serializes the tree to path, or to the last loaded path when path is
// empty. The write is atomic.
func (s *Store) Save(path string) error {
	if path == "" {
		path = s.filePath
	}
	if path == "" {
		return ErrNoSaveTarget
	}

	data, err := encodeTree(s.tree, s.formatFor(path))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDestinationUnwritable, err)
	}

	if err := atomicWriteFile(path, data); err != nil {
		s.logger.Error("config save failed", "file", path, "err", err)
		return err
	}

	s.logger.Info("config saved", "file", path, "sections", s.tree.Len())
	return nil
}

// Bytes serializes the tree in the given format.
func (s *Store) Bytes(format Format) ([]byte, error) {
	if format == FormatAuto {
		format = FormatINI
	}
	return encodeTree(s.tree, format)
}

// Tree returns a deep copy of the current tree.
func (s *Store) Tree() *Tree { return s.tree.Clone() }

// Clear drops every section. The loaded flag and save target are kept.
func (s *Store) Clear() { s.tree = NewTree() }

// Path returns the dotted lookup path of section and key.
func Path(section, key string) string {
	return section + "." + key
}

func (s *Store) formatFor(path string) Format {
	if s.format != FormatAuto {
		return s.format
	}
	return DetectFormat(path)
}

// absorb applies the default-on-failure policy of the Read* accessors.
func absorb[T any](s *Store, v T, err error, def T) T {
	if err == nil {
		return v
	}
	if errors.Is(err, ErrValueUnparsable) {
		s.logger.Debug("config value unparsable, using default", "err", err, "default", def)
	} else {
		s.logger.Debug("config value absent, using default", "err", err, "default", def)
	}
	return def
}
