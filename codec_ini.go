// FILE: lixenwraith/iniconf/codec_ini.go
package iniconf

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/ini.v1"
)

const (
	iniBacktick     = "`"
	iniTripleQuote  = `"""`
	iniAutoIncrKey  = "-"
	iniKeyDelims    = "=:"
	iniLeadSpecials = "#;[\"'`"
)

// iniLoadOptions is the reader configuration the writer's quoting targets.
var iniLoadOptions = ini.LoadOptions{
	// A trailing backslash is data, not a line join
	IgnoreContinuation: true,
}

// decodeINI parses the [section] / key = value syntax. Keys that appear before
// the first header land in the "DEFAULT" section, which is an ordinary
// section here and is always written first.
func decodeINI(data []byte) (*Tree, error) {
	f, err := ini.LoadSources(iniLoadOptions, data)
	if err != nil {
		return nil, err
	}

	tree := NewTree()
	for _, sec := range f.Sections() {
		keys := sec.Keys()
		if sec.Name() == ini.DefaultSection && len(keys) == 0 {
			continue
		}
		dst := tree.Ensure(sec.Name())
		for _, k := range keys {
			dst.Set(k.Name(), k.Value())
		}
	}
	return tree, nil
}

// encodeINI writes the tree in the form decodeINI reads back unchanged.
// Names or values the syntax cannot carry fail with ErrInvalidName instead of
// being written and lost on the next load.
func encodeINI(tree *Tree) ([]byte, error) {
	var buf bytes.Buffer

	// Keys of the unnamed section must precede every header
	if def := tree.Section(ini.DefaultSection); def != nil {
		if err := writeINIKeys(&buf, def); err != nil {
			return nil, err
		}
	}

	var err error
	tree.Range(func(sec *Section) bool {
		if sec.Name() == ini.DefaultSection {
			return true
		}
		if strings.ContainsAny(sec.Name(), "\r\n") {
			err = fmt.Errorf("%w: section %q spans lines", ErrInvalidName, sec.Name())
			return false
		}
		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString("[" + sec.Name() + "]\n")
		err = writeINIKeys(&buf, sec)
		return err == nil
	})
	if err != nil {
		return nil, err
	}

	// Reparse the output so anything the reader would alter fails the save
	got, err := decodeINI(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%w: INI output does not parse: %w", ErrInvalidName, err)
	}
	if !got.Equal(iniCanonical(tree)) {
		return nil, fmt.Errorf("%w: INI output does not reproduce the tree", ErrInvalidName)
	}
	return buf.Bytes(), nil
}

func writeINIKeys(buf *bytes.Buffer, sec *Section) error {
	var err error
	sec.Range(func(key, value string) bool {
		var k, v string
		if k, err = quoteINIKey(key); err != nil {
			err = fmt.Errorf("key %q: %w", Path(sec.Name(), key), err)
			return false
		}
		if v, err = quoteINIValue(value); err != nil {
			err = fmt.Errorf("value of %q: %w", Path(sec.Name(), key), err)
			return false
		}
		buf.WriteString(k + " = " + v + "\n")
		return true
	})
	return err
}

// quoteINIKey backtick-quotes keys that would otherwise read as a comment,
// a header, a quoted key, or split at a delimiter.
func quoteINIKey(key string) (string, error) {
	switch {
	case key == iniAutoIncrKey:
		return "", fmt.Errorf("%w: %q is the auto-increment key", ErrInvalidName, key)
	case strings.ContainsAny(key, "\r\n"):
		return "", fmt.Errorf("%w: key spans lines", ErrInvalidName)
	case strings.TrimSpace(key) != key:
		return "", fmt.Errorf("%w: key has surrounding whitespace", ErrInvalidName)
	}

	if !strings.ContainsAny(key, iniKeyDelims) && !strings.ContainsAny(key[:1], iniLeadSpecials) {
		return key, nil
	}
	if strings.Contains(key, iniBacktick) {
		return "", fmt.Errorf("%w: key needs quoting and contains a backtick", ErrInvalidName)
	}
	return iniBacktick + key + iniBacktick, nil
}

// quoteINIValue leaves plain values bare. Anything the reader would trim,
// unquote, or cut at a comment is wrapped in backticks, or in triple quotes
// when the value holds a backtick itself.
func quoteINIValue(value string) (string, error) {
	if value == "" {
		return "", nil
	}
	plain := strings.TrimSpace(value) == value &&
		!strings.ContainsAny(value, "#;\r\n") &&
		!strings.ContainsAny(value[:1], `"'`+iniBacktick)
	if plain {
		return value, nil
	}

	switch {
	case !strings.Contains(value, iniBacktick):
		return iniBacktick + value + iniBacktick, nil
	case !strings.Contains(value, iniTripleQuote):
		return iniTripleQuote + value + iniTripleQuote, nil
	}
	return "", fmt.Errorf("%w: value holds both a backtick and %s", ErrInvalidName, iniTripleQuote)
}

// iniCanonical is the tree as decodeINI returns it: DEFAULT first, and
// dropped when empty.
func iniCanonical(tree *Tree) *Tree {
	def := tree.Section(ini.DefaultSection)
	if def == nil {
		return tree
	}
	out := NewTree()
	if def.Len() > 0 {
		out.Ensure(def.Name())
	}
	tree.Range(func(sec *Section) bool {
		if sec.Len() == 0 && sec.Name() == ini.DefaultSection {
			return true
		}
		dst := out.Ensure(sec.Name())
		sec.Range(func(key, value string) bool {
			dst.Set(key, value)
			return true
		})
		return true
	})
	return out
}
