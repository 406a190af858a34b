// FILE: lixenwraith/iniconf/codec_json.go
package iniconf

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// decodeJSON maps top-level object members to sections. The token stream is
// used instead of Unmarshal so member order survives.
func decodeJSON(data []byte) (*Tree, error) {
	tree := NewTree()
	if len(bytes.TrimSpace(data)) == 0 {
		return tree, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if err := expectDelim(dec, '{'); err != nil {
		return nil, fmt.Errorf("document root: %w", err)
	}
	for dec.More() {
		name, err := readJSONKey(dec)
		if err != nil {
			return nil, err
		}
		sec := tree.Ensure(name)

		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch tok {
		case nil:
		case json.Delim('{'):
			if err := readJSONObject(dec, sec, ""); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("top-level key %q is not an object", name)
		}
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unexpected data after document root")
	}
	return tree, nil
}

// readJSONObject consumes members up to and including the closing brace.
func readJSONObject(dec *json.Decoder, sec *Section, prefix string) error {
	for dec.More() {
		key, err := readJSONKey(dec)
		if err != nil {
			return err
		}
		key = prefix + key

		tok, err := dec.Token()
		if err != nil {
			return err
		}
		switch tok {
		case json.Delim('{'):
			if err := readJSONObject(dec, sec, key+"."); err != nil {
				return err
			}
		case json.Delim('['):
			joined, err := readJSONArray(dec)
			if err != nil {
				return fmt.Errorf("key %q: %w", Path(sec.Name(), key), err)
			}
			sec.Set(key, joined)
		default:
			s, err := stringify(tok)
			if err != nil {
				return fmt.Errorf("key %q: %w", Path(sec.Name(), key), err)
			}
			sec.Set(key, s)
		}
	}
	return expectDelim(dec, '}')
}

func readJSONArray(dec *json.Decoder) (string, error) {
	var items []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return "", err
		}
		if _, isDelim := tok.(json.Delim); isDelim {
			return "", fmt.Errorf("nested collections in arrays are not supported")
		}
		s, err := stringify(tok)
		if err != nil {
			return "", err
		}
		items = append(items, s)
	}
	if err := expectDelim(dec, ']'); err != nil {
		return "", err
	}
	return strings.Join(items, ","), nil
}

func readJSONKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected object key, got %v", tok)
	}
	return key, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

func encodeJSON(tree *Tree) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	var err error
	first := true
	tree.Range(func(sec *Section) bool {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		if err = writeJSONString(&buf, sec.Name()); err != nil {
			return false
		}
		buf.WriteString(":{")
		firstKey := true
		sec.Range(func(key, value string) bool {
			if !firstKey {
				buf.WriteByte(',')
			}
			firstKey = false
			if err = writeJSONString(&buf, key); err != nil {
				return false
			}
			buf.WriteByte(':')
			err = writeJSONString(&buf, value)
			return err == nil
		})
		buf.WriteByte('}')
		return err == nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	buf.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return nil, fmt.Errorf("failed to indent JSON: %w", err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}
