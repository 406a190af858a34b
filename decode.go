// FILE: lixenwraith/iniconf/decode.go
package iniconf

import (
	"fmt"
	"net"
	"net/url"
	"reflect"
	"slices"
	"time"

	"github.com/mitchellh/mapstructure"
)

// TagName is the struct tag read by Scan and WriteStruct.
const TagName = "ini"

// Scan decodes section into target, a non-nil pointer to a struct or map.
// Dotted key names address nested structs. A missing section leaves target
// untouched.
func (s *Store) Scan(section string, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("target of Scan must be a non-nil pointer, got %T", target)
	}

	nested := make(map[string]any)
	if sec := s.tree.Section(section); sec != nil {
		sec.Range(func(key, value string) bool {
			setNestedValue(nested, key, value)
			return true
		})
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          TagName,
		WeaklyTypedInput: true,
		DecodeHook:       decodeHook(),
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(nested); err != nil {
		return fmt.Errorf("%w: failed to scan section %q into %T: %w", ErrValueUnparsable, section, target, err)
	}
	return nil
}

// WriteStruct writes every exported field of src into section, converting each
// to text. Nested structs become dotted keys. New keys are appended in sorted
// order; existing keys keep their position.
func (s *Store) WriteStruct(section string, src any) error {
	if section == "" {
		return ErrInvalidName
	}
	flat, err := structToFlatMap(src)
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	values := make([]string, len(keys))
	for i, k := range keys {
		if values[i], err = stringify(flat[k]); err != nil {
			return fmt.Errorf("field %q: %w", Path(section, k), err)
		}
	}

	sec := s.tree.Ensure(section)
	for i, k := range keys {
		sec.Set(k, values[i])
	}
	return nil
}

// structToFlatMap encodes src with mapstructure and flattens the result.
func structToFlatMap(src any) (map[string]any, error) {
	rv := reflect.ValueOf(src)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, fmt.Errorf("struct source must be non-nil")
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("struct source must be a struct or struct pointer, got %T", src)
	}

	encoded := make(map[string]any)
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &encoded,
		TagName: TagName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}
	if err := decoder.Decode(rv.Interface()); err != nil {
		return nil, fmt.Errorf("failed to encode %T: %w", src, err)
	}

	return flattenMap(normalizeNested(encoded), ""), nil
}

// normalizeNested turns nested struct values left by mapstructure into maps so
// flattenMap can walk them.
func normalizeNested(m map[string]any) map[string]any {
	for k, v := range m {
		switch nv := v.(type) {
		case map[string]any:
			m[k] = normalizeNested(nv)
		default:
			rv := reflect.ValueOf(v)
			if rv.Kind() == reflect.Ptr && !rv.IsNil() {
				rv = rv.Elem()
			}
			if rv.Kind() != reflect.Struct || rv.Type() == reflect.TypeOf(time.Time{}) {
				continue
			}
			if sub, err := structToFlatMap(rv.Interface()); err == nil {
				nested := make(map[string]any)
				for p, sv := range sub {
					setNestedValue(nested, p, sv)
				}
				m[k] = nested
			}
		}
	}
	return m
}

// decodeHook returns the composite decode hook used by Scan.
func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		stringToNetIPHookFunc(),
		stringToURLHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToTimeHookFunc(time.RFC3339),
		mapstructure.StringToSliceHookFunc(","),
	)
}

func stringToNetIPHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(net.IP{}) {
			return data, nil
		}
		ip := net.ParseIP(data.(string))
		if ip == nil {
			return nil, fmt.Errorf("invalid IP address: %s", data)
		}
		return ip, nil
	}
}

func stringToURLHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		isPtr := t.Kind() == reflect.Ptr
		targetType := t
		if isPtr {
			targetType = t.Elem()
		}
		if targetType != reflect.TypeOf(url.URL{}) {
			return data, nil
		}

		u, err := url.Parse(data.(string))
		if err != nil {
			return nil, fmt.Errorf("invalid URL: %w", err)
		}
		if isPtr {
			return u, nil
		}
		return *u, nil
	}
}
