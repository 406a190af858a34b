// FILE: lixenwraith/iniconf/codec_test.go
package iniconf

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleStore() *Store {
	s := New()
	s.WriteString("Server", "host", "example.com")
	s.WriteInt("Server", "port", 9000)
	s.WriteString("Server", "greeting", "hello world")
	s.WriteString("Risk", "MaxPos", "100")
	s.WriteDouble("Risk", "Ratio", 0.25)
	s.WriteBool("Risk", "Enabled", true)
	s.WriteString("Risk", "Symbols", "ES,NQ,CL")
	s.WriteString("Risk", "db.host", "localhost")
	s.WriteString("Alpha", "zeta", "last-but-first")
	s.WriteString("Alpha", "alpha", "x")
	s.WriteString("Empty", "placeholder", "")
	s.RemoveValue("Empty", "placeholder")
	return s
}

// TestRoundTrip tests save then load reproduces the tree, including order
func TestRoundTrip(t *testing.T) {
	for _, ext := range []string{".ini", ".conf", ".toml", ".yaml", ".yml", ".json"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "round"+ext)
			original := sampleStore()
			require.NoError(t, original.Save(path))

			loaded := New()
			require.NoError(t, loaded.Load(path))
			assert.Equal(t, original.Sections(), loaded.Sections())
			for _, name := range original.Sections() {
				assert.Equal(t, original.Keys(name), loaded.Keys(name), "section %s", name)
			}
			assert.True(t, original.Tree().Equal(loaded.Tree()))

			// A second cycle must be stable as well
			require.NoError(t, loaded.Save(""))
			again := New()
			require.NoError(t, again.Load(path))
			assert.True(t, original.Tree().Equal(again.Tree()))
		})
	}
}

// TestINIFormat tests parsing of the section/key text syntax
func TestINIFormat(t *testing.T) {
	src := `; leading comment
[Risk]
MaxPos = 100
# comment
MinPos=5

[Server]
host = example.com
`
	store := New()
	require.NoError(t, store.LoadBytes([]byte(src), FormatINI))

	assert.Equal(t, []string{"Risk", "Server"}, store.Sections())
	assert.Equal(t, []string{"MaxPos", "MinPos"}, store.Keys("Risk"))
	assert.Equal(t, int64(5), store.ReadInt("Risk", "MinPos", 0))
	assert.Equal(t, "example.com", store.ReadString("Server", "host", ""))

	t.Run("KeysBeforeHeaderGoToDefault", func(t *testing.T) {
		store := New()
		require.NoError(t, store.LoadBytes([]byte("top = 1\n[s]\nk = v\n"), FormatINI))
		assert.Equal(t, []string{"DEFAULT", "s"}, store.Sections())
		assert.Equal(t, int64(1), store.ReadInt("DEFAULT", "top", 0))
	})

	t.Run("EmptySource", func(t *testing.T) {
		store := New()
		require.NoError(t, store.LoadBytes(nil, FormatINI))
		assert.Empty(t, store.Sections())
	})

	t.Run("Output", func(t *testing.T) {
		store := New()
		store.WriteInt("Risk", "MaxPos", 100)
		data, err := store.Bytes(FormatINI)
		require.NoError(t, err)
		assert.Contains(t, string(data), "[Risk]\n")
		assert.Contains(t, string(data), "MaxPos = 100\n")
	})
}

// TestTOMLFormat tests mapping of TOML tables to sections
func TestTOMLFormat(t *testing.T) {
	src := `
[server]
port = 9000
host = "example.com"
enabled = true
ratio = 0.5
tags = ["primary", "replica"]

[server.tls]
cert = "/path/to/cert.pem"

[database]
inline = { user = "admin" }
`
	store := New()
	require.NoError(t, store.LoadBytes([]byte(src), FormatTOML))

	assert.Equal(t, []string{"server", "database"}, store.Sections())
	assert.Equal(t, []string{"port", "host", "enabled", "ratio", "tags", "tls.cert"}, store.Keys("server"))
	assert.Equal(t, int64(9000), store.ReadInt("server", "port", 0))
	assert.True(t, store.ReadBool("server", "enabled", false))
	assert.Equal(t, 0.5, store.ReadDouble("server", "ratio", 0))
	assert.Equal(t, "primary,replica", store.ReadString("server", "tags", ""))
	assert.Equal(t, "/path/to/cert.pem", store.ReadString("server", "tls.cert", ""))
	assert.Equal(t, "admin", store.ReadString("database", "inline.user", ""))
}

// TestYAMLFormat tests mapping of YAML documents to sections
func TestYAMLFormat(t *testing.T) {
	src := `
server:
  port: 9000
  host: example.com
  tags: [primary, replica]
  tls:
    cert: /path/to/cert.pem
empty:
defaults: &defaults
  retries: 3
copy: *defaults
`
	store := New()
	require.NoError(t, store.LoadBytes([]byte(src), FormatYAML))

	assert.Equal(t, []string{"server", "empty", "defaults", "copy"}, store.Sections())
	assert.Equal(t, []string{"port", "host", "tags", "tls.cert"}, store.Keys("server"))
	assert.Equal(t, int64(9000), store.ReadInt("server", "port", 0))
	assert.Equal(t, "primary,replica", store.ReadString("server", "tags", ""))
	assert.Empty(t, store.Keys("empty"))
	assert.Equal(t, int64(3), store.ReadInt("copy", "retries", 0))
}

// TestJSONFormat tests mapping of JSON objects to sections
func TestJSONFormat(t *testing.T) {
	src := `{
  "zeta": {"b": 1, "a": "two", "ok": true, "none": null},
  "alpha": {"list": [1, 2.5, "x"], "nested": {"deep": "v"}},
  "empty": {}
}`
	store := New()
	require.NoError(t, store.LoadBytes([]byte(src), FormatJSON))

	assert.Equal(t, []string{"zeta", "alpha", "empty"}, store.Sections())
	assert.Equal(t, []string{"b", "a", "ok", "none"}, store.Keys("zeta"))
	assert.Equal(t, int64(1), store.ReadInt("zeta", "b", 0))
	assert.True(t, store.ReadBool("zeta", "ok", false))
	assert.Equal(t, "", store.ReadString("zeta", "none", "x"))
	assert.Equal(t, "1,2.5,x", store.ReadString("alpha", "list", ""))
	assert.Equal(t, "v", store.ReadString("alpha", "nested.deep", ""))
}

// TestMalformedSources tests that every codec rejects malformed or rootless input
func TestMalformedSources(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		src    string
	}{
		{"INIUnclosedSection", FormatINI, "[Risk\nMaxPos = 1\n"},
		{"INIMissingDelimiter", FormatINI, "[Risk]\njustakey\n"},
		{"TOMLSyntax", FormatTOML, "[Risk\n"},
		{"TOMLTopLevelScalar", FormatTOML, "x = 1\n"},
		{"TOMLArrayOfTables", FormatTOML, "[[items]]\nname = \"a\"\n"},
		{"YAMLSyntax", FormatYAML, "Risk: [unclosed\n"},
		{"YAMLTopLevelScalar", FormatYAML, "x: 1\n"},
		{"YAMLRootSequence", FormatYAML, "- a\n- b\n"},
		{"JSONSyntax", FormatJSON, `{"Risk": {"a": }`},
		{"JSONTopLevelScalar", FormatJSON, `{"x": 1}`},
		{"JSONRootArray", FormatJSON, `[1, 2]`},
		{"JSONTrailingData", FormatJSON, `{"a": {}} {"b": {}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := New()
			store.WriteString("keep", "k", "v")

			err := store.LoadBytes([]byte(tt.src), tt.format)
			assert.ErrorIs(t, err, ErrSourceMalformed)
			assert.True(t, store.IsLoaded())
			assert.False(t, store.LoadSucceeded())
			assert.Equal(t, []string{"keep"}, store.Sections())
		})
	}
}

// TestFormatSelection tests extension detection and explicit overrides
func TestFormatSelection(t *testing.T) {
	assert.Equal(t, FormatINI, DetectFormat("a.ini"))
	assert.Equal(t, FormatINI, DetectFormat("a.cfg"))
	assert.Equal(t, FormatINI, DetectFormat("noext"))
	assert.Equal(t, FormatTOML, DetectFormat("a.TOML"))
	assert.Equal(t, FormatYAML, DetectFormat("a.yml"))
	assert.Equal(t, FormatJSON, DetectFormat("dir.d/a.json"))

	f, err := ParseFormat("YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)
	_, err = ParseFormat("xml")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	t.Run("ForcedFormatIgnoresExtension", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "settings.txt", "[s]\nk = \"v\"\n")
		store := New()
		require.NoError(t, store.SetFormat(FormatTOML))
		require.NoError(t, store.Load(path))
		assert.Equal(t, "v", store.ReadString("s", "k", ""))
	})

	t.Run("InvalidFormatRejected", func(t *testing.T) {
		assert.ErrorIs(t, New().SetFormat(Format("xml")), ErrUnknownFormat)
	})
}

// TestConversionAcrossFormats tests that a tree survives every format pair
func TestConversionAcrossFormats(t *testing.T) {
	formats := []Format{FormatINI, FormatTOML, FormatYAML, FormatJSON}
	original := sampleStore()

	for _, from := range formats {
		for _, to := range formats {
			t.Run(string(from)+"_to_"+string(to), func(t *testing.T) {
				data, err := original.Bytes(from)
				require.NoError(t, err)

				mid := New()
				require.NoError(t, mid.LoadBytes(data, from))

				data, err = mid.Bytes(to)
				require.NoError(t, err)

				final := New()
				require.NoError(t, final.LoadBytes(data, to))
				assert.True(t, original.Tree().Equal(final.Tree()))
			})
		}
	}
}

func awkwardStore() *Store {
	s := New()
	s.WriteString("Paths", "backslash", `C:\dir\`)
	s.WriteString("Paths", "after", "z")
	s.WriteString("Paths", "double", `"hello"`)
	s.WriteString("Paths", "single", `'q'`)
	s.WriteString("Paths", "half", `"open`)
	s.WriteString("Paths", "padded", "  spaced  ")
	s.WriteString("Paths", "tab", "\tlead")
	s.WriteString("Paths", "comment", "a # not a comment; really")
	s.WriteString("Paths", "semi", ";lead")
	s.WriteString("Paths", "multiline", "line one\nline two")
	s.WriteString("Paths", "backtick", "run `cmd`")
	s.WriteString("Paths", "backtickComment", "`x` # y")
	s.WriteString("Paths", "triple", `a"""b`)
	s.WriteString("Paths", "empty", "")
	s.WriteString("Keys", "#c", "1")
	s.WriteString("Keys", ";d", "2")
	s.WriteString("Keys", "[e]", "3")
	s.WriteString("Keys", "a=b", "4")
	s.WriteString("Keys", "k:v", "5")
	s.WriteString("Keys", `"q`, "6")
	s.WriteString("Keys", "next", "7")
	s.WriteString("with space", "k", "v")
	return s
}

// TestRoundTripAwkwardContent tests values and names that collide with format syntax
func TestRoundTripAwkwardContent(t *testing.T) {
	for _, ext := range []string{".ini", ".toml", ".yaml", ".json"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "awkward"+ext)
			original := awkwardStore()
			require.NoError(t, original.Save(path))

			loaded := New()
			require.NoError(t, loaded.Load(path))
			assert.Equal(t, original.Sections(), loaded.Sections())
			for _, name := range original.Sections() {
				assert.Equal(t, original.Keys(name), loaded.Keys(name), "section %s", name)
				for _, key := range original.Keys(name) {
					want, _ := original.String(name, key)
					got, err := loaded.String(name, key)
					require.NoError(t, err, "key %s", Path(name, key))
					assert.Equal(t, want, got, "key %s", Path(name, key))
				}
			}
			assert.True(t, original.Tree().Equal(loaded.Tree()))
		})
	}
}

// TestINITrailingBackslash tests that a trailing backslash does not join the next line
func TestINITrailingBackslash(t *testing.T) {
	store := New()
	require.NoError(t, store.LoadBytes([]byte("[S]\npath = C:\\dir\\\nafter = z\n"), FormatINI))
	assert.Equal(t, `C:\dir\`, store.ReadString("S", "path", ""))
	assert.Equal(t, "z", store.ReadString("S", "after", "<absent>"))
}

// TestINIUnrepresentable tests that saving names the syntax cannot hold fails and writes nothing
func TestINIUnrepresentable(t *testing.T) {
	tests := []struct {
		name    string
		section string
		key     string
		value   string
	}{
		{"AutoIncrementKey", "S", "-", "v"},
		{"KeyLeadingSpace", "S", " pad", "v"},
		{"KeyTrailingSpace", "S", "pad ", "v"},
		{"KeyNewline", "S", "a\nb", "v"},
		{"QuotedKeyWithBacktick", "S", "#`x", "v"},
		{"SectionNewline", "a\nb", "k", "v"},
		{"BacktickAndTripleQuote", "S", "k", "`a` \"\"\" b\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := New()
			store.WriteString("keep", "k", "v")
			store.WriteString(tt.section, tt.key, tt.value)

			path := filepath.Join(t.TempDir(), "bad.ini")
			err := store.Save(path)
			assert.ErrorIs(t, err, ErrDestinationUnwritable)
			assert.ErrorIs(t, err, ErrInvalidName)
			_, statErr := os.Stat(path)
			assert.True(t, os.IsNotExist(statErr))

			// The same tree is fine in a format with full quoting
			require.NoError(t, store.Save(filepath.Join(t.TempDir(), "ok.json")))
		})
	}
}

// TestINIDefaultSectionFirst tests the fixed position of DEFAULT in INI output
func TestINIDefaultSectionFirst(t *testing.T) {
	store := New()
	store.WriteString("A", "k", "1")
	store.WriteString("DEFAULT", "top", "2")

	data, err := store.Bytes(FormatINI)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "top = 2\n"))

	loaded := New()
	require.NoError(t, loaded.LoadBytes(data, FormatINI))
	assert.Equal(t, []string{"DEFAULT", "A"}, loaded.Sections())
	assert.Equal(t, "2", loaded.ReadString("DEFAULT", "top", ""))

	t.Run("EmptyDefaultDropped", func(t *testing.T) {
		store := New()
		store.WriteString("DEFAULT", "gone", "x")
		store.RemoveValue("DEFAULT", "gone")
		store.WriteString("A", "k", "1")

		data, err := store.Bytes(FormatINI)
		require.NoError(t, err)
		loaded := New()
		require.NoError(t, loaded.LoadBytes(data, FormatINI))
		assert.Equal(t, []string{"A"}, loaded.Sections())
	})

	t.Run("OtherFormatsKeepOrder", func(t *testing.T) {
		for _, f := range []Format{FormatTOML, FormatYAML, FormatJSON} {
			data, err := store.Bytes(f)
			require.NoError(t, err)
			loaded := New()
			require.NoError(t, loaded.LoadBytes(data, f))
			assert.Equal(t, []string{"A", "DEFAULT"}, loaded.Sections(), "format %s", f)
		}
	})
}
