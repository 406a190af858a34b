// FILE: lixenwraith/iniconf/doc.go

// Package iniconf provides an in-process section/key configuration store for
// Go applications. A Store loads a section-keyed text file (INI by default,
// TOML, YAML or JSON by extension) into an ordered tree of string values and
// exposes typed accessors over "section.key" paths.
//
// Features:
//   - Insertion order of sections and keys survives a load/save round trip
//   - Typed Read* accessors that never fail: absent or unparsable values yield the caller default
//   - Strict accessors (Int64, Bool, ...) returning errors for callers that need them
//   - Atomic saves through a temporary file and rename
//   - Struct decoding and encoding of a single section via mapstructure
//   - Builder with per-section defaults, validators and file discovery
//
// Quick Start:
//
//	store := iniconf.New()
//	_ = store.Load("risk.ini") // best effort, defaults apply when missing
//
//	maxPos := store.ReadInt("Risk", "MaxPos", 0)
//	store.WriteInt("Risk", "MaxPos", maxPos+1)
//
//	if err := store.Save(""); err != nil { // saves back to risk.ini
//	    log.Fatal(err)
//	}
//
// Load Semantics:
// Load records the path as the default save target and marks the store as
// loaded even when the file is missing or malformed; in that case the tree
// keeps its previous content. IsLoaded reports that a load was attempted,
// LoadSucceeded and LoadErr report its outcome.
//
// Thread Safety:
// A Store performs no internal locking. Hosts sharing one across goroutines
// must guard every call with their own mutex.
package iniconf
