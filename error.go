// FILE: lixenwraith/iniconf/error.go
package iniconf

import "errors"

// Load failures. All of them are absorbed by Load into the loaded flag and LoadErr.
var (
	ErrSourceNotFound   = errors.New("configuration source not found")
	ErrSourceUnreadable = errors.New("configuration source unreadable")
	ErrSourceMalformed  = errors.New("configuration source malformed")
)

// Lookup failures, absorbed into caller defaults by the Read* accessors.
var (
	ErrValueAbsent     = errors.New("configuration value absent")
	ErrValueUnparsable = errors.New("configuration value unparsable")
)

// Persist failures. These are the only ones surfaced to callers of Save.
var (
	ErrNoSaveTarget          = errors.New("no save target: path empty and nothing was loaded")
	ErrDestinationUnwritable = errors.New("configuration destination unwritable")
)

var (
	ErrUnknownFormat = errors.New("unknown configuration format")
	ErrInvalidName   = errors.New("section and key names must be non-empty")
)
