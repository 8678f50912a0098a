package repl

import "errors"

// Sentinel errors.
var (
	ErrOutOfBounds = errors.New("index out of range")
	ErrNoReload    = errors.New("configuration was read from standard input and cannot be reloaded")
	ErrNoEditPath  = errors.New("no source file to edit")
)
