package tool

import "errors"

var (
	// ErrArgumentParseFailed indicates the (possibly middleware-modified)
	// arguments JSON could not be decoded into the tool's typed arguments.
	ErrArgumentParseFailed = errors.New("tool: argument parse failed")
	// ErrNotFound indicates no tool is registered under the requested name.
	ErrNotFound = errors.New("tool: not found")
	// ErrInvalidArguments indicates arguments failed schema validation.
	ErrInvalidArguments = errors.New("tool: invalid arguments")
)
