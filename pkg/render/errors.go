package render

import "errors"

var (
	// ErrTemplate indicates malformed template syntax.
	ErrTemplate = errors.New("render: malformed template")

	// ErrUnknownEngine indicates an unrecognized engine name.
	ErrUnknownEngine = errors.New("render: unknown engine")
)
