package attachment

import "errors"

var (
	// ErrNotFound indicates the attachment path does not exist.
	ErrNotFound = errors.New("attachment: file not found")

	// ErrNotAFile indicates the path is a directory or special file.
	ErrNotAFile = errors.New("attachment: path is not a regular file")

	// ErrTooLarge indicates the file exceeds the configured size limit.
	ErrTooLarge = errors.New("attachment: file too large")

	// ErrUnreadable indicates the file could not be read.
	ErrUnreadable = errors.New("attachment: cannot read file")
)
