package recipients

import "errors"

var (
	// ErrNotFound indicates the recipients file does not exist.
	ErrNotFound = errors.New("recipients: file not found")

	// ErrEmptyFile indicates the file has no header row.
	ErrEmptyFile = errors.New("recipients: file is empty or has no header")

	// ErrNoRecipients indicates no usable data rows follow the header.
	ErrNoRecipients = errors.New("recipients: no usable rows after header")

	// ErrEncoding indicates the file is not valid UTF-8 text.
	ErrEncoding = errors.New("recipients: invalid text encoding, expected UTF-8")

	// ErrParse indicates malformed delimited syntax.
	ErrParse = errors.New("recipients: malformed delimited data")
)
