package mailer

import "errors"

var (
	// ErrNoRecipient indicates no recipient was specified.
	ErrNoRecipient = errors.New("mailer: message must have at least one recipient")

	// ErrNoSender indicates no sender address was specified.
	ErrNoSender = errors.New("mailer: message must have a sender address")

	// ErrEncodeFailed indicates the message could not be encoded for the wire.
	ErrEncodeFailed = errors.New("mailer: failed to encode message")
)
