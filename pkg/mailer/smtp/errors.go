package smtp

import "errors"

var (
	// ErrInvalidConfig indicates incomplete or out-of-range SMTP settings.
	ErrInvalidConfig = errors.New("smtp: invalid configuration")

	// ErrConnection indicates the server could not be reached within the
	// configured timeout, or the connection dropped mid-exchange.
	ErrConnection = errors.New("smtp: connection failed")

	// ErrAuthentication indicates the server rejected the credentials.
	ErrAuthentication = errors.New("smtp: authentication failed")

	// ErrProtocol indicates the server rejected the message during the
	// SMTP exchange.
	ErrProtocol = errors.New("smtp: server rejected message")
)
