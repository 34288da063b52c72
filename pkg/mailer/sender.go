package mailer

import "context"

// Sender is the minimal interface delivery providers implement. A Sender
// receives a fully-composed Email and performs the actual delivery.
type Sender interface {
	// Send delivers the message. The context bounds the whole exchange;
	// implementations must not retain the Email after returning.
	Send(ctx context.Context, email *Email) error

	// Name returns the provider's configuration name.
	Name() string

	// Close releases any connections held by the provider. Senders that
	// connect per call return nil.
	Close() error
}
