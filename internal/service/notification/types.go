package notification

import "context"

// Message is a channel-agnostic alert. HTML carries the rich-text body;
// Text is an optional plain variant, derived by the channel when empty.
type Message struct {
	Subject string
	HTML    string
	Text    string
}

// Channel delivers one message. Implementations enforce their own call
// timeouts and never panic; delivery problems come back as errors.
type Channel interface {
	Name() string
	Send(ctx context.Context, msg Message) error
}
