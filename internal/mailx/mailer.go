// Package mailx implements outbound email delivery. The Mailer interface is
// consumed by the HTTP layer only; business services never send mail
// themselves, they hand tokens back to their caller for delivery.
package mailx

import "context"

// Message is a single outbound email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer delivers a message to a single recipient.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
