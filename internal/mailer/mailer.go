package mailer

// Email is a single outbound message. Text and HTML are alternative bodies;
// HTML may be empty.
type Email struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Client sends transactional email for the handlers. Implementations own the
// transport configuration and its lifecycle.
type Client interface {
	Send(email Email) error
}
