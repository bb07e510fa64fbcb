package services

// EmailSender delivers out-of-band messages such as password reset links.
type EmailSender interface {
	Send(to string, subject string, body string) error
}
