package domain

// EmailSender abstracts outbound mail so handlers can send without caring
// which provider is configured.
type EmailSender interface {
	Send(to, subject, htmlBody string) error
}
