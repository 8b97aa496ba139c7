package domain

import "time"

// Mailer is the outbound mail collaborator. Implementations must be safe for
// concurrent use; failures surface as plain errors to the calling usecase.
type Mailer interface {
	SendVerificationEmail(to, name, verificationToken string) error
	SendInterviewNotification(to, name string, interviewDate time.Time) error
}
