package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"time"

	"talent-pool-backend/config"
)

// EmailService handles sending emails via SMTP
type EmailService struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string

	frontendURL    string
	companyName    string
	companyAddress string
	companyPhone   string
}

// NewEmailService creates a new email service from SMTP configuration
func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		host:           cfg.SMTPHost,
		port:           cfg.SMTPPort,
		username:       cfg.SMTPUsername,
		password:       cfg.SMTPPassword,
		fromEmail:      cfg.SMTPFromEmail,
		frontendURL:    cfg.FrontendURL,
		companyName:    cfg.CompanyName,
		companyAddress: cfg.CompanyAddress,
		companyPhone:   cfg.CompanyPhone,
	}
}

const verificationEmailTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Welcome to Talent Pool</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0066cc; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .button { display: inline-block; padding: 12px 24px; background: #0066cc; color: white; text-decoration: none; border-radius: 4px; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Welcome to Talent Pool</h1>
        </div>
        <div class="content">
            <p>Hello {{.Name}},</p>
            <p>Thanks for registering. To complete your registration, verify your email and set your password using the link below:</p>
            <p><a class="button" href="{{.VerificationURL}}">Complete registration</a></p>
            <p>This link expires in 24 hours.</p>
        </div>
        <div class="footer">
            <p>If you did not create this account, you can safely ignore this email.</p>
        </div>
    </div>
</body>
</html>`

const interviewEmailTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Interview Invitation</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0066cc; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .highlight { background: white; padding: 15px; border-left: 4px solid #0066cc; margin-top: 10px; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>You have been selected for an interview!</h1>
        </div>
        <div class="content">
            <p>Hello {{.Name}},</p>
            <p>Congratulations! You have been selected for an interview at {{.CompanyName}}.</p>
            <div class="highlight">
                <p><strong>Date:</strong> {{.InterviewDate}}</p>
                {{if .CompanyAddress}}<p><strong>Address:</strong> {{.CompanyAddress}}</p>{{end}}
                {{if .CompanyPhone}}<p><strong>Phone:</strong> {{.CompanyPhone}}</p>{{end}}
            </div>
            <p>Please arrive a few minutes early and bring a photo ID.</p>
        </div>
        <div class="footer">
            <p>{{.CompanyName}} recruiting team</p>
        </div>
    </div>
</body>
</html>`

type verificationEmailData struct {
	Name            string
	VerificationURL string
}

type interviewEmailData struct {
	Name           string
	InterviewDate  string
	CompanyName    string
	CompanyAddress string
	CompanyPhone   string
}

// SendVerificationEmail sends the complete-your-registration email carrying
// the verification token link.
func (s *EmailService) SendVerificationEmail(to, name, verificationToken string) error {
	data := verificationEmailData{
		Name:            name,
		VerificationURL: fmt.Sprintf("%s/verify-email?token=%s", s.frontendURL, verificationToken),
	}

	body, err := renderTemplate("verification", verificationEmailTemplate, data)
	if err != nil {
		return err
	}

	return s.send(to, "Welcome to Talent Pool - Complete your registration", body)
}

// SendInterviewNotification notifies a candidate of the scheduled interview slot.
func (s *EmailService) SendInterviewNotification(to, name string, interviewDate time.Time) error {
	data := interviewEmailData{
		Name:           name,
		InterviewDate:  interviewDate.Format("02/01/2006 at 15:04"),
		CompanyName:    s.companyName,
		CompanyAddress: s.companyAddress,
		CompanyPhone:   s.companyPhone,
	}

	body, err := renderTemplate("interview", interviewEmailTemplate, data)
	if err != nil {
		return err
	}

	return s.send(to, "You have been selected for an interview!", body)
}

func renderTemplate(name, tmplText string, data interface{}) (string, error) {
	tmpl, err := template.New(name).Parse(tmplText)
	if err != nil {
		return "", fmt.Errorf("failed to parse email template: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return body.String(), nil
}

func (s *EmailService) send(to, subject, htmlBody string) error {
	// Construct MIME message
	msg := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		s.fromEmail,
		to,
		subject,
		htmlBody,
	))

	auth := smtp.PlainAuth("", s.username, s.password, s.host)

	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	if err := smtp.SendMail(addr, auth, s.fromEmail, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// IsConfigured checks if the email service has valid SMTP configuration
func (s *EmailService) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != ""
}
