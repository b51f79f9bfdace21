package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTPSender delivers mail over SMTP via gomail.
type SMTPSender struct {
	config    Config
	templates *TemplateManager
}

// NewSMTPSender creates a sender with the built-in templates.
func NewSMTPSender(config Config) (Sender, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid email config: %w", err)
	}

	tm, err := NewTemplateManager()
	if err != nil {
		return nil, fmt.Errorf("failed to create template manager: %w", err)
	}

	return &SMTPSender{
		config:    config,
		templates: tm,
	}, nil
}

// Send delivers one message.
func (s *SMTPSender) Send(email *Email) error {
	if len(email.To) == 0 {
		return fmt.Errorf("no recipients specified")
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.config.FromEmail, s.config.FromName)
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)
	m.SetBody("text/plain", email.Body)
	if email.HTMLBody != "" {
		m.AddAlternative("text/html", email.HTMLBody)
	}

	d := gomail.NewDialer(
		s.config.SMTPHost,
		s.config.SMTPPort,
		s.config.Username,
		s.config.Password,
	)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %v: %w", email.To, err)
	}
	return nil
}

func (s *SMTPSender) sendTemplate(to, subject, templateName string, data TemplateData) error {
	htmlBody, err := s.templates.Render(templateName, data)
	if err != nil {
		return err
	}

	textBody, err := s.templates.RenderText(templateName, data)
	if err != nil {
		return err
	}

	return s.Send(&Email{
		To:       []string{to},
		Subject:  subject,
		Body:     textBody,
		HTMLBody: htmlBody,
	})
}

// SendWelcome greets a newly registered user.
func (s *SMTPSender) SendWelcome(to, username string) error {
	data := TemplateData{
		Username:  username,
		ActionURL: s.config.FrontendURL,
	}
	return s.sendTemplate(to, "Welcome to XConfess!", "welcome", data)
}

// SendReactionNotification tells a confession author someone reacted.
// contentPreview is expected to be already bounded by the caller.
func (s *SMTPSender) SendReactionNotification(to, username, reactorName, contentPreview, emoji string) error {
	data := TemplateData{
		Username:    username,
		ReactorName: reactorName,
		Content:     contentPreview,
		Emoji:       emoji,
		ActionURL:   s.config.FrontendURL + "/confessions",
	}
	subject := fmt.Sprintf("Someone reacted with %s to your confession!", emoji)
	return s.sendTemplate(to, subject, "reaction_notification", data)
}

// SendPasswordReset delivers a reset link.
func (s *SMTPSender) SendPasswordReset(to, username, resetToken string) error {
	data := TemplateData{
		Username: username,
		ResetURL: fmt.Sprintf("%s/reset-password?token=%s", s.config.FrontendURL, resetToken),
	}
	return s.sendTemplate(to, "Password Reset Request - XConfess", "password_reset", data)
}
