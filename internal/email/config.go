package email

import "fmt"

// Config holds SMTP settings for the sender.
type Config struct {
	SMTPHost    string
	SMTPPort    int
	Username    string
	Password    string
	FromEmail   string
	FromName    string
	FrontendURL string
}

// DefaultConfig returns development defaults.
func DefaultConfig() Config {
	return Config{
		SMTPHost:    "localhost",
		SMTPPort:    587,
		FromEmail:   "noreply@xconfess.app",
		FromName:    "XConfess",
		FrontendURL: "http://localhost:3000",
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.SMTPHost == "" {
		return fmt.Errorf("SMTP host is required")
	}
	if c.SMTPPort <= 0 || c.SMTPPort > 65535 {
		return fmt.Errorf("invalid SMTP port: %d", c.SMTPPort)
	}
	if c.FromEmail == "" {
		return fmt.Errorf("from email is required")
	}
	return nil
}
