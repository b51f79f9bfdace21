package email

// Email is one outbound message. Body is the plain-text alternative shown by
// clients that do not render HTML.
type Email struct {
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

// TemplateData is the payload rendered into the message templates.
type TemplateData struct {
	Username    string
	ReactorName string
	Content     string
	Emoji       string
	ActionURL   string
	ResetURL    string
}

// Sender delivers transactional mail. Implementations own transport,
// templating and any retry behavior.
type Sender interface {
	Send(email *Email) error
	SendWelcome(to, username string) error
	SendReactionNotification(to, username, reactorName, contentPreview, emoji string) error
	SendPasswordReset(to, username, resetToken string) error
}
