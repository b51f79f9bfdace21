package email

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

// TemplateManager renders the built-in message templates.
type TemplateManager struct {
	templates map[string]*template.Template
}

// NewTemplateManager parses all built-in templates up front so a broken
// template fails at startup, not at send time.
func NewTemplateManager() (*TemplateManager, error) {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}

	for name, body := range builtinTemplates {
		tpl, err := template.New(name).Parse(body)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		tm.templates[name] = tpl
	}

	return tm, nil
}

// Render produces the HTML body for the named template.
func (tm *TemplateManager) Render(name string, data TemplateData) (string, error) {
	tpl, ok := tm.templates[name]
	if !ok {
		return "", fmt.Errorf("unknown template: %s", name)
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", name, err)
	}

	return buf.String(), nil
}

// RenderText produces a plain-text alternative by stripping tags from the
// rendered HTML.
func (tm *TemplateManager) RenderText(name string, data TemplateData) (string, error) {
	html, err := tm.Render(name, data)
	if err != nil {
		return "", err
	}
	return htmlToText(html), nil
}

func htmlToText(html string) string {
	text := strings.ReplaceAll(html, "<br/>", "\n")
	text = strings.ReplaceAll(text, "<br>", "\n")
	text = strings.ReplaceAll(text, "<p>", "\n")
	text = strings.ReplaceAll(text, "</p>", "\n")

	for {
		start := strings.Index(text, "<")
		if start == -1 {
			break
		}
		end := strings.Index(text[start:], ">")
		if end == -1 {
			break
		}
		text = text[:start] + text[start+end+1:]
	}

	return strings.TrimSpace(text)
}

var builtinTemplates = map[string]string{
	"welcome": `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h1>Welcome to XConfess, {{.Username}}!</h1>
  <p>Thank you for joining XConfess. With XConfess you can:</p>
  <ul>
    <li>Share your thoughts and confessions anonymously</li>
    <li>React to others' confessions with emojis</li>
  </ul>
  <p><a href="{{.ActionURL}}">Start exploring</a></p>
  <p>Happy confessing!<br/>The XConfess Team</p>
</body>
</html>`,

	"reaction_notification": `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h1>New Reaction to Your Confession! {{.Emoji}}</h1>
  <p>Hello {{.Username}},</p>
  <p>Someone reacted to your confession:</p>
  <blockquote style="border-left: 4px solid #4CAF50; padding: 15px; font-style: italic;">"{{.Content}}"</blockquote>
  <p style="font-size: 24px; text-align: center;">{{.ReactorName}} reacted with {{.Emoji}}</p>
  <p><a href="{{.ActionURL}}">View all reactions</a></p>
  <p>Best regards,<br/>The XConfess Team</p>
</body>
</html>`,

	"password_reset": `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h1>XConfess - Password Reset</h1>
  <p>Hello {{.Username}},</p>
  <p>We received a request to reset your password.</p>
  <p><a href="{{.ResetURL}}">Reset my password</a></p>
  <p>This link will expire in 15 minutes.</p>
  <p>If you didn't request this password reset, please ignore this email.</p>
</body>
</html>`,
}
