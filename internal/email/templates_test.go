package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTemplateManager(t *testing.T) {
	tm, err := NewTemplateManager()
	require.NoError(t, err)

	for name := range builtinTemplates {
		_, ok := tm.templates[name]
		assert.True(t, ok, "template %s should be parsed", name)
	}
}

func TestRenderReactionNotification(t *testing.T) {
	tm, err := NewTemplateManager()
	require.NoError(t, err)

	html, err := tm.Render("reaction_notification", TemplateData{
		Username:    "alice",
		ReactorName: "Anonymous",
		Content:     "I still sleep with a nightlight",
		Emoji:       "❤️",
		ActionURL:   "http://localhost:3000/confessions/abc",
	})
	require.NoError(t, err)

	assert.Contains(t, html, "Hello alice")
	assert.Contains(t, html, "I still sleep with a nightlight")
	assert.Contains(t, html, "Anonymous reacted with ❤️")
	assert.Contains(t, html, `href="http://localhost:3000/confessions/abc"`)
}

func TestRenderWelcome(t *testing.T) {
	tm, err := NewTemplateManager()
	require.NoError(t, err)

	html, err := tm.Render("welcome", TemplateData{
		Username:  "bob",
		ActionURL: "http://localhost:3000",
	})
	require.NoError(t, err)
	assert.Contains(t, html, "Welcome to XConfess, bob!")
}

func TestRenderPasswordReset(t *testing.T) {
	tm, err := NewTemplateManager()
	require.NoError(t, err)

	html, err := tm.Render("password_reset", TemplateData{
		Username: "carol",
		ResetURL: "http://localhost:3000/reset?token=tok",
	})
	require.NoError(t, err)
	assert.Contains(t, html, "Hello carol")
	assert.Contains(t, html, "http://localhost:3000/reset?token=tok")
}

func TestRenderEscapesHTMLInContent(t *testing.T) {
	tm, err := NewTemplateManager()
	require.NoError(t, err)

	html, err := tm.Render("reaction_notification", TemplateData{
		Username:    "alice",
		ReactorName: "Anonymous",
		Content:     `<script>alert("x")</script>`,
		Emoji:       "😂",
	})
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}

func TestRenderUnknownTemplate(t *testing.T) {
	tm, err := NewTemplateManager()
	require.NoError(t, err)

	_, err = tm.Render("no_such_template", TemplateData{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown template")
}

func TestRenderText(t *testing.T) {
	tm, err := NewTemplateManager()
	require.NoError(t, err)

	text, err := tm.RenderText("reaction_notification", TemplateData{
		Username:    "alice",
		ReactorName: "Anonymous",
		Content:     "short confession",
		Emoji:       "❤️",
	})
	require.NoError(t, err)
	assert.NotContains(t, text, "<")
	assert.Contains(t, text, "Hello alice")
	assert.Contains(t, text, "short confession")
}

func TestHTMLToText(t *testing.T) {
	text := htmlToText("<p>Hello</p><br/>world <b>bold</b>")
	assert.NotContains(t, text, "<")
	assert.Contains(t, text, "Hello")
	assert.Contains(t, text, "bold")
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.SMTPHost = ""
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.SMTPPort = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.SMTPPort = 70000
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.FromEmail = ""
	assert.Error(t, cfg.Validate())
}
