package services

import (
	"fmt"
	"html"
	"log/slog"

	"github.com/resend/resend-go/v2"
	"github.com/scriptgo/backend/internal/config"
)

// EmailService sends transactional email through Resend. Every send is
// best-effort: failures are logged and never block the primary action.
// With no API key configured the service becomes a no-op.
type EmailService struct {
	client *resend.Client
	from   string
	appURL string
}

func NewEmailService(cfg *config.Config) *EmailService {
	s := &EmailService{
		from:   cfg.EmailFrom,
		appURL: cfg.AppURL,
	}
	if cfg.ResendAPIKey != "" {
		s.client = resend.NewClient(cfg.ResendAPIKey)
	}
	return s
}

func (s *EmailService) SendWelcome(email, name string) {
	if name == "" {
		name = "User"
	}
	body := fmt.Sprintf(`<div style="font-family:sans-serif;max-width:560px;margin:0 auto">
<h1>Welcome to ScriptGo, %s!</h1>
<p>Your account is ready. Head to the editor to generate your first AI-powered script,
or build a multi-day content calendar in one click.</p>
<p><a href="%s/editor">Create your first script</a></p>
<p>— The ScriptGo team</p>
</div>`, html.EscapeString(name), s.appURL)

	s.send(email, "Welcome to ScriptGo!", body)
}

func (s *EmailService) SendScriptReady(email, title, preview, scriptID string) {
	if len(preview) > 200 {
		preview = preview[:200] + "..."
	}
	body := fmt.Sprintf(`<div style="font-family:sans-serif;max-width:560px;margin:0 auto">
<h1>Your script is ready</h1>
<p><strong>%s</strong></p>
<blockquote style="color:#555">%s</blockquote>
<p><a href="%s/editor/%s">Open it in the editor</a></p>
</div>`, html.EscapeString(title), html.EscapeString(preview), s.appURL, scriptID)

	s.send(email, fmt.Sprintf("Your script %q is ready!", title), body)
}

func (s *EmailService) SendPasswordReset(email, code string) {
	resetLink := fmt.Sprintf("%s/update-password?code=%s", s.appURL, code)
	body := fmt.Sprintf(`<div style="font-family:sans-serif;max-width:560px;margin:0 auto">
<h1>Reset your ScriptGo password</h1>
<p>Someone requested a password reset for this address. If that was you, use the
link below within the next hour. Otherwise you can safely ignore this email.</p>
<p><a href="%s">Reset password</a></p>
</div>`, resetLink)

	s.send(email, "Reset your ScriptGo password", body)
}

func (s *EmailService) send(to, subject, htmlBody string) {
	if s.client == nil {
		slog.Warn("email not sent, RESEND_API_KEY not configured", "subject", subject)
		return
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		Html:    htmlBody,
	}

	sent, err := s.client.Emails.Send(params)
	if err != nil {
		slog.Error("failed to send email", "subject", subject, "error", err)
		return
	}
	slog.Info("email sent", "subject", subject, "email_id", sent.Id)
}
