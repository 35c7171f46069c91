package email

import (
	"bytes"
	"html/template"
	"os"
	"path/filepath"

	"github.com/resendlabs/resend-go"
	"go.uber.org/zap"
)

type EmailService struct {
	client       *resend.Client
	from         string
	fromName     string
	templatesDir string
	logger       *zap.Logger
}

func NewEmailService(logger *zap.Logger) *EmailService {
	return &EmailService{
		client:       resend.NewClient(os.Getenv("RESEND_API_KEY")),
		from:         os.Getenv("EMAIL_FROM_ADDRESS"),
		fromName:     os.Getenv("EMAIL_FROM_NAME"),
		templatesDir: "pkg/email/templates",
		logger:       logger,
	}
}

// SendPremiumWelcomeEmail confirms a premium activation. It is fired from
// the webhook path, so failures are logged and never bubble up.
func (s *EmailService) SendPremiumWelcomeEmail(to, name string) error {
	templateData := map[string]interface{}{
		"Name":  name,
		"Email": to,
	}

	html, err := s.parseTemplate("premium_welcome.html", templateData)
	if err != nil {
		s.logger.Error("failed to parse premium welcome template",
			zap.String("email", to), zap.Error(err))
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{to},
		Subject: "Your FindTutor premium is active",
		Html:    html,
	}

	resp, err := s.client.Emails.Send(params)
	if err != nil {
		s.logger.Error("failed to send premium welcome email",
			zap.String("email", to), zap.Error(err))
		return err
	}

	s.logger.Info("premium welcome email sent",
		zap.String("email", to), zap.String("resend_id", resp.Id))
	return nil
}

func (s *EmailService) parseTemplate(name string, data interface{}) (string, error) {
	tmpl, err := template.ParseFiles(filepath.Join(s.templatesDir, name))
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
