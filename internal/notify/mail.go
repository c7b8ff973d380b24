package notify

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"isml_backend/internal/config"

	"gopkg.in/gomail.v2"
)

const ApprovalSubject = "Congratulations! Your ISML Registration is Approved"

//go:embed templates/approval.html
var templateFS embed.FS

var approvalTemplate = template.Must(template.ParseFS(templateFS, "templates/approval.html"))

type approvalData struct {
	Name               string
	RegistrationNumber string
	PortalURL          string
}

// RenderApproval renders the HTML body of the approval email.
func RenderApproval(msg Message, portalURL string) (string, error) {
	var buf bytes.Buffer
	err := approvalTemplate.Execute(&buf, approvalData{
		Name:               msg.Name,
		RegistrationNumber: msg.RegistrationNumber,
		PortalURL:          portalURL,
	})
	if err != nil {
		return "", fmt.Errorf("render approval email: %w", err)
	}
	return buf.String(), nil
}

// Sender delivers one message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPSender sends through an authenticated SMTP relay (Gmail by default).
type SMTPSender struct {
	dialer    *gomail.Dialer
	from      string
	fromName  string
	portalURL string
}

func NewSMTPSender(cfg config.Config) *SMTPSender {
	return &SMTPSender{
		dialer:    gomail.NewDialer(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPassword),
		from:      cfg.MailUser,
		fromName:  cfg.MailFromName,
		portalURL: cfg.PortalURL,
	}
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := RenderApproval(msg, s.portalURL)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.from, s.fromName)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", ApprovalSubject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send mail to %s: %w", msg.To, err)
	}
	return nil
}
