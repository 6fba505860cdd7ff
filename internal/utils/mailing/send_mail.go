package mailing

import (
	"Reimbursement-Tracker/domain"
	"Reimbursement-Tracker/internal/utils"
	"context"
	"fmt"
	"html"
	"strconv"

	"gopkg.in/gomail.v2"
)

type MailConfig struct {
	SMTPHost     string
	SMTPPort     string
	SMTPSender   string
	SMTPEmail    string
	SMTPPassword string
	NotifyEmail  string
}

func LoadMailConfig(config *utils.Config) MailConfig {
	return MailConfig{
		SMTPHost:     config.SMTPHost,
		SMTPPort:     config.SMTPPort,
		SMTPSender:   config.SMTPSenderName,
		SMTPEmail:    config.SMTPAuthEmail,
		SMTPPassword: config.SMTPAuthPassword,
		NotifyEmail:  config.NotifyEmail,
	}
}

// Mailer sends paid notices for claims to a single configured inbox.
type Mailer struct {
	config MailConfig
	send   func(m *gomail.Message) error
}

func NewMailer(config MailConfig) (*Mailer, error) {
	if config.SMTPHost == "" || config.NotifyEmail == "" {
		return nil, domain.NewError(domain.ErrConfigurationMissing, "SMTP host and notify email are required for mail notices")
	}
	port, err := strconv.Atoi(config.SMTPPort)
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP port %q: %w", config.SMTPPort, err)
	}
	dialer := gomail.NewDialer(config.SMTPHost, port, config.SMTPEmail, config.SMTPPassword)
	return &Mailer{config: config, send: func(m *gomail.Message) error { return dialer.DialAndSend(m) }}, nil
}

func (m *Mailer) NotifyPaid(ctx context.Context, r *domain.Reimbursement) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return m.send(m.PaidMessage(r))
}

// PaidMessage renders the notice for a claim that was just marked paid.
func (m *Mailer) PaidMessage(r *domain.Reimbursement) *gomail.Message {
	msg := gomail.NewMessage(gomail.SetEncoding(gomail.Unencoded))
	if m.config.SMTPSender != "" {
		msg.SetAddressHeader("From", m.config.SMTPEmail, m.config.SMTPSender)
	} else {
		msg.SetHeader("From", m.config.SMTPEmail)
	}
	msg.SetHeader("To", m.config.NotifyEmail)
	msg.SetHeader("Subject", fmt.Sprintf("Reimbursement %s paid", r.ID))
	msg.SetBody("text/html", fmt.Sprintf(
		"<p>%s from <b>%s</b> was paid on %s.</p><p>Approved amount: %s</p>",
		html.EscapeString(r.Description),
		html.EscapeString(r.Source),
		r.PaidDate.String(),
		r.ApprovedValue().StringFixed(2),
	))
	return msg
}
